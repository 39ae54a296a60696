/*
 * molfit_test.go, part of molfit.
 *
 * Copyright 2026 The molfit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/molfit/molfit/chemjson"
	"github.com/molfit/molfit/pdb"
	"github.com/spf13/viper"
)

const testdata = "../../pdb/testdata"

// run executes molfit with args and returns what it printed
func run(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	var b bytes.Buffer
	rootCmd.SetOut(&b)
	rootCmd.SetErr(&b)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return b.String(), err
}

func TestAlignCommand(Te *testing.T) {
	dir := Te.TempDir()
	out := filepath.Join(dir, "aligned.pdb.gz")
	js := filepath.Join(dir, "aligned.json")
	small := filepath.Join(testdata, "small.pdb")
	printed, err := run(Te, "align", small, small, "-o", out, "--json", js, "--atoms", "N,CA,C")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(printed, "RMSD: 0.000 A over 9 pairs") {
		Te.Errorf("unexpected output %q", printed)
	}
	s, err := pdb.Read(out)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 13 {
		Te.Errorf("expected 13 atoms in the output, got %d", s.Len())
	}
	f, err := os.Open(js)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	back, sup, err := chemjson.Decode(bufio.NewReader(f))
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != 13 || sup == nil || sup.N != 9 {
		Te.Errorf("wrong JSON output: %d atoms, %+v", back.Len(), sup)
	}
}

func TestConvertCommand(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "models.pdb.zst")
	if _, err := run(Te, "convert", filepath.Join(testdata, "models.pdb"), out); err != nil {
		Te.Fatal(err)
	}
	models, err := pdb.ReadModels(out)
	if err != nil {
		Te.Fatal(err)
	}
	if len(models) != 2 {
		Te.Errorf("expected 2 models, got %d", len(models))
	}
}

func TestScoreCommand(Te *testing.T) {
	small := filepath.Join(testdata, "small.pdb")
	printed, err := run(Te, "score", small, small)
	if err != nil {
		Te.Fatal(err)
	}
	for _, want := range []string{"N: 4", "TM-score: 1.0000", "GDT-TS: 100.00", "GMD: 0.000",
		"resolutions: 1.74 1.74 A", "similar by GMD: yes GMV: yes RMSD: yes TM-score: yes GDT-TS: yes GDT-HA: yes"} {
		if !strings.Contains(printed, want) {
			Te.Errorf("%q not in the output %q", want, printed)
		}
	}
}

func TestInfoCommand(Te *testing.T) {
	printed, err := run(Te, "info", filepath.Join(testdata, "small.pdb"), filepath.Join(testdata, "models.pdb"))
	if err != nil {
		Te.Fatal(err)
	}
	for _, want := range []string{"1ABC HYDROLASE", "resolution: 1.74 A", "chain A: 3 residues, 9 atoms  AGS",
		"seqres A: 3 residues  AGS", "models: 2"} {
		if !strings.Contains(printed, want) {
			Te.Errorf("%q not in the output:\n%s", want, printed)
		}
	}
}

func TestCommandErrors(Te *testing.T) {
	small := filepath.Join(testdata, "small.pdb")
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"info", filepath.Join(Te.TempDir(), "nothere.pdb")}},
		{"one argument", []string{"score", small}},
		{"bad chain", []string{"score", small, small, "--chains", "AB"}},
	}
	for _, tt := range tests {
		if _, err := run(Te, tt.args...); err == nil {
			Te.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestAlignJSONToStdout(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "aligned.pdb")
	small := filepath.Join(testdata, "small.pdb")
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"align", small, small, "-o", out, "--json", "-", "--atoms", "CA"})
	Te.Cleanup(func() { _ = alignCmd.Flags().Set("json", "") })
	if err := rootCmd.Execute(); err != nil {
		Te.Fatal(err)
	}
	back, sup, err := chemjson.Decode(bufio.NewReader(&stdout))
	if err != nil {
		Te.Fatalf("stdout is not a JSON stream: %v\n%s", err, stdout.String())
	}
	if back.Len() != 13 || sup == nil || sup.N != 4 {
		Te.Errorf("wrong JSON output: %d atoms, %+v", back.Len(), sup)
	}
	if !strings.Contains(stderr.String(), "RMSD: 0.000 A over 4 pairs") {
		Te.Errorf("the summary should go to stderr, got %q", stderr.String())
	}
}

func TestScoreThresholdsFile(Te *testing.T) {
	small := filepath.Join(testdata, "small.pdb")
	dir := Te.TempDir()
	strict := filepath.Join(dir, "strict.yaml")
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(strict, []byte("score:\n  tm: 0.99\n  gdt: 100\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte("score:\n  tm: 2\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	Te.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("config", "")
		viper.Reset()
	})
	printed, err := run(Te, "score", small, small, "--config", strict)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(printed, "TM-score: yes GDT-TS: yes") {
		Te.Errorf("identical structures should pass strict thresholds: %q", printed)
	}
	if _, err := run(Te, "score", small, small, "--config", invalid); err == nil {
		Te.Error("a TM-score threshold above 1 should be an error")
	}
}

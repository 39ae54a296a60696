/*
 * config_test.go, part of molfit.
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

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/molfit/molfit/similarity"
	"github.com/spf13/viper"
)

// equalAlign compares a and b, with nil and empty slices being equal
func equalAlign(a, b AlignConfig) bool {
	same := func(x, y []string) bool {
		return len(x) == len(y) && (len(x) == 0 || reflect.DeepEqual(x, y))
	}
	return same(a.Atoms, b.Atoms) && same(a.Chains, b.Chains) &&
		a.Sequential == b.Sequential && a.Het == b.Het && a.JSON == b.JSON
}

func TestDefaults(Te *testing.T) {
	v := viper.New()
	SetDefaults(v)
	c, err := New(v)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(c.Align.Atoms, []string{"CA"}) || c.Align.Sequential || c.Align.Het || c.Verbose {
		Te.Errorf("wrong defaults %+v", c)
	}
	if !reflect.DeepEqual(c.Score.Thresholds(), similarity.DefaultThresholds()) {
		Te.Errorf("wrong default thresholds %+v", c.Score)
	}
	o := c.Align.Options()
	if len(o.Chains()) != 0 || !o.SkipHet() {
		Te.Errorf("default options should use all chains and skip HETATM records")
	}
}

func TestSettingsFile(Te *testing.T) {
	dir := Te.TempDir()
	tests := []struct {
		name    string
		content string
		want    AlignConfig
		wantErr bool
	}{
		{
			"backbone of chain A",
			"align:\n  atoms: [N, CA, C]\n  chains: [A]\n  json: out.json\nverbose: true\n",
			AlignConfig{Atoms: []string{"N", "CA", "C"}, Chains: []string{"A"}, JSON: "out.json"},
			false,
		},
		{
			"sequential with ligands",
			"align:\n  sequential: true\n  het: true\n",
			AlignConfig{Atoms: []string{"CA"}, Chains: []string{}, Sequential: true, Het: true},
			false,
		},
		{
			"long chain identifier",
			"align:\n  chains: [AB]\n",
			AlignConfig{},
			true,
		},
		{
			"long atom name",
			"align:\n  atoms: [CAXXX]\n",
			AlignConfig{},
			true,
		},
	}
	for i, tt := range tests {
		Te.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "settings"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			v := viper.New()
			if err := Init(v, path); err != nil {
				t.Fatal(err)
			}
			c, err := New(v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !equalAlign(c.Align, tt.want) {
				t.Errorf("New().Align = %+v, want %+v", c.Align, tt.want)
			}
		})
	}
}

func TestEnvironment(Te *testing.T) {
	Te.Setenv("MOLFIT_ALIGN_SEQUENTIAL", "true")
	Te.Setenv("MOLFIT_VERBOSE", "1")
	v := viper.New()
	if err := Init(v, ""); err != nil {
		Te.Fatal(err)
	}
	c, err := New(v)
	if err != nil {
		Te.Fatal(err)
	}
	if !c.Align.Sequential || !c.Verbose {
		Te.Errorf("environment ignored: %+v", c)
	}
}

func TestMissingSettingsFile(Te *testing.T) {
	v := viper.New()
	if err := Init(v, filepath.Join(Te.TempDir(), "nothere.yaml")); err == nil {
		Te.Error("an explicit settings file that doesn't exist should be an error")
	}
}

func TestOptions(Te *testing.T) {
	a := AlignConfig{Atoms: []string{"P"}, Chains: []string{"B", "C"}, Het: true}
	o := a.Options()
	if !reflect.DeepEqual(o.AtomNames(), []string{"P"}) || string(o.Chains()) != "BC" || o.SkipHet() {
		Te.Errorf("wrong options from %+v", a)
	}
}

func TestScoreThresholds(Te *testing.T) {
	dir := Te.TempDir()
	tests := []struct {
		name    string
		content string
		want    ScoreConfig
		wantErr bool
	}{
		{"strict", "score:\n  rmsd: 0.05\n  tm: 0.9\n", ScoreConfig{GMD: 0.1, GMV: 0.1, RMSD: 0.05, TM: 0.9, GDT: 90}, false},
		{"TM-score above 1", "score:\n  tm: 1.5\n", ScoreConfig{}, true},
		{"negative GMD", "score:\n  gmd: -0.1\n", ScoreConfig{}, true},
		{"GDT above 100", "score:\n  gdt: 101\n", ScoreConfig{}, true},
	}
	for i, tt := range tests {
		Te.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "score"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			v := viper.New()
			if err := Init(v, path); err != nil {
				t.Fatal(err)
			}
			c, err := New(v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c.Score != tt.want {
				t.Errorf("New().Score = %+v, want %+v", c.Score, tt.want)
			}
		})
	}
}

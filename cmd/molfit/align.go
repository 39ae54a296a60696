/*
 * align.go, part of molfit.
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
	"fmt"
	"io"
	"os"

	chem "github.com/molfit/molfit"
	"github.com/molfit/molfit/align"
	"github.com/molfit/molfit/chemjson"
	"github.com/molfit/molfit/internal/config"
	"github.com/molfit/molfit/pdb"
	"github.com/spf13/cobra"
)

var (
	atomsHelp = `atom names paired between the structures.
Atoms are paired by chain, residue number and name unless --sequential is given.`

	sequentialHelp = `pair the selected atoms by their order in each file,
for structures with different numbering or chain names`
)

// alignCmd superimposes one structure on another
var alignCmd = &cobra.Command{
	Use:   "align MOVING REFERENCE",
	Short: "Superimpose MOVING on REFERENCE and write the result",
	Long: `
Superimpose the first model of MOVING on the first model of REFERENCE,
minimizing the RMSD between the selected atoms, and write the whole
superimposed structure to the --out file.`,
	Args:                       cobra.ExactArgs(2),
	SuggestionsMinimumDistance: 2,
	RunE:                       runAlign,
}

func init() {
	alignCmd.Flags().StringP("out", "o", "", "output PDB file (.gz and .zst are compressed)")
	_ = alignCmd.MarkFlagRequired("out")
	addSelectionFlags(alignCmd)
	alignCmd.Flags().String("json", "", "also write the superimposed structure and the transformation as JSON")
	rootCmd.AddCommand(alignCmd)
}

// addSelectionFlags adds the flags that choose the superimposed atoms
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("atoms", []string{"CA"}, atomsHelp)
	cmd.Flags().StringSlice("chains", nil, "chains to use (default all)")
	cmd.Flags().Bool("sequential", false, sequentialHelp)
	cmd.Flags().Bool("het", false, "include HETATM records")
}

func runAlign(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	moving, reference, err := readPair(args[0], args[1])
	if err != nil {
		return err
	}
	c, err := correspondence(moving, reference, settings.Align)
	if err != nil {
		return err
	}
	verbosef("superimposing %d atom pairs", len(c))
	aligned, res, err := align.Align(moving, reference, c)
	if err != nil {
		return err
	}
	if err := pdb.Write(aligned, out); err != nil {
		return err
	}
	verbosef("wrote %s", out)
	if settings.Align.JSON != "" {
		if err := writeJSON(cmd.OutOrStdout(), settings.Align.JSON, aligned, res); err != nil {
			return err
		}
		verbosef("wrote %s", settings.Align.JSON)
	}
	summary := cmd.OutOrStdout()
	if settings.Align.JSON == "-" {
		summary = cmd.ErrOrStderr()
	}
	fmt.Fprintf(summary, "%s on %s: %s\n", args[0], args[1], res)
	return nil
}

// readPair reads the first model of two PDB files
func readPair(first, second string) (*chem.ProteinStructure, *chem.ProteinStructure, error) {
	a, err := pdb.Read(first)
	if err != nil {
		return nil, nil, err
	}
	verbosef("read %s: %d atoms", first, a.Len())
	b, err := pdb.Read(second)
	if err != nil {
		return nil, nil, err
	}
	verbosef("read %s: %d atoms", second, b.Len())
	return a, b, nil
}

// correspondence pairs the atoms selected by the settings
func correspondence(moving, reference *chem.ProteinStructure, a config.AlignConfig) (align.Correspondence, error) {
	if a.Sequential {
		return align.Sequential(moving, reference, a.Options())
	}
	return align.ByName(moving, reference, a.Options())
}

// writeJSON writes s and r to path, or to stdout if path is "-"
func writeJSON(stdout io.Writer, path string, s *chem.ProteinStructure, r *align.Result) (err error) {
	if path == "-" {
		return chemjson.Encode(stdout, s, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return chem.NewIOError(path, "create", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = chem.NewIOError(path, "close", cerr)
		}
	}()
	return chemjson.Encode(f, s, r)
}

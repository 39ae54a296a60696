/*
 * convert.go, part of molfit.
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

	"github.com/molfit/molfit/pdb"
	"github.com/spf13/cobra"
)

// convertCmd rewrites a PDB file, for instance to compress it
var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Rewrite a PDB file, compressing or decompressing it",
	Long: `
Read every model of IN and write them to OUT. Compression is chosen from
the extensions: .gz for gzip, .zst for zstandard. Atoms are renumbered and
records other than atoms, models, HEADER, TITLE and the resolution are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		models, err := pdb.ReadModels(args[0])
		if err != nil {
			return err
		}
		verbosef("read %s: %d models", args[0], len(models))
		if err := pdb.WriteModels(models, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d models, %d atoms per model\n", args[0], args[1], len(models), models[0].Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

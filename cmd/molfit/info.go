/*
 * info.go, part of molfit.
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

	chem "github.com/molfit/molfit"
	"github.com/molfit/molfit/pdb"
	"github.com/spf13/cobra"
)

// infoCmd prints a summary of PDB files
var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Print the header, chains and sequences of PDB files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			models, err := pdb.ReadModels(name)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), name, models)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(w io.Writer, name string, models []*chem.ProteinStructure) {
	s := models[0]
	fmt.Fprintf(w, "%s: %s %s\n", name, s.IDCode, s.Header)
	if s.Title != "" {
		fmt.Fprintf(w, "  title: %s\n", s.Title)
	}
	if s.Resolution > 0 {
		fmt.Fprintf(w, "  resolution: %.2f A\n", s.Resolution)
	}
	fmt.Fprintf(w, "  models: %d, atoms: %d, residues: %d\n", len(models), s.Len(), s.NumResidues())
	for _, c := range s.Chains {
		fmt.Fprintf(w, "  chain %c: %d residues, %d atoms  %s\n", orBlank(c.ID), len(c.Residues), c.Len(), s.Sequence(c))
	}
	for _, sr := range s.SeqRes {
		fmt.Fprintf(w, "  seqres %c: %d residues  %s\n", orBlank(sr.Chain), len(sr.Residues), s.SeqResSequence(sr.Chain))
	}
	for _, m := range s.ModRes {
		icode := ""
		if m.ICode != 0 {
			icode = string(m.ICode)
		}
		fmt.Fprintf(w, "  modres %s %c %d%s: %s %s\n", m.Name, orBlank(m.Chain), m.SeqNum, icode, m.Standard, m.Comment)
	}
}

//orBlank returns '_' for an unset identifier.
func orBlank(id byte) byte {
	if id == 0 {
		return '_'
	}
	return id
}

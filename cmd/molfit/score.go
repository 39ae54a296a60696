/*
 * score.go, part of molfit.
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

	"github.com/molfit/molfit/similarity"
	"github.com/spf13/cobra"
)

// scoreCmd compares two structures
var scoreCmd = &cobra.Command{
	Use:   "score A B",
	Short: "Compare two structures: RMSD, TM-score, GDT, GMD and GMV",
	Long: `
Pair the selected atoms of the first models of A and B, superimpose A on B
and print the similarity scores. Neither file is modified.

Each score is then judged against the thresholds in the score section of
the settings. GMD, GMV and RMSD thresholds are multiplied by the sum of the
resolutions of A and B.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := readPair(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := correspondence(a, b, settings.Align)
		if err != nil {
			return err
		}
		P, Q, err := c.Coords(a, b)
		if err != nil {
			return err
		}
		S, v, err := similarity.Similar(P, Q, a.Resolution, b.Resolution, settings.Score.Thresholds())
		if err != nil {
			return err
		}
		if a.Resolution == 0 || b.Resolution == 0 {
			verbosef("resolution of %s or %s unknown", args[0], args[1])
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, S)
		fmt.Fprintf(w, "resolutions: %.2f %.2f A\n", a.Resolution, b.Resolution)
		fmt.Fprintln(w, v)
		return nil
	},
}

func init() {
	addSelectionFlags(scoreCmd)
	rootCmd.AddCommand(scoreCmd)
}

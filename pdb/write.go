/*
 * write.go, part of molfit.
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

package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	chem "github.com/molfit/molfit"
)

const atomFormat = "%-6s%5d %-4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s\n"

//Limits of the fixed-width numeric fields.
const (
	maxAtoms    = 99999
	minResSeq   = -999
	maxResSeq   = 9999
	minCoord    = -999.999
	maxCoord    = 9999.999
	minFraction = -99.99 //occupancy and temperature factor, %6.2f
	maxFraction = 999.99
	maxSeqRes   = 9999
	maxComment  = 41
	seqResLine  = 13 //residues per SEQRES line
)

//TITLE text takes columns 11-80, and continuation numbers
//columns 9-10.
const (
	titleWidth    = 70
	maxTitleLines = 99
)

//Write writes s to the file path, compressed according to its extension.
//Nothing is written if s can't be represented in the format.
func Write(s *chem.ProteinStructure, path string) error {
	if err := WriteModels([]*chem.ProteinStructure{s}, path); err != nil {
		return chem.ErrDecorate(err, "Write")
	}
	return nil
}

//WriteModels writes each structure in models as a MODEL block of a single
//file. The header records are taken from the first structure.
func WriteModels(models []*chem.ProteinStructure, path string) error {
	for _, s := range models {
		if err := check(s); err != nil {
			var ferr *chem.FormatError
			if errors.As(err, &ferr) && ferr.Path == "" {
				ferr.Path = path
			}
			return chem.ErrDecorate(err, "WriteModels")
		}
	}
	w, err := openWrite(path)
	if err != nil {
		return chem.ErrDecorate(err, "WriteModels")
	}
	err = encode(w, path, models)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = chem.NewIOError(path, "close", cerr)
	}
	if err != nil {
		os.Remove(path)
		return chem.ErrDecorate(err, "WriteModels")
	}
	return nil
}

//Encode writes s to w in PDB format.
func Encode(w io.Writer, s *chem.ProteinStructure) error {
	if err := check(s); err != nil {
		return chem.ErrDecorate(err, "Encode")
	}
	if err := encode(w, "", []*chem.ProteinStructure{s}); err != nil {
		return chem.ErrDecorate(err, "Encode")
	}
	return nil
}

//check returns a FormatError if s can't be written without truncating
//some field.
func check(s *chem.ProteinStructure) error {
	if s == nil {
		return chem.NewFormatError("", 0, "", "nil structure", nil)
	}
	if err := s.Corrupted(); err != nil {
		return chem.NewFormatError("", 0, "", "structure can't be written", err)
	}
	if n := s.Len(); n > maxAtoms {
		return chem.NewFormatError("", 0, colSerial.Name, fmt.Sprintf("%d atoms, at most %d can be numbered", n, maxAtoms), nil)
	}
	if n := len(titleLines(s.Title)); n > maxTitleLines {
		return chem.NewFormatError("", 0, colTitle.Name, fmt.Sprintf("title needs %d lines, at most %d", n, maxTitleLines), nil)
	}
	if err := checkSeqRes(s); err != nil {
		return err
	}
	var err error
	fail := func(i int, c *chem.Chain, r *chem.Residue, at *chem.Atom, col column, format string, a ...interface{}) bool {
		id := chem.AtomID{Chain: c.ID, SeqNum: r.SeqNum, ICode: r.ICode, Name: at.Name, AltLoc: at.AltLoc}
		err = chem.NewFormatError("", 0, col.Name, fmt.Sprintf("atom %d (%s): ", i, id)+fmt.Sprintf(format, a...), nil)
		return false
	}
	s.Each(func(i int, c *chem.Chain, r *chem.Residue, at *chem.Atom) bool {
		if r.SeqNum < minResSeq || r.SeqNum > maxResSeq {
			return fail(i, c, r, at, colResSeq, "residue number %d out of range", r.SeqNum)
		}
		for j, col := range []column{colX, colY, colZ} {
			if !fits(at.Coords[j], 1000, minCoord, maxCoord) {
				return fail(i, c, r, at, col, "coordinate %g doesn't fit in 8 columns", at.Coords[j])
			}
		}
		if !fits(at.Occupancy, 100, minFraction, maxFraction) {
			return fail(i, c, r, at, colOccupancy, "occupancy %g doesn't fit in 6 columns", at.Occupancy)
		}
		if !fits(at.Bfactor, 100, minFraction, maxFraction) {
			return fail(i, c, r, at, colBfactor, "temperature factor %g doesn't fit in 6 columns", at.Bfactor)
		}
		return true
	})
	return err
}

//checkSeqRes returns a FormatError if the SEQRES or MODRES data of s
//don't fit their columns.
func checkSeqRes(s *chem.ProteinStructure) error {
	for _, cs := range s.SeqRes {
		if len(cs.Residues) > maxSeqRes {
			return chem.NewFormatError("", 0, "numRes", fmt.Sprintf("SEQRES of chain %c: %d residues, at most %d", blank(cs.Chain), len(cs.Residues), maxSeqRes), nil)
		}
		for _, name := range cs.Residues {
			if name == "" || len(name) > 3 {
				return chem.NewFormatError("", 0, colSeqResNames.Name, fmt.Sprintf("SEQRES of chain %c: invalid residue name %q", blank(cs.Chain), name), nil)
			}
		}
	}
	for _, m := range s.ModRes {
		switch {
		case len(m.Name) > 3:
			return chem.NewFormatError("", 0, colModResName.Name, fmt.Sprintf("MODRES: residue name %q longer than 3 characters", m.Name), nil)
		case len(m.Standard) > 3:
			return chem.NewFormatError("", 0, colModResStd.Name, fmt.Sprintf("MODRES %s: standard residue %q longer than 3 characters", m.Name, m.Standard), nil)
		case m.SeqNum < minResSeq || m.SeqNum > maxResSeq:
			return chem.NewFormatError("", 0, colModResSeq.Name, fmt.Sprintf("MODRES %s: residue number %d out of range", m.Name, m.SeqNum), nil)
		case len(m.Comment) > maxComment:
			return chem.NewFormatError("", 0, colModResComment.Name, fmt.Sprintf("MODRES %s: comment longer than %d characters", m.Name, maxComment), nil)
		}
	}
	return nil
}

//fits reports whether v, rounded to 1/scale, lies in [lo, hi].
func fits(v, scale, lo, hi float64) bool {
	r := math.Round(v*scale) / scale
	return r >= lo && r <= hi
}

//encode writes models to w. Errors are reported as IOErrors on path.
func encode(w io.Writer, path string, models []*chem.ProteinStructure) error {
	b := bufio.NewWriter(w)
	if len(models) > 0 {
		writeHeader(b, models[0])
	}
	for i, s := range models {
		model := s.Model
		if model == 0 && len(models) > 1 {
			model = i + 1
		}
		if model > 0 {
			fmt.Fprintf(b, "MODEL     %4d\n", model)
		}
		writeAtoms(b, s)
		if model > 0 {
			b.WriteString("ENDMDL\n")
		}
	}
	b.WriteString("END\n")
	if err := b.Flush(); err != nil {
		return chem.NewIOError(path, "write", err)
	}
	return nil
}

func writeHeader(b *bufio.Writer, s *chem.ProteinStructure) {
	if s.Header != "" || s.IDCode != "" {
		line := fmt.Sprintf("HEADER    %-40.40s            %-4.4s", s.Header, s.IDCode)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	for i, l := range titleLines(s.Title) {
		if i == 0 {
			fmt.Fprintf(b, "TITLE     %s\n", l)
		} else {
			fmt.Fprintf(b, "TITLE   %2d%s\n", i+1, l)
		}
	}
	if s.Resolution > 0 {
		fmt.Fprintf(b, "REMARK   2 RESOLUTION.    %.2f ANGSTROMS.\n", s.Resolution)
	}
	for _, cs := range s.SeqRes {
		for i := 0; i*seqResLine < len(cs.Residues); i++ {
			names := cs.Residues[i*seqResLine : min((i+1)*seqResLine, len(cs.Residues))]
			fmt.Fprintf(b, "SEQRES %3d %c %4d  ", i+1, blank(cs.Chain), len(cs.Residues))
			for j, name := range names {
				if j > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(b, "%3s", name)
			}
			b.WriteByte('\n')
		}
	}
	for _, m := range s.ModRes {
		line := fmt.Sprintf("MODRES %-4.4s %3s %c %4d%c %3s  %s", s.IDCode, m.Name, blank(m.Chain), m.SeqNum, blank(m.ICode), m.Standard, m.Comment)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

//titleLines splits text in the contents of columns 11-80 of TITLE
//records. Continuation lines start with a blank, except those that carry
//on a word that didn't fit in the previous line.
func titleLines(text string) []string {
	var ret []string
	line := ""
	for _, w := range strings.Fields(text) {
		cand := w
		if line != "" || len(ret) > 0 {
			cand = line + " " + w
		}
		if len(cand) <= titleWidth {
			line = cand
			continue
		}
		if line != "" {
			ret = append(ret, line)
			line = ""
			cand = " " + w
			if len(cand) <= titleWidth {
				line = cand
				continue
			}
		}
		for len(cand) > titleWidth {
			ret = append(ret, cand[:titleWidth])
			cand = cand[titleWidth:]
		}
		line = cand
	}
	if line != "" {
		ret = append(ret, line)
	}
	return ret
}

func writeAtoms(b *bufio.Writer, s *chem.ProteinStructure) {
	serial := 1
	for _, c := range s.Chains {
		for _, r := range c.Residues {
			for _, at := range r.Atoms {
				record := "ATOM"
				if at.Het {
					record = "HETATM"
				}
				fmt.Fprintf(b, atomFormat, record, serial, atomName(at), blank(at.AltLoc), r.Name,
					blank(c.ID), r.SeqNum, blank(r.ICode), at.Coords[0], at.Coords[1], at.Coords[2],
					at.Occupancy, at.Bfactor, strings.ToUpper(at.Symbol), at.Charge)
				serial++
			}
		}
		b.WriteString("TER\n")
	}
}

//atomName aligns the name as the PDB does: names of one-letter elements
//start at column 14, unless they take all 4 columns.
func atomName(at *chem.Atom) string {
	if len(at.Name) < 4 && len(at.Symbol) != 2 {
		return " " + at.Name
	}
	return at.Name
}

func blank(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}

/*
 * fields.go, part of molfit.
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

import "strings"

//column is a fixed-width field of a PDB record. Start and End
//are 1-based and inclusive, as in the format documentation.
type column struct {
	Name  string
	Start int
	End   int
}

//ATOM/HETATM columns.
var (
	colSerial    = column{"serial", 7, 11}
	colName      = column{"name", 13, 16}
	colAltLoc    = column{"altLoc", 17, 17}
	colResName   = column{"resName", 18, 20}
	colChain     = column{"chainID", 22, 22}
	colResSeq    = column{"resSeq", 23, 26}
	colICode     = column{"iCode", 27, 27}
	colX         = column{"x", 31, 38}
	colY         = column{"y", 39, 46}
	colZ         = column{"z", 47, 54}
	colOccupancy = column{"occupancy", 55, 60}
	colBfactor   = column{"tempFactor", 61, 66}
	colElement   = column{"element", 77, 78}
	colCharge    = column{"charge", 79, 80}
)

//HEADER and TITLE columns.
var (
	colClassification = column{"classification", 11, 50}
	colIDCode         = column{"idCode", 63, 66}
	colTitle          = column{"title", 11, 80}
)

//SEQRES and MODRES columns.
var (
	colSeqResChain   = column{"chainID", 12, 12}
	colSeqResNames   = column{"resName", 20, 70}
	colModResName    = column{"resName", 13, 15}
	colModResChain   = column{"chainID", 17, 17}
	colModResSeq     = column{"seqNum", 19, 22}
	colModResICode   = column{"iCode", 23, 23}
	colModResStd     = column{"stdRes", 25, 27}
	colModResComment = column{"comment", 30, 70}
)

//minAtomLine is the shortest valid ATOM/HETATM line: it has to reach
//the end of the z coordinate.
const minAtomLine = 54

//Raw returns the columns of line covered by c, untrimmed. Columns past
//the end of line are treated as blanks, so the result may be shorter
//than the field, or empty.
func (c column) Raw(line string) string {
	if len(line) < c.Start {
		return ""
	}
	end := c.End
	if end > len(line) {
		end = len(line)
	}
	return line[c.Start-1 : end]
}

//Get returns the trimmed contents of the field.
func (c column) Get(line string) string {
	return strings.TrimSpace(c.Raw(line))
}

//Byte returns the single-character field at c.Start, or 0 if it is blank
//or missing.
func (c column) Byte(line string) byte {
	if len(line) < c.Start || line[c.Start-1] == ' ' {
		return 0
	}
	return line[c.Start-1]
}

//recordName returns the trimmed record keyword, columns 1-6.
func recordName(line string) string {
	if len(line) > 6 {
		line = line[:6]
	}
	return strings.TrimSpace(line)
}

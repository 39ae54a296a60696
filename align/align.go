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

package align

import (
	chem "github.com/molfit/molfit"
	v3 "github.com/molfit/molfit/v3"
	"gonum.org/v1/gonum/mat"
)

//Align superimposes moving on reference using the atom pairs in c.
//It returns a copy of moving with all its atoms transformed, not only
//those in c, and the superposition data. The RMSD is that of the pairs in c.
//Neither moving nor reference is modified.
func Align(moving, reference *chem.ProteinStructure, c Correspondence) (*chem.ProteinStructure, *Result, error) {
	P, Q, err := c.Coords(moving, reference)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Align")
	}
	res, err := Kabsch(P, Q)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Align")
	}
	return Transform(moving, res.Rotation, res.Translation), res, nil
}

//Transform returns a copy of s with x' = R x + t applied to the coordinates
//of every atom. R is 3x3 and t 1x3.
func Transform(s *chem.ProteinStructure, R mat.Matrix, t *v3.Matrix) *chem.ProteinStructure {
	ret := s.Copy()
	coords := ret.Coords()
	if coords == nil {
		return ret
	}
	if err := ret.SetCoords(applyTo(coords, R, t)); err != nil {
		//applyTo keeps the number of rows.
		panic(err)
	}
	return ret
}

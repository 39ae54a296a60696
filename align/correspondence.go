/*
 * correspondence.go, part of molfit.
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
	"fmt"
	"log"

	chem "github.com/molfit/molfit"
	v3 "github.com/molfit/molfit/v3"
)

//Pair names one atom in the moving structure and the atom of the
//reference structure it should be superimposed on.
type Pair struct {
	Moving    chem.AtomID
	Reference chem.AtomID
}

//Correspondence is an ordered list of pairs.
type Correspondence []Pair

//Coords returns the coordinates of the paired atoms of moving and reference,
//in the order of C. It returns an AlignmentError naming the first pair
//whose atom is missing.
func (C Correspondence) Coords(moving, reference *chem.ProteinStructure) (*v3.Matrix, *v3.Matrix, error) {
	switch {
	case moving == nil:
		return nil, nil, chem.NewAlignmentError("moving", "nil structure")
	case reference == nil:
		return nil, nil, chem.NewAlignmentError("reference", "nil structure")
	case len(C) == 0:
		return nil, nil, chem.NewAlignmentError("correspondence", "empty")
	}
	mi := make([]int, len(C))
	ri := make([]int, len(C))
	for i, p := range C {
		if mi[i] = moving.Index(p.Moving); mi[i] < 0 {
			return nil, nil, chem.NewAlignmentError(fmt.Sprintf("correspondence[%d].Moving", i), "atom %s not in the moving structure", p.Moving)
		}
		if ri[i] = reference.Index(p.Reference); ri[i] < 0 {
			return nil, nil, chem.NewAlignmentError(fmt.Sprintf("correspondence[%d].Reference", i), "atom %s not in the reference structure", p.Reference)
		}
	}
	P := v3.Zeros(len(C))
	P.SomeVecs(moving.Coords(), mi)
	Q := v3.Zeros(len(C))
	Q.SomeVecs(reference.Coords(), ri)
	return P, Q, nil
}

//selectIDs returns the ids of the atoms of s selected by o, in file order.
//Only the first alternate location of each atom is considered, and
//the returned ids match any alternate location.
func selectIDs(s *chem.ProteinStructure, o *Options) []chem.AtomID {
	seen := make(map[chem.AtomID]bool)
	var ret []chem.AtomID
	s.Each(func(i int, c *chem.Chain, r *chem.Residue, at *chem.Atom) bool {
		if !o.selected(c.ID, at) {
			return true
		}
		id := chem.AtomID{Chain: c.ID, SeqNum: r.SeqNum, ICode: r.ICode, Name: at.Name}
		if !seen[id] {
			seen[id] = true
			ret = append(ret, id)
		}
		return true
	})
	return ret
}

//ByName pairs the atoms selected by o that have the same chain, residue
//number, insertion code and name in both structures, in the order of moving.
//If o is nil, DefaultOptions are used.
func ByName(moving, reference *chem.ProteinStructure, o *Options) (Correspondence, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if moving == nil || reference == nil {
		return nil, chem.NewAlignmentError(nilName(moving), "nil structure")
	}
	inref := make(map[chem.AtomID]bool)
	for _, id := range selectIDs(reference, o) {
		inref[id] = true
	}
	var ret Correspondence
	for _, id := range selectIDs(moving, o) {
		if inref[id] {
			ret = append(ret, Pair{Moving: id, Reference: id})
		}
	}
	if len(ret) == 0 {
		return nil, chem.NewAlignmentError("correspondence", "no selected atoms in common")
	}
	return ret, nil
}

//Sequential pairs the ith atom selected by o in moving with the ith
//selected in reference, regardless of names or numbering. If the structures
//have different numbers of selected atoms the extra ones are ignored.
//If o is nil, DefaultOptions are used.
func Sequential(moving, reference *chem.ProteinStructure, o *Options) (Correspondence, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if moving == nil || reference == nil {
		return nil, chem.NewAlignmentError(nilName(moving), "nil structure")
	}
	m := selectIDs(moving, o)
	r := selectIDs(reference, o)
	if len(m) != len(r) {
		log.Printf("align: %d atoms selected in the moving structure and %d in the reference, only %d will be paired", len(m), len(r), min(len(m), len(r)))
	}
	n := min(len(m), len(r))
	if n == 0 {
		return nil, chem.NewAlignmentError("correspondence", "no selected atoms")
	}
	ret := make(Correspondence, n)
	for i := range ret {
		ret[i] = Pair{Moving: m[i], Reference: r[i]}
	}
	return ret, nil
}

func nilName(moving *chem.ProteinStructure) string {
	if moving == nil {
		return "moving"
	}
	return "reference"
}

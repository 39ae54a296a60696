/*
 * chem.go, part of molfit.
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

package chem

import (
	"fmt"
	"math"
	"strings"

	v3 "github.com/molfit/molfit/v3"
)

/**Note: Atom(i) and Locate(i) panic when out of range, like indexing a slice.
 * Everything that depends on user input returns errors instead.**/

//Atom contains one ATOM or HETATM record.
type Atom struct {
	Serial    int
	Name      string
	AltLoc    byte //0 if absent
	Het       bool //is hetatm in the pdb file?
	Coords    [3]float64
	Occupancy float64
	Bfactor   float64
	Symbol    string
	Charge    string //as written in the PDB, e.g. "2+". Empty if absent.
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	at := *A
	return &at
}

//Residue is a contiguous run of atoms sharing a residue name, sequence
//number, insertion code and chain.
type Residue struct {
	Name   string
	SeqNum int
	ICode  byte //0 if absent
	Atoms  []*Atom
}

//Atom returns the first atom in the residue with the given name, or nil.
func (R *Residue) Atom(name string) *Atom {
	for _, at := range R.Atoms {
		if at.Name == name {
			return at
		}
	}
	return nil
}

//Chain is a contiguous run of residues with the same chain identifier.
type Chain struct {
	ID       byte
	Residues []*Residue
}

//Len returns the number of atoms in the chain.
func (C *Chain) Len() int {
	n := 0
	for _, r := range C.Residues {
		n += len(r.Atoms)
	}
	return n
}

//Sequence returns the one-letter sequence of the chain. Residues
//that are not amino acids are given as 'X'.
func (C *Chain) Sequence() string {
	var b strings.Builder
	for _, r := range C.Residues {
		b.WriteByte(OneLetter(r.Name))
	}
	return b.String()
}

//AtomID names one atom of a structure.
type AtomID struct {
	Chain  byte
	SeqNum int
	ICode  byte
	Name   string
	AltLoc byte //0 matches any alternate location
}

func (id AtomID) String() string {
	s := fmt.Sprintf("%c/%d", printable(id.Chain), id.SeqNum)
	if id.ICode != 0 {
		s += string(id.ICode)
	}
	s += "/" + id.Name
	if id.AltLoc != 0 {
		s += "." + string(id.AltLoc)
	}
	return s
}

func printable(b byte) byte {
	if b == 0 || b == ' ' {
		return '_'
	}
	return b
}

//ChainSeq is the full sequence of a chain, as given by SEQRES records.
//It includes residues with no coordinates.
type ChainSeq struct {
	Chain    byte
	Residues []string
}

//ModRes describes a modified residue and the standard residue
//it derives from, as in a MODRES record.
type ModRes struct {
	Name     string
	Chain    byte
	SeqNum   int
	ICode    byte
	Standard string
	Comment  string
}

//ProteinStructure is the root of the structure model. It owns all its
//chains, residues and atoms.
type ProteinStructure struct {
	Header     string //classification from the HEADER record
	IDCode     string
	Title      string
	Model      int     //0 if the file has no MODEL records
	Resolution float64 //in A, 0 if unknown
	SeqRes     []ChainSeq
	ModRes     []ModRes
	Chains     []*Chain
}

var (
	_ Atomer = (*ProteinStructure)(nil)
	_ Masser = (*ProteinStructure)(nil)
)

//NewProteinStructure returns an empty structure.
func NewProteinStructure() *ProteinStructure {
	return &ProteinStructure{Chains: make([]*Chain, 0, 1)}
}

//AppendAtom adds at to the structure. at goes to the last residue if
//chain, seqNum and icode are those of the last residue of the last chain.
//Otherwise a new residue is opened, in a new chain if chain differs from the
//ID of the last chain.
func (P *ProteinStructure) AppendAtom(chain byte, resName string, seqNum int, icode byte, at *Atom) {
	var c *Chain
	if n := len(P.Chains); n > 0 && P.Chains[n-1].ID == chain {
		c = P.Chains[n-1]
	} else {
		c = &Chain{ID: chain}
		P.Chains = append(P.Chains, c)
	}
	var r *Residue
	if n := len(c.Residues); n > 0 && c.Residues[n-1].SeqNum == seqNum && c.Residues[n-1].ICode == icode {
		r = c.Residues[n-1]
	} else {
		r = &Residue{Name: resName, SeqNum: seqNum, ICode: icode}
		c.Residues = append(c.Residues, r)
	}
	r.Atoms = append(r.Atoms, at)
}

//Copy returns a deep copy of the structure. Nothing is shared
//between P and the copy.
func (P *ProteinStructure) Copy() *ProteinStructure {
	ret := *P
	ret.SeqRes = CopySeqRes(P.SeqRes)
	ret.ModRes = append([]ModRes(nil), P.ModRes...)
	ret.Chains = make([]*Chain, len(P.Chains))
	for i, c := range P.Chains {
		nc := &Chain{ID: c.ID, Residues: make([]*Residue, len(c.Residues))}
		for j, r := range c.Residues {
			nr := &Residue{Name: r.Name, SeqNum: r.SeqNum, ICode: r.ICode, Atoms: make([]*Atom, len(r.Atoms))}
			for k, at := range r.Atoms {
				nr.Atoms[k] = at.Copy()
			}
			nc.Residues[j] = nr
		}
		ret.Chains[i] = nc
	}
	return &ret
}

//CopySeqRes returns a deep copy of seqres.
func CopySeqRes(seqres []ChainSeq) []ChainSeq {
	if seqres == nil {
		return nil
	}
	ret := make([]ChainSeq, len(seqres))
	for i, cs := range seqres {
		ret[i] = ChainSeq{Chain: cs.Chain, Residues: append([]string(nil), cs.Residues...)}
	}
	return ret
}

//Len returns the number of atoms in the structure.
func (P *ProteinStructure) Len() int {
	n := 0
	for _, c := range P.Chains {
		n += c.Len()
	}
	return n
}

//NumResidues returns the number of residues in the structure.
func (P *ProteinStructure) NumResidues() int {
	n := 0
	for _, c := range P.Chains {
		n += len(c.Residues)
	}
	return n
}

//Atom returns the ith atom in iteration order. It panics if i is out of range.
func (P *ProteinStructure) Atom(i int) *Atom {
	_, _, at := P.Locate(i)
	return at
}

//Locate returns the chain, residue and atom for the ith atom in
//iteration order. It panics if i is out of range.
func (P *ProteinStructure) Locate(i int) (*Chain, *Residue, *Atom) {
	if i >= 0 {
		for _, c := range P.Chains {
			for _, r := range c.Residues {
				if i < len(r.Atoms) {
					return c, r, r.Atoms[i]
				}
				i -= len(r.Atoms)
			}
		}
	}
	panic("molfit: atom index out of range")
}

//Each calls f for every atom in iteration order, with its index.
//Iteration stops if f returns false.
func (P *ProteinStructure) Each(f func(i int, c *Chain, r *Residue, at *Atom) bool) {
	i := 0
	for _, c := range P.Chains {
		for _, r := range c.Residues {
			for _, at := range r.Atoms {
				if !f(i, c, r, at) {
					return
				}
				i++
			}
		}
	}
}

//Chain returns the first chain with the given ID, or nil.
func (P *ProteinStructure) Chain(id byte) *Chain {
	for _, c := range P.Chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

//Find returns the first atom matching id, or nil. A chain id
//that appears in several non-contiguous runs is searched in all of them.
func (P *ProteinStructure) Find(id AtomID) *Atom {
	i := P.Index(id)
	if i < 0 {
		return nil
	}
	return P.Atom(i)
}

//Index returns the index, in iteration order, of the first atom
//matching id, or -1.
func (P *ProteinStructure) Index(id AtomID) int {
	i := 0
	for _, c := range P.Chains {
		if c.ID != id.Chain {
			i += c.Len()
			continue
		}
		for _, r := range c.Residues {
			if r.SeqNum != id.SeqNum || r.ICode != id.ICode {
				i += len(r.Atoms)
				continue
			}
			for _, at := range r.Atoms {
				if at.Name == id.Name && (id.AltLoc == 0 || id.AltLoc == at.AltLoc) {
					return i
				}
				i++
			}
		}
	}
	return -1
}

//Standard returns the name of the standard residue r, in chain, derives
//from according to the MODRES records, or r.Name if it is not listed
//as modified. Records for the same residue name elsewhere in the
//structure are used if r itself is not listed.
func (P *ProteinStructure) Standard(chain byte, r *Residue) string {
	byName := ""
	for _, m := range P.ModRes {
		if m.Name != r.Name {
			continue
		}
		if m.Chain == chain && m.SeqNum == r.SeqNum && m.ICode == r.ICode {
			return m.Standard
		}
		if byName == "" {
			byName = m.Standard
		}
	}
	if byName != "" {
		return byName
	}
	return r.Name
}

//Sequence returns the one-letter sequence of the residues of c with
//coordinates. Modified residues are given the code of their standard
//residue.
func (P *ProteinStructure) Sequence(c *Chain) string {
	var b strings.Builder
	for _, r := range c.Residues {
		b.WriteByte(OneLetter(P.Standard(c.ID, r)))
	}
	return b.String()
}

//SeqResSequence returns the one-letter sequence from the SEQRES records
//for the chain with the given ID, or an empty string if there are none.
//Modified residues are given the code of their standard residue.
func (P *ProteinStructure) SeqResSequence(chain byte) string {
	std := make(map[string]string)
	for _, m := range P.ModRes {
		if _, ok := std[m.Name]; !ok {
			std[m.Name] = m.Standard
		}
	}
	var b strings.Builder
	for _, cs := range P.SeqRes {
		if cs.Chain != chain {
			continue
		}
		for _, name := range cs.Residues {
			if s, ok := std[name]; ok {
				name = s
			}
			b.WriteByte(OneLetter(name))
		}
	}
	return b.String()
}

//ID returns the AtomID of the ith atom.
func (P *ProteinStructure) ID(i int) AtomID {
	c, r, at := P.Locate(i)
	return AtomID{Chain: c.ID, SeqNum: r.SeqNum, ICode: r.ICode, Name: at.Name, AltLoc: at.AltLoc}
}

//Coords returns a matrix with the coordinates of all atoms, one
//per row, in iteration order. It returns nil for an empty structure.
func (P *ProteinStructure) Coords() *v3.Matrix {
	n := P.Len()
	if n == 0 {
		return nil
	}
	ret := v3.Zeros(n)
	P.Each(func(i int, _ *Chain, _ *Residue, at *Atom) bool {
		ret.SetVec(i, at.Coords)
		return true
	})
	return ret
}

//SetCoords sets the coordinates of all atoms, in iteration order, from
//the rows of coords.
func (P *ProteinStructure) SetCoords(coords *v3.Matrix) error {
	n := P.Len()
	if coords == nil {
		if n == 0 {
			return nil
		}
		return fmt.Errorf("SetCoords: nil coordinates for %d atoms", n)
	}
	if coords.NVecs() != n {
		return fmt.Errorf("SetCoords: %d coordinates given, %d expected", coords.NVecs(), n)
	}
	P.Each(func(i int, _ *Chain, _ *Residue, at *Atom) bool {
		at.Coords = coords.Vec(i)
		return true
	})
	return nil
}

//Masses returns a slice with the mass of each atom. It returns an error
//for the first atom with an unknown element.
func (P *ProteinStructure) Masses() ([]float64, error) {
	ret := make([]float64, 0, P.Len())
	var err error
	P.Each(func(i int, _ *Chain, _ *Residue, at *Atom) bool {
		m, ok := Mass(at.Symbol)
		if !ok {
			err = fmt.Errorf("Masses: unknown element %q for atom %d (%s)", at.Symbol, i, P.ID(i))
			return false
		}
		ret = append(ret, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

//Corrupted returns an error if some atom can't be faithfully written: non-finite
//coordinates or fields longer than their PDB columns.
func (P *ProteinStructure) Corrupted() error {
	var err error
	P.Each(func(i int, c *Chain, r *Residue, at *Atom) bool {
		for j, v := range at.Coords {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				err = fmt.Errorf("atom %d (%s): non-finite coordinate %c", i, P.ID(i), "xyz"[j])
				return false
			}
		}
		switch {
		case len(at.Name) > 4:
			err = fmt.Errorf("atom %d: name %q longer than 4 characters", i, at.Name)
		case len(r.Name) > 3:
			err = fmt.Errorf("atom %d: residue name %q longer than 3 characters", i, r.Name)
		case len(at.Symbol) > 2:
			err = fmt.Errorf("atom %d: element %q longer than 2 characters", i, at.Symbol)
		case len(at.Charge) > 2:
			err = fmt.Errorf("atom %d: charge %q longer than 2 characters", i, at.Charge)
		}
		return err == nil
	})
	return err
}

/*
 * json.go, part of molfit.
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

//Package chemjson serializes structures and superpositions as a stream of
//JSON objects, one per line, so that programs written in other languages
//(such as molecular viewers) can consume them through files or UNIX pipes.
//
//A stream starts with an Info object, followed by one Atom object per atom
//in file order and, if Info.Superposition is true, one Superposition object.
package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	chem "github.com/molfit/molfit"
	"github.com/molfit/molfit/align"
	v3 "github.com/molfit/molfit/v3"
	"gonum.org/v1/gonum/mat"
)

//Info describes the contents of the stream.
type Info struct {
	Header        string
	IDCode        string
	Title         string
	Model         int
	Resolution    float64
	Atoms         int
	Superposition bool
}

//A ready-to-serialize container for an atom and its residue and chain.
type Atom struct {
	Serial    int
	Name      string
	AltLoc    string `json:",omitempty"`
	Het       bool
	Symbol    string
	Charge    string `json:",omitempty"`
	ResName   string
	ResSeq    int
	ICode     string `json:",omitempty"`
	Chain     string
	Coords    []float64
	Occupancy float64
	Bfactor   float64
}

//Superposition is the serialized form of an align.Result. Rotation is
//given row by row.
type Superposition struct {
	RMSD        float64
	N           int
	Degenerate  bool
	Rotation    []float64
	Translation []float64
}

//An easily JSON-serializable error type.
type Error struct {
	deco     []string
	IsError  bool
	Decoding bool   //false when the error happened while encoding
	Atom     int    //index of the offending atom, -1 if none
	Function string //which go function gave the error
	Message  string
}

//Error implements the error interface
func (err *Error) Error() string {
	return fmt.Sprintf("%s: %s", err.Function, err.Message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(decoding bool, function string, atom int, err error) *Error {
	return &Error{IsError: true, Decoding: decoding, Atom: atom, Function: function, Message: err.Error()}
}

//Encode writes s and, if r is not nil, the superposition r to out.
func Encode(out io.Writer, s *chem.ProteinStructure, r *align.Result) error {
	const funcname = "Encode"
	if s == nil {
		return NewError(false, funcname, -1, fmt.Errorf("nil structure"))
	}
	enc := json.NewEncoder(out)
	info := &Info{Header: s.Header, IDCode: s.IDCode, Title: s.Title, Model: s.Model,
		Resolution: s.Resolution, Atoms: s.Len(), Superposition: r != nil}
	if err := enc.Encode(info); err != nil {
		return NewError(false, funcname, -1, err)
	}
	if err := EncodeAtoms(s, enc); err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	if err := enc.Encode(NewSuperposition(r)); err != nil {
		return NewError(false, funcname, -1, err)
	}
	return nil
}

//EncodeAtoms encodes every atom of s, one object per line.
func EncodeAtoms(s *chem.ProteinStructure, enc *json.Encoder) *Error {
	const funcname = "EncodeAtoms"
	var jerr *Error
	s.Each(func(i int, c *chem.Chain, r *chem.Residue, at *chem.Atom) bool {
		ja := &Atom{
			Serial:    at.Serial,
			Name:      at.Name,
			AltLoc:    byteString(at.AltLoc),
			Het:       at.Het,
			Symbol:    at.Symbol,
			Charge:    at.Charge,
			ResName:   r.Name,
			ResSeq:    r.SeqNum,
			ICode:     byteString(r.ICode),
			Chain:     byteString(c.ID),
			Coords:    at.Coords[:],
			Occupancy: at.Occupancy,
			Bfactor:   at.Bfactor,
		}
		if err := enc.Encode(ja); err != nil {
			jerr = NewError(false, funcname, i, err)
			return false
		}
		return true
	})
	return jerr
}

//NewSuperposition returns the serializable form of r.
func NewSuperposition(r *align.Result) *Superposition {
	ret := &Superposition{RMSD: r.RMSD, N: r.N, Degenerate: r.Degenerate}
	ret.Rotation = make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		ret.Rotation = append(ret.Rotation, mat.Row(nil, i, r.Rotation)...)
	}
	ret.Translation = mat.Row(nil, 0, r.Translation)
	return ret
}

//Result returns the align.Result corresponding to S.
func (S *Superposition) Result() (*align.Result, error) {
	if len(S.Rotation) != 9 || len(S.Translation) != 3 {
		return nil, fmt.Errorf("Superposition: %d rotation and %d translation elements, 9 and 3 expected", len(S.Rotation), len(S.Translation))
	}
	t, err := v3.NewMatrix(append([]float64(nil), S.Translation...))
	if err != nil {
		return nil, err
	}
	R := mat.NewDense(3, 3, append([]float64(nil), S.Rotation...))
	return &align.Result{RMSD: S.RMSD, N: S.N, Degenerate: S.Degenerate, Rotation: R, Translation: t}, nil
}

//Decode reads a stream written by Encode. The returned Superposition
//is nil if the stream has none.
func Decode(stream *bufio.Reader) (*chem.ProteinStructure, *Superposition, error) {
	const funcname = "Decode"
	info := new(Info)
	if err := decodeLine(stream, info); err != nil {
		return nil, nil, NewError(true, funcname, -1, err)
	}
	s := chem.NewProteinStructure()
	s.Header, s.IDCode, s.Title = info.Header, info.IDCode, info.Title
	s.Model, s.Resolution = info.Model, info.Resolution
	for i := 0; i < info.Atoms; i++ {
		ja := new(Atom)
		if err := decodeLine(stream, ja); err != nil {
			return nil, nil, NewError(true, funcname, i, err)
		}
		if len(ja.Coords) != 3 {
			return nil, nil, NewError(true, funcname, i, fmt.Errorf("%d coordinates, 3 expected", len(ja.Coords)))
		}
		at := &chem.Atom{Serial: ja.Serial, Name: ja.Name, AltLoc: stringByte(ja.AltLoc), Het: ja.Het,
			Occupancy: ja.Occupancy, Bfactor: ja.Bfactor, Symbol: ja.Symbol, Charge: ja.Charge}
		copy(at.Coords[:], ja.Coords)
		s.AppendAtom(stringByte(ja.Chain), ja.ResName, ja.ResSeq, stringByte(ja.ICode), at)
	}
	if !info.Superposition {
		return s, nil, nil
	}
	sup := new(Superposition)
	if err := decodeLine(stream, sup); err != nil {
		return nil, nil, NewError(true, funcname, -1, err)
	}
	return s, sup, nil
}

//decodeLine unmarshals the next line of stream into v.
func decodeLine(stream *bufio.Reader, v interface{}) error {
	line, err := stream.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(strings.TrimSpace(string(line))) == 0) {
		return err
	}
	return json.Unmarshal(line, v)
}

func byteString(b byte) string {
	if b == 0 {
		return ""
	}
	return string(b)
}

func stringByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}

/*
 * gocoords.go, part of molfit.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec returns a copy of the ith vector as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	var r [3]float64
	copy(r[:], F.RawRowView(i))
	return r
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.SetRow(i, v[:])
}

//SomeVecs puts in F the vectors of A with indexes in clist, in
//the same order as clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val < 0 || val >= ar {
			panic(ErrIndexOutOfRange)
		}
		F.SetRow(key, A.RawRowView(val))
	}
}

//AddVec adds the vector vec to each vector of A, putting the
//result on the receiver. A and F can be the same matrix.
func (F *Matrix) AddVec(A, vec *Matrix) {
	if vec.NVecs() != 1 || A.NVecs() != F.NVecs() {
		panic(ErrShape)
	}
	v := make([]float64, 3)
	copy(v, vec.RawRowView(0))
	for i := 0; i < A.NVecs(); i++ {
		row := F.RawRowView(i)
		floats.AddTo(row, A.RawRowView(i), v)
	}
}

//SubVec subtracts the vector vec from each vector of A, putting
//the result on the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	if vec.NVecs() != 1 || A.NVecs() != F.NVecs() {
		panic(ErrShape)
	}
	v := make([]float64, 3)
	copy(v, vec.RawRowView(0))
	for i := 0; i < A.NVecs(); i++ {
		row := F.RawRowView(i)
		floats.SubTo(row, A.RawRowView(i), v)
	}
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r)
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf("%8.3f %8.3f %8.3f", row[0], row[1], row[2]))
	}
	return "[" + strings.Join(v, "\n ") + "]"
}

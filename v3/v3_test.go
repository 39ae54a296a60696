/*
 * v3_test.go, part of molfit.
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Returns an identity matrix spanning span cols and rows
func gnEye(span int) *mat.Dense {
	A := mat.NewDense(span, span, nil)
	for i := 0; i < span; i++ {
		A.Set(i, i, 1.0)
	}
	return A
}

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if v := A.Vec(1); v != [3]float64{4, 5, 6} {
		Te.Errorf("wrong second vector %v", v)
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	B.SomeVecs(A, cind)
	if B.At(2, 0) != 16 || B.At(0, 2) != 6 {
		Te.Errorf("SomeVecs picked the wrong rows:\n%s", B)
	}
	defer func() {
		if r := recover(); r != ErrIndexOutOfRange {
			Te.Errorf("expected a panic for an out of range index, got %v", r)
		}
	}()
	B.SomeVecs(A, []int{0, 1, 40})
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	row, _ := NewMatrix([]float64{10, 20, 30})
	A.AddVec(A, row)
	if A.At(1, 2) != 36 {
		Te.Errorf("AddVec failed:\n%s", A)
	}
	A.SubVec(A, row)
	if A.At(0, 0) != 1 || A.At(1, 2) != 6 {
		Te.Errorf("SubVec failed:\n%s", A)
	}
}

func TestMulAliased(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	A.Mul(A, gnEye(3))
	if A.At(1, 1) != 5 {
		Te.Errorf("Mul by identity changed the matrix:\n%s", A)
	}
	view := A.View(0, 0, 1, 3)
	view.Set(0, 0, 100)
	if A.At(0, 0) != 100 {
		Te.Error("changes in a view should be reflected in the matrix")
	}
}

/*
 * kabsch.go, part of molfit.
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
	"math"

	chem "github.com/molfit/molfit"
	v3 "github.com/molfit/molfit/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//rankTol is the smallest ratio between the second and the first singular
//values of the covariance matrix for which the superposition is considered
//well determined.
const rankTol = 1e-9

//Result contains the outcome of a superposition.
type Result struct {
	RMSD        float64
	Rotation    *mat.Dense //3x3, proper and orthonormal
	Translation *v3.Matrix //1x3
	N           int        //number of pairs used
	//Degenerate is true when the points used were collinear, coincident or
	//less than 3. The rotation is still a valid one, but it is not unique.
	Degenerate bool
}

//String returns a short description of the result.
func (R *Result) String() string {
	s := fmt.Sprintf("RMSD: %.3f A over %d pairs", R.RMSD, R.N)
	if R.Degenerate {
		s += " (degenerate)"
	}
	return s
}

//Apply returns a new matrix with the transformation of R applied
//to each row of P.
func (R *Result) Apply(P *v3.Matrix) *v3.Matrix {
	return applyTo(P, R.Rotation, R.Translation)
}

//Kabsch returns the rotation and translation that, applied to the rows of
//P, minimize the RMSD to the corresponding rows of Q. The transformation
//is x' = R x + t for a point x, i.e. P*Rᵗ + t for the whole matrix.
//Rank-deficient inputs are not errors: the result is flagged as Degenerate.
func Kabsch(P, Q *v3.Matrix) (*Result, error) {
	if err := checkPair(P, Q, "moving", "reference"); err != nil {
		return nil, chem.ErrDecorate(err, "Kabsch")
	}
	n := P.NVecs()
	pbar := centroid(P)
	qbar := centroid(Q)
	Pc := v3.Zeros(n)
	Pc.SubVec(P, pbar)
	Qc := v3.Zeros(n)
	Qc.SubVec(Q, qbar)

	H := mat.NewDense(3, 3, nil)
	H.Mul(Pc.T(), Qc.Dense)
	var svd mat.SVD
	var U, V mat.Dense
	degenerate := n < 3
	if ok := svd.Factorize(H, mat.SVDFull); ok {
		svd.UTo(&U)
		svd.VTo(&V)
		s := svd.Values(nil)
		if s[0] == 0 || s[1] <= rankTol*s[0] {
			degenerate = true
		}
	} else {
		//only happens for non-finite input, which checkPair rules out.
		U.CloneFrom(eye())
		V.CloneFrom(eye())
		degenerate = true
	}
	var VUt mat.Dense
	VUt.Mul(&V, U.T())
	d := 1.0
	if mat.Det(&VUt) < 0 {
		d = -1
	}
	D := mat.NewDiagDense(3, []float64{1, 1, d})
	var VD mat.Dense
	VD.Mul(&V, D)
	rot := mat.NewDense(3, 3, nil)
	rot.Mul(&VD, U.T())

	//t = qbar - R*pbar, with row vectors.
	trans := v3.Zeros(1)
	trans.Mul(pbar, rot.T())
	trans.Scale(-1, trans.Dense)
	trans.Add(trans.Dense, qbar.Dense)

	moved := applyTo(P, rot, trans)
	rmsd, err := RMSD(moved, Q)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Kabsch")
	}
	if degenerate {
		log.Printf("align: the %d points superimposed are collinear, coincident or too few; the rotation is not unique", n)
	}
	return &Result{RMSD: rmsd, Rotation: rot, Translation: trans, N: n, Degenerate: degenerate}, nil
}

//RMSD returns the root of the mean square deviation between the rows
//of a and b.
func RMSD(a, b *v3.Matrix) (float64, error) {
	if err := checkPair(a, b, "a", "b"); err != nil {
		return 0, chem.ErrDecorate(err, "RMSD")
	}
	n := a.NVecs()
	var sum float64
	for i := 0; i < n; i++ {
		d := floats.Distance(a.RawRowView(i), b.RawRowView(i), 2)
		sum += d * d
	}
	return math.Sqrt(sum / float64(n)), nil
}

//checkPair returns an AlignmentError unless a and b are non-empty,
//finite and of the same size.
func checkPair(a, b *v3.Matrix, aname, bname string) error {
	for _, m := range []struct {
		name string
		v    *v3.Matrix
	}{{aname, a}, {bname, b}} {
		if m.v == nil || m.v.Dense == nil || m.v.IsEmpty() {
			return chem.NewAlignmentError(m.name, "no coordinates")
		}
		if _, c := m.v.Dims(); c != 3 {
			return chem.NewAlignmentError(m.name, "%d columns, 3 expected", c)
		}
		for i := 0; i < m.v.NVecs(); i++ {
			for _, x := range m.v.RawRowView(i) {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					return chem.NewAlignmentError(m.name, "non-finite coordinate in point %d", i)
				}
			}
		}
	}
	if a.NVecs() != b.NVecs() {
		return chem.NewAlignmentError(bname, "%d points, %d expected", b.NVecs(), a.NVecs())
	}
	return nil
}

//centroid returns the geometric center of the rows of A as a 1x3 matrix.
func centroid(A *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	col := make([]float64, A.NVecs())
	for j := 0; j < 3; j++ {
		mat.Col(col, j, A)
		c.Set(0, j, stat.Mean(col, nil))
	}
	return c
}

//applyTo returns a new matrix with x' = R x + t applied to each row of A.
func applyTo(A *v3.Matrix, R mat.Matrix, t *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(A.NVecs())
	ret.Mul(A, R.T())
	ret.AddVec(ret, t)
	return ret
}

func eye() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

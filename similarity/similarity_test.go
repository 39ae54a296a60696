/*
 * similarity_test.go, part of molfit.
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

package similarity

import (
	"errors"
	"math"
	"testing"

	chem "github.com/molfit/molfit"
	v3 "github.com/molfit/molfit/v3"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-6

//helix returns n points along an ideal alpha helix trace.
func helix(n int) *v3.Matrix {
	m := v3.Zeros(n)
	for i := 0; i < n; i++ {
		a := float64(i) * 100 * math.Pi / 180
		m.SetVec(i, [3]float64{2.3 * math.Cos(a), 2.3 * math.Sin(a), 1.5 * float64(i)})
	}
	return m
}

//moved returns A turned around x and shifted.
func moved(A *v3.Matrix) *v3.Matrix {
	c, s := math.Cos(0.8), math.Sin(0.8)
	R := mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, -s, 0, s, c})
	ret := v3.Zeros(A.NVecs())
	ret.Mul(A, R.T())
	t, _ := v3.NewMatrix([]float64{4, -2, 7})
	ret.AddVec(ret, t)
	return ret
}

func TestIdenticalSets(Te *testing.T) {
	P := helix(30)
	for _, Q := range []*v3.Matrix{P, moved(P)} {
		S, err := Compare(P, Q)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(S.TM-1) > tol || math.Abs(S.GDTTS-100) > tol || math.Abs(S.GDTHA-100) > tol {
			Te.Errorf("identical sets should score perfectly: %s", S)
		}
		if S.RMSD > tol || S.GMD > tol || S.GMV > tol || S.N != 30 {
			Te.Errorf("identical sets should not deviate: %s", S)
		}
	}
}

func TestDifferentSets(Te *testing.T) {
	P := helix(30)
	Q := moved(P)
	//unwind the last third of the helix
	for i := 20; i < 30; i++ {
		v := Q.Vec(i)
		v[0] += float64(i-19) * 1.5
		Q.SetVec(i, v)
	}
	S, err := Compare(P, Q)
	if err != nil {
		Te.Fatal(err)
	}
	if S.TM >= 1 || S.TM <= 0 {
		Te.Errorf("TM-score out of range: %f", S.TM)
	}
	if S.GDTHA > S.GDTTS {
		Te.Errorf("GDT-HA %f can't be larger than GDT-TS %f", S.GDTHA, S.GDTTS)
	}
	if S.GMD < 1 || S.GMV < tol {
		Te.Errorf("the changes should be detected: %s", S)
	}
	tm, err := TMScore(P, Q)
	if err != nil || tm != S.TM {
		Te.Errorf("TMScore and Compare disagree: %f %f %v", tm, S.TM, err)
	}
	ha, err := GDT(P, Q, true)
	if err != nil || ha != S.GDTHA {
		Te.Errorf("GDT and Compare disagree: %f %f %v", ha, S.GDTHA, err)
	}
}

func TestD0(Te *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 0.5},
		{15, 0.5},
		{19, 0.5},
		{100, 3.652},
	}
	for _, test := range tests {
		if d := D0(test.n); math.Abs(d-test.want) > 1e-3 {
			Te.Errorf("D0(%d) = %f, want %f", test.n, d, test.want)
		}
	}
	if s := tmScore([]float64{0.5}); math.Abs(s-0.5) > tol {
		Te.Errorf("a point at d0 should score 0.5, got %f", s)
	}
}

func TestGDTCutoffs(Te *testing.T) {
	d := []float64{0.3, 0.8, 1.5, 3, 10}
	if ts := gdt(d, tsCutoffs); math.Abs(ts-65) > tol {
		Te.Errorf("GDT-TS %f, want 65", ts)
	}
	if ha := gdt(d, haCutoffs); math.Abs(ha-50) > tol {
		Te.Errorf("GDT-HA %f, want 50", ha)
	}
}

func TestGMD(Te *testing.T) {
	P, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0, 0, 2, 0})
	Q, _ := v3.NewMatrix([]float64{0, 0, 0, 1.5, 0, 0, 0, 2, 0})
	g, err := GMD(P, Q)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(g-0.5) > tol {
		Te.Errorf("GMD %f, want 0.5", g)
	}
}

func TestGMV(Te *testing.T) {
	P := helix(6)
	Q := moved(P)
	v := Q.Vec(5)
	v[2] += 2
	Q.SetVec(5, v)
	g, err := GMV(P, Q)
	if err != nil {
		Te.Fatal(err)
	}
	//only the windows with the last point deviate
	first, err := GMV(P.View(0, 0, 5, 3), Q.View(0, 0, 5, 3))
	if err != nil {
		Te.Fatal(err)
	}
	if first > tol || g < 0.1 {
		Te.Errorf("wrong GMV: %f for the first 5 points, %f for all", first, g)
	}
	//less than 4 points are superimposed together
	short, err := GMV(P.View(0, 0, 3, 3), Q.View(0, 0, 3, 3))
	if err != nil || short > tol {
		Te.Errorf("3 rigidly moved points should give 0, got %f, %v", short, err)
	}
}

func TestJudge(Te *testing.T) {
	S := &Scores{GMD: 0.2, GMV: 0.2, RMSD: 0.2, TM: 0.7, GDTTS: 90, GDTHA: 90}
	//resolutions of 1 A give a 0.2 A error range
	if v := S.Judge(1, 1, nil); !v.All() {
		Te.Errorf("scores on the thresholds should be similar: %s", v)
	}
	tests := []struct {
		name  string
		set   func(S *Scores)
		check func(v *Verdict) bool
	}{
		{"GMD", func(S *Scores) { S.GMD = 0.2001 }, func(v *Verdict) bool { return v.GMD }},
		{"GMV", func(S *Scores) { S.GMV = 0.2001 }, func(v *Verdict) bool { return v.GMV }},
		{"RMSD", func(S *Scores) { S.RMSD = 0.2001 }, func(v *Verdict) bool { return v.RMSD }},
		{"TM", func(S *Scores) { S.TM = 0.6999 }, func(v *Verdict) bool { return v.TM }},
		{"GDT-TS", func(S *Scores) { S.GDTTS = 89.99 }, func(v *Verdict) bool { return v.GDTTS }},
		{"GDT-HA", func(S *Scores) { S.GDTHA = 89.99 }, func(v *Verdict) bool { return v.GDTHA }},
	}
	for _, test := range tests {
		c := *S
		test.set(&c)
		v := c.Judge(1, 1, nil)
		if test.check(v) || v.All() {
			Te.Errorf("%s: a score past the threshold should not be similar: %s", test.name, v)
		}
	}
	strict := &Thresholds{GMD: 0.05, GMV: 0.05, RMSD: 0.05, TM: 0.9, GDT: 95}
	if v := S.Judge(1, 1, strict); v.GMD || v.TM || v.GDTHA {
		Te.Errorf("custom thresholds not used: %s", v)
	}
	if v := S.Judge(0, 0, nil); v.RMSD || !v.TM {
		Te.Errorf("unknown resolutions should only accept exact distances: %s", v)
	}
}

func TestSimilar(Te *testing.T) {
	P := helix(30)
	S, v, err := Similar(P, moved(P), 1.5, 2.0, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !v.All() || S.N != 30 {
		Te.Errorf("a rigidly moved set should be similar: %s %s", S, v)
	}
	var aerr *chem.AlignmentError
	if _, _, err := Similar(P, P, -1, 2, nil); !errors.As(err, &aerr) || aerr.Arg != "resP" {
		Te.Errorf("expected an AlignmentError for resP, got %v", err)
	}
}

func TestErrors(Te *testing.T) {
	P := helix(5)
	Q := helix(6)
	var aerr *chem.AlignmentError
	if _, err := Compare(P, Q); !errors.As(err, &aerr) {
		Te.Errorf("expected an AlignmentError, got %v", err)
	}
	if _, err := GMD(nil, Q); !errors.As(err, &aerr) || aerr.Arg != "P" {
		Te.Errorf("expected an AlignmentError for P, got %v", err)
	}
	if _, err := GMV(P, nil); !errors.As(err, &aerr) || aerr.Arg != "Q" {
		Te.Errorf("expected an AlignmentError for Q, got %v", err)
	}
}

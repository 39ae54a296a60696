/*
 * similarity.go, part of molfit.
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

/*
Package similarity scores how alike two sets of corresponding points are.

TMScore, GDT and GMV superimpose the first set on the second with the
Kabsch algorithm before measuring. GMD compares internal distances and
needs no superposition. Similar turns the scores into yes/no verdicts,
scaling the distance thresholds with the resolution of the structures.
*/
package similarity

import (
	"fmt"
	"math"

	chem "github.com/molfit/molfit"
	"github.com/molfit/molfit/align"
	v3 "github.com/molfit/molfit/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//GDT distance cutoffs, in A.
var (
	tsCutoffs = []float64{1, 2, 4, 8}
	haCutoffs = []float64{0.5, 1, 2, 4}
)

//minD0 is the smallest TM-score distance scale. Without it, the scale
//becomes zero or negative for sets of 19 points or less.
const minD0 = 0.5

//gmvWindow is the number of consecutive points superimposed by GMV.
const gmvWindow = 4

//Scores collects all the measures this package implements.
type Scores struct {
	N     int
	RMSD  float64 //after superposition
	TM    float64
	GDTTS float64
	GDTHA float64
	GMD   float64
	GMV   float64
}

func (S *Scores) String() string {
	return fmt.Sprintf("N: %d RMSD: %.3f TM-score: %.4f GDT-TS: %.2f GDT-HA: %.2f GMD: %.3f GMV: %.3f",
		S.N, S.RMSD, S.TM, S.GDTTS, S.GDTHA, S.GMD, S.GMV)
}

//Compare computes all the scores for P superimposed on Q.
func Compare(P, Q *v3.Matrix) (*Scores, error) {
	d, res, err := distances(P, Q)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Compare")
	}
	S := &Scores{N: res.N, RMSD: res.RMSD}
	S.TM = tmScore(d)
	S.GDTTS = gdt(d, tsCutoffs)
	S.GDTHA = gdt(d, haCutoffs)
	S.GMD = gmd(P, Q)
	if S.GMV, err = GMV(P, Q); err != nil {
		return nil, chem.ErrDecorate(err, "Compare")
	}
	return S, nil
}

//Thresholds decide when two sets are similar. The GMD, GMV and RMSD
//thresholds are multiplied by the sum of the resolutions of both
//structures to give the largest deviation, in A, allowed for each.
//TM and GDT are minimum scores.
type Thresholds struct {
	GMD  float64
	GMV  float64
	RMSD float64
	TM   float64
	GDT  float64 //percentage, for both GDT-TS and GDT-HA
}

//DefaultThresholds returns 0.1 for the distance measures (Brunger, 1992),
//0.7 for the TM-score and 90 for GDT.
func DefaultThresholds() *Thresholds {
	return &Thresholds{GMD: 0.1, GMV: 0.1, RMSD: 0.1, TM: 0.7, GDT: 90}
}

//Verdict tells which measures consider two sets similar.
type Verdict struct {
	GMD   bool
	GMV   bool
	RMSD  bool
	TM    bool
	GDTTS bool
	GDTHA bool
}

//All reports whether every measure considers the sets similar.
func (V *Verdict) All() bool {
	return V.GMD && V.GMV && V.RMSD && V.TM && V.GDTTS && V.GDTHA
}

func (V *Verdict) String() string {
	yn := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprintf("similar by GMD: %s GMV: %s RMSD: %s TM-score: %s GDT-TS: %s GDT-HA: %s",
		yn(V.GMD), yn(V.GMV), yn(V.RMSD), yn(V.TM), yn(V.GDTTS), yn(V.GDTHA))
}

//Judge compares S with the thresholds t for two structures of resolutions
//resP and resQ, in A. If t is nil, DefaultThresholds are used. With unknown
//(zero) resolutions the distance measures only accept exact matches.
func (S *Scores) Judge(resP, resQ float64, t *Thresholds) *Verdict {
	if t == nil {
		t = DefaultThresholds()
	}
	res := resP + resQ
	return &Verdict{
		GMD:   S.GMD <= res*t.GMD,
		GMV:   S.GMV <= res*t.GMV,
		RMSD:  S.RMSD <= res*t.RMSD,
		TM:    S.TM >= t.TM,
		GDTTS: S.GDTTS >= t.GDT,
		GDTHA: S.GDTHA >= t.GDT,
	}
}

//Similar computes the scores of P superimposed on Q and judges them. resP
//and resQ are the resolutions of the structures P and Q come from.
func Similar(P, Q *v3.Matrix, resP, resQ float64, t *Thresholds) (*Scores, *Verdict, error) {
	for _, r := range []struct {
		name string
		v    float64
	}{{"resP", resP}, {"resQ", resQ}} {
		if r.v < 0 || math.IsNaN(r.v) || math.IsInf(r.v, 0) {
			return nil, nil, chem.NewAlignmentError(r.name, "invalid resolution %g", r.v)
		}
	}
	S, err := Compare(P, Q)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Similar")
	}
	return S, S.Judge(resP, resQ, t), nil
}

//TMScore returns the TM-score of P superimposed on Q. It is 1 for identical
//sets and tends to 0 for unrelated ones. The distance scale d0 depends only on
//the number of points L: d0 = 1.24 cbrt(L-15) - 1.8, but never less than 0.5.
func TMScore(P, Q *v3.Matrix) (float64, error) {
	d, _, err := distances(P, Q)
	if err != nil {
		return 0, chem.ErrDecorate(err, "TMScore")
	}
	return tmScore(d), nil
}

//GDT returns the global distance test score of P superimposed on Q, as a
//percentage: the average fraction of points closer than 1, 2, 4 and 8 A to
//their counterparts, or 0.5, 1, 2 and 4 A if highAccuracy is true.
func GDT(P, Q *v3.Matrix, highAccuracy bool) (float64, error) {
	d, _, err := distances(P, Q)
	if err != nil {
		return 0, chem.ErrDecorate(err, "GDT")
	}
	if highAccuracy {
		return gdt(d, haCutoffs), nil
	}
	return gdt(d, tsCutoffs), nil
}

//GMD returns the global maximum distance difference: the largest change,
//between P and Q, of the distance between any two points of the same set.
func GMD(P, Q *v3.Matrix) (float64, error) {
	if err := check(P, Q); err != nil {
		return 0, chem.ErrDecorate(err, "GMD")
	}
	return gmd(P, Q), nil
}

//GMV returns the largest RMSD obtained by superimposing each run of 4
//consecutive points of P on the same run of Q. Sets of less than 4 points
//are superimposed as a whole.
func GMV(P, Q *v3.Matrix) (float64, error) {
	if err := check(P, Q); err != nil {
		return 0, chem.ErrDecorate(err, "GMV")
	}
	n := P.NVecs()
	w := gmvWindow
	if n < w {
		w = n
	}
	var worst float64
	for i := 0; i+w <= n; i++ {
		res, err := align.Kabsch(P.View(i, 0, w, 3), Q.View(i, 0, w, 3))
		if err != nil {
			return 0, chem.ErrDecorate(err, "GMV")
		}
		worst = math.Max(worst, res.RMSD)
	}
	return worst, nil
}

//distances superimposes P on Q and returns the distance between each
//pair of points after the superposition.
func distances(P, Q *v3.Matrix) ([]float64, *align.Result, error) {
	if err := check(P, Q); err != nil {
		return nil, nil, err
	}
	res, err := align.Kabsch(P, Q)
	if err != nil {
		return nil, nil, err
	}
	moved := res.Apply(P)
	d := make([]float64, P.NVecs())
	for i := range d {
		d[i] = floats.Distance(moved.RawRowView(i), Q.RawRowView(i), 2)
	}
	return d, res, nil
}

//D0 returns the TM-score distance scale for n points.
func D0(n int) float64 {
	return math.Max(1.24*math.Cbrt(float64(n-15))-1.8, minD0)
}

func tmScore(d []float64) float64 {
	d0 := D0(len(d))
	s := make([]float64, len(d))
	for i, v := range d {
		r := v / d0
		s[i] = 1 / (1 + r*r)
	}
	return stat.Mean(s, nil)
}

func gdt(d []float64, cutoffs []float64) float64 {
	var under int
	for _, c := range cutoffs {
		for _, v := range d {
			if v <= c {
				under++
			}
		}
	}
	return 100 * float64(under) / float64(len(cutoffs)*len(d))
}

func gmd(P, Q *v3.Matrix) float64 {
	n := P.NVecs()
	var worst float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dp := floats.Distance(P.RawRowView(i), P.RawRowView(j), 2)
			dq := floats.Distance(Q.RawRowView(i), Q.RawRowView(j), 2)
			worst = math.Max(worst, math.Abs(dp-dq))
		}
	}
	return worst
}

//check returns an AlignmentError unless P and Q are non-empty sets
//of the same size.
func check(P, Q *v3.Matrix) error {
	switch {
	case P == nil || P.Dense == nil || P.IsEmpty():
		return chem.NewAlignmentError("P", "no points")
	case Q == nil || Q.Dense == nil || Q.IsEmpty():
		return chem.NewAlignmentError("Q", "no points")
	case P.NVecs() != Q.NVecs():
		return chem.NewAlignmentError("Q", "%d points, %d expected", Q.NVecs(), P.NVecs())
	}
	return nil
}

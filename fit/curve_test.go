// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"
	"testing"

	"github.com/aclements/go-massfit/dist"
)

// curveTruth is a Behroozi+13-like halo mass function at z=0.
var curveTruth = CurveParams{LogPivot: 14.5, Alpha: -1.85, Beta: 0.72, LnNorm: -40}

var curveBounds = CurveBounds{
	LogPivot: Interval{13, 16},
	Alpha:    Interval{-2, -1.3},
	Beta:     Interval{0.1, 5},
	LnNorm:   Interval{-50, 0},
}

// synthCurve tabulates the exact MRP curve on a log-spaced mass grid.
func synthCurve(n int) (ms, dndm []float64) {
	ms = make([]float64, n)
	for i := range ms {
		ms[i] = math.Pow(10, 10+5*float64(i)/float64(n-1))
	}
	return ms, dist.MRPEach(ms, curveTruth.LogPivot, curveTruth.Alpha, curveTruth.Beta, curveTruth.LnNorm)
}

func TestFitCurveRecovery(t *testing.T) {
	ms, dndm := synthCurve(51)
	guess := CurveParams{LogPivot: 14, Alpha: -1.9, Beta: 0.8, LnNorm: -38}
	res, err := FitCurve(ms, dndm, guess, curveBounds, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("fit did not converge: %v after %d evals", res.Status, res.Evals)
	}
	if res.Objective > 1e-4 {
		t.Errorf("residual sum of squares = %v on exact data, want ≈ 0", res.Objective)
	}
	p := res.Params
	if math.Abs(p.LogPivot-curveTruth.LogPivot) > 0.05 {
		t.Errorf("LogPivot = %v, want %v", p.LogPivot, curveTruth.LogPivot)
	}
	if math.Abs(p.Alpha-curveTruth.Alpha) > 0.05 {
		t.Errorf("Alpha = %v, want %v", p.Alpha, curveTruth.Alpha)
	}
	if math.Abs(p.Beta-curveTruth.Beta) > 0.05 {
		t.Errorf("Beta = %v, want %v", p.Beta, curveTruth.Beta)
	}
	if math.Abs(p.LnNorm-curveTruth.LnNorm) > 0.3 {
		t.Errorf("LnNorm = %v, want %v", p.LnNorm, curveTruth.LnNorm)
	}
}

func TestFitCurveIntegralConstraint(t *testing.T) {
	ms, dndm := synthCurve(101)
	guess := CurveParams{LogPivot: 14, Alpha: -1.9, Beta: 0.8, LnNorm: -38}
	res, err := FitCurve(ms, dndm, guess, curveBounds, &CurveOptions{SigmaInteg: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("fit did not converge: %v", res.Status)
	}
	// The soft constraint is consistent with exact data up to the
	// discretization of the integral, so recovery only loosens.
	p := res.Params
	if math.Abs(p.LogPivot-curveTruth.LogPivot) > 0.2 {
		t.Errorf("LogPivot = %v, want ≈ %v", p.LogPivot, curveTruth.LogPivot)
	}
	if math.Abs(p.Alpha-curveTruth.Alpha) > 0.1 {
		t.Errorf("Alpha = %v, want ≈ %v", p.Alpha, curveTruth.Alpha)
	}
	if math.Abs(p.Beta-curveTruth.Beta) > 0.2 {
		t.Errorf("Beta = %v, want ≈ %v", p.Beta, curveTruth.Beta)
	}
	if math.Abs(p.LnNorm-curveTruth.LnNorm) > 1 {
		t.Errorf("LnNorm = %v, want ≈ %v", p.LnNorm, curveTruth.LnNorm)
	}
}

func TestFitCurveValidation(t *testing.T) {
	ms, dndm := synthCurve(11)
	guess := CurveParams{LogPivot: 14, Alpha: -1.9, Beta: 0.8, LnNorm: -38}

	if _, err := FitCurve(ms[:5], dndm, guess, curveBounds, nil); err == nil {
		t.Error("FitCurve accepted mismatched lengths")
	}
	if _, err := FitCurve(ms[:2], dndm[:2], guess, curveBounds, nil); err == nil {
		t.Error("FitCurve accepted a 2-point curve")
	}

	rev := []float64{1e10, 1e9, 1e11}
	if _, err := FitCurve(rev, dndm[:3], guess, curveBounds, nil); err == nil {
		t.Error("FitCurve accepted non-increasing masses")
	}

	bad := append([]float64(nil), dndm...)
	bad[3] = 0
	if _, err := FitCurve(ms, bad, guess, curveBounds, nil); err == nil {
		t.Error("FitCurve accepted a zero density")
	}

	outside := guess
	outside.Beta = 6
	if _, err := FitCurve(ms, dndm, outside, curveBounds, nil); err == nil {
		t.Error("FitCurve accepted a guess outside bounds")
	}
}

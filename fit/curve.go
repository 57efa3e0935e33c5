// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/optimize"

	"github.com/aclements/go-massfit/dist"
)

// CurveParams is the four-parameter MRP description of a dn/dm curve:
// the log10 pivot mass, the power-law index, the cut-off sharpness,
// and the natural log of the overall normalization.
type CurveParams struct {
	LogPivot, Alpha, Beta, LnNorm float64
}

// CurveBounds is the box constraint for FitCurve.
type CurveBounds struct {
	LogPivot, Alpha, Beta, LnNorm Interval
}

func (b CurveBounds) validate() error {
	if err := checkInterval("LogPivot", b.LogPivot); err != nil {
		return err
	}
	if err := checkInterval("Alpha", b.Alpha); err != nil {
		return err
	}
	if err := checkInterval("Beta", b.Beta); err != nil {
		return err
	}
	return checkInterval("LnNorm", b.LnNorm)
}

func (b CurveBounds) excess(p CurveParams) float64 {
	return b.LogPivot.excess(p.LogPivot) + b.Alpha.excess(p.Alpha) +
		b.Beta.excess(p.Beta) + b.LnNorm.excess(p.LnNorm)
}

// CurveOptions are optional knobs for FitCurve. The zero value fits
// all four parameters to the curve alone, truncated below at the
// smallest tabulated mass and unbounded above.
type CurveOptions struct {
	// SigmaInteg, when positive, adds a soft constraint tying the
	// normalization to the mass-weighted integral of the data:
	// the squared integral mismatch divided by 2·SigmaInteg² is
	// added to the residual sum of squares. Smaller values bind
	// the normalization more tightly.
	SigmaInteg float64

	// MassScale is the exponent s of the mass weighting m^s used
	// by the integral constraint. If zero, 1 is used.
	MassScale float64

	// LogMax is the log10 upper truncation bound used by the
	// integral constraint's pdf normalization. If zero, +Inf is
	// used, which is slightly cheaper and correct whenever the
	// tabulated masses already reach past the cut-off.
	LogMax float64
}

// A CurveResult is the outcome of a least-squares curve fit.
type CurveResult struct {
	// Params is the parameter vector at the found optimum.
	Params CurveParams

	// Objective is the objective value at Params: the residual
	// sum of squares in ln dn/dm, plus the integral constraint
	// term if one was configured.
	Objective float64

	// Converged reports whether the optimizer terminated at a
	// local optimum rather than exhausting its budget.
	Converged bool

	// Status is the raw optimizer status.
	Status optimize.Status

	// Evals is the number of objective evaluations performed.
	Evals int
}

// FitCurve fits the MRP parameters to a tabulated mass function by
// bounded least squares on ln dn/dm. ms must be strictly increasing
// linear masses and dndm the corresponding densities, all positive.
//
// This is a direct fit to theoretical or binned curves without error
// bars; for fits to individual measurements use Mixture.Fit.
func FitCurve(ms, dndm []float64, guess CurveParams, bounds CurveBounds, opts *CurveOptions) (CurveResult, error) {
	if opts == nil {
		opts = &CurveOptions{}
	}
	if len(ms) != len(dndm) {
		return CurveResult{}, fmt.Errorf("fit: %d masses but %d densities", len(ms), len(dndm))
	}
	if len(ms) < 3 {
		return CurveResult{}, errors.New("fit: need at least 3 curve points")
	}
	for i := range ms {
		if i > 0 && ms[i] <= ms[i-1] {
			return CurveResult{}, errors.New("fit: masses must be strictly increasing")
		}
		if !(dndm[i] > 0) {
			return CurveResult{}, fmt.Errorf("fit: non-positive density %v at mass %v", dndm[i], ms[i])
		}
	}
	if err := bounds.validate(); err != nil {
		return CurveResult{}, err
	}
	if err := checkInBounds("LogPivot", bounds.LogPivot, guess.LogPivot); err != nil {
		return CurveResult{}, err
	}
	if err := checkInBounds("Alpha", bounds.Alpha, guess.Alpha); err != nil {
		return CurveResult{}, err
	}
	if err := checkInBounds("Beta", bounds.Beta, guess.Beta); err != nil {
		return CurveResult{}, err
	}
	if err := checkInBounds("LnNorm", bounds.LnNorm, guess.LnNorm); err != nil {
		return CurveResult{}, err
	}

	// Take logs of the data and do the integral once, up front.
	lndm := make([]float64, len(dndm))
	for i, d := range dndm {
		lndm[i] = math.Log(d)
	}

	s := opts.MassScale
	if s == 0 {
		s = 1
	}
	logMin := math.Log10(ms[0])
	logMax := math.Inf(1)
	if opts.LogMax != 0 {
		logMax = opts.LogMax
	}
	var weightedInteg float64
	if opts.SigmaInteg > 0 {
		f := make([]float64, len(ms))
		for i, m := range ms {
			f[i] = dndm[i] * math.Pow(m, s)
		}
		weightedInteg = integrate.Simpsons(ms, f)
	}

	// errInteg measures how far the candidate normalization is
	// from the one implied by the mass-weighted data integral.
	errInteg := func(p CurveParams) float64 {
		norm := dist.PDFNorm(p.LogPivot, p.Alpha+s, p.Beta, logMin, logMax)
		return p.LnNorm + s*p.LogPivot*math.Ln10 - math.Log(weightedInteg*norm)
	}

	obj := func(v []float64) float64 {
		p := CurveParams{LogPivot: v[0], Alpha: v[1], Beta: v[2], LnNorm: v[3]}
		if ex := bounds.excess(p); ex > 0 {
			return invalidPenalty * (1 + ex)
		}
		sum := 0.0
		for i, m := range ms {
			r := dist.MRPLn(m, p.LogPivot, p.Alpha, p.Beta, p.LnNorm) - lndm[i]
			sum += r * r
		}
		if opts.SigmaInteg > 0 {
			e := errInteg(p)
			sum += e * e / (2 * opts.SigmaInteg * opts.SigmaInteg)
		}
		if math.IsNaN(sum) {
			return invalidPenalty
		}
		return sum
	}

	x0 := []float64{guess.LogPivot, guess.Alpha, guess.Beta, guess.LnNorm}
	res, err := optimize.Minimize(optimize.Problem{Func: obj}, x0, newSettings(), &optimize.NelderMead{})
	if res == nil {
		return CurveResult{}, fmt.Errorf("fit: optimizer: %w", err)
	}
	return CurveResult{
		Params: CurveParams{
			LogPivot: res.X[0],
			Alpha:    res.X[1],
			Beta:     res.X[2],
			LnNorm:   res.X[3],
		},
		Objective: res.F,
		Converged: err == nil && converged(res.Status),
		Status:    res.Status,
		Evals:     res.FuncEvaluations,
	}, nil
}

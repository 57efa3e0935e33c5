// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// MixtureParams is the parameter vector of a two-component mixture
// with a shared pivot mass, e.g. a double-Schechter stellar mass
// function.
type MixtureParams struct {
	// LogPivot is the log10 pivot mass shared by both components.
	LogPivot float64

	// Alpha1 and Alpha2 are the power-law indices of the two
	// components.
	Alpha1, Alpha2 float64

	// Lambda is the mixing weight of component 1, in [0, 1].
	// Component 2 has weight 1-Lambda.
	Lambda float64
}

// MixtureBounds is the box constraint for Mixture.Fit, one closed
// interval per parameter.
type MixtureBounds struct {
	LogPivot, Alpha1, Alpha2, Lambda Interval
}

func (b MixtureBounds) validate() error {
	if err := checkInterval("LogPivot", b.LogPivot); err != nil {
		return err
	}
	if err := checkInterval("Alpha1", b.Alpha1); err != nil {
		return err
	}
	if err := checkInterval("Alpha2", b.Alpha2); err != nil {
		return err
	}
	if err := checkInterval("Lambda", b.Lambda); err != nil {
		return err
	}
	if b.Lambda.Min < 0 || b.Lambda.Max > 1 {
		return errors.New("fit: Lambda bounds must lie within [0, 1]")
	}
	return nil
}

// excess returns the total squared distance of p from the box, zero
// when p is inside.
func (b MixtureBounds) excess(p MixtureParams) float64 {
	return b.LogPivot.excess(p.LogPivot) + b.Alpha1.excess(p.Alpha1) +
		b.Alpha2.excess(p.Alpha2) + b.Lambda.excess(p.Lambda)
}

// A Mixture computes and minimizes the negative log-likelihood of a
// two-component mixture over scalar observations.
type Mixture struct {
	// Component constructs a component distribution for a
	// candidate pivot and index.
	Component ComponentFunc
}

// NegLogLikelihood returns the negative log-likelihood of xs under the
// mixture with parameters p:
//
//	-Σ log(λ·pdf1(x) + (1-λ)·pdf2(x))
//
// It is a pure function of (p, xs). If the mixture density is zero or
// not finite at any point, for example when a measurement lies below
// the components' truncation bound, a very large finite value is
// returned so a driving minimizer rejects the parameter point instead
// of crashing on log of a non-positive number.
func (m Mixture) NegLogLikelihood(p MixtureParams, xs []float64) float64 {
	d1 := m.Component(p.LogPivot, p.Alpha1).PDFEach(xs)
	d2 := m.Component(p.LogPivot, p.Alpha2).PDFEach(xs)
	logs := make([]float64, len(xs))
	for i := range xs {
		mix := p.Lambda*d1[i] + (1-p.Lambda)*d2[i]
		if !(mix > 0) || math.IsInf(mix, 1) {
			return invalidPenalty
		}
		logs[i] = math.Log(mix)
	}
	return -floats.Sum(logs)
}

// A MixtureResult is the outcome of a mixture fit.
type MixtureResult struct {
	// Params is the parameter vector at the found optimum.
	Params MixtureParams

	// NegLogLike is the objective value at Params.
	NegLogLike float64

	// Converged reports whether the optimizer terminated at a
	// local optimum. A false value means the fit ran out of
	// budget and Params is only the best point found; it must not
	// be reported as a good fit.
	Converged bool

	// Status is the raw optimizer status.
	Status optimize.Status

	// Evals is the number of objective evaluations performed.
	Evals int
}

// Fit finds maximum-likelihood mixture parameters for the observations
// xs, starting from guess and constrained to bounds.
//
// The optimum is local only; callers wanting robustness to a poor
// initial guess should re-invoke Fit from several starting points and
// keep the best converged result.
func (m Mixture) Fit(xs []float64, guess MixtureParams, bounds MixtureBounds) (MixtureResult, error) {
	if m.Component == nil {
		return MixtureResult{}, errors.New("fit: nil Component constructor")
	}
	if len(xs) == 0 {
		return MixtureResult{}, errors.New("fit: empty data")
	}
	if err := bounds.validate(); err != nil {
		return MixtureResult{}, err
	}
	if err := checkInBounds("LogPivot", bounds.LogPivot, guess.LogPivot); err != nil {
		return MixtureResult{}, err
	}
	if err := checkInBounds("Alpha1", bounds.Alpha1, guess.Alpha1); err != nil {
		return MixtureResult{}, err
	}
	if err := checkInBounds("Alpha2", bounds.Alpha2, guess.Alpha2); err != nil {
		return MixtureResult{}, err
	}
	if err := checkInBounds("Lambda", bounds.Lambda, guess.Lambda); err != nil {
		return MixtureResult{}, err
	}

	obj := func(v []float64) float64 {
		p := MixtureParams{LogPivot: v[0], Alpha1: v[1], Alpha2: v[2], Lambda: v[3]}
		if ex := bounds.excess(p); ex > 0 {
			// Grow the penalty with distance so the simplex
			// is pushed back toward the box.
			return invalidPenalty * (1 + ex)
		}
		return m.NegLogLikelihood(p, xs)
	}

	x0 := []float64{guess.LogPivot, guess.Alpha1, guess.Alpha2, guess.Lambda}
	res, err := optimize.Minimize(optimize.Problem{Func: obj}, x0, newSettings(), &optimize.NelderMead{})
	if res == nil {
		return MixtureResult{}, fmt.Errorf("fit: optimizer: %w", err)
	}
	return MixtureResult{
		Params: MixtureParams{
			LogPivot: res.X[0],
			Alpha1:   res.X[1],
			Alpha2:   res.X[2],
			Lambda:   res.X[3],
		},
		NegLogLike: res.F,
		Converged:  err == nil && converged(res.Status),
		Status:     res.Status,
		Evals:      res.FuncEvaluations,
	}, nil
}

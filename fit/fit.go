// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fit fits parametric galaxy mass-function models to data.
//
// It provides two fitters: Mixture, a maximum-likelihood fit of a
// two-component shared-pivot mixture to individual log10 mass
// measurements, and FitCurve, a bounded least-squares fit of the four
// MRP parameters to a tabulated dn/dm curve. Both drive gonum's
// Nelder-Mead minimizer inside box constraints.
package fit // import "github.com/aclements/go-massfit/fit"

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// A Density is the capability a mixture component must provide:
// probability density evaluation at a point and, for whole samples, at
// each of a slice of points.
//
// dist.TGGD satisfies Density, but the fitter never depends on the
// component family's internals.
type Density interface {
	PDF(x float64) float64
	PDFEach(xs []float64) []float64
}

// A ComponentFunc constructs a mixture component for a candidate pivot
// and power-law index. The component family's remaining parameters
// (the secondary shape and the truncation bound) are fixed by the
// closure.
type ComponentFunc func(logPivot, alpha float64) Density

// An Interval is a closed parameter range.
type Interval struct {
	Min, Max float64
}

func (iv Interval) valid() bool {
	return iv.Min <= iv.Max
}

func (iv Interval) contains(v float64) bool {
	return iv.Min <= v && v <= iv.Max
}

// excess returns how far v lies outside the interval, squared.
func (iv Interval) excess(v float64) float64 {
	switch {
	case v < iv.Min:
		return (iv.Min - v) * (iv.Min - v)
	case v > iv.Max:
		return (v - iv.Max) * (v - iv.Max)
	}
	return 0
}

// invalidPenalty stands in for the objective value of a parameter
// point the fitter must reject: a non-positive or non-finite mixture
// density, or a point outside the search box. It is large enough to
// dominate any real likelihood but finite, because gonum's Nelder-Mead
// does not behave well with infinities in the initial simplex.
const invalidPenalty = 1e18

// converged reports whether an optimizer status represents
// termination at a local optimum rather than an exhausted budget.
func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	}
	return false
}

// newSettings returns optimizer settings shared by the fitters:
// terminate once the best function value stops improving.
func newSettings() *optimize.Settings {
	return &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 200,
		},
	}
}

func checkInterval(name string, iv Interval) error {
	if !iv.valid() {
		return fmt.Errorf("fit: %s bounds [%v, %v] have min > max", name, iv.Min, iv.Max)
	}
	return nil
}

func checkInBounds(name string, iv Interval, v float64) error {
	if !iv.contains(v) {
		return fmt.Errorf("fit: initial %s %v outside bounds [%v, %v]", name, v, iv.Min, iv.Max)
	}
	return nil
}

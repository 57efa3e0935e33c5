// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathx implements special functions missing from the standard
// math package.
package mathx // import "github.com/aclements/go-massfit/mathx"

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// GammaIncUpper returns the upper incomplete gamma function
//
//	Γ(a, x) = ∫_x^∞ t^(a-1) e^(-t) dt
//
// for real order a and x >= 0.
//
// Unlike the regularized complement in gonum's mathext package, a may
// be zero or negative. This is the regime truncated power laws with a
// steep index live in: the shape (α+1)/β of a truncated generalized
// gamma distribution is negative whenever α < -1. For a <= 0 the
// integral diverges at the origin, so x must be strictly positive.
//
// For a > 0 this is mathext.GammaIncRegComp(a, x) * Γ(a). For a < 0 it
// applies the upward recurrence
//
//	Γ(a, x) = (Γ(a+1, x) - x^a e^(-x)) / a
//
// until the order is positive, and for a = 0 it reduces to the
// exponential integral E1.
func GammaIncUpper(a, x float64) float64 {
	switch {
	case math.IsNaN(a) || math.IsNaN(x) || x < 0:
		return math.NaN()
	case a > 0:
		if x == 0 {
			return math.Gamma(a)
		}
		if math.IsInf(x, 1) {
			return 0
		}
		return mathext.GammaIncRegComp(a, x) * math.Gamma(a)
	case a == 0:
		return ExpIntE1(x)
	default:
		if x == 0 {
			return math.Inf(1)
		}
		if math.IsInf(x, 1) {
			return 0
		}
		return (GammaIncUpper(a+1, x) - math.Pow(x, a)*math.Exp(-x)) / a
	}
}

// ExpIntE1 returns the exponential integral
//
//	E1(x) = ∫_x^∞ e^(-t) / t dt
//
// for x >= 0. E1(0) is +Inf.
//
// The power series (Abramowitz & Stegun 5.1.11) is used for x <= 1 and
// the continued fraction (A&S 5.1.22), evaluated with the modified
// Lentz algorithm, for x > 1.
func ExpIntE1(x float64) float64 {
	const eulerGamma = 0.5772156649015328606065120900824024

	switch {
	case math.IsNaN(x) || x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(1)
	case math.IsInf(x, 1):
		return 0
	}

	if x <= 1 {
		// E1(x) = -γ - ln x + Σ_{n≥1} (-1)^(n+1) x^n / (n·n!)
		sum := 0.0
		p := 1.0
		for n := 1; n <= 60; n++ {
			p *= -x / float64(n)
			d := -p / float64(n)
			sum += d
			if math.Abs(d) <= 1e-17*math.Abs(sum) {
				break
			}
		}
		return sum - eulerGamma - math.Log(x)
	}

	// Continued fraction
	//   E1(x) = e^(-x) / (x + 1 - 1/(x + 3 - 4/(x + 5 - 9/(...))))
	// with a_i = -i² and b_i = x + 2i + 1.
	const tiny = 1e-300
	b := x + 1
	c := 1 / tiny
	d := 1 / b
	f := d
	for i := 1; i <= 200; i++ {
		a := -float64(i) * float64(i)
		b += 2
		d = a*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + a/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		delta := c * d
		f *= delta
		if math.Abs(delta-1) < 1e-15 {
			break
		}
	}
	return math.Exp(-x) * f
}

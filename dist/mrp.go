// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"

	"github.com/aclements/go-massfit/mathx"
)

// MRPShapeLn returns the natural log of the unnormalized MRP shape
//
//	g(m) = (m/H*)^alpha · exp(-(m/H*)^beta)
//
// at linear mass m, with H* = 10^logPivot. This is the dn/dm curve up
// to an overall normalization.
func MRPShapeLn(m, logPivot, alpha, beta float64) float64 {
	y := m / math.Pow(10, logPivot)
	return alpha*math.Log(y) - math.Pow(y, beta)
}

// MRPLn returns the natural log of the MRP mass function
// dn/dm = e^lnNorm · g(m) at linear mass m.
func MRPLn(m, logPivot, alpha, beta, lnNorm float64) float64 {
	return lnNorm + MRPShapeLn(m, logPivot, alpha, beta)
}

// MRPEach evaluates the MRP mass function dn/dm at each mass in ms.
func MRPEach(ms []float64, logPivot, alpha, beta, lnNorm float64) []float64 {
	res := make([]float64, len(ms))
	for i, m := range ms {
		res[i] = math.Exp(MRPLn(m, logPivot, alpha, beta, lnNorm))
	}
	return res
}

// PDFNorm returns the normalization A such that A·g(m) integrates to
// one in linear mass over the truncation window [10^logMin, 10^logMax].
// logMax may be +Inf. Substituting t = (m/H*)^beta,
//
//	∫ g(m) dm = (H*/β) · (Γ(z, tmin) - Γ(z, tmax)),  z = (α+1)/β,
//
// so A = β / (H* · (Γ(z, tmin) - Γ(z, tmax))).
func PDFNorm(logPivot, alpha, beta, logMin, logMax float64) float64 {
	h := math.Pow(10, logPivot)
	z := (alpha + 1) / beta
	tmin := math.Exp(math.Ln10 * beta * (logMin - logPivot))
	q := mathx.GammaIncUpper(z, tmin)
	if !math.IsInf(logMax, 1) {
		tmax := math.Exp(math.Ln10 * beta * (logMax - logPivot))
		q -= mathx.GammaIncUpper(z, tmax)
	}
	return beta / (h * q)
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import "math"

// Polynomial fits for the dependence of the MRP parameters on redshift
// and cosmology, calibrated against the Behroozi et al. (2013) halo
// mass functions over 0 <= z <= 8, 0.2 <= Om0 <= 0.4, 0.7 <= sig8 <=
// 0.9. Murray, Robotham, Power (2016), appendix C.
//
// A flat Planck-like cosmology is om0 = 0.315, sig8 = 0.829.

// LogPivotB13 returns the log10 pivot mass H* at redshift z for matter
// density om0 and fluctuation amplitude sig8.
func LogPivotB13(z, om0, sig8 float64) float64 {
	const mu, sd = 12.214, 1.6385
	return mu + sd*(0.058562+1.4394*sig8+0.39111*om0+0.11159*sig8*z+
		0.056010*z*z+0.42444*sig8*om0*z-0.90369*z-0.0029417*z*z*z)
}

// AlphaB13 returns the low-mass power-law index at redshift z.
func AlphaB13(z, om0, sig8 float64) float64 {
	const mu, sd = -1.9097, 0.026906
	return mu + sd*(2.6172*om0+2.06023*sig8+
		1.4791*math.Pow(2.2142, om0)*math.Pow(0.53400, z)-2.70981-0.19690*z)
}

// BetaB13 returns the cut-off sharpness at redshift z.
func BetaB13(z, om0, sig8 float64) float64 {
	const mu, sd = 0.49961, 0.12913
	return mu + sd*(7.5217*sig8*om0-0.18866-0.36891*z-
		0.071716*math.Pow(0.0029092, z)-3.4453*om0*z*math.Pow(0.71052, z))
}

// LnNormB13 returns the natural log of the MRP normalization, in units
// of the pdf normalization, at redshift z.
func LnNormB13(z, om0, sig8 float64) float64 {
	const mu, sd = -33.268, 7.3593
	return mu + sd*(z+0.0029187*z*z*z-0.15541-1.4657*sig8-
		0.055025*z*z-0.24068*sig8*z-0.33620*om0*z)
}

// ParamsB13 returns all four MRP parameters for the given redshift and
// cosmology.
func ParamsB13(z, om0, sig8 float64) (logPivot, alpha, beta, lnNorm float64) {
	return LogPivotB13(z, om0, sig8), AlphaB13(z, om0, sig8),
		BetaB13(z, om0, sig8), LnNormB13(z, om0, sig8)
}

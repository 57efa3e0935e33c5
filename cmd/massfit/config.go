// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/aclements/go-massfit/fit"
)

// fileConfig mirrors the TOML run configuration. Absent keys keep the
// defaults from defaultFileConfig.
type fileConfig struct {
	Component struct {
		Beta   float64 `toml:"beta"`
		LogMin float64 `toml:"log_min"`
	} `toml:"component"`
	Guess struct {
		LogPivot float64 `toml:"log_pivot"`
		Alpha1   float64 `toml:"alpha1"`
		Alpha2   float64 `toml:"alpha2"`
		Lambda   float64 `toml:"lambda"`
	} `toml:"guess"`
	Bounds struct {
		LogPivot []float64 `toml:"log_pivot"`
		Alpha1   []float64 `toml:"alpha1"`
		Alpha2   []float64 `toml:"alpha2"`
		Lambda   []float64 `toml:"lambda"`
	} `toml:"bounds"`
	Sample struct {
		N1       int     `toml:"n1"`
		N2       int     `toml:"n2"`
		Seed     uint64  `toml:"seed"`
		LogPivot float64 `toml:"log_pivot"`
		Alpha1   float64 `toml:"alpha1"`
		Alpha2   float64 `toml:"alpha2"`
	} `toml:"sample"`
	Curve struct {
		SigmaInteg float64 `toml:"sigma_integ"`
		MassScale  float64 `toml:"mass_scale"`
		LogMax     float64 `toml:"log_max"`
		Guess      struct {
			LogPivot float64 `toml:"log_pivot"`
			Alpha    float64 `toml:"alpha"`
			Beta     float64 `toml:"beta"`
			LnNorm   float64 `toml:"ln_norm"`
		} `toml:"guess"`
		Bounds struct {
			LogPivot []float64 `toml:"log_pivot"`
			Alpha    []float64 `toml:"alpha"`
			Beta     []float64 `toml:"beta"`
			LnNorm   []float64 `toml:"ln_norm"`
		} `toml:"bounds"`
	} `toml:"curve"`
}

// defaultFileConfig is the double-Schechter stellar mass function
// setup for the mixture modes and the mrpy defaults for the curve
// mode.
func defaultFileConfig() fileConfig {
	var c fileConfig
	c.Component.Beta = 1
	c.Component.LogMin = 9
	c.Guess.LogPivot, c.Guess.Alpha1, c.Guess.Alpha2, c.Guess.Lambda = 10, -2, 0, 0.5
	c.Bounds.LogPivot = []float64{9, 12}
	c.Bounds.Alpha1 = []float64{-2.5, -0.5}
	c.Bounds.Alpha2 = []float64{-1.0, 0.5}
	c.Bounds.Lambda = []float64{0, 1}
	c.Sample.N1, c.Sample.N2 = 8337, 1663
	c.Sample.Seed = 123
	c.Sample.LogPivot, c.Sample.Alpha1, c.Sample.Alpha2 = 10.66, -1.47, -0.35
	c.Curve.MassScale = 1
	c.Curve.Guess.LogPivot, c.Curve.Guess.Alpha = 14.5, -1.9
	c.Curve.Guess.Beta, c.Curve.Guess.LnNorm = 0.8, -40
	c.Curve.Bounds.LogPivot = []float64{0, 16}
	c.Curve.Bounds.Alpha = []float64{-2, -1.3}
	c.Curve.Bounds.Beta = []float64{0.1, 5}
	c.Curve.Bounds.LnNorm = []float64{-50, 0}
	return c
}

// config is the validated run configuration.
type config struct {
	componentBeta   float64
	componentLogMin float64

	guess  fit.MixtureParams
	bounds fit.MixtureBounds

	sampleN1, sampleN2                      int
	sampleSeed                              uint64
	samplePivot, sampleAlpha1, sampleAlpha2 float64

	curveGuess  fit.CurveParams
	curveBounds fit.CurveBounds
	curveOpts   fit.CurveOptions
}

func loadConfig(path string) (config, error) {
	raw := defaultFileConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return config{}, fmt.Errorf("load config: %w", err)
		}
	}
	return buildConfig(raw)
}

func buildConfig(raw fileConfig) (config, error) {
	var cfg config

	if raw.Component.Beta <= 0 {
		return config{}, fmt.Errorf("component beta %v must be positive", raw.Component.Beta)
	}
	cfg.componentBeta = raw.Component.Beta
	cfg.componentLogMin = raw.Component.LogMin

	cfg.guess = fit.MixtureParams{
		LogPivot: raw.Guess.LogPivot,
		Alpha1:   raw.Guess.Alpha1,
		Alpha2:   raw.Guess.Alpha2,
		Lambda:   raw.Guess.Lambda,
	}
	var err error
	if cfg.bounds.LogPivot, err = interval("bounds.log_pivot", raw.Bounds.LogPivot); err != nil {
		return config{}, err
	}
	if cfg.bounds.Alpha1, err = interval("bounds.alpha1", raw.Bounds.Alpha1); err != nil {
		return config{}, err
	}
	if cfg.bounds.Alpha2, err = interval("bounds.alpha2", raw.Bounds.Alpha2); err != nil {
		return config{}, err
	}
	if cfg.bounds.Lambda, err = interval("bounds.lambda", raw.Bounds.Lambda); err != nil {
		return config{}, err
	}

	if raw.Sample.N1 < 0 || raw.Sample.N2 < 0 || raw.Sample.N1+raw.Sample.N2 == 0 {
		return config{}, fmt.Errorf("sample sizes n1=%d n2=%d invalid", raw.Sample.N1, raw.Sample.N2)
	}
	cfg.sampleN1, cfg.sampleN2 = raw.Sample.N1, raw.Sample.N2
	cfg.sampleSeed = raw.Sample.Seed
	cfg.samplePivot = raw.Sample.LogPivot
	cfg.sampleAlpha1 = raw.Sample.Alpha1
	cfg.sampleAlpha2 = raw.Sample.Alpha2

	cfg.curveGuess = fit.CurveParams{
		LogPivot: raw.Curve.Guess.LogPivot,
		Alpha:    raw.Curve.Guess.Alpha,
		Beta:     raw.Curve.Guess.Beta,
		LnNorm:   raw.Curve.Guess.LnNorm,
	}
	if cfg.curveBounds.LogPivot, err = interval("curve.bounds.log_pivot", raw.Curve.Bounds.LogPivot); err != nil {
		return config{}, err
	}
	if cfg.curveBounds.Alpha, err = interval("curve.bounds.alpha", raw.Curve.Bounds.Alpha); err != nil {
		return config{}, err
	}
	if cfg.curveBounds.Beta, err = interval("curve.bounds.beta", raw.Curve.Bounds.Beta); err != nil {
		return config{}, err
	}
	if cfg.curveBounds.LnNorm, err = interval("curve.bounds.ln_norm", raw.Curve.Bounds.LnNorm); err != nil {
		return config{}, err
	}
	if raw.Curve.SigmaInteg < 0 || math.IsNaN(raw.Curve.SigmaInteg) {
		return config{}, fmt.Errorf("curve sigma_integ %v must be >= 0", raw.Curve.SigmaInteg)
	}
	cfg.curveOpts = fit.CurveOptions{
		SigmaInteg: raw.Curve.SigmaInteg,
		MassScale:  raw.Curve.MassScale,
		LogMax:     raw.Curve.LogMax,
	}

	return cfg, nil
}

func interval(name string, v []float64) (fit.Interval, error) {
	if len(v) != 2 {
		return fit.Interval{}, fmt.Errorf("%s: want [min, max], got %v", name, v)
	}
	if v[0] > v[1] {
		return fit.Interval{}, fmt.Errorf("%s: min %v > max %v", name, v[0], v[1])
	}
	return fit.Interval{Min: v[0], Max: v[1]}, nil
}

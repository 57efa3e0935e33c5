// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/aclements/go-massfit/dist"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// schechterComponents returns a component constructor for a Schechter
// family (Beta = 1) truncated below at logMin.
func schechterComponents(logMin float64) ComponentFunc {
	return func(logPivot, alpha float64) Density {
		return dist.TGGD{LogPivot: logPivot, Alpha: alpha, Beta: 1, LogMin: logMin}
	}
}

// synthSample draws n1 variates from component 1 and n2 from component
// 2 of a shared-pivot Schechter pair, deterministically for a given
// seed.
func synthSample(n1, n2 int, logPivot, alpha1, alpha2, logMin float64, seed uint64) []float64 {
	src := rand.NewSource(seed)
	c1 := dist.TGGD{LogPivot: logPivot, Alpha: alpha1, Beta: 1, LogMin: logMin, Src: src}
	c2 := dist.TGGD{LogPivot: logPivot, Alpha: alpha2, Beta: 1, LogMin: logMin, Src: src}
	xs := make([]float64, 0, n1+n2)
	for i := 0; i < n1; i++ {
		xs = append(xs, c1.Rand())
	}
	for i := 0; i < n2; i++ {
		xs = append(xs, c2.Rand())
	}
	return xs
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PoissonSlab computes the solution to the Poisson problem in a slab with a unit source
//
//     wall                   wall or insulated
//     ▒ o-------------------o ▒
//     ▒ |   -k ∇²φ = s      | ▒        φ = 0 at walls
//     ▒ o-------------------o ▒        ∂φ/∂x = 0 if insulated
//      x=0                  x=L
//
// With k = s = 1, the wall distance is d = sqrt(|∇φ|² + 2φ) - |∇φ|
type PoissonSlab struct {
	// input
	L         float64 // length along x
	K         float64 // diffusion coefficient
	S         float64 // source
	Insulated bool    // right side is insulated instead of being a wall
}

// Init initialises this structure
func (o *PoissonSlab) Init(prms dbf.Params) (err error) {

	// default values
	o.L = 1.0
	o.K = 1.0
	o.S = 1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "L":
			o.L = p.V
		case "k":
			o.K = p.V
		case "s":
			o.S = p.V
		case "insulated":
			o.Insulated = p.V > 0
		default:
			return chk.Err("PoissonSlab: parameter %q is invalid", p.N)
		}
	}
	if o.L <= 0 || o.K <= 0 {
		return chk.Err("PoissonSlab: L and k must be positive. L=%g, k=%g is invalid", o.L, o.K)
	}
	return
}

// F returns φ at x; it does not depend on t
func (o PoissonSlab) F(t float64, x []float64) float64 {
	c := o.S / (2.0 * o.K)
	if o.Insulated {
		return c * x[0] * (2.0*o.L - x[0])
	}
	return c * x[0] * (o.L - x[0])
}

// Grad returns ∂φ/∂x at x
func (o PoissonSlab) Grad(x []float64) float64 {
	if o.Insulated {
		return o.S / o.K * (o.L - x[0])
	}
	return o.S / (2.0 * o.K) * (o.L - 2.0*x[0])
}

// Dist returns the distance to the nearest wall
func (o PoissonSlab) Dist(x []float64) float64 {
	if o.Insulated {
		return x[0]
	}
	return math.Min(x[0], o.L-x[0])
}

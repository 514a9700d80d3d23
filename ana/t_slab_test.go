// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func Test_slab01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("slab01")

	for _, insulated := range []float64{0, 1} {
		var sol PoissonSlab
		err := sol.Init(dbf.Params{
			&dbf.P{N: "L", V: 2.0},
			&dbf.P{N: "insulated", V: insulated},
		})
		if err != nil {
			tst.Errorf("Init failed:\n%v", err)
			return
		}
		h := 1e-3
		for _, xx := range []float64{0, 0.3, 1, 1.7, 2} {
			x := []float64{xx, 0, 0}
			g := sol.Grad(x)
			d := math.Sqrt(g*g+2*sol.F(0, x)) - math.Abs(g)
			chk.Float64(tst, io.Sf("d(%g)", xx), 1e-14, d, sol.Dist(x))
			xm, xp := []float64{xx - h, 0, 0}, []float64{xx + h, 0, 0}
			lap := (sol.F(0, xp) - 2*sol.F(0, x) + sol.F(0, xm)) / (h * h)
			chk.Float64(tst, io.Sf("-∇²φ(%g)", xx), 1e-7, -lap, 1)
			chk.Float64(tst, io.Sf("∇φ(%g)", xx), 1e-7, g, (sol.F(0, xp)-sol.F(0, xm))/(2*h))
		}
		chk.Float64(tst, "φ(0)", 1e-17, sol.F(0, []float64{0, 0, 0}), 0)
	}

	var sol PoissonSlab
	if err := sol.Init(dbf.Params{&dbf.P{N: "L", V: -1}}); err == nil {
		tst.Errorf("negative length should have failed\n")
	}
	if err := sol.Init(dbf.Params{&dbf.P{N: "E", V: 1}}); err == nil {
		tst.Errorf("unknown parameter should have failed\n")
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import "github.com/cpmech/gosl/chk"

func verbose() {
	chk.Verbose = true
}

// locs implements Locator
type locs map[string]int

func (o locs) Id(name string) int {
	if id, ok := o[name]; ok {
		return id
	}
	return -1
}

func newTestParam() *Param {
	presets := Presets{
		LinSol: LinSol{Family: FamilyNative, Solver: ItSolCg, Precond: PrecondJacobi, NmaxIter: 2500, Eps: 1e-12, OutputFreq: 150},
		Algo:   Algo{NmaxIter: 50, NmaxCumulIter: 10000, Eps: 1e-6},
	}
	p := New(EqUser, VarScalar, BcHomNeumann, locs{"cells": 0, "interior_faces": 1, "boundary_faces": 2, "vertices": 3}, presets)
	p.Eqname = "Poisson"
	return p
}

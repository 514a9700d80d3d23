// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"testing"

	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

func verbose() {
	chk.Verbose = true
}

// linear implements u = 1 + x + 2 y + 3 z
type linear struct{}

func (linear) F(t float64, x []float64) float64 { return 1 + x[0] + 2*x[1] + 3*x[2] }

// newBox returns a unit cube with n³ hexahedra
func newBox(tst *testing.T, n int) *mesh.Mesh {
	m, err := mesh.NewBox(n, n, n, 1, 1, 1)
	if err != nil {
		tst.Fatalf("NewBox failed:\n%v", err)
	}
	return m
}

// newParam returns the parameters of a scalar equation with unit diffusion
func newParam(tst *testing.T, m *mesh.Mesh, scheme string, defaultBC param.BcType) *param.Param {
	p := param.New(param.EqUser, param.VarScalar, defaultBC, m.Locs, param.Presets{})
	p.Eqname = "test"
	if err := p.SetOption(param.KeySpaceScheme, scheme); err != nil {
		tst.Fatalf("SetOption failed:\n%v", err)
	}
	if err := p.Link("diffusion", pty.Unity()); err != nil {
		tst.Fatalf("Link failed:\n%v", err)
	}
	return p
}

// solveDense solves the system with a dense LU factorisation
func solveDense(tst *testing.T, a *sla.Msr, rhs []float64) []float64 {
	n := a.N
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		A.Set(i, i, a.Diag[i])
		for k := a.Idx[i]; k < a.Idx[i+1]; k++ {
			A.Set(i, a.Col[k], a.Val[k])
		}
	}
	var x mat.VecDense
	err := x.SolveVec(A, mat.NewVecDense(n, rhs))
	if _, ok := err.(mat.Condition); err != nil && !ok {
		tst.Fatalf("SolveVec failed:\n%v", err)
	}
	return x.RawVector().Data
}

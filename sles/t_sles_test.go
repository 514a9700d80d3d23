// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"math"
	"testing"

	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func settings(fam param.Family, s param.ItSol, p param.Precond) param.LinSol {
	ls := Presets().LinSol
	ls.Family, ls.Solver, ls.Precond = fam, s, p
	return ls
}

func Test_sles01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sles01. registry and native combinations")

	reg := NewRegistry()
	b, err := reg.Define("u", settings(param.FamilyNative, param.ItSolCg, param.PrecondJacobi), 0)
	require.NoError(tst, err)
	b2, err := reg.Define("u", settings(param.FamilyNative, param.ItSolGmres, param.PrecondPoly1), 1)
	require.NoError(tst, err)
	if b != b2 {
		tst.Errorf("Define must return the existing binding\n")
		return
	}
	chk.String(tst, b2.LinSol.Solver.String(), param.ItSolCg.String())
	chk.Int(tst, "len", reg.Len(), 1)
	if reg.Find("v") != nil {
		tst.Errorf("Find should have returned nil\n")
	}

	for _, s := range []param.ItSol{param.ItSolCg, param.ItSolBicg, param.ItSolGmres, param.ItSolAmg} {
		for _, p := range []param.Precond{param.PrecondJacobi, param.PrecondPoly1} {
			_, err = reg.Define(io.Sf("%v+%v", s, p), settings(param.FamilyNative, s, p), 0)
			require.NoError(tst, err, "%v+%v", s, p)
		}
		for _, p := range []param.Precond{param.PrecondSsor, param.PrecondIlu0, param.PrecondIcc0, param.PrecondAmg, param.PrecondAs} {
			_, err = reg.Define("bad", settings(param.FamilyNative, s, p), 0)
			require.ErrorIs(tst, err, param.ErrUnsupportedSolverCombination, "%v+%v", s, p)
		}
	}
	chk.Int(tst, "len", reg.Len(), 9)
	reg.Free("u")
	chk.Int(tst, "len", reg.Len(), 8)
	if reg.Find("u") != nil {
		tst.Errorf("binding should have been removed\n")
	}
}

func Test_sles02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sles02. native solvers")

	for _, s := range []param.ItSol{param.ItSolCg, param.ItSolBicg, param.ItSolGmres, param.ItSolAmg} {
		conv := 0.0
		if s == param.ItSolBicg || s == param.ItSolGmres {
			conv = 0.5
		}
		a := lap3d(8, conv)
		rhs, xsol := problem(a)
		for _, p := range []param.Precond{param.PrecondJacobi, param.PrecondPoly1} {
			b, err := NewRegistry().Define("u", settings(param.FamilyNative, s, p), 1)
			require.NoError(tst, err)
			x := make([]float64, a.N())
			res, err := b.Solve(a, rhs, x, 1e-10, 1)
			require.NoError(tst, err)
			if chk.Verbose {
				io.Pforan("%-24s: %v in %d iterations. residual = %g\n", b.Name(), res.Code, res.Iters, res.Residual)
			}
			if res.Code != Converged {
				tst.Errorf("%s did not converge: %v\n", b.Name(), res.Code)
				continue
			}
			chk.Array(tst, b.Name(), 1e-8, x, xsol)
			if s != param.ItSolGmres {
				chk.Int(tst, "history", len(b.History), res.Iters+1)
			}
			chk.Int(tst, "nsolves", b.NumSolves, 1)
		}
	}
}

func Test_sles03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sles03. convergence codes")

	a := lap3d(5, 0)
	rhs, xsol := problem(a)
	b, err := NewRegistry().Define("u", settings(param.FamilyNative, param.ItSolCg, param.PrecondJacobi), 0)
	require.NoError(tst, err)

	// exact initial guess
	x := make([]float64, len(xsol))
	copy(x, xsol)
	res, err := b.Solve(a, rhs, x, 1e-10, 1)
	require.NoError(tst, err)
	chk.Int(tst, "iters", res.Iters, 0)
	if res.Code != Converged {
		tst.Errorf("code should be converged: %v\n", res.Code)
	}

	// cap
	b.LinSol.NmaxIter = 2
	b.impl, _ = newNative(b.LinSol)
	x = make([]float64, len(xsol))
	res, err = b.Solve(a, rhs, x, 1e-10, 1)
	require.NoError(tst, err)
	chk.Int(tst, "iters", res.Iters, 2)
	if res.Code != MaxIteration {
		tst.Errorf("code should be max_iteration: %v\n", res.Code)
	}

	// normalisation: a loose criterion stops earlier
	b.LinSol.NmaxIter = 100
	b.impl, _ = newNative(b.LinSol)
	x = make([]float64, len(xsol))
	res1, _ := b.Solve(a, rhs, x, 1e-10, 1)
	x = make([]float64, len(xsol))
	res2, _ := b.Solve(a, rhs, x, 1e-10, 1e6)
	if res2.Iters >= res1.Iters {
		tst.Errorf("normalised residual should stop earlier: %d >= %d\n", res2.Iters, res1.Iters)
	}

	// wrong sizes
	_, err = b.Solve(a, rhs[1:], x, 1e-10, 1)
	require.Error(tst, err)

	// monitor
	var hist []float64
	mon := &monitor{eps: 1e-8, rNorm: 1, nmax: 10, hist: &hist}
	chk.Int(tst, "continue", int(mon.check(0, 1000)), 0)
	if mon.check(1, 1e8) != Diverged {
		tst.Errorf("large residual should diverge\n")
	}
	if mon.check(2, math.NaN()) != Diverged {
		tst.Errorf("NaN residual should diverge\n")
	}
	if mon.check(3, 1e-9) != Converged {
		tst.Errorf("small residual should converge\n")
	}
	if mon.check(10, 1) != MaxIteration {
		tst.Errorf("cap should be reached\n")
	}
	chk.Int(tst, "hist", len(hist), 5)
	chk.String(tst, Breakdown.String(), "breakdown")
}

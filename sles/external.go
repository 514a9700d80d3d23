// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !noexternal

package sles

import (
	"math"

	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/sla"
	"github.com/james-bowman/sparse"
	"github.com/vladimir-ch/iterative"
	"gonum.org/v1/gonum/floats"
)

// the external family is compiled in
const externalAvailable = true

// max number of refinement passes of the external engine
const maxPasses = 10

// external implements the third-party family. The engine solves the correction system
// A d = r₀ and the outer loop refines x until the true residual meets the tolerance.
//  cg           -- split preconditioning: B A Bᵀ y = B r₀ with d = Bᵀ y
//  gmres, bicg  -- right preconditioning: A M⁻¹ y = r₀ with d = M⁻¹ y
type external struct {
	ls    param.LinSol
	a     *csr
	mat   *sparse.CSR
	split splitPrecond
	right precond
	tmp   []float64
}

// newExternal validates the pair and allocates the solver
func newExternal(ls param.LinSol) (o *external, serialOnly bool, err error) {
	o = &external{ls: ls}
	switch ls.Solver {
	case param.ItSolCg:
		switch ls.Precond {
		case param.PrecondJacobi:
			o.split = new(jacobi)
		case param.PrecondSsor:
			o.split, serialOnly = new(ssor), true
		case param.PrecondIcc0:
			o.split, serialOnly = new(icc0), true
		case param.PrecondAmg:
			o.split = &multilevel{smoothed: ls.AmgType == param.AmgSmoothed}
		case param.PrecondAs:
			o.split = new(schwarz)
		default:
			return nil, false, unsupported(ls)
		}
	case param.ItSolGmres, param.ItSolBicg:
		switch ls.Precond {
		case param.PrecondIlu0:
			o.right, serialOnly = new(ilu0), true
		case param.PrecondJacobi:
			o.right = new(blockJacobi)
		default:
			return nil, false, unsupported(ls)
		}
	default:
		return nil, false, unsupported(ls)
	}
	return
}

func (o *external) name() string {
	return "external/" + o.ls.Solver.String() + "+" + o.ls.Precond.String()
}

func (o *external) setup(a *sla.SysMatrix) (err error) {
	o.a = newCsr(a)
	o.mat = sparse.NewCSR(o.a.n, o.a.n, o.a.ptr, o.a.ind, o.a.val)
	o.tmp = make([]float64, o.a.n)
	if o.split != nil {
		return o.split.init(o.a)
	}
	return o.right.init(o.a)
}

func (o *external) solve(b, x []float64, eps, rNorm float64, hist *[]float64) Result {
	n := o.a.n
	r, d := make([]float64, n), make([]float64, n)
	res := o.residual(r, b, x)
	mon := &monitor{eps: eps, rNorm: rNorm, nmax: o.ls.NmaxIter, hist: hist}
	if code := mon.check(0, res); code != 0 {
		return Result{code, 0, res}
	}
	iters := 0
	for pass := 0; pass < maxPasses; pass++ {
		budget := o.ls.NmaxIter - iters
		nit, err := o.correction(d, r, eps*rNorm, budget)
		if err != nil {
			// the engine fails without telemetry, mostly when the budget was spent
			return Result{MaxIteration, iters + budget, res}
		}
		iters += nit
		floats.Add(x, d)
		res = o.residual(r, b, x)
		if code := mon.check(iters, res); code != 0 {
			return Result{code, iters, res}
		}
	}
	return Result{Breakdown, iters, res}
}

// correction solves A d ≈ r with the third-party engine
func (o *external) correction(d, r []float64, tol float64, nmax int) (iters int, err error) {
	if nmax < 1 {
		nmax = 1
	}
	var ops iterative.MatrixOps
	var rhs []float64
	if o.split != nil {
		nb := o.split.size()
		u, v := make([]float64, o.a.n), make([]float64, o.a.n)
		ops.MatVec = func(dst, src []float64) {
			o.split.applyBt(u, src)
			o.mat.MulVecTo(v, false, u)
			o.split.applyB(dst, v)
		}
		rhs = make([]float64, nb)
		o.split.applyB(rhs, r)
	} else {
		ops.MatVec = func(dst, src []float64) {
			o.right.apply(o.tmp, src)
			o.mat.MulVecTo(dst, false, o.tmp)
		}
		rhs = make([]float64, len(r))
		copy(rhs, r)
	}
	nrm := floats.Norm(rhs, 2)
	if nrm == 0 {
		for i := range d {
			d[i] = 0
		}
		return
	}
	settings := iterative.Settings{
		Tolerance:     math.Min(math.Max(tol/nrm, 1e-15), 0.5),
		MaxIterations: nmax,
	}
	var y []float64
	switch {
	case o.split != nil:
		res, e := iterative.LinearSolve(ops, rhs, &iterative.CG{}, settings)
		if e != nil {
			return 0, e
		}
		y, iters = res.X, res.Stats.Iterations
	case o.ls.Solver == param.ItSolGmres:
		res, e := iterative.LinearSolve(ops, rhs, &iterative.GMRES{}, settings)
		if e != nil {
			return 0, e
		}
		y, iters = res.X, res.Stats.Iterations
	default:
		res, e := iterative.LinearSolve(ops, rhs, &iterative.BiCGSTAB{}, settings)
		if e != nil {
			return 0, e
		}
		y, iters = res.X, res.Stats.Iterations
	}
	if o.split != nil {
		o.split.applyBt(d, y)
	} else {
		o.right.apply(d, y)
	}
	return
}

// residual computes r = b - A x using the engine matrix and returns |r|
func (o *external) residual(r, b, x []float64) float64 {
	o.mat.MulVecTo(r, false, x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	return floats.Norm(r, 2)
}

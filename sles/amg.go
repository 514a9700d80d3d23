// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// settings of the aggregation
const (
	amgStrength   = 0.25      // strength of connection threshold
	amgCoarseSize = 40        // stop coarsening below this size
	amgMaxLevels  = 10        // max number of levels
	amgOmega      = 2.0 / 3.0 // damping of Jacobi smoothing and prolongation
	amgNsmooth    = 5         // number of pre- and post-smoothing sweeps
	amgCoarseIter = 1000      // max number of iterations of the coarse solver
)

// level holds one level of an aggregation hierarchy
type level struct {
	a   *csr      // matrix
	p   *rect     // prolongation to this level from the next coarser one
	pt  *rect     // restriction
	inv []float64 // inverse of the diagonal
	r   []float64 // workspace: residual
	e   []float64 // workspace: correction
}

// hierarchy holds the levels of algebraic multigrid, finest first
type hierarchy struct {
	levels []*level
}

// newHierarchy builds the levels by aggregation; smoothed selects smoothed aggregation
func newHierarchy(a *csr, smoothed bool) (o *hierarchy, err error) {
	o = new(hierarchy)
	cur := a
	for len(o.levels) < amgMaxLevels {
		if err = cur.checkDiag(); err != nil {
			return nil, err
		}
		lev := &level{a: cur, inv: make([]float64, cur.n), r: make([]float64, cur.n), e: make([]float64, cur.n)}
		for i, d := range cur.dia {
			lev.inv[i] = 1.0 / d
		}
		o.levels = append(o.levels, lev)
		if cur.n <= amgCoarseSize {
			break
		}
		agg, nc := aggregate(cur)
		if nc == 0 || float64(nc) > 0.9*float64(cur.n) {
			break
		}
		lev.p = tentative(agg, nc)
		if smoothed {
			lev.p = smooth(cur, lev.inv, lev.p)
		}
		lev.pt = lev.p.transpose()
		cur = galerkin(cur, lev.p)
	}
	return
}

// aggregate groups strongly connected nodes; returns the aggregate of each node
func aggregate(a *csr) (agg []int, nc int) {
	n := a.n
	strong := func(i, k int) bool {
		j := a.ind[k]
		return j != i && math.Abs(a.val[k]) >= amgStrength*math.Sqrt(math.Abs(a.dia[i]*a.dia[j]))
	}
	agg = make([]int, n)
	for i := range agg {
		agg[i] = -1
	}

	// pass 1: root nodes whose strong neighbours are free
	for i := 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		free := true
		for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
			if strong(i, k) && agg[a.ind[k]] >= 0 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		agg[i] = nc
		for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
			if strong(i, k) {
				agg[a.ind[k]] = nc
			}
		}
		nc++
	}

	// pass 2: join a neighbouring aggregate
	tmp := append([]int{}, agg...)
	for i := 0; i < n; i++ {
		if agg[i] >= 0 {
			continue
		}
		for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
			if strong(i, k) && agg[a.ind[k]] >= 0 {
				tmp[i] = agg[a.ind[k]]
				break
			}
		}
	}
	agg = tmp

	// pass 3: singletons
	for i := 0; i < n; i++ {
		if agg[i] < 0 {
			agg[i] = nc
			nc++
		}
	}
	return
}

// tentative returns the piecewise constant prolongation
func tentative(agg []int, nc int) (p *rect) {
	n := len(agg)
	p = &rect{nrow: n, ncol: nc, ptr: make([]int, n+1), ind: make([]int, n), val: make([]float64, n)}
	for i, g := range agg {
		p.ptr[i+1] = i + 1
		p.ind[i] = g
		p.val[i] = 1
	}
	return
}

// smooth returns (I - ω D⁻¹ A) P
func smooth(a *csr, inv []float64, p *rect) *rect {
	val := make([]float64, len(a.val))
	for i := 0; i < a.n; i++ {
		for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
			val[k] = -amgOmega * inv[i] * a.val[k]
			if a.ind[k] == i {
				val[k] += 1
			}
		}
	}
	return matMul(a.ptr, a.ind, val, a.n, p)
}

// vcycle improves x for A x = b at level l
//  poly -- use the polynomial smoother instead of damped Jacobi
func (o *hierarchy) vcycle(l int, b, x []float64, poly bool) {
	lev := o.levels[l]
	if l == len(o.levels)-1 {
		coarseSolve(lev.a, lev.inv, b, x)
		return
	}
	for it := 0; it < amgNsmooth; it++ {
		lev.smooth(b, x, poly)
	}
	lev.a.residual(lev.r, b, x)
	next := o.levels[l+1]
	rc := make([]float64, next.a.n)
	ec := make([]float64, next.a.n)
	lev.pt.mulVec(rc, lev.r)
	o.vcycle(l+1, rc, ec, poly)
	lev.p.mulVec(lev.e, ec)
	floats.Add(x, lev.e)
	for it := 0; it < amgNsmooth; it++ {
		lev.smooth(b, x, poly)
	}
}

// smooth performs one smoothing sweep
func (o *level) smooth(b, x []float64, poly bool) {
	o.a.residual(o.r, b, x)
	if !poly {
		for i := range x {
			x[i] += amgOmega * o.inv[i] * o.r[i]
		}
		return
	}
	for i := range o.e {
		o.e[i] = o.inv[i] * o.r[i]
	}
	o.a.mulVec(o.r, o.e)
	for i := range x {
		x[i] += 2*o.e[i] - o.inv[i]*o.r[i]
	}
}

// coarseSolve solves the coarsest system with Jacobi-preconditioned CG
func coarseSolve(a *csr, inv, b, x []float64) {
	n := a.n
	r, z, p, q := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range x {
		x[i] = 0
	}
	copy(r, b)
	tol := 1e-10 * floats.Norm(b, 2)
	if tol == 0 {
		return
	}
	for i := range z {
		z[i] = inv[i] * r[i]
	}
	copy(p, z)
	rz := floats.Dot(r, z)
	for it := 0; it < amgCoarseIter; it++ {
		a.mulVec(q, p)
		pq := floats.Dot(p, q)
		if pq == 0 {
			return
		}
		alpha := rz / pq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		if floats.Norm(r, 2) < tol {
			return
		}
		for i := range z {
			z[i] = inv[i] * r[i]
		}
		rzNew := floats.Dot(r, z)
		floats.AddScaledTo(p, z, rzNew/rz, p)
		rz = rzNew
	}
}

// multilevel implements an additive multilevel preconditioner on an aggregation hierarchy:
//   M⁻¹ = Σ Qₗ Dₗ⁻¹ Qₗᵀ + Q_c A_c⁻¹ Q_cᵀ
// where Qₗ prolongates from level l to the finest one. B stacks Dₗ^-½ Qₗᵀ and L_c⁻¹ Q_cᵀ.
type multilevel struct {
	smoothed bool
	h        *hierarchy
	isq      [][]float64   // 1/sqrt(dᵢ) of each level but the coarsest
	lc       *mat.TriDense // Cholesky factor of the coarsest matrix
	nb       int           // number of rows of B
	x, z     [][]float64   // workspace per level
}

func (o *multilevel) init(a *csr) (err error) {
	o.h, err = newHierarchy(a, o.smoothed)
	if err != nil {
		return
	}
	nl := len(o.h.levels)
	o.isq = make([][]float64, nl-1)
	o.x = make([][]float64, nl)
	o.z = make([][]float64, nl)
	o.nb = 0
	for l, lev := range o.h.levels {
		o.x[l] = make([]float64, lev.a.n)
		o.z[l] = make([]float64, lev.a.n)
		o.nb += lev.a.n
		if l < nl-1 {
			o.isq[l] = invSqrt(lev.a.dia)
		}
	}
	c := o.h.levels[nl-1].a
	sym := mat.NewSymDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		for k := c.ptr[i]; k < c.ptr[i+1]; k++ {
			if j := c.ind[k]; j >= i {
				sym.SetSym(i, j, c.val[k])
			}
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return chk.Err("coarsest matrix with %d rows is not positive definite", c.n)
	}
	o.lc = new(mat.TriDense)
	chol.LTo(o.lc)
	return
}

func (o *multilevel) size() int { return o.nb }

func (o *multilevel) applyB(y, x []float64) {
	nl := len(o.h.levels)
	copy(o.x[0], x)
	off := 0
	for l := 0; l < nl-1; l++ {
		for i, v := range o.x[l] {
			y[off+i] = o.isq[l][i] * v
		}
		off += len(o.x[l])
		o.h.levels[l].pt.mulVec(o.x[l+1], o.x[l])
	}
	xc := o.x[nl-1]
	for i := range xc {
		s := xc[i]
		for j := 0; j < i; j++ {
			s -= o.lc.At(i, j) * y[off+j]
		}
		y[off+i] = s / o.lc.At(i, i)
	}
}

func (o *multilevel) applyBt(x, y []float64) {
	nl := len(o.h.levels)
	off := o.nb - len(o.z[nl-1])
	zc := o.z[nl-1]
	copy(zc, y[off:])
	for i := len(zc) - 1; i >= 0; i-- {
		zc[i] /= o.lc.At(i, i)
		for j := 0; j < i; j++ {
			zc[j] -= o.lc.At(i, j) * zc[i]
		}
	}
	for l := nl - 2; l >= 0; l-- {
		off -= len(o.z[l])
		o.h.levels[l].p.mulVec(o.z[l], o.z[l+1])
		for i := range o.z[l] {
			o.z[l][i] += o.isq[l][i] * y[off+i]
		}
	}
	copy(x, o.z[0])
}

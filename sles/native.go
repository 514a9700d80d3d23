// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"math"

	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/sla"
	"gonum.org/v1/gonum/floats"
)

// restart of GMRES
const gmresRestart = 30

// native implements the in-house family: CG, BiCGStab, GMRES or AMG with a diagonal or a
// first-order polynomial preconditioner
type native struct {
	ls  param.LinSol
	a   *csr
	pc  precond
	amg *hierarchy
}

// newNative validates the pair and allocates the solver
func newNative(ls param.LinSol) (o *native, err error) {
	o = &native{ls: ls}
	switch ls.Precond {
	case param.PrecondJacobi:
		o.pc = new(jacobi)
	case param.PrecondPoly1:
		o.pc = new(poly1)
	default:
		return nil, unsupported(ls)
	}
	switch ls.Solver {
	case param.ItSolCg, param.ItSolBicg, param.ItSolGmres, param.ItSolAmg:
	default:
		return nil, unsupported(ls)
	}
	return
}

func (o *native) name() string {
	return o.ls.Solver.String() + "+" + o.ls.Precond.String()
}

func (o *native) setup(a *sla.SysMatrix) (err error) {
	o.a = newCsr(a)
	if err = o.pc.init(o.a); err != nil {
		return
	}
	if o.ls.Solver == param.ItSolAmg {
		o.amg, err = newHierarchy(o.a, false)
	}
	return
}

func (o *native) solve(b, x []float64, eps, rNorm float64, hist *[]float64) Result {
	mon := &monitor{eps: eps, rNorm: rNorm, nmax: o.ls.NmaxIter, freq: o.ls.OutputFreq, hist: hist}
	switch o.ls.Solver {
	case param.ItSolCg:
		return o.cg(b, x, mon)
	case param.ItSolBicg:
		return o.bicgstab(b, x, mon)
	case param.ItSolGmres:
		return o.gmres(b, x, mon)
	}
	return o.multigrid(b, x, mon)
}

// cg implements the preconditioned conjugate gradient method
func (o *native) cg(b, x []float64, mon *monitor) Result {
	n := o.a.n
	r, z, p, q := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	res := o.a.residual(r, b, x)
	if code := mon.check(0, res); code != 0 {
		return Result{code, 0, res}
	}
	o.pc.apply(z, r)
	copy(p, z)
	rz := floats.Dot(r, z)
	for it := 1; ; it++ {
		o.a.mulVec(q, p)
		pq := floats.Dot(p, q)
		if pq == 0 {
			return Result{Breakdown, it, res}
		}
		alpha := rz / pq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		res = floats.Norm(r, 2)
		if code := mon.check(it, res); code != 0 {
			return Result{code, it, res}
		}
		o.pc.apply(z, r)
		rzNew := floats.Dot(r, z)
		if rz == 0 {
			return Result{Breakdown, it, res}
		}
		floats.AddScaledTo(p, z, rzNew/rz, p)
		rz = rzNew
	}
}

// bicgstab implements the right-preconditioned stabilised bi-conjugate gradient method
func (o *native) bicgstab(b, x []float64, mon *monitor) Result {
	n := o.a.n
	r, rh := make([]float64, n), make([]float64, n)
	p, v := make([]float64, n), make([]float64, n)
	ph, sh, s, t := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	res := o.a.residual(r, b, x)
	if code := mon.check(0, res); code != 0 {
		return Result{code, 0, res}
	}
	copy(rh, r)
	rho, alpha, omega := 1.0, 1.0, 1.0
	for it := 1; ; it++ {
		rhoNew := floats.Dot(rh, r)
		if rhoNew == 0 || omega == 0 {
			return Result{Breakdown, it, res}
		}
		beta := (rhoNew / rho) * (alpha / omega)
		for i := range p {
			p[i] = r[i] + beta*(p[i]-omega*v[i])
		}
		o.pc.apply(ph, p)
		o.a.mulVec(v, ph)
		den := floats.Dot(rh, v)
		if den == 0 {
			return Result{Breakdown, it, res}
		}
		alpha = rhoNew / den
		floats.AddScaledTo(s, r, -alpha, v)
		floats.AddScaled(x, alpha, ph)
		if ns := floats.Norm(s, 2); ns < mon.threshold() {
			copy(r, s)
			res = ns
			return Result{mon.check(it, res), it, res}
		}
		o.pc.apply(sh, s)
		o.a.mulVec(t, sh)
		tt := floats.Dot(t, t)
		if tt == 0 {
			return Result{Breakdown, it, res}
		}
		omega = floats.Dot(t, s) / tt
		floats.AddScaled(x, omega, sh)
		floats.AddScaledTo(r, s, -omega, t)
		res = floats.Norm(r, 2)
		if code := mon.check(it, res); code != 0 {
			return Result{code, it, res}
		}
		rho = rhoNew
	}
}

// gmres implements the restarted right-preconditioned generalised minimal residual method
func (o *native) gmres(b, x []float64, mon *monitor) Result {
	n, m := o.a.n, gmresRestart
	r, w, z := make([]float64, n), make([]float64, n), make([]float64, n)
	V := make([][]float64, m+1)
	for i := range V {
		V[i] = make([]float64, n)
	}
	H := make([][]float64, m+1)
	for i := range H {
		H[i] = make([]float64, m)
	}
	cs, sn, g := make([]float64, m), make([]float64, m), make([]float64, m+1)
	res := o.a.residual(r, b, x)
	if code := mon.check(0, res); code != 0 {
		return Result{code, 0, res}
	}
	it := 0
	for {
		beta := res
		floats.ScaleTo(V[0], 1/beta, r)
		for i := range g {
			g[i] = 0
		}
		g[0] = beta
		k := 0
		var code Code
		for j := 0; j < m; j++ {
			it++
			k = j + 1
			o.pc.apply(z, V[j])
			o.a.mulVec(w, z)
			for i := 0; i <= j; i++ {
				H[i][j] = floats.Dot(w, V[i])
				floats.AddScaled(w, -H[i][j], V[i])
			}
			H[j+1][j] = floats.Norm(w, 2)
			for i := 0; i < j; i++ {
				hi := cs[i]*H[i][j] + sn[i]*H[i+1][j]
				H[i+1][j] = -sn[i]*H[i][j] + cs[i]*H[i+1][j]
				H[i][j] = hi
			}
			den := math.Hypot(H[j][j], H[j+1][j])
			if den == 0 {
				code = Breakdown
				break
			}
			lucky := H[j+1][j] == 0
			if !lucky {
				floats.ScaleTo(V[j+1], 1/H[j+1][j], w)
			}
			cs[j], sn[j] = H[j][j]/den, H[j+1][j]/den
			H[j][j], H[j+1][j] = den, 0
			g[j+1] = -sn[j] * g[j]
			g[j] = cs[j] * g[j]
			res = math.Abs(g[j+1])
			if code = mon.check(it, res); code != 0 || lucky {
				break
			}
		}

		// update x with the least-squares solution
		y := make([]float64, k)
		for i := k - 1; i >= 0; i-- {
			s := g[i]
			for l := i + 1; l < k; l++ {
				s -= H[i][l] * y[l]
			}
			if H[i][i] != 0 {
				y[i] = s / H[i][i]
			}
		}
		for i := range w {
			w[i] = 0
		}
		for i := 0; i < k; i++ {
			floats.AddScaled(w, y[i], V[i])
		}
		o.pc.apply(z, w)
		floats.Add(x, z)
		res = o.a.residual(r, b, x)
		if code != 0 {
			return Result{code, it, res}
		}
		if code = mon.check(it, res); code != 0 {
			return Result{code, it, res}
		}
	}
}

// multigrid iterates V-cycles of plain-aggregation AMG
func (o *native) multigrid(b, x []float64, mon *monitor) Result {
	n := o.a.n
	r, e := make([]float64, n), make([]float64, n)
	res := o.a.residual(r, b, x)
	if code := mon.check(0, res); code != 0 {
		return Result{code, 0, res}
	}
	poly := o.ls.Precond == param.PrecondPoly1
	for it := 1; ; it++ {
		for i := range e {
			e[i] = 0
		}
		o.amg.vcycle(0, r, e, poly)
		floats.Add(x, e)
		res = o.a.residual(r, b, x)
		if code := mon.check(it, res); code != 0 {
			return Result{code, it, res}
		}
	}
}

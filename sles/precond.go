// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// precond applies z = M⁻¹ r
type precond interface {
	init(a *csr) error
	apply(z, r []float64)
}

// splitPrecond factorises M⁻¹ = Bᵀ B for symmetric solvers
type splitPrecond interface {
	init(a *csr) error
	size() int              // number of rows of B
	applyB(y, x []float64)  // y = B x
	applyBt(x, y []float64) // x = Bᵀ y
}

// size of blocks of block Jacobi and additive Schwarz
const blockSize = 32

// jacobi /////////////////////////////////////////////////////////////////////////////////////

type jacobi struct {
	inv []float64 // 1/dᵢ
	isq []float64 // 1/sqrt(|dᵢ|)
}

func (o *jacobi) init(a *csr) (err error) {
	if err = a.checkDiag(); err != nil {
		return
	}
	o.inv = make([]float64, a.n)
	for i, d := range a.dia {
		o.inv[i] = 1.0 / d
	}
	o.isq = invSqrt(a.dia)
	return
}

func (o *jacobi) apply(z, r []float64) {
	for i := range z {
		z[i] = o.inv[i] * r[i]
	}
}

func (o *jacobi) size() int { return len(o.isq) }

func (o *jacobi) applyB(y, x []float64) {
	for i := range y {
		y[i] = o.isq[i] * x[i]
	}
}

func (o *jacobi) applyBt(x, y []float64) { o.applyB(x, y) }

// poly1: first-order Neumann polynomial M⁻¹ = D⁻¹ (2 I - A D⁻¹) ////////////////////////////////

type poly1 struct {
	jacobi
	a   *csr
	tmp []float64
}

func (o *poly1) init(a *csr) error {
	o.a, o.tmp = a, make([]float64, a.n)
	return o.jacobi.init(a)
}

func (o *poly1) apply(z, r []float64) {
	o.jacobi.apply(z, r)
	o.a.mulVec(o.tmp, z)
	for i := range z {
		z[i] = o.inv[i] * (2*r[i] - o.tmp[i])
	}
}

// ssor: symmetric Gauss-Seidel, B = D^½ (D+L)⁻¹ //////////////////////////////////////////////

type ssor struct {
	a  *csr
	sq []float64
}

func (o *ssor) init(a *csr) (err error) {
	if err = a.checkDiag(); err != nil {
		return
	}
	o.a = a
	o.sq = make([]float64, a.n)
	for i, d := range a.dia {
		if d < 0 {
			return chk.Err("ssor requires a positive diagonal. a[%d][%d] = %g is invalid", i, i, d)
		}
		o.sq[i] = math.Sqrt(d)
	}
	return
}

func (o *ssor) size() int { return o.a.n }

func (o *ssor) applyB(y, x []float64) {
	a := o.a
	for i := 0; i < a.n; i++ {
		s := x[i]
		for k := a.ptr[i]; k < a.dpos[i]; k++ {
			s -= a.val[k] * y[a.ind[k]]
		}
		y[i] = s / a.dia[i]
	}
	for i := range y {
		y[i] *= o.sq[i]
	}
}

func (o *ssor) applyBt(x, y []float64) {
	a := o.a
	for i := a.n - 1; i >= 0; i-- {
		s := o.sq[i] * y[i]
		for k := a.dpos[i] + 1; k < a.ptr[i+1]; k++ {
			s -= a.val[k] * x[a.ind[k]]
		}
		x[i] = s / a.dia[i]
	}
}

// icc0: incomplete Cholesky without fill-in, B = L⁻¹ ////////////////////////////////////////

type icc0 struct {
	n   int
	ptr []int     // rows of L (lower part and diagonal, diagonal last)
	ind []int
	val []float64
}

func (o *icc0) init(a *csr) (err error) {
	o.n = a.n
	o.ptr = make([]int, a.n+1)
	o.ind, o.val = o.ind[:0], o.val[:0]
	for i := 0; i < a.n; i++ {
		if a.dpos[i] < 0 {
			return chk.Err("icc0 requires all diagonal entries. row %d has none", i)
		}
		for k := a.ptr[i]; k <= a.dpos[i]; k++ {
			o.ind = append(o.ind, a.ind[k])
			o.val = append(o.val, a.val[k])
		}
		o.ptr[i+1] = len(o.ind)
	}
	for i := 0; i < o.n; i++ {
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			j := o.ind[k]
			s := o.val[k] - o.dotRows(i, j, j)
			if j < i {
				o.val[k] = s / o.val[o.ptr[j+1]-1]
				continue
			}
			if s <= 0 {
				return chk.Err("icc0 breakdown at row %d: pivot %g is not positive", i, s)
			}
			o.val[k] = math.Sqrt(s)
		}
	}
	return
}

// dotRows returns Σ L[i][m] L[j][m] for m < lim
func (o *icc0) dotRows(i, j, lim int) (s float64) {
	p, q := o.ptr[i], o.ptr[j]
	for p < o.ptr[i+1] && q < o.ptr[j+1] {
		ci, cj := o.ind[p], o.ind[q]
		if ci >= lim || cj >= lim {
			break
		}
		switch {
		case ci == cj:
			s += o.val[p] * o.val[q]
			p++
			q++
		case ci < cj:
			p++
		default:
			q++
		}
	}
	return
}

func (o *icc0) size() int { return o.n }

func (o *icc0) applyB(y, x []float64) {
	for i := 0; i < o.n; i++ {
		s := x[i]
		last := o.ptr[i+1] - 1
		for k := o.ptr[i]; k < last; k++ {
			s -= o.val[k] * y[o.ind[k]]
		}
		y[i] = s / o.val[last]
	}
}

func (o *icc0) applyBt(x, y []float64) {
	copy(x, y)
	for i := o.n - 1; i >= 0; i-- {
		last := o.ptr[i+1] - 1
		x[i] /= o.val[last]
		for k := o.ptr[i]; k < last; k++ {
			x[o.ind[k]] -= o.val[k] * x[i]
		}
	}
}

// ilu0: incomplete LU without fill-in /////////////////////////////////////////////////////////

type ilu0 struct {
	a   *csr
	val []float64 // L (unit diagonal, strictly lower) and U (upper with diagonal) in the pattern of A
}

func (o *ilu0) init(a *csr) error {
	for i := 0; i < a.n; i++ {
		if a.dpos[i] < 0 {
			return chk.Err("ilu0 requires all diagonal entries. row %d has none", i)
		}
	}
	o.a = a
	o.val = append(o.val[:0], a.val...)
	pos := make([]int, a.n)
	for j := range pos {
		pos[j] = -1
	}
	for i := 0; i < a.n; i++ {
		for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
			pos[a.ind[k]] = k
		}
		for k := a.ptr[i]; k < a.dpos[i]; k++ {
			m := a.ind[k]
			piv := o.val[a.dpos[m]]
			if piv == 0 {
				return chk.Err("ilu0 breakdown: zero pivot at row %d", m)
			}
			o.val[k] /= piv
			for q := a.dpos[m] + 1; q < a.ptr[m+1]; q++ {
				if p := pos[a.ind[q]]; p >= 0 {
					o.val[p] -= o.val[k] * o.val[q]
				}
			}
		}
		for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
			pos[a.ind[k]] = -1
		}
		if o.val[a.dpos[i]] == 0 {
			return chk.Err("ilu0 breakdown: zero pivot at row %d", i)
		}
	}
	return nil
}

func (o *ilu0) apply(z, r []float64) {
	a := o.a
	for i := 0; i < a.n; i++ {
		s := r[i]
		for k := a.ptr[i]; k < a.dpos[i]; k++ {
			s -= o.val[k] * z[a.ind[k]]
		}
		z[i] = s
	}
	for i := a.n - 1; i >= 0; i-- {
		s := z[i]
		for k := a.dpos[i] + 1; k < a.ptr[i+1]; k++ {
			s -= o.val[k] * z[a.ind[k]]
		}
		z[i] = s / o.val[a.dpos[i]]
	}
}

// blockJacobi: exact solves on diagonal blocks ///////////////////////////////////////////////

type blockJacobi struct {
	starts []int
	sizes  []int
	lus    []*mat.LU
}

func (o *blockJacobi) init(a *csr) error {
	o.starts, o.sizes, o.lus = o.starts[:0], o.sizes[:0], o.lus[:0]
	for s := 0; s < a.n; s += blockSize {
		e := min(s+blockSize, a.n)
		blk := mat.NewDense(e-s, e-s, nil)
		for i := s; i < e; i++ {
			for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
				if j := a.ind[k]; j >= s && j < e {
					blk.Set(i-s, j-s, a.val[k])
				}
			}
		}
		var lu mat.LU
		lu.Factorize(blk)
		if lu.Det() == 0 {
			return chk.Err("block starting at row %d is singular", s)
		}
		o.starts = append(o.starts, s)
		o.sizes = append(o.sizes, e-s)
		o.lus = append(o.lus, &lu)
	}
	return nil
}

func (o *blockJacobi) apply(z, r []float64) {
	for b, s := range o.starts {
		n := o.sizes[b]
		var v mat.VecDense
		if err := o.lus[b].SolveVecTo(&v, false, mat.NewVecDense(n, r[s:s+n])); err != nil {
			if _, ok := err.(mat.Condition); !ok {
				chk.Panic("block solve failed: %v", err)
			}
		}
		copy(z[s:s+n], v.RawVector().Data)
	}
}

// schwarz: additive Schwarz with one layer of overlap, B = stack of Lᵢ⁻¹ Rᵢ ////////////////////

type schwarz struct {
	n    int
	doms [][]int         // rows of each subdomain
	ls   []*mat.TriDense // Cholesky factors
	nb   int             // number of rows of B
}

func (o *schwarz) init(a *csr) error {
	o.n, o.nb = a.n, 0
	o.doms, o.ls = o.doms[:0], o.ls[:0]
	for s := 0; s < a.n; s += blockSize {
		e := min(s+blockSize, a.n)
		in := make(map[int]int)
		var dom []int
		add := func(i int) {
			if _, ok := in[i]; !ok {
				in[i] = len(dom)
				dom = append(dom, i)
			}
		}
		for i := s; i < e; i++ {
			add(i)
		}
		for i := s; i < e; i++ {
			for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
				add(a.ind[k])
			}
		}
		sub := mat.NewSymDense(len(dom), nil)
		for li, i := range dom {
			for k := a.ptr[i]; k < a.ptr[i+1]; k++ {
				if lj, ok := in[a.ind[k]]; ok && lj >= li {
					sub.SetSym(li, lj, a.val[k])
				}
			}
		}
		var chol mat.Cholesky
		if ok := chol.Factorize(sub); !ok {
			return chk.Err("subdomain starting at row %d is not positive definite", s)
		}
		var L mat.TriDense
		chol.LTo(&L)
		o.doms = append(o.doms, dom)
		o.ls = append(o.ls, &L)
		o.nb += len(dom)
	}
	return nil
}

func (o *schwarz) size() int { return o.nb }

func (o *schwarz) applyB(y, x []float64) {
	off := 0
	for d, dom := range o.doms {
		L := o.ls[d]
		for li, i := range dom {
			s := x[i]
			for lj := 0; lj < li; lj++ {
				s -= L.At(li, lj) * y[off+lj]
			}
			y[off+li] = s / L.At(li, li)
		}
		off += len(dom)
	}
}

func (o *schwarz) applyBt(x, y []float64) {
	for i := range x {
		x[i] = 0
	}
	off := 0
	w := make([]float64, 0, 2*blockSize)
	for d, dom := range o.doms {
		L := o.ls[d]
		m := len(dom)
		w = append(w[:0], y[off:off+m]...)
		for li := m - 1; li >= 0; li-- {
			w[li] /= L.At(li, li)
			for lj := 0; lj < li; lj++ {
				w[lj] -= L.At(li, lj) * w[li]
			}
		}
		for li, i := range dom {
			x[i] += w[li]
		}
		off += m
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"math"
	"sort"

	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// csr holds a square matrix in compressed sparse row format with sorted columns
type csr struct {
	n    int       // number of rows
	ptr  []int     // [n+1] row pointers
	ind  []int     // column indices
	val  []float64 // values
	dia  []float64 // [n] diagonal
	dpos []int     // [n] position of the diagonal; -1 if absent
}

// newCsr converts a system matrix
func newCsr(a *sla.SysMatrix) *csr {
	ptr, ind, val := a.Csr()
	return newCsrRaw(a.N(), ptr, ind, val)
}

// newCsrRaw builds a csr matrix from raw data
func newCsrRaw(n int, ptr, ind []int, val []float64) (o *csr) {
	o = &csr{n: n, ptr: ptr, ind: ind, val: val, dia: make([]float64, n), dpos: make([]int, n)}
	for i := 0; i < n; i++ {
		o.dpos[i] = -1
		for k := ptr[i]; k < ptr[i+1]; k++ {
			if ind[k] == i {
				o.dpos[i], o.dia[i] = k, val[k]
			}
		}
	}
	return
}

// checkDiag returns an error if a diagonal entry is zero
func (o *csr) checkDiag() error {
	for i, d := range o.dia {
		if d == 0 {
			return chk.Err("diagonal entry %d is zero", i)
		}
	}
	return nil
}

// mulVec computes y = A x
func (o *csr) mulVec(y, x []float64) {
	for i := 0; i < o.n; i++ {
		s := 0.0
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			s += o.val[k] * x[o.ind[k]]
		}
		y[i] = s
	}
}

// mulVecT computes y = Aᵀ x
func (o *csr) mulVecT(y, x []float64) {
	for i := range y {
		y[i] = 0
	}
	for i := 0; i < o.n; i++ {
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			y[o.ind[k]] += o.val[k] * x[i]
		}
	}
}

// residual computes r = b - A x and returns its norm
func (o *csr) residual(r, b, x []float64) float64 {
	o.mulVec(r, x)
	floats.SubTo(r, b, r)
	return floats.Norm(r, 2)
}

// rect holds a rectangular matrix in compressed sparse row format
type rect struct {
	nrow, ncol int
	ptr, ind   []int
	val        []float64
}

// mulVec computes y = P x
func (o *rect) mulVec(y, x []float64) {
	for i := 0; i < o.nrow; i++ {
		s := 0.0
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			s += o.val[k] * x[o.ind[k]]
		}
		y[i] = s
	}
}

// mulVecT computes y = Pᵀ x
func (o *rect) mulVecT(y, x []float64) {
	for j := range y {
		y[j] = 0
	}
	for i := 0; i < o.nrow; i++ {
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			y[o.ind[k]] += o.val[k] * x[i]
		}
	}
}

// transpose returns Pᵀ
func (o *rect) transpose() (t *rect) {
	t = &rect{nrow: o.ncol, ncol: o.nrow, ptr: make([]int, o.ncol+1)}
	for _, j := range o.ind {
		t.ptr[j+1]++
	}
	for j := 0; j < o.ncol; j++ {
		t.ptr[j+1] += t.ptr[j]
	}
	t.ind = make([]int, len(o.ind))
	t.val = make([]float64, len(o.val))
	next := append([]int{}, t.ptr[:o.ncol]...)
	for i := 0; i < o.nrow; i++ {
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			j := o.ind[k]
			t.ind[next[j]], t.val[next[j]] = i, o.val[k]
			next[j]++
		}
	}
	return
}

// matMul returns A B where A is nrow×m and B is m×ncol; columns of each row come out sorted
func matMul(aptr, aind []int, aval []float64, nrow int, b *rect) (c *rect) {
	c = &rect{nrow: nrow, ncol: b.ncol, ptr: make([]int, nrow+1)}
	acc := make([]float64, b.ncol)
	mark := make([]int, b.ncol)
	for j := range mark {
		mark[j] = -1
	}
	var cols []int
	for i := 0; i < nrow; i++ {
		cols = cols[:0]
		for k := aptr[i]; k < aptr[i+1]; k++ {
			m, v := aind[k], aval[k]
			for q := b.ptr[m]; q < b.ptr[m+1]; q++ {
				j := b.ind[q]
				if mark[j] != i {
					mark[j], acc[j] = i, 0
					cols = append(cols, j)
				}
				acc[j] += v * b.val[q]
			}
		}
		sort.Ints(cols)
		for _, j := range cols {
			c.ind = append(c.ind, j)
			c.val = append(c.val, acc[j])
		}
		c.ptr[i+1] = len(c.ind)
	}
	return
}

// galerkin returns Pᵀ A P
func galerkin(a *csr, p *rect) *csr {
	ap := matMul(a.ptr, a.ind, a.val, a.n, p)
	pt := p.transpose()
	c := matMul(pt.ptr, pt.ind, pt.val, pt.nrow, ap)
	return newCsrRaw(c.nrow, c.ptr, c.ind, c.val)
}

// invSqrt returns 1/sqrt(|d|) for each d
func invSqrt(d []float64) (res []float64) {
	res = make([]float64, len(d))
	for i, v := range d {
		res[i] = 1.0 / math.Sqrt(math.Abs(v))
	}
	return
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sla implements sparse matrices in the modified sparse row (MSR) format: compressed
// rows for the extra-diagonal entries plus an explicit diagonal
package sla

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Msr holds a square matrix assembled by a scheme builder
//  Note: the extra-diagonal entries of row i are Col[Idx[i]:Idx[i+1]] (sorted) and Val[...]
type Msr struct {
	N    int       // number of rows and columns
	Idx  []int     // [n+1] row pointers
	Col  []int     // column ids of extra-diagonal entries
	Diag []float64 // [n] diagonal
	Val  []float64 // extra-diagonal values
}

// NewMsr allocates a matrix with a given pattern
//  neigh -- [n][...] extra-diagonal columns of each row; duplicates and i itself are ignored
func NewMsr(neigh [][]int) (o *Msr) {
	o = new(Msr)
	o.N = len(neigh)
	o.Idx = make([]int, o.N+1)
	for i, cols := range neigh {
		row := make([]int, 0, len(cols))
		for _, j := range cols {
			if j == i {
				continue
			}
			if j < 0 || j >= o.N {
				chk.Panic("column %d of row %d is out of range [0,%d)", j, i, o.N)
			}
			row = append(row, j)
		}
		sort.Ints(row)
		n := 0
		for k, j := range row {
			if k == 0 || j != row[k-1] {
				row[n] = j
				n++
			}
		}
		o.Col = append(o.Col, row[:n]...)
		o.Idx[i+1] = len(o.Col)
	}
	o.Diag = make([]float64, o.N)
	o.Val = make([]float64, len(o.Col))
	return
}

// Nnz returns the number of stored entries
func (o *Msr) Nnz() int { return o.N + len(o.Col) }

// Pos returns the position of (i,j) in Val; -1 if not in the pattern
func (o *Msr) Pos(i, j int) int {
	row := o.Col[o.Idx[i]:o.Idx[i+1]]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return o.Idx[i] + k
	}
	return -1
}

// Add adds v to entry (i,j); (i,j) must be in the pattern
func (o *Msr) Add(i, j int, v float64) {
	if i == j {
		o.Diag[i] += v
		return
	}
	p := o.Pos(i, j)
	if p < 0 {
		chk.Panic("entry (%d,%d) is not in the pattern of the matrix", i, j)
	}
	o.Val[p] += v
}

// Get returns entry (i,j); zero if not in the pattern
func (o *Msr) Get(i, j int) float64 {
	if i == j {
		return o.Diag[i]
	}
	if p := o.Pos(i, j); p >= 0 {
		return o.Val[p]
	}
	return 0
}

// Zero clears all coefficients
func (o *Msr) Zero() {
	for i := range o.Diag {
		o.Diag[i] = 0
	}
	for i := range o.Val {
		o.Val[i] = 0
	}
}

// ClearRow sets row i to the identity row: diagonal 1 and zero extra-diagonal entries
func (o *Msr) ClearRow(i int) {
	o.Diag[i] = 1
	for p := o.Idx[i]; p < o.Idx[i+1]; p++ {
		o.Val[p] = 0
	}
}

// MatVec computes y = A x
func (o *Msr) MatVec(y, x []float64) {
	matvec(y, x, o.N, o.Idx, o.Col, o.Diag, o.Val)
}

// IsSymmetric tells whether the matrix is symmetric up to tol. The test is relative to the
// entries, with a floor given by the largest diagonal magnitude
func (o *Msr) IsSymmetric(tol float64) bool {
	dmax := 0.0
	for _, d := range o.Diag {
		dmax = math.Max(dmax, math.Abs(d))
	}
	for i := 0; i < o.N; i++ {
		for p := o.Idx[i]; p < o.Idx[i+1]; p++ {
			j := o.Col[p]
			aji := o.Get(j, i)
			scale := math.Max(math.Abs(o.Val[p])+math.Abs(aji), dmax)
			if math.Abs(o.Val[p]-aji) > tol*(scale+1e-300) {
				return false
			}
		}
	}
	return true
}

// Info returns a summary of the matrix
func (o *Msr) Info(name string) (l string) {
	if o == nil || o.N == 0 {
		return io.Sf("  <%s/sla> empty matrix\n", name)
	}
	nmin, nmax := o.N, 0
	dmin, dmax := math.MaxFloat64, 0.0
	for i := 0; i < o.N; i++ {
		n := o.Idx[i+1] - o.Idx[i]
		if n < nmin {
			nmin = n
		}
		if n > nmax {
			nmax = n
		}
		d := math.Abs(o.Diag[i])
		dmin = math.Min(dmin, d)
		dmax = math.Max(dmax, d)
	}
	fill := 100.0 * float64(o.Nnz()) / (float64(o.N) * float64(o.N))
	l += io.Sf("  <%s/sla> n_rows: %d  nnz: %d  fill-in: %.2f%%\n", name, o.N, o.Nnz(), fill)
	l += io.Sf("  <%s/sla> extra-diag entries per row: min %d  max %d  mean %.1f\n", name, nmin, nmax, float64(len(o.Col))/float64(o.N))
	l += io.Sf("  <%s/sla> |diag|: min %.3e  max %.3e\n", name, dmin, dmax)
	return
}

// Release transfers the storage of o into a structure and a matrix; o becomes empty
func (o *Msr) Release() (s *Structure, a *SysMatrix) {
	s = &Structure{N: o.N, Idx: o.Idx, Col: o.Col}
	a = &SysMatrix{Struct: s, Diag: o.Diag, Val: o.Val}
	o.N, o.Idx, o.Col, o.Diag, o.Val = 0, nil, nil, nil, nil
	return
}

// matvec computes y = A x for MSR data
func matvec(y, x []float64, n int, idx, col []int, diag, val []float64) {
	for i := 0; i < n; i++ {
		s := diag[i] * x[i]
		for p := idx[i]; p < idx[i+1]; p++ {
			s += val[p] * x[col[p]]
		}
		y[i] = s
	}
}

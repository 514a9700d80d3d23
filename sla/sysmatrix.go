// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sla

import "github.com/cpmech/gosl/chk"

// Structure holds the sparsity pattern owned by an equation; it is built once
type Structure struct {
	N   int   // number of rows
	Idx []int // [n+1] row pointers
	Col []int // column ids of extra-diagonal entries
}

// SysMatrix holds the coefficients of a linear system with a given structure
type SysMatrix struct {
	Struct *Structure // pattern
	Diag   []float64  // [n] diagonal
	Val    []float64  // extra-diagonal values
}

// Refresh takes the coefficients of m, which must have the same pattern; m becomes empty
func (o *SysMatrix) Refresh(m *Msr) (err error) {
	s := o.Struct
	if m.N != s.N || len(m.Col) != len(s.Col) {
		return chk.Err("matrix with %d rows and %d entries cannot refresh a structure with %d rows and %d entries",
			m.N, len(m.Col), s.N, len(s.Col))
	}
	if !sameInts(m.Idx, s.Idx) || !sameInts(m.Col, s.Col) {
		return chk.Err("matrix with %d rows and %d entries has a pattern different from the structure", m.N, len(m.Col))
	}
	o.Diag, o.Val = m.Diag, m.Val
	m.N, m.Idx, m.Col, m.Diag, m.Val = 0, nil, nil, nil, nil
	return
}

// N returns the number of rows
func (o *SysMatrix) N() int { return o.Struct.N }

// MatVec computes y = A x
func (o *SysMatrix) MatVec(y, x []float64) {
	matvec(y, x, o.Struct.N, o.Struct.Idx, o.Struct.Col, o.Diag, o.Val)
}

// Row returns the columns and values of the extra-diagonal entries of row i
func (o *SysMatrix) Row(i int) (cols []int, vals []float64) {
	a, b := o.Struct.Idx[i], o.Struct.Idx[i+1]
	return o.Struct.Col[a:b], o.Val[a:b]
}

// Get returns entry (i,j); zero if not in the pattern
func (o *SysMatrix) Get(i, j int) float64 {
	if i == j {
		return o.Diag[i]
	}
	cols, vals := o.Row(i)
	for k, c := range cols {
		if c == j {
			return vals[k]
		}
	}
	return 0
}

// Nnz returns the number of stored entries
func (o *SysMatrix) Nnz() int { return o.Struct.N + len(o.Struct.Col) }

// Csr returns the matrix in compressed sparse row format with the diagonal included
func (o *SysMatrix) Csr() (indptr, ind []int, data []float64) {
	n := o.Struct.N
	indptr = make([]int, n+1)
	ind = make([]int, 0, o.Nnz())
	data = make([]float64, 0, o.Nnz())
	for i := 0; i < n; i++ {
		cols, vals := o.Row(i)
		done := false
		for k, c := range cols {
			if !done && c > i {
				ind = append(ind, i)
				data = append(data, o.Diag[i])
				done = true
			}
			ind = append(ind, c)
			data = append(data, vals[k])
		}
		if !done {
			ind = append(ind, i)
			data = append(data, o.Diag[i])
		}
		indptr[i+1] = len(ind)
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

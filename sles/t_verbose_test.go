// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
)

func verbose() {
	chk.Verbose = true
	logrus.SetLevel(logrus.DebugLevel)
}

// lap3d returns the 7-point Laplacian of an n×n×n grid plus an upwinded convection of
// strength conv along x; the matrix is symmetric if conv = 0
func lap3d(n int, conv float64) *sla.SysMatrix {
	N := n * n * n
	id := func(i, j, k int) int { return i + j*n + k*n*n }
	neigh := make([][]int, N)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				I := id(i, j, k)
				if i > 0 {
					neigh[I] = append(neigh[I], id(i-1, j, k))
				}
				if i < n-1 {
					neigh[I] = append(neigh[I], id(i+1, j, k))
				}
				if j > 0 {
					neigh[I] = append(neigh[I], id(i, j-1, k))
				}
				if j < n-1 {
					neigh[I] = append(neigh[I], id(i, j+1, k))
				}
				if k > 0 {
					neigh[I] = append(neigh[I], id(i, j, k-1))
				}
				if k < n-1 {
					neigh[I] = append(neigh[I], id(i, j, k+1))
				}
			}
		}
	}
	m := sla.NewMsr(neigh)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				I := id(i, j, k)
				m.Add(I, I, 6+conv)
				if i > 0 {
					m.Add(I, id(i-1, j, k), -1-conv)
				}
				if i < n-1 {
					m.Add(I, id(i+1, j, k), -1)
				}
				if j > 0 {
					m.Add(I, id(i, j-1, k), -1)
				}
				if j < n-1 {
					m.Add(I, id(i, j+1, k), -1)
				}
				if k > 0 {
					m.Add(I, id(i, j, k-1), -1)
				}
				if k < n-1 {
					m.Add(I, id(i, j, k+1), -1)
				}
			}
		}
	}
	_, a := m.Release()
	return a
}

// problem returns the right-hand side corresponding to a known solution
func problem(a *sla.SysMatrix) (rhs, xsol []float64) {
	n := a.N()
	xsol = make([]float64, n)
	for i := range xsol {
		xsol[i] = 1 + float64(i%7)/7.0
	}
	rhs = make([]float64, n)
	a.MatVec(rhs, xsol)
	return
}

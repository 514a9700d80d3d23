// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// voronoiHodge computes the diagonal Hodge operator H_ii = N_i・K・R_i / |R_i|²
//  N -- [n][3] dual (or primal) face vectors
//  R -- [n][3] primal (or dual) edge vectors
func voronoiHodge(N, R [][]float64, K *[3][3]float64) *mat.SymDense {
	n := len(N)
	H := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		H.SetSym(i, i, kdot(N[i], K, R[i])/dot(R[i], R[i]))
	}
	return H
}

// costHodge computes the Hodge operator with consistency and stabilisation parts
//  H = (1/|c|) N K Nᵀ + β Πᵀ D Π   with   Π = I - (1/|c|) R Nᵀ   and   D_ii = N_i・K・N_i / N_i・R_i
//  Note: Σ_i N_i ⊗ R_i = |c| I, thus Π vanishes on the edge values of constant gradients
func costHodge(N, R [][]float64, K *[3][3]float64, vol, beta float64) *mat.SymDense {
	n := len(N)
	Nm := mat.NewDense(n, 3, nil)
	Rm := mat.NewDense(n, 3, nil)
	Km := mat.NewDense(3, 3, nil)
	for i := 0; i < n; i++ {
		Nm.SetRow(i, N[i])
		Rm.SetRow(i, R[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Km.Set(i, j, K[i][j])
		}
	}

	// consistency
	var NK, C mat.Dense
	NK.Mul(Nm, Km)
	C.Mul(&NK, Nm.T())
	C.Scale(1.0/vol, &C)

	// stabilisation
	var P, DP, S mat.Dense
	P.Mul(Rm, Nm.T())
	P.Scale(-1.0/vol, &P)
	for i := 0; i < n; i++ {
		P.Set(i, i, P.At(i, i)+1)
	}
	D := mat.NewDiagDense(n, nil)
	for i := 0; i < n; i++ {
		D.SetDiag(i, kdot(N[i], K, N[i])/dot(N[i], R[i]))
	}
	DP.Mul(D, &P)
	S.Mul(P.T(), &DP)
	S.Scale(beta, &S)
	C.Add(&C, &S)

	// symmetric result
	H := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			H.SetSym(i, j, 0.5*(C.At(i, j)+C.At(j, i)))
		}
	}
	return H
}

// p1Tet computes the gradients of the P1 shape functions of a tetrahedron
//  G -- [3][4] gradients (columns)
func p1Tet(G *mat.Dense, p0, p1, p2, p3 []float64) (err error) {
	J := mat.NewDense(3, 3, nil)
	J.SetRow(0, sub(p1, p0))
	J.SetRow(1, sub(p2, p0))
	J.SetRow(2, sub(p3, p0))
	var Ji mat.Dense
	err = Ji.Inverse(J)
	if err != nil {
		return chk.Err("degenerate tetrahedron in subdivision: %v", err)
	}
	for k := 0; k < 3; k++ {
		s := 0.0
		for i := 0; i < 3; i++ {
			G.Set(k, i+1, Ji.At(k, i))
			s += Ji.At(k, i)
		}
		G.Set(k, 0, -s)
	}
	return
}

// p1Mass returns the P1 mass matrix of a tetrahedron with volume vol
func p1Mass(vol float64) *mat.SymDense {
	M := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			if i == j {
				M.SetSym(i, j, vol/10.0)
			} else {
				M.SetSym(i, j, vol/20.0)
			}
		}
	}
	return M
}

// addRtAR computes T += s Rᵀ A R
func addRtAR(T *mat.Dense, R *mat.Dense, A mat.Matrix, s float64) {
	var AR, RtAR mat.Dense
	AR.Mul(A, R)
	RtAR.Mul(R.T(), &AR)
	RtAR.Scale(s, &RtAR)
	T.Add(T, &RtAR)
}

// lump returns the row sums of A
func lump(A mat.Matrix) []float64 {
	n, _ := A.Dims()
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d[i] += A.At(i, j)
		}
	}
	return d
}

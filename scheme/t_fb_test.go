// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"testing"

	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_fb01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fb01. unsupported combinations")

	m := newBox(tst, 1)
	ts := new(TimeStep)
	check := func(p *param.Param) {
		_, err := NewFb(p, m, ts)
		require.ErrorIs(tst, err, param.ErrUnsupportedSchemeCombination)
	}

	p := newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
	require.NoError(tst, p.SetOption(param.KeyHodgeDiffAlgo, "wbs"))
	check(p)

	p = newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
	require.NoError(tst, p.Link("advection", pty.NewAdvField("beta", 1, 0, 0)))
	check(p)

	for _, enf := range []string{"weak", "weak_sym"} {
		p = newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
		require.NoError(tst, p.SetOption(param.KeyBcEnforcement, enf))
		check(p)
	}

	p = newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
	require.NoError(tst, p.Link("time", pty.Unity()))
	require.NoError(tst, p.SetOption(param.KeyTimeScheme, "crank_nicolson"))
	check(p)

	p = newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
	require.NoError(tst, p.Link("time", pty.Unity()))
	require.NoError(tst, p.SetOption(param.KeyHodgeTimeAlgo, "wbs"))
	check(p)

	p = newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
	b, err := NewFb(p, m, ts)
	require.NoError(tst, err)
	chk.Int(tst, "ndofs", b.Ndofs(), 6)
	chk.Int(tst, "tmp", len(b.TmpBuf()), 6)
	b.Free()
	b.Free()
}

func Test_fb02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fb02. linear solution is exact")

	m := newBox(tst, 3)
	ts := new(TimeStep)
	var u linear
	for _, algo := range []string{"voronoi", "cost"} {
		for _, enf := range []string{"strong", "penalization"} {
			p := newParam(tst, m, "cdo_fb", param.BcHomDirichlet)
			require.NoError(tst, p.SetOption(param.KeyHodgeDiffAlgo, algo))
			require.NoError(tst, p.SetOption(param.KeyBcEnforcement, enf))
			require.NoError(tst, p.AddBC("boundary_faces", "dirichlet", "analytic", u))
			b, err := NewFb(p, m, ts)
			require.NoError(tst, err)
			b.ComputeSource()
			rhs, a, err := b.BuildSystem(m, make([]float64, m.Ncells), 0)
			require.NoError(tst, err)
			require.True(tst, a.IsSymmetric(1e-12), "%s/%s: matrix must be symmetric", algo, enf)
			x := solveDense(tst, a, rhs)
			sol := make([]float64, m.Ncells)
			b.UpdateField(x, sol)
			tol := 1e-9
			if enf == "penalization" {
				tol = 1e-6
			}
			for c := 0; c < m.Ncells; c++ {
				chk.Float64(tst, io.Sf("%s/%s: u(c%d)", algo, enf, c), tol, sol[c], u.F(0, m.CellCen[c]))
			}
			fv := b.FaceValues()
			for f := 0; f < m.Nfaces; f++ {
				chk.Float64(tst, io.Sf("%s/%s: u(f%d)", algo, enf, f), tol, fv[f], u.F(0, m.FaceCen[f]))
			}
		}
	}
}

func Test_fb03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fb03. unsteady with initial values")

	m := newBox(tst, 2)
	ts := new(TimeStep)
	p := newParam(tst, m, "cdo_fb", param.BcHomNeumann)
	require.NoError(tst, p.Link("time", pty.Unity()))
	require.NoError(tst, p.AddIC("", "analytic", linear{}))
	b, err := NewFb(p, m, ts)
	require.NoError(tst, err)

	fields := field.NewRegistry()
	fld, err := fields.Create("u", mesh.LocCells, m.Ncells, 1, true)
	require.NoError(tst, err)
	require.NoError(tst, b.SetInitialValues(p, fld))
	for c := 0; c < m.Ncells; c++ {
		chk.Float64(tst, "u0(c)", 1e-15, fld.Val[c], linear{}.F(0, m.CellCen[c]))
	}
	for f := 0; f < m.Nfaces; f++ {
		chk.Float64(tst, "u0(f)", 1e-15, b.FaceValues()[f], linear{}.F(0, m.FaceCen[f]))
	}

	// constant state is kept
	for c := range fld.Val {
		fld.Val[c] = 3
	}
	rhs, a, err := b.BuildSystem(m, fld.Val, 0.5)
	require.NoError(tst, err)
	x := solveDense(tst, a, rhs)
	b.UpdateField(x, fld.Val)
	chk.Array(tst, "u", 1e-12, fld.Val, utlOnes(m.Ncells, 3))
	chk.Array(tst, "uf", 1e-12, b.FaceValues(), utlOnes(m.Nfaces, 3))

	// reaction and source: k u = s
	k, err := pty.NewUniform("k", 4)
	require.NoError(tst, err)
	p = newParam(tst, m, "cdo_fb", param.BcHomNeumann)
	require.NoError(tst, p.AddReaction("", "linear", k))
	require.NoError(tst, p.AddSourceTermByVal("", "cells", "2"))
	b, err = NewFb(p, m, ts)
	require.NoError(tst, err)
	b.ComputeSource()
	rhs, a, err = b.BuildSystem(m, make([]float64, m.Ncells), 0)
	require.NoError(tst, err)
	x = solveDense(tst, a, rhs)
	sol := make([]float64, m.Ncells)
	b.UpdateField(x, sol)
	chk.Array(tst, "u", 1e-12, sol, utlOnes(m.Ncells, 0.5))
}

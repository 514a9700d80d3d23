// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gocdo/ana"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/sles"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. steady vertex-based poisson")

	main, err := NewMain("data/poisson.toml", true, chk.Verbose)
	require.NoError(tst, err)
	require.Nil(tst, main.Vtu)
	require.Nil(tst, main.Dom.WallDist)
	require.NoError(tst, main.Run())

	eq := main.Dom.Eq("poisson")
	require.NotNil(tst, eq)
	assert.Equal(tst, sles.Converged, eq.LastSolve.Code)
	assert.Equal(tst, 1, eq.Timers.NBuilds)
	assert.Equal(tst, 1, eq.Timers.NSolves)

	m := main.Dom.Msh
	u, ok := main.Mem.Vars["u"]
	require.True(tst, ok)
	assert.Equal(tst, mesh.LocVertices, u.Loc)
	chk.Int(tst, "nt", u.Nt, 0)
	imax := 0
	for v := range m.X {
		if m.Bvert[v] {
			chk.Float64(tst, io.Sf("u[%d]", v), 1e-10, u.Vals[v], 0)
		}
		if u.Vals[v] > u.Vals[imax] {
			imax = v
		}
	}
	chk.Array(tst, "xmax", 1e-15, m.X[imax], []float64{0.5, 0.5, 0.5})
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. steady face-based poisson")

	main, err := NewMain("data/poisson_fb.toml", true, chk.Verbose)
	require.NoError(tst, err)
	require.NoError(tst, main.Run())

	eq := main.Dom.Eq("poisson")
	assert.Equal(tst, sles.Converged, eq.LastSolve.Code)

	m := main.Dom.Msh
	u := main.Mem.Vars["u"]
	require.NotNil(tst, u)
	assert.Equal(tst, mesh.LocCells, u.Loc)
	require.Len(tst, u.Vals, m.Ncells)
	imax := 0
	for c := range m.CellCen {
		if u.Vals[c] <= 0 {
			tst.Errorf("u[%d] = %g must be positive\n", c, u.Vals[c])
		}
		if u.Vals[c] > u.Vals[imax] {
			imax = c
		}
	}
	if mesh.Dist(m.CellCen[imax], []float64{0.5, 0.5, 0.5}) > 0.15 {
		tst.Errorf("maximum should be near the centre. x = %v\n", m.CellCen[imax])
	}
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. transient heat with wall distance")

	main, err := NewMain("data/heat.toml", true, chk.Verbose)
	require.NoError(tst, err)
	require.NotNil(tst, main.Vtu)
	require.NotNil(tst, main.Dom.WallDist)
	require.NoError(tst, main.Run())

	// time loop
	eq := main.Dom.Eq("heat")
	require.NotNil(tst, eq)
	chk.Int(tst, "nt", main.Ts.Nt, 4)
	chk.Float64(tst, "t", 1e-15, main.Ts.T, 0.2)
	assert.Equal(tst, 4, eq.Timers.NSolves)
	assert.Equal(tst, 4, eq.Timers.NBuilds)
	assert.False(tst, eq.IsSteady())

	// hot wall
	m := main.Dom.Msh
	temp := main.Mem.Vars["temperature"]
	require.NotNil(tst, temp)
	chk.Int(tst, "nt", temp.Nt, 4)
	for v, x := range m.X {
		if math.Abs(x[0]) < 1e-10 {
			chk.Float64(tst, io.Sf("T[%d]", v), 1e-8, temp.Vals[v], 1)
		}
	}

	// wall distance away from the opposite (insulated) side
	var sol ana.PoissonSlab
	require.NoError(tst, sol.Init(dbf.Params{&dbf.P{N: "insulated", V: 1}}))
	d := main.Mem.Vars["wall_distance"]
	require.NotNil(tst, d)
	chk.Int(tst, "nt", d.Nt, 0)
	for v, x := range m.X {
		if x[0] < 0.9 {
			chk.Float64(tst, io.Sf("d[%d]", v), 1e-8, d.Vals[v], sol.Dist(x))
		}
	}
	if main.WallDist.Max < 0.75 || main.WallDist.Max > 1 {
		tst.Errorf("max wall distance = %g is wrong\n", main.WallDist.Max)
	}

	// output files
	chk.Int(tst, "number of vtu files", main.Vtu.Nfiles, 3)
	for _, fn := range []string{"heat_0.vtu", "heat_2.vtu", "heat_4.vtu", "heat.log"} {
		if _, err := os.Stat(filepath.Join(main.Sim.DirOut, fn)); err != nil {
			tst.Errorf("file %q is missing\n", fn)
		}
	}
}

func Test_main04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main04. errors")

	_, err := NewMain("data/badpty.toml", true, chk.Verbose)
	assert.Error(tst, err)

	_, err = NewMain("data/doesnotexist.toml", true, chk.Verbose)
	assert.Error(tst, err)

	// failed setup is reported by Run
	main, err := NewMain("data/poisson.toml", true, chk.Verbose)
	require.NoError(tst, err)
	require.NoError(tst, main.Dom.Eqs[0].SetOption("solver_family", "external"))
	require.NoError(tst, main.Dom.Eqs[0].SetOption("itsol", "amg"))
	assert.Error(tst, main.Run())
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package walldist

import (
	"math"
	"testing"

	"github.com/cpmech/gocdo/ana"
	"github.com/cpmech/gocdo/equation"
	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gocdo/sles"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

// solve returns the wall distance in a box with walls at x = 0 and x = 1
func solve(tst *testing.T, m *mesh.Mesh, scheme string) (*equation.Equation, *post.Memory, Stats) {
	_, err := m.Locs.Add("walls", mesh.LocBoundaryFaces, func(x []float64) bool {
		return math.Abs(x[0]) < 1e-10 || math.Abs(x[0]-1) < 1e-10
	})
	require.NoError(tst, err)
	eq := equation.New(Name, "wall_distance", param.EqPredefined, param.VarScalar, param.BcHomNeumann, m.Locs)
	eq.Registry = sles.NewRegistry()
	require.NoError(tst, eq.SetOption("space_scheme", scheme))
	require.NoError(tst, eq.SetOption("hodge_diff_algo", "voronoi"))
	require.NoError(tst, Setup(eq, "walls", pty.Unity()))
	require.ErrorIs(tst, Setup(eq, "roof", pty.Unity()), param.ErrInvalidMeshLocation)
	require.NoError(tst, eq.LastSetup())
	require.NoError(tst, eq.CreateField(field.NewRegistry(), m))
	require.NoError(tst, eq.InitSystem(m, nil))
	require.NoError(tst, eq.BuildSystem(m, nil, 0))
	require.NoError(tst, eq.Solve(false))
	w := post.NewMemory()
	st, err := Compute(m, eq, w, chk.Verbose)
	require.NoError(tst, err)
	return eq, w, st
}

func Test_walldist01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("walldist01. vertex-based")

	m, err := mesh.NewBox(8, 2, 2, 1, 0.25, 0.25)
	require.NoError(tst, err)
	eq, w, st := solve(tst, m, "cdo_vb")
	defer eq.Free()

	var sol ana.PoissonSlab
	require.NoError(tst, sol.Init(nil))
	d := eq.Field().Val
	for v, x := range m.X {
		chk.Float64(tst, io.Sf("d[%d]", v), 1e-8, d[v], sol.Dist(x))
	}
	chk.Float64(tst, "max", 1e-8, st.Max, 0.5)
	chk.Float64(tst, "mean", 1e-8, st.Mean, 2.0/9.0)
	v, ok := w.Vars["wall_distance"]
	if !ok {
		tst.Errorf("wall distance should have been written\n")
		return
	}
	chk.Array(tst, "written", 1e-15, v.Vals, d)
	if v.Loc != mesh.LocVertices {
		tst.Errorf("wall distance should be located at vertices\n")
	}
}

func Test_walldist02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("walldist02. face-based")

	m, err := mesh.NewBox(8, 2, 2, 1, 0.25, 0.25)
	require.NoError(tst, err)
	eq, _, st := solve(tst, m, "cdo_fb")
	defer eq.Free()

	var sol ana.PoissonSlab
	require.NoError(tst, sol.Init(nil))
	d := eq.Field().Val
	for c, x := range m.CellCen {
		if math.Abs(d[c]-sol.Dist(x)) > 0.1 {
			tst.Errorf("d[%d] = %g is too far from %g\n", c, d[c], sol.Dist(x))
		}
	}
	if st.Max > 0.55 || st.Max < 0.3 {
		tst.Errorf("max = %g is wrong\n", st.Max)
	}
	if st.Sigma <= 0 {
		tst.Errorf("sigma = %g must be positive\n", st.Sigma)
	}
}

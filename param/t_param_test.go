// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"errors"
	"testing"

	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constFcn float64

func (o constFcn) F(t float64, x []float64) float64 { return float64(o) }

func Test_param01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param01. defaults")

	p := newTestParam()
	assert.Equal(tst, SchemeCdoVb, p.Scheme)
	assert.Equal(tst, HodgeVpcd, p.TimeHodge.Type)
	assert.Equal(tst, HodgeVoronoi, p.TimeHodge.Algo)
	assert.Equal(tst, HodgeEpfd, p.DiffHodge.Type)
	assert.Equal(tst, HodgeCost, p.DiffHodge.Algo)
	chk.Float64(tst, "diff coef", 1e-15, p.DiffHodge.Coef, 1.0/3.0)
	assert.Equal(tst, TimeImplicit, p.Time.Scheme)
	chk.Float64(tst, "theta", 1e-15, p.Time.Theta, 1)
	assert.Equal(tst, BcStrong, p.BC.Enforcement)
	assert.Equal(tst, BcHomNeumann, p.BC.Default)
	assert.Empty(tst, p.BC.Defs)
	assert.Empty(tst, p.Reactions)
	assert.Empty(tst, p.Sources)
	chk.Int(tst, "n max iter", p.LinSol.NmaxIter, 2500)
	chk.Int(tst, "algo n max iter", p.Algo.NmaxIter, 50)
	chk.Int(tst, "algo n max cumul", p.Algo.NmaxCumulIter, 10000)
	assert.False(tst, p.IsLocked())
	assert.False(tst, p.IsUnsteady())
}

func Test_param02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param02. key validation totality")

	// every documented key/value pair is accepted and mutates the right field
	cases := []struct {
		key   string
		val   string
		check func(p *Param) bool
	}{
		{"space_scheme", "cdo_fb", func(p *Param) bool { return p.Scheme == SchemeCdoFb && p.TimeHodge.Type == HodgeCpvd && p.DiffHodge.Type == HodgeEdfp }},
		{"space_scheme", "cdo_vb", func(p *Param) bool { return p.Scheme == SchemeCdoVb && p.TimeHodge.Type == HodgeVpcd && p.DiffHodge.Type == HodgeEpfd }},
		{"hodge_diff_algo", "cost", func(p *Param) bool { return p.DiffHodge.Algo == HodgeCost }},
		{"hodge_diff_algo", "voronoi", func(p *Param) bool { return p.DiffHodge.Algo == HodgeVoronoi }},
		{"hodge_diff_algo", "wbs", func(p *Param) bool { return p.DiffHodge.Algo == HodgeWbs }},
		{"hodge_diff_coef", "dga", func(p *Param) bool { return p.DiffHodge.Coef == 1.0/3.0 }},
		{"hodge_diff_coef", "sushi", func(p *Param) bool { return p.DiffHodge.Coef > 0.577 && p.DiffHodge.Coef < 0.578 }},
		{"hodge_diff_coef", "gcr", func(p *Param) bool { return p.DiffHodge.Coef == 1 }},
		{"hodge_diff_coef", "0.25", func(p *Param) bool { return p.DiffHodge.Coef == 0.25 }},
		{"hodge_time_algo", "wbs", func(p *Param) bool { return p.TimeHodge.Algo == HodgeWbs }},
		{"hodge_time_algo", "cost", func(p *Param) bool { return p.TimeHodge.Algo == HodgeCost }},
		{"hodge_time_algo", "voronoi", func(p *Param) bool { return p.TimeHodge.Algo == HodgeVoronoi }},
		{"hodge_time_coef", "gcr", func(p *Param) bool { return p.TimeHodge.Coef == 1 }},
		{"solver_family", "external", func(p *Param) bool { return p.LinSol.Family == FamilyExternal }},
		{"solver_family", "native", func(p *Param) bool { return p.LinSol.Family == FamilyNative }},
		{"solver_family", "petsc", func(p *Param) bool { return p.LinSol.Family == FamilyExternal }},
		{"solver_family", "cs", func(p *Param) bool { return p.LinSol.Family == FamilyNative }},
		{"itsol", "cg", func(p *Param) bool { return p.LinSol.Solver == ItSolCg }},
		{"itsol", "bicg", func(p *Param) bool { return p.LinSol.Solver == ItSolBicg }},
		{"itsol", "gmres", func(p *Param) bool { return p.LinSol.Solver == ItSolGmres }},
		{"itsol", "amg", func(p *Param) bool { return p.LinSol.Solver == ItSolAmg }},
		{"precond", "jacobi", func(p *Param) bool { return p.LinSol.Precond == PrecondJacobi }},
		{"precond", "poly1", func(p *Param) bool { return p.LinSol.Precond == PrecondPoly1 }},
		{"precond", "ssor", func(p *Param) bool { return p.LinSol.Precond == PrecondSsor }},
		{"precond", "ilu0", func(p *Param) bool { return p.LinSol.Precond == PrecondIlu0 }},
		{"precond", "icc0", func(p *Param) bool { return p.LinSol.Precond == PrecondIcc0 }},
		{"precond", "amg", func(p *Param) bool { return p.LinSol.Precond == PrecondAmg }},
		{"precond", "as", func(p *Param) bool { return p.LinSol.Precond == PrecondAs }},
		{"itsol_max_iter", "100", func(p *Param) bool { return p.LinSol.NmaxIter == 100 }},
		{"itsol_eps", "1e-8", func(p *Param) bool { return p.LinSol.Eps == 1e-8 }},
		{"itsol_resnorm", "true", func(p *Param) bool { return p.LinSol.ResNormalized }},
		{"itsol_resnorm", "false", func(p *Param) bool { return !p.LinSol.ResNormalized }},
		{"itsol_amg_type", "plain", func(p *Param) bool { return p.LinSol.AmgType == AmgPlain }},
		{"itsol_amg_type", "smoothed", func(p *Param) bool { return p.LinSol.AmgType == AmgSmoothed }},
		{"verbosity", "2", func(p *Param) bool { return p.Verbosity == 2 }},
		{"itsol_verbosity", "3", func(p *Param) bool { return p.SlesVerbosity == 3 }},
		{"bc_enforcement", "penalization", func(p *Param) bool { return p.BC.Enforcement == BcPenalization }},
		{"bc_enforcement", "weak", func(p *Param) bool { return p.BC.Enforcement == BcWeakNitsche }},
		{"bc_enforcement", "weak_sym", func(p *Param) bool { return p.BC.Enforcement == BcWeakSym }},
		{"bc_enforcement", "strong", func(p *Param) bool { return p.BC.Enforcement == BcStrong }},
		{"bc_quadrature", "subdiv", func(p *Param) bool { return p.BC.UseSubdiv }},
		{"bc_quadrature", "higher", func(p *Param) bool { return p.BC.Quad == QuadHigher }},
		{"bc_quadrature", "highest", func(p *Param) bool { return p.BC.Quad == QuadHighest }},
		{"bc_quadrature", "bary", func(p *Param) bool { return p.BC.Quad == QuadBary }},
		{"extra_op", "peclet", func(p *Param) bool { return p.Process&PostPeclet != 0 }},
		{"extra_op", "upwind_coef", func(p *Param) bool { return p.Process&PostUpwindCoef != 0 }},
		{"extra_op", "none", func(p *Param) bool { return p.Process&PostNone != 0 }},
		{"adv_formulation", "non_conservative", func(p *Param) bool { return p.Adv.Form == AdvNonConservative }},
		{"adv_formulation", "conservative", func(p *Param) bool { return p.Adv.Form == AdvConservative }},
		{"adv_weight", "samarskii", func(p *Param) bool { return p.Adv.Weight == AdvSamarskii }},
		{"adv_weight", "sg", func(p *Param) bool { return p.Adv.Weight == AdvSg }},
		{"adv_weight", "d10g5", func(p *Param) bool { return p.Adv.Weight == AdvD10g5 }},
		{"adv_weight", "centered", func(p *Param) bool { return p.Adv.Weight == AdvCentered }},
		{"adv_weight", "upwind", func(p *Param) bool { return p.Adv.Weight == AdvUpwind }},
		{"adv_weight_criterion", "flux", func(p *Param) bool { return p.Adv.Criterion == AdvCritFlux }},
		{"adv_weight_criterion", "xexc", func(p *Param) bool { return p.Adv.Criterion == AdvCritXexc }},
		{"adv_flux_quad", "highest", func(p *Param) bool { return p.Adv.Quad == QuadHighest }},
		{"adv_flux_quad", "higher", func(p *Param) bool { return p.Adv.Quad == QuadHigher }},
		{"adv_flux_quad", "bary", func(p *Param) bool { return p.Adv.Quad == QuadBary }},
		{"time_scheme", "explicit", func(p *Param) bool { return p.Time.Scheme == TimeExplicit && p.Time.Theta == 0 }},
		{"time_scheme", "crank_nicolson", func(p *Param) bool { return p.Time.Scheme == TimeCrankNicolson && p.Time.Theta == 0.5 }},
		{"time_scheme", "theta_scheme", func(p *Param) bool { return p.Time.Scheme == TimeTheta }},
		{"time_scheme", "implicit", func(p *Param) bool { return p.Time.Scheme == TimeImplicit && p.Time.Theta == 1 }},
		{"time_theta", "0.7", func(p *Param) bool { return p.Time.Theta == 0.7 }},
	}
	seen := make(map[string]bool)
	p := newTestParam()
	for _, c := range cases {
		require.NoError(tst, p.SetOptionByName(c.key, c.val), "%s=%s", c.key, c.val)
		assert.True(tst, c.check(p), "%s=%s did not mutate the parameters", c.key, c.val)
		seen[c.key] = true
	}
	for _, k := range KeyNames() {
		assert.True(tst, seen[k], "key %q is not covered", k)
	}

	// every key rejects values outside its vocabulary
	for _, k := range KeyNames() {
		err := p.SetOptionByName(k, "__invalid__")
		require.Error(tst, err, k)
		assert.True(tst, errors.Is(err, ErrInvalidValue), "%s: %v", k, err)
	}
	for _, bad := range []struct{ key, val string }{
		{"itsol_max_iter", "0"}, {"itsol_eps", "-1"}, {"time_theta", "1.5"}, {"hodge_diff_coef", "-2"},
	} {
		require.ErrorIs(tst, p.SetOptionByName(bad.key, bad.val), ErrInvalidValue, bad.key)
	}

	// unknown keys
	for _, k := range []string{"", "space", "Space_scheme", "itsol_maxiter", "precond "} {
		require.ErrorIs(tst, p.SetOptionByName(k, "cg"), ErrInvalidKey, k)
	}
	_, err := ParseKey("hodge_diff_algo")
	require.NoError(tst, err)
	for i := 0; i < int(NumKeys); i++ {
		key, err := ParseKey(Key(i).String())
		require.NoError(tst, err)
		assert.Equal(tst, Key(i), key)
	}
}

func Test_param03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param03. locking")

	p := newTestParam()
	require.NoError(tst, p.AddBC("boundary_faces", "dirichlet", "value", "1"))
	require.NoError(tst, p.Link("diffusion", pty.Unity()))
	p.Lock()
	before := *p

	var e *Error
	err := p.SetOptionByName("space_scheme", "cdo_fb")
	require.ErrorIs(tst, err, ErrLocked)
	require.True(tst, errors.As(err, &e))
	assert.Equal(tst, "Poisson", e.Eqname)

	// lock is checked before the key
	require.ErrorIs(tst, p.SetOptionByName("not_a_key", "x"), ErrLocked)
	require.ErrorIs(tst, p.Link("time", pty.Unity()), ErrLocked)
	require.ErrorIs(tst, p.AddBC("boundary_faces", "dirichlet", "value", "0"), ErrLocked)
	require.ErrorIs(tst, p.AddIC("", "value", "1"), ErrLocked)
	require.ErrorIs(tst, p.AddReaction("", "linear", pty.Unity()), ErrLocked)
	require.ErrorIs(tst, p.AddSourceTermByVal("", "cells", "1"), ErrLocked)
	require.ErrorIs(tst, p.SetReactionOption("", "lumping", "true"), ErrLocked)
	require.ErrorIs(tst, p.SetSourceTermOption("", "quadrature", "bary"), ErrLocked)

	assert.Equal(tst, before.Scheme, p.Scheme)
	assert.Equal(tst, before.Flag, p.Flag)
	assert.Len(tst, p.BC.Defs, 1)
	assert.Empty(tst, p.Time.ICs)
	assert.Empty(tst, p.Reactions)
	assert.Empty(tst, p.Sources)
}

func Test_param04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param04. boundary conditions")

	p := newTestParam()
	require.NoError(tst, p.AddBC("boundary_faces", "dirichlet", "value", "0.0"))
	require.NoError(tst, p.AddBC("boundary_faces", "dirichlet", "value", "0.1"))
	require.NoError(tst, p.AddBC("boundary_faces", "neumann", "value", 0.0))
	require.NoError(tst, p.AddBC("boundary_faces", "robin", "value", "0 0"))
	require.NoError(tst, p.AddBC("boundary_faces", "dirichlet", "analytic", constFcn(0)))
	require.Len(tst, p.BC.Defs, 5)
	assert.Equal(tst, BcHomDirichlet, p.BC.Defs[0].Type)
	assert.Equal(tst, BcDirichlet, p.BC.Defs[1].Type)
	assert.Equal(tst, BcHomNeumann, p.BC.Defs[2].Type)
	assert.Equal(tst, BcRobin, p.BC.Defs[3].Type)
	assert.Equal(tst, BcDirichlet, p.BC.Defs[4].Type)
	chk.Array(tst, "robin", 1e-17, p.BC.Defs[3].Def.Vals, []float64{0, 0})

	require.ErrorIs(tst, p.AddBC("wall", "dirichlet", "value", "0"), ErrInvalidMeshLocation)
	require.ErrorIs(tst, p.AddBC("boundary_faces", "periodic", "value", "0"), ErrInvalidBCKind)
	require.ErrorIs(tst, p.AddBC("boundary_faces", "dirichlet", "law", "0"), ErrInvalidDefinitionKind)
	require.ErrorIs(tst, p.AddBC("boundary_faces", "dirichlet", "value", "abc"), ErrInvalidValue)
	require.ErrorIs(tst, p.AddBC("boundary_faces", "robin", "value", "1"), ErrInvalidValue)
	require.ErrorIs(tst, p.AddBC("boundary_faces", "dirichlet", "array", "1"), ErrInvalidValue)
	assert.Len(tst, p.BC.Defs, 5)

	// vector equations are never downgraded
	q := New(EqUser, VarVector, BcHomDirichlet, locs{"boundary_faces": 2}, Presets{})
	require.NoError(tst, q.AddBC("boundary_faces", "dirichlet", "value", "0 0 0"))
	assert.Equal(tst, BcDirichlet, q.BC.Defs[0].Type)

	// arrays and user functions
	arr := &ArrayDef{Stride: 1, Interlaced: true, Vals: []float64{1, 2, 3}}
	require.NoError(tst, p.AddBC("boundary_faces", "dirichlet", "array", arr))
	res := []float64{0}
	p.BC.Defs[5].Def.Eval(res, 2, nil, 0)
	chk.Float64(tst, "array", 1e-17, res[0], 3)
	user := func(x []float64, t float64, res []float64) { res[0] = t }
	require.NoError(tst, p.AddBC("boundary_faces", "neumann", "user", user))
	p.BC.Defs[6].Def.Eval(res, 0, nil, 7)
	chk.Float64(tst, "user", 1e-17, res[0], 7)
}

func Test_param05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param05. reactions and source terms")

	p := newTestParam()
	k := pty.Unity()
	require.NoError(tst, p.AddReaction("decay", "linear", k))
	require.NoError(tst, p.AddReaction("", "linear", pty.Unity()))
	assert.Equal(tst, "reaction_01", p.Reactions[1].Name)
	assert.Equal(tst, HodgeWbs, p.Reactions[0].Hodge.Algo)
	assert.Equal(tst, HodgeVpcd, p.Reactions[0].Hodge.Type)
	assert.NotZero(tst, p.Flag&FlagReaction)
	require.ErrorIs(tst, p.AddReaction("bad", "nonlinear", k), ErrInvalidValue)

	got, err := p.ReactionProperty("decay")
	require.NoError(tst, err)
	assert.Same(tst, k, got)
	_, err = p.ReactionProperty("growth")
	require.ErrorIs(tst, err, ErrNotFound)

	require.NoError(tst, p.SetReactionOption("decay", "lumping", "true"))
	require.NoError(tst, p.SetReactionOption("", "hodge_algo", "voronoi"))
	require.NoError(tst, p.SetReactionOption("", "hodge_coef", "sushi"))
	require.NoError(tst, p.SetReactionOption("decay", "inv_pty", "true"))
	assert.True(tst, p.Reactions[0].DoLumping)
	assert.False(tst, p.Reactions[1].DoLumping)
	assert.Equal(tst, HodgeVoronoi, p.Reactions[1].Hodge.Algo)
	assert.True(tst, p.Reactions[0].Hodge.InvPty)
	require.ErrorIs(tst, p.SetReactionOption("growth", "lumping", "true"), ErrNotFound)
	require.ErrorIs(tst, p.SetReactionOption("", "mass", "true"), ErrInvalidKey)
	require.ErrorIs(tst, p.SetReactionOption("", "lumping", "yes"), ErrInvalidValue)

	// face-based reaction terms
	require.NoError(tst, p.SetOptionByName("space_scheme", "cdo_fb"))
	assert.Equal(tst, HodgeCpvd, p.Reactions[0].Hodge.Type)

	// source terms
	require.NoError(tst, p.AddSourceTermByVal("", "cells", "1"))
	require.NoError(tst, p.AddSourceTermByAnalytic("heat", "cells", constFcn(2)))
	require.NoError(tst, p.AddGravitySourceTerm("cells", &ArrayDef{Stride: 1, Vals: []float64{1}}))
	assert.Equal(tst, "sourceterm_00", p.Sources[0].Name)
	assert.Equal(tst, "gravity_source", p.Sources[2].Name)
	assert.Equal(tst, SourceGravity, p.Sources[2].Type)
	require.NoError(tst, p.SetSourceTermOption("heat", "quadrature", "highest"))
	assert.Equal(tst, QuadHighest, p.Sources[1].Quad)
	assert.Equal(tst, QuadBary, p.Sources[0].Quad)
	require.ErrorIs(tst, p.SetSourceTermOption("cold", "quadrature", "bary"), ErrNotFound)
	require.ErrorIs(tst, p.SetSourceTermOption("", "post", "bary"), ErrInvalidKey)
	require.ErrorIs(tst, p.AddSourceTermByVal("", "nowhere", "1"), ErrInvalidMeshLocation)

	// links and initial conditions
	require.ErrorIs(tst, p.Link("convection", pty.Unity()), ErrInvalidTerm)
	require.ErrorIs(tst, p.Link("advection", pty.Unity()), ErrInvalidValue)
	require.NoError(tst, p.Link("time", pty.Unity()))
	require.NoError(tst, p.Link("advection", pty.NewAdvField("beta", 1, 0, 0)))
	assert.True(tst, p.IsUnsteady())
	assert.NotZero(tst, p.Flag&FlagConvection)
	require.NoError(tst, p.AddIC("", "value", "1"))
	require.NoError(tst, p.AddIC("cells", "analytic", constFcn(1)))
	require.ErrorIs(tst, p.AddIC("", "array", &ArrayDef{Stride: 1}), ErrInvalidDefinitionKind)
	assert.Equal(tst, -1, p.Time.ICs[0].MlId)

	if chk.Verbose {
		p.Summary()
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build noexternal

package sles

import (
	"testing"

	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

func Test_noexternal01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("noexternal01")

	ls := Presets().LinSol
	if ls.Family != param.FamilyNative || ls.Solver != param.ItSolCg || ls.Precond != param.PrecondJacobi {
		tst.Errorf("presets should select native cg+jacobi. %v/%v+%v is wrong\n", ls.Family, ls.Solver, ls.Precond)
	}

	reg := NewRegistry()
	_, err := reg.Define("u", settings(param.FamilyExternal, param.ItSolCg, param.PrecondJacobi), 0)
	require.ErrorIs(tst, err, param.ErrBackendUnavailable)
	chk.Int(tst, "len", reg.Len(), 0)

	_, err = reg.Define("u", settings(param.FamilyNative, param.ItSolCg, param.PrecondJacobi), 0)
	require.NoError(tst, err)
}

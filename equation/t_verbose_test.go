// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"testing"

	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gocdo/sles"
	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
	logrus.SetLevel(logrus.DebugLevel)
}

// newPoisson returns an equation with unit diffusion, homogeneous Dirichlet conditions and a
// unit source over all cells
func newPoisson(tst *testing.T, m *mesh.Mesh, scheme string) *Equation {
	eq := New("poisson", "u", param.EqUser, param.VarScalar, param.BcHomDirichlet, m.Locs)
	eq.Registry = sles.NewRegistry()
	require.NoError(tst, eq.SetOption("space_scheme", scheme))
	require.NoError(tst, eq.Link("diffusion", pty.Unity()))
	require.NoError(tst, eq.AddSourceTermByVal("unit", "cells", "1"))
	return eq
}

// setup runs LastSetup, CreateField and InitSystem
func setup(tst *testing.T, eq *Equation, m *mesh.Mesh) *field.Registry {
	fields := field.NewRegistry()
	require.NoError(tst, eq.LastSetup())
	require.NoError(tst, eq.CreateField(fields, m))
	require.NoError(tst, eq.InitSystem(m, nil))
	return fields
}

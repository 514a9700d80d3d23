// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build noexternal

package sles

import "github.com/cpmech/gocdo/param"

// the external family is not compiled in
const externalAvailable = false

// newExternal reports that the external family was not compiled in
func newExternal(ls param.LinSol) (solver, bool, error) {
	return nil, false, param.NewError(param.ErrBackendUnavailable, "", ls.Solver.String(), ls.Precond.String(),
		"external solver family is not available in this build")
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

// Key is a closed set of configuration keys
type Key int

const (
	KeySpaceScheme Key = iota
	KeyHodgeDiffAlgo
	KeyHodgeDiffCoef
	KeyHodgeTimeAlgo
	KeyHodgeTimeCoef
	KeySolverFamily
	KeyItsol
	KeyPrecond
	KeyItsolMaxIter
	KeyItsolEps
	KeyItsolResnorm
	KeyItsolAmgType
	KeyVerbosity
	KeyItsolVerbosity
	KeyBcEnforcement
	KeyBcQuadrature
	KeyExtraOp
	KeyAdvFormulation
	KeyAdvWeight
	KeyAdvWeightCriterion
	KeyAdvFluxQuad
	KeyTimeScheme
	KeyTimeTheta
	NumKeys // number of keys
)

var keyNames = []string{
	"space_scheme",
	"hodge_diff_algo",
	"hodge_diff_coef",
	"hodge_time_algo",
	"hodge_time_coef",
	"solver_family",
	"itsol",
	"precond",
	"itsol_max_iter",
	"itsol_eps",
	"itsol_resnorm",
	"itsol_amg_type",
	"verbosity",
	"itsol_verbosity",
	"bc_enforcement",
	"bc_quadrature",
	"extra_op",
	"adv_formulation",
	"adv_weight",
	"adv_weight_criterion",
	"adv_flux_quad",
	"time_scheme",
	"time_theta",
}

// String returns the external name of the key
func (o Key) String() string { return name(keyNames, int(o)) }

// ParseKey returns the key corresponding to name
func ParseKey(keyname string) (Key, error) {
	i := index(keyNames, keyname)
	if i < 0 {
		return 0, NewError(ErrInvalidKey, "", keyname, "", "")
	}
	return Key(i), nil
}

// KeyNames returns the names of all keys
func KeyNames() []string {
	return append([]string{}, keyNames...)
}

// reaction keys
var reactionKeyNames = []string{"lumping", "hodge_algo", "hodge_coef", "inv_pty"}

// source term keys
var sourceKeyNames = []string{"quadrature"}

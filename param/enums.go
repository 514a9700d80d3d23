// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import "github.com/cpmech/gosl/io"

// EqType defines the kind of equation
type EqType int

const (
	EqUser        EqType = iota // user-defined equation
	EqPredefined                // predefined equation such as the wall distance
	EqGroundwater               // derived from groundwater physics
)

var eqTypeNames = []string{"user", "predefined", "groundwater"}

func (o EqType) String() string { return name(eqTypeNames, int(o)) }

// VarType defines the kind of unknown
type VarType int

const (
	VarScalar VarType = iota // scalar
	VarVector                // vector
	VarTensor                // tensor
)

var varTypeNames = []string{"scalar", "vector", "tensor"}

func (o VarType) String() string { return name(varTypeNames, int(o)) }

// Dim returns the number of components
func (o VarType) Dim() int {
	switch o {
	case VarVector:
		return 3
	case VarTensor:
		return 9
	}
	return 1
}

// SpaceScheme defines the space discretisation
type SpaceScheme int

const (
	SchemeCdoVb SpaceScheme = iota // vertex-based
	SchemeCdoFb                    // face-based
)

var schemeNames = []string{"cdo_vb", "cdo_fb"}

func (o SpaceScheme) String() string { return name(schemeNames, int(o)) }

// HodgeType defines the pair of primal and dual entities linked by a discrete Hodge operator
type HodgeType int

const (
	HodgeVpcd HodgeType = iota // primal vertices to dual cells
	HodgeEpfd                  // primal edges to dual faces
	HodgeFped                  // primal faces to dual edges
	HodgeEdfp                  // dual edges to primal faces
	HodgeCpvd                  // primal cells to dual vertices
)

var hodgeTypeNames = []string{"VpCd", "EpFd", "FpEd", "EdFp", "CpVd"}

func (o HodgeType) String() string { return name(hodgeTypeNames, int(o)) }

// HodgeAlgo defines the algorithm used to build a discrete Hodge operator
type HodgeAlgo int

const (
	HodgeVoronoi HodgeAlgo = iota // diagonal operator; exact on orthogonal meshes
	HodgeWbs                      // whitney barycentric subdivision
	HodgeCost                     // consistency plus stabilisation
)

var hodgeAlgoNames = []string{"voronoi", "wbs", "cost"}

func (o HodgeAlgo) String() string { return name(hodgeAlgoNames, int(o)) }

// TimeScheme defines the time discretisation
type TimeScheme int

const (
	TimeImplicit      TimeScheme = iota // θ = 1
	TimeExplicit                        // θ = 0
	TimeCrankNicolson                   // θ = 1/2
	TimeTheta                           // θ given by the user
)

var timeSchemeNames = []string{"implicit", "explicit", "crank_nicolson", "theta_scheme"}

func (o TimeScheme) String() string { return name(timeSchemeNames, int(o)) }

// AdvForm defines the formulation of the advection term
type AdvForm int

const (
	AdvConservative    AdvForm = iota // div(β u)
	AdvNonConservative                // β·grad(u)
)

var advFormNames = []string{"conservative", "non_conservative"}

func (o AdvForm) String() string { return name(advFormNames, int(o)) }

// AdvWeight defines the weighting function of the advection operator
type AdvWeight int

const (
	AdvUpwind AdvWeight = iota
	AdvSamarskii
	AdvSg
	AdvD10g5
	AdvCentered
)

var advWeightNames = []string{"upwind", "samarskii", "sg", "d10g5", "centered"}

func (o AdvWeight) String() string { return name(advWeightNames, int(o)) }

// AdvCriterion defines how the local Péclet number is evaluated
type AdvCriterion int

const (
	AdvCritXexc AdvCriterion = iota // β evaluated at edge midpoint
	AdvCritFlux                     // flux of β across the dual face
)

var advCritNames = []string{"xexc", "flux"}

func (o AdvCriterion) String() string { return name(advCritNames, int(o)) }

// Quadrature defines the quadrature rule used to integrate definitions
type Quadrature int

const (
	QuadBary    Quadrature = iota // one point at barycentre
	QuadHigher                    // four points per tetrahedron
	QuadHighest                   // five points per tetrahedron
)

var quadNames = []string{"bary", "higher", "highest"}

func (o Quadrature) String() string { return name(quadNames, int(o)) }

// BcType defines the kind of boundary condition
type BcType int

const (
	BcHomDirichlet BcType = iota // u = 0
	BcDirichlet                  // u = g
	BcHomNeumann                 // K grad(u)·n = 0
	BcNeumann                    // K grad(u)·n = g
	BcRobin                      // K grad(u)·n + α u = g
)

var bcTypeNames = []string{"homogeneous_dirichlet", "dirichlet", "homogeneous_neumann", "neumann", "robin"}

func (o BcType) String() string { return name(bcTypeNames, int(o)) }

// IsDirichlet tells whether o is a (homogeneous or not) Dirichlet condition
func (o BcType) IsDirichlet() bool { return o == BcDirichlet || o == BcHomDirichlet }

// BcEnforcement defines how Dirichlet conditions are enforced
type BcEnforcement int

const (
	BcStrong       BcEnforcement = iota // elimination
	BcPenalization                      // large diagonal coefficient
	BcWeakNitsche                       // Nitsche
	BcWeakSym                           // symmetric Nitsche
)

var bcEnforcementNames = []string{"strong", "penalization", "weak", "weak_sym"}

func (o BcEnforcement) String() string { return name(bcEnforcementNames, int(o)) }

// DefType defines the kind of definition of a source term, a boundary or an initial condition
type DefType int

const (
	DefValue    DefType = iota // constant value
	DefAnalytic                // function of (t,x)
	DefArray                   // external array
	DefUser                    // user callback
)

var defTypeNames = []string{"value", "analytic", "array", "user"}

func (o DefType) String() string { return name(defTypeNames, int(o)) }

// ReactionType defines the kind of reaction term
type ReactionType int

const (
	ReactionLinear ReactionType = iota
)

var reactionTypeNames = []string{"linear"}

func (o ReactionType) String() string { return name(reactionTypeNames, int(o)) }

// SourceType defines the kind of source term
type SourceType int

const (
	SourceUser    SourceType = iota // defined by the user
	SourceGravity                   // gravity-driven term
)

var sourceTypeNames = []string{"user", "gravity"}

func (o SourceType) String() string { return name(sourceTypeNames, int(o)) }

// Family defines the family of linear solvers
type Family int

const (
	FamilyNative   Family = iota // in-house solvers
	FamilyExternal               // external ecosystem
)

var familyNames = []string{"native", "external"}

// familyAliases holds alternative names of solver families
var familyAliases = map[string]Family{"cs": FamilyNative, "petsc": FamilyExternal}

func (o Family) String() string { return name(familyNames, int(o)) }

// ItSol defines the iterative solver
type ItSol int

const (
	ItSolCg    ItSol = iota // conjugate gradient
	ItSolBicg               // bi-conjugate gradient stabilised
	ItSolGmres              // generalised minimal residual
	ItSolAmg                // algebraic multigrid
)

var itsolNames = []string{"cg", "bicg", "gmres", "amg"}

func (o ItSol) String() string { return name(itsolNames, int(o)) }

// Precond defines the preconditioner
type Precond int

const (
	PrecondJacobi Precond = iota // diagonal
	PrecondPoly1                 // degree 1 Neumann polynomial
	PrecondSsor                  // symmetric successive over-relaxation
	PrecondIlu0                  // incomplete LU with no fill-in
	PrecondIcc0                  // incomplete Cholesky with no fill-in
	PrecondAmg                   // algebraic multigrid
	PrecondAs                    // additive Schwarz
)

var precondNames = []string{"jacobi", "poly1", "ssor", "ilu0", "icc0", "amg", "as"}

func (o Precond) String() string { return name(precondNames, int(o)) }

// AmgType defines the aggregation used by algebraic multigrid preconditioners
type AmgType int

const (
	AmgSmoothed AmgType = iota // smoothed aggregation
	AmgPlain                   // plain aggregation
)

var amgTypeNames = []string{"smoothed", "plain"}

func (o AmgType) String() string { return name(amgTypeNames, int(o)) }

// Flag holds the status bits of an equation
type Flag int

const (
	FlagLocked     Flag = 1 << iota // parameters cannot be modified anymore
	FlagUnsteady                    // time term
	FlagConvection                  // advection term
	FlagDiffusion                   // diffusion term
	FlagReaction                    // reaction term(s)
)

// String returns the list of raised flags
func (o Flag) String() (l string) {
	names := []string{"locked", "unsteady", "convection", "diffusion", "reaction"}
	for i, n := range names {
		if o&(1<<uint(i)) != 0 {
			if l != "" {
				l += "|"
			}
			l += n
		}
	}
	if l == "" {
		return "none"
	}
	return
}

// ProcessFlag holds the post-processing requests
type ProcessFlag int

const (
	PostNone       ProcessFlag = 1 << iota // suppress extra operations
	PostPeclet                             // Péclet number per cell
	PostUpwindCoef                         // upwind coefficient per cell
)

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return io.Sf("unknown(%d)", i)
	}
	return names[i]
}

func index(names []string, val string) int {
	for i, n := range names {
		if n == val {
			return i
		}
	}
	return -1
}

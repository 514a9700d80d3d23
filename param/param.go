// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package param implements the numerical parameters of an equation: space and time schemes,
// discrete Hodge operators, boundary and initial conditions, source and reaction terms and the
// settings of the linear algebra
package param

import (
	"math"
	"strconv"

	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Locator resolves mesh location names; e.g. *mesh.Locations
type Locator interface {
	Id(name string) int // returns -1 if name is unknown
}

// Hodge describes a discrete Hodge operator
type Hodge struct {
	Type   HodgeType // pair of entities
	Algo   HodgeAlgo // algorithm
	Coef   float64   // stabilisation coefficient (cost)
	InvPty bool      // use the inverse of the property
}

// IcDef holds an initial condition
type IcDef struct {
	MlId   int    // mesh location; -1 means all entities holding DOFs
	MlName string // mesh location name; may be empty
	Def    *Def   // definition
}

// TimeInfo holds the time discretisation
type TimeInfo struct {
	Scheme    TimeScheme // scheme
	Theta     float64    // θ coefficient
	DoLumping bool       // lump the time Hodge
	ICs       []*IcDef   // initial conditions
}

// Advection holds the settings of the advection term
type Advection struct {
	Form      AdvForm      // formulation
	Weight    AdvWeight    // weighting function
	Criterion AdvCriterion // Péclet criterion
	Quad      Quadrature   // flux quadrature
}

// ReactionTerm holds a reaction term
type ReactionTerm struct {
	Name      string        // name
	Type      ReactionType  // kind
	Hodge     Hodge         // discrete Hodge operator
	DoLumping bool          // lump the Hodge operator
	Pty       *pty.Property // reaction coefficient
}

// SourceTerm holds a source term
type SourceTerm struct {
	Name   string     // name
	Type   SourceType // kind
	MlId   int        // mesh location
	MlName string     // mesh location name
	Def    *Def       // definition
	Quad   Quadrature // quadrature rule for analytic definitions
}

// BcDef holds one boundary condition over a mesh location
type BcDef struct {
	MlId   int    // mesh location
	MlName string // mesh location name
	Type   BcType // kind
	Def    *Def   // definition
}

// BcParam holds the set of boundary conditions
type BcParam struct {
	Default     BcType        // kind of boundary condition of faces without definition
	Enforcement BcEnforcement // enforcement of Dirichlet conditions
	Quad        Quadrature    // quadrature rule
	UseSubdiv   bool          // integrate over the subdivision of faces
	Defs        []*BcDef      // definitions
}

// LinSol holds the settings of the linear solver
type LinSol struct {
	Family        Family  // family of solvers
	Solver        ItSol   // iterative solver
	Precond       Precond // preconditioner
	NmaxIter      int     // max number of iterations
	Eps           float64 // stopping criterion
	OutputFreq    int     // frequency of residual output
	ResNormalized bool    // normalise the residual
	AmgType       AmgType // aggregation of the external AMG preconditioner
}

// Algo holds the settings of the outer (non-linear) algorithm
type Algo struct {
	NmaxIter      int     // max number of iterations per step
	NmaxCumulIter int     // max cumulated number of iterations
	Eps           float64 // stopping criterion
	NIter         int     // last number of iterations
	NCumulIter    int     // cumulated number of iterations
}

// Presets holds the default settings of the linear algebra
type Presets struct {
	LinSol LinSol
	Algo   Algo
}

// Param holds the parameters of an equation
type Param struct {
	Eqname        string          // name of the equation (for messages)
	Type          EqType          // kind of equation
	VarType       VarType         // kind of unknown
	Scheme        SpaceScheme     // space discretisation
	Flag          Flag            // status bits
	Process       ProcessFlag     // post-processing requests
	Verbosity     int             // verbosity level
	SlesVerbosity int             // verbosity level of the linear solver
	TimeHodge     Hodge           // time term
	DiffHodge     Hodge           // diffusion term
	Time          TimeInfo        // time discretisation
	Adv           Advection       // advection term
	Reactions     []*ReactionTerm // reaction terms
	Sources       []*SourceTerm   // source terms
	BC            BcParam         // boundary conditions
	LinSol        LinSol          // linear solver
	Algo          Algo            // outer algorithm
	DiffPty       *pty.Property   // diffusion property
	TimePty       *pty.Property   // time property
	AdvField      *pty.AdvField   // advection field

	locs Locator // mesh locations
}

// New returns new parameters with default values
//  defaultBC -- BcHomDirichlet or BcHomNeumann
func New(typ EqType, vtype VarType, defaultBC BcType, locs Locator, presets Presets) (o *Param) {
	if defaultBC != BcHomDirichlet && defaultBC != BcHomNeumann {
		chk.Panic("default boundary condition must be homogeneous. %v is invalid", defaultBC)
	}
	o = new(Param)
	o.Type = typ
	o.VarType = vtype
	o.Scheme = SchemeCdoVb
	o.TimeHodge = Hodge{Type: HodgeVpcd, Algo: HodgeVoronoi}
	o.DiffHodge = Hodge{Type: HodgeEpfd, Algo: HodgeCost, Coef: 1.0 / 3.0}
	o.Time = TimeInfo{Scheme: TimeImplicit, Theta: 1}
	o.Adv = Advection{Form: AdvConservative, Weight: AdvUpwind, Criterion: AdvCritXexc, Quad: QuadBary}
	o.BC = BcParam{Default: defaultBC, Enforcement: BcStrong, Quad: QuadBary}
	o.LinSol = presets.LinSol
	o.Algo = presets.Algo
	o.locs = locs
	return
}

// IsLocked tells whether the parameters cannot be modified anymore
func (o *Param) IsLocked() bool { return o.Flag&FlagLocked != 0 }

// IsUnsteady tells whether there is a time term
func (o *Param) IsUnsteady() bool { return o.Flag&FlagUnsteady != 0 }

// Lock forbids further modifications
func (o *Param) Lock() { o.Flag |= FlagLocked }

// SetOptionByName sets one option given by the name of the key and a value
func (o *Param) SetOptionByName(keyname, val string) error {
	if o.IsLocked() {
		return o.err(ErrLocked, keyname, val, "")
	}
	key, err := ParseKey(keyname)
	if err != nil {
		return o.err(ErrInvalidKey, keyname, val, "")
	}
	return o.SetOption(key, val)
}

// SetOption sets one option given by a key and a value
func (o *Param) SetOption(key Key, val string) error {
	if o.IsLocked() {
		return o.err(ErrLocked, key.String(), val, "")
	}
	if key < 0 || key >= NumKeys {
		return o.err(ErrInvalidKey, key.String(), val, "")
	}
	invalid := func(choices string) error {
		return o.err(ErrInvalidValue, key.String(), val, "options are "+choices)
	}
	switch key {

	case KeySpaceScheme:
		i := index(schemeNames, val)
		if i < 0 {
			return invalid("cdo_vb or cdo_fb")
		}
		o.setScheme(SpaceScheme(i))

	case KeyHodgeDiffAlgo, KeyHodgeTimeAlgo:
		i := index(hodgeAlgoNames, val)
		if i < 0 {
			return invalid("cost, voronoi or wbs")
		}
		if key == KeyHodgeDiffAlgo {
			o.DiffHodge.Algo = HodgeAlgo(i)
		} else {
			o.TimeHodge.Algo = HodgeAlgo(i)
		}

	case KeyHodgeDiffCoef, KeyHodgeTimeCoef:
		coef, ok := parseCoef(val)
		if !ok {
			return invalid("dga, sushi, gcr or a positive number")
		}
		if key == KeyHodgeDiffCoef {
			o.DiffHodge.Coef = coef
		} else {
			o.TimeHodge.Coef = coef
		}

	case KeySolverFamily:
		i := index(familyNames, val)
		if i < 0 {
			f, ok := familyAliases[val]
			if !ok {
				return invalid("native (alias cs) or external (alias petsc)")
			}
			i = int(f)
		}
		o.LinSol.Family = Family(i)

	case KeyItsol:
		i := index(itsolNames, val)
		if i < 0 {
			return invalid("cg, bicg, gmres or amg")
		}
		o.LinSol.Solver = ItSol(i)

	case KeyPrecond:
		i := index(precondNames, val)
		if i < 0 {
			return invalid("jacobi, poly1, ssor, ilu0, icc0, amg or as")
		}
		o.LinSol.Precond = Precond(i)

	case KeyItsolMaxIter:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return invalid("positive integers")
		}
		o.LinSol.NmaxIter = n

	case KeyItsolEps:
		x, err := strconv.ParseFloat(val, 64)
		if err != nil || x <= 0 {
			return invalid("positive numbers")
		}
		o.LinSol.Eps = x

	case KeyItsolResnorm:
		b, ok := parseBool(val)
		if !ok {
			return invalid("true or false")
		}
		o.LinSol.ResNormalized = b

	case KeyItsolAmgType:
		i := index(amgTypeNames, val)
		if i < 0 {
			return invalid("smoothed or plain")
		}
		o.LinSol.AmgType = AmgType(i)

	case KeyVerbosity, KeyItsolVerbosity:
		n, err := strconv.Atoi(val)
		if err != nil {
			return invalid("integers")
		}
		if key == KeyVerbosity {
			o.Verbosity = n
		} else {
			o.SlesVerbosity = n
		}

	case KeyBcEnforcement:
		i := index(bcEnforcementNames, val)
		if i < 0 {
			return invalid("strong, penalization, weak or weak_sym")
		}
		o.BC.Enforcement = BcEnforcement(i)

	case KeyBcQuadrature:
		if val == "subdiv" {
			o.BC.UseSubdiv = true
			break
		}
		i := index(quadNames, val)
		if i < 0 {
			return invalid("subdiv, bary, higher or highest")
		}
		o.BC.Quad = Quadrature(i)

	case KeyExtraOp:
		switch val {
		case "none":
			o.Process |= PostNone
		case "peclet":
			o.Process |= PostPeclet
		case "upwind_coef":
			o.Process |= PostUpwindCoef
		default:
			return invalid("none, peclet or upwind_coef")
		}

	case KeyAdvFormulation:
		i := index(advFormNames, val)
		if i < 0 {
			return invalid("conservative or non_conservative")
		}
		o.Adv.Form = AdvForm(i)

	case KeyAdvWeight:
		i := index(advWeightNames, val)
		if i < 0 {
			return invalid("upwind, samarskii, sg, d10g5 or centered")
		}
		o.Adv.Weight = AdvWeight(i)

	case KeyAdvWeightCriterion:
		i := index(advCritNames, val)
		if i < 0 {
			return invalid("xexc or flux")
		}
		o.Adv.Criterion = AdvCriterion(i)

	case KeyAdvFluxQuad:
		i := index(quadNames, val)
		if i < 0 {
			return invalid("bary, higher or highest")
		}
		o.Adv.Quad = Quadrature(i)

	case KeyTimeScheme:
		i := index(timeSchemeNames, val)
		if i < 0 {
			return invalid("implicit, explicit, crank_nicolson or theta_scheme")
		}
		o.Time.Scheme = TimeScheme(i)
		switch o.Time.Scheme {
		case TimeImplicit:
			o.Time.Theta = 1
		case TimeExplicit:
			o.Time.Theta = 0
		case TimeCrankNicolson:
			o.Time.Theta = 0.5
		}

	case KeyTimeTheta:
		x, err := strconv.ParseFloat(val, 64)
		if err != nil || x < 0 || x > 1 {
			return invalid("numbers in [0,1]")
		}
		o.Time.Theta = x
	}
	return nil
}

// Link attaches a property or an advection field to a term
//  term -- "diffusion" or "time" with *pty.Property; "advection" with *pty.AdvField
func (o *Param) Link(term string, obj interface{}) error {
	if o.IsLocked() {
		return o.err(ErrLocked, term, "", "")
	}
	switch term {
	case "diffusion", "time":
		p, ok := obj.(*pty.Property)
		if !ok || p == nil {
			return o.err(ErrInvalidValue, term, "", "a *pty.Property is required")
		}
		if term == "diffusion" {
			o.DiffPty = p
			o.Flag |= FlagDiffusion
		} else {
			o.TimePty = p
			o.Flag |= FlagUnsteady
		}
	case "advection":
		a, ok := obj.(*pty.AdvField)
		if !ok || a == nil {
			return o.err(ErrInvalidValue, term, "", "a *pty.AdvField is required")
		}
		o.AdvField = a
		o.Flag |= FlagConvection
	default:
		return o.err(ErrInvalidTerm, term, "", "options are diffusion, time or advection")
	}
	return nil
}

// AddBC adds a boundary condition over a mesh location
//  bcKey  -- dirichlet, neumann or robin
//  defKey -- value, array, analytic or user
//  Note: scalar Dirichlet and Neumann conditions with a zero value become homogeneous
func (o *Param) AddBC(mlName, bcKey, defKey string, val interface{}) error {
	if o.IsLocked() {
		return o.err(ErrLocked, mlName, bcKey, "")
	}
	mlId, err := o.location(mlName)
	if err != nil {
		return err
	}
	var typ BcType
	dim := o.VarType.Dim()
	switch bcKey {
	case "dirichlet":
		typ = BcDirichlet
	case "neumann":
		typ = BcNeumann
	case "robin":
		typ = BcRobin
		dim *= 2
	default:
		return o.err(ErrInvalidBCKind, mlName, bcKey, "options are dirichlet, neumann or robin")
	}
	def, e := newDef(defKey, val, dim)
	if e != nil {
		e.Eqname, e.Item = o.Eqname, mlName
		return e
	}
	if o.VarType == VarScalar && def.IsZero() {
		switch typ {
		case BcDirichlet:
			typ = BcHomDirichlet
		case BcNeumann:
			typ = BcHomNeumann
		}
	}
	o.BC.Defs = append(o.BC.Defs, &BcDef{MlId: mlId, MlName: mlName, Type: typ, Def: def})
	return nil
}

// AddIC adds an initial condition
//  mlName -- mesh location; empty means all entities holding DOFs
//  defKey -- value or analytic
func (o *Param) AddIC(mlName, defKey string, val interface{}) error {
	if o.IsLocked() {
		return o.err(ErrLocked, mlName, defKey, "")
	}
	mlId := -1
	if mlName != "" {
		var err error
		mlId, err = o.location(mlName)
		if err != nil {
			return err
		}
	}
	if defKey != "value" && defKey != "analytic" {
		return o.err(ErrInvalidDefinitionKind, mlName, defKey, "options are value or analytic")
	}
	def, e := newDef(defKey, val, o.VarType.Dim())
	if e != nil {
		e.Eqname, e.Item = o.Eqname, mlName
		return e
	}
	o.Time.ICs = append(o.Time.ICs, &IcDef{MlId: mlId, MlName: mlName, Def: def})
	return nil
}

// AddReaction adds a reaction term
//  name     -- empty means reaction_NN
//  typeName -- linear
func (o *Param) AddReaction(name, typeName string, p *pty.Property) error {
	if o.IsLocked() {
		return o.err(ErrLocked, name, typeName, "")
	}
	if name == "" {
		name = io.Sf("reaction_%02d", len(o.Reactions))
	}
	i := index(reactionTypeNames, typeName)
	if i < 0 {
		return o.err(ErrInvalidValue, name, typeName, "options are linear")
	}
	if p == nil {
		return o.err(ErrInvalidValue, name, "", "a *pty.Property is required")
	}
	if o.findReaction(name) >= 0 {
		return o.err(ErrInvalidValue, name, "", "reaction term exists already")
	}
	r := &ReactionTerm{Name: name, Type: ReactionType(i), Pty: p}
	r.Hodge = o.reactionHodge()
	o.Reactions = append(o.Reactions, r)
	o.Flag |= FlagReaction
	return nil
}

// SetReactionOption sets an option of a reaction term
//  name -- empty means all reaction terms
//  key  -- lumping, hodge_algo, hodge_coef or inv_pty
func (o *Param) SetReactionOption(name, key, val string) error {
	if o.IsLocked() {
		return o.err(ErrLocked, key, val, "")
	}
	terms := o.Reactions
	if name != "" {
		i := o.findReaction(name)
		if i < 0 {
			return o.err(ErrNotFound, name, "", "reaction term is not defined")
		}
		terms = o.Reactions[i : i+1]
	}
	invalid := func(choices string) error {
		return o.err(ErrInvalidValue, key, val, "options are "+choices)
	}
	switch key {
	case "lumping", "inv_pty":
		b, ok := parseBool(val)
		if !ok {
			return invalid("true or false")
		}
		for _, r := range terms {
			if key == "lumping" {
				r.DoLumping = b
			} else {
				r.Hodge.InvPty = b
			}
		}
	case "hodge_algo":
		i := index(hodgeAlgoNames, val)
		if i < 0 {
			return invalid("cost, voronoi or wbs")
		}
		for _, r := range terms {
			r.Hodge.Algo = HodgeAlgo(i)
		}
	case "hodge_coef":
		coef, ok := parseCoef(val)
		if !ok {
			return invalid("dga, sushi, gcr or a positive number")
		}
		for _, r := range terms {
			r.Hodge.Coef = coef
		}
	default:
		return o.err(ErrInvalidKey, key, val, io.Sf("options are %v", reactionKeyNames))
	}
	return nil
}

// ReactionProperty returns the property of a reaction term
func (o *Param) ReactionProperty(name string) (*pty.Property, error) {
	i := o.findReaction(name)
	if i < 0 {
		return nil, o.err(ErrNotFound, name, "", "reaction term is not defined")
	}
	return o.Reactions[i].Pty, nil
}

// AddSourceTerm adds a source term over a mesh location
//  name   -- empty means sourceterm_NN
//  defKey -- value, analytic, array or user
func (o *Param) AddSourceTerm(name, mlName, defKey string, val interface{}) error {
	return o.addSource(name, mlName, SourceUser, defKey, val)
}

// AddSourceTermByVal adds a source term defined by a value
func (o *Param) AddSourceTermByVal(name, mlName string, val string) error {
	return o.addSource(name, mlName, SourceUser, "value", val)
}

// AddSourceTermByAnalytic adds a source term defined by a function
func (o *Param) AddSourceTermByAnalytic(name, mlName string, fcn pty.Func) error {
	return o.addSource(name, mlName, SourceUser, "analytic", fcn)
}

// AddGravitySourceTerm adds a gravity source term defined by an array
func (o *Param) AddGravitySourceTerm(mlName string, arr *ArrayDef) error {
	return o.addSource("gravity_source", mlName, SourceGravity, "array", arr)
}

// SetSourceTermOption sets an option of a source term
//  name -- empty means all source terms
//  key  -- quadrature
func (o *Param) SetSourceTermOption(name, key, val string) error {
	if o.IsLocked() {
		return o.err(ErrLocked, key, val, "")
	}
	terms := o.Sources
	if name != "" {
		i := o.findSource(name)
		if i < 0 {
			return o.err(ErrNotFound, name, "", "source term is not defined")
		}
		terms = o.Sources[i : i+1]
	}
	if key != "quadrature" {
		return o.err(ErrInvalidKey, key, val, io.Sf("options are %v", sourceKeyNames))
	}
	i := index(quadNames, val)
	if i < 0 {
		return o.err(ErrInvalidValue, key, val, "options are bary, higher or highest")
	}
	for _, s := range terms {
		s.Quad = Quadrature(i)
	}
	return nil
}

// Summary returns a description of the parameters
func (o *Param) Summary() (l string) {
	l += io.Sf("  <%s/flag> %v\n", o.Eqname, o.Flag)
	l += io.Sf("  <%s/type> %v (%v)\n", o.Eqname, o.Type, o.VarType)
	l += io.Sf("  <%s/space scheme> %v\n", o.Eqname, o.Scheme)
	l += io.Sf("  <%s/bc> default: %v  enforcement: %v  quadrature: %v  subdiv: %v  definitions: %d\n",
		o.Eqname, o.BC.Default, o.BC.Enforcement, o.BC.Quad, o.BC.UseSubdiv, len(o.BC.Defs))
	for _, d := range o.BC.Defs {
		l += io.Sf("    %s: %v by %v\n", d.MlName, d.Type, d.Def)
	}
	if o.IsUnsteady() {
		l += io.Sf("  <%s/time> scheme: %v  theta: %g  lumping: %v  initial conditions: %d\n",
			o.Eqname, o.Time.Scheme, o.Time.Theta, o.Time.DoLumping, len(o.Time.ICs))
		l += io.Sf("  <%s/time hodge> %s\n", o.Eqname, hodgeSummary(o.TimeHodge))
	}
	if o.Flag&FlagDiffusion != 0 {
		l += io.Sf("  <%s/diffusion> property: %s\n", o.Eqname, o.DiffPty.Name)
		l += io.Sf("  <%s/diffusion hodge> %s\n", o.Eqname, hodgeSummary(o.DiffHodge))
	}
	if o.Flag&FlagConvection != 0 {
		l += io.Sf("  <%s/advection> field: %s  form: %v  weight: %v  criterion: %v  quadrature: %v\n",
			o.Eqname, o.AdvField.Name, o.Adv.Form, o.Adv.Weight, o.Adv.Criterion, o.Adv.Quad)
	}
	for _, r := range o.Reactions {
		l += io.Sf("  <%s/reaction> %s (%v) property: %s  lumping: %v  hodge: %s\n",
			o.Eqname, r.Name, r.Type, r.Pty.Name, r.DoLumping, hodgeSummary(r.Hodge))
	}
	for _, s := range o.Sources {
		l += io.Sf("  <%s/source term> %s (%v) over %s by %v  quadrature: %v\n",
			o.Eqname, s.Name, s.Type, s.MlName, s.Def, s.Quad)
	}
	l += io.Sf("  <%s/sla> family: %v  solver: %v  precond: %v  n_max_iter: %d  eps: %g  normalized: %v\n",
		o.Eqname, o.LinSol.Family, o.LinSol.Solver, o.LinSol.Precond, o.LinSol.NmaxIter, o.LinSol.Eps, o.LinSol.ResNormalized)
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

func (o *Param) err(kind error, item, value, msg string) error {
	return NewError(kind, o.Eqname, item, value, msg)
}

// location returns the id of a mesh location
func (o *Param) location(mlName string) (int, error) {
	id := -1
	if o.locs != nil {
		id = o.locs.Id(mlName)
	}
	if id < 0 {
		return -1, o.err(ErrInvalidMeshLocation, mlName, "", "")
	}
	return id, nil
}

// setScheme sets the space scheme and the consistent Hodge types
func (o *Param) setScheme(s SpaceScheme) {
	o.Scheme = s
	switch s {
	case SchemeCdoVb:
		o.TimeHodge.Type = HodgeVpcd
		o.DiffHodge.Type = HodgeEpfd
	case SchemeCdoFb:
		o.TimeHodge.Type = HodgeCpvd
		o.DiffHodge.Type = HodgeEdfp
	}
	for _, r := range o.Reactions {
		r.Hodge = o.reactionHodge()
	}
}

// reactionHodge returns the default Hodge operator of reaction terms
func (o *Param) reactionHodge() Hodge {
	if o.Scheme == SchemeCdoFb {
		return Hodge{Type: HodgeCpvd, Algo: HodgeVoronoi}
	}
	return Hodge{Type: HodgeVpcd, Algo: HodgeWbs}
}

func (o *Param) addSource(name, mlName string, typ SourceType, defKey string, val interface{}) error {
	if o.IsLocked() {
		return o.err(ErrLocked, name, defKey, "")
	}
	if name == "" {
		name = io.Sf("sourceterm_%02d", len(o.Sources))
	}
	mlId, err := o.location(mlName)
	if err != nil {
		return err
	}
	def, e := newDef(defKey, val, o.VarType.Dim())
	if e != nil {
		e.Eqname, e.Item = o.Eqname, name
		return e
	}
	o.Sources = append(o.Sources, &SourceTerm{Name: name, Type: typ, MlId: mlId, MlName: mlName, Def: def, Quad: QuadBary})
	return nil
}

func (o *Param) findReaction(name string) int {
	for i, r := range o.Reactions {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (o *Param) findSource(name string) int {
	for i, s := range o.Sources {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func hodgeSummary(h Hodge) string {
	l := io.Sf("%v/%v", h.Type, h.Algo)
	if h.Algo == HodgeCost {
		l += io.Sf(" coef=%.4f", h.Coef)
	}
	if h.InvPty {
		l += " inv_pty"
	}
	return l
}

// Theta returns θ for the time term; 1 for steady equations
func (o *Param) Theta() float64 {
	if !o.IsUnsteady() {
		return 1
	}
	return math.Max(0, math.Min(1, o.Time.Theta))
}

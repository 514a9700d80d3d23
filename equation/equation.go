// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package equation implements the controller of one equation: configuration, setup, assembly
// of the linear system when needed, solution and update of the field
package equation

import (
	"time"

	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gocdo/scheme"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gocdo/sles"
	"github.com/cpmech/gosl/io"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Log is the logger of convergence messages; e.g. set by inp.InitLogFile
var Log logrus.FieldLogger = logrus.StandardLogger()

// State defines the stage of the life cycle of an equation
type State int

const (
	StateConfigured  State = iota // parameters may be modified
	StateLocked                   // parameters are frozen and the solver is defined
	StateInitialized              // builder is allocated
	StateAssembled                // system is built
	StateSolved                   // system is solved
	StateFreed                    // all data are released
)

var stateNames = []string{"configured", "locked", "initialized", "assembled", "solved", "freed"}

// String returns the name of the state
func (o State) String() string {
	if o < 0 || int(o) >= len(stateNames) {
		return io.Sf("unknown(%d)", int(o))
	}
	return stateNames[o]
}

// Timers holds the cumulated cost of each stage
type Timers struct {
	Build   time.Duration // assembly of systems
	Solve   time.Duration // linear solver
	Extra   time.Duration // extra operations
	NBuilds int           // number of assemblies
	NSolves int           // number of solutions
}

// Equation holds one equation and its linear system
type Equation struct {
	Registry  *sles.Registry // solver registry; sles.Default unless set before LastSetup
	Timers    Timers         // timers
	LastSolve sles.Result    // telemetry of the last solve

	name    string           // name of equation
	varname string           // name of unknown field
	prm     *param.Param     // parameters
	state   State            // stage
	doBuild bool             // the system must be (re)built
	alloc   scheme.Allocator // allocator of builder
	builder scheme.Builder   // builder; nil before InitSystem
	binding *sles.Binding    // linear solver
	fld     *field.Field     // unknown field; owned by a field.Registry
	ts      scheme.TimeStep  // time step seen by builder; a copy of the caller's
	st      *sla.Structure   // pattern of matrix
	a       *sla.SysMatrix   // matrix
	rhs     []float64        // right-hand side
}

// New returns a new equation
//  varname   -- name of the unknown field
//  defaultBC -- param.BcHomDirichlet or param.BcHomNeumann
//  locs      -- mesh locations; e.g. mesh.Locs
func New(name, varname string, typ param.EqType, vtype param.VarType, defaultBC param.BcType, locs param.Locator) (o *Equation) {
	o = &Equation{name: name, varname: varname, Registry: sles.Default}
	o.prm = param.New(typ, vtype, defaultBC, locs, sles.Presets())
	o.prm.Eqname = name
	o.doBuild = true
	return
}

// configuration ////////////////////////////////////////////////////////////////////////////////

// SetOption sets one option by the name of its key
func (o *Equation) SetOption(key, val string) error {
	if err := o.configurable(key); err != nil {
		return err
	}
	return o.prm.SetOptionByName(key, val)
}

// Link attaches a property or an advection field to the diffusion, time or advection term
func (o *Equation) Link(term string, obj interface{}) error {
	if err := o.configurable(term); err != nil {
		return err
	}
	return o.prm.Link(term, obj)
}

// AddBC adds a boundary condition; see param.Param.AddBC
func (o *Equation) AddBC(mlName, bcKey, defKey string, val interface{}) error {
	if err := o.configurable(mlName); err != nil {
		return err
	}
	return o.prm.AddBC(mlName, bcKey, defKey, val)
}

// AddIC adds an initial condition; see param.Param.AddIC
func (o *Equation) AddIC(mlName, defKey string, val interface{}) error {
	if err := o.configurable(mlName); err != nil {
		return err
	}
	return o.prm.AddIC(mlName, defKey, val)
}

// AddReaction adds a reaction term
func (o *Equation) AddReaction(name, typeName string, p *pty.Property) error {
	if err := o.configurable(name); err != nil {
		return err
	}
	return o.prm.AddReaction(name, typeName, p)
}

// SetReactionOption sets an option of a reaction term
func (o *Equation) SetReactionOption(name, key, val string) error {
	if err := o.configurable(name); err != nil {
		return err
	}
	return o.prm.SetReactionOption(name, key, val)
}

// AddSourceTerm adds a source term; see param.Param.AddSourceTerm
func (o *Equation) AddSourceTerm(name, mlName, defKey string, val interface{}) error {
	if err := o.configurable(name); err != nil {
		return err
	}
	return o.prm.AddSourceTerm(name, mlName, defKey, val)
}

// AddSourceTermByVal adds a source term defined by a value
func (o *Equation) AddSourceTermByVal(name, mlName, val string) error {
	if err := o.configurable(name); err != nil {
		return err
	}
	return o.prm.AddSourceTermByVal(name, mlName, val)
}

// AddSourceTermByAnalytic adds a source term defined by a function
func (o *Equation) AddSourceTermByAnalytic(name, mlName string, fcn pty.Func) error {
	if err := o.configurable(name); err != nil {
		return err
	}
	return o.prm.AddSourceTermByAnalytic(name, mlName, fcn)
}

// AddGravitySourceTerm adds a gravity source term defined by an array
func (o *Equation) AddGravitySourceTerm(mlName string, arr *param.ArrayDef) error {
	if err := o.configurable(mlName); err != nil {
		return err
	}
	return o.prm.AddGravitySourceTerm(mlName, arr)
}

// SetSourceTermOption sets an option of a source term; an empty name means all source terms
func (o *Equation) SetSourceTermOption(name, key, val string) error {
	if err := o.configurable(name); err != nil {
		return err
	}
	return o.prm.SetSourceTermOption(name, key, val)
}

// life cycle ///////////////////////////////////////////////////////////////////////////////////

// LastSetup freezes the parameters, selects the builder and defines the linear solver.
// It can be called only once.
func (o *Equation) LastSetup() (err error) {
	if o.state != StateConfigured {
		return o.invalid("last_setup", "parameters are set up already")
	}
	alloc, e := scheme.GetAllocator(o.prm.Scheme)
	if e != nil {
		return param.NewError(param.ErrUnsupportedSchemeCombination, o.name, "space_scheme", o.prm.Scheme.String(), "%v", e)
	}
	if o.Registry == nil {
		o.Registry = sles.Default
	}
	binding, err := o.Registry.Define(o.varname, o.prm.LinSol, o.prm.SlesVerbosity)
	if err != nil {
		if pe, ok := err.(*param.Error); ok {
			pe.Eqname = o.name
		}
		return
	}
	o.alloc, o.binding = alloc, binding
	o.prm.Lock()
	o.state = StateLocked
	if o.prm.Verbosity > 0 {
		Log.WithFields(logrus.Fields{"eq": o.name, "solver": binding.Name()}).Info("setup")
	}
	return
}

// CreateField allocates the unknown field in a registry with the layout of the space scheme
func (o *Equation) CreateField(fields *field.Registry, m *mesh.Mesh) (err error) {
	if o.state != StateLocked {
		return o.invalid("create_field", "fields are created after LastSetup and before InitSystem")
	}
	loc := scheme.DofLocation(o.prm.Scheme)
	n := m.Nverts
	if loc == mesh.LocCells {
		n = m.Ncells
	}
	fld, err := fields.Create(o.varname, loc, n, o.prm.VarType.Dim(), o.prm.IsUnsteady())
	if err != nil {
		return
	}
	o.fld = fld
	return
}

// SetField sets the unknown field allocated elsewhere
func (o *Equation) SetField(fld *field.Field) error {
	if o.state != StateLocked {
		return o.invalid("set_field", "fields are set after LastSetup and before InitSystem")
	}
	o.fld = fld
	return nil
}

// InitSystem allocates the builder, computes the source terms and applies the initial conditions
func (o *Equation) InitSystem(m *mesh.Mesh, ts *scheme.TimeStep) (err error) {
	if o.state != StateLocked {
		return o.invalid("init_system", "LastSetup must be called once before InitSystem")
	}
	if o.fld == nil {
		return o.invalid("init_system", "unknown field %q is not allocated", o.varname)
	}
	o.ts = scheme.TimeStep{}
	if ts != nil {
		o.ts = *ts
	}
	b, err := o.alloc(o.prm, m, &o.ts)
	if err != nil {
		return
	}
	b.ComputeSource()
	if o.prm.IsUnsteady() && len(o.prm.Time.ICs) > 0 {
		if wiv, ok := b.(scheme.WithInitialValues); ok {
			err = wiv.SetInitialValues(o.prm, o.fld)
			if err != nil {
				b.Free()
				return
			}
		}
	}
	o.builder = b
	o.doBuild = true
	o.state = StateInitialized
	return
}

// NeedsBuild tells whether the system must be (re)built
func (o *Equation) NeedsBuild() bool { return o.doBuild }

// SetNeedsBuild sets the staleness flag; e.g. after a change of a property
func (o *Equation) SetNeedsBuild(doBuild bool) { o.doBuild = doBuild }

// BuildSystem assembles the linear system. The first call takes the pattern of the matrix;
// subsequent calls refresh the coefficients only.
func (o *Equation) BuildSystem(m *mesh.Mesh, ts *scheme.TimeStep, dt float64) (err error) {
	if o.state < StateInitialized || o.state == StateFreed {
		return o.invalid("build_system", "InitSystem must be called before BuildSystem")
	}
	if ts != nil {
		o.ts = *ts
	}
	start := time.Now()
	rhs, msr, err := o.builder.BuildSystem(m, o.fld.Val, dt)
	if err != nil {
		return
	}
	if o.prm.Verbosity > 1 && o.ts.Nt == 0 {
		io.Pf("%s", msr.Info(o.name))
	}
	if o.st == nil {
		o.st, o.a = msr.Release()
	} else {
		err = o.a.Refresh(msr)
		if err != nil {
			return
		}
	}
	o.rhs = rhs
	o.doBuild = false
	o.state = StateAssembled
	o.Timers.Build += time.Since(start)
	o.Timers.NBuilds++
	return
}

// Solve solves the linear system and updates the field. Unsteady equations become stale.
// Non-converged solutions are only reported.
func (o *Equation) Solve(logConvergence bool) (err error) {
	if o.state != StateAssembled && o.state != StateSolved {
		return o.invalid("solve", "BuildSystem must be called before Solve")
	}
	if o.doBuild || o.a == nil {
		return o.invalid("solve", "system is stale and must be rebuilt")
	}
	start := time.Now()
	n := o.builder.Ndofs()
	x := o.builder.TmpBuf()
	if wfv, ok := o.builder.(scheme.WithFaceValues); ok {
		copy(x, wfv.FaceValues())
	} else {
		copy(x, o.fld.Val[:n])
	}
	rNorm := 1.0
	if o.prm.LinSol.ResNormalized {
		rNorm = floats.Norm(o.rhs, 2) / float64(n)
	}
	res, err := o.binding.Solve(o.a, o.rhs, x, o.prm.LinSol.Eps, rNorm)
	if err != nil {
		return
	}
	o.LastSolve = res
	if logConvergence {
		Log.WithFields(logrus.Fields{"eq": o.name, "code": res.Code.String(), "iters": res.Iters, "residual": res.Residual}).
			Info(io.Sf("<%s/sles_cvg> %d n_iters %d residual %15.7e", o.name, int(res.Code), res.Iters, res.Residual))
	}
	o.fld.CurrentToPrevious()
	o.builder.UpdateField(x, o.fld.Val)
	if o.prm.IsUnsteady() {
		o.doBuild = true
	}
	o.state = StateSolved
	o.Timers.Solve += time.Since(start)
	o.Timers.NSolves++
	return
}

// ExtraOp runs the extra operations of the builder unless suppressed
func (o *Equation) ExtraOp(ts *scheme.TimeStep, w post.Sink) (err error) {
	if o.state < StateInitialized || o.state == StateFreed {
		return o.invalid("extra_op", "InitSystem must be called before ExtraOp")
	}
	if o.prm.Process&param.PostNone != 0 {
		return
	}
	if ts != nil {
		o.ts = *ts
	}
	start := time.Now()
	o.builder.ExtraOp(o.name, o.fld, w)
	o.Timers.Extra += time.Since(start)
	return
}

// Free releases the builder, the system and the linear solver; it may be called many times
func (o *Equation) Free() {
	if o == nil || o.state == StateFreed {
		return
	}
	if o.builder != nil {
		o.builder.Free()
	}
	if o.binding != nil && o.Registry != nil {
		o.Registry.Free(o.varname)
	}
	o.builder, o.binding, o.st, o.a, o.rhs = nil, nil, nil, nil, nil
	o.state = StateFreed
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// configurable checks that parameters can be modified
func (o *Equation) configurable(item string) error {
	switch o.state {
	case StateConfigured:
		return nil
	case StateFreed:
		return o.invalid(item, "equation is freed")
	}
	return param.NewError(param.ErrLocked, o.name, item, "", "")
}

// invalid returns an invalid state error
func (o *Equation) invalid(item, msg string, args ...interface{}) error {
	return param.NewError(param.ErrInvalidState, o.name, item, o.state.String(), msg, args...)
}

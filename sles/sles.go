// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sles implements the binding between equations and iterative linear solvers. Two
// families are available: the native one, implemented here, and an external one built on a
// third-party Krylov engine (excluded by the noexternal build tag).
package sles

import (
	"math"
	"sync"

	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sirupsen/logrus"
)

// Code holds the convergence state of a solve
type Code int

const (
	Diverged     Code = -3 // residual blew up
	Breakdown    Code = -2 // stagnation or division by zero
	MaxIteration Code = -1 // iteration cap reached
	Converged    Code = 1  // tolerance reached
)

// String returns the name of the code
func (o Code) String() string {
	switch o {
	case Diverged:
		return "diverged"
	case Breakdown:
		return "breakdown"
	case MaxIteration:
		return "max_iteration"
	case Converged:
		return "converged"
	}
	return "unknown"
}

// Result holds the telemetry of a solve
type Result struct {
	Code     Code    // convergence state
	Iters    int     // number of iterations
	Residual float64 // final residual norm
}

// Log is the logger of this package; e.g. set by inp.InitLogFile
var Log logrus.FieldLogger = logrus.StandardLogger()

// divergence factor applied to the initial residual
const divFactor = 1e4

// solver is implemented by the concrete solver/preconditioner pairs
type solver interface {
	setup(a *sla.SysMatrix) error
	solve(b, x []float64, eps, rNorm float64, hist *[]float64) Result
	name() string
}

// Binding holds one solver instance attached to a field
type Binding struct {
	Key        string       // field name
	LinSol     param.LinSol // settings
	Verbosity  int          // verbosity level
	SerialOnly bool         // matrix type restricted to serial runs
	NumSolves  int          // number of calls to Solve
	History    []float64    // residual history of the last solve
	Plot       string       // filename of residual plot; written if Verbosity > 2
	impl       solver
}

// Name returns the name of the solver/preconditioner pair
func (o *Binding) Name() string {
	return io.Sf("%v/%v+%v", o.LinSol.Family, o.LinSol.Solver, o.LinSol.Precond)
}

// Solve solves a x = rhs using x as initial guess
//  eps   -- tolerance
//  rNorm -- normalisation of the residual: the solver stops when |r| < eps rNorm
func (o *Binding) Solve(a *sla.SysMatrix, rhs, x []float64, eps, rNorm float64) (res Result, err error) {
	n := a.N()
	if len(rhs) != n || len(x) != n {
		return res, chk.Err("system with %d rows cannot be solved with len(rhs) = %d and len(x) = %d", n, len(rhs), len(x))
	}
	if rNorm <= 0 || math.IsNaN(rNorm) {
		rNorm = 1
	}
	err = o.impl.setup(a)
	if err != nil {
		return
	}
	o.History = o.History[:0]
	res = o.impl.solve(rhs, x, eps, rNorm, &o.History)
	o.NumSolves++
	if o.Verbosity > 0 {
		Log.WithFields(logrus.Fields{"key": o.Key, "solver": o.impl.name(), "code": res.Code.String(),
			"iters": res.Iters, "residual": res.Residual}).Info("sles")
	}
	if o.Verbosity > 2 && o.Plot != "" {
		err = PlotHistory(o.Plot, o.Key, o.History)
	}
	return
}

// Registry holds solver bindings keyed by field name
type Registry struct {
	mu   sync.Mutex
	list map[string]*Binding
}

// Default is the process-wide registry
var Default = NewRegistry()

// NewRegistry returns a new registry
func NewRegistry() *Registry {
	return &Registry{list: make(map[string]*Binding)}
}

// Define finds or creates the binding of a field. Existing bindings are returned unchanged.
func (o *Registry) Define(key string, ls param.LinSol, verbosity int) (b *Binding, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if b, ok := o.list[key]; ok {
		return b, nil
	}
	b = &Binding{Key: key, LinSol: ls, Verbosity: verbosity}
	switch ls.Family {
	case param.FamilyNative:
		b.impl, err = newNative(ls)
	case param.FamilyExternal:
		b.impl, b.SerialOnly, err = newExternal(ls)
	default:
		chk.Panic("solver family %d is invalid", ls.Family)
	}
	if err != nil {
		return nil, err
	}
	o.list[key] = b
	return
}

// Find returns the binding of a field; nil if not defined
func (o *Registry) Find(key string) *Binding {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.list[key]
}

// Free removes the binding of a field
func (o *Registry) Free(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.list, key)
}

// Len returns the number of bindings
func (o *Registry) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.list)
}

// Presets returns the default settings of the linear algebra: BiCGStab with ILU0 of the external
// family if it is compiled in; CG with Jacobi of the native family otherwise
func Presets() (o param.Presets) {
	o = param.Presets{
		LinSol: param.LinSol{
			Family:     param.FamilyNative,
			Solver:     param.ItSolCg,
			Precond:    param.PrecondJacobi,
			NmaxIter:   2500,
			Eps:        1e-12,
			OutputFreq: 150,
			AmgType:    param.AmgSmoothed,
		},
		Algo: param.Algo{
			NmaxIter:      50,
			NmaxCumulIter: 10000,
			Eps:           1e-6,
		},
	}
	if externalAvailable {
		o.LinSol.Family = param.FamilyExternal
		o.LinSol.Solver = param.ItSolBicg
		o.LinSol.Precond = param.PrecondIlu0
	}
	return
}

// unsupported returns an unsupported combination error
func unsupported(ls param.LinSol) error {
	return param.NewError(param.ErrUnsupportedSolverCombination, "", ls.Solver.String(), ls.Precond.String(),
		"%v family cannot combine %v with %v", ls.Family, ls.Solver, ls.Precond)
}

// monitor tracks the residual of an iterative solve
type monitor struct {
	eps, rNorm float64    // stopping criterion: |r| < eps rNorm
	r0         float64    // initial residual
	nmax       int        // max number of iterations
	freq       int        // output frequency
	hist       *[]float64 // history
}

// check records residual r at iteration it and returns a code (0 means continue)
func (o *monitor) check(it int, r float64) Code {
	*o.hist = append(*o.hist, r)
	if o.freq > 0 && it > 0 && it%o.freq == 0 {
		Log.WithFields(logrus.Fields{"iter": it, "residual": r}).Debug("sles")
	}
	if it == 0 {
		o.r0 = r
	}
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return Diverged
	case r < o.threshold():
		return Converged
	case it > 0 && r > divFactor*o.r0 && r > 100:
		return Diverged
	case it >= o.nmax:
		return MaxIteration
	}
	return 0
}

// threshold returns the absolute stopping residual
func (o *monitor) threshold() float64 { return o.eps * o.rNorm }

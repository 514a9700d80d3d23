// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equation

import (
	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gocdo/scheme"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/io"
)

// Name returns the name of the equation
func (o *Equation) Name() string { return o.name }

// VarName returns the name of the unknown field
func (o *Equation) VarName() string { return o.varname }

// Field returns the unknown field; nil before CreateField or SetField
func (o *Equation) Field() *field.Field { return o.fld }

// Param returns the parameters
func (o *Equation) Param() *param.Param { return o.prm }

// State returns the stage of the life cycle
func (o *Equation) State() State { return o.state }

// Flag returns the status bits
func (o *Equation) Flag() param.Flag { return o.prm.Flag }

// SpaceScheme returns the space discretisation
func (o *Equation) SpaceScheme() param.SpaceScheme { return o.prm.Scheme }

// VarType returns the kind of unknown
func (o *Equation) VarType() param.VarType { return o.prm.VarType }

// Type returns the kind of equation
func (o *Equation) Type() param.EqType { return o.prm.Type }

// IsSteady tells whether the equation has no time term
func (o *Equation) IsSteady() bool { return !o.prm.IsUnsteady() }

// Builder returns the builder; nil before InitSystem
func (o *Equation) Builder() scheme.Builder { return o.builder }

// TimeStep returns the time step seen by the builder
func (o *Equation) TimeStep() scheme.TimeStep { return o.ts }

// Matrix returns the assembled matrix; nil before BuildSystem
func (o *Equation) Matrix() *sla.SysMatrix { return o.a }

// Rhs returns the assembled right-hand side; nil before BuildSystem
func (o *Equation) Rhs() []float64 { return o.rhs }

// FaceValues returns the face unknowns of face-based schemes
func (o *Equation) FaceValues() ([]float64, error) {
	if o.builder == nil {
		return nil, o.invalid("face_values", "InitSystem must be called before FaceValues")
	}
	wfv, ok := o.builder.(scheme.WithFaceValues)
	if !ok {
		return nil, param.NewError(param.ErrNotFound, o.name, "face_values", o.prm.Scheme.String(), "space scheme has no face unknowns")
	}
	return wfv.FaceValues(), nil
}

// DiffusionProperty returns the property of the diffusion term; nil if there is none
func (o *Equation) DiffusionProperty() *pty.Property { return o.prm.DiffPty }

// TimeProperty returns the property of the time term; nil if there is none
func (o *Equation) TimeProperty() *pty.Property { return o.prm.TimePty }

// ReactionProperty returns the property of a reaction term
func (o *Equation) ReactionProperty(name string) (*pty.Property, error) {
	return o.prm.ReactionProperty(name)
}

// Summary returns a description of the equation
func (o *Equation) Summary() (l string) {
	l = io.Sf("\nSummary of the equation %q (unknown %q, state %v)\n", o.name, o.varname, o.state)
	l += o.prm.Summary()
	if o.binding != nil {
		l += io.Sf("  <%s/sles> %s  n_solves: %d\n", o.name, o.binding.Name(), o.binding.NumSolves)
	}
	if o.a != nil {
		l += io.Sf("  <%s/system> n_rows: %d  nnz: %d\n", o.name, o.a.N(), o.a.Nnz())
	}
	l += io.Sf("  <%s/timers> build: %v (%d)  solve: %v (%d)  extra: %v\n", o.name,
		o.Timers.Build, o.Timers.NBuilds, o.Timers.Solve, o.Timers.NSolves, o.Timers.Extra)
	if o.Timers.NSolves > 0 {
		l += io.Sf("  <%s/last solve> %v  n_iters: %d  residual: %g\n", o.name,
			o.LastSolve.Code, o.LastSolve.Iters, o.LastSolve.Residual)
	}
	return
}

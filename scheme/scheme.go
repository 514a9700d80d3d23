// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package scheme implements the CDO space discretisations: builders that assemble the linear
// system of one equation and fold the solution back into its field
package scheme

import (
	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
)

// TimeStep holds the current time step
type TimeStep struct {
	Nt int     // step number
	T  float64 // time
}

// Builder assembles and post-processes the linear system of one equation
type Builder interface {

	// ComputeSource evaluates the source terms at the current time
	ComputeSource()

	// BuildSystem assembles the system; the matrix is handed over to the caller
	BuildSystem(m *mesh.Mesh, fieldVal []float64, dt float64) (rhs []float64, a *sla.Msr, err error)

	// UpdateField writes the solution into the field values
	UpdateField(solu []float64, fieldVal []float64)

	// ExtraOp computes extra quantities such as Péclet numbers
	ExtraOp(eqname string, fld *field.Field, w post.Sink)

	TmpBuf() []float64 // buffer with Ndofs entries
	Ndofs() int        // number of unknowns
	Free()             // releases all data; idempotent
}

// WithFaceValues is implemented by builders holding face unknowns
type WithFaceValues interface {
	FaceValues() []float64
}

// WithInitialValues is implemented by builders that set initial conditions
type WithInitialValues interface {
	SetInitialValues(p *param.Param, fld *field.Field) error
}

// Allocator defines a function that allocates builders
type Allocator func(p *param.Param, m *mesh.Mesh, ts *TimeStep) (Builder, error)

// allocators holds all available builders
var allocators = make(map[param.SpaceScheme]Allocator)

// SetAllocator sets a new allocator
func SetAllocator(s param.SpaceScheme, fcn Allocator) {
	if _, ok := allocators[s]; ok {
		chk.Panic("allocator for space scheme %v is already set", s)
	}
	allocators[s] = fcn
}

// GetAllocator returns the allocator of a space scheme
func GetAllocator(s param.SpaceScheme) (Allocator, error) {
	fcn, ok := allocators[s]
	if !ok {
		return nil, chk.Err("space scheme %v is not available", s)
	}
	return fcn, nil
}

// DofLocation returns the location of the field values of a scheme
func DofLocation(s param.SpaceScheme) mesh.LocType {
	if s == param.SchemeCdoFb {
		return mesh.LocCells
	}
	return mesh.LocVertices
}

// unsupported returns an unsupported combination error
func unsupported(p *param.Param, item, msg string, args ...interface{}) error {
	return param.NewError(param.ErrUnsupportedSchemeCombination, p.Eqname, item, "", msg, args...)
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pty implements material properties and advection fields linked to equations
package pty

import (
	"github.com/cpmech/gosl/chk"
)

// Func defines a function of time and space; e.g. github.com/cpmech/gosl/fun/dbf.T
type Func interface {
	F(t float64, x []float64) float64
}

// Kind defines the kind of property
type Kind int

const (
	Iso   Kind = iota // isotropic: k I
	Ortho             // orthotropic: diag(kx, ky, kz)
)

// Property implements a material property such as a conductivity or a reaction coefficient
//
//   iso:    K = k(c,x,t) I
//   ortho:  K = diag(kx, ky, kz)
//
type Property struct {
	Name  string    // name
	Kind  Kind      // iso or ortho
	Vals  []float64 // uniform values: [1] for iso, [3] for ortho
	Fcn   Func      // iso value as a function of (t,x); optional
	Cells []float64 // iso value per cell; optional
}

// NewUniform returns a uniform property; 1 value means iso, 3 values means ortho
func NewUniform(name string, vals ...float64) (o *Property, err error) {
	o = &Property{Name: name}
	switch len(vals) {
	case 1:
		o.Kind = Iso
	case 3:
		o.Kind = Ortho
	default:
		return nil, chk.Err("property %q must have 1 or 3 values. %d is invalid", name, len(vals))
	}
	o.Vals = append([]float64{}, vals...)
	return
}

// NewAnalytic returns an isotropic property defined by a function
func NewAnalytic(name string, fcn Func) *Property {
	return &Property{Name: name, Kind: Iso, Fcn: fcn}
}

// NewByCells returns an isotropic property with one value per cell
func NewByCells(name string, vals []float64) *Property {
	return &Property{Name: name, Kind: Iso, Cells: vals}
}

// Unity returns the predefined "unity" property
func Unity() *Property {
	return &Property{Name: "unity", Kind: Iso, Vals: []float64{1}}
}

// IsUniform tells whether the property does not depend on cell, position or time
func (o *Property) IsUniform() bool {
	return o.Fcn == nil && o.Cells == nil
}

// Scalar returns the isotropic value (mean of diagonal for ortho) at cell c with centre x
func (o *Property) Scalar(c int, x []float64, t float64) float64 {
	switch {
	case o.Cells != nil:
		return o.Cells[c]
	case o.Fcn != nil:
		return o.Fcn.F(t, x)
	case o.Kind == Ortho:
		return (o.Vals[0] + o.Vals[1] + o.Vals[2]) / 3.0
	}
	return o.Vals[0]
}

// Tensor computes the property tensor at cell c with centre x
func (o *Property) Tensor(K *[3][3]float64, c int, x []float64, t float64) {
	*K = [3][3]float64{}
	if o.Kind == Ortho && o.IsUniform() {
		K[0][0], K[1][1], K[2][2] = o.Vals[0], o.Vals[1], o.Vals[2]
		return
	}
	k := o.Scalar(c, x, t)
	K[0][0], K[1][1], K[2][2] = k, k, k
}

// AdvField implements an advection (velocity) field
type AdvField struct {
	Name string    // name
	Vec  []float64 // uniform vector [3]
	Fcns []Func    // components as functions of (t,x); optional [3]
}

// NewAdvField returns a uniform advection field
func NewAdvField(name string, vx, vy, vz float64) *AdvField {
	return &AdvField{Name: name, Vec: []float64{vx, vy, vz}}
}

// NewAdvFieldAnalytic returns an advection field defined by three functions
func NewAdvFieldAnalytic(name string, fx, fy, fz Func) *AdvField {
	return &AdvField{Name: name, Fcns: []Func{fx, fy, fz}}
}

// Get computes the velocity at x
func (o *AdvField) Get(v []float64, x []float64, t float64) {
	if o.Fcns != nil {
		for k := 0; k < 3; k++ {
			v[k] = o.Fcns[k].F(t, x)
		}
		return
	}
	copy(v, o.Vec)
}

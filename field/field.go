// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements a registry of fields holding the values of unknowns
package field

import (
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gosl/chk"
)

// Field holds values located on mesh entities
type Field struct {
	Id     int          // identifier in registry
	Name   string       // name
	Loc    mesh.LocType // location of values
	Dim    int          // number of components
	N      int          // number of entities
	Val    []float64    // [N*Dim] current values (interlaced)
	ValPre []float64    // [N*Dim] previous values; nil if there is no history
}

// HasPrevious tells whether the field keeps its previous values
func (o *Field) HasPrevious() bool { return o.ValPre != nil }

// CurrentToPrevious copies current values to previous values
func (o *Field) CurrentToPrevious() {
	if o.ValPre == nil {
		return
	}
	copy(o.ValPre, o.Val)
}

// Registry holds all fields
type Registry struct {
	fields []*Field
	ids    map[string]int
}

// NewRegistry returns a new empty registry
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// Create allocates a new field with zero values. If a field with the same name exists already
// and has the same layout, it is returned; otherwise an error is returned
func (o *Registry) Create(name string, loc mesh.LocType, n, dim int, hasPrevious bool) (fld *Field, err error) {
	if name == "" {
		return nil, chk.Err("field name must not be empty")
	}
	if n < 1 || dim < 1 {
		return nil, chk.Err("field %q must have positive size and dimension. n=%d, dim=%d is invalid", name, n, dim)
	}
	if id, ok := o.ids[name]; ok {
		fld = o.fields[id]
		if fld.Loc != loc || fld.N != n || fld.Dim != dim {
			return nil, chk.Err("field %q exists already with a different layout", name)
		}
		if hasPrevious && fld.ValPre == nil {
			fld.ValPre = make([]float64, n*dim)
		}
		return
	}
	fld = &Field{Id: len(o.fields), Name: name, Loc: loc, Dim: dim, N: n, Val: make([]float64, n*dim)}
	if hasPrevious {
		fld.ValPre = make([]float64, n*dim)
	}
	o.fields = append(o.fields, fld)
	o.ids[name] = fld.Id
	return
}

// ByName returns field by name; nil if not found
func (o *Registry) ByName(name string) *Field {
	if id, ok := o.ids[name]; ok {
		return o.fields[id]
	}
	return nil
}

// ById returns field by id; nil if not found
func (o *Registry) ById(id int) *Field {
	if id < 0 || id >= len(o.fields) {
		return nil
	}
	return o.fields[id]
}

// IdByName returns the id of a field; -1 if not found
func (o *Registry) IdByName(name string) int {
	if id, ok := o.ids[name]; ok {
		return id
	}
	return -1
}

// Len returns the number of fields
func (o *Registry) Len() int { return len(o.fields) }

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package post implements the output of per-entity arrays computed by equations
package post

import (
	"github.com/cpmech/gocdo/mesh"
)

// Sink receives named arrays located on mesh entities. It decides if and when they are written.
type Sink interface {
	WriteVar(meshId int, name string, dim int, interlace bool, loc mesh.LocType, vals []float64, nt int, t float64)
}

// Var holds one variable received by a sink
type Var struct {
	MeshId    int          // mesh identifier
	Name      string       // name
	Dim       int          // number of components
	Interlace bool         // layout of components
	Loc       mesh.LocType // location of values
	Vals      []float64    // values (copy)
	Nt        int          // time step
	T         float64      // time
}

// Component returns component k of entity i
func (o *Var) Component(i, k int) float64 {
	if o.Dim == 1 {
		return o.Vals[i]
	}
	if o.Interlace {
		return o.Vals[i*o.Dim+k]
	}
	return o.Vals[k*(len(o.Vals)/o.Dim)+i]
}

// Memory keeps the last value of each variable in memory
type Memory struct {
	Vars map[string]*Var
}

// NewMemory returns a new memory sink
func NewMemory() *Memory {
	return &Memory{Vars: make(map[string]*Var)}
}

// WriteVar stores a copy of vals
func (o *Memory) WriteVar(meshId int, name string, dim int, interlace bool, loc mesh.LocType, vals []float64, nt int, t float64) {
	o.Vars[name] = &Var{meshId, name, dim, interlace, loc, append([]float64{}, vals...), nt, t}
}

// Multi forwards variables to many sinks
type Multi []Sink

// WriteVar calls WriteVar of all non-nil sinks
func (o Multi) WriteVar(meshId int, name string, dim int, interlace bool, loc mesh.LocType, vals []float64, nt int, t float64) {
	for _, w := range o {
		if w != nil {
			w.WriteVar(meshId, name, dim, interlace, loc, vals, nt, t)
		}
	}
}

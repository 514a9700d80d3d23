// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// LocType defines the kind of entities supporting a mesh location
type LocType int

const (
	LocCells         LocType = iota // cells
	LocInteriorFaces                // interior faces
	LocBoundaryFaces                // boundary faces
	LocVertices                     // vertices
	LocFaces                        // all faces
)

// String returns the name of the location type
func (o LocType) String() string {
	switch o {
	case LocCells:
		return "cells"
	case LocInteriorFaces:
		return "interior_faces"
	case LocBoundaryFaces:
		return "boundary_faces"
	case LocVertices:
		return "vertices"
	case LocFaces:
		return "faces"
	}
	return "unknown"
}

// ParseLocType returns the location type corresponding to name
func ParseLocType(name string) (typ LocType, err error) {
	for _, t := range []LocType{LocCells, LocInteriorFaces, LocBoundaryFaces, LocVertices, LocFaces} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, chk.Err("location type %q is invalid. options are cells, interior_faces, boundary_faces, vertices or faces", name)
}

// Selector decides whether an entity with centre x belongs to a location
type Selector func(x []float64) bool

// Location holds a named subset of entities
type Location struct {
	Id   int     // identifier
	Name string  // name
	Type LocType // type of entities
	Elts []int   // selected entities; nil means all entities of Type
}

// Locations holds all mesh locations; ids are given in order of creation
type Locations struct {
	msh  *Mesh
	list []*Location
	ids  map[string]int
}

// newLocations allocates the location set with the predefined locations
func newLocations(m *Mesh) (o *Locations) {
	o = &Locations{msh: m, ids: make(map[string]int)}
	o.add(&Location{Name: "cells", Type: LocCells})
	o.add(&Location{Name: "interior_faces", Type: LocInteriorFaces, Elts: o.filterFaces(false)})
	o.add(&Location{Name: "boundary_faces", Type: LocBoundaryFaces, Elts: o.filterFaces(true)})
	o.add(&Location{Name: "vertices", Type: LocVertices})
	return
}

// Id returns the id of a location; -1 if name is unknown
func (o *Locations) Id(name string) int {
	if id, ok := o.ids[name]; ok {
		return id
	}
	return -1
}

// Get returns location by id; nil if id is invalid
func (o *Locations) Get(id int) *Location {
	if id < 0 || id >= len(o.list) {
		return nil
	}
	return o.list[id]
}

// Len returns the number of locations
func (o *Locations) Len() int { return len(o.list) }

// Add defines a new location by selecting entities of type typ whose centres satisfy sel
func (o *Locations) Add(name string, typ LocType, sel Selector) (id int, err error) {
	if name == "" {
		return -1, chk.Err("location name must not be empty")
	}
	if _, ok := o.ids[name]; ok {
		return -1, chk.Err("location %q exists already", name)
	}
	loc := &Location{Name: name, Type: typ, Elts: make([]int, 0)}
	for _, i := range o.candidates(typ) {
		if sel == nil || sel(o.centre(typ, i)) {
			loc.Elts = append(loc.Elts, i)
		}
	}
	return o.add(loc), nil
}

// Elements returns the entities of location id
func (o *Locations) Elements(id int) []int {
	loc := o.Get(id)
	if loc == nil {
		return nil
	}
	if loc.Elts != nil {
		return loc.Elts
	}
	return o.candidates(loc.Type)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

func (o *Locations) add(loc *Location) int {
	loc.Id = len(o.list)
	o.list = append(o.list, loc)
	o.ids[loc.Name] = loc.Id
	return loc.Id
}

func (o *Locations) filterFaces(boundary bool) (faces []int) {
	faces = make([]int, 0)
	for f := 0; f < o.msh.Nfaces; f++ {
		if o.msh.Bface[f] == boundary {
			faces = append(faces, f)
		}
	}
	return
}

func (o *Locations) candidates(typ LocType) []int {
	switch typ {
	case LocCells:
		return utl.IntRange(o.msh.Ncells)
	case LocVertices:
		return utl.IntRange(o.msh.Nverts)
	case LocFaces:
		return utl.IntRange(o.msh.Nfaces)
	case LocInteriorFaces:
		return o.list[1].Elts
	case LocBoundaryFaces:
		return o.list[2].Elts
	}
	chk.Panic("location type %d is invalid", typ)
	return nil
}

func (o *Locations) centre(typ LocType, i int) []float64 {
	switch typ {
	case LocCells:
		return o.msh.CellCen[i]
	case LocVertices:
		return o.msh.X[i]
	}
	return o.msh.FaceCen[i]
}

// BoxSelector returns a selector of entities with centres inside [xmin,xmax] (with tolerance)
func BoxSelector(xmin, xmax []float64, tol float64) Selector {
	return func(x []float64) bool {
		for k := 0; k < 3; k++ {
			if x[k] < xmin[k]-tol || x[k] > xmax[k]+tol {
				return false
			}
		}
		return true
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"bytes"

	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gosl/io"
)

// Vtu writes cell- and vertex-located variables to VTK unstructured grid files named
// <fnkey>_<nt>.vtu. Face-located variables are not written.
type Vtu struct {
	Dirout string     // output directory
	Fnkey  string     // filename key
	Freq   int        // output frequency; 0 means only nt = 0
	Msh    *mesh.Mesh // mesh
	Nfiles int        // number of written files

	vars []*Var // variables of the current step
	nt   int    // current step
	geo  *bytes.Buffer
}

// NewVtu returns a new writer
func NewVtu(m *mesh.Mesh, dirout, fnkey string, freq int) *Vtu {
	return &Vtu{Dirout: dirout, Fnkey: fnkey, Freq: freq, Msh: m, nt: -1}
}

// Active tells whether step nt is written
func (o *Vtu) Active(nt int) bool {
	if o.Freq <= 0 {
		return nt == 0
	}
	return nt%o.Freq == 0
}

// WriteVar caches a variable; a new step flushes the previous one
func (o *Vtu) WriteVar(meshId int, name string, dim int, interlace bool, loc mesh.LocType, vals []float64, nt int, t float64) {
	if !o.Active(nt) {
		return
	}
	if loc != mesh.LocCells && loc != mesh.LocVertices {
		return
	}
	if nt != o.nt {
		o.Flush()
		o.nt = nt
	}
	for i, v := range o.vars {
		if v.Name == name {
			o.vars = append(o.vars[:i], o.vars[i+1:]...)
			break
		}
	}
	o.vars = append(o.vars, &Var{meshId, name, dim, interlace, loc, append([]float64{}, vals...), nt, t})
}

// Flush writes the cached variables
func (o *Vtu) Flush() {
	if len(o.vars) == 0 {
		return
	}
	if o.geo == nil {
		o.geo = new(bytes.Buffer)
		o.topology(o.geo)
	}
	var hdr, dat, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"1.0\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", o.Msh.Nverts, o.Msh.Ncells)
	o.data(&dat, mesh.LocVertices, "PointData")
	o.data(&dat, mesh.LocCells, "CellData")
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileVD(o.Dirout, io.Sf("%s_%d.vtu", o.Fnkey, o.nt), &hdr, o.geo, &dat, &foo)
	o.vars = o.vars[:0]
	o.Nfiles++
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// topology writes points and polyhedral cells
func (o *Vtu) topology(buf *bytes.Buffer) {
	m := o.Msh

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, x := range m.X {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", x[0], x[1], x[2])
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int64\" Name=\"connectivity\" format=\"ascii\">\n")
	for c := 0; c < m.Ncells; c++ {
		verts, _ := m.C2V.Row(c)
		for _, v := range verts {
			io.Ff(buf, "%d ", v)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int64\" Name=\"offsets\" format=\"ascii\">\n")
	for c := 0; c < m.Ncells; c++ {
		io.Ff(buf, "%d ", m.C2V.Idx[c+1])
	}

	// types: VTK_POLYHEDRON
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for c := 0; c < m.Ncells; c++ {
		io.Ff(buf, "42 ")
	}

	// faces of polyhedra
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int64\" Name=\"faces\" format=\"ascii\">\n")
	offset := 0
	offsets := make([]int, m.Ncells)
	for c := 0; c < m.Ncells; c++ {
		faces, _ := m.C2F.Row(c)
		io.Ff(buf, "%d ", len(faces))
		offset++
		for _, f := range faces {
			verts, _ := m.F2V.Row(f)
			io.Ff(buf, "%d ", len(verts))
			for _, v := range verts {
				io.Ff(buf, "%d ", v)
			}
			offset += 1 + len(verts)
		}
		offsets[c] = offset
	}
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int64\" Name=\"faceoffsets\" format=\"ascii\">\n")
	for _, off := range offsets {
		io.Ff(buf, "%d ", off)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

// data writes the variables of a given location
func (o *Vtu) data(buf *bytes.Buffer, loc mesh.LocType, tag string) {
	n := o.Msh.Nentities(loc)
	io.Ff(buf, "<%s>\n", tag)
	for _, v := range o.vars {
		if v.Loc != loc {
			continue
		}
		io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n", v.Name, v.Dim)
		for i := 0; i < n; i++ {
			for k := 0; k < v.Dim; k++ {
				io.Ff(buf, "%23.15e ", v.Component(i, k))
			}
		}
		io.Ff(buf, "\n</DataArray>\n")
	}
	io.Ff(buf, "</%s>\n", tag)
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gosl/chk"
)

// evaluator computes definitions over mesh entities
type evaluator struct {
	m    *mesh.Mesh
	rank []int // rank of each face among the boundary (or interior) faces
}

// newEvaluator returns a new evaluator
func newEvaluator(m *mesh.Mesh) (o *evaluator) {
	o = &evaluator{m: m, rank: make([]int, m.Nfaces)}
	nb, ni := 0, 0
	for f := 0; f < m.Nfaces; f++ {
		if m.Bface[f] {
			o.rank[f] = nb
			nb++
		} else {
			o.rank[f] = ni
			ni++
		}
	}
	return
}

// pointwise tells whether a definition can be evaluated at any point
func pointwise(def *param.Def) bool {
	return def.Type != param.DefArray
}

// arrayIndex returns the index in an array located at loc of entity id of type typ; -1 if not available
func (o *evaluator) arrayIndex(loc mesh.LocType, typ mesh.LocType, id int) int {
	if loc == typ {
		if typ == mesh.LocBoundaryFaces || typ == mesh.LocInteriorFaces {
			return o.rank[id]
		}
		return id
	}
	if typ == mesh.LocFaces || typ == mesh.LocBoundaryFaces || typ == mesh.LocInteriorFaces {
		switch loc {
		case mesh.LocFaces:
			return id
		case mesh.LocBoundaryFaces:
			if o.m.Bface[id] {
				return o.rank[id]
			}
		case mesh.LocInteriorFaces:
			if !o.m.Bface[id] {
				return o.rank[id]
			}
		}
	}
	return -1
}

// atVertex evaluates a definition at vertex v; returns false if an array is not located at vertices
func (o *evaluator) atVertex(res []float64, def *param.Def, v int, t float64) bool {
	if pointwise(def) {
		def.Eval(res, v, o.m.X[v], t)
		return true
	}
	i := o.arrayIndex(def.Array.Loc, mesh.LocVertices, v)
	if i < 0 {
		return false
	}
	def.Eval(res, i, nil, t)
	return true
}

// atFace computes the mean value of a definition over face f
func (o *evaluator) atFace(res []float64, def *param.Def, f int, q param.Quadrature, t float64) {
	if !pointwise(def) {
		i := o.arrayIndex(def.Array.Loc, mesh.LocFaces, f)
		if i < 0 {
			chk.Panic("array located at %v cannot be evaluated at faces", def.Array.Loc)
		}
		def.Eval(res, i, nil, t)
		return
	}
	if def.Type == param.DefValue || q == param.QuadBary {
		def.Eval(res, f, o.m.FaceCen[f], t)
		return
	}
	for k := range res {
		res[k] = 0
	}
	xf := o.m.FaceCen[f]
	edges, _ := o.m.F2E.Row(f)
	for _, e := range edges {
		a, b := o.m.E2V.Ids[2*e], o.m.E2V.Ids[2*e+1]
		integTri(res, def, q, t, o.m.X[a], o.m.X[b], xf)
	}
	for k := range res {
		res[k] /= o.m.FaceMeas[f]
	}
}

// atCell computes the mean value of a definition over cell c
func (o *evaluator) atCell(res []float64, def *param.Def, c int, q param.Quadrature, t float64) {
	if !pointwise(def) {
		i := o.arrayIndex(def.Array.Loc, mesh.LocCells, c)
		if i < 0 {
			chk.Panic("array located at %v cannot be evaluated at cells", def.Array.Loc)
		}
		def.Eval(res, i, nil, t)
		return
	}
	if def.Type == param.DefValue || q == param.QuadBary {
		def.Eval(res, c, o.m.CellCen[c], t)
		return
	}
	for k := range res {
		res[k] = 0
	}
	o.cellTets(c, func(a, b, xf, xc []float64) {
		integTet(res, def, q, t, a, b, xf, xc)
	})
	for k := range res {
		res[k] /= o.m.CellVol[c]
	}
}

// dualCellIntegrals computes the integrals of a scalar definition over the portions of the dual
// cells inside cell c; res is ordered as C2V
func (o *evaluator) dualCellIntegrals(res []float64, def *param.Def, c int, q param.Quadrature, t float64) {
	m := o.m
	verts, _ := m.C2V.Row(c)
	off := m.C2V.Idx[c]
	val := []float64{0}
	switch {
	case def.Type == param.DefValue:
		for i := range verts {
			res[i] = def.Vals[0] * m.DcellVol[off+i]
		}
	case def.Type == param.DefArray:
		if i := o.arrayIndex(def.Array.Loc, mesh.LocCells, c); i >= 0 {
			def.Eval(val, i, nil, t)
			for j := range verts {
				res[j] = val[0] * m.DcellVol[off+j]
			}
			return
		}
		for j, v := range verts {
			i := o.arrayIndex(def.Array.Loc, mesh.LocVertices, v)
			if i < 0 {
				chk.Panic("array located at %v cannot be integrated over dual cells", def.Array.Loc)
			}
			def.Eval(val, i, nil, t)
			res[j] = val[0] * m.DcellVol[off+j]
		}
	default:
		for i := range verts {
			res[i] = 0
		}
		xc := m.CellCen[c]
		faces, _ := m.C2F.Row(c)
		for _, f := range faces {
			xf := m.FaceCen[f]
			edges, _ := m.F2E.Row(f)
			for _, e := range edges {
				xe := m.EdgeCen[e]
				for _, v := range m.E2V.Ids[2*e : 2*e+2] {
					val[0] = 0
					integTet(val, def, q, t, m.X[v], xe, xf, xc)
					res[m.CellVertIndex(c, v)-off] += val[0]
				}
			}
		}
	}
}

// cellTets calls fcn for each tetrahedron (x_a, x_b, x_f, x_c) of the subdivision of cell c
func (o *evaluator) cellTets(c int, fcn func(a, b, xf, xc []float64)) {
	m := o.m
	faces, _ := m.C2F.Row(c)
	for _, f := range faces {
		edges, _ := m.F2E.Row(f)
		for _, e := range edges {
			a, b := m.E2V.Ids[2*e], m.E2V.Ids[2*e+1]
			fcn(m.X[a], m.X[b], m.FaceCen[f], m.CellCen[c])
		}
	}
}

// faceBcs returns the boundary condition of each face; nil for interior faces. Faces without
// definition receive the default kind.
func faceBcs(p *param.Param, m *mesh.Mesh) (bcs []*param.BcDef, err error) {
	bcs = make([]*param.BcDef, m.Nfaces)
	def := &param.BcDef{MlId: -1, MlName: "default", Type: p.BC.Default, Def: &param.Def{Type: param.DefValue, Dim: 1, Vals: []float64{0}}}
	for f := 0; f < m.Nfaces; f++ {
		if m.Bface[f] {
			bcs[f] = def
		}
	}
	for _, d := range p.BC.Defs {
		loc := m.Locs.Get(d.MlId)
		if loc == nil {
			return nil, param.NewError(param.ErrInvalidMeshLocation, p.Eqname, d.MlName, "", "")
		}
		if loc.Type != mesh.LocBoundaryFaces && loc.Type != mesh.LocFaces {
			return nil, param.NewError(param.ErrInvalidMeshLocation, p.Eqname, d.MlName, loc.Type.String(), "boundary conditions require boundary faces")
		}
		for _, f := range m.Locs.Elements(d.MlId) {
			if m.Bface[f] {
				bcs[f] = d
			}
		}
	}
	return
}

// cellsOf returns the cells of a source term location
func cellsOf(p *param.Param, m *mesh.Mesh, st *param.SourceTerm) ([]int, error) {
	loc := m.Locs.Get(st.MlId)
	if loc == nil {
		return nil, param.NewError(param.ErrInvalidMeshLocation, p.Eqname, st.MlName, "", "")
	}
	if loc.Type != mesh.LocCells {
		return nil, param.NewError(param.ErrInvalidMeshLocation, p.Eqname, st.MlName, loc.Type.String(), "source terms require cells")
	}
	return m.Locs.Elements(st.MlId), nil
}

// faceWeights returns the portion of the area of face f attached to each of its vertices
func faceWeights(m *mesh.Mesh, f int) (verts []int, w []float64) {
	verts, _ = m.F2V.Row(f)
	w = make([]float64, len(verts))
	xf := m.FaceCen[f]
	edges, _ := m.F2E.Row(f)
	for _, e := range edges {
		a, b := m.E2V.Ids[2*e], m.E2V.Ids[2*e+1]
		half := 0.5 * triArea(m.X[a], m.X[b], xf)
		for i, v := range verts {
			if v == a || v == b {
				w[i] += half
			}
		}
	}
	return
}

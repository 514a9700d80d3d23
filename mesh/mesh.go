// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements polyhedral meshes with the connectivity and the geometric
// quantities needed by CDO schemes (primal and dual entities)
package mesh

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Adjacency holds an index-based incidence list with optional orientation signs
//  Note: entities connected to row i are Ids[Idx[i]:Idx[i+1]]
type Adjacency struct {
	Idx []int // [n+1] start of each row
	Ids []int // connected entities
	Sgn []int // orientation signs; may be nil
}

// Nrows returns the number of rows
func (o *Adjacency) Nrows() int {
	if len(o.Idx) == 0 {
		return 0
	}
	return len(o.Idx) - 1
}

// Row returns the ids and signs (nil if not oriented) in row i
func (o *Adjacency) Row(i int) (ids, sgn []int) {
	ids = o.Ids[o.Idx[i]:o.Idx[i+1]]
	if o.Sgn != nil {
		sgn = o.Sgn[o.Idx[i]:o.Idx[i+1]]
	}
	return
}

// Mesh holds the connectivity (primal entities) and the quantities (primal and dual) of a
// polyhedral mesh. All data is read-only after construction.
type Mesh struct {

	// counts
	Nverts int // number of vertices
	Nedges int // number of edges
	Nfaces int // number of faces (interior and boundary)
	Ncells int // number of cells
	Nbfac  int // number of boundary faces

	// connectivity
	X     [][]float64 // [nverts][3] vertex coordinates
	E2V   Adjacency   // edge => 2 vertices; sign -1 at the start and +1 at the end
	F2V   Adjacency   // face => vertices (ordered loop)
	F2E   Adjacency   // face => edges; sign +1 if edge agrees with the face loop
	C2F   Adjacency   // cell => faces; sign +1 if the face normal is outward
	C2E   Adjacency   // cell => edges
	C2V   Adjacency   // cell => vertices
	F2C   [][2]int    // face => cells; second cell is -1 for boundary faces
	Bface []bool      // [nfaces] boundary face flags
	Bvert []bool      // [nverts] boundary vertex flags
	Xmin  []float64   // min coordinates
	Xmax  []float64   // max coordinates
	Locs  *Locations  // mesh locations

	// quantities
	CellVol  []float64   // [ncells] cell volumes
	CellCen  [][]float64 // [ncells][3] cell centroids
	FaceMeas []float64   // [nfaces] face areas
	FaceNorm [][]float64 // [nfaces][3] unit normals
	FaceCen  [][]float64 // [nfaces][3] face centroids
	EdgeLen  []float64   // [nedges] edge lengths
	EdgeTan  [][]float64 // [nedges][3] unit tangents
	EdgeCen  [][]float64 // [nedges][3] edge midpoints
	DcellVol []float64   // [len(C2V.Ids)] portion of the dual cell of v inside c
	DfaceVec [][]float64 // [len(C2E.Ids)] portion of the dual face of e inside c; aligned with EdgeTan
}

// NewPolyhedral builds a mesh from vertex coordinates, faces given by loops of vertices and
// cells given by lists of faces
func NewPolyhedral(X [][]float64, faceVerts [][]int, cellFaces [][]int) (o *Mesh, err error) {

	// check
	if len(X) < 4 || len(faceVerts) < 4 || len(cellFaces) < 1 {
		return nil, chk.Err("mesh must have at least 4 vertices, 4 faces and 1 cell. %d, %d, %d is invalid", len(X), len(faceVerts), len(cellFaces))
	}

	// new mesh
	o = new(Mesh)
	o.Nverts = len(X)
	o.Nfaces = len(faceVerts)
	o.Ncells = len(cellFaces)
	o.X = make([][]float64, o.Nverts)
	o.Xmin = []float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	o.Xmax = []float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for i, x := range X {
		if len(x) != 3 {
			return nil, chk.Err("vertex %d must have 3 coordinates. %v is invalid", i, x)
		}
		o.X[i] = []float64{x[0], x[1], x[2]}
		for k := 0; k < 3; k++ {
			o.Xmin[k] = utl.Min(o.Xmin[k], x[k])
			o.Xmax[k] = utl.Max(o.Xmax[k], x[k])
		}
	}

	// faces and edges
	err = o.buildFaces(faceVerts)
	if err != nil {
		return
	}

	// cells
	err = o.buildCells(cellFaces)
	if err != nil {
		return
	}

	// dual quantities
	o.computeDual()

	// locations
	o.Locs = newLocations(o)
	return
}

// Nentities returns the number of entities of a given location type
func (o *Mesh) Nentities(typ LocType) int {
	switch typ {
	case LocCells:
		return o.Ncells
	case LocVertices:
		return o.Nverts
	case LocInteriorFaces:
		return o.Nfaces - o.Nbfac
	case LocBoundaryFaces:
		return o.Nbfac
	case LocFaces:
		return o.Nfaces
	}
	chk.Panic("location type %d is invalid", typ)
	return 0
}

// CellEdgeIndex returns the position in C2E of edge e of cell c; -1 if not found
func (o *Mesh) CellEdgeIndex(c, e int) int {
	for i := o.C2E.Idx[c]; i < o.C2E.Idx[c+1]; i++ {
		if o.C2E.Ids[i] == e {
			return i
		}
	}
	return -1
}

// CellVertIndex returns the position in C2V of vertex v of cell c; -1 if not found
func (o *Mesh) CellVertIndex(c, v int) int {
	for i := o.C2V.Idx[c]; i < o.C2V.Idx[c+1]; i++ {
		if o.C2V.Ids[i] == v {
			return i
		}
	}
	return -1
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// buildFaces computes edges, face connectivity and face quantities
func (o *Mesh) buildFaces(faceVerts [][]int) (err error) {
	edgeIds := make(map[[2]int]int)
	var e2v [][2]int
	o.F2V.Idx = make([]int, o.Nfaces+1)
	o.F2E.Idx = make([]int, o.Nfaces+1)
	o.FaceMeas = make([]float64, o.Nfaces)
	o.FaceNorm = utl.Alloc(o.Nfaces, 3)
	o.FaceCen = utl.Alloc(o.Nfaces, 3)
	for f, verts := range faceVerts {
		nv := len(verts)
		if nv < 3 {
			return chk.Err("face %d must have at least 3 vertices", f)
		}
		for i, a := range verts {
			if a < 0 || a >= o.Nverts {
				return chk.Err("face %d has invalid vertex %d", f, a)
			}
			b := verts[(i+1)%nv]
			key := [2]int{a, b}
			sgn := 1
			if a > b {
				key = [2]int{b, a}
				sgn = -1
			}
			e, ok := edgeIds[key]
			if !ok {
				e = len(e2v)
				edgeIds[key] = e
				e2v = append(e2v, key)
			}
			o.F2V.Ids = append(o.F2V.Ids, a)
			o.F2E.Ids = append(o.F2E.Ids, e)
			o.F2E.Sgn = append(o.F2E.Sgn, sgn)
		}
		o.F2V.Idx[f+1] = len(o.F2V.Ids)
		o.F2E.Idx[f+1] = len(o.F2E.Ids)

		// face quantities from a triangle fan around the vertex average
		xa := make([]float64, 3)
		for _, v := range verts {
			for k := 0; k < 3; k++ {
				xa[k] += o.X[v][k] / float64(nv)
			}
		}
		area := make([]float64, 3)
		for i, a := range verts {
			b := verts[(i+1)%nv]
			n := cross(sub(o.X[a], xa), sub(o.X[b], xa))
			tarea := 0.5 * norm(n)
			for k := 0; k < 3; k++ {
				area[k] += 0.5 * n[k]
				o.FaceCen[f][k] += tarea * (xa[k] + o.X[a][k] + o.X[b][k]) / 3.0
			}
			o.FaceMeas[f] += tarea
		}
		if o.FaceMeas[f] <= 0 {
			return chk.Err("face %d has zero area", f)
		}
		an := norm(area)
		for k := 0; k < 3; k++ {
			o.FaceCen[f][k] /= o.FaceMeas[f]
			o.FaceNorm[f][k] = area[k] / an
		}
	}

	// edges
	o.Nedges = len(e2v)
	o.E2V.Idx = make([]int, o.Nedges+1)
	o.E2V.Ids = make([]int, 2*o.Nedges)
	o.E2V.Sgn = make([]int, 2*o.Nedges)
	o.EdgeLen = make([]float64, o.Nedges)
	o.EdgeTan = utl.Alloc(o.Nedges, 3)
	o.EdgeCen = utl.Alloc(o.Nedges, 3)
	for e, vv := range e2v {
		o.E2V.Idx[e+1] = 2 * (e + 1)
		o.E2V.Ids[2*e], o.E2V.Ids[2*e+1] = vv[0], vv[1]
		o.E2V.Sgn[2*e], o.E2V.Sgn[2*e+1] = -1, 1
		d := sub(o.X[vv[1]], o.X[vv[0]])
		o.EdgeLen[e] = norm(d)
		for k := 0; k < 3; k++ {
			o.EdgeTan[e][k] = d[k] / o.EdgeLen[e]
			o.EdgeCen[e][k] = 0.5 * (o.X[vv[0]][k] + o.X[vv[1]][k])
		}
	}
	return
}

// buildCells computes cell connectivity and cell quantities
func (o *Mesh) buildCells(cellFaces [][]int) (err error) {
	o.F2C = make([][2]int, o.Nfaces)
	for f := range o.F2C {
		o.F2C[f] = [2]int{-1, -1}
	}
	o.C2F.Idx = make([]int, o.Ncells+1)
	o.C2E.Idx = make([]int, o.Ncells+1)
	o.C2V.Idx = make([]int, o.Ncells+1)
	o.CellVol = make([]float64, o.Ncells)
	o.CellCen = utl.Alloc(o.Ncells, 3)
	for c, faces := range cellFaces {

		// vertices and edges
		vset := make(map[int]bool)
		eset := make(map[int]bool)
		for _, f := range faces {
			if f < 0 || f >= o.Nfaces {
				return chk.Err("cell %d has invalid face %d", c, f)
			}
			vv, _ := o.F2V.Row(f)
			for _, v := range vv {
				vset[v] = true
			}
			ee, _ := o.F2E.Row(f)
			for _, e := range ee {
				eset[e] = true
			}
		}
		verts := sortedKeys(vset)
		edges := sortedKeys(eset)
		o.C2V.Ids = append(o.C2V.Ids, verts...)
		o.C2E.Ids = append(o.C2E.Ids, edges...)
		o.C2V.Idx[c+1] = len(o.C2V.Ids)
		o.C2E.Idx[c+1] = len(o.C2E.Ids)

		// vertex average
		xa := make([]float64, 3)
		for _, v := range verts {
			for k := 0; k < 3; k++ {
				xa[k] += o.X[v][k] / float64(len(verts))
			}
		}

		// orientation of faces, volume and centroid from pyramids
		for _, f := range faces {
			sgn := 1
			if dot(o.FaceNorm[f], sub(o.FaceCen[f], xa)) < 0 {
				sgn = -1
			}
			o.C2F.Ids = append(o.C2F.Ids, f)
			o.C2F.Sgn = append(o.C2F.Sgn, sgn)
			if o.F2C[f][0] < 0 {
				o.F2C[f][0] = c
			} else if o.F2C[f][1] < 0 {
				o.F2C[f][1] = c
			} else {
				return chk.Err("face %d is shared by more than two cells", f)
			}
			pvol := float64(sgn) * o.FaceMeas[f] * dot(o.FaceNorm[f], sub(o.FaceCen[f], xa)) / 3.0
			o.CellVol[c] += pvol
			for k := 0; k < 3; k++ {
				o.CellCen[c][k] += pvol * (xa[k] + 0.75*(o.FaceCen[f][k]-xa[k]))
			}
		}
		o.C2F.Idx[c+1] = len(o.C2F.Ids)
		if o.CellVol[c] <= 0 {
			return chk.Err("cell %d has non-positive volume %g", c, o.CellVol[c])
		}
		for k := 0; k < 3; k++ {
			o.CellCen[c][k] /= o.CellVol[c]
		}
	}

	// boundary flags
	o.Bface = make([]bool, o.Nfaces)
	o.Bvert = make([]bool, o.Nverts)
	for f := 0; f < o.Nfaces; f++ {
		if o.F2C[f][0] < 0 {
			return chk.Err("face %d does not belong to any cell", f)
		}
		if o.F2C[f][1] < 0 {
			o.Bface[f] = true
			o.Nbfac++
			vv, _ := o.F2V.Row(f)
			for _, v := range vv {
				o.Bvert[v] = true
			}
		}
	}
	return
}

// computeDual computes the dual cell volumes and the dual face vectors by means of the
// barycentric subdivision of each cell into tetrahedra (x_v, x_e, x_f, x_c)
func (o *Mesh) computeDual() {
	o.DcellVol = make([]float64, len(o.C2V.Ids))
	o.DfaceVec = utl.Alloc(len(o.C2E.Ids), 3)
	for c := 0; c < o.Ncells; c++ {
		xc := o.CellCen[c]
		faces, _ := o.C2F.Row(c)
		for _, f := range faces {
			xf := o.FaceCen[f]
			edges, _ := o.F2E.Row(f)
			for _, e := range edges {
				xe := o.EdgeCen[e]

				// dual face portion: triangle (x_e, x_f, x_c) oriented along the edge
				ie := o.CellEdgeIndex(c, e)
				n := cross(sub(xf, xe), sub(xc, xe))
				s := 0.5
				if dot(n, o.EdgeTan[e]) < 0 {
					s = -0.5
				}
				for k := 0; k < 3; k++ {
					o.DfaceVec[ie][k] += s * n[k]
				}

				// dual cell portion: two tetrahedra, one per edge vertex
				for _, v := range o.E2V.Ids[2*e : 2*e+2] {
					iv := o.CellVertIndex(c, v)
					xv := o.X[v]
					o.DcellVol[iv] += math.Abs(dot(sub(xe, xv), cross(sub(xf, xv), sub(xc, xv)))) / 6.0
				}
			}
		}
	}
}

// sortedKeys returns the sorted keys of a set
func sortedKeys(set map[int]bool) (keys []int) {
	keys = make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return
}

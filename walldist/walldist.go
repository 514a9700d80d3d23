// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package walldist computes the distance to walls from the solution φ of the Poisson problem
//   -∇²φ = 1 in Ω,  φ = 0 on the walls
// with d = sqrt(|∇φ|² + 2φ) - |∇φ|
package walldist

import (
	"math"

	"github.com/cpmech/gocdo/equation"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Name is the conventional name of the wall distance equation
const Name = "WallDistance"

// Stats holds statistics of the wall distance
type Stats struct {
	Max   float64 // maximum
	Mean  float64 // mean
	Sigma float64 // standard deviation
}

// Setup defines the terms of the wall distance equation
//  wall  -- name of the mesh location of the walls
//  unity -- property equal to one; e.g. pty.Unity()
func Setup(eq *equation.Equation, wall string, unity *pty.Property) (err error) {
	err = eq.Link("diffusion", unity)
	if err != nil {
		return
	}
	err = eq.AddBC(wall, "dirichlet", "value", "0.0")
	if err != nil {
		return
	}
	return eq.AddSourceTermByVal("WallDist.st", "cells", "1.0")
}

// Compute replaces the values of the field of eq by the wall distance and writes them to w
// (may be nil) at the first time step
func Compute(m *mesh.Mesh, eq *equation.Equation, w post.Sink, verbose bool) (st Stats, err error) {
	fld := eq.Field()
	if fld == nil || fld.Dim != 1 {
		return st, chk.Err("wall distance requires a scalar field")
	}
	var dist []float64
	switch eq.SpaceScheme() {
	case param.SchemeCdoVb:
		dist = vertexDistance(m, fld.Val)
	case param.SchemeCdoFb:
		uf, e := eq.FaceValues()
		if e != nil {
			return st, e
		}
		dist = cellDistance(m, fld.Val, uf)
	default:
		return st, chk.Err("wall distance cannot be computed with space scheme %v", eq.SpaceScheme())
	}
	copy(fld.Val, dist)
	if w != nil {
		w.WriteVar(0, fld.Name, 1, false, fld.Loc, dist, 0, 0)
	}
	st.Max = floats.Max(dist)
	var variance float64
	st.Mean, variance = stat.PopMeanVariance(dist, nil)
	st.Sigma = math.Sqrt(variance)
	if verbose {
		io.Pf("\n -bnd- WallDistance.Max   % 10.6e\n", st.Max)
		io.Pf(" -bnd- WallDistance.Mean  % 10.6e\n", st.Mean)
		io.Pf(" -bnd- WallDistance.Sigma % 10.6e\n", st.Sigma)
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// vertexDistance reconstructs the gradient in cells from differences along edges, averages it
// at vertices with the dual cell volumes and evaluates the distance at vertices
func vertexDistance(m *mesh.Mesh, phi []float64) (dist []float64) {
	grad := make([][3]float64, m.Nverts)
	dvol := make([]float64, m.Nverts)
	for c := 0; c < m.Ncells; c++ {
		var gc [3]float64
		for k := m.C2E.Idx[c]; k < m.C2E.Idx[c+1]; k++ {
			e := m.C2E.Ids[k]
			verts, sgn := m.E2V.Row(e)
			de := float64(sgn[0])*phi[verts[0]] + float64(sgn[1])*phi[verts[1]]
			for i := 0; i < 3; i++ {
				gc[i] += de * m.DfaceVec[k][i]
			}
		}
		for i := 0; i < 3; i++ {
			gc[i] /= m.CellVol[c]
		}
		for k := m.C2V.Idx[c]; k < m.C2V.Idx[c+1]; k++ {
			v := m.C2V.Ids[k]
			dvol[v] += m.DcellVol[k]
			for i := 0; i < 3; i++ {
				grad[v][i] += m.DcellVol[k] * gc[i]
			}
		}
	}
	dist = make([]float64, m.Nverts)
	for v := range dist {
		for i := 0; i < 3; i++ {
			grad[v][i] /= dvol[v]
		}
		dist[v] = distance(grad[v], phi[v])
	}
	return
}

// cellDistance reconstructs the gradient in cells from face values
func cellDistance(m *mesh.Mesh, phi, phiFace []float64) (dist []float64) {
	dist = make([]float64, m.Ncells)
	for c := range dist {
		var gc [3]float64
		faces, sgn := m.C2F.Row(c)
		for j, f := range faces {
			coef := m.FaceMeas[f] * float64(sgn[j]) * (phiFace[f] - phi[c])
			for i := 0; i < 3; i++ {
				gc[i] += coef * m.FaceNorm[f][i]
			}
		}
		for i := 0; i < 3; i++ {
			gc[i] /= m.CellVol[c]
		}
		dist[c] = distance(gc, phi[c])
	}
	return
}

// distance returns sqrt(|g|² + 2φ) - |g|; negative φ due to round-off gives zero
func distance(g [3]float64, phi float64) float64 {
	gg := g[0]*g[0] + g[1]*g[1] + g[2]*g[2]
	return math.Sqrt(math.Max(gg+2*phi, 0)) - math.Sqrt(gg)
}

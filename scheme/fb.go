// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Fb implements the face-based scheme: one unknown per face and per cell. Cell unknowns are
// eliminated by static condensation; the system holds face unknowns only.
type Fb struct {
	p  *param.Param // parameters
	m  *mesh.Mesh   // mesh
	ts *TimeStep    // time step
	ev *evaluator   // definitions

	n       int            // number of unknowns (faces)
	neigh   [][]int        // pattern of the matrix
	cells   []*fbCell      // local quantities
	bcs     []*param.BcDef // boundary condition of each face
	stCell  [][]int        // cells of each source term
	source  []float64      // [ncells] integrated source terms
	tmp     []float64      // [n] buffer
	faceVal []float64      // [n] face values
	isDir   []bool         // [n] Dirichlet faces
	dirVal  []float64      // [n] Dirichlet values
}

// fbCell holds the local quantities of one cell and the data required to recover its value
type fbCell struct {
	faces []int       // faces
	N     [][]float64 // [nf][3] outward area vectors
	R     [][]float64 // [nf][3] x_f - x_c
	acc   float64     // A_cc
	acf   []float64   // A_cf
	bc    float64     // b_c
}

// add to factory
func init() {
	SetAllocator(param.SchemeCdoFb, func(p *param.Param, m *mesh.Mesh, ts *TimeStep) (Builder, error) {
		return NewFb(p, m, ts)
	})
}

// NewFb returns a new face-based builder
func NewFb(p *param.Param, m *mesh.Mesh, ts *TimeStep) (o *Fb, err error) {

	// check
	if p.VarType != param.VarScalar {
		return nil, unsupported(p, "var_type", "face-based schemes handle scalar equations only. %v is invalid", p.VarType)
	}
	if p.Flag&param.FlagDiffusion != 0 {
		if p.DiffHodge.Type != param.HodgeEdfp || p.DiffHodge.Algo == param.HodgeWbs {
			return nil, unsupported(p, "hodge_diff_algo", "diffusion requires EdFp operators with voronoi or cost. %v/%v is invalid", p.DiffHodge.Type, p.DiffHodge.Algo)
		}
	}
	if p.Flag&param.FlagConvection != 0 {
		return nil, unsupported(p, "adv_field", "advection is not available with face-based schemes")
	}
	if p.BC.Enforcement == param.BcWeakNitsche || p.BC.Enforcement == param.BcWeakSym {
		return nil, unsupported(p, "bc_enforcement", "%v enforcement is not available with face-based schemes", p.BC.Enforcement)
	}
	if p.IsUnsteady() {
		if p.TimeHodge.Type != param.HodgeCpvd || p.TimeHodge.Algo != param.HodgeVoronoi {
			return nil, unsupported(p, "hodge_time_algo", "time term requires CpVd operators with voronoi. %v/%v is invalid", p.TimeHodge.Type, p.TimeHodge.Algo)
		}
		if p.Theta() != 1 {
			return nil, unsupported(p, "time_scheme", "face-based schemes are implicit. %v is invalid", p.Time.Scheme)
		}
	}
	for _, r := range p.Reactions {
		if r.Hodge.Type != param.HodgeCpvd || r.Hodge.Algo != param.HodgeVoronoi {
			return nil, unsupported(p, r.Name, "reaction terms require CpVd operators with voronoi. %v/%v is invalid", r.Hodge.Type, r.Hodge.Algo)
		}
	}

	// new builder
	o = &Fb{p: p, m: m, ts: ts, ev: newEvaluator(m), n: m.Nfaces}
	o.bcs, err = faceBcs(p, m)
	if err != nil {
		return nil, err
	}
	o.stCell = make([][]int, len(p.Sources))
	for i, st := range p.Sources {
		o.stCell[i], err = cellsOf(p, m, st)
		if err != nil {
			return nil, err
		}
	}
	o.source = make([]float64, m.Ncells)
	o.tmp = make([]float64, o.n)
	o.faceVal = make([]float64, o.n)
	o.isDir = make([]bool, o.n)
	o.dirVal = make([]float64, o.n)

	// local quantities and pattern
	o.cells = make([]*fbCell, m.Ncells)
	o.neigh = make([][]int, o.n)
	for c := 0; c < m.Ncells; c++ {
		lc := new(fbCell)
		var sgn []int
		lc.faces, sgn = m.C2F.Row(c)
		lc.N = make([][]float64, len(lc.faces))
		lc.R = make([][]float64, len(lc.faces))
		lc.acf = make([]float64, len(lc.faces))
		for i, f := range lc.faces {
			s := float64(sgn[i]) * m.FaceMeas[f]
			lc.N[i] = []float64{s * m.FaceNorm[f][0], s * m.FaceNorm[f][1], s * m.FaceNorm[f][2]}
			lc.R[i] = sub(m.FaceCen[f], m.CellCen[c])
			o.neigh[f] = append(o.neigh[f], lc.faces...)
		}
		o.cells[c] = lc
	}
	return
}

// ComputeSource evaluates the source terms at the current time
func (o *Fb) ComputeSource() {
	for i := range o.source {
		o.source[i] = 0
	}
	res := []float64{0}
	for i, st := range o.p.Sources {
		for _, c := range o.stCell[i] {
			o.ev.atCell(res, st.Def, c, st.Quad, o.ts.T)
			o.source[c] += res[0] * o.m.CellVol[c]
		}
	}
}

// BuildSystem assembles the condensed system. fieldVal holds cell values.
func (o *Fb) BuildSystem(m *mesh.Mesh, fieldVal []float64, dt float64) (rhs []float64, a *sla.Msr, err error) {
	p := o.p
	if len(fieldVal) != m.Ncells {
		return nil, nil, chk.Err("field has %d values but %d are required", len(fieldVal), m.Ncells)
	}
	unsteady := p.IsUnsteady()
	if unsteady && dt <= 0 {
		return nil, nil, chk.Err("time step must be positive. dt = %g is invalid", dt)
	}
	if unsteady && len(p.Sources) > 0 {
		o.ComputeSource()
	}
	t := o.ts.T

	// system
	a = sla.NewMsr(o.neigh)
	rhs = make([]float64, o.n)

	// cell contributions
	var K [3][3]float64
	for c, lc := range o.cells {
		nf := len(lc.faces)
		xc := m.CellCen[c]
		vol := m.CellVol[c]
		H := mat.NewSymDense(nf, nil)

		// diffusion
		if p.Flag&param.FlagDiffusion != 0 {
			p.DiffPty.Tensor(&K, c, xc, t)
			if p.DiffHodge.InvPty {
				invert(&K)
			}
			switch p.DiffHodge.Algo {
			case param.HodgeVoronoi:
				H = voronoiHodge(lc.N, lc.R, &K)
			case param.HodgeCost:
				H = costHodge(lc.N, lc.R, &K, vol, p.DiffHodge.Coef)
			}
		}

		// local blocks: A_ff = H, A_fc = -H 1, A_cc = 1ᵀ H 1
		acc := 0.0
		for i := 0; i < nf; i++ {
			lc.acf[i] = 0
			for j := 0; j < nf; j++ {
				lc.acf[i] -= H.At(i, j)
			}
			acc -= lc.acf[i]
		}
		bc := o.source[c]
		for _, r := range p.Reactions {
			k := r.Pty.Scalar(c, xc, t)
			if r.Hodge.InvPty {
				k = 1.0 / k
			}
			acc += k * vol
		}
		if unsteady {
			mt := p.TimePty.Scalar(c, xc, t) * vol / dt
			acc += mt
			bc += mt * fieldVal[c]
		}
		if acc <= 0 {
			return nil, nil, chk.Err("cell %d cannot be condensed: A_cc = %g", c, acc)
		}
		lc.acc, lc.bc = acc, bc

		// condensation: S = A_ff - A_fc A_cf / A_cc and b_f = - A_fc b_c / A_cc
		for i, f := range lc.faces {
			for j, g := range lc.faces {
				a.Add(f, g, H.At(i, j)-lc.acf[i]*lc.acf[j]/acc)
			}
			rhs[f] -= lc.acf[i] * bc / acc
		}
	}

	// boundary conditions
	o.boundary(a, rhs, t)
	return
}

// UpdateField writes the face values and recovers the cell values
func (o *Fb) UpdateField(solu []float64, fieldVal []float64) {
	copy(o.faceVal, solu[:o.n])
	for c, lc := range o.cells {
		s := lc.bc
		for i, f := range lc.faces {
			s -= lc.acf[i] * o.faceVal[f]
		}
		fieldVal[c] = s / lc.acc
	}
}

// FaceValues returns the values at faces
func (o *Fb) FaceValues() []float64 { return o.faceVal }

// ExtraOp does nothing: face-based schemes have no advection
func (o *Fb) ExtraOp(eqname string, fld *field.Field, w post.Sink) {}

// SetInitialValues evaluates the initial conditions at cells and faces
func (o *Fb) SetInitialValues(p *param.Param, fld *field.Field) error {
	m := o.m
	res := []float64{0}
	for _, ic := range p.Time.ICs {
		var cells, faces []int
		if ic.MlId < 0 {
			cells = m.Locs.Elements(m.Locs.Id("cells"))
			faces = make([]int, m.Nfaces)
			for f := range faces {
				faces[f] = f
			}
		} else {
			loc := m.Locs.Get(ic.MlId)
			if loc == nil {
				return param.NewError(param.ErrInvalidMeshLocation, p.Eqname, ic.MlName, "", "")
			}
			switch loc.Type {
			case mesh.LocCells:
				cells = m.Locs.Elements(ic.MlId)
				seen := make(map[int]bool)
				for _, c := range cells {
					for _, f := range o.cells[c].faces {
						if !seen[f] {
							seen[f] = true
							faces = append(faces, f)
						}
					}
				}
			case mesh.LocVertices:
				return param.NewError(param.ErrInvalidMeshLocation, p.Eqname, ic.MlName, loc.Type.String(), "initial conditions require cells or faces")
			default:
				faces = m.Locs.Elements(ic.MlId)
			}
		}
		for _, c := range cells {
			o.ev.atCell(res, ic.Def, c, param.QuadBary, o.ts.T)
			fld.Val[c] = res[0]
		}
		for _, f := range faces {
			o.ev.atFace(res, ic.Def, f, param.QuadBary, o.ts.T)
			o.faceVal[f] = res[0]
		}
	}
	return nil
}

// TmpBuf returns a buffer with Ndofs entries
func (o *Fb) TmpBuf() []float64 { return o.tmp }

// Ndofs returns the number of unknowns
func (o *Fb) Ndofs() int { return o.n }

// Free releases all data
func (o *Fb) Free() {
	if o == nil {
		return
	}
	o.cells, o.neigh, o.bcs, o.stCell = nil, nil, nil, nil
	o.source, o.tmp, o.faceVal, o.isDir, o.dirVal = nil, nil, nil, nil, nil
}

// boundary applies Neumann, Robin and Dirichlet conditions on faces
func (o *Fb) boundary(a *sla.Msr, rhs []float64, t float64) {
	m := o.m
	p := o.p
	res := []float64{0, 0}
	for f := 0; f < m.Nfaces; f++ {
		o.isDir[f], o.dirVal[f] = false, 0
		bc := o.bcs[f]
		if bc == nil {
			continue
		}
		switch bc.Type {
		case param.BcNeumann:
			o.ev.atFace(res[:1], bc.Def, f, p.BC.Quad, t)
			rhs[f] += res[0] * m.FaceMeas[f]
		case param.BcRobin:
			o.ev.atFace(res, bc.Def, f, p.BC.Quad, t)
			a.Add(f, f, res[0]*m.FaceMeas[f])
			rhs[f] += res[1] * m.FaceMeas[f]
		case param.BcDirichlet:
			o.ev.atFace(res[:1], bc.Def, f, p.BC.Quad, t)
			o.isDir[f], o.dirVal[f] = true, res[0]
		case param.BcHomDirichlet:
			o.isDir[f] = true
		}
	}
	if p.BC.Enforcement == param.BcPenalization {
		for f := 0; f < o.n; f++ {
			if o.isDir[f] {
				a.Add(f, f, bigPenaCoef)
				rhs[f] += bigPenaCoef * o.dirVal[f]
			}
		}
		return
	}
	for i := 0; i < a.N; i++ {
		if o.isDir[i] {
			continue
		}
		for k := a.Idx[i]; k < a.Idx[i+1]; k++ {
			if j := a.Col[k]; o.isDir[j] {
				rhs[i] -= a.Val[k] * o.dirVal[j]
				a.Val[k] = 0
			}
		}
	}
	for i := 0; i < a.N; i++ {
		if o.isDir[i] {
			a.ClearRow(i)
			rhs[i] = o.dirVal[i]
		}
	}
}

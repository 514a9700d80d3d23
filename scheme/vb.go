// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"math"

	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/sla"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// constants
const (
	bigPenaCoef  = 1e13  // penalisation of Dirichlet conditions
	weakPenaCoef = 100.0 // penalisation of the Nitsche methods
)

// Vb implements the vertex-based scheme: one unknown per vertex
type Vb struct {
	p  *param.Param // parameters
	m  *mesh.Mesh   // mesh
	ts *TimeStep    // time step
	ev *evaluator   // definitions

	n      int            // number of unknowns
	neigh  [][]int        // pattern of the matrix
	cells  []*vbCell      // local quantities
	bcs    []*param.BcDef // boundary condition of each face
	stCell [][]int        // cells of each source term
	source []float64      // [n] integrated source terms
	tmp    []float64      // [n] buffer
	pec    []float64      // [ncells] mean Péclet number
	upw    []float64      // [ncells] mean upwind coefficient
	isDir  []bool         // [n] Dirichlet vertices
	dirVal []float64      // [n] Dirichlet values
}

// vbCell holds the local quantities of one cell
type vbCell struct {
	verts []int       // vertices
	edges []int       // edges
	G     *mat.Dense  // [ne][nv] gradient
	N     [][]float64 // [ne][3] dual face vectors
	R     [][]float64 // [ne][3] edge vectors
	dcv   []float64   // [nv] dual cell volumes
	lv    map[int]int // vertex => local index
}

// add to factory
func init() {
	SetAllocator(param.SchemeCdoVb, func(p *param.Param, m *mesh.Mesh, ts *TimeStep) (Builder, error) {
		return NewVb(p, m, ts)
	})
}

// NewVb returns a new vertex-based builder
func NewVb(p *param.Param, m *mesh.Mesh, ts *TimeStep) (o *Vb, err error) {

	// check
	if p.VarType != param.VarScalar {
		return nil, unsupported(p, "var_type", "vertex-based schemes handle scalar equations only. %v is invalid", p.VarType)
	}
	if p.Flag&param.FlagDiffusion != 0 && p.DiffHodge.Type != param.HodgeEpfd {
		return nil, unsupported(p, "hodge_diff", "diffusion requires EpFd operators. %v is invalid", p.DiffHodge.Type)
	}
	if p.IsUnsteady() {
		if p.TimeHodge.Type != param.HodgeVpcd || p.TimeHodge.Algo == param.HodgeCost {
			return nil, unsupported(p, "hodge_time_algo", "time term requires VpCd operators with voronoi or wbs. %v/%v is invalid", p.TimeHodge.Type, p.TimeHodge.Algo)
		}
	}
	for _, r := range p.Reactions {
		if r.Hodge.Type != param.HodgeVpcd || r.Hodge.Algo == param.HodgeCost {
			return nil, unsupported(p, r.Name, "reaction terms require VpCd operators with voronoi or wbs. %v/%v is invalid", r.Hodge.Type, r.Hodge.Algo)
		}
	}

	// new builder
	o = &Vb{p: p, m: m, ts: ts, ev: newEvaluator(m), n: m.Nverts}
	o.bcs, err = faceBcs(p, m)
	if err != nil {
		return nil, err
	}
	if o.weak() && p.Flag&param.FlagDiffusion == 0 {
		for _, bc := range o.bcs {
			if bc != nil && (bc.Type == param.BcDirichlet || bc.Type == param.BcHomDirichlet) {
				return nil, unsupported(p, "bc_enforcement", "%v enforcement requires a diffusion term", p.BC.Enforcement)
			}
		}
	}
	o.stCell = make([][]int, len(p.Sources))
	for i, st := range p.Sources {
		o.stCell[i], err = cellsOf(p, m, st)
		if err != nil {
			return nil, err
		}
	}
	o.source = make([]float64, o.n)
	o.tmp = make([]float64, o.n)
	o.pec = make([]float64, m.Ncells)
	o.upw = make([]float64, m.Ncells)
	o.isDir = make([]bool, o.n)
	o.dirVal = make([]float64, o.n)

	// local quantities and pattern
	o.cells = make([]*vbCell, m.Ncells)
	sets := make([]map[int]bool, o.n)
	for c := 0; c < m.Ncells; c++ {
		o.cells[c] = newVbCell(m, c)
		for _, v := range o.cells[c].verts {
			if sets[v] == nil {
				sets[v] = make(map[int]bool)
			}
			for _, w := range o.cells[c].verts {
				sets[v][w] = true
			}
		}
	}
	o.neigh = make([][]int, o.n)
	for v, set := range sets {
		for w := range set {
			o.neigh[v] = append(o.neigh[v], w)
		}
	}
	return
}

// ComputeSource evaluates the source terms at the current time
func (o *Vb) ComputeSource() {
	for i := range o.source {
		o.source[i] = 0
	}
	for i, st := range o.p.Sources {
		for _, c := range o.stCell[i] {
			lc := o.cells[c]
			res := make([]float64, len(lc.verts))
			o.ev.dualCellIntegrals(res, st.Def, c, st.Quad, o.ts.T)
			for j, v := range lc.verts {
				o.source[v] += res[j]
			}
		}
	}
}

// BuildSystem assembles the system
func (o *Vb) BuildSystem(m *mesh.Mesh, fieldVal []float64, dt float64) (rhs []float64, a *sla.Msr, err error) {
	p := o.p
	if len(fieldVal) != o.n {
		return nil, nil, chk.Err("field has %d values but %d are required", len(fieldVal), o.n)
	}
	unsteady := p.IsUnsteady()
	if unsteady && dt <= 0 {
		return nil, nil, chk.Err("time step must be positive. dt = %g is invalid", dt)
	}
	if unsteady && len(p.Sources) > 0 {
		o.ComputeSource()
	}
	theta := p.Theta()
	t := o.ts.T

	// system
	a = sla.NewMsr(o.neigh)
	rhs = make([]float64, o.n)
	copy(rhs, o.source)

	// cell contributions
	var K [3][3]float64
	for c, lc := range o.cells {
		nv := len(lc.verts)
		xc := m.CellCen[c]
		A := mat.NewDense(nv, nv, nil)

		// diffusion
		kappa := 0.0
		if p.Flag&param.FlagDiffusion != 0 {
			p.DiffPty.Tensor(&K, c, xc, t)
			if p.DiffHodge.InvPty {
				invert(&K)
			}
			kappa = (K[0][0] + K[1][1] + K[2][2]) / 3.0
			err = o.diffusion(A, lc, c, &K)
			if err != nil {
				return nil, nil, err
			}
		}

		// advection
		if p.Flag&param.FlagConvection != 0 {
			o.advection(A, lc, c, kappa, t)
		}

		// reaction
		for _, r := range p.Reactions {
			k := r.Pty.Scalar(c, xc, t)
			if r.Hodge.InvPty {
				k = 1.0 / k
			}
			err = o.vpcd(A, lc, c, r.Hodge.Algo, r.DoLumping, k)
			if err != nil {
				return nil, nil, err
			}
		}

		// time
		if unsteady {
			Mt := mat.NewDense(nv, nv, nil)
			err = o.vpcd(Mt, lc, c, p.TimeHodge.Algo, p.Time.DoLumping, p.TimePty.Scalar(c, xc, t)/dt)
			if err != nil {
				return nil, nil, err
			}
			un := make([]float64, nv)
			for i, v := range lc.verts {
				un[i] = fieldVal[v]
			}
			unv := mat.NewVecDense(nv, un)
			var mu, au mat.VecDense
			mu.MulVec(Mt, unv)
			au.MulVec(A, unv)
			for i, v := range lc.verts {
				rhs[v] += mu.AtVec(i) - (1-theta)*au.AtVec(i)
			}
			A.Scale(theta, A)
			A.Add(A, Mt)
		}

		// assemble
		for i, v := range lc.verts {
			for j, w := range lc.verts {
				a.Add(v, w, A.At(i, j))
			}
		}
	}

	// boundary conditions
	err = o.boundary(a, rhs, t)
	return
}

// UpdateField writes the solution into the field values
func (o *Vb) UpdateField(solu []float64, fieldVal []float64) {
	copy(fieldVal, solu[:o.n])
}

// ExtraOp writes the Péclet number and the upwind coefficient per cell
func (o *Vb) ExtraOp(eqname string, fld *field.Field, w post.Sink) {
	if w == nil || o.p.Flag&param.FlagConvection == 0 {
		return
	}
	if o.p.Process&param.PostPeclet != 0 {
		w.WriteVar(0, eqname+".Peclet", 1, false, mesh.LocCells, o.pec, o.ts.Nt, o.ts.T)
	}
	if o.p.Process&param.PostUpwindCoef != 0 {
		w.WriteVar(0, eqname+".UpwCoef", 1, false, mesh.LocCells, o.upw, o.ts.Nt, o.ts.T)
	}
}

// SetInitialValues evaluates the initial conditions at vertices
func (o *Vb) SetInitialValues(p *param.Param, fld *field.Field) error {
	res := []float64{0}
	for _, ic := range p.Time.ICs {
		verts, err := verticesOf(o.m, ic.MlId)
		if err != nil {
			return param.NewError(param.ErrInvalidMeshLocation, p.Eqname, ic.MlName, "", "%v", err)
		}
		for _, v := range verts {
			if !o.ev.atVertex(res, ic.Def, v, o.ts.T) {
				return param.NewError(param.ErrInvalidValue, p.Eqname, ic.MlName, "", "arrays of initial conditions must be located at vertices")
			}
			fld.Val[v] = res[0]
		}
	}
	return nil
}

// TmpBuf returns a buffer with Ndofs entries
func (o *Vb) TmpBuf() []float64 { return o.tmp }

// Ndofs returns the number of unknowns
func (o *Vb) Ndofs() int { return o.n }

// Free releases all data
func (o *Vb) Free() {
	if o == nil {
		return
	}
	o.cells, o.neigh, o.bcs, o.stCell = nil, nil, nil, nil
	o.source, o.tmp, o.pec, o.upw, o.isDir, o.dirVal = nil, nil, nil, nil, nil, nil
}

// diffusion ///////////////////////////////////////////////////////////////////////////////////

// diffusion adds the local stiffness matrix
func (o *Vb) diffusion(A *mat.Dense, lc *vbCell, c int, K *[3][3]float64) (err error) {
	vol := o.m.CellVol[c]
	switch o.p.DiffHodge.Algo {
	case param.HodgeVoronoi:
		addRtAR(A, lc.G, voronoiHodge(lc.N, lc.R, K), 1)
	case param.HodgeCost:
		addRtAR(A, lc.G, costHodge(lc.N, lc.R, K, vol, o.p.DiffHodge.Coef), 1)
	case param.HodgeWbs:
		Km := mat.NewDense(3, 3, nil)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				Km.Set(i, j, K[i][j])
			}
		}
		G := mat.NewDense(3, 4, nil)
		var GK mat.Dense
		return o.wbs(lc, c, func(Rt *mat.Dense, x [4][]float64, tvol float64) error {
			err := p1Tet(G, x[0], x[1], x[2], x[3])
			if err != nil {
				return err
			}
			GK.Mul(G.T(), Km)
			var S mat.Dense
			S.Mul(&GK, G)
			addRtAR(A, Rt, &S, tvol)
			return nil
		})
	}
	return
}

// vpcd adds k times the local vertex-to-dual-cell Hodge operator
func (o *Vb) vpcd(A *mat.Dense, lc *vbCell, c int, algo param.HodgeAlgo, lumping bool, k float64) (err error) {
	nv := len(lc.verts)
	if algo == param.HodgeVoronoi {
		for i := 0; i < nv; i++ {
			A.Set(i, i, A.At(i, i)+k*lc.dcv[i])
		}
		return
	}
	M := mat.NewDense(nv, nv, nil)
	err = o.wbs(lc, c, func(Rt *mat.Dense, x [4][]float64, tvol float64) error {
		addRtAR(M, Rt, p1Mass(tvol), 1)
		return nil
	})
	if err != nil {
		return
	}
	if lumping {
		for i, d := range lump(M) {
			A.Set(i, i, A.At(i, i)+k*d)
		}
		return
	}
	M.Scale(k, M)
	A.Add(A, M)
	return
}

// wbs loops over the tetrahedra (x_a, x_b, x_f, x_c) of the subdivision of cell c. The values at
// x_f and x_c are reconstructed from vertex values; Rt maps local vertex values to the four nodes.
func (o *Vb) wbs(lc *vbCell, c int, fcn func(Rt *mat.Dense, x [4][]float64, tvol float64) error) error {
	m := o.m
	nv := len(lc.verts)
	vol := m.CellVol[c]
	rc := make([]float64, nv)
	for i := range rc {
		rc[i] = lc.dcv[i] / vol
	}
	faces, _ := m.C2F.Row(c)
	for _, f := range faces {
		fverts, w := faceWeights(m, f)
		rf := make([]float64, nv)
		for i, v := range fverts {
			rf[lc.lv[v]] = w[i] / m.FaceMeas[f]
		}
		edges, _ := m.F2E.Row(f)
		for _, e := range edges {
			va, vb := m.E2V.Ids[2*e], m.E2V.Ids[2*e+1]
			x := [4][]float64{m.X[va], m.X[vb], m.FaceCen[f], m.CellCen[c]}
			tvol := tetVol(x[0], x[1], x[2], x[3])
			if tvol <= 0 {
				continue
			}
			Rt := mat.NewDense(4, nv, nil)
			Rt.Set(0, lc.lv[va], 1)
			Rt.Set(1, lc.lv[vb], 1)
			Rt.SetRow(2, rf)
			Rt.SetRow(3, rc)
			if err := fcn(Rt, x, tvol); err != nil {
				return err
			}
		}
	}
	return nil
}

// advection ///////////////////////////////////////////////////////////////////////////////////

// advection adds the local advection operator and records the Péclet number and upwind coefficient
func (o *Vb) advection(A *mat.Dense, lc *vbCell, c int, kappa, t float64) {
	m := o.m
	p := o.p
	flux := o.fluxes(lc, c, t)
	beta := make([]float64, 3)
	var sumPe, sumXi float64
	for le, e := range lc.edges {
		F := flux[le]
		ia, ib := lc.lv[m.E2V.Ids[2*e]], lc.lv[m.E2V.Ids[2*e+1]]

		// Péclet number
		var pe float64
		switch p.Adv.Criterion {
		case param.AdvCritXexc:
			p.AdvField.Get(beta, m.EdgeCen[e], t)
			pe = dot(beta, m.EdgeTan[e]) * m.EdgeLen[e]
		case param.AdvCritFlux:
			pe = F * m.EdgeLen[e] / math.Sqrt(dot(lc.N[le], lc.N[le]))
		}
		if kappa > 0 {
			pe /= kappa
		} else {
			pe = math.Inf(1)
		}
		xi := upwindWeight(p.Adv.Weight, math.Abs(pe))
		sumPe += math.Abs(pe)
		sumXi += xi

		// value at the dual face: weights of start and end vertices
		wa, wb := 0.5*(1+xi), 0.5*(1-xi)
		if F < 0 {
			wa, wb = wb, wa
		}
		A.Set(ia, ia, A.At(ia, ia)+F*wa)
		A.Set(ia, ib, A.At(ia, ib)+F*wb)
		A.Set(ib, ia, A.At(ib, ia)-F*wa)
		A.Set(ib, ib, A.At(ib, ib)-F*wb)
		if p.Adv.Form == param.AdvNonConservative {
			A.Set(ia, ia, A.At(ia, ia)-F)
			A.Set(ib, ib, A.At(ib, ib)+F)
		}
	}
	ne := float64(len(lc.edges))
	o.pec[c] = sumPe / ne
	o.upw[c] = sumXi / ne
}

// fluxes computes the flux of the advection field across the dual faces of cell c
func (o *Vb) fluxes(lc *vbCell, c int, t float64) (flux []float64) {
	m := o.m
	adv := o.p.AdvField
	flux = make([]float64, len(lc.edges))
	if adv.Fcns == nil {
		for le := range lc.edges {
			flux[le] = dot(adv.Vec, lc.N[le])
		}
		return
	}
	rule := triRules[o.p.Adv.Quad]
	beta := make([]float64, 3)
	x := make([]float64, 3)
	xc := m.CellCen[c]
	faces, _ := m.C2F.Row(c)
	for _, f := range faces {
		xf := m.FaceCen[f]
		edges, _ := m.F2E.Row(f)
		for _, e := range edges {
			xe := m.EdgeCen[e]
			nu := cross(sub(xf, xe), sub(xc, xe))
			s := 0.5
			if dot(nu, m.EdgeTan[e]) < 0 {
				s = -0.5
			}
			le := m.CellEdgeIndex(c, e) - m.C2E.Idx[c]
			for i, l := range rule.l {
				for k := 0; k < 3; k++ {
					x[k] = l[0]*xe[k] + l[1]*xf[k] + l[2]*xc[k]
				}
				adv.Get(beta, x, t)
				flux[le] += rule.w[i] * s * dot(beta, nu)
			}
		}
	}
	return
}

// upwindWeight returns ξ ∈ [0,1] such that the value at a dual face is ½(1+ξ) u_up + ½(1-ξ) u_down
func upwindWeight(w param.AdvWeight, pe float64) float64 {
	if math.IsInf(pe, 1) {
		if w == param.AdvCentered {
			return 0
		}
		return 1
	}
	switch w {
	case param.AdvUpwind:
		return 1
	case param.AdvCentered:
		return 0
	case param.AdvSamarskii:
		return pe / (1 + pe)
	case param.AdvSg:
		if pe < 1e-4 {
			return pe / 3.0
		}
		return 1.0/math.Tanh(pe) - 1.0/pe
	case param.AdvD10g5:
		return pe / math.Sqrt(9+pe*pe)
	}
	return 1
}

// boundary conditions /////////////////////////////////////////////////////////////////////////

// boundary applies Neumann, Robin and Dirichlet conditions
func (o *Vb) boundary(a *sla.Msr, rhs []float64, t float64) (err error) {
	m := o.m
	p := o.p
	for i := range o.isDir {
		o.isDir[i], o.dirVal[i] = false, 0
	}
	count := make([]float64, o.n)
	res := []float64{0, 0}
	for f := 0; f < m.Nfaces; f++ {
		bc := o.bcs[f]
		if bc == nil {
			continue
		}
		switch bc.Type {

		case param.BcHomNeumann:

		case param.BcNeumann, param.BcRobin:
			verts, vals := o.faceVertexIntegrals(bc.Def, f, t)
			for i, v := range verts {
				if bc.Type == param.BcNeumann {
					rhs[v] += vals[i][0]
				} else {
					a.Add(v, v, vals[i][0]) // ∫ α
					rhs[v] += vals[i][1]    // ∫ g
				}
			}

		case param.BcDirichlet, param.BcHomDirichlet:
			verts, _ := m.F2V.Row(f)
			for _, v := range verts {
				o.isDir[v] = true
				if bc.Type == param.BcHomDirichlet {
					continue
				}
				if o.ev.atVertex(res, bc.Def, v, t) {
					o.dirVal[v], count[v] = res[0], -1
					continue
				}
				if count[v] >= 0 {
					o.ev.atFace(res, bc.Def, f, p.BC.Quad, t)
					o.dirVal[v] = (o.dirVal[v]*count[v] + res[0]) / (count[v] + 1)
					count[v]++
				}
			}
		}
	}

	// Dirichlet vertices. dirVal is final here
	switch p.BC.Enforcement {
	case param.BcStrong:
		o.eliminate(a, rhs)
	case param.BcPenalization:
		for v := 0; v < o.n; v++ {
			if o.isDir[v] {
				a.Add(v, v, bigPenaCoef)
				rhs[v] += bigPenaCoef * o.dirVal[v]
			}
		}
	case param.BcWeakNitsche, param.BcWeakSym:
		var K [3][3]float64
		for f := 0; f < m.Nfaces; f++ {
			bc := o.bcs[f]
			if bc == nil || (bc.Type != param.BcDirichlet && bc.Type != param.BcHomDirichlet) {
				continue
			}
			if p.Flag&param.FlagDiffusion == 0 || p.DiffPty == nil {
				return unsupported(p, "bc_enforcement", "%v enforcement requires a diffusion term", p.BC.Enforcement)
			}
			c := m.F2C[f][0]
			p.DiffPty.Tensor(&K, c, m.CellCen[c], t)
			if p.DiffHodge.InvPty {
				invert(&K)
			}
			o.nitsche(a, rhs, f, c, &K, bc, t)
		}
	}
	return
}

// weak tells whether Dirichlet conditions are enforced with Nitsche terms
func (o *Vb) weak() bool {
	return o.p.BC.Enforcement == param.BcWeakNitsche || o.p.BC.Enforcement == param.BcWeakSym
}

// eliminate enforces Dirichlet values strongly while keeping the symmetry of the matrix
func (o *Vb) eliminate(a *sla.Msr, rhs []float64) {
	for i := 0; i < a.N; i++ {
		if o.isDir[i] {
			continue
		}
		for k := a.Idx[i]; k < a.Idx[i+1]; k++ {
			j := a.Col[k]
			if o.isDir[j] {
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

// nitsche adds the weak Dirichlet terms of face f belonging to cell c
func (o *Vb) nitsche(a *sla.Msr, rhs []float64, f, c int, K *[3][3]float64, bc *param.BcDef, t float64) {
	m := o.m
	lc := o.cells[c]
	nv := len(lc.verts)

	// outward normal
	n := make([]float64, 3)
	for i, g := range m.C2F.Ids[m.C2F.Idx[c]:m.C2F.Idx[c+1]] {
		if g == f {
			s := float64(m.C2F.Sgn[m.C2F.Idx[c]+i])
			for k := 0; k < 3; k++ {
				n[k] = s * m.FaceNorm[f][k]
			}
		}
	}

	// normal flux of the reconstructed gradient: φ = (1/|c|) nᵀ K Nᵀ G
	phi := make([]float64, nv)
	for le := range lc.edges {
		s := kdot(n, K, lc.N[le]) / m.CellVol[c]
		for j := 0; j < nv; j++ {
			phi[j] += s * lc.G.At(le, j)
		}
	}

	// face quantities
	fverts, w := faceWeights(m, f)
	kappa := (K[0][0] + K[1][1] + K[2][2]) / 3.0
	gamma := weakPenaCoef * kappa / math.Sqrt(m.FaceMeas[f])
	sym := o.p.BC.Enforcement == param.BcWeakSym
	gw := 0.0
	for i, v := range fverts {
		g := o.dirVal[v]
		if bc.Type == param.BcHomDirichlet {
			g = 0
		}
		gw += w[i] * g
		a.Add(v, v, gamma*w[i])
		rhs[v] += gamma * w[i] * g
		for j, u := range lc.verts {
			a.Add(v, u, -w[i]*phi[j])
			if sym {
				a.Add(u, v, -phi[j]*w[i])
			}
		}
	}
	if sym {
		for j, u := range lc.verts {
			rhs[u] -= phi[j] * gw
		}
	}
}

// faceVertexIntegrals computes the integrals of a definition over the portions of face f
// attached to each of its vertices
func (o *Vb) faceVertexIntegrals(def *param.Def, f int, t float64) (verts []int, vals [][]float64) {
	m := o.m
	q := o.p.BC.Quad
	verts, w := faceWeights(m, f)
	vals = make([][]float64, len(verts))
	for i := range vals {
		vals[i] = make([]float64, def.Dim)
	}
	if !o.p.BC.UseSubdiv || !pointwise(def) || def.Type == param.DefValue {
		mean := make([]float64, def.Dim)
		o.ev.atFace(mean, def, f, q, t)
		for i := range verts {
			for k := range mean {
				vals[i][k] = w[i] * mean[k]
			}
		}
		return
	}
	xf := m.FaceCen[f]
	edges, _ := m.F2E.Row(f)
	for _, e := range edges {
		xe := m.EdgeCen[e]
		for _, v := range m.E2V.Ids[2*e : 2*e+2] {
			for i, u := range verts {
				if u == v {
					integTri(vals[i], def, q, t, m.X[v], xe, xf)
				}
			}
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// newVbCell computes the local quantities of cell c
func newVbCell(m *mesh.Mesh, c int) (o *vbCell) {
	o = new(vbCell)
	o.verts, _ = m.C2V.Row(c)
	o.edges, _ = m.C2E.Row(c)
	o.lv = make(map[int]int, len(o.verts))
	for i, v := range o.verts {
		o.lv[v] = i
	}
	ne, nv := len(o.edges), len(o.verts)
	o.G = mat.NewDense(ne, nv, nil)
	o.N = make([][]float64, ne)
	o.R = make([][]float64, ne)
	for le, e := range o.edges {
		o.G.Set(le, o.lv[m.E2V.Ids[2*e]], -1)
		o.G.Set(le, o.lv[m.E2V.Ids[2*e+1]], 1)
		o.N[le] = m.DfaceVec[m.C2E.Idx[c]+le]
		o.R[le] = make([]float64, 3)
		for k := 0; k < 3; k++ {
			o.R[le][k] = m.EdgeLen[e] * m.EdgeTan[e][k]
		}
	}
	o.dcv = m.DcellVol[m.C2V.Idx[c]:m.C2V.Idx[c+1]]
	return
}

// verticesOf returns the vertices of a mesh location; all vertices if id < 0
func verticesOf(m *mesh.Mesh, id int) ([]int, error) {
	if id < 0 {
		return m.Locs.Elements(m.Locs.Id("vertices")), nil
	}
	loc := m.Locs.Get(id)
	if loc == nil {
		return nil, chk.Err("mesh location %d does not exist", id)
	}
	if loc.Type == mesh.LocVertices {
		return m.Locs.Elements(id), nil
	}
	set := make(map[int]bool)
	var adj *mesh.Adjacency
	switch loc.Type {
	case mesh.LocCells:
		adj = &m.C2V
	default:
		adj = &m.F2V
	}
	var verts []int
	for _, i := range m.Locs.Elements(id) {
		vv, _ := adj.Row(i)
		for _, v := range vv {
			if !set[v] {
				set[v] = true
				verts = append(verts, v)
			}
		}
	}
	return verts, nil
}

// invert replaces a diagonal tensor by its inverse
func invert(K *[3][3]float64) {
	for i := 0; i < 3; i++ {
		if K[i][i] != 0 {
			K[i][i] = 1.0 / K[i][i]
		}
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.toml) simulation file
package inp

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `toml:"desc"`    // description of simulation
	DirOut  string `toml:"dirout"`  // directory for output; e.g. /tmp/gocdo
	LogFile bool   `toml:"logfile"` // write log file <dirout>/<key>.log
}

// MeshData holds the definition of a box meshed with hexahedra
type MeshData struct {
	Nx int     `toml:"nx"` // number of divisions along x
	Ny int     `toml:"ny"` // number of divisions along y
	Nz int     `toml:"nz"` // number of divisions along z
	Lx float64 `toml:"lx"` // length along x
	Ly float64 `toml:"ly"` // length along y
	Lz float64 `toml:"lz"` // length along z
}

// LocData holds a mesh location selected by a box
type LocData struct {
	Name string    `toml:"name"` // name of location
	Type string    `toml:"type"` // cells, interior_faces, boundary_faces, vertices or faces
	Xmin []float64 `toml:"xmin"` // min coordinates of box
	Xmax []float64 `toml:"xmax"` // max coordinates of box
	Tol  float64   `toml:"tol"`  // tolerance
}

// PtyData holds a material property
type PtyData struct {
	Name string    `toml:"name"` // name of property
	Vals []float64 `toml:"vals"` // uniform values: 1 (isotropic) or 3 (orthotropic)
	Func string    `toml:"func"` // name of function of (t, x) for an isotropic analytic property
}

// AdvData holds an advection field
type AdvData struct {
	Name  string    `toml:"name"`  // name of field
	Vel   []float64 `toml:"vel"`   // uniform velocity
	Funcs []string  `toml:"funcs"` // functions of (t, x) for each component
}

// DefData holds a definition by value or by function
type DefData struct {
	Loc   string `toml:"loc"`   // mesh location
	Kind  string `toml:"kind"`  // dirichlet, neumann or robin (boundary conditions only)
	Value string `toml:"value"` // value; e.g. "1.0"
	Func  string `toml:"func"`  // function of (t, x); used if Value is empty
}

// SourceData holds a source term
type SourceData struct {
	Name  string `toml:"name"`  // name of source term
	Loc   string `toml:"loc"`   // mesh location; e.g. cells
	Value string `toml:"value"` // value; e.g. "1.0"
	Func  string `toml:"func"`  // function of (t, x); used if Value is empty
	Quad  string `toml:"quad"`  // quadrature: bary, higher or highest
}

// ReactionData holds a reaction term
type ReactionData struct {
	Name    string            `toml:"name"`    // name of reaction term
	Type    string            `toml:"type"`    // linear
	Pty     string            `toml:"pty"`     // name of property
	Options map[string]string `toml:"options"` // options; e.g. lumping = "true"
}

// EqData holds the definition of an equation
type EqData struct {
	Name      string            `toml:"name"`      // name of equation
	Var       string            `toml:"var"`       // name of unknown
	DefaultBc string            `toml:"defaultbc"` // dirichlet or neumann (homogeneous)
	Options   map[string]string `toml:"options"`   // options; e.g. space_scheme = "cdo_fb"
	Diffusion string            `toml:"diffusion"` // name of diffusion property
	Time      string            `toml:"time"`      // name of time property
	Advection string            `toml:"advection"` // name of advection field
	Bcs       []*DefData        `toml:"bcs"`       // boundary conditions
	Ics       []*DefData        `toml:"ics"`       // initial conditions
	Sources   []*SourceData     `toml:"sources"`   // source terms
	Reactions []*ReactionData   `toml:"reactions"` // reaction terms
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf float64 `toml:"tf"` // final time; 0 means a single (steady) step
	Dt float64 `toml:"dt"` // time step size

	// derived
	Nsteps int // number of time steps
}

// PostData holds the settings of the output
type PostData struct {
	Freq int  `toml:"freq"` // frequency of output; 0 means only the first step
	Vtu  bool `toml:"vtu"`  // write VTU files
}

// WallDistData holds the settings of the wall distance computation
type WallDistData struct {
	Wall    string            `toml:"wall"`    // mesh location of walls
	Options map[string]string `toml:"options"` // options; e.g. space_scheme = "cdo_fb"
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data       Data            `toml:"data"`       // global simulation data
	Mesh       MeshData        `toml:"mesh"`       // mesh
	Functions  FuncsData       `toml:"functions"`  // functions
	Locations  []*LocData      `toml:"locations"`  // mesh locations
	Properties []*PtyData      `toml:"properties"` // material properties
	AdvFields  []*AdvData      `toml:"advfields"`  // advection fields
	Equations  []*EqData       `toml:"equations"`  // equations
	Control    TimeControl     `toml:"control"`    // time control
	Post       PostData        `toml:"post"`       // output
	WallDist   *WallDistData   `toml:"walldist"`   // wall distance; may be nil

	// derived
	DirOut string // directory to save results
	Key    string // simulation key; e.g. mysim01.toml => mysim01
}

// ReadSim reads all simulation data from a .toml file
func ReadSim(simfilepath string, erasePrev, createDirOut bool) (o *Simulation, err error) {

	// decode
	o = new(Simulation)
	o.Mesh.SetDefault()
	_, err = toml.DecodeFile(simfilepath, o)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// filename key and output directory
	o.Key = io.FnKey(filepath.Base(simfilepath))
	o.DirOut = os.ExpandEnv(o.Data.DirOut)
	if o.DirOut == "" {
		o.DirOut = "/tmp/gocdo/" + o.Key
	}
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// check
	err = o.Mesh.PostProcess()
	if err != nil {
		return nil, err
	}
	err = o.Control.PostProcess()
	if err != nil {
		return nil, err
	}
	for i, eq := range o.Equations {
		if eq.Name == "" {
			return nil, chk.Err("name of equation %d is missing", i)
		}
		if eq.Var == "" {
			eq.Var = eq.Name
		}
		if eq.DefaultBc == "" {
			eq.DefaultBc = "neumann"
		}
	}
	for _, f := range o.Functions {
		if _, err = o.Functions.Get(f.Name); err != nil {
			return nil, err
		}
	}
	return
}

// SetDefault sets a unit cube with 10 divisions along each direction
func (o *MeshData) SetDefault() {
	o.Nx, o.Ny, o.Nz = 10, 10, 10
	o.Lx, o.Ly, o.Lz = 1, 1, 1
}

// PostProcess checks the mesh data
func (o *MeshData) PostProcess() error {
	if o.Nx < 1 || o.Ny < 1 || o.Nz < 1 {
		return chk.Err("mesh divisions must be positive. %d, %d, %d is invalid", o.Nx, o.Ny, o.Nz)
	}
	if o.Lx <= 0 || o.Ly <= 0 || o.Lz <= 0 {
		return chk.Err("mesh lengths must be positive. %g, %g, %g is invalid", o.Lx, o.Ly, o.Lz)
	}
	return nil
}

// PostProcess computes the number of steps
func (o *TimeControl) PostProcess() error {
	if o.Tf < 1e-14 {
		o.Tf, o.Nsteps = 0, 1
		return nil
	}
	if o.Dt < 1e-14 {
		return chk.Err("time step size must be positive for tf = %g", o.Tf)
	}
	o.Nsteps = int(o.Tf/o.Dt + 0.5)
	if o.Nsteps < 1 {
		o.Nsteps = 1
	}
	return nil
}

// Steady tells whether a single step is run
func (o *TimeControl) Steady() bool { return o.Tf == 0 }

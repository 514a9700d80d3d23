// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"sort"

	"github.com/cpmech/gocdo/equation"
	"github.com/cpmech/gocdo/field"
	"github.com/cpmech/gocdo/inp"
	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gocdo/sles"
	"github.com/cpmech/gocdo/walldist"
	"github.com/cpmech/gosl/chk"
)

// Domain holds the mesh, the properties and the equations defined in a simulation file
type Domain struct {
	Sim       *inp.Simulation          // input data
	Msh       *mesh.Mesh               // mesh
	Fields    *field.Registry          // fields of unknowns
	Registry  *sles.Registry           // linear solvers
	Ptys      map[string]*pty.Property // properties
	AdvFields map[string]*pty.AdvField // advection fields
	Eqs       []*equation.Equation     // equations
	WallDist  *equation.Equation       // wall distance equation; may be nil
}

// NewDomain allocates the mesh, the properties and the equations. Equations are configured
// but not yet locked.
func NewDomain(sim *inp.Simulation) (o *Domain, err error) {

	// mesh
	o = &Domain{Sim: sim, Fields: field.NewRegistry(), Registry: sles.NewRegistry()}
	d := sim.Mesh
	o.Msh, err = mesh.NewBox(d.Nx, d.Ny, d.Nz, d.Lx, d.Ly, d.Lz)
	if err != nil {
		return nil, err
	}

	// locations
	for _, loc := range sim.Locations {
		typ, err := mesh.ParseLocType(loc.Type)
		if err != nil {
			return nil, chk.Err("location %q: %v", loc.Name, err)
		}
		if len(loc.Xmin) != 3 || len(loc.Xmax) != 3 {
			return nil, chk.Err("location %q: xmin and xmax require 3 coordinates", loc.Name)
		}
		_, err = o.Msh.Locs.Add(loc.Name, typ, mesh.BoxSelector(loc.Xmin, loc.Xmax, loc.Tol))
		if err != nil {
			return nil, err
		}
	}

	// properties and advection fields
	err = o.properties()
	if err != nil {
		return nil, err
	}

	// equations
	for _, dat := range sim.Equations {
		eq, err := o.newEquation(dat)
		if err != nil {
			return nil, err
		}
		o.Eqs = append(o.Eqs, eq)
	}

	// wall distance
	if sim.WallDist != nil {
		eq := equation.New(walldist.Name, "wall_distance", param.EqPredefined, param.VarScalar, param.BcHomNeumann, o.Msh.Locs)
		eq.Registry = o.Registry
		err = setOptions(eq.SetOption, sim.WallDist.Options)
		if err != nil {
			return nil, err
		}
		err = walldist.Setup(eq, sim.WallDist.Wall, pty.Unity())
		if err != nil {
			return nil, err
		}
		o.WallDist = eq
	}
	return
}

// Eq returns an equation by name; nil if not found
func (o *Domain) Eq(name string) *equation.Equation {
	for _, eq := range o.Eqs {
		if eq.Name() == name {
			return eq
		}
	}
	return nil
}

// Free releases all equations
func (o *Domain) Free() {
	for _, eq := range o.Eqs {
		eq.Free()
	}
	o.WallDist.Free()
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// properties allocates properties and advection fields
func (o *Domain) properties() (err error) {
	o.Ptys = make(map[string]*pty.Property)
	for _, dat := range o.Sim.Properties {
		var p *pty.Property
		if dat.Func != "" {
			fcn, err := o.Sim.Functions.Get(dat.Func)
			if err != nil {
				return err
			}
			p = pty.NewAnalytic(dat.Name, fcn)
		} else {
			p, err = pty.NewUniform(dat.Name, dat.Vals...)
			if err != nil {
				return
			}
		}
		o.Ptys[dat.Name] = p
	}
	o.AdvFields = make(map[string]*pty.AdvField)
	for _, dat := range o.Sim.AdvFields {
		switch {
		case len(dat.Funcs) == 3:
			var f [3]pty.Func
			for k, name := range dat.Funcs {
				f[k], err = o.Sim.Functions.Get(name)
				if err != nil {
					return
				}
			}
			o.AdvFields[dat.Name] = pty.NewAdvFieldAnalytic(dat.Name, f[0], f[1], f[2])
		case len(dat.Vel) == 3:
			o.AdvFields[dat.Name] = pty.NewAdvField(dat.Name, dat.Vel[0], dat.Vel[1], dat.Vel[2])
		default:
			return chk.Err("advection field %q requires 3 velocity components or 3 functions", dat.Name)
		}
	}
	return
}

// newEquation allocates and configures an equation
func (o *Domain) newEquation(dat *inp.EqData) (eq *equation.Equation, err error) {

	// new equation
	var defaultBC param.BcType
	switch dat.DefaultBc {
	case "dirichlet":
		defaultBC = param.BcHomDirichlet
	case "neumann":
		defaultBC = param.BcHomNeumann
	default:
		return nil, chk.Err("equation %q: default boundary condition %q is invalid. options are dirichlet or neumann", dat.Name, dat.DefaultBc)
	}
	eq = equation.New(dat.Name, dat.Var, param.EqUser, param.VarScalar, defaultBC, o.Msh.Locs)
	eq.Registry = o.Registry
	err = setOptions(eq.SetOption, dat.Options)
	if err != nil {
		return nil, err
	}

	// terms
	links := []struct{ term, name string }{{"diffusion", dat.Diffusion}, {"time", dat.Time}, {"advection", dat.Advection}}
	for _, l := range links {
		if l.name == "" {
			continue
		}
		var obj interface{}
		if l.term == "advection" {
			a, ok := o.AdvFields[l.name]
			if !ok {
				return nil, chk.Err("equation %q: cannot find advection field %q", dat.Name, l.name)
			}
			obj = a
		} else {
			p, ok := o.Ptys[l.name]
			if !ok {
				return nil, chk.Err("equation %q: cannot find property %q", dat.Name, l.name)
			}
			obj = p
		}
		err = eq.Link(l.term, obj)
		if err != nil {
			return nil, err
		}
	}

	// boundary and initial conditions
	for _, bc := range dat.Bcs {
		defKey, val, err := o.definition(bc.Value, bc.Func)
		if err != nil {
			return nil, err
		}
		err = eq.AddBC(bc.Loc, bc.Kind, defKey, val)
		if err != nil {
			return nil, err
		}
	}
	for _, ic := range dat.Ics {
		defKey, val, err := o.definition(ic.Value, ic.Func)
		if err != nil {
			return nil, err
		}
		err = eq.AddIC(ic.Loc, defKey, val)
		if err != nil {
			return nil, err
		}
	}

	// source terms
	for _, st := range dat.Sources {
		defKey, val, err := o.definition(st.Value, st.Func)
		if err != nil {
			return nil, err
		}
		err = eq.AddSourceTerm(st.Name, st.Loc, defKey, val)
		if err != nil {
			return nil, err
		}
		if st.Quad != "" {
			err = eq.SetSourceTermOption(st.Name, "quadrature", st.Quad)
			if err != nil {
				return nil, err
			}
		}
	}

	// reaction terms
	for _, r := range dat.Reactions {
		p, ok := o.Ptys[r.Pty]
		if !ok {
			return nil, chk.Err("equation %q: cannot find property %q", dat.Name, r.Pty)
		}
		typ := r.Type
		if typ == "" {
			typ = "linear"
		}
		err = eq.AddReaction(r.Name, typ, p)
		if err != nil {
			return nil, err
		}
		name := r.Name
		err = setOptions(func(key, val string) error { return eq.SetReactionOption(name, key, val) }, r.Options)
		if err != nil {
			return nil, err
		}
	}
	return
}

// definition returns the kind and payload of a definition by value or by function
func (o *Domain) definition(value, fcnName string) (defKey string, val interface{}, err error) {
	if value != "" {
		return "value", value, nil
	}
	if fcnName == "" {
		return "", nil, chk.Err("definition requires a value or a function")
	}
	fcn, err := o.Sim.Functions.Get(fcnName)
	if err != nil {
		return
	}
	return "analytic", pty.Func(fcn), nil
}

// setOptions calls set for all options; the space scheme is set first since it resets other options
func setOptions(set func(key, val string) error, options map[string]string) (err error) {
	keys := make([]string, 0, len(options))
	for key := range options {
		if key != "space_scheme" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := options["space_scheme"]; ok {
		keys = append([]string{"space_scheme"}, keys...)
	}
	for _, key := range keys {
		err = set(key, options[key])
		if err != nil {
			return
		}
	}
	return
}

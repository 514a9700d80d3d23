// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package domain runs simulations defined in simulation (.toml) files: it allocates the mesh, the
// properties and the equations and then runs the time loop
package domain

import (
	"time"

	"github.com/cpmech/gocdo/equation"
	"github.com/cpmech/gocdo/inp"
	"github.com/cpmech/gocdo/post"
	"github.com/cpmech/gocdo/scheme"
	"github.com/cpmech/gocdo/sles"
	"github.com/cpmech/gocdo/walldist"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation
type Main struct {
	Sim      *inp.Simulation // simulation data
	Dom      *Domain         // mesh, properties and equations
	Ts       scheme.TimeStep // current time step
	Mem      *post.Memory    // last values of all output variables
	Vtu      *post.Vtu       // vtu writer; nil if not requested
	WallDist walldist.Stats  // wall distance statistics
	ShowMsg  bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.toml) filename including full path
//   erasePrev   -- erase previous results files
//   verbose     -- show messages
func NewMain(simfilepath string, erasePrev, verbose bool) (o *Main, err error) {

	// read input data
	o = &Main{ShowMsg: verbose, Mem: post.NewMemory()}
	o.Sim, err = inp.ReadSim(simfilepath, erasePrev, true)
	if err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Simulation (.toml) file read\n")
	}

	// log file
	if o.Sim.Data.LogFile {
		err = inp.InitLogFile(o.Sim.DirOut, o.Sim.Key)
		if err != nil {
			return nil, err
		}
	}
	equation.Log = inp.Log
	sles.Log = inp.Log

	// domain
	o.Dom, err = NewDomain(o.Sim)
	if err != nil {
		inp.FlushLog()
		return nil, err
	}
	if o.Sim.Post.Vtu {
		o.Vtu = post.NewVtu(o.Dom.Msh, o.Sim.DirOut, o.Sim.Key, o.Sim.Post.Freq)
	}
	if o.ShowMsg {
		io.Pf("> Domain allocated: %d cells, %d faces, %d vertices, %d equation(s)\n",
			o.Dom.Msh.Ncells, o.Dom.Msh.Nfaces, o.Dom.Msh.Nverts, len(o.Dom.Eqs))
	}
	return
}

// Run runs the simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// wall distance
	m := o.Dom.Msh
	if o.Dom.WallDist != nil {
		if o.ShowMsg {
			io.Pf("> Computing wall distance\n")
		}
		err = o.wallDistance()
		if err != nil {
			return
		}
	}

	// set up equations
	for _, eq := range o.Dom.Eqs {
		err = eq.LastSetup()
		if err != nil {
			return
		}
		err = eq.CreateField(o.Dom.Fields, m)
		if err != nil {
			return
		}
		err = eq.InitSystem(m, &o.Ts)
		if err != nil {
			return
		}
		if o.ShowMsg {
			io.Pf("%s", eq.Summary())
		}
	}

	// steady problems are solved at the first step
	ctl := o.Sim.Control
	if ctl.Steady() {
		err = o.step(0)
		if err != nil {
			return
		}
		o.output()
		return
	}

	// time loop
	o.output()
	for o.Ts.Nt = 1; o.Ts.Nt <= ctl.Nsteps; o.Ts.Nt++ {
		o.Ts.T = float64(o.Ts.Nt) * ctl.Dt
		err = o.step(ctl.Dt)
		if err != nil {
			return
		}
		o.output()
		if o.ShowMsg {
			io.Pf("> t = %g\n", o.Ts.T)
		}
	}
	o.Ts.Nt = ctl.Nsteps
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// step builds stale systems, solves all equations and runs the extra operations
func (o *Main) step(dt float64) (err error) {
	for _, eq := range o.Dom.Eqs {
		if eq.NeedsBuild() {
			err = eq.BuildSystem(o.Dom.Msh, &o.Ts, dt)
			if err != nil {
				return
			}
		}
		err = eq.Solve(true)
		if err != nil {
			return
		}
		err = eq.ExtraOp(&o.Ts, o.sink())
		if err != nil {
			return
		}
	}
	return
}

// output writes the fields of all equations
func (o *Main) output() {
	w := o.sink()
	for _, eq := range o.Dom.Eqs {
		fld := eq.Field()
		w.WriteVar(0, fld.Name, fld.Dim, true, fld.Loc, fld.Val, o.Ts.Nt, o.Ts.T)
	}
	if o.Vtu != nil && o.Vtu.Active(o.Ts.Nt) {
		o.Vtu.Flush()
	}
}

// wallDistance solves the wall distance equation
func (o *Main) wallDistance() (err error) {
	m, eq := o.Dom.Msh, o.Dom.WallDist
	err = eq.LastSetup()
	if err != nil {
		return
	}
	err = eq.CreateField(o.Dom.Fields, m)
	if err != nil {
		return
	}
	err = eq.InitSystem(m, nil)
	if err != nil {
		return
	}
	err = eq.BuildSystem(m, nil, 0)
	if err != nil {
		return
	}
	err = eq.Solve(true)
	if err != nil {
		return
	}
	o.WallDist, err = walldist.Compute(m, eq, o.sink(), o.ShowMsg)
	return
}

// sink returns the receiver of output variables
func (o *Main) sink() post.Sink {
	if o.Vtu == nil {
		return o.Mem
	}
	return post.Multi{o.Mem, o.Vtu}
}

// onexit frees equations and prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// clean resources
	o.Dom.Free()
	if o.Vtu != nil {
		o.Vtu.Flush()
	}

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	inp.LogErr(prevErr, "simulation failed")
	inp.FlushLog()
	return prevErr
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData holds function definition
type FuncData struct {
	Name string     `toml:"name"` // name of function. ex: zero, load, myfunction1, etc.
	Type string     `toml:"type"` // type of function. ex: cte, rmp, lin
	Prms dbf.Params `toml:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name; "zero" and "none" give the zero constant
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		return &dbf.Zero, nil
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err = newFunc(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("cannot get function named %q because of the following error:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// String prints functions
func (o FuncsData) String() (l string) {
	for _, f := range o {
		l += io.Sf("  %s (%s):", f.Name, f.Type)
		for _, p := range f.Prms {
			l += io.Sf(" %s=%g", p.N, p.V)
		}
		l += "\n"
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// newFunc allocates a function from the database; panics in the database become errors
func newFunc(typ string, prms dbf.Params) (fcn dbf.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			fcn, err = nil, chk.Err("function type %q with parameters %v is invalid: %v", typ, prms, r)
		}
	}()
	return dbf.New(typ, prms), nil
}

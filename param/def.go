// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"strconv"
	"strings"

	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gocdo/pty"
	"github.com/cpmech/gosl/io"
)

// UserFunc defines a user callback computing res[dim] at x and time t
type UserFunc func(x []float64, t float64, res []float64)

// ArrayDef describes an externally owned array of values
//  interlaced:     Vals[i*Stride + k]
//  not interlaced: Vals[k*n + i] with n = len(Vals)/Stride
type ArrayDef struct {
	Loc        mesh.LocType // location of the values
	Stride     int          // number of components per entity
	Interlaced bool         // layout
	Vals       []float64    // values; not owned
}

// Def holds a definition of a boundary condition, initial condition or source term.
// The kind is fixed at creation.
type Def struct {
	Type  DefType    // kind
	Dim   int        // number of components
	Vals  []float64  // DefValue
	Fcns  []pty.Func // DefAnalytic; one function per component
	Array *ArrayDef  // DefArray
	User  UserFunc   // DefUser
}

// IsZero tells whether a value definition has only zero components
func (o *Def) IsZero() bool {
	if o.Type != DefValue {
		return false
	}
	for _, v := range o.Vals {
		if v != 0 {
			return false
		}
	}
	return true
}

// Eval computes res[Dim] for entity ent with centre x at time t
func (o *Def) Eval(res []float64, ent int, x []float64, t float64) {
	switch o.Type {
	case DefValue:
		copy(res, o.Vals)
	case DefAnalytic:
		for k := 0; k < o.Dim; k++ {
			res[k] = o.Fcns[k].F(t, x)
		}
	case DefArray:
		a := o.Array
		n := len(a.Vals) / a.Stride
		for k := 0; k < o.Dim && k < a.Stride; k++ {
			if a.Interlaced {
				res[k] = a.Vals[ent*a.Stride+k]
			} else {
				res[k] = a.Vals[k*n+ent]
			}
		}
	case DefUser:
		o.User(x, t, res)
	}
}

// String returns a short description
func (o *Def) String() string {
	switch o.Type {
	case DefValue:
		return io.Sf("value %v", o.Vals)
	case DefArray:
		return io.Sf("array (loc=%v, stride=%d, interlaced=%v)", o.Array.Loc, o.Array.Stride, o.Array.Interlaced)
	}
	return o.Type.String()
}

// newDef parses a definition given by its kind name and payload
//  value:    string with dim numbers separated by spaces, float64 (dim==1) or []float64
//  analytic: pty.Func (dim==1) or []pty.Func
//  array:    *ArrayDef
//  user:     UserFunc or func([]float64, float64, []float64)
//  Note: the returned error has no equation name or item; the caller fills them
func newDef(defKey string, val interface{}, dim int) (o *Def, err *Error) {
	i := index(defTypeNames, defKey)
	if i < 0 {
		return nil, &Error{Kind: ErrInvalidDefinitionKind, Value: defKey, Msg: "options are value, analytic, array or user"}
	}
	o = &Def{Type: DefType(i), Dim: dim}
	bad := func(format string, args ...interface{}) (*Def, *Error) {
		return nil, &Error{Kind: ErrInvalidValue, Msg: io.Sf(format, args...)}
	}
	switch o.Type {
	case DefValue:
		switch v := val.(type) {
		case string:
			fields := strings.Fields(v)
			if len(fields) != dim {
				return bad("%d component(s) are required", dim)
			}
			o.Vals = make([]float64, dim)
			for k, f := range fields {
				x, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return bad("%q is not a number", f)
				}
				o.Vals[k] = x
			}
		case float64:
			if dim != 1 {
				return bad("%d component(s) are required", dim)
			}
			o.Vals = []float64{v}
		case []float64:
			if len(v) != dim {
				return bad("%d component(s) are required", dim)
			}
			o.Vals = append([]float64{}, v...)
		default:
			return bad("value definitions require a string, a float64 or a []float64")
		}
	case DefAnalytic:
		switch v := val.(type) {
		case pty.Func:
			if v == nil || dim != 1 {
				return bad("one function per component is required")
			}
			o.Fcns = []pty.Func{v}
		case []pty.Func:
			if len(v) != dim {
				return bad("%d function(s) are required", dim)
			}
			o.Fcns = v
		default:
			return bad("analytic definitions require a function of (t,x)")
		}
	case DefArray:
		a, ok := val.(*ArrayDef)
		if !ok || a == nil {
			return bad("array definitions require an *ArrayDef")
		}
		if a.Stride < 1 || len(a.Vals)%a.Stride != 0 {
			return bad("stride %d is incompatible with %d values", a.Stride, len(a.Vals))
		}
		o.Array = a
	case DefUser:
		switch v := val.(type) {
		case UserFunc:
			o.User = v
		case func([]float64, float64, []float64):
			o.User = v
		default:
			return bad("user definitions require a UserFunc")
		}
		if o.User == nil {
			return bad("user function must not be nil")
		}
	}
	return o, nil
}

// parseCoef parses a Hodge coefficient: dga, sushi, gcr or a number
func parseCoef(val string) (float64, bool) {
	switch val {
	case "dga":
		return 1.0 / 3.0, true
	case "sushi":
		return 0.57735026918962576451, true
	case "gcr":
		return 1.0, true
	}
	x, err := strconv.ParseFloat(val, 64)
	if err != nil || x <= 0 {
		return 0, false
	}
	return x, true
}

// parseBool parses true or false
func parseBool(val string) (bool, bool) {
	switch val {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

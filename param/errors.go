// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// error kinds
var (
	ErrInvalidKey                   = errors.New("invalid key")
	ErrInvalidValue                 = errors.New("invalid value")
	ErrInvalidTerm                  = errors.New("invalid term")
	ErrInvalidMeshLocation          = errors.New("invalid mesh location")
	ErrInvalidDefinitionKind        = errors.New("invalid definition kind")
	ErrInvalidBCKind                = errors.New("invalid boundary condition kind")
	ErrLocked                       = errors.New("parameters are locked")
	ErrUnsupportedSchemeCombination = errors.New("unsupported scheme combination")
	ErrUnsupportedSolverCombination = errors.New("unsupported solver combination")
	ErrBackendUnavailable           = errors.New("solver backend unavailable")
	ErrNotFound                     = errors.New("not found")
	ErrInvalidState                 = errors.New("invalid state")
)

// Error holds an error of a given kind with the equation name and the offending item
//  Note: errors.Is(err, ErrLocked) etc. work through Unwrap
type Error struct {
	Kind   error  // one of the Err... kinds above
	Eqname string // equation name
	Item   string // offending key, term or name
	Value  string // offending value; may be empty
	Msg    string // extra message; may be empty
}

// Error returns the message
func (o *Error) Error() string {
	l := io.Sf("equation %q: %v", o.Eqname, o.Kind)
	if o.Item != "" {
		l += io.Sf(": %s", o.Item)
	}
	if o.Value != "" {
		l += io.Sf(" = %q", o.Value)
	}
	if o.Msg != "" {
		l += ". " + o.Msg
	}
	return l
}

// Unwrap returns the error kind
func (o *Error) Unwrap() error { return o.Kind }

// NewError returns a new error of a given kind
func NewError(kind error, eqname, item, value, msg string, args ...interface{}) *Error {
	if len(args) > 0 {
		msg = io.Sf(msg, args...)
	}
	return &Error{Kind: kind, Eqname: eqname, Item: item, Value: value, Msg: msg}
}

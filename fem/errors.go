// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/io"
)

// ConfigurationError indicates invalid or inconsistent case settings
type ConfigurationError = inp.ConfigurationError

// cfgErr returns a new ConfigurationError
func cfgErr(msg string, prm ...interface{}) error {
	return &ConfigurationError{Msg: io.Sf(msg, prm...)}
}

// UnsupportedValueTypeError indicates a value that cannot be translated
type UnsupportedValueTypeError struct {
	Type  string // Go type of value
	Value string // printed value
	Why   string // reason
}

// Error returns the message
func (o *UnsupportedValueTypeError) Error() string {
	if o.Why == "" {
		return io.Sf("value %s of type %s is not supported", o.Value, o.Type)
	}
	return io.Sf("value %s of type %s is not supported: %s", o.Value, o.Type, o.Why)
}

// valueErr returns a new UnsupportedValueTypeError
func valueErr(v interface{}, why string, prm ...interface{}) error {
	s := io.Sf("%v", v)
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return &UnsupportedValueTypeError{Type: io.Sf("%T", v), Value: s, Why: io.Sf(why, prm...)}
}

// UnsupportedBoundaryTypeError indicates a boundary condition type that is not available
type UnsupportedBoundaryTypeError struct {
	Tag        string // type of boundary condition
	BoundaryId int
}

// Error returns the message
func (o *UnsupportedBoundaryTypeError) Error() string {
	return io.Sf("boundary condition type %q on boundary_id=%d is not supported; options are \"displacement\", \"Dirichlet\", \"force\", \"pressure\" and \"stress\"", o.Tag, o.BoundaryId)
}

// UnsupportedDimensionError indicates a mesh dimension that cannot be handled
type UnsupportedDimensionError struct {
	Dim int
}

// Error returns the message
func (o *UnsupportedDimensionError) Error() string {
	return io.Sf("dimension %d is not supported; only 2D and 3D meshes are", o.Dim)
}

// TimeIndexError indicates a step beyond the length of a time series
type TimeIndexError struct {
	Step int // requested step
	Len  int // length of series
}

// Error returns the message
func (o *TimeIndexError) Error() string {
	return io.Sf("step %d is beyond the length %d of the time series", o.Step, o.Len)
}

// ErrShortHistory indicates that the acceleration was requested before three samples were stored
var ErrShortHistory = errors.New("field history has fewer than 3 samples")

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// FieldHistory holds the last three solutions
//  Note: index 0 is the current solution, 1 the previous one and 2 the one before
type FieldHistory struct {
	buf [3]fe.Field
	n   int // number of stored samples
}

// Seed fills all slots with copies of f
func (o *FieldHistory) Seed(f fe.Field) {
	for i := range o.buf {
		o.buf[i] = f.Copy()
	}
	o.n = len(o.buf)
}

// Push shifts the solutions and stores a copy of f as the current one
func (o *FieldHistory) Push(f fe.Field) {
	o.buf[2], o.buf[1] = o.buf[1], o.buf[0]
	o.buf[0] = f.Copy()
	if o.n < len(o.buf) {
		o.n++
	}
}

// Len returns the number of stored samples
func (o *FieldHistory) Len() int { return o.n }

// Current returns the current solution; nil if empty
func (o *FieldHistory) Current() fe.Field { return o.buf[0] }

// Previous returns the previous solution; nil if not available
func (o *FieldHistory) Previous() fe.Field { return o.buf[1] }

// Velocity returns (u - u₁) / dt
func (o *FieldHistory) Velocity(dt float64) (v fe.Field, err error) {
	if o.n < 2 {
		return nil, ErrShortHistory
	}
	if dt <= 0 {
		return nil, chk.Err("time step must be positive to compute velocity; dt=%g is invalid", dt)
	}
	v = o.buf[0].Space().NewField()
	la.VecAdd(v.Vector(), 1.0/dt, o.buf[0].Vector(), -1.0/dt, o.buf[1].Vector())
	return
}

// ComputeAcceleration returns ((u - u₁)/dt - (u₁ - u₂)/dtPrev) / dt
//  Note: the formula is exact for uniform steps only
func (o *FieldHistory) ComputeAcceleration(dt, dtPrev float64) (a fe.Field, err error) {
	if o.n < 3 {
		return nil, ErrShortHistory
	}
	if dt <= 0 || dtPrev <= 0 {
		return nil, chk.Err("time steps must be positive to compute acceleration; dt=%g and dtPrev=%g are invalid", dt, dtPrev)
	}
	u, u1, u2 := o.buf[0].Vector(), o.buf[1].Vector(), o.buf[2].Vector()
	vel := la.NewVector(len(u))
	velPrev := la.NewVector(len(u))
	la.VecAdd(vel, 1.0/dt, u, -1.0/dt, u1)
	la.VecAdd(velPrev, 1.0/dtPrev, u1, -1.0/dtPrev, u2)
	a = o.buf[0].Space().NewField()
	la.VecAdd(a.Vector(), 1.0/dt, vel, -1.0/dt, velPrev)
	return
}

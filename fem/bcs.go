// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/inp"
)

// Bc defines boundary conditions
type Bc interface {
	Data() *inp.BcData        // input data
	Accept(v BcVisitor) error // calls the method of v corresponding to this condition
}

// BcVisitor handles each kind of boundary condition
type BcVisitor interface {
	VisitDisplacement(bc *DisplacementBc) error
	VisitForce(bc *ForceBc) error
	VisitPressure(bc *PressureBc) error
	VisitStress(bc *StressBc) error
}

// bcBase holds the input data
type bcBase struct {
	data *inp.BcData
}

// Data returns the input data
func (o *bcBase) Data() *inp.BcData { return o.data }

// DisplacementBc prescribes displacements (hard constraint)
type DisplacementBc struct{ bcBase }

// ForceBc applies a total force (or a traction vector) on a boundary
type ForceBc struct{ bcBase }

// PressureBc applies a pressure along a direction or the outward normal
type PressureBc struct{ bcBase }

// StressBc applies a stress tensor or a traction vector
type StressBc struct{ bcBase }

// Accept calls VisitDisplacement
func (o *DisplacementBc) Accept(v BcVisitor) error { return v.VisitDisplacement(o) }

// Accept calls VisitForce
func (o *ForceBc) Accept(v BcVisitor) error { return v.VisitForce(o) }

// Accept calls VisitPressure
func (o *PressureBc) Accept(v BcVisitor) error { return v.VisitPressure(o) }

// Accept calls VisitStress
func (o *StressBc) Accept(v BcVisitor) error { return v.VisitStress(o) }

// NewBc returns the boundary condition corresponding to the type in data
func NewBc(data *inp.BcData) (Bc, error) {
	allocator, ok := bcAllocators[data.Type]
	if !ok {
		return nil, &UnsupportedBoundaryTypeError{Tag: data.Type, BoundaryId: data.BoundaryId}
	}
	return allocator(data), nil
}

// bcAllocators holds all available boundary conditions; type => allocator
var bcAllocators = map[string]func(data *inp.BcData) Bc{
	"displacement": func(d *inp.BcData) Bc { return &DisplacementBc{bcBase{d}} },
	"Dirichlet":    func(d *inp.BcData) Bc { return &DisplacementBc{bcBase{d}} },
	"force":        func(d *inp.BcData) Bc { return &ForceBc{bcBase{d}} },
	"pressure":     func(d *inp.BcData) Bc { return &PressureBc{bcBase{d}} },
	"stress":       func(d *inp.BcData) Bc { return &StressBc{bcBase{d}} },
}

// NewBcs allocates all boundary conditions, in order
func NewBcs(data inp.BcsData) (bcs []Bc, err error) {
	bcs = make([]Bc, len(data))
	for i, d := range data {
		bcs[i], err = NewBc(d)
		if err != nil {
			return nil, err
		}
	}
	return
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
)

// Resolver converts boundary conditions into hard constraints and boundary terms
type Resolver struct {
	Bcs       []Bc                   // boundary conditions, in input order
	Mesh      fe.Mesh                // mesh with marked boundaries
	Ctx       Context                // single or mixed field
	Trans     *Translator            // value translator
	Assembler fe.Assembler           // computes areas of boundaries
	Surface   *inp.SurfaceSourceData // traction on the whole boundary; may be nil
	Variable  string                 // name of unknown used to select alternative records

	// current pass
	t       float64
	v       fe.Argument
	bcs     []*fe.DirichletBc
	terms   []fe.Term
	visited []int
}

// NewResolver returns a new Resolver
func NewResolver(data inp.BcsData, mesh fe.Mesh, ctx Context, tr *Translator, asm fe.Assembler, surface *inp.SurfaceSourceData, variable string) (o *Resolver, err error) {
	o = &Resolver{Mesh: mesh, Ctx: ctx, Trans: tr, Assembler: asm, Surface: surface, Variable: variable}
	o.Bcs, err = NewBcs(data)
	if err != nil {
		return nil, err
	}
	return
}

// Resolve visits all boundary conditions in input order
//  Input:
//   step -- current step
//   t    -- current time
//   u    -- trial function
//   v    -- test function
//  Output:
//   bcs   -- hard constraints
//   terms -- boundary terms
func (o *Resolver) Resolve(step int, t float64, u, v fe.Argument) (bcs []*fe.DirichletBc, terms []fe.Term, err error) {

	// reset
	o.Trans.SetStep(step)
	o.t, o.v = t, v
	o.bcs, o.terms, o.visited = nil, nil, nil

	// mesh ids
	marked := make(map[int]bool)
	for _, id := range o.Mesh.BoundaryIds() {
		marked[id] = true
	}

	// surface source
	if o.Surface != nil && o.Surface.Value != nil {
		var g fe.Value
		g, err = o.traction(o.Surface.Value, o.Surface.Direction, 1)
		if err != nil {
			return nil, nil, chk.Err("surface_source:\n%w", err)
		}
		o.terms = append(o.terms, &fe.BoundaryTerm{BoundaryId: fe.WholeBoundary, Traction: g, V: v})
	}

	// boundary conditions
	seen := make(map[int]string)
	for _, bc := range o.Bcs {
		d := bc.Data()
		if !marked[d.BoundaryId] {
			return nil, nil, cfgErr("boundary condition %q: boundary_id=%d is not marked in mesh; marked ids are %v", d.Name, d.BoundaryId, o.Mesh.BoundaryIds())
		}
		if prev, ok := seen[d.BoundaryId]; ok {
			return nil, nil, cfgErr("boundary conditions %q and %q have the same boundary_id=%d", prev, d.Name, d.BoundaryId)
		}
		seen[d.BoundaryId] = d.Name
		err = bc.Accept(o)
		if err != nil {
			return nil, nil, err
		}
		o.visited = append(o.visited, d.BoundaryId)
	}

	// check coverage
	var missing []int
	for id := range marked {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, nil, cfgErr("boundary ids %v are marked in mesh but have no boundary condition", missing)
	}
	return o.bcs, o.terms, nil
}

// Visited returns the boundary ids visited by the last call to Resolve, in order
func (o *Resolver) Visited() []int {
	return o.visited
}

// VisitDisplacement adds hard constraints
func (o *Resolver) VisitDisplacement(bc *DisplacementBc) (err error) {
	d := bc.Data()
	targets, err := o.Ctx.DirichletTargets(&DisplacementBc{bcBase{o.record(d)}})
	if err != nil {
		return
	}
	for _, tg := range targets {
		var val fe.Value
		val, err = o.Trans.Translate(tg.Value, tg.Space, o.t)
		if err != nil {
			return chk.Err("boundary condition %q on boundary_id=%d:\n%w", d.Name, d.BoundaryId, err)
		}
		o.bcs = append(o.bcs, &fe.DirichletBc{Space: tg.Space, Path: tg.Path, Value: val, BoundaryId: d.BoundaryId})
	}
	return
}

// VisitForce adds a boundary term with the force divided by the area of the boundary
func (o *Resolver) VisitForce(bc *ForceBc) (err error) {
	d := o.record(bc.Data())
	if d.Value == nil {
		return valueErr(nil, "force on boundary_id=%d requires a value", d.BoundaryId)
	}
	area, err := o.Assembler.Area(o.Mesh, d.BoundaryId)
	if err != nil {
		return chk.Err("cannot compute area of boundary_id=%d:\n%v", d.BoundaryId, err)
	}
	if area <= 0 {
		return cfgErr("area of boundary_id=%d must be positive; area=%g is invalid", d.BoundaryId, area)
	}
	g, err := o.traction(d.Value, d.Direction, 1.0/area)
	if err != nil {
		return chk.Err("boundary condition %q on boundary_id=%d:\n%w", d.Name, d.BoundaryId, err)
	}
	return o.addTerm(d, g)
}

// VisitPressure adds a boundary term with the pressure along a direction or the outward normal
func (o *Resolver) VisitPressure(bc *PressureBc) (err error) {
	d := o.record(bc.Data())
	if d.Value == nil {
		return valueErr(nil, "pressure on boundary_id=%d requires a value", d.BoundaryId)
	}
	p, err := o.Trans.Translate(d.Value, nil, o.t)
	if err != nil {
		return chk.Err("boundary condition %q on boundary_id=%d:\n%w", d.Name, d.BoundaryId, err)
	}
	if p.Rank() != 0 {
		return valueErr(d.Value.V, "pressure on boundary_id=%d must be a scalar", d.BoundaryId)
	}
	return o.addTerm(d, &fe.Product{A: p, B: o.direction(d.Direction)})
}

// VisitStress adds a boundary term with the traction vector or the stress projected on the outward normal
func (o *Resolver) VisitStress(bc *StressBc) (err error) {
	d := o.record(bc.Data())
	if d.Value == nil {
		return valueErr(nil, "stress on boundary_id=%d requires a value", d.BoundaryId)
	}
	g, err := o.Trans.Translate(d.Value, nil, o.t)
	if err != nil {
		return chk.Err("boundary condition %q on boundary_id=%d:\n%w", d.Name, d.BoundaryId, err)
	}
	if c, ok := g.(*fe.Constant); ok && c.Rank() == 1 {
		return o.addTerm(d, g)
	}
	return o.addTerm(d, &fe.Dot{A: g, B: &fe.Normal{}})
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// record selects the alternative record for the unknown, if any
func (o *Resolver) record(d *inp.BcData) *inp.BcData {
	return d.ForVariable(o.Variable)
}

// addTerm appends a boundary term
func (o *Resolver) addTerm(d *inp.BcData, g fe.Value) error {
	o.terms = append(o.terms, &fe.BoundaryTerm{BoundaryId: d.BoundaryId, Traction: g, V: o.v})
	return nil
}

// direction returns the given direction or the outward normal
func (o *Resolver) direction(dir []float64) fe.Value {
	if len(dir) > 0 {
		return fe.NewVector(dir)
	}
	return &fe.Normal{}
}

// traction returns the traction corresponding to a vector or to coef times a scalar along a direction
func (o *Resolver) traction(raw *inp.Value, dir []float64, coef float64) (g fe.Value, err error) {
	val, err := o.Trans.Translate(raw, nil, o.t)
	if err != nil {
		return
	}
	if c, ok := val.(*fe.Constant); ok && c.Rank() == 1 {
		return c, nil
	}
	if val.Rank() != 0 {
		return nil, valueErr(raw.V, "traction must be a vector or a scalar")
	}
	if coef != 1 {
		val = &fe.Scaled{Coef: coef, V: val}
	}
	return &fe.Product{A: val, B: o.direction(dir)}, nil
}

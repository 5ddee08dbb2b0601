// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Context holds what depends on the unknown being a single vector field or a
// mixed set of fields (e.g. displacement, velocity and pressure)
type Context interface {
	Space() fe.Space             // space of unknowns
	DisplacementSpace() fe.Space // vector space of displacements
	Names() []string             // names of fields

	// Displacement returns the displacement field of the current solution
	Displacement() (fe.Field, error)

	// Velocity returns the velocity of the current solution
	Velocity(dt float64) (fe.Field, error)

	// Save writes the current solution at time t
	Save(w fe.Writer, filename string, t float64) error

	// Initial returns the initial solution
	Initial(tr *Translator, values map[string]*inp.Value, t float64) (fe.Field, error)

	// DirichletTargets returns the (sub-)spaces and raw values constrained by bc.
	// An empty list means that nothing is prescribed
	DirichletTargets(bc *DisplacementBc) ([]*DirichletTarget, error)
}

// DirichletTarget holds one hard constraint before the value is translated
type DirichletTarget struct {
	Space fe.Space    // constrained (sub-)space
	Path  []int       // sub-space indices from the root space
	Value interface{} // raw value
}

// NewContext returns a single field context if mixed is empty; otherwise a mixed context
func NewContext(factory fe.SpaceFactory, mesh fe.Mesh, sim *inp.Simulation, hist *FieldHistory) (Context, error) {
	ndim := mesh.Gdim()
	if !sim.Mixed() {
		V, err := factory.NewSpace(mesh, sim.FeFamily, sim.FeDegree, ndim, sim.PeriodicBoundary)
		if err != nil {
			return nil, cfgErr("cannot allocate vector space:\n%v", err)
		}
		return &singleField{space: V, name: sim.VectorName, hist: hist}, nil
	}
	names := sim.MixedVariable
	if len(names) < 2 || names[0] != "displacement" {
		return nil, cfgErr("mixed_variable must start with \"displacement\" and have at least 2 fields; %v is invalid", names)
	}
	ncomps := make([]int, len(names))
	for i, name := range names {
		ncomps[i] = mixedNcomp(name, ndim)
	}
	W, err := factory.NewMixedSpace(mesh, sim.FeFamily, sim.FeDegree, ncomps)
	if err != nil {
		return nil, cfgErr("cannot allocate mixed space:\n%v", err)
	}
	return &mixedField{space: W, names: names, hist: hist}, nil
}

// mixedNcomp returns the number of components of a field in a mixed space
//  Note: displacement and velocity are vectors; all other fields are scalars
func mixedNcomp(name string, ndim int) int {
	if name == "displacement" || name == "velocity" {
		return ndim
	}
	return 1
}

// singleField implements Context for one vector field //////////////////////////////////////////////

type singleField struct {
	space fe.Space
	name  string
	hist  *FieldHistory
}

func (o *singleField) Space() fe.Space             { return o.space }
func (o *singleField) DisplacementSpace() fe.Space { return o.space }
func (o *singleField) Names() []string             { return []string{o.name} }

func (o *singleField) Displacement() (fe.Field, error) {
	if o.hist.Len() == 0 {
		return nil, ErrShortHistory
	}
	return o.hist.Current(), nil
}

func (o *singleField) Velocity(dt float64) (fe.Field, error) {
	return o.hist.Velocity(dt)
}

func (o *singleField) Save(w fe.Writer, filename string, t float64) (err error) {
	u, err := o.Displacement()
	if err != nil {
		return
	}
	return w.Write(filename, o.name, u, t)
}

func (o *singleField) Initial(tr *Translator, values map[string]*inp.Value, t float64) (fe.Field, error) {
	v, ok := values[o.name]
	if !ok || v == nil {
		return o.space.NewField(), nil
	}
	val, err := tr.Translate(v, o.space, t)
	if err != nil {
		return nil, chk.Err("initial value of %q:\n%w", o.name, err)
	}
	return toField(val, o.space, t)
}

func (o *singleField) DirichletTargets(bc *DisplacementBc) (res []*DirichletTarget, err error) {
	raw := bc.Data().Value
	if raw == nil {
		return nil, valueErr(nil, "displacement on boundary_id=%d requires a value", bc.Data().BoundaryId)
	}
	return axisTargets(o.space, nil, raw.V), nil
}

// mixedField implements Context for mixed spaces /////////////////////////////////////////////////

type mixedField struct {
	space fe.Space
	names []string
	hist  *FieldHistory
}

func (o *mixedField) Space() fe.Space             { return o.space }
func (o *mixedField) DisplacementSpace() fe.Space { return o.space.Sub(0) }
func (o *mixedField) Names() []string             { return o.names }

func (o *mixedField) sub(i int) (fe.Field, error) {
	if o.hist.Len() == 0 {
		return nil, ErrShortHistory
	}
	subs, err := o.space.Split(o.hist.Current())
	if err != nil {
		return nil, err
	}
	if i >= len(subs) {
		return nil, chk.Err("mixed space has %d fields; field %d is not available", len(subs), i)
	}
	return subs[i], nil
}

func (o *mixedField) Displacement() (fe.Field, error) { return o.sub(0) }

// Velocity returns the velocity sub-field if present; otherwise the rate of the displacement sub-field
func (o *mixedField) Velocity(dt float64) (fe.Field, error) {
	if o.names[1] == "velocity" {
		return o.sub(1)
	}
	rate, err := o.hist.Velocity(dt)
	if err != nil {
		return nil, err
	}
	subs, err := o.space.Split(rate)
	if err != nil {
		return nil, err
	}
	return subs[0], nil
}

func (o *mixedField) Save(w fe.Writer, filename string, t float64) (err error) {
	if !strings.HasSuffix(filename, ".pvd") {
		return cfgErr("result file of mixed space must have extension .pvd; %q is invalid", filename)
	}
	if o.hist.Len() == 0 {
		return ErrShortHistory
	}
	subs, err := o.space.Split(o.hist.Current())
	if err != nil {
		return
	}
	root := strings.TrimSuffix(filename, ".pvd")
	for i, f := range subs {
		err = w.Write(io.Sf("%s_%s.pvd", root, o.names[i]), o.names[i], f, t)
		if err != nil {
			return
		}
	}
	return
}

func (o *mixedField) Initial(tr *Translator, values map[string]*inp.Value, t float64) (fe.Field, error) {
	if len(values) > 0 {
		return nil, cfgErr("initial values are not available for mixed spaces")
	}
	return o.space.NewField(), nil
}

func (o *mixedField) DirichletTargets(bc *DisplacementBc) (res []*DirichletTarget, err error) {
	d := bc.Data()
	if d.Value == nil {
		return
	}
	switch d.Variable {
	case "", "displacement":
		return axisTargets(o.space.Sub(0), []int{0}, d.Value.V), nil
	case "velocity":
		return []*DirichletTarget{{o.space.Sub(1), []int{1}, d.Value.V}}, nil
	case "all":
		return []*DirichletTarget{{o.space, nil, d.Value.V}}, nil
	}
	return nil, cfgErr("boundary condition %q on boundary_id=%d: variable %q is invalid; options are \"displacement\", \"velocity\" and \"all\"", d.Name, d.BoundaryId, d.Variable)
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// axisTargets decomposes a sequence with one item per axis into one target per constrained
// axis; nil items leave the axis free. Other values constrain the whole space
func axisTargets(space fe.Space, path []int, value interface{}) (res []*DirichletTarget) {
	seq, ok := asSequence(value)
	if !ok || len(seq) != space.NumSub() {
		return []*DirichletTarget{{space, path, value}}
	}
	for i, item := range seq {
		if item == nil {
			continue
		}
		p := append(append([]int{}, path...), i)
		res = append(res, &DirichletTarget{space.Sub(i), p, item})
	}
	return
}

// toField converts constants and expressions into fields of space
func toField(v fe.Value, space fe.Space, t float64) (fe.Field, error) {
	switch val := v.(type) {
	case fe.Field:
		return val.Copy(), nil
	case fe.Evaluator:
		return space.Interpolate(val, t)
	case *fe.Constant:
		if len(val.Vals) != space.Ncomp() {
			return nil, valueErr(v, "constant has %d components but space has %d", len(val.Vals), space.Ncomp())
		}
		return space.Interpolate(constEvaluator{val.Vals}, t)
	}
	return nil, valueErr(v, "cannot convert to field")
}

// constEvaluator implements fe.Evaluator for constants
type constEvaluator struct{ vals []float64 }

func (o constEvaluator) Ncomp() int { return len(o.vals) }

func (o constEvaluator) Eval(res []float64, t float64, x []float64) error {
	copy(res, o.vals)
	return nil
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/elastfem/mdl/solid"
	"github.com/cpmech/gosl/chk"
)

// Material holds the coefficients of the weak form
type Material struct {
	Mu, Lambda fe.Value // Lamé coefficients
	Rho        fe.Value // density
	Beta       fe.Value // thermal coefficient E・α / (1 - 2・ν)
}

// NewMaterial initialises linear elastic models and returns constant or per subdomain coefficients
func NewMaterial(data *inp.MaterialData, ndim int, subdomains []int) (o *Material, err error) {
	ids := []int{0}
	if data.Piecewise() {
		ids = subdomains
		if len(ids) == 0 {
			ids = data.Subdomains()
		}
	}
	coefs := make([]map[int]float64, 4) // μ, λ, ρ, β
	for i := range coefs {
		coefs[i] = make(map[int]float64)
	}
	pstress := GetSolidFlags(ndim, data.Extra)
	for _, id := range ids {
		p, e := data.Params(id)
		if e != nil {
			return nil, cfgErr("%v", e)
		}
		mdl, e := solid.New(data.Model)
		if e != nil {
			return nil, cfgErr("%v", e)
		}
		if e = mdl.Init(ndim, pstress, p); e != nil {
			return nil, cfgErr("material %q, subdomain %d: %v", data.Name, id, e)
		}
		elast, ok := mdl.(solid.Elastic)
		if !ok {
			return nil, cfgErr("model %q is not linear elastic", data.Model)
		}
		coefs[0][id], coefs[1][id] = elast.Lame()
		coefs[2][id] = mdl.GetRho()
		coefs[3][id] = elast.ThermalCoef()
	}
	vals := make([]fe.Value, 4)
	for i, c := range coefs {
		if data.Piecewise() {
			vals[i] = &fe.Piecewise{Vals: c}
		} else {
			vals[i] = fe.NewScalar(c[0])
		}
	}
	return &Material{Mu: vals[0], Lambda: vals[1], Rho: vals[2], Beta: vals[3]}, nil
}

// FormBuilder builds the residual form of linear elasticity at each step
type FormBuilder struct {
	Sim      *inp.Simulation // input data
	Mat      *Material       // coefficients
	Space    fe.Space        // space of unknowns
	Scalar   fe.Space        // scalar space for temperatures; may be nil
	Trans    *Translator     // value translator
	Resolver *Resolver       // boundary conditions
	History  *FieldHistory   // previous solutions; read only
	Clock    *TransientState // current time and time steps; read only
}

// Build builds the form for a step
//  Input:
//   step     -- current step
//   u        -- trial function
//   v        -- test function
//   current  -- current solution; may be nil
//   previous -- previous solution; may be nil
//  Output:
//   F   -- residual form
//   bcs -- hard constraints
func (o *FormBuilder) Build(step int, u, v fe.Argument, current, previous fe.Field) (F *fe.Form, bcs []*fe.DirichletBc, err error) {

	// check
	for _, f := range []fe.Field{current, previous} {
		if f != nil && f.Space() != o.Space {
			return nil, nil, chk.Err("solution fields must belong to the space of unknowns")
		}
	}
	t := o.Clock.Time
	o.Trans.SetStep(step)

	// stiffness
	F = new(fe.Form)
	F.Add(1, &fe.StiffnessTerm{Mu: o.Mat.Mu, Lambda: o.Mat.Lambda, U: u, V: v})

	// inertia
	if o.Sim.Solver.Params.Dynamics && step >= 1 {
		var a fe.Field
		a, err = o.History.ComputeAcceleration(o.Clock.Dt, o.Clock.prevDt())
		if err != nil {
			return nil, nil, chk.Err("cannot compute acceleration at step %d:\n%w", step, err)
		}
		F.Add(-1, &fe.InertiaTerm{Density: o.Mat.Rho, Acceleration: a, V: v})
	}

	// boundary conditions
	bcs, terms, err := o.Resolver.Resolve(step, t, u, v)
	if err != nil {
		return nil, nil, err
	}

	// body source
	if o.Sim.BodySource != nil {
		var f fe.Value
		f, err = o.Trans.Translate(o.Sim.BodySource, o.Space, t)
		if err != nil {
			return nil, nil, chk.Err("body_source:\n%w", err)
		}
		terms = append(terms, &fe.SourceTerm{Source: f, V: v})
	}

	// thermal stress
	if o.Sim.Temperature != nil {
		var T fe.Value
		T, err = o.Trans.Translate(o.Sim.Temperature, o.Scalar, t)
		if err != nil {
			return nil, nil, chk.Err("temperature_distribution:\n%w", err)
		}
		if T.Rank() != 0 {
			return nil, nil, valueErr(o.Sim.Temperature.V, "temperature must be a scalar")
		}
		Tref, _ := o.Sim.Ref("temperature")
		F.Add(-1, &fe.ThermalTerm{Coef: o.Mat.Beta, Temperature: T, Reference: Tref, V: v})
	}

	// right-hand side terms
	for _, term := range terms {
		F.Add(1, term)
	}
	return
}

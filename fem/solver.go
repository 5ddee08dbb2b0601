// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
)

// Solver solves the linear system corresponding to a form
type Solver interface {
	Solve(F *fe.Form, bcs []*fe.DirichletBc, u fe.Field) (err error)
}

// allocators holds all available solvers
var allocators = make(map[string]func(k *fe.Kernel, ctx Context, prms *inp.SolverParamsData) (Solver, error))

// NewSolver returns the solver named in prms; "auto" selects "amg" for 3D meshes if available
func NewSolver(k *fe.Kernel, ctx Context, prms *inp.SolverParamsData) (Solver, error) {
	name := prms.Name
	if name == "auto" || name == "" {
		name = "linear"
		if ctx.Space().Mesh().Gdim() == 3 && k.Amg != nil {
			name = "amg"
		}
	}
	alloc, ok := allocators[name]
	if !ok {
		return nil, cfgErr("cannot find solver named %q", name)
	}
	return alloc(k, ctx, prms)
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// linSolPrms converts input data to kernel parameters
func linSolPrms(prms *inp.SolverParamsData) *fe.SolverParams {
	return &fe.SolverParams{Rtol: prms.Rtol, MaxIt: prms.MaxIt, Monitor: prms.Monitor}
}

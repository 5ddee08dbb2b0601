// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
)

// SolverLinear calls the default linear solver of the kernel
type SolverLinear struct {
	lin  fe.LinearSolver
	prms *fe.SolverParams
}

// add solver to database
func init() {
	allocators["linear"] = func(k *fe.Kernel, ctx Context, prms *inp.SolverParamsData) (Solver, error) {
		if k.Linear == nil {
			return nil, chk.Err("kernel does not provide a linear solver")
		}
		return &SolverLinear{k.Linear, linSolPrms(prms)}, nil
	}
}

// Solve solves F == 0 subject to bcs
func (o *SolverLinear) Solve(F *fe.Form, bcs []*fe.DirichletBc, u fe.Field) (err error) {
	err = o.lin.Solve(F, bcs, u, o.prms)
	if err != nil {
		return chk.Err("linear solver failed:\n%v", err)
	}
	return
}

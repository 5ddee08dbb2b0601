// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
)

// SolverAmg solves with conjugate gradients preconditioned by smoothed aggregation
// multigrid using the rigid body modes of the displacement space
type SolverAmg struct {
	amg  fe.AmgSolver
	ctx  Context
	prms *fe.SolverParams
}

// add solver to database
func init() {
	allocators["amg"] = func(k *fe.Kernel, ctx Context, prms *inp.SolverParamsData) (Solver, error) {
		if k.Amg == nil {
			return nil, cfgErr("kernel does not provide an AMG solver")
		}
		return &SolverAmg{amg: k.Amg, ctx: ctx, prms: linSolPrms(prms)}, nil
	}
}

// Solve solves F == 0 subject to bcs
//  Note: the rigid body modes are built for each solve and handed over to the kernel
func (o *SolverAmg) Solve(F *fe.Form, bcs []*fe.DirichletBc, u fe.Field) (err error) {
	null, err := BuildNullspace(o.ctx.DisplacementSpace(), u.Vector())
	if err != nil {
		return
	}
	err = o.amg.SolveAmg(F, bcs, u, null.Basis, o.prms)
	if err != nil {
		return chk.Err("AMG solver failed:\n%v", err)
	}
	return
}

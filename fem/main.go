// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the linear elasticity solver: translation of input values,
// boundary conditions, weak forms and the time loop
package fem

import (
	"time"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim     *inp.Simulation  // simulation data
	Kernel  *fe.Kernel       // finite element services
	Mesh    fe.Mesh          // mesh
	Ctx     Context          // single or mixed field
	Builder *FormBuilder     // builds forms
	Driver  *TransientDriver // time loop
	Summary *Summary         // summary structure
	Nproc   int              // number of processors
	Proc    int              // processor id
	ShowMsg bool             // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim or .yaml) filename including full path
//   kernel      -- finite element services
func NewMain(simfilepath string, kernel *fe.Kernel) (o *Main, err error) {
	sim, err := inp.ReadSim(simfilepath)
	if err != nil {
		return
	}
	return NewMainFromSim(sim, kernel, nil)
}

// NewMainFromSim returns a new Main structure from simulation data already read
//  Note: mesh == nil => the mesh is read with kernel.Meshes
func NewMainFromSim(sim *inp.Simulation, kernel *fe.Kernel, mesh fe.Mesh) (o *Main, err error) {

	// new Main object
	o = &Main{Sim: sim, Kernel: kernel, Nproc: 1}
	if kernel == nil || kernel.Spaces == nil || kernel.Assembler == nil {
		return nil, chk.Err("kernel must provide spaces and an assembler")
	}

	// multiprocessing data
	if mpi.IsOn() {
		o.Proc = mpi.WorldRank()
		o.Nproc = mpi.WorldSize()
	}
	o.ShowMsg = sim.ShowMsg(o.Proc)

	// log file
	err = inp.InitLogFile(sim.Report.LogFile, sim.Report.Level)
	if err != nil {
		return nil, err
	}

	// mesh
	o.Mesh = mesh
	if o.Mesh == nil {
		o.Mesh, err = ReadMesh(kernel.Meshes, sim.Mesh)
		if err != nil {
			return nil, err
		}
	}
	ndim := o.Mesh.Gdim()
	if o.ShowMsg {
		io.Pf("> Mesh read: ndim=%d, boundaries=%v\n", ndim, o.Mesh.BoundaryIds())
	}

	// spaces
	hist := new(FieldHistory)
	o.Ctx, err = NewContext(kernel.Spaces, o.Mesh, sim, hist)
	if err != nil {
		return nil, err
	}
	var scalar fe.Space
	if sim.Temperature != nil {
		scalar, err = kernel.Spaces.NewSpace(o.Mesh, sim.FeFamily, sim.FeDegree, 1, sim.PeriodicBoundary)
		if err != nil {
			return nil, cfgErr("cannot allocate scalar space:\n%v", err)
		}
	}

	// form builder
	tr := NewTranslator(ndim, sim.FeDegree, sim.Solver.Transient.Transient, sim.Dir)
	res, err := NewResolver(sim.Bcs, o.Mesh, o.Ctx, tr, kernel.Assembler, sim.SurfaceSource, sim.VectorName)
	if err != nil {
		return nil, err
	}
	mat, err := NewMaterial(&sim.Material, ndim, o.Mesh.SubdomainIds())
	if err != nil {
		return nil, err
	}
	clock := new(TransientState)
	o.Builder = &FormBuilder{
		Sim:      sim,
		Mat:      mat,
		Space:    o.Ctx.Space(),
		Scalar:   scalar,
		Trans:    tr,
		Resolver: res,
		History:  hist,
		Clock:    clock,
	}

	// solver and driver
	sol, err := NewSolver(kernel, o.Ctx, &sim.Solver.Params)
	if err != nil {
		return nil, err
	}
	o.Summary = new(Summary)
	o.Driver = &TransientDriver{
		Sim:     sim,
		Kernel:  kernel,
		Ctx:     o.Ctx,
		Builder: o.Builder,
		Solver:  sol,
		History: hist,
		Clock:   clock,
		Summary: o.Summary,
		Root:    o.Proc == 0,
		ShowMsg: o.ShowMsg,
	}

	// message
	if o.ShowMsg {
		io.Pf("> Initialisation step completed\n")
	}
	return
}

// Run runs FE simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// modal analysis
	if o.Sim.Solver.Params.Modal {
		var λ float64
		λ, _, err = o.SolveModal()
		if err == nil && o.ShowMsg {
			io.Pforan("> largest eigenvalue = %g\n", λ)
		}
		return
	}

	// time loop
	if o.ShowMsg {
		io.Pf("> Running FE solver\n")
	}
	_, err = o.Driver.Run()
	return
}

// SolveModal builds the form at the first step and computes the largest eigenpair
func (o *Main) SolveModal() (λ float64, vec fe.Field, err error) {
	if o.Kernel.Eigen == nil {
		return 0, nil, cfgErr("modal analysis requires an eigen solver")
	}
	space := o.Ctx.Space()
	o.Builder.Clock.Step, o.Builder.Clock.Time = 0, o.Sim.Solver.Transient.T0
	F, bcs, err := o.Builder.Build(0, space.Trial(), space.Test(), nil, nil)
	if err != nil {
		return
	}
	λ, vec, err = o.Kernel.Eigen.SolveEigen(F, bcs)
	if err != nil {
		return 0, nil, chk.Err("eigen solver failed:\n%v", err)
	}
	inp.Log(inp.LogInfo, "largest eigenvalue = %g", λ)
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time, saves summary and writes the log file
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary
	if o.Summary != nil && len(o.Summary.OutTimes) > 0 {
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.Nproc, o.Proc, o.ShowMsg)
	}

	// write log file
	if e := inp.FlushLog(); err == nil {
		err = e
	}

	// skip if previous error is not nil
	if prevErr != nil {
		err = prevErr
	}
	return
}

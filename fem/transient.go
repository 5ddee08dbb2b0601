// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"path/filepath"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// TransientState holds the current step and time
type TransientState struct {
	Step   int     // current step; zero-based
	Time   float64 // current time
	Dt     float64 // current time step
	DtPrev float64 // previous time step; 0 at the first step
}

// prevDt returns the previous time step or the current one if not available
func (o *TransientState) prevDt() float64 {
	if o.DtPrev > 0 {
		return o.DtPrev
	}
	return o.Dt
}

// TransientDriver runs the time loop: build form, solve, push history and report
type TransientDriver struct {
	Sim     *inp.Simulation // input data
	Kernel  *fe.Kernel      // finite element services
	Ctx     Context         // single or mixed field
	Builder *FormBuilder    // builds forms
	Solver  Solver          // solves forms
	History *FieldHistory   // solutions
	Clock   *TransientState // step and time
	Summary *Summary        // output steps and times; may be nil
	Root    bool            // root processor: prints messages and writes files
	ShowMsg bool            // show messages

	// derived
	tol float64 // tolerance to compare times
}

// Run runs the time loop
func (o *TransientDriver) Run() (sum *Summary, err error) {

	// initialise
	trn := &o.Sim.Solver.Transient
	space := o.Ctx.Space()
	u, v := space.Trial(), space.Test()
	o.Clock.Step, o.Clock.Time, o.Clock.DtPrev = 0, trn.T0, 0
	if len(trn.Series) > 0 {
		o.Clock.Time = trn.Series[0]
	}
	o.tol = 1e-12 * math.Max(1, math.Abs(o.tf()))
	if o.Summary == nil {
		o.Summary = new(Summary)
	}
	o.Builder.Trans.SetStep(0)
	initial, err := o.Ctx.Initial(o.Builder.Trans, o.Sim.InitialValues, o.Clock.Time)
	if err != nil {
		return nil, err
	}
	o.History.Seed(initial)
	inp.Log(inp.LogInfo, "starting %s analysis of %q with %d dofs", o.kind(), o.Sim.Key, space.Ndof())

	// loop
	for {

		// time step
		o.Clock.Dt, err = o.timeStep()
		if err != nil {
			return nil, o.stepErr(err)
		}
		if o.ShowMsg {
			io.Pf("> step %4d, time = %g, dt = %g\n", o.Clock.Step, o.Clock.Time, o.Clock.Dt)
		}
		inp.Log(inp.LogDebug, "step %d: time=%g dt=%g", o.Clock.Step, o.Clock.Time, o.Clock.Dt)

		// build and solve
		var F *fe.Form
		var bcs []*fe.DirichletBc
		F, bcs, err = o.Builder.Build(o.Clock.Step, u, v, o.History.Current(), o.History.Previous())
		if err != nil {
			return nil, o.stepErr(err)
		}
		sol := o.History.Current().Copy()
		err = o.Solver.Solve(F, bcs, sol)
		if err != nil {
			return nil, o.stepErr(err)
		}
		o.History.Push(sol)

		// report
		err = o.report()
		if err != nil {
			return nil, o.stepErr(err)
		}

		// advance
		if o.done() {
			break
		}
	}
	inp.Log(inp.LogInfo, "finished after %d steps at time=%g", o.Clock.Step, o.Clock.Time)
	return o.Summary, nil
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

// kind returns the kind of analysis
func (o *TransientDriver) kind() string {
	if o.Sim.Solver.Transient.Transient {
		return "transient"
	}
	return "steady"
}

// tf returns the ending time
func (o *TransientDriver) tf() float64 {
	trn := &o.Sim.Solver.Transient
	if len(trn.Series) > 0 {
		return trn.Series[len(trn.Series)-1]
	}
	return trn.Tf
}

// timeStep returns the time step at the current step
func (o *TransientDriver) timeStep() (dt float64, err error) {
	trn := &o.Sim.Solver.Transient
	switch {
	case !trn.Transient:
		return trn.Dt, nil
	case len(trn.Series) > 0:
		i := o.Clock.Step
		if i+1 >= len(trn.Series) {
			return 0, &TimeIndexError{Step: i + 1, Len: len(trn.Series)}
		}
		return trn.Series[i+1] - trn.Series[i], nil
	case trn.DtFunc != nil:
		dt = trn.DtFunc.F(o.Clock.Time, nil)
		if dt <= 0 {
			return 0, chk.Err("time step function %q returned dt=%g; it must be positive", trn.DtFcn, dt)
		}
		return
	}
	return trn.Dt, nil
}

// report plots and saves results
func (o *TransientDriver) report() (err error) {
	if !o.Root {
		return
	}
	rep := &o.Sim.Report
	step := o.Clock.Step
	if rep.PlotFreq > 0 && step > 0 && step%rep.PlotFreq == 0 && o.Kernel.Plotter != nil {
		var d fe.Field
		d, err = o.Ctx.Displacement()
		if err != nil {
			return
		}
		err = o.Kernel.Plotter.Plot(d, io.Sf("%s at t=%g", o.Ctx.Names()[0], o.Clock.Time))
		if err != nil {
			return chk.Err("cannot plot results:\n%v", err)
		}
	}
	if rep.SaveFreq > 0 && step > 0 && step%rep.SaveFreq == 0 {
		if o.Kernel.Writer == nil {
			return chk.Err("kernel does not provide a writer to save results")
		}
		err = o.Ctx.Save(o.Kernel.Writer, filepath.Join(o.Sim.DirOut, rep.ResultFile), o.Clock.Time)
		if err != nil {
			return
		}
		var vel fe.Field
		vel, err = o.velocity()
		if err != nil {
			return
		}
		o.Summary.Add(step, o.Clock.Time, o.History.Current(), vel)
		inp.Log(inp.LogInfo, "results saved at step %d, time=%g", step, o.Clock.Time)
	}
	return
}

// velocity returns the velocity of the current solution; nil in steady analyses
func (o *TransientDriver) velocity() (v fe.Field, err error) {
	if !o.Sim.Solver.Transient.Transient {
		return
	}
	v, err = o.Ctx.Velocity(o.Clock.Dt)
	if errors.Is(err, ErrShortHistory) {
		return nil, nil
	}
	return
}

// done advances the time and tells whether the loop must stop
func (o *TransientDriver) done() bool {
	trn := &o.Sim.Solver.Transient
	if !trn.Transient {
		return true
	}
	o.Clock.Step++
	o.Clock.DtPrev = o.Clock.Dt
	switch {
	case len(trn.Series) > 0:
		o.Clock.Time = trn.Series[o.Clock.Step]
	case trn.DtFunc != nil:
		o.Clock.Time += o.Clock.Dt
	default:
		o.Clock.Time = trn.T0 + float64(o.Clock.Step)*trn.Dt
	}
	return o.Clock.Time >= o.tf()-o.tol
}

// stepErr wraps an error with the current step and time
func (o *TransientDriver) stepErr(err error) error {
	inp.LogErr(err, io.Sf("step %d failed", o.Clock.Step))
	return chk.Err("step %d, time %g:\n%w", o.Clock.Step, o.Clock.Time, err)
}

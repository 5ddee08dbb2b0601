// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/fe/fetest"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/stretchr/testify/require"
)

// newMain reads a case from the data directory and allocates Main with in-memory services
func newMain(tst *testing.T, simfile string, m *fetest.Mesh, adjust func(sim *inp.Simulation)) (*Main, *fetest.Kit) {
	sim, err := inp.ReadSim(filepath.Join("data", simfile))
	require.NoError(tst, err)
	sim.DirOut = tst.TempDir()
	if sim.Report.LogFile != "" {
		sim.Report.LogFile = filepath.Join(sim.DirOut, filepath.Base(sim.Report.LogFile))
	}
	if adjust != nil {
		adjust(sim)
	}
	kit := fetest.NewKit(m)
	kit.Solver.Fill = func(call int, u fe.Field) {
		u.Vector().Fill(float64(call + 1))
	}
	main, err := NewMainFromSim(sim, kit.Kernel(), m)
	require.NoError(tst, err)
	return main, kit
}

// terms returns the coefficients and types of the terms of a form
func terms(F *fe.Form) (coefs []float64, kinds []string) {
	for _, t := range F.Terms {
		coefs = append(coefs, t.Coef)
		kinds = append(kinds, strings.TrimPrefix(io.Sf("%T", t.Term), "*fe."))
	}
	return
}

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. steady analysis runs one step")

	main, kit := newMain(tst, "plate.sim", fetest.NewSquare(2), func(sim *inp.Simulation) {
		sim.Solver.Transient.Transient = false
		sim.Bcs[2].Value = &inp.Value{V: 1.0}
	})
	err := main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of solves", kit.Solver.Ncalls(), 1)
	chk.Int(tst, "number of amg solves", kit.Solver.NumAmg, 0)
	chk.Int(tst, "number of files", len(kit.Writer.Written), 0)
	chk.Float64(tst, "rtol", 1e-17, kit.Solver.Prms[0].Rtol, 1e-8)

	// form: stiffness, thermal, boundary terms and body source
	coefs, kinds := terms(kit.Solver.Forms[0])
	chk.Strings(tst, "kinds", kinds, []string{
		"StiffnessTerm", "ThermalTerm",
		"BoundaryTerm", "BoundaryTerm", "BoundaryTerm", "SourceTerm",
	})
	chk.Array(tst, "coefs", 1e-17, coefs, []float64{1, -1, 1, 1, 1, 1})

	// thermal term
	th := kit.Solver.Forms[0].Terms[1].Term.(*fe.ThermalTerm)
	chk.Float64(tst, "Tref", 1e-17, th.Reference, 293)
	beta := th.Coef.(*fe.Piecewise).Vals[1]
	chk.Float64(tst, "β", 1e-6, beta, 2e11*1.2e-5/(1-2*0.25))
	if _, ok := th.Temperature.(fe.Field); !ok {
		tst.Errorf("temperature should be interpolated on the scalar space; got %T\n", th.Temperature)
	}

	// hard constraints
	bcs := kit.Solver.Bcs[0]
	chk.Int(tst, "number of constraints", len(bcs), 2)
	chk.Int(tst, "boundary id", bcs[0].BoundaryId, 4)
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. transient analysis with fixed time step")

	main, kit := newMain(tst, "plate.sim", fetest.NewSquare(1), nil)
	err := main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// 0 → 0.03 by 0.01
	chk.Int(tst, "number of solves", kit.Solver.Ncalls(), 3)
	chk.Int(tst, "final step", main.Driver.Clock.Step, 3)
	chk.Float64(tst, "final time", 1e-15, main.Driver.Clock.Time, 0.03)

	// pressure follows the ramp function
	p := kit.Solver.Forms[2].Terms[3].Term.(*fe.BoundaryTerm)
	chk.Int(tst, "pressure id", p.BoundaryId, 3)
	val, err := fe.Eval(p.Traction, []float64{0, 1})
	require.NoError(tst, err)
	chk.Array(tst, "p(0.02)", 1e-15, val, []float64{0, 0.02})

	// results saved at steps 1 and 2; plotted at step 2
	w := kit.Writer.Written
	require.Len(tst, w, 2)
	chk.String(tst, w[0].Filename, filepath.Join(main.Sim.DirOut, "result_file.pvd"))
	chk.String(tst, w[0].Name, "displacement")
	chk.Float64(tst, "t1", 1e-15, w[0].T, 0.01)
	chk.Float64(tst, "t2", 1e-15, w[1].T, 0.02)
	chk.Array(tst, "u at step 1", 1e-17, w[0].Vals, utl.Vals(8, 2))
	chk.Int(tst, "number of plots", len(kit.Writer.Plotted), 1)

	// summary
	chk.Ints(tst, "out steps", main.Summary.OutSteps, []int{1, 2})
	chk.Int(tst, "snapshots", len(main.Summary.Snapshots()), 2)
	var sum Summary
	err = sum.Read(main.Sim.DirOut, main.Sim.Key, main.Sim.EncType)
	if err != nil {
		tst.Errorf("Read failed:\n%v", err)
		return
	}
	chk.Array(tst, "out times", 1e-15, sum.OutTimes, []float64{0.01, 0.02})
	chk.Int(tst, "nproc", sum.Nproc, 1)

	// velocity (u - u₁)/dt with u = 2, u₁ = 1 and then u = 3, u₁ = 2
	chk.Array(tst, "out vels", 1e-11, sum.OutVels, []float64{100 * math.Sqrt(8), 100 * math.Sqrt(8)})
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. mixed space with dynamics and time series")

	main, kit := newMain(tst, "block.yaml", fetest.NewCube(1), nil)
	err := main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// series [0, 0.5, 1.5, 3] → 3 steps solved with AMG
	chk.Int(tst, "number of solves", kit.Solver.Ncalls(), 3)
	chk.Int(tst, "number of amg solves", kit.Solver.NumAmg, 3)
	chk.Int(tst, "nullspace", len(kit.Solver.Nullspace), 6)
	chk.Float64(tst, "final time", 1e-15, main.Driver.Clock.Time, 3)

	// inertia from the second step onwards
	_, kinds := terms(kit.Solver.Forms[0])
	for _, k := range kinds {
		if k == "InertiaTerm" {
			tst.Errorf("first step must not have inertia term\n")
		}
	}
	coefs, kinds := terms(kit.Solver.Forms[1])
	chk.String(tst, kinds[1], "InertiaTerm")
	chk.Float64(tst, "inertia coef", 1e-17, coefs[1], -1)

	// a = ((u - u₁)/dt - (u₁ - u₂)/dtPrev)/dt with u = 1, u₁ = u₂ = 0, dt = 1
	a := kit.Solver.Forms[1].Terms[1].Term.(*fe.InertiaTerm).Acceleration
	chk.Array(tst, "a", 1e-15, a.Vector(), utl.Vals(7*8, 1))

	// one file per sub-field
	w := kit.Writer.Written
	require.Len(tst, w, 6)
	dir := main.Sim.DirOut
	for i, name := range []string{"displacement", "velocity", "pressure"} {
		chk.String(tst, w[i].Filename, filepath.Join(dir, "block_"+name+".pvd"))
		chk.String(tst, w[i].Name, name)
	}
	chk.Int(tst, "pressure dofs", len(w[2].Vals), 8)

	// velocity sub-field at the outputs
	chk.Array(tst, "out vels", 1e-13, main.Summary.OutVels, []float64{2 * math.Sqrt(24), 3 * math.Sqrt(24)})

	// log file
	b, err := os.ReadFile(filepath.Join(dir, "block.log"))
	require.NoError(tst, err)
	require.Contains(tst, string(b), "DEBUG")
	require.Contains(tst, string(b), "summary written")
}

func Test_main04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main04. failures")

	// solver failure is reported with step and time
	main, kit := newMain(tst, "plate.sim", fetest.NewSquare(1), nil)
	kit.Solver.FailAt = 1
	err := main.Run()
	require.Error(tst, err)
	require.Contains(tst, err.Error(), "step 1, time 0.01")
	chk.Int(tst, "number of solves", kit.Solver.Ncalls(), 2)

	// mixed results need pvd files
	main, _ = newMain(tst, "block.yaml", fetest.NewCube(1), func(sim *inp.Simulation) {
		sim.Report.ResultFile = "block.xdmf"
	})
	err = main.Run()
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		tst.Errorf("mixed space with xdmf should give ConfigurationError; got %v\n", err)
	}

	// initial values are not available for mixed spaces
	main, _ = newMain(tst, "block.yaml", fetest.NewCube(1), func(sim *inp.Simulation) {
		sim.InitialValues = map[string]*inp.Value{"displacement": {V: 0.0}}
	})
	err = main.Run()
	if !errors.As(err, &cfg) {
		tst.Errorf("initial values in mixed space should give ConfigurationError; got %v\n", err)
	}

	// time series beyond steps
	sim, err := inp.ReadSim("data/plate.sim")
	require.NoError(tst, err)
	sim.DirOut = tst.TempDir()
	sim.Bcs[1].Value = &inp.Value{V: []interface{}{1.0, 2.0, 3.0}}
	kit = fetest.NewKit(fetest.NewSquare(1))
	main, err = NewMainFromSim(sim, kit.Kernel(), kit.Meshes.Mesh)
	require.NoError(tst, err)
	sim.Solver.Transient.Tf = 0.05
	err = main.Run()
	var tie *TimeIndexError
	if !errors.As(err, &tie) {
		tst.Errorf("step beyond series should give TimeIndexError; got %v\n", err)
	}
	chk.Int(tst, "number of solves", kit.Solver.Ncalls(), 3)
}

func Test_main05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main05. initial values, time step function and modal analysis")

	// initial values and time step function
	main, kit := newMain(tst, "plate.sim", fetest.NewSquare(1), func(sim *inp.Simulation) {
		sim.InitialValues = map[string]*inp.Value{"displacement": {V: []interface{}{"x[0]", "0"}}}
		sim.Solver.Transient.DtFunc = &dbf.Cte{C: 0.025}
		sim.Solver.Transient.Tf = 0.05
		sim.Report.SaveFreq = 0
		sim.Report.PlotFreq = 0
	})
	kit.Solver.Fill = nil
	err := main.Run()
	require.NoError(tst, err)
	chk.Int(tst, "number of solves", kit.Solver.Ncalls(), 2)
	chk.Array(tst, "initial", 1e-15, main.Driver.History.Current().Vector(), []float64{0, 0, 1, 0, 0, 0, 1, 0})

	// modal
	main, kit = newMain(tst, "plate.sim", fetest.NewSquare(1), func(sim *inp.Simulation) {
		sim.Solver.Params.Modal = true
	})
	kit.Solver.Lambda = 123
	λ, vec, err := main.SolveModal()
	require.NoError(tst, err)
	chk.Float64(tst, "λ", 1e-17, λ, 123)
	chk.Int(tst, "ndof", len(vec.Vector()), 8)
	chk.Int(tst, "number of eigen solves", kit.Solver.NumEigen, 1)
	require.NoError(tst, main.Run())
	chk.Int(tst, "number of eigen solves", kit.Solver.NumEigen, 2)
}

func Test_main06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main06. boundary plan and solver selection")

	sim, err := inp.ReadSim("data/block.yaml")
	require.NoError(tst, err)
	bcs, err := NewBcs(sim.Bcs)
	require.NoError(tst, err)
	lines, err := DescribeBcs(bcs, sim.VectorName)
	require.NoError(tst, err)
	require.Len(tst, lines, 6)
	require.Contains(tst, lines[0], "velocity = [0 0 -1]")
	require.Contains(tst, lines[1], "displacement = [0 0 0]")
	require.Contains(tst, lines[5], "force = 4 / area along normal")

	// auto selects linear in 2D and amg in 3D
	kit := fetest.NewKit(fetest.NewSquare(1))
	ctx, err := NewContext(kit.Factory, kit.Meshes.Mesh, readSim(tst, `{"mesh":"a.xml"}`), new(FieldHistory))
	require.NoError(tst, err)
	s, err := NewSolver(kit.Kernel(), ctx, &inp.SolverParamsData{Name: "auto"})
	require.NoError(tst, err)
	require.IsType(tst, &SolverLinear{}, s)

	kit = fetest.NewKit(fetest.NewCube(1))
	ctx, err = NewContext(kit.Factory, kit.Meshes.Mesh, readSim(tst, `{"mesh":"a.xml"}`), new(FieldHistory))
	require.NoError(tst, err)
	s, err = NewSolver(kit.Kernel(), ctx, &inp.SolverParamsData{Name: "auto"})
	require.NoError(tst, err)
	require.IsType(tst, &SolverAmg{}, s)

	// amg is not available without kernel support
	k := kit.Kernel()
	k.Amg = nil
	s, err = NewSolver(k, ctx, &inp.SolverParamsData{Name: "auto"})
	require.NoError(tst, err)
	require.IsType(tst, &SolverLinear{}, s)
	_, err = NewSolver(k, ctx, &inp.SolverParamsData{Name: "amg"})
	require.Error(tst, err)

	// a fresh nullspace is built from the displacement space for each solve
	amg := &SolverAmg{amg: kit.Solver, ctx: ctx, prms: new(fe.SolverParams)}
	u := ctx.Space().NewField()
	var bases [][]la.Vector
	for i := 0; i < 2; i++ {
		require.NoError(tst, amg.Solve(new(fe.Form), nil, u))
		bases = append(bases, kit.Solver.Nullspace)
	}
	for _, basis := range bases {
		require.Len(tst, basis, 6)
		chk.Float64(tst, "unit translation", 1e-14, la.VecDot(basis[0], basis[0]), 1)
	}
	if &bases[0][0][0] == &bases[1][0][0] {
		tst.Errorf("nullspace vectors must not be shared between solves\n")
	}
	chk.Float64(tst, "same modes", 1e-14, la.VecDot(bases[0][0], bases[1][0]), 1)
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// readString writes text to a temporary file with extension ext and reads it
func readString(tst *testing.T, ext, text string) (*Simulation, error) {
	fn := filepath.Join(tst.TempDir(), "case"+ext)
	if err := os.WriteFile(fn, []byte(text), 0644); err != nil {
		tst.Fatalf("cannot write file:\n%v", err)
	}
	return ReadSim(fn)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read JSON case")

	sim, err := ReadSim("data/cantilever.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}

	// derived
	chk.String(tst, sim.Key, "cantilever")
	chk.String(tst, sim.DirOut, "/tmp/elastfem/cantilever")
	chk.String(tst, sim.EncType, "gob")
	chk.String(tst, sim.Mesh, filepath.Join("data", "cantilever.xml"))

	// defaults
	chk.String(tst, sim.FeFamily, "CG")
	chk.Int(tst, "degree", sim.FeDegree, 1)
	chk.Int(tst, "maxit", sim.Solver.Params.MaxIt, 500)
	chk.Float64(tst, "rtol", 1e-17, sim.Solver.Params.Rtol, 1e-5)
	chk.String(tst, sim.Report.ResultFile, "result_file.pvd")
	if sim.Solver.Params.Monitor {
		tst.Errorf("monitor_convergence should be false\n")
	}

	// boundary conditions in the order of the file
	chk.Strings(tst, "names", sim.Bcs.Names(), []string{"fixed", "top", "right", "bottom"})
	chk.Ints(tst, "ids", sim.Bcs.Ids(), []int{4, 3, 2, 1})
	top := sim.Bcs.Get(3)
	chk.Float64(tst, "top: value", 1e-17, top.Value.V.(float64), -100)
	chk.Array(tst, "top: direction", 1e-17, top.Direction, []float64{0, 1})

	// function reference
	ref, ok := sim.Bcs.Get(2).Value.V.(*FcnRef)
	if !ok {
		tst.Errorf("pressure value should be a function reference. %T is incorrect\n", sim.Bcs.Get(2).Value.V)
		return
	}
	chk.String(tst, ref.Name, "load")
	chk.Float64(tst, "load(0.5)", 1e-15, ref.F.F(0.5, nil), 0.5)

	// material
	chk.Ints(tst, "subdomains", sim.Material.Subdomains(), []int{1, 2})
	prms, err := sim.Material.Params(2)
	if err != nil {
		tst.Errorf("Params failed:\n%v", err)
		return
	}
	chk.Float64(tst, "E", 1e-17, prms.Find("E").V, 2e11)
	chk.Float64(tst, "alpha(2)", 1e-17, prms.Find("alpha").V, 2.3e-5)
	_, err = sim.Material.Params(3)
	if err == nil {
		tst.Errorf("Params should have failed for subdomain 3\n")
	}

	// reference values
	tref, found := sim.Ref("temperature")
	if !found {
		tst.Errorf("reference temperature should be found\n")
	}
	chk.Float64(tst, "Tref", 1e-17, tref, 293)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. read YAML case")

	sim, err := ReadSim("data/block.yaml")
	require.NoError(tst, err)

	require.Equal(tst, "json", sim.EncType)
	require.Equal(tst, "/tmp/elastfem/block", sim.DirOut)
	require.True(tst, sim.Mixed())
	require.Equal(tst, []string{"top", "bottom", "sides"}, sim.Bcs.Names())
	require.Equal(tst, []interface{}{0.0, 0.0, -1.0}, sim.Bcs.Get(6).Value.V)
	require.Equal(tst, filepath.Join("/tmp/elastfem/block", "block.log"), sim.Report.LogFile)

	// alternative records
	bottom := sim.Bcs.Get(5)
	require.Nil(tst, bottom.Value)
	vel := bottom.ForVariable("velocity")
	require.Equal(tst, "velocity", vel.Variable)
	require.Equal(tst, []interface{}{0.0, 0.0, 0.0}, vel.Value.V)
	require.Same(tst, bottom, bottom.ForVariable("pressure"))

	// surface source and time series
	require.NotNil(tst, sim.SurfaceSource)
	require.Equal(tst, 2.0, sim.SurfaceSource.Value.V)
	require.Equal(tst, []float64{0, 0.5, 1.5, 3}, sim.Solver.Transient.Series)
	require.True(tst, sim.Solver.Params.Dynamics)
	require.False(tst, sim.Material.Piecewise())
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. configuration errors")

	cases := []struct {
		desc string
		text string
	}{
		{"missing mesh", `{}`},
		{"family", `{"mesh":"a.xml", "fe_family":"XX"}`},
		{"degree", `{"mesh":"a.xml", "fe_degree":0}`},
		{"encoder", `{"mesh":"a.xml", "encoder":"xml"}`},
		{"series", `{"mesh":"a.xml", "solver_settings":{"transient_settings":{"time_series":[0, 1, 1]}}}`},
		{"time step", `{"mesh":"a.xml", "solver_settings":{"transient_settings":{"transient":true, "time_step":0}}}`},
		{"solver", `{"mesh":"a.xml", "solver_settings":{"solver_parameters":{"solver":"mumps"}}}`},
		{"no id", `{"mesh":"a.xml", "boundary_conditions":{"a":{"type":"force"}}}`},
		{"dup id", `{"mesh":"a.xml", "boundary_conditions":{"a":{"boundary_id":1}, "b":{"boundary_id":1}}}`},
		{"function", `{"mesh":"a.xml", "body_source":{"fcn":"unknown"}}`},
		{"dt function", `{"mesh":"a.xml", "solver_settings":{"transient_settings":{"time_step_fcn":"unknown"}}}`},
		{"level", `{"mesh":"a.xml", "report_settings":{"logging_level":"loud"}}`},
	}
	for _, c := range cases {
		_, err := readString(tst, ".sim", c.text)
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			tst.Errorf("%s: ConfigurationError expected; got %v\n", c.desc, err)
			continue
		}
		io.Pforan("%-12s: %v\n", c.desc, err)
	}
}

func Test_sim04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim04. array of boundary conditions and time step function")

	sim, err := readString(tst, ".json", `{
		"mesh" : "/tmp/a.xdmf",
		"boundary_conditions" : [
			{ "name":"b", "boundary_id":2, "type":"displacement" },
			{ "name":"a", "boundary_id":1, "type":"force", "value":[1, 2] }
		],
		"functions" : [ { "name":"dt", "type":"cte", "prms":[ {"n":"c", "v":0.25} ] } ],
		"solver_settings" : { "transient_settings" : { "transient":true, "time_step":0, "time_step_fcn":"dt" } }
	}`)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	chk.Strings(tst, "names", sim.Bcs.Names(), []string{"b", "a"})
	chk.String(tst, sim.Mesh, "/tmp/a.xdmf")
	if sim.Bcs.Get(2).Value != nil {
		tst.Errorf("value of b should be nil\n")
	}
	chk.Float64(tst, "dt(0)", 1e-17, sim.Solver.Transient.DtFunc.F(0, nil), 0.25)
}

func Test_func01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("func01. functions database")

	funcs := FuncsData{
		&FuncData{Name: "load", Type: "rmp", Prms: []*dbf.P{
			&dbf.P{N: "ca", V: 0}, &dbf.P{N: "cb", V: 2}, &dbf.P{N: "ta", V: 0}, &dbf.P{N: "tb", V: 1},
		}},
		&FuncData{Name: "unknown", Type: "not-a-function"},
		&FuncData{Name: "badprm", Type: "cte", Prms: []*dbf.P{&dbf.P{N: "wrong", V: 1}}},
	}
	fcn, err := funcs.Get("load")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	chk.Float64(tst, "load(0.5)", 1e-15, fcn.F(0.5, nil), 1)
	fcn, err = funcs.Get("zero")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	chk.Float64(tst, "zero", 1e-17, fcn.F(1, nil), 0)

	// allocation failures are returned instead of panicking
	for _, name := range []string{"unknown", "badprm", "missing"} {
		_, err = funcs.Get(name)
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			tst.Errorf("%q: ConfigurationError expected; got %v\n", name, err)
			continue
		}
		io.Pforan("%-8s: %v\n", name, err)
	}

	// missing simulation file
	_, err = ReadSim(filepath.Join(tst.TempDir(), "nofile.sim"))
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		tst.Errorf("missing file: ConfigurationError expected; got %v\n", err)
	}
}

func Test_log01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("log01. log file")

	fn := filepath.Join(tst.TempDir(), "out", "case.log")
	err := InitLogFile(fn, "warning")
	if err != nil {
		tst.Errorf("InitLogFile failed:\n%v", err)
		return
	}
	Log(LogInfo, "skipped %d", 1)
	Log(LogWarning, "kept %d", 2)
	LogErr(errors.New("solver failed"), "step 3")
	if LogErr(nil, "nothing") {
		tst.Errorf("LogErr(nil) should return false\n")
	}
	err = FlushLog()
	if err != nil {
		tst.Errorf("FlushLog failed:\n%v", err)
		return
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		tst.Errorf("cannot read log file:\n%v", err)
		return
	}
	require.NotContains(tst, string(b), "skipped")
	require.Contains(tst, string(b), "WARNING kept 2")
	require.Contains(tst, string(b), "ERROR   step 3: solver failed")
	InitLogFile("", "")
}

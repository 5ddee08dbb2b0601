// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file or a YAML file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// TransientData holds data for defining the time stepping
type TransientData struct {
	Transient bool      `json:"transient"     yaml:"transient"`     // transient analysis; otherwise steady
	T0        float64   `json:"starting_time" yaml:"starting_time"` // starting time
	Dt        float64   `json:"time_step"     yaml:"time_step"`     // time step size (if constant)
	Tf        float64   `json:"ending_time"   yaml:"ending_time"`   // final time
	Series    []float64 `json:"time_series"   yaml:"time_series"`   // explicit time points; optional
	DtFcn     string    `json:"time_step_fcn" yaml:"time_step_fcn"` // time step size (function name); optional

	// derived
	DtFunc dbf.T // time step function; nil if DtFcn is not given
}

// SolverParamsData holds parameters of the linear solvers
type SolverParamsData struct {
	Rtol     float64 `json:"relative_tolerance"  yaml:"relative_tolerance"`  // relative tolerance
	MaxIt    int     `json:"maximum_iterations"  yaml:"maximum_iterations"`  // maximum number of iterations
	Monitor  bool    `json:"monitor_convergence" yaml:"monitor_convergence"` // show convergence history
	Name     string  `json:"solver"              yaml:"solver"`              // "auto", "linear" or "amg"
	Dynamics bool    `json:"dynamics"            yaml:"dynamics"`            // include inertial term
	Modal    bool    `json:"modal"               yaml:"modal"`               // modal analysis instead of time stepping
}

// SolverData holds solver settings
type SolverData struct {
	Transient TransientData      `json:"transient_settings" yaml:"transient_settings"` // time stepping
	RefValues map[string]float64 `json:"reference_values"   yaml:"reference_values"`   // e.g. {"temperature": 293}
	Params    SolverParamsData   `json:"solver_parameters"  yaml:"solver_parameters"`  // linear solvers
}

// ReportData holds report settings
type ReportData struct {
	Level      string `json:"logging_level"   yaml:"logging_level"`   // "debug", "info", "warning" or "error"
	LogFile    string `json:"logging_file"    yaml:"logging_file"`    // log file; "" => no log file
	PlotFreq   int    `json:"plotting_freq"   yaml:"plotting_freq"`   // plot every PlotFreq steps; 0 => never
	SaveFreq   int    `json:"saving_freq"     yaml:"saving_freq"`     // save every SaveFreq steps; 0 => never
	ResultFile string `json:"result_filename" yaml:"result_filename"` // result file; e.g. result_file.pvd
	Verbose    bool   `json:"verbose"         yaml:"verbose"`         // show messages
}

// SurfaceSourceData holds a traction applied on the whole boundary
type SurfaceSourceData struct {
	Value     *Value    `json:"value"     yaml:"value"`     // magnitude or vector
	Direction []float64 `json:"direction" yaml:"direction"` // nil => outward normal
}

// Simulation holds all simulation data
type Simulation struct {

	// input: case
	CaseName   string `json:"case_name"   yaml:"case_name"`   // name of case
	CaseFolder string `json:"case_folder" yaml:"case_folder"` // directory for output; e.g. /tmp/elastfem/mycase
	Encoder    string `json:"encoder"     yaml:"encoder"`     // encoder name of summary; "gob" or "json"

	// input: discretisation
	Mesh             string   `json:"mesh"              yaml:"mesh"`              // mesh file path
	FeFamily         string   `json:"fe_family"         yaml:"fe_family"`         // element family; e.g. "CG"
	FeDegree         int      `json:"fe_degree"         yaml:"fe_degree"`         // polynomial degree
	PeriodicBoundary string   `json:"periodic_boundary" yaml:"periodic_boundary"` // name of periodic boundary map; optional
	VectorName       string   `json:"vector_name"       yaml:"vector_name"`       // name of unknown field
	MixedVariable    []string `json:"mixed_variable"    yaml:"mixed_variable"`    // names of sub-fields of mixed spaces

	// input: conditions
	Bcs           BcsData            `json:"boundary_conditions"      yaml:"boundary_conditions"`      // ordered boundary conditions
	BodySource    *Value             `json:"body_source"              yaml:"body_source"`              // body force
	SurfaceSource *SurfaceSourceData `json:"surface_source"           yaml:"surface_source"`           // traction on whole boundary
	Temperature   *Value             `json:"temperature_distribution" yaml:"temperature_distribution"` // temperature field
	InitialValues map[string]*Value  `json:"initial_values"           yaml:"initial_values"`           // variable name => value

	// input: material, functions and settings
	Material  MaterialData `json:"material"        yaml:"material"`        // material properties
	Functions FuncsData    `json:"functions"       yaml:"functions"`       // functions database
	Solver    SolverData   `json:"solver_settings" yaml:"solver_settings"` // solver settings
	Report    ReportData   `json:"report_settings" yaml:"report_settings"` // report settings

	// derived
	Dir     string // directory of case file; relative paths are resolved from here
	Key     string // simulation key; e.g. mysim01.sim => mysim01
	DirOut  string // directory to save results
	EncType string // encoder type
}

// known element families
var feFamilies = map[string]bool{"CG": true, "Lagrange": true, "P": true, "Q": true, "DG": true}

// SetDefault sets default values
func (o *Simulation) SetDefault() {
	o.FeFamily = "CG"
	o.FeDegree = 1
	o.VectorName = "displacement"
	o.Material.SetDefault()
	o.Solver.SetDefault()
	o.Report.SetDefault()
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Transient.T0 = 0
	o.Transient.Dt = 0.01
	o.Transient.Tf = 0.03
	o.Params.Rtol = 1e-5
	o.Params.MaxIt = 500
	o.Params.Monitor = true
	o.Params.Name = "auto"
}

// SetDefault sets default values
func (o *ReportData) SetDefault() {
	o.Level = "info"
	o.PlotFreq = 10
	o.SaveFreq = 10
	o.ResultFile = "result_file.pvd"
}

// ReadSim reads all simulation data from a .sim (JSON) or .yaml (YAML) file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)
	o.SetDefault()

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, cfgErr("cannot read simulation file %q", simfilepath)
	}

	// decode
	switch strings.ToLower(io.FnExt(simfilepath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	default:
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, cfgErr("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.Dir = os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))
	err = o.PostProcess()
	if err != nil {
		return nil, err
	}
	return
}

// PostProcess validates the input and sets derived values
func (o *Simulation) PostProcess() (err error) {

	// output directory
	o.DirOut = o.CaseFolder
	if o.DirOut == "" {
		o.DirOut = "/tmp/elastfem/" + o.Key
	}

	// encoder type
	o.EncType = o.Encoder
	switch o.EncType {
	case "":
		o.EncType = "gob"
	case "gob", "json":
	default:
		return cfgErr("encoder %q is invalid; options are \"gob\" and \"json\"", o.Encoder)
	}

	// mesh
	if o.Mesh == "" {
		return cfgErr("mesh file must be given")
	}
	if !filepath.IsAbs(o.Mesh) && o.Dir != "" {
		o.Mesh = filepath.Join(o.Dir, o.Mesh)
	}

	// discretisation
	if !feFamilies[o.FeFamily] {
		return cfgErr("element family %q is not available", o.FeFamily)
	}
	if o.FeDegree < 1 {
		return cfgErr("element degree must be at least 1; fe_degree=%d is invalid", o.FeDegree)
	}

	// time stepping
	err = o.Solver.Transient.PostProcess(o.Functions)
	if err != nil {
		return
	}

	// linear solver
	switch o.Solver.Params.Name {
	case "auto", "linear", "amg":
	default:
		return cfgErr("solver %q is invalid; options are \"auto\", \"linear\" and \"amg\"", o.Solver.Params.Name)
	}

	// report
	if _, err = LogLevel(o.Report.Level); err != nil {
		return cfgErr("%v", err)
	}
	if o.Report.LogFile != "" && !filepath.IsAbs(o.Report.LogFile) {
		o.Report.LogFile = filepath.Join(o.DirOut, o.Report.LogFile)
	}

	// boundary conditions
	ids := make(map[int]string)
	for _, bc := range o.Bcs {
		if bc.BoundaryId == NoBoundaryId {
			return cfgErr("boundary condition %q must have a boundary_id", bc.Name)
		}
		if bc.BoundaryId < 0 {
			return cfgErr("boundary condition %q: boundary_id=%d must be non-negative", bc.Name, bc.BoundaryId)
		}
		if prev, ok := ids[bc.BoundaryId]; ok {
			return cfgErr("boundary conditions %q and %q have the same boundary_id=%d", prev, bc.Name, bc.BoundaryId)
		}
		ids[bc.BoundaryId] = bc.Name
		if err = bc.PostProcess(o.Functions); err != nil {
			return
		}
	}

	// values
	if err = o.BodySource.PostProcess(o.Functions); err != nil {
		return
	}
	if err = o.Temperature.PostProcess(o.Functions); err != nil {
		return
	}
	if o.SurfaceSource != nil {
		if err = o.SurfaceSource.Value.PostProcess(o.Functions); err != nil {
			return
		}
	}
	for _, v := range o.InitialValues {
		if err = v.PostProcess(o.Functions); err != nil {
			return
		}
	}
	return
}

// PostProcess checks the time stepping data and connects the time step function
func (o *TransientData) PostProcess(funcs FuncsData) (err error) {
	for i := 1; i < len(o.Series); i++ {
		if o.Series[i] <= o.Series[i-1] {
			return cfgErr("time_series must be strictly increasing; t[%d]=%g <= t[%d]=%g", i, o.Series[i], i-1, o.Series[i-1])
		}
	}
	if o.DtFcn != "" {
		o.DtFunc, err = funcs.Get(o.DtFcn)
		if err != nil {
			return cfgErr("time_step_fcn:\n%v", err)
		}
	}
	if o.Transient && o.Dt <= 0 && len(o.Series) == 0 && o.DtFunc == nil {
		return cfgErr("time_step=%g must be positive in transient analyses", o.Dt)
	}
	if o.Transient && len(o.Series) == 0 && o.Tf < o.T0 {
		return cfgErr("ending_time=%g must not be smaller than starting_time=%g", o.Tf, o.T0)
	}
	return
}

// Mixed tells whether a mixed space is required
func (o *Simulation) Mixed() bool {
	return len(o.MixedVariable) > 0
}

// Ref returns a reference value; e.g. "temperature"
func (o *Simulation) Ref(name string) (v float64, found bool) {
	v, found = o.Solver.RefValues[name]
	return
}

// ShowMsg tells whether messages should be printed by this processor
func (o *Simulation) ShowMsg(rank int) bool {
	return o.Report.Verbose && rank == 0
}

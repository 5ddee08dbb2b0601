// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetest

import (
	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Factory implements fe.SpaceFactory
type Factory struct {
	Periodic string // last periodic boundary name received
}

// NewSpace returns a scalar (ncomp==1) or vector space
func (o *Factory) NewSpace(m fe.Mesh, family string, degree, ncomp int, periodic string) (fe.Space, error) {
	msh, ok := m.(*Mesh)
	if !ok {
		return nil, chk.Err("mesh of type %T is not supported", m)
	}
	if ncomp < 1 {
		return nil, chk.Err("number of components must be positive; ncomp=%d is invalid", ncomp)
	}
	o.Periodic = periodic
	return newSpace(msh, family, degree, ncomp, 0, ncomp, nil), nil
}

// NewMixedSpace returns a space with one sub-space per entry in ncomps
func (o *Factory) NewMixedSpace(m fe.Mesh, family string, degree int, ncomps []int) (fe.Space, error) {
	msh, ok := m.(*Mesh)
	if !ok {
		return nil, chk.Err("mesh of type %T is not supported", m)
	}
	if len(ncomps) < 2 {
		return nil, chk.Err("mixed space needs at least two sub-spaces")
	}
	total := 0
	for _, n := range ncomps {
		total += n
	}
	root := &Space{mesh: msh, family: family, degree: degree, ncomp: total, stride: total, mixed: true}
	root.root = root
	offset := 0
	for _, n := range ncomps {
		root.subs = append(root.subs, newSpace(msh, family, degree, n, offset, total, root))
		offset += n
	}
	return root, nil
}

// MeshReader implements fe.MeshReader by returning Mesh and recording the calls
type MeshReader struct {
	Mesh  *Mesh      // mesh returned by all readers
	Calls [][]string // [ncalls] {method, args...}
}

// ReadXml records the call
func (o *MeshReader) ReadXml(path, facetPath, physicalPath string) (fe.Mesh, error) {
	o.Calls = append(o.Calls, []string{"xml", path, facetPath, physicalPath})
	return o.Mesh, nil
}

// ReadHdf5 records the call
func (o *MeshReader) ReadHdf5(path, meshSet, subdomainSet, boundarySet string) (fe.Mesh, error) {
	o.Calls = append(o.Calls, []string{"hdf5", path, meshSet, subdomainSet, boundarySet})
	return o.Mesh, nil
}

// ReadXdmf records the call
func (o *MeshReader) ReadXdmf(path string) (fe.Mesh, error) {
	o.Calls = append(o.Calls, []string{"xdmf", path})
	return o.Mesh, nil
}

// Assembler implements fe.Assembler using the areas stored in Mesh
type Assembler struct{}

// Area returns the area of boundary id; fe.WholeBoundary gives the total area
func (o *Assembler) Area(m fe.Mesh, boundaryId int) (a float64, err error) {
	msh, ok := m.(*Mesh)
	if !ok {
		return 0, chk.Err("mesh of type %T is not supported", m)
	}
	if boundaryId == fe.WholeBoundary {
		for _, v := range msh.Areas {
			a += v
		}
		return
	}
	a, ok = msh.Areas[boundaryId]
	if !ok {
		return 0, chk.Err("boundary id %d is not marked in mesh", boundaryId)
	}
	return
}

// Solution is called by the recording solvers to fill the unknown field
//  Input:
//   call -- index of the call, starting at 0
type Solution func(call int, u fe.Field)

// Solver implements fe.LinearSolver, fe.AmgSolver and fe.EigenSolver by recording the calls
type Solver struct {

	// recorded
	Forms     []*fe.Form          // forms received
	Bcs       [][]*fe.DirichletBc // constraints received
	Nullspace []la.Vector         // last nullspace received
	Prms      []*fe.SolverParams  // parameters received
	NumAmg    int                 // number of calls to SolveAmg
	NumEigen  int                 // number of calls to SolveEigen

	// behaviour
	Fill   Solution // computes the solution; may be nil
	FailAt int      // call index that fails; negative => never
	Lambda float64  // eigenvalue returned by SolveEigen
}

// NewSolver returns a recording solver that never fails
func NewSolver() *Solver { return &Solver{FailAt: -1} }

// Ncalls returns the number of solve calls
func (o *Solver) Ncalls() int { return len(o.Forms) }

// Solve records the call
func (o *Solver) Solve(F *fe.Form, bcs []*fe.DirichletBc, u fe.Field, prms *fe.SolverParams) error {
	call := len(o.Forms)
	o.Forms = append(o.Forms, F)
	o.Bcs = append(o.Bcs, bcs)
	o.Prms = append(o.Prms, prms)
	if call == o.FailAt {
		return chk.Err("linear solver did not converge")
	}
	if o.Fill != nil {
		o.Fill(call, u)
	}
	return nil
}

// SolveAmg records the call
func (o *Solver) SolveAmg(F *fe.Form, bcs []*fe.DirichletBc, u fe.Field, nullspace []la.Vector, prms *fe.SolverParams) error {
	o.NumAmg++
	o.Nullspace = nullspace
	return o.Solve(F, bcs, u, prms)
}

// SolveEigen records the call and returns Lambda with a field filled by Fill
func (o *Solver) SolveEigen(F *fe.Form, bcs []*fe.DirichletBc) (lambda float64, vec fe.Field, err error) {
	o.NumEigen++
	o.Forms = append(o.Forms, F)
	o.Bcs = append(o.Bcs, bcs)
	var u fe.Field
	for _, ft := range F.Terms {
		if s, ok := ft.Term.(*fe.StiffnessTerm); ok {
			u = s.U.Space().NewField()
			break
		}
	}
	if u == nil {
		return 0, nil, chk.Err("form has no stiffness term")
	}
	if o.Fill != nil {
		o.Fill(o.NumEigen-1, u)
	}
	return o.Lambda, u, nil
}

// Record holds one call to Writer.Write or Plotter.Plot
type Record struct {
	Filename string
	Name     string
	T        float64
	Vals     []float64
}

// Writer implements fe.Writer and fe.Plotter by recording the calls
type Writer struct {
	Written []Record
	Plotted []Record
}

// Write records the call
func (o *Writer) Write(filename, name string, f fe.Field, t float64) error {
	vals := make([]float64, len(f.Vector()))
	copy(vals, f.Vector())
	o.Written = append(o.Written, Record{filename, name, t, vals})
	return nil
}

// Plot records the call
func (o *Writer) Plot(f fe.Field, title string) error {
	o.Plotted = append(o.Plotted, Record{Name: title})
	return nil
}

// Kit holds all the in-memory services
type Kit struct {
	Factory   *Factory
	Meshes    *MeshReader
	Assembler *Assembler
	Solver    *Solver
	Writer    *Writer
}

// NewKit returns a new set of services whose mesh readers return m
func NewKit(m *Mesh) *Kit {
	return &Kit{
		Factory:   new(Factory),
		Meshes:    &MeshReader{Mesh: m},
		Assembler: new(Assembler),
		Solver:    NewSolver(),
		Writer:    new(Writer),
	}
}

// Kernel returns the fe.Kernel
func (o *Kit) Kernel() *fe.Kernel {
	return &fe.Kernel{
		Spaces:    o.Factory,
		Meshes:    o.Meshes,
		Assembler: o.Assembler,
		Linear:    o.Solver,
		Amg:       o.Solver,
		Eigen:     o.Solver,
		Writer:    o.Writer,
		Plotter:   o.Writer,
	}
}

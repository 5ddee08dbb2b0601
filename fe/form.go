// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fe

import "github.com/cpmech/gosl/io"

// WholeBoundary selects all boundary facets in BoundaryTerm
const WholeBoundary = -1

// Term defines one integral contribution to a residual form
type Term interface {
	OnBoundary() bool // ds integral; otherwise dx
}

// StiffnessTerm implements inner(σ(u), grad(v))*dx with
//   σ(u) = 2・μ・sym(grad(u)) + λ・div(u)・I
type StiffnessTerm struct {
	Mu, Lambda Value
	U, V       Argument
}

// InertiaTerm implements ρ・inner(a, v)*dx
type InertiaTerm struct {
	Density      Value
	Acceleration Field
	V            Argument
}

// SourceTerm implements inner(f, v)*dx
type SourceTerm struct {
	Source Value
	V      Argument
}

// ThermalTerm implements inner(coef・(T - Tref)・I, grad(v))*dx
type ThermalTerm struct {
	Coef        Value
	Temperature Value
	Reference   float64
	V           Argument
}

// BoundaryTerm implements dot(g, v)*ds(id)
type BoundaryTerm struct {
	BoundaryId int // WholeBoundary => all facets
	Traction   Value
	V          Argument
}

func (o *StiffnessTerm) OnBoundary() bool { return false }
func (o *InertiaTerm) OnBoundary() bool   { return false }
func (o *SourceTerm) OnBoundary() bool    { return false }
func (o *ThermalTerm) OnBoundary() bool   { return false }
func (o *BoundaryTerm) OnBoundary() bool  { return true }

// FormTerm holds a term and its coefficient in the residual form
type FormTerm struct {
	Coef float64
	Term Term
}

// Form holds the residual form F(u, v) = Σ coef・term; the kernel splits it into lhs and rhs
type Form struct {
	Terms []*FormTerm
}

// Add appends a term
func (o *Form) Add(coef float64, t Term) {
	o.Terms = append(o.Terms, &FormTerm{coef, t})
}

// Boundary returns all boundary terms
func (o *Form) Boundary() (res []*BoundaryTerm) {
	for _, ft := range o.Terms {
		if b, ok := ft.Term.(*BoundaryTerm); ok {
			res = append(res, b)
		}
	}
	return
}

// String returns a summary of terms
func (o *Form) String() (l string) {
	for i, ft := range o.Terms {
		if i > 0 {
			l += " "
		}
		l += io.Sf("%+g・%T", ft.Coef, ft.Term)
	}
	return
}

// DirichletBc holds a hard constraint; i.e. degrees of freedom of Space on the boundary
// facets marked with BoundaryId are eliminated and set to Value
type DirichletBc struct {
	Space      Space // constrained (sub-)space
	Path       []int // sub-space indices from the root space; e.g. [0, 2] => V.sub(0).sub(2)
	Value      Value
	BoundaryId int
}

// String returns a short description
func (o *DirichletBc) String() string {
	return io.Sf("DirichletBC(id=%d, sub=%v, %v)", o.BoundaryId, o.Path, o.Value)
}

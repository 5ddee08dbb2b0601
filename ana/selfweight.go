// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// ConfinedSelfWeight computes the solution to a laterally confined linear elastic block under gravity
//
//     ▷ o-----------o ◁
//     ▷ |           | ◁
//     ▷ |    E, ρ   | ◁       negative stress means compression
//  h  ▷ |    ν, g   | ◁       gravity is ramped: b(t) = g・t
//     ▷ |           | ◁
//     ▷ o-----------o ◁
//       △  △  △  △  △
//
//  the last coordinate is the elevation; the top face is traction free
type ConfinedSelfWeight struct {
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	Rho float64 // density
	G   float64 // gravity constant (positive value)
	H   float64 // height

	// derived
	M float64 // P-wave modulus = E・(1-ν)/((1+ν)・(1-2ν))
	K float64 // lateral stress ratio = ν/(1-ν)
}

// Init initialises this structure
func (o *ConfinedSelfWeight) Init(prms dbf.Params) (err error) {
	o.E, o.Nu, o.Rho, o.G, o.H = 1000, 0.25, 2, 10, 1
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "rho":
			o.Rho = p.V
		case "g":
			o.G = p.V
		case "h":
			o.H = p.V
		default:
			return chk.Err("confined self-weight: parameter named %q is invalid", p.N)
		}
	}
	if o.Nu <= 0 || o.Nu >= 0.5 {
		return chk.Err("confined self-weight: nu=%g is invalid", o.Nu)
	}
	o.M = o.E * (1.0 - o.Nu) / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	o.K = o.Nu / (1.0 - o.Nu)
	return
}

// BodyForce returns the body force vector ρ・b at time t
func (o ConfinedSelfWeight) BodyForce(t float64, ndim int) (f []float64) {
	f = make([]float64, ndim)
	f[ndim-1] = -o.Rho * o.G * t
	return
}

// Displ computes the displacement vector
func (o ConfinedSelfWeight) Displ(t float64, x []float64) (u []float64) {
	ndim := len(x)
	z := x[ndim-1]
	α := -o.Rho * o.G * t / o.M
	u = make([]float64, ndim)
	u[ndim-1] = α * (o.H - z/2.0) * z
	return
}

// Strain computes the small strain tensor
func (o ConfinedSelfWeight) Strain(t float64, x []float64) (ε [][]float64) {
	ndim := len(x)
	z := x[ndim-1]
	ε = newTensor(ndim)
	ε[ndim-1][ndim-1] = -o.Rho * o.G * t * (o.H - z) / o.M
	return
}

// Stress computes the stress tensor
func (o ConfinedSelfWeight) Stress(t float64, x []float64) (σ [][]float64) {
	ndim := len(x)
	z := x[ndim-1]
	σv := -o.Rho * o.G * t * (o.H - z)
	σ = newTensor(ndim)
	for i := 0; i < ndim-1; i++ {
		σ[i][i] = o.K * σv
	}
	σ[ndim-1][ndim-1] = σv
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func newTensor(n int) (a [][]float64) {
	a = make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	return
}

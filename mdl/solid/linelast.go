// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LinElast implements an isotropic linear elastic model with thermal expansion
type LinElast struct {
	E       float64 // Young's modulus
	Nu      float64 // Poisson's coefficient
	Rho     float64 // density
	Alpha   float64 // thermal expansion coefficient
	Pstress bool    // plane-stress
	Ndim    int     // space dimension
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	o.Ndim, o.Pstress = ndim, pstress
	var hasE, hasNu bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "rho":
			o.Rho = p.V
		case "alpha":
			o.Alpha = p.V
		default:
			return chk.Err("lin-elast: parameter named %q is invalid", p.N)
		}
	}
	if !hasE || !hasNu {
		return chk.Err("lin-elast: parameters E and nu must be given")
	}
	if o.E <= 0 {
		return chk.Err("lin-elast: Young's modulus must be positive; E=%g is invalid", o.E)
	}
	if o.Nu <= 0 || o.Nu >= 0.5 {
		return chk.Err("lin-elast: Poisson's coefficient must satisfy 0 < nu < 0.5; nu=%g is invalid", o.Nu)
	}
	if o.Rho < 0 {
		return chk.Err("lin-elast: density must not be negative; rho=%g is invalid", o.Rho)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 2e11},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "rho", V: 7800},
		&dbf.P{N: "alpha", V: 1.2e-5},
	}
}

// GetRho returns density
func (o *LinElast) GetRho() float64 {
	return o.Rho
}

// Lame returns the Lamé coefficients
//  μ = E / (2・(1 + ν))
//  λ = E・ν / ((1 + ν)・(1 - 2・ν))
func (o *LinElast) Lame() (μ, λ float64) {
	μ = o.E / (2.0 * (1.0 + o.Nu))
	λ = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	if o.Pstress {
		λ = 2.0 * μ * λ / (λ + 2.0*μ)
	}
	return
}

// ThermalCoef returns β = E・α / (1 - 2・ν)
func (o *LinElast) ThermalCoef() float64 {
	return o.E * o.Alpha / (1.0 - 2.0*o.Nu)
}

// Bulk returns the bulk modulus K = E / (3・(1 - 2・ν))
func (o *LinElast) Bulk() float64 {
	return o.E / (3.0 * (1.0 - 2.0*o.Nu))
}

// Sigma computes σ = 2・μ・ε + λ・tr(ε)・I - β・ΔT・I
func (o *LinElast) Sigma(σ [][]float64, ε [][]float64, ΔT float64) {
	μ, λ := o.Lame()
	tr := 0.0
	for i := range ε {
		tr += ε[i][i]
	}
	β := o.ThermalCoef()
	for i := range ε {
		for j := range ε {
			σ[i][j] = 2.0 * μ * ε[i][j]
		}
		σ[i][i] += λ*tr - β*ΔT
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements models for solids based on continuum mechanics
/*
 *   small strains:
 *
 *     ε = sym(grad(u))
 *     σ = 2・μ・ε + λ・tr(ε)・I - β・(T - Tref)・I
 *
 *   with β = E・α / (1 - 2・ν)
 */
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	GetRho() float64                                    // returns density
}

// Elastic defines linear elastic models used in the weak form
type Elastic interface {
	Lame() (μ, λ float64)                           // Lamé coefficients
	ThermalCoef() float64                           // coefficient β of the thermal stress β・(T - Tref)・I
	Sigma(σ [][]float64, ε [][]float64, ΔT float64) // computes stress tensor from strain tensor
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}

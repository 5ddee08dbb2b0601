// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fetest implements a small in-memory finite element kernel with nodal
// (P1-like) spaces and recording solvers. It is used by tests and by the check command.
package fetest

import (
	"sort"

	"github.com/cpmech/gosl/utl"
)

// Mesh implements fe.Mesh with nodes and boundary/subdomain markers
type Mesh struct {
	Ndim    int             // space dimension
	Coords  [][]float64     // [nnodes][ndim] coordinates
	Bmarks  []int           // boundary ids; may contain 0 (unmarked) and repeated values
	Cmarks  []int           // subdomain ids
	Areas   map[int]float64 // boundary id => area (or length in 2D)
	Normals map[int][]float64
}

// Gdim returns the geometric dimension
func (o *Mesh) Gdim() int { return o.Ndim }

// Tdim returns the topological dimension
func (o *Mesh) Tdim() int { return o.Ndim }

// BoundaryIds returns the sorted unique ids of marked facets
func (o *Mesh) BoundaryIds() []int {
	return uniqueNonZero(o.Bmarks)
}

// SubdomainIds returns the sorted unique ids of cells
func (o *Mesh) SubdomainIds() []int {
	return uniqueNonZero(o.Cmarks)
}

// Nnodes returns the number of nodes
func (o *Mesh) Nnodes() int { return len(o.Coords) }

// NewSquare returns a unit square with (n+1)² nodes and the sides marked as
//  1: bottom, 2: right, 3: top, 4: left
func NewSquare(n int) (o *Mesh) {
	if n < 1 {
		n = 1
	}
	o = &Mesh{Ndim: 2, Bmarks: []int{1, 2, 3, 4}, Cmarks: []int{1}}
	h := 1.0 / float64(n)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			o.Coords = append(o.Coords, []float64{float64(i) * h, float64(j) * h})
		}
	}
	o.Areas = map[int]float64{1: 1, 2: 1, 3: 1, 4: 1}
	o.Normals = map[int][]float64{1: {0, -1}, 2: {1, 0}, 3: {0, 1}, 4: {-1, 0}}
	return
}

// NewCube returns a unit cube with (n+1)³ nodes and the faces marked as
//  1: xmin, 2: xmax, 3: ymin, 4: ymax, 5: zmin, 6: zmax
func NewCube(n int) (o *Mesh) {
	if n < 1 {
		n = 1
	}
	o = &Mesh{Ndim: 3, Bmarks: utl.IntRange2(1, 7), Cmarks: []int{1}}
	h := 1.0 / float64(n)
	for k := 0; k <= n; k++ {
		for j := 0; j <= n; j++ {
			for i := 0; i <= n; i++ {
				o.Coords = append(o.Coords, []float64{float64(i) * h, float64(j) * h, float64(k) * h})
			}
		}
	}
	o.Areas = map[int]float64{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1}
	o.Normals = map[int][]float64{
		1: {-1, 0, 0}, 2: {1, 0, 0},
		3: {0, -1, 0}, 4: {0, 1, 0},
		5: {0, 0, -1}, 6: {0, 0, 1},
	}
	return
}

func uniqueNonZero(ids []int) (res []int) {
	seen := make(map[int]bool)
	for _, id := range ids {
		if id != 0 && !seen[id] {
			seen[id] = true
			res = append(res, id)
		}
	}
	sort.Ints(res)
	return
}

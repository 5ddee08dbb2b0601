// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/elastfem/fe/fetest"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

func Test_nullspace01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nullspace01. 2D and 3D rigid body modes")

	// 2D
	V := vectorSpace(tst, 2)
	sample := la.NewVector(V.Ndof())
	sample.Fill(7)
	ns, err := BuildNullspace(V, sample)
	if err != nil {
		tst.Errorf("BuildNullspace failed:\n%v", err)
		return
	}
	chk.Int(tst, "2D: number of vectors", len(ns.Basis), 3)
	chk.Float64(tst, "2D: orthonormality", 1e-14, ns.Orthonormal(), 0)
	chk.Float64(tst, "2D: translation x at node 0", 1e-15, ns.Basis[0][0], 1.0/3.0)
	chk.Float64(tst, "2D: translation x at node 0 (y dof)", 1e-17, ns.Basis[0][1], 0)
	chk.Array(tst, "sample is not changed", 1e-17, sample, utl.Vals(V.Ndof(), 7))

	// rotation about the centre: (-y+½, x-½) normalised
	r := ns.Basis[2]
	chk.Float64(tst, "2D: rotation at (0,0)", 1e-15, r[0]/r[1], -1)

	// 3D
	m := fetest.NewCube(1)
	V3, _ := new(fetest.Factory).NewSpace(m, "CG", 1, 3, "")
	ns, err = BuildNullspace(V3, la.NewVector(V3.Ndof()))
	if err != nil {
		tst.Errorf("BuildNullspace failed:\n%v", err)
		return
	}
	chk.Int(tst, "3D: number of vectors", len(ns.Basis), 6)
	chk.Float64(tst, "3D: orthonormality", 1e-14, ns.Orthonormal(), 0)
	for i, x := range ns.Basis {
		chk.Float64(tst, "3D: norm", 1e-14, math.Sqrt(la.VecDot(x, x)), 1)
		if i < 3 {
			chk.Float64(tst, "3D: translation", 1e-15, x[i], 1.0/math.Sqrt(8))
		}
	}
}

func Test_nullspace02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nullspace02. mixed space and unsupported dimension")

	// displacement sub-space of mixed space
	m := fetest.NewCube(1)
	W, _ := new(fetest.Factory).NewMixedSpace(m, "CG", 1, []int{3, 3, 1})
	ns, err := BuildNullspace(W.Sub(0), la.NewVector(W.Ndof()))
	if err != nil {
		tst.Errorf("BuildNullspace failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of vectors", len(ns.Basis), 6)
	chk.Int(tst, "size of vectors", len(ns.Basis[0]), 7*8)
	for _, x := range ns.Basis {
		for n := 0; n < 8; n++ {
			chk.Array(tst, "velocity and pressure dofs", 1e-17, x[n*7+3:n*7+7], []float64{0, 0, 0, 0})
		}
	}
	chk.Float64(tst, "orthonormality", 1e-14, ns.Orthonormal(), 0)

	// 1D
	line := &fetest.Mesh{Ndim: 1, Coords: [][]float64{{0}, {1}}}
	S, _ := new(fetest.Factory).NewSpace(line, "CG", 1, 1, "")
	_, err = BuildNullspace(S, la.NewVector(2))
	var ude *UnsupportedDimensionError
	if !errors.As(err, &ude) {
		tst.Errorf("1D mesh should give UnsupportedDimensionError; got %v\n", err)
		return
	}
	chk.Int(tst, "dim", ude.Dim, 1)
}

func Test_history01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("history01. acceleration and velocity")

	S, _ := new(fetest.Factory).NewSpace(fetest.NewSquare(1), "CG", 1, 1, "")
	field := func(v float64) *fetest.Field { return fetest.NewField(S, utl.Vals(4, v)) }

	// short history
	var h FieldHistory
	_, err := h.Velocity(1)
	if !errors.Is(err, ErrShortHistory) {
		tst.Errorf("empty history should give ErrShortHistory; got %v\n", err)
	}
	h.Push(field(1))
	h.Push(field(3))
	_, err = h.ComputeAcceleration(1, 1)
	if !errors.Is(err, ErrShortHistory) {
		tst.Errorf("history with 2 samples should give ErrShortHistory; got %v\n", err)
	}
	h.Push(field(6))
	chk.Int(tst, "len", h.Len(), 3)

	// acceleration
	a, err := h.ComputeAcceleration(1, 0.5)
	if err != nil {
		tst.Errorf("ComputeAcceleration failed:\n%v", err)
		return
	}
	chk.Array(tst, "a", 1e-15, a.Vector(), utl.Vals(4, -1))

	// velocity
	v, err := h.Velocity(0.5)
	if err != nil {
		tst.Errorf("Velocity failed:\n%v", err)
		return
	}
	chk.Array(tst, "v", 1e-15, v.Vector(), utl.Vals(4, 6))

	// pushed fields are copies
	u := field(10)
	h.Push(u)
	u.Vector()[0] = -1
	chk.Float64(tst, "current", 1e-17, h.Current().Vector()[0], 10)
	chk.Float64(tst, "previous", 1e-17, h.Previous().Vector()[0], 6)

	// seed
	h.Seed(field(2))
	a, _ = h.ComputeAcceleration(0.1, 0.1)
	chk.Array(tst, "a after seed", 1e-15, a.Vector(), utl.Vals(4, 0))
}

func Test_history02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("history02. velocity of single and mixed fields")

	m := fetest.NewSquare(1)
	hist := new(FieldHistory)
	push := func(ctx Context, v float64) {
		n := ctx.Space().Ndof()
		hist.Push(fetest.NewField(ctx.Space(), utl.Vals(n, v)))
	}

	// single field: (u - u₁)/dt
	single, err := NewContext(new(fetest.Factory), m, &inp.Simulation{FeFamily: "CG", FeDegree: 1, VectorName: "displacement"}, hist)
	if err != nil {
		tst.Errorf("NewContext failed:\n%v", err)
		return
	}
	push(single, 1)
	_, err = single.Velocity(0.5)
	if !errors.Is(err, ErrShortHistory) {
		tst.Errorf("one sample should give ErrShortHistory; got %v\n", err)
	}
	push(single, 3)
	v, err := single.Velocity(0.5)
	if err != nil {
		tst.Errorf("Velocity failed:\n%v", err)
		return
	}
	chk.Array(tst, "v(single)", 1e-15, v.Vector(), utl.Vals(8, 4))

	// mixed field without velocity: rate of the displacement sub-field
	hist = new(FieldHistory)
	noVel, err := NewContext(new(fetest.Factory), m, &inp.Simulation{FeFamily: "CG", FeDegree: 1,
		MixedVariable: []string{"displacement", "pressure"}}, hist)
	if err != nil {
		tst.Errorf("NewContext failed:\n%v", err)
		return
	}
	push(noVel, 1)
	push(noVel, 3)
	v, err = noVel.Velocity(0.5)
	if err != nil {
		tst.Errorf("Velocity failed:\n%v", err)
		return
	}
	chk.Array(tst, "v(displacement rate)", 1e-15, v.Vector(), utl.Vals(8, 4))

	// mixed field with velocity: the velocity sub-field itself
	hist = new(FieldHistory)
	withVel, err := NewContext(new(fetest.Factory), m, &inp.Simulation{FeFamily: "CG", FeDegree: 1,
		MixedVariable: []string{"displacement", "velocity", "pressure"}}, hist)
	if err != nil {
		tst.Errorf("NewContext failed:\n%v", err)
		return
	}
	push(withVel, 7)
	v, err = withVel.Velocity(0.5)
	if err != nil {
		tst.Errorf("Velocity failed:\n%v", err)
		return
	}
	chk.Array(tst, "v(sub-field)", 1e-15, v.Vector(), utl.Vals(8, 7))
}

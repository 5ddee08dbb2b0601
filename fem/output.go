// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/io"
)

// BcPlan describes boundary conditions without translating their values
type BcPlan struct {
	Variable string   // name of unknown used to select alternative records
	Lines    []string // one line per boundary condition
}

// DescribeBcs returns one line per boundary condition, in order
func DescribeBcs(bcs []Bc, variable string) (lines []string, err error) {
	plan := &BcPlan{Variable: variable}
	for _, bc := range bcs {
		err = bc.Accept(plan)
		if err != nil {
			return
		}
	}
	return plan.Lines, nil
}

// VisitDisplacement describes a hard constraint
func (o *BcPlan) VisitDisplacement(bc *DisplacementBc) error {
	d := bc.Data().ForVariable(o.Variable)
	what := "displacement"
	if d.Variable != "" {
		what = d.Variable
	}
	o.add(d, io.Sf("%s = %v", what, d.Value))
	return nil
}

// VisitForce describes a total force
func (o *BcPlan) VisitForce(bc *ForceBc) error {
	d := bc.Data().ForVariable(o.Variable)
	o.add(d, io.Sf("force = %v / area%s", d.Value, along(d.Direction)))
	return nil
}

// VisitPressure describes a pressure
func (o *BcPlan) VisitPressure(bc *PressureBc) error {
	d := bc.Data().ForVariable(o.Variable)
	o.add(d, io.Sf("pressure = %v%s", d.Value, along(d.Direction)))
	return nil
}

// VisitStress describes a stress
func (o *BcPlan) VisitStress(bc *StressBc) error {
	d := bc.Data().ForVariable(o.Variable)
	o.add(d, io.Sf("stress = %v", d.Value))
	return nil
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////////

func (o *BcPlan) add(d *inp.BcData, desc string) {
	o.Lines = append(o.Lines, io.Sf("%3d %-12q %s", d.BoundaryId, d.Name, desc))
}

func along(dir []float64) string {
	if len(dir) == 0 {
		return " along normal"
	}
	return io.Sf(" along %v", dir)
}

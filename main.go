// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/elastfem/fe"
	"github.com/cpmech/elastfem/fe/fetest"
	"github.com/cpmech/elastfem/fem"
	"github.com/cpmech/elastfem/inp"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/spf13/cobra"
)

var (
	verbose bool // show messages
	ndim    int  // dimension of the in-memory mesh
	ncells  int  // number of cells along each side of the in-memory mesh
)

func main() {
	mpi.Start()
	defer mpi.Stop()

	rootCmd := &cobra.Command{
		Use:   "elastfem",
		Short: "linear elasticity driver configured by .sim (JSON) or .yaml files",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", true, "show messages")

	checkCmd := &cobra.Command{
		Use:   "check [simfile]",
		Short: "validate a case and list its boundary conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  check,
	}

	dryrunCmd := &cobra.Command{
		Use:   "dryrun [simfile]",
		Short: "run a case on an in-memory unit square or cube with recording solvers",
		Args:  cobra.ExactArgs(1),
		RunE:  dryrun,
	}
	dryrunCmd.Flags().IntVar(&ndim, "ndim", 2, "space dimension: 2 (unit square) or 3 (unit cube)")
	dryrunCmd.Flags().IntVar(&ncells, "cells", 4, "number of cells along each side")

	rootCmd.AddCommand(checkCmd, dryrunCmd)
	if err := rootCmd.Execute(); err != nil {
		if mpi.WorldRank() == 0 {
			io.PfRed("ERROR: %v\n", err)
		}
		os.Exit(1)
	}
}

// check reads a case and prints the settings and the boundary plan
func check(cmd *cobra.Command, args []string) (err error) {
	sim, err := inp.ReadSim(args[0])
	if err != nil {
		return
	}
	bcs, err := fem.NewBcs(sim.Bcs)
	if err != nil {
		return
	}
	lines, err := fem.DescribeBcs(bcs, sim.VectorName)
	if err != nil {
		return
	}
	if mpi.WorldRank() != 0 || !verbose {
		return
	}
	trn := &sim.Solver.Transient
	io.Pf("\n%v\n", io.ArgsTable("CASE "+sim.Key,
		"mesh file", "mesh", sim.Mesh,
		"element", "fe_family", io.Sf("%s%d", sim.FeFamily, sim.FeDegree),
		"unknowns", "mixed_variable", io.Sf("%v", append([]string{sim.VectorName}, sim.MixedVariable...)),
		"transient", "transient", trn.Transient,
		"time interval", "starting_time, ending_time", io.Sf("[%g, %g]", trn.T0, trn.Tf),
		"solver", "solver", sim.Solver.Params.Name,
		"output directory", "case_folder", sim.DirOut,
	))
	io.Pf("%s\n", sim.Material.String())
	io.Pf("boundary conditions:\n")
	for _, l := range lines {
		io.Pf("  %s\n", l)
	}
	return
}

// dryrun runs a case with the in-memory services
func dryrun(cmd *cobra.Command, args []string) (err error) {
	sim, err := inp.ReadSim(args[0])
	if err != nil {
		return
	}
	sim.Report.Verbose = sim.Report.Verbose || verbose
	var m *fetest.Mesh
	switch ndim {
	case 2:
		m = fetest.NewSquare(ncells)
	case 3:
		m = fetest.NewCube(ncells)
	default:
		return &fem.UnsupportedDimensionError{Dim: ndim}
	}
	kit := fetest.NewKit(m)
	sol, err := fem.NewMainFromSim(sim, kit.Kernel(), m)
	if err != nil {
		return
	}
	err = sol.Run()
	if err != nil {
		return
	}
	if sol.ShowMsg {
		io.Pf("> %d solves, %d files written\n", kit.Solver.Ncalls(), len(kit.Writer.Written))
		for i, F := range kit.Solver.Forms {
			io.Pf("  form %d: %s\n", i, formSummary(F))
		}
	}
	return
}

// formSummary returns the number of terms of a form by kind
func formSummary(F *fe.Form) string {
	nb := len(F.Boundary())
	return io.Sf("%d terms (%d on boundaries)", len(F.Terms), nb)
}

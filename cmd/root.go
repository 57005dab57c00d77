// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd implements the command line interface
package cmd

import (
	"github.com/amfem/constit/fem"
	"github.com/amfem/constit/inp"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var (
	sim       = inp.NewSimulation()
	inputFile string
)

var rootCmd = &cobra.Command{
	Use:   "constit",
	Short: "Quasi-static nonlinear solid mechanics with crystal-plasticity models",
	Long: `constit solves quasi-static nonlinear solid mechanics problems on
hexahedral meshes. A fixed bottom surface and a ramped top surface drive the
deformation; the material response is neo-Hookean hyperelastic, a user
material, or a crystal-plasticity user material with per-grain orientations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		// optional run-parameter overlay
		if inputFile != "" {
			params, err := inp.ReadRunParams(inputFile)
			if err != nil {
				return err
			}
			if err = params.Validate(); err != nil {
				return err
			}
			params.Overlay(sim)
			if sim.Verbose {
				io.Pf("%v", params.Print())
			}
		}

		// validation failures are hard errors
		if err = sim.Validate(); err != nil {
			return err
		}

		// build and run
		m, err := fem.NewMain(sim)
		if err != nil {
			return err
		}
		return m.Run()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()

	// mesh
	f.StringVarP(&sim.MeshFile, "mesh", "m", "", "mesh file; empty generates a unit cube grid")
	f.BoolVar(&sim.Cubit, "cubit", false, "mesh file uses the structured text format")
	f.IntVar(&sim.RefSerial, "refine-serial", 0, "number of uniform refinements before distribution")
	f.IntVar(&sim.RefParal, "refine-parallel", 0, "number of uniform refinements after distribution")
	f.IntVarP(&sim.Order, "order", "o", 1, "polynomial order of the displacement field (1 or 2)")
	f.IntVar(&sim.Nx, "nx", 2, "generated grid divisions along x")
	f.IntVar(&sim.Ny, "ny", 2, "generated grid divisions along y")
	f.IntVar(&sim.Nz, "nz", 2, "generated grid divisions along z")

	// time stepping
	f.Float64Var(&sim.Tf, "t-final", 1.0, "final simulation time")
	f.Float64Var(&sim.Dt, "dt", 1.0, "time step")

	// constitutive model
	f.BoolVar(&sim.Hyperelastic, "hyperelastic", false, "use the neo-Hookean hyperelastic model")
	f.BoolVar(&sim.Umat, "umat", false, "use the user material model")
	f.BoolVar(&sim.CP, "cp", false, "use the crystal-plasticity user material model")

	// grain orientations
	f.BoolVar(&sim.GrainEuler, "grain-euler", false, "orientation file holds Euler angles")
	f.BoolVar(&sim.GrainQuat, "grain-quat", false, "orientation file holds quaternions")
	f.BoolVar(&sim.GrainUniform, "grain-uniform", false, "all grains share one orientation")
	f.StringVarP(&sim.GrainFile, "grain", "g", "", "grain orientation file")
	f.Float64SliceVar(&sim.GrainUniVec, "grain-uniform-vec", nil, "shared orientation vector (with --grain-uniform)")
	f.IntVar(&sim.Ngrains, "ngrains", 0, "number of grains in the orientation file")

	// nonlinear solver
	f.IntVar(&sim.NmaxIt, "newton-iters", 10, "maximum number of Newton iterations")
	f.Float64Var(&sim.RelTol, "rel-tol", 1e-5, "Newton relative residual tolerance")
	f.Float64Var(&sim.AbsTol, "abs-tol", 1e-10, "Newton absolute residual tolerance")

	// linear solver
	f.BoolVar(&sim.Gmres, "gmres", true, "use GMRES with diagonal smoothing")
	f.BoolVar(&sim.Direct, "superlu", false, "use the sparse direct solver")
	f.Float64Var(&sim.LinTol, "lin-tol", 1e-10, "iterative linear solver tolerance")
	f.IntVar(&sim.LinMaxIt, "lin-maxit", 500, "iterative linear solver maximum iterations")

	// output
	f.StringVar(&sim.DirOut, "outdir", "/tmp/constit", "output directory")
	f.StringVar(&sim.Enc, "encoder", "gob", "snapshot encoder: gob or json")
	f.BoolVar(&sim.Vis, "vis", true, "stream the solution to a visualisation server")
	f.IntVar(&sim.VisSteps, "vis-steps", 1, "visualisation update stride")
	f.StringVar(&sim.VisHost, "vis-host", "localhost", "visualisation server host")
	f.IntVar(&sim.VisPort, "vis-port", 19916, "visualisation server port")
	f.BoolVarP(&sim.Verbose, "verbose", "v", false, "print messages (root processor only)")

	// run-parameter file
	f.StringVarP(&inputFile, "input", "i", "", "YAML run-parameter file overlaying the flags")
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ghodss/yaml"
)

// RunParams holds optional values read from a YAML parameter file. They
// overlay the command-line configuration: material parameters override the
// model defaults and solver values override the corresponding flags when
// present.
type RunParams struct {
	Title    string             `json:"Title"`    // description of the run
	Material map[string]float64 `json:"Material"` // model parameter name => value
	Solver   *SolverParams      `json:"Solver"`   // nonlinear/linear solver values
}

// SolverParams holds solver values from the parameter file
type SolverParams struct {
	RelTol   float64 `json:"RelTol"`   // Newton relative residual tolerance
	AbsTol   float64 `json:"AbsTol"`   // Newton absolute residual tolerance
	NmaxIt   int     `json:"NmaxIt"`   // maximum Newton iterations
	LinTol   float64 `json:"LinTol"`   // iterative linear solver tolerance
	LinMaxIt int     `json:"LinMaxIt"` // iterative linear solver maximum iterations
}

// Parse fills this structure from YAML data
func (o *RunParams) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, o); err != nil {
		return chk.Err("cannot parse run parameters:\n%v", err)
	}
	return
}

// ReadRunParams reads a YAML parameter file
func ReadRunParams(fn string) (params *RunParams, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read run parameters file:\n%v", err)
	}
	params = new(RunParams)
	err = params.Parse(b)
	return
}

// Validate checks the parameter values
func (o *RunParams) Validate() (err error) {
	for name, val := range o.Material {
		if name == "nu" {
			continue // Poisson's coefficient may be zero
		}
		if val < 0 {
			return chk.Err("material parameter %q must be non-negative. %g is incorrect", name, val)
		}
	}
	if o.Solver != nil {
		if o.Solver.RelTol < 0 || o.Solver.AbsTol < 0 || o.Solver.LinTol < 0 {
			return chk.Err("solver tolerances must be non-negative")
		}
		if o.Solver.NmaxIt < 0 || o.Solver.LinMaxIt < 0 {
			return chk.Err("solver iteration limits must be non-negative")
		}
	}
	return
}

// Overlay attaches this parameter set to the configuration (so material
// values reach the model allocation) and copies the solver values present
// in the file onto the corresponding configuration fields
func (o *RunParams) Overlay(sim *Simulation) {
	sim.Params = o
	if o.Solver == nil {
		return
	}
	if o.Solver.RelTol > 0 {
		sim.RelTol = o.Solver.RelTol
	}
	if o.Solver.AbsTol > 0 {
		sim.AbsTol = o.Solver.AbsTol
	}
	if o.Solver.NmaxIt > 0 {
		sim.NmaxIt = o.Solver.NmaxIt
	}
	if o.Solver.LinTol > 0 {
		sim.LinTol = o.Solver.LinTol
	}
	if o.Solver.LinMaxIt > 0 {
		sim.LinMaxIt = o.Solver.LinMaxIt
	}
}

// Print returns a listing of the parameter values
func (o *RunParams) Print() (l string) {
	l = io.Sf("Title: %q\n", o.Title)
	for name, val := range o.Material {
		l += io.Sf("  material %-8s = %g\n", name, val)
	}
	if o.Solver != nil {
		l += io.Sf("  solver %+v\n", *o.Solver)
	}
	return
}

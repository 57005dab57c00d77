// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from the command line,
// run-parameter files and mesh files
package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Simulation holds the complete run configuration. It is assembled once at
// startup, validated once, and never mutated afterwards.
type Simulation struct {

	// mesh
	MeshFile   string // path to mesh file; empty means generated grid
	Cubit      bool   // mesh file uses the structured text format
	RefSerial  int    // number of uniform refinements before distribution
	RefParal   int    // number of uniform refinements after distribution
	Order      int    // polynomial order of the displacement field (1 or 2)
	Nx, Ny, Nz int    // generated grid divisions (when MeshFile is empty)

	// time stepping
	Tf float64 // final simulation time
	Dt float64 // time step

	// constitutive model selection
	Hyperelastic bool // neo-Hookean hyperelastic model
	Umat         bool // user material model
	CP           bool // crystal-plasticity user material model

	// grain orientations (crystal plasticity only)
	GrainEuler   bool      // orientations are Euler angles (3 values per grain)
	GrainQuat    bool      // orientations are quaternions (4 values per grain)
	GrainUniform bool      // all grains share one orientation vector
	GrainFile    string    // path to orientation file (euler/quat)
	GrainUniVec  []float64 // the shared orientation (uniform)
	Ngrains      int       // number of grains in the orientation file

	// nonlinear solver
	NmaxIt int     // maximum number of Newton iterations
	RelTol float64 // relative residual tolerance
	AbsTol float64 // absolute residual tolerance

	// linear solver
	Gmres    bool    // use GMRES (highest precedence)
	Direct   bool    // use sparse direct solver (second precedence; minres otherwise)
	LinTol   float64 // iterative linear solver tolerance
	LinMaxIt int     // iterative linear solver maximum iterations

	// essential boundary conditions
	FixTag   int       // face tag of the fully fixed boundary group
	RampTag  int       // face tag of the ramped boundary group
	RampVals []float64 // prescribed displacement per step on the ramped group

	// output
	DirOut   string // output directory
	Enc      string // encoder for snapshots; "gob" or "json"
	Vis      bool   // stream solution to a viewer
	VisSteps int    // viewer update stride
	VisHost  string // viewer host
	VisPort  int    // viewer port
	Verbose  bool   // print messages (root only)

	// run-parameter overlay
	Params *RunParams // optional values read from a YAML file
}

// NewSimulation returns a configuration with default values.
//  Note: the ramped boundary prescribes a constant increment each step;
//  the increment is not scaled by t/tf
func NewSimulation() *Simulation {
	return &Simulation{
		Order:    1,
		Nx:       2,
		Ny:       2,
		Nz:       2,
		Tf:       1.0,
		Dt:       1.0,
		NmaxIt:   10,
		RelTol:   1e-5,
		AbsTol:   1e-10,
		Gmres:    true,
		LinTol:   1e-10,
		LinMaxIt: 500,
		FixTag:   -10,
		RampTag:  -11,
		RampVals: []float64{0, 0, -0.1},
		DirOut:   "/tmp/constit",
		Enc:      "gob",
		Vis:      true,
		VisSteps: 1,
		VisHost:  "localhost",
		VisPort:  19916,
		Ngrains:  0,
	}
}

// CheckModelConfig normalises the constitutive model selection flags and
// returns 0 on success or 1 on an unresolvable combination. The models have
// precedence: hyperelastic wins over umat and cp, and umat without cp does not
// use orientations. Flags overridden by a higher-precedence model are forced
// off rather than rejected. Code 1 is returned only when:
//  - no model is selected
//  - cp is on without exactly one orientation representation
//  - cp is on with less than one grain
func (o *Simulation) CheckModelConfig() int {
	if o.Hyperelastic {
		o.Umat = false
		o.CP = false
		o.GrainEuler = false
		o.GrainQuat = false
		o.GrainUniform = false
		return 0
	}
	if !o.Umat && !o.CP {
		return 1
	}
	if o.Umat && !o.CP {
		o.GrainEuler = false
		o.GrainQuat = false
		o.GrainUniform = false
		return 0
	}
	// crystal plasticity
	nrep := 0
	for _, on := range []bool{o.GrainEuler, o.GrainQuat, o.GrainUniform} {
		if on {
			nrep++
		}
	}
	if nrep != 1 {
		return 1
	}
	if o.Ngrains < 1 {
		return 1
	}
	return 0
}

// OriNcomp returns the number of orientation components per grain
func (o *Simulation) OriNcomp() int {
	if o.GrainQuat {
		return 4
	}
	return 3
}

// ModelName returns the name of the selected constitutive model
func (o *Simulation) ModelName() string {
	switch {
	case o.Hyperelastic:
		return "nh"
	case o.CP:
		return "cpumat"
	}
	return "umat"
}

// MatPrms assembles the parameters of the selected model, merging the
// model defaults with the run-parameter overlay
func (o *Simulation) MatPrms() dbf.Params {
	var prms dbf.Params
	switch o.ModelName() {
	case "nh":
		prms = dbf.Params{
			&dbf.P{N: "mu", V: 0.25},
			&dbf.P{N: "K", V: 5.0},
		}
	case "umat":
		prms = dbf.Params{
			&dbf.P{N: "E", V: 1.0},
			&dbf.P{N: "nu", V: 0.25},
			&dbf.P{N: "nstatv", V: 0},
		}
	case "cpumat":
		prms = dbf.Params{
			&dbf.P{N: "mu", V: 0.25},
			&dbf.P{N: "K", V: 5.0},
			&dbf.P{N: "sy", V: 0.01},
			&dbf.P{N: "H", V: 0.1},
			&dbf.P{N: "tfac", V: 0},
			&dbf.P{N: "nori", V: float64(o.OriNcomp())},
		}
	}
	if o.Params != nil {
		for name, val := range o.Params.Material {
			found := false
			for _, p := range prms {
				if p.N == name {
					p.V = val
					found = true
				}
			}
			if !found {
				prms = append(prms, &dbf.P{N: name, V: val})
			}
		}
	}
	return prms
}

// Validate checks the whole configuration. Model flags are first normalised
// by precedence; combinations that cannot be resolved abort the run.
func (o *Simulation) Validate() (err error) {
	if o.Tf <= 0 {
		return chk.Err("final time must be positive. tf=%g is incorrect", o.Tf)
	}
	if o.Dt <= 0 || o.Dt > o.Tf {
		return chk.Err("time step must be positive and not greater than tf. dt=%g is incorrect", o.Dt)
	}
	if o.Order != 1 && o.Order != 2 {
		return chk.Err("order must be 1 or 2. order=%d is incorrect", o.Order)
	}
	if o.RefSerial < 0 || o.RefParal < 0 {
		return chk.Err("refinement counts must be non-negative. rs=%d rp=%d is incorrect", o.RefSerial, o.RefParal)
	}
	if o.Enc != "gob" && o.Enc != "json" {
		return chk.Err("encoder must be \"gob\" or \"json\". enc=%q is incorrect", o.Enc)
	}
	if o.NmaxIt < 1 {
		return chk.Err("maximum number of Newton iterations must be positive. nmaxit=%d is incorrect", o.NmaxIt)
	}
	if len(o.RampVals) != 3 {
		return chk.Err("ramped boundary needs 3 prescribed values. %v is incorrect", o.RampVals)
	}
	if code := o.CheckModelConfig(); code != 0 {
		return chk.Err("constitutive model flags are inconsistent (code=%d): hyperelastic=%v umat=%v cp=%v euler=%v quat=%v uniform=%v ngrains=%d",
			code, o.Hyperelastic, o.Umat, o.CP, o.GrainEuler, o.GrainQuat, o.GrainUniform, o.Ngrains)
	}
	if o.CP {
		if o.GrainUniform {
			if len(o.GrainUniVec) != 3 {
				return chk.Err("uniform grain orientation needs 3 values. %v is incorrect", o.GrainUniVec)
			}
		} else if o.GrainFile == "" {
			return chk.Err("crystal plasticity needs a grain orientation file")
		}
	}
	if o.Params != nil {
		if err = o.Params.Validate(); err != nil {
			return
		}
	}
	return
}

// Grains loads the grain-orientation table according to the configuration.
// Returns nil (no error) when the model does not use orientations.
func (o *Simulation) Grains() (*GrainTable, error) {
	if !o.CP {
		return nil, nil
	}
	if o.GrainUniform {
		return UniformGrainTable(o.GrainUniVec, o.Ngrains)
	}
	return ReadGrainFile(o.GrainFile, o.OriNcomp(), o.Ngrains)
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements constitutive models for solids
package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, prms dbf.Params) error      // initialises model
	GetPrms() dbf.Params                       // gets (an example) of parameters
	InitIntVars(σ []float64) (*State, error) // initialises internal (secondary) variables
	Nhist() int                              // number of history values carried per quadrature point
}

// Small defines the interface for small-strain solid models
type Small interface {
	Update(s *State, ε, Δε []float64, eid, ipid int, t float64) error // updates stresses for given strains
	CalcD(D *la.Matrix, s *State, firstIt bool) error                // computes D := dσ_new/dε_new consistent with StressUpdate
}

// Oriented defines the interface for models that carry a per-grain
// lattice orientation at each quadrature point
type Oriented interface {
	SetOri(s *State, ori []float64) error // stores the orientation in the state history
}

// allocators maps model names to allocators
var allocators = make(map[string]func() Model)

// New allocates a new solid model and initialises it with the given parameters
func New(name string, ndim int, prms dbf.Params) (Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in msolid database", name)
	}
	model := allocator()
	if err := model.Init(ndim, prms); err != nil {
		return nil, chk.Err("cannot initialise model %q:\n%v", name, err)
	}
	return model, nil
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// UserMat implements the user-material entry point with a linear isotropic
// elastic reference behaviour. The history array (nstatv values per
// quadrature point) is carried through steps untouched by the reference
// behaviour and is available to user routines.
type UserMat struct {

	// constants
	Nsig   int // number of stress components
	Nstatv int // number of state variables per quadrature point

	// parameters
	E float64 // Young's modulus
	ν float64 // Poisson's coefficient

	// derived
	μ float64 // shear modulus
	K float64 // bulk modulus
}

// add model to factory
func init() {
	allocators["umat"] = func() Model { return new(UserMat) }
}

// Init initialises model
func (o *UserMat) Init(ndim int, prms dbf.Params) (err error) {
	if ndim != 3 {
		return chk.Err("umat model is only available for 3D analyses")
	}
	o.Nsig = NSIG
	o.E, o.ν = 1.0, 0.25
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "nstatv":
			o.Nstatv = int(p.V)
		default:
			return chk.Err("umat: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.E <= 0 || o.ν < 0 || o.ν >= 0.5 {
		return chk.Err("umat: E=%g and ν=%g are incorrect", o.E, o.ν)
	}
	o.μ = o.E / (2.0 * (1.0 + o.ν))
	o.K = o.E / (3.0 * (1.0 - 2.0*o.ν))
	return
}

// GetPrms gets (an example) of parameters
func (o UserMat) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: 1.0},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "nstatv", V: 0},
	}
}

// Nhist returns the number of history values
func (o UserMat) Nhist() int { return o.Nstatv }

// InitIntVars initialises internal (secondary) variables
func (o UserMat) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, o.Nstatv)
	copy(s.Sig0, σ)
	copy(s.Sig, σ)
	return
}

// Update updates stresses for given strains
func (o *UserMat) Update(s *State, ε, Δε []float64, eid, ipid int, t float64) (err error) {
	εv := Tr(ε)
	lam := o.K - 2.0*o.μ/3.0
	for i := 0; i < 3; i++ {
		s.Sig[i] = s.Sig0[i] + lam*εv + 2.0*o.μ*ε[i]
	}
	for i := 3; i < o.Nsig; i++ {
		s.Sig[i] = s.Sig0[i] + o.μ*ε[i] // engineering shear strain
	}
	copy(s.EpsE, ε)
	return
}

// CalcD computes D = dσ_new/dε_new consistent with StressUpdate
func (o *UserMat) CalcD(D *la.Matrix, s *State, firstIt bool) (err error) {
	IsotropicD(D, o.K, o.μ)
	return
}

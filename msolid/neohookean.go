// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// NeoHookean implements a compressible neo-Hookean material with a
// logarithmic volumetric response, linearised incrementally: each step
// adds the stress due to the step strain to the committed stress.
type NeoHookean struct {

	// constants
	Nsig int     // number of stress components
	Jmin float64 // minimum acceptable volume ratio

	// parameters
	μ float64 // shear modulus
	K float64 // bulk modulus

	// auxiliary
	e []float64 // dev(ε)
}

// add model to factory
func init() {
	allocators["nh"] = func() Model { return new(NeoHookean) }
}

// Init initialises model
func (o *NeoHookean) Init(ndim int, prms dbf.Params) (err error) {
	if ndim != 3 {
		return chk.Err("neo-Hookean model is only available for 3D analyses")
	}
	o.Nsig = NSIG
	o.Jmin = 1e-10
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.μ = p.V
		case "K":
			o.K = p.V
		default:
			return chk.Err("nh: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.μ <= 0 || o.K <= 0 {
		return chk.Err("nh: μ and K must be positive. μ=%g, K=%g is incorrect", o.μ, o.K)
	}
	o.e = make([]float64, o.Nsig)
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHookean) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
	}
}

// Nhist returns the number of history values
func (o NeoHookean) Nhist() int { return 0 }

// InitIntVars initialises internal (secondary) variables
func (o NeoHookean) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, 0)
	copy(s.Sig0, σ)
	copy(s.Sig, σ)
	return
}

// Update updates stresses for given strains
//  ε holds the strain of this step relative to the step reference configuration
func (o *NeoHookean) Update(s *State, ε, Δε []float64, eid, ipid int, t float64) (err error) {
	εv := Dev(o.e, ε)
	J := 1.0 + εv
	if J < o.Jmin {
		return chk.Err("nh: volume ratio became non-positive (J=%g) @ eid=%d ip=%d", J, eid, ipid)
	}
	p := o.K * math.Log(J)
	for i := 0; i < 3; i++ {
		s.Sig[i] = s.Sig0[i] + p + 2.0*o.μ*o.e[i]
	}
	for i := 3; i < o.Nsig; i++ {
		s.Sig[i] = s.Sig0[i] + o.μ*o.e[i] // engineering shear strain
	}
	copy(s.EpsE, ε)
	return
}

// CalcD computes D = dσ_new/dε_new consistent with StressUpdate
func (o *NeoHookean) CalcD(D *la.Matrix, s *State, firstIt bool) (err error) {
	J := 1.0 + Tr(s.EpsE)
	if J < o.Jmin {
		return chk.Err("nh: volume ratio became non-positive (J=%g)", J)
	}
	IsotropicD(D, o.K/J, o.μ)
	return
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// CrystalMat implements the crystal-plasticity flavour of the user-material
// entry point. Each quadrature point carries the lattice orientation of its
// grain (nori values) followed by the accumulated plastic strain. The
// reference behaviour is rate-independent J2 plasticity with linear isotropic
// hardening; the initial yield stress is scaled by a Taylor-factor-like
// function of the orientation, so differently oriented grains yield at
// different loads. User routines may replace the return mapping and read the
// orientation from the history.
//
// History layout: Hist[0:nori] orientation, Hist[nori] accumulated εp.
type CrystalMat struct {

	// constants
	Nsig int // number of stress components
	Nori int // number of orientation components per grain

	// parameters
	μ    float64 // shear modulus
	K    float64 // bulk modulus
	σy   float64 // initial yield stress
	H    float64 // linear hardening modulus
	tfac float64 // orientation (texture) scaling of the initial yield stress

	// auxiliary
	str []float64 // deviator of trial stress
}

// add model to factory
func init() {
	allocators["cpumat"] = func() Model { return new(CrystalMat) }
}

// Init initialises model
func (o *CrystalMat) Init(ndim int, prms dbf.Params) (err error) {
	if ndim != 3 {
		return chk.Err("cpumat model is only available for 3D analyses")
	}
	o.Nsig = NSIG
	o.Nori = 4
	o.μ, o.K = 0.25, 5.0
	o.σy, o.H = 0.01, 0.1
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.μ = p.V
		case "K":
			o.K = p.V
		case "sy":
			o.σy = p.V
		case "H":
			o.H = p.V
		case "tfac":
			o.tfac = p.V
		case "nori":
			o.Nori = int(p.V)
		default:
			return chk.Err("cpumat: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.μ <= 0 || o.K <= 0 || o.σy <= 0 {
		return chk.Err("cpumat: μ=%g, K=%g and σy=%g are incorrect", o.μ, o.K, o.σy)
	}
	if o.Nori < 1 {
		return chk.Err("cpumat: number of orientation components must be positive. nori=%d is incorrect", o.Nori)
	}
	o.str = make([]float64, o.Nsig)
	return
}

// GetPrms gets (an example) of parameters
func (o CrystalMat) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
		&dbf.P{N: "sy", V: 0.01},
		&dbf.P{N: "H", V: 0.1},
		&dbf.P{N: "tfac", V: 0},
		&dbf.P{N: "nori", V: 4},
	}
}

// Nhist returns the number of history values: orientation + accumulated εp
func (o CrystalMat) Nhist() int { return o.Nori + 1 }

// InitIntVars initialises internal (secondary) variables
func (o CrystalMat) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, o.Nhist())
	copy(s.Sig0, σ)
	copy(s.Sig, σ)
	return
}

// SetOri stores the grain orientation in the state history
func (o CrystalMat) SetOri(s *State, ori []float64) (err error) {
	if len(ori) != o.Nori {
		return chk.Err("cpumat: orientation has %d components; expected %d", len(ori), o.Nori)
	}
	copy(s.Hist[:o.Nori], ori)
	return
}

// yield returns the current yield stress for the given accumulated εp and
// orientation
func (o *CrystalMat) yield(ori []float64, εp float64) float64 {
	f := ori[0]
	if f < 0 {
		f = -f
	}
	return o.σy*(1.0+o.tfac*f) + o.H*εp
}

// Update updates stresses for given strains (radial return)
func (o *CrystalMat) Update(s *State, ε, Δε []float64, eid, ipid int, t float64) (err error) {

	// trial state: elastic response to the step strain
	εv := Tr(ε)
	lam := o.K - 2.0*o.μ/3.0
	for i := 0; i < 3; i++ {
		s.Sig[i] = s.Sig0[i] + lam*εv + 2.0*o.μ*ε[i]
	}
	for i := 3; i < o.Nsig; i++ {
		s.Sig[i] = s.Sig0[i] + o.μ*ε[i] // engineering shear strain
	}
	copy(s.EpsE, ε)

	// yield function @ trial state
	Dev(o.str, s.Sig)
	qtr := Qdev(o.str)
	εp := s.Hist[o.Nori]
	ftr := qtr - o.yield(s.Hist[:o.Nori], εp)
	if ftr <= 0 {
		s.Dgam = 0
		s.Loading = false
		return
	}

	// radial return
	Δγ := ftr / (3.0*o.μ + o.H)
	m := 1.0 - 3.0*o.μ*Δγ/qtr
	for i := 0; i < o.Nsig; i++ {
		s.Sig[i] -= (1.0 - m) * o.str[i]
	}
	s.Hist[o.Nori] = εp + Δγ
	s.Dgam = Δγ
	s.Loading = true
	return
}

// CalcD computes D = dσ_new/dε_new consistent with the radial return
func (o *CrystalMat) CalcD(D *la.Matrix, s *State, firstIt bool) (err error) {

	// elastic tangent
	if !s.Loading || s.Dgam == 0 {
		IsotropicD(D, o.K, o.μ)
		return
	}

	// updated deviator and trial von Mises stress: s_new = θ s_tr
	Dev(o.str, s.Sig)
	qnew := Qdev(o.str)
	qtr := qnew + 3.0*o.μ*s.Dgam
	if qtr <= 0 {
		IsotropicD(D, o.K, o.μ)
		return
	}

	// consistent elastoplastic tangent (Simo & Hughes):
	//  D = K I⊗I + 2μ θ Idev - 2μ θb n⊗n,  n = s_tr/‖s_tr‖
	θ := qnew / qtr
	θb := 1.0/(1.0+o.H/(3.0*o.μ)) - (1.0 - θ)
	IsotropicD(D, o.K, θ*o.μ)
	snorm := θ * qtr * 0.816496580927726 // ‖s_new‖ = θ sqrt(2/3) q_tr
	for i := 0; i < o.Nsig; i++ {
		ni := o.str[i] / snorm
		for j := 0; j < o.Nsig; j++ {
			nj := o.str[j] / snorm
			D.Add(i, j, -2.0*o.μ*θb*ni*nj)
		}
	}
	return
}

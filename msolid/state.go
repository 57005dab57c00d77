// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// State holds all continuum mechanics data at one quadrature point,
// including for updating the state.
// Stress components use Voigt ordering: 11, 22, 33, 12, 13, 23.
// Sig0 is read-only during a step; Commit moves the end-of-step values
// into it once the step is accepted.
type State struct {

	// essential
	Sig0 []float64 // σ0: Cauchy stress at the beginning of the current step [nsig]
	Sig  []float64 // σ: current (end-of-step) Cauchy stress [nsig]
	EpsE []float64 // εe: elastic strain relative to the step reference [nsig]

	// history; e.g. lattice orientation and hardening variables (if nhist > 0)
	Hist []float64 // history values [nhist]

	// for plasticity
	Dgam    float64 // Δγ: increment of plastic multiplier
	Loading bool    // plastic loading flag
}

// NewState allocates a state structure
//  nsig  -- number of stress components
//  nhist -- number of history values
func NewState(nsig, nhist int) *State {
	var state State
	state.Sig0 = make([]float64, nsig)
	state.Sig = make([]float64, nsig)
	state.EpsE = make([]float64, nsig)
	if nhist > 0 {
		state.Hist = make([]float64, nhist)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig0, other.Sig0)
	copy(o.Sig, other.Sig)
	copy(o.EpsE, other.EpsE)
	if len(o.Hist) > 0 {
		copy(o.Hist, other.Hist)
	}
	o.Dgam = other.Dgam
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), len(o.Hist))
	other.Set(o)
	return other
}

// Commit accepts the end-of-step values as the new step reference
func (o *State) Commit() {
	copy(o.Sig0, o.Sig)
	o.Dgam = 0
	o.Loading = false
}

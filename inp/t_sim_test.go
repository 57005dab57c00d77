// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelFlags is a helper to build configurations for the selector tests
func modelFlags(hyper, umat, cp, euler, quat, uniform bool, ngrains int) *Simulation {
	sim := NewSimulation()
	sim.Hyperelastic = hyper
	sim.Umat = umat
	sim.CP = cp
	sim.GrainEuler = euler
	sim.GrainQuat = quat
	sim.GrainUniform = uniform
	sim.Ngrains = ngrains
	sim.GrainFile = "grains.txt"
	sim.GrainUniVec = []float64{1, 0, 0}
	return sim
}

func TestModelConfigTable(t *testing.T) {
	cases := []struct {
		label                            string
		hyper, umat, cp                  bool
		euler, quat, uniform             bool
		ngrains                          int
		code                             int
	}{
		{"hyperelastic alone", true, false, false, false, false, false, 0, 0},
		{"umat alone", false, true, false, false, false, false, 0, 0},
		{"cp euler", false, true, true, true, false, false, 5, 0},
		{"cp quat", false, false, true, false, true, false, 2, 0},
		{"cp uniform one grain", false, true, true, false, false, true, 1, 0},

		// hyperelastic wins over any other selection
		{"hyperelastic with umat", true, true, false, false, false, false, 0, 0},
		{"hyperelastic with cp", true, false, true, true, false, false, 5, 0},
		{"hyperelastic with orientation", true, false, false, true, false, false, 0, 0},

		// umat without cp ignores orientation flags
		{"umat with euler", false, true, false, true, false, false, 0, 0},
		{"umat with uniform", false, true, false, false, false, true, 0, 0},

		{"nothing selected", false, false, false, false, false, false, 0, 1},
		{"cp without orientation", false, true, true, false, false, false, 5, 1},
		{"cp with euler and quaternion", false, true, true, true, true, false, 5, 1},
		{"cp with all representations", false, true, true, true, true, true, 5, 1},
		{"cp without grains", false, true, true, true, false, false, 0, 1},
	}
	for _, tc := range cases {
		sim := modelFlags(tc.hyper, tc.umat, tc.cp, tc.euler, tc.quat, tc.uniform, tc.ngrains)
		assert.Equal(t, tc.code, sim.CheckModelConfig(), tc.label)
	}
}

func TestModelConfigForcesLowerPrecedenceOff(t *testing.T) {

	// hyperelastic switches every other flag off
	sim := modelFlags(true, true, true, true, true, true, 5)
	require.Equal(t, 0, sim.CheckModelConfig())
	assert.False(t, sim.Umat)
	assert.False(t, sim.CP)
	assert.False(t, sim.GrainEuler)
	assert.False(t, sim.GrainQuat)
	assert.False(t, sim.GrainUniform)
	assert.Equal(t, "nh", sim.ModelName())

	// umat without cp switches orientation flags off
	sim = modelFlags(false, true, false, true, true, true, 5)
	require.Equal(t, 0, sim.CheckModelConfig())
	assert.True(t, sim.Umat)
	assert.False(t, sim.GrainEuler)
	assert.False(t, sim.GrainQuat)
	assert.False(t, sim.GrainUniform)
	assert.Equal(t, "umat", sim.ModelName())
}

func TestValidatePromotesBadFlags(t *testing.T) {
	// the validator must turn selector code 1 into a hard error
	sim := modelFlags(false, false, false, false, false, false, 0)
	require.Error(t, sim.Validate())

	sim = modelFlags(false, true, true, true, true, false, 5)
	require.Error(t, sim.Validate())

	sim = modelFlags(false, true, true, true, false, false, 5)
	require.NoError(t, sim.Validate())
}

func TestValidateBasics(t *testing.T) {
	sim := NewSimulation()
	sim.Hyperelastic = true
	require.NoError(t, sim.Validate())

	// the default ramp is the literal constant increment, not scaled by time
	assert.Equal(t, []float64{0, 0, -0.1}, sim.RampVals)

	sim.Dt = 2 * sim.Tf
	assert.Error(t, sim.Validate())
	sim.Dt = 0.2

	sim.Order = 3
	assert.Error(t, sim.Validate())
	sim.Order = 2

	sim.Enc = "xml"
	assert.Error(t, sim.Validate())
	sim.Enc = "json"

	require.NoError(t, sim.Validate())
}

func TestModelNameAndPrms(t *testing.T) {
	sim := NewSimulation()
	sim.Hyperelastic = true
	assert.Equal(t, "nh", sim.ModelName())

	prms := sim.MatPrms()
	vals := map[string]float64{}
	for _, p := range prms {
		vals[p.N] = p.V
	}
	assert.Equal(t, 0.25, vals["mu"])
	assert.Equal(t, 5.0, vals["K"])

	sim = NewSimulation()
	sim.Umat = true
	sim.CP = true
	sim.GrainQuat = true
	sim.Ngrains = 3
	assert.Equal(t, "cpumat", sim.ModelName())
	assert.Equal(t, 4, sim.OriNcomp())

	// overlay overrides model defaults
	sim.Params = &RunParams{Material: map[string]float64{"sy": 0.002}}
	for _, p := range sim.MatPrms() {
		if p.N == "sy" {
			assert.Equal(t, 0.002, p.V)
		}
		if p.N == "nori" {
			assert.Equal(t, 4.0, p.V)
		}
	}
}

func TestRunParamsParse(t *testing.T) {
	data := []byte(`
Title: cube test
Material:
  mu: 0.3
  K: 4.5
Solver:
  RelTol: 1.0e-6
  NmaxIt: 25
`)
	var params RunParams
	require.NoError(t, params.Parse(data))
	assert.Equal(t, "cube test", params.Title)
	assert.Equal(t, 0.3, params.Material["mu"])
	assert.Equal(t, 4.5, params.Material["K"])
	require.NotNil(t, params.Solver)
	assert.Equal(t, 1.0e-6, params.Solver.RelTol)
	assert.Equal(t, 25, params.Solver.NmaxIt)

	sim := NewSimulation()
	params.Overlay(sim)
	assert.Equal(t, 1.0e-6, sim.RelTol)
	assert.Equal(t, 25, sim.NmaxIt)
	assert.Equal(t, 500, sim.LinMaxIt) // untouched

	require.Error(t, params.Parse([]byte("Material: [not, a, map]")))
}

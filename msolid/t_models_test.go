// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// checkConsistentD compares CalcD against central finite differences of the
// stress update around strain ε
func checkConsistentD(tst *testing.T, model Small, mdl Model, ε []float64, tol float64) {
	σ0 := make([]float64, NSIG)
	update := func(εat []float64) []float64 {
		s, err := mdl.InitIntVars(σ0)
		if err != nil {
			tst.Errorf("InitIntVars failed: %v\n", err)
			return nil
		}
		if om, ok := mdl.(Oriented); ok {
			om.SetOri(s, []float64{0.3, 0.1, 0.2, 0.9})
		}
		err = model.Update(s, εat, nil, 0, 0, 0)
		if err != nil {
			tst.Errorf("Update failed: %v\n", err)
			return nil
		}
		return append([]float64{}, s.Sig...)
	}

	// analytical tangent at ε
	s, _ := mdl.InitIntVars(σ0)
	if om, ok := mdl.(Oriented); ok {
		om.SetOri(s, []float64{0.3, 0.1, 0.2, 0.9})
	}
	if err := model.Update(s, ε, nil, 0, 0, 0); err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	D := la.NewMatrix(NSIG, NSIG)
	if err := model.CalcD(D, s, false); err != nil {
		tst.Errorf("CalcD failed: %v\n", err)
		return
	}

	// numerical tangent
	h := 1e-6
	εp := make([]float64, NSIG)
	for j := 0; j < NSIG; j++ {
		copy(εp, ε)
		εp[j] = ε[j] + h
		σplus := update(εp)
		εp[j] = ε[j] - h
		σminus := update(εp)
		if σplus == nil || σminus == nil {
			return
		}
		for i := 0; i < NSIG; i++ {
			dnum := (σplus[i] - σminus[i]) / (2.0 * h)
			chk.Float64(tst, io.Sf("D[%d][%d]", i, j), tol, D.Get(i, j), dnum)
		}
	}
}

func Test_nh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nh01. neo-Hookean: small-strain limit")

	mdl, err := New("nh", 3, nil)
	if err == nil {
		tst.Errorf("error expected: μ and K were not given\n")
		return
	}
	mdl, err = New("nh", 3, dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
	})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	nh := mdl.(Small)

	// tiny strains: response must match linear elasticity
	s, _ := mdl.InitIntVars(make([]float64, NSIG))
	ε := []float64{1e-8, -2e-8, 0.5e-8, 1e-8, 0, -1e-8}
	if err := nh.Update(s, ε, nil, 0, 0, 0); err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	μ, K := 0.25, 5.0
	lam := K - 2.0*μ/3.0
	εv := ε[0] + ε[1] + ε[2]
	for i := 0; i < 3; i++ {
		chk.Float64(tst, io.Sf("σ[%d]", i), 1e-16, s.Sig[i], lam*εv+2.0*μ*ε[i])
	}
	for i := 3; i < NSIG; i++ {
		chk.Float64(tst, io.Sf("σ[%d]", i), 1e-16, s.Sig[i], μ*ε[i])
	}
}

func Test_nh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nh02. neo-Hookean: consistent tangent")

	mdl, err := New("nh", 3, dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
	})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	ε := []float64{0.02, -0.01, 0.015, 0.008, -0.004, 0.006}
	checkConsistentD(tst, mdl.(Small), mdl, ε, 1e-7)
}

func Test_nh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nh03. neo-Hookean: stress accumulates over steps")

	mdl, _ := New("nh", 3, dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
	})
	nh := mdl.(Small)
	s, _ := mdl.InitIntVars(make([]float64, NSIG))

	// two identical small steps with commit in between add up
	ε := []float64{1e-4, 0, 0, 0, 0, 0}
	nh.Update(s, ε, nil, 0, 0, 0)
	σ1 := append([]float64{}, s.Sig...)
	s.Commit()
	nh.Update(s, ε, nil, 0, 0, 0)
	for i := 0; i < NSIG; i++ {
		chk.Float64(tst, io.Sf("σ[%d]", i), 1e-9, s.Sig[i], 2.0*σ1[i])
	}
}

func Test_umat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("umat01. user material: linear elastic reference")

	mdl, err := New("umat", 3, dbf.Params{
		&dbf.P{N: "E", V: 2.0},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "nstatv", V: 4},
	})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.IntAssert(mdl.Nhist(), 4)
	ε := []float64{0.01, -0.02, 0.03, 0.01, 0.02, -0.01}
	checkConsistentD(tst, mdl.(Small), mdl, ε, 1e-7)

	// history untouched by the reference behaviour
	s, _ := mdl.InitIntVars(make([]float64, NSIG))
	s.Hist[2] = 123.0
	mdl.(Small).Update(s, ε, nil, 0, 0, 0)
	chk.Float64(tst, "hist[2]", 1e-17, s.Hist[2], 123.0)
}

func Test_cp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cp01. crystal umat: radial return")

	mdl, err := New("cpumat", 3, dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
		&dbf.P{N: "sy", V: 0.001},
		&dbf.P{N: "H", V: 0.05},
	})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	cp := mdl.(Small)
	om := mdl.(Oriented)
	s, _ := mdl.InitIntVars(make([]float64, NSIG))
	ori := []float64{0.3, 0.1, 0.2, 0.9}
	if err := om.SetOri(s, ori); err != nil {
		tst.Errorf("SetOri failed: %v\n", err)
		return
	}
	chk.Array(tst, "hist ori", 1e-17, s.Hist[:4], ori)

	// small strain: elastic
	ε := []float64{1e-6, 0, 0, 0, 0, 0}
	cp.Update(s, ε, nil, 0, 0, 0)
	if s.Loading {
		tst.Errorf("elastic step must not flag plastic loading\n")
		return
	}

	// large strain: stress must return to the yield surface
	ε = []float64{0.01, -0.003, -0.003, 0, 0, 0}
	cp.Update(s, ε, nil, 0, 0, 0)
	if !s.Loading {
		tst.Errorf("plastic loading expected\n")
		return
	}
	dev := make([]float64, NSIG)
	Dev(dev, s.Sig)
	q := Qdev(dev)
	εp := s.Hist[4]
	syNow := 0.001 + 0.05*εp
	chk.Float64(tst, "q == σy(εp)", 1e-12, q, syNow)
	if εp <= 0 {
		tst.Errorf("accumulated plastic strain must be positive\n")
		return
	}
}

func Test_cp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cp02. crystal umat: texture factor shifts yield")

	newmdl := func(tfac float64) (Model, Small, *State) {
		mdl, _ := New("cpumat", 3, dbf.Params{
			&dbf.P{N: "mu", V: 0.25},
			&dbf.P{N: "K", V: 5.0},
			&dbf.P{N: "sy", V: 0.001},
			&dbf.P{N: "H", V: 0.05},
			&dbf.P{N: "tfac", V: tfac},
		})
		s, _ := mdl.InitIntVars(make([]float64, NSIG))
		mdl.(Oriented).SetOri(s, []float64{1, 0, 0, 0})
		return mdl, mdl.(Small), s
	}

	ε := []float64{0.01, -0.003, -0.003, 0, 0, 0}

	_, cpA, sA := newmdl(0)
	cpA.Update(sA, ε, nil, 0, 0, 0)

	_, cpB, sB := newmdl(0.5)
	cpB.Update(sB, ε, nil, 0, 0, 0)

	// stiffer texture yields later: less plastic strain accumulated
	if sB.Hist[4] >= sA.Hist[4] {
		tst.Errorf("texture factor must reduce plastic strain: %g >= %g\n", sB.Hist[4], sA.Hist[4])
		return
	}
}

func Test_cp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cp03. crystal umat: consistent tangent")

	mdl, _ := New("cpumat", 3, dbf.Params{
		&dbf.P{N: "mu", V: 0.25},
		&dbf.P{N: "K", V: 5.0},
		&dbf.P{N: "sy", V: 0.001},
		&dbf.P{N: "H", V: 0.05},
	})
	ε := []float64{0.01, -0.003, -0.003, 0.002, 0, 0} // plastic range
	checkConsistentD(tst, mdl.(Small), mdl, ε, 1e-6)
}

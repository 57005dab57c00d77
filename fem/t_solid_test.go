// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/amfem/constit/inp"

	"github.com/cpmech/gosl/chk"
)

func onecell(tst *testing.T) *Domain {
	sim := inp.NewSimulation()
	sim.Hyperelastic = true
	sim.Gmres = true
	sim.Nx, sim.Ny, sim.Nz = 1, 1, 1
	if err := sim.Validate(); err != nil {
		tst.Fatalf("Validate failed:\n%v", err)
	}
	msh, err := sim.LoadMesh(1)
	if err != nil {
		tst.Fatalf("LoadMesh failed:\n%v", err)
	}
	dom, err := NewDomain(sim, msh, 0, 1)
	if err != nil {
		tst.Fatalf("NewDomain failed:\n%v", err)
	}
	return dom
}

func Test_solid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid01. rigid translation produces no stress")

	dom := onecell(tst)
	dom.StartStep(1.0)
	for _, nod := range dom.Nodes {
		for j, key := range []string{"ux", "uy", "uz"} {
			dom.Sol.Y[nod.GetEq(key)] = 0.01 * float64(1+j)
		}
	}
	copy(dom.Sol.ΔY, dom.Sol.Y)

	e := dom.Elems[0]
	if err := e.Update(dom.Sol); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	for _, s := range e.States {
		chk.Array(tst, "sig", 1e-12, s.Sig, []float64{0, 0, 0, 0, 0, 0})
	}
}

func Test_solid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid02. assembled diagonal is positive")

	dom := onecell(tst)
	dom.StartStep(1.0)
	op := NewMechOperator(dom)
	if err := op.Jacobian(true); err != nil {
		tst.Errorf("Jacobian failed:\n%v", err)
		return
	}
	for i := 0; i < dom.Nyb; i++ {
		if op.diag[i] <= 0 {
			tst.Errorf("diagonal entry %d is not positive: %g", i, op.diag[i])
			return
		}
	}
}

func Test_solid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid03. residual of the undisturbed cube carries only the ramp")

	dom := onecell(tst)
	dom.StartStep(1.0)
	op := NewMechOperator(dom)
	if err := op.Evaluate(dom.Fb); err != nil {
		tst.Errorf("Evaluate failed:\n%v", err)
		return
	}
	for i := 0; i < dom.Ny; i++ {
		chk.Float64(tst, "fb", 1e-14, dom.Fb[i], 0)
	}
	sum := 0.0
	for i := dom.Ny; i < dom.Nyb; i++ {
		sum += dom.Fb[i]
	}
	// 4 ramped vertices, only the z component is nonzero
	chk.Float64(tst, "sum of constraint residuals", 1e-14, sum, 4*(-0.1))
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amfem/constit/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_run01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run01. hyperelastic cube compressed over five steps")

	sim := inp.NewSimulation()
	sim.Hyperelastic = true
	sim.Gmres = true
	sim.Tf = 1.0
	sim.Dt = 0.2
	sim.Enc = "gob"
	sim.Vis = false
	sim.DirOut = tst.TempDir()
	if err := sim.Validate(); err != nil {
		tst.Errorf("Validate failed:\n%v", err)
		return
	}

	m, err := NewMain(sim)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	if err = m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// five steps, strictly increasing times ending at tf
	tprev := 0.0
	for step := 1; step <= 5; step++ {
		fn := filepath.Join(sim.DirOut, io.Sf("deformation.%06d_%d", 0, step))
		snap, err := ReadDeformation(fn, sim.Enc)
		if err != nil {
			tst.Errorf("cannot read step %d:\n%v", step, err)
			return
		}
		if snap.Time <= tprev {
			tst.Errorf("snapshot times must increase: %g <= %g", snap.Time, tprev)
			return
		}
		tprev = snap.Time
		chk.IntAssert(len(snap.U), m.Dom.Ny)
	}
	chk.Float64(tst, "final time", 1e-12, tprev, 1.0)

	// no sixth step
	fn := filepath.Join(sim.DirOut, io.Sf("deformation.%06d_%d", 0, 6))
	if _, err := os.Stat(fn); err == nil {
		tst.Errorf("unexpected sixth snapshot")
		return
	}

	// deformed meshes were written alongside
	for step := 1; step <= 5; step++ {
		fn = filepath.Join(sim.DirOut, io.Sf("mesh.%06d_%d", 0, step))
		msnap, err := ReadMeshSnapshot(fn, "json")
		if err != nil {
			tst.Errorf("cannot read mesh snapshot %d:\n%v", step, err)
			return
		}
		chk.IntAssert(len(msnap.Coords), 27)
		chk.IntAssert(len(msnap.Cells), 8)
	}

	// ramped surface moved down by 0.1 per step; fixed surface kept still
	ztop, zbot := -1.0, -1.0
	for v, x := range m.Dom.XCur {
		z0 := m.Dom.Msh.Verts[v].C[2]
		if z0 == 1 {
			ztop = x[2]
		}
		if z0 == 0 {
			zbot = x[2]
		}
	}
	chk.Float64(tst, "ztop", 1e-4, ztop, 0.5)
	chk.Float64(tst, "zbot", 1e-4, zbot, 0.0)
}

func Test_run02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run02. json snapshots and a single full-length step")

	sim := inp.NewSimulation()
	sim.Hyperelastic = true
	sim.Gmres = true
	sim.Enc = "json"
	sim.Vis = false
	sim.DirOut = tst.TempDir()
	if err := sim.Validate(); err != nil {
		tst.Errorf("Validate failed:\n%v", err)
		return
	}

	m, err := NewMain(sim)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	if err = m.Run(); err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	fn := filepath.Join(sim.DirOut, io.Sf("deformation.%06d_%d", 0, 1))
	snap, err := ReadDeformation(fn, sim.Enc)
	if err != nil {
		tst.Errorf("cannot read snapshot:\n%v", err)
		return
	}
	chk.Float64(tst, "time", 1e-15, snap.Time, 1.0)
}

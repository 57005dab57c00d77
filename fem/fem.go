// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem solves the quasi-static mechanics problem with the finite
// element method: a time loop advances the essential boundary conditions
// and a Newton solve equilibrates the domain at each step
package fem

import (
	"github.com/amfem/constit/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

// Main holds all data of one simulation run
type Main struct {
	Sim     *inp.Simulation // simulation data
	Dom     *Domain         // the domain
	Op      *MechOperator   // mechanics operator
	Writer  SnapshotWriter  // per-step output
	Viewer  *Viewer         // visualisation connection; may be nil
	Nproc   int             // number of processors
	Proc    int             // processor id
	Verbose bool            // show messages (root only)
}

// NewMain builds the simulation from the input data: mesh, domain,
// operator and output
func NewMain(sim *inp.Simulation) (o *Main, err error) {

	// new main object
	o = new(Main)
	o.Sim = sim
	o.Proc, o.Nproc = 0, 1
	if mpi.IsOn() {
		o.Proc = mpi.WorldRank()
		o.Nproc = mpi.WorldSize()
	}
	o.Verbose = sim.Verbose && o.Proc == 0

	// mesh and domain
	msh, err := sim.LoadMesh(o.Nproc)
	if err != nil {
		return nil, err
	}
	o.Dom, err = NewDomain(sim, msh, o.Proc, o.Nproc)
	if err != nil {
		return nil, err
	}
	o.Op = NewMechOperator(o.Dom)

	// output
	o.Writer, err = NewFileWriter(sim.DirOut, sim.Enc, o.Proc)
	if err != nil {
		return nil, err
	}
	if sim.Vis {
		o.Viewer = NewViewer(sim.VisHost, sim.VisPort, o.Proc, o.Nproc)
	}

	if o.Verbose {
		io.Pf("mesh: %d vertices, %d cells, %d equations, %d constraints\n",
			len(msh.Verts), len(msh.Cells), o.Dom.Ny, o.Dom.Nlam)
	}
	return
}

// Run advances the solution from t=0 to t=tf. The last step is shortened
// so the final time is hit exactly. A failed Newton solve aborts the run
// since the domain is left mid-step.
func (o *Main) Run() (err error) {

	// clean up
	defer o.Op.Free()

	// visualisation servers are contacted only after all processors have
	// finished setting up
	barrierDone := false

	// time loop
	t := 0.0
	last := false
	for step := 1; !last; step++ {

		// time update
		dt := utl.Min(o.Sim.Dt, o.Sim.Tf-t)
		t += dt
		last = t >= o.Sim.Tf-1e-8*o.Sim.Dt

		// equilibrate the step
		o.Dom.StartStep(t)
		it, err := o.Op.Solve()
		if err != nil {
			return chk.Err("simulation failed at step %d (t=%g):\n%v", step, t, err)
		}
		o.Dom.AcceptStep()
		if o.Verbose {
			io.Pf("step %4d  t=%-10g dt=%-10g iterations=%d\n", step, t, dt, it)
		}

		// output
		if err = o.Writer.WriteStep(step, o.Dom); err != nil {
			return err
		}
		if o.Viewer != nil && (step%o.Sim.VisSteps == 0 || last) {
			if !barrierDone {
				// all processors must be done before the first connection
				if mpi.IsOn() {
					mpi.NewCommunicator(nil).Barrier()
				}
				barrierDone = true
			}
			if err = o.Viewer.ShowStep(o.Dom); err != nil {
				return err
			}
		}
	}
	return
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

// MechOperator assembles the residual and consistent Jacobian of the
// quasi-static mechanics problem and drives the Newton iterations of one
// time step. The linear solver is chosen according to the simulation input:
// GMRES takes precedence over the direct solver, which takes precedence
// over MINRES with diagonal smoothing.
type MechOperator struct {

	// domain
	Dom  *Domain
	comm *mpi.Communicator // world communicator; nil unless distributed

	// Jacobian diagonal for the smoother
	diag la.Vector // assembled diagonal
	dtmp la.Vector // workspace for the diagonal all-reduce

	// iterative solvers
	kmat *la.CCMatrix // local compressed Jacobian
	mvw  la.Vector    // workspace for the distributed matrix-vector product

	// direct solver
	lis     la.SparseSolver // sparse linear solver
	lisInit bool            // sparse solver has been initialised
}

// NewMechOperator allocates a new operator for the given domain
func NewMechOperator(dom *Domain) (o *MechOperator) {
	o = new(MechOperator)
	o.Dom = dom
	o.diag = la.NewVector(dom.Nyb)
	if dom.Distr {
		o.comm = mpi.NewCommunicator(nil)
		o.dtmp = la.NewVector(dom.Ny)
		o.mvw = la.NewVector(dom.Nyb)
	}
	return
}

// Evaluate assembles the out-of-balance force vector fb
func (o *MechOperator) Evaluate(fb la.Vector) (err error) {
	d := o.Dom
	fb.Fill(0)
	for _, e := range d.MyElems {
		if err = e.AddToRhs(fb, d.Sol); err != nil {
			return
		}
	}
	if d.Distr {
		o.comm.AllReduceSum(d.Wb, fb)
		copy(fb, d.Wb)
	}
	d.EssenBcs.AddToRhs(fb, d.Sol)
	return
}

// Jacobian assembles the consistent tangent matrix Kb and its diagonal
func (o *MechOperator) Jacobian(firstIt bool) (err error) {
	d := o.Dom
	d.Kb.Start()
	o.diag.Fill(0)
	for _, e := range d.MyElems {
		if err = e.AddToKb(&d.Kb, o.diag, d.Sol, firstIt); err != nil {
			return
		}
	}
	if !d.Distr || d.Proc == 0 {
		d.Kb.PutMatAndMatT(&d.EssenBcs.A)
	}
	if d.Distr {
		o.comm.AllReduceSum(o.dtmp, o.diag[:d.Ny])
		copy(o.diag[:d.Ny], o.dtmp)
	}
	// unit entries keep the smoother invertible on the multiplier rows
	for i := d.Ny; i < d.Nyb; i++ {
		o.diag[i] = 1
	}
	return
}

// matvec computes v = Kb ⋅ u, joining the partial products of all
// processors when running distributed
func (o *MechOperator) matvec(v, u la.Vector) {
	v.Fill(0)
	la.SpMatVecMulAdd(v, 1, o.kmat, u)
	if o.Dom.Distr {
		o.comm.AllReduceSum(o.mvw, v)
		copy(v, o.mvw)
	}
}

// SolveLin solves Kb ⋅ w = fb
func (o *MechOperator) SolveLin(w, fb la.Vector) (err error) {
	d := o.Dom
	sim := d.Sim

	// GMRES with diagonal smoothing
	if sim.Gmres {
		o.kmat = d.Kb.ToMatrix(nil)
		var smoother *Jacobi
		if smoother, err = NewJacobi(o.diag); err != nil {
			return
		}
		w.Fill(0)
		_, err = Gmres(w, fb, o.matvec, smoother, sim.LinTol, sim.LinMaxIt)
		return
	}

	// sparse direct solver
	if sim.Direct {
		if !o.lisInit {
			name := "umfpack"
			if d.Distr {
				name = "mumps"
			}
			o.lis = la.NewSparseSolver(name)
			o.lis.Init(&d.Kb, &la.SpArgs{Communicator: o.comm})
			o.lisInit = true
		}
		o.lis.Fact()
		o.lis.Solve(w, fb, false)
		return
	}

	// MINRES with diagonal smoothing
	o.kmat = d.Kb.ToMatrix(nil)
	var smoother *Jacobi
	if smoother, err = NewJacobi(o.diag); err != nil {
		return
	}
	w.Fill(0)
	_, err = Minres(w, fb, o.matvec, smoother, sim.LinTol, sim.LinMaxIt)
	return
}

// Solve runs the Newton iterations of the current step. An error is
// returned if the iterations do not converge; the caller must treat this
// as fatal since the states of the domain are left mid-step.
func (o *MechOperator) Solve() (it int, err error) {
	d := o.Dom
	var largFb, largFb0 float64
	for it = 0; it < d.Sim.NmaxIt; it++ {

		// assemble out-of-balance force vector
		if err = o.Evaluate(d.Fb); err != nil {
			return
		}

		// convergence on the largest out-of-balance component
		largFb = d.Fb.Largest(1)
		if largFb < d.Sim.AbsTol {
			return it, nil
		}
		if it == 0 {
			largFb0 = largFb
		} else if largFb < d.Sim.RelTol*largFb0 {
			return it, nil
		}

		// assemble Jacobian and solve for the correction
		if err = o.Jacobian(it == 0); err != nil {
			return
		}
		if err = o.SolveLin(d.Wb, d.Fb); err != nil {
			return
		}

		// update primary variables and multipliers
		for i := 0; i < d.Ny; i++ {
			d.Sol.Y[i] += d.Wb[i]
			d.Sol.ΔY[i] += d.Wb[i]
		}
		for i := 0; i < d.Nlam; i++ {
			d.Sol.L[i] += d.Wb[d.Ny+i]
		}

		// update internal variables
		if it == 0 {
			d.BackupIvs()
		} else {
			d.RestoreIvs()
		}
		if err = d.UpdateElems(); err != nil {
			return
		}
	}
	return it, chk.Err("Newton iterations did not converge after %d iterations. largFb=%g largFb0=%g", d.Sim.NmaxIt, largFb, largFb0)
}

// Free releases the resources held by the linear solver
func (o *MechOperator) Free() {
	if o.lisInit {
		o.lis.Free()
		o.lisInit = false
	}
}

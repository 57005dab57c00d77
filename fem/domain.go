// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/amfem/constit/inp"
	"github.com/amfem/constit/msolid"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Solution holds the solution data of the current step
type Solution struct {
	T  float64   // current time
	Y  la.Vector // primary variables (step displacements)
	ΔY la.Vector // total increment of primary variables within the step
	L  la.Vector // Lagrange multipliers
}

// Domain holds all data for the domain to be simulated: nodes, elements,
// essential boundary conditions and the solution arrays
type Domain struct {

	// init: distributed-memory data
	Distr bool // distributed among more than one processor
	Proc  int  // this processor number
	Nproc int  // number of processors

	// init: auxiliary variables
	Sim *inp.Simulation // simulation data
	Msh *inp.Mesh       // the mesh

	// material
	Model    msolid.Model    // the single material model of this simulation
	MdlSmall msolid.Small    // small-strain specialisation
	Grains   *inp.GrainTable // grain orientations; may be nil

	// nodes (with equation numbers) and elements
	Nodes    []*Node      // all nodes
	Vid2node []*Node      // [nverts] vertex-id to node map
	Elems    []*ElemSolid // all elements
	MyElems  []*ElemSolid // elements owned by this processor

	// essential boundary conditions
	EssenBcs EssentialBcs // constraints A ⋅ y = c

	// degrees of freedom
	Ny    int // total number of unknowns
	Nlam  int // number of Lagrange multipliers
	Nyb   int // total number of equations: Ny + Nlam
	NnzKb int // number of non-zeros in Kb matrix

	// solution and linear solver arrays
	Sol  *Solution  // solution state
	Kb   la.Triplet // Jacobian == dRdy
	Fb   la.Vector  // residual == -fb
	Wb   la.Vector  // workspace

	// current configuration (updated after each accepted step)
	XCur [][]float64 // [nverts][ndim] current nodal coordinates
}

// NewDomain allocates a new domain, numbers the equations and sets the
// essential boundary conditions for the fixed and ramped surfaces
func NewDomain(sim *inp.Simulation, msh *inp.Mesh, proc, nproc int) (d *Domain, err error) {

	// basic data
	d = new(Domain)
	d.Distr = nproc > 1
	d.Proc = proc
	d.Nproc = nproc
	d.Sim = sim
	d.Msh = msh
	if d.Distr {
		if len(msh.Part2cells) != nproc {
			return nil, chk.Err("number of processors must be equal to the number of mesh partitions. %d != %d", nproc, len(msh.Part2cells))
		}
	}

	// check polynomial order against cell types
	ctype := "hex8"
	if sim.Order == 2 {
		ctype = "hex20"
	}
	for _, c := range msh.Cells {
		if c.Type != ctype {
			return nil, chk.Err("cell type %q of cell %d does not correspond to polynomial order %d", c.Type, c.Id, sim.Order)
		}
	}

	// material model shared by all elements
	d.Model, err = msolid.New(sim.ModelName(), msh.Ndim, sim.MatPrms())
	if err != nil {
		return nil, chk.Err("cannot allocate material model:\n%v", err)
	}
	small, ok := d.Model.(msolid.Small)
	if !ok {
		return nil, chk.Err("material model %q is not a small-strain model", sim.ModelName())
	}
	d.MdlSmall = small

	// grain orientations
	d.Grains, err = sim.Grains()
	if err != nil {
		return nil, err
	}

	// nodes and equation numbers. all processors number identically so that
	// the global vectors can be simply joined with an all-reduce
	d.Vid2node = make([]*Node, len(msh.Verts))
	d.Nodes = make([]*Node, 0, len(msh.Verts))
	ukeys := []string{"ux", "uy", "uz"}
	eq := 0
	for _, c := range msh.Cells {
		for _, v := range c.Verts {
			nod := d.Vid2node[v]
			if nod == nil {
				nod = NewNode(msh.Verts[v])
				d.Vid2node[v] = nod
				d.Nodes = append(d.Nodes, nod)
			}
			for _, key := range ukeys[:msh.Ndim] {
				eq = nod.AddDofAndEq(key, eq)
			}
		}
	}
	d.Ny = eq

	// elements
	d.Elems = make([]*ElemSolid, len(msh.Cells))
	d.NnzKb = 0
	for i, c := range msh.Cells {
		var ori []float64
		if d.Grains != nil {
			ori, err = d.Grains.Orientation(c.Atr)
			if err != nil {
				return nil, chk.Err("cell %d: %v", c.Id, err)
			}
		}
		d.Elems[i], err = NewElemSolid(c, msh, sim.Order, d.Model, ori)
		if err != nil {
			return nil, err
		}
		eqs := make([][]int, len(c.Verts))
		for m, v := range c.Verts {
			eqs[m] = make([]int, msh.Ndim)
			for j, key := range ukeys[:msh.Ndim] {
				eqs[m][j] = d.Vid2node[v].GetEq(key)
			}
		}
		if err = d.Elems[i].SetEqs(eqs); err != nil {
			return nil, err
		}
		if !d.Distr || c.Part == proc {
			d.MyElems = append(d.MyElems, d.Elems[i])
			d.NnzKb += d.Elems[i].Nu * d.Elems[i].Nu
		}
	}

	// essential boundary conditions
	d.EssenBcs.Init()
	fixverts, ok := msh.FaceTag2verts[sim.FixTag]
	if !ok {
		return nil, chk.Err("mesh has no faces tagged with the fixed tag %d", sim.FixTag)
	}
	rampverts, ok := msh.FaceTag2verts[sim.RampTag]
	if !ok {
		return nil, chk.Err("mesh has no faces tagged with the ramp tag %d", sim.RampTag)
	}
	// the ramped group receives the same increment every step; the
	// increment is not scaled by t/tf
	zero := &dbf.Cte{}
	for _, key := range ukeys[:msh.Ndim] {
		d.EssenBcs.Set(key, d.vertNodes(fixverts), zero)
	}
	for j, key := range ukeys[:msh.Ndim] {
		d.EssenBcs.Set(key, d.vertNodes(rampverts), &dbf.Cte{C: sim.RampVals[j]})
	}
	var nnzA int
	d.Nlam, nnzA = d.EssenBcs.Build(d.Ny)
	d.Nyb = d.Ny + d.Nlam

	// solution and linear solver arrays
	d.Sol = &Solution{
		Y:  la.NewVector(d.Ny),
		ΔY: la.NewVector(d.Ny),
		L:  la.NewVector(d.Nlam),
	}
	d.Kb.Init(d.Nyb, d.Nyb, d.NnzKb+2*nnzA+d.Nlam)
	d.Fb = la.NewVector(d.Nyb)
	d.Wb = la.NewVector(d.Nyb)

	// current configuration
	d.XCur = utl.Alloc(len(msh.Verts), msh.Ndim)
	for i, v := range msh.Verts {
		copy(d.XCur[i], v.C)
	}
	return
}

// vertNodes maps vertex ids to nodes
func (d *Domain) vertNodes(verts []int) (nodes []*Node) {
	nodes = make([]*Node, len(verts))
	for i, v := range verts {
		nodes[i] = d.Vid2node[v]
	}
	return
}

// StartStep prepares the domain for a new time step: the current
// configuration becomes the step reference and the step unknowns are zeroed
func (d *Domain) StartStep(t float64) {
	d.Sol.T = t
	d.Sol.Y.Fill(0)
	d.Sol.ΔY.Fill(0)
	d.Sol.L.Fill(0)
	for _, e := range d.Elems {
		e.SetX(d.XCur)
	}
}

// AcceptStep folds the step displacements into the current configuration and
// commits the internal variables of this processor's elements
func (d *Domain) AcceptStep() {
	for v, nod := range d.Vid2node {
		if nod == nil {
			continue
		}
		for j, key := range []string{"ux", "uy", "uz"}[:d.Msh.Ndim] {
			eq := nod.GetEq(key)
			if eq >= 0 {
				d.XCur[v][j] += d.Sol.Y[eq]
			}
		}
	}
	for _, e := range d.MyElems {
		e.CommitIvs()
	}
}

// BackupIvs backs up the internal variables of this processor's elements
func (d *Domain) BackupIvs() {
	for _, e := range d.MyElems {
		e.BackupIvs()
	}
}

// RestoreIvs restores the internal variables of this processor's elements
func (d *Domain) RestoreIvs() {
	for _, e := range d.MyElems {
		e.RestoreIvs()
	}
}

// UpdateElems updates the internal variables of this processor's elements
func (d *Domain) UpdateElems() (err error) {
	for _, e := range d.MyElems {
		if err = e.Update(d.Sol); err != nil {
			return
		}
	}
	return
}

// Deformation returns the nodal step-displacement field as a flat vector
// ordered by equation number
func (d *Domain) Deformation() []float64 {
	return d.Sol.Y.GetCopy()
}

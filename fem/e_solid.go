// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/amfem/constit/inp"
	"github.com/amfem/constit/msolid"
	"github.com/amfem/constit/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// ElemSolid represents a solid element with displacements u as primary
// variables. The coordinates matrix X holds the reference configuration of
// the current step; strains are computed relative to it.
type ElemSolid struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Shp  *shp.Shape  // shape structure
	Nu   int         // total number of unknowns
	Ndim int         // space dimension

	// integration points
	IpsElem []shp.Ipoint // integration points of element

	// material model and internal variables
	Model    msolid.Model // material model
	MdlSmall msolid.Small // model specialisation for small strains

	// internal variables
	States    []*msolid.State // [nip] states
	StatesBkp []*msolid.State // [nip] backup states

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// scratchpad. computed @ each ip
	fi  la.Vector  // [nu] internal forces
	fip la.Vector  // [nu] internal force contribution of one integration point
	K   *la.Matrix // [nu][nu] consistent tangent (stiffness) matrix
	B   *la.Matrix // [nsig][nu] B matrix
	D   *la.Matrix // [nsig][nsig] constitutive consistent tangent matrix
	BtD *la.Matrix // [nu][nsig] tr(B) * D

	// strains
	ε  []float64 // total (updated) strains w.r.t. the step reference
	Δε []float64 // incremental strains leading to updated strains
}

// NewElemSolid allocates a new solid element
//  order -- polynomial order of the displacement field; sets the
//           integration rule degree to 2*order+3
//  ori   -- grain orientation for this cell; nil unless the model carries
//           orientations
func NewElemSolid(cell *inp.Cell, msh *inp.Mesh, order int, model msolid.Model, ori []float64) (o *ElemSolid, err error) {

	// basic data
	o = new(ElemSolid)
	o.Cell = cell
	o.Shp = shp.Get(cell.Type, 0)
	if o.Shp == nil {
		return nil, chk.Err("cannot get shape structure for cell type %q", cell.Type)
	}
	o.Ndim = msh.Ndim
	o.Nu = o.Ndim * o.Shp.Nverts

	// coordinates matrix
	o.X = utl.Alloc(o.Ndim, o.Shp.Nverts)
	for m, v := range cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			o.X[i][m] = msh.Verts[v].C[i]
		}
	}

	// integration points
	o.IpsElem, err = shp.IpsByDegree(cell.Type, 2*order+3)
	if err != nil {
		return nil, chk.Err("cannot allocate integration points of solid element:\n%v", err)
	}
	nip := len(o.IpsElem)

	// model
	o.Model = model
	small, ok := model.(msolid.Small)
	if !ok {
		return nil, chk.Err("solid element cannot determine the small-strain specialisation of the material model")
	}
	o.MdlSmall = small

	// internal variables
	σ0 := make([]float64, msolid.NSIG)
	o.States = make([]*msolid.State, nip)
	o.StatesBkp = make([]*msolid.State, nip)
	for i := 0; i < nip; i++ {
		o.States[i], err = o.Model.InitIntVars(σ0)
		if err != nil {
			return nil, chk.Err("cannot initialise internal variables:\n%v", err)
		}
		if ori != nil {
			om, ok := o.Model.(msolid.Oriented)
			if !ok {
				return nil, chk.Err("material model cannot carry grain orientations")
			}
			// every integration point of this cell receives an identical copy
			if err = om.SetOri(o.States[i], ori); err != nil {
				return nil, chk.Err("cannot set grain orientation:\n%v", err)
			}
		}
		o.StatesBkp[i] = o.States[i].GetCopy()
	}

	// scratchpad. computed @ each ip
	nsig := msolid.NSIG
	o.fi = la.NewVector(o.Nu)
	o.fip = la.NewVector(o.Nu)
	o.K = la.NewMatrix(o.Nu, o.Nu)
	o.B = la.NewMatrix(nsig, o.Nu)
	o.D = la.NewMatrix(nsig, nsig)
	o.BtD = la.NewMatrix(o.Nu, nsig)
	o.ε = make([]float64, nsig)
	o.Δε = make([]float64, nsig)
	return
}

// Id returns the cell Id
func (o *ElemSolid) Id() int { return o.Cell.Id }

// SetEqs sets equations
func (o *ElemSolid) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < o.Shp.Nverts; m++ {
		for i := 0; i < o.Ndim; i++ {
			r := i + m*o.Ndim
			o.Umap[r] = eqs[m][i]
		}
	}
	return
}

// SetX refreshes the reference coordinates from the current configuration
// (updated-Lagrangian stepping)
func (o *ElemSolid) SetX(xcur [][]float64) {
	for m, v := range o.Cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			o.X[i][m] = xcur[v][i]
		}
	}
}

// AddToRhs adds -R to global residual vector fb
func (o *ElemSolid) AddToRhs(fb []float64, sol *Solution) (err error) {

	// clear fi vector
	o.fi.Fill(0)

	// for each integration point
	nverts := o.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// interpolation functions and gradients @ ip
		err = o.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}

		// internal forces
		coef := o.Shp.J * ip.W
		IpBmatrix(o.B, o.Ndim, nverts, o.Shp.G)
		la.MatTrVecMul(o.fip, coef, o.B, o.States[idx].Sig) // fip = coef * tr(B) * σ
		la.VecAdd(o.fi, 1, o.fi, 1, o.fip)
	}

	// assemble
	for i, I := range o.Umap {
		fb[I] -= o.fi[i]
	}
	return
}

// AddToKb adds the element stiffness K to the global Jacobian matrix Kb.
// The diagonal entries are also accumulated into diag for smoothing.
func (o *ElemSolid) AddToKb(Kb *la.Triplet, diag []float64, sol *Solution, firstIt bool) (err error) {

	// zero K matrix
	o.K.Fill(0)

	// for each integration point
	nverts := o.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// interpolation functions and gradients @ ip
		err = o.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}

		// check Jacobian
		if o.Shp.J < 0 {
			return chk.Err("ElemSolid: eid=%d: Jacobian is negative = %g\n", o.Id(), o.Shp.J)
		}

		// consistent tangent model matrix
		err = o.MdlSmall.CalcD(o.D, o.States[idx], firstIt)
		if err != nil {
			return
		}

		// add contribution to consistent tangent matrix
		coef := o.Shp.J * ip.W
		IpBmatrix(o.B, o.Ndim, nverts, o.Shp.G)
		la.MatTrMatMul(o.BtD, coef, o.B, o.D)  // BtD = coef * tr(B) * D
		la.MatMatMulAdd(o.K, 1, o.BtD, o.B)    // K += BtD * B
	}

	// add K to sparse matrix Kb
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, o.K.Get(i, j))
		}
		if diag != nil {
			diag[I] += o.K.Get(i, i)
		}
	}
	return
}

// Update performs the (tangent) update of internal variables
func (o *ElemSolid) Update(sol *Solution) (err error) {

	// for each integration point
	for idx, ip := range o.IpsElem {

		// interpolation functions and gradients
		err = o.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}

		// compute strains
		IpBmatrix(o.B, o.Ndim, o.Shp.Nverts, o.Shp.G)
		IpStrainsAndIncB(o.ε, o.Δε, msolid.NSIG, o.Nu, o.B, sol.Y, sol.ΔY, o.Umap)

		// call model update => update stresses
		err = o.MdlSmall.Update(o.States[idx], o.ε, o.Δε, o.Id(), idx, sol.T)
		if err != nil {
			return chk.Err("update failed (eid=%d, ip=%d)\nΔε=%v\n%v", o.Id(), idx, o.Δε, err)
		}
	}
	return
}

// BackupIvs creates a copy of all internal variables
func (o *ElemSolid) BackupIvs() {
	for i, s := range o.StatesBkp {
		s.Set(o.States[i])
	}
}

// RestoreIvs restores all internal variables from the copies
func (o *ElemSolid) RestoreIvs() {
	for i, s := range o.States {
		s.Set(o.StatesBkp[i])
	}
}

// CommitIvs accepts the end-of-step stresses as the new step reference
func (o *ElemSolid) CommitIvs() {
	for _, s := range o.States {
		s.Commit()
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// IpBmatrix computes the 3D B matrix relating nodal displacements to strains
// with engineering shear components (Voigt order 11,22,33,12,13,23)
func IpBmatrix(B *la.Matrix, ndim, nverts int, G *la.Matrix) {
	for m := 0; m < nverts; m++ {
		c := m * ndim
		B.Set(0, c, G.Get(m, 0))
		B.Set(0, c+1, 0)
		B.Set(0, c+2, 0)
		B.Set(1, c, 0)
		B.Set(1, c+1, G.Get(m, 1))
		B.Set(1, c+2, 0)
		B.Set(2, c, 0)
		B.Set(2, c+1, 0)
		B.Set(2, c+2, G.Get(m, 2))
		B.Set(3, c, G.Get(m, 1))
		B.Set(3, c+1, G.Get(m, 0))
		B.Set(3, c+2, 0)
		B.Set(4, c, G.Get(m, 2))
		B.Set(4, c+1, 0)
		B.Set(4, c+2, G.Get(m, 0))
		B.Set(5, c, 0)
		B.Set(5, c+1, G.Get(m, 2))
		B.Set(5, c+2, G.Get(m, 1))
	}
}

// IpStrainsAndIncB computes strains and strain increments @ an integration
// point using the B matrix
func IpStrainsAndIncB(ε, Δε []float64, nsig, nu int, B *la.Matrix, Y, ΔY []float64, umap []int) {
	for i := 0; i < nsig; i++ {
		ε[i], Δε[i] = 0, 0
		for j := 0; j < nu; j++ {
			r := umap[j]
			ε[i] += B.Get(i, j) * Y[r]
			Δε[i] += B.Get(i, j) * ΔY[r]
		}
	}
}

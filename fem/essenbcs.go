// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// EssentialBc holds information about one single-point constraint.
// Constraints are defined by means of:
//
//      A・y = c
//
//  The resulting Kb matrix will then have the following form:
//      _       _
//     |  K  At  | / δy \   / -R - At*λ \
//     |         | |    | = |           |
//     |_ A   0 _| \ δλ /   \  c - A*y  /
//         Kb       δyb          fb
//
type EssentialBc struct {
	Key   string    // DOF key such as "ux"
	Eqs   []int     // equation numbers
	ValsA []float64 // values for matrix A
	Fcn   dbf.T  // function that implements the "c" value in A・y = c
}

// EbcArray is an array of EssentialBc's
type EbcArray []*EssentialBc

// EssentialBcs implements a structure to record the definition of essential
// bcs / constraints. Each constraint has a unique Lagrange multiplier index.
type EssentialBcs struct {
	Bcs EbcArray     // active essential bcs / constraints
	A   la.Triplet   // matrix of coefficients 'A'
	Am  *la.CCMatrix // compressed form of A matrix
}

// Init initialises this structure
func (o *EssentialBcs) Init() {
	o.Bcs = make([]*EssentialBc, 0)
}

// Build builds the structures required for assembling the A matrix
//  nλ   -- number of constraints == number of Lagrange multipliers
//  nnzA -- number of non-zeros in matrix 'A'
func (o *EssentialBcs) Build(ny int) (nλ, nnzA int) {

	// skip if there are no constraints
	nλ = len(o.Bcs)
	if nλ == 0 {
		return
	}

	// sort bcs to make sure all processors will number Lagrange multipliers
	// in the same order
	sort.Sort(o.Bcs)

	// count number of non-zeros in matrix A
	for _, bc := range o.Bcs {
		nnzA += len(bc.ValsA)
	}

	// set matrix A
	o.A.Init(nλ, ny, nnzA)
	for i, bc := range o.Bcs {
		for j, eq := range bc.Eqs {
			o.A.Put(i, eq, bc.ValsA[j])
		}
	}
	o.Am = o.A.ToMatrix(nil)
	return
}

// AddToRhs adds the constraint terms to the augmented fb vector
func (o *EssentialBcs) AddToRhs(fb []float64, sol *Solution) {

	// skip if there are no constraints
	if len(o.Bcs) == 0 {
		return
	}

	// add -At*λ to fb
	la.SpMatTrVecMulAdd(fb, -1, o.Am, sol.L) // fb += -1 * At * λ

	// assemble -rc = c - A*y into fb
	ny := len(sol.Y)
	for i, bc := range o.Bcs {
		fb[ny+i] = bc.Fcn.F(sol.T, nil)
	}
	la.SpMatVecMulAdd(fb[ny:], -1, o.Am, sol.Y) // fb += -1 * A * y
}

// Set sets a single-point constraint for all given nodes
func (o *EssentialBcs) Set(key string, nodes []*Node, fcn dbf.T) {
	for _, nod := range nodes {
		if nod == nil {
			continue
		}
		d := nod.GetDof(key)
		if d == nil {
			continue
		}
		o.setEqs(key, []int{d.Eq}, []float64{1}, fcn)
	}
}

// List returns a simple list logging bcs at time t
func (o *EssentialBcs) List(t float64) (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%8s%8s%25s\n", "eq", "key", io.Sf("value @ t=%g", t))
	l += "------------------------------------------------------------------\n"
	sort.Sort(o.Bcs)
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8s%25.13f\n", bc.Eqs[0], bc.Key, bc.Fcn.F(t, nil))
	}
	l += "==================================================================\n"
	return
}

// setEqs sets/replaces one constraint
func (o *EssentialBcs) setEqs(key string, eqs []int, valsA []float64, fcn dbf.T) {

	// replace existent
	for _, eq := range eqs {
		for _, bc := range o.Bcs {
			for _, eqOld := range bc.Eqs {
				if eqOld == eq {
					bc.Key, bc.Eqs, bc.ValsA, bc.Fcn = key, eqs, valsA, fcn
					return
				}
			}
		}
	}

	// add new
	o.Bcs = append(o.Bcs, &EssentialBc{key, eqs, valsA, fcn})
}

// functions to implement the Sort interface
func (o EbcArray) Len() int      { return len(o) }
func (o EbcArray) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o EbcArray) Less(i, j int) bool {
	sort.Ints(o[i].Eqs)
	sort.Ints(o[j].Eqs)
	return o[i].Eqs[0] < o[j].Eqs[0]
}

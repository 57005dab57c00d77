// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/amfem/constit/inp"

// Dof holds information about one degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key; e.g. "ux"
	Eq  int    // equation number
}

// Node holds the vertex data and all DOFs of one active node
type Node struct {
	Vert *inp.Vert // pointer to vertex data
	Dofs []*Dof    // degrees-of-freedom == solution variables
}

// NewNode allocates a new node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new DOF if it does not exist yet and returns the next
// equation number
func (o *Node) AddDofAndEq(key string, eq int) int {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return eq
		}
	}
	o.Dofs = append(o.Dofs, &Dof{key, eq})
	return eq + 1
}

// GetDof returns the DOF with the given key; nil if not found
func (o *Node) GetDof(key string) *Dof {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof
		}
	}
	return nil
}

// GetEq returns the equation number of the DOF with the given key; -1 if
// not found
func (o *Node) GetEq(key string) int {
	if dof := o.GetDof(key); dof != nil {
		return dof.Eq
	}
	return -1
}

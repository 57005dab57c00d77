// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// NSIG is the number of stress components in 3D Voigt notation
const NSIG = 6

// Im is the identity tensor in Voigt notation
var Im = []float64{1, 1, 1, 0, 0, 0}

// Tr returns the trace of a symmetric tensor in Voigt notation
func Tr(a []float64) float64 {
	return a[0] + a[1] + a[2]
}

// Dev computes the deviator of a symmetric tensor in Voigt notation.
// Shear components pass through unchanged; works for stresses and for
// strains with engineering shear alike. Returns the trace.
func Dev(s, a []float64) (tra float64) {
	tra = Tr(a)
	for i := 0; i < 3; i++ {
		s[i] = a[i] - tra/3.0
	}
	for i := 3; i < NSIG; i++ {
		s[i] = a[i]
	}
	return
}

// Qdev returns the von Mises equivalent stress q = sqrt(3/2 s:s) given the
// deviatoric stress s in Voigt notation (shear stored once)
func Qdev(s []float64) float64 {
	ss := s[0]*s[0] + s[1]*s[1] + s[2]*s[2] + 2.0*(s[3]*s[3]+s[4]*s[4]+s[5]*s[5])
	return math.Sqrt(1.5 * ss)
}

// IsotropicD fills D with the isotropic elastic tangent relating stress to
// strain with engineering shear components
//  D = bulk I⊗I + 2 shear Idev
func IsotropicD(D *la.Matrix, bulk, shear float64) {
	lam := bulk - 2.0*shear/3.0
	D.Fill(0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D.Set(i, j, lam)
		}
		D.Add(i, i, 2.0*shear)
	}
	for i := 3; i < NSIG; i++ {
		D.Set(i, i, shear)
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/la"

// shape function of hex8
//
//             4________________7
//           ,'|              ,'|
//         ,'  |            ,'  |
//       ,'    |          ,'    |
//     ,'      |        ,'      |
//   5'===============6'        |
//   |         |      |         |
//   |         |      |         |
//   |         0______|_________3
//   |       ,'       |       ,'
//   |     ,'         |     ,'
//   |   ,'           |   ,'
//   | ,'             | ,'
//   1________________2'
//
func Hex8(S []float64, dSdR *la.Matrix, r []float64, derivs bool) {
	nat := hex8nat
	for m := 0; m < 8; m++ {
		rm, sm, tm := nat[0][m], nat[1][m], nat[2][m]
		S[m] = (1.0 + r[0]*rm) * (1.0 + r[1]*sm) * (1.0 + r[2]*tm) / 8.0
		if derivs {
			dSdR.Set(m, 0, rm * (1.0 + r[1]*sm) * (1.0 + r[2]*tm) / 8.0)
			dSdR.Set(m, 1, sm * (1.0 + r[0]*rm) * (1.0 + r[2]*tm) / 8.0)
			dSdR.Set(m, 2, tm * (1.0 + r[0]*rm) * (1.0 + r[1]*sm) / 8.0)
		}
	}
}

var hex8nat = [][]float64{
	{-1, 1, 1, -1, -1, 1, 1, -1},
	{-1, -1, 1, 1, -1, -1, 1, 1},
	{-1, -1, -1, -1, 1, 1, 1, 1},
}

var hex8faces = [][]int{
	{0, 4, 7, 3},
	{1, 2, 6, 5},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 3, 2, 1},
	{4, 5, 6, 7},
}

// Hex8EdgeLocalVerts maps local edge id => pair of local vertices
var Hex8EdgeLocalVerts = [][]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func init() {
	register("hex8", 8, 12, Hex8, hex8faces, hex8nat)
}

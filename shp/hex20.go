// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/la"

// shape function of hex20 (serendipity)
//
//              4_______15_______7
//            ,'|              ,'|
//         12'  |           14'  |
//        ,'   16          ,'   19
//      ,'      |        ,'      |
//    5'=====13========6'        |
//    |         |      |         |
//    |         |      |         |
//    |         0___11_|_________3
//   17       ,'      18       ,'
//    |     8'         |     10
//    |   ,'           |   ,'
//    | ,'             | ,'
//    1________9_______2'
//
func Hex20(S []float64, dSdR *la.Matrix, r []float64, derivs bool) {
	nat := hex20nat
	for m := 0; m < 20; m++ {
		rm, sm, tm := nat[0][m], nat[1][m], nat[2][m]
		switch {
		case rm == 0: // mid-edge node along r
			S[m] = (1.0 - r[0]*r[0]) * (1.0 + r[1]*sm) * (1.0 + r[2]*tm) / 4.0
			if derivs {
				dSdR.Set(m, 0, -2.0 * r[0] * (1.0 + r[1]*sm) * (1.0 + r[2]*tm) / 4.0)
				dSdR.Set(m, 1, sm * (1.0 - r[0]*r[0]) * (1.0 + r[2]*tm) / 4.0)
				dSdR.Set(m, 2, tm * (1.0 - r[0]*r[0]) * (1.0 + r[1]*sm) / 4.0)
			}
		case sm == 0: // mid-edge node along s
			S[m] = (1.0 - r[1]*r[1]) * (1.0 + r[0]*rm) * (1.0 + r[2]*tm) / 4.0
			if derivs {
				dSdR.Set(m, 0, rm * (1.0 - r[1]*r[1]) * (1.0 + r[2]*tm) / 4.0)
				dSdR.Set(m, 1, -2.0 * r[1] * (1.0 + r[0]*rm) * (1.0 + r[2]*tm) / 4.0)
				dSdR.Set(m, 2, tm * (1.0 - r[1]*r[1]) * (1.0 + r[0]*rm) / 4.0)
			}
		case tm == 0: // mid-edge node along t
			S[m] = (1.0 - r[2]*r[2]) * (1.0 + r[0]*rm) * (1.0 + r[1]*sm) / 4.0
			if derivs {
				dSdR.Set(m, 0, rm * (1.0 - r[2]*r[2]) * (1.0 + r[1]*sm) / 4.0)
				dSdR.Set(m, 1, sm * (1.0 - r[2]*r[2]) * (1.0 + r[0]*rm) / 4.0)
				dSdR.Set(m, 2, -2.0 * r[2] * (1.0 + r[0]*rm) * (1.0 + r[1]*sm) / 4.0)
			}
		default: // corner node
			f := r[0]*rm + r[1]*sm + r[2]*tm
			S[m] = (1.0 + r[0]*rm) * (1.0 + r[1]*sm) * (1.0 + r[2]*tm) * (f - 2.0) / 8.0
			if derivs {
				dSdR.Set(m, 0, rm * (1.0 + r[1]*sm) * (1.0 + r[2]*tm) * (f - 1.0 + r[0]*rm) / 8.0)
				dSdR.Set(m, 1, sm * (1.0 + r[0]*rm) * (1.0 + r[2]*tm) * (f - 1.0 + r[1]*sm) / 8.0)
				dSdR.Set(m, 2, tm * (1.0 + r[0]*rm) * (1.0 + r[1]*sm) * (f - 1.0 + r[2]*tm) / 8.0)
			}
		}
	}
}

var hex20nat = [][]float64{
	{-1, 1, 1, -1, -1, 1, 1, -1, 0, 1, 0, -1, 0, 1, 0, -1, -1, 1, 1, -1},
	{-1, -1, 1, 1, -1, -1, 1, 1, -1, 0, 1, 0, -1, 0, 1, 0, -1, -1, 1, 1},
	{-1, -1, -1, -1, 1, 1, 1, 1, -1, -1, -1, -1, 1, 1, 1, 1, 0, 0, 0, 0},
}

var hex20faces = [][]int{
	{0, 4, 7, 3, 16, 15, 19, 11},
	{1, 2, 6, 5, 9, 18, 13, 17},
	{0, 1, 5, 4, 8, 17, 12, 16},
	{2, 3, 7, 6, 10, 19, 14, 18},
	{0, 3, 2, 1, 11, 10, 9, 8},
	{4, 5, 6, 7, 12, 13, 14, 15},
}

func init() {
	register("hex20", 20, 25, Hex20, hex20faces, hex20nat)
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// checkShape checks the delta property and the partition of unity
func checkShape(tst *testing.T, geoType string, tolS float64) {
	o := Get(geoType, 0)
	if o == nil {
		tst.Errorf("cannot get %q shape\n", geoType)
		return
	}
	r := make([]float64, 3)

	// shape functions must be 1 at that vertex and 0 at all others
	for n := 0; n < o.Nverts; n++ {
		r[0], r[1], r[2] = o.NatCoords[0][n], o.NatCoords[1][n], o.NatCoords[2][n]
		o.Func(o.S, o.DSdR, r, false)
		for m := 0; m < o.Nverts; m++ {
			var expected float64
			if m == n {
				expected = 1.0
			}
			if math.Abs(o.S[m]-expected) > tolS {
				tst.Errorf("%s: S[%d] at vertex %d is incorrect: %g\n", geoType, m, n, o.S[m])
				return
			}
		}
	}

	// partition of unity at interior points
	for _, rv := range [][]float64{{0, 0, 0}, {0.25, -0.5, 0.75}, {-0.9, 0.3, 0.1}} {
		o.Func(o.S, o.DSdR, rv, false)
		sum := 0.0
		for m := 0; m < o.Nverts; m++ {
			sum += o.S[m]
		}
		chk.Float64(tst, io.Sf("%s: sum(S) @ %v", geoType, rv), 1e-14, sum, 1.0)
	}
}

// checkDerivs compares analytical dSdR against central finite differences
func checkDerivs(tst *testing.T, geoType string, tol float64) {
	o := Get(geoType, 0)
	h := 1e-6
	r := []float64{0.15, -0.35, 0.55}
	o.Func(o.S, o.DSdR, r, true)
	dana := make([][]float64, o.Nverts)
	for m := 0; m < o.Nverts; m++ {
		dana[m] = []float64{o.DSdR.Get(m, 0), o.DSdR.Get(m, 1), o.DSdR.Get(m, 2)}
	}
	Splus := make([]float64, o.Nverts)
	Sminus := make([]float64, o.Nverts)
	for j := 0; j < 3; j++ {
		rj := r[j]
		r[j] = rj + h
		o.Func(Splus, o.DSdR, r, false)
		r[j] = rj - h
		o.Func(Sminus, o.DSdR, r, false)
		r[j] = rj
		for m := 0; m < o.Nverts; m++ {
			dnum := (Splus[m] - Sminus[m]) / (2.0 * h)
			if math.Abs(dana[m][j]-dnum) > tol {
				tst.Errorf("%s: dS%d/dR%d: %g != %g\n", geoType, m, j, dana[m][j], dnum)
				return
			}
		}
	}
}

func Test_hex8a(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hex8a. shape and derivatives")

	checkShape(tst, "hex8", 1e-15)
	checkDerivs(tst, "hex8", 1e-9)
}

func Test_hex20a(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hex20a. shape and derivatives")

	checkShape(tst, "hex20", 1e-15)
	checkDerivs(tst, "hex20", 1e-9)
}

func Test_ips01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips01. Gauss rules")

	// weights must add up to the volume of the reference hexahedron
	for _, n := range []int{1, 2, 3, 4, 5} {
		ips, err := GaussRule(n)
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		chk.IntAssert(len(ips), n*n*n)
		sum := 0.0
		for _, ip := range ips {
			sum += ip.W
		}
		chk.Float64(tst, io.Sf("sum(W) n=%d", n), 1e-13, sum, 8.0)
	}

	// a rule with n points per direction integrates r^(2n-1) s t exactly (zero)
	// and r^(2n-2) exactly
	for _, n := range []int{2, 3, 4} {
		ips, _ := GaussRule(n)
		deg := 2*n - 2
		num := 0.0
		for _, ip := range ips {
			num += ip.W * math.Pow(ip.R, float64(deg))
		}
		ana := 8.0 / float64(deg+1) // ∫r^deg over [-1,1]^3 = 2/(deg+1) * 4
		chk.Float64(tst, io.Sf("∫r^%d n=%d", deg, n), 1e-13, num, ana)
	}
}

func Test_ips02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips02. rule selection by degree")

	for _, pair := range [][]int{{1, 8}, {3, 8}, {5, 27}, {7, 64}, {9, 125}} {
		ips, err := IpsByDegree("hex8", pair[0])
		if err != nil {
			tst.Errorf("%v\n", err)
			return
		}
		chk.IntAssert(len(ips), pair[1])
	}
	_, err := IpsByDegree("tet4", 3)
	if err == nil {
		tst.Errorf("error expected for unknown geometry\n")
		return
	}
}

func Test_jacobian01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacobian01. distorted hex8")

	// coordinates matrix [ndim][nverts] of a stretched cube: 2 x 3 x 4
	x := [][]float64{
		{0, 2, 2, 0, 0, 2, 2, 0},
		{0, 0, 3, 3, 0, 0, 3, 3},
		{0, 0, 0, 0, 4, 4, 4, 4},
	}
	o := Get("hex8", 0)
	ips, _ := GetIps("hex8", 8)
	vol := 0.0
	for _, ip := range ips {
		err := o.CalcAtIp(x, ip, true)
		if err != nil {
			tst.Errorf("CalcAtIp failed: %v\n", err)
			return
		}
		vol += o.J * ip.W
	}
	chk.Float64(tst, "volume", 1e-13, vol, 24.0)
}

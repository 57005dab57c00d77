// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_gmres01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gmres01. small symmetric positive-definite system")

	a := [][]float64{
		{4, 1, 0, 0},
		{1, 5, 1, 0},
		{0, 1, 6, 1},
		{0, 0, 1, 7},
	}
	xref := []float64{1, -2, 3, -4}
	b := make([]float64, 4)
	denseMatVec(a)(b, xref)

	x := make([]float64, 4)
	iters, err := Gmres(x, b, denseMatVec(a), nil, 1e-12, 100)
	if err != nil {
		tst.Errorf("Gmres failed:\n%v", err)
		return
	}
	if iters > 100 {
		tst.Errorf("too many iterations: %d", iters)
		return
	}
	chk.Array(tst, "x", 1e-10, x, xref)
}

func Test_gmres02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gmres02. nonsymmetric system with diagonal smoothing")

	a := [][]float64{
		{10, 1, 0, 2, 0},
		{0, 8, -1, 0, 1},
		{1, 0, 12, 0, 0},
		{0, -2, 0, 9, 1},
		{3, 0, 0, 1, 11},
	}
	xref := []float64{0.5, -1.5, 2.5, -3.5, 4.5}
	b := make([]float64, 5)
	denseMatVec(a)(b, xref)

	diag := []float64{10, 8, 12, 9, 11}
	smoother, err := NewJacobi(diag)
	if err != nil {
		tst.Errorf("NewJacobi failed:\n%v", err)
		return
	}

	x := make([]float64, 5)
	_, err = Gmres(x, b, denseMatVec(a), smoother, 1e-12, 100)
	if err != nil {
		tst.Errorf("Gmres failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-10, x, xref)
}

func Test_minres01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("minres01. symmetric indefinite saddle-point system")

	// [ K  a ] with K spd and one multiplier row
	// [ aᵀ 0 ]
	a := [][]float64{
		{4, 1, 0, 1},
		{1, 3, 1, 0},
		{0, 1, 5, 0},
		{1, 0, 0, 0},
	}
	xref := []float64{2, -1, 0.5, 3}
	b := make([]float64, 4)
	denseMatVec(a)(b, xref)

	smoother, err := NewJacobi([]float64{4, 3, 5, 1})
	if err != nil {
		tst.Errorf("NewJacobi failed:\n%v", err)
		return
	}

	x := make([]float64, 4)
	_, err = Minres(x, b, denseMatVec(a), smoother, 1e-12, 200)
	if err != nil {
		tst.Errorf("Minres failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-9, x, xref)
}

func Test_jacobi01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jacobi01. zero diagonal entry is refused")

	_, err := NewJacobi([]float64{1, 0, 2})
	if err == nil {
		tst.Errorf("NewJacobi must fail on zero diagonal entries")
	}
}

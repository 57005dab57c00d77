// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines for 3D hexahedral cells
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR *la.Matrix, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "hex8"
	Func           ShpFunc     // shape/derivs callback function
	Gndim          int         // geometry dimension
	Nverts         int         // number of vertices in cell
	VtkCode        int         // VTK code
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64  // [nverts] shape functions
	G    *la.Matrix // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64    // Jacobian: determinant of dxdR
	DSdR *la.Matrix // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR *la.Matrix // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx *la.Matrix // [gndim][gndim] DRdx == inverse(DxdR)

	// scratchpad: natural coordinates of integration point
	rst []float64 // [3]
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	var p Shape
	p.Type = o.Type
	p.Func = o.Func
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.VtkCode = o.VtkCode
	p.FaceLocalVerts = utl.IntClone(o.FaceLocalVerts)
	p.NatCoords = utl.Clone(o.NatCoords)
	p.S = la.Vector(o.S).GetCopy()
	p.G = o.G.GetCopy()
	p.J = o.J
	p.DSdR = o.DSdR.GetCopy()
	p.DxdR = o.DxdR.GetCopy()
	p.DRdx = o.DRdx.GetCopy()
	p.rst = la.Vector(o.rst).GetCopy()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// GetNverts returns the number of vertices of a geometry type
//  Note: returns -1 on errors
func GetNverts(geoType string) int {
	s, ok := factory[geoType]
	if !ok {
		return -1
	}
	return s.Nverts
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.rst[0], o.rst[1], o.rst[2] = ip.R, ip.S, ip.T
	o.Func(o.S, o.DSdR, o.rst, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at the integration point natural coordinates
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.rst[0], o.rst[1], o.rst[2] = ip.R, ip.S, ip.T
	o.Func(o.S, o.DSdR, o.rst, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			dd := 0.0
			for n := 0; n < o.Nverts; n++ {
				dd += x[i][n] * o.DSdR.Get(n, j)
			}
			o.DxdR.Set(i, j, dd)
		}
	}

	// check determinant before inverting; MatInvSmall panics on |det| < tol
	o.J = o.DxdR.Get(0, 0)*(o.DxdR.Get(1, 1)*o.DxdR.Get(2, 2)-o.DxdR.Get(1, 2)*o.DxdR.Get(2, 1)) -
		o.DxdR.Get(0, 1)*(o.DxdR.Get(1, 0)*o.DxdR.Get(2, 2)-o.DxdR.Get(1, 2)*o.DxdR.Get(2, 0)) +
		o.DxdR.Get(0, 2)*(o.DxdR.Get(1, 0)*o.DxdR.Get(2, 1)-o.DxdR.Get(1, 1)*o.DxdR.Get(2, 0))
	if o.J < MINDET {
		return chk.Err("cannot invert dxdR matrix: det(dxdR)=%g is too small or negative", o.J)
	}

	// dRdx := inv(dxdR)
	la.MatInvSmall(o.DRdx, o.DxdR, MINDET)

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	la.MatMatMul(o.G, 1, o.DSdR, o.DRdx)
	return
}

// CalcAtR calculates volume data such as S and G at natural coordinates r
func (o *Shape) CalcAtR(x [][]float64, r []float64, derivs bool) (err error) {
	return o.CalcAtIp(x, Ipoint{r[0], r[1], r[2], 0}, derivs)
}

// register registers a new shape in the factory
func register(geoType string, nverts, vtkCode int, fcn ShpFunc, faceLocalVerts [][]int, natCoords [][]float64) {
	if _, ok := factory[geoType]; ok {
		chk.Panic("shape %q already registered", geoType)
	}
	gndim := 3
	factory[geoType] = &Shape{
		Type:           geoType,
		Func:           fcn,
		Gndim:          gndim,
		Nverts:         nverts,
		VtkCode:        vtkCode,
		FaceLocalVerts: faceLocalVerts,
		NatCoords:      natCoords,
		S:              make([]float64, nverts),
		G:              la.NewMatrix(nverts, gndim),
		DSdR:           la.NewMatrix(nverts, gndim),
		DxdR:           la.NewMatrix(gndim, gndim),
		DRdx:           la.NewMatrix(gndim, gndim),
		rst:            make([]float64, 3),
	}
}

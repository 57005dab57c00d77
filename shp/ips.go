// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/chk"

// Ipoint holds the natural coordinates and weight of an integration point
type Ipoint struct {
	R, S, T float64 // natural coordinates
	W       float64 // weight
}

// gauss1d holds 1D Gauss-Legendre coordinates and weights, per number of points
var gauss1d = map[int][][]float64{
	1: {
		{0.0, 2.0},
	},
	2: {
		{-0.5773502691896258, 1.0},
		{+0.5773502691896258, 1.0},
	},
	3: {
		{-0.7745966692414834, 0.5555555555555556},
		{0.0, 0.8888888888888888},
		{+0.7745966692414834, 0.5555555555555556},
	},
	4: {
		{-0.8611363115940526, 0.3478548451374538},
		{-0.3399810435848563, 0.6521451548625461},
		{+0.3399810435848563, 0.6521451548625461},
		{+0.8611363115940526, 0.3478548451374538},
	},
	5: {
		{-0.9061798459386640, 0.2369268850561891},
		{-0.5384693101056831, 0.4786286704993665},
		{0.0, 0.5688888888888889},
		{+0.5384693101056831, 0.4786286704993665},
		{+0.9061798459386640, 0.2369268850561891},
	},
}

// GaussRule returns the tensor-product Gauss rule over the hexahedron with
// npts1d points per direction
func GaussRule(npts1d int) (ips []Ipoint, err error) {
	pts, ok := gauss1d[npts1d]
	if !ok {
		return nil, chk.Err("Gauss rule with %d points per direction is not available", npts1d)
	}
	ips = make([]Ipoint, 0, npts1d*npts1d*npts1d)
	for _, pt := range pts {
		for _, ps := range pts {
			for _, pr := range pts {
				ips = append(ips, Ipoint{pr[0], ps[0], pt[0], pr[1] * ps[1] * pt[1]})
			}
		}
	}
	return
}

// GetIps returns the integration points of a hexahedral cell with nip points in total.
// nip == 0 selects the default rule (8 points).
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	switch geoType {
	case "hex8", "hex20":
	default:
		return nil, chk.Err("geometry type %q is not available", geoType)
	}
	if nip == 0 {
		nip = 8
	}
	switch nip {
	case 1:
		return GaussRule(1)
	case 8:
		return GaussRule(2)
	case 27:
		return GaussRule(3)
	case 64:
		return GaussRule(4)
	case 125:
		return GaussRule(5)
	}
	return nil, chk.Err("cannot get %d integration points for %q", nip, geoType)
}

// IpsByDegree returns the smallest Gauss rule integrating polynomials of the
// given total degree exactly over the hexahedron
func IpsByDegree(geoType string, degree int) (ips []Ipoint, err error) {
	switch geoType {
	case "hex8", "hex20":
	default:
		return nil, chk.Err("geometry type %q is not available", geoType)
	}
	if degree < 0 {
		return nil, chk.Err("invalid integration degree %d", degree)
	}
	npts1d := (degree + 2) / 2 // a rule with n points is exact up to degree 2n-1
	if npts1d < 1 {
		npts1d = 1
	}
	return GaussRule(npts1d)
}

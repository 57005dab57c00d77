// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// GrainTable holds the per-grain lattice orientations. Row g holds the
// ncomp orientation values of grain g.
type GrainTable struct {
	Ncomp   int       // number of orientation components per grain
	Ngrains int       // number of grains
	Data    []float64 // orientation values, row-major [ngrains*ncomp]
}

// ReadGrainFile reads whitespace-separated orientation values. The file
// must contain at least ncomp*ngrains values; extra values are ignored.
func ReadGrainFile(fn string, ncomp, ngrains int) (o *GrainTable, err error) {
	if ncomp < 1 || ngrains < 1 {
		return nil, chk.Err("grain table needs positive sizes. ncomp=%d ngrains=%d is incorrect", ncomp, ngrains)
	}
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open grain orientation file:\n%v", err)
	}
	defer fil.Close()

	o = &GrainTable{Ncomp: ncomp, Ngrains: ngrains}
	need := ncomp * ngrains
	io.ReadLinesFile(fil, func(idx int, line string) (stop bool) {
		for _, field := range strings.Fields(line) {
			o.Data = append(o.Data, io.Atof(field))
			if len(o.Data) == need {
				return true
			}
		}
		return false
	})
	if len(o.Data) < need {
		return nil, chk.Err("grain orientation file %q has %d values; needs %d (ncomp=%d × ngrains=%d)",
			fn, len(o.Data), need, ncomp, ngrains)
	}
	return
}

// UniformGrainTable replicates one orientation vector over all grains
func UniformGrainTable(vec []float64, ngrains int) (o *GrainTable, err error) {
	if len(vec) < 1 || ngrains < 1 {
		return nil, chk.Err("uniform grain table needs an orientation vector and ngrains >= 1")
	}
	o = &GrainTable{Ncomp: len(vec), Ngrains: ngrains}
	o.Data = make([]float64, 0, len(vec)*ngrains)
	for g := 0; g < ngrains; g++ {
		o.Data = append(o.Data, vec...)
	}
	return
}

// Orientation returns the orientation of grain g. The slice aliases the
// table; callers must copy before mutating.
func (o *GrainTable) Orientation(g int) ([]float64, error) {
	if g < 0 || g >= o.Ngrains {
		return nil, chk.Err("grain index %d is out of range [0,%d)", g, o.Ngrains)
	}
	return o.Data[g*o.Ncomp : (g+1)*o.Ncomp], nil
}

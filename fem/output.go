// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"

	goio "io"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enc string) Encoder {
	if enc == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enc string) Decoder {
	if enc == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// MeshSnapshot holds the deformed configuration written after each step
type MeshSnapshot struct {
	Time   float64     // current time
	Ndim   int         // space dimension
	Coords [][]float64 // [nverts][ndim] current nodal coordinates
	Cells  [][]int     // [ncells][nverts] connectivity
	Types  []string    // [ncells] cell types
}

// DeformationSnapshot holds the step-displacement field written after each step
type DeformationSnapshot struct {
	Time float64   // current time
	U    []float64 // displacements ordered by equation number
}

// SnapshotWriter writes the state of the domain after each accepted step
type SnapshotWriter interface {
	WriteStep(step int, dom *Domain) error
}

// FileWriter writes one mesh and one deformation file per processor per
// step, named mesh.%06d_%d and deformation.%06d_%d (processor, step)
type FileWriter struct {
	DirOut string // output directory
	Enc    string // encoder name; e.g. "gob" or "json"
	Proc   int    // this processor number
}

// NewFileWriter allocates a file writer, creating the output directory
func NewFileWriter(dirout, enc string, proc int) (o *FileWriter, err error) {
	if err = os.MkdirAll(dirout, 0777); err != nil {
		return nil, chk.Err("cannot create output directory %q:\n%v", dirout, err)
	}
	return &FileWriter{DirOut: dirout, Enc: enc, Proc: proc}, nil
}

// WriteStep writes the snapshot files of one accepted step
func (o *FileWriter) WriteStep(step int, dom *Domain) (err error) {

	// deformed mesh
	msnap := MeshSnapshot{
		Time:   dom.Sol.T,
		Ndim:   dom.Msh.Ndim,
		Coords: dom.XCur,
		Cells:  make([][]int, len(dom.Msh.Cells)),
		Types:  make([]string, len(dom.Msh.Cells)),
	}
	for i, c := range dom.Msh.Cells {
		msnap.Cells[i] = c.Verts
		msnap.Types[i] = c.Type
	}
	// mesh snapshots are always json so external tools can read them
	fn := filepath.Join(o.DirOut, io.Sf("mesh.%06d_%d", o.Proc, step))
	if err = o.save(fn, &msnap, "json"); err != nil {
		return
	}

	// step displacements
	dsnap := DeformationSnapshot{Time: dom.Sol.T, U: dom.Deformation()}
	fn = filepath.Join(o.DirOut, io.Sf("deformation.%06d_%d", o.Proc, step))
	return o.save(fn, &dsnap, o.Enc)
}

// save encodes e into the named file
func (o *FileWriter) save(fn string, e interface{}, enc string) (err error) {
	var buf bytes.Buffer
	if err = GetEncoder(&buf, enc).Encode(e); err != nil {
		return chk.Err("cannot encode %q:\n%v", fn, err)
	}
	io.WriteFile(fn, &buf)
	return
}

// ReadDeformation reads back an encoded deformation snapshot
func ReadDeformation(fn, enc string) (snap *DeformationSnapshot, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open deformation file:\n%v", err)
	}
	defer f.Close()
	snap = new(DeformationSnapshot)
	if err = GetDecoder(f, enc).Decode(snap); err != nil {
		return nil, chk.Err("cannot decode %q:\n%v", fn, err)
	}
	return
}

// ReadMeshSnapshot reads back an encoded mesh snapshot
func ReadMeshSnapshot(fn, enc string) (snap *MeshSnapshot, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open mesh file:\n%v", err)
	}
	defer f.Close()
	snap = new(MeshSnapshot)
	if err = GetDecoder(f, enc).Decode(snap); err != nil {
		return nil, chk.Err("cannot decode %q:\n%v", fn, err)
	}
	return
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/amfem/constit/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type; e.g. "hex8"
	Part  int    // partition id
	Atr   int    // attribute; indexes the grain-orientation table
	Verts []int  // vertices
	FTags []int  // face tags (6 faces)

	// derived
	Shp *shp.Shape // shape structure
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from file
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert    // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell    // cell tag => set of cells
	FaceTag2verts map[int][]int      // face tag => vertices on tagged faces
	Ctype2cells   map[string][]*Cell // cell type => set of cells
	Part2cells    map[int][]*Cell    // partition number => set of cells
}

// CalcDerived computes the derived data of a mesh. Must be called after the
// Verts and Cells slices change.
func (o *Mesh) CalcDerived(goroutineId int) (err error) {

	// check
	if len(o.Verts) < 4 {
		return chk.Err("mesh has less than 4 vertices")
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh has no cells")
	}

	// vertex related derived data
	o.Ndim = 3
	o.Xmin, o.Ymin, o.Zmin = o.Verts[0].C[0], o.Verts[0].C[1], o.Verts[0].C[2]
	o.Xmax, o.Ymax, o.Zmax = o.Xmin, o.Ymin, o.Zmin
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertex ids must coincide with the position in the list. %d != %d", v.Id, i)
		}
		if len(v.C) != 3 {
			return chk.Err("vertex %d does not have 3 coordinates", v.Id)
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		o.Xmin, o.Xmax = utl.Min(o.Xmin, v.C[0]), utl.Max(o.Xmax, v.C[0])
		o.Ymin, o.Ymax = utl.Min(o.Ymin, v.C[1]), utl.Max(o.Ymax, v.C[1])
		o.Zmin, o.Zmax = utl.Min(o.Zmin, v.C[2]), utl.Max(o.Zmax, v.C[2])
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2verts = make(map[int][]int)
	o.Ctype2cells = make(map[string][]*Cell)
	o.Part2cells = make(map[int][]*Cell)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cell ids must coincide with the position in the list. %d != %d", c.Id, i)
		}
		c.Shp = shp.Get(c.Type, goroutineId)
		if c.Shp == nil {
			return chk.Err("cannot allocate shape structure for cell type %q", c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d (%s) needs %d vertices; has %d", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		if c.Atr < 0 {
			return chk.Err("cell %d has negative attribute %d", c.Id, c.Atr)
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		o.Ctype2cells[c.Type] = append(o.Ctype2cells[c.Type], c)
		o.Part2cells[c.Part] = append(o.Part2cells[c.Part], c)
		if len(c.FTags) > 0 {
			if len(c.FTags) != len(c.Shp.FaceLocalVerts) {
				return chk.Err("cell %d has %d face tags; needs %d", c.Id, len(c.FTags), len(c.Shp.FaceLocalVerts))
			}
			for f, ftag := range c.FTags {
				if ftag < 0 {
					for _, l := range c.Shp.FaceLocalVerts[f] {
						utl.IntIntsMapAppend(o.FaceTag2verts, ftag, o.Verts[c.Verts[l]].Id)
					}
				}
			}
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = utl.IntUnique(verts)
	}
	return
}

// ReadMsh reads a JSON mesh file for FE analyses
func ReadMsh(fn string, goroutineId int) (o *Mesh, err error) {
	o = new(Mesh)
	o.FnamePath = fn
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read mesh file:\n%v", err)
	}
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse mesh file %q:\n%v", fn, err)
	}
	if err = o.CalcDerived(goroutineId); err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", fn, err)
	}
	return
}

// ReadTextMesh reads a mesh in the structured text format:
//
//   nverts ncells
//   id tag x y z                              (nverts lines)
//   id tag atr part v0 ... v7 f0 ... f5       (ncells lines)
//
// Only hex8 cells are supported by this format.
func ReadTextMesh(fn string, goroutineId int) (o *Mesh, err error) {
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open text mesh file:\n%v", err)
	}
	defer fil.Close()

	o = new(Mesh)
	o.FnamePath = fn
	var nverts, ncells int
	header := false
	io.ReadLinesFile(fil, func(idx int, line string) (stop bool) {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0][0] == '#' {
			return false
		}
		switch {
		case !header:
			if len(fields) != 2 {
				err = chk.Err("text mesh file %q: line %d: header must have 2 values", fn, idx)
				return true
			}
			nverts, ncells = io.Atoi(fields[0]), io.Atoi(fields[1])
			header = true
		case len(o.Verts) < nverts:
			if len(fields) != 5 {
				err = chk.Err("text mesh file %q: line %d: vertex line must have 5 values", fn, idx)
				return true
			}
			o.Verts = append(o.Verts, &Vert{
				Id:  io.Atoi(fields[0]),
				Tag: io.Atoi(fields[1]),
				C:   []float64{io.Atof(fields[2]), io.Atof(fields[3]), io.Atof(fields[4])},
			})
		case len(o.Cells) < ncells:
			if len(fields) != 18 {
				err = chk.Err("text mesh file %q: line %d: cell line must have 18 values", fn, idx)
				return true
			}
			c := &Cell{
				Id:   io.Atoi(fields[0]),
				Tag:  io.Atoi(fields[1]),
				Atr:  io.Atoi(fields[2]),
				Part: io.Atoi(fields[3]),
				Type: "hex8",
			}
			for i := 0; i < 8; i++ {
				c.Verts = append(c.Verts, io.Atoi(fields[4+i]))
			}
			for i := 0; i < 6; i++ {
				c.FTags = append(c.FTags, io.Atoi(fields[12+i]))
			}
			o.Cells = append(o.Cells, c)
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if len(o.Verts) != nverts || len(o.Cells) != ncells {
		return nil, chk.Err("text mesh file %q is truncated: %d/%d vertices, %d/%d cells",
			fn, len(o.Verts), nverts, len(o.Cells), ncells)
	}
	if err = o.CalcDerived(goroutineId); err != nil {
		return nil, chk.Err("text mesh file %q is invalid:\n%v", fn, err)
	}
	return
}

// UnitCubeGrid generates a structured hex8 grid over the unit cube with
// nx × ny × nz cells. The bottom face (z=0) receives fixTag and the top
// face (z=1) rampTag; cell attributes cycle over natr values.
func UnitCubeGrid(nx, ny, nz, fixTag, rampTag, natr int) (o *Mesh, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, chk.Err("grid divisions must be positive. %d×%d×%d is incorrect", nx, ny, nz)
	}
	if natr < 1 {
		natr = 1
	}
	o = new(Mesh)

	// vertices
	nxv, nyv := nx+1, ny+1
	vid := func(i, j, k int) int { return i + j*nxv + k*nxv*nyv }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				o.Verts = append(o.Verts, &Vert{
					Id: vid(i, j, k),
					C:  []float64{float64(i) / float64(nx), float64(j) / float64(ny), float64(k) / float64(nz)},
				})
			}
		}
	}

	// cells
	cid := 0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := &Cell{
					Id:   cid,
					Type: "hex8",
					Atr:  cid % natr,
					Verts: []int{
						vid(i, j, k), vid(i+1, j, k), vid(i+1, j+1, k), vid(i, j+1, k),
						vid(i, j, k+1), vid(i+1, j, k+1), vid(i+1, j+1, k+1), vid(i, j+1, k+1),
					},
					FTags: make([]int, 6),
				}
				if k == 0 {
					c.FTags[4] = fixTag // z=0 face
				}
				if k == nz-1 {
					c.FTags[5] = rampTag // z=1 face
				}
				o.Cells = append(o.Cells, c)
				cid++
			}
		}
	}
	err = o.CalcDerived(0)
	return
}

// PartitionLinear assigns cells to nproc partitions in contiguous blocks
func (o *Mesh) PartitionLinear(nproc int) (err error) {
	if nproc < 1 {
		return chk.Err("number of processors must be positive. %d is incorrect", nproc)
	}
	if nproc > len(o.Cells) {
		return chk.Err("more processors (%d) than cells (%d)", nproc, len(o.Cells))
	}
	for i, c := range o.Cells {
		c.Part = i * nproc / len(o.Cells)
	}
	return o.CalcDerived(0)
}

// RefineUniform splits every hex8 cell into 8 conforming children and
// returns the refined mesh. Children inherit tag, attribute and partition;
// boundary face tags propagate to the child faces on the same boundary.
func (o *Mesh) RefineUniform() (r *Mesh, err error) {

	// only hex8 can be refined
	for _, c := range o.Cells {
		if c.Type != "hex8" {
			return nil, chk.Err("uniform refinement is only available for hex8 cells; cell %d is %q", c.Id, c.Type)
		}
	}

	r = new(Mesh)
	r.FnamePath = o.FnamePath

	// copy original vertices
	for _, v := range o.Verts {
		r.Verts = append(r.Verts, &Vert{Id: v.Id, Tag: v.Tag, C: []float64{v.C[0], v.C[1], v.C[2]}})
	}

	// mid-vertex dedup map: sorted defining vertex ids => new vertex id
	mid := make(map[string]int)
	getMid := func(defverts []int) int {
		sorted := append([]int{}, defverts...)
		sort.Ints(sorted)
		key := io.Sf("%v", sorted)
		if id, ok := mid[key]; ok {
			return id
		}
		c := []float64{0, 0, 0}
		for _, v := range defverts {
			for d := 0; d < 3; d++ {
				c[d] += o.Verts[v].C[d]
			}
		}
		for d := 0; d < 3; d++ {
			c[d] /= float64(len(defverts))
		}
		id := len(r.Verts)
		r.Verts = append(r.Verts, &Vert{Id: id, C: c})
		mid[key] = id
		return id
	}

	// hex8 local corner => lattice coordinates on the 3×3×3 refinement lattice
	corner := [][]int{
		{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0},
		{0, 0, 2}, {2, 0, 2}, {2, 2, 2}, {0, 2, 2},
	}

	// latticeVert returns the global id of lattice point (i,j,k) of cell c
	latticeVert := func(c *Cell, i, j, k int) int {
		var defverts []int
		for m, lc := range corner {
			if (i == 1 || lc[0] == i) && (j == 1 || lc[1] == j) && (k == 1 || lc[2] == k) {
				defverts = append(defverts, c.Verts[m])
			}
		}
		if len(defverts) == 1 {
			return defverts[0] // original corner
		}
		return getMid(defverts)
	}

	// children; (a,b,c) selects the octant
	cid := 0
	for _, cell := range o.Cells {
		for cc := 0; cc < 2; cc++ {
			for b := 0; b < 2; b++ {
				for a := 0; a < 2; a++ {
					child := &Cell{
						Id:   cid,
						Tag:  cell.Tag,
						Type: "hex8",
						Part: cell.Part,
						Atr:  cell.Atr,
						Verts: []int{
							latticeVert(cell, a, b, cc), latticeVert(cell, a+1, b, cc),
							latticeVert(cell, a+1, b+1, cc), latticeVert(cell, a, b+1, cc),
							latticeVert(cell, a, b, cc+1), latticeVert(cell, a+1, b, cc+1),
							latticeVert(cell, a+1, b+1, cc+1), latticeVert(cell, a, b+1, cc+1),
						},
						FTags: make([]int, 6),
					}
					if len(cell.FTags) == 6 {
						// child face f lies on the parent boundary face f iff the
						// octant touches that side of the parent
						onside := []bool{a == 0, a == 1, b == 0, b == 1, cc == 0, cc == 1}
						for f := 0; f < 6; f++ {
							if onside[f] {
								child.FTags[f] = cell.FTags[f]
							}
						}
					}
					r.Cells = append(r.Cells, child)
					cid++
				}
			}
		}
	}
	err = r.CalcDerived(0)
	return
}

// SaveJSON writes the mesh (input data only) to a JSON file
func (o *Mesh) SaveJSON(fn string) (err error) {
	type vertOut struct {
		Id  int
		Tag int
		C   []float64
	}
	type cellOut struct {
		Id    int
		Tag   int
		Type  string
		Part  int
		Atr   int
		Verts []int
		FTags []int
	}
	var out struct {
		Verts []vertOut
		Cells []cellOut
	}
	for _, v := range o.Verts {
		out.Verts = append(out.Verts, vertOut{v.Id, v.Tag, v.C})
	}
	for _, c := range o.Cells {
		out.Cells = append(out.Cells, cellOut{c.Id, c.Tag, c.Type, c.Part, c.Atr, c.Verts, c.FTags})
	}
	b, err := json.Marshal(&out)
	if err != nil {
		return chk.Err("cannot encode mesh:\n%v", err)
	}
	var buf bytes.Buffer
	buf.Write(b)
	io.WriteFile(fn, &buf)
	return
}

// LoadMesh reads or generates the mesh according to the configuration and
// applies refinement and partitioning for a run with nproc processors:
// serial refinements first, then partitioning, then parallel refinements
// (children stay in the parent's partition).
func (o *Simulation) LoadMesh(nproc int) (msh *Mesh, err error) {

	// read or generate
	natr := o.Ngrains
	if natr < 1 {
		natr = 1
	}
	switch {
	case o.MeshFile == "":
		msh, err = UnitCubeGrid(o.Nx, o.Ny, o.Nz, o.FixTag, o.RampTag, natr)
	case o.Cubit:
		msh, err = ReadTextMesh(o.MeshFile, 0)
	default:
		msh, err = ReadMsh(o.MeshFile, 0)
	}
	if err != nil {
		return
	}

	// serial refinement
	for i := 0; i < o.RefSerial; i++ {
		if msh, err = msh.RefineUniform(); err != nil {
			return
		}
	}

	// partitioning
	if err = msh.PartitionLinear(nproc); err != nil {
		return
	}

	// parallel refinement
	for i := 0; i < o.RefParal; i++ {
		if msh, err = msh.RefineUniform(); err != nil {
			return
		}
	}
	return
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"net"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Viewer streams the deformed configuration to an external visualisation
// server over TCP. Each processor opens its own connection per step and
// announces itself with a "parallel nproc proc" header, so the server can
// join the partitioned fields.
type Viewer struct {
	Host  string // server host
	Port  int    // server port
	Proc  int    // this processor number
	Nproc int    // number of processors
}

// NewViewer allocates a viewer
func NewViewer(host string, port, proc, nproc int) *Viewer {
	return &Viewer{Host: host, Port: port, Proc: proc, Nproc: nproc}
}

// ShowStep sends the current configuration and step displacements
func (o *Viewer) ShowStep(dom *Domain) (err error) {

	// header
	var buf bytes.Buffer
	io.Ff(&buf, "parallel %d %d\n", o.Nproc, o.Proc)
	io.Ff(&buf, "solution\n")

	// deformed mesh
	msh := dom.Msh
	io.Ff(&buf, "mesh %d %d %d\n", msh.Ndim, len(msh.Verts), len(msh.Cells))
	for _, x := range dom.XCur {
		for j, v := range x {
			if j > 0 {
				io.Ff(&buf, " ")
			}
			io.Ff(&buf, "%.17g", v)
		}
		io.Ff(&buf, "\n")
	}
	for _, c := range msh.Cells {
		io.Ff(&buf, "%s", c.Type)
		for _, v := range c.Verts {
			io.Ff(&buf, " %d", v)
		}
		io.Ff(&buf, "\n")
	}

	// nodal step displacements
	io.Ff(&buf, "field displacement %d\n", msh.Ndim)
	ukeys := []string{"ux", "uy", "uz"}
	for v := range msh.Verts {
		nod := dom.Vid2node[v]
		for j := 0; j < msh.Ndim; j++ {
			u := 0.0
			if nod != nil {
				if eq := nod.GetEq(ukeys[j]); eq >= 0 {
					u = dom.Sol.Y[eq]
				}
			}
			if j > 0 {
				io.Ff(&buf, " ")
			}
			io.Ff(&buf, "%.17g", u)
		}
		io.Ff(&buf, "\n")
	}

	// connect and send
	conn, err := net.Dial("tcp", io.Sf("%s:%d", o.Host, o.Port))
	if err != nil {
		return chk.Err("cannot reach visualisation server:\n%v", err)
	}
	defer conn.Close()
	if _, err = conn.Write(buf.Bytes()); err != nil {
		return chk.Err("cannot send data to visualisation server:\n%v", err)
	}
	return
}

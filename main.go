// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/amfem/constit/cmd"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {

	// catch errors
	failed := false
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
			failed = true
		}
		mpi.Stop()
		if failed {
			os.Exit(1)
		}
	}()
	mpi.Start()

	// run simulation
	if err := cmd.Execute(); err != nil {
		chk.Panic("%v", err)
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gosl/chk"
)

func Test_post01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("post01. memory sink")

	w := NewMemory()
	vals := []float64{1, 2, 3, 4, 5, 6}
	w.WriteVar(0, "v", 3, false, mesh.LocCells, vals, 1, 0.5)
	vals[0] = 100
	v := w.Vars["v"]
	chk.Float64(tst, "copy", 1e-17, v.Vals[0], 1)
	chk.Float64(tst, "c(1,0)", 1e-17, v.Component(1, 0), 2)
	chk.Float64(tst, "c(0,2)", 1e-17, v.Component(0, 2), 5)
	chk.Int(tst, "nt", v.Nt, 1)
}

func Test_post02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("post02. vtu writer")

	m, err := mesh.NewBox(2, 1, 1, 1, 1, 1)
	if err != nil {
		tst.Errorf("NewBox failed:\n%v", err)
		return
	}
	dirout := tst.TempDir()
	w := NewVtu(m, dirout, "box", 2)
	if w.Active(1) || !w.Active(4) {
		tst.Errorf("Active failed\n")
	}
	u := make([]float64, m.Nverts)
	w.WriteVar(0, "u", 1, false, mesh.LocVertices, u, 0, 0)
	w.WriteVar(0, "uc", 1, false, mesh.LocCells, []float64{1, 2}, 0, 0)
	w.WriteVar(0, "uf", 1, false, mesh.LocFaces, make([]float64, m.Nfaces), 0, 0)
	w.WriteVar(0, "u", 1, false, mesh.LocVertices, u, 1, 0.1) // inactive
	w.WriteVar(0, "u", 1, false, mesh.LocVertices, u, 2, 0.2) // flushes step 0
	w.Flush()
	chk.Int(tst, "number of files", w.Nfiles, 2)
	for _, fn := range []string{"box_0.vtu", "box_2.vtu"} {
		if _, err := os.Stat(filepath.Join(dirout, fn)); err != nil {
			tst.Errorf("file %q is missing\n", fn)
		}
	}

	w0 := NewVtu(m, dirout, "once", 0)
	if !w0.Active(0) || w0.Active(3) {
		tst.Errorf("Active with zero frequency failed\n")
	}
}

func Test_post03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("post03. multiple sinks")

	a, b := NewMemory(), NewMemory()
	w := Multi{a, nil, b}
	w.WriteVar(0, "p", 1, false, mesh.LocCells, []float64{7}, 3, 0.3)
	for i, m := range []*Memory{a, b} {
		v, ok := m.Vars["p"]
		if !ok {
			tst.Errorf("sink %d did not receive variable\n", i)
			continue
		}
		chk.Array(tst, "p", 1e-17, v.Vals, []float64{7})
		chk.Int(tst, "nt", v.Nt, 3)
	}
}

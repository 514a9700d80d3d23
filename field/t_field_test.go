// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gocdo/mesh"
	"github.com/cpmech/gosl/chk"
)

func Test_field01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("field01")

	reg := NewRegistry()
	fld, err := reg.Create("u", mesh.LocVertices, 4, 1, true)
	if err != nil {
		tst.Errorf("Create failed:\n%v", err)
		return
	}
	chk.Int(tst, "id", fld.Id, 0)
	chk.Int(tst, "id by name", reg.IdByName("u"), 0)
	chk.Int(tst, "unknown", reg.IdByName("v"), -1)

	copy(fld.Val, []float64{1, 2, 3, 4})
	fld.CurrentToPrevious()
	fld.Val[0] = 10
	chk.Array(tst, "prev", 1e-17, fld.ValPre, []float64{1, 2, 3, 4})

	again, err := reg.Create("u", mesh.LocVertices, 4, 1, false)
	if err != nil {
		tst.Errorf("Create failed:\n%v", err)
		return
	}
	if again != fld {
		tst.Errorf("find-or-create should return the same field\n")
	}
	chk.Int(tst, "len", reg.Len(), 1)

	_, err = reg.Create("u", mesh.LocCells, 4, 1, false)
	if err == nil {
		tst.Errorf("Create should have failed with a different layout\n")
	}
}

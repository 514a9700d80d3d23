// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/gosl/chk"

// NewBox generates a structured mesh of nx×ny×nz hexahedra over [0,lx]×[0,ly]×[0,lz]
func NewBox(nx, ny, nz int, lx, ly, lz float64) (o *Mesh, err error) {

	// check
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, chk.Err("number of divisions must be positive. (%d,%d,%d) is invalid", nx, ny, nz)
	}
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return nil, chk.Err("box lengths must be positive. (%g,%g,%g) is invalid", lx, ly, lz)
	}

	// vertices
	vid := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	X := make([][]float64, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				X[vid(i, j, k)] = []float64{lx * float64(i) / float64(nx), ly * float64(j) / float64(ny), lz * float64(k) / float64(nz)}
			}
		}
	}

	// faces normal to x, y and z; loops give normals along +x, +y and +z
	var faces [][]int
	fx := func(i, j, k int) int { return i + (nx+1)*(j+ny*k) }
	nfx := (nx + 1) * ny * nz
	fy := func(i, j, k int) int { return nfx + i + nx*(j+(ny+1)*k) }
	nfy := nx * (ny + 1) * nz
	fz := func(i, j, k int) int { return nfx + nfy + i + nx*(j+ny*k) }
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i <= nx; i++ {
				faces = append(faces, []int{vid(i, j, k), vid(i, j+1, k), vid(i, j+1, k+1), vid(i, j, k+1)})
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i < nx; i++ {
				faces = append(faces, []int{vid(i, j, k), vid(i, j, k+1), vid(i+1, j, k+1), vid(i+1, j, k)})
			}
		}
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				faces = append(faces, []int{vid(i, j, k), vid(i+1, j, k), vid(i+1, j+1, k), vid(i, j+1, k)})
			}
		}
	}

	// cells
	cells := make([][]int, 0, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				cells = append(cells, []int{fx(i, j, k), fx(i+1, j, k), fy(i, j, k), fy(i, j+1, k), fz(i, j, k), fz(i, j, k+1)})
			}
		}
	}
	return NewPolyhedral(X, faces, cells)
}

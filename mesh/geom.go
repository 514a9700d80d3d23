// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "gonum.org/v1/gonum/floats"

// sub returns a - b
func sub(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// cross returns a × b
func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// dot returns a・b
func dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// norm returns the Euclidean norm of a
func norm(a []float64) float64 {
	return floats.Norm(a, 2)
}

// Dist returns the distance between two points
func Dist(a, b []float64) float64 {
	return norm(sub(a, b))
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheme

import (
	"math"

	"github.com/cpmech/gocdo/param"
	"gonum.org/v1/gonum/floats"
)

// tetrahedron rules: barycentric coordinates and weights (summing to 1)
var tetRules = map[param.Quadrature]struct {
	l [][4]float64
	w []float64
}{
	param.QuadBary: {[][4]float64{{0.25, 0.25, 0.25, 0.25}}, []float64{1}},
	param.QuadHigher: {[][4]float64{
		{0.5854101966249685, 0.1381966011250105, 0.1381966011250105, 0.1381966011250105},
		{0.1381966011250105, 0.5854101966249685, 0.1381966011250105, 0.1381966011250105},
		{0.1381966011250105, 0.1381966011250105, 0.5854101966249685, 0.1381966011250105},
		{0.1381966011250105, 0.1381966011250105, 0.1381966011250105, 0.5854101966249685},
	}, []float64{0.25, 0.25, 0.25, 0.25}},
	param.QuadHighest: {[][4]float64{
		{0.25, 0.25, 0.25, 0.25},
		{0.5, 1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0},
		{1.0 / 6.0, 0.5, 1.0 / 6.0, 1.0 / 6.0},
		{1.0 / 6.0, 1.0 / 6.0, 0.5, 1.0 / 6.0},
		{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0, 0.5},
	}, []float64{-0.8, 0.45, 0.45, 0.45, 0.45}},
}

// triangle rules: barycentric coordinates and weights (summing to 1)
var triRules = map[param.Quadrature]struct {
	l [][3]float64
	w []float64
}{
	param.QuadBary: {[][3]float64{{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}}, []float64{1}},
	param.QuadHigher: {[][3]float64{
		{2.0 / 3.0, 1.0 / 6.0, 1.0 / 6.0},
		{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
		{1.0 / 6.0, 1.0 / 6.0, 2.0 / 3.0},
	}, []float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}},
	param.QuadHighest: {[][3]float64{
		{0.108103018168070, 0.445948490915965, 0.445948490915965},
		{0.445948490915965, 0.108103018168070, 0.445948490915965},
		{0.445948490915965, 0.445948490915965, 0.108103018168070},
		{0.816847572980459, 0.091576213509771, 0.091576213509771},
		{0.091576213509771, 0.816847572980459, 0.091576213509771},
		{0.091576213509771, 0.091576213509771, 0.816847572980459},
	}, []float64{0.223381589678011, 0.223381589678011, 0.223381589678011, 0.109951743655322, 0.109951743655322, 0.109951743655322}},
}

// integTet integrates a point-wise definition over tetrahedron (a,b,c,d) and adds to res
func integTet(res []float64, def *param.Def, q param.Quadrature, t float64, a, b, c, d []float64) {
	vol := tetVol(a, b, c, d)
	if vol == 0 {
		return
	}
	rule := tetRules[q]
	x := make([]float64, 3)
	val := make([]float64, def.Dim)
	for i, l := range rule.l {
		for k := 0; k < 3; k++ {
			x[k] = l[0]*a[k] + l[1]*b[k] + l[2]*c[k] + l[3]*d[k]
		}
		def.Eval(val, -1, x, t)
		floats.AddScaled(res, vol*rule.w[i], val)
	}
}

// integTri integrates a point-wise definition over triangle (a,b,c) and adds to res
func integTri(res []float64, def *param.Def, q param.Quadrature, t float64, a, b, c []float64) {
	area := triArea(a, b, c)
	rule := triRules[q]
	x := make([]float64, 3)
	val := make([]float64, def.Dim)
	for i, l := range rule.l {
		for k := 0; k < 3; k++ {
			x[k] = l[0]*a[k] + l[1]*b[k] + l[2]*c[k]
		}
		def.Eval(val, -1, x, t)
		floats.AddScaled(res, area*rule.w[i], val)
	}
}

// geometry ////////////////////////////////////////////////////////////////////////////////////

func sub(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func dot(a, b []float64) float64 { return floats.Dot(a, b) }

func tetVol(a, b, c, d []float64) float64 {
	return math.Abs(dot(sub(b, a), cross(sub(c, a), sub(d, a)))) / 6.0
}

func triArea(a, b, c []float64) float64 {
	return 0.5 * floats.Norm(cross(sub(b, a), sub(c, a)), 2)
}

// kdot returns a・K・b
func kdot(a []float64, K *[3][3]float64, b []float64) (s float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += a[i] * K[i][j] * b[j]
		}
	}
	return
}

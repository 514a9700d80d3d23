// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sles

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotHistory saves the residual history of a solve to fn (png, svg, pdf or eps)
func PlotHistory(fn, key string, hist []float64) (err error) {
	pts := make(plotter.XYs, 0, len(hist))
	for i, r := range hist {
		if r > 0 {
			pts = append(pts, plotter.XY{X: float64(i), Y: r})
		}
	}
	if len(pts) == 0 {
		return chk.Err("residual history of %q has no positive values", key)
	}
	p := plot.New()
	p.Title.Text = key
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "residual"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, fn)
}

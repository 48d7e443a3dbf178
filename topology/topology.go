// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package topology decides how a chart is split into panels.
package topology

import (
	"math"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/plotspec"
)

// Kind is the panel structure of a chart.
type Kind int

const (
	// Single is one panel.
	Single Kind = iota
	// Faceted is one specification split into panels by data.
	Faceted
	// Composed is a grid of independent charts.
	Composed
)

func (k Kind) String() string {
	switch k {
	case Faceted:
		return "faceted"
	case Composed:
		return "composed"
	}
	return "single"
}

// Topology is a chart's panel structure and grid.
type Topology struct {
	Kind   Kind
	Layout grid.Layout
}

// Detect returns the topology of a specification. A composition
// takes priority over facets, and facets over a single panel; facets
// inside composed plots are not expanded. A faceted specification
// whose panels cannot be laid out is reported with a single-cell
// layout.
func Detect(s *plotspec.Spec) Topology {
	if c := s.Compose; c != nil && len(c.Plots) > 0 {
		order := grid.ColMajor
		if c.RowMajor() {
			order = grid.RowMajor
		}
		return Topology{Composed, grid.Wrap(len(c.Plots), c.NRow, c.NCol, order)}
	}
	if f := s.Facet; f != nil && (len(f.Wrap) > 0 || f.Rows != "" || f.Cols != "") {
		l, err := s.FacetLayout()
		if err != nil {
			l = grid.Single
		}
		return Topology{Faceted, l}
	}
	return Topology{Single, grid.Single}
}

// FromLayout returns the topology set by a session's Layout calls.
// par with mfrow or mfcol, and layout with a panel-number matrix,
// set the grid; the last valid directive wins. Without one the chart
// is a single panel.
func FromLayout(calls []*callog.Call) Topology {
	t := Topology{Single, grid.Single}
	for _, c := range calls {
		if l, ok := directive(c); ok {
			t.Layout = l
		}
	}
	if t.Layout.Size() > 1 {
		t.Kind = Composed
	}
	return t
}

func directive(c *callog.Call) (grid.Layout, bool) {
	switch c.Func {
	case "par":
		for _, d := range []struct {
			name  string
			order grid.Order
		}{{"mfrow", grid.RowMajor}, {"mfcol", grid.ColMajor}} {
			a, ok := c.Named[d.name]
			if ok && a.Kind == callog.Numbers && len(a.Nums) == 2 && dim(a.Nums[0]) && dim(a.Nums[1]) {
				return grid.Layout{Rows: int(a.Nums[0]), Cols: int(a.Nums[1]), Order: d.order}, true
			}
		}
	case "layout":
		a, ok := c.Arg("mat", 0)
		if !ok || a.Kind != callog.Matrix || !dim(float64(len(a.Rows))) || len(a.Rows[0]) == 0 || !dim(float64(len(a.Rows[0]))) {
			return grid.Layout{}, false
		}
		l := grid.Layout{Rows: len(a.Rows), Cols: len(a.Rows[0])}
		// A matrix numbered down columns fills column-major.
		byCol := true
		for i, row := range a.Rows {
			for j, v := range row {
				if int(v) != j*l.Rows+i+1 {
					byCol = false
				}
			}
		}
		if byCol && l.Rows > 1 && l.Cols > 1 {
			l.Order = grid.ColMajor
		}
		return l, true
	}
	return grid.Layout{}, false
}

// dim reports whether x is a usable grid dimension.
func dim(x float64) bool {
	return x >= 1 && x <= grid.MaxDim && x == math.Trunc(x)
}

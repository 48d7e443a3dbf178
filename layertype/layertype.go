// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layertype assigns canonical type tags to plot layers.
package layertype

import (
	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/plotspec"
)

// Type is a canonical layer type tag.
type Type string

const (
	Bar        Type = "bar"
	Hist       Type = "hist"
	DodgedBar  Type = "dodged_bar"
	StackedBar Type = "stacked_bar"
	Line       Type = "line"
	Smooth     Type = "smooth"
	Point      Type = "point"
	Box        Type = "box"
	Unknown    Type = "unknown"
)

// Barlike reports whether t is drawn as rectangles.
func (t Type) Barlike() bool {
	switch t {
	case Bar, Hist, DodgedBar, StackedBar:
		return true
	}
	return false
}

// Curve reports whether t is drawn as one polyline per sub-series.
func (t Type) Curve() bool {
	return t == Line || t == Smooth
}

// Declarative classifies layer l of specification s.
func Declarative(s *plotspec.Spec, l *plotspec.Layer) Type {
	aes := l.Mapping.Merge(s.Mapping)
	switch l.Geom {
	case "bar", "col", "histogram":
		switch {
		case plotspec.StatOf(l, aes) == "bin":
			return Hist
		case plotspec.PositionOf(l) == "dodge":
			return DodgedBar
		case plotspec.PositionOf(l) == "stack" && (l.Mapping.Fill != "" || s.Mapping.Fill != ""):
			return StackedBar
		}
		return Bar
	case "line":
		return Line
	case "smooth", "density":
		return Smooth
	case "point":
		return Point
	case "boxplot":
		return Box
	}
	return Unknown
}

// Imperative classifies a drawing call. Start calls dispatch on the
// function; Augment calls also look at the tag of their first
// argument, so a precomputed density or smoother is a smooth curve.
func Imperative(c *callog.Call) Type {
	switch c.Func {
	case "barplot":
		h, ok := c.Arg("height", 0)
		if ok && h.Kind == callog.Matrix && len(h.Rows) > 1 {
			if c.Flag("beside") {
				return DodgedBar
			}
			return StackedBar
		}
		return Bar
	case "hist":
		return Hist
	case "boxplot":
		return Box
	case "plot", "lines", "points":
		if a, ok := c.First(); ok && (a.Kind == callog.Density || a.Kind == callog.Smooth) {
			if c.Func == "points" {
				return Point
			}
			return Smooth
		}
		switch c.Func {
		case "lines":
			return Line
		case "points":
			return Point
		}
		if c.Option("type", "p") == "l" {
			return Line
		}
		return Point
	}
	return Unknown
}

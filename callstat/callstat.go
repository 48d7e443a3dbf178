// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package callstat computes what a drawing call draws. It re-derives
// a call's statistics from its captured arguments without producing
// any output, and returns them in the same layer table form that
// plotspec.Build produces for declarative layers.
package callstat

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/stat"
)

// ErrArgs reports missing or malformed call arguments.
var ErrArgs = errors.New("bad drawing call arguments")

// Layer re-derives the layer drawn by c. index is the layer's 1-based
// position within its plot group.
func Layer(index int, c *callog.Call) (*plotspec.BuiltLayer, error) {
	typ := layertype.Imperative(c)
	bl := &plotspec.BuiltLayer{
		Index:    index,
		Geom:     c.Func,
		Stat:     "identity",
		Position: "identity",
		Series:   []string{""},
	}
	var cols plotspec.Columns
	var err error
	switch typ {
	case layertype.Bar, layertype.DodgedBar, layertype.StackedBar:
		err = bars(c, typ, bl, &cols)
	case layertype.Hist:
		err = hist(c, bl, &cols)
	case layertype.Box:
		err = boxes(c, bl, &cols)
	case layertype.Line, layertype.Point:
		err = xy(c, bl, &cols)
	case layertype.Smooth:
		err = curve(c, bl, &cols)
	default:
		return nil, errors.Newf("%s: no statistics for unknown layer", c.Func)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", c.Func)
	}
	bl.Data = cols.Table()
	return bl, nil
}

func numbers(a callog.Arg) ([]float64, bool) {
	switch a.Kind {
	case callog.Numbers:
		return a.Nums, true
	case callog.Matrix:
		if len(a.Rows) == 1 {
			return a.Rows[0], true
		}
	}
	return nil, false
}

// names returns the named argument as n labels, defaulting to 1..n.
func names(c *callog.Call, name string, n int) []string {
	out := make([]string, n)
	a, ok := c.Named[name]
	for i := range out {
		switch {
		case ok && a.Kind == callog.Strings && i < len(a.Strs):
			out[i] = a.Strs[i]
		case ok && a.Kind == callog.Numbers && i < len(a.Nums):
			out[i] = strconv.FormatFloat(a.Nums[i], 'g', -1, 64)
		default:
			out[i] = strconv.Itoa(i + 1)
		}
	}
	return out
}

// bars handles barplot. A numeric height vector is one series; each
// row of a height matrix is one series over the same categories,
// stacked bottom-up in row order or placed side by side.
func bars(c *callog.Call, typ layertype.Type, bl *plotspec.BuiltLayer, cols *plotspec.Columns) error {
	h, ok := c.Arg("height", 0)
	if !ok {
		return errors.Wrap(ErrArgs, "missing height")
	}
	var rows [][]float64
	switch h.Kind {
	case callog.Numbers:
		rows = [][]float64{h.Nums}
	case callog.Matrix:
		rows = h.Rows
	default:
		return errors.Wrapf(ErrArgs, "height is %s", h.Kind)
	}
	ncat := len(rows[0])
	if ncat == 0 {
		return errors.Wrap(ErrArgs, "empty height")
	}
	cats := names(c, "names.arg", ncat)
	series := []string{""}
	if len(rows) > 1 {
		series = names(c, "legend.text", len(rows))
	}
	bl.XLevels, bl.Series = cats, series
	bl.Horizontal = c.Flag("horiz")

	switch typ {
	case layertype.StackedBar:
		bl.Position = "stack"
		ymin := make([][]float64, len(rows))
		ymax := make([][]float64, len(rows))
		for i := range rows {
			ymin[i] = make([]float64, ncat)
			ymax[i] = make([]float64, ncat)
		}
		for j := 0; j < ncat; j++ {
			col := make([]float64, len(rows))
			for i := range rows {
				col[i] = rows[i][j]
			}
			lo, hi := stat.Stack(col)
			for i := range rows {
				ymin[i][j], ymax[i][j] = lo[i], hi[i]
			}
		}
		for i, r := range rows {
			for j, y := range r {
				x := float64(j + 1)
				cols.Add(x, y, cats[j], series[i])
				cols.Rect(x-plotspec.BarWidth/2, x+plotspec.BarWidth/2, ymin[i][j], ymax[i][j])
			}
		}
	case layertype.DodgedBar:
		bl.Position = "dodge"
		for i, r := range rows {
			for j, y := range r {
				x := float64(j + 1)
				lo, hi := stat.Dodge(x, i, len(rows), plotspec.BarWidth)
				cols.Add(x, y, cats[j], series[i])
				cols.Rect(lo, hi, 0, y)
			}
		}
	default:
		for j, y := range rows[0] {
			x := float64(j + 1)
			cols.Add(x, y, cats[j], "")
			cols.Rect(x-plotspec.BarWidth/2, x+plotspec.BarWidth/2, 0, y)
		}
	}
	return nil
}

// hist handles hist. breaks, if given as a single number, is the bin
// count.
func hist(c *callog.Call, bl *plotspec.BuiltLayer, cols *plotspec.Columns) error {
	a, ok := c.Arg("x", 0)
	xs, isNum := numbers(a)
	if !ok || !isNum {
		return errors.Wrap(ErrArgs, "missing numeric x")
	}
	nbins := 0
	if b, ok := c.Number("breaks"); ok {
		if math.IsNaN(b) || b < 1 || b > stat.MaxBins {
			return errors.Wrapf(ErrArgs, "breaks=%v", b)
		}
		nbins = int(b)
	}
	bins, err := stat.Histogram(xs, nbins)
	if err != nil {
		return err
	}
	bl.Stat = "bin"
	bl.Horizontal = c.Flag("horiz")
	for _, b := range bins {
		cols.Add(b.Mid(), float64(b.Count), strconv.FormatFloat(b.Mid(), 'g', 6, 64), "")
		cols.Rect(b.Lo, b.Hi, 0, float64(b.Count))
	}
	return nil
}

// boxes handles boxplot. Each positional numeric argument, or each
// row of a matrix argument, is one group.
func boxes(c *callog.Call, bl *plotspec.BuiltLayer, cols *plotspec.Columns) error {
	var groups [][]float64
	for _, a := range c.Pos {
		switch a.Kind {
		case callog.Numbers:
			groups = append(groups, a.Nums)
		case callog.Matrix:
			groups = append(groups, a.Rows...)
		default:
			return errors.Wrapf(ErrArgs, "boxplot group is %s", a.Kind)
		}
	}
	if a, ok := c.Named["x"]; ok && len(groups) == 0 {
		if xs, ok := numbers(a); ok {
			groups = append(groups, xs)
		}
	}
	if len(groups) == 0 {
		return errors.Wrap(ErrArgs, "no groups")
	}
	bl.Stat = "boxplot"
	bl.Horizontal = c.Flag("horizontal")
	bl.XLevels = names(c, "names", len(groups))
	for i, g := range groups {
		box, err := stat.Boxplot(g, 0)
		if err != nil {
			return errors.Wrapf(err, "group %d", i+1)
		}
		x := float64(i + 1)
		cols.Add(x, box.Median, bl.XLevels[i], "")
		cols.Rect(x-plotspec.BarWidth/2, x+plotspec.BarWidth/2, box.Min, box.Max)
		cols.Box(box)
	}
	return nil
}

// xyArgs returns the coordinates of plot, lines or points. A single
// vector is y against its index.
func xyArgs(c *callog.Call) (xs, ys []float64, err error) {
	xa, okx := c.Arg("x", 0)
	ya, oky := c.Arg("y", 1)
	if okx {
		xs, okx = numbers(xa)
	}
	if oky {
		ys, oky = numbers(ya)
	}
	switch {
	case okx && oky:
	case okx:
		ys = xs
		xs = make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i + 1)
		}
	default:
		return nil, nil, errors.Wrap(ErrArgs, "missing numeric coordinates")
	}
	if len(xs) != len(ys) {
		return nil, nil, errors.Wrapf(ErrArgs, "%d x values but %d y values", len(xs), len(ys))
	}
	return xs, ys, nil
}

func xy(c *callog.Call, bl *plotspec.BuiltLayer, cols *plotspec.Columns) error {
	if a, ok := c.First(); ok && (a.Kind == callog.Density || a.Kind == callog.Smooth) {
		return curve(c, bl, cols)
	}
	xs, ys, err := xyArgs(c)
	if err != nil {
		return err
	}
	for i := range xs {
		cols.Add(xs[i], ys[i], strconv.FormatFloat(xs[i], 'g', -1, 64), "")
	}
	return nil
}

// curve handles precomputed density and smoother arguments, and
// explicit smoothing of x and y.
func curve(c *callog.Call, bl *plotspec.BuiltLayer, cols *plotspec.Columns) error {
	a, _ := c.First()
	var pts []stat.XY
	var err error
	switch a.Kind {
	case callog.Density:
		bl.Stat = "density"
		pts, err = stat.Density(a.Nums, 0)
	case callog.Smooth:
		bl.Stat = "smooth"
		span, _ := c.Number("span")
		pts, err = stat.Smooth(a.Rows[0], a.Rows[1], span, 0)
	default:
		return errors.Wrapf(ErrArgs, "first argument is %s", a.Kind)
	}
	if err != nil {
		return err
	}
	for _, p := range pts {
		cols.Add(p.X, p.Y, strconv.FormatFloat(p.X, 'g', 6, 64), "")
	}
	return nil
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extract produces the data points of a layer.
//
// Declarative layers are read from their built tables. Imperative
// layers are first re-derived from their captured call arguments,
// with nothing drawn, so both paths report the numbers the renderer
// drew. Either way the rows are put into drawing order before points
// are produced.
package extract

import (
	"fmt"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/callstat"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/reconcile"
)

// ExtractError reports a layer whose data could not be produced.
type ExtractError struct {
	Layer int
	Type  layertype.Type
	Err   error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("layer %d (%s): %v", e.Layer, e.Type, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// Result is the data of one layer and how it maps onto drawn shapes.
type Result struct {
	Type layertype.Type

	// Data is a slice of one of the point types, or a slice of
	// such slices for nested layers.
	Data any

	// Shapes is the number of shapes the layer draws: one per row,
	// or one per sub-series for curve layers.
	Shapes int

	// Groups gives, for each entry of the selector list, the index
	// of the shape it addresses. Nested selector lists have one
	// group per sub-series; flat ones have a single group.
	Groups [][]int
	Nested bool

	Horizontal bool

	// Layer is the built layer in drawing order, or nil.
	Layer *plotspec.BuiltLayer
}

// Empty returns the result of a layer with no data.
func Empty(t layertype.Type) *Result {
	return &Result{Type: t, Data: []any{}, Groups: [][]int{{}}}
}

// Declarative extracts a built layer of type t.
func Declarative(t layertype.Type, bl *plotspec.BuiltLayer) (*Result, error) {
	if t == layertype.Unknown {
		return Empty(t), nil
	}
	if bl.Err != nil {
		return nil, &ExtractError{Layer: bl.Index, Type: t, Err: bl.Err}
	}
	return points(t, reconcile.Order(t, bl)), nil
}

// Imperative extracts the layer drawn by c, the index'th call
// (1-based) of its plot group.
func Imperative(index int, c *callog.Call) (*Result, error) {
	t := layertype.Imperative(c)
	if t == layertype.Unknown {
		return Empty(t), nil
	}
	bl, err := callstat.Layer(index, c)
	if err != nil {
		return nil, &ExtractError{Layer: index, Type: t, Err: err}
	}
	return points(t, reconcile.Order(t, bl)), nil
}

func points(t layertype.Type, bl *plotspec.BuiltLayer) *Result {
	r := plotspec.Unpack(bl.Data)
	res := &Result{Type: t, Horizontal: bl.Horizontal, Layer: bl}
	n := r.Len()
	all := seq(n)
	switch t {
	case layertype.Bar:
		pts := make([]BarPoint, n)
		for i := range pts {
			pts[i] = BarPoint{X: r.Label[i], Y: r.Y[i]}
		}
		res.Data, res.Shapes, res.Groups = pts, n, [][]int{all}

	case layertype.Hist:
		pts := make([]HistPoint, n)
		for i := range pts {
			pts[i] = HistPoint{X: r.X[i], Y: r.Y[i], XMin: r.XMin[i], XMax: r.XMax[i], YMin: r.YMin[i], YMax: r.YMax[i]}
		}
		res.Data, res.Shapes, res.Groups = pts, n, [][]int{all}

	case layertype.DodgedBar, layertype.StackedBar:
		order := bl.Series
		if t == layertype.StackedBar {
			order = reconcile.StackOrder(bl)
		}
		var data [][]SegmentPoint
		for _, rows := range bySeries(r, order) {
			pts := make([]SegmentPoint, len(rows))
			for j, i := range rows {
				pts[j] = SegmentPoint{X: r.Label[i], Y: r.Y[i], Fill: r.Series[i]}
			}
			data = append(data, pts)
			res.Groups = append(res.Groups, rows)
		}
		res.Data, res.Shapes, res.Nested = nonNil(data), n, true

	case layertype.Line, layertype.Smooth:
		var data [][]XYPoint
		lines := bySeries(r, bl.Series)
		for _, rows := range lines {
			pts := make([]XYPoint, len(rows))
			for j, i := range rows {
				pts[j] = XYPoint{X: xValue(bl, r, i), Y: r.Y[i]}
			}
			data = append(data, pts)
		}
		res.Data, res.Shapes, res.Groups = nonNil(data), len(lines), [][]int{seq(len(lines))}

	case layertype.Point:
		pts := make([]XYPoint, n)
		for i := range pts {
			pts[i] = XYPoint{X: xValue(bl, r, i), Y: r.Y[i]}
		}
		res.Data, res.Shapes, res.Groups = pts, n, [][]int{all}

	case layertype.Box:
		pts := make([]BoxPoint, n)
		for i := range pts {
			pts[i] = BoxPoint{
				Fill: r.Label[i],
				Min:  r.YMin[i], Q1: r.Lower[i], Q2: r.Middle[i], Q3: r.Upper[i], Max: r.YMax[i],
				LowerOutliers: r.OutLo[i], UpperOutliers: r.OutHi[i],
			}
		}
		if bl.Horizontal {
			// Horizontal boxes are listed top to bottom, and so are
			// their selectors. Consumers reverse both again.
			reverse(pts)
			reverse(all)
		}
		res.Data, res.Shapes, res.Groups = pts, n, [][]int{all}
	}
	return res
}

// bySeries returns the row indexes of each series of order that has
// rows, keeping row order within a series.
func bySeries(r plotspec.Rows, order []string) [][]int {
	idx := make(map[string][]int)
	for i, s := range r.Series {
		idx[s] = append(idx[s], i)
	}
	var out [][]int
	for _, s := range order {
		if rows := idx[s]; rows != nil {
			out = append(out, rows)
		}
	}
	return out
}

func xValue(bl *plotspec.BuiltLayer, r plotspec.Rows, i int) any {
	if bl.XLevels != nil {
		return r.Label[i]
	}
	return r.X[i]
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func reverse[T any](xs []T) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

func nonNil[T any](xs [][]T) [][]T {
	if xs == nil {
		return [][]T{}
	}
	return xs
}

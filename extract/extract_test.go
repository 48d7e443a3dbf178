// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
)

// layer builds layer i (0-based) of the single-panel plot src.
func layer(t *testing.T, src string, i int) (layertype.Type, *plotspec.BuiltLayer) {
	t.Helper()
	s, err := plotspec.Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, s.LoadData(""))
	b, err := plotspec.Build(s)
	require.NoError(t, err)
	return layertype.Declarative(s, s.Layers[i]), b.Panels[0].Layers[i]
}

func TestBars(t *testing.T) {
	typ, bl := layer(t, `
data:
  columns: [cat, val]
  rows: [[c, 3], [a, 1], [b, 2]]
mapping: {x: cat, y: val}
layers: [{geom: col}]
`, 0)
	require.Equal(t, layertype.Bar, typ)
	res, err := Declarative(typ, bl)
	require.NoError(t, err)
	assert.Equal(t, []BarPoint{{"a", 1}, {"b", 2}, {"c", 3}}, res.Data)
	assert.Equal(t, [][]int{{0, 1, 2}}, res.Groups)
	assert.Equal(t, 3, res.Shapes)
	assert.False(t, res.Nested)
}

func TestStackedNesting(t *testing.T) {
	typ, bl := layer(t, `
data:
  columns: [cat, val, grp]
  rows: [[x, 3, B], [x, 1, A], [y, 2, B], [y, 5, A]]
mapping: {x: cat, y: val, fill: grp}
layers: [{geom: col, position: stack}]
`, 0)
	require.Equal(t, layertype.StackedBar, typ)
	res, err := Declarative(typ, bl)
	require.NoError(t, err)
	assert.Equal(t, [][]SegmentPoint{
		{{"x", 1, "A"}, {"y", 5, "A"}},
		{{"x", 3, "B"}, {"y", 2, "B"}},
	}, res.Data)
	// Shapes are drawn x/A, x/B, y/A, y/B.
	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, res.Groups)
	assert.True(t, res.Nested)
}

func TestDodgedNesting(t *testing.T) {
	typ, bl := layer(t, `
data:
  columns: [cat, val, grp]
  rows: [[x, 1, A], [x, 2, B], [y, 3, A], [y, 4, B]]
mapping: {x: cat, y: val, fill: grp}
layers: [{geom: col, position: dodge}]
`, 0)
	require.Equal(t, layertype.DodgedBar, typ)
	res, err := Declarative(typ, bl)
	require.NoError(t, err)
	assert.Equal(t, [][]SegmentPoint{
		{{"x", 1, "A"}, {"y", 3, "A"}},
		{{"x", 2, "B"}, {"y", 4, "B"}},
	}, res.Data)
	// B is drawn before A in each category.
	assert.Equal(t, [][]int{{1, 3}, {0, 2}}, res.Groups)
}

const boxes = `
data:
  columns: [g, v]
  rows: [[a, 1], [a, 2], [a, 3], [b, 4], [b, 5], [b, 6], [c, 7], [c, 8], [c, 9]]
mapping: {x: g, y: v}
coord: {flip: true}
layers: [{geom: boxplot}]
`

func TestHorizontalBoxReversal(t *testing.T) {
	typ, bl := layer(t, boxes, 0)
	require.Equal(t, layertype.Box, typ)
	res, err := Declarative(typ, bl)
	require.NoError(t, err)
	assert.True(t, res.Horizontal)

	pts := res.Data.([]BoxPoint)
	require.Len(t, pts, 3)
	assert.Equal(t, "c", pts[0].Fill)
	assert.InDelta(t, 8, pts[0].Q2, 1e-9)
	assert.Equal(t, [][]int{{2, 1, 0}}, res.Groups)

	// A consumer reversing again sees the original category order,
	// each still paired with its shape.
	reverse(pts)
	sel := append([]int(nil), res.Groups[0]...)
	reverse(sel)
	for i, p := range pts {
		assert.Equal(t, []string{"a", "b", "c"}[i], p.Fill)
		assert.Equal(t, i, sel[i])
	}
}

func TestLinesNested(t *testing.T) {
	typ, bl := layer(t, `
data:
  columns: [x, y, s]
  rows: [[2, 4, u], [1, 3, u], [1, 5, v], [3, 6, v]]
mapping: {x: x, y: y, colour: s}
layers: [{geom: line}, {geom: point}]
`, 0)
	require.Equal(t, layertype.Line, typ)
	res, err := Declarative(typ, bl)
	require.NoError(t, err)
	assert.Equal(t, [][]XYPoint{
		{{1.0, 3}, {2.0, 4}},
		{{1.0, 5}, {3.0, 6}},
	}, res.Data)
	assert.Equal(t, 2, res.Shapes)
	assert.Equal(t, [][]int{{0, 1}}, res.Groups)
	assert.False(t, res.Nested)
}

func TestPointsDiscrete(t *testing.T) {
	typ, bl := layer(t, `
data:
  columns: [c, y]
  rows: [[b, 2], [a, 1]]
mapping: {x: c, y: y}
layers: [{geom: point}]
`, 0)
	res, err := Declarative(typ, bl)
	require.NoError(t, err)
	assert.Equal(t, []XYPoint{{"b", 2}, {"a", 1}}, res.Data)
}

func call(t *testing.T, fn string, args ...string) *callog.Call {
	t.Helper()
	c, err := callog.NewCall(fn, args...)
	require.NoError(t, err)
	return c
}

func TestImperative(t *testing.T) {
	res, err := Imperative(1, call(t, "barplot", "3,5,7"))
	require.NoError(t, err)
	assert.Equal(t, []BarPoint{{"1", 3}, {"2", 5}, {"3", 7}}, res.Data)

	res, err = Imperative(2, call(t, "lines", "x=1,2,3", "y=4,6,5"))
	require.NoError(t, err)
	assert.Equal(t, layertype.Line, res.Type)
	assert.Equal(t, [][]XYPoint{{{1.0, 4}, {2.0, 6}, {3.0, 5}}}, res.Data)
	assert.Equal(t, 1, res.Shapes)

	// Rows are series-major; stacking is bottom-up in row order.
	res, err = Imperative(1, call(t, "barplot", "[1,2;3,4]", "legend.text=lo,hi", "names.arg=p,q"))
	require.NoError(t, err)
	assert.Equal(t, layertype.StackedBar, res.Type)
	assert.Equal(t, [][]SegmentPoint{
		{{"p", 1, "lo"}, {"q", 2, "lo"}},
		{{"p", 3, "hi"}, {"q", 4, "hi"}},
	}, res.Data)
	assert.Equal(t, [][]int{{0, 2}, {1, 3}}, res.Groups)
}

func TestUnknownAndErrors(t *testing.T) {
	res, err := Imperative(3, call(t, "text", "1,2", "label=hi"))
	require.NoError(t, err)
	assert.Equal(t, layertype.Unknown, res.Type)
	assert.Equal(t, []any{}, res.Data)
	assert.Equal(t, 0, res.Shapes)

	_, err = Imperative(1, call(t, "hist"))
	var ee *ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.Layer)
	assert.Equal(t, layertype.Hist, ee.Type)

	_, err = Declarative(layertype.Bar, &plotspec.BuiltLayer{Index: 2, Err: errors.New("no column")})
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 2, ee.Layer)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotspec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/cockroachdb/errors"

	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/stat"
)

// Columns of a built layer table. Every built table has X, Label,
// Series and Y. Rect geometries add XMin, XMax, YMin and YMax. Box
// layers add Lower, Middle, Upper and the outlier columns, with YMin
// and YMax holding the whisker ends.
const (
	ColX      = "x"
	ColLabel  = "label"
	ColSeries = "series"
	ColY      = "y"
	ColXMin   = "xmin"
	ColXMax   = "xmax"
	ColYMin   = "ymin"
	ColYMax   = "ymax"
	ColLower  = "lower"
	ColMiddle = "middle"
	ColUpper  = "upper"
	ColOutLo  = "outliers_lo"
	ColOutHi  = "outliers_hi"
)

// BarWidth is the fraction of a category slot covered by bars.
const BarWidth = 0.9

// Built is a specification after statistics and positions have been
// applied, split into facet panels.
type Built struct {
	Spec   *Spec
	Layout grid.Layout
	Panels []*Panel
}

// Panel is one facet panel.
type Panel struct {
	// Index is the 1-based panel number, in the order panels fill
	// Layout.
	Index    int
	Row, Col int
	// Key describes the facet values of this panel, or is empty.
	Key    string
	Layers []*BuiltLayer
}

// BuiltLayer is one layer's data within one panel.
type BuiltLayer struct {
	// Index is the 1-based layer number within the specification.
	Index int
	// Layer is the specification layer, or nil for layers
	// re-derived from drawing calls.
	Layer    *Layer
	Geom     string
	Aes      Aes
	Stat     string
	Position string

	// Horizontal is set if the layer's value axis is horizontal.
	Horizontal bool

	// Data holds the transformed data. It is nil if Err is set.
	Data *table.Table

	// XLevels are the display-ordered categories of a discrete x
	// axis, and Series the display-ordered sub-series keys.
	XLevels []string
	Series  []string

	// Err records why the layer could not be built.
	Err error
}

// Geometry defaults.
var defaultStat = map[string]string{
	"bar":       "count",
	"col":       "identity",
	"histogram": "bin",
	"boxplot":   "boxplot",
	"line":      "identity",
	"point":     "identity",
	"smooth":    "smooth",
	"density":   "density",
}

var defaultPosition = map[string]string{
	"bar":       "stack",
	"col":       "stack",
	"histogram": "stack",
}

// StatOf returns the statistic layer l uses, given the merged
// mapping.
func StatOf(l *Layer, aes Aes) string {
	if l.Stat != "" {
		return l.Stat
	}
	if l.Geom == "bar" && aes.Y != "" {
		return "identity"
	}
	if s, ok := defaultStat[l.Geom]; ok {
		return s
	}
	return "identity"
}

// PositionOf returns the position adjustment of l.
func PositionOf(l *Layer) string {
	if l.Position != "" {
		return l.Position
	}
	if p, ok := defaultPosition[l.Geom]; ok {
		return p
	}
	return "identity"
}

// Build applies s's statistics and positions. s must not be a
// composition; build each composed plot separately. Failures of a
// single layer are recorded in that layer's Err.
func Build(s *Spec) (*Built, error) {
	if s.Compose != nil {
		return nil, errors.New("cannot build a composition directly")
	}
	if s.Table == nil {
		return nil, errors.New("plot has no data")
	}
	panels, layout, err := s.facetPanels()
	if err != nil {
		return nil, err
	}
	b := &Built{Spec: s, Layout: layout}
	for _, fp := range panels {
		p := &Panel{Index: fp.index, Key: fp.key}
		p.Row, p.Col = fp.row, fp.col
		for i, l := range s.Layers {
			p.Layers = append(p.Layers, s.buildLayer(i+1, l, fp.data))
		}
		b.Panels = append(b.Panels, p)
	}
	return b, nil
}

type facetPanel struct {
	index, row, col int
	key             string
	data            *table.Table
}

func (s *Spec) facetPanels() ([]facetPanel, grid.Layout, error) {
	f := s.Facet
	if f == nil || (len(f.Wrap) == 0 && f.Rows == "" && f.Cols == "") {
		return []facetPanel{{index: 1, row: 1, col: 1, data: s.Table}}, grid.Single, nil
	}

	if len(f.Wrap) > 0 {
		keys := make([][]string, s.Table.Len())
		for _, v := range f.Wrap {
			vals, err := Strings(s.Table, v)
			if err != nil {
				return nil, grid.Layout{}, errors.Wrap(err, "facet")
			}
			for i, x := range vals {
				keys[i] = append(keys[i], x)
			}
		}
		// Order panels by each variable's levels.
		rank := make([]map[string]int, len(f.Wrap))
		for vi, v := range f.Wrap {
			vals, _ := Strings(s.Table, v)
			rank[vi] = indexOf(s.levelsOf(v, vals, IsNumeric(s.Table, v)))
		}
		groups := map[string][]int{}
		var order [][]string
		for i, k := range keys {
			ks := strings.Join(k, "\x00")
			if _, ok := groups[ks]; !ok {
				order = append(order, k)
			}
			groups[ks] = append(groups[ks], i)
		}
		sort.SliceStable(order, func(i, j int) bool {
			for vi := range f.Wrap {
				a, b := rank[vi][order[i][vi]], rank[vi][order[j][vi]]
				if a != b {
					return a < b
				}
			}
			return false
		})

		o := grid.RowMajor
		if f.Dir == "v" {
			o = grid.ColMajor
		}
		layout := grid.Wrap(len(order), f.NRow, f.NCol, o)
		if layout.Size() < len(order) {
			return nil, grid.Layout{}, errors.Newf("%d facet panels do not fit %v", len(order), layout)
		}
		var out []facetPanel
		for i, k := range order {
			r, c := layout.Position(i + 1)
			var label []string
			for vi, v := range f.Wrap {
				label = append(label, v+"="+k[vi])
			}
			out = append(out, facetPanel{
				index: i + 1, row: r, col: c,
				key:  strings.Join(label, ", "),
				data: subset(s.Table, groups[strings.Join(k, "\x00")]),
			})
		}
		return out, layout, nil
	}

	// Grid facets: one panel per combination, including empty ones.
	rowVals, rowLevels, err := s.facetVar(f.Rows)
	if err != nil {
		return nil, grid.Layout{}, err
	}
	colVals, colLevels, err := s.facetVar(f.Cols)
	if err != nil {
		return nil, grid.Layout{}, err
	}
	layout := grid.Layout{Rows: len(rowLevels), Cols: len(colLevels)}
	var out []facetPanel
	for ri, rl := range rowLevels {
		for ci, cl := range colLevels {
			var idx []int
			for i := 0; i < s.Table.Len(); i++ {
				if rowVals[i] == rl && colVals[i] == cl {
					idx = append(idx, i)
				}
			}
			var label []string
			if f.Rows != "" {
				label = append(label, f.Rows+"="+rl)
			}
			if f.Cols != "" {
				label = append(label, f.Cols+"="+cl)
			}
			out = append(out, facetPanel{
				index: layout.Index(ri+1, ci+1), row: ri + 1, col: ci + 1,
				key:  strings.Join(label, ", "),
				data: subset(s.Table, idx),
			})
		}
	}
	return out, layout, nil
}

func (s *Spec) facetVar(v string) (vals, levels []string, err error) {
	if v == "" {
		return make([]string, s.Table.Len()), []string{""}, nil
	}
	vals, err = Strings(s.Table, v)
	if err != nil {
		return nil, nil, errors.Wrap(err, "facet")
	}
	return vals, s.levelsOf(v, vals, IsNumeric(s.Table, v)), nil
}

// subset returns the rows idx of t.
func subset(t *table.Table, idx []int) *table.Table {
	if idx == nil {
		idx = []int{}
	}
	b := table.NewBuilder(nil)
	for _, col := range t.Columns() {
		b.Add(col, slice.Select(t.Column(col), idx))
	}
	return b.Done()
}

func indexOf(levels []string) map[string]int {
	m := make(map[string]int, len(levels))
	for i, l := range levels {
		m[l] = i
	}
	return m
}

// Columns accumulates a built table.
type Columns struct {
	x, y                   []float64
	label, series          []string
	xmin, xmax, ymin, ymax []float64
	lower, middle, upper   []float64
	outLo, outHi           [][]float64
}

// Add adds a row.
func (c *Columns) Add(x, y float64, label, series string) {
	c.x = append(c.x, x)
	c.y = append(c.y, y)
	c.label = append(c.label, label)
	c.series = append(c.series, series)
}

// Rect adds the rectangle columns of one row.
func (c *Columns) Rect(xmin, xmax, ymin, ymax float64) {
	c.xmin = append(c.xmin, xmin)
	c.xmax = append(c.xmax, xmax)
	c.ymin = append(c.ymin, ymin)
	c.ymax = append(c.ymax, ymax)
}

// Box adds the box columns of one row.
func (c *Columns) Box(b stat.Box) {
	c.lower = append(c.lower, b.Q1)
	c.middle = append(c.middle, b.Median)
	c.upper = append(c.upper, b.Q3)
	c.outLo = append(c.outLo, b.Lower)
	c.outHi = append(c.outHi, b.Upper)
}

func (c *Columns) Table() *table.Table {
	b := table.NewBuilder(nil).
		Add(ColX, nonNil(c.x)).
		Add(ColLabel, nonNilS(c.label)).
		Add(ColSeries, nonNilS(c.series)).
		Add(ColY, nonNil(c.y))
	if c.xmin != nil {
		b.Add(ColXMin, c.xmin).Add(ColXMax, c.xmax).Add(ColYMin, c.ymin).Add(ColYMax, c.ymax)
	}
	if c.middle != nil {
		b.Add(ColLower, c.lower).Add(ColMiddle, c.middle).Add(ColUpper, c.upper).
			Add(ColOutLo, c.outLo).Add(ColOutHi, c.outHi)
	}
	return b.Done()
}

func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}

func nonNilS(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func (s *Spec) buildLayer(index int, l *Layer, data *table.Table) *BuiltLayer {
	aes := l.Mapping.Merge(s.Mapping)
	bl := &BuiltLayer{
		Index:      index,
		Layer:      l,
		Geom:       l.Geom,
		Aes:        aes,
		Stat:       StatOf(l, aes),
		Position:   PositionOf(l),
		Horizontal: s.Horizontal(l),
	}
	var c Columns
	var err error
	switch bl.Stat {
	case "identity", "count":
		if isRectGeom(l.Geom) {
			err = s.buildBars(bl, data, &c)
		} else {
			err = s.buildXY(bl, data, &c)
		}
	case "bin":
		err = s.buildBins(bl, data, &c)
	case "boxplot":
		err = s.buildBoxes(bl, data, &c)
	case "smooth", "density":
		err = s.buildCurves(bl, data, &c)
	default:
		err = errors.Newf("unknown stat %q", bl.Stat)
	}
	if err != nil {
		bl.Err = errors.Wrapf(err, "layer %d (%s)", index, l.Geom)
		return bl
	}
	bl.Data = c.Table()
	return bl
}

func isRectGeom(geom string) bool {
	return geom == "bar" || geom == "col" || geom == "histogram"
}

// discrete returns the x positions and labels of column col. Discrete
// columns map their levels to 1, 2, ....
func (s *Spec) discrete(t *table.Table, col string) (xs []float64, labels, levels []string, err error) {
	labels, err = Strings(t, col)
	if err != nil {
		return nil, nil, nil, err
	}
	if col == "" {
		levels = []string{""}
	} else {
		levels = s.levelsOf(col, labels, IsNumeric(t, col))
	}
	rank := indexOf(levels)
	xs = make([]float64, len(labels))
	for i, l := range labels {
		xs[i] = float64(rank[l] + 1)
	}
	return xs, labels, levels, nil
}

func (s *Spec) seriesOf(t *table.Table, col string) ([]string, []string, error) {
	keys, err := Strings(t, col)
	if err != nil {
		return nil, nil, err
	}
	if col == "" {
		return keys, []string{""}, nil
	}
	return keys, s.levelsOf(col, keys, IsNumeric(t, col)), nil
}

func (s *Spec) buildBars(bl *BuiltLayer, t *table.Table, c *Columns) error {
	xs, labels, levels, err := s.discrete(t, bl.Aes.X)
	if err != nil {
		return err
	}
	keys, series, err := s.seriesOf(t, bl.Aes.Fill)
	if err != nil {
		return err
	}
	bl.XLevels, bl.Series = levels, series

	type bar struct {
		x      float64
		label  string
		series string
		y      float64
	}
	var bars []bar
	if bl.Stat == "count" {
		counts := map[[2]string]int{}
		for i := range labels {
			counts[[2]string{labels[i], keys[i]}]++
		}
		for li, l := range levels {
			for _, k := range series {
				if n := counts[[2]string{l, k}]; n > 0 {
					bars = append(bars, bar{float64(li + 1), l, k, float64(n)})
				}
			}
		}
	} else {
		ys, err := Floats(t, bl.Aes.Y)
		if err != nil {
			return err
		}
		for i := range ys {
			bars = append(bars, bar{xs[i], labels[i], keys[i], ys[i]})
		}
	}

	switch bl.Position {
	case "stack":
		// Stack each category bottom-up in series order. Rows keep
		// their input order.
		srank := indexOf(series)
		byX := map[float64][]int{}
		for i, b := range bars {
			byX[b.x] = append(byX[b.x], i)
		}
		ymin := make([]float64, len(bars))
		ymax := make([]float64, len(bars))
		for _, idx := range byX {
			sort.SliceStable(idx, func(i, j int) bool {
				return srank[bars[idx[i]].series] < srank[bars[idx[j]].series]
			})
			ys := make([]float64, len(idx))
			for i, bi := range idx {
				ys[i] = bars[bi].y
			}
			lo, hi := stat.Stack(ys)
			for i, bi := range idx {
				ymin[bi], ymax[bi] = lo[i], hi[i]
			}
		}
		for i, b := range bars {
			c.Add(b.x, b.y, b.label, b.series)
			c.Rect(b.x-BarWidth/2, b.x+BarWidth/2, ymin[i], ymax[i])
		}
	case "dodge":
		srank := indexOf(series)
		for _, b := range bars {
			lo, hi := stat.Dodge(b.x, srank[b.series], len(series), BarWidth)
			c.Add(b.x, b.y, b.label, b.series)
			c.Rect(lo, hi, 0, b.y)
		}
	case "identity":
		for _, b := range bars {
			c.Add(b.x, b.y, b.label, b.series)
			c.Rect(b.x-BarWidth/2, b.x+BarWidth/2, 0, b.y)
		}
	default:
		return errors.Newf("unknown position %q", bl.Position)
	}
	return nil
}

func (s *Spec) buildBins(bl *BuiltLayer, t *table.Table, c *Columns) error {
	xs, err := Floats(t, bl.Aes.X)
	if err != nil {
		return err
	}
	bins, err := stat.Histogram(xs, bl.Layer.Bins)
	if err != nil {
		return err
	}
	bl.Series = []string{""}
	for _, b := range bins {
		c.Add(b.Mid(), float64(b.Count), formatFloat(b.Mid()), "")
		c.Rect(b.Lo, b.Hi, 0, float64(b.Count))
	}
	return nil
}

func (s *Spec) buildBoxes(bl *BuiltLayer, t *table.Table, c *Columns) error {
	_, labels, levels, err := s.discrete(t, bl.Aes.X)
	if err != nil {
		return err
	}
	ys, err := Floats(t, bl.Aes.Y)
	if err != nil {
		return err
	}
	bl.XLevels, bl.Series = levels, []string{""}
	for li, l := range levels {
		var sample []float64
		for i := range ys {
			if labels[i] == l {
				sample = append(sample, ys[i])
			}
		}
		box, err := stat.Boxplot(sample, 0)
		if err != nil {
			return errors.Wrapf(err, "category %q", l)
		}
		x := float64(li + 1)
		c.Add(x, box.Median, l, "")
		c.Rect(x-BarWidth/2, x+BarWidth/2, box.Min, box.Max)
		c.Box(box)
	}
	return nil
}

// xPositions returns numeric x values for a line or point layer.
func (s *Spec) xPositions(bl *BuiltLayer, t *table.Table) ([]float64, []string, error) {
	if IsNumeric(t, bl.Aes.X) {
		xs, err := Floats(t, bl.Aes.X)
		if err != nil {
			return nil, nil, err
		}
		labels, _ := Strings(t, bl.Aes.X)
		return xs, labels, nil
	}
	xs, labels, levels, err := s.discrete(t, bl.Aes.X)
	bl.XLevels = levels
	return xs, labels, err
}

func (s *Spec) buildXY(bl *BuiltLayer, t *table.Table, c *Columns) error {
	xs, labels, err := s.xPositions(bl, t)
	if err != nil {
		return err
	}
	ys, err := Floats(t, bl.Aes.Y)
	if err != nil {
		return err
	}
	keys, series, err := s.seriesOf(t, bl.Aes.Series())
	if err != nil {
		return err
	}
	bl.Series = series
	srank := indexOf(series)
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	// Lines connect points in x order within each series.
	if bl.Geom == "line" {
		sort.SliceStable(idx, func(i, j int) bool {
			a, b := idx[i], idx[j]
			if srank[keys[a]] != srank[keys[b]] {
				return srank[keys[a]] < srank[keys[b]]
			}
			return xs[a] < xs[b]
		})
	}
	for _, i := range idx {
		c.Add(xs[i], ys[i], labels[i], keys[i])
	}
	return nil
}

func (s *Spec) buildCurves(bl *BuiltLayer, t *table.Table, c *Columns) error {
	xs, err := Floats(t, bl.Aes.X)
	if err != nil {
		return err
	}
	var ys []float64
	if bl.Stat == "smooth" {
		if ys, err = Floats(t, bl.Aes.Y); err != nil {
			return err
		}
	}
	keys, series, err := s.seriesOf(t, bl.Aes.Series())
	if err != nil {
		return err
	}
	bl.Series = series
	for _, k := range series {
		var sx, sy []float64
		for i := range xs {
			if keys[i] == k {
				sx = append(sx, xs[i])
				if ys != nil {
					sy = append(sy, ys[i])
				}
			}
		}
		var pts []stat.XY
		if bl.Stat == "smooth" {
			pts, err = stat.Smooth(sx, sy, bl.Layer.Span, 0)
		} else {
			pts, err = stat.Density(sx, 0)
		}
		if err != nil {
			return errors.Wrapf(err, "series %q", k)
		}
		for _, p := range pts {
			c.Add(p.X, p.Y, formatFloat(p.X), k)
		}
	}
	return nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

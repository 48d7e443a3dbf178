// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"sort"

	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/reconcile"
)

var palette = []string{"#4477aa", "#ee6677", "#228833", "#ccbb44", "#66ccee", "#aa3377", "#bbbbbb"}

func fill(i int) string {
	return `fill="` + palette[i%len(palette)] + `"`
}

func stroke(i int) string {
	return `stroke="` + palette[i%len(palette)] + `"`
}

func id(s string) string {
	return `id="` + s + `"`
}

// GridPanelID returns the GridScheme name of the facet panel at
// (row, col).
func GridPanelID(row, col int) string {
	return "panel-" + itoa(row) + "-" + itoa(col)
}

// ComposedPanelID returns the GridScheme name of the k'th composed
// panel. Composed panels are numbered down columns.
func ComposedPanelID(k int) string {
	return "panel-" + itoa(k)
}

func (b *SVG) drawSpec(d *device, s *plotspec.Spec) ([]grid.Placement, error) {
	top := d.title(s.Title)
	if s.Compose != nil {
		return b.drawComposed(d, s, top)
	}
	built, err := plotspec.Build(s)
	if err != nil {
		return nil, err
	}
	// Facet panels share scales.
	e := newExtent()
	var all []*plotspec.BuiltLayer
	for _, p := range built.Panels {
		for _, bl := range p.Layers {
			e.layer(bl)
			all = append(all, bl)
		}
	}
	flip := horizontal(all)
	var out []grid.Placement
	for _, p := range built.Panels {
		pid := GridPanelID(p.Row, p.Col)
		x, y, w, h := d.cell(built.Layout, p.Row, p.Col, top)
		b.drawPanel(d, s, pid, p.Index, p.Key, p.Layers, e.frame(x, y, w, h, flip))
		out = append(out, grid.Placement{ID: pid, Index: p.Index, Row: p.Row, Col: p.Col})
	}
	return out, nil
}

func (b *SVG) drawComposed(d *device, s *plotspec.Spec, top float64) ([]grid.Placement, error) {
	plots := s.Compose.Flatten()
	order := grid.ColMajor
	if s.Compose.RowMajor() {
		order = grid.RowMajor
	}
	l := grid.Wrap(len(plots), s.Compose.NRow, s.Compose.NCol, order)
	byCol := grid.Layout{Rows: l.Rows, Cols: l.Cols, Order: grid.ColMajor}
	var out []grid.Placement
	for i, p := range plots {
		r, c := l.Position(i + 1)
		k := byCol.Index(r, c)
		pid := ComposedPanelID(k)
		x, y, w, h := d.cell(l, r, c, top)
		out = append(out, grid.Placement{ID: pid, Index: k, Row: r, Col: c})

		built, err := plotspec.Build(p)
		if err != nil {
			// The panel stays empty.
			b.log().Warnw("composed plot not drawn", "plot", i+1, "error", err)
			d.c.Gid(pid)
			d.c.Gend()
			continue
		}
		e := newExtent()
		layers := built.Panels[0].Layers
		for _, bl := range layers {
			e.layer(bl)
		}
		b.drawPanel(d, p, pid, k, p.Title, layers, e.frame(x, y, w, h, horizontal(layers)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// horizontal reports whether the first drawable layer is horizontal.
func horizontal(layers []*plotspec.BuiltLayer) bool {
	for _, bl := range layers {
		if bl.Err == nil {
			return bl.Horizontal
		}
	}
	return false
}

func (b *SVG) drawPanel(d *device, s *plotspec.Spec, pid string, pk int, strip string, layers []*plotspec.BuiltLayer, f *frame) {
	d.c.Gid(pid)
	if strip != "" {
		d.c.Text(f.x0+f.w/2, f.y0-4, strip, `text-anchor="middle"`, `font-size="10"`)
	}
	d.axes(f, "axis-x."+pid, "axis-y."+pid)
	for _, bl := range layers {
		if bl.Err != nil || bl.Data == nil {
			continue
		}
		r := plotspec.Unpack(bl.Data)
		base := "." + itoa(bl.Index) + "." + itoa(pk) + "."
		switch bl.Geom {
		case "bar", "col", "histogram":
			order := reconcile.Indexes(layertype.Declarative(s, bl.Layer), bl)
			drawRects(d, f, r, order, bl.Series, func(n int) []string {
				return []string{"geom_rect.rect" + base + itoa(n)}
			})
		case "boxplot":
			drawBoxes(d, f, r, func(n int) (string, string) {
				return "geom_boxplot.gTree" + base + itoa(n), "geom_crossbar" + base + itoa(n)
			})
		case "line":
			drawLines(d, f, r, bl.Series, func(n int) string {
				return "GRID.polyline" + base + itoa(n)
			})
		case "smooth", "density":
			drawLines(d, f, r, bl.Series, func(n int) string {
				return "geom_smooth.polyline" + base + itoa(n)
			})
		case "point":
			for i := 0; i < r.Len(); i++ {
				px, py := f.pt(r.X[i], r.Y[i])
				d.c.Circle(px, py, 3, id("geom_point.points"+base+itoa(i+1)), fill(0))
			}
		default:
			b.log().Debugw("geometry not drawn", "geom", bl.Geom)
		}
	}
	d.c.Gend()
}

// drawRects draws the rectangles of rows in order. names returns the
// names of the shapes drawn for the n'th rectangle (1-based): a
// filled shape, then outlines.
func drawRects(d *device, f *frame, r plotspec.Rows, order []int, series []string, names func(n int) []string) {
	if !r.HasRects() {
		return
	}
	rank := make(map[string]int)
	for i, s := range series {
		rank[s] = i
	}
	for n, i := range order {
		x, y, w, h := f.box(r.XMin[i], r.XMax[i], r.YMin[i], r.YMax[i])
		for j, name := range names(n + 1) {
			if j == 0 {
				d.c.Rect(x, y, w, h, id(name), fill(rank[r.Series[i]]))
			} else {
				d.c.Rect(x, y, w, h, id(name), `fill="none"`, `stroke="#333"`)
			}
		}
	}
}

// drawBoxes draws one group per box. names returns the group name
// of the n'th box (1-based) and the prefix naming its parts.
func drawBoxes(d *device, f *frame, r plotspec.Rows, names func(n int) (group, part string)) {
	if r.Middle == nil {
		return
	}
	for i := 0; i < r.Len(); i++ {
		group, part := names(i + 1)
		x0, x1, wx := r.XMin[i], r.XMax[i], r.X[i]
		d.c.Gid(group)
		x, y, w, h := f.box(x0, x1, r.Lower[i], r.Upper[i])
		d.c.Rect(x, y, w, h, id(part+".box"), `fill="white"`, `stroke="#333"`)
		mx1, my1 := f.pt(x0, r.Middle[i])
		mx2, my2 := f.pt(x1, r.Middle[i])
		d.c.Line(mx1, my1, mx2, my2, id(part+".median"), `stroke="#333"`)
		for j, seg := range [][2]float64{{r.YMin[i], r.Lower[i]}, {r.Upper[i], r.YMax[i]}} {
			sx1, sy1 := f.pt(wx, seg[0])
			sx2, sy2 := f.pt(wx, seg[1])
			d.c.Line(sx1, sy1, sx2, sy2, id(part+".whisker."+itoa(j+1)), `stroke="#333"`)
		}
		j := 0
		for _, outs := range [][]float64{r.OutLo[i], r.OutHi[i]} {
			for _, o := range outs {
				j++
				px, py := f.pt(wx, o)
				d.c.Circle(px, py, 2, id(part+".flier."+itoa(j)), `fill="#333"`)
			}
		}
		d.c.Gend()
	}
}

// drawLines draws one polyline per series that has rows, in series
// order. names returns the name of the n'th line (1-based).
func drawLines(d *device, f *frame, r plotspec.Rows, series []string, names func(n int) string) {
	n := 0
	for si, s := range series {
		var xs, ys []float64
		for i := 0; i < r.Len(); i++ {
			if r.Series[i] != s {
				continue
			}
			px, py := f.pt(r.X[i], r.Y[i])
			xs, ys = append(xs, px), append(ys, py)
		}
		if xs == nil {
			continue
		}
		n++
		d.c.Polyline(xs, ys, id(names(n)), `fill="none"`, stroke(si))
	}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	svg "github.com/ajstarks/svgo/float"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/scene"
)

// Layout of a cell, in pixels.
const (
	titleHeight = 24
	stripHeight = 16
	tickLen     = 4
	pad         = 6
	maxTicks    = 6
)

var face = basicfont.Face7x13

// device is the drawing state of one chart. A device is never reused
// across charts.
type device struct {
	buf  bytes.Buffer
	c    *svg.SVG
	w, h float64

	// Shape counters, by id prefix.
	counts map[string]int
}

func newDevice(w, h float64) *device {
	d := &device{w: w, h: h, counts: make(map[string]int)}
	d.c = svg.New(&d.buf)
	d.c.Start(w, h)
	return d
}

// next returns the next id with the given prefix.
func (d *device) next(prefix string) string {
	d.counts[prefix]++
	return prefix + itoa(d.counts[prefix])
}

// title draws a chart title and returns the height it used.
func (d *device) title(t string) float64 {
	if t == "" {
		return 0
	}
	d.c.Text(d.w/2, titleHeight-pad, t, `id="title"`, `text-anchor="middle"`)
	return titleHeight
}

// finish closes the document and decodes it into a scene tree.
func (d *device) finish(scheme Scheme, panels []grid.Placement) (*Rendering, error) {
	d.c.End()
	tree, err := scene.DecodeSVG(bytes.NewReader(d.buf.Bytes()))
	if err != nil {
		return nil, err
	}
	return &Rendering{Tree: tree, SVG: d.buf.Bytes(), Panels: panels, Scheme: scheme}, nil
}

// cell returns the pixel box of grid cell (row, col) of l below a
// band of height top.
func (d *device) cell(l grid.Layout, row, col int, top float64) (x, y, w, h float64) {
	w = d.w / float64(l.Cols)
	h = (d.h - top) / float64(l.Rows)
	return float64(col-1) * w, top + float64(row-1)*h, w, h
}

// extent accumulates the data range of a panel.
type extent struct {
	xlo, xhi, ylo, yhi float64
	// ncat is the number of categories of a discrete x axis, or 0.
	ncat   int
	levels []string
}

func newExtent() *extent {
	return &extent{xlo: math.Inf(1), xhi: math.Inf(-1), ylo: math.Inf(1), yhi: math.Inf(-1)}
}

func (e *extent) x(xs ...float64) {
	for _, x := range xs {
		e.xlo, e.xhi = math.Min(e.xlo, x), math.Max(e.xhi, x)
	}
}

func (e *extent) y(ys ...float64) {
	for _, y := range ys {
		e.ylo, e.yhi = math.Min(e.ylo, y), math.Max(e.yhi, y)
	}
}

// layer adds the data of one built layer.
func (e *extent) layer(bl *plotspec.BuiltLayer) {
	if bl == nil || bl.Data == nil {
		return
	}
	r := plotspec.Unpack(bl.Data)
	if r.HasRects() {
		e.x(r.XMin...)
		e.x(r.XMax...)
		e.y(r.YMin...)
		e.y(r.YMax...)
	} else {
		e.x(r.X...)
		e.y(r.Y...)
	}
	for i := range r.OutLo {
		e.y(r.OutLo[i]...)
		e.y(r.OutHi[i]...)
	}
	if len(bl.XLevels) > e.ncat && (r.HasRects() || bl.Stat == "identity") {
		e.ncat, e.levels = len(bl.XLevels), bl.XLevels
	}
}

// frame maps data coordinates into a panel's plotting area.
type frame struct {
	x0, y0, w, h float64
	xs, ys       scale.Linear
	flip         bool
	levels       []string
}

func (e *extent) frame(x, y, w, h float64, flip bool) *frame {
	xs := scale.Linear{Min: e.xlo, Max: e.xhi}
	ys := scale.Linear{Min: e.ylo, Max: e.yhi}
	if math.IsInf(e.xlo, 1) {
		xs = scale.Linear{Min: 0, Max: 1}
	}
	if math.IsInf(e.ylo, 1) {
		ys = scale.Linear{Min: 0, Max: 1}
	}
	if xs.Min == xs.Max {
		xs.Min, xs.Max = xs.Min-0.5, xs.Max+0.5
	}
	if ys.Min == ys.Max {
		ys.Min, ys.Max = ys.Min-0.5, ys.Max+0.5
	}
	if e.ncat > 0 {
		xs.Min, xs.Max = math.Min(xs.Min, 0.5), math.Max(xs.Max, float64(e.ncat)+0.5)
	} else {
		xs.Nice(scale.TickOptions{Max: maxTicks})
	}
	ys.Nice(scale.TickOptions{Max: maxTicks})

	f := &frame{xs: xs, ys: ys, flip: flip, levels: e.levels}
	// Leave room for the value axis labels on the left.
	left := 0.0
	for _, l := range f.labels(f.leftScale(), f.leftLevels()) {
		left = math.Max(left, textWidth(l))
	}
	left += tickLen + 2*pad
	bottom := float64(face.Metrics().Height.Ceil()) + tickLen + 2*pad
	f.x0, f.y0 = x+left, y+stripHeight
	f.w, f.h = math.Max(w-left-pad, 1), math.Max(h-stripHeight-bottom, 1)
	return f
}

// pt maps data (x, y) to pixels. With flip, x runs up the vertical
// axis and y along the horizontal one.
func (f *frame) pt(x, y float64) (px, py float64) {
	if f.flip {
		return f.x0 + f.ys.Map(y)*f.w, f.y0 + f.h - f.xs.Map(x)*f.h
	}
	return f.x0 + f.xs.Map(x)*f.w, f.y0 + f.h - f.ys.Map(y)*f.h
}

// box maps a data rectangle to a pixel rectangle.
func (f *frame) box(xmin, xmax, ymin, ymax float64) (x, y, w, h float64) {
	x1, y1 := f.pt(xmin, ymin)
	x2, y2 := f.pt(xmax, ymax)
	return math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2 - x1), math.Abs(y2 - y1)
}

func (f *frame) leftScale() scale.Linear {
	if f.flip {
		return f.xs
	}
	return f.ys
}

func (f *frame) leftLevels() []string {
	if f.flip {
		return f.levels
	}
	return nil
}

func (f *frame) bottomScale() scale.Linear {
	if f.flip {
		return f.ys
	}
	return f.xs
}

func (f *frame) bottomLevels() []string {
	if f.flip {
		return nil
	}
	return f.levels
}

// ticks returns the tick positions of s. Discrete axes tick each
// category.
func ticks(s scale.Linear, levels []string) []float64 {
	if levels != nil {
		out := make([]float64, len(levels))
		for i := range out {
			out[i] = float64(i + 1)
		}
		return out
	}
	major, _ := s.Ticks(scale.TickOptions{Max: maxTicks})
	return major
}

func (f *frame) labels(s scale.Linear, levels []string) []string {
	if levels != nil {
		return levels
	}
	var out []string
	for _, t := range ticks(s, nil) {
		out = append(out, strconv.FormatFloat(t, 'g', 6, 64))
	}
	return out
}

// axes draws both axes of f as groups named by id.
func (d *device) axes(f *frame, xid, yid string) {
	d.c.Rect(f.x0, f.y0, f.w, f.h, `fill="none"`, `stroke="#999"`)

	bs, bl := f.bottomScale(), f.bottomLevels()
	d.c.Gid(xid)
	for i, t := range ticks(bs, bl) {
		px := f.x0 + bs.Map(t)*f.w
		py := f.y0 + f.h
		d.c.Line(px, py, px, py+tickLen, `stroke="#333"`)
		d.c.Text(px, py+tickLen+float64(face.Metrics().Ascent.Ceil()), f.labels(bs, bl)[i], `text-anchor="middle"`, `font-size="10"`)
	}
	d.c.Gend()

	ls, ll := f.leftScale(), f.leftLevels()
	d.c.Gid(yid)
	for i, t := range ticks(ls, ll) {
		px := f.x0
		py := f.y0 + f.h - ls.Map(t)*f.h
		d.c.Line(px-tickLen, py, px, py, `stroke="#333"`)
		label := f.labels(ls, ll)[i]
		d.c.Text(px-tickLen-pad-textWidth(label), py+float64(face.Metrics().Ascent.Ceil())/2, label, `font-size="10"`)
	}
	d.c.Gend()
}

// textWidth returns the rendered width of s in pixels.
func textWidth(s string) float64 {
	return float64(font.MeasureString(face, s).Ceil())
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

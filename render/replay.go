// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/cockroachdb/errors"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/callstat"
	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/internal/logging"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/reconcile"
)

// replay draws every call of g into one panel. A Start call that
// cannot be drawn fails the whole group; other calls that cannot be
// drawn leave their call group empty.
func (b *SVG) replay(d *device, g *callog.PlotGroup) ([]grid.Placement, error) {
	calls := g.Calls()
	layers := make([]*plotspec.BuiltLayer, len(calls))
	e := newExtent()
	for i, c := range calls {
		if layertype.Imperative(c) == layertype.Unknown {
			continue
		}
		bl, err := callstat.Layer(i+1, c)
		if err != nil {
			if i == 0 {
				return nil, errors.Wrap(err, "replaying start call")
			}
			b.log().Warnw("call not drawn", logging.FieldLayer, i+1, logging.FieldError, err)
			continue
		}
		layers[i] = bl
		e.layer(bl)
	}

	top := d.title(g.Start.Option("main", ""))
	x, y, w, h := d.cell(grid.Single, 1, 1, top)
	f := e.frame(x, y, w, h, layers[0] != nil && layers[0].Horizontal)
	aid := AxesID(g.Index)
	d.c.Gid(aid)
	d.axes(f, "xaxis_"+itoa(g.Index), "yaxis_"+itoa(g.Index))
	for i, c := range calls {
		d.c.Gid(CallGroupID(i + 1))
		if bl := layers[i]; bl != nil {
			d.replayLayer(f, layertype.Imperative(c), bl)
		}
		d.c.Gend()
	}
	d.c.Gend()
	return []grid.Placement{{ID: aid, Index: g.Index, Row: 1, Col: 1}}, nil
}

func (d *device) replayLayer(f *frame, t layertype.Type, bl *plotspec.BuiltLayer) {
	r := plotspec.Unpack(bl.Data)
	switch {
	case t.Barlike():
		// Each bar is a filled patch and an outline patch.
		drawRects(d, f, r, reconcile.Indexes(t, bl), bl.Series, func(int) []string {
			return []string{d.next("patch_"), d.next("patch_")}
		})
	case t == layertype.Box:
		drawBoxes(d, f, r, func(int) (string, string) {
			n := d.next("boxplot_")
			return n, n
		})
	case t == layertype.Point:
		d.c.Gid(d.next("PathCollection_"))
		for i := 0; i < r.Len(); i++ {
			px, py := f.pt(r.X[i], r.Y[i])
			d.c.Circle(px, py, 3, id(d.next("marker_")), fill(0))
		}
		d.c.Gend()
	case t.Curve():
		drawLines(d, f, r, bl.Series, func(int) string {
			return d.next("line2d_")
		})
	}
}

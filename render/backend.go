// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render turns plots into scene trees.
//
// A Backend is a black box to the rest of the system: it draws a
// declarative specification or replays one group of drawing calls and
// returns the resulting scene tree, along with its own description of
// the panels it drew. SVG is the reference backend.
package render

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/scene"
)

// ErrUnavailable is returned by a backend that cannot render at all.
var ErrUnavailable = errors.New("rendering backend unavailable")

// ErrBusy is returned when a backend is asked to draw a chart while
// it is still drawing another one.
var ErrBusy = errors.New("rendering backend is busy")

// Scheme identifies how a backend names the nodes it draws.
type Scheme string

const (
	// GridScheme names shapes after the geometry, layer and panel
	// that drew them, as in "geom_rect.rect.1.1.3".
	GridScheme Scheme = "grid"

	// PatchScheme numbers shapes per primitive across a figure, as
	// in "patch_7" or "line2d_2", and groups each call's shapes.
	PatchScheme Scheme = "patch"
)

// Rendering is one drawn chart.
type Rendering struct {
	Tree *scene.Node
	SVG  []byte

	// Panels describes the panels in the tree. For declarative
	// renderings the order is the backend's own enumeration order,
	// which need not be the visual order.
	Panels []grid.Placement

	Scheme Scheme
}

// A Backend draws charts. Backends are not reentrant: callers must
// not draw two charts on one backend at the same time.
type Backend interface {
	// Render draws a specification whose data has been loaded.
	Render(ctx context.Context, s *plotspec.Spec) (*Rendering, error)

	// Replay draws one plot group: its Start call followed by
	// every Augment call, in capture order, into one tree.
	Replay(ctx context.Context, g *callog.PlotGroup) (*Rendering, error)
}

// CallGroupID returns the name of the group holding the shapes drawn
// by the i'th call (1-based) of a plot group in a PatchScheme
// rendering.
func CallGroupID(i int) string {
	return "call_" + itoa(i)
}

// AxesID returns the name of the panel group of plot group index in a
// PatchScheme rendering.
func AxesID(index int) string {
	return "axes_" + itoa(index)
}

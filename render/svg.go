// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/internal/logging"
	"github.com/aclements/go-a11ychart/plotspec"
)

// SVG is a Backend that draws SVG documents and decodes them back
// into scene trees. Declarative plots use GridScheme names and
// replayed call groups use PatchScheme names.
type SVG struct {
	Width, Height float64
	Log           *zap.SugaredLogger

	mu  sync.Mutex
	dev *device
}

// NewSVG returns an SVG backend drawing w × h pixel charts.
func NewSVG(w, h float64, log *zap.SugaredLogger) *SVG {
	return &SVG{Width: w, Height: h, Log: logging.Or(log)}
}

// begin installs a fresh device for one chart.
func (b *SVG) begin(ctx context.Context) (*device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.Width <= 0 || b.Height <= 0 {
		return nil, errors.Wrapf(ErrUnavailable, "canvas is %gx%g", b.Width, b.Height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dev != nil {
		return nil, ErrBusy
	}
	b.dev = newDevice(b.Width, b.Height)
	return b.dev, nil
}

// end discards the chart's device, whether or not drawing succeeded.
func (b *SVG) end() {
	b.mu.Lock()
	b.dev = nil
	b.mu.Unlock()
}

func (b *SVG) log() *zap.SugaredLogger {
	return logging.Or(b.Log)
}

func (b *SVG) Render(ctx context.Context, s *plotspec.Spec) (*Rendering, error) {
	d, err := b.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer b.end()
	panels, err := b.drawSpec(d, s)
	if err != nil {
		return nil, err
	}
	return d.finish(GridScheme, panels)
}

func (b *SVG) Replay(ctx context.Context, g *callog.PlotGroup) (*Rendering, error) {
	d, err := b.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer b.end()
	panels, err := b.replay(d, g)
	if err != nil {
		return nil, err
	}
	return d.finish(PatchScheme, panels)
}

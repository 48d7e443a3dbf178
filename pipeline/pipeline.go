// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline turns charts into accessibility data models.
//
// A chart is a declarative specification or a session's drawing
// calls. Each chart is processed sequentially: its topology is
// detected, drawing calls are grouped into plots, layers are
// classified and their data extracted in drawing order, scene trees
// are built by the rendering backend, selectors are bound to the
// data, and the panels are assembled into the visual grid.
//
// A layer that fails is degraded to empty data or selectors without
// affecting its siblings. Only an unavailable backend or a corrupt
// session store fails a whole chart.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aclements/go-a11ychart/a11y"
	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/extract"
	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/internal/logging"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/render"
	"github.com/aclements/go-a11ychart/selector"
	"github.com/aclements/go-a11ychart/session"
	"github.com/aclements/go-a11ychart/topology"
)

// Stages at which a layer can fail.
const (
	StageExtract  = "extract"
	StageTree     = "tree"
	StageSelector = "selector"
)

// LayerError records why a layer was degraded.
type LayerError struct {
	Panel int
	Layer int
	Stage string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("panel %d layer %d: %s: %v", e.Panel, e.Layer, e.Stage, e.Err)
}

func (e *LayerError) Unwrap() error {
	return e.Err
}

// Pipeline processes charts with one rendering backend. A Pipeline
// must not process two charts at once.
type Pipeline struct {
	Backend render.Backend
	Log     *zap.SugaredLogger

	// IDs returns fresh identifiers for charts, panels and layers.
	// If nil, random UUIDs are used.
	IDs func() string

	// Errors collects the degraded layers of the last chart.
	Errors []*LayerError
}

// New returns a pipeline drawing with b.
func New(b render.Backend, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{Backend: b, Log: log}
}

func (p *Pipeline) newID() string {
	if p.IDs != nil {
		return p.IDs()
	}
	return uuid.NewString()
}

// panelWork is one panel on its way through the pipeline.
type panelWork struct {
	// index is the panel's 1-based position in the chart's grid
	// fill order.
	index    int
	row, col int
	title    string
	axes     *a11y.Axes
	layers   []*layerWork

	// scope names the subtrees holding this panel's shapes.
	scope []string
	tree  *render.Rendering
	// treeErr is set if the panel's tree could not be built.
	treeErr error
}

type layerWork struct {
	index int
	typ   layertype.Type
	res   *extract.Result

	// built is the declarative layer, or call the drawing call.
	built *plotspec.BuiltLayer
	call  *callog.Call

	sel      any
	degraded bool
}

// run is the state of one chart.
type run struct {
	*chart
	p      *Pipeline
	layout grid.Layout
	panels []*panelWork
}

func (p *Pipeline) start(imperative bool) *run {
	c := &chart{id: p.newID(), imperative: imperative}
	c.log = logging.Or(p.Log).With(logging.FieldChart, c.id)
	p.Errors = nil
	return &run{chart: c, p: p}
}

func (r *run) degrade(pw *panelWork, lw *layerWork, stage string, err error) {
	lw.degraded = true
	le := &LayerError{Panel: pw.index, Layer: lw.index, Stage: stage, Err: err}
	r.p.Errors = append(r.p.Errors, le)
	r.log.Warnw("layer degraded", logging.FieldPanel, pw.index, logging.FieldLayer, lw.index,
		logging.FieldType, lw.typ, "stage", stage, logging.FieldError, err)
}

// fatal reports whether a backend error fails the whole chart.
func fatal(ctx context.Context, err error) bool {
	return errors.Is(err, render.ErrUnavailable) || ctx.Err() != nil
}

// FromSpec processes a declarative specification whose data has been
// loaded.
func (p *Pipeline) FromSpec(ctx context.Context, s *plotspec.Spec) (*a11y.Model, error) {
	r := p.start(false)
	topo := topology.Detect(s)
	r.layout = topo.Layout
	r.advance(TopologyDetected)
	r.log.Debugw("topology", "kind", topo.Kind, "layout", topo.Layout)

	if topo.Kind == topology.Composed {
		for i, plot := range s.Compose.Flatten() {
			if s.Compose.Plots[i].Facet != nil {
				r.log.Infow("facets of composed plot ignored", logging.FieldPanel, i+1)
			}
			row, col := r.layout.Position(i + 1)
			pw := &panelWork{index: i + 1, row: row, col: col, title: plot.Title, axes: axes(plot)}
			b, err := plotspec.Build(plot)
			if err != nil {
				// Every layer of this plot degrades.
				for li, l := range plot.Layers {
					pw.layers = append(pw.layers, &layerWork{
						index: li + 1,
						typ:   layertype.Declarative(plot, l),
						built: &plotspec.BuiltLayer{Index: li + 1, Layer: l, Err: err},
					})
				}
			} else {
				pw.layers = classify(plot, b.Panels[0])
			}
			r.panels = append(r.panels, pw)
		}
	} else {
		b, err := plotspec.Build(s)
		if err != nil {
			return nil, errors.Wrap(err, "building plot")
		}
		r.layout = b.Layout
		for _, bp := range b.Panels {
			title := s.Title
			if bp.Key != "" {
				title = bp.Key
			}
			r.panels = append(r.panels, &panelWork{
				index: bp.Index, row: bp.Row, col: bp.Col,
				title: title, axes: axes(s),
				layers: classify(s, bp),
			})
		}
	}
	r.advance(LayersClassified)

	for _, pw := range r.panels {
		for _, lw := range pw.layers {
			res, err := extract.Declarative(lw.typ, lw.built)
			if err != nil {
				r.degrade(pw, lw, StageExtract, err)
				res = extract.Empty(lw.typ)
			}
			lw.res = res
		}
	}
	r.advance(DataExtracted)

	// One tree for the whole specification.
	tree, err := p.Backend.Render(ctx, s)
	if err != nil && fatal(ctx, err) {
		return nil, errors.Wrap(err, "rendering")
	}
	var placed map[int]grid.Placement
	if err == nil {
		placed, err = grid.Remap(r.layout, tree.Panels)
	}
	for _, pw := range r.panels {
		pw.tree, pw.treeErr = tree, err
		if err != nil {
			continue
		}
		if pl, ok := placed[pw.index]; ok {
			pw.scope = []string{pl.ID}
		} else {
			r.log.Warnw("backend drew no panel for grid cell", logging.FieldPanel, pw.index)
		}
	}
	r.advance(TreeBuilt)

	return r.finish()
}

func classify(s *plotspec.Spec, bp *plotspec.Panel) []*layerWork {
	var out []*layerWork
	for i, bl := range bp.Layers {
		out = append(out, &layerWork{
			index: i + 1,
			typ:   layertype.Declarative(s, s.Layers[i]),
			built: bl,
		})
	}
	return out
}

func axes(s *plotspec.Spec) *a11y.Axes {
	x, y := s.Labels.X, s.Labels.Y
	if x == "" {
		x = s.Mapping.X
	}
	if y == "" {
		y = s.Mapping.Y
	}
	if x == "" && y == "" {
		return nil
	}
	return &a11y.Axes{X: x, Y: y}
}

// FromCalls processes one session's drawing calls, in capture order.
func (p *Pipeline) FromCalls(ctx context.Context, calls []*callog.Call) (*a11y.Model, error) {
	r := p.start(true)
	topo := topology.FromLayout(calls)
	r.advance(TopologyDetected)

	groups, _ := callog.Group(calls)
	r.layout = topo.Layout.Grow(len(groups))
	if r.layout != topo.Layout {
		r.log.Infow("grid grown to fit plots", "layout", r.layout, logging.FieldCount, len(groups))
	}
	r.advance(Grouped)
	r.log.Debugw("grouped calls", logging.FieldCount, len(groups), "layout", r.layout)

	for _, g := range groups {
		row, col := r.layout.Position(g.Index)
		pw := &panelWork{
			index: g.Index, row: row, col: col,
			title: g.Start.Option("main", ""),
		}
		if x, y := g.Start.Option("xlab", ""), g.Start.Option("ylab", ""); x != "" || y != "" {
			pw.axes = &a11y.Axes{X: x, Y: y}
		}
		for i, c := range g.Calls() {
			pw.layers = append(pw.layers, &layerWork{index: i + 1, typ: layertype.Imperative(c), call: c})
		}
		r.panels = append(r.panels, pw)
	}
	r.advance(LayersClassified)

	for _, pw := range r.panels {
		for _, lw := range pw.layers {
			res, err := extract.Imperative(lw.index, lw.call)
			if err != nil {
				r.degrade(pw, lw, StageExtract, err)
				res = extract.Empty(lw.typ)
			}
			lw.res = res
		}
	}
	r.advance(DataExtracted)

	// One tree per plot group, holding all of its layers.
	for i, pw := range r.panels {
		g := groups[i]
		tree, err := p.Backend.Replay(ctx, g)
		if err != nil {
			if fatal(ctx, err) {
				return nil, errors.Wrap(err, "replaying")
			}
			pw.treeErr = err
			continue
		}
		pw.tree = tree
		if len(tree.Panels) > 0 {
			pw.scope = []string{tree.Panels[0].ID}
		}
	}
	r.advance(TreeBuilt)

	return r.finish()
}

// FromSession drains a session and processes its calls. The session
// is cleared even if processing fails.
func (p *Pipeline) FromSession(ctx context.Context, s *session.Session) (*a11y.Model, error) {
	var m *a11y.Model
	err := s.Process(ctx, func(calls []*callog.Call) error {
		var err error
		m, err = p.FromCalls(ctx, calls)
		return err
	})
	return m, err
}

// finish synthesizes selectors and assembles the grid.
func (r *run) finish() (*a11y.Model, error) {
	for _, pw := range r.panels {
		for _, lw := range pw.layers {
			switch {
			case lw.degraded:
				lw.sel = emptySelectors(lw.res)
			case pw.treeErr != nil:
				r.degrade(pw, lw, StageTree, pw.treeErr)
				lw.sel = emptySelectors(lw.res)
			default:
				q := selector.Query{
					Scheme: pw.tree.Scheme,
					Layer:  lw.index,
					Scope:  pw.scope,
					Result: lw.res,
				}
				if r.imperative {
					q.Scope = append(append([]string(nil), pw.scope...), render.CallGroupID(lw.index))
				}
				log := r.log.With(logging.FieldPanel, pw.index)
				sel, ok := selector.Synthesize(pw.tree.Tree, q, log)
				lw.sel = sel
				if !ok {
					r.degrade(pw, lw, StageSelector, errors.New("no matching shapes"))
				}
			}
		}
	}
	r.advance(SelectorsSynthesized)

	var cells []grid.Cell[a11y.Panel]
	for _, pw := range r.panels {
		panel := a11y.Panel{ID: r.p.newID(), Layers: []*a11y.Layer{}}
		for _, lw := range pw.layers {
			panel.Layers = append(panel.Layers, r.layer(pw, lw))
		}
		cells = append(cells, grid.Cell[a11y.Panel]{Row: pw.row, Col: pw.col, Value: panel})
	}
	arr, err := grid.Assemble(r.layout.Rows, r.layout.Cols, cells)
	if err != nil {
		return nil, errors.Wrap(err, "assembling panels")
	}
	r.advance(GridAssembled)

	m := &a11y.Model{ID: r.id, Panels: arr}
	r.advance(Done)
	r.log.Infow("chart done", logging.FieldCount, len(m.Layers()), "degraded", len(r.p.Errors))
	return m, nil
}

func (r *run) layer(pw *panelWork, lw *layerWork) *a11y.Layer {
	l := &a11y.Layer{
		ID:        r.p.newID(),
		Type:      string(lw.typ),
		Data:      lw.res.Data,
		Selectors: lw.sel,
		Title:     pw.title,
		Axes:      pw.axes,
		Degraded:  lw.degraded,
	}
	if lw.typ.Barlike() || lw.typ == layertype.Box {
		l.Orientation = a11y.Vertical
		if lw.res.Horizontal {
			l.Orientation = a11y.Horizontal
		}
	}
	return l
}

func emptySelectors(res *extract.Result) any {
	if res.Nested {
		return [][]string{}
	}
	return []string{}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selector binds layer data to the scene-tree nodes that
// draw it.
package selector

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/aclements/go-a11ychart/extract"
	"github.com/aclements/go-a11ychart/internal/logging"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/render"
	"github.com/aclements/go-a11ychart/scene"
)

// Node name patterns, by scheme and layer type. In GridScheme names
// "%L" stands for the layer index. PatchScheme shapes are numbered
// across the figure, so layers are told apart by their call group
// instead.
var patterns = map[render.Scheme]map[layertype.Type]string{
	render.GridScheme: {
		layertype.Bar:        `^geom_rect\.rect\.%L\.\d+\.\d+$`,
		layertype.Hist:       `^geom_rect\.rect\.%L\.\d+\.\d+$`,
		layertype.DodgedBar:  `^geom_rect\.rect\.%L\.\d+\.\d+$`,
		layertype.StackedBar: `^geom_rect\.rect\.%L\.\d+\.\d+$`,
		layertype.Line:       `^GRID\.polyline\.%L\.\d+\.\d+$`,
		layertype.Smooth:     `^geom_smooth\.polyline\.%L\.\d+\.\d+$`,
		layertype.Point:      `^geom_point\.points\.%L\.\d+\.\d+$`,
		layertype.Box:        `^geom_boxplot\.gTree\.%L\.\d+\.\d+$`,
	},
	render.PatchScheme: {
		layertype.Bar:        `^patch_\d+$`,
		layertype.Hist:       `^patch_\d+$`,
		layertype.DodgedBar:  `^patch_\d+$`,
		layertype.StackedBar: `^patch_\d+$`,
		layertype.Line:       `^line2d_\d+$`,
		layertype.Smooth:     `^line2d_\d+$`,
		layertype.Point:      `^marker_\d+$`,
		layertype.Box:        `^boxplot_\d+$`,
	},
}

var layerVar = regexp.MustCompile(`%L`)

// Pattern returns the name pattern of layer number layer of type t
// in a tree drawn with scheme, or nil if such layers draw nothing
// addressable.
func Pattern(scheme render.Scheme, t layertype.Type, layer int) *regexp.Regexp {
	p, ok := patterns[scheme][t]
	if !ok {
		return nil
	}
	return regexp.MustCompile(layerVar.ReplaceAllLiteralString(p, strconv.Itoa(layer)))
}

// Format returns the selector addressing the node named name.
func Format(name string) string {
	return "[id='" + name + "']"
}

// Query describes one layer to bind.
type Query struct {
	Scheme render.Scheme
	Layer  int

	// Scope names the subtrees to search, outermost first, such as
	// a panel and then a call group. Each is looked up within the
	// previous one.
	Scope []string

	Result *extract.Result
}

// Synthesize returns the selectors of q's data, shaped like the
// result's selector groups: a []string, or a [][]string for nested
// results. ok is false if no node matched a layer that has data; the
// selectors are then empty.
func Synthesize(tree *scene.Node, q Query, log *zap.SugaredLogger) (sel any, ok bool) {
	log = logging.Or(log).With(logging.FieldLayer, q.Layer, logging.FieldType, q.Result.Type)
	res := q.Result
	root := tree
	for _, name := range q.Scope {
		sub := root.Subtree(name)
		if sub == nil {
			log.Warnw("scope not found, searching the enclosing tree", "scope", name)
			break
		}
		root = sub
	}

	var nodes []*scene.Node
	if re := Pattern(q.Scheme, res.Type, q.Layer); re != nil {
		nodes = root.Find(func(n *scene.Node) bool {
			return n.Name != "" && re.MatchString(n.Name)
		})
	}
	picked, policy := Fit(nodes, res.Shapes)
	if policy != Exact {
		log.Warnw("selector count mismatch", logging.FieldCount, len(nodes), logging.FieldWant, res.Shapes, "policy", policy)
	}
	if policy == None {
		return empty(res), false
	}

	shape := func(idx []int) []string {
		out := make([]string, len(idx))
		for i, j := range idx {
			out[i] = Format(picked[j].Name)
		}
		return out
	}
	if res.Nested {
		out := make([][]string, len(res.Groups))
		for i, g := range res.Groups {
			out[i] = shape(g)
		}
		return out, true
	}
	return shape(res.Groups[0]), true
}

func empty(res *extract.Result) any {
	if res.Nested {
		return [][]string{}
	}
	return []string{}
}

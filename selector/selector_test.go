// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import (
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/extract"
	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/render"
	"github.com/aclements/go-a11ychart/scene"
)

func nodes(names ...string) []*scene.Node {
	var out []*scene.Node
	for _, n := range names {
		out = append(out, &scene.Node{Kind: scene.Rect, Name: n})
	}
	return out
}

func nameList(ns []*scene.Node) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.Name)
	}
	return out
}

func TestFit(t *testing.T) {
	for _, tc := range []struct {
		nodes  []string
		n      int
		want   []string
		policy Policy
	}{
		{[]string{"a", "b", "c"}, 3, []string{"a", "b", "c"}, Exact},
		{[]string{"a", "a'", "b", "b'", "c", "c'"}, 3, []string{"a", "b", "c"}, Stride},
		{[]string{"a", "b"}, 4, []string{"a", "b", "b", "b"}, Repeat},
		{[]string{"a", "b", "c", "d", "e"}, 3, []string{"a", "b", "c"}, Truncate},
		{nil, 2, nil, None},
		{nil, 0, nil, Exact},
	} {
		got, policy := Fit(nodes(tc.nodes...), tc.n)
		assert.Equal(t, tc.policy, policy, "%v -> %d", tc.nodes, tc.n)
		assert.Equal(t, tc.want, nameList(got), "%v -> %d", tc.nodes, tc.n)
		if policy != None {
			assert.Len(t, got, tc.n)
		}
	}
}

func TestPattern(t *testing.T) {
	re := Pattern(render.GridScheme, layertype.StackedBar, 2)
	assert.True(t, re.MatchString("geom_rect.rect.2.1.7"))
	assert.False(t, re.MatchString("geom_rect.rect.12.1.7"))
	assert.False(t, re.MatchString("geom_rect.rect.2.1"))

	re = Pattern(render.PatchScheme, layertype.Box, 1)
	assert.True(t, re.MatchString("boxplot_3"))
	assert.False(t, re.MatchString("boxplot_3.box"))

	assert.Nil(t, Pattern(render.GridScheme, layertype.Unknown, 1))
}

const faceted = `
data:
  columns: [cat, val, grp, f]
  rows:
    - [x, 3, B, l]
    - [x, 1, A, l]
    - [y, 2, B, l]
    - [x, 4, A, r]
mapping: {x: cat, y: val, fill: grp}
facet: {wrap: [f]}
layers: [{geom: col, position: stack}]
`

func TestSynthesizeScoped(t *testing.T) {
	s, err := plotspec.Decode(strings.NewReader(faceted))
	require.NoError(t, err)
	require.NoError(t, s.LoadData(""))
	r, err := render.NewSVG(600, 300, nil).Render(context.Background(), s)
	require.NoError(t, err)
	b, err := plotspec.Build(s)
	require.NoError(t, err)

	want := map[string][][]string{
		"panel-1-1": {
			{"[id='geom_rect.rect.1.1.1']"},
			{"[id='geom_rect.rect.1.1.2']", "[id='geom_rect.rect.1.1.3']"},
		},
		"panel-1-2": {
			{"[id='geom_rect.rect.1.2.1']"},
		},
	}
	for i, p := range b.Panels {
		res, err := extract.Declarative(layertype.StackedBar, p.Layers[0])
		require.NoError(t, err)
		pid := r.Panels[i].ID
		sel, ok := Synthesize(r.Tree, Query{Scheme: r.Scheme, Layer: 1, Scope: []string{pid}, Result: res}, nil)
		require.True(t, ok)
		assert.Equal(t, want[pid], sel, pid)

		// Selector lists mirror the data.
		data := res.Data.([][]extract.SegmentPoint)
		got := sel.([][]string)
		require.Len(t, got, len(data))
		for j := range data {
			assert.Len(t, got[j], len(data[j]))
		}
	}
}

func TestSynthesizeDuplicatePairs(t *testing.T) {
	tree := &scene.Node{Kind: scene.Container, Name: "axes_1", Children: []*scene.Node{
		{Kind: scene.Container, Name: "call_1", Children: nodes("patch_1", "patch_2", "patch_3", "patch_4")},
		{Kind: scene.Container, Name: "call_2", Children: []*scene.Node{{Kind: scene.Polyline, Name: "line2d_1"}}},
	}}
	bars := &extract.Result{Type: layertype.Bar, Shapes: 2, Groups: [][]int{{0, 1}}}
	sel, ok := Synthesize(tree, Query{Scheme: render.PatchScheme, Layer: 1, Scope: []string{"axes_1", "call_1"}, Result: bars}, nil)
	require.True(t, ok)
	assert.Equal(t, []string{"[id='patch_1']", "[id='patch_3']"}, sel)

	line := &extract.Result{Type: layertype.Line, Shapes: 1, Groups: [][]int{{0}}}
	sel, ok = Synthesize(tree, Query{Scheme: render.PatchScheme, Layer: 2, Scope: []string{"axes_1", "call_2"}, Result: line}, nil)
	require.True(t, ok)
	assert.Equal(t, []string{"[id='line2d_1']"}, sel)

	// Points find nothing to address.
	pts := &extract.Result{Type: layertype.Point, Shapes: 2, Groups: [][]int{{0, 1}}}
	sel, ok = Synthesize(tree, Query{Scheme: render.PatchScheme, Layer: 2, Scope: []string{"axes_1", "call_2"}, Result: pts}, nil)
	assert.False(t, ok)
	assert.Equal(t, []string{}, sel)
}

func TestSynthesizeUnknown(t *testing.T) {
	tree := &scene.Node{Kind: scene.Container}
	sel, ok := Synthesize(tree, Query{Scheme: render.PatchScheme, Layer: 3, Result: extract.Empty(layertype.Unknown)}, nil)
	assert.True(t, ok)
	assert.Equal(t, []string{}, sel)
}

func TestSynthesizeMissingScope(t *testing.T) {
	tree := &scene.Node{Kind: scene.Container, Children: nodes("patch_1")}
	bars := &extract.Result{Type: layertype.Bar, Shapes: 1, Groups: [][]int{{0}}}
	sel, ok := Synthesize(tree, Query{Scheme: render.PatchScheme, Layer: 1, Scope: []string{"call_9"}, Result: bars}, nil)
	require.True(t, ok)
	assert.Equal(t, []string{"[id='patch_1']"}, sel)
}

const mixedSigns = `
data:
  columns: [cat, val, grp]
  rows:
    - [P, 3, A]
    - [P, -2, B]
    - [Q, -1, A]
    - [Q, 4, B]
mapping: {x: cat, y: val, fill: grp}
layers: [{geom: col, position: stack}]
`

// checkStack checks that every selected rectangle draws its segment:
// one fill per series, and heights proportional to the values.
func checkStack(t *testing.T, tree *scene.Node, sel any, res *extract.Result) {
	t.Helper()
	groups := sel.([][]string)
	data := res.Data.([][]extract.SegmentPoint)
	require.Len(t, groups, len(data))
	fills := make(map[string]string)
	scale := 0.0
	for i, g := range groups {
		require.Len(t, g, len(data[i]))
		for j, sel := range g {
			name := strings.TrimSuffix(strings.TrimPrefix(sel, "[id='"), "']")
			n := tree.Subtree(name)
			require.NotNil(t, n, name)
			pt := data[i][j]
			if f, ok := fills[pt.Fill]; ok {
				assert.Equal(t, f, n.Attrs["fill"], "%s %v", name, pt)
			} else {
				for other, f := range fills {
					assert.NotEqual(t, f, n.Attrs["fill"], "%s shares the fill of %s", pt.Fill, other)
				}
				fills[pt.Fill] = n.Attrs["fill"]
			}
			h, err := strconv.ParseFloat(n.Attrs["height"], 64)
			require.NoError(t, err)
			if scale == 0 {
				scale = h / math.Abs(pt.Y)
			}
			assert.InEpsilon(t, scale, h/math.Abs(pt.Y), 0.02, "%s %v", name, pt)
		}
	}
}

func TestSynthesizeMixedSignStack(t *testing.T) {
	s, err := plotspec.Decode(strings.NewReader(mixedSigns))
	require.NoError(t, err)
	require.NoError(t, s.LoadData(""))
	r, err := render.NewSVG(400, 300, nil).Render(context.Background(), s)
	require.NoError(t, err)
	b, err := plotspec.Build(s)
	require.NoError(t, err)
	res, err := extract.Declarative(layertype.StackedBar, b.Panels[0].Layers[0])
	require.NoError(t, err)
	sel, ok := Synthesize(r.Tree, Query{Scheme: r.Scheme, Layer: 1, Scope: []string{r.Panels[0].ID}, Result: res}, nil)
	require.True(t, ok)
	checkStack(t, r.Tree, sel, res)
}

func TestSynthesizeMixedSignReplay(t *testing.T) {
	c, err := callog.NewCall("barplot", "[3,-1;-2,4]", "legend.text=A,B", "names.arg=P,Q")
	require.NoError(t, err)
	groups, _ := callog.Group([]*callog.Call{c})
	r, err := render.NewSVG(400, 300, nil).Replay(context.Background(), groups[0])
	require.NoError(t, err)
	res, err := extract.Imperative(1, c)
	require.NoError(t, err)
	require.Equal(t, layertype.StackedBar, res.Type)
	sel, ok := Synthesize(r.Tree, Query{Scheme: r.Scheme, Layer: 1, Scope: []string{r.Panels[0].ID, render.CallGroupID(1)}, Result: res}, nil)
	require.True(t, ok)
	checkStack(t, r.Tree, sel, res)
}

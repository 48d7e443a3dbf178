// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/grid"
	"github.com/aclements/go-a11ychart/plotspec"
)

func spec(t *testing.T, src string) *plotspec.Spec {
	t.Helper()
	s, err := plotspec.Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, s.LoadData(""))
	return s
}

const data = `
data:
  columns: [a, b, v]
  rows: [[p, u, 1], [q, u, 2], [r, w, 3]]
`

func TestDetect(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want Topology
	}{
		{"single", data + `layers: [{geom: point}]`, Topology{Single, grid.Single}},
		{"wrap", data + `
facet: {wrap: [a]}
layers: [{geom: point}]`, Topology{Faceted, grid.Layout{Rows: 2, Cols: 2}}},
		{"grid", data + `
facet: {rows: b, cols: a}
layers: [{geom: point}]`, Topology{Faceted, grid.Layout{Rows: 2, Cols: 3}}},
		{"composed wins", data + `
facet: {wrap: [a]}
compose:
  ncol: 1
  byrow: false
  plots: [{layers: [{geom: point}]}, {layers: [{geom: line}]}]`, Topology{Composed, grid.Layout{Rows: 2, Cols: 1, Order: grid.ColMajor}}},
		{"composed overflow", data + `
compose:
  nrow: 1
  ncol: 1
  plots: [{layers: [{geom: point}]}, {layers: [{geom: line}]}]`, Topology{Composed, grid.Layout{Rows: 2, Cols: 1}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(spec(t, tc.src)))
		})
	}
}

func TestDetectFacetWithoutData(t *testing.T) {
	s := &plotspec.Spec{Facet: &plotspec.Facet{Wrap: []string{"a"}}}
	assert.Equal(t, Topology{Faceted, grid.Single}, Detect(s))
}

func calls(t *testing.T, src string) []*callog.Call {
	t.Helper()
	cs, err := callog.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return cs
}

func TestFromLayout(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want Topology
	}{
		{"plot 1,2\n", Topology{Single, grid.Single}},
		{"par mfrow=2,2\n", Topology{Composed, grid.Layout{Rows: 2, Cols: 2}}},
		{"par mfcol=3,1\n", Topology{Composed, grid.Layout{Rows: 3, Cols: 1, Order: grid.ColMajor}}},
		{"par mfrow=2,2\npar mfcol=1,3\n", Topology{Composed, grid.Layout{Rows: 1, Cols: 3, Order: grid.ColMajor}}},
		{"par mfrow=0,2\n", Topology{Single, grid.Single}},
		{"par cex=2\n", Topology{Single, grid.Single}},
		{"layout [1,2;3,4]\n", Topology{Composed, grid.Layout{Rows: 2, Cols: 2}}},
		{"layout [1,3;2,4]\n", Topology{Composed, grid.Layout{Rows: 2, Cols: 2, Order: grid.ColMajor}}},
		{"layout oops\n", Topology{Single, grid.Single}},
		{"par mfrow=1,1\n", Topology{Single, grid.Single}},
		{"par mfrow=Inf,2\n", Topology{Single, grid.Single}},
		{"par mfrow=NaN,2\n", Topology{Single, grid.Single}},
		{"par mfrow=1e6,1e6\n", Topology{Single, grid.Single}},
		{"par mfrow=1.5,2\n", Topology{Single, grid.Single}},
		{"par mfrow=2,2\npar mfrow=Inf,2\n", Topology{Composed, grid.Layout{Rows: 2, Cols: 2}}},
	} {
		_, layout := callog.Group(calls(t, tc.src))
		assert.Equal(t, tc.want, FromLayout(layout), "%q", tc.src)
	}
}

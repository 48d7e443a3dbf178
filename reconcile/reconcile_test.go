// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reconcile

import (
	"math/rand"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
)

func build(t *testing.T, position string, cats, grps []string, vals []float64) *plotspec.BuiltLayer {
	t.Helper()
	s := &plotspec.Spec{
		Mapping: plotspec.Aes{X: "cat", Y: "val", Fill: "grp"},
		Layers:  []*plotspec.Layer{{Geom: "col", Position: position}},
		Table:   table.NewBuilder(nil).Add("cat", cats).Add("val", vals).Add("grp", grps).Done(),
	}
	b, err := plotspec.Build(s)
	require.NoError(t, err)
	bl := b.Panels[0].Layers[0]
	require.NoError(t, bl.Err)
	return bl
}

func TestOrderBars(t *testing.T) {
	bl := build(t, "identity", []string{"c", "a", "b"}, []string{"", "", ""}, []float64{3, 1, 2})
	got := Order(layertype.Bar, bl)
	assert.Equal(t, []string{"a", "b", "c"}, plotspec.Unpack(got.Data).Label)
	// The input is untouched.
	assert.Equal(t, []string{"c", "a", "b"}, plotspec.Unpack(bl.Data).Label)
}

func TestOrderDodged(t *testing.T) {
	bl := build(t, "dodge",
		[]string{"x", "x", "y", "y"}, []string{"A", "B", "A", "B"}, []float64{1, 2, 3, 4})
	r := plotspec.Unpack(Order(layertype.DodgedBar, bl).Data)
	assert.Equal(t, []string{"B", "A", "B", "A"}, r.Series)
	assert.Equal(t, []float64{2, 1, 4, 3}, r.Y)
}

func TestStackOrder(t *testing.T) {
	// Segments are given B first but A is stacked at the bottom.
	bl := build(t, "stack",
		[]string{"x", "x", "y", "y"}, []string{"B", "A", "B", "A"}, []float64{3, 1, 2, 5})
	assert.Equal(t, []string{"A", "B"}, StackOrder(bl))
	r := plotspec.Unpack(Order(layertype.StackedBar, bl).Data)
	assert.Equal(t, []string{"A", "B", "A", "B"}, r.Series)
	assert.Equal(t, []float64{1, 3, 5, 2}, r.Y)
}

func TestIndexesMixedSigns(t *testing.T) {
	bl := build(t, "stack",
		[]string{"P", "P", "Q", "Q"}, []string{"A", "B", "A", "B"}, []float64{3, -2, -1, 4})
	order := StackOrder(bl)
	r := plotspec.Unpack(bl.Data)
	idx := Indexes(layertype.StackedBar, bl)
	require.Len(t, idx, 4)
	// Every bar lists its segments in the one stack order, whatever
	// their signs.
	for bar := 0; bar < 2; bar++ {
		var got []string
		for _, i := range idx[2*bar : 2*bar+2] {
			got = append(got, r.Series[i])
			assert.Equal(t, r.X[idx[2*bar]], r.X[i])
		}
		assert.Equal(t, order, got, "bar %d", bar+1)
	}
	assert.Equal(t, plotspec.Select(bl.Data, idx), Order(layertype.StackedBar, bl).Data)
}

func TestStackOrderMissingSeries(t *testing.T) {
	bl := build(t, "stack", []string{"x", "y", "y"}, []string{"B", "A", "C"}, []float64{1, 1, 1})
	assert.Equal(t, []string{"A", "B", "C"}, StackOrder(bl))

	// The first bar's order wins over display order.
	bl = &plotspec.BuiltLayer{
		Series: []string{"A", "B", "C"},
		Data: table.NewBuilder(nil).
			Add(plotspec.ColX, []float64{1, 1, 2}).
			Add(plotspec.ColSeries, []string{"A", "C", "B"}).
			Add(plotspec.ColXMin, []float64{0.55, 0.55, 1.55}).
			Add(plotspec.ColYMin, []float64{1, 0, 0}).
			Done(),
	}
	assert.Equal(t, []string{"C", "B", "A"}, StackOrder(bl))
}

func TestOrderOtherTypes(t *testing.T) {
	bl := &plotspec.BuiltLayer{Data: table.NewBuilder(nil).Add("x", []float64{2, 1}).Done()}
	assert.Same(t, bl, Order(layertype.Line, bl))
	assert.Nil(t, Order(layertype.Bar, nil))
}

// The stacking order taken from the first bar is applied to every
// bar, and matches the bottom-to-top order of each bar's segments.
func TestStackOrderProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	allCats := []string{"a", "b", "c", "d", "e"}
	allGrps := []string{"p", "q", "r", "s"}
	for iter := 0; iter < 200; iter++ {
		var cats, grps []string
		var vals []float64
		for _, c := range allCats[:1+rng.Intn(len(allCats))] {
			for _, g := range rng.Perm(len(allGrps))[:1+rng.Intn(len(allGrps))] {
				cats = append(cats, c)
				grps = append(grps, allGrps[g])
				vals = append(vals, 1+float64(rng.Intn(9)))
			}
		}
		bl := build(t, "stack", cats, grps, vals)
		order := StackOrder(bl)
		rank := ranks(order)
		r := plotspec.Unpack(Order(layertype.StackedBar, bl).Data)
		require.Equal(t, len(cats), r.Len())

		for i := 1; i < r.Len(); i++ {
			if r.X[i] != r.X[i-1] {
				require.Less(t, r.X[i-1], r.X[i])
				continue
			}
			require.Less(t, rank[r.Series[i-1]], rank[r.Series[i]], "iteration %d", iter)
			require.Less(t, r.YMin[i-1], r.YMin[i], "iteration %d", iter)
		}
	}
}

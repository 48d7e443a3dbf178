// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reconcile reorders built layer data into the order a
// renderer draws it, so that data points line up with the shapes
// found in the scene tree.
package reconcile

import (
	"sort"

	"github.com/aclements/go-a11ychart/layertype"
	"github.com/aclements/go-a11ychart/plotspec"
)

// Order returns bl with its rows in drawing order for a layer of type
// t. Plain bars and histograms sort by category, side-by-side bars by
// category then sub-series key descending, and stacked bars by
// category then stacking order. Other layers are returned as is.
//
// bl itself is never modified; a reordered layer is a copy with its
// own table.
func Order(t layertype.Type, bl *plotspec.BuiltLayer) *plotspec.BuiltLayer {
	if bl == nil || bl.Data == nil || !t.Barlike() {
		return bl
	}
	out := *bl
	out.Data = plotspec.Select(bl.Data, Indexes(t, bl))
	return &out
}

// Indexes returns the row indexes of bl in drawing order for a layer
// of type t. A renderer that draws rows in this order produces shapes
// in the order of Order's data.
func Indexes(t layertype.Type, bl *plotspec.BuiltLayer) []int {
	r := plotspec.Unpack(bl.Data)
	idx := make([]int, r.Len())
	for i := range idx {
		idx[i] = i
	}
	if !t.Barlike() || r.X == nil {
		return idx
	}
	var rank map[string]int
	switch t {
	case layertype.DodgedBar:
		rank = ranks(bl.Series)
	case layertype.StackedBar:
		rank = ranks(StackOrder(bl))
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if r.X[a] != r.X[b] {
			return r.X[a] < r.X[b]
		}
		switch t {
		case layertype.DodgedBar:
			return rank[r.Series[a]] > rank[r.Series[b]]
		case layertype.StackedBar:
			return rank[r.Series[a]] < rank[r.Series[b]]
		}
		return false
	})
	return idx
}

// StackOrder returns the sub-series of a stacked layer from the
// bottom of the stack to the top, as drawn in its first bar. Series
// absent from the first bar keep their display-order slots around
// the series it orders.
func StackOrder(bl *plotspec.BuiltLayer) []string {
	r := plotspec.Unpack(bl.Data)
	if !r.HasRects() || r.Len() == 0 {
		return bl.Series
	}
	first := r.X[0]
	for _, x := range r.X {
		if x < first {
			first = x
		}
	}
	var seg []int
	for i, x := range r.X {
		if x == first {
			seg = append(seg, i)
		}
	}
	sort.SliceStable(seg, func(i, j int) bool {
		return r.YMin[seg[i]] < r.YMin[seg[j]]
	})
	drawn := make(map[string]bool)
	var bottomUp []string
	for _, i := range seg {
		if s := r.Series[i]; !drawn[s] {
			drawn[s] = true
			bottomUp = append(bottomUp, s)
		}
	}
	out := make([]string, 0, len(bl.Series))
	for _, s := range bl.Series {
		if drawn[s] {
			s, bottomUp = bottomUp[0], bottomUp[1:]
		}
		out = append(out, s)
	}
	// Series drawn but unknown to the layer go on top.
	return append(out, bottomUp...)
}

func ranks(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for i, k := range keys {
		m[k] = i
	}
	return m
}

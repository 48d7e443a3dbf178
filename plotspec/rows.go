// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotspec

import (
	"github.com/aclements/go-gg/table"
)

// Rows is a built layer table unpacked into its columns. Columns the
// table lacks are nil.
type Rows struct {
	X, Y, XMin, XMax, YMin, YMax []float64
	Lower, Middle, Upper         []float64
	OutLo, OutHi                 [][]float64
	Label, Series                []string
}

// Unpack returns the canonical columns of a built layer table.
func Unpack(t *table.Table) Rows {
	var r Rows
	if t == nil {
		return r
	}
	f := func(col string) []float64 {
		xs, _ := t.Column(col).([]float64)
		return xs
	}
	s := func(col string) []string {
		xs, _ := t.Column(col).([]string)
		return xs
	}
	o := func(col string) [][]float64 {
		xs, _ := t.Column(col).([][]float64)
		return xs
	}
	r.X, r.Y = f(ColX), f(ColY)
	r.XMin, r.XMax, r.YMin, r.YMax = f(ColXMin), f(ColXMax), f(ColYMin), f(ColYMax)
	r.Lower, r.Middle, r.Upper = f(ColLower), f(ColMiddle), f(ColUpper)
	r.OutLo, r.OutHi = o(ColOutLo), o(ColOutHi)
	r.Label, r.Series = s(ColLabel), s(ColSeries)
	return r
}

// Len returns the number of rows.
func (r Rows) Len() int {
	return len(r.X)
}

// HasRects reports whether the rows carry rectangle extents.
func (r Rows) HasRects() bool {
	return r.XMin != nil
}

// Select returns a new table holding rows idx of t, in that order.
// t is not modified.
func Select(t *table.Table, idx []int) *table.Table {
	return subset(t, idx)
}

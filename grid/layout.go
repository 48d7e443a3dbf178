// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid maps panel indexes to grid cells and assembles
// per-panel results into a rows × cols array.
package grid

import "fmt"

// Order is the order in which panels fill a grid.
type Order int

const (
	RowMajor Order = iota
	ColMajor
)

func (o Order) String() string {
	if o == ColMajor {
		return "column-major"
	}
	return "row-major"
}

// Layout is a grid shape and fill order.
type Layout struct {
	Rows, Cols int
	Order      Order
}

// Single is the 1×1 layout.
var Single = Layout{Rows: 1, Cols: 1}

// MaxDim bounds the rows and columns a caller may request.
const MaxDim = 100

// Wrap returns the layout used to wrap n panels when the caller fixes
// at most one of rows and cols (0 means unset). With neither fixed the
// grid is as square as possible, wider than tall. Requests outside
// [1, MaxDim] count as unset, and a grid too small for n panels is
// grown.
func Wrap(n, rows, cols int, order Order) Layout {
	if n < 1 {
		n = 1
	}
	if rows < 0 || rows > MaxDim {
		rows = 0
	}
	if cols < 0 || cols > MaxDim {
		cols = 0
	}
	switch {
	case rows > 0 && cols > 0:
	case cols > 0:
		rows = (n + cols - 1) / cols
	case rows > 0:
		cols = (n + rows - 1) / rows
	default:
		cols = 1
		for cols*cols < n {
			cols++
		}
		rows = (n + cols - 1) / cols
	}
	return Layout{Rows: rows, Cols: cols, Order: order}.Grow(n)
}

// Grow returns l enlarged to hold n panels, adding rows to row-major
// grids and columns to column-major ones.
func (l Layout) Grow(n int) Layout {
	for l.Size() < n {
		if l.Order == ColMajor {
			l.Cols++
		} else {
			l.Rows++
		}
	}
	return l
}

// Size returns the number of cells.
func (l Layout) Size() int {
	return l.Rows * l.Cols
}

// Position returns the 1-based row and column of the 1-based panel
// index i.
func (l Layout) Position(i int) (row, col int) {
	if l.Order == ColMajor {
		return (i-1)%l.Rows + 1, ceilDiv(i, l.Rows)
	}
	return ceilDiv(i, l.Cols), (i-1)%l.Cols + 1
}

// Index is the inverse of Position.
func (l Layout) Index(row, col int) int {
	if l.Order == ColMajor {
		return (col-1)*l.Rows + row
	}
	return (row-1)*l.Cols + col
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d %s", l.Rows, l.Cols, l.Order)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/cockroachdb/errors"
)

// Cell is a value placed at a 1-based grid position.
type Cell[T any] struct {
	Row, Col int
	Value    T
}

// Assemble places cells into a rows × cols array. Cells that are not
// given are nil.
func Assemble[T any](rows, cols int, cells []Cell[T]) ([][]*T, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Newf("bad grid size %dx%d", rows, cols)
	}
	out := make([][]*T, rows)
	for r := range out {
		out[r] = make([]*T, cols)
	}
	for _, c := range cells {
		if c.Row < 1 || c.Row > rows || c.Col < 1 || c.Col > cols {
			return nil, errors.Newf("cell (%d,%d) outside %dx%d grid", c.Row, c.Col, rows, cols)
		}
		if out[c.Row-1][c.Col-1] != nil {
			return nil, errors.Newf("two panels at (%d,%d)", c.Row, c.Col)
		}
		v := c.Value
		out[c.Row-1][c.Col-1] = &v
	}
	return out, nil
}

// Placement is a rendering backend's description of one panel it
// drew: its scene-tree identifier, the backend's own enumeration
// index, and the visual cell it occupies.
type Placement struct {
	ID       string
	Index    int
	Row, Col int
}

// Remap translates visual order into backend order. For each 1-based
// visual index of l it returns the backend placement drawn at that
// cell. The translation is taken from the placements themselves, not
// assumed from the backend's enumeration order.
func Remap(l Layout, placements []Placement) (map[int]Placement, error) {
	byCell := make(map[[2]int]Placement, len(placements))
	for _, p := range placements {
		k := [2]int{p.Row, p.Col}
		if _, dup := byCell[k]; dup {
			return nil, errors.Newf("panels %q and %q both at (%d,%d)", byCell[k].ID, p.ID, p.Row, p.Col)
		}
		byCell[k] = p
	}
	out := make(map[int]Placement, len(placements))
	for i := 1; i <= l.Size(); i++ {
		r, c := l.Position(i)
		if p, ok := byCell[[2]int{r, c}]; ok {
			out[i] = p
		}
	}
	return out, nil
}

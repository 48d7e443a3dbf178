// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"reflect"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-a11ychart/a11y"
)

// writeTable prints the layer summary of models to w.
func writeTable(w io.Writer, models []*a11y.Model) error {
	return table.Fprint(w, layersToTable(models))
}

// layersToTable summarizes models with one row per layer, in grid
// order.
func layersToTable(models []*a11y.Model) *table.Table {
	var (
		charts, types, titles []string
		rows, cols, layers    []int
		points, selectors     []int
		degraded              []bool
	)
	for _, m := range models {
		for r, row := range m.Panels {
			for c, panel := range row {
				if panel == nil {
					continue
				}
				for i, l := range panel.Layers {
					charts = append(charts, m.ID)
					rows = append(rows, r+1)
					cols = append(cols, c+1)
					layers = append(layers, i+1)
					types = append(types, l.Type)
					titles = append(titles, l.Title)
					points = append(points, count(l.Data))
					selectors = append(selectors, count(l.Selectors))
					degraded = append(degraded, l.Degraded)
				}
			}
		}
	}

	return new(table.Builder).
		Add("chart", charts).
		Add("row", rows).
		Add("col", cols).
		Add("layer", layers).
		Add("type", types).
		Add("title", titles).
		Add("points", points).
		Add("selectors", selectors).
		Add("degraded", degraded).
		Done()
}

// count returns the number of leaf elements of a slice, counting
// through one level of nesting.
func count(v any) int {
	s := reflect.ValueOf(v)
	if s.Kind() != reflect.Slice {
		return 0
	}
	n := 0
	for i := 0; i < s.Len(); i++ {
		e := s.Index(i)
		if e.Kind() == reflect.Interface {
			e = e.Elem()
		}
		if e.Kind() == reflect.Slice {
			n += e.Len()
		} else {
			n++
		}
	}
	return n
}

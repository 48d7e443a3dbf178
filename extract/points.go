// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

// BarPoint is one bar of a plain bar chart.
type BarPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// HistPoint is one histogram bin.
type HistPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

// XYPoint is one point of a line, curve or scatter layer. X is a
// category label on discrete axes and a number otherwise.
type XYPoint struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// SegmentPoint is one bar of a side-by-side or stacked bar chart.
type SegmentPoint struct {
	X    string  `json:"x"`
	Y    float64 `json:"y"`
	Fill string  `json:"fill"`
}

// BoxPoint is one box of a box plot.
type BoxPoint struct {
	Fill          string    `json:"fill"`
	Min           float64   `json:"min"`
	Q1            float64   `json:"q1"`
	Q2            float64   `json:"q2"`
	Q3            float64   `json:"q3"`
	Max           float64   `json:"max"`
	LowerOutliers []float64 `json:"lower_outliers"`
	UpperOutliers []float64 `json:"upper_outliers"`
}

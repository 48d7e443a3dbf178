// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	bins, err := Histogram([]float64{1, 2, 2, 3, 3, 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, []Bin{{1, 2, 1}, {2, 3, 5}}, bins)
	assert.Equal(t, 1.5, bins[0].Mid())

	bins, err = Histogram([]float64{4, 4}, 0)
	require.NoError(t, err)
	require.Len(t, bins, Sturges(2))
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 2, total)

	_, err = Histogram(nil, 3)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Histogram([]float64{1, 2}, MaxBins+1)
	assert.ErrorIs(t, err, ErrBins)
}

func TestSturges(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 8: 4, 100: 8} {
		assert.Equal(t, want, Sturges(n), "n=%d", n)
	}
}

func TestBoxplot(t *testing.T) {
	b, err := Boxplot([]float64{3, 1, 100, 2, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Min)
	assert.InDelta(t, 3.0, b.Median, 1e-9)
	assert.Equal(t, 4.0, b.Max)
	assert.Equal(t, []float64{}, b.Lower)
	assert.Equal(t, []float64{100}, b.Upper)
	assert.InDelta(t, 5.0/3, b.Q1, 1e-9)

	b, err = Boxplot([]float64{-50, 10, 11, 12, 13}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{-50}, b.Lower)
	assert.Equal(t, 10.0, b.Min)
}

func TestSmooth(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 1
	}
	pts, err := Smooth(xs, ys, 0, 10)
	require.NoError(t, err)
	require.Len(t, pts, 10)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 8.0, pts[9].X)
	for _, p := range pts {
		assert.InDelta(t, 2*p.X+1, p.Y, 1e-6)
	}

	pts, err = Smooth([]float64{2, 1}, []float64{5, 4}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []XY{{1, 4}, {2, 5}}, pts)

	_, err = Smooth([]float64{1}, nil, 0, 0)
	assert.Error(t, err)
}

func TestDensity(t *testing.T) {
	pts, err := Density([]float64{1, 2, 2, 3, 3, 3, 4}, 64)
	require.NoError(t, err)
	require.Len(t, pts, 64)
	var area float64
	for i := 1; i < len(pts); i++ {
		assert.Less(t, pts[i-1].X, pts[i].X)
		area += (pts[i].X - pts[i-1].X) * (pts[i].Y + pts[i-1].Y) / 2
	}
	assert.InDelta(t, 1, area, 0.02)
	assert.False(t, math.IsNaN(pts[32].Y))
}

func TestStack(t *testing.T) {
	ymin, ymax := Stack([]float64{2, 3, -1})
	assert.Equal(t, []float64{0, 2, -1}, ymin)
	assert.Equal(t, []float64{2, 5, 0}, ymax)
}

func TestDodge(t *testing.T) {
	lo, hi := Dodge(1, 0, 2, 0.8)
	assert.InDelta(t, 0.6, lo, 1e-12)
	assert.InDelta(t, 1.0, hi, 1e-12)
	lo, hi = Dodge(1, 1, 2, 0.8)
	assert.InDelta(t, 1.0, lo, 1e-12)
	assert.InDelta(t, 1.4, hi, 1e-12)
}

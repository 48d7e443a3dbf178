// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stat implements the statistical transforms shared by plot
// building and drawing-call replay, so both compute the same numbers
// for the same input.
package stat

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/cockroachdb/errors"
)

// ErrEmpty is returned for transforms of an empty sample.
var ErrEmpty = errors.New("empty sample")

// ErrBins is returned for a histogram bin count above MaxBins.
var ErrBins = errors.New("too many histogram bins")

// MaxBins bounds the bin count Histogram accepts.
const MaxBins = 100000

// XY is one point of a computed curve.
type XY struct {
	X, Y float64
}

// Bin is one histogram bin covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Mid returns the bin center.
func (b Bin) Mid() float64 {
	return (b.Lo + b.Hi) / 2
}

// Sturges returns Sturges' bin count for n observations.
func Sturges(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)) + 1))
}

// Histogram bins xs into nbins equal-width bins spanning the range of
// xs. If nbins <= 0, it uses Sturges' rule. The maximum value falls in
// the last bin. Counts above MaxBins are rejected with ErrBins.
func Histogram(xs []float64, nbins int) ([]Bin, error) {
	if len(xs) == 0 {
		return nil, ErrEmpty
	}
	if nbins > MaxBins {
		return nil, errors.Wrapf(ErrBins, "%d bins", nbins)
	}
	if nbins <= 0 {
		nbins = Sturges(len(xs))
	}
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	h := stats.NewLinearHist(lo, hi, nbins)
	for _, x := range xs {
		h.Add(x)
	}
	_, counts, high := h.Counts()

	edges := vec.Linspace(lo, hi, nbins+1)
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i] = Bin{Lo: edges[i], Hi: edges[i+1], Count: int(counts[i])}
	}
	bins[nbins-1].Count += int(high)
	return bins, nil
}

// Box is a five-number summary with the observations beyond the
// whiskers.
type Box struct {
	Min, Q1, Median, Q3, Max float64
	Lower, Upper             []float64
}

// Boxplot summarizes xs. Whiskers extend to the most extreme
// observations within coef times the interquartile range of the
// hinges; coef <= 0 means 1.5.
func Boxplot(xs []float64, coef float64) (Box, error) {
	if len(xs) == 0 {
		return Box{}, ErrEmpty
	}
	if coef <= 0 {
		coef = 1.5
	}
	s := stats.Sample{Xs: append([]float64(nil), xs...)}
	s.Sort()

	b := Box{
		Q1:     s.Quantile(0.25),
		Median: s.Quantile(0.5),
		Q3:     s.Quantile(0.75),
	}
	iqr := b.Q3 - b.Q1
	loFence, hiFence := b.Q1-coef*iqr, b.Q3+coef*iqr
	b.Min, b.Max = math.Inf(1), math.Inf(-1)
	for _, x := range s.Xs {
		switch {
		case x < loFence:
			b.Lower = append(b.Lower, x)
		case x > hiFence:
			b.Upper = append(b.Upper, x)
		default:
			b.Min = math.Min(b.Min, x)
			b.Max = math.Max(b.Max, x)
		}
	}
	if b.Lower == nil {
		b.Lower = []float64{}
	}
	if b.Upper == nil {
		b.Upper = []float64{}
	}
	return b, nil
}

// Smooth fits a LOESS curve with the given span (0 means 0.75) and
// evaluates it at n (0 means 80) evenly spaced points across the
// range of xs. The fit is local-quadratic given at least six points
// and local-linear otherwise. Fewer than three points are returned
// sorted, unsmoothed.
func Smooth(xs, ys []float64, span float64, n int) ([]XY, error) {
	if len(xs) != len(ys) {
		return nil, errors.Newf("smooth: %d x values but %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, ErrEmpty
	}
	if span <= 0 || span > 1 {
		span = 0.75
	}
	if n <= 0 {
		n = 80
	}
	if len(xs) < 3 {
		pts := make([]XY, len(xs))
		for i := range xs {
			pts[i] = XY{xs[i], ys[i]}
		}
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
		return pts, nil
	}

	degree := 2
	if len(xs) < 6 {
		degree = 1
	}
	f := fit.LOESS(xs, ys, degree, span)
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		n = 1
	}
	evalXs := vec.Linspace(lo, hi, n)
	evalYs := vec.Map(f, evalXs)
	pts := make([]XY, n)
	for i := range pts {
		pts[i] = XY{evalXs[i], evalYs[i]}
	}
	return pts, nil
}

// Density computes a Gaussian kernel density estimate of xs with
// Scott's bandwidth, evaluated at n points (0 means 512) extending
// three bandwidths beyond the data.
func Density(xs []float64, n int) ([]XY, error) {
	if len(xs) == 0 {
		return nil, ErrEmpty
	}
	if n <= 0 {
		n = 512
	}
	sample := stats.Sample{Xs: append([]float64(nil), xs...)}
	sample.Sort()
	bw := stats.BandwidthScott(sample)
	if bw <= 0 || math.IsNaN(bw) {
		bw = 1
	}
	kde := stats.KDE{Sample: sample, Kernel: stats.GaussianKernel, Bandwidth: bw}

	lo, hi := sample.Bounds()
	evalXs := vec.Linspace(lo-3*bw, hi+3*bw, n)
	pts := make([]XY, n)
	for i, x := range evalXs {
		pts[i] = XY{x, kde.PDF(x)}
	}
	return pts, nil
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

// Stack stacks ys, one value per series at a single x position, in
// order from the bottom. Negative values stack downward from zero.
func Stack(ys []float64) (ymin, ymax []float64) {
	ymin = make([]float64, len(ys))
	ymax = make([]float64, len(ys))
	var pos, neg float64
	for i, y := range ys {
		if y >= 0 {
			ymin[i], ymax[i] = pos, pos+y
			pos += y
		} else {
			ymin[i], ymax[i] = neg+y, neg
			neg += y
		}
	}
	return
}

// Dodge returns the horizontal extent of the i'th of n side-by-side
// bars centered on x, where the group of n bars spans width.
func Dodge(x float64, i, n int, width float64) (xmin, xmax float64) {
	if n <= 0 {
		n = 1
	}
	w := width / float64(n)
	xmin = x - width/2 + float64(i)*w
	return xmin, xmin + w
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import "github.com/aclements/go-a11ychart/scene"

// Policy is how Fit matched nodes to shapes.
type Policy int

const (
	// Exact: one node per shape.
	Exact Policy = iota
	// Stride: k nodes per shape; the first of each run is used.
	Stride
	// Repeat: too few nodes; the last node stands in for the rest.
	Repeat
	// Truncate: extra nodes that are not a whole multiple are
	// dropped.
	Truncate
	// None: no nodes for a layer that has shapes.
	None
)

var policyNames = [...]string{"exact", "stride", "repeat", "truncate", "none"}

func (p Policy) String() string {
	return policyNames[p]
}

// Fit returns exactly n nodes for n shapes.
//
// This is a heuristic. It assumes a backend that draws more nodes
// than shapes draws the same whole number of nodes per shape, as with
// a fill and an outline per bar.
func Fit(nodes []*scene.Node, n int) ([]*scene.Node, Policy) {
	switch {
	case n == 0:
		if len(nodes) == 0 {
			return nil, Exact
		}
		return nil, Truncate
	case len(nodes) == 0:
		return nil, None
	case len(nodes) == n:
		return nodes, Exact
	case len(nodes) > n && len(nodes)%n == 0:
		k := len(nodes) / n
		out := make([]*scene.Node, n)
		for i := range out {
			out[i] = nodes[i*k]
		}
		return out, Stride
	case len(nodes) < n:
		out := append([]*scene.Node(nil), nodes...)
		for len(out) < n {
			out = append(out, nodes[len(nodes)-1])
		}
		return out, Repeat
	}
	return nodes[:n], Truncate
}

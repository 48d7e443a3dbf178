// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene represents rendered charts as trees of primitive
// vector nodes and searches them.
//
// Trees are read-only once built. Every traversal is pre-order, with
// a node's children visited in document order before its later
// siblings, so repeated searches of one tree return nodes in the same
// order.
package scene

import (
	"fmt"
	"strings"
)

// Kind is the kind of a scene node.
type Kind int

const (
	Container Kind = iota
	Rect
	Polyline
	Polygon
	Marker
	Path
	Text
)

var kindNames = [...]string{"container", "rect", "polyline", "polygon", "marker", "path", "text"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one scene-tree node. Containers have children; all other
// kinds are leaves.
type Node struct {
	Kind Kind

	// Name is the backend-assigned identifier, or "".
	Name string

	// Attrs holds the remaining attributes of the node. For Text
	// nodes, the text content is under "text".
	Attrs map[string]string

	Children []*Node
}

// Leaf reports whether n is a primitive rather than a container.
func (n *Node) Leaf() bool {
	return n.Kind != Container
}

func (n *Node) String() string {
	if n.Name == "" {
		return n.Kind.String()
	}
	return n.Kind.String() + "#" + n.Name
}

// Walk calls fn for n and its descendants in pre-order. If fn returns
// false for a node, Walk skips that node's descendants.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Fold folds fn over n and its descendants in pre-order.
func Fold[T any](n *Node, acc T, fn func(T, *Node) T) T {
	Walk(n, func(n *Node) bool {
		acc = fn(acc, n)
		return true
	})
	return acc
}

// Find returns the nodes under n, including n, for which match
// returns true, in pre-order.
func (n *Node) Find(match func(*Node) bool) []*Node {
	return Fold(n, []*Node(nil), func(acc []*Node, n *Node) []*Node {
		if match(n) {
			acc = append(acc, n)
		}
		return acc
	})
}

// Subtree returns the first node under n named name, or nil.
func (n *Node) Subtree(name string) *Node {
	var found *Node
	Walk(n, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes under n, including n.
func (n *Node) Count() int {
	return Fold(n, 0, func(c int, _ *Node) int { return c + 1 })
}

// NamePrefix returns a matcher for nodes whose name starts with
// prefix.
func NamePrefix(prefix string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Name != "" && strings.HasPrefix(n.Name, prefix)
	}
}

// Dump returns an indented outline of the tree, one node per line.
func Dump(n *Node) string {
	var b strings.Builder
	var dump func(n *Node, depth int)
	dump = func(n *Node, depth int) {
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("  ", depth), n)
		for _, c := range n.Children {
			dump(c, depth+1)
		}
	}
	if n != nil {
		dump(n, 0)
	}
	return b.String()
}

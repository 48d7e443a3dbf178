// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

var svgKinds = map[string]Kind{
	"svg":      Container,
	"g":        Container,
	"a":        Container,
	"rect":     Rect,
	"line":     Polyline,
	"polyline": Polyline,
	"polygon":  Polygon,
	"circle":   Marker,
	"ellipse":  Marker,
	"use":      Marker,
	"path":     Path,
	"text":     Text,
}

// DecodeSVG builds a scene tree from an SVG document. Element ids
// become node names. Elements that draw nothing, such as title and
// defs, are dropped along with their content.
func DecodeSVG(r io.Reader) (*Node, error) {
	d := xml.NewDecoder(r)
	var stack []*Node
	var root *Node
	skip := 0
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding svg")
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				skip++
				continue
			}
			kind, ok := svgKinds[tok.Name.Local]
			if !ok {
				skip = 1
				continue
			}
			n := &Node{Kind: kind, Attrs: make(map[string]string)}
			for _, a := range tok.Attr {
				if a.Name.Local == "id" {
					n.Name = a.Value
				} else {
					n.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("svg has more than one root element")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				if parent.Leaf() && parent.Kind != Text {
					return nil, errors.Newf("svg %s element has children", tok.Name.Local)
				}
				if parent.Kind != Text {
					parent.Children = append(parent.Children, n)
				}
			}
			stack = append(stack, n)
		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if skip == 0 && len(stack) > 0 {
				if top := stack[len(stack)-1]; top.Kind == Text {
					top.Attrs["text"] += strings.TrimSpace(string(tok))
				}
			}
		}
	}
	if root == nil {
		return nil, errors.New("svg has no drawable root element")
	}
	return root, nil
}

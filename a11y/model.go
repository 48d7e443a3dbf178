// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package a11y defines the accessibility data model: for each panel
// of a chart, each layer's data points and the selectors of the
// shapes that draw them.
package a11y

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Model is one chart. Panels is the visual grid in row-major order;
// cells without a panel are nil.
type Model struct {
	ID     string     `json:"id"`
	Panels [][]*Panel `json:"panels"`
}

type Panel struct {
	ID     string   `json:"id"`
	Layers []*Layer `json:"layers"`
}

// Layer is one layer's data and selectors. Data and Selectors are
// both flat lists or both nested lists, except that curve layers
// have nested data and one selector per curve.
type Layer struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Data        any    `json:"data"`
	Selectors   any    `json:"selectors"`
	Title       string `json:"title,omitempty"`
	Axes        *Axes  `json:"axes,omitempty"`
	Orientation string `json:"orientation,omitempty"`

	// Degraded is set if the layer's data or selectors could not
	// be produced.
	Degraded bool `json:"-"`
}

type Axes struct {
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`
}

// Orientations.
const (
	Vertical   = "vertical"
	Horizontal = "horizontal"
)

// Layers returns every layer of m in panel order.
func (m *Model) Layers() []*Layer {
	var out []*Layer
	for _, row := range m.Panels {
		for _, p := range row {
			if p != nil {
				out = append(out, p.Layers...)
			}
		}
	}
	return out
}

// Marshal encodes m as JSON.
func (m *Model) Marshal(indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(m, "", "  ")
	}
	return json.Marshal(m)
}

// Validate checks m against the model schema.
func (m *Model) Validate() error {
	b, err := m.Marshal(false)
	if err != nil {
		return err
	}
	return Validate(bytes.NewReader(b))
}

//go:embed schema.json
var schemaJSON []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, errors.Wrap(err, "loading model schema")
	}
	s, err := c.Compile("schema.json")
	return s, errors.Wrap(err, "compiling model schema")
})

// Validate checks a JSON document against the model schema.
func Validate(r io.Reader) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "decoding model")
	}
	if err := s.Validate(doc); err != nil {
		return errors.Wrap(err, "model does not match schema")
	}
	return nil
}

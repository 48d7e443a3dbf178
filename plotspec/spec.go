// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plotspec defines declarative plot specifications in the
// grammar of graphics: a data table, aesthetic mappings, and layers
// of geometries with their statistics and positions.
//
// Specifications are written in YAML:
//
//	title: Sales
//	data:
//	  columns: [quarter, sales, region]
//	  rows:
//	    - [Q1, 3, east]
//	    - [Q1, 4, west]
//	mapping: {x: quarter, y: sales, fill: region}
//	layers:
//	  - geom: bar
//	    position: stack
package plotspec

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/table"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-a11ychart/grid"
)

// Aes maps aesthetics to data columns.
type Aes struct {
	X      string `yaml:"x,omitempty"`
	Y      string `yaml:"y,omitempty"`
	Fill   string `yaml:"fill,omitempty"`
	Colour string `yaml:"colour,omitempty"`
	Group  string `yaml:"group,omitempty"`
}

// Merge returns a with unset fields taken from def.
func (a Aes) Merge(def Aes) Aes {
	if a.X == "" {
		a.X = def.X
	}
	if a.Y == "" {
		a.Y = def.Y
	}
	if a.Fill == "" {
		a.Fill = def.Fill
	}
	if a.Colour == "" {
		a.Colour = def.Colour
	}
	if a.Group == "" {
		a.Group = def.Group
	}
	return a
}

// Series returns the column that splits a layer into sub-series:
// group, then colour, then fill.
func (a Aes) Series() string {
	switch {
	case a.Group != "":
		return a.Group
	case a.Colour != "":
		return a.Colour
	}
	return a.Fill
}

// Layer is one geometric layer.
type Layer struct {
	// Geom is the geometry: bar, col, histogram, boxplot, line,
	// smooth, density, point.
	Geom string `yaml:"geom"`

	// Stat is the statistical transform. If empty, the geometry's
	// default is used.
	Stat string `yaml:"stat,omitempty"`

	// Position is identity, stack or dodge. If empty, the
	// geometry's default is used.
	Position string `yaml:"position,omitempty"`

	Mapping Aes `yaml:"mapping,omitempty"`

	// Orientation is "x" (vertical) or "y" (horizontal).
	Orientation string `yaml:"orientation,omitempty"`

	// Bins is the histogram bin count. Span is the smoothing span.
	Bins int     `yaml:"bins,omitempty"`
	Span float64 `yaml:"span,omitempty"`
}

// Facet splits a plot into panels by data values. Either Wrap or
// Rows/Cols may be set.
type Facet struct {
	Wrap []string `yaml:"wrap,omitempty"`
	NCol int      `yaml:"ncol,omitempty"`
	NRow int      `yaml:"nrow,omitempty"`
	// Dir is "h" to fill rows first (the default) or "v".
	Dir string `yaml:"dir,omitempty"`

	Rows string `yaml:"rows,omitempty"`
	Cols string `yaml:"cols,omitempty"`
}

// Compose arranges independent plots in a grid.
type Compose struct {
	Plots []*Spec `yaml:"plots"`
	NCol  int     `yaml:"ncol,omitempty"`
	NRow  int     `yaml:"nrow,omitempty"`
	// ByRow fills the grid row by row. It defaults to true.
	ByRow *bool `yaml:"byrow,omitempty"`
}

// RowMajor reports whether plots fill the grid row by row.
func (c *Compose) RowMajor() bool {
	return c.ByRow == nil || *c.ByRow
}

type Coord struct {
	Flip bool `yaml:"flip,omitempty"`
}

type Labels struct {
	X string `yaml:"x,omitempty"`
	Y string `yaml:"y,omitempty"`
}

// Spec is a plot specification.
type Spec struct {
	Title   string      `yaml:"title,omitempty"`
	Data    *DataSource `yaml:"data,omitempty"`
	Mapping Aes         `yaml:"mapping,omitempty"`
	Layers  []*Layer    `yaml:"layers,omitempty"`
	Facet   *Facet      `yaml:"facet,omitempty"`
	Compose *Compose    `yaml:"compose,omitempty"`
	Coord   Coord       `yaml:"coord,omitempty"`
	Labels  Labels      `yaml:"labels,omitempty"`

	// Levels fixes the order of the values of discrete columns.
	// Unlisted columns order their values lexically.
	Levels map[string][]string `yaml:"levels,omitempty"`

	// Table is the plot data, loaded from Data by Load or set
	// directly.
	Table *table.Table `yaml:"-"`
}

// Load reads a specification from a YAML file and loads its data.
// Relative data paths are resolved against the file's directory.
func Load(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if err := s.LoadData(filepath.Dir(path)); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return s, nil
}

// Decode parses a specification without loading its data.
func Decode(r io.Reader) (*Spec, error) {
	s := new(Spec)
	if err := yaml.NewDecoder(r).Decode(s); err != nil {
		return nil, errors.Wrap(err, "decoding plot spec")
	}
	return s, s.validate()
}

func (s *Spec) validate() error {
	if s.Compose != nil {
		if len(s.Compose.Plots) == 0 {
			return errors.New("compose without plots")
		}
		for i, p := range s.Compose.Plots {
			if p == nil {
				return errors.Newf("compose plot %d is empty", i+1)
			}
			if err := p.validate(); err != nil {
				return errors.Wrapf(err, "compose plot %d", i+1)
			}
		}
		return nil
	}
	if s.Facet != nil && len(s.Facet.Wrap) > 0 && (s.Facet.Rows != "" || s.Facet.Cols != "") {
		return errors.New("facet sets both wrap and rows/cols")
	}
	for i, l := range s.Layers {
		if l == nil || l.Geom == "" {
			return errors.Newf("layer %d has no geom", i+1)
		}
	}
	return nil
}

// LoadData loads s.Data, and recursively the data of composed plots,
// into Table. Composed plots without data of their own share the
// parent's table.
func (s *Spec) LoadData(dir string) error {
	if s.Data != nil && s.Table == nil {
		t, err := s.Data.Load(dir)
		if err != nil {
			return err
		}
		s.Table = t
	}
	if s.Compose != nil {
		for _, p := range s.Compose.Plots {
			if p.Data == nil && p.Table == nil {
				p.Table = s.Table
			}
			if err := p.LoadData(dir); err != nil {
				return err
			}
		}
	}
	return nil
}

// Horizontal reports whether layer l is drawn with its value axis
// horizontal.
func (s *Spec) Horizontal(l *Layer) bool {
	return s.Coord.Flip != (l.Orientation == "y")
}

// Flatten returns the composed plots in order. A composed plot that
// is itself faceted is returned as a single unfaceted panel.
func (c *Compose) Flatten() []*Spec {
	out := make([]*Spec, len(c.Plots))
	for i, p := range c.Plots {
		if p.Facet != nil {
			q := *p
			q.Facet = nil
			p = &q
		}
		out[i] = p
	}
	return out
}

// FacetLayout returns the panel grid s's facets produce, or the
// single-panel layout if s is not faceted. s must have data.
func (s *Spec) FacetLayout() (grid.Layout, error) {
	if s.Table == nil {
		return grid.Single, errors.New("plot has no data")
	}
	_, l, err := s.facetPanels()
	return l, err
}

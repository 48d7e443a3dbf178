// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package callog models drawing calls captured from an immediate-mode
// plotting API, classifies them, and groups them into logical plots.
//
// A call log is written in a line-oriented text format modeled on the
// Go benchmark format:
//
//	session: 5c1e
//	# comments are ignored
//	barplot height=3,5,7 names.arg=A,B,C
//	lines x=1,2,3 y=4,6,5
//
// "key: value" lines set configuration for the calls that follow.
// Every other line is one call: a function name followed by
// shell-quoted positional or name=value arguments.
package callog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role is the part a call plays in building a plot.
type Role int

const (
	Unknown Role = iota
	// Start begins a new plot.
	Start
	// Augment draws on the current plot.
	Augment
	// Layout changes the panel arrangement.
	Layout
)

func (r Role) String() string {
	switch r {
	case Start:
		return "start"
	case Augment:
		return "augment"
	case Layout:
		return "layout"
	}
	return "unknown"
}

var roles = map[string]Role{
	"barplot": Start,
	"hist":    Start,
	"boxplot": Start,
	"plot":    Start,

	"lines":  Augment,
	"points": Augment,
	"abline": Augment,

	"par":    Layout,
	"layout": Layout,
}

// Classify returns the role of a drawing function.
func Classify(fn string) Role {
	return roles[fn]
}

// ArgKind tags the runtime shape of an argument.
type ArgKind int

const (
	Numbers ArgKind = iota
	Strings
	Matrix
	Bool
	// Density is a precomputed density estimate. Nums holds the
	// sample it was estimated from.
	Density
	// Smooth is a precomputed scatterplot smoother. Rows holds the
	// x and y vectors it was fit to.
	Smooth
)

var kindNames = [...]string{"numbers", "strings", "matrix", "bool", "density", "smooth"}

func (k ArgKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ArgKind(%d)", int(k))
}

// Arg is one call argument. Which fields are meaningful depends on
// Kind.
type Arg struct {
	Kind ArgKind
	Nums []float64
	Strs []string
	Rows [][]float64
	Bool bool

	// Raw is the argument value as written in the log.
	Raw string
}

// Str returns the first string of a Strings argument, or Raw.
func (a Arg) Str() string {
	if a.Kind == Strings && len(a.Strs) > 0 {
		return a.Strs[0]
	}
	return a.Raw
}

// Call is one captured drawing invocation. Calls are immutable once
// logged.
type Call struct {
	// Seq is the capture order of this call within its session.
	Seq int

	// Func is the drawing function identifier.
	Func string

	// Pos and Named are the positional and named arguments.
	Pos   []Arg
	Named map[string]Arg

	// Raw is the call expression as captured, used for replay.
	Raw string

	Role    Role
	Session string
	Time    time.Time
}

// NewCall returns a classified call for fn with the given raw
// arguments. Each arg is either "value" or "name=value".
func NewCall(fn string, args ...string) (*Call, error) {
	c := &Call{
		Func:  fn,
		Named: make(map[string]Arg),
		Role:  Classify(fn),
	}
	for _, a := range args {
		name, val := splitArg(a)
		v, err := ParseArg(val)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %q: %w", fn, a, err)
		}
		if name == "" {
			c.Pos = append(c.Pos, v)
		} else {
			c.Named[name] = v
		}
	}
	c.Raw = formatCall(c.Func, args)
	return c, nil
}

// splitArg splits "name=value" into its parts. An argument whose
// would-be name is not an identifier is positional.
func splitArg(a string) (name, val string) {
	i := strings.Index(a, "=")
	if i <= 0 {
		return "", a
	}
	for _, r := range a[:i] {
		if !(r == '.' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "", a
		}
	}
	return a[:i], a[i+1:]
}

// Arg returns the argument called name, or else the positional
// argument at index pos. pos < 0 disables the positional fallback.
func (c *Call) Arg(name string, pos int) (Arg, bool) {
	if a, ok := c.Named[name]; ok {
		return a, true
	}
	if pos >= 0 && pos < len(c.Pos) {
		return c.Pos[pos], true
	}
	return Arg{}, false
}

// First returns the first positional argument, if any.
func (c *Call) First() (Arg, bool) {
	return c.Arg("", 0)
}

// Flag reports whether the named argument is a true Bool.
func (c *Call) Flag(name string) bool {
	a, ok := c.Named[name]
	return ok && a.Kind == Bool && a.Bool
}

// Option returns the named argument as a string, or def.
func (c *Call) Option(name, def string) string {
	if a, ok := c.Named[name]; ok {
		return a.Str()
	}
	return def
}

// Number returns the named argument as a single number.
func (c *Call) Number(name string) (float64, bool) {
	a, ok := c.Named[name]
	if !ok || a.Kind != Numbers || len(a.Nums) == 0 {
		return 0, false
	}
	return a.Nums[0], true
}

func (c *Call) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	return c.Func
}

// PlotGroup is one logical chart: a Start call and the Augment calls
// that followed it.
type PlotGroup struct {
	// Index is the 1-based position of this group in its session.
	Index    int
	Start    *Call
	Augments []*Call
}

// Calls returns the group's calls in capture order.
func (g *PlotGroup) Calls() []*Call {
	return append([]*Call{g.Start}, g.Augments...)
}

func formatNums(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

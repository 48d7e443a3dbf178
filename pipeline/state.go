// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aclements/go-a11ychart/internal/logging"
)

// State is the processing state of one chart.
type State int

const (
	Unprocessed State = iota
	TopologyDetected
	Grouped
	LayersClassified
	DataExtracted
	TreeBuilt
	SelectorsSynthesized
	GridAssembled
	Done
)

var stateNames = [...]string{
	"unprocessed", "topology-detected", "grouped", "layers-classified",
	"data-extracted", "tree-built", "selectors-synthesized", "grid-assembled", "done",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// chart tracks one chart through the pipeline.
type chart struct {
	id    string
	state State

	// imperative charts must pass through Grouped.
	imperative bool

	log *zap.SugaredLogger
}

// advance moves c to state to. Any transition other than to the next
// state, or to LayersClassified from TopologyDetected for declarative
// charts, is a bug in the pipeline and panics.
func (c *chart) advance(to State) {
	ok := to == c.state+1 && c.state != Done
	if c.state == TopologyDetected {
		ok = (to == Grouped) == c.imperative && (to == Grouped || to == LayersClassified)
	}
	if !ok {
		panic(fmt.Sprintf("chart %s: bad transition %v -> %v", c.id, c.state, to))
	}
	c.state = to
	logging.Or(c.log).Debugw("state", logging.FieldState, to.String())
}

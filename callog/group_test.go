// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCall(t *testing.T, fn string, args ...string) *Call {
	t.Helper()
	c, err := NewCall(fn, args...)
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	for fn, want := range map[string]Role{
		"barplot": Start,
		"hist":    Start,
		"boxplot": Start,
		"plot":    Start,
		"lines":   Augment,
		"points":  Augment,
		"abline":  Augment,
		"par":     Layout,
		"layout":  Layout,
		"pie":     Unknown,
		"":        Unknown,
	} {
		assert.Equal(t, want, Classify(fn), fn)
	}
}

func TestGroupScenario(t *testing.T) {
	calls := []*Call{
		mustCall(t, "lines", "x=1,2"), // no open group: dropped
		mustCall(t, "par", "mfrow=1,2"),
		mustCall(t, "barplot", "height=3,5,7"),
		mustCall(t, "lines", "x=1,2,3", "y=4,6,5"),
		mustCall(t, "pie", "1,2"),
		mustCall(t, "hist", "1,2,3"),
		mustCall(t, "points", "x=1", "y=2"),
	}
	groups, layout := Group(calls)

	require.Len(t, layout, 1)
	assert.Equal(t, "par", layout[0].Func)

	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Index)
	assert.Same(t, calls[2], groups[0].Start)
	assert.Equal(t, []*Call{calls[3], calls[4]}, groups[0].Augments)
	assert.Same(t, calls[5], groups[1].Start)
	assert.Equal(t, []*Call{calls[6]}, groups[1].Augments)
	assert.Equal(t, []*Call{calls[5], calls[6]}, groups[1].Calls())
}

// Every Augment call in a group follows its own Start call and
// precedes the next Start call, in capture order.
func TestGroupOrderProperty(t *testing.T) {
	fns := []string{"barplot", "hist", "lines", "points", "abline", "par", "pie"}
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		var calls []*Call
		for i := r.Intn(30); i >= 0; i-- {
			c := mustCall(t, fns[r.Intn(len(fns))])
			c.Seq = len(calls) + 1
			calls = append(calls, c)
		}
		groups, _ := Group(calls)
		for gi, g := range groups {
			require.Equal(t, Start, g.Start.Role)
			next := len(calls) + 1
			if gi+1 < len(groups) {
				next = groups[gi+1].Start.Seq
			}
			prev := g.Start.Seq
			for _, a := range g.Augments {
				require.NotEqual(t, Start, a.Role)
				require.NotEqual(t, Layout, a.Role)
				require.Greater(t, a.Seq, prev)
				require.Less(t, a.Seq, next)
				prev = a.Seq
			}
			// Contiguity: every non-layout call between Start and
			// the next Start is in the group.
			var between int
			for _, c := range calls[g.Start.Seq : next-1] {
				if c.Role != Layout {
					between++
				}
			}
			require.Equal(t, between, len(g.Augments))
		}
	}
}

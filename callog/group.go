// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callog

// Group folds calls, in capture order, into plot groups. A Start call
// closes the open group and opens a new one. Augment calls join the
// open group. Layout calls are returned separately and never appear
// in a group.
//
// Calls with no open group to join are dropped. Calls whose function
// is not recognized are treated as drawing on the current plot, so
// they join the open group like Augment calls.
func Group(calls []*Call) (groups []*PlotGroup, layout []*Call) {
	var cur *PlotGroup
	for _, c := range calls {
		switch c.Role {
		case Start:
			cur = &PlotGroup{Index: len(groups) + 1, Start: c}
			groups = append(groups, cur)
		case Layout:
			layout = append(layout, c)
		default:
			if cur == nil {
				continue
			}
			cur.Augments = append(cur.Augments, c)
		}
	}
	return groups, layout
}

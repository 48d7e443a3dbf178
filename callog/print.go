// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callog

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// Fprint writes calls to w in the format read by Parse. Consecutive
// calls from the same session share one configuration block, and a
// "time" line is written wherever the capture time changes.
func Fprint(w io.Writer, calls []*Call) error {
	var (
		session string
		when    time.Time
	)
	for i, c := range calls {
		if i > 0 && c.Session != session {
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
		}
		if (i == 0 && c.Session != "") || (i > 0 && c.Session != session) {
			if _, err := fmt.Fprintf(w, "session: %s\n", c.Session); err != nil {
				return err
			}
			session = c.Session
		}
		if !c.Time.Equal(when) {
			line := "time:"
			if !c.Time.IsZero() {
				line += " " + c.Time.Format(time.RFC3339Nano)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			when = c.Time
		}
		if _, err := fmt.Fprintln(w, c.Format()); err != nil {
			return err
		}
	}
	return nil
}

// Format returns c as one log line: positional arguments in order,
// then named arguments sorted by name.
func (c *Call) Format() string {
	args := make([]string, 0, len(c.Pos)+len(c.Named))
	for _, a := range c.Pos {
		args = append(args, a.raw())
	}
	names := make([]string, 0, len(c.Named))
	for k := range c.Named {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		args = append(args, k+"="+c.Named[k].raw())
	}
	return formatCall(c.Func, args)
}

func formatCall(fn string, args []string) string {
	return shellquote.Join(append([]string{fn}, args...)...)
}

// raw reconstructs the log form of a.
func (a Arg) raw() string {
	if a.Raw != "" {
		return a.Raw
	}
	switch a.Kind {
	case Numbers:
		return formatNums(a.Nums)
	case Bool:
		if a.Bool {
			return "true"
		}
		return "false"
	case Density:
		return "density:" + formatNums(a.Nums)
	case Matrix, Smooth:
		s := "["
		for i, r := range a.Rows {
			if i > 0 {
				s += ";"
			}
			s += formatNums(r)
		}
		s += "]"
		if a.Kind == Smooth {
			s = "smooth:" + s
		}
		return s
	}
	return strings.Join(a.Strs, ",")
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callog

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
)

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s]*):(?:[ \t]+(.*))?$`)

// Parse parses a call log from r. It returns the calls in capture
// order. The "session" configuration key sets the Session of the
// calls that follow it and restarts their Seq numbering; the "time"
// key, if present, must be RFC 3339.
func Parse(r io.Reader) ([]*Call, error) {
	calls := []*Call{}
	config := make(map[string]string)
	seq := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Configuration lines.
		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}

		c, err := parseCall(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
		c.Session = config["session"]
		if ts := config["time"]; ts != "" {
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineno)
			}
			c.Time = t
		}
		seq[c.Session]++
		c.Seq = seq[c.Session]
		calls = append(calls, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return calls, nil
}

func parseCall(line string) (*Call, error) {
	f, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return nil, errors.New("empty call")
	}
	c, err := NewCall(f[0], f[1:]...)
	if err != nil {
		return nil, err
	}
	c.Raw = line
	return c, nil
}

// ValueParser parses a raw argument value. It returns ok == false if
// the value is not of its kind.
type ValueParser func(string) (a Arg, ok bool, err error)

// ValueParsers is the sequence of parsers tried by ParseArg. The
// first parser that accepts a value wins. The last parser accepts
// anything as a list of strings.
var ValueParsers = []ValueParser{
	parsePrefixed("density:", Density),
	parsePrefixed("smooth:", Smooth),
	parseMatrix,
	parseBool,
	parseNumbers,
	parseStrings,
}

// ParseArg parses one raw argument value.
func ParseArg(raw string) (Arg, error) {
	for _, vp := range ValueParsers {
		a, ok, err := vp(raw)
		if err != nil {
			return Arg{}, err
		}
		if ok {
			a.Raw = raw
			return a, nil
		}
	}
	return Arg{Kind: Strings, Strs: []string{raw}, Raw: raw}, nil
}

func parsePrefixed(prefix string, kind ArgKind) ValueParser {
	return func(s string) (Arg, bool, error) {
		if !strings.HasPrefix(s, prefix) {
			return Arg{}, false, nil
		}
		body := s[len(prefix):]
		if kind == Density {
			xs, ok := numbers(body)
			if !ok || len(xs) == 0 {
				return Arg{}, false, errors.Newf("bad density sample %q", body)
			}
			return Arg{Kind: kind, Nums: xs}, true, nil
		}
		rows, ok, err := matrix(body)
		if err != nil {
			return Arg{}, false, err
		}
		if !ok || len(rows) != 2 || len(rows[0]) != len(rows[1]) {
			return Arg{}, false, errors.Newf("smoother needs [x;y] of equal length, got %q", body)
		}
		return Arg{Kind: kind, Rows: rows}, true, nil
	}
}

func parseMatrix(s string) (Arg, bool, error) {
	rows, ok, err := matrix(s)
	if !ok || err != nil {
		return Arg{}, false, err
	}
	return Arg{Kind: Matrix, Rows: rows}, true, nil
}

// matrix parses "[a,b;c,d]" into rows.
func matrix(s string) ([][]float64, bool, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, false, nil
	}
	var rows [][]float64
	for _, r := range strings.Split(s[1:len(s)-1], ";") {
		xs, ok := numbers(r)
		if !ok {
			return nil, false, errors.Newf("bad matrix row %q", r)
		}
		if len(rows) > 0 && len(xs) != len(rows[0]) {
			return nil, false, errors.Newf("ragged matrix %q", s)
		}
		rows = append(rows, xs)
	}
	return rows, true, nil
}

func parseBool(s string) (Arg, bool, error) {
	switch s {
	case "true", "TRUE", "T":
		return Arg{Kind: Bool, Bool: true}, true, nil
	case "false", "FALSE", "F":
		return Arg{Kind: Bool}, true, nil
	}
	return Arg{}, false, nil
}

func parseNumbers(s string) (Arg, bool, error) {
	xs, ok := numbers(s)
	if !ok {
		return Arg{}, false, nil
	}
	return Arg{Kind: Numbers, Nums: xs}, true, nil
}

func parseStrings(s string) (Arg, bool, error) {
	return Arg{Kind: Strings, Strs: strings.Split(s, ",")}, true, nil
}

func numbers(s string) ([]float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ",")
	xs := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		xs[i] = x
	}
	return xs, true
}

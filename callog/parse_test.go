// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callog

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseArg(t *testing.T) {
	for _, test := range []struct {
		raw  string
		want Arg
	}{
		{"3,5,7", Arg{Kind: Numbers, Nums: []float64{3, 5, 7}}},
		{"-1.5", Arg{Kind: Numbers, Nums: []float64{-1.5}}},
		{"A,B,C", Arg{Kind: Strings, Strs: []string{"A", "B", "C"}}},
		{"TRUE", Arg{Kind: Bool, Bool: true}},
		{"false", Arg{Kind: Bool}},
		{"[3,5;2,4]", Arg{Kind: Matrix, Rows: [][]float64{{3, 5}, {2, 4}}}},
		{"density:1,2,2,3", Arg{Kind: Density, Nums: []float64{1, 2, 2, 3}}},
		{"smooth:[1,2,3;4,6,5]", Arg{Kind: Smooth, Rows: [][]float64{{1, 2, 3}, {4, 6, 5}}}},
		{"", Arg{Kind: Strings, Strs: []string{""}}},
	} {
		got, err := ParseArg(test.raw)
		if err != nil {
			t.Errorf("ParseArg(%q): %v", test.raw, err)
			continue
		}
		test.want.Raw = test.raw
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("ParseArg(%q): want %+v, got %+v", test.raw, test.want, got)
		}
	}
}

func TestParseArgErrors(t *testing.T) {
	for _, raw := range []string{
		"[1,2;3]",
		"[1,x]",
		"density:",
		"smooth:[1,2]",
		"smooth:[1,2;3]",
	} {
		if _, err := ParseArg(raw); err == nil {
			t.Errorf("ParseArg(%q): want error", raw)
		}
	}
}

func TestParse(t *testing.T) {
	input := `
# two sessions
session: s1
barplot height=3,5,7 names.arg=A,B,C
lines x=1,2,3 y=4,6,5

session: s2
par mfrow=2,2
hist 1,2,2,3,3,3 main="Hello world"
`
	calls, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	type summary struct {
		Seq     int
		Func    string
		Role    Role
		Session string
	}
	var got []summary
	for _, c := range calls {
		got = append(got, summary{c.Seq, c.Func, c.Role, c.Session})
	}
	want := []summary{
		{1, "barplot", Start, "s1"},
		{2, "lines", Augment, "s1"},
		{1, "par", Layout, "s2"},
		{2, "hist", Start, "s2"},
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %+v, got %+v", want, got)
	}

	if h := calls[0].Named["names.arg"]; !reflect.DeepEqual(h.Strs, []string{"A", "B", "C"}) {
		t.Errorf("names.arg: got %+v", h)
	}
	if m := calls[3].Option("main", ""); m != "Hello world" {
		t.Errorf("main: want %q, got %q", "Hello world", m)
	}
	if x, ok := calls[3].First(); !ok || len(x.Nums) != 6 {
		t.Errorf("hist x: got %+v", x)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		`barplot height="3,5`,
		`barplot height=[1,2;3]`,
		"time: yesterday\nplot 1,2",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q): want error", input)
		}
	}
}

func TestPrintRoundTrip(t *testing.T) {
	input := `session: a
time: 2026-03-01T10:00:00Z
barplot height=[3,5;2,4] beside=true legend.text="x y,z"
time: 2026-03-01T10:00:02.5Z
lines smooth:[1,2,3;4,6,5]

session: b
time:
boxplot 1,2,3,40 horizontal=TRUE
`
	calls, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Fprint(&buf, calls); err != nil {
		t.Fatal(err)
	}
	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, buf.String())
	}
	if len(again) != len(calls) {
		t.Fatalf("want %d calls, got %d", len(calls), len(again))
	}
	if want := time.Date(2026, 3, 1, 10, 0, 2, 5e8, time.UTC); !again[1].Time.Equal(want) {
		t.Errorf("call 1 time: want %v, got %v", want, again[1].Time)
	}
	if !again[2].Time.IsZero() {
		t.Errorf("call 2 time: want zero, got %v", again[2].Time)
	}
	for i := range calls {
		a, b := calls[i], again[i]
		if a.Func != b.Func || a.Session != b.Session || a.Seq != b.Seq || !a.Time.Equal(b.Time) ||
			!reflect.DeepEqual(a.Pos, b.Pos) || !reflect.DeepEqual(a.Named, b.Named) {
			t.Errorf("call %d: want %+v, got %+v", i, a, b)
		}
	}
}

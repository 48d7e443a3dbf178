// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotspec

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// DataSource describes where plot data comes from: inline rows, a CSV
// file, or a sheet of an xlsx workbook. The first row of a file is
// its header. Columns whose values all parse as numbers become
// numeric.
type DataSource struct {
	Columns []string   `yaml:"columns,omitempty"`
	Rows    [][]string `yaml:"rows,omitempty"`

	File  string `yaml:"file,omitempty"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Load returns the data as a table.
func (d *DataSource) Load(dir string) (*table.Table, error) {
	var header []string
	var rows [][]string
	switch {
	case d.File == "":
		header, rows = d.Columns, d.Rows
	case strings.EqualFold(filepath.Ext(d.File), ".xlsx"):
		var err error
		header, rows, err = readSheet(resolve(dir, d.File), d.Sheet)
		if err != nil {
			return nil, err
		}
	default:
		var err error
		header, rows, err = readCSV(resolve(dir, d.File))
		if err != nil {
			return nil, err
		}
	}
	if len(header) == 0 {
		return nil, errors.New("data has no columns")
	}
	for i, r := range rows {
		if len(r) != len(header) {
			return nil, errors.Newf("data row %d has %d values, want %d", i+1, len(r), len(header))
		}
	}
	return table.TableFromStrings(header, rows, true), nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(recs) == 0 {
		return nil, nil, errors.Newf("%s: empty", path)
	}
	return recs[0], recs[1:], nil
}

func readSheet(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.Newf("%s: no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s!%s", path, sheet)
	}
	if len(rows) == 0 {
		return nil, nil, errors.Newf("%s!%s: empty", path, sheet)
	}
	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		// GetRows trims trailing empty cells.
		for len(r) < len(header) {
			r = append(r, "")
		}
		body = append(body, r[:len(header)])
	}
	return header, body, nil
}

// Floats returns column col of t as float64s.
func Floats(t *table.Table, col string) ([]float64, error) {
	switch v := t.Column(col).(type) {
	case nil:
		return nil, errors.Newf("no column %q", col)
	case []float64:
		return v, nil
	case []int:
		var out []float64
		slice.Convert(&out, v)
		return out, nil
	case []string:
		out := make([]float64, len(v))
		for i, s := range v {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.Newf("column %q is not numeric: %q", col, s)
			}
			out[i] = x
		}
		return out, nil
	}
	return nil, errors.Newf("column %q has unsupported type %T", col, t.Column(col))
}

// Strings returns column col of t formatted as strings. If col is
// empty, it returns n empty strings.
func Strings(t *table.Table, col string) ([]string, error) {
	if col == "" {
		return make([]string, t.Len()), nil
	}
	switch v := t.Column(col).(type) {
	case nil:
		return nil, errors.Newf("no column %q", col)
	case []string:
		return v, nil
	case []int:
		out := make([]string, len(v))
		for i, x := range v {
			out[i] = strconv.Itoa(x)
		}
		return out, nil
	case []float64:
		out := make([]string, len(v))
		for i, x := range v {
			out[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return out, nil
	}
	return nil, errors.Newf("column %q has unsupported type %T", col, t.Column(col))
}

// IsNumeric reports whether column col of t holds numbers.
func IsNumeric(t *table.Table, col string) bool {
	switch t.Column(col).(type) {
	case []float64, []int:
		return true
	}
	return false
}

// levelsOf returns the distinct values of vals in display order: the
// order given in s.Levels[col] first, then the rest. Values of a
// numeric column sort numerically, others lexically.
func (s *Spec) levelsOf(col string, vals []string, numeric bool) []string {
	seen := make(map[string]bool)
	var rest []string
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			rest = append(rest, v)
		}
	}
	var out []string
	for _, v := range s.Levels[col] {
		if seen[v] {
			out = append(out, v)
			delete(seen, v)
		}
	}
	var tail []string
	for _, v := range rest {
		if seen[v] {
			tail = append(tail, v)
		}
	}
	if numeric {
		sort.SliceStable(tail, func(i, j int) bool {
			a, _ := strconv.ParseFloat(tail[i], 64)
			b, _ := strconv.ParseFloat(tail[j], 64)
			return a < b
		})
	} else {
		sort.Strings(tail)
	}
	return append(out, tail...)
}

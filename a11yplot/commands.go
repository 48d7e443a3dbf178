// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aclements/go-a11ychart/a11y"
	"github.com/aclements/go-a11ychart/callog"
	"github.com/aclements/go-a11ychart/internal/logging"
	"github.com/aclements/go-a11ychart/pipeline"
	"github.com/aclements/go-a11ychart/plotspec"
	"github.com/aclements/go-a11ychart/render"
	"github.com/aclements/go-a11ychart/session"
)

var flagTable bool

var specCmd = &cobra.Command{
	Use:   "spec <file.yaml>",
	Short: "Describe a declarative plot specification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := plotspec.Load(args[0])
		if err != nil {
			return errors.WithHint(err, "see the plotspec package documentation for the file format")
		}
		logging.Logger.Debugw("spec loaded", logging.FieldFile, args[0])
		b := newBackend()
		m, err := pipeline.New(b, logging.Component("pipeline")).FromSpec(cmd.Context(), s)
		if err != nil {
			return err
		}
		if err := b.save(); err != nil {
			return err
		}
		return emit(cmd, []*a11y.Model{m})
	},
}

var callsCmd = &cobra.Command{
	Use:   "calls <file.log>",
	Short: "Describe the charts drawn by a call log",
	Long: `calls reads a log of drawing calls, one per line, and describes the
chart each session draws. A "session: <id>" line starts a new session.
Use - to read standard input.

With store.driver set to sqlite, calls are captured in the SQLite
database at store.dsn and drained from it, as a separate capturing
process would.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calls, err := readCalls(args[0])
		if err != nil {
			return err
		}
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		b := newBackend()
		p := pipeline.New(b, logging.Component("pipeline"))
		var models []*a11y.Model
		for _, id := range sessions(calls) {
			m, err := describeSession(cmd.Context(), p, store, id, calls)
			if err != nil {
				return errors.Wrapf(err, "session %q", id)
			}
			models = append(models, m)
		}
		if err := b.save(); err != nil {
			return err
		}
		return emit(cmd, models)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <model.json>...",
	Short: "Check models against the model schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bad := 0
		for _, path := range args {
			err := validateFile(path)
			if err != nil {
				bad++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if bad > 0 {
			return errors.Newf("%d of %d models invalid", bad, len(args))
		}
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print <file.log>",
	Short: "Print a call log in normalized form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calls, err := readCalls(args[0])
		if err != nil {
			return err
		}
		w, err := output(cmd)
		if err != nil {
			return err
		}
		defer w.Close()
		return callog.Fprint(w, calls)
	},
}

func init() {
	for _, c := range []*cobra.Command{specCmd, callsCmd} {
		c.Flags().BoolVar(&flagTable, "table", false, "output a table of layers instead of the model")
	}
}

func readCalls(path string) ([]*callog.Call, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}
	calls, err := callog.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	logging.Logger.Debugw("calls read", logging.FieldFile, path, logging.FieldCount, len(calls))
	return calls, nil
}

// sessions returns the session ids of calls in order of first
// appearance.
func sessions(calls []*callog.Call) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, c := range calls {
		if !seen[c.Session] {
			seen[c.Session] = true
			ids = append(ids, c.Session)
		}
	}
	return ids
}

func openStore() (session.Store, func(), error) {
	if cfg.Store.Driver != "sqlite" {
		return new(session.MemoryStore), func() {}, nil
	}
	s, err := session.OpenSQLite(cfg.Store.DSN)
	if err != nil {
		return nil, nil, errors.WithHint(err, "check store.dsn")
	}
	return s, func() { s.Close() }, nil
}

// describeSession captures the calls of session id in store and then
// processes them.
func describeSession(ctx context.Context, p *pipeline.Pipeline, store session.Store, id string, calls []*callog.Call) (*a11y.Model, error) {
	sess := session.Open(store, id)
	for _, c := range calls {
		if c.Session != id {
			continue
		}
		if err := sess.RecordCall(ctx, c); err != nil {
			return nil, err
		}
	}
	logging.Logger.Debugw("session captured", logging.FieldSession, sess.ID)
	return p.FromSession(ctx, sess)
}

func validateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return a11y.Validate(f)
}

// emit writes models as JSON, or as a table of layers.
func emit(cmd *cobra.Command, models []*a11y.Model) error {
	if cfg.Validate {
		for _, m := range models {
			if err := m.Validate(); err != nil {
				return errors.Wrapf(err, "model %s", m.ID)
			}
		}
	}

	w, err := output(cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	if flagTable {
		return writeTable(w, models)
	}
	for _, m := range models {
		b, err := m.Marshal(cfg.Output.Pretty)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// recorder is a backend that keeps the SVG of each chart it draws.
type recorder struct {
	render.Backend
	svgs [][]byte
}

func newBackend() *recorder {
	log := logging.Component("render")
	return &recorder{Backend: render.NewSVG(cfg.Render.Width, cfg.Render.Height, log)}
}

func (r *recorder) Render(ctx context.Context, s *plotspec.Spec) (*render.Rendering, error) {
	return r.keep(r.Backend.Render(ctx, s))
}

func (r *recorder) Replay(ctx context.Context, g *callog.PlotGroup) (*render.Rendering, error) {
	return r.keep(r.Backend.Replay(ctx, g))
}

func (r *recorder) keep(rend *render.Rendering, err error) (*render.Rendering, error) {
	if err == nil && cfg.Output.SVG != "" {
		r.svgs = append(r.svgs, rend.SVG)
	}
	return rend, err
}

// save writes the recorded drawings to output.svg. Each drawing
// after the first gets a numbered file name.
func (r *recorder) save() error {
	for i, svg := range r.svgs {
		path := svgPath(cfg.Output.SVG, i)
		if err := os.WriteFile(path, svg, 0666); err != nil {
			return err
		}
	}
	return nil
}

// svgPath returns the file name of the i'th (0-based) drawing saved
// to path.
func svgPath(path string, i int) string {
	if i == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging holds the process-wide structured logger shared by
// the a11ychart packages.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names.
const (
	FieldChart   = "chart"
	FieldSession = "session"
	FieldPanel   = "panel"
	FieldLayer   = "layer"
	FieldType    = "type"
	FieldState   = "state"
	FieldCount   = "count"
	FieldWant    = "want"
	FieldFile    = "file"
	FieldError   = "error"
)

// Logger is the global logger. It discards everything until Init is
// called.
var Logger = zap.NewNop().Sugar()

// Init replaces Logger. If json is set, records are written as JSON
// to stderr; otherwise they use the console encoder. level is a zap
// level name such as "debug" or "warn"; the empty string means info.
func Init(json bool, level string) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		lvl, err = zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
	}

	if json {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		l, err := config.Build()
		if err != nil {
			return err
		}
		Logger = l.Sugar()
		return nil
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(os.Stderr), lvl)
	Logger = zap.New(core).Sugar()
	return nil
}

// Component returns a child of Logger tagged with the component name.
func Component(name string) *zap.SugaredLogger {
	return Logger.With("component", name)
}

// Or returns l, or the no-op logger if l is nil.
func Or(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

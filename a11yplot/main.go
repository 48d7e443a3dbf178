// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command a11yplot builds accessibility models of charts.
//
// a11yplot reads a chart, either a declarative plot specification in
// YAML or a log of drawing calls, draws it, and writes a JSON model
// giving, for every layer of every panel, the data the layer shows
// and selectors of the shapes that show it.
//
// Configuration is read from a11yplot.yaml in the current directory
// (or the file named by --config) and from A11YPLOT_* environment
// variables, such as A11YPLOT_LOG_LEVEL=debug.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aclements/go-a11ychart/internal/logging"
)

var (
	flagConfig     string
	flagOut        string
	flagCPUProfile string
	flagMemProfile string

	cfg *config
)

var rootCmd = &cobra.Command{
	Use:   "a11yplot",
	Short: "Build accessibility models of charts",
	Long: `a11yplot draws a chart and describes it for assistive technology.

Each layer of each panel is reported with its data, in the order it is
drawn, and with CSS selectors of the shapes that draw it.`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&flagConfig, "config", "", "read configuration from `file` (default ./a11yplot.yaml)")
	f.StringVarP(&flagOut, "output", "o", "", "write output to `file` (default: stdout)")
	f.String("svg", "", "also write the drawn chart to `file`")
	f.String("log-level", "", "log `level`: debug, info, warn or error")
	f.Bool("log-json", false, "write logs as JSON")
	f.StringVar(&flagCPUProfile, "cpuprofile", "", "write CPU profile to `file`")
	f.StringVar(&flagMemProfile, "memprofile", "", "write heap profile to `file`")

	rootCmd.AddCommand(specCmd, callsCmd, validateCmd, printCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	v := viper.New()
	f := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"output.svg": "svg",
		"log.level":  "log-level",
		"log.json":   "log-json",
	} {
		if fl := f.Lookup(flag); fl != nil && fl.Changed {
			if err := v.BindPFlag(key, fl); err != nil {
				return err
			}
		}
	}
	var err error
	cfg, err = loadConfig(v, flagConfig)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return errors.WithHint(errors.Wrap(err, "configuring logging"),
			"log.level must be a level such as debug, info, warn or error")
	}

	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return err
		}
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	defer logging.Logger.Sync()
	if flagCPUProfile != "" {
		pprof.StopCPUProfile()
	}
	if flagMemProfile != "" {
		runtime.GC()
		f, err := os.Create(flagMemProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		return pprof.WriteHeapProfile(f)
	}
	return nil
}

// output opens the output file, or returns stdout.
func output(cmd *cobra.Command) (io.WriteCloser, error) {
	if flagOut == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(flagOut)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "a11yplot: %v\n", err)
		for _, h := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "a11yplot: hint: %s\n", h)
		}
		os.Exit(1)
	}
}

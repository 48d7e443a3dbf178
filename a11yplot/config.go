// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// config is the command's configuration, read from a11yplot.yaml,
// A11YPLOT_* environment variables and flags, in increasing order of
// precedence.
type config struct {
	Output struct {
		Pretty bool   `mapstructure:"pretty"`
		SVG    string `mapstructure:"svg"`
	} `mapstructure:"output"`
	Render struct {
		Width  float64 `mapstructure:"width"`
		Height float64 `mapstructure:"height"`
	} `mapstructure:"render"`
	Log struct {
		JSON  bool   `mapstructure:"json"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Store struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"store"`
	Validate bool `mapstructure:"validate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.pretty", true)
	v.SetDefault("output.svg", "")
	v.SetDefault("render.width", 640.0)
	v.SetDefault("render.height", 480.0)
	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "a11yplot.db")
	v.SetDefault("validate", true)
}

// loadConfig reads the configuration file, if any. If path is empty,
// a11yplot.yaml is looked for in the current directory.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	setDefaults(v)
	v.SetEnvPrefix("A11YPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("a11yplot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	switch cfg.Store.Driver {
	case "memory", "sqlite":
	default:
		return nil, errors.WithHint(
			errors.Newf("unknown store driver %q", cfg.Store.Driver),
			"store.driver must be memory or sqlite")
	}
	return cfg, nil
}

// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/timex"
)

// Config is the yaml configuration file format, for example:
//
//	reference: 2017-09-26T10:15
//	output: yaml
//	color: true
//	logging:
//	  level: 3
//	  format: text
type Config struct {
	Reference string                `yaml:"reference"`
	Output    string                `yaml:"output"`
	Color     bool                  `yaml:"color"`
	Logging   cmdutil.LoggingConfig `yaml:"logging"`
}

const (
	tableOutput = "table"
	yamlOutput  = "yaml"
)

// loadConfig reads the configuration file named by the flags, if any, and
// applies the flags to it.
func loadConfig(fl CommonFlags) (Config, error) {
	var cfg Config
	if len(fl.Config) > 0 {
		if err := cmdyaml.ParseConfigFile(context.Background(), fl.Config, &cfg); err != nil {
			return Config{}, err
		}
	}
	if len(fl.Reference) > 0 {
		cfg.Reference = fl.Reference
	}
	if len(fl.Output) > 0 {
		cfg.Output = fl.Output
	}
	cfg.Color = cfg.Color || fl.Color
	switch cfg.Output {
	case "":
		cfg.Output = tableOutput
	case tableOutput, yamlOutput:
	default:
		return Config{}, fmt.Errorf("unsupported output format: %q", cfg.Output)
	}
	return cfg, nil
}

// ReferenceTime returns the configured reference time or now if none is
// configured. The reference may be a definite TIMEX date or date-time
// or an RFC3339 time.
func (c Config) ReferenceTime(now func() time.Time) (time.Time, error) {
	if len(c.Reference) == 0 {
		return now(), nil
	}
	if p, err := timex.Parse(c.Reference); err == nil {
		if t, ok := p.DateTime(); ok {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, c.Reference)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference time %q: not a definite date, date-time or RFC3339 time", c.Reference)
	}
	return t, nil
}

// withLogger returns a context carrying the configured logger and a
// function to close it.
func (c Config) withLogger(ctx context.Context) (context.Context, func() error, error) {
	logger, err := c.Logging.NewLogger()
	if err != nil {
		return ctx, nil, err
	}
	return ctxlog.WithLogger(ctx, logger.Logger), logger.Close, nil
}

// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"strings"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/timex"
	"cloudeng.io/timex/rangeresolver"
	"cloudeng.io/timex/resolver"
)

type commands struct {
	out io.Writer
	now func() time.Time
}

func (c *commands) setup(ctx context.Context, fl CommonFlags) (context.Context, Config, func() error, error) {
	cfg, err := loadConfig(fl)
	if err != nil {
		return ctx, Config{}, nil, err
	}
	ctx, closer, err := cfg.withLogger(ctx)
	if err != nil {
		return ctx, Config{}, nil, err
	}
	return ctx, cfg, closer, nil
}

func (c *commands) reference(cfg Config) (time.Time, error) {
	now := c.now
	if now == nil {
		now = time.Now
	}
	return cfg.ReferenceTime(now)
}

// Parsed is the output of the parse command.
type Parsed struct {
	Timex     string   `yaml:"timex"`
	Canonical string   `yaml:"canonical"`
	Types     []string `yaml:"types"`
}

func (c *commands) parse(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*parseFlags)
	ctx, cfg, closer, err := c.setup(ctx, fv.CommonFlags)
	if err != nil {
		return err
	}
	defer closer()
	logger := ctxlog.Logger(ctx)
	var errs errors.M
	var parsed []Parsed
	for _, arg := range args {
		p, err := timex.Parse(arg)
		if err != nil {
			errs.Append(err)
			continue
		}
		logger.Info("parse", "timex", arg, "canonical", p.String())
		parsed = append(parsed, Parsed{
			Timex:     arg,
			Canonical: p.String(),
			Types:     typeNames(p.Types()),
		})
	}
	errs.Append(newPrinter(c.out, cfg).parsed(parsed))
	return errs.Err()
}

func (c *commands) resolve(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*resolveFlags)
	ctx, cfg, closer, err := c.setup(ctx, fv.CommonFlags)
	if err != nil {
		return err
	}
	defer closer()
	ref, err := c.reference(cfg)
	if err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("resolve", "reference", timex.DateTimeValue(ref))
	var errs errors.M
	resolutions, err := resolver.Resolve(ctx, ref, args...)
	errs.Append(err)
	errs.Append(newPrinter(c.out, cfg).resolutions(resolutions))
	return errs.Err()
}

func (c *commands) evaluate(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*evaluateFlags)
	ctx, cfg, closer, err := c.setup(ctx, fv.CommonFlags)
	if err != nil {
		return err
	}
	defer closer()
	constraints := strings.Fields(fv.Constraints)
	ctxlog.Logger(ctx).Info("evaluate", "candidates", args, "constraints", constraints)
	results, err := rangeresolver.Evaluate(ctx, args, constraints)
	if err != nil {
		return err
	}
	return newPrinter(c.out, cfg).evaluated(results)
}

func typeNames(ts timex.Types) []string {
	var names []string
	for _, t := range ts.Slice() {
		names = append(names, t.String())
	}
	return names
}

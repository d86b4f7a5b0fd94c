// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"strings"

	"cloudeng.io/timex"
	"cloudeng.io/timex/rangeresolver"
	"cloudeng.io/timex/resolver"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

type printer struct {
	out      io.Writer
	format   string
	useColor bool
}

func newPrinter(out io.Writer, cfg Config) *printer {
	return &printer{out: out, format: cfg.Output, useColor: cfg.Color}
}

func (p *printer) colorize(text string, attrs ...color.Attribute) string {
	if !p.useColor || len(text) == 0 {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (p *printer) table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func (p *printer) parsed(parsed []Parsed) error {
	if p.format == yamlOutput {
		return p.yaml(parsed)
	}
	rows := make([][]string, 0, len(parsed))
	for _, pr := range parsed {
		rows = append(rows, []string{
			pr.Timex,
			p.colorize(pr.Canonical, color.FgCyan),
			strings.Join(pr.Types, ", "),
		})
	}
	return p.table([]string{"timex", "canonical", "types"}, rows)
}

func (p *printer) resolutions(resolutions []resolver.Resolution) error {
	if p.format == yamlOutput {
		return p.yaml(resolutions)
	}
	rows := make([][]string, 0, len(resolutions))
	for _, r := range resolutions {
		value := p.colorize(r.Value, color.FgCyan)
		if r.Value == resolver.NotResolved {
			value = p.colorize(r.Value, color.FgYellow)
		}
		rows = append(rows, []string{
			r.Timex,
			r.Type,
			value,
			p.colorize(r.Start, color.FgCyan),
			p.colorize(r.End, color.FgCyan),
		})
	}
	return p.table([]string{"timex", "type", "value", "start", "end"}, rows)
}

func (p *printer) evaluated(results []timex.Property) error {
	if p.format == yamlOutput {
		return p.yaml(rangeresolver.Strings(results))
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			p.colorize(r.String(), color.FgCyan),
			r.Types().String(),
		})
	}
	return p.table([]string{"value", "types"}, rows)
}

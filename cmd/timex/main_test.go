// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/timex"
	"cloudeng.io/timex/resolver"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "timex.yaml")
	if err := os.WriteFile(file, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return file
}

const testConfig = `reference: 2017-09-26T10:15
output: yaml
logging:
  level: 3
  format: json
`

func TestLoadConfig(t *testing.T) {
	file := writeConfig(t, testConfig)
	cfg, err := loadConfig(CommonFlags{Config: file})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Reference: "2017-09-26T10:15",
		Output:    yamlOutput,
		Logging:   cmdutil.LoggingConfig{Level: 3, Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = loadConfig(CommonFlags{Config: file, Reference: "2018", Output: tableOutput, Color: true})
	if err != nil {
		t.Fatal(err)
	}
	want.Reference, want.Output, want.Color = "2018", tableOutput, true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = loadConfig(CommonFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Output, tableOutput; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := loadConfig(CommonFlags{Output: "xml"}); err == nil {
		t.Errorf("expected an error for an unsupported output format")
	}
	if _, err := loadConfig(CommonFlags{Config: writeConfig(t, "output: [1, 2]\n")}); err == nil {
		t.Errorf("expected an error for a malformed config file")
	}
	if _, err := loadConfig(CommonFlags{Config: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Errorf("expected an error for a missing config file")
	}
}

func TestReferenceTime(t *testing.T) {
	now := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := func() time.Time { return now }
	for _, tc := range []struct {
		reference string
		want      time.Time
	}{
		{"", now},
		{"2017-09-26", time.Date(2017, 9, 26, 0, 0, 0, 0, time.UTC)},
		{"2017-09-26T10:15", time.Date(2017, 9, 26, 10, 15, 0, 0, time.UTC)},
		{"2017-09-26T10:15:30-07:00", time.Date(2017, 9, 26, 10, 15, 30, 0, time.FixedZone("", -7*3600))},
	} {
		got, err := Config{Reference: tc.reference}.ReferenceTime(clock)
		if err != nil {
			t.Errorf("%q: %v", tc.reference, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q: got %v, want %v", tc.reference, got, tc.want)
		}
	}
	for _, ref := range []string{"XXXX-WXX-6", "2017-09", "yesterday"} {
		if _, err := (Config{Reference: ref}).ReferenceTime(clock); err == nil {
			t.Errorf("%q: expected an error", ref)
		}
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmdSet := newCommandSet(out)
	err := cmdSet.DispatchWithArgs(context.Background(), "timex", args...)
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "--output=yaml", "XXXX-WXX-6", "T16:00:00")
	if err != nil {
		t.Fatal(err)
	}
	var got []Parsed
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	want := []Parsed{
		{Timex: "XXXX-WXX-6", Canonical: "XXXX-WXX-6", Types: []string{"date"}},
		{Timex: "T16:00:00", Canonical: "T16", Types: []string{"time"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parse mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, "parse", "XXXX-WXX-6", "bogus")
	if err == nil || !errors.Is(err, timex.ErrMalformed) {
		t.Errorf("expected ErrMalformed: %v", err)
	}
	for _, want := range []string{"timex", "canonical", "types", "XXXX-WXX-6"} {
		if !strings.Contains(out, want) {
			t.Errorf("%q not found in %v", want, out)
		}
	}
}

func TestResolveCommand(t *testing.T) {
	cfg := writeConfig(t, "reference: 2017-09-26\noutput: yaml\n")
	out, err := run(t, "resolve", "--config="+cfg, "XXXX-WXX-6", "TEV", "SU")
	if err != nil {
		t.Fatal(err)
	}
	var got []resolver.Resolution
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	want := []resolver.Resolution{
		{Timex: "XXXX-WXX-6", Type: resolver.Date, Value: "2017-09-23"},
		{Timex: "XXXX-WXX-6", Type: resolver.Date, Value: "2017-09-30"},
		{Timex: "TEV", Type: resolver.TimeRange, Start: "16:00:00", End: "20:00:00"},
		{Timex: "SU", Type: resolver.DateRange, Value: resolver.NotResolved},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, "resolve", "--reference=2017-09-26", "--color", "XXXX-WXX-6")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2017-09-23") || !strings.Contains(out, "\x1b[") {
		t.Errorf("missing colorized resolution in %v", out)
	}

	if _, err := run(t, "resolve", "--reference=sometime", "XXXX-WXX-6"); err == nil {
		t.Errorf("expected an error for an invalid reference")
	}
}

func TestEvaluateCommand(t *testing.T) {
	out, err := run(t, "evaluate", "--output=yaml", "--constraints=2017-09 TEV", "XXXX-WXX-6")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"(2017-09-02T16,2017-09-02T20,PT4H)",
		"(2017-09-09T16,2017-09-09T20,PT4H)",
		"(2017-09-16T16,2017-09-16T20,PT4H)",
		"(2017-09-23T16,2017-09-23T20,PT4H)",
		"(2017-09-30T16,2017-09-30T20,PT4H)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("evaluate mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, "evaluate", "--constraints=2017-12-05T19:30:00", "PT5M")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2017-12-05T19:35") {
		t.Errorf("missing result in %v", out)
	}

	if _, err := run(t, "evaluate", "--constraints=2017-13", "PT5M"); !errors.Is(err, timex.ErrMalformed) {
		t.Errorf("expected ErrMalformed: %v", err)
	}
}

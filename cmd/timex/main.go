// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command timex parses, resolves and evaluates TIMEX expressions.
package main

import (
	"context"
	"io"
	"os"

	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: timex
summary: parse, resolve and evaluate TIMEX expressions
commands:
  - name: parse
    summary: display the canonical form and types of expressions
    arguments:
      - <expression>
      - ...
  - name: resolve
    summary: resolve expressions relative to a reference date and time
    arguments:
      - <expression>
      - ...
  - name: evaluate
    summary: display the values of candidate expressions that satisfy a set of constraints
    arguments:
      - <candidate>
      - ...
`

// CommonFlags are accepted by all commands. Flags that are set override
// the corresponding values in the configuration file.
type CommonFlags struct {
	Config    string `subcmd:"config,,'yaml configuration file'"`
	Reference string `subcmd:"reference,,'reference date and time, defaults to the current time'"`
	Output    string `subcmd:"output,,'output format: table or yaml'"`
	Color     bool   `subcmd:"color,false,'colorize table output'"`
}

type parseFlags struct {
	CommonFlags
}

type resolveFlags struct {
	CommonFlags
}

type evaluateFlags struct {
	CommonFlags
	Constraints string `subcmd:"constraints,,'space separated constraint expressions'"`
}

func newCommandSet(out io.Writer) *subcmd.CommandSetYAML {
	cmdSet := subcmd.MustFromYAML(cmdSpec)
	cmds := &commands{out: out}
	cmdSet.Set("parse").MustRunnerAndFlags(cmds.parse,
		subcmd.MustRegisteredFlagSet(&parseFlags{}))
	cmdSet.Set("resolve").MustRunnerAndFlags(cmds.resolve,
		subcmd.MustRegisteredFlagSet(&resolveFlags{}))
	cmdSet.Set("evaluate").MustRunnerAndFlags(cmds.evaluate,
		subcmd.MustRegisteredFlagSet(&evaluateFlags{}))
	return cmdSet
}

func main() {
	subcmd.Dispatch(context.Background(), newCommandSet(os.Stdout))
}

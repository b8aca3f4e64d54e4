// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"rivaas.dev/convert"
	"rivaas.dev/convert/rules"
)

var version = "dev"

// app carries what every subcommand needs.
type app struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	verbose bool
	svc     *convert.Service
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:     "convert",
		Short:   "Convert values between types and formats",
		Long:    `Convert values between Go types and wire formats with the rivaas.dev/convert engine.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every rejected rule to stderr")

	root.AddCommand(newValueCmd(a), newDecodeCmd(a), newRulesCmd(a), newCanCmd(a))

	return root
}

// init builds the service with the default and provider rules.
func (a *app) init() error {
	level := log.WarnLevel
	if a.verbose {
		level = log.DebugLevel
	}
	logger := slog.New(log.NewWithOptions(a.errOut, log.Options{
		Level:           level,
		Prefix:          "convert",
		ReportTimestamp: false,
	}))

	svc, err := convert.New(convert.WithDefaultRules(), convert.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating conversion service: %w", err)
	}
	if err = rules.Register(svc); err != nil {
		return err
	}
	a.svc = svc

	return nil
}

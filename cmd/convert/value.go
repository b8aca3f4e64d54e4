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
	"reflect"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rivaas.dev/convert"
)

func newValueCmd(a *app) *cobra.Command {
	var (
		to     string
		format string
		def    string
	)

	cmd := &cobra.Command{
		Use:   "value <input>",
		Short: "Convert a single value",
		Long: `Convert a single command line value to the type named by --to.

Examples:
  # Scalars
  convert value 8080 --to int
  convert value yes --to bool
  convert value 1h30m --to duration

  # Collections from comma separated or encoded input
  convert value "1, 2, 3" --to []int
  convert value '{"a": 1}' --to map
  convert value 'a: 1' --to map --format yaml

  # Fall back to a default when the input does not convert
  convert value abc --to int --default 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := lookupType(to)
			if err != nil {
				return err
			}

			opts := []convert.ContextOption{convert.WithFormat(format)}
			if cmd.Flags().Changed("default") {
				d, err := a.svc.ConvertRequired(def, target)
				if err != nil {
					return fmt.Errorf("invalid --default: %w", err)
				}
				opts = append(opts, convert.WithDefault(d))
			}

			out, err := a.svc.ConvertRequiredContext(args[0], convert.NewContext(target, opts...))
			if err != nil {
				return err
			}

			return a.print(out)
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "target type (e.g. int, bool, duration, []int, map)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "format of encoded input (json, yaml, toml, env)")
	cmd.Flags().StringVarP(&def, "default", "d", "", "value used when the input does not convert")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// print writes containers as YAML and everything else as its string form.
func (a *app) print(v any) error {
	if v == nil {
		_, err := fmt.Fprintln(a.out, "null")
		return err
	}

	rt := reflect.TypeOf(v)
	if k := rt.Kind(); k == reflect.Map || k == reflect.Slice && rt.Elem().Kind() != reflect.Uint8 {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("rendering output: %w", err)
		}
		_, err = a.out.Write(data)

		return err
	}

	s, err := convert.RequiredWith[string](a.svc, v)
	if err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, s)

	return err
}

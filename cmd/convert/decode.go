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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rivaas.dev/convert"
	"rivaas.dev/convert/codec"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a document from stdin and re-encode it",
		Long: `Decode a JSON, YAML, TOML, MessagePack or env document read from stdin
into a generic map and write it back out in another format.

Examples:
  cat config.toml | convert decode --format toml
  cat config.yaml | convert decode --format yaml --output json
  env | convert decode --format env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := codec.ParseType(format)
			if _, err := codec.GetDecoder(in); err != nil {
				return err
			}
			data, err := io.ReadAll(a.in)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			doc, err := convert.RequiredWith[map[string]any](a.svc, data, convert.WithFormat(string(in)))
			if err != nil {
				return err
			}

			if output == "" || output == "yaml" {
				out, err := yaml.Marshal(doc)
				if err != nil {
					return fmt.Errorf("rendering output: %w", err)
				}
				_, err = a.out.Write(out)

				return err
			}

			out := codec.ParseType(output)
			if _, err = codec.GetEncoder(out); err != nil {
				return err
			}
			encoded, err := convert.RequiredWith[[]byte](a.svc, doc, convert.WithFormat(string(out)))
			if err != nil {
				return err
			}
			_, err = a.out.Write(encoded)

			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "input format")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format")

	return cmd
}

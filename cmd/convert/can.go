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

	"github.com/spf13/cobra"
)

func newCanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "can <source> <target>",
		Short: "Report whether a conversion path exists",
		Long: `Report whether any registered rule converts the source type to the target type.

Examples:
  convert can string duration
  convert can map []int`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := lookupType(args[0])
			if err != nil {
				return err
			}
			target, err := lookupType(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, a.svc.CanConvert(source, target))

			return err
		},
	}
}

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
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type ruleView struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Priority int    `yaml:"priority,omitempty"`
}

func newRulesCmd(a *app) *cobra.Command {
	var (
		match  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered conversion rules",
		Long: `List every rule known to the engine in registration order.

Examples:
  convert rules
  convert rules --match uuid
  convert rules --output table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []ruleView
			for _, r := range a.svc.Registry().Rules() {
				if match != "" && !strings.Contains(r.Name, match) {
					continue
				}
				views = append(views, ruleView{
					Name:     r.Name,
					Source:   r.Source.String(),
					Target:   r.Target.String(),
					Priority: r.Priority,
				})
			}
			if len(views) == 0 {
				return fmt.Errorf("no rules match %q", match)
			}

			if output == "table" {
				return a.printRuleTable(views)
			}
			if output != "yaml" {
				return fmt.Errorf("unknown output %q (yaml, table)", output)
			}

			enc := yaml.NewEncoder(a.out)
			enc.SetIndent(2)
			defer enc.Close()

			return enc.Encode(views)
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "only list rules whose name contains this text")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output style (yaml, table)")

	return cmd
}

func (a *app) printRuleTable(views []ruleView) error {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Name, v.Source, v.Target, strconv.Itoa(v.Priority)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 3 {
				return style.Align(lipgloss.Right)
			}
			return style.Align(lipgloss.Left)
		}).
		Headers("Name", "Source", "Target", "Priority").
		Rows(rows...)

	_, err := fmt.Fprintln(a.out, t.Render())

	return err
}

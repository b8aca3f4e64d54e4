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

package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Priorities used by the default rules.
const (
	// PriorityDefault is the priority of ordinary rules.
	PriorityDefault = 0

	// PriorityFallback is used by structural rules (pointer, collection)
	// that should only run when nothing more specific applies.
	PriorityFallback = -100
)

// DefaultTimeLayouts are the layouts tried by the default string to
// time.Time rule, in order.
var DefaultTimeLayouts = []string{
	time.RFC3339,          // 2024-01-15T10:30:00Z (ISO 8601)
	time.RFC3339Nano,      // with nanoseconds
	time.DateOnly,         // 2024-01-15
	time.DateTime,         // 2024-01-15 10:30:00
	time.RFC1123,          // Mon, 02 Jan 2006 15:04:05 MST
	time.RFC1123Z,         // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC822,           // 02 Jan 06 15:04 MST
	time.RFC822Z,          // 02 Jan 06 15:04 -0700
	time.RFC850,           // Monday, 02-Jan-06 15:04:05 MST
	"2006-01-02T15:04:05", // DateTime without timezone
}

// Option configures a [Service].
type Option func(*config)

// config holds Service configuration.
type config struct {
	registry    *Registry
	rules       []Rule
	defaults    bool
	logger      *slog.Logger
	timeLayouts []string
}

func defaultConfig() *config {
	return &config{
		logger: slog.New(slog.DiscardHandler),
	}
}

func (c *config) validate() error {
	if c.logger == nil {
		return errors.New("convert: logger cannot be nil")
	}
	for i, layout := range c.timeLayouts {
		if layout == "" {
			return fmt.Errorf("convert: time layout %d is empty", i)
		}
	}
	for _, rule := range c.rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}

	return nil
}

// WithRegistry makes the service use an existing registry instead of a
// private one. Several services may share a registry.
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithRules registers rules when the service is created.
//
// Example:
//
//	svc := convert.MustNew(
//	    convert.WithRules(convert.NewRule(func(s string, _ *convert.Context) (uuid.UUID, error) {
//	        return uuid.Parse(s)
//	    })),
//	)
func WithRules(rules ...Rule) Option {
	return func(c *config) {
		c.rules = append(c.rules, rules...)
	}
}

// WithDefaultRules registers [DefaultRules] when the service is created.
// Rules passed through [WithRules] are registered afterwards and therefore
// take precedence for the pairs they cover.
func WithDefaultRules() Option {
	return func(c *config) {
		c.defaults = true
	}
}

// WithTimeLayouts adds layouts tried by the default time rule after
// [DefaultTimeLayouts]. Layouts use Go's reference time.
func WithTimeLayouts(layouts ...string) Option {
	return func(c *config) {
		c.timeLayouts = append(c.timeLayouts, layouts...)
	}
}

// WithLogger sets the structured logger. Rejected candidates are logged at
// debug level and recovered rule panics at warn level.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func (c *config) allTimeLayouts() []string {
	return slices.Concat(DefaultTimeLayouts, c.timeLayouts)
}

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
	"maps"
	"reflect"
	"slices"
)

// Context carries the metadata of one conversion call: the target
// descriptor, optional format and locale hints, an optional default value,
// and the rule rejections recorded while candidates were tried.
//
// A Context belongs to exactly one call path and is not safe for concurrent
// use. Reusing a Context across calls leaks errors from one call into the
// next; call [Context.Reset] first.
type Context struct {
	target     Type
	format     string
	locale     string
	hints      map[string]any
	def        any
	hasDefault bool
	errs       []*ConversionError
	svc        *Service
}

// ContextOption configures a [Context].
type ContextOption func(*Context)

// WithFormat sets the format hint, for example "json" or "yaml".
// Codec-backed rules use it to choose a wire format.
func WithFormat(format string) ContextOption {
	return func(c *Context) { c.format = format }
}

// WithLocale sets an opaque locale hint such as "en-US".
func WithLocale(locale string) ContextOption {
	return func(c *Context) { c.locale = locale }
}

// WithHint attaches a rule-specific hint.
func WithHint(key string, value any) ContextOption {
	return func(c *Context) {
		if c.hints == nil {
			c.hints = make(map[string]any)
		}
		c.hints[key] = value
	}
}

// WithDefault sets the value returned in place of an empty result.
// It is ignored unless it is assignable to the target type.
func WithDefault(value any) ContextOption {
	return func(c *Context) {
		c.def = value
		c.hasDefault = true
	}
}

// NewContext creates a context for converting to target.
func NewContext(target Type, opts ...ContextOption) *Context {
	c := &Context{target: target}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Target returns the target descriptor.
func (c *Context) Target() Type {
	return c.target
}

// TypeParams returns the parameter descriptors of the target.
func (c *Context) TypeParams() []Type {
	return c.target.Params()
}

// Format returns the format hint, or "" when none was set.
func (c *Context) Format() string {
	return c.format
}

// Locale returns the locale hint, or "" when none was set.
func (c *Context) Locale() string {
	return c.locale
}

// Hint returns the hint stored under key.
func (c *Context) Hint(key string) (any, bool) {
	v, ok := c.hints[key]
	return v, ok
}

// Default returns the default value, if one was set.
func (c *Context) Default() (any, bool) {
	return c.def, c.hasDefault
}

// Reject appends a rule rejection. Entries keep attempt order.
func (c *Context) Reject(err *ConversionError) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err)
}

// Errors returns the recorded rejections in attempt order.
func (c *Context) Errors() []*ConversionError {
	return slices.Clone(c.errs)
}

// LastError returns the most recently recorded rejection.
func (c *Context) LastError() (*ConversionError, bool) {
	if len(c.errs) == 0 {
		return nil, false
	}

	return c.errs[len(c.errs)-1], true
}

// HasErrors reports whether any rejection was recorded.
func (c *Context) HasErrors() bool {
	return len(c.errs) > 0
}

// Reset clears the recorded rejections so the context can serve another call.
func (c *Context) Reset() {
	c.errs = nil
}

// With derives a context for a nested conversion to target. The child keeps
// the hints and the owning service but starts with no errors and no default.
// Options are applied to the child only.
func (c *Context) With(target Type, opts ...ContextOption) *Context {
	child := &Context{
		target: target,
		format: c.format,
		locale: c.locale,
		hints:  maps.Clone(c.hints),
		svc:    c.svc,
	}
	for _, opt := range opts {
		opt(child)
	}

	return child
}

// Convert converts value to target through the service running the current
// call. Rules use it for element, field and pointee conversions. On failure
// it returns the nested call's most specific error.
func (c *Context) Convert(value any, target Type, opts ...ContextOption) (any, error) {
	svc := c.svc
	if svc == nil {
		svc = Shared()
	}

	return svc.ConvertRequiredContext(value, c.With(target, opts...))
}

// defaultFor returns the default value if it fits the target.
func (c *Context) defaultFor() (any, bool) {
	if !c.hasDefault || c.def == nil {
		return nil, false
	}
	rt := c.target.Reflect()
	if rt == nil || !reflect.TypeOf(c.def).AssignableTo(rt) {
		return nil, false
	}

	return c.def, true
}

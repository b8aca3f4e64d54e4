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
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Func converts value to the target described by cctx. It returns either a
// value assignable to the target or an error; the engine treats a
// wrong-typed result as a rejection.
type Func func(value any, cctx *Context) (any, error)

// Guard narrows a rule to the (source, target) pairs it can handle.
// It must be pure: it runs during lookup and existence checks.
type Guard func(source reflect.Type, target Type) bool

// SourcePredicate matches the runtime type of the value being converted.
// Only exact predicates are indexed; the others are scanned on every lookup.
type SourcePredicate struct {
	exact reflect.Type
	match func(reflect.Type) bool
	desc  string
}

// ExactSource matches values whose runtime type is exactly rt.
func ExactSource(rt reflect.Type) SourcePredicate {
	return SourcePredicate{
		exact: rt,
		match: func(t reflect.Type) bool { return t == rt },
		desc:  typeName(rt),
	}
}

// AssignableSource matches values whose runtime type is assignable to rt.
// With an interface, it matches every implementation.
func AssignableSource(rt reflect.Type) SourcePredicate {
	return SourcePredicate{
		match: func(t reflect.Type) bool { return t.AssignableTo(rt) },
		desc:  "assignable to " + typeName(rt),
	}
}

// KindSource matches values of any of the given kinds.
func KindSource(kinds ...reflect.Kind) SourcePredicate {
	kinds = slices.Clone(kinds)
	return SourcePredicate{
		match: func(t reflect.Type) bool { return slices.Contains(kinds, t.Kind()) },
		desc:  "kind " + joinKinds(kinds),
	}
}

// AnySource matches every value.
func AnySource() SourcePredicate {
	return SourcePredicate{
		match: func(reflect.Type) bool { return true },
		desc:  "any",
	}
}

// SourceFunc matches values for which fn returns true.
func SourceFunc(desc string, fn func(reflect.Type) bool) SourcePredicate {
	return SourcePredicate{match: fn, desc: desc}
}

// Matches reports whether rt satisfies the predicate.
func (p SourcePredicate) Matches(rt reflect.Type) bool {
	return p.match != nil && rt != nil && p.match(rt)
}

// Exact returns the indexed runtime type, if the predicate is exact.
func (p SourcePredicate) Exact() (reflect.Type, bool) {
	return p.exact, p.exact != nil
}

// String describes the predicate.
func (p SourcePredicate) String() string {
	return p.desc
}

// TargetPredicate matches the requested target descriptor.
type TargetPredicate struct {
	match func(Type) bool
	desc  string
}

// ExactTarget matches targets equal to t, parameters included.
func ExactTarget(t Type) TargetPredicate {
	return TargetPredicate{
		match: func(target Type) bool { return target == t },
		desc:  t.String(),
	}
}

// RawTarget matches targets sharing t's raw identity, ignoring parameters.
func RawTarget(t Type) TargetPredicate {
	return TargetPredicate{
		match: func(target Type) bool { return target.SameRaw(t) },
		desc:  "raw " + t.RawName(),
	}
}

// AssignableTarget matches targets that t is assignable from, so a rule
// producing t can serve them.
func AssignableTarget(t Type) TargetPredicate {
	return TargetPredicate{
		match: func(target Type) bool { return target.IsAssignableFrom(t) },
		desc:  "assignable from " + t.String(),
	}
}

// KindTarget matches targets of any of the given kinds.
func KindTarget(kinds ...reflect.Kind) TargetPredicate {
	kinds = slices.Clone(kinds)
	return TargetPredicate{
		match: func(target Type) bool { return slices.Contains(kinds, target.Kind()) },
		desc:  "kind " + joinKinds(kinds),
	}
}

// AnyTarget matches every target.
func AnyTarget() TargetPredicate {
	return TargetPredicate{
		match: func(Type) bool { return true },
		desc:  "any",
	}
}

// TargetFunc matches targets for which fn returns true.
func TargetFunc(desc string, fn func(Type) bool) TargetPredicate {
	return TargetPredicate{match: fn, desc: desc}
}

// Matches reports whether target satisfies the predicate.
func (p TargetPredicate) Matches(target Type) bool {
	return p.match != nil && !target.IsZero() && p.match(target)
}

// String describes the predicate.
func (p TargetPredicate) String() string {
	return p.desc
}

// Rule is one registered conversion: a source predicate, a target
// predicate, an optional guard, a priority and the conversion function.
// Higher priorities are tried first. Rules are never mutated after
// registration.
type Rule struct {
	Name     string
	Source   SourcePredicate
	Target   TargetPredicate
	Guard    Guard
	Priority int
	Convert  Func
}

// RuleOption configures a rule built by [NewRule].
type RuleOption func(*Rule)

// Named sets the rule name used in diagnostics.
func Named(name string) RuleOption {
	return func(r *Rule) { r.Name = name }
}

// WithPriority sets the rule priority.
func WithPriority(priority int) RuleOption {
	return func(r *Rule) { r.Priority = priority }
}

// WithGuard sets the rule guard.
func WithGuard(g Guard) RuleOption {
	return func(r *Rule) { r.Guard = g }
}

// NewRule builds a rule converting values of exactly S into exactly T.
// When S is an interface the rule matches every implementation.
//
// Example:
//
//	rule := convert.NewRule(func(s string, _ *convert.Context) (uuid.UUID, error) {
//	    return uuid.Parse(s)
//	})
func NewRule[S, T any](fn func(S, *Context) (T, error), opts ...RuleOption) Rule {
	source := reflect.TypeFor[S]()
	target := TypeOf[T]()
	sp := ExactSource(source)
	if source.Kind() == reflect.Interface {
		sp = AssignableSource(source)
	}
	r := Rule{
		Name:   typeName(source) + "->" + target.String(),
		Source: sp,
		Target: ExactTarget(target),
		Convert: func(value any, cctx *Context) (any, error) {
			s, ok := value.(S)
			if !ok {
				return nil, fmt.Errorf("%w: expected %s, got %T", ErrWrongType, source, value)
			}
			return fn(s, cctx)
		},
	}
	for _, opt := range opts {
		opt(&r)
	}

	return r
}

// Validate reports whether the rule can be registered.
func (r Rule) Validate() error {
	if r.Convert == nil {
		return fmt.Errorf("%w %q: nil conversion function", ErrInvalidRule, r.Name)
	}
	if r.Source.match == nil {
		return fmt.Errorf("%w %q: missing source predicate", ErrInvalidRule, r.Name)
	}
	if r.Target.match == nil {
		return fmt.Errorf("%w %q: missing target predicate", ErrInvalidRule, r.Name)
	}

	return nil
}

// Matches reports whether the rule applies to (source, target) without
// running the conversion function.
func (r *Rule) Matches(source reflect.Type, target Type) bool {
	if !r.Source.Matches(source) || !r.Target.Matches(target) {
		return false
	}

	return r.Guard == nil || r.Guard(source, target)
}

// String describes the rule.
func (r *Rule) String() string {
	name := r.Name
	if name == "" {
		name = "unnamed"
	}

	return fmt.Sprintf("%s [%s -> %s, priority %d]", name, r.Source, r.Target, r.Priority)
}

func joinKinds(kinds []reflect.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}

	return strings.Join(parts, "|")
}

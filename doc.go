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

// Package convert provides a runtime type-conversion engine.
//
// Given a value of unknown static type, the engine produces an equivalent
// value of a requested target type using a registry of pluggable converter
// rules instead of hand-written casts at every call site. Configuration
// binding and request-argument binding use it to turn loosely typed input
// (strings, maps, numbers) into strongly typed values.
//
// # Quick Start
//
// The package provides both generic and descriptor-based APIs:
//
//	// Generic, shared service
//	port, ok := convert.As[int]("8080")
//	ids, err := convert.Required[[]int64]("1,2,3")
//
//	// Descriptor-based, explicit service
//	svc := convert.MustNew(convert.WithDefaultRules())
//	v, ok := svc.Convert("42", convert.TypeOf[int](), nil)
//
// # Type Descriptors
//
// A [Type] describes a possibly parameterized type: a raw identity plus
// ordered parameter descriptors. Types are interned and comparable with ==.
//
//	convert.TypeOf[[]int]()           // slice<int>
//	convert.TypeOf[map[string]bool]() // map<string, bool>
//
// # Rules
//
// A [Rule] pairs a source predicate and a target predicate with a priority
// and a conversion function. Rules with an exact source type are indexed;
// broader rules are scanned after the index:
//
//	svc.Register(convert.NewRule(func(s string, _ *convert.Context) (uuid.UUID, error) {
//	    return uuid.Parse(s)
//	}))
//
// Registering a second rule for a covered pair overrides the first one: the
// newer rule is tried first and the older one only runs if it fails.
//
// # Best Effort and Required Conversion
//
// [Service.Convert] returns an empty result when no rule produced a value and
// records every rejection in the [Context]. [Service.ConvertRequired] turns
// an empty result into a [*RequiredError] that wraps the most specific
// recorded rejection:
//
//	_, err := svc.ConvertRequired("abc", convert.TypeOf[int]())
//	// cannot convert type [string] to target type int: invalid integer: ...
//
// Converting nil never runs a rule; it yields the context default, if any,
// or an empty result.
//
// # Concurrency
//
// [Service] and [Registry] are safe for concurrent use. Lookups read an
// immutable snapshot without locking; registration publishes a new
// snapshot atomically, so readers see a rule either fully registered or not
// at all. A [Context] belongs to a single call and must not be shared.
package convert

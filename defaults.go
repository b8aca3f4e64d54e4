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
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

var (
	intKinds    = []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64}
	uintKinds   = []reflect.Kind{reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64}
	floatKinds  = []reflect.Kind{reflect.Float32, reflect.Float64}
	scalarKinds = concatKinds([]reflect.Kind{reflect.Bool, reflect.String}, intKinds, uintKinds, floatKinds)
)

// DefaultRules returns the built-in rules: identity, scalar conversions,
// time and duration handling, pointer and collection traversal.
// String to time.Time tries layouts in order; with no layouts given,
// [DefaultTimeLayouts] is used.
//
// The rules are ordinary data; [WithDefaultRules] registers them and
// [Shared] starts with them.
func DefaultRules(timeLayouts ...string) []Rule {
	if len(timeLayouts) == 0 {
		timeLayouts = DefaultTimeLayouts
	}

	return []Rule{
		{
			Name:   "identity",
			Source: AnySource(),
			Target: AnyTarget(),
			Guard: func(source reflect.Type, target Type) bool {
				return source.AssignableTo(target.Reflect())
			},
			Convert: func(value any, _ *Context) (any, error) { return value, nil },
		},
		{
			Name:    "scalar-to-string",
			Source:  KindSource(scalarKinds...),
			Target:  KindTarget(reflect.String),
			Convert: toStringKind,
		},
		{
			Name:    "scalar-to-bool",
			Source:  KindSource(scalarKinds...),
			Target:  KindTarget(reflect.Bool),
			Convert: toBoolKind,
		},
		{
			Name:   "scalar-to-int",
			Source: KindSource(scalarKinds...),
			Target: KindTarget(intKinds...),
			Guard: func(_ reflect.Type, target Type) bool {
				return target.Reflect() != durationType
			},
			Convert: toIntKind,
		},
		{
			Name:    "scalar-to-uint",
			Source:  KindSource(scalarKinds...),
			Target:  KindTarget(uintKinds...),
			Convert: toUintKind,
		},
		{
			Name:    "scalar-to-float",
			Source:  KindSource(scalarKinds...),
			Target:  KindTarget(floatKinds...),
			Convert: toFloatKind,
		},
		{
			Name:   "scalar-to-duration",
			Source: KindSource(concatKinds([]reflect.Kind{reflect.String}, intKinds, uintKinds, floatKinds)...),
			Target: ExactTarget(TypeFor(durationType)),
			Convert: func(value any, _ *Context) (any, error) {
				d, err := cast.ToDurationE(basic(reflect.ValueOf(value)))
				if err != nil {
					return nil, fmt.Errorf("invalid duration: %w", err)
				}
				return d, nil
			},
		},
		NewRule(func(d time.Duration, _ *Context) (string, error) {
			return d.String(), nil
		}, Named("duration-to-string")),
		NewRule(func(s string, _ *Context) (time.Time, error) {
			return parseTime(s, timeLayouts)
		}, Named("string-to-time")),
		{
			Name:   "unix-to-time",
			Source: KindSource(concatKinds(intKinds, uintKinds)...),
			Target: ExactTarget(TypeFor(timeType)),
			Convert: func(value any, _ *Context) (any, error) {
				t, err := cast.ToTimeE(basic(reflect.ValueOf(value)))
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrUnableToParseTime, err)
				}
				return t, nil
			},
		},
		NewRule(func(t time.Time, _ *Context) (string, error) {
			return t.Format(time.RFC3339Nano), nil
		}, Named("time-to-string")),
		NewRule(func(s string, _ *Context) ([]byte, error) {
			return []byte(s), nil
		}, Named("string-to-bytes")),
		NewRule(func(b []byte, _ *Context) (string, error) {
			return string(b), nil
		}, Named("bytes-to-string")),
		{
			Name:     "dereference",
			Source:   KindSource(reflect.Pointer),
			Target:   AnyTarget(),
			Guard:    notAssignable,
			Priority: PriorityFallback,
			Convert:  dereference,
		},
		{
			Name:     "address-of",
			Source:   AnySource(),
			Target:   KindTarget(reflect.Pointer),
			Guard:    notAssignable,
			Priority: PriorityFallback,
			Convert:  addressOf,
		},
		{
			Name:     "elements",
			Source:   KindSource(reflect.Slice, reflect.Array, reflect.String),
			Target:   KindTarget(reflect.Slice, reflect.Array),
			Guard:    elementsGuard,
			Priority: PriorityFallback,
			Convert:  toElements,
		},
		{
			Name:     "entries",
			Source:   KindSource(reflect.Map),
			Target:   KindTarget(reflect.Map),
			Guard:    notAssignable,
			Priority: PriorityFallback,
			Convert:  toEntries,
		},
	}
}

// basic unwraps named scalar types to their builtin counterpart so that
// cast's type switches apply.
func basic(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return rv.Interface()
	}
}

func toStringKind(value any, cctx *Context) (any, error) {
	rv := reflect.ValueOf(value)
	var s string
	switch rv.Kind() {
	case reflect.Float32:
		s = strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		s = strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	default:
		var err error
		if s, err = cast.ToStringE(basic(rv)); err != nil {
			return nil, err
		}
	}

	out := reflect.New(cctx.Target().Reflect()).Elem()
	out.SetString(s)

	return out.Interface(), nil
}

func toBoolKind(value any, cctx *Context) (any, error) {
	rv := reflect.ValueOf(value)
	var b bool
	if rv.Kind() == reflect.String {
		var err error
		if b, err = parseBoolGenerous(rv.String()); err != nil {
			return nil, err
		}
	} else {
		var err error
		if b, err = cast.ToBoolE(basic(rv)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBooleanValue, err)
		}
	}

	out := reflect.New(cctx.Target().Reflect()).Elem()
	out.SetBool(b)

	return out.Interface(), nil
}

func toIntKind(value any, cctx *Context) (any, error) {
	rv := reflect.ValueOf(value)
	out := reflect.New(cctx.Target().Reflect()).Elem()

	var i int64
	switch rv.Kind() {
	case reflect.String:
		var err error
		i, err = strconv.ParseInt(strings.TrimSpace(rv.String()), 10, out.Type().Bits())
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("invalid integer: %v has a fractional part", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("invalid integer: %v overflows %s", f, out.Type())
		}
		i = int64(f)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("invalid integer: %d overflows %s", u, out.Type())
		}
		i = int64(u)
	default:
		var err error
		if i, err = cast.ToInt64E(basic(rv)); err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
	}

	if out.OverflowInt(i) {
		return nil, fmt.Errorf("invalid integer: %d overflows %s", i, out.Type())
	}
	out.SetInt(i)

	return out.Interface(), nil
}

func toUintKind(value any, cctx *Context) (any, error) {
	rv := reflect.ValueOf(value)
	out := reflect.New(cctx.Target().Reflect()).Elem()

	var u uint64
	switch rv.Kind() {
	case reflect.String:
		var err error
		u, err = strconv.ParseUint(strings.TrimSpace(rv.String()), 10, out.Type().Bits())
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned integer: %w", err)
		}
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return nil, fmt.Errorf("invalid unsigned integer: %v", f)
		}
		u = uint64(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return nil, fmt.Errorf("invalid unsigned integer: %d is negative", i)
		}
		u = uint64(i)
	default:
		var err error
		if u, err = cast.ToUint64E(basic(rv)); err != nil {
			return nil, fmt.Errorf("invalid unsigned integer: %w", err)
		}
	}

	if out.OverflowUint(u) {
		return nil, fmt.Errorf("invalid unsigned integer: %d overflows %s", u, out.Type())
	}
	out.SetUint(u)

	return out.Interface(), nil
}

func toFloatKind(value any, cctx *Context) (any, error) {
	rv := reflect.ValueOf(value)
	out := reflect.New(cctx.Target().Reflect()).Elem()

	var f float64
	if rv.Kind() == reflect.String {
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(rv.String()), out.Type().Bits()); err != nil {
			return nil, fmt.Errorf("invalid float: %w", err)
		}
	} else {
		var err error
		if f, err = cast.ToFloat64E(basic(rv)); err != nil {
			return nil, fmt.Errorf("invalid float: %w", err)
		}
	}

	if out.OverflowFloat(f) {
		return nil, fmt.Errorf("invalid float: %v overflows %s", f, out.Type())
	}
	out.SetFloat(f)

	return out.Interface(), nil
}

// parseBoolGenerous parses various boolean string representations.
// It supports: true/false, 1/0, yes/no, on/off, t/f, y/n (case-insensitive).
func parseBoolGenerous(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBooleanValue, s)
	}
}

// parseTime tries each layout in order. Returns an error if no layout matches.
func parseTime(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyTimeValue
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w %q (tried RFC3339, date-only, and other common formats)", ErrUnableToParseTime, value)
}

func notAssignable(source reflect.Type, target Type) bool {
	return !source.AssignableTo(target.Reflect())
}

func dereference(value any, cctx *Context) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.IsNil() {
		return nil, fmt.Errorf("%w to %s", ErrNilPointer, rv.Type().Elem())
	}

	return cctx.Convert(rv.Elem().Interface(), cctx.Target())
}

func addressOf(value any, cctx *Context) (any, error) {
	ptrType := cctx.Target().Reflect()
	elem, err := cctx.Convert(value, elemType(cctx.Target()))
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(ptrType.Elem())
	if elem != nil {
		ptr.Elem().Set(reflect.ValueOf(elem))
	}

	return ptr.Interface(), nil
}

func elementsGuard(source reflect.Type, target Type) bool {
	if source.AssignableTo(target.Reflect()) {
		return false
	}
	if source.Kind() != reflect.String {
		return true
	}

	// Strings split on commas into scalar elements; []byte is its own rule.
	elem := target.Reflect().Elem()
	return elem.Kind() != reflect.Uint8 && kindIn(elem.Kind(), scalarKinds)
}

// toElements converts slices, arrays and comma separated strings
// element-wise into the target's element type.
func toElements(value any, cctx *Context) (any, error) {
	target := cctx.Target().Reflect()
	elem := elemType(cctx.Target())

	var items []any
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		s := strings.TrimSpace(rv.String())
		if s != "" {
			for part := range strings.SplitSeq(s, ",") {
				items = append(items, strings.TrimSpace(part))
			}
		}
	} else {
		items = make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = rv.Index(i).Interface()
		}
	}

	var out reflect.Value
	if target.Kind() == reflect.Array {
		if len(items) != target.Len() {
			return nil, fmt.Errorf("array %s needs %d elements, got %d", target, target.Len(), len(items))
		}
		out = reflect.New(target).Elem()
	} else {
		out = reflect.MakeSlice(target, len(items), len(items))
	}

	for i, item := range items {
		converted, err := cctx.Convert(item, elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if converted != nil {
			out.Index(i).Set(reflect.ValueOf(converted))
		}
	}

	return out.Interface(), nil
}

// toEntries converts maps key- and element-wise into the target's key and
// element types.
func toEntries(value any, cctx *Context) (any, error) {
	target := cctx.Target()
	keyT, elemT := keyType(target), elemType(target)

	rv := reflect.ValueOf(value)
	out := reflect.MakeMapWithSize(target.Reflect(), rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := cctx.Convert(iter.Key().Interface(), keyT)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", iter.Key(), err)
		}
		if k == nil {
			return nil, fmt.Errorf("key %v: %w", iter.Key(), ErrNilResult)
		}

		v := reflect.Zero(target.Reflect().Elem())
		if iter.Value().CanInterface() {
			converted, err := cctx.Convert(iter.Value().Interface(), elemT)
			if err != nil {
				return nil, fmt.Errorf("key %v: %w", iter.Key(), err)
			}
			if converted != nil {
				v = reflect.ValueOf(converted)
			}
		}
		out.SetMapIndex(reflect.ValueOf(k), v)
	}

	return out.Interface(), nil
}

// elemType returns the element descriptor of a slice, array, pointer or map
// target, preferring the declared parameter over the reflect element.
func elemType(t Type) Type {
	switch t.NumParams() {
	case 1:
		return t.Param(0)
	case 2:
		return t.Param(1)
	}

	return TypeFor(t.Reflect().Elem())
}

func keyType(t Type) Type {
	if t.NumParams() == 2 {
		return t.Param(0)
	}

	return TypeFor(t.Reflect().Key())
}

func kindIn(k reflect.Kind, kinds []reflect.Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}

	return false
}

func concatKinds(groups ...[]reflect.Kind) []reflect.Kind {
	var out []reflect.Kind
	for _, g := range groups {
		out = append(out, g...)
	}

	return out
}

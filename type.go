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
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// Every Type is interned under its reflect type and parameter identities,
	// so two structurally equal descriptors share one *descriptor.
	descriptors   sync.Map // internKey -> *descriptor
	descriptorSeq atomic.Uint64
)

type internKey struct {
	rt     reflect.Type
	params string
}

type descriptor struct {
	id     uint64
	raw    string
	rt     reflect.Type
	params []Type
}

// Type is an immutable descriptor of a possibly parameterized Go type: a raw
// identity plus an ordered list of parameter descriptors.
//
// Types are interned, so they can be compared with == and used as map keys.
// Two Types are equal iff they describe the same raw type with recursively
// equal parameters, in order. The zero Type describes nothing and matches
// nothing.
//
// Parameters of unnamed composite types are derived from the reflect type:
//
//	convert.TypeOf[[]int]().Params()           // [int]
//	convert.TypeOf[map[string]bool]().Params() // [string bool]
//
// Named generic instantiations do not expose their type arguments through
// reflection; use [Parameterized] to attach them explicitly.
type Type struct {
	d *descriptor
}

// TypeOf returns the descriptor of T.
func TypeOf[T any]() Type {
	return TypeFor(reflect.TypeFor[T]())
}

// TypeFor returns the descriptor of rt. It returns the zero Type for nil.
func TypeFor(rt reflect.Type) Type {
	if rt == nil {
		return Type{}
	}

	return intern(rt, derivedParams(rt))
}

// Parameterized builds a descriptor from a raw reflect type and explicit
// parameter descriptors.
//
// For unnamed composites (slices, arrays, maps, pointers, channels) the
// parameters are implied by the reflect type; explicit parameters must agree
// with them. Named types accept any parameter list, which is how callers
// describe the type arguments of a generic instantiation:
//
//	page, err := convert.Parameterized(
//	    reflect.TypeFor[Page[User]](),
//	    convert.TypeOf[User](),
//	)
func Parameterized(rt reflect.Type, params ...Type) (Type, error) {
	if rt == nil {
		return Type{}, fmt.Errorf("%w: nil reflect type", ErrInvalidType)
	}
	for i, p := range params {
		if p.IsZero() {
			return Type{}, fmt.Errorf("%w: parameter %d of %s is the zero Type", ErrInvalidType, i, rt)
		}
	}

	if isComposite(rt) {
		derived := derivedParams(rt)
		if len(params) > 0 && !slices.Equal(params, derived) {
			return Type{}, fmt.Errorf("%w: %s implies parameters %s, got %s",
				ErrInvalidType, rt, formatParams(derived), formatParams(params))
		}
		return intern(rt, derived), nil
	}

	return intern(rt, params), nil
}

// MustParameterized is like [Parameterized] but panics on error.
func MustParameterized(rt reflect.Type, params ...Type) Type {
	t, err := Parameterized(rt, params...)
	if err != nil {
		panic(fmt.Sprintf("convert.MustParameterized: %v", err))
	}

	return t
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool {
	return t.d == nil
}

// Reflect returns the underlying reflect type, or nil for the zero Type.
func (t Type) Reflect() reflect.Type {
	if t.d == nil {
		return nil
	}

	return t.d.rt
}

// Kind returns the reflect kind of t.
func (t Type) Kind() reflect.Kind {
	if t.d == nil {
		return reflect.Invalid
	}

	return t.d.rt.Kind()
}

// RawName returns the raw identity of t with type parameters stripped.
// Named types report "pkgpath.Name"; unnamed composites report their shape
// ("slice", "map", "ptr", "chan", "array[N]").
func (t Type) RawName() string {
	if t.d == nil {
		return ""
	}

	return t.d.raw
}

// SameRaw reports whether t and other share a raw identity, ignoring parameters.
func (t Type) SameRaw(other Type) bool {
	return t.d != nil && other.d != nil && t.d.raw == other.d.raw
}

// Params returns a copy of the parameter descriptors.
func (t Type) Params() []Type {
	if t.d == nil {
		return nil
	}

	return slices.Clone(t.d.params)
}

// NumParams returns the number of parameter descriptors.
func (t Type) NumParams() int {
	if t.d == nil {
		return 0
	}

	return len(t.d.params)
}

// Param returns the i-th parameter descriptor, or the zero Type when out of range.
func (t Type) Param(i int) Type {
	if t.d == nil || i < 0 || i >= len(t.d.params) {
		return Type{}
	}

	return t.d.params[i]
}

// Equal reports whether t and other describe the same type.
func (t Type) Equal(other Type) bool {
	return t == other
}

// Hash returns a process-stable hash of t. Equal Types have equal hashes.
func (t Type) Hash() uint64 {
	if t.d == nil {
		return 0
	}

	return t.d.id
}

// IsAssignableFrom reports whether a value described by other can stand in
// for t.
//
// Interfaces accept every type implementing them. Otherwise the raw
// identities must match; if t carries parameters, each one must in turn be
// assignable from the corresponding parameter of other. A receiver without
// parameters requires the identical reflect type.
func (t Type) IsAssignableFrom(other Type) bool {
	if t.d == nil || other.d == nil {
		return false
	}
	if t == other {
		return true
	}
	if t.d.rt.Kind() == reflect.Interface {
		return other.d.rt.Implements(t.d.rt)
	}
	if t.d.raw != other.d.raw {
		return false
	}
	if len(t.d.params) == 0 {
		// Page[int] and Page[string] share a raw name; without parameters
		// to compare, the instantiations must match.
		return other.d.rt == t.d.rt
	}
	if len(t.d.params) != len(other.d.params) {
		return false
	}
	for i, p := range t.d.params {
		if !p.IsAssignableFrom(other.d.params[i]) {
			return false
		}
	}

	return true
}

// String returns the Go spelling of t. Explicit parameters of named types
// are appended in angle brackets.
func (t Type) String() string {
	if t.d == nil {
		return "<nil>"
	}
	if isComposite(t.d.rt) || len(t.d.params) == 0 {
		return t.d.rt.String()
	}

	return t.d.rt.String() + formatParams(t.d.params)
}

func intern(rt reflect.Type, params []Type) Type {
	key := internKey{rt: rt, params: paramKey(params)}
	if d, ok := descriptors.Load(key); ok {
		return Type{d: d.(*descriptor)}
	}

	d := &descriptor{
		id:     descriptorSeq.Add(1),
		raw:    rawName(rt),
		rt:     rt,
		params: slices.Clone(params),
	}
	actual, _ := descriptors.LoadOrStore(key, d)

	return Type{d: actual.(*descriptor)}
}

// isComposite reports whether rt is an unnamed type built from other types.
func isComposite(rt reflect.Type) bool {
	if rt.Name() != "" {
		return false
	}
	switch rt.Kind() {
	case reflect.Slice, reflect.Array, reflect.Pointer, reflect.Chan, reflect.Map:
		return true
	default:
		return false
	}
}

func derivedParams(rt reflect.Type) []Type {
	if !isComposite(rt) {
		return nil
	}
	if rt.Kind() == reflect.Map {
		return []Type{TypeFor(rt.Key()), TypeFor(rt.Elem())}
	}

	return []Type{TypeFor(rt.Elem())}
}

func rawName(rt reflect.Type) string {
	if name := rt.Name(); name != "" {
		// Strip type arguments: "Page[pkg.User]" -> "Page".
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if rt.PkgPath() == "" {
			return name
		}
		return rt.PkgPath() + "." + name
	}

	switch rt.Kind() {
	case reflect.Slice:
		return "slice"
	case reflect.Array:
		return "array[" + strconv.Itoa(rt.Len()) + "]"
	case reflect.Pointer:
		return "ptr"
	case reflect.Map:
		return "map"
	case reflect.Chan:
		switch rt.ChanDir() {
		case reflect.RecvDir:
			return "<-chan"
		case reflect.SendDir:
			return "chan<-"
		default:
			return "chan"
		}
	default:
		return rt.String()
	}
}

func paramKey(params []Type) string {
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(p.d.id, 10))
	}

	return b.String()
}

func formatParams(params []Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}

	return "<" + strings.Join(parts, ", ") + ">"
}

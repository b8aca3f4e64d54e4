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
	"cmp"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
)

// entry is a registered rule plus its registration sequence number.
// Polymorphic rules declaring the same predicates share a group: the
// sequence number of the first of them.
type entry struct {
	rule  Rule
	seq   uint64
	group uint64
}

// snapshot is an immutable view of the registry. Readers load it atomically
// and never observe a partially applied registration.
type snapshot struct {
	exact map[reflect.Type][]*entry // priority desc, newest first
	poly  []*entry                  // priority desc, oldest group first, newest first within a group
	all   []*entry                  // registration order

	// exists memoizes CanConvert answers. It lives and dies with the snapshot.
	exists *cache.Cache
}

func newSnapshot(exact map[reflect.Type][]*entry, poly, all []*entry) *snapshot {
	return &snapshot{
		exact:  exact,
		poly:   poly,
		all:    all,
		exists: cache.New(cache.NoExpiration, 0),
	}
}

// Registry is the thread-safe store of converter rules.
//
// Rules with an exact source predicate are indexed by runtime type; all other
// rules live in a polymorphic list scanned after the index. Lookups are
// lock-free: the registry publishes immutable snapshots through an atomic
// pointer and registration copies, modifies and swaps them under a mutex.
type Registry struct {
	// RCU pattern: atomic pointer to immutable snapshot
	snap atomic.Pointer[snapshot]

	// Write-side lock (only for registration)
	mu  sync.Mutex
	seq uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(newSnapshot(map[reflect.Type][]*entry{}, nil, nil))

	return r
}

// Register adds rules to the registry. All rules of one call become visible
// to readers at once. Registration is additive: registering a rule for a
// pair that is already covered makes the new rule take precedence while the
// older rule stays available as a fallback.
//
// If any rule is invalid, nothing is registered.
func (r *Registry) Register(rules ...Rule) error {
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	if len(rules) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snap.Load()

	// Copy-on-write: buckets touched by this call are cloned, the rest shared.
	exact := make(map[reflect.Type][]*entry, len(old.exact)+len(rules))
	maps.Copy(exact, old.exact)
	poly := slices.Clone(old.poly)
	all := slices.Grow(slices.Clone(old.all), len(rules))
	polyChanged := false

	for _, rule := range rules {
		r.seq++
		e := &entry{rule: rule, seq: r.seq}
		all = append(all, e)

		if rt, ok := rule.Source.Exact(); ok {
			bucket := append(slices.Clone(exact[rt]), e)
			slices.SortStableFunc(bucket, compareExact)
			exact[rt] = bucket
			continue
		}
		e.group = polyGroup(poly, e)
		poly = append(poly, e)
		polyChanged = true
	}
	if polyChanged {
		slices.SortStableFunc(poly, comparePoly)
	}

	// Atomic swap (readers instantly see the new snapshot)
	r.snap.Store(newSnapshot(exact, poly, all))

	return nil
}

// MustRegister is like [Registry.Register] but panics on invalid rules.
func (r *Registry) MustRegister(rules ...Rule) {
	if err := r.Register(rules...); err != nil {
		panic("convert: " + err.Error())
	}
}

// Lookup returns the candidate rules for converting a value of runtime type
// source into target, in the order they should be tried:
//
//  1. indexed rules for source whose target predicate matches, highest
//     priority first and, within a priority, most recently registered first;
//  2. polymorphic rules that match, highest priority first and, within a
//     priority, in registration order. Rules declaring the same source and
//     target predicates override each other: the most recent one comes first.
//
// The sequence is lazy and bound to the registry state at the time of the
// call; ranging over it again replays the same candidates. Callers may stop
// early. The yielded rules must not be modified.
func (r *Registry) Lookup(source reflect.Type, target Type) iter.Seq[*Rule] {
	s := r.snap.Load()

	return func(yield func(*Rule) bool) {
		if source == nil || target.IsZero() {
			return
		}
		for _, e := range s.exact[source] {
			if e.rule.Matches(source, target) && !yield(&e.rule) {
				return
			}
		}
		for _, e := range s.poly {
			if e.rule.Matches(source, target) && !yield(&e.rule) {
				return
			}
		}
	}
}

// CanConvert reports whether at least one rule matches (source, target).
// It never runs a conversion function.
func (r *Registry) CanConvert(source reflect.Type, target Type) bool {
	if source == nil || target.IsZero() {
		return false
	}

	s := r.snap.Load()
	key := strconv.FormatUint(TypeFor(source).Hash(), 10) + ">" + strconv.FormatUint(target.Hash(), 10)
	if found, ok := s.exists.Get(key); ok {
		return found.(bool)
	}

	found := false
	for _, e := range s.exact[source] {
		if e.rule.Matches(source, target) {
			found = true
			break
		}
	}
	if !found {
		for _, e := range s.poly {
			if e.rule.Matches(source, target) {
				found = true
				break
			}
		}
	}
	s.exists.SetDefault(key, found)

	return found
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.snap.Load().all)
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	all := r.snap.Load().all
	out := make([]Rule, len(all))
	for i, e := range all {
		out[i] = e.rule
	}

	return out
}

func compareExact(a, b *entry) int {
	if c := cmp.Compare(b.rule.Priority, a.rule.Priority); c != 0 {
		return c
	}

	return cmp.Compare(b.seq, a.seq)
}

func comparePoly(a, b *entry) int {
	if c := cmp.Compare(b.rule.Priority, a.rule.Priority); c != 0 {
		return c
	}
	if c := cmp.Compare(a.group, b.group); c != 0 {
		return c
	}

	return cmp.Compare(b.seq, a.seq)
}

// polyGroup returns the group of the first rule in poly declaring the same
// predicates as e, or e's own sequence number.
func polyGroup(poly []*entry, e *entry) uint64 {
	group := e.seq
	for _, p := range poly {
		if p.group < group && samePredicates(&p.rule, &e.rule) {
			group = p.group
		}
	}

	return group
}

func samePredicates(a, b *Rule) bool {
	return a.Source.String() == b.Source.String() && a.Target.String() == b.Target.String()
}

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
	"maps"
	"slices"
	"strings"
	"time"
)

// TimeRule returns a string to time.Time rule that parses with each layout
// in turn. Without layouts it uses [DefaultTimeLayouts]. Registered after
// the default rules it is tried first, and the default time rule remains the
// fallback.
//
//	svc := convert.MustNew(
//	    convert.WithDefaultRules(),
//	    convert.WithRules(convert.TimeRule("02.01.2006", "2006-01-02 15:04")),
//	)
func TimeRule(layouts ...string) Rule {
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	layouts = slices.Clone(layouts)

	return NewRule(func(s string, _ *Context) (time.Time, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, ErrEmptyTimeValue
		}

		var lastErr error
		for _, layout := range layouts {
			t, err := time.Parse(layout, s)
			if err == nil {
				return t, nil
			}
			lastErr = err
		}

		return time.Time{}, fmt.Errorf("%w %q: none of %d layouts matched: %w",
			ErrUnableToParseTime, s, len(layouts), lastErr)
	}, Named("time-layouts"))
}

// DurationRule returns a string to time.Duration rule that resolves named
// aliases, ignoring case, before parsing Go duration strings.
//
//	convert.DurationRule(map[string]time.Duration{
//	    "short": 10 * time.Second,
//	    "long":  10 * time.Minute,
//	})
func DurationRule(aliases map[string]time.Duration) Rule {
	byName := make(map[string]time.Duration, len(aliases))
	for alias, d := range aliases {
		byName[strings.ToLower(alias)] = d
	}
	names := slices.Sorted(maps.Keys(aliases))

	return NewRule(func(s string, _ *Context) (time.Duration, error) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			return 0, fmt.Errorf("%w: empty value", ErrInvalidDuration)
		}
		if d, ok := byName[key]; ok {
			return d, nil
		}

		d, err := time.ParseDuration(key)
		if err == nil {
			return d, nil
		}
		if len(names) == 0 {
			return 0, fmt.Errorf("%w: %w", ErrInvalidDuration, err)
		}

		return 0, &choiceError{kind: ErrInvalidDuration, value: s, choices: names}
	}, Named("duration-aliases"))
}

// EnumRule returns a string to T rule that accepts only the allowed values.
// Matching ignores case and yields the value as declared.
//
//	type Level string
//
//	const (
//	    LevelLow  Level = "low"
//	    LevelHigh Level = "high"
//	)
//
//	convert.EnumRule(LevelLow, LevelHigh)
func EnumRule[T ~string](allowed ...T) Rule {
	byName := make(map[string]T, len(allowed))
	names := make([]string, len(allowed))
	for i, v := range allowed {
		byName[strings.ToLower(string(v))] = v
		names[i] = string(v)
	}

	return NewRule(func(s string, _ *Context) (T, error) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			return "", fmt.Errorf("%w: empty value", ErrValueNotAllowed)
		}
		if v, ok := byName[key]; ok {
			return v, nil
		}

		return "", &choiceError{kind: ErrValueNotAllowed, value: s, choices: names}
	}, Named("enum"))
}

// BoolRule returns a string to bool rule over custom words, ignoring case.
// The empty string is false.
//
//	convert.BoolRule([]string{"on", "enabled"}, []string{"off", "disabled"})
func BoolRule(truthy, falsy []string) Rule {
	words := make(map[string]bool, len(truthy)+len(falsy))
	for _, w := range falsy {
		words[strings.ToLower(w)] = false
	}
	for _, w := range truthy {
		words[strings.ToLower(w)] = true
	}
	choices := slices.Concat(truthy, falsy)

	return NewRule(func(s string, _ *Context) (bool, error) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			return false, nil
		}
		if b, ok := words[key]; ok {
			return b, nil
		}

		return false, &choiceError{kind: ErrInvalidBooleanValue, value: s, choices: choices}
	}, Named("bool-values"))
}

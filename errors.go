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
	"reflect"
	"strings"
	"time"
)

// Static errors for conversion operations.
var (
	ErrNoConverter         = errors.New("no converter available")
	ErrWrongType           = errors.New("converter returned a value of the wrong type")
	ErrNilResult           = errors.New("converter returned nil without an error")
	ErrRulePanic           = errors.New("converter panicked")
	ErrInvalidRule         = errors.New("invalid converter rule")
	ErrInvalidType         = errors.New("invalid type descriptor")
	ErrInvalidBooleanValue = errors.New("invalid boolean value")
	ErrEmptyTimeValue      = errors.New("empty time value")
	ErrUnableToParseTime   = errors.New("unable to parse time")
	ErrValueNotAllowed     = errors.New("value not in allowed values")
	ErrNilPointer          = errors.New("nil pointer")
	ErrInvalidDuration     = errors.New("invalid duration")
)

// choiceError rejects a value outside a closed set of accepted words.
// The accepted words surface through the conversion hint.
type choiceError struct {
	kind    error
	value   string
	choices []string
}

func (e *choiceError) Error() string {
	return fmt.Sprintf("%v: %q", e.kind, e.value)
}

func (e *choiceError) Unwrap() error {
	return e.kind
}

// ConversionError records one rule that matched a (source, target) pair and
// rejected the value. It is immutable once created.
//
// Use [errors.As] to inspect it:
//
//	var convErr *convert.ConversionError
//	if errors.As(err, &convErr) {
//	    fmt.Printf("rule %s rejected %v\n", convErr.Rule, convErr.Value)
//	}
type ConversionError struct {
	Source reflect.Type // Runtime type of the rejected value
	Target Type         // Requested target
	Rule   string       // Name of the rule that rejected the value
	Value  any          // The rejected value
	Err    error        // Cause reported by the rule
}

// Error returns a formatted error message with contextual hints.
func (e *ConversionError) Error() string {
	base := fmt.Sprintf("converting %s to %s", typeName(e.Source), e.Target)
	if e.Rule != "" {
		base += " (rule " + e.Rule + ")"
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	if hint := e.hint(); hint != "" {
		base += " (hint: " + hint + ")"
	}

	return base
}

// hint suggests a fix for common conversion mistakes.
func (e *ConversionError) hint() string {
	rt := e.Target.Reflect()
	if rt == nil {
		return ""
	}
	var choice *choiceError
	if errors.As(e.Err, &choice) {
		return "accepted values: " + strings.Join(choice.choices, ", ")
	}
	s, isString := e.Value.(string)

	switch {
	case isIntKind(rt.Kind()) && isString && strings.Contains(s, "."):
		return "use a float target for decimal values"
	case rt == reflect.TypeFor[time.Time]():
		return "use RFC3339 format (2006-01-02T15:04:05Z07:00) or register a TimeRule with custom layouts"
	case rt == reflect.TypeFor[time.Duration]():
		return "use Go duration format (e.g. '1h30m', '500ms') or register a DurationRule with aliases"
	case rt.Kind() == reflect.Bool && isString:
		return "accepted values: true/false, yes/no, 1/0, on/off, or register a BoolRule"
	}

	return ""
}

// Unwrap returns the cause reported by the rule.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine-readable error code.
func (e *ConversionError) Code() string {
	return "conversion_error"
}

// RequiredError is returned by the required entry points when no value could
// be produced. Cause holds the most specific (last recorded) rule rejection,
// or nil when no rule matched at all.
type RequiredError struct {
	Source reflect.Type
	Target Type
	Cause  *ConversionError
}

// Error returns a formatted error message.
func (e *RequiredError) Error() string {
	if e.Cause != nil {
		msg := fmt.Sprintf("cannot convert type [%s] to target type %s: %v",
			typeName(e.Source), e.Target, e.Cause.Err)
		if hint := e.Cause.hint(); hint != "" {
			msg += " (hint: " + hint + ")"
		}
		return msg
	}

	return fmt.Sprintf("cannot convert type [%s] to target type %s: %v; consider registering a converter rule for this pair",
		typeName(e.Source), e.Target, ErrNoConverter)
}

// Unwrap returns the recorded rule rejection, or ErrNoConverter.
func (e *RequiredError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}

	return ErrNoConverter
}

// Code returns a stable machine-readable error code.
func (e *RequiredError) Code() string {
	if e.Cause != nil {
		return "conversion_rejected"
	}

	return "no_converter"
}

func typeName(rt reflect.Type) string {
	if rt == nil {
		return "<nil>"
	}

	return rt.String()
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

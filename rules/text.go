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

package rules

import (
	"encoding"
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"rivaas.dev/convert"
)

// ErrInvalidIPAddress is returned when a string is not an IP address.
var ErrInvalidIPAddress = errors.New("invalid IP address")

// TextRules returns rules between strings and textual value types:
// UUIDs, IP addresses and networks, URLs, regular expressions, and any type
// implementing encoding.TextUnmarshaler, encoding.TextMarshaler or
// fmt.Stringer.
func TextRules() []convert.Rule {
	return []convert.Rule{
		convert.NewRule(func(s string, _ *convert.Context) (uuid.UUID, error) {
			id, err := uuid.Parse(strings.TrimSpace(s))
			if err != nil {
				return uuid.Nil, fmt.Errorf("invalid UUID: %w", err)
			}
			return id, nil
		}, convert.Named("string-to-uuid")),
		convert.NewRule(func(id uuid.UUID, _ *convert.Context) (string, error) {
			return id.String(), nil
		}, convert.Named("uuid-to-string")),
		convert.NewRule(func(b []byte, _ *convert.Context) (uuid.UUID, error) {
			return uuid.FromBytes(b)
		}, convert.Named("bytes-to-uuid")),
		convert.NewRule(func(s string, _ *convert.Context) (net.IP, error) {
			ip := net.ParseIP(strings.TrimSpace(s))
			if ip == nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidIPAddress, s)
			}
			return ip, nil
		}, convert.Named("string-to-ip")),
		convert.NewRule(func(s string, _ *convert.Context) (net.IPNet, error) {
			_, ipnet, err := net.ParseCIDR(strings.TrimSpace(s))
			if err != nil {
				return net.IPNet{}, fmt.Errorf("invalid CIDR notation: %w", err)
			}
			return *ipnet, nil
		}, convert.Named("string-to-ipnet")),
		convert.NewRule(func(s string, _ *convert.Context) (url.URL, error) {
			u, err := url.Parse(s)
			if err != nil {
				return url.URL{}, fmt.Errorf("invalid URL: %w", err)
			}
			return *u, nil
		}, convert.Named("string-to-url")),
		convert.NewRule(func(u url.URL, _ *convert.Context) (string, error) {
			return u.String(), nil
		}, convert.Named("url-to-string")),
		convert.NewRule(func(s string, _ *convert.Context) (*regexp.Regexp, error) {
			re, err := regexp.Compile(s)
			if err != nil {
				return nil, fmt.Errorf("invalid regular expression: %w", err)
			}
			return re, nil
		}, convert.Named("string-to-regexp")),
		{
			Name:     "text-unmarshaler",
			Source:   convert.KindSource(reflect.String),
			Target:   convert.TargetFunc("encoding.TextUnmarshaler", textTarget),
			Priority: convert.PriorityDefault + 1,
			Convert:  fromText,
		},
		{
			Name:     "text-marshaler",
			Source:   convert.AssignableSource(textMarshalerType),
			Target:   convert.KindTarget(reflect.String),
			Guard:    notAssignable,
			Priority: convert.PriorityDefault + 1,
			Convert:  toText,
		},
		{
			Name:     "stringer",
			Source:   convert.AssignableSource(stringerType),
			Target:   convert.KindTarget(reflect.String),
			Guard:    stringerGuard,
			Priority: convert.PriorityDefault + 1,
			Convert:  fromStringer,
		},
	}
}

func textTarget(t convert.Type) bool {
	rt := t.Reflect()
	if rt.Kind() == reflect.Pointer {
		return rt.Implements(textUnmarshalerType)
	}

	return reflect.PointerTo(rt).Implements(textUnmarshalerType)
}

// fromText parses a string with the target's UnmarshalText. Pointer targets
// receive a freshly allocated value.
func fromText(value any, cctx *convert.Context) (any, error) {
	rt := cctx.Target().Reflect()
	isPtr := rt.Kind() == reflect.Pointer
	if isPtr {
		rt = rt.Elem()
	}

	ptr := reflect.New(rt)
	unmarshaler, ok := ptr.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("%s does not implement encoding.TextUnmarshaler", ptr.Type())
	}
	if err := unmarshaler.UnmarshalText([]byte(reflect.ValueOf(value).String())); err != nil {
		return nil, err
	}
	if isPtr {
		return ptr.Interface(), nil
	}

	return ptr.Elem().Interface(), nil
}

func toText(value any, cctx *convert.Context) (any, error) {
	text, err := value.(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return nil, err
	}

	return asTarget(string(text), cctx), nil
}

func fromStringer(value any, cctx *convert.Context) (any, error) {
	return asTarget(value.(fmt.Stringer).String(), cctx), nil
}

// asTarget returns s typed as the context's string-kinded target.
func asTarget(s string, cctx *convert.Context) any {
	out := reflect.New(cctx.Target().Reflect()).Elem()
	out.SetString(s)

	return out.Interface()
}

// stringerGuard skips protobuf messages, whose String output is not stable.
func stringerGuard(source reflect.Type, target convert.Type) bool {
	return notAssignable(source, target) && !source.Implements(protoMessageType)
}

func notAssignable(source reflect.Type, target convert.Type) bool {
	return !source.AssignableTo(target.Reflect())
}

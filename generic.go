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

import "reflect"

// As converts value to T with the shared service.
//
// Example:
//
//	port, ok := convert.As[int]("8080")
//	ids, ok := convert.As[[]int64]("1,2,3")
func As[T any](value any, opts ...ContextOption) (T, bool) {
	return AsWith[T](Shared(), value, opts...)
}

// AsWith converts value to T with the given service.
func AsWith[T any](s *Service, value any, opts ...ContextOption) (T, bool) {
	var zero T
	target := TypeOf[T]()
	out, ok := s.Convert(value, target, NewContext(target, opts...))
	if !ok {
		return zero, false
	}
	result, ok := out.(T)
	if !ok {
		return zero, false
	}

	return result, true
}

// Required converts value to T with the shared service, returning an error
// that explains the most specific reason on failure.
//
// Example:
//
//	port, err := convert.Required[int](raw)
//	if err != nil {
//	    return fmt.Errorf("invalid port: %w", err)
//	}
func Required[T any](value any, opts ...ContextOption) (T, error) {
	return RequiredWith[T](Shared(), value, opts...)
}

// RequiredWith converts value to T with the given service.
// A nil value yields the zero T and no error.
func RequiredWith[T any](s *Service, value any, opts ...ContextOption) (T, error) {
	var zero T
	out, err := s.ConvertRequiredContext(value, NewContext(TypeOf[T](), opts...))
	if err != nil || out == nil {
		return zero, err
	}
	result, ok := out.(T)
	if !ok {
		return zero, &RequiredError{Source: reflect.TypeOf(value), Target: TypeOf[T]()}
	}

	return result, nil
}

// CanConvertTo reports whether s has a rule converting S into T.
func CanConvertTo[S, T any](s *Service) bool {
	return s.CanConvert(TypeOf[S](), TypeOf[T]())
}

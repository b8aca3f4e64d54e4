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
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/convert"
)

// Context hints understood by the struct rules.
const (
	// HintTag names the struct tag used for field names (default "mapstructure";
	// untagged fields match their name case-insensitively).
	HintTag = "tag"

	// HintStrict, when true, rejects input keys that match no field.
	HintStrict = "strict"

	// HintValidate, when true, checks the decoded struct against its
	// `validate:"..."` tags.
	HintValidate = "validate"
)

const defaultTagName = "mapstructure"

// ErrValidation wraps failed `validate` tag checks.
var ErrValidation = errors.New("validation failed")

var structValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// StructRules returns rules between string-keyed maps and structs.
//
// Map to struct decoding is weakly typed: every field value goes back
// through the conversion engine first, so registered rules apply to nested
// fields. Zero fields are then filled from the context default, if it has
// the target type, and finally from `default:"..."` struct tags.
//
//	type Server struct {
//	    Host    string        `mapstructure:"host" default:"localhost"`
//	    Timeout time.Duration `mapstructure:"timeout"`
//	}
//
//	srv, err := convert.RequiredWith[Server](svc, map[string]any{"timeout": "5s"})
func StructRules() []convert.Rule {
	return []convert.Rule{
		{
			Name:   "map-to-struct",
			Source: convert.SourceFunc("map[string]*", stringKeyedMap),
			Target: convert.KindTarget(reflect.Struct),
			Guard: func(_ reflect.Type, target convert.Type) bool {
				return !unmarshalsText(target.Reflect())
			},
			Priority: PriorityProvider,
			Convert:  mapToStruct,
		},
		{
			Name:   "struct-to-map",
			Source: convert.KindSource(reflect.Struct),
			Target: convert.ExactTarget(convert.TypeOf[map[string]any]()),
			Guard: func(source reflect.Type, _ convert.Type) bool {
				return !source.Implements(textMarshalerType)
			},
			Priority: PriorityProvider,
			Convert:  structToMap,
		},
	}
}

func stringKeyedMap(rt reflect.Type) bool {
	return rt.Kind() == reflect.Map && rt.Key().Kind() == reflect.String
}

func mapToStruct(value any, cctx *convert.Context) (any, error) {
	target := cctx.Target().Reflect()
	ptr := reflect.New(target)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           ptr.Interface(),
		TagName:          tagName(cctx),
		Squash:           true,
		WeaklyTypedInput: true,
		ErrorUnused:      hintBool(cctx, HintStrict),
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			engineHook(cctx),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(value); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", target, err)
	}

	if def, ok := cctx.Default(); ok && reflect.TypeOf(def) == target {
		if err = mergo.Merge(ptr.Interface(), def); err != nil {
			return nil, fmt.Errorf("failed to merge default %s: %w", target, err)
		}
	}

	if err = setDefaults(ptr.Elem(), cctx); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if hintBool(cctx, HintValidate) {
		if err = structValidator().Struct(ptr.Interface()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return ptr.Elem().Interface(), nil
}

// engineHook hands leaf values to the conversion engine before
// mapstructure's own weak decoding. Containers are left to mapstructure,
// which calls the hook again for every element.
func engineHook(cctx *convert.Context) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.AssignableTo(to) {
			return data, nil
		}
		switch to.Kind() {
		case reflect.Interface, reflect.Pointer:
			return data, nil
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
			if from.Kind() == reflect.Map || from.Kind() == reflect.Slice || from.Kind() == reflect.Array {
				return data, nil
			}
		}

		out, err := cctx.Convert(data, convert.TypeFor(to))
		if err != nil || out == nil {
			// mapstructure reports the field path when it fails as well.
			return data, nil
		}

		return out, nil
	}
}

// setDefaults fills zero fields from their `default` tag, converting the
// tag text through the engine. Nested structs are visited recursively.
func setDefaults(val reflect.Value, cctx *convert.Context) error {
	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !field.CanSet() {
			continue
		}

		tag, hasTag := fieldType.Tag.Lookup("default")
		if !hasTag {
			if field.Kind() == reflect.Struct && !unmarshalsText(field.Type()) {
				if err := setDefaults(field, cctx); err != nil {
					return err
				}
			}
			continue
		}
		if !field.IsZero() {
			continue
		}

		out, err := cctx.Convert(tag, convert.TypeFor(field.Type()))
		if err != nil {
			return fmt.Errorf("field %s: %w", fieldType.Name, err)
		}
		if out != nil {
			field.Set(reflect.ValueOf(out))
		}
	}

	return nil
}

func structToMap(value any, cctx *convert.Context) (any, error) {
	out := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: tagName(cctx),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(value); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", value, err)
	}

	return out, nil
}

func tagName(cctx *convert.Context) string {
	if v, ok := cctx.Hint(HintTag); ok {
		if name, ok := v.(string); ok && name != "" {
			return name
		}
	}

	return defaultTagName
}

func hintBool(cctx *convert.Context, key string) bool {
	v, ok := cctx.Hint(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)

	return ok && b
}

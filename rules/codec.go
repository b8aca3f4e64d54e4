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
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"

	"rivaas.dev/convert"
	"rivaas.dev/convert/codec"
)

// DefaultFormat is the codec used when a context carries no format hint.
const DefaultFormat = codec.TypeJSON

var (
	protoMessageType = reflect.TypeFor[proto.Message]()
	anyMapType       = reflect.TypeFor[map[string]any]()
)

// CodecRules returns rules that decode strings and byte slices into
// structured targets and encode structured values back, using the codec
// named by the context format (see [convert.WithFormat]) or [DefaultFormat].
//
//	cfg, err := convert.RequiredWith[Config](svc, data, convert.WithFormat("yaml"))
//	out, err := convert.RequiredWith[[]byte](svc, cfg, convert.WithFormat("toml"))
func CodecRules() []convert.Rule {
	return CodecRulesFrom(codec.Default())
}

// CodecRulesFrom is [CodecRules] over a custom codec registry.
func CodecRulesFrom(codecs *codec.Registry) []convert.Rule {
	return []convert.Rule{
		{
			Name:     "codec-decode",
			Source:   convert.SourceFunc("string or []byte", encodedSource),
			Target:   convert.TargetFunc("struct, map, slice or proto.Message", decodableTarget),
			Priority: PriorityProvider,
			Convert: func(value any, cctx *convert.Context) (any, error) {
				return decode(codecs, value, cctx)
			},
		},
		{
			Name:     "codec-encode",
			Source:   convert.SourceFunc("struct, map, slice or proto.Message", encodableSource),
			Target:   convert.TargetFunc("string or []byte", encodedTarget),
			Priority: PriorityProvider,
			Convert: func(value any, cctx *convert.Context) (any, error) {
				return encode(codecs, value, cctx)
			},
		},
	}
}

func encodedSource(rt reflect.Type) bool {
	return rt.Kind() == reflect.String || rt == bytesType
}

func encodedTarget(t convert.Type) bool {
	rt := t.Reflect()
	return rt.Kind() == reflect.String || rt == bytesType
}

func decodableTarget(t convert.Type) bool {
	rt := t.Reflect()
	if rt.Kind() == reflect.Pointer {
		return rt.Implements(protoMessageType)
	}
	if unmarshalsText(rt) {
		return false
	}
	switch rt.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	case reflect.Slice:
		return rt != bytesType
	default:
		return false
	}
}

func encodableSource(rt reflect.Type) bool {
	if rt.Implements(textMarshalerType) {
		return false
	}
	switch rt.Kind() {
	case reflect.Pointer:
		return rt.Implements(protoMessageType)
	case reflect.Map, reflect.Struct, reflect.Array:
		return true
	case reflect.Slice:
		return rt != bytesType
	default:
		return false
	}
}

func format(cctx *convert.Context) codec.Type {
	if f := cctx.Format(); f != "" {
		return codec.ParseType(f)
	}

	return DefaultFormat
}

func decode(codecs *codec.Registry, value any, cctx *convert.Context) (any, error) {
	target := cctx.Target().Reflect()
	name := format(cctx)
	if name == codec.TypeJSON && target.Implements(protoMessageType) {
		name = codec.TypeProtoJSON
	}
	dec, err := codecs.Decoder(name)
	if err != nil {
		return nil, err
	}

	var data []byte
	if b, ok := value.([]byte); ok {
		data = b
	} else {
		data = []byte(reflect.ValueOf(value).String())
	}

	switch {
	case target.Kind() == reflect.Pointer:
		msg := reflect.New(target.Elem())
		if err = dec.Decode(data, msg.Interface()); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return msg.Interface(), nil

	case target.Kind() == reflect.Struct || (name == codec.TypeEnv && target != anyMapType):
		// Structs are decoded through a generic map so field conversion,
		// default tags and context defaults apply for every format. Field
		// names come from the format's own struct tag.
		var m map[string]any
		if err = dec.Decode(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		var opts []convert.ContextOption
		if _, ok := cctx.Hint(HintTag); !ok && name != codec.TypeEnv {
			opts = append(opts, convert.WithHint(HintTag, string(name)))
		}
		if def, ok := cctx.Default(); ok {
			opts = append(opts, convert.WithDefault(def))
		}
		return cctx.Convert(m, cctx.Target(), opts...)
	}

	ptr := reflect.New(target)
	if err = dec.Decode(data, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return ptr.Elem().Interface(), nil
}

func encode(codecs *codec.Registry, value any, cctx *convert.Context) (any, error) {
	name := format(cctx)
	if _, isMsg := value.(proto.Message); isMsg && name == codec.TypeJSON {
		name = codec.TypeProtoJSON
	}
	enc, err := codecs.Encoder(name)
	if err != nil {
		return nil, err
	}

	if name == codec.TypeEnv && reflect.TypeOf(value) != anyMapType {
		if value, err = cctx.Convert(value, convert.TypeFor(anyMapType)); err != nil {
			return nil, err
		}
	}

	data, err := enc.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	target := cctx.Target().Reflect()
	if target == bytesType {
		return data, nil
	}

	return asTarget(string(data), cctx), nil
}

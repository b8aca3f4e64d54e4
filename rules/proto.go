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
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"rivaas.dev/convert"
)

// ProtoRules returns rules between plain Go values and the protobuf
// well-known types: structpb.Struct, structpb.ListValue, structpb.Value,
// timestamppb.Timestamp and durationpb.Duration.
func ProtoRules() []convert.Rule {
	return []convert.Rule{
		convert.NewRule(func(m map[string]any, _ *convert.Context) (*structpb.Struct, error) {
			return structpb.NewStruct(m)
		}, convert.Named("map-to-structpb")),
		convert.NewRule(func(s *structpb.Struct, _ *convert.Context) (map[string]any, error) {
			return s.AsMap(), nil
		}, convert.Named("structpb-to-map")),
		convert.NewRule(func(items []any, _ *convert.Context) (*structpb.ListValue, error) {
			return structpb.NewList(items)
		}, convert.Named("slice-to-listvalue")),
		convert.NewRule(func(l *structpb.ListValue, _ *convert.Context) ([]any, error) {
			return l.AsSlice(), nil
		}, convert.Named("listvalue-to-slice")),
		{
			Name:    "scalar-to-structpb-value",
			Source:  convert.KindSource(reflect.Bool, reflect.String, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64),
			Target:  convert.ExactTarget(convert.TypeOf[*structpb.Value]()),
			Convert: toStructValue,
		},
		convert.NewRule(func(t time.Time, _ *convert.Context) (*timestamppb.Timestamp, error) {
			return timestamppb.New(t), nil
		}, convert.Named("time-to-timestamppb")),
		convert.NewRule(func(ts *timestamppb.Timestamp, _ *convert.Context) (time.Time, error) {
			if err := ts.CheckValid(); err != nil {
				return time.Time{}, err
			}
			return ts.AsTime(), nil
		}, convert.Named("timestamppb-to-time")),
		convert.NewRule(func(d time.Duration, _ *convert.Context) (*durationpb.Duration, error) {
			return durationpb.New(d), nil
		}, convert.Named("duration-to-durationpb")),
		convert.NewRule(func(d *durationpb.Duration, _ *convert.Context) (time.Duration, error) {
			if err := d.CheckValid(); err != nil {
				return 0, err
			}
			return d.AsDuration(), nil
		}, convert.Named("durationpb-to-duration")),
	}
}

// toStructValue wraps a scalar; named scalar types are reduced to their
// underlying kind first since structpb only accepts builtin types.
func toStructValue(value any, _ *convert.Context) (any, error) {
	rv := reflect.ValueOf(value)
	var v any
	switch rv.Kind() {
	case reflect.Bool:
		v = rv.Bool()
	case reflect.String:
		v = rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v = rv.Uint()
	case reflect.Float32, reflect.Float64:
		v = rv.Float()
	default:
		return nil, fmt.Errorf("unsupported structpb value kind %s", rv.Kind())
	}

	return structpb.NewValue(v)
}

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

// Package rules provides optional converter rules for rivaas.dev/convert.
//
// The conversion engine ships with scalar, time, pointer and collection
// rules. This package adds rules for richer targets, registered through the
// same public interface any caller uses:
//
//   - [TextRules]: UUIDs, IP addresses, CIDR networks, URLs, regular
//     expressions and encoding.TextMarshaler / TextUnmarshaler types
//   - [CodecRules]: strings and byte slices decoded into structs, maps and
//     slices with the codec named by the context format (json, yaml, toml,
//     msgpack, proto, env), and encoded back
//   - [StructRules]: string-keyed maps decoded into structs with nested
//     field conversion and defaults, and structs flattened into maps
//   - [ProtoRules]: protobuf well-known types (Struct, ListValue, Value,
//     Timestamp, Duration)
//
// # Usage
//
//	svc := convert.MustNew(convert.WithDefaultRules())
//	if err := rules.Register(svc); err != nil {
//	    return err
//	}
//
//	type Config struct {
//	    Addr    string        `mapstructure:"addr" default:":8080"`
//	    Timeout time.Duration `mapstructure:"timeout"`
//	}
//
//	cfg, err := convert.RequiredWith[Config](svc, data, convert.WithFormat("yaml"))
//
// Providers overlap with the default rules only where they are more
// specific; overlapping provider rules run at [PriorityProvider], after the
// specific rules and before the structural fallbacks.
package rules

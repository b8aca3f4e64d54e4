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

// Package codec provides named wire formats for the conversion engine.
//
// The codec package defines [Encoder] and [Decoder] interfaces and a
// [Registry] that maps a format name ([Type]) to its implementation. The
// conversion rules in rivaas.dev/convert/rules look codecs up by the format
// hint carried in a conversion context.
//
// # Built-in Codecs
//
// The built-in codecs register themselves in the default registry:
//
//   - json: github.com/goccy/go-json
//   - yaml: github.com/goccy/go-yaml
//   - toml: github.com/BurntSushi/toml
//   - msgpack: github.com/vmihailenco/msgpack/v5
//   - proto and protojson: google.golang.org/protobuf (proto.Message values only)
//   - env: KEY_SUB=value lines to and from nested maps
//
// # Custom Codecs
//
// Register custom codecs using [Register], or [RegisterEncoder] and
// [RegisterDecoder] for one direction only:
//
//	type CSVCodec struct{}
//
//	func (CSVCodec) Encode(v any) ([]byte, error)     { ... }
//	func (CSVCodec) Decode(data []byte, v any) error { ... }
//
//	codec.Register(codec.Type("csv"), CSVCodec{})
//
// Names given by users can be normalized with [ParseType], which accepts file
// extensions and common aliases such as "yml".
package codec

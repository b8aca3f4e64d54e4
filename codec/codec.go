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

package codec

import "strings"

// Type names a wire format.
type Type string

// Encoder converts Go values into encoded bytes.
// Implementations must be safe for concurrent use.
type Encoder interface {
	// Encode converts v into an encoded byte slice.
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded bytes into Go values.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Decode decodes data into the value pointed to by v.
	// It returns an error if decoding fails or if v is not a valid target.
	Decode(data []byte, v any) error
}

// Codec is both an [Encoder] and a [Decoder].
type Codec interface {
	Encoder
	Decoder
}

// ParseType normalizes a user supplied format name: it lowercases, trims a
// leading dot (file extensions) and resolves common aliases.
//
//	codec.ParseType(".YML")    // yaml
//	codec.ParseType("msgpack") // msgpack
func ParseType(name string) Type {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	switch name {
	case "yml":
		return TypeYAML
	case "mpk", "messagepack":
		return TypeMsgPack
	case "pb", "protobuf":
		return TypeProto
	case "dotenv", "env_var":
		return TypeEnv
	}

	return Type(name)
}

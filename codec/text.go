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

import (
	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Text formats.
const (
	TypeJSON Type = "json"
	TypeYAML Type = "yaml"
	TypeTOML Type = "toml"
)

// FuncCodec adapts a marshal and unmarshal function pair to [Codec].
type FuncCodec struct {
	EncodeFunc func(v any) ([]byte, error)
	DecodeFunc func(data []byte, v any) error
}

// Encode calls EncodeFunc.
func (c FuncCodec) Encode(v any) ([]byte, error) {
	return c.EncodeFunc(v)
}

// Decode calls DecodeFunc.
func (c FuncCodec) Decode(data []byte, v any) error {
	return c.DecodeFunc(data, v)
}

var (
	// JSON uses github.com/goccy/go-json, a drop-in replacement for encoding/json.
	JSON Codec = FuncCodec{EncodeFunc: json.Marshal, DecodeFunc: json.Unmarshal}

	// YAML uses github.com/goccy/go-yaml.
	YAML Codec = FuncCodec{
		EncodeFunc: yaml.Marshal,
		DecodeFunc: func(data []byte, v any) error { return yaml.Unmarshal(data, v) },
	}

	// TOML only encodes maps and structs at the top level.
	TOML Codec = FuncCodec{EncodeFunc: toml.Marshal, DecodeFunc: toml.Unmarshal}
)

func init() {
	Register(TypeJSON, JSON)
	Register(TypeYAML, YAML)
	Register(TypeTOML, TOML)
}

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
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// TypeMsgPack names the MessagePack format.
const TypeMsgPack Type = "msgpack"

func init() {
	Register(TypeMsgPack, MsgPackCodec{})
}

// MsgPackCodec encodes and decodes MessagePack.
//
// By default struct fields are named by their `msgpack` tag. Set UseJSONTag
// to reuse existing `json` tags instead.
type MsgPackCodec struct {
	UseJSONTag bool
}

// Encode marshals v into MessagePack.
func (c MsgPackCodec) Encode(v any) ([]byte, error) {
	if !c.UseJSONTag {
		return msgpack.Marshal(v)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode unmarshals MessagePack data into the value pointed to by v.
// Maps decode as map[string]any.
func (c MsgPackCodec) Decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if c.UseJSONTag {
		dec.SetCustomStructTag("json")
	}

	return dec.Decode(v)
}

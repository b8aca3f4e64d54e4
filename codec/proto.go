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
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const (
	// TypeProto names the Protocol Buffers binary format.
	TypeProto Type = "proto"

	// TypeProtoJSON names the canonical JSON mapping of Protocol Buffers.
	TypeProtoJSON Type = "protojson"
)

func init() {
	Register(TypeProto, ProtoCodec{})
	Register(TypeProtoJSON, ProtoJSONCodec{})
}

// ProtoCodec encodes and decodes Protocol Buffers messages. Values must
// implement proto.Message.
type ProtoCodec struct {
	// DiscardUnknown drops unknown fields while decoding.
	DiscardUnknown bool
}

// Encode marshals a proto.Message.
func (ProtoCodec) Encode(v any) ([]byte, error) {
	msg, err := asMessage(v)
	if err != nil {
		return nil, err
	}

	return proto.Marshal(msg)
}

// Decode unmarshals data into v, which must be a non-nil proto.Message.
func (c ProtoCodec) Decode(data []byte, v any) error {
	msg, err := asMessage(v)
	if err != nil {
		return err
	}

	return proto.UnmarshalOptions{DiscardUnknown: c.DiscardUnknown}.Unmarshal(data, msg)
}

// ProtoJSONCodec encodes and decodes proto.Message values using the
// canonical protobuf JSON mapping.
type ProtoJSONCodec struct{}

// Encode marshals a proto.Message to JSON.
func (ProtoJSONCodec) Encode(v any) ([]byte, error) {
	msg, err := asMessage(v)
	if err != nil {
		return nil, err
	}

	return protojson.Marshal(msg)
}

// Decode unmarshals protobuf JSON into v.
func (ProtoJSONCodec) Decode(data []byte, v any) error {
	msg, err := asMessage(v)
	if err != nil {
		return err
	}

	return protojson.Unmarshal(data, msg)
}

func asMessage(v any) (proto.Message, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("proto codec: %T does not implement proto.Message", v)
	}

	return msg, nil
}

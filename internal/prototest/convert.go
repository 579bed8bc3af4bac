// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prototest

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/encoding/pbjson"
	"buf.build/go/protocodec/encoding/pbwire"
)

// New returns an empty dynamic message with the descriptor of m's type.
func New(m codec.Message) (*dynamicpb.Message, error) {
	md, err := Descriptor(m.Schema())
	if err != nil {
		return nil, err
	}
	return dynamicpb.NewMessage(md), nil
}

// ToProto encodes m in the binary format, and decodes the result with
// protobuf-go.
func ToProto(m codec.Message) (*dynamicpb.Message, error) {
	b, err := pbwire.Append(nil, m, pbwire.NewOptions())
	if err != nil {
		return nil, err
	}
	pm, err := New(m)
	if err != nil {
		return nil, err
	}
	return pm, proto.Unmarshal(b, pm)
}

// ToProtoJSON is like [ToProto], but goes through JSON.
func ToProtoJSON(m codec.Message) (*dynamicpb.Message, error) {
	b, err := pbjson.Marshal(m, pbjson.NewOptions())
	if err != nil {
		return nil, err
	}
	pm, err := New(m)
	if err != nil {
		return nil, err
	}
	return pm, protojson.Unmarshal(b, pm)
}

// FromProto encodes pm with protobuf-go, and decodes the result into m.
func FromProto(pm proto.Message, m codec.Message) error {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(pm)
	if err != nil {
		return err
	}
	return pbwire.Unmarshal(b, m, pbwire.NewOptions())
}

// FromProtoJSON is like [FromProto], but goes through JSON.
func FromProtoJSON(pm proto.Message, m codec.Message) error {
	b, err := protojson.Marshal(pm)
	if err != nil {
		return err
	}
	return pbjson.Unmarshal(b, m, pbjson.NewOptions())
}

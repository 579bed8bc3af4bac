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

package testpb

import (
	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/schema"
)

// Maps has map fields with a variety of key and value types.
type Maps struct {
	IntMap    map[int32]int32
	StringMap map[string]string
	BoolMap   map[bool][]byte
	LeafMap   map[uint32]*Leaf
	PhoneMap  map[string]int32
	SintMap   map[int64]float64
}

var mapsSchema = schema.NewMessage("Maps",
	schema.MapOf(1, "int_map", schema.Int32(1, "key"), schema.Int32(2, "value")),
	schema.MapOf(2, "string_map", schema.String(1, "key"), schema.String(2, "value")),
	schema.MapOf(3, "bool_map", schema.Bool(1, "key"), schema.Bytes(2, "value")),
	schema.MapOf(4, "leaf_map", schema.Uint32(1, "key"),
		schema.MessageOf(2, "value", func() *schema.Message { return leafSchema })),
	schema.MapOf(5, "phone_map", schema.String(1, "key"), schema.EnumOf(2, "value", PhoneType)),
	schema.MapOf(6, "sint_map", schema.Sint64(1, "key"), schema.Double(2, "value")),
)

func (*Maps) Schema() *schema.Message { return mapsSchema }

func (m *Maps) IsEmpty() bool {
	return len(m.IntMap) == 0 && len(m.StringMap) == 0 && len(m.BoolMap) == 0 &&
		len(m.LeafMap) == 0 && len(m.PhoneMap) == 0 && len(m.SintMap) == 0
}

func (m *Maps) EncodeFields(e codec.Encoder) error {
	f := mapsSchema.Fields()
	if err := codec.EncodeMap(e, f[0], m.IntMap, codec.Encoder.Int32, codec.Encoder.Int32); err != nil {
		return err
	}
	if err := codec.EncodeMap(e, f[1], m.StringMap, codec.Encoder.String, codec.Encoder.String); err != nil {
		return err
	}
	if err := codec.EncodeMapFunc(e, f[2], m.BoolMap, codec.CompareBool, codec.Encoder.Bool, codec.Encoder.Bytes); err != nil {
		return err
	}
	if err := codec.EncodeMap(e, f[3], m.LeafMap, codec.Encoder.Uint32, codec.MessageValue[*Leaf]); err != nil {
		return err
	}
	if err := codec.EncodeMap(e, f[4], m.PhoneMap, codec.Encoder.String, codec.Encoder.Enum); err != nil {
		return err
	}
	return codec.EncodeMap(e, f[5], m.SintMap, codec.Encoder.Int64, codec.Encoder.Float64)
}

func (m *Maps) DecodeField(d codec.Decoder, f *schema.Field) error {
	switch f.Number {
	case 1:
		return codec.DecodeMap(d, &m.IntMap, codec.Decoder.Int32, codec.Decoder.Int32)
	case 2:
		return codec.DecodeMap(d, &m.StringMap, codec.Decoder.String, codec.Decoder.String)
	case 3:
		return codec.DecodeMap(d, &m.BoolMap, codec.Decoder.Bool, codec.Decoder.Bytes)
	case 4:
		return codec.DecodeMap(d, &m.LeafMap, codec.Decoder.Uint32, codec.DecodeMessage[Leaf])
	case 5:
		return codec.DecodeMap(d, &m.PhoneMap, codec.Decoder.String, codec.Decoder.Enum)
	case 6:
		return codec.DecodeMap(d, &m.SintMap, codec.Decoder.Int64, codec.Decoder.Float64)
	default:
		return codec.ErrUnknownField
	}
}

func (m *Maps) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.IntMap = nil
	case 2:
		m.StringMap = nil
	case 3:
		m.BoolMap = nil
	case 4:
		m.LeafMap = nil
	case 5:
		m.PhoneMap = nil
	case 6:
		m.SintMap = nil
	}
}

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

// Repeated has packed and expanded repeated fields.
type Repeated struct {
	PackedInt32   []int32
	ExpandedInt32 []int32
	Strings       []string
	Doubles       []float64
	Sint64s       []int64
	Bools         []bool
	Phones        []int32
	Leaves        []*Leaf
	Blobs         [][]byte
	Fixed32s      []uint32
}

var repeatedSchema = schema.NewMessage("Repeated",
	schema.Int32(1, "packed_int32").Pack(),
	schema.Int32(2, "expanded_int32").Repeated(),
	schema.String(3, "strings").Repeated(),
	schema.Double(4, "doubles").Pack(),
	schema.Sint64(5, "sint64s").Pack(),
	schema.Bool(6, "bools").Pack(),
	schema.EnumOf(7, "phones", PhoneType).Pack(),
	schema.MessageOf(8, "leaves", func() *schema.Message { return leafSchema }).Repeated(),
	schema.Bytes(9, "blobs").Repeated(),
	schema.Fixed32(10, "fixed32s").Repeated(),
)

func (*Repeated) Schema() *schema.Message { return repeatedSchema }

func (m *Repeated) IsEmpty() bool {
	return len(m.PackedInt32) == 0 && len(m.ExpandedInt32) == 0 &&
		len(m.Strings) == 0 && len(m.Doubles) == 0 && len(m.Sint64s) == 0 &&
		len(m.Bools) == 0 && len(m.Phones) == 0 && len(m.Leaves) == 0 &&
		len(m.Blobs) == 0 && len(m.Fixed32s) == 0
}

func (m *Repeated) EncodeFields(e codec.Encoder) error {
	f := repeatedSchema.Fields()
	if err := codec.EncodeList(e, f[0], m.PackedInt32, codec.Encoder.Int32); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[1], m.ExpandedInt32, codec.Encoder.Int32); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[2], m.Strings, codec.Encoder.String); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[3], m.Doubles, codec.Encoder.Float64); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[4], m.Sint64s, codec.Encoder.Int64); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[5], m.Bools, codec.Encoder.Bool); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[6], m.Phones, codec.Encoder.Enum); err != nil {
		return err
	}
	if err := codec.EncodeMessages(e, f[7], m.Leaves); err != nil {
		return err
	}
	if err := codec.EncodeList(e, f[8], m.Blobs, codec.Encoder.Bytes); err != nil {
		return err
	}
	return codec.EncodeList(e, f[9], m.Fixed32s, codec.Encoder.Uint32)
}

func (m *Repeated) DecodeField(d codec.Decoder, f *schema.Field) error {
	switch f.Number {
	case 1:
		return codec.DecodeAppend(d, &m.PackedInt32, codec.Decoder.Int32)
	case 2:
		return codec.DecodeAppend(d, &m.ExpandedInt32, codec.Decoder.Int32)
	case 3:
		return codec.DecodeAppend(d, &m.Strings, codec.Decoder.String)
	case 4:
		return codec.DecodeAppend(d, &m.Doubles, codec.Decoder.Float64)
	case 5:
		return codec.DecodeAppend(d, &m.Sint64s, codec.Decoder.Int64)
	case 6:
		return codec.DecodeAppend(d, &m.Bools, codec.Decoder.Bool)
	case 7:
		return codec.DecodeAppend(d, &m.Phones, codec.Decoder.Enum)
	case 8:
		return codec.DecodeAppend(d, &m.Leaves, codec.DecodeMessage[Leaf])
	case 9:
		return codec.DecodeAppend(d, &m.Blobs, codec.Decoder.Bytes)
	case 10:
		return codec.DecodeAppend(d, &m.Fixed32s, codec.Decoder.Uint32)
	default:
		return codec.ErrUnknownField
	}
}

func (m *Repeated) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.PackedInt32 = nil
	case 2:
		m.ExpandedInt32 = nil
	case 3:
		m.Strings = nil
	case 4:
		m.Doubles = nil
	case 5:
		m.Sint64s = nil
	case 6:
		m.Bools = nil
	case 7:
		m.Phones = nil
	case 8:
		m.Leaves = nil
	case 9:
		m.Blobs = nil
	case 10:
		m.Fixed32s = nil
	}
}

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

// Scalars has one field of every scalar type.
type Scalars struct {
	Bool     bool
	Int32    int32
	Int64    int64
	Uint32   uint32
	Uint64   uint64
	Sint32   int32
	Sint64   int64
	Fixed32  uint32
	Fixed64  uint64
	Sfixed32 int32
	Sfixed64 int64
	Float    float32
	Double   float64
	String   string
	Bytes    []byte
	Phone    int32

	OptInt32  *int32
	OptString *string
}

var scalarsSchema = schema.NewMessage("Scalars",
	schema.Bool(1, "bool_value"),
	schema.Int32(2, "int32_value"),
	schema.Int64(3, "int64_value"),
	schema.Uint32(4, "uint32_value"),
	schema.Uint64(5, "uint64_value"),
	schema.Sint32(6, "sint32_value"),
	schema.Sint64(7, "sint64_value"),
	schema.Fixed32(8, "fixed32_value"),
	schema.Fixed64(9, "fixed64_value"),
	schema.Sfixed32(10, "sfixed32_value"),
	schema.Sfixed64(11, "sfixed64_value"),
	schema.Float(12, "float_value"),
	schema.Double(13, "double_value"),
	schema.String(14, "string_value"),
	schema.Bytes(15, "bytes_value"),
	schema.EnumOf(16, "phone", PhoneType),
	schema.Int32(17, "opt_int32").Optional(),
	schema.String(18, "opt_string").Optional(),
)

func (*Scalars) Schema() *schema.Message { return scalarsSchema }

func (m *Scalars) IsEmpty() bool {
	return !m.Bool && m.Int32 == 0 && m.Int64 == 0 && m.Uint32 == 0 &&
		m.Uint64 == 0 && m.Sint32 == 0 && m.Sint64 == 0 && m.Fixed32 == 0 &&
		m.Fixed64 == 0 && m.Sfixed32 == 0 && m.Sfixed64 == 0 && m.Float == 0 &&
		m.Double == 0 && m.String == "" && len(m.Bytes) == 0 && m.Phone == 0 &&
		m.OptInt32 == nil && m.OptString == nil
}

func (m *Scalars) EncodeFields(e codec.Encoder) error {
	f := scalarsSchema.Fields()
	if err := e.Bool(f[0], m.Bool); err != nil {
		return err
	}
	if err := e.Int32(f[1], m.Int32); err != nil {
		return err
	}
	if err := e.Int64(f[2], m.Int64); err != nil {
		return err
	}
	if err := e.Uint32(f[3], m.Uint32); err != nil {
		return err
	}
	if err := e.Uint64(f[4], m.Uint64); err != nil {
		return err
	}
	if err := e.Int32(f[5], m.Sint32); err != nil {
		return err
	}
	if err := e.Int64(f[6], m.Sint64); err != nil {
		return err
	}
	if err := e.Uint32(f[7], m.Fixed32); err != nil {
		return err
	}
	if err := e.Uint64(f[8], m.Fixed64); err != nil {
		return err
	}
	if err := e.Int32(f[9], m.Sfixed32); err != nil {
		return err
	}
	if err := e.Int64(f[10], m.Sfixed64); err != nil {
		return err
	}
	if err := e.Float32(f[11], m.Float); err != nil {
		return err
	}
	if err := e.Float64(f[12], m.Double); err != nil {
		return err
	}
	if err := e.String(f[13], m.String); err != nil {
		return err
	}
	if err := e.Bytes(f[14], m.Bytes); err != nil {
		return err
	}
	if err := e.Enum(f[15], m.Phone); err != nil {
		return err
	}
	if m.OptInt32 != nil {
		if err := e.Int32(f[16], *m.OptInt32); err != nil {
			return err
		}
	}
	if m.OptString != nil {
		if err := e.String(f[17], *m.OptString); err != nil {
			return err
		}
	}
	return nil
}

func (m *Scalars) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.Bool, err = d.Bool()
	case 2:
		m.Int32, err = d.Int32()
	case 3:
		m.Int64, err = d.Int64()
	case 4:
		m.Uint32, err = d.Uint32()
	case 5:
		m.Uint64, err = d.Uint64()
	case 6:
		m.Sint32, err = d.Int32()
	case 7:
		m.Sint64, err = d.Int64()
	case 8:
		m.Fixed32, err = d.Uint32()
	case 9:
		m.Fixed64, err = d.Uint64()
	case 10:
		m.Sfixed32, err = d.Int32()
	case 11:
		m.Sfixed64, err = d.Int64()
	case 12:
		m.Float, err = d.Float32()
	case 13:
		m.Double, err = d.Float64()
	case 14:
		m.String, err = d.String()
	case 15:
		m.Bytes, err = d.Bytes()
	case 16:
		m.Phone, err = d.Enum()
	case 17:
		var v int32
		v, err = d.Int32()
		m.OptInt32 = &v
	case 18:
		var v string
		v, err = d.String()
		m.OptString = &v
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *Scalars) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.Bool = false
	case 2:
		m.Int32 = 0
	case 3:
		m.Int64 = 0
	case 4:
		m.Uint32 = 0
	case 5:
		m.Uint64 = 0
	case 6:
		m.Sint32 = 0
	case 7:
		m.Sint64 = 0
	case 8:
		m.Fixed32 = 0
	case 9:
		m.Fixed64 = 0
	case 10:
		m.Sfixed32 = 0
	case 11:
		m.Sfixed64 = 0
	case 12:
		m.Float = 0
	case 13:
		m.Double = 0
	case 14:
		m.String = ""
	case 15:
		m.Bytes = nil
	case 16:
		m.Phone = 0
	case 17:
		m.OptInt32 = nil
	case 18:
		m.OptString = nil
	}
}


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

// Flags has fields with declared bit widths.
type Flags struct {
	Small int32  // 4 bits.
	Mask  uint32 // 3 bits.
	Wide  int64  // 40 bits, fixed-width.
}

var flagsSchema = schema.NewMessage("Flags",
	schema.Int32(1, "small").WithBits(4),
	schema.Uint32(2, "mask").WithBits(3),
	schema.Sfixed64(3, "wide").WithBits(40),
)

func (*Flags) Schema() *schema.Message { return flagsSchema }
func (m *Flags) IsEmpty() bool         { return *m == Flags{} }

func (m *Flags) EncodeFields(e codec.Encoder) error {
	f := flagsSchema.Fields()
	if err := e.Int32(f[0], m.Small); err != nil {
		return err
	}
	if err := e.Uint32(f[1], m.Mask); err != nil {
		return err
	}
	return e.Int64(f[2], m.Wide)
}

func (m *Flags) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.Small, err = d.Int32()
	case 2:
		m.Mask, err = d.Uint32()
	case 3:
		m.Wide, err = d.Int64()
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *Flags) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.Small = 0
	case 2:
		m.Mask = 0
	case 3:
		m.Wide = 0
	}
}

// Collide has two fields whose JSON names have the same djb2 hash.
type Collide struct {
	KeyAz int32
	KeyBY int32
}

var collideSchema = schema.NewMessage("Collide",
	schema.Int32(1, "keyAz"),
	schema.Int32(2, "keyBY"),
)

func (*Collide) Schema() *schema.Message { return collideSchema }
func (m *Collide) IsEmpty() bool         { return *m == Collide{} }

func (m *Collide) EncodeFields(e codec.Encoder) error {
	f := collideSchema.Fields()
	if err := e.Int32(f[0], m.KeyAz); err != nil {
		return err
	}
	return e.Int32(f[1], m.KeyBY)
}

func (m *Collide) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.KeyAz, err = d.Int32()
	case 2:
		m.KeyBY, err = d.Int32()
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *Collide) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.KeyAz = 0
	case 2:
		m.KeyBY = 0
	}
}

// Sparse has only some of the fields of [Scalars], so that decoding a
// Scalars as a Sparse exercises skipping.
type Sparse struct {
	Int64  int64
	String string
}

var sparseSchema = schema.NewMessage("Sparse",
	schema.Int64(3, "int64_value"),
	schema.String(14, "string_value"),
)

func (*Sparse) Schema() *schema.Message { return sparseSchema }
func (m *Sparse) IsEmpty() bool         { return *m == Sparse{} }

func (m *Sparse) EncodeFields(e codec.Encoder) error {
	f := sparseSchema.Fields()
	if err := e.Int64(f[0], m.Int64); err != nil {
		return err
	}
	return e.String(f[1], m.String)
}

func (m *Sparse) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 3:
		m.Int64, err = d.Int64()
	case 14:
		m.String, err = d.String()
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *Sparse) ClearField(f *schema.Field) {
	switch f.Number {
	case 3:
		m.Int64 = 0
	case 14:
		m.String = ""
	}
}

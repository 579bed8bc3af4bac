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

// Package testpb contains message types for tests, written in the shape that
// generated code takes: a field table, plus hooks that walk it.
package testpb

import (
	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/schema"
)

// PhoneType is an enum.
var PhoneType = schema.NewEnum("PhoneType",
	schema.EnumValue{Name: "MOBILE", Number: 0},
	schema.EnumValue{Name: "HOME", Number: 1},
	schema.EnumValue{Name: "WORK", Number: 2},
)

// PhoneType values.
const (
	PhoneMobile int32 = 0
	PhoneHome   int32 = 1
	PhoneWork   int32 = 2
)

// ReqInt32 has a single int32 field.
type ReqInt32 struct {
	Value int32
}

var reqInt32Schema = schema.NewMessage("ReqInt32",
	schema.Int32(1, "value"),
)

func (*ReqInt32) Schema() *schema.Message { return reqInt32Schema }
func (m *ReqInt32) IsEmpty() bool         { return m.Value == 0 }

func (m *ReqInt32) EncodeFields(e codec.Encoder) error {
	return e.Int32(reqInt32Schema.Fields()[0], m.Value)
}

func (m *ReqInt32) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.Value, err = d.Int32()
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *ReqInt32) ClearField(f *schema.Field) {
	if f.Number == 1 {
		m.Value = 0
	}
}

// ReqSint32 has a single zigzag-encoded int32 field.
type ReqSint32 struct {
	Value int32
}

var reqSint32Schema = schema.NewMessage("ReqSint32",
	schema.Sint32(1, "value"),
)

func (*ReqSint32) Schema() *schema.Message { return reqSint32Schema }
func (m *ReqSint32) IsEmpty() bool         { return m.Value == 0 }

func (m *ReqSint32) EncodeFields(e codec.Encoder) error {
	return e.Int32(reqSint32Schema.Fields()[0], m.Value)
}

func (m *ReqSint32) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.Value, err = d.Int32()
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *ReqSint32) ClearField(f *schema.Field) {
	if f.Number == 1 {
		m.Value = 0
	}
}

// Leaf is a small message used as a submessage.
type Leaf struct {
	Name  string
	Count int64
}

var leafSchema = schema.NewMessage("Leaf",
	schema.String(1, "name"),
	schema.Int64(2, "count"),
)

func (*Leaf) Schema() *schema.Message { return leafSchema }
func (m *Leaf) IsEmpty() bool         { return m.Name == "" && m.Count == 0 }

func (m *Leaf) EncodeFields(e codec.Encoder) error {
	f := leafSchema.Fields()
	if err := e.String(f[0], m.Name); err != nil {
		return err
	}
	return e.Int64(f[1], m.Count)
}

func (m *Leaf) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.Name, err = d.String()
	case 2:
		m.Count, err = d.Int64()
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *Leaf) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.Name = ""
	case 2:
		m.Count = 0
	}
}

// Wrapper holds submessages by value and by pointer.
type Wrapper struct {
	Leaf  Leaf
	Extra *Leaf
}

var wrapperSchema = schema.NewMessage("Wrapper",
	schema.MessageOf(1, "leaf", func() *schema.Message { return leafSchema }),
	schema.MessageOf(2, "extra", func() *schema.Message { return leafSchema }).Optional(),
)

func (*Wrapper) Schema() *schema.Message { return wrapperSchema }
func (m *Wrapper) IsEmpty() bool         { return m.Leaf.IsEmpty() && m.Extra == nil }

func (m *Wrapper) EncodeFields(e codec.Encoder) error {
	f := wrapperSchema.Fields()
	if err := e.Message(f[0], &m.Leaf); err != nil {
		return err
	}
	if m.Extra != nil {
		return e.Message(f[1], m.Extra)
	}
	return nil
}

func (m *Wrapper) DecodeField(d codec.Decoder, f *schema.Field) error {
	switch f.Number {
	case 1:
		m.Leaf = Leaf{}
		return d.Message(&m.Leaf)
	case 2:
		m.Extra = new(Leaf)
		return d.Message(m.Extra)
	default:
		return codec.ErrUnknownField
	}
}

func (m *Wrapper) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.Leaf = Leaf{}
	case 2:
		m.Extra = nil
	}
}

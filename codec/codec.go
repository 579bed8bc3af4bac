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

// Package codec defines the contract between the encoding engines and the
// generated code for each message type.
//
// A generated type implements [Message]: it reports its field table, visits
// its fields for encoding, and accepts fields one at a time for decoding. The
// engines in encoding/pbwire and encoding/pbjson implement [Encoder] and
// [Decoder] for their respective formats, so the same generated code drives
// both.
package codec

import (
	"errors"

	"buf.build/go/protocodec/schema"
)

// ErrUnknownField may be returned by [Message.DecodeField] to indicate that
// the message does not want the field after all. The engine then skips the
// field's value, as it does for numbers or keys not in the table.
var ErrUnknownField = errors.New("protocodec: unknown field")

// Message is implemented by generated message types.
type Message interface {
	// Schema returns the field table for this type.
	Schema() *schema.Message

	// IsEmpty returns whether every field is absent or zero. Singular
	// submessages that are empty are not encoded.
	IsEmpty() bool

	// EncodeFields calls a method of e for every present field.
	//
	// Required fields are always passed to e; optional and pointer fields
	// only when set; repeated and map fields always, via [Encoder.List] and
	// [Encoder.Map] (which drop them if empty). For a oneof, only the active
	// alternative is passed.
	EncodeFields(e Encoder) error

	// DecodeField decodes the value of f, which is a field (or oneof
	// alternative) of this message, by calling exactly one method of d.
	//
	// A field seen more than once replaces the earlier value, except that
	// repeated and map fields accumulate.
	DecodeField(d Decoder, f *schema.Field) error

	// ClearField resets f to absent or zero.
	ClearField(f *schema.Field)
}

// Encoder writes field values. Each method takes the field being written,
// which determines its key and wire layout.
type Encoder interface {
	Bool(f *schema.Field, v bool) error
	Int32(f *schema.Field, v int32) error
	Int64(f *schema.Field, v int64) error
	Uint32(f *schema.Field, v uint32) error
	Uint64(f *schema.Field, v uint64) error
	Float32(f *schema.Field, v float32) error
	Float64(f *schema.Field, v float64) error
	String(f *schema.Field, v string) error
	Bytes(f *schema.Field, v []byte) error
	Enum(f *schema.Field, v int32) error
	Message(f *schema.Field, v Message) error

	// List writes a repeated field with n elements; elem is called once for
	// each and must call a single method of e, passing f.
	List(f *schema.Field, n int, elem func(e Encoder, i int) error) error

	// Map writes a map field with n entries; entry is called once for each,
	// and must write the key to key (passing f.Key) before writing the
	// value to value (passing f.Value).
	//
	// Entries must be visited in the same order on every call for the same
	// map, since the binary encoder walks the message twice.
	Map(f *schema.Field, n int, entry func(key, value Encoder, i int) error) error
}

// Decoder reads a single field value. The field being decoded is the one
// passed to [Message.DecodeField].
type Decoder interface {
	Bool() (bool, error)
	Int32() (int32, error)
	Int64() (int64, error)
	Uint32() (uint32, error)
	Uint64() (uint64, error)
	Float32() (float32, error)
	Float64() (float64, error)
	String() (string, error)
	Bytes() ([]byte, error)
	Enum() (int32, error)
	Message(m Message) error

	// List decodes one or more elements of a repeated field, calling elem for
	// each. elem must call a single method of d.
	List(elem func(d Decoder) error) error

	// Map decodes one or more entries of a map field. For each entry, entry
	// is called with decoders for the key and the value.
	Map(entry func(key, value Decoder) error) error
}

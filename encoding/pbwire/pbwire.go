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

// Package pbwire implements the binary wire format for [codec.Message]s.
//
// Encoding makes two passes over a message. The first counts bytes, and
// records the length of every length-delimited record (submessages, packed
// fields and map entries) in the order they are visited; the second writes
// the bytes, taking each record's length prefix from that list. Nothing is
// buffered and then copied.
package pbwire

import (
	"errors"
	"io"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/wire"
)

// DefaultMaxDepth is the default limit on message nesting.
const DefaultMaxDepth = 1000

// ErrUnstable is returned when a message does not encode the same way twice,
// such as when a map is visited in a different order on each pass.
var ErrUnstable = errors.New("protocodec: message changed while it was being encoded")

// Options configures the binary encoder and decoder.
type Options struct {
	// Delimited prefixes the message with its varint length.
	Delimited bool

	// AllowAlias lets decoded string and bytes values point into the input
	// instead of being copied. Such values are only valid for as long as the
	// input is not modified.
	AllowAlias bool

	// AllowInvalidUTF8 disables UTF-8 validation of string fields.
	AllowInvalidUTF8 bool

	// MaxDepth limits how deeply messages may nest. Zero or negative means
	// no limit.
	MaxDepth int
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Size returns the number of bytes [Append] would append for m.
func Size(m codec.Message, opts Options) (int, error) {
	s, drop := states.Get()
	defer drop()
	return s.plan(m, opts)
}

// Append appends the encoding of m to b.
func Append(b []byte, m codec.Message, opts Options) ([]byte, error) {
	s, drop := states.Get()
	defer drop()

	n, err := s.plan(m, opts)
	if err != nil {
		return b, err
	}

	sink := wire.NewAppender(b)
	sink.Grow(n)
	if err := s.emit(sink, m); err != nil {
		return b, err
	}
	return sink.Bytes(), nil
}

// WriteTo writes the encoding of m to w, returning the number of bytes
// written. Errors from w are returned as-is.
func WriteTo(w io.Writer, m codec.Message, opts Options) (int, error) {
	s, drop := states.Get()
	defer drop()

	if _, err := s.plan(m, opts); err != nil {
		return 0, err
	}

	sink := wire.NewWriter(w)
	err := s.emit(sink, m)
	if ferr := sink.Flush(); err == nil {
		err = ferr
	}
	return sink.Written(), err
}

// Unmarshal decodes b into m.
func Unmarshal(b []byte, m codec.Message, opts Options) error {
	r := wire.NewReader(b)
	return decode(&r, m, opts)
}

// UnmarshalFrom decodes a message from r into m.
//
// Without [Options.Delimited], this reads r to the end. With it, this reads
// exactly one length-prefixed message, so that it can be called repeatedly
// to read consecutive messages; [io.EOF] is returned once r is exhausted. For
// that to work, r should implement [io.ByteReader], since otherwise it is
// wrapped in a buffer that reads ahead.
func UnmarshalFrom(r io.Reader, m codec.Message, opts Options) error {
	wr := wire.NewStreamReader(r)
	return decode(&wr, m, opts)
}

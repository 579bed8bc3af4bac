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

package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"slices"

	"buf.build/go/protocodec/internal/errs"
)

// chunkSize bounds how much memory is allocated at once when a
// length-delimited value is read from a stream, so that a bogus length
// prefix cannot force a huge allocation before the data actually arrives.
const chunkSize = 64 << 10

// Source is the streaming input a [Reader] can pull from.
type Source interface {
	io.Reader
	io.ByteReader
}

// Reader is a cursor over binary wire format data.
//
// A Reader is either a window over a byte slice, or a pull-based cursor over
// an [io.Reader]. Bounded sub-readers, created with [Reader.Sub], are always
// windows: their contents are read into memory first when the parent is a
// stream.
//
// Reader is a small value type; copying it makes an independent cursor over
// the same window.
type Reader struct {
	buf  []byte
	pos  int
	base int // Offset of buf[0] in the outermost input.

	src *stream
}

type stream struct {
	r   Source
	off int
}

// NewReader returns a reader over the given bytes.
func NewReader(b []byte) Reader {
	return Reader{buf: b}
}

// NewStreamReader returns a reader that pulls from r.
//
// If r does not implement [io.ByteReader], it is wrapped in a [bufio.Reader],
// which may read past the end of the message.
func NewStreamReader(r io.Reader) Reader {
	src, ok := r.(Source)
	if !ok {
		src = bufio.NewReader(r)
	}
	return Reader{src: &stream{r: src}}
}

// Offset returns the offset of the cursor within the outermost input.
func (r *Reader) Offset() int {
	if r.src != nil {
		return r.src.off
	}
	return r.base + r.pos
}

// Len returns the number of bytes left in the window, or -1 for a stream.
func (r *Reader) Len() int {
	if r.src != nil {
		return -1
	}
	return len(r.buf) - r.pos
}

// Done returns whether this is a window with no bytes left in it.
func (r *Reader) Done() bool {
	return r.src == nil && r.pos == len(r.buf)
}

// Stream returns whether this reader pulls from an [io.Reader].
func (r *Reader) Stream() bool {
	return r.src != nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.src != nil {
		c, err := r.src.r.ReadByte()
		if err != nil {
			return 0, r.src.fail(err)
		}
		r.src.off++
		return c, nil
	}

	if r.pos >= len(r.buf) {
		return 0, r.fail(errs.UnexpectedEOF)
	}
	c := r.buf[r.pos]
	r.pos++
	return c, nil
}

// ReadN reads exactly n bytes.
//
// For a window, the result aliases the input and has its capacity clipped.
// For a stream, the result is freshly allocated.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if r.src != nil {
		return r.src.readN(n)
	}

	if n < 0 || n > r.Len() {
		r.pos = len(r.buf)
		return nil, r.fail(errs.UnexpectedEOF)
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadVarint reads a varint.
func (r *Reader) ReadVarint() (uint64, error) {
	if r.src != nil {
		c, err := r.src.r.ReadByte()
		if err != nil {
			return 0, r.src.fail(err)
		}
		r.src.off++
		return r.src.varint(c)
	}

	v, n, code := consumeVarint(r.buf[r.pos:])
	if code != errs.Ok {
		r.pos += n
		return 0, r.fail(code)
	}
	r.pos += n
	return v, nil
}

// ReadFixed32 reads four little-endian bytes.
func (r *Reader) ReadFixed32() (uint32, error) {
	b, err := r.ReadN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFixed64 reads eight little-endian bytes.
func (r *Reader) ReadFixed64() (uint64, error) {
	b, err := r.ReadN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadLength reads the varint length prefix of a length-delimited value.
//
// For a window, the length is checked against the bytes remaining.
func (r *Reader) ReadLength() (int, error) {
	start := r.Offset()
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}

	if r.src != nil {
		if v > math.MaxInt32 {
			return 0, errs.New(errs.IntegerOverflow, start)
		}
		return int(v), nil
	}

	if v > uint64(r.Len()) {
		return 0, errs.New(errs.UnexpectedEOF, len(r.buf)+r.base)
	}
	return int(v), nil
}

// ReadBytes reads a length-delimited value.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	return r.ReadN(n)
}

// ReadTag reads a tag.
//
// Returns [io.EOF], unwrapped, if and only if the reader is exactly at the
// end of its input.
func (r *Reader) ReadTag() (Number, Type, error) {
	start := r.Offset()

	var (
		tag uint64
		err error
	)
	switch {
	case r.src != nil:
		c, rerr := r.src.r.ReadByte()
		if errors.Is(rerr, io.EOF) {
			return 0, 0, io.EOF
		} else if rerr != nil {
			return 0, 0, rerr
		}
		r.src.off++
		tag, err = r.src.varint(c)

	case r.Done():
		return 0, 0, io.EOF

	default:
		tag, err = r.ReadVarint()
	}
	if err != nil {
		return 0, 0, err
	}

	n, t := DecodeTag(tag)
	if n < MinValidNumber {
		return 0, 0, errs.New(errs.InvalidField, start)
	}
	return n, t, nil
}

// Sub carves a window of exactly n bytes out of r, advancing r past it.
func (r *Reader) Sub(n int) (Reader, error) {
	if r.src != nil {
		base := r.src.off
		b, err := r.src.readN(n)
		if err != nil {
			return Reader{}, err
		}
		return Reader{buf: b, base: base}, nil
	}

	if n < 0 || n > r.Len() {
		return Reader{}, errs.New(errs.UnexpectedEOF, len(r.buf)+r.base)
	}
	sub := Reader{buf: r.buf[r.pos : r.pos+n], base: r.base + r.pos}
	r.pos += n
	return sub, nil
}

// SubPrefixed reads a length prefix and then calls [Reader.Sub] with it.
func (r *Reader) SubPrefixed() (Reader, error) {
	n, err := r.ReadLength()
	if err != nil {
		return Reader{}, err
	}
	return r.Sub(n)
}

// Finish checks that a window was consumed exactly.
func (r *Reader) Finish() error {
	if r.src == nil && !r.Done() {
		return r.fail(errs.TrailingData)
	}
	return nil
}

// Skip discards one value of the given wire type.
func (r *Reader) Skip(t Type) error {
	switch t {
	case VarintType:
		_, err := r.ReadVarint()
		return err
	case Fixed32Type:
		return r.discard(4)
	case Fixed64Type:
		return r.discard(8)
	case BytesType:
		n, err := r.ReadLength()
		if err != nil {
			return err
		}
		return r.discard(n)
	default:
		return r.fail(errs.ReservedWireType)
	}
}

func (r *Reader) discard(n int) error {
	if r.src == nil {
		_, err := r.ReadN(n)
		return err
	}

	m, err := io.CopyN(io.Discard, r.src.r, int64(n))
	r.src.off += int(m)
	if err != nil {
		return r.src.fail(err)
	}
	return nil
}

func (r *Reader) fail(code errs.Code) error {
	return errs.New(code, r.Offset())
}

// fail converts an error from the underlying reader. Running out of input is
// reported as [errs.UnexpectedEOF]; anything else is returned as-is.
func (s *stream) fail(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.New(errs.UnexpectedEOF, s.off)
	}
	return err
}

// varint finishes decoding a varint whose first byte has already been read.
func (s *stream) varint(c byte) (uint64, error) {
	v := uint64(c & 0x7f)
	for i := 1; c >= 0x80; i++ {
		if i == MaxVarintLen {
			return 0, errs.New(errs.InvalidVarint, s.off-1)
		}

		var err error
		c, err = s.r.ReadByte()
		if err != nil {
			return 0, s.fail(err)
		}
		s.off++

		if i == MaxVarintLen-1 && c > 1 {
			return 0, errs.New(errs.InvalidVarint, s.off-1)
		}
		v |= uint64(c&0x7f) << (7 * i)
	}
	return v, nil
}

func (s *stream) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.New(errs.UnexpectedEOF, s.off)
	}

	var out []byte
	for len(out) < n {
		k := min(n-len(out), chunkSize)
		out = slices.Grow(out, k)
		m, err := io.ReadFull(s.r, out[len(out):len(out)+k])
		out = out[:len(out)+m]
		s.off += m
		if err != nil {
			return nil, s.fail(err)
		}
	}
	return out, nil
}

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

import "io"

// flushThreshold is how much a writer-backed sink buffers before it hands
// bytes to the underlying [io.Writer].
const flushThreshold = 4 << 10

// Sink is the output of the binary encoder.
//
// A sink either counts bytes without storing them (a dry run), appends them to
// a slice, or forwards them to an [io.Writer]. All three expose the same
// methods, so the same encoding code path can run against any of them.
type Sink struct {
	buf []byte
	n   int // Total bytes emitted, including any already flushed.

	dry     bool
	w       io.Writer
	written int
	err     error
}

// NewCounter returns a sink that only counts bytes.
func NewCounter() *Sink {
	return &Sink{dry: true}
}

// NewAppender returns a sink that appends to b.
func NewAppender(b []byte) *Sink {
	return &Sink{buf: b}
}

// NewWriter returns a sink that forwards to w. [Sink.Flush] must be called
// once encoding is done.
func NewWriter(w io.Writer) *Sink {
	return &Sink{w: w, buf: make([]byte, 0, flushThreshold)}
}

// Dry returns whether this sink only counts bytes.
func (s *Sink) Dry() bool { return s.dry }

// Len returns the number of bytes emitted so far.
func (s *Sink) Len() int { return s.n }

// Bytes returns the appended bytes of an appending sink.
func (s *Sink) Bytes() []byte { return s.buf }

// Written returns the number of bytes a writer-backed sink has successfully
// handed to its writer.
func (s *Sink) Written() int { return s.written }

// Err returns the first error returned by the underlying writer, if any.
func (s *Sink) Err() error { return s.err }

// Grow makes room for n more bytes, for callers that know the final size.
func (s *Sink) Grow(n int) {
	if s.dry || s.w != nil || cap(s.buf)-len(s.buf) >= n {
		return
	}
	buf := make([]byte, len(s.buf), len(s.buf)+n)
	copy(buf, s.buf)
	s.buf = buf
}

// PutByte emits one byte.
func (s *Sink) PutByte(c byte) {
	s.n++
	if !s.dry {
		s.buf = append(s.buf, c)
		s.spill()
	}
}

// PutVarint emits v as a varint.
func (s *Sink) PutVarint(v uint64) {
	if s.dry {
		s.n += SizeVarint(v)
		return
	}
	n := len(s.buf)
	s.buf = AppendVarint(s.buf, v)
	s.n += len(s.buf) - n
	s.spill()
}

// PutTag emits a tag.
func (s *Sink) PutTag(n Number, t Type) {
	s.PutVarint(EncodeTag(n, t))
}

// PutFixed32 emits four little-endian bytes.
func (s *Sink) PutFixed32(v uint32) {
	s.n += 4
	if !s.dry {
		s.buf = AppendFixed32(s.buf, v)
		s.spill()
	}
}

// PutFixed64 emits eight little-endian bytes.
func (s *Sink) PutFixed64(v uint64) {
	s.n += 8
	if !s.dry {
		s.buf = AppendFixed64(s.buf, v)
		s.spill()
	}
}

// PutBytes emits b verbatim.
func (s *Sink) PutBytes(b []byte) {
	s.n += len(b)
	if !s.dry {
		s.buf = append(s.buf, b...)
		s.spill()
	}
}

// PutString emits str verbatim.
func (s *Sink) PutString(str string) {
	s.n += len(str)
	if !s.dry {
		s.buf = append(s.buf, str...)
		s.spill()
	}
}

// Flush writes out any buffered bytes of a writer-backed sink, and returns the
// first write error encountered, unmodified.
func (s *Sink) Flush() error {
	if s.w == nil {
		return nil
	}
	if s.err == nil && len(s.buf) > 0 {
		var n int
		n, s.err = s.w.Write(s.buf)
		s.written += n
	}
	s.buf = s.buf[:0]
	return s.err
}

func (s *Sink) spill() {
	if s.w != nil && len(s.buf) >= flushThreshold {
		_ = s.Flush()
	}
}

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

package protocodec

import (
	"buf.build/go/protocodec/encoding/pbjson"
	"buf.build/go/protocodec/encoding/pbwire"
)

// Option is a configuration setting for the functions in this package. Options
// that do not apply to an operation are ignored.
type Option struct{ apply func(*config) }

type config struct {
	wire pbwire.Options
	json pbjson.Options
}

func newConfig(opts []Option) config {
	c := config{
		wire: pbwire.NewOptions(),
		json: pbjson.NewOptions(),
	}
	for _, opt := range opts {
		opt.apply(&c)
	}
	return c
}

// WithDelimited sets whether binary messages are prefixed with their length.
//
// This allows several messages to be written to, and read back from, the same
// stream; see [UnmarshalFrom].
func WithDelimited(delimited bool) Option {
	return Option{func(c *config) { c.wire.Delimited = delimited }}
}

// WithAllowAlias sets whether decoded string and bytes fields may point into
// the input buffer. This avoids a copy per field, but the input must not be
// modified for as long as the message is in use.
//
// Has no effect when decoding from an [io.Reader], or from JSON.
func WithAllowAlias(allow bool) Option {
	return Option{func(c *config) { c.wire.AllowAlias = allow }}
}

// WithAllowInvalidUTF8 sets whether string fields may contain invalid UTF-8.
func WithAllowInvalidUTF8(allow bool) Option {
	return Option{func(c *config) {
		c.wire.AllowInvalidUTF8 = allow
		c.json.AllowInvalidUTF8 = allow
	}}
}

// WithMaxDepth sets the maximum nesting depth of messages. Zero means no
// limit.
//
// Removing the limit lets untrusted input exhaust the stack.
func WithMaxDepth(depth int) Option {
	return Option{func(c *config) {
		c.wire.MaxDepth = depth
		c.json.MaxDepth = depth
	}}
}

// WithIndent sets the indentation of JSON output. The default is to write
// everything on one line.
func WithIndent(indent string) Option {
	return Option{func(c *config) { c.json.Indent = indent }}
}

// WithUseProtoNames sets whether JSON output uses the declared names of fields
// rather than their JSON names. Both are accepted when decoding.
func WithUseProtoNames(use bool) Option {
	return Option{func(c *config) { c.json.UseProtoNames = use }}
}

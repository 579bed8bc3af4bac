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

package schema

import (
	"errors"
	"fmt"

	"buf.build/go/protocodec/wire"
)

// Message is the field table of a message type.
type Message struct {
	name   string
	fields []*Field

	// Field lookup by number. Small, mostly-contiguous numberings use a
	// dense table; anything else goes into the map.
	dense  []*Field
	sparse map[wire.Number]*Field

	// Field lookup by JSON key. The hash is only an index: every candidate
	// is confirmed by comparing the key against its names.
	byHash map[uint32][]*Field
}

// NewMessage is like [Build], but panics on error. It is intended for use
// in package-level variables of generated code.
func NewMessage(name string, fields ...*Field) *Message {
	m, err := Build(name, fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Build validates fields and returns a new message table containing them.
//
// Build takes ownership of fields, filling in derived JSON names and oneof
// back-pointers; the same *Field must not be passed to Build twice.
func Build(name string, fields ...*Field) (*Message, error) {
	if name == "" {
		return nil, errors.New("schema: message has no name")
	}

	m := &Message{
		name:   name,
		fields: fields,
		byHash: make(map[uint32][]*Field),
	}

	var (
		addressable []*Field
		maxNumber   wire.Number
	)
	for i, f := range fields {
		if err := f.check(); err != nil {
			return nil, fmt.Errorf("schema: %s: %w", name, err)
		}
		f.Index = i
		if f.Kind != OneofKind {
			addressable = append(addressable, f)
			continue
		}
		for j, alt := range f.Alternatives {
			alt.Oneof = f
			alt.Index = j
			addressable = append(addressable, alt)
		}
	}

	byNumber := make(map[wire.Number]*Field, len(addressable))
	byKey := make(map[string]*Field, 2*len(addressable))
	for _, f := range addressable {
		if f.JSONName == "" {
			f.JSONName = jsonName(f.Name)
		}

		if prev := byNumber[f.Number]; prev != nil {
			return nil, fmt.Errorf("schema: %s: %s and %s have the same number %d",
				name, prev.Name, f.Name, f.Number)
		}
		byNumber[f.Number] = f
		maxNumber = max(maxNumber, f.Number)

		for _, key := range []string{f.Name, f.JSONName} {
			if prev := byKey[key]; prev != nil && prev != f {
				return nil, fmt.Errorf("schema: %s: %s and %s both use the name %q",
					name, prev.Name, f.Name, key)
			}
			if byKey[key] == nil {
				byKey[key] = f
				h := hash(key)
				m.byHash[h] = append(m.byHash[h], f)
			}
		}
	}

	if int(maxNumber) <= 2*len(addressable)+32 {
		m.dense = make([]*Field, maxNumber+1)
		for n, f := range byNumber {
			m.dense[n] = f
		}
	} else {
		m.sparse = byNumber
	}

	return m, nil
}

// Name returns the name of this message type.
func (m *Message) Name() string { return m.name }

// Fields returns the fields of this message in declaration order. Oneofs
// appear once, as a field of kind [OneofKind].
func (m *Message) Fields() []*Field { return m.fields }

// ByNumber returns the field (or oneof alternative) with the given number.
func (m *Message) ByNumber(n wire.Number) *Field {
	if m.dense != nil {
		if n < 0 || int(n) >= len(m.dense) {
			return nil
		}
		return m.dense[n]
	}
	return m.sparse[n]
}

// ByJSONName returns the field (or oneof alternative) whose declared name or
// JSON name is exactly key.
func (m *Message) ByJSONName(key []byte) *Field {
	for _, f := range m.byHash[hash(key)] {
		if string(key) == f.Name || string(key) == f.JSONName {
			return f
		}
	}
	return nil
}

// String implements [fmt.Stringer].
func (m *Message) String() string {
	return m.name
}

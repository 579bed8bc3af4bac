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
	"fmt"
	"slices"
)

// EnumValue is a single named value of an enum.
type EnumValue struct {
	Name   string
	Number int32
}

// Enum is the value table of an enum type.
//
// Values with duplicate numbers (aliases) are permitted; the first name
// declared for a number is its canonical name.
type Enum struct {
	name     string
	values   []EnumValue
	byName   map[string]int32
	byNumber map[int32]string
}

// NewEnum returns a new enum table. It panics if two values share a name.
func NewEnum(name string, values ...EnumValue) *Enum {
	e := &Enum{
		name:     name,
		values:   slices.Clone(values),
		byName:   make(map[string]int32, len(values)),
		byNumber: make(map[int32]string, len(values)),
	}
	for _, v := range values {
		if _, ok := e.byName[v.Name]; ok || v.Name == "" {
			panic(fmt.Sprintf("schema: enum %s: invalid or duplicate value name %q", name, v.Name))
		}
		e.byName[v.Name] = v.Number
		if _, ok := e.byNumber[v.Number]; !ok {
			e.byNumber[v.Number] = v.Name
		}
	}
	return e
}

// Name returns the name of this enum type.
func (e *Enum) Name() string { return e.name }

// Values returns this enum's values in declaration order.
func (e *Enum) Values() []EnumValue { return e.values }

// ByName looks up a value by name.
func (e *Enum) ByName(name []byte) (int32, bool) {
	v, ok := e.byName[string(name)]
	return v, ok
}

// NameOf returns the canonical name of a value.
func (e *Enum) NameOf(v int32) (string, bool) {
	name, ok := e.byNumber[v]
	return name, ok
}

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
	"maps"
	"slices"

	"buf.build/go/protocodec/codec"
)

var types = map[string]func() codec.Message{
	"ReqInt32":  func() codec.Message { return new(ReqInt32) },
	"ReqSint32": func() codec.Message { return new(ReqSint32) },
	"Leaf":      func() codec.Message { return new(Leaf) },
	"Wrapper":   func() codec.Message { return new(Wrapper) },
	"Scalars":   func() codec.Message { return new(Scalars) },
	"Repeated":  func() codec.Message { return new(Repeated) },
	"Maps":      func() codec.Message { return new(Maps) },
	"Choice":    func() codec.Message { return new(Choice) },
	"Node":      func() codec.Message { return new(Node) },
	"Flags":     func() codec.Message { return new(Flags) },
	"Collide":   func() codec.Message { return new(Collide) },
	"Sparse":    func() codec.Message { return new(Sparse) },
}

// New returns a new, empty message of the named type, or nil if there is no
// such type.
func New(name string) codec.Message {
	if f := types[name]; f != nil {
		return f()
	}
	return nil
}

// Names returns the names of all of the types in this package, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(types))
}

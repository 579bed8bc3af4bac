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

// Package xsync contains typed wrappers over package sync.
package xsync

import "sync"

// Map is a [sync.Map] with typed keys and values.
type Map[K comparable, V any] struct {
	impl sync.Map
}

// Load forwards to [sync.Map.Load].
func (m *Map[K, V]) Load(k K) (V, bool) {
	v, ok := m.impl.Load(k)
	if !ok {
		var z V
		return z, false
	}
	return v.(V), true //nolint:errcheck
}

// LoadOrStore returns the value for k if present. Otherwise, it stores the
// result of make and returns that.
//
// make may be called even if another goroutine wins the race to store a
// value; only one value is ever stored.
func (m *Map[K, V]) LoadOrStore(k K, make func() V) (actual V, loaded bool) {
	if v, ok := m.Load(k); ok {
		return v, true
	}
	v, loaded := m.impl.LoadOrStore(k, make())
	return v.(V), loaded //nolint:errcheck
}

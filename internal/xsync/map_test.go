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

package xsync_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"buf.build/go/protocodec/internal/xsync"
)

func TestMap(t *testing.T) {
	t.Parallel()

	var m xsync.Map[string, *int]
	_, ok := m.Load("x")
	assert.False(t, ok)

	var wg sync.WaitGroup
	got := make([]*int, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = m.LoadOrStore("x", func() *int { return &i })
		}()
	}
	wg.Wait()

	// Everyone sees the same value.
	for _, p := range got {
		assert.Same(t, got[0], p)
	}
	v, ok := m.Load("x")
	assert.True(t, ok)
	assert.Same(t, got[0], v)
}

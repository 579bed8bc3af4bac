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

package bitfield_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"buf.build/go/protocodec/internal/bitfield"
)

func TestSigned(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    int64
		bits int
		ok   bool
	}{
		{0, 1, true},
		{-1, 1, true},
		{1, 1, false},
		{7, 4, true},
		{8, 4, false},
		{-8, 4, true},
		{-9, 4, false},
		{math.MaxInt32, 32, true},
		{math.MaxInt32 + 1, 32, false},
		{math.MinInt64, 64, true},
		{math.MaxInt64, 0, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, bitfield.Signed(tt.v, tt.bits), "%d in %d bits", tt.v, tt.bits)
	}
}

func TestUnsigned(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    uint64
		bits int
		ok   bool
	}{
		{0, 1, true},
		{1, 1, true},
		{2, 1, false},
		{15, 4, true},
		{16, 4, false},
		{math.MaxUint32, 32, true},
		{math.MaxUint32 + 1, 32, false},
		{math.MaxUint64, 64, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, bitfield.Unsigned(tt.v, tt.bits), "%d in %d bits", tt.v, tt.bits)
	}
}

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

package codec_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/encoding/pbwire"
	"buf.build/go/protocodec/internal/testpb"
)

func TestCompareBool(t *testing.T) {
	t.Parallel()

	s := []bool{true, false, true, false}
	slices.SortFunc(s, codec.CompareBool)
	assert.Equal(t, []bool{false, false, true, true}, s)
	assert.Equal(t, 0, codec.CompareBool(true, true))
}

func TestMapOrder(t *testing.T) {
	t.Parallel()

	// Entries come out sorted by key, whatever order the map iterates in.
	msg := &testpb.Maps{
		IntMap:  map[int32]int32{3: 1, -1: 2, 2: 3},
		BoolMap: map[bool][]byte{true: {1}, false: {0}},
	}
	b, err := pbwire.Append(nil, msg, pbwire.NewOptions())
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x0a, 0x0d, 0x08, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01, 0x10, 0x02,
		0x0a, 0x04, 0x08, 0x02, 0x10, 0x03,
		0x0a, 0x04, 0x08, 0x03, 0x10, 0x01,
		0x1a, 0x05, 0x08, 0x00, 0x12, 0x01, 0x00,
		0x1a, 0x05, 0x08, 0x01, 0x12, 0x01, 0x01,
	}, b)
}

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	// A later entry for the same key wins.
	got := new(testpb.Maps)
	in := []byte{0x0a, 0x04, 0x08, 0x01, 0x10, 0x02, 0x0a, 0x04, 0x08, 0x01, 0x10, 0x07}
	require.NoError(t, pbwire.Unmarshal(in, got, pbwire.NewOptions()))
	assert.Equal(t, map[int32]int32{1: 7}, got.IntMap)
}

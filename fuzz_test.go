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

package protocodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/protocodec"
	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/internal/testpb"
)

// fuzzType picks a message type from the first byte of the fuzz input.
func fuzzType(sel uint8) codec.Message {
	names := testpb.Names()
	return testpb.New(names[int(sel)%len(names)])
}

func fuzzSeeds(f *testing.F, encode func(codec.Message) ([]byte, error)) {
	names := testpb.Names()
	for _, sample := range testpb.Samples() {
		b, err := encode(sample.Message)
		require.NoError(f, err)
		for i, name := range names {
			if name == sample.Message.Schema().Name() {
				f.Add(uint8(i), b)
			}
		}
	}
}

// FuzzBinary checks that anything we accept survives re-encoding.
func FuzzBinary(f *testing.F) {
	fuzzSeeds(f, func(m codec.Message) ([]byte, error) { return protocodec.Marshal(m) })

	f.Fuzz(func(t *testing.T, sel uint8, data []byte) {
		m := fuzzType(sel)
		if protocodec.Unmarshal(data, m) != nil {
			return
		}

		b, err := protocodec.Marshal(m)
		require.NoError(t, err)
		again := fuzzType(sel)
		require.NoError(t, protocodec.Unmarshal(b, again))

		// JSON sorts map keys, so it is a stable rendering to compare.
		want, err := protocodec.MarshalJSON(m)
		require.NoError(t, err)
		got, err := protocodec.MarshalJSON(again)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	})
}

// FuzzJSON checks that anything we accept encodes to JSON that decodes to
// the same value.
func FuzzJSON(f *testing.F) {
	fuzzSeeds(f, func(m codec.Message) ([]byte, error) { return protocodec.MarshalJSON(m) })
	f.Add(uint8(0), []byte(`{"unknown":[{"a":null},1e5,"é"]}`))

	f.Fuzz(func(t *testing.T, sel uint8, data []byte) {
		m := fuzzType(sel)
		if protocodec.UnmarshalJSON(data, m) != nil {
			return
		}

		want, err := protocodec.MarshalJSON(m)
		require.NoError(t, err)
		again := fuzzType(sel)
		require.NoError(t, protocodec.UnmarshalJSON(want, again), "%s", want)
		got, err := protocodec.MarshalJSON(again)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))

		_, err = protocodec.Marshal(again)
		require.NoError(t, err)
	})
}

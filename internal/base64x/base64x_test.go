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

package base64x_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"buf.build/go/protocodec/internal/base64x"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, out string }{
		{"", ""},
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foob", "Zm9vYg=="},
		{"fooba", "Zm9vYmE="},
		{"foobar", "Zm9vYmFy"},
		{"\xff\xfe\xfd", "//79"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, string(base64x.AppendEncode(nil, []byte(tt.in))))
		assert.Equal(t, len(tt.out), base64x.EncodedLen(len(tt.in)))

		got, ok := base64x.AppendDecode(nil, []byte(tt.out))
		assert.True(t, ok, "%q", tt.out)
		assert.Equal(t, tt.in, string(got))
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"Z", "Zg", "Zg=", "Z===", "====", "=Zg=",
		"Zg=a", "Zg==Zg==", "Zm9v\nYmFy", "Zm9v YmFy", "Zm9-", "Zm9_",
	} {
		_, ok := base64x.AppendDecode(nil, []byte(in))
		assert.False(t, ok, "%q", in)
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte("Zm9vYmFy"))
	f.Add([]byte("Zg=="))
	f.Fuzz(func(t *testing.T, in []byte) {
		got, ok := base64x.AppendDecode(nil, in)
		if !ok {
			return
		}
		// Anything we accept must be accepted by the standard library too.
		want, err := base64.StdEncoding.DecodeString(string(in))
		assert.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	})
}

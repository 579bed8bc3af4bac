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

package pbwire_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/encoding/pbwire"
	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/testpb"
	"buf.build/go/protocodec/schema"
)

func unhex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func marshal(t testing.TB, m codec.Message, opts pbwire.Options) []byte {
	t.Helper()
	b, err := pbwire.Append(nil, m, opts)
	require.NoError(t, err)
	return b
}

func TestVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  codec.Message
		want string
	}{
		{"int32", &testpb.ReqInt32{Value: -2}, "08 fe ff ff ff ff ff ff ff ff 01"},
		{"sint32", &testpb.ReqSint32{Value: -2}, "08 03"},
		{"int32-zero", &testpb.ReqInt32{}, "08 00"},
		{"packed", &testpb.Repeated{PackedInt32: []int32{0x42, 3}}, "0a 02 42 03"},
		{"expanded", &testpb.Repeated{ExpandedInt32: []int32{0x42, 3}}, "10 42 10 03"},
		{"map", &testpb.Maps{IntMap: map[int32]int32{1: 2}}, "0a 04 08 01 10 02"},
		{"map-sorted", &testpb.Maps{IntMap: map[int32]int32{2: 0, 1: 0}}, "0a 04 08 01 10 00 0a 04 08 02 10 00"},
		{"empty-submessage", &testpb.Wrapper{Extra: &testpb.Leaf{}}, ""},
		{"submessage", &testpb.Wrapper{Leaf: testpb.Leaf{Count: 1}}, "0a 04 0a 00 10 01"},
		{"oneof-empty-leaf", &testpb.Choice{Kind: &testpb.Choice_Leaf{Leaf: &testpb.Leaf{}}}, "1a 04 0a 00 10 00 22 00"},
		{"flags", &testpb.Flags{Small: -1, Mask: 5, Wide: 1}, "08 ff ff ff ff ff ff ff ff ff 01 10 05 19 01 00 00 00 00 00 00 00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := unhex(t, tt.want)
			got := marshal(t, tt.msg, pbwire.NewOptions())
			assert.Equal(t, hex.EncodeToString(want), hex.EncodeToString(got))

			n, err := pbwire.Size(tt.msg, pbwire.NewOptions())
			require.NoError(t, err)
			assert.Equal(t, len(want), n)
		})
	}
}

// TestLayout checks that every record is tagged with the wire type its field's
// scalar encoding calls for.
func TestLayout(t *testing.T) {
	t.Parallel()

	msgs := []codec.Message{
		&testpb.Repeated{
			PackedInt32:   []int32{1},
			ExpandedInt32: []int32{1},
			Doubles:       []float64{1},
			Sint64s:       []int64{-1},
			Bools:         []bool{true},
			Phones:        []int32{testpb.PhoneHome},
			Fixed32s:      []uint32{1, 2},
		},
		&testpb.Scalars{Fixed32: 1, Fixed64: 1, Sfixed32: -1, Sfixed64: -1, Float: 1, Double: 1, Sint32: -1},
		&testpb.Flags{Small: 1, Mask: 1, Wide: 1},
	}

	for _, msg := range msgs {
		b := marshal(t, msg, pbwire.NewOptions())
		records := 0
		for len(b) > 0 {
			n, typ, k := protowire.ConsumeTag(b)
			require.Positive(t, k)
			f := msg.Schema().ByNumber(n)
			require.NotNil(t, f, "field %d", n)
			if f.Kind.Scalar() {
				assert.Equal(t, f.ScalarEncoding().Type(), typ, "%s.%s", msg.Schema().Name(), f.Name)
				records++
			}
			b = b[k:]
			k = protowire.ConsumeFieldValue(n, typ, b)
			require.Positive(t, k)
			b = b[k:]
		}
		assert.Positive(t, records, "%s", msg.Schema().Name())
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, sample := range testpb.Samples() {
		t.Run(sample.Name, func(t *testing.T) {
			t.Parallel()

			b := marshal(t, sample.Message, pbwire.NewOptions())
			n, err := pbwire.Size(sample.Message, pbwire.NewOptions())
			require.NoError(t, err)
			assert.Equal(t, len(b), n)

			check := func(t *testing.T, got codec.Message) {
				t.Helper()
				if diff := cmp.Diff(sample.Message, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			}

			got := testpb.New(sample.Message.Schema().Name())
			require.NoError(t, pbwire.Unmarshal(b, got, pbwire.NewOptions()))
			check(t, got)

			got = testpb.New(sample.Message.Schema().Name())
			r := iotest.OneByteReader(bytes.NewReader(b))
			require.NoError(t, pbwire.UnmarshalFrom(r, got, pbwire.NewOptions()))
			check(t, got)

			buf := new(bytes.Buffer)
			written, err := pbwire.WriteTo(buf, sample.Message, pbwire.NewOptions())
			require.NoError(t, err)
			assert.Equal(t, len(b), written)
			assert.Equal(t, b, buf.Bytes())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		in   string
		code errs.Code
	}{
		{"truncated-tag", "ReqInt32", "08", errs.UnexpectedEOF},
		{"truncated-varint", "ReqInt32", "08 80", errs.UnexpectedEOF},
		{"long-varint", "ReqInt32", "08 80 80 80 80 80 80 80 80 80 80 01", errs.InvalidVarint},
		{"field-zero", "ReqInt32", "00 01", errs.InvalidField},
		{"wire-type", "ReqInt32", "0a 00", errs.WireTypeMismatch},
		{"int32-overflow", "ReqInt32", "08 80 80 80 80 80 20", errs.IntegerOverflow},
		{"uint32-overflow", "Scalars", "20 80 80 80 80 10", errs.IntegerOverflow},
		{"sint32-overflow", "ReqSint32", "08 80 80 80 80 10", errs.IntegerOverflow},
		{"bool-two", "Scalars", "08 02", errs.InvalidBool},
		{"bool-long", "Scalars", "08 81 00", errs.InvalidBool},
		{"utf8", "Scalars", "72 01 ff", errs.InvalidUTF8},
		{"bitfield-signed", "Flags", "08 08", errs.BitfieldOverflow},
		{"bitfield-unsigned", "Flags", "10 08", errs.BitfieldOverflow},
		{"bitfield-fixed", "Flags", "19 00 00 00 00 00 01 00 00", errs.BitfieldOverflow},
		{"map-no-value", "Maps", "0a 02 08 01", errs.InvalidMapEntry},
		{"map-no-key", "Maps", "0a 02 10 01", errs.InvalidMapEntry},
		{"map-empty", "Maps", "0a 00", errs.InvalidMapEntry},
		{"sub-short", "Wrapper", "0a 05 0a 00", errs.UnexpectedEOF},
		{"sub-overrun", "Wrapper", "0a 01 10 01", errs.UnexpectedEOF},
		{"unknown-group", "ReqInt32", "2b 2c", errs.ReservedWireType},
		{"unknown-reserved", "ReqInt32", "2e", errs.ReservedWireType},
		{"known-reserved", "ReqInt32", "0f", errs.WireTypeMismatch},
		{"packed-truncated", "Repeated", "0a 02 80", errs.UnexpectedEOF},
		{"fixed-short", "Scalars", "45 01 02", errs.UnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := unhex(t, tt.in)
			err := pbwire.Unmarshal(in, testpb.New(tt.msg), pbwire.NewOptions())
			assert.True(t, errs.Is(err, tt.code), "want %v, got %v", tt.code, err)

			err = pbwire.UnmarshalFrom(bytes.NewReader(in), testpb.New(tt.msg), pbwire.NewOptions())
			assert.True(t, errs.Is(err, tt.code), "stream: want %v, got %v", tt.code, err)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want codec.Message
	}{
		{"last-wins", "08 01 08 02", &testpb.ReqInt32{Value: 2}},
		{"unknown-skipped", "10 05 1d 00 00 00 00 21 00 00 00 00 00 00 00 00 2a 01 ff 08 07", &testpb.ReqInt32{Value: 7}},
		{"expanded-as-packed", "12 02 01 02", &testpb.Repeated{ExpandedInt32: []int32{1, 2}}},
		{"packed-as-expanded", "08 42 08 03", &testpb.Repeated{PackedInt32: []int32{0x42, 3}}},
		{"mixed", "08 01 0a 02 02 03 08 04", &testpb.Repeated{PackedInt32: []int32{1, 2, 3, 4}}},
		{"empty-packed", "0a 00", &testpb.Repeated{}},
		{"map-reversed", "0a 04 10 02 08 01", &testpb.Maps{IntMap: map[int32]int32{1: 2}}},
		{"map-duplicate", "0a 06 08 01 10 02 10 03", &testpb.Maps{IntMap: map[int32]int32{1: 3}}},
		{"map-unknown", "0a 06 08 01 18 09 10 02", &testpb.Maps{IntMap: map[int32]int32{1: 2}}},
		{"map-repeated-key", "0a 04 08 01 10 02 0a 04 08 01 10 05", &testpb.Maps{IntMap: map[int32]int32{1: 5}}},
		{"submessage-replaced", "12 02 10 01 12 02 10 02", &testpb.Wrapper{Extra: &testpb.Leaf{Count: 2}}},
		{"oneof-last-wins", "08 05 12 01 61", &testpb.Choice{Kind: &testpb.Choice_Text{Text: "a"}}},
		{"bitfield-min", "08 f8 ff ff ff ff ff ff ff ff 01", &testpb.Flags{Small: -8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := testpb.New(tt.want.Schema().Name())
			require.NoError(t, pbwire.Unmarshal(unhex(t, tt.in), got, pbwire.NewOptions()))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	t.Parallel()

	full := &testpb.Scalars{Int64: -9, String: "kept", Bytes: []byte("skipped"), Double: 2, OptInt32: new(int32)}
	b := marshal(t, full, pbwire.NewOptions())

	got := new(testpb.Sparse)
	require.NoError(t, pbwire.Unmarshal(b, got, pbwire.NewOptions()))
	assert.Equal(t, &testpb.Sparse{Int64: -9, String: "kept"}, got)
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	_, err := pbwire.Size(&testpb.Flags{Small: 8}, pbwire.NewOptions())
	assert.True(t, errs.Is(err, errs.BitfieldOverflow), "%v", err)

	_, err = pbwire.Append(nil, &testpb.Flags{Mask: 8}, pbwire.NewOptions())
	assert.True(t, errs.Is(err, errs.BitfieldOverflow), "%v", err)

	_, err = pbwire.Append(nil, &testpb.Leaf{Name: "\xff"}, pbwire.NewOptions())
	assert.True(t, errs.Is(err, errs.InvalidUTF8), "%v", err)

	opts := pbwire.NewOptions()
	opts.AllowInvalidUTF8 = true
	b, err := pbwire.Append(nil, &testpb.Leaf{Name: "\xff"}, opts)
	require.NoError(t, err)

	leaf := new(testpb.Leaf)
	err = pbwire.Unmarshal(b, leaf, pbwire.NewOptions())
	assert.True(t, errs.Is(err, errs.InvalidUTF8), "%v", err)
	require.NoError(t, pbwire.Unmarshal(b, leaf, opts))
	assert.Equal(t, "\xff", leaf.Name)
}

func TestDepth(t *testing.T) {
	t.Parallel()

	deep := testpb.Chain(1500)
	_, err := pbwire.Size(deep, pbwire.NewOptions())
	assert.True(t, errs.Is(err, errs.RecursionDepth), "%v", err)

	unlimited := pbwire.Options{MaxDepth: 0}
	b := marshal(t, deep, unlimited)

	err = pbwire.Unmarshal(b, new(testpb.Node), pbwire.NewOptions())
	assert.True(t, errs.Is(err, errs.RecursionDepth), "%v", err)

	got := new(testpb.Node)
	require.NoError(t, pbwire.Unmarshal(b, got, pbwire.Options{MaxDepth: 2000}))
	assert.Equal(t, deep, got)
}

func TestDelimited(t *testing.T) {
	t.Parallel()

	opts := pbwire.NewOptions()
	opts.Delimited = true

	msgs := []*testpb.Leaf{{Name: "one"}, {Count: 2}, {}, {Name: "four", Count: 4}}
	stream := new(bytes.Buffer)
	for _, m := range msgs {
		_, err := pbwire.WriteTo(stream, m, opts)
		require.NoError(t, err)
	}

	first := marshal(t, msgs[0], opts)
	assert.Equal(t, unhex(t, "07 0a 03 6f 6e 65 10 00"), first)

	r := bytes.NewReader(stream.Bytes())
	var got []*testpb.Leaf
	for {
		m := new(testpb.Leaf)
		err := pbwire.UnmarshalFrom(r, m, opts)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, m)
	}
	assert.Equal(t, msgs, got)

	// A slice must contain exactly one message.
	err := pbwire.Unmarshal(append(first, 0), new(testpb.Leaf), opts)
	assert.True(t, errs.Is(err, errs.TrailingData), "%v", err)

	// A truncated message in a stream is not a clean end.
	err = pbwire.UnmarshalFrom(bytes.NewReader(first[:3]), new(testpb.Leaf), opts)
	assert.True(t, errs.Is(err, errs.UnexpectedEOF), "%v", err)
}

func TestAlias(t *testing.T) {
	t.Parallel()

	b := marshal(t, &testpb.Scalars{String: "abc", Bytes: []byte("xyz")}, pbwire.NewOptions())

	copied := new(testpb.Scalars)
	require.NoError(t, pbwire.Unmarshal(b, copied, pbwire.NewOptions()))

	opts := pbwire.NewOptions()
	opts.AllowAlias = true
	aliased := new(testpb.Scalars)
	require.NoError(t, pbwire.Unmarshal(b, aliased, opts))

	for i := range b {
		b[i] = 'z'
	}
	assert.Equal(t, "abc", copied.String)
	assert.Equal(t, []byte("xyz"), copied.Bytes)
	assert.Equal(t, "zzz", aliased.String)
	assert.Equal(t, []byte("zzz"), aliased.Bytes)
}

func TestWriterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	big := &testpb.Repeated{Strings: make([]string, 1000)}
	for i := range big.Strings {
		big.Strings[i] = strings.Repeat("x", 100)
	}

	n, err := pbwire.WriteTo(failWriter{boom}, big, pbwire.NewOptions())
	assert.Equal(t, boom, err)
	assert.Zero(t, n)
}

func TestHookErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := pbwire.Append(nil, &hook{err: boom}, pbwire.NewOptions())
	assert.Equal(t, boom, err)

	err = pbwire.Unmarshal([]byte{0x08, 0x01}, &hook{err: boom}, pbwire.NewOptions())
	assert.Equal(t, boom, err)

	// Declining a field makes the engine skip it.
	h := &hook{err: codec.ErrUnknownField}
	require.NoError(t, pbwire.Unmarshal([]byte{0x08, 0x01, 0x08, 0x02}, h, pbwire.NewOptions()))
	assert.Equal(t, 2, h.calls)
}

func TestUnstable(t *testing.T) {
	t.Parallel()

	_, err := pbwire.Append(nil, new(flaky), pbwire.NewOptions())
	assert.ErrorIs(t, err, pbwire.ErrUnstable)
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

var hookSchema = schema.NewMessage("Hook",
	schema.Int32(1, "value").Pack(),
)

// hook fails every call with err.
type hook struct {
	err   error
	calls int
}

func (*hook) Schema() *schema.Message { return hookSchema }

func (*hook) IsEmpty() bool { return false }

func (*hook) ClearField(*schema.Field) {}

func (h *hook) EncodeFields(codec.Encoder) error { return h.err }

func (h *hook) DecodeField(codec.Decoder, *schema.Field) error {
	h.calls++
	return h.err
}

// flaky encodes differently every time it is visited.
type flaky struct{ calls int }

func (*flaky) Schema() *schema.Message { return hookSchema }

func (*flaky) IsEmpty() bool { return false }

func (*flaky) ClearField(*schema.Field) {}

func (*flaky) DecodeField(codec.Decoder, *schema.Field) error { return nil }

func (f *flaky) EncodeFields(e codec.Encoder) error {
	f.calls++
	return e.List(hookSchema.Fields()[0], f.calls, func(e codec.Encoder, i int) error {
		return e.Int32(hookSchema.Fields()[0], int32(i))
	})
}

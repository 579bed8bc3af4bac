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

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/protocodec/schema"
	"buf.build/go/protocodec/wire"
)

var color = schema.NewEnum("Color",
	schema.EnumValue{Name: "RED", Number: 0},
	schema.EnumValue{Name: "GREEN", Number: 1},
	schema.EnumValue{Name: "VERDE", Number: 1},
)

func TestBuild(t *testing.T) {
	t.Parallel()

	var self *schema.Message
	self = schema.NewMessage("Node",
		schema.Int32(1, "value"),
		schema.String(2, "display_name"),
		schema.Sint64(3, "delta").Optional(),
		schema.Uint32(4, "samples").Pack(),
		schema.EnumOf(5, "color", color),
		schema.MapOf(6, "labels", schema.String(1, "key"), schema.Double(2, "value")),
		schema.MessageOf(7, "next", func() *schema.Message { return self }).Pointer(),
		schema.OneofOf("choice",
			schema.Bool(8, "flag"),
			schema.Bytes(9, "blob"),
		),
		schema.Int32(10, "small").WithBits(4),
		schema.String(11, "renamed").WithJSONName("other"),
	)

	assert.Equal(t, "Node", self.Name())
	assert.Len(t, self.Fields(), 10)

	f := self.ByNumber(2)
	require.NotNil(t, f)
	assert.Equal(t, "displayName", f.JSONName)
	assert.Same(t, f, self.ByJSONName([]byte("display_name")))
	assert.Same(t, f, self.ByJSONName([]byte("displayName")))
	assert.Nil(t, self.ByJSONName([]byte("DisplayName")))

	assert.Same(t, self, self.ByNumber(7).Message())
	assert.Equal(t, schema.Pointer, self.ByNumber(7).Label)

	alt := self.ByNumber(9)
	require.NotNil(t, alt)
	assert.Equal(t, 1, alt.Index)
	assert.Equal(t, "choice", alt.Oneof.Name)
	assert.Same(t, alt, self.ByJSONName([]byte("blob")))
	assert.Nil(t, self.ByJSONName([]byte("choice")))

	assert.Equal(t, wire.ScalarEncoding{Encoding: wire.Varint, Packed: true}, self.ByNumber(4).ScalarEncoding())
	assert.Equal(t, wire.BytesType, self.ByNumber(6).WireType())
	assert.Equal(t, wire.VarintType, self.ByNumber(3).WireType())
	assert.True(t, self.ByNumber(4).IsList())
	assert.False(t, self.ByNumber(6).IsList())

	assert.Same(t, self.ByNumber(11), self.ByJSONName([]byte("other")))
	assert.Same(t, self.ByNumber(11), self.ByJSONName([]byte("renamed")))

	assert.Nil(t, self.ByNumber(12))
	assert.Nil(t, self.ByNumber(0))
	assert.Equal(t, "map<string, double> labels = 6", self.ByNumber(6).String())
	assert.Equal(t, "optional int64/zigzag delta = 3", self.ByNumber(3).String())
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields []*schema.Field
	}{
		{"zero-number", []*schema.Field{schema.Int32(0, "a")}},
		{"too-big", []*schema.Field{schema.Int32(wire.MaxValidNumber+1, "a")}},
		{"no-name", []*schema.Field{schema.Int32(1, "")}},
		{"dup-number", []*schema.Field{schema.Int32(1, "a"), schema.Int32(1, "b")}},
		{"dup-name", []*schema.Field{schema.Int32(1, "a"), schema.Int32(2, "a")}},
		{"json-conflict", []*schema.Field{schema.Int32(1, "foo_bar"), schema.Int32(2, "fooBar")}},
		{"packed-string", []*schema.Field{schema.String(1, "a").Pack()}},
		{"zigzag-unsigned", []*schema.Field{{Number: 1, Name: "a", Kind: schema.Uint32Kind, Encoding: wire.Zigzag}}},
		{"float-varint", []*schema.Field{{Number: 1, Name: "a", Kind: schema.FloatKind}}},
		{"bits-too-wide", []*schema.Field{schema.Int32(1, "a").WithBits(33)}},
		{"bits-on-string", []*schema.Field{schema.String(1, "a").WithBits(3)}},
		{"enum-no-values", []*schema.Field{schema.EnumOf(1, "a", nil)}},
		{"message-no-type", []*schema.Field{schema.MessageOf(1, "a", nil)}},
		{"map-float-key", []*schema.Field{schema.MapOf(1, "a", schema.Float(1, "key"), schema.Int32(2, "value"))}},
		{"map-bad-numbers", []*schema.Field{schema.MapOf(1, "a", schema.Int32(2, "key"), schema.Int32(1, "value"))}},
		{"map-repeated-value", []*schema.Field{schema.MapOf(1, "a", schema.Int32(1, "key"), schema.Int32(2, "value").Repeated())}},
		{"empty-oneof", []*schema.Field{schema.OneofOf("a")}},
		{"repeated-alternative", []*schema.Field{schema.OneofOf("a", schema.Int32(1, "b").Repeated())}},
		{"oneof-dup-number", []*schema.Field{schema.Int32(1, "x"), schema.OneofOf("a", schema.Int32(1, "b"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := schema.Build("Bad", tt.fields...)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { schema.NewMessage("") })
}

func TestEnum(t *testing.T) {
	t.Parallel()

	v, ok := color.ByName([]byte("GREEN"))
	assert.True(t, ok)
	assert.Equal(t, int32(1), v)

	v, ok = color.ByName([]byte("VERDE"))
	assert.True(t, ok)
	assert.Equal(t, int32(1), v)

	_, ok = color.ByName([]byte("BLUE"))
	assert.False(t, ok)

	name, ok := color.NameOf(1)
	assert.True(t, ok)
	assert.Equal(t, "GREEN", name)

	_, ok = color.NameOf(7)
	assert.False(t, ok)

	assert.Len(t, color.Values(), 3)
	assert.Panics(t, func() {
		schema.NewEnum("Dup", schema.EnumValue{Name: "A"}, schema.EnumValue{Name: "A", Number: 1})
	})
}

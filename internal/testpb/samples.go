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
	"math"

	"buf.build/go/protocodec/codec"
)

// Sample is a named test value.
type Sample struct {
	Name    string
	Message codec.Message
}

// Samples returns values that exercise every field of every type in this
// package. Each call returns fresh values.
//
// None of the samples contain empty singular submessages or NaNs, so they
// survive a round trip through any conforming encoder unchanged.
func Samples() []Sample {
	return []Sample{
		{"req-int32", &ReqInt32{Value: -2}},
		{"req-sint32", &ReqSint32{Value: -2}},
		{"leaf", &Leaf{Name: "leaf", Count: 42}},
		{"wrapper", &Wrapper{
			Leaf:  Leaf{Name: "inline", Count: -1},
			Extra: &Leaf{Name: "extra"},
		}},
		{"scalars-zero", &Scalars{}},
		{"scalars", &Scalars{
			Bool:      true,
			Int32:     -1,
			Int64:     math.MinInt64,
			Uint32:    math.MaxUint32,
			Uint64:    math.MaxUint64,
			Sint32:    -300,
			Sint64:    math.MaxInt64,
			Fixed32:   0xdeadbeef,
			Fixed64:   1<<63 + 5,
			Sfixed32:  math.MinInt32,
			Sfixed64:  -1,
			Float:     1.5,
			Double:    math.Pi,
			String:    "héllo, 世界 \U0001F600 \"quoted\"\n",
			Bytes:     []byte{0, 1, 2, 0xfe, 0xff},
			Phone:     PhoneWork,
			OptInt32:  ptr(int32(0)),
			OptString: ptr(""),
		}},
		{"scalars-extremes", &Scalars{
			Float:  math.MaxFloat32,
			Double: -math.SmallestNonzeroFloat64,
			Int32:  math.MinInt32,
			Sint32: math.MaxInt32,
			Phone:  7,
		}},
		{"repeated", &Repeated{
			PackedInt32:   []int32{0x42, 3, -1, math.MaxInt32},
			ExpandedInt32: []int32{1, -2, 3},
			Strings:       []string{"a", "", "ccc"},
			Doubles:       []float64{0, -1.25, math.Inf(1)},
			Sint64s:       []int64{-1, 1, math.MinInt64},
			Bools:         []bool{true, false, true},
			Phones:        []int32{PhoneHome, PhoneMobile},
			Leaves:        []*Leaf{{Name: "x"}, {}, {Count: 9}},
			Blobs:         [][]byte{[]byte("blob"), {0xff}},
			Fixed32s:      []uint32{1, math.MaxUint32},
		}},
		{"maps", &Maps{
			IntMap:    map[int32]int32{1: 2, -5: 0, 100: -100},
			StringMap: map[string]string{"": "empty", "k": "", "key": "value"},
			BoolMap:   map[bool][]byte{false: {1, 2}, true: {3}},
			LeafMap:   map[uint32]*Leaf{0: {Name: "zero"}, 7: {Count: 7}},
			PhoneMap:  map[string]int32{"home": PhoneHome, "work": PhoneWork},
			SintMap:   map[int64]float64{-1: 0.5, math.MaxInt64: -2},
		}},
		{"choice-number", &Choice{Kind: &Choice_Number{Number: 0}, Tag: "zero"}},
		{"choice-text", &Choice{Kind: &Choice_Text{Text: "text"}}},
		{"choice-leaf", &Choice{Kind: &Choice_Leaf{Leaf: &Leaf{Name: "in a oneof"}}}},
		{"choice-none", &Choice{Tag: "none"}},
		{"node", &Node{
			Value: 1,
			Next:  Chain(4),
			Children: []*Node{
				{Value: 2},
				{Value: 3, Children: []*Node{{Value: 4, Next: &Node{Value: 5}}}},
			},
		}},
		{"flags", &Flags{Small: -8, Mask: 7, Wide: -(1 << 39)}},
		{"collide", &Collide{KeyAz: 1, KeyBY: 2}},
	}
}

func ptr[T any](v T) *T { return &v }

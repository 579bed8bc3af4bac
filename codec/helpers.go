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

package codec

import (
	"cmp"
	"maps"
	"slices"

	"buf.build/go/protocodec/schema"
)

// EncodeList writes a slice as the repeated field f, using put to write each
// element. put is usually a method expression, such as [Encoder.Int32].
func EncodeList[T any](e Encoder, f *schema.Field, s []T, put func(Encoder, *schema.Field, T) error) error {
	return e.List(f, len(s), func(e Encoder, i int) error {
		return put(e, f, s[i])
	})
}

// EncodeMessages writes a slice of messages as the repeated field f.
func EncodeMessages[M Message](e Encoder, f *schema.Field, s []M) error {
	return e.List(f, len(s), func(e Encoder, i int) error {
		return e.Message(f, s[i])
	})
}

// EncodeMap writes a map as the map field f, in ascending key order.
func EncodeMap[K cmp.Ordered, V any](
	e Encoder, f *schema.Field, m map[K]V,
	putKey func(Encoder, *schema.Field, K) error,
	putValue func(Encoder, *schema.Field, V) error,
) error {
	return encodeMap(e, f, m, slices.Sorted(maps.Keys(m)), putKey, putValue)
}

// EncodeMapFunc is like [EncodeMap], but orders keys with compare. This is
// necessary for bool keys.
func EncodeMapFunc[K comparable, V any](
	e Encoder, f *schema.Field, m map[K]V,
	compare func(K, K) int,
	putKey func(Encoder, *schema.Field, K) error,
	putValue func(Encoder, *schema.Field, V) error,
) error {
	return encodeMap(e, f, m, slices.SortedFunc(maps.Keys(m), compare), putKey, putValue)
}

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// MessageValue adapts a message to the signature expected by [EncodeMap].
func MessageValue[M Message](e Encoder, f *schema.Field, m M) error {
	return e.Message(f, m)
}

func encodeMap[K comparable, V any](
	e Encoder, f *schema.Field, m map[K]V, keys []K,
	putKey func(Encoder, *schema.Field, K) error,
	putValue func(Encoder, *schema.Field, V) error,
) error {
	return e.Map(f, len(keys), func(ke, ve Encoder, i int) error {
		k := keys[i]
		if err := putKey(ke, f.Key, k); err != nil {
			return err
		}
		return putValue(ve, f.Value, m[k])
	})
}

// DecodeAppend decodes elements of a repeated field onto the end of *s, using
// get to read each one. get is usually a method expression, such as
// [Decoder.Int32].
func DecodeAppend[T any](d Decoder, s *[]T, get func(Decoder) (T, error)) error {
	return d.List(func(d Decoder) error {
		v, err := get(d)
		if err != nil {
			return err
		}
		*s = append(*s, v)
		return nil
	})
}

// DecodeMap decodes entries of a map field into *m, allocating it if
// necessary. Later entries for the same key replace earlier ones.
func DecodeMap[K comparable, V any](
	d Decoder, m *map[K]V,
	getKey func(Decoder) (K, error),
	getValue func(Decoder) (V, error),
) error {
	return d.Map(func(kd, vd Decoder) error {
		k, err := getKey(kd)
		if err != nil {
			return err
		}
		v, err := getValue(vd)
		if err != nil {
			return err
		}
		if *m == nil {
			*m = make(map[K]V)
		}
		(*m)[k] = v
		return nil
	})
}

// DecodeMessage decodes a new message of type T. It can be used as the get
// function of [DecodeAppend] and [DecodeMap].
func DecodeMessage[T any, PT interface {
	*T
	Message
}](d Decoder) (PT, error) {
	m := PT(new(T))
	if err := d.Message(m); err != nil {
		return nil, err
	}
	return m, nil
}

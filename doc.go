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

// Package protocodec encodes and decodes Protobuf messages in the binary wire
// format and the canonical JSON mapping, driven by the field tables of
// generated code.
//
// Generated types implement [codec.Message]: they describe their fields with a
// [schema.Message], visit their fields when encoding, and accept one field at a
// time when decoding. Given such a type, the functions in this package do the
// rest:
//
//	b, err := protocodec.Marshal(msg)
//	err = protocodec.Unmarshal(b, msg)
//	j, err := protocodec.MarshalJSON(msg, protocodec.WithIndent("  "))
//
// The binary and JSON engines live in encoding/pbwire and encoding/pbjson,
// which can be used directly when options need to be set once and reused.
//
// # Decoding Semantics
//
// A singular field that appears more than once takes the last value seen,
// including submessages, which are replaced rather than merged. Repeated and
// map fields accumulate. Fields and JSON keys that the message does not
// declare are skipped.
//
// Decoding fails on the first error, and leaves the message in an unspecified
// state. Errors from decoding carry the offset at which they occurred; see
// [Error].
package protocodec

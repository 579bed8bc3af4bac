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

package protocodec

import (
	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/encoding/pbwire"
	"buf.build/go/protocodec/internal/errs"
)

// Error is an error produced while encoding or decoding. It unwraps to one of
// the Err* values in this package, so that they can be tested for with
// [errors.Is].
type Error = errs.Error

// Code identifies what kind of [Error] occurred.
type Code = errs.Code

// Error codes.
const (
	CodeUnexpectedEOF    = errs.UnexpectedEOF
	CodeTrailingData     = errs.TrailingData
	CodeInvalidVarint    = errs.InvalidVarint
	CodeIntegerOverflow  = errs.IntegerOverflow
	CodeInvalidBool      = errs.InvalidBool
	CodeBitfieldOverflow = errs.BitfieldOverflow
	CodeInvalidUTF8      = errs.InvalidUTF8
	CodeInvalidBase64    = errs.InvalidBase64
	CodeInvalidField     = errs.InvalidField
	CodeInvalidMapEntry  = errs.InvalidMapEntry
	CodeWireTypeMismatch = errs.WireTypeMismatch
	CodeReservedWireType = errs.ReservedWireType
	CodeRecursionDepth   = errs.RecursionDepth
	CodeExpectedToken    = errs.ExpectedToken
	CodeInvalidEscape    = errs.InvalidEscape
	CodeInvalidLiteral   = errs.InvalidLiteral
	CodeInvalidNumber    = errs.InvalidNumber
)

// Sentinel errors, which an [Error] with the corresponding code unwraps to.
//
// ErrUnexpectedEOF is [io.ErrUnexpectedEOF].
var (
	ErrUnexpectedEOF    = errs.Sentinels[errs.UnexpectedEOF]
	ErrTrailingData     = errs.Sentinels[errs.TrailingData]
	ErrInvalidVarint    = errs.Sentinels[errs.InvalidVarint]
	ErrIntegerOverflow  = errs.Sentinels[errs.IntegerOverflow]
	ErrInvalidBool      = errs.Sentinels[errs.InvalidBool]
	ErrBitfieldOverflow = errs.Sentinels[errs.BitfieldOverflow]
	ErrInvalidUTF8      = errs.Sentinels[errs.InvalidUTF8]
	ErrInvalidBase64    = errs.Sentinels[errs.InvalidBase64]
	ErrInvalidField     = errs.Sentinels[errs.InvalidField]
	ErrInvalidMapEntry  = errs.Sentinels[errs.InvalidMapEntry]
	ErrWireTypeMismatch = errs.Sentinels[errs.WireTypeMismatch]
	ErrReservedWireType = errs.Sentinels[errs.ReservedWireType]
	ErrRecursionDepth   = errs.Sentinels[errs.RecursionDepth]
	ErrExpectedToken    = errs.Sentinels[errs.ExpectedToken]
	ErrInvalidEscape    = errs.Sentinels[errs.InvalidEscape]
	ErrInvalidLiteral   = errs.Sentinels[errs.InvalidLiteral]
	ErrInvalidNumber    = errs.Sentinels[errs.InvalidNumber]

	// ErrUnknownField may be returned by generated code to decline a field.
	ErrUnknownField = codec.ErrUnknownField

	// ErrUnstable is returned when a message encodes differently on the
	// counting and writing passes.
	ErrUnstable = pbwire.ErrUnstable
)

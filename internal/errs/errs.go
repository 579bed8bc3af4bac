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

// Package errs contains the error codes shared by the binary and JSON codecs.
package errs

import (
	"errors"
	"fmt"
	"io"
)

const (
	Ok Code = iota

	// Binary and shared errors.
	UnexpectedEOF
	TrailingData
	InvalidVarint
	IntegerOverflow
	InvalidBool
	BitfieldOverflow
	InvalidUTF8
	InvalidBase64
	InvalidField
	InvalidMapEntry
	WireTypeMismatch
	ReservedWireType
	RecursionDepth

	// JSON errors.
	ExpectedToken
	InvalidEscape
	InvalidLiteral
	InvalidNumber

	numCodes
)

// Code is one of the possible kinds of [Error].
type Code int

// Sentinels is indexed by [Code]. [Error.Unwrap] returns one of these, so that
// callers can use [errors.Is] without caring about offsets.
var Sentinels = [...]error{
	Ok:               nil,
	UnexpectedEOF:    io.ErrUnexpectedEOF,
	TrailingData:     errors.New("trailing data in bounded stream"),
	InvalidVarint:    errors.New("invalid varint"),
	IntegerOverflow:  errors.New("integer overflows target type"),
	InvalidBool:      errors.New("invalid bool encoding"),
	BitfieldOverflow: errors.New("value does not fit in bitfield"),
	InvalidUTF8:      errors.New("invalid UTF-8 in string"),
	InvalidBase64:    errors.New("invalid base64"),
	InvalidField:     errors.New("invalid field number"),
	InvalidMapEntry:  errors.New("map entry is missing its key or value"),
	WireTypeMismatch: errors.New("wire type does not match field"),
	ReservedWireType: errors.New("cannot parse reserved wire type"),
	RecursionDepth:   errors.New("recursion depth exceeded"),
	ExpectedToken:    errors.New("unexpected token"),
	InvalidEscape:    errors.New("invalid escape sequence"),
	InvalidLiteral:   errors.New("invalid literal"),
	InvalidNumber:    errors.New("invalid number"),
}

var _ = [1]int{}[len(Sentinels)-int(numCodes)] // Keep the table in sync with the codes.

// Error is an error produced while encoding or decoding.
type Error struct {
	Code   Code
	Offset int    // Byte offset into the input or output; -1 if not known.
	Detail string // Optional context, such as the field name.
}

// New returns a new error with the given code at the given offset.
func New(code Code, offset int) *Error {
	return &Error{Code: code, Offset: offset}
}

// Newf is like [New], but attaches a formatted detail message.
func Newf(code Code, offset int, format string, args ...any) *Error {
	return &Error{Code: code, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an [*Error] with the given code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *Error) Unwrap() error {
	return Sentinels[e.Code]
}

// Error implements [error].
func (e *Error) Error() string {
	msg := e.Unwrap().Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Offset < 0 {
		return "protocodec: " + msg
	}
	return fmt.Sprintf("protocodec: error at offset %d/%#x: %s", e.Offset, e.Offset, msg)
}

// String implements [fmt.Stringer].
func (c Code) String() string {
	if c < 0 || c >= numCodes {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	if c == Ok {
		return "ok"
	}
	return Sentinels[c].Error()
}

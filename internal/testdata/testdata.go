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

// Package testdata runs the YAML test corpus.
//
// Each file describes one message type and a set of specimens in the binary
// format (as hex or protoscope) or in JSON. Every specimen is decoded, and
// either the expected error is checked, or the decoded value is checked for a
// stable round trip, against an expected JSON rendering, and against what
// protobuf-go makes of the same bytes.
package testdata

import (
	"bytes"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/protocolbuffers/protoscope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/encoding/pbjson"
	"buf.build/go/protocodec/encoding/pbwire"
	"buf.build/go/protocodec/internal/debug"
	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/prototest"
	"buf.build/go/protocodec/internal/testpb"
)

//go:embed *.yaml
var corpus embed.FS

// Harness is a generalization of [testing.TB] that also includes the
// [testing.T.Run] method. It must be generic because the signature of this
// function varies across [testing.T] and [testing.B].
type Harness[T any] interface {
	testing.TB
	Run(string, func(T)) bool
}

// TestCase is a single file from the corpus.
type TestCase struct {
	Name string `yaml:"-"`

	TypeName string `yaml:"type"`

	// Binary specimens, as hex or protoscope.
	Hex        []string `yaml:"hex"`
	Protoscope []string `yaml:"protoscope"`

	// JSON specimens.
	JSON []string `yaml:"json"`

	// If set, every specimen must fail to decode with this error.
	Error Code `yaml:"error"`

	// If set, the canonical JSON encoding every specimen must decode to.
	Want string `yaml:"want"`

	// If set, protobuf-go is not expected to agree with us.
	NoConform bool `yaml:"no_conform"`

	Specimens []Specimen `yaml:"-"`
}

// Specimen is a single input from a [TestCase].
type Specimen struct {
	Data []byte
	JSON bool
}

// Code is an [errs.Code] that can be loaded from YAML by name.
type Code errs.Code

var codes = map[string]errs.Code{
	"UnexpectedEOF":    errs.UnexpectedEOF,
	"TrailingData":     errs.TrailingData,
	"InvalidVarint":    errs.InvalidVarint,
	"IntegerOverflow":  errs.IntegerOverflow,
	"InvalidBool":      errs.InvalidBool,
	"BitfieldOverflow": errs.BitfieldOverflow,
	"InvalidUTF8":      errs.InvalidUTF8,
	"InvalidBase64":    errs.InvalidBase64,
	"InvalidField":     errs.InvalidField,
	"InvalidMapEntry":  errs.InvalidMapEntry,
	"WireTypeMismatch": errs.WireTypeMismatch,
	"ReservedWireType": errs.ReservedWireType,
	"RecursionDepth":   errs.RecursionDepth,
	"ExpectedToken":    errs.ExpectedToken,
	"InvalidEscape":    errs.InvalidEscape,
	"InvalidLiteral":   errs.InvalidLiteral,
	"InvalidNumber":    errs.InvalidNumber,
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (c *Code) UnmarshalYAML(node *yaml.Node) error {
	code, ok := codes[node.Value]
	if !ok {
		return fmt.Errorf("line %d: unknown error code %q", node.Line, node.Value)
	}
	*c = Code(code)
	return nil
}

// RunAll runs all of the test cases against the given harness.
func RunAll[T Harness[T]](t T, f func(T, *TestCase)) {
	t.Helper()

	err := fs.WalkDir(corpus, ".", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err, "loading test %q", path)

		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		t.Run(path, func(t T) {
			if t, ok := any(t).(*testing.T); ok {
				t.Parallel()
			}

			data, err := fs.ReadFile(corpus, path)
			require.NoError(t, err, "loading test %q", path)

			f(t, parseTestCase(t, path, data))
		})

		return nil
	})
	require.NoError(t, err)
}

// Run executes a single test case.
func (test *TestCase) Run(t *testing.T, verbose bool) {
	t.Helper()

	run := func(t *testing.T, specimen Specimen) {
		t.Helper()
		defer debug.WithTesting(t)()

		got := testpb.New(test.TypeName)
		var err error
		if specimen.JSON {
			err = pbjson.Unmarshal(specimen.Data, got, pbjson.NewOptions())
		} else {
			err = pbwire.Unmarshal(specimen.Data, got, pbwire.NewOptions())
		}
		if verbose {
			t.Logf("specimen: %q, error: %v", specimen.Data, err)
		}

		if test.Error != Code(errs.Ok) {
			want := errs.Code(test.Error)
			assert.True(t, errs.Is(err, want), "want %v, got %v", want, err)
			return
		}
		require.NoError(t, err)

		canonical, err := pbjson.Marshal(got, pbjson.NewOptions())
		require.NoError(t, err)
		if verbose {
			t.Logf("decoded: %s", canonical)
		}
		if test.Want != "" {
			assert.JSONEq(t, test.Want, string(canonical))
		}

		test.roundTrip(t, got)
		if !test.NoConform {
			test.conform(t, specimen, got)
		}
	}

	if len(test.Specimens) == 1 {
		run(t, test.Specimens[0])
		return
	}

	for i, specimen := range test.Specimens {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			t.Parallel()
			run(t, specimen)
		})
	}
}

// roundTrip checks that a decoded value survives encoding in both formats.
func (test *TestCase) roundTrip(t *testing.T, got codec.Message) {
	t.Helper()

	b, err := pbwire.Append(nil, got, pbwire.NewOptions())
	require.NoError(t, err)
	again := testpb.New(test.TypeName)
	require.NoError(t, pbwire.Unmarshal(b, again, pbwire.NewOptions()))
	if diff := cmp.Diff(got, again, cmpopts.EquateEmpty(), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("binary round trip (-want +got):\n%s", diff)
	}

	j, err := pbjson.Marshal(got, pbjson.NewOptions())
	require.NoError(t, err)
	again = testpb.New(test.TypeName)
	require.NoError(t, pbjson.Unmarshal(j, again, pbjson.NewOptions()))
	if diff := cmp.Diff(got, again, cmpopts.EquateEmpty(), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("JSON round trip (-want +got):\n%s", diff)
	}
}

// conform checks that protobuf-go decodes the specimen to the same value.
func (test *TestCase) conform(t *testing.T, specimen Specimen, got codec.Message) {
	t.Helper()

	theirs, err := prototest.New(got)
	require.NoError(t, err)
	if specimen.JSON {
		err = protojson.Unmarshal(specimen.Data, theirs)
	} else {
		err = proto.Unmarshal(specimen.Data, theirs)
	}
	require.NoError(t, err, "protobuf-go rejected a specimen we accept")

	ours, err := prototest.ToProto(got)
	require.NoError(t, err)
	prototest.Equal(t, theirs, ours)
}

// parseTestCase parses a single test case from the given data.
//
// This will call t.FailNow() if loading fails.
func parseTestCase(t testing.TB, path string, file []byte) *TestCase {
	t.Helper()
	defer debug.WithTesting(t)()

	require.True(t, bytes.HasSuffix(file, []byte("\n")), "missing trailing newline in %q", path)

	test := new(TestCase)
	dec := yaml.NewDecoder(bytes.NewReader(file))
	dec.KnownFields(true)
	require.NoError(t, dec.Decode(test), "loading test %q", path)

	test.Name = path
	require.Contains(t, testpb.Names(), test.TypeName, "loading test %q", path)

	for _, raw := range test.Hex {
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
		b, err := hex.DecodeString(r.Replace(raw))
		require.NoError(t, err, "loading test %q", path)
		test.Specimens = append(test.Specimens, Specimen{Data: b})
	}

	for _, raw := range test.Protoscope {
		b, err := protoscope.NewScanner(raw).Exec()
		require.NoError(t, err, "loading test %q", path)
		test.Specimens = append(test.Specimens, Specimen{Data: b})
	}

	for _, raw := range test.JSON {
		test.Specimens = append(test.Specimens, Specimen{Data: []byte(raw), JSON: true})
	}

	require.NotEmpty(t, test.Specimens, "no specimens in %q", path)
	return test
}

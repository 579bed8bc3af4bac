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

// Package prototest checks messages against protobuf-go, by describing
// [schema.Message] tables as Protobuf descriptors.
package prototest

import (
	"fmt"
	"strings"
	"unicode"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"buf.build/go/protocodec/internal/xsync"
	"buf.build/go/protocodec/schema"
	"buf.build/go/protocodec/wire"
)

// Package is the Protobuf package that descriptors are placed in.
const Package = "protocodec.test"

var descriptors xsync.Map[*schema.Message, protoreflect.MessageDescriptor]

// Descriptor returns a descriptor for m.
//
// The descriptor lives in a proto3 file of its own, which also declares
// every message and enum that m refers to. Required fields become fields with
// implicit presence, and optional scalars become proto3 optional fields.
//
// Descriptors are cached, so calling this twice for the same table returns
// the same descriptor.
func Descriptor(m *schema.Message) (protoreflect.MessageDescriptor, error) {
	if md, ok := descriptors.Load(m); ok {
		return md, nil
	}

	b := &builder{
		file: &descriptorpb.FileDescriptorProto{
			Name:    proto.String(strings.ToLower(m.Name()) + ".proto"),
			Package: proto.String(Package),
			Syntax:  proto.String("proto3"),
		},
		messages: make(map[*schema.Message]bool),
		enums:    make(map[*schema.Enum]bool),
	}
	b.message(m)

	file, err := protodesc.NewFile(b.file, new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("prototest: describing %s: %w", m.Name(), err)
	}
	md := file.Messages().ByName(protoreflect.Name(m.Name()))

	md, _ = descriptors.LoadOrStore(m, func() protoreflect.MessageDescriptor { return md })
	return md, nil
}

type builder struct {
	file     *descriptorpb.FileDescriptorProto
	messages map[*schema.Message]bool
	enums    map[*schema.Enum]bool
}

func (b *builder) message(m *schema.Message) {
	if b.messages[m] {
		return
	}
	b.messages[m] = true

	d := &descriptorpb.DescriptorProto{Name: proto.String(m.Name())}
	b.file.MessageType = append(b.file.MessageType, d)

	var optional []*descriptorpb.FieldDescriptorProto
	for _, f := range m.Fields() {
		if f.Kind != schema.OneofKind {
			fd := b.field(d, f)
			if fd.GetProto3Optional() {
				optional = append(optional, fd)
			}
			d.Field = append(d.Field, fd)
			continue
		}

		idx := int32(len(d.OneofDecl))
		d.OneofDecl = append(d.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String(f.Name)})
		for _, alt := range f.Alternatives {
			fd := b.field(d, alt)
			fd.OneofIndex = proto.Int32(idx)
			d.Field = append(d.Field, fd)
		}
	}

	// Synthetic oneofs must come after all of the real ones.
	for _, fd := range optional {
		fd.OneofIndex = proto.Int32(int32(len(d.OneofDecl)))
		d.OneofDecl = append(d.OneofDecl, &descriptorpb.OneofDescriptorProto{
			Name: proto.String("_" + fd.GetName()),
		})
	}
}

func (b *builder) field(parent *descriptorpb.DescriptorProto, f *schema.Field) *descriptorpb.FieldDescriptorProto {
	fd := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(f.Name),
		Number: proto.Int32(int32(f.Number)),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
	}
	if f.JSONName != "" {
		fd.JsonName = proto.String(f.JSONName)
	}

	switch f.Kind {
	case schema.MapKind:
		entry := &descriptorpb.DescriptorProto{
			Name: proto.String(mapEntryName(f.Name)),
			Field: []*descriptorpb.FieldDescriptorProto{
				b.field(nil, f.Key),
				b.field(nil, f.Value),
			},
			Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
		}
		parent.NestedType = append(parent.NestedType, entry)

		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fd.TypeName = proto.String(fmt.Sprintf(".%s.%s.%s", Package, parent.GetName(), entry.GetName()))
		fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		return fd

	case schema.MessageKind:
		b.message(f.Message())
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		fd.TypeName = proto.String(fmt.Sprintf(".%s.%s", Package, f.Message().Name()))

	case schema.EnumKind:
		b.enum(f.Enum)
		fd.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
		fd.TypeName = proto.String(fmt.Sprintf(".%s.%s", Package, f.Enum.Name()))

	default:
		fd.Type = scalarType(f).Enum()
	}

	switch f.Label {
	case schema.Repeated:
		fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		if f.Kind.Scalar() {
			fd.Options = &descriptorpb.FieldOptions{Packed: proto.Bool(f.Packed)}
		}
	case schema.Optional, schema.Pointer:
		if f.Kind != schema.MessageKind && f.Oneof == nil {
			fd.Proto3Optional = proto.Bool(true)
		}
	}
	return fd
}

func (b *builder) enum(e *schema.Enum) {
	if b.enums[e] {
		return
	}
	b.enums[e] = true

	d := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name())}
	seen := make(map[int32]bool)
	for _, v := range e.Values() {
		if seen[v.Number] {
			d.Options = &descriptorpb.EnumOptions{AllowAlias: proto.Bool(true)}
		}
		seen[v.Number] = true
		d.Value = append(d.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.Name),
			Number: proto.Int32(v.Number),
		})
	}
	b.file.EnumType = append(b.file.EnumType, d)
}

func scalarType(f *schema.Field) descriptorpb.FieldDescriptorProto_Type {
	switch f.Kind {
	case schema.BoolKind:
		return descriptorpb.FieldDescriptorProto_TYPE_BOOL
	case schema.FloatKind:
		return descriptorpb.FieldDescriptorProto_TYPE_FLOAT
	case schema.DoubleKind:
		return descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
	case schema.StringKind:
		return descriptorpb.FieldDescriptorProto_TYPE_STRING
	case schema.BytesKind:
		return descriptorpb.FieldDescriptorProto_TYPE_BYTES
	}
	return integerTypes[f.Kind][f.Encoding]
}

var integerTypes = map[schema.Kind]map[wire.Encoding]descriptorpb.FieldDescriptorProto_Type{
	schema.Int32Kind: {
		wire.Varint:  descriptorpb.FieldDescriptorProto_TYPE_INT32,
		wire.Zigzag:  descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		wire.Fixed32: descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	},
	schema.Int64Kind: {
		wire.Varint:  descriptorpb.FieldDescriptorProto_TYPE_INT64,
		wire.Zigzag:  descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		wire.Fixed64: descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	},
	schema.Uint32Kind: {
		wire.Varint:  descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		wire.Fixed32: descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	},
	schema.Uint64Kind: {
		wire.Varint:  descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		wire.Fixed64: descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	},
}

// mapEntryName returns the name protoc gives the entry type of a map field.
func mapEntryName(field string) string {
	var b strings.Builder
	upper := true
	for _, c := range field {
		switch {
		case c == '_':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(c))
			upper = false
		default:
			b.WriteRune(c)
		}
	}
	b.WriteString("Entry")
	return b.String()
}

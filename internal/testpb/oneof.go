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
	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/schema"
)

// Choice has a oneof.
type Choice struct {
	Kind isChoiceKind
	Tag  string
}

type isChoiceKind interface{ isChoiceKind() }

// Choice_Number is the first alternative of [Choice.Kind].
type Choice_Number struct{ Number int32 } //nolint:revive // Matches generated names.

// Choice_Text is the second alternative of [Choice.Kind].
type Choice_Text struct{ Text string } //nolint:revive // Matches generated names.

// Choice_Leaf is the third alternative of [Choice.Kind].
type Choice_Leaf struct{ Leaf *Leaf } //nolint:revive // Matches generated names.

func (*Choice_Number) isChoiceKind() {}
func (*Choice_Text) isChoiceKind()   {}
func (*Choice_Leaf) isChoiceKind()   {}

var choiceSchema = schema.NewMessage("Choice",
	schema.OneofOf("kind",
		schema.Int32(1, "number"),
		schema.String(2, "text"),
		schema.MessageOf(3, "leaf", func() *schema.Message { return leafSchema }),
	),
	schema.String(4, "tag"),
)

func (*Choice) Schema() *schema.Message { return choiceSchema }
func (m *Choice) IsEmpty() bool         { return m.Kind == nil && m.Tag == "" }

func (m *Choice) EncodeFields(e codec.Encoder) error {
	f := choiceSchema.Fields()
	alt := f[0].Alternatives

	var err error
	switch k := m.Kind.(type) {
	case *Choice_Number:
		err = e.Int32(alt[0], k.Number)
	case *Choice_Text:
		err = e.String(alt[1], k.Text)
	case *Choice_Leaf:
		err = e.Message(alt[2], k.Leaf)
	}
	if err != nil {
		return err
	}
	return e.String(f[1], m.Tag)
}

func (m *Choice) DecodeField(d codec.Decoder, f *schema.Field) error {
	if f.Oneof != nil {
		switch f.Index {
		case 0:
			v, err := d.Int32()
			m.Kind = &Choice_Number{v}
			return err
		case 1:
			v, err := d.String()
			m.Kind = &Choice_Text{v}
			return err
		case 2:
			v := new(Leaf)
			m.Kind = &Choice_Leaf{v}
			return d.Message(v)
		}
	}

	switch f.Number {
	case 4:
		var err error
		m.Tag, err = d.String()
		return err
	default:
		return codec.ErrUnknownField
	}
}

func (m *Choice) ClearField(f *schema.Field) {
	switch {
	case f.Oneof != nil:
		m.Kind = nil
	case f.Number == 4:
		m.Tag = ""
	}
}

// Node refers to itself.
type Node struct {
	Value    int32
	Next     *Node
	Children []*Node
}

var nodeSchema *schema.Message

func init() {
	nodeSchema = schema.NewMessage("Node",
		schema.Int32(1, "value"),
		schema.MessageOf(2, "next", func() *schema.Message { return nodeSchema }).Pointer(),
		schema.MessageOf(3, "children", func() *schema.Message { return nodeSchema }).Repeated(),
	)
}

func (*Node) Schema() *schema.Message { return nodeSchema }
func (m *Node) IsEmpty() bool         { return m.Value == 0 && m.Next == nil && len(m.Children) == 0 }

func (m *Node) EncodeFields(e codec.Encoder) error {
	f := nodeSchema.Fields()
	if err := e.Int32(f[0], m.Value); err != nil {
		return err
	}
	if m.Next != nil {
		if err := e.Message(f[1], m.Next); err != nil {
			return err
		}
	}
	return codec.EncodeMessages(e, f[2], m.Children)
}

func (m *Node) DecodeField(d codec.Decoder, f *schema.Field) (err error) {
	switch f.Number {
	case 1:
		m.Value, err = d.Int32()
	case 2:
		m.Next = new(Node)
		err = d.Message(m.Next)
	case 3:
		err = codec.DecodeAppend(d, &m.Children, codec.DecodeMessage[Node])
	default:
		return codec.ErrUnknownField
	}
	return err
}

func (m *Node) ClearField(f *schema.Field) {
	switch f.Number {
	case 1:
		m.Value = 0
	case 2:
		m.Next = nil
	case 3:
		m.Children = nil
	}
}

// Chain returns a linked list of n nodes, through [Node.Next].
func Chain(n int) *Node {
	var head *Node
	for i := n; i > 0; i-- {
		head = &Node{Value: int32(i), Next: head}
	}
	return head
}

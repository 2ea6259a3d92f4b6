// Copyright 2026 The midlc Authors
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

package emitter

import (
	"fmt"
	"strings"

	"github.com/midlc/midlc/schema"
)

// writeOneBase emits the statements that write exactly one base value of t
// (its complexity wrapper already peeled off by the caller) held in valExpr
// onto the segment dst.
func writeOneBase(dst, valExpr string, t schema.Type) []string {
	if t.IsUserDefined() {
		return []string{
			fmt.Sprintf("if err := %s.write(%s, iter); err != nil {", valExpr, dst),
			"\treturn err",
			"}",
		}
	}
	switch t.Fundamental {
	case schema.Str:
		return []string{fmt.Sprintf("%s.PutString(%s)", dst, valExpr)}
	case schema.Msg:
		return []string{
			fmt.Sprintf("if %s != nil {", valExpr),
			fmt.Sprintf("\t%s.PutMessage(%s)", dst, valExpr),
			"} else {",
			fmt.Sprintf("\t%s.PutMessage(wire.NewMessage(0, 0))", dst),
			"}",
		}
	default:
		return []string{scalarPutExpr(dst, valExpr, t.Fundamental)}
	}
}

// readOneBaseInto emits the statements that read exactly one base value of
// t from the segment src and assign it to the addressable destExpr. recv
// must be the enclosing type's receiver name, used to call recv.free() on
// failure.
func readOneBaseInto(recv, src, destExpr string, t schema.Type) []string {
	if t.IsUserDefined() {
		return []string{
			fmt.Sprintf("if err := %s.read(%s, iter); err != nil {", destExpr, src),
			fmt.Sprintf("\t%s.free()", recv),
			"\treturn err",
			"}",
		}
	}
	switch t.Fundamental {
	case schema.Str:
		return []string{
			"{",
			fmt.Sprintf("\ts, err := %s.String()", src),
			"\tif err != nil {",
			fmt.Sprintf("\t\t%s.free()", recv),
			"\t\treturn err",
			"\t}",
			fmt.Sprintf("\t%s = s", destExpr),
			"}",
		}
	case schema.Msg:
		return []string{fmt.Sprintf("%s = %s.Message()", destExpr, src)}
	default:
		return []string{fmt.Sprintf("%s = %s", destExpr, scalarGetExpr(src, t.Fundamental))}
	}
}

// optionalValueExpr returns the expression feeding writeOneBase/readOneBaseInto
// for the present value behind an Optional field named name: msg-fundamental
// optionals are already a bare nilable pointer, user-defined struct
// optionals are a *T whose pointer-receiver write/read are called on the
// pointer itself, everything else is a pointer to the base value that must
// be dereferenced.
func optionalValueExpr(name string, t schema.Type) string {
	if t.IsUserDefined() || t.Fundamental == schema.Msg {
		return name
	}
	return "*" + name
}

// varListCodec holds the generated constants and methods for one VarList
// (a struct's own fields, or one interface function's in/out arg list)
// under a synthesized Go type name.
type varListCodec struct {
	TypeName       string
	BaseBytesConst string
	BaseSubmsgs    string
	BaseBytes      int
	BaseSubmsgsN   int
	ConstSize      bool
}

func unexported(name string) string {
	if name == "" {
		return name
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return string(name[0]-'A'+'a') + name[1:]
	}
	return name
}

// newVarListCodec computes the size/const-size facts for vl under typeName,
// memoizing nothing itself (schema.sizer already does that per-VarList).
func newVarListCodec(typeName string, vl *schema.VarList) (*varListCodec, error) {
	bytes, submsgs, err := schema.VarListBaseSize(vl)
	if err != nil {
		return nil, fmt.Errorf("emitter: %s: %w", typeName, err)
	}
	constSize, err := schema.VarListConstSize(vl)
	if err != nil {
		return nil, fmt.Errorf("emitter: %s: %w", typeName, err)
	}
	u := unexported(typeName)
	return &varListCodec{
		TypeName:       typeName,
		BaseBytesConst: u + "BaseBytes",
		BaseSubmsgs:    u + "BaseSubmsgs",
		BaseBytes:      bytes,
		BaseSubmsgsN:   submsgs,
		ConstSize:      constSize,
	}, nil
}

// writeTypeDecl emits the Go struct type backing vl.
func writeTypeDecl(b *strings.Builder, typeName string, vl *schema.VarList) {
	fmt.Fprintf(b, "// %s is a generated record type.\n", typeName)
	fmt.Fprintf(b, "type %s struct {\n", typeName)
	for _, v := range vl.Vars {
		fmt.Fprintf(b, "\t%s %s\n", exportedFieldName(v.Name), goFieldType(v.Type))
	}
	b.WriteString("}\n\n")
}

// emitVarListImpl emits the size consts and write/read/free/dynamicCount
// methods for vl under typeName.
func emitVarListImpl(b *strings.Builder, typeName string, vl *schema.VarList) (*varListCodec, error) {
	c, err := newVarListCodec(typeName, vl)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(b, "const (\n\t%s = %d\n\t%s = %d\n)\n\n", c.BaseBytesConst, c.BaseBytes, c.BaseSubmsgs, c.BaseSubmsgsN)

	if err := emitWrite(b, typeName, vl); err != nil {
		return nil, err
	}
	if err := emitRead(b, typeName, vl); err != nil {
		return nil, err
	}
	emitFree(b, typeName, vl)
	if !c.ConstSize {
		if err := emitDynamicCount(b, typeName, vl); err != nil {
			return nil, err
		}
	}
	emitSerialize(b, typeName, c)
	emitDeserialize(b, typeName, c)
	return c, nil
}

func emitWrite(b *strings.Builder, typeName string, vl *schema.VarList) error {
	fmt.Fprintf(b, "func (v *%s) write(seg *wire.Segment, iter *wire.Iterator) error {\n", typeName)
	for _, f := range vl.Vars {
		name := "v." + exportedFieldName(f.Name)
		t := f.Type
		switch t.Complexity {
		case schema.Scalar:
			writeLines(b, "\t", writeOneBase("seg", name, t))
		case schema.Array:
			elem := scalarOf(t)
			fmt.Fprintf(b, "\tfor i := range %s {\n", name)
			writeLines(b, "\t\t", writeOneBase("seg", fmt.Sprintf("%s[i]", name), elem))
			b.WriteString("\t}\n")
		case schema.Sequence:
			elem := scalarOf(t)
			eb, es, err := schema.BaseSize(elem)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "\tseg.PutU32(uint32(len(%s)))\n", name)
			fmt.Fprintf(b, "\tif n := len(%s); n > 0 {\n", name)
			fmt.Fprintf(b, "\t\tchild, err := iter.GetSegment(%s, %s)\n", scaledTerm("n", eb), scaledTerm("n", es))
			b.WriteString("\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
			b.WriteString("\t\tfor i := 0; i < n; i++ {\n")
			writeLines(b, "\t\t\t", writeOneBase("child", fmt.Sprintf("%s[i]", name), elem))
			b.WriteString("\t\t}\n\t}\n")
		case schema.Optional:
			elem := scalarOf(t)
			eb, es, err := schema.BaseSize(elem)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "\tif %s != nil {\n", name)
			b.WriteString("\t\tseg.PutU8(1)\n")
			fmt.Fprintf(b, "\t\tchild, err := iter.GetSegment(%d, %d)\n", eb, es)
			b.WriteString("\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
			writeLines(b, "\t\t", writeOneBase("child", optionalValueExpr(name, t), elem))
			b.WriteString("\t} else {\n\t\tseg.PutU8(0)\n\t}\n")
		}
	}
	b.WriteString("\treturn nil\n}\n\n")
	return nil
}

func emitRead(b *strings.Builder, typeName string, vl *schema.VarList) error {
	fmt.Fprintf(b, "func (v *%s) read(seg *wire.Segment, iter *wire.Iterator) error {\n", typeName)
	for _, f := range vl.Vars {
		name := "v." + exportedFieldName(f.Name)
		t := f.Type
		switch t.Complexity {
		case schema.Scalar:
			writeLines(b, "\t", readOneBaseInto("v", "seg", name, t))
		case schema.Array:
			elem := scalarOf(t)
			fmt.Fprintf(b, "\tfor i := 0; i < %d; i++ {\n", t.ArrayLen)
			writeLines(b, "\t\t", readOneBaseInto("v", "seg", fmt.Sprintf("%s[i]", name), elem))
			b.WriteString("\t}\n")
		case schema.Sequence:
			elem := scalarOf(t)
			eb, es, err := schema.BaseSize(elem)
			if err != nil {
				return err
			}
			b.WriteString("\t{\n")
			b.WriteString("\t\tn := int(seg.U32())\n")
			b.WriteString("\t\tif n > 0 {\n")
			fmt.Fprintf(b, "\t\t\tchild, err := iter.GetSegment(%s, %s)\n", scaledTerm("n", eb), scaledTerm("n", es))
			b.WriteString("\t\t\tif err != nil {\n\t\t\t\tv.free()\n\t\t\t\treturn err\n\t\t\t}\n")
			fmt.Fprintf(b, "\t\t\t%s = make(%s, n)\n", name, goFieldType(t))
			b.WriteString("\t\t\tfor i := 0; i < n; i++ {\n")
			writeLines(b, "\t\t\t\t", readOneBaseInto("v", "child", fmt.Sprintf("%s[i]", name), elem))
			b.WriteString("\t\t\t}\n\t\t}\n\t}\n")
		case schema.Optional:
			elem := scalarOf(t)
			eb, es, err := schema.BaseSize(elem)
			if err != nil {
				return err
			}
			b.WriteString("\tif present := seg.U8(); present == 1 {\n")
			fmt.Fprintf(b, "\t\tchild, err := iter.GetSegment(%d, %d)\n", eb, es)
			b.WriteString("\t\tif err != nil {\n\t\t\tv.free()\n\t\t\treturn err\n\t\t}\n")
			if t.IsUserDefined() {
				fmt.Fprintf(b, "\t\t%s = &%s{}\n", name, t.User.Name)
			} else if t.Fundamental == schema.Msg {
				// assigned directly by readOneBaseInto below
			} else {
				fmt.Fprintf(b, "\t\t%s = new(%s)\n", name, baseGoType(elem))
			}
			writeLines(b, "\t\t", readOneBaseInto("v", "child", optionalValueExpr(name, t), elem))
			b.WriteString("\t} else {\n")
			fmt.Fprintf(b, "\t\t%s = nil\n", name)
			b.WriteString("\t}\n")
		}
	}
	b.WriteString("\treturn nil\n}\n\n")
	return nil
}

func emitFree(b *strings.Builder, typeName string, vl *schema.VarList) {
	fmt.Fprintf(b, "func (v *%s) free() {\n", typeName)
	for _, f := range vl.Vars {
		if !needsFree(f.Type) {
			continue
		}
		name := "v." + exportedFieldName(f.Name)
		t := f.Type
		switch t.Complexity {
		case schema.Scalar:
			if t.IsUserDefined() {
				fmt.Fprintf(b, "\t%s.free()\n", name)
			} else {
				fmt.Fprintf(b, "\t%s = nil\n", name)
			}
		case schema.Array:
			if t.IsUserDefined() {
				fmt.Fprintf(b, "\tfor i := range %s {\n\t\t%s[i].free()\n\t}\n", name, name)
			} else {
				fmt.Fprintf(b, "\tfor i := range %s {\n\t\t%s[i] = nil\n\t}\n", name, name)
			}
		case schema.Sequence:
			if t.IsUserDefined() {
				fmt.Fprintf(b, "\tfor i := range %s {\n\t\t%s[i].free()\n\t}\n", name, name)
			}
			fmt.Fprintf(b, "\t%s = nil\n", name)
		case schema.Optional:
			if t.IsUserDefined() {
				fmt.Fprintf(b, "\tif %s != nil {\n\t\t%s.free()\n\t\t%s = nil\n\t}\n", name, name, name)
			} else {
				fmt.Fprintf(b, "\t%s = nil\n", name)
			}
		}
	}
	b.WriteString("}\n\n")
}

func emitDynamicCount(b *strings.Builder, typeName string, vl *schema.VarList) error {
	fmt.Fprintf(b, "// dynamicCount returns the (bytes, submsgs) footprint %s's non-const\n", typeName)
	b.WriteString("// fields need beyond their fixed base size.\n")
	fmt.Fprintf(b, "func (v *%s) dynamicCount() (bytes, submsgs int) {\n", typeName)
	for _, f := range vl.Vars {
		name := "v." + exportedFieldName(f.Name)
		t := f.Type
		switch t.Complexity {
		case schema.Scalar:
			if t.IsUserDefined() {
				constSize, err := schema.VarListConstSize(&t.User.Fields)
				if err != nil {
					return err
				}
				if !constSize {
					fmt.Fprintf(b, "\t{\n\t\tb, s := %s.dynamicCount()\n\t\tbytes += b\n\t\tsubmsgs += s\n\t}\n", name)
				}
			}
		case schema.Array:
			if t.IsUserDefined() {
				constSize, err := schema.VarListConstSize(&t.User.Fields)
				if err != nil {
					return err
				}
				if !constSize {
					fmt.Fprintf(b, "\tfor i := range %s {\n\t\tb, s := %s[i].dynamicCount()\n\t\tbytes += b\n\t\tsubmsgs += s\n\t}\n", name, name)
				}
			}
		case schema.Sequence:
			elem := scalarOf(t)
			eb, es, err := schema.BaseSize(elem)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "\tif n := len(%s); n > 0 {\n\t\tbytes += %s\n\t\tsubmsgs += %s\n", name, scaledTerm("n", eb), scaledTerm("n", es))
			if t.IsUserDefined() {
				constSize, err := schema.VarListConstSize(&t.User.Fields)
				if err != nil {
					return err
				}
				if !constSize {
					fmt.Fprintf(b, "\t\tfor i := range %s {\n\t\t\tb, s := %s[i].dynamicCount()\n\t\t\tbytes += b\n\t\t\tsubmsgs += s\n\t\t}\n", name, name)
				}
			}
			b.WriteString("\t}\n")
		case schema.Optional:
			elem := scalarOf(t)
			eb, es, err := schema.BaseSize(elem)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "\tif %s != nil {\n\t\tbytes += %d\n\t\tsubmsgs += %d\n", name, eb, es)
			if t.IsUserDefined() {
				constSize, err := schema.VarListConstSize(&t.User.Fields)
				if err != nil {
					return err
				}
				if !constSize {
					fmt.Fprintf(b, "\t\tb, s := %s.dynamicCount()\n\t\tbytes += b\n\t\tsubmsgs += s\n", name)
				}
			}
			b.WriteString("\t}\n")
		}
	}
	b.WriteString("\treturn bytes, submsgs\n}\n\n")
	return nil
}

func emitSerialize(b *strings.Builder, typeName string, c *varListCodec) {
	fmt.Fprintf(b, "// Serialize encodes v as a standalone message.\n")
	fmt.Fprintf(b, "func (v *%s) Serialize() (*wire.Message, error) {\n", typeName)
	fmt.Fprintf(b, "\tbytes, submsgs := %s, %s\n", c.BaseBytesConst, c.BaseSubmsgs)
	if !c.ConstSize {
		b.WriteString("\tdb, ds := v.dynamicCount()\n\tbytes += db\n\tsubmsgs += ds\n")
	}
	b.WriteString("\tmsg := wire.NewMessage(bytes, submsgs)\n")
	b.WriteString("\titer := wire.NewIterator(msg)\n")
	fmt.Fprintf(b, "\tseg, err := iter.GetSegment(%s, %s)\n", c.BaseBytesConst, c.BaseSubmsgs)
	b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	b.WriteString("\tif err := v.write(seg, iter); err != nil {\n\t\treturn nil, err\n\t}\n")
	b.WriteString("\treturn msg, nil\n}\n\n")
}

func emitDeserialize(b *strings.Builder, typeName string, c *varListCodec) {
	fmt.Fprintf(b, "// Deserialize decodes msg into v.\n")
	fmt.Fprintf(b, "func (v *%s) Deserialize(msg *wire.Message) error {\n", typeName)
	b.WriteString("\titer := wire.NewIterator(msg)\n")
	fmt.Fprintf(b, "\tseg, err := iter.GetSegment(%s, %s)\n", c.BaseBytesConst, c.BaseSubmsgs)
	b.WriteString("\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tif err := v.read(seg, iter); err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tif !iter.AtEnd() {\n\t\tv.free()\n\t\treturn wire.ErrTrailingData\n\t}\n")
	b.WriteString("\treturn nil\n}\n\n")
}

// scaledTerm formats nExpr*factor for a GetSegment/count argument, folding
// away a zero factor (e.g. a sequence of a submsg-free scalar element)
// instead of emitting a literal "*0".
func scaledTerm(nExpr string, factor int) string {
	if factor == 0 {
		return "0"
	}
	return fmt.Sprintf("%s*%d", nExpr, factor)
}

func writeLines(b *strings.Builder, indent string, lines []string) {
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(l)
		b.WriteString("\n")
	}
}

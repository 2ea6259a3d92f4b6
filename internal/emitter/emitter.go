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

// Package emitter walks a sequencer-ordered symbol list and builds Go source
// text for two sinks: a declaration sink carrying every sequenced symbol's
// shape (struct and in/out-args record types, method-id constants, named
// constants), and an implementation sink carrying the count/write/read/free/
// serialize/deserialize method bodies plus each interface's request codecs
// and skeleton table, emitted only for symbols declared in the driver's root
// schema file.
//
// Generation is built directly with strings.Builder rather than
// text/template: every emitted construct is either a fixed boilerplate
// shape (struct literal, method signature) or a short per-field switch,
// neither of which benefits from a template language's text/logic
// separation here — the "templates" would be one-field-long and the
// indirection would cost more than it buys. See DESIGN.md.
package emitter

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/midlc/midlc/schema"
)

// Result holds the two Go source files Emit produces, formatted unless
// WithFormat(false) was passed.
type Result struct {
	Types []byte // <prefix>_types.go
	Impl  []byte // <prefix>_impl.go
}

// Option configures an Emit call beyond its required arguments.
type Option func(*emitOpts)

type emitOpts struct {
	progress func(done, total int)
	format   bool
}

// WithProgress registers fn to be called once per symbol as Emit walks
// sequenced, reporting how many of the total have been processed so far.
// Intended for a driver to back a terminal progress bar; Emit itself has
// no concept of terminals or display.
func WithProgress(fn func(done, total int)) Option {
	return func(o *emitOpts) { o.progress = fn }
}

// WithFormat controls whether Emit runs the generated sinks through
// goimports-style formatting (import pruning/sorting plus gofmt). Callers
// that skip it get the raw, unformatted builder output back; Emit defaults
// to formatting on, matching driver's own Config.Format default.
func WithFormat(enabled bool) Option {
	return func(o *emitOpts) { o.format = enabled }
}

// Emit generates the declaration and implementation sinks for sequenced,
// a sequencer-ordered symbol list, under Go package pkg. rootFile is the
// path symbols must have been declared in (schema.Struct.File /
// schema.Interface.File) to receive implementations; imported symbols get
// declarations only.
func Emit(pkg string, sequenced []schema.Symbol, rootFile string, opts ...Option) (Result, error) {
	o := emitOpts{format: true}
	for _, opt := range opts {
		opt(&o)
	}

	var types, impl strings.Builder

	fmt.Fprintf(&types, "package %s\n\n", pkg)
	types.WriteString("import (\n\t\"github.com/midlc/midlc/wire\"\n)\n\n")
	fmt.Fprintf(&impl, "package %s\n\n", pkg)
	impl.WriteString("import (\n\t\"github.com/midlc/midlc/servant\"\n\t\"github.com/midlc/midlc/wire\"\n)\n\n")

	for i, sym := range sequenced {
		switch v := sym.(type) {
		case *schema.Struct:
			writeTypeDecl(&types, v.Name, &v.Fields)
			if v.File == rootFile {
				if _, err := emitVarListImpl(&impl, v.Name, &v.Fields); err != nil {
					return Result{}, err
				}
			}
		case *schema.Interface:
			if err := emitInterface(&types, &impl, v, rootFile); err != nil {
				return Result{}, err
			}
		case *schema.IntConst:
			fmt.Fprintf(&types, "const %s = %d\n\n", v.Name, v.Value)
		case *schema.StrConst:
			fmt.Fprintf(&types, "const %s = %q\n\n", v.Name, v.Value)
		default:
			return Result{}, fmt.Errorf("emitter: unknown symbol type %T", sym)
		}
		if o.progress != nil {
			o.progress(i+1, len(sequenced))
		}
	}

	if !o.format {
		return Result{Types: []byte(types.String()), Impl: []byte(impl.String())}, nil
	}

	typesSrc, err := imports.Process("generated_types.go", []byte(types.String()), nil)
	if err != nil {
		return Result{}, fmt.Errorf("emitter: formatting declaration sink: %w", err)
	}
	implSrc, err := imports.Process("generated_impl.go", []byte(impl.String()), nil)
	if err != nil {
		return Result{}, fmt.Errorf("emitter: formatting implementation sink: %w", err)
	}
	return Result{Types: typesSrc, Impl: implSrc}, nil
}

// argTypeName synthesizes the Go type name for one function's in/out args
// record: e.g. interface Svc, function Do, in-args -> "SvcDoIn".
func argTypeName(iface *schema.Interface, fn *schema.Function, out bool) string {
	suffix := "In"
	if out {
		suffix = "Out"
	}
	return iface.Name + exportedFieldName(fn.Name) + suffix
}

// ifaceMethod pairs a function with the interface that actually declares it.
type ifaceMethod struct {
	iface *schema.Interface
	fn    *schema.Function
}

// allMethods returns every method iface can dispatch, ancestor-first, in
// exactly the order iface.MethodID assigns global ids: an ancestor's own
// methods all precede iface's. Used to size and fill a skeleton table that
// must cover the whole inherited method set, not just iface.Fns.
func allMethods(iface *schema.Interface) []ifaceMethod {
	var chain []*schema.Interface
	for cur := iface; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	var out []ifaceMethod
	for i := len(chain) - 1; i >= 0; i-- {
		for _, fn := range chain[i].Fns {
			out = append(out, ifaceMethod{iface: chain[i], fn: fn})
		}
	}
	return out
}

func emitInterface(types, impl *strings.Builder, iface *schema.Interface, rootFile string) error {
	hasImpl := iface.File == rootFile

	fmt.Fprintf(types, "// %s method ids. %s's own methods start at the total\n", iface.Name, iface.Name)
	types.WriteString("// method count of its ancestor chain.\n")
	types.WriteString("const (\n")
	for i, fn := range iface.Fns {
		fmt.Fprintf(types, "\t%s%sMethodID = %d\n", iface.Name, exportedFieldName(fn.Name), iface.MethodID(i))
	}
	types.WriteString(")\n\n")

	type methodCodec struct {
		fn       *schema.Function
		methodID int
		inType   string
		outType  string
		inC      *varListCodec
	}
	methodByFn := make(map[*schema.Function]methodCodec, len(iface.Fns))

	for i, fn := range iface.Fns {
		inType := argTypeName(iface, fn, false)
		outType := argTypeName(iface, fn, true)
		writeTypeDecl(types, inType, &fn.In)
		writeTypeDecl(types, outType, &fn.Out)

		mc := methodCodec{fn: fn, methodID: iface.MethodID(i), inType: inType, outType: outType}
		if hasImpl {
			inC, err := emitVarListImpl(impl, inType, &fn.In)
			if err != nil {
				return err
			}
			if _, err := emitVarListImpl(impl, outType, &fn.Out); err != nil {
				return err
			}
			mc.inC = inC
		}
		methodByFn[fn] = mc
	}

	if !hasImpl {
		return nil
	}

	for _, fn := range iface.Fns {
		mc := methodByFn[fn]
		inType := mc.inType
		createFn := "Create" + iface.Name + exportedFieldName(fn.Name) + "Msg"
		readFn := "Read" + iface.Name + exportedFieldName(fn.Name) + "Args"
		freeFn := "Free" + iface.Name + exportedFieldName(fn.Name) + "Args"

		fmt.Fprintf(impl, "// %s encodes args as a %s request: the root block's\n", createFn, iface.Name)
		impl.WriteString("// first byte is the method id, immediately followed by the in-args.\n")
		fmt.Fprintf(impl, "func %s(args *%s) (*wire.Message, error) {\n", createFn, inType)
		fmt.Fprintf(impl, "\tbytes, submsgs := 1+%s, %s\n", mc.inC.BaseBytesConst, mc.inC.BaseSubmsgs)
		if !mc.inC.ConstSize {
			impl.WriteString("\tdb, ds := args.dynamicCount()\n\tbytes += db\n\tsubmsgs += ds\n")
		}
		impl.WriteString("\tmsg := wire.NewMessage(bytes, submsgs)\n")
		impl.WriteString("\titer := wire.NewIterator(msg)\n")
		fmt.Fprintf(impl, "\tseg, err := iter.GetSegment(1+%s, %s)\n", mc.inC.BaseBytesConst, mc.inC.BaseSubmsgs)
		impl.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		fmt.Fprintf(impl, "\tseg.PutU8(%d)\n", mc.methodID)
		impl.WriteString("\tif err := args.write(seg, iter); err != nil {\n\t\treturn nil, err\n\t}\n")
		impl.WriteString("\treturn msg, nil\n}\n\n")

		fmt.Fprintf(impl, "// %s decodes the in-args from a %s request message whose root\n", readFn, iface.Name)
		impl.WriteString("// block begins with a 1-byte method id, already dispatched on by the caller.\n")
		fmt.Fprintf(impl, "func %s(msg *wire.Message, args *%s) error {\n", readFn, inType)
		impl.WriteString("\titer := wire.NewIterator(msg)\n")
		fmt.Fprintf(impl, "\tseg, err := iter.GetSegment(1+%s, %s)\n", mc.inC.BaseBytesConst, mc.inC.BaseSubmsgs)
		impl.WriteString("\tif err != nil {\n\t\treturn err\n\t}\n")
		impl.WriteString("\tseg.U8() // method id, already dispatched on\n")
		impl.WriteString("\tif err := args.read(seg, iter); err != nil {\n\t\treturn err\n\t}\n")
		impl.WriteString("\tif !iter.AtEnd() {\n\t\targs.free()\n\t\treturn wire.ErrTrailingData\n\t}\n")
		impl.WriteString("\treturn nil\n}\n\n")

		fmt.Fprintf(impl, "func %s(args *%s) {\n\targs.free()\n}\n\n", freeFn, inType)
	}

	// The skeleton must cover the full global method-id range iface.MethodID
	// assigns (ancestor methods included): servant.Servant.Call indexes it by
	// that flat id, not by how many methods iface itself declares.
	skelVar := iface.Name + "Skeleton"
	fmt.Fprintf(impl, "// %s is indexed by global method id across %s's ancestor\n", skelVar, iface.Name)
	impl.WriteString("// chain; servant.Servant dispatches requests through it without reflection.\n")
	fmt.Fprintf(impl, "var %s = []servant.SkeletonEntry{\n", skelVar)
	for _, m := range allMethods(iface) {
		entryIface, fn := m.iface, m.fn

		var inType, outType, readFn, freeFn string
		var inC *varListCodec
		if entryIface == iface {
			mc := methodByFn[fn]
			inType, outType, inC = mc.inType, mc.outType, mc.inC
			readFn = "Read" + iface.Name + exportedFieldName(fn.Name) + "Args"
			freeFn = "Free" + iface.Name + exportedFieldName(fn.Name) + "Args"
		} else {
			if entryIface.File != rootFile {
				return fmt.Errorf("emitter: %s inherits %s.%s, which has no implementation in this compile (declare %s in the root schema too)",
					iface.Name, entryIface.Name, fn.Name, entryIface.Name)
			}
			inType = argTypeName(entryIface, fn, false)
			outType = argTypeName(entryIface, fn, true)
			c, err := newVarListCodec(inType, &fn.In)
			if err != nil {
				return err
			}
			inC = c
			readFn = "Read" + entryIface.Name + exportedFieldName(fn.Name) + "Args"
			freeFn = "Free" + entryIface.Name + exportedFieldName(fn.Name) + "Args"
		}

		impl.WriteString("\t{\n")
		fmt.Fprintf(impl, "\t\tArgsSize: 1 + %s,\n", inC.BaseBytesConst)
		fmt.Fprintf(impl, "\t\tNewArgs: func() any { return &%s{} },\n", inType)
		fmt.Fprintf(impl, "\t\tReadArgs: func(msg *wire.Message, args any) error {\n\t\t\treturn %s(msg, args.(*%s))\n\t\t},\n", readFn, inType)
		fmt.Fprintf(impl, "\t\tFreeArgs: func(args any) {\n\t\t\t%s(args.(*%s))\n\t\t},\n", freeFn, inType)
		fmt.Fprintf(impl, "\t\tCreateReply: func(out any) (*wire.Message, error) {\n\t\t\treturn out.(*%s).Serialize()\n\t\t},\n", outType)
		impl.WriteString("\t},\n")
	}
	impl.WriteString("}\n\n")

	return nil
}

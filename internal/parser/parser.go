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

// Package parser is a hand-written recursive-descent parser that turns
// one file's token stream directly into schema.Symbol values, resolving
// references to other files through a symboldb.DB as it goes.
package parser

import (
	"github.com/midlc/midlc/internal/arena"
	"github.com/midlc/midlc/internal/diagnostics"
	"github.com/midlc/midlc/internal/lexer"
	"github.com/midlc/midlc/internal/symboldb"
	"github.com/midlc/midlc/schema"
)

// ResolveFunc resolves the path named in a `ref` declaration, relative to
// the file that declared it, to the path symboldb tracks files under. The
// driver supplies one that resolves relative to the declaring file's
// directory; the
// actual read+parse happens inside the symboldb.ParseFunc it also wires up.
type ResolveFunc func(fromFile, refPath string) (resolvedPath string, err error)

// Parser parses exactly one file. Its local index holds every symbol
// visible while parsing that file: its own declarations plus whatever was
// imported via `ref`.
type Parser struct {
	file string
	lex  *lexer.Lexer
	sink *diagnostics.Sink
	tok  lexer.Token

	db      *symboldb.DB
	resolve ResolveFunc
	arena   *arena.Arena

	local map[string]schema.Symbol
	order []schema.Symbol
}

// Parse parses src as the file at path, returning its declared symbols in
// declaration order and the diagnostics collected. Every problem, including
// a failure to read or parse a file named by a `ref`, is reported through
// sink; the returned error is always nil. a owns every schema value this parse allocates;
// the caller decides when (or whether) to release it.
func Parse(path, src string, db *symboldb.DB, resolve ResolveFunc, a *arena.Arena) ([]schema.Symbol, *diagnostics.Sink, error) {
	sink := diagnostics.NewSink(path)
	p := &Parser{
		file:    path,
		lex:     lexer.New(src, sink),
		sink:    sink,
		db:      db,
		resolve: resolve,
		arena:   a,
		local:   make(map[string]schema.Symbol),
	}
	p.advance()

	for p.tok.Kind != lexer.EOF {
		if err := p.parseDecl(); err != nil {
			return p.order, sink, err
		}
	}
	return p.order, sink, nil
}

func (p *Parser) advance() {
	p.tok = p.lex.Next()
}

func (p *Parser) expect(k lexer.Kind) lexer.Token {
	tok := p.tok
	if tok.Kind != k {
		p.sink.Log(diagnostics.Error, tok.Line, tok.Col, "unexpected token %s, expected %s", describeTok(tok), k)
	} else {
		p.advance()
	}
	return tok
}

func describeTok(tok lexer.Token) string {
	if tok.Kind == lexer.Ident {
		return "identifier " + tok.Text
	}
	return tok.Kind.String()
}

// declareLocal registers sym under name in the local index, reporting a
// clash (and naming the previously declared kind) if the name is taken.
func (p *Parser) declareLocal(name string, line, col int, sym schema.Symbol) {
	if existing, ok := p.local[name]; ok {
		p.sink.Log(diagnostics.Error, line, col, "%q is already declared as %s", name, symbolKind(existing))
		return
	}
	p.local[name] = sym
	p.order = append(p.order, sym)
}

func symbolKind(s schema.Symbol) string {
	switch s.(type) {
	case *schema.Struct:
		return "a struct"
	case *schema.Interface:
		return "an interface"
	case *schema.IntConst:
		return "an integer constant"
	case *schema.StrConst:
		return "a string constant"
	default:
		return "a symbol"
	}
}

func (p *Parser) parseDecl() error {
	switch p.tok.Kind {
	case lexer.KwConst:
		p.parseConst()
	case lexer.KwStruct:
		p.parseStruct()
	case lexer.KwInterface:
		p.parseInterface()
	case lexer.KwRef:
		return p.parseRef()
	default:
		tok := p.tok
		p.sink.Log(diagnostics.Error, tok.Line, tok.Col, "unexpected token %s, expected a declaration", describeTok(tok))
		p.advance()
	}
	return nil
}

func (p *Parser) parseRef() error {
	refTok := p.tok
	p.advance() // 'ref'
	pathTok := p.expect(lexer.StringLiteral)
	p.expect(lexer.Semi)

	if p.resolve == nil || p.db == nil {
		p.sink.Log(diagnostics.Error, refTok.Line, refTok.Col, "no file resolver configured for ref %q", pathTok.StrValue)
		return nil
	}

	resolvedPath, err := p.resolve(p.file, pathTok.StrValue)
	if err != nil {
		p.sink.Log(diagnostics.Error, refTok.Line, refTok.Col, "cannot resolve referenced file %q: %v", pathTok.StrValue, err)
		return nil
	}

	file, err := p.db.ParseIfNeeded(resolvedPath)
	if err != nil {
		p.sink.Log(diagnostics.Error, refTok.Line, refTok.Col, "%v", err)
		return nil
	}

	for _, s := range file.Symbols {
		schemaSym, ok := s.(schema.Symbol)
		if !ok {
			continue
		}
		if existing, clash := p.local[schemaSym.SymbolName()]; clash {
			p.sink.Log(diagnostics.Error, refTok.Line, refTok.Col,
				"%q imported from %q clashes with %s already in scope",
				schemaSym.SymbolName(), resolvedPath, symbolKind(existing))
			continue
		}
		p.local[schemaSym.SymbolName()] = schemaSym
		// Imported symbols are visible for reference resolution but are not
		// re-declared by this file, so they are not appended to p.order.
	}
	return nil
}

func (p *Parser) parseConst() {
	p.advance() // 'const'
	switch p.tok.Kind {
	case lexer.KwInt:
		p.advance()
		nameTok := p.expect(lexer.Ident)
		p.expect(lexer.Equals)
		valTok := p.expect(lexer.IntLiteral)
		p.expect(lexer.Semi)
		c := arena.New(p.arena, &schema.IntConst{Name: nameTok.Text, Value: valTok.IntValue})
		p.declareLocal(nameTok.Text, nameTok.Line, nameTok.Col, c)
	case lexer.KwStr:
		p.advance()
		nameTok := p.expect(lexer.Ident)
		p.expect(lexer.Equals)
		valTok := p.expect(lexer.StringLiteral)
		p.expect(lexer.Semi)
		c := arena.New(p.arena, &schema.StrConst{Name: nameTok.Text, Value: valTok.StrValue})
		p.declareLocal(nameTok.Text, nameTok.Line, nameTok.Col, c)
	default:
		p.sink.Log(diagnostics.Error, p.tok.Line, p.tok.Col, "expected 'int' or 'str' after 'const', got %s", describeTok(p.tok))
	}
}

func (p *Parser) parseStruct() {
	p.advance() // 'struct'
	nameTok := p.expect(lexer.Ident)
	st := arena.New(p.arena, &schema.Struct{Name: nameTok.Text, File: p.file})
	// Declared before its body is parsed so self-reference (e.g. optional of
	// this same struct) resolves; base_size cycle detection is schema.sizer's
	// job, not the parser's.
	p.declareLocal(nameTok.Text, nameTok.Line, nameTok.Col, st)

	p.expect(lexer.LBrace)
	for p.tok.Kind != lexer.RBrace && p.tok.Kind != lexer.EOF {
		v := p.parseVariable()
		if v == nil {
			continue
		}
		if st.Fields.ByName(v.Name) != nil {
			p.sink.Log(diagnostics.Error, p.tok.Line, p.tok.Col, "duplicate field name %q in struct %q", v.Name, st.Name)
			continue
		}
		st.Fields.Vars = append(st.Fields.Vars, v)
	}
	p.expect(lexer.RBrace)
	st.Fields.Vars = arena.NewSlice(p.arena, st.Fields.Vars)
}

func (p *Parser) parseInterface() {
	p.advance() // 'interface'
	nameTok := p.expect(lexer.Ident)

	iface := arena.New(p.arena, &schema.Interface{Name: nameTok.Text, File: p.file})
	if p.tok.Kind == lexer.Colon {
		p.advance()
		parentTok := p.expect(lexer.Ident)
		parentSym, ok := p.local[parentTok.Text]
		if !ok {
			p.sink.Log(diagnostics.Error, parentTok.Line, parentTok.Col, "unresolved reference to %q", parentTok.Text)
		} else if parentIface, ok := parentSym.(*schema.Interface); ok {
			iface.Parent = parentIface
		} else {
			p.sink.Log(diagnostics.Error, parentTok.Line, parentTok.Col,
				"%q is %s, expected an interface", parentTok.Text, symbolKind(parentSym))
		}
	}
	p.declareLocal(nameTok.Text, nameTok.Line, nameTok.Col, iface)

	p.expect(lexer.LBrace)
	for p.tok.Kind != lexer.RBrace && p.tok.Kind != lexer.EOF {
		fn := p.parseFunction()
		if fn == nil {
			continue
		}
		for _, existing := range iface.Fns {
			if existing.Name == fn.Name {
				p.sink.Log(diagnostics.Error, p.tok.Line, p.tok.Col, "duplicate function name %q in interface %q", fn.Name, iface.Name)
				fn = nil
				break
			}
		}
		if fn != nil {
			iface.Fns = append(iface.Fns, fn)
		}
	}
	p.expect(lexer.RBrace)
	iface.Fns = arena.NewSlice(p.arena, iface.Fns)
}

func (p *Parser) parseFunction() *schema.Function {
	nameTok := p.expect(lexer.Ident)
	fn := &schema.Function{Name: nameTok.Text}

	p.expect(lexer.LParen)
	fn.In = p.parseVarList()
	p.expect(lexer.RParen)
	p.expect(lexer.Arrow)
	p.expect(lexer.LParen)
	fn.Out = p.parseVarList()
	p.expect(lexer.RParen)
	p.expect(lexer.Semi)
	return fn
}

func (p *Parser) parseVarList() schema.VarList {
	var list schema.VarList
	if p.tok.Kind == lexer.RParen {
		return list
	}
	for {
		v := p.parseTypedName()
		if v != nil {
			if list.ByName(v.Name) != nil {
				p.sink.Log(diagnostics.Error, p.tok.Line, p.tok.Col, "duplicate parameter name %q", v.Name)
			} else {
				list.Vars = append(list.Vars, v)
			}
		}
		if p.tok.Kind != lexer.Comma {
			break
		}
		p.advance()
	}
	return list
}

// parseVariable parses one semicolon-terminated struct field. On a parse
// failure it resynchronizes to the next ';' (or '}'/EOF) so one bad field
// doesn't cascade into spurious errors on the tokens that follow it.
func (p *Parser) parseVariable() *schema.Variable {
	v := p.parseTypedName()
	if v == nil {
		for p.tok.Kind != lexer.Semi && p.tok.Kind != lexer.RBrace && p.tok.Kind != lexer.EOF {
			p.advance()
		}
	}
	if p.tok.Kind == lexer.Semi {
		p.advance()
	}
	return v
}

// parseTypedName parses "type name" shared by struct fields and function
// parameters (the latter has no trailing semicolon, handled by the caller).
func (p *Parser) parseTypedName() *schema.Variable {
	t, ok := p.parseType()
	if !ok {
		return nil
	}
	nameTok := p.expect(lexer.Ident)
	if nameTok.Kind != lexer.Ident {
		return nil
	}
	return &schema.Variable{Type: t, Name: nameTok.Text}
}

func (p *Parser) parseType() (schema.Type, bool) {
	switch p.tok.Kind {
	case lexer.KwOptional:
		p.advance()
		base, ok := p.parseBaseType()
		if !ok {
			return schema.Type{}, false
		}
		base.Complexity = schema.Optional
		return base, true
	case lexer.KwSeq:
		p.advance()
		base, ok := p.parseBaseType()
		if !ok {
			return schema.Type{}, false
		}
		base.Complexity = schema.Sequence
		return base, true
	case lexer.KwArray:
		p.advance()
		p.expect(lexer.LParen)
		nTok := p.expect(lexer.IntLiteral)
		p.expect(lexer.RParen)
		base, ok := p.parseBaseType()
		if !ok {
			return schema.Type{}, false
		}
		if nTok.IntValue <= 0 {
			p.sink.Log(diagnostics.Error, nTok.Line, nTok.Col, "array length must be > 0, got %d", nTok.IntValue)
		}
		base.Complexity = schema.Array
		base.ArrayLen = int(nTok.IntValue)
		return base, true
	default:
		return p.parseBaseType()
	}
}

var fundamentalKeywords = map[lexer.Kind]schema.Fundamental{
	lexer.KwU8: schema.U8, lexer.KwU16: schema.U16, lexer.KwU32: schema.U32, lexer.KwU64: schema.U64,
	lexer.KwI8: schema.I8, lexer.KwI16: schema.I16, lexer.KwI32: schema.I32, lexer.KwI64: schema.I64,
	lexer.KwF32: schema.F32, lexer.KwF64: schema.F64, lexer.KwStr: schema.Str, lexer.KwMsg: schema.Msg,
}

func (p *Parser) parseBaseType() (schema.Type, bool) {
	if f, ok := fundamentalKeywords[p.tok.Kind]; ok {
		p.advance()
		return schema.Type{Fundamental: f}, true
	}
	if p.tok.Kind == lexer.Ident {
		nameTok := p.tok
		p.advance()
		sym, ok := p.local[nameTok.Text]
		if !ok {
			p.sink.Log(diagnostics.Error, nameTok.Line, nameTok.Col, "unresolved reference to %q", nameTok.Text)
			return schema.Type{}, false
		}
		st, ok := sym.(*schema.Struct)
		if !ok {
			p.sink.Log(diagnostics.Error, nameTok.Line, nameTok.Col, "%q is %s, expected a struct", nameTok.Text, symbolKind(sym))
			return schema.Type{}, false
		}
		return schema.Type{User: st}, true
	}
	p.sink.Log(diagnostics.Error, p.tok.Line, p.tok.Col, "expected a type, got %s", describeTok(p.tok))
	return schema.Type{}, false
}

package parser

import (
	"github.com/alan2022/alanc/internal/diag"
	"github.com/alan2022/alanc/internal/emitter"
	"github.com/alan2022/alanc/internal/symtab"
	"github.com/alan2022/alanc/internal/token"
)

// parseSource recognizes: "source" id funcdef* body, followed by end of file
func (p *Parser) parseSource() {
	p.expect(token.KwSource)
	name := p.expect(token.Ident)
	p.em.ClassName = name.Lexeme

	for p.at(token.KwFunction) {
		p.parseFuncdef()
	}

	if !p.tab.OpenSubroutine("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)}) {
		diag.MultipleDefinition(name.Pos, "main")
	}
	p.em.OpenBody("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)})
	p.tab.ReserveSlots(1) // JVM local 0 holds main's String[] args parameter
	p.returnType = symtab.ValType{}
	p.hasReturn = false

	p.parseBody()
	p.em.Emit(emitter.Return)
	p.em.CloseBody(p.tab.VariablesWidth())
	p.tab.CloseSubroutine()

	p.expect(token.EOF)
}

// parseFuncdef recognizes:
// "function" id "(" [formalpars] ")" ["to" type] body
func (p *Parser) parseFuncdef() {
	p.expect(token.KwFunction)
	name := p.expect(token.Ident)

	p.expect(token.LParen)
	params := p.parseFormalParams()
	p.expect(token.RParen)

	ret := symtab.NewCallable(symtab.Void)
	if p.at(token.KwTo) {
		p.advance()
		base, isArray := p.parseType()
		ret = symtab.NewCallable(base)
		if isArray {
			ret = ret.SetAsArray()
		}
	}
	paramTypes := make([]symtab.ValType, len(params))
	for i, v := range params {
		paramTypes[i] = v.Type
	}
	prop := symtab.IDProp{Type: ret, Params: paramTypes}

	if !p.tab.OpenSubroutine(name.Lexeme, prop) {
		diag.MultipleDefinition(name.Pos, name.Lexeme)
	}
	for _, v := range params {
		if !p.tab.Insert(v.ID, symtab.IDProp{Type: v.Type, Offset: p.tab.VariablesWidth()}) {
			diag.MultipleDefinition(v.Pos, v.ID)
		}
	}

	p.em.OpenBody(name.Lexeme, prop)
	p.returnType = ret
	p.hasReturn = ret.Base() != symtab.Void

	p.parseBody()
	p.emitEpilog()
	p.em.CloseBody(p.tab.VariablesWidth())
	p.tab.CloseSubroutine()
}

// parseFormalParams recognizes: [type id {"," type id}]
func (p *Parser) parseFormalParams() []symtab.Variable {
	var params []symtab.Variable
	if p.at(token.RParen) {
		return params
	}
	for {
		base, isArray := p.parseType()
		id := p.expect(token.Ident)
		vt := symtab.NewScalar(base)
		if isArray {
			vt = symtab.NewArray(base)
		}
		params = append(params, symtab.Variable{ID: id.Lexeme, Type: vt, Pos: id.Pos})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return params
}

// parseType recognizes: ("boolean"|"integer") ["array"]
func (p *Parser) parseType() (symtab.Base, bool) {
	var base symtab.Base
	switch p.cur.Kind {
	case token.KwBoolean:
		base = symtab.Boolean
	case token.KwInteger:
		base = symtab.Integer
	default:
		diag.ExpectedType(p.cur.Pos, p.cur.String())
	}
	p.advance()
	isArray := false
	if p.at(token.KwArray) {
		p.advance()
		isArray = true
	}
	return base, isArray
}

// parseVardef recognizes: type id {"," id} ";"
func (p *Parser) parseVardef() {
	base, isArray := p.parseType()
	for {
		id := p.expect(token.Ident)
		vt := symtab.NewScalar(base)
		if isArray {
			vt = symtab.NewArray(base)
		}
		if !p.tab.Insert(id.Lexeme, symtab.IDProp{Type: vt, Offset: p.tab.VariablesWidth()}) {
			diag.MultipleDefinition(id.Pos, id.Lexeme)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Semi)
}

// emitEpilog appends the trailing return every subroutine body needs at its
// textual end, even when every reachable path already left through an
// explicit "leave": the Jasmin verifier targeted here predates mandatory
// stack maps and tolerates the resulting dead code.
func (p *Parser) emitEpilog() {
	switch {
	case !p.hasReturn:
		p.em.Emit(emitter.Return)
	case p.returnType.IsArray():
		p.em.Emit(emitter.ConstNull)
		p.em.Emit(emitter.ReturnObject)
	default:
		p.em.EmitInt(emitter.LoadConst, 0)
		p.em.Emit(emitter.ReturnInt)
	}
}

// parseBody recognizes: "begin" {vardef} statements "end"
//
// A vardef is distinguished from the first statement by lookahead: only a
// type keyword starts one, every statement form starts with something else.
func (p *Parser) parseBody() {
	p.expect(token.KwBegin)
	for p.at(token.KwBoolean) || p.at(token.KwInteger) {
		p.parseVardef()
	}
	p.parseStatements()
	p.expect(token.KwEnd)
}

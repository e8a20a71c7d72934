package parser

import (
	"github.com/alan2022/alanc/internal/diag"
	"github.com/alan2022/alanc/internal/emitter"
	"github.com/alan2022/alanc/internal/symtab"
	"github.com/alan2022/alanc/internal/token"
)

// parseExpr recognizes: simple [relop simple]
func (p *Parser) parseExpr() symtab.ValType {
	pos := p.cur.Pos
	lt := p.parseSimple()
	op, ok := relops[p.cur.Kind]
	if !ok {
		return lt
	}
	p.advance()
	rt := p.parseSimple()
	if lt.IsArray() || rt.IsArray() || lt.Base() != rt.Base() {
		diag.IncompatibleTypes(pos, "comparison")
	}
	p.em.Cmp(op)
	return symtab.NewScalar(symtab.Boolean)
}

var relops = map[token.Kind]emitter.Op{
	token.Eq: emitter.IfEq,
	token.Ne: emitter.IfNe,
	token.Lt: emitter.IfLt,
	token.Le: emitter.IfLe,
	token.Gt: emitter.IfGt,
	token.Ge: emitter.IfGe,
}

// parseSimple recognizes: ["-"] term {addop term}
func (p *Parser) parseSimple() symtab.ValType {
	var t symtab.ValType
	if p.at(token.Minus) {
		pos := p.cur.Pos
		p.advance()
		p.em.EmitInt(emitter.LoadConst, 0)
		t = p.parseTerm()
		if !t.IsInteger() || t.IsArray() {
			diag.IncompatibleTypes(pos, "unary -")
		}
		p.em.Emit(emitter.Sub)
	} else {
		t = p.parseTerm()
	}

	for {
		pos := p.cur.Pos
		op := p.cur.Kind
		if op != token.Plus && op != token.Minus && op != token.KwOr {
			return t
		}
		p.advance()
		rt := p.parseTerm()
		switch op {
		case token.Plus, token.Minus:
			if !t.IsInteger() || t.IsArray() || !rt.IsInteger() || rt.IsArray() {
				diag.IncompatibleTypes(pos, "arithmetic")
			}
			if op == token.Plus {
				p.em.Emit(emitter.Add)
			} else {
				p.em.Emit(emitter.Sub)
			}
		case token.KwOr:
			if !t.IsBoolean() || t.IsArray() || !rt.IsBoolean() || rt.IsArray() {
				diag.IncompatibleTypes(pos, "or")
			}
			p.em.Emit(emitter.Or)
		}
	}
}

// parseTerm recognizes: factor {mulop factor}
func (p *Parser) parseTerm() symtab.ValType {
	t := p.parseFactor()
	for {
		pos := p.cur.Pos
		op := p.cur.Kind
		if op != token.Star && op != token.Slash && op != token.KwRem && op != token.KwAnd {
			return t
		}
		p.advance()
		rt := p.parseFactor()
		switch op {
		case token.Star, token.Slash, token.KwRem:
			if !t.IsInteger() || t.IsArray() || !rt.IsInteger() || rt.IsArray() {
				diag.IncompatibleTypes(pos, "arithmetic")
			}
			switch op {
			case token.Star:
				p.em.Emit(emitter.Mul)
			case token.Slash:
				p.em.Emit(emitter.Div)
			case token.KwRem:
				p.em.Emit(emitter.Rem)
			}
		case token.KwAnd:
			if !t.IsBoolean() || t.IsArray() || !rt.IsBoolean() || rt.IsArray() {
				diag.IncompatibleTypes(pos, "and")
			}
			p.em.Emit(emitter.And)
		}
	}
}

// parseFactor recognizes:
//
//	id ["[" simple "]" | "(" [expr {"," expr}] ")"]
//	| number | "true" | "false" | "(" expr ")" | "not" factor
func (p *Parser) parseFactor() symtab.ValType {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case token.Ident:
		name := p.cur.Lexeme
		p.advance()
		return p.parseIdentFactor(pos, name)
	case token.IntLit:
		v := p.cur.IntVal
		p.advance()
		p.em.EmitInt(emitter.LoadConst, v)
		return symtab.NewScalar(symtab.Integer)
	case token.KwTrue:
		p.advance()
		p.em.EmitInt(emitter.LoadConst, 1)
		return symtab.NewScalar(symtab.Boolean)
	case token.KwFalse:
		p.advance()
		p.em.EmitInt(emitter.LoadConst, 0)
		return symtab.NewScalar(symtab.Boolean)
	case token.LParen:
		p.advance()
		t := p.parseExpr()
		p.expect(token.RParen)
		return t
	case token.KwNot:
		p.advance()
		t := p.parseFactor()
		if !t.IsBoolean() || t.IsArray() {
			diag.IncompatibleTypes(pos, "not")
		}
		p.em.EmitInt(emitter.LoadConst, 1)
		p.em.Emit(emitter.Xor)
		return symtab.NewScalar(symtab.Boolean)
	default:
		diag.ExpectedFactor(pos, p.cur.String())
		panic("unreachable")
	}
}

// parseIdentFactor handles the three suffix-less/subscripted/called shapes
// an identifier can take as a factor, given its symbol table binding.
func (p *Parser) parseIdentFactor(pos token.Position, name string) symtab.ValType {
	prop, ok := p.tab.Find(name)
	if !ok {
		diag.UnknownIdentifier(pos, name)
	}

	if prop.Type.IsCallable() {
		if !p.at(token.LParen) {
			diag.NotAVariable(pos, name)
		}
		if prop.Type.Base() == symtab.Void {
			diag.NotAFunction(pos, name)
		}
		p.parseCallArgs(pos, name, prop)
		if prop.Type.IsArray() {
			return symtab.NewArray(prop.Type.Base())
		}
		return symtab.NewScalar(prop.Type.Base())
	}

	if p.at(token.LBrack) {
		if !prop.Type.IsArray() {
			diag.NotAnArray(pos, name)
		}
		p.em.EmitInt(emitter.LoadLocal, int(prop.Offset))
		p.advance()
		idxPos := p.cur.Pos
		idx := p.parseSimple()
		if !idx.IsInteger() || idx.IsArray() {
			diag.IncompatibleTypes(idxPos, "array index")
		}
		p.expect(token.RBrack)
		p.em.Emit(emitter.ArrayLoad)
		return symtab.NewScalar(prop.Type.Base())
	}

	if prop.Type.IsArray() {
		diag.IllegalArrayOperation(pos, name)
	}
	p.em.EmitInt(emitter.LoadLocal, int(prop.Offset))
	return symtab.NewScalar(prop.Type.Base())
}

// parseCallArgs recognizes: "(" [expr {"," expr}] ")" against the callee's
// declared parameter list, checking arity and per-argument type, then emits
// the invocation.
func (p *Parser) parseCallArgs(pos token.Position, name string, prop symtab.IDProp) {
	p.expect(token.LParen)
	var args []symtab.ValType
	if !p.at(token.RParen) {
		for {
			argPos := p.cur.Pos
			at := p.parseExpr()
			args = append(args, at)
			if len(args) <= len(prop.Params) {
				want := prop.Params[len(args)-1]
				if want.IsArray() != at.IsArray() || want.Base() != at.Base() {
					diag.IncompatibleTypes(argPos, "argument to "+name)
				}
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RParen)
	if len(args) < len(prop.Params) {
		diag.TooFewArguments(pos, name)
	}
	if len(args) > len(prop.Params) {
		diag.TooManyArguments(pos, name)
	}
	isProcedure := prop.Type.Base() == symtab.Void
	p.em.Call(p.em.ClassName, name, prop.Params, prop.Type, isProcedure)
}

package parser

import (
	"github.com/alan2022/alanc/internal/diag"
	"github.com/alan2022/alanc/internal/emitter"
	"github.com/alan2022/alanc/internal/symtab"
	"github.com/alan2022/alanc/internal/token"
)

// parseStatements recognizes: statement {";" statement}
func (p *Parser) parseStatements() {
	p.parseStatement()
	for p.at(token.Semi) {
		p.advance()
		p.parseStatement()
	}
}

// parseStatement dispatches on the statement's leading token.
func (p *Parser) parseStatement() {
	switch p.cur.Kind {
	case token.Ident:
		p.parseAssign()
	case token.KwCall:
		p.parseCallStatement()
	case token.KwIf:
		p.parseIf()
	case token.KwGet:
		p.parseInput()
	case token.KwLeave:
		p.parseLeave()
	case token.KwPut:
		p.parseOutput()
	case token.KwWhile:
		p.parseWhile()
	case token.KwRelax:
		p.advance()
	default:
		diag.ExpectedStatement(p.cur.Pos, p.cur.String())
	}
}

// parseAssign recognizes:
//
//	id ["[" simple "]"] ":=" (simple | "array" simple)
func (p *Parser) parseAssign() {
	pos := p.cur.Pos
	name := p.cur.Lexeme
	p.advance()

	prop, ok := p.tab.Find(name)
	if !ok {
		diag.UnknownIdentifier(pos, name)
	}
	if prop.Type.IsCallable() {
		diag.NotAVariable(pos, name)
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
		p.expect(token.Gets)
		rhsPos := p.cur.Pos
		rt := p.parseSimple()
		if rt.IsArray() || rt.Base() != prop.Type.Base() {
			diag.IncompatibleTypes(rhsPos, "assignment")
		}
		p.em.Emit(emitter.ArrayStore)
		return
	}

	p.expect(token.Gets)
	if p.at(token.KwArray) {
		if !prop.Type.IsArray() {
			diag.IllegalArrayOperation(pos, name)
		}
		p.advance()
		lenPos := p.cur.Pos
		lt := p.parseSimple()
		if !lt.IsInteger() || lt.IsArray() {
			diag.IncompatibleTypes(lenPos, "array length")
		}
		p.em.EmitArrayAlloc(arrayTypeTag(prop.Type.Base()))
		p.em.EmitInt(emitter.StoreLocal, int(prop.Offset))
		return
	}

	if prop.Type.IsArray() {
		diag.IllegalArrayOperation(pos, name)
	}
	rhsPos := p.cur.Pos
	rt := p.parseSimple()
	if rt.IsArray() || rt.Base() != prop.Type.Base() {
		diag.IncompatibleTypes(rhsPos, "assignment")
	}
	p.em.EmitInt(emitter.StoreLocal, int(prop.Offset))
}

// parseCallStatement recognizes: "call" id "(" [expr {"," expr}] ")",
// discarding any value the callee returns.
func (p *Parser) parseCallStatement() {
	p.expect(token.KwCall)
	pos := p.cur.Pos
	name := p.expect(token.Ident).Lexeme

	prop, ok := p.tab.Find(name)
	if !ok {
		diag.UnknownIdentifier(pos, name)
	}
	if !prop.Type.IsCallable() {
		diag.NotAProcedure(pos, name)
	}
	p.parseCallArgs(pos, name, prop)
	if prop.Type.Base() != symtab.Void {
		p.em.Emit(emitter.Pop)
	}
}

// parseIf recognizes:
//
//	"if" expr "then" statements {"elsif" expr "then" statements} ["else" statements] "end"
func (p *Parser) parseIf() {
	p.expect(token.KwIf)
	p.checkBooleanCond("if condition")
	p.expect(token.KwThen)

	lend := p.em.GetLabel()
	lnext := p.em.GetLabel()
	p.em.EmitBranch(emitter.IfZero, lnext)
	p.parseStatements()
	p.em.EmitBranch(emitter.Goto, lend)
	p.em.GenLabel(lnext)

	for p.at(token.KwElsif) {
		p.advance()
		p.checkBooleanCond("elsif condition")
		p.expect(token.KwThen)
		lnext = p.em.GetLabel()
		p.em.EmitBranch(emitter.IfZero, lnext)
		p.parseStatements()
		p.em.EmitBranch(emitter.Goto, lend)
		p.em.GenLabel(lnext)
	}

	if p.at(token.KwElse) {
		p.advance()
		p.parseStatements()
	}

	p.em.GenLabel(lend)
	p.expect(token.KwEnd)
}

// parseWhile recognizes: "while" expr "do" statements "end"
func (p *Parser) parseWhile() {
	p.expect(token.KwWhile)
	lstart := p.em.GetLabel()
	p.em.GenLabel(lstart)
	p.checkBooleanCond("while condition")
	p.expect(token.KwDo)
	lend := p.em.GetLabel()
	p.em.EmitBranch(emitter.IfZero, lend)
	p.parseStatements()
	p.em.EmitBranch(emitter.Goto, lstart)
	p.em.GenLabel(lend)
	p.expect(token.KwEnd)
}

func (p *Parser) checkBooleanCond(context string) {
	pos := p.cur.Pos
	t := p.parseExpr()
	if !t.IsBoolean() || t.IsArray() {
		diag.IncompatibleTypes(pos, context)
	}
}

// parseInput recognizes: "get" id ["[" simple "]"]
func (p *Parser) parseInput() {
	p.expect(token.KwGet)
	pos := p.cur.Pos
	name := p.expect(token.Ident).Lexeme

	prop, ok := p.tab.Find(name)
	if !ok {
		diag.UnknownIdentifier(pos, name)
	}
	if prop.Type.IsCallable() {
		diag.NotAVariable(pos, name)
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
		p.em.GenRead(symtab.NewScalar(prop.Type.Base()))
		p.em.Emit(emitter.ArrayStore)
		return
	}

	if prop.Type.IsArray() {
		diag.IllegalArrayOperation(pos, name)
	}
	p.em.GenRead(symtab.NewScalar(prop.Type.Base()))
	p.em.EmitInt(emitter.StoreLocal, int(prop.Offset))
}

// parseOutput recognizes: "put" (expr|string) {"." (expr|string)}
func (p *Parser) parseOutput() {
	p.expect(token.KwPut)
	for {
		pos := p.cur.Pos
		if p.at(token.StrLit) {
			s := p.cur.StrVal
			p.advance()
			p.em.GenPrintString(s)
		} else if startsExpr(p.cur.Kind) {
			t := p.parseExpr()
			if t.IsArray() {
				diag.IncompatibleTypes(pos, "put")
			}
			p.em.GenPrint(t)
		} else {
			diag.ExpectedExprOrString(pos, p.cur.String())
		}
		if !p.at(token.Dot) {
			return
		}
		p.advance()
	}
}

// parseLeave recognizes: "leave" [expr]
func (p *Parser) parseLeave() {
	leave := p.expect(token.KwLeave)
	if startsExpr(p.cur.Kind) {
		if !p.hasReturn {
			diag.IncompatibleTypes(leave.Pos, "leave")
		}
		t := p.parseExpr()
		if t.IsArray() != p.returnType.IsArray() || t.Base() != p.returnType.Base() {
			diag.IncompatibleTypes(leave.Pos, "leave")
		}
		if t.IsArray() {
			p.em.Emit(emitter.ReturnObject)
		} else {
			p.em.Emit(emitter.ReturnInt)
		}
		return
	}
	if p.hasReturn {
		diag.IncompatibleTypes(leave.Pos, "leave")
	}
	p.em.Emit(emitter.Return)
}

// startsExpr reports whether kind can begin an expr/simple/term/factor.
func startsExpr(kind token.Kind) bool {
	switch kind {
	case token.Ident, token.IntLit, token.KwTrue, token.KwFalse,
		token.LParen, token.KwNot, token.Minus:
		return true
	default:
		return false
	}
}

func arrayTypeTag(base symtab.Base) emitter.ArrayType {
	if base == symtab.Boolean {
		return emitter.TBoolean
	}
	return emitter.TInt
}

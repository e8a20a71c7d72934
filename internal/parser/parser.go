// Package parser implements the ALAN-2022 recursive-descent parser: it
// drives the lexer for one token of lookahead, resolves and binds
// identifiers through the symbol table, and emits code inline with
// recognition, in the single-pass style the language's grammar was
// designed for. Every error is reported through internal/diag and is
// fatal; there is no error recovery or resynchronization.
package parser

import (
	"github.com/alan2022/alanc/internal/diag"
	"github.com/alan2022/alanc/internal/emitter"
	"github.com/alan2022/alanc/internal/lexer"
	"github.com/alan2022/alanc/internal/symtab"
	"github.com/alan2022/alanc/internal/token"
)

// Parser recognizes one ALAN-2022 source unit and emits its Jasmin-dialect
// bodies through em, binding identifiers through tab.
type Parser struct {
	lex *lexer.Lexer
	tab *symtab.Table
	em  *emitter.Emitter

	cur   token.Token
	trace func(mess string, args ...interface{})

	// returnType is the Base/array-ness the currently open subroutine must
	// leave; Void (non-array) marks the top-level body or a procedure,
	// where a "leave" with an expression is a type error.
	returnType symtab.ValType
	hasReturn  bool // whether returnType.Base() != Void
}

// Option configures a Parser before Parse drives it.
type Option func(*Parser)

// WithTrace reports one "scan <pos> <kind> <lexeme>" line through logf per
// token consumed, mirroring the teacher's vm.logf(".", "read %v @%v", ...)
// per-token trace calls.
func WithTrace(logf func(mess string, args ...interface{})) Option {
	return func(p *Parser) { p.trace = logf }
}

// Parse consumes the whole token stream as one ALAN-2022 "source" unit,
// storing the class name declared on its header line in em.ClassName. It
// recovers any
// *diag.Error panic raised during recognition and returns it as a plain
// error, so the driver never needs its own recover.
func Parse(lex *lexer.Lexer, tab *symtab.Table, em *emitter.Emitter, opts ...Option) (err error) {
	p := &Parser{lex: lex, tab: tab, em: em}
	for _, opt := range opts {
		opt(p)
	}
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diag.Error); ok {
				err = de
				return
			}
			panic(r)
		}
	}()
	p.advance()
	p.parseSource()
	return nil
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
	if p.trace != nil {
		p.trace("scan %s %s %q", p.cur.Pos, p.cur.Kind, p.cur.Lexeme)
	}
}

// expect consumes the current token if it matches kind, else raises the
// generic "expected X, but found Y" diagnostic.
func (p *Parser) expect(kind token.Kind) token.Token {
	if p.cur.Kind != kind {
		diag.Expected(p.cur.Pos, kind.String(), p.cur.String())
	}
	t := p.cur
	p.advance()
	return t
}

func (p *Parser) at(kind token.Kind) bool { return p.cur.Kind == kind }

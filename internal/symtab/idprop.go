package symtab

import "github.com/alan2022/alanc/internal/token"

// IDProp holds the properties bound to one identifier.
//
// For a variable, Offset is its local-frame slot index and Params is empty.
// For a subroutine, Offset is unused and Params records parameter types in
// declaration order.
type IDProp struct {
	Type   ValType
	Offset uint
	Params []ValType
}

// NParams is the declared arity of a callable IDProp.
func (p IDProp) NParams() int { return len(p.Params) }

// Variable is the transient parameter-list record used while parsing a
// function's parameter list, before its inner scope exists to hold them.
// The parser collects these into an ordinary slice (see design notes: the
// original's pointer-chained list is just an ordered sequence of
// descriptors) and drains it into the subroutine scope once opened.
type Variable struct {
	ID   string
	Type ValType
	Pos  token.Position
}

package symtab

// Base is the scalar base type carried by a ValType.
type Base int

const (
	// Void is the distinguished "no return value" base used by procedures.
	Void Base = iota
	Boolean
	Integer
)

func (b Base) String() string {
	switch b {
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	default:
		return "void"
	}
}

// ValType is a bitfield over a scalar Base plus two orthogonal flags: Array
// (the value is a 1-D array of Base) and Callable (the identifier names a
// subroutine; Base then names its return type, Void for a pure procedure).
type ValType struct {
	base     Base
	array    bool
	callable bool
}

// NewScalar builds a plain (non-array, non-callable) variable type.
func NewScalar(b Base) ValType { return ValType{base: b} }

// NewArray builds an array-of-b variable type.
func NewArray(b Base) ValType { return ValType{base: b, array: true} }

// NewCallable builds a subroutine type returning ret (Void for a procedure).
func NewCallable(ret Base) ValType { return ValType{base: ret, callable: true} }

func (t ValType) Base() Base       { return t.base }
func (t ValType) IsArray() bool    { return t.array }
func (t ValType) IsCallable() bool { return t.callable }
func (t ValType) IsVariable() bool { return !t.callable }
func (t ValType) IsBoolean() bool  { return t.base == Boolean }
func (t ValType) IsInteger() bool  { return t.base == Integer }

// SetAsArray returns t with the array flag set.
func (t ValType) SetAsArray() ValType { t.array = true; return t }

// SetAsCallable returns t marked callable, retaining its current base as the
// return type.
func (t ValType) SetAsCallable() ValType { t.callable = true; return t }

// SetReturnType returns t with base set to ret and the callable flag cleared
// (the return type itself is still exposed via Base for display purposes).
func (t ValType) SetReturnType(ret Base) ValType {
	t.base = ret
	t.callable = false
	return t
}

func (t ValType) String() string {
	s := t.base.String()
	if t.array {
		s += " array"
	}
	return s
}

package emitter

// Op is an abstract, target-agnostic stack-machine opcode. Each carries a
// fixed stack-effect descriptor (pop-count, push-count) used to track
// running and maximum stack depth without a separate analysis pass.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Rem
	Neg
	And
	Or
	Xor
	LoadConst
	LoadLocal
	StoreLocal
	ArrayLoad
	ArrayStore
	ArrayAlloc
	LoadObject
	StoreObject
	Swap
	Pop
	ConstNull

	Goto
	IfZero
	IfEq
	IfNe
	IfLt
	IfLe
	IfGt
	IfGe
	Call
	Return
	ReturnInt
	ReturnObject
	GetStaticField

	Nop // the dangling-label guard instruction
)

// effect is the (pop, push) pair of an Op, excluding any operand it
// carries in the instruction stream (operands aren't separate stack
// values; Call's pop count instead depends on its signature and is
// computed by the caller, see Emitter.Call).
type effect struct{ pop, push int }

var effects = map[Op]effect{
	Add:        {2, 1},
	Sub:        {2, 1},
	Mul:        {2, 1},
	Div:        {2, 1},
	Rem:        {2, 1},
	Neg:        {1, 1},
	And:        {2, 1},
	Or:         {2, 1},
	Xor:        {2, 1},
	LoadConst:  {0, 1},
	LoadLocal:  {0, 1},
	StoreLocal: {1, 0},
	ArrayLoad:  {2, 1}, // arrayref, index -> value
	ArrayStore: {3, 0}, // arrayref, index, value -> (nothing)
	ArrayAlloc: {1, 1}, // count -> arrayref
	LoadObject: {0, 1},
	StoreObject: {1, 0},
	Swap:       {2, 2},
	Pop:        {1, 0},
	ConstNull:  {0, 1},

	Goto:            {0, 0},
	IfZero:          {1, 0},
	IfEq:            {2, 0},
	IfNe:            {2, 0},
	IfLt:            {2, 0},
	IfLe:            {2, 0},
	IfGt:            {2, 0},
	IfGe:            {2, 0},
	Return:          {0, 0},
	ReturnInt:       {1, 0},
	ReturnObject:    {1, 0},
	GetStaticField:  {0, 1},

	Nop: {0, 0},
}

// mnemonics gives the Jasmin-dialect mnemonic used at serialization time.
var mnemonics = map[Op]string{
	Add:        "iadd",
	Sub:        "isub",
	Mul:        "imul",
	Div:        "idiv",
	Rem:        "irem",
	Neg:        "ineg",
	And:        "iand",
	Or:         "ior",
	Xor:        "ixor",
	LoadConst:  "ldc",
	LoadLocal:  "iload",
	StoreLocal: "istore",
	ArrayLoad:  "iaload",
	ArrayStore: "iastore",
	ArrayAlloc: "newarray",
	LoadObject: "aload",
	StoreObject: "astore",
	Swap:       "swap",
	Pop:        "pop",
	ConstNull:  "aconst_null",

	Goto:            "goto",
	IfZero:          "ifeq",
	IfEq:            "if_icmpeq",
	IfNe:            "if_icmpne",
	IfLt:            "if_icmplt",
	IfLe:            "if_icmple",
	IfGt:            "if_icmpgt",
	IfGe:            "if_icmpge",
	Call:            "invokestatic",
	Return:          "return",
	ReturnInt:       "ireturn",
	ReturnObject:    "areturn",
	GetStaticField:  "getstatic",

	Nop: "nop",
}

// noOperandOps is the fixed subset of instructions that are emitted with
// no trailing operand at all; branches are not in it, since each carries a
// label operand.
var noOperandOps = map[Op]bool{
	Add: true, Sub: true, Mul: true, Div: true, Rem: true, Neg: true,
	And: true, Or: true, Xor: true,
	ArrayLoad: true, ArrayStore: true,
	Swap: true, Return: true, ReturnInt: true, ReturnObject: true,
	Pop: true, ConstNull: true,
	Nop: true,
}

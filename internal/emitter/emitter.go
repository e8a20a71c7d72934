// Package emitter implements ALAN-2022's structured stack-machine code
// emitter: it accumulates typed instruction records per subroutine body,
// tracks stack depth and local-variable width, allocates branch labels, and
// serializes all bodies as a single Jasmin-dialect assembly listing.
package emitter

import (
	"github.com/alan2022/alanc/internal/symtab"
)

// Emitter accumulates one Body per subroutine in encounter order and hands
// out monotonically increasing label ids from a single per-program counter.
type Emitter struct {
	ClassName string

	bodies     []*Body
	current    *Body
	nextLabel  int
}

// New creates an Emitter for the given class/program name.
func New(className string) *Emitter {
	return &Emitter{ClassName: className, nextLabel: 1}
}

// OpenBody starts a new subroutine body and makes it current. The body
// opened under the name "main" is the top-level program body, serialized
// with the JVM entry-point signature; the parser opens it after every
// function body, since function definitions precede it in the source.
func (e *Emitter) OpenBody(name string, prop symtab.IDProp) *Body {
	b := &Body{Name: name, Prop: prop}
	e.bodies = append(e.bodies, b)
	e.current = b
	return b
}

// CloseBody finalizes accounting on the current body (varsWidth is supplied
// by the caller, since the symbol table — not the emitter — owns offset
// bookkeeping) and clears it as current.
func (e *Emitter) CloseBody(varsWidth uint) {
	if e.current != nil {
		e.current.varsWidth = varsWidth
	}
	e.current = nil
}

// Bodies returns all completed (and the in-progress) bodies in encounter
// order, the insertion order the spec requires for serialization.
func (e *Emitter) Bodies() []*Body { return e.bodies }

// GetLabel allocates a new label id, monotone from one.
func (e *Emitter) GetLabel() int {
	id := e.nextLabel
	e.nextLabel++
	return id
}

// GenLabel places a label into the current body's code stream.
func (e *Emitter) GenLabel(label int) {
	e.current.append(codeItem{kind: itemLabel, label: label})
}

// Emit appends a fixed no-operand instruction and applies its stack effect.
func (e *Emitter) Emit(op Op) {
	e.current.append(codeItem{kind: itemInstr, op: op})
	e.current.applyEffect(effects[op])
}

// EmitInt appends an instruction with an immediate integer operand (a
// constant load, a local slot index for load/store-local, or similar), then
// applies its stack effect.
func (e *Emitter) EmitInt(op Op, v int) {
	e.current.append(codeItem{kind: itemInstr, op: op})
	e.current.append(codeItem{kind: itemOperandInt, intVal: v})
	e.current.applyEffect(effects[op])
}

// EmitArrayAlloc appends array-alloc with its element-type tag operand.
func (e *Emitter) EmitArrayAlloc(elem ArrayType) {
	e.current.append(codeItem{kind: itemInstr, op: ArrayAlloc})
	e.current.append(codeItem{kind: itemOperandArrayType, arrayType: elem})
	e.current.applyEffect(effects[ArrayAlloc])
}

// EmitBranch appends a branch instruction targeting label, applying its
// stack effect. A label referenced here must be placed exactly once, via
// GenLabel, within the same body.
func (e *Emitter) EmitBranch(op Op, label int) {
	e.current.append(codeItem{kind: itemInstr, op: op})
	e.current.append(codeItem{kind: itemOperandLabel, label: label})
	e.current.applyEffect(effects[op])
}

// EmitRef appends an instruction with a reference-string operand (a field
// or method symbol external to this program), applying its stack effect.
func (e *Emitter) EmitRef(op Op, ref string) {
	e.current.append(codeItem{kind: itemInstr, op: op})
	e.current.append(codeItem{kind: itemOperandRef, ref: ref})
	e.current.applyEffect(effects[op])
}

// EmitString appends an instruction with a quoted string-literal operand
// (load-const of a string), applying its stack effect.
func (e *Emitter) EmitString(op Op, s string) {
	e.current.append(codeItem{kind: itemInstr, op: op})
	e.current.append(codeItem{kind: itemOperandString, strVal: s})
	e.current.applyEffect(effects[op])
}

// Cmp allocates two labels and emits the branch-on-condition / materialize
// sequence the spec's "compare expression" primitive describes: branch to
// L1 on cond, push 0, jump L2, L1: push 1, L2:. This leaves a 0/1 boolean
// on the stack in place of the compared operands.
func (e *Emitter) Cmp(cond Op) {
	l1, l2 := e.GetLabel(), e.GetLabel()
	e.EmitBranch(cond, l1)
	e.EmitInt(LoadConst, 0)
	e.EmitBranch(Goto, l2)
	e.GenLabel(l1)
	e.EmitInt(LoadConst, 1)
	e.GenLabel(l2)
}

// Call encodes the callee's signature into a target-method descriptor
// distinguishing array-typed and scalar parameters, and a void or integer
// return, then emits the invocation. The stack effect pops one value per
// argument and pushes one value if the callee returns one.
func (e *Emitter) Call(className, name string, params []symtab.ValType, ret symtab.ValType, isProcedure bool) {
	desc := MethodDescriptor(params, ret, isProcedure)
	ref := className + "/" + name + desc
	e.current.append(codeItem{kind: itemInstr, op: Call})
	e.current.append(codeItem{kind: itemOperandRef, ref: ref})
	push := 0
	if !isProcedure {
		push = 1
	}
	e.current.bumpStack(len(params), push)
}

// MethodDescriptor renders a JVM-style method signature: '(' + one field
// descriptor per parameter + ')' + the return field descriptor, 'V' for a
// procedure.
func MethodDescriptor(params []symtab.ValType, ret symtab.ValType, isProcedure bool) string {
	s := "("
	for _, p := range params {
		s += fieldDescriptor(p)
	}
	s += ")"
	if isProcedure {
		s += "V"
	} else {
		s += fieldDescriptor(ret)
	}
	return s
}

func fieldDescriptor(t symtab.ValType) string {
	base := "I"
	if t.IsBoolean() {
		base = "Z"
	}
	if t.IsArray() {
		return "[" + base
	}
	return base
}

// GenPrint emits: load the standard output reference, swap so the value
// being printed ends up on top, then invoke the print overload selected by
// the scalar type.
func (e *Emitter) GenPrint(t symtab.ValType) {
	e.EmitRef(GetStaticField, "java/lang/System/out Ljava/io/PrintStream;")
	e.Emit(Swap)
	desc := "(I)V"
	if t.IsBoolean() {
		desc = "(Z)V"
	}
	e.current.append(codeItem{kind: itemInstr, op: Call})
	e.current.append(codeItem{kind: itemOperandRef, ref: "java/io/PrintStream/print" + desc})
	e.current.bumpStack(1, 0)
}

// GenPrintString emits: load stdout, load-const the string, invoke
// print(String).
func (e *Emitter) GenPrintString(s string) {
	e.EmitRef(GetStaticField, "java/lang/System/out Ljava/io/PrintStream;")
	e.EmitString(LoadConst, s)
	e.current.append(codeItem{kind: itemInstr, op: Call})
	e.current.append(codeItem{kind: itemOperandRef, ref: "java/io/PrintStream/print(Ljava/lang/String;)V"})
	e.current.bumpStack(2, 0)
}

// GenRead emits invocation of one of the two synthesized static read-helper
// methods, bound to this compilation unit's class name.
func (e *Emitter) GenRead(t symtab.ValType) {
	name := "readInt"
	if t.IsBoolean() {
		name = "readBoolean"
	}
	desc := "()I"
	if t.IsBoolean() {
		desc = "()Z"
	}
	e.current.append(codeItem{kind: itemInstr, op: Call})
	e.current.append(codeItem{kind: itemOperandRef, ref: e.ClassName + "/" + name + desc})
	e.current.bumpStack(0, 1)
}

package emitter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan2022/alanc/internal/emitter"
	"github.com/alan2022/alanc/internal/symtab"
)

func TestEmptyProgramEmitsReturningMain(t *testing.T) {
	e := emitter.New("E")
	e.OpenBody("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)})
	e.Emit(emitter.Return)
	e.CloseBody(1)

	var buf strings.Builder
	require.NoError(t, e.Serialize(&buf))
	out := buf.String()
	assert.Contains(t, out, ".class public E")
	assert.Contains(t, out, "main([Ljava/lang/String;)V")
	assert.Contains(t, out, "\treturn\n")
}

func TestMaxStackDepthTracksPushPeak(t *testing.T) {
	e := emitter.New("P")
	b := e.OpenBody("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)})
	e.EmitInt(emitter.LoadConst, 1)
	e.EmitInt(emitter.LoadConst, 2)
	e.Emit(emitter.Add)
	e.Emit(emitter.Return)
	e.CloseBody(1)

	assert.Equal(t, 2, b.MaxStackDepth())
}

func TestCmpAllocatesMatchingLabelPair(t *testing.T) {
	e := emitter.New("C")
	e.OpenBody("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)})
	e.EmitInt(emitter.LoadConst, 1)
	e.EmitInt(emitter.LoadConst, 2)
	e.Cmp(emitter.IfLt)
	e.Emit(emitter.Return)
	e.CloseBody(1)

	var buf strings.Builder
	require.NoError(t, e.Serialize(&buf))
	out := buf.String()
	// every label referenced by a branch appears exactly once as a placement.
	assert.Equal(t, strings.Count(out, "L1:"), 1)
	assert.Equal(t, strings.Count(out, "L2:"), 1)
}

func TestDanglingLabelGetsNoOpAppended(t *testing.T) {
	e := emitter.New("D")
	e.OpenBody("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)})
	l := e.GetLabel()
	e.EmitBranch(emitter.Goto, l)
	e.GenLabel(l)
	e.CloseBody(1)

	var buf strings.Builder
	require.NoError(t, e.Serialize(&buf))
	lines := strings.Split(buf.String(), "\n")
	foundLabel := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "L1:" {
			foundLabel = true
			assert.Equal(t, "\tnop", lines[i+1], "a trailing label must get a no-op appended")
		}
	}
	assert.True(t, foundLabel)
}

func TestBodiesSerializeInEncounterOrder(t *testing.T) {
	e := emitter.New("O")
	e.OpenBody("main", symtab.IDProp{Type: symtab.NewCallable(symtab.Void)})
	e.Emit(emitter.Return)
	e.CloseBody(1)
	e.OpenBody("sq", symtab.IDProp{Type: symtab.NewCallable(symtab.Integer), Params: []symtab.ValType{symtab.NewScalar(symtab.Integer)}})
	e.Emit(emitter.ReturnInt)
	e.CloseBody(2)

	var buf strings.Builder
	require.NoError(t, e.Serialize(&buf))
	out := buf.String()
	mainIdx := strings.Index(out, "main(")
	sqIdx := strings.Index(out, " sq(")
	require.GreaterOrEqual(t, mainIdx, 0)
	require.GreaterOrEqual(t, sqIdx, 0)
	assert.Less(t, mainIdx, sqIdx)
}

func TestMethodDescriptorEncodesArrayAndBoolean(t *testing.T) {
	params := []symtab.ValType{symtab.NewArray(symtab.Integer), symtab.NewScalar(symtab.Boolean)}
	desc := emitter.MethodDescriptor(params, symtab.NewScalar(symtab.Integer), false)
	assert.Equal(t, "([IZ)I", desc)

	desc = emitter.MethodDescriptor(nil, symtab.ValType{}, true)
	assert.Equal(t, "()V", desc)
}

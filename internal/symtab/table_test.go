package symtab_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan2022/alanc/internal/symtab"
)

func TestGlobalOnlyBeforeSubroutine(t *testing.T) {
	tab := symtab.New()

	ok := tab.Insert("x", symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)})
	require.True(t, ok)

	prop, found := tab.Find("x")
	require.True(t, found)
	assert.True(t, prop.Type.IsInteger())
	assert.EqualValues(t, 2, tab.VariablesWidth())
}

func TestOpenSubroutineRejectsDuplicateName(t *testing.T) {
	tab := symtab.New()
	prop := symtab.IDProp{Type: symtab.NewCallable(symtab.Integer)}
	require.True(t, tab.OpenSubroutine("sq", prop))
	tab.CloseSubroutine()
	assert.False(t, tab.OpenSubroutine("sq", prop))
}

func TestSubroutineOffsetsStartAtZero(t *testing.T) {
	tab := symtab.New()
	require.True(t, tab.OpenSubroutine("f", symtab.IDProp{Type: symtab.NewCallable(symtab.Integer)}))

	require.True(t, tab.Insert("x", symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)}))
	assert.EqualValues(t, 1, tab.VariablesWidth())

	require.True(t, tab.Insert("y", symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)}))
	assert.EqualValues(t, 2, tab.VariablesWidth())

	prop, found := tab.Find("x")
	require.True(t, found)
	assert.EqualValues(t, 0, prop.Offset)
}

func TestVariablesDoNotResolveThroughGlobalScope(t *testing.T) {
	tab := symtab.New()
	require.True(t, tab.Insert("g", symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)}))
	require.True(t, tab.OpenSubroutine("f", symtab.IDProp{Type: symtab.NewCallable(symtab.Integer)}))

	_, found := tab.Find("g")
	assert.False(t, found, "a global variable must not resolve from inside a subroutine")
}

func TestCallablesResolveThroughGlobalScope(t *testing.T) {
	tab := symtab.New()
	require.True(t, tab.Insert("helper", symtab.IDProp{Type: symtab.NewCallable(symtab.Integer)}))
	require.True(t, tab.OpenSubroutine("f", symtab.IDProp{Type: symtab.NewCallable(symtab.Integer)}))

	prop, found := tab.Find("helper")
	require.True(t, found)
	assert.True(t, prop.Type.IsCallable())
}

func TestCloseSubroutineForgetsLocals(t *testing.T) {
	tab := symtab.New()
	require.True(t, tab.OpenSubroutine("f", symtab.IDProp{Type: symtab.NewCallable(symtab.Integer)}))
	require.True(t, tab.Insert("x", symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)}))
	tab.CloseSubroutine()

	_, found := tab.Find("x")
	assert.False(t, found)
}

func TestInsertRejectsDuplicateInSameScope(t *testing.T) {
	tab := symtab.New()
	prop := symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)}
	require.True(t, tab.Insert("x", prop))
	assert.False(t, tab.Insert("x", prop))
}

func TestRehashPreservesAllBindings(t *testing.T) {
	tab := symtab.New()
	const n = 500
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("v%d", i)
		require.True(t, tab.Insert(name, symtab.IDProp{Type: symtab.NewScalar(symtab.Integer)}))
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("v%d", i)
		_, found := tab.Find(name)
		assert.True(t, found, "binding %s lost across rehash", name)
	}
}

func TestValTypeSetters(t *testing.T) {
	v := symtab.NewScalar(symtab.Integer)
	assert.False(t, v.IsArray())
	v = v.SetAsArray()
	assert.True(t, v.IsArray())

	c := symtab.NewScalar(symtab.Void).SetAsCallable()
	assert.True(t, c.IsCallable())
	c = c.SetReturnType(symtab.Integer)
	assert.False(t, c.IsCallable())
	assert.True(t, c.IsInteger())
}

package emitter

import "github.com/alan2022/alanc/internal/symtab"

// Body is one subroutine's accumulated code stream plus the bookkeeping the
// serializer needs to declare its frame: stack depth and local-variable
// width.
type Body struct {
	Name  string
	Prop  symtab.IDProp
	items []codeItem

	stackDepth    int
	maxStackDepth int
	varsWidth     uint
}

// MaxStackDepth is the supremum of the running stack depth observed after
// every push during emission.
func (b *Body) MaxStackDepth() int { return b.maxStackDepth }

// VariablesWidth is the number of local-variable slots this body's frame
// needs.
func (b *Body) VariablesWidth() uint { return b.varsWidth }

func (b *Body) append(it codeItem) {
	b.items = append(b.items, it)
}

// applyEffect applies an instruction's stack effect atomically: push first
// (so the transient maximum is observed), then pop. Only the net depth is
// visible to later calls.
func (b *Body) applyEffect(e effect) {
	b.stackDepth += e.push
	if b.stackDepth > b.maxStackDepth {
		b.maxStackDepth = b.stackDepth
	}
	b.stackDepth -= e.pop
}

// bumpStack directly adjusts depth for instructions whose effect depends on
// a dynamic signature (Call) rather than a fixed table entry.
func (b *Body) bumpStack(pop, push int) {
	b.applyEffect(effect{pop, push})
}

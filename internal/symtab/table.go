// Package symtab implements ALAN-2022's two-level scoped symbol table: a
// global scope holding subroutine bindings, and at most one active
// subroutine scope holding its parameters and locals.
package symtab

// Table is the two-level symbol table described in the spec: a global scope
// always active, and a subroutine scope that exists only between
// OpenSubroutine and CloseSubroutine.
type Table struct {
	global     *scope
	subroutine *scope // nil when no subroutine is open
	currOffset uint
}

// New creates the global scope and initializes the offset counter.
func New() *Table {
	return &Table{global: newScope(), currOffset: 1}
}

// OpenSubroutine inserts (name, prop) into the global scope. If name is
// already bound there, it returns false and the table is unchanged.
// Otherwise it opens a fresh empty subroutine scope and resets the local
// offset counter to zero, ready for parameter insertion.
func (t *Table) OpenSubroutine(name string, prop IDProp) bool {
	if !t.global.insert(name, prop) {
		return false
	}
	t.subroutine = newScope()
	t.currOffset = 0
	return true
}

// CloseSubroutine frees the subroutine scope and its bindings, returning the
// table to global-only lookup.
func (t *Table) CloseSubroutine() {
	if t.subroutine != nil {
		t.subroutine.release()
		t.subroutine = nil
	}
}

// InSubroutine reports whether a subroutine scope is currently active.
func (t *Table) InSubroutine() bool { return t.subroutine != nil }

// Insert binds id to prop in the active scope (subroutine if open, else
// global). Returns false if id is already bound reachably (per the lookup
// rule Find uses). Each successful variable (non-callable) insertion
// advances the offset counter by one.
func (t *Table) Insert(id string, prop IDProp) bool {
	if _, found := t.Find(id); found {
		return false
	}
	active := t.global
	if t.subroutine != nil {
		active = t.subroutine
	}
	if !active.insert(id, prop) {
		return false
	}
	if prop.Type.IsVariable() {
		t.currOffset++
	}
	return true
}

// Find searches the active scope first; on a miss, when a subroutine scope
// is active, it falls back to the global scope but only returns a hit when
// the found binding is callable — variables never resolve through the
// global scope from inside a subroutine. With no subroutine open, Find
// searches the global scope only.
func (t *Table) Find(id string) (IDProp, bool) {
	if t.subroutine != nil {
		if b := t.subroutine.find(id); b != nil {
			return b.prop, true
		}
		if b := t.global.find(id); b != nil && b.prop.Type.IsCallable() {
			return b.prop, true
		}
		return IDProp{}, false
	}
	if b := t.global.find(id); b != nil {
		return b.prop, true
	}
	return IDProp{}, false
}

// VariablesWidth returns the current offset value: the number of local-frame
// slots allocated so far in the active scope.
func (t *Table) VariablesWidth() uint { return t.currOffset }

// ReserveSlots advances the local-offset counter by n without binding any
// name, for frame slots a caller owns outside the symbol table itself (the
// top-level body's JVM "main(String[] args)" signature reserves local slot
// 0 for args before any ALAN-2022 variable is declared).
func (t *Table) ReserveSlots(n uint) { t.currOffset += n }

// Release destroys all scopes, freeing their bindings.
func (t *Table) Release() {
	t.CloseSubroutine()
	if t.global != nil {
		t.global.release()
		t.global = nil
	}
}

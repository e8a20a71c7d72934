package symtab

// binding is one chained hash-table entry: a name and its bound properties.
type binding struct {
	name string
	prop IDProp
	next *binding
}

// scope is a chained hash table mapping identifier names to IDProp, rehashed
// into a larger prime-sized bucket array as its load factor grows.
type scope struct {
	buckets []*binding
	count   int
}

func newScope() *scope {
	return &scope{buckets: make([]*binding, primesBelowPow2[0])}
}

func (s *scope) bucketFor(name string) int {
	return int(hashString(name) % uint32(len(s.buckets)))
}

// find returns the binding for name, or nil.
func (s *scope) find(name string) *binding {
	for b := s.buckets[s.bucketFor(name)]; b != nil; b = b.next {
		if b.name == name {
			return b
		}
	}
	return nil
}

// insert adds name/prop, returning false if name is already bound in this
// scope.
func (s *scope) insert(name string, prop IDProp) bool {
	if s.find(name) != nil {
		return false
	}
	i := s.bucketFor(name)
	s.buckets[i] = &binding{name: name, prop: prop, next: s.buckets[i]}
	s.count++
	if s.count > loadFactorLimit*len(s.buckets) {
		s.rehash()
	}
	return true
}

func (s *scope) rehash() {
	old := s.buckets
	s.buckets = make([]*binding, nextTableSize(uint32(len(old))))
	for _, head := range old {
		for b := head; b != nil; {
			next := b.next
			i := s.bucketFor(b.name)
			b.next = s.buckets[i]
			s.buckets[i] = b
			b = next
		}
	}
}

// release drops all bindings, freeing the scope's names for garbage
// collection (mirrors the reference contract that scope close frees
// contained names and properties).
func (s *scope) release() {
	s.buckets = nil
	s.count = 0
}

package object

// SymbolID identifies an interned symbol. Identifiers are assigned by a
// SymbolTable and are only meaningful together with the table that
// issued them.
type SymbolID uint32

// Symbol is an interned Scheme symbol. Two symbols are equal when they
// carry the same identifier; the name is kept for printing.
type Symbol struct {
	id   SymbolID
	name string
}

func (s *Symbol) Type() Type {
	return SYMBOL
}

func (s *Symbol) ID() SymbolID {
	return s.id
}

func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) Inspect() string {
	return s.name
}

func (s *Symbol) String() string {
	return s.name
}

func (s *Symbol) Interface() interface{} {
	return s.name
}

func (s *Symbol) Equals(other Object) bool {
	if other, ok := other.(*Symbol); ok {
		return s.id == other.id
	}
	return false
}

func (s *Symbol) IsTruthy() bool {
	return true
}

func (s *Symbol) HashKey() HashKey {
	return HashKey{Type: SYMBOL, IntValue: int64(s.id)}
}

// NewSymbol builds a symbol object from an identifier and its name.
// Most callers should go through SymbolTable.Symbol instead.
func NewSymbol(id SymbolID, name string) *Symbol {
	return &Symbol{id: id, name: name}
}

// SymbolTable interns symbol names, assigning each distinct name a
// stable SymbolID. The zero id is never issued, so it can serve as a
// "no symbol" sentinel. Not safe for concurrent use.
type SymbolTable struct {
	names []string
	ids   map[string]SymbolID
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ids: map[string]SymbolID{}}
}

// Intern returns the identifier for name, assigning one on first use.
func (t *SymbolTable) Intern(name string) SymbolID {
	if id, ok := t.ids[name]; ok {
		return id
	}
	t.names = append(t.names, name)
	id := SymbolID(len(t.names))
	t.ids[name] = id
	return id
}

// NameOf resolves an identifier back to its interned name.
func (t *SymbolTable) NameOf(id SymbolID) (string, bool) {
	if id == 0 || int(id) > len(t.names) {
		return "", false
	}
	return t.names[id-1], true
}

// Symbol interns name and returns the corresponding symbol object.
func (t *SymbolTable) Symbol(name string) *Symbol {
	return NewSymbol(t.Intern(name), name)
}

// Len returns the number of interned symbols.
func (t *SymbolTable) Len() int {
	return len(t.names)
}

package bytecode

// ConstantPool interns the constants referenced by a compilation unit.
// Adding an equal constant twice returns the index assigned on first
// insert, so a pool never holds duplicates.
type ConstantPool struct {
	constants []Constant
	index     map[constantKey]int
}

// NewConstantPool returns an empty constant pool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{index: map[constantKey]int{}}
}

// Add interns the constant and returns its pool index. Equal constants
// share one index; the first insert wins. Add never fails.
func (p *ConstantPool) Add(c Constant) int {
	key := c.key()
	if i, ok := p.index[key]; ok {
		return i
	}
	i := len(p.constants)
	p.constants = append(p.constants, c)
	p.index[key] = i
	return i
}

// Get returns the constant at the given index.
func (p *ConstantPool) Get(i int) (Constant, bool) {
	if i < 0 || i >= len(p.constants) {
		return nil, false
	}
	return p.constants[i], true
}

// Len returns the number of interned constants.
func (p *ConstantPool) Len() int {
	return len(p.constants)
}

// Constants returns a copy of the interned constants in index order.
func (p *ConstantPool) Constants() []Constant {
	out := make([]Constant, len(p.constants))
	copy(out, p.constants)
	return out
}

// MemoryUsage estimates the bytes held by the pool's constant table,
// including the dedup index. It is an accounting estimate, not an exact
// measurement.
func (p *ConstantPool) MemoryUsage() int {
	total := 0
	for _, c := range p.constants {
		total += constantSizeEstimate
		switch c := c.(type) {
		case String:
			total += len(c)
		case Code:
			if c.Block != nil {
				total += c.Block.MemoryUsage()
			}
		}
	}
	// Index entries mirror the table.
	total += len(p.index) * constantKeySizeEstimate
	return total
}

const (
	// constantSizeEstimate is the nominal per-constant overhead.
	constantSizeEstimate = 16

	// constantKeySizeEstimate is the nominal size of one dedup index entry.
	constantKeySizeEstimate = 64
)

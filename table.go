package textcodec

import (
	"sort"
)

// Pair maps an original character to the substitute written after the
// escape character.
type Pair struct {
	Original   rune
	Substitute rune
}

// Table is an insertion-ordered substitution table.
//
// Originals are unique. Setting an original that is already present replaces
// its substitute in place and keeps its position, so inversion order is
// stable across runs. A nil *Table is valid and behaves as an empty table.
type Table struct {
	pairs []Pair
	index map[rune]int
}

// NewTable builds a table from pairs in the given order.
func NewTable(pairs ...Pair) *Table {
	t := &Table{
		pairs: make([]Pair, 0, len(pairs)),
		index: make(map[rune]int, len(pairs)),
	}
	for _, p := range pairs {
		t.Set(p.Original, p.Substitute)
	}
	return t
}

// TableFromMap builds a table from a Go map. Map iteration is unordered, so
// originals are added in ascending order.
func TableFromMap(m map[rune]rune) *Table {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	t := NewTable()
	for _, k := range keys {
		t.Set(k, m[k])
	}
	return t
}

// Set adds or replaces a substitution.
// Returns the table for chaining.
func (t *Table) Set(original, substitute rune) *Table {
	if t.index == nil {
		t.index = make(map[rune]int)
	}
	if i, ok := t.index[original]; ok {
		t.pairs[i].Substitute = substitute
		return t
	}
	t.index[original] = len(t.pairs)
	t.pairs = append(t.pairs, Pair{Original: original, Substitute: substitute})
	return t
}

// Lookup returns the substitute for original.
func (t *Table) Lookup(original rune) (rune, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[original]
	if !ok {
		return 0, false
	}
	return t.pairs[i].Substitute, true
}

// Len returns the number of pairs.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pairs)
}

// Pairs returns a copy of the pairs in insertion order.
func (t *Table) Pairs() []Pair {
	if t == nil {
		return nil
	}
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Clone returns an independent copy. Cloning a nil table yields an empty one.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	return NewTable(t.pairs...)
}

// encodeMap copies the table into a lookup map.
func (t *Table) encodeMap() map[rune]rune {
	m := make(map[rune]rune, t.Len())
	if t == nil {
		return m
	}
	for _, p := range t.pairs {
		m[p.Original] = p.Substitute
	}
	return m
}

// decodeMap inverts the table. When two originals share a substitute the
// later pair wins.
func (t *Table) decodeMap() map[rune]rune {
	m := make(map[rune]rune, t.Len())
	if t == nil {
		return m
	}
	for _, p := range t.pairs {
		m[p.Substitute] = p.Original
	}
	return m
}

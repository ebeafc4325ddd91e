package headers

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/uf"
)

// Pair is a single header entry. Name keeps the spelling exactly as it
// appeared on the wire; Value is stripped of surrounding whitespace.
type Pair struct {
	Name, Value string
}

// Map is an ordered collection of header pairs. Lookups match names under
// normalization (see Normalize), so "Content-Length", "content_length" and
// " CONTENT-LENGTH" all address the same entry. It acts as a map but uses
// linear search instead, which proves to be more efficient on the relatively
// low amount of entries a header section practically always is.
type Map struct {
	pairs []Pair
}

func NewMap() *Map {
	return new(Map)
}

// NewMapPrealloc returns a Map with pre-allocated underlying storage.
func NewMapPrealloc(n int) *Map {
	return &Map{
		pairs: make([]Pair, 0, n),
	}
}

// Add appends a new pair, keeping duplicates of the same name.
func (m *Map) Add(name, value string) *Map {
	m.pairs = append(m.pairs, Pair{
		Name:  name,
		Value: value,
	})
	return m
}

// Put sets the value for the name. An already present name keeps its
// position, but both the spelling and the value are replaced, so the last
// occurrence wins. Absent names are appended.
func (m *Map) Put(name, value string) *Map {
	for i, pair := range m.pairs {
		if Equal(name, pair.Name) {
			m.pairs[i] = Pair{Name: name, Value: value}
			return m
		}
	}

	return m.Add(name, value)
}

// Value returns the first value corresponding to the name. Otherwise, an
// empty string is returned.
func (m *Map) Value(name string) string {
	return m.ValueOr(name, "")
}

// ValueOr returns either the first value corresponding to the name or the
// fallback, passed via the second parameter.
func (m *Map) ValueOr(name, or string) string {
	value, found := m.Get(name)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool indicating whether the value was found. If
// it wasn't, it'll be an empty string.
func (m *Map) Get(name string) (value string, found bool) {
	for _, pair := range m.pairs {
		if Equal(name, pair.Name) {
			return pair.Value, true
		}
	}

	return "", false
}

// Pop removes the first pair matching the name and returns it.
func (m *Map) Pop(name string) (Pair, bool) {
	for i, pair := range m.pairs {
		if Equal(name, pair.Name) {
			m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
			return pair, true
		}
	}

	return Pair{}, false
}

// Has indicates whether there's an entry of the name.
func (m *Map) Has(name string) bool {
	_, found := m.Get(name)
	return found
}

// Iter returns an iterator over the pairs, in insertion order.
func (m *Map) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range m.pairs {
			if !yield(pair.Name, pair.Value) {
				break
			}
		}
	}
}

// Len returns a number of stored pairs.
func (m *Map) Len() int {
	return len(m.pairs)
}

func (m *Map) Empty() bool {
	return m.Len() == 0
}

// Clone creates a deep copy, which may be stored somewhere safely at the
// cost of an allocation.
func (m *Map) Clone() *Map {
	if len(m.pairs) == 0 {
		return new(Map)
	}

	pairs := make([]Pair, len(m.pairs))
	copy(pairs, m.pairs)

	return &Map{pairs: pairs}
}

// Expose exposes the underlying pairs slice.
func (m *Map) Expose() []Pair {
	return m.pairs
}

// Clear removes all the entries, keeping the allocated space.
func (m *Map) Clear() *Map {
	m.pairs = m.pairs[:0]
	return m
}

// Normalize canonicalizes a header name: surrounding whitespace is stripped,
// letters are lowercased and hyphens become underscores.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	normalized := make([]byte, len(name))

	for i := 0; i < len(name); i++ {
		normalized[i] = foldByte(name[i])
	}

	return uf.B2S(normalized)
}

// Equal reports whether two header names are identical under normalization.
// Unlike comparing Normalize results, it doesn't allocate.
func Equal(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}

	return true
}

func foldByte(c byte) byte {
	switch {
	case c >= 'A' && c <= 'Z':
		return c | 0x20
	case c == '-':
		return '_'
	default:
		return c
	}
}

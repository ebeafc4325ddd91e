package message

import (
	"iter"
	"strings"

	"github.com/indigo-web/httpwire/headers"
	"github.com/indigo-web/utils/uf"
)

// codingHeaders carry body coding tokens, combined in this order.
var codingHeaders = [...]string{"Transfer-Encoding", "Content-Encoding"}

// fields is the header-handling behavior shared by Request and Response:
// known slots parallel to a catalog, the overflow map for everything else,
// the body and the cached raw header span.
type fields struct {
	catalog *headers.Catalog
	slots   []string
	unknown *headers.Map
	body    []byte
	raw     []byte
}

func newFields(catalog *headers.Catalog) fields {
	return fields{
		catalog: catalog,
		slots:   make([]string, catalog.Len()),
		unknown: headers.NewMap(),
	}
}

// dissect pops every catalog name present in parsed into its slot; the
// leftovers stay as unknown headers, wire order preserved.
func (f *fields) dissect(parsed *headers.Map) {
	for i, name := range f.catalog.Names() {
		if pair, found := parsed.Pop(name); found {
			f.slots[i] = pair.Value
		}
	}

	f.unknown = parsed
}

// Header returns the value of the named header, whether it sits in a known
// slot or among the unknown headers. An empty slot counts as unset.
func (f *fields) Header(name string) (string, bool) {
	if pos, found := f.catalog.Pos(name); found {
		if f.slots[pos] == "" {
			return "", false
		}

		return f.slots[pos], true
	}

	return f.unknown.Get(name)
}

// SetHeader sets a header value. Catalog names go to their slot, the rest
// to the unknown map. The raw cache is dropped: a mutated message no
// longer re-serializes byte-for-byte.
func (f *fields) SetHeader(name, value string) {
	f.raw = nil

	if pos, found := f.catalog.Pos(name); found {
		f.slots[pos] = value
		f.unknown.Pop(name)
		return
	}

	f.unknown.Put(name, value)
}

// Headers iterates known slots first, in catalog order under canonical
// names and skipping unset ones, then unknown headers in wire order.
func (f *fields) Headers() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i, name := range f.catalog.Names() {
			if f.slots[i] == "" {
				continue
			}
			if !yield(name, f.slots[i]) {
				return
			}
		}

		for name, value := range f.unknown.Iter() {
			if !yield(name, value) {
				return
			}
		}
	}
}

// Unknown returns the headers that matched no catalog slot.
func (f *fields) Unknown() *headers.Map {
	return f.unknown
}

// Catalog returns the catalog the known slots are laid out by.
func (f *fields) Catalog() *headers.Catalog {
	return f.catalog
}

// Body returns the message body. When parsed with auto coding enabled, it
// is already de-chunked and decompressed.
func (f *fields) Body() []byte {
	return f.body
}

// SetBody replaces the body. The raw cache covers the header span only, so
// it survives: the coding headers still decide how the body is re-encoded
// at render time.
func (f *fields) SetBody(body []byte) {
	f.body = body
}

// Raw returns the header span exactly as it appeared on the wire,
// start-line through the blank line, or nil if the message wasn't produced
// by parsing or was mutated since.
func (f *fields) Raw() []byte {
	return f.raw
}

// DropRaw discards the cached header span, forcing renders to rebuild the
// message from its fields. Call it after assigning start-line fields
// directly.
func (f *fields) DropRaw() {
	f.raw = nil
}

// Encodings returns the combined Transfer-Encoding and Content-Encoding
// tokens: comma-split, stripped, lower-cased, in wire order.
func (f *fields) Encodings() []string {
	var tokens []string

	for _, name := range codingHeaders {
		value, found := f.Header(name)
		if !found {
			continue
		}

		for _, token := range strings.Split(value, ",") {
			tokens = append(tokens, strings.ToLower(strings.TrimSpace(token)))
		}
	}

	return tokens
}

// splitStartLine cuts a line on runs of ASCII whitespace into exactly three
// tokens. The third is the remainder taken verbatim: embedded whitespace
// survives, and a line ending in whitespace yields an empty third token. ok
// is false when there's no second separator at all; callers then leave
// their fields at zero values.
func splitStartLine(line []byte) (first, second, rest string, ok bool) {
	s := uf.B2S(line)

	firstEnd := indexSpace(s, 0)
	if firstEnd == -1 {
		return "", "", "", false
	}

	secondStart := skipSpace(s, firstEnd)
	secondEnd := indexSpace(s, secondStart)
	if secondEnd == -1 {
		return "", "", "", false
	}

	return s[:firstEnd], s[secondStart:secondEnd], s[skipSpace(s, secondEnd):], true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func indexSpace(s string, from int) int {
	for i := from; i < len(s); i++ {
		if isSpace(s[i]) {
			return i
		}
	}

	return -1
}

func skipSpace(s string, from int) int {
	for from < len(s) && isSpace(s[from]) {
		from++
	}

	return from
}

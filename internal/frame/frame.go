package frame

import (
	"bytes"
	"errors"
	"strings"

	"github.com/indigo-web/httpwire/headers"
	"github.com/indigo-web/utils/uf"
)

// ErrNoStartLine means the span carries no \r\n at all, leaving nothing to
// anchor a message on.
var ErrNoStartLine = errors.New("no start-line found")

var (
	terminator = []byte("\r\n\r\n")
	crlf       = []byte("\r\n")
)

// Frame is a message span cut into its parts. All slices alias the span.
type Frame struct {
	// StartLine is the first line, stripped of surrounding whitespace.
	StartLine []byte
	// Lines is the rest of the header section, still in wire form.
	Lines []byte
	// Body is everything past the header terminator; empty without one.
	Body []byte
	// HeaderLen is the length of the header section including the
	// terminator, or len(span) if the terminator hasn't arrived.
	HeaderLen int
}

// Split cuts a span at the first \r\n\r\n into the header section and the
// body, then cuts the header section at its first \r\n into the start-line
// and the remaining lines. A span without a terminator counts as all
// headers, so partially received sections still parse.
func Split(span []byte) (Frame, error) {
	headerLen := len(span)
	var body []byte
	if idx := bytes.Index(span, terminator); idx != -1 {
		headerLen = idx + len(terminator)
		body = span[headerLen:]
	}

	block := span[:headerLen]
	eol := bytes.Index(block, crlf)
	if eol == -1 {
		return Frame{}, ErrNoStartLine
	}

	return Frame{
		StartLine: bytes.TrimSpace(block[:eol]),
		Lines:     block[eol+len(crlf):],
		Body:      body,
		HeaderLen: headerLen,
	}, nil
}

// ParseLines parses raw header lines into an ordered map. Lines without a
// colon are dropped, never reported. Repeated names collapse into a single
// entry at the first position, the last occurrence winning. Names keep
// their wire spelling; values are stripped.
func ParseLines(lines []byte) *headers.Map {
	m := headers.NewMapPrealloc(8)

	for len(lines) > 0 {
		line := lines
		if idx := bytes.Index(lines, crlf); idx != -1 {
			line, lines = lines[:idx], lines[idx+len(crlf):]
		} else {
			lines = nil
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			continue
		}

		m.Put(uf.B2S(line[:colon]), strings.TrimSpace(uf.B2S(line[colon+1:])))
	}

	return m
}

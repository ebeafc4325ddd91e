package message

import (
	"github.com/indigo-web/httpwire/headers"
	"github.com/indigo-web/httpwire/internal/frame"
)

// Request is a structured HTTP/1.x request.
type Request struct {
	fields
	Method string
	Path   string
	Proto  string
}

// NewRequest returns an empty request, ready to be populated field by field.
func NewRequest() *Request {
	return &Request{fields: newFields(headers.Request())}
}

func (*Request) Kind() Kind {
	return KindRequest
}

// ParseRequest parses a complete request span. The span is referenced, not
// copied: hand its ownership over, or clone it first. Malformed input
// degrades instead of failing: header lines without a colon are dropped,
// and a start-line without two separators leaves Method, Path and Proto
// empty. The only error is a span without a single line terminator, which
// cannot anchor a message at all.
func ParseRequest(span []byte) (*Request, error) {
	fr, err := frame.Split(span)
	if err != nil {
		return nil, err
	}

	req := NewRequest()
	if method, path, proto, ok := splitStartLine(fr.StartLine); ok {
		req.Method, req.Path, req.Proto = method, path, proto
	}

	req.dissect(frame.ParseLines(fr.Lines))
	req.body = fr.Body
	req.raw = span[:fr.HeaderLen]

	return req, nil
}

package message

import (
	"github.com/indigo-web/httpwire/headers"
	"github.com/indigo-web/httpwire/internal/frame"
)

// Response is a structured HTTP/1.x response.
type Response struct {
	fields
	Proto  string
	Code   string
	Status string
}

// NewResponse returns an empty response, ready to be populated field by
// field.
func NewResponse() *Response {
	return &Response{fields: newFields(headers.Response())}
}

func (*Response) Kind() Kind {
	return KindResponse
}

// ParseResponse parses a complete response span. It follows the same
// ownership and degradation rules as ParseRequest; a status line without
// two separators leaves Proto, Code and Status empty, while a missing
// reason phrase alone keeps Proto and Code.
func ParseResponse(span []byte) (*Response, error) {
	fr, err := frame.Split(span)
	if err != nil {
		return nil, err
	}

	resp := NewResponse()
	if proto, code, status, ok := splitStartLine(fr.StartLine); ok {
		resp.Proto, resp.Code, resp.Status = proto, code, status
	}

	resp.dissect(frame.ParseLines(fr.Lines))
	resp.body = fr.Body
	resp.raw = span[:fr.HeaderLen]

	return resp, nil
}

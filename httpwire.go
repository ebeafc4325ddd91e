// Package httpwire reassembles HTTP/1.x messages out of arbitrarily
// fragmented byte streams: it decides where each message ends, parses the
// delimited bytes into structured requests and responses, and undoes
// chunked transfer coding and content compression on the way in. Spans
// that aren't HTTP/1.x, including runs of HTTP/2 frames, pass through
// opaque. The render package performs the reverse trip.
package httpwire

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/indigo-web/httpwire/chunked"
	"github.com/indigo-web/httpwire/codec"
	"github.com/indigo-web/httpwire/config"
	"github.com/indigo-web/httpwire/message"
	"github.com/indigo-web/httpwire/sniff"
	"go.uber.org/zap"
)

// Assembler frames one direction of one connection. It owns the
// accumulation buffer and the per-stream metadata, so it must not be
// used concurrently; independent streams get independent assemblers.
type Assembler struct {
	cfg    *config.Config
	log    *zap.Logger
	codecs *codec.Manager
	buf    []byte
	meta   Metadata
}

func New(cfg *config.Config) *Assembler {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Assembler{
		cfg: cfg,
		log: zap.NewNop(),
		buf: make([]byte, 0, cfg.Stream.BufferPrealloc),
	}
}

// WithLogger attaches a logger for framing and codec diagnostics.
func (a *Assembler) WithLogger(log *zap.Logger) *Assembler {
	a.log = log
	return a
}

// WithCodecs replaces the default compression backends.
func (a *Assembler) WithCodecs(m *codec.Manager) *Assembler {
	a.codecs = m
	return a
}

// Feed hands newly arrived bytes to the assembler and reports whether a
// message is now complete. The zero Result means more bytes are needed.
// Consumed counts buffered bytes, so a completed message may leave a
// pipelined remainder behind; feed empty data to run the machine over
// the leftover without waiting for the next arrival.
func (a *Assembler) Feed(data []byte) (Result, error) {
	a.buf = append(a.buf, data...)
	if len(a.buf) == 0 {
		return Result{}, nil
	}

	if a.meta.Mode == FramingUnknown || a.meta.Probing {
		if res, emitted := a.derive(); emitted {
			return res, nil
		}
	}

	if !done(&a.meta, a.buf) {
		return Result{}, nil
	}

	return a.finish()
}

// CloseNotify tells the assembler the transport saw end of stream. A
// message framed until-close completes on the spot; a message pending in
// any bounded mode stays pending, as its missing bytes can no longer
// arrive and discarding the stream is the caller's decision.
func (a *Assembler) CloseNotify() (Result, error) {
	a.meta.Closed = true
	return a.Feed(nil)
}

// Meta exposes the live framing state.
func (a *Assembler) Meta() *Metadata {
	return &a.meta
}

// Buffered returns the number of bytes awaiting a framing decision.
func (a *Assembler) Buffered() int {
	return len(a.buf)
}

// probe is what a speculative parse extracts from the buffered headers.
type probe struct {
	length    int
	lengthOK  bool
	encodings []string
	code      string
}

// derive classifies the buffered bytes and picks the framing rule, in
// strict priority order. Pass-through spans don't frame at all and are
// emitted whole, on the spot.
func (a *Assembler) derive() (Result, bool) {
	a.meta.reset()

	if sniff.DetectHTTP2(a.buf) {
		return a.emitOpaque(true), true
	}

	kind := sniff.Classify(a.buf)
	if kind == message.KindOpaque {
		return a.emitOpaque(false), true
	}

	p, err := a.inspect(kind)
	if err != nil {
		// a classified span always carries a start line, but stay
		// graceful: what can't be parsed passes through
		return a.emitOpaque(false), true
	}

	switch {
	case kind == message.KindResponse && !p.lengthOK && bytes.HasSuffix(a.buf, headerEnd):
		// a response ending right at the header terminator carries an
		// implicit empty body, the way HEAD responses do. A known
		// approximation: an until-close body may still follow.
		a.meta.Mode = FramingUntilDoubleCRLF
	case p.lengthOK:
		a.meta.Mode = FramingContentLength
		a.meta.Length = p.length
		if boundary := bytes.Index(a.buf, headerEnd); boundary >= 0 {
			a.meta.HeaderLen = boundary + len(headerEnd)
		} else {
			a.meta.Probing = true
		}
	case slices.Contains(p.encodings, "chunked"):
		a.meta.Mode = FramingChunked
	case kind == message.KindRequest:
		// no length, no chunking: the request ends at the header
		// terminator. Keep probing so a length header arriving later
		// still takes over.
		a.meta.Mode = FramingUntilDoubleCRLF
		a.meta.Probing = true
	case p.code == "101":
		a.meta.Mode = FramingUpgrade
	default:
		a.meta.Mode = FramingUntilClose
		a.meta.Probing = true
	}

	a.log.Debug("framing rule derived",
		zap.Stringer("mode", a.meta.Mode),
		zap.Bool("probing", a.meta.Probing),
		zap.Int("buffered", len(a.buf)))

	return Result{}, false
}

// inspect runs the throwaway parse over the buffered bytes; real
// consumption happens only once completeness is confirmed.
func (a *Assembler) inspect(kind message.Kind) (probe, error) {
	var (
		p        probe
		declared string
		found    bool
	)

	switch kind {
	case message.KindRequest:
		req, err := message.ParseRequest(a.buf)
		if err != nil {
			return p, err
		}

		declared, found = req.Header("Content-Length")
		p.encodings = req.Encodings()
	case message.KindResponse:
		resp, err := message.ParseResponse(a.buf)
		if err != nil {
			return p, err
		}

		declared, found = resp.Header("Content-Length")
		p.encodings = resp.Encodings()
		p.code = resp.Code
	}

	if found {
		p.length, p.lengthOK = parseLength(declared)
	}

	return p, nil
}

// parseLength accepts only what unambiguously frames a body: a plain
// non-negative decimal count. Anything else falls through to the next
// framing rule, as if no length was declared.
func parseLength(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

func (a *Assembler) emitOpaque(h2 bool) Result {
	msg := &message.Opaque{Data: bytes.Clone(a.buf), HTTP2: h2}
	consumed := len(a.buf)
	a.buf = a.buf[:0]
	a.meta.reset()

	a.log.Debug("pass-through span emitted",
		zap.Int("size", consumed), zap.Bool("http2", h2))

	return Result{Msg: msg, Consumed: consumed}
}

// finish performs the real parse of the completed span, normalizes the
// body and compacts the buffer for the next cycle.
func (a *Assembler) finish() (Result, error) {
	consumed := a.consumed()
	if consumed <= 0 || consumed > len(a.buf) {
		return Result{}, fmt.Errorf("%w: consumed %d of %d buffered bytes",
			ErrInvariant, consumed, len(a.buf))
	}

	span := bytes.Clone(a.buf[:consumed])

	var (
		msg message.Message
		err error
	)

	switch sniff.Classify(span) {
	case message.KindRequest:
		msg, err = message.ParseRequest(span)
	case message.KindResponse:
		msg, err = message.ParseResponse(span)
	default:
		err = fmt.Errorf("%w: completed span no longer classifies", ErrInvariant)
	}

	if err != nil {
		return Result{}, fmt.Errorf("%w: parsing a framed span: %v", ErrInvariant, err)
	}

	a.normalize(msg)

	a.buf = append(a.buf[:0], a.buf[consumed:]...)
	mode := a.meta.Mode
	a.meta.reset()

	a.log.Debug("message complete",
		zap.Stringer("mode", mode),
		zap.Stringer("kind", msg.Kind()),
		zap.Int("consumed", consumed),
		zap.Int("leftover", len(a.buf)))

	return Result{Msg: msg, Consumed: consumed}, nil
}

// consumed computes how many buffered bytes the completed message takes.
func (a *Assembler) consumed() int {
	switch a.meta.Mode {
	case FramingContentLength:
		return a.meta.HeaderLen + a.meta.Length
	case FramingUpgrade:
		// the switched protocol owns everything past the headers
		return bytes.Index(a.buf, headerEnd) + len(headerEnd)
	default:
		return len(a.buf)
	}
}

// bodied is the mutable body surface shared by requests and responses.
type bodied interface {
	Encodings() []string
	Body() []byte
	SetBody([]byte)
}

// normalize undoes body codings in wire order: chunking first, then the
// first recognized compression token. Every step is best-effort; a body
// that refuses to decode travels still-encoded rather than not at all.
func (a *Assembler) normalize(msg message.Message) {
	if !a.cfg.Body.AutoCoding {
		return
	}

	m, ok := msg.(bodied)
	if !ok {
		return
	}

	encodings := m.Encodings()
	body := m.Body()

	if slices.Contains(encodings, "chunked") {
		body = chunked.Decode(body)
	}

	if token, found := a.manager().Pick(encodings); found {
		body = a.manager().Decode(token, body)
	}

	m.SetBody(body)
}

func (a *Assembler) manager() *codec.Manager {
	if a.codecs == nil {
		a.codecs = codec.Default(a.log)
	}

	return a.codecs
}

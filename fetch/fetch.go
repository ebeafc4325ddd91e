// Package fetch is a small convenience client on top of the assembler:
// build a request, write it over an established connection and assemble
// whatever comes back. Connection setup, TLS and redirects are the
// caller's business.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/indigo-web/httpwire"
	"github.com/indigo-web/httpwire/config"
	"github.com/indigo-web/httpwire/message"
	"github.com/indigo-web/httpwire/render"
	"go.uber.org/zap"
)

// NewRequest builds a GET request with the customary defaults. Callers
// adjust Method, headers or body before handing it to Do.
func NewRequest(host, path string) *message.Request {
	req := message.NewRequest()
	req.Method, req.Path, req.Proto = "GET", path, "HTTP/1.1"
	req.SetHeader("Accept-Encoding", "gzip, deflate")
	req.SetHeader("Cache-Control", "no-cache")
	req.SetHeader("Pragma", "no-cache")
	req.SetHeader("Connection", "keep-alive")
	req.SetHeader("Host", host)

	return req
}

// Client drives one connection: requests out through the renderer,
// response bytes back through the assembler. Not safe for concurrent use.
type Client struct {
	conn      net.Conn
	assembler *httpwire.Assembler
	renderer  *render.Renderer
	readBuf   []byte
}

func NewClient(conn net.Conn, cfg *config.Config) *Client {
	if cfg == nil {
		cfg = config.Default()
	}

	prealloc := cfg.Stream.BufferPrealloc
	if prealloc <= 0 {
		prealloc = config.Default().Stream.BufferPrealloc
	}

	return &Client{
		conn:      conn,
		assembler: httpwire.New(cfg),
		renderer:  render.New(nil, cfg.Body.AutoCoding),
		readBuf:   make([]byte, prealloc),
	}
}

// WithLogger attaches a logger to the underlying assembler.
func (c *Client) WithLogger(log *zap.Logger) *Client {
	c.assembler.WithLogger(log)
	return c
}

// Do sends req and reads until one complete message is assembled. A
// context deadline is propagated to the connection. An EOF before any
// message completes an until-close response if one is pending; otherwise
// it surfaces as io.ErrUnexpectedEOF.
func (c *Client) Do(ctx context.Context, req *message.Request) (*message.Response, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	if _, err := c.conn.Write(c.renderer.Render(req)); err != nil {
		return nil, fmt.Errorf("fetch: writing request: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := c.conn.Read(c.readBuf)
		if n > 0 {
			result, ferr := c.assembler.Feed(c.readBuf[:n])
			if ferr != nil {
				return nil, ferr
			}

			if result.Msg != nil {
				return asResponse(result.Msg)
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			result, ferr := c.assembler.CloseNotify()
			if ferr != nil {
				return nil, ferr
			}

			if result.Msg != nil {
				return asResponse(result.Msg)
			}

			return nil, io.ErrUnexpectedEOF
		default:
			return nil, fmt.Errorf("fetch: reading response: %w", err)
		}
	}
}

// Get performs one GET over an established connection and returns the
// assembled, body-normalized response.
func Get(ctx context.Context, conn net.Conn, host, path string) (*message.Response, error) {
	return NewClient(conn, config.Default()).Do(ctx, NewRequest(host, path))
}

func asResponse(msg message.Message) (*message.Response, error) {
	resp, ok := msg.(*message.Response)
	if !ok {
		return nil, fmt.Errorf("fetch: expected a response, got %s", msg.Kind())
	}

	return resp, nil
}

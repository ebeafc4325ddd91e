package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

type gzipCodec struct {
	writer *gzip.Writer
}

func NewGZIP() Codec {
	return &gzipCodec{writer: gzip.NewWriter(nil)}
}

func (g *gzipCodec) Token() string {
	return "gzip"
}

func (g *gzipCodec) Encode(input []byte) ([]byte, error) {
	var buff bytes.Buffer
	g.writer.Reset(&buff)

	if _, err := g.writer.Write(input); err != nil {
		return nil, err
	}
	if err := g.writer.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func (g *gzipCodec) Decode(input []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

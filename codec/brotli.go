package codec

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

type brotliCodec struct {
	writer *brotli.Writer
}

func NewBrotli() Codec {
	return &brotliCodec{writer: brotli.NewWriter(nil)}
}

func (b *brotliCodec) Token() string {
	return "br"
}

func (b *brotliCodec) Encode(input []byte) ([]byte, error) {
	var buff bytes.Buffer
	b.writer.Reset(&buff)

	if _, err := b.writer.Write(input); err != nil {
		return nil, err
	}
	if err := b.writer.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func (b *brotliCodec) Decode(input []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(input)))
}

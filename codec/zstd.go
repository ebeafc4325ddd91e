package codec

import (
	"github.com/klauspost/compress/zstd"
)

type zstdCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewZSTD() Codec {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}

	return &zstdCodec{encoder: encoder, decoder: decoder}
}

func (z *zstdCodec) Token() string {
	return "zstd"
}

func (z *zstdCodec) Encode(input []byte) ([]byte, error) {
	return z.encoder.EncodeAll(input, nil), nil
}

func (z *zstdCodec) Decode(input []byte) ([]byte, error) {
	return z.decoder.DecodeAll(input, nil)
}

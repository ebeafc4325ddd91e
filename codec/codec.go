// Package codec implements the content-coding registry: one backend per
// coding token, matched in a fixed priority order.
package codec

type Encoder interface {
	Encode(input []byte) (output []byte, err error)
}

type Decoder interface {
	Decode(input []byte) (output []byte, err error)
}

type Codec interface {
	// Token returns the coding token associated with the codec itself.
	Token() string
	Encoder
	Decoder
}

// Tokens is the fixed order coding tokens are matched in. Exactly one
// coding is ever applied per direction: the first of these found among a
// message's tokens wins, the rest are ignored.
var Tokens = []string{"deflate", "gzip", "compress", "br", "zstd"}

// All returns a fresh instance of every codec this package implements.
func All() []Codec {
	return []Codec{NewDeflate(), NewGZIP(), NewCompress(), NewBrotli(), NewZSTD()}
}

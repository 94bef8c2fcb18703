package kvstore

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// Codec is how a value is encoded on disk
type Codec int

const (
	CodecNone Codec = iota
	CodecZstd
	CodecBrotli
)

var allCodecs = []Codec{CodecNone, CodecZstd, CodecBrotli}

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecBrotli:
		return "brotli"
	}
	return fmt.Sprintf("Codec(%d)", int(c))
}

func (c Codec) valid() bool {
	return c >= CodecNone && c <= CodecBrotli
}

// ext is appended to the escaped key to form a file name
func (c Codec) ext() string {
	switch c {
	case CodecZstd:
		return ".json.zst"
	case CodecBrotli:
		return ".json.br"
	}
	return ".json"
}

// ParseCodec accepts "", "none", "zstd", "brotli" and "br"
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CodecNone, nil
	case "zstd", "zst":
		return CodecZstd, nil
	case "brotli", "br":
		return CodecBrotli, nil
	}
	return CodecNone, fmt.Errorf("unknown codec '%s'", s)
}

// empty values are stored as empty files for every codec
func (c Codec) encode(d []byte) ([]byte, error) {
	if len(d) == 0 && c.valid() {
		return d, nil
	}
	switch c {
	case CodecNone:
		return d, nil
	case CodecZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(d, nil), nil
	case CodecBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
		if _, err := w.Write(d); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown codec %s", c)
}

func (c Codec) decode(d []byte) ([]byte, error) {
	if len(d) == 0 && c.valid() {
		return d, nil
	}
	switch c {
	case CodecNone:
		return d, nil
	case CodecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(d, nil)
	case CodecBrotli:
		return io.ReadAll(brotli.NewReader(bytes.NewReader(d)))
	}
	return nil, fmt.Errorf("unknown codec %s", c)
}

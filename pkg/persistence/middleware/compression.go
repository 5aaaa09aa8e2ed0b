package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/klauspost/compress/zstd"
)

// Payload tags written as the first byte of a compressed-store payload.
const (
	tagRaw  byte = 0
	tagZstd byte = 1
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("middleware: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("middleware: zstd decoder initialization failed: " + err.Error())
	}
}

type compressionMiddleware struct {
	next ports.TreeStore
}

// NewCompressionMiddleware compresses stored trees with zstd. Payloads that
// do not shrink are stored raw behind a tag byte.
func NewCompressionMiddleware() Middleware {
	return func(next ports.TreeStore) ports.TreeStore {
		return &compressionMiddleware{next: next}
	}
}

func (m *compressionMiddleware) Put(ctx context.Context, key string, data []byte) error {
	out := append([]byte{tagZstd}, zstdEncoder.EncodeAll(data, nil)...)
	if len(out) > len(data) {
		out = append([]byte{tagRaw}, data...)
	}
	return m.next.Put(ctx, key, out)
}

func (m *compressionMiddleware) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("tree %s: empty payload", key)
	}

	switch payload[0] {
	case tagRaw:
		return payload[1:], nil
	case tagZstd:
		plain, err := zstdDecoder.DecodeAll(payload[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("tree %s: zstd decompress: %w", key, err)
		}
		return plain, nil
	default:
		return nil, fmt.Errorf("tree %s: %w %d", key, errUnknownTag, payload[0])
	}
}

var errUnknownTag = errors.New("unknown compression tag")

func (m *compressionMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *compressionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

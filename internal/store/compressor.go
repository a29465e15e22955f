package store

import (
	"errors"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"sync"
)

const (
	// maxPayloadBytes bounds a decoded cache payload or snapshot.
	maxPayloadBytes = 256 << 20
	frameOverhead   = 64
)

var errEmptyPayload = errors.New("empty cached payload")

// zstdCodec compresses cached listing JSON and store snapshots. Every call
// is a single EncodeAll/DecodeAll, so the encoder runs without background
// goroutines.
type zstdCodec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	closeOnce sync.Once
}

func (z *zstdCodec) Compress(val []byte) ([]byte, error) {
	// listing JSON usually shrinks to well under a quarter of its size
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/4+frameOverhead)), nil
}

func (z *zstdCodec) Decompress(val []byte) ([]byte, error) {
	if len(val) == 0 {
		return nil, errEmptyPayload
	}
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("corrupt cached payload (%d bytes): %w", len(val), err)
	}
	return out, nil
}

// Close releases the codec. Stores close their codec on shutdown, so a
// second call is a no-op.
func (z *zstdCodec) Close() {
	z.closeOnce.Do(func() {
		_ = z.encoder.Close()
		z.decoder.Close()
	})
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(maxPayloadBytes),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &zstdCodec{encoder: encoder, decoder: decoder}, nil
}

package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
)

// compressed stores zstd frames in an inner cache.
type compressed struct {
	inner Cache
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// Compressed wraps inner so values are zstd-compressed at rest. Entries
// that fail to decompress are deleted and reported as misses.
func Compressed(inner Cache) Cache {
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	dec, _ := zstd.NewReader(nil)
	return &compressed{inner: inner, enc: enc, dec: dec}
}

func (c *compressed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	out, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		_ = c.inner.Delete(ctx, key)
		return nil, false, nil
	}
	return out, true, nil
}

func (c *compressed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, c.enc.EncodeAll(data, nil), ttl)
}

func (c *compressed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *compressed) Clear(ctx context.Context) error {
	cl, ok := c.inner.(Clearer)
	if !ok {
		return fmt.Errorf("cache: %T cannot be cleared", c.inner)
	}
	return cl.Clear(ctx)
}

func (c *compressed) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		return err
	}
	return c.inner.Close()
}

// Decompress inflates a value written through [Compressed], for tools
// reading a cache directory directly.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

package rs

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Davincible/rscodec/pkg/field"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of decoding one word of a batch.
type BatchResult struct {
	Result *DecodeResult
	Err    error
}

func (c *Codec) batchLimit() int {
	if c.workers > 1 {
		return c.workers
	}
	return runtime.GOMAXPROCS(0)
}

// EncodeBatch encodes every message concurrently. Results are in input order. The first
// invalid message fails the whole batch.
func (c *Codec) EncodeBatch(ctx context.Context, messages [][]field.Element) ([]*EncodeResult, error) {
	results := make([]*EncodeResult, len(messages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchLimit())
	for i, msg := range messages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Encode(msg)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DecodeBatch decodes every word concurrently. Per-word failures are reported in the
// corresponding BatchResult; the returned error is non-nil only when ctx is done.
func (c *Codec) DecodeBatch(ctx context.Context, words []Codeword) ([]BatchResult, error) {
	results := make([]BatchResult, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchLimit())
	for i, w := range words {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Hypotheses of a single word run sequentially; the batch is the unit of
			// parallelism here.
			res, err := c.decode(gctx, w, false)
			results[i] = BatchResult{Result: res, Err: err}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package batch

import (
	"context"
	"errors"
	"fmt"
)

// MinSize is the smallest allowed batch size.
const MinSize = 1

// Common batch processing errors.
var (
	ErrInvalidSize = errors.New("batch size must be at least 1")
	ErrNilCallback = errors.New("batch callback cannot be nil")
)

// Callback processes one batch of items. Returning an error aborts the
// run; callers that want skip-and-continue semantics handle their
// per-item failures inside the callback and return nil.
type Callback[T any] func(ctx context.Context, items []T, index int) error

// ProgressFunc is invoked after each completed batch.
type ProgressFunc func(progress *Progress)

// Processor splits a slice into consecutive batches of a fixed size and
// runs them sequentially. The scene graph is single-writer, so there is
// no concurrent variant.
type Processor[T any] struct {
	size       int
	onProgress ProgressFunc
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Processor[T]{size: size}, nil
}

// WithProgress sets the per-batch progress callback.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// Size returns the configured batch size.
func (p *Processor[T]) Size() int { return p.size }

// NumBatches returns how many batches n items produce.
func (p *Processor[T]) NumBatches(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + p.size - 1) / p.size
}

// Process runs the callback over items in consecutive batches. An empty
// slice is a no-op. Cancellation is checked at batch boundaries only;
// a batch that has started always finishes.
func (p *Processor[T]) Process(ctx context.Context, items []T, fn Callback[T]) error {
	if fn == nil {
		return ErrNilCallback
	}
	if len(items) == 0 {
		return nil
	}

	total := p.NumBatches(len(items))
	progress := NewProgress(len(items), total, p.size)

	for index := 0; index < total; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := index * p.size
		end := min(start+p.size, len(items))

		if err := fn(ctx, items[start:end], index); err != nil {
			return fmt.Errorf("batch %d failed: %w", index, err)
		}

		progress.AddProcessed(end - start)
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}
	return nil
}

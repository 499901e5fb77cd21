// Package repository exposes typed queries and live result streams over the
// storage engine. Repositories are the entire public surface of the data
// layer: one-shot calls return domain objects, Watch variants return streams
// that re-deliver a complete snapshot whenever the underlying tables change.
package repository

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/tally/internal/service"
)

// Stream delivers complete result snapshots of a live query. The first
// snapshot arrives immediately after subscription; a fresh one follows every
// write that touched the query's source tables. When the consumer lags, a
// stale snapshot is replaced by the newest rather than queued.
type Stream[T any] struct {
	ch     chan T
	cancel func()
	once   sync.Once
}

// Updates returns the snapshot channel. It is closed after Close or when the
// subscribing context ends.
func (s *Stream[T]) Updates() <-chan T {
	return s.ch
}

// Close unsubscribes. No snapshot is delivered after Close returns and the
// consumer drains the channel. Safe to call more than once.
func (s *Stream[T]) Close() {
	s.once.Do(s.cancel)
}

// newStream registers a live query: run produces a full snapshot and is
// re-executed after every change signal for the given tables.
func newStream[T any](ctx context.Context, store service.Storage, run func(context.Context) (T, error), tables ...string) *Stream[T] {
	changes, stop := store.Watch(tables...)
	ctx, cancelCtx := context.WithCancel(ctx)

	s := &Stream[T]{
		ch: make(chan T, 1),
		cancel: func() {
			cancelCtx()
			stop()
		},
	}

	go func() {
		defer close(s.ch)
		s.emit(ctx, run)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				s.emit(ctx, run)
			}
		}
	}()

	return s
}

// emit recomputes the snapshot and pushes it, displacing an unconsumed stale
// one. Query failures are logged and skipped; the previous snapshot stands.
func (s *Stream[T]) emit(ctx context.Context, run func(context.Context) (T, error)) {
	v, err := run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("live query failed", "error", err)
		}
		return
	}
	for {
		select {
		case s.ch <- v:
			return
		default:
		}
		select {
		case <-s.ch: // drop the stale snapshot
		default:
		}
	}
}

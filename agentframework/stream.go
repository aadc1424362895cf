// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"iter"
	"sync"
)

// ResponseStream is a pull iterator over values produced by a goroutine.
// Values are delivered in production order to a single consumer, through
// [ResponseStream.Next] or [ResponseStream.All]. A producer error ends the
// stream and is reported once the values sent before it are consumed.
//
// Callers must call Close when done, or cancel the context the stream was
// created with.
type ResponseStream[T any] struct {
	ch        <-chan T
	errCh     <-chan error
	cancel    context.CancelFunc
	closeOnce sync.Once
	err       error
}

// NewResponseStream runs producer in a new goroutine and streams what it
// sends on ch. ch is closed when producer returns. Producers should send
// with [Send] so that Close unblocks them.
func NewResponseStream[T any](ctx context.Context, producer func(ctx context.Context, ch chan<- T) error) *ResponseStream[T] {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan T, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		if err := producer(ctx, ch); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	return &ResponseStream[T]{
		ch:     ch,
		errCh:  errCh,
		cancel: cancel,
	}
}

// StreamOf returns a ResponseStream that yields items in order and then ends.
func StreamOf[T any](ctx context.Context, items ...T) *ResponseStream[T] {
	return NewResponseStream(ctx, func(ctx context.Context, ch chan<- T) error {
		for _, item := range items {
			if err := Send(ctx, ch, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Send delivers v on ch unless ctx is cancelled first.
func Send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next value from the stream.
// ok is false when the stream is exhausted. err is non-nil on failure.
func (s *ResponseStream[T]) Next(ctx context.Context) (val T, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case v, open := <-s.ch:
		if !open {
			// Producer finished; its error (if any) is already buffered.
			if e, received := <-s.errCh; received && e != nil {
				s.err = e
			}
			var zero T
			return zero, false, s.err
		}
		return v, true, nil
	}
}

// All returns an iterator over the remaining values. A failure is yielded
// once as a zero value with a non-nil error, after which iteration stops.
//
//	for u, err := range stream.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(u.Text())
//	}
func (s *ResponseStream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := s.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// Collect drains the stream. On failure it returns the values received
// before the error along with it.
func (s *ResponseStream[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for v, err := range s.All(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, v)
	}
	return items, nil
}

// Err returns the producer's error once the stream has ended, or nil.
func (s *ResponseStream[T]) Err() error {
	return s.err
}

// Close cancels the producer and releases resources.
// Safe to call multiple times.
func (s *ResponseStream[T]) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		for range s.ch {
		}
		if e, received := <-s.errCh; received && e != nil && s.err == nil {
			s.err = e
		}
	})
	return nil
}

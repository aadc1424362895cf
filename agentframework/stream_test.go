// Copyright (c) Microsoft. All rights reserved.

package agentframework_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

func TestResponseStream_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	stream := af.StreamOf(ctx, 1, 2, 3, 4, 5)
	defer stream.Close()

	got, err := stream.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestResponseStream_ErrorAfterValues(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	stream := af.NewResponseStream(ctx, func(ctx context.Context, ch chan<- string) error {
		if err := af.Send(ctx, ch, "a"); err != nil {
			return err
		}
		return boom
	})
	defer stream.Close()

	v, ok, err := stream.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok, err = stream.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	// The error sticks once the producer is done.
	_, ok, err = stream.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestResponseStream_Exhausted(t *testing.T) {
	ctx := context.Background()
	stream := af.StreamOf[string](ctx)
	defer stream.Close()

	_, ok, err := stream.Next(ctx)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestResponseStream_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stream := af.StreamOf(context.Background(), "never")
	defer stream.Close()

	cancel()
	_, ok, err := stream.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseStream_CloseStopsProducer(t *testing.T) {
	stopped := make(chan struct{})
	stream := af.NewResponseStream(context.Background(), func(ctx context.Context, ch chan<- int) error {
		defer close(stopped)
		for i := 0; ; i++ {
			if err := af.Send(ctx, ch, i); err != nil {
				return err
			}
		}
	})

	v, ok, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, v)

	require.NoError(t, stream.Close())
	<-stopped
	require.NoError(t, stream.Close())
}

func TestResponseStream_All(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	stream := af.NewResponseStream(ctx, func(ctx context.Context, ch chan<- string) error {
		for _, s := range []string{"Sure, ", "how about"} {
			if err := af.Send(ctx, ch, s); err != nil {
				return err
			}
		}
		return boom
	})
	defer stream.Close()

	var got []string
	var gotErr error
	for v, err := range stream.All(ctx) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []string{"Sure, ", "how about"}, got)
	assert.ErrorIs(t, gotErr, boom)
	assert.ErrorIs(t, stream.Err(), boom)
}

func TestResponseStream_AllStopsEarly(t *testing.T) {
	ctx := context.Background()
	stream := af.StreamOf(ctx, 1, 2, 3)
	defer stream.Close()

	for v, err := range stream.All(ctx) {
		require.NoError(t, err)
		if v == 1 {
			break
		}
	}

	rest, err := stream.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, rest)
	assert.NoError(t, stream.Err())
}

// Copyright (c) Microsoft. All rights reserved.

package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

func newTestCollector() *Collector {
	return NewCollector("test", prometheus.NewRegistry())
}

func TestCollector_FunctionMiddleware(t *testing.T) {
	c := newTestCollector()
	ok := af.NewTool("ok", "", nil, func(ctx context.Context, _ json.RawMessage) (any, error) { return "fine", nil })
	bad := af.NewTool("bad", "", nil, func(ctx context.Context, _ json.RawMessage) (any, error) { return nil, errors.New("boom") })

	handler := c.FunctionMiddleware()(func(ctx context.Context, inv *af.ToolInvocation) (any, error) {
		return inv.Tool.Invoke(ctx, inv.Arguments)
	})
	invoke := func(tool af.Tool) (any, error) {
		return handler(context.Background(), &af.ToolInvocation{
			Tool: tool,
			Call: &af.FunctionCallContent{CallID: "call_1", Name: tool.Name()},
		})
	}

	got, err := invoke(ok)
	require.NoError(t, err)
	assert.Equal(t, "fine", got)
	_, err = invoke(ok)
	require.NoError(t, err)
	_, err = invoke(bad)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.toolCallsTotal.WithLabelValues("ok", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.toolCallsTotal.WithLabelValues("bad", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.toolCallDuration))
}

func TestCollector_ChatMiddleware(t *testing.T) {
	c := newTestCollector()
	fail := true
	handler := c.ChatMiddleware()(func(ctx context.Context, _ []af.Message, _ *af.ChatOptions) (*af.ResponseStream[af.ChatResponseUpdate], error) {
		if fail {
			return nil, af.ErrService
		}
		return af.StreamOf[af.ChatResponseUpdate](ctx), nil
	})

	_, err := handler(context.Background(), nil, nil)
	require.Error(t, err)

	fail = false
	stream, err := handler(context.Background(), nil, nil)
	require.NoError(t, err)
	stream.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.modelRequests.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.modelRequests.WithLabelValues("ok")))
}

func TestCollector_Turns(t *testing.T) {
	c := newTestCollector()

	c.TurnCompleted(&af.TurnResult{Usage: af.UsageDetails{InputTokens: 10, OutputTokens: 4, TotalTokens: 14}}, time.Second)
	c.TurnCompleted(nil, time.Second)
	c.TurnFailed(errors.New("backend down"), time.Millisecond)
	c.TurnFailed(fmt.Errorf("turn 2: %w", context.Canceled), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.turnsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.turnsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.turnsTotal.WithLabelValues("canceled")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.tokensUsed.WithLabelValues("input")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.tokensUsed.WithLabelValues("output")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.turnDuration))
}

func TestNewCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector("dup", reg)
	assert.Panics(t, func() { NewCollector("dup", reg) })
}

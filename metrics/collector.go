// Copyright (c) Microsoft. All rights reserved.

// Package metrics exports Prometheus metrics for tool invocations, model
// requests and conversation turns.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Collector records agent metrics. Create it with [NewCollector] and attach
// it through [Collector.FunctionMiddleware], [Collector.ChatMiddleware] and
// as a turn observer.
type Collector struct {
	toolCallsTotal   *prometheus.CounterVec
	toolCallDuration *prometheus.HistogramVec
	modelRequests    *prometheus.CounterVec
	tokensUsed       *prometheus.CounterVec
	turnsTotal       *prometheus.CounterVec
	turnDuration     prometheus.Histogram
}

// NewCollector registers the metrics with reg under namespace. A nil reg
// means the default registerer.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		toolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool invocations",
			},
			[]string{"tool", "status"},
		),
		toolCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Tool invocation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		modelRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_requests_total",
				Help:      "Total number of streamed model requests",
			},
			[]string{"status"},
		),
		tokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_total",
				Help:      "Tokens reported by the model backend",
			},
			[]string{"type"},
		),
		turnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Total number of conversation turns",
			},
			[]string{"status"},
		),
		turnDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "turn_duration_seconds",
				Help:      "Conversation turn duration in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}
}

// FunctionMiddleware counts and times every tool invocation.
func (c *Collector) FunctionMiddleware() af.FunctionMiddleware {
	return func(next af.FunctionHandler) af.FunctionHandler {
		return func(ctx context.Context, inv *af.ToolInvocation) (any, error) {
			start := time.Now()
			result, err := next(ctx, inv)
			c.RecordToolCall(inv.Tool.Name(), time.Since(start), err)
			return result, err
		}
	}
}

// ChatMiddleware counts model requests by whether the stream could be opened.
func (c *Collector) ChatMiddleware() af.ChatMiddleware {
	return func(next af.ChatHandler) af.ChatHandler {
		return func(ctx context.Context, messages []af.Message, opts *af.ChatOptions) (*af.ResponseStream[af.ChatResponseUpdate], error) {
			stream, err := next(ctx, messages, opts)
			c.modelRequests.WithLabelValues(status(err)).Inc()
			return stream, err
		}
	}
}

// RecordToolCall records one tool invocation.
func (c *Collector) RecordToolCall(tool string, d time.Duration, err error) {
	c.toolCallsTotal.WithLabelValues(tool, status(err)).Inc()
	c.toolCallDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// TurnCompleted records a successful turn and its token usage.
func (c *Collector) TurnCompleted(result *af.TurnResult, d time.Duration) {
	c.turnsTotal.WithLabelValues(statusOK).Inc()
	c.turnDuration.Observe(d.Seconds())
	if result == nil {
		return
	}
	c.tokensUsed.WithLabelValues("input").Add(float64(result.Usage.InputTokens))
	c.tokensUsed.WithLabelValues("output").Add(float64(result.Usage.OutputTokens))
}

// TurnFailed records a failed turn.
func (c *Collector) TurnFailed(err error, d time.Duration) {
	label := statusError
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		label = "canceled"
	}
	c.turnsTotal.WithLabelValues(label).Inc()
	c.turnDuration.Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}

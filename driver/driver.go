// Copyright (c) Microsoft. All rights reserved.

package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

const instrumentationName = "github.com/microsoft/ai-agents-sandbox/go/driver"

// ErrTurnFailed wraps any failure that ends a run.
var ErrTurnFailed = errors.New("turn failed")

// Observer is notified when a turn ends.
type Observer interface {
	TurnCompleted(result *af.TurnResult, d time.Duration)
	TurnFailed(err error, d time.Duration)
}

// Driver runs conversation turns against a backend. It is not safe for
// concurrent use: turns are strictly sequential.
type Driver struct {
	backend   af.Backend
	out       io.Writer
	logger    *slog.Logger
	conv      *af.Conversation
	observers []Observer
	tracer    trace.Tracer
}

// Option configures a [Driver].
type Option func(*Driver)

// WithOutput sets where turns are rendered. Default: io.Discard.
func WithOutput(w io.Writer) Option {
	return func(d *Driver) { d.out = w }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithConversation continues an existing conversation instead of a new one.
func WithConversation(c *af.Conversation) Option {
	return func(d *Driver) { d.conv = c }
}

// WithObserver adds a turn observer.
func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

// WithTracer sets the tracer for turn spans. Default: the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(d *Driver) { d.tracer = t }
}

// New creates a Driver for backend.
func New(backend af.Backend, opts ...Option) *Driver {
	d := &Driver{backend: backend}
	for _, o := range opts {
		o(d)
	}
	if d.out == nil {
		d.out = io.Discard
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.conv == nil {
		d.conv = af.NewConversation()
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(instrumentationName)
	}
	return d
}

// Conversation returns the conversation the driver appends to.
func (d *Driver) Conversation() *af.Conversation { return d.conv }

// Run executes one turn per input, in order. It stops at the first failing
// turn and returns the results of the turns before it together with an error
// wrapping [ErrTurnFailed].
func (d *Driver) Run(ctx context.Context, inputs []string) ([]*af.TurnResult, error) {
	results := make([]*af.TurnResult, 0, len(inputs))
	for i, input := range inputs {
		result, err := d.RunTurn(ctx, input)
		if err != nil {
			return results, fmt.Errorf("%w: turn %d: %w", ErrTurnFailed, i+1, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// RunTurn sends input with the conversation so far, aggregates the streamed
// reply and renders it. The conversation is only extended on success.
func (d *Driver) RunTurn(ctx context.Context, input string) (*af.TurnResult, error) {
	ctx, span := d.tracer.Start(ctx, "driver.turn",
		trace.WithAttributes(
			attribute.String("conversation.id", d.conv.ID()),
			attribute.Int("conversation.length", d.conv.Len()),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := d.runTurn(ctx, input)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.WarnContext(ctx, "turn failed", "error", err, "duration", elapsed)
		for _, o := range d.observers {
			o.TurnFailed(err, elapsed)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("turn.calls", len(result.CallLog)))
	d.logger.DebugContext(ctx, "turn completed",
		"agent", result.AgentName,
		"calls", len(result.CallLog),
		"duration", elapsed,
	)
	for _, o := range d.observers {
		o.TurnCompleted(result, elapsed)
	}
	return result, nil
}

func (d *Driver) runTurn(ctx context.Context, input string) (*af.TurnResult, error) {
	if err := RenderInput(d.out, input); err != nil {
		return nil, fmt.Errorf("render input: %w", err)
	}

	user := af.NewUserMessage(input)
	history := append(d.conv.Messages(), user)

	stream, err := d.backend.StreamTurn(ctx, history)
	if err != nil {
		if errors.Is(err, af.ErrBackend) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", af.ErrBackend, err)
	}
	defer stream.Close()

	result, err := af.Aggregate(ctx, stream)
	if err != nil {
		return nil, err
	}

	if err := RenderResult(d.out, result); err != nil {
		return nil, fmt.Errorf("render result: %w", err)
	}

	reply := af.NewAssistantMessage(result.Text)
	reply.AuthorName = result.AgentName
	d.conv.Append(user, reply)
	return result, nil
}

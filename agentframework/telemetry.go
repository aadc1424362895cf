// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/microsoft/ai-agents-sandbox/go/agentframework"

// LoggingMiddleware logs the start and outcome of every tool invocation.
// A nil logger uses [slog.Default].
func LoggingMiddleware(logger *slog.Logger) FunctionMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next FunctionHandler) FunctionHandler {
		return func(ctx context.Context, inv *ToolInvocation) (any, error) {
			log := logger.With(
				"tool", inv.Tool.Name(),
				"call_id", inv.Call.CallID,
				"iteration", inv.Iteration,
			)
			log.DebugContext(ctx, "tool invocation started", "arguments", string(inv.Arguments))

			start := time.Now()
			result, err := next(ctx, inv)
			if err != nil {
				log.WarnContext(ctx, "tool invocation failed", "duration", time.Since(start), "error", err)
				return nil, err
			}
			log.DebugContext(ctx, "tool invocation completed",
				"duration", time.Since(start),
				"result", FormatValue(result),
			)
			return result, nil
		}
	}
}

// TracingMiddleware records one "tool.invoke" span per tool invocation. A nil
// tracer uses the global OpenTelemetry provider.
func TracingMiddleware(tracer trace.Tracer) FunctionMiddleware {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return func(next FunctionHandler) FunctionHandler {
		return func(ctx context.Context, inv *ToolInvocation) (any, error) {
			ctx, span := tracer.Start(ctx, "tool.invoke",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("tool.name", inv.Tool.Name()),
					attribute.String("tool.call_id", inv.Call.CallID),
					attribute.Int("agent.iteration", inv.Iteration),
				),
			)
			defer span.End()

			result, err := next(ctx, inv)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			span.SetStatus(codes.Ok, "")
			return result, nil
		}
	}
}

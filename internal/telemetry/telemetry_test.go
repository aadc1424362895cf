// Copyright (c) Microsoft. All rights reserved.

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_RequiresEndpoint(t *testing.T) {
	_, err := Setup(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestNewExporter_UnknownProtocol(t *testing.T) {
	_, err := newExporter(context.Background(), Config{Endpoint: "localhost:4317", Protocol: "udp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "udp")
}

func TestNewExporter_Protocols(t *testing.T) {
	for _, proto := range []string{"", "grpc", "http"} {
		exp, err := newExporter(context.Background(), Config{Endpoint: "localhost:4317", Protocol: proto, Insecure: true})
		require.NoError(t, err, proto)
		require.NoError(t, exp.Shutdown(context.Background()))
	}
}

func TestNewTracerProvider_ExportsSpans(t *testing.T) {
	ctx := context.Background()
	exp := tracetest.NewInMemoryExporter()
	tp, err := NewTracerProvider(ctx, "", exp)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "driver.turn")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "driver.turn", spans[0].Name)

	var service string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, DefaultServiceName, service)
	require.NoError(t, tp.Shutdown(ctx))
}

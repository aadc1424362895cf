// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Aggregator folds the updates of one streamed turn into a [TurnResult].
//
// Text deltas are concatenated in arrival order, except that an update
// carrying any function call or function result contributes no text: a call
// announcement is never mixed into the rendered answer. Calls and results are
// logged in arrival order, and successful results are recorded per tool name
// with the last one winning.
//
// The zero value is not usable; create one with [NewAggregator].
type Aggregator struct {
	agentName   string
	text        strings.Builder
	callLog     []string
	callResults map[string]any
	usage       UsageDetails
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{callResults: make(map[string]any)}
}

// Add folds one update into the aggregate.
func (a *Aggregator) Add(u ChatResponseUpdate) {
	if a.agentName == "" && u.AuthorName != "" {
		a.agentName = u.AuthorName
	}
	a.usage = a.usage.Add(u.Usage)

	hasFunction := false
	for _, c := range u.Contents {
		switch v := c.(type) {
		case *FunctionCallContent:
			hasFunction = true
			a.callLog = append(a.callLog, FormatCall(v))
		case *FunctionResultContent:
			hasFunction = true
			a.callLog = append(a.callLog, FormatResult(v))
			if v.Err == nil {
				a.callResults[v.Name] = v.Result
			}
		}
	}
	if hasFunction {
		return
	}
	for _, c := range u.Contents {
		if tc, ok := c.(*TextContent); ok {
			a.text.WriteString(tc.Text)
		}
	}
}

// Result returns a snapshot of the aggregate so far.
func (a *Aggregator) Result() *TurnResult {
	log := make([]string, len(a.callLog))
	copy(log, a.callLog)
	results := make(map[string]any, len(a.callResults))
	for k, v := range a.callResults {
		results[k] = v
	}
	return &TurnResult{
		AgentName:   a.agentName,
		Text:        a.text.String(),
		CallLog:     log,
		CallResults: results,
		Usage:       a.usage,
	}
}

// Aggregate pulls every update from stream, one at a time, and returns the
// folded result. If the stream fails, the partial aggregate is discarded and
// the error is returned; failures that are not tool errors are wrapped with
// [ErrBackend].
func Aggregate(ctx context.Context, stream *ResponseStream[ChatResponseUpdate]) (*TurnResult, error) {
	agg := NewAggregator()
	for u, err := range stream.All(ctx) {
		if err != nil {
			if errors.Is(err, ErrTool) || errors.Is(err, ErrBackend) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrBackend, err)
		}
		agg.Add(u)
	}
	return agg.Result(), nil
}

// FormatCall renders a call log line: "Calling: name(arguments)". Empty
// arguments render as {}.
func FormatCall(c *FunctionCallContent) string {
	args := strings.TrimSpace(c.Arguments)
	if args == "" {
		args = "{}"
	}
	return fmt.Sprintf("Calling: %s(%s)", c.Name, args)
}

// FormatResult renders a call log line: "Result: value", or
// "Result: error: message" for a failed call.
func FormatResult(r *FunctionResultContent) string {
	if r.Err != nil {
		return "Result: error: " + r.Err.Error()
	}
	return "Result: " + FormatValue(r.Result)
}

// FormatValue renders a tool result for display and for the model: strings
// verbatim, everything else as JSON.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

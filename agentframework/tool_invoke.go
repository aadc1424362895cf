// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// InvocationConfig controls the function invocation loop behavior.
type InvocationConfig struct {
	// MaxIterations is the maximum number of model round-trips per turn.
	// Default: 40.
	MaxIterations int

	// IncludeDetailedErrors includes full error text in tool results sent
	// back to the model. When false, a generic error message is used. The
	// streamed result always carries the real error.
	IncludeDetailedErrors bool
}

// DefaultInvocationConfig returns the default configuration.
func DefaultInvocationConfig() InvocationConfig {
	return InvocationConfig{MaxIterations: 40}
}

func (c InvocationConfig) withDefaults() InvocationConfig {
	if c.MaxIterations <= 0 {
		c.MaxIterations = 40
	}
	return c
}

// functionLoop runs one turn: stream a model round, forward its text,
// invoke the tools it asked for, append the exchange and go again until a
// round ends without tool calls.
type functionLoop struct {
	agent   *Agent
	handler ChatHandler
	invoke  FunctionHandler
	config  InvocationConfig
}

func (l *functionLoop) run(ctx context.Context, messages []Message, opts *ChatOptions, ch chan<- ChatResponseUpdate) error {
	for iteration := 0; iteration < l.config.MaxIterations; iteration++ {
		round, err := l.streamRound(ctx, messages, opts, ch)
		if err != nil {
			return err
		}
		if len(round.calls) == 0 {
			return nil
		}

		callContents := make(Contents, len(round.calls))
		for i, c := range round.calls {
			callContents[i] = c
		}
		if err := Send(ctx, ch, l.update(callContents)); err != nil {
			return err
		}

		results, err := l.invokeCalls(ctx, iteration, round.calls)
		if err != nil {
			return err
		}
		resultContents := make(Contents, len(results))
		for i, r := range results {
			resultContents[i] = r
		}
		if err := Send(ctx, ch, l.update(resultContents)); err != nil {
			return err
		}

		assistant := Message{Role: RoleAssistant, AuthorName: l.agent.name}
		if round.text != "" {
			assistant.Contents = append(assistant.Contents, &TextContent{Text: round.text})
		}
		assistant.Contents = append(assistant.Contents, callContents...)
		messages = append(messages, assistant)
		for _, r := range results {
			messages = append(messages, NewToolMessage(l.modelFacingResult(r)))
		}
	}

	return fmt.Errorf("%w: max iterations reached (%d)", ErrExecution, l.config.MaxIterations)
}

// round is what one model round-trip produced.
type round struct {
	text  string
	calls []*FunctionCallContent
}

// streamRound forwards every text-bearing update of one model round to ch
// and holds back the tool calls, which are emitted together once the round
// is complete.
func (l *functionLoop) streamRound(ctx context.Context, messages []Message, opts *ChatOptions, ch chan<- ChatResponseUpdate) (*round, error) {
	stream, err := l.handler(ctx, messages, opts)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	r := &round{}
	var text strings.Builder
	for {
		u, ok, err := stream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		var rest Contents
		for _, c := range u.Contents {
			if fc, isCall := c.(*FunctionCallContent); isCall {
				if fc.CallID == "" {
					fc.CallID = "call_" + uuid.NewString()
				}
				r.calls = append(r.calls, fc)
				continue
			}
			if tc, isText := c.(*TextContent); isText {
				text.WriteString(tc.Text)
			}
			rest = append(rest, c)
		}
		if len(rest) == 0 && u.Usage == (UsageDetails{}) {
			continue
		}

		u.Contents = rest
		u.AuthorName = l.agent.name
		if u.Role == "" {
			u.Role = RoleAssistant
		}
		if err := Send(ctx, ch, u); err != nil {
			return nil, err
		}
	}
	r.text = text.String()
	return r, nil
}

// invokeCalls runs the calls sequentially in the order the model emitted
// them. Tool failures become error results; an unknown tool aborts the turn.
func (l *functionLoop) invokeCalls(ctx context.Context, iteration int, calls []*FunctionCallContent) ([]*FunctionResultContent, error) {
	results := make([]*FunctionResultContent, 0, len(calls))
	for _, call := range calls {
		tool, err := l.agent.registry.Resolve(call.Name)
		if err != nil {
			slog.WarnContext(ctx, "unknown tool called", "tool", call.Name, "call_id", call.CallID)
			return nil, err
		}

		result, invokeErr := l.invoke(ctx, &ToolInvocation{
			Tool:      tool,
			Call:      call,
			Arguments: json.RawMessage(strings.TrimSpace(call.Arguments)),
			Iteration: iteration,
		})
		if invokeErr != nil {
			slog.WarnContext(ctx, "tool invocation error",
				"tool", call.Name,
				"call_id", call.CallID,
				"error", invokeErr,
			)
			results = append(results, &FunctionResultContent{CallID: call.CallID, Name: call.Name, Err: invokeErr})
			continue
		}
		results = append(results, &FunctionResultContent{CallID: call.CallID, Name: call.Name, Result: result})
	}
	return results, nil
}

// modelFacingResult is the result as sent back to the model. Error details
// are hidden unless IncludeDetailedErrors is set.
func (l *functionLoop) modelFacingResult(r *FunctionResultContent) *FunctionResultContent {
	if r.Err == nil {
		return r
	}
	msg := "error: tool invocation failed"
	if l.config.IncludeDetailedErrors {
		msg = "error: " + r.Err.Error()
	}
	return &FunctionResultContent{CallID: r.CallID, Name: r.Name, Result: msg}
}

func (l *functionLoop) update(contents Contents) ChatResponseUpdate {
	return ChatResponseUpdate{
		Role:       RoleAssistant,
		AuthorName: l.agent.name,
		Contents:   contents,
	}
}

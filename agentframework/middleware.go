// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"encoding/json"
)

// ChatHandler opens one streamed model round-trip.
type ChatHandler func(ctx context.Context, messages []Message, opts *ChatOptions) (*ResponseStream[ChatResponseUpdate], error)

// ChatMiddleware wraps every model round-trip of a turn. A middleware may
// return without calling next, in which case the round never reaches the
// backend.
type ChatMiddleware func(next ChatHandler) ChatHandler

// ToolInvocation is a resolved tool call on its way to the tool.
type ToolInvocation struct {
	Tool Tool

	// Call is the request as the model emitted it. Its CallID is always set.
	Call *FunctionCallContent

	// Arguments is Call.Arguments with surrounding whitespace removed.
	Arguments json.RawMessage

	// Iteration is the zero-based model round that requested the call.
	Iteration int
}

// FunctionHandler runs one [ToolInvocation].
type FunctionHandler func(ctx context.Context, inv *ToolInvocation) (any, error)

// FunctionMiddleware wraps every tool invocation. An error returned from the
// chain is recorded as the call's result; it does not abort the turn.
type FunctionMiddleware func(next FunctionHandler) FunctionHandler

// chain wraps h so that mws[0] runs first.
func chain[H any, M ~func(H) H](h H, mws []M) H {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// invokeTool is the innermost [FunctionHandler].
func invokeTool(ctx context.Context, inv *ToolInvocation) (any, error) {
	return inv.Tool.Invoke(ctx, inv.Arguments)
}

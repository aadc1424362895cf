// Copyright (c) Microsoft. All rights reserved.

package agentframework

import "context"

// ChatClient is the interface for interacting with an LLM backend.
// Provider packages (e.g., openai) implement this interface.
type ChatClient interface {
	// StreamResponse sends messages and returns a stream of incremental
	// updates. Tool calls requested by the model arrive as complete
	// [FunctionCallContent] items.
	StreamResponse(ctx context.Context, messages []Message, opts *ChatOptions) (*ResponseStream[ChatResponseUpdate], error)
}

// Backend produces the streamed response for one conversational turn. The
// stream contains text deltas, the tool calls the backend decided to make and
// their results, in the order they happened.
//
// [Agent] is the standard implementation; tests provide scripted doubles.
type Backend interface {
	StreamTurn(ctx context.Context, history []Message) (*ResponseStream[ChatResponseUpdate], error)
}

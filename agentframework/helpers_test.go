// Copyright (c) Microsoft. All rights reserved.

package agentframework_test

import (
	"context"
	"sync"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// mockClient replays one list of updates per model round and records what
// it was asked.
type mockClient struct {
	mu       sync.Mutex
	rounds   [][]af.ChatResponseUpdate
	streamFn func(ctx context.Context, msgs []af.Message, opts *af.ChatOptions) (*af.ResponseStream[af.ChatResponseUpdate], error)
	requests [][]af.Message
	options  []*af.ChatOptions
}

func (m *mockClient) StreamResponse(ctx context.Context, msgs []af.Message, opts *af.ChatOptions) (*af.ResponseStream[af.ChatResponseUpdate], error) {
	m.mu.Lock()
	cp := make([]af.Message, len(msgs))
	copy(cp, msgs)
	m.requests = append(m.requests, cp)
	m.options = append(m.options, opts)
	n := len(m.requests)
	m.mu.Unlock()

	if m.streamFn != nil {
		return m.streamFn(ctx, msgs, opts)
	}
	var updates []af.ChatResponseUpdate
	if n <= len(m.rounds) {
		updates = m.rounds[n-1]
	}
	return af.StreamOf(ctx, updates...), nil
}

func textUpdate(s string) af.ChatResponseUpdate {
	return af.ChatResponseUpdate{Role: af.RoleAssistant, Contents: af.Contents{&af.TextContent{Text: s}}}
}

func callUpdate(calls ...*af.FunctionCallContent) af.ChatResponseUpdate {
	u := af.ChatResponseUpdate{Role: af.RoleAssistant, FinishReason: af.FinishReasonToolCalls}
	for _, c := range calls {
		u.Contents = append(u.Contents, c)
	}
	return u
}

// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// Client implements [agentframework.ChatClient] using the OpenAI Chat
// Completions API in streaming mode. Use [New] to create one.
type Client struct {
	tp     transport
	model  string
	logger *slog.Logger
}

var _ af.ChatClient = (*Client)(nil)

// New creates an OpenAI [Client] with the given API key and options.
//
//	client := openai.New(os.Getenv("GITHUB_TOKEN"),
//	    openai.WithGitHubModels(),
//	    openai.WithModel("gpt-4o-mini"),
//	)
func New(apiKey string, opts ...Option) *Client {
	cfg := newClientConfig(opts)
	return &Client{
		tp:     newHTTPTransport(apiKey, cfg),
		model:  cfg.model,
		logger: cfg.logger,
	}
}

// Model returns the default model sent when ChatOptions does not name one.
func (c *Client) Model() string { return c.model }

// StreamResponse sends a streaming chat completion request and returns
// a [ResponseStream] that yields incremental updates via server-sent events.
// Tool calls are reassembled from their deltas and delivered complete, in
// the update that carries the choice's finish reason.
func (c *Client) StreamResponse(ctx context.Context, messages []af.Message, opts *af.ChatOptions) (*af.ResponseStream[af.ChatResponseUpdate], error) {
	req := buildRequest(messages, opts, c.model)

	c.logger.DebugContext(ctx, "chat completion request",
		"model", req.Model,
		"messages", len(req.Messages),
		"tools", len(req.Tools),
	)

	resp, err := c.tp.do(ctx, "POST", "/chat/completions", req)
	if err != nil {
		return nil, err
	}

	stream := af.NewResponseStream(ctx, func(ctx context.Context, ch chan<- af.ChatResponseUpdate) error {
		defer resp.Body.Close()
		return parseSSEStream(ctx, resp.Body, ch, c.logger)
	})

	return stream, nil
}

// parseSSEStream reads OpenAI server-sent events from r and sends parsed
// updates to ch. It returns when the stream is exhausted ([DONE]),
// the context is cancelled, or an error occurs.
func parseSSEStream(ctx context.Context, r io.Reader, ch chan<- af.ChatResponseUpdate, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	acc := newToolCallAccumulator()

	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		if data == "[DONE]" {
			break
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			logger.DebugContext(ctx, "skipping malformed SSE chunk", "error", err)
			continue
		}

		update := parseChunk(&chunk, acc)
		update.Raw = &chunk

		if err := af.Send(ctx, ch, *update); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read SSE stream: %v", af.ErrService, err)
	}

	// Some servers end the stream without a finish_reason.
	if !acc.empty() {
		if err := af.Send(ctx, ch, af.ChatResponseUpdate{
			Role:         af.RoleAssistant,
			Contents:     acc.flush(),
			FinishReason: af.FinishReasonToolCalls,
		}); err != nil {
			return err
		}
	}

	return nil
}

// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"encoding/json"
	"strings"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// chatRequest is the OpenAI Chat Completions API request body.
type chatRequest struct {
	Model         string         `json:"model"`
	Messages      []chatMessage  `json:"messages"`
	Temperature   *float64       `json:"temperature,omitempty"`
	TopP          *float64       `json:"top_p,omitempty"`
	MaxTokens     *int           `json:"max_completion_tokens,omitempty"`
	Stop          []string       `json:"stop,omitempty"`
	Seed          *int           `json:"seed,omitempty"`
	Tools         []toolSpec     `json:"tools,omitempty"`
	ToolChoice    any            `json:"tool_choice,omitempty"`
	User          string         `json:"user,omitempty"`
	Stream        bool           `json:"stream"`
	StreamOptions *streamOptions `json:"stream_options,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type chatMessage struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// toolCall is shared by requests and streamed deltas. Index is only present
// in deltas, where it identifies which call a fragment belongs to.
type toolCall struct {
	Index    *int         `json:"index,omitempty"`
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"`
	Function functionCall `json:"function"`
}

type functionCall struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments"`
}

type toolSpec struct {
	Type     string       `json:"type"`
	Function functionSpec `json:"function"`
}

type functionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// buildRequest converts framework types into a streaming OpenAI API request.
func buildRequest(messages []af.Message, opts *af.ChatOptions, defaultModel string) *chatRequest {
	req := &chatRequest{
		Model:         defaultModel,
		Stream:        true,
		StreamOptions: &streamOptions{IncludeUsage: true},
	}
	if opts != nil {
		if opts.ModelID != "" {
			req.Model = opts.ModelID
		}
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.Seed = opts.Seed
		req.User = opts.User

		for _, t := range opts.Tools {
			req.Tools = append(req.Tools, toolSpec{
				Type: "function",
				Function: functionSpec{
					Name:        t.Name(),
					Description: t.Description(),
					Parameters:  t.Parameters(),
				},
			})
		}
		if len(req.Tools) > 0 {
			req.ToolChoice = convertToolChoice(opts.ToolChoice)
		}
	}

	req.Messages = convertMessages(messages)
	return req
}

// convertMessages translates framework Messages into OpenAI chat messages.
func convertMessages(messages []af.Message) []chatMessage {
	result := make([]chatMessage, 0, len(messages))

	for _, msg := range messages {
		cm := chatMessage{Role: string(msg.Role)}

		switch msg.Role {
		case af.RoleTool:
			for _, fr := range msg.Contents.FunctionResults() {
				cm.ToolCallID = fr.CallID
				content := af.FormatValue(fr.Result)
				if fr.Err != nil {
					content = "error: " + fr.Err.Error()
				}
				cm.Content = &content
			}

		case af.RoleAssistant:
			for _, fc := range msg.Contents.FunctionCalls() {
				args := fc.Arguments
				if strings.TrimSpace(args) == "" {
					args = "{}"
				}
				cm.ToolCalls = append(cm.ToolCalls, toolCall{
					ID:       fc.CallID,
					Type:     "function",
					Function: functionCall{Name: fc.Name, Arguments: args},
				})
			}
			// The API rejects an empty content string next to tool calls.
			if text := msg.Text(); text != "" || len(cm.ToolCalls) == 0 {
				cm.Content = &text
			}

		default:
			text := msg.Text()
			cm.Content = &text
		}

		result = append(result, cm)
	}

	return result
}

func convertToolChoice(tc af.ToolChoice) any {
	switch tc {
	case "":
		return nil
	case af.ToolChoiceAuto:
		return "auto"
	case af.ToolChoiceRequired:
		return "required"
	case af.ToolChoiceNone:
		return "none"
	default:
		return map[string]any{
			"type":     "function",
			"function": map[string]string{"name": string(tc)},
		}
	}
}

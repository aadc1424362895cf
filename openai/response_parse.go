// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"slices"
	"strings"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// chatCompletionChunk is a single SSE chunk in streaming mode.
type chatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []chunkChoice `json:"choices"`
	Usage   *usage        `json:"usage,omitempty"`
}

type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type chunkDelta struct {
	Role      string     `json:"role,omitempty"`
	Content   *string    `json:"content,omitempty"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// pendingCall collects the streamed fragments of one tool call.
type pendingCall struct {
	id   string
	name string
	args strings.Builder
}

// toolCallAccumulator rebuilds complete tool calls from streamed deltas.
// OpenAI sends the id and name in the first delta of a call and the
// arguments in pieces; deltas are matched by index.
type toolCallAccumulator struct {
	order   []int
	byIndex map[int]*pendingCall
}

func newToolCallAccumulator() *toolCallAccumulator {
	return &toolCallAccumulator{byIndex: make(map[int]*pendingCall)}
}

func (a *toolCallAccumulator) add(tc toolCall) {
	var idx int
	switch {
	case tc.Index != nil:
		idx = *tc.Index
	case tc.ID != "":
		// No index: match an earlier delta of the same call by id, else
		// start a call after every index seen so far.
		if i, ok := a.indexOf(tc.ID); ok {
			idx = i
		} else {
			idx = a.nextIndex()
		}
	case len(a.order) > 0:
		// No index and no id: continuation of the latest call.
		idx = a.order[len(a.order)-1]
	}
	pc, ok := a.byIndex[idx]
	if !ok {
		pc = &pendingCall{}
		a.byIndex[idx] = pc
		a.order = append(a.order, idx)
	}
	if tc.ID != "" {
		pc.id = tc.ID
	}
	if tc.Function.Name != "" {
		pc.name += tc.Function.Name
	}
	pc.args.WriteString(tc.Function.Arguments)
}

func (a *toolCallAccumulator) indexOf(id string) (int, bool) {
	for _, idx := range a.order {
		if a.byIndex[idx].id == id {
			return idx, true
		}
	}
	return 0, false
}

// nextIndex is one past the highest index in use.
func (a *toolCallAccumulator) nextIndex() int {
	if len(a.order) == 0 {
		return 0
	}
	return slices.Max(a.order) + 1
}

func (a *toolCallAccumulator) empty() bool { return len(a.order) == 0 }

// flush returns the collected calls in first-seen order and resets.
func (a *toolCallAccumulator) flush() af.Contents {
	var out af.Contents
	for _, idx := range a.order {
		pc := a.byIndex[idx]
		out = append(out, &af.FunctionCallContent{
			CallID:    pc.id,
			Name:      pc.name,
			Arguments: pc.args.String(),
		})
	}
	a.order = nil
	a.byIndex = make(map[int]*pendingCall)
	return out
}

// parseChunk converts a streaming chunk into a ChatResponseUpdate. Tool call
// deltas go to acc and are released when the choice finishes.
func parseChunk(chunk *chatCompletionChunk, acc *toolCallAccumulator) *af.ChatResponseUpdate {
	update := &af.ChatResponseUpdate{
		ResponseID: chunk.ID,
		ModelID:    chunk.Model,
	}

	if chunk.Usage != nil {
		update.Usage = af.UsageDetails{
			InputTokens:  chunk.Usage.PromptTokens,
			OutputTokens: chunk.Usage.CompletionTokens,
			TotalTokens:  chunk.Usage.TotalTokens,
		}
	}

	if len(chunk.Choices) > 0 {
		c := chunk.Choices[0]

		if c.Delta.Role != "" {
			update.Role = af.Role(c.Delta.Role)
		}

		if c.Delta.Content != nil && *c.Delta.Content != "" {
			update.Contents = append(update.Contents, &af.TextContent{Text: *c.Delta.Content})
		}

		for _, tc := range c.Delta.ToolCalls {
			acc.add(tc)
		}

		if c.FinishReason != nil {
			update.FinishReason = mapFinishReason(*c.FinishReason)
			if !acc.empty() {
				update.Contents = append(update.Contents, acc.flush()...)
			}
		}
	}

	return update
}

func mapFinishReason(s string) af.FinishReason {
	switch s {
	case "stop":
		return af.FinishReasonStop
	case "length":
		return af.FinishReasonLength
	case "tool_calls":
		return af.FinishReasonToolCalls
	case "content_filter":
		return af.FinishReasonContentFilter
	default:
		return af.FinishReason(s)
	}
}

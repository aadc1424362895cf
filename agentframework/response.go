// Copyright (c) Microsoft. All rights reserved.

package agentframework

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonToolCalls     FinishReason = "tool_calls"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// UsageDetails holds token consumption statistics for a model response.
type UsageDetails struct {
	InputTokens  int `json:"inputTokenCount,omitempty"`
	OutputTokens int `json:"outputTokenCount,omitempty"`
	TotalTokens  int `json:"totalTokenCount,omitempty"`
}

// Add returns the sum of u and other.
func (u UsageDetails) Add(other UsageDetails) UsageDetails {
	return UsageDetails{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}

// ChatResponseUpdate is one unit of a streamed response. A unit may carry
// text deltas, function calls, function results, or a mix of them.
type ChatResponseUpdate struct {
	Contents     Contents
	Role         Role
	AuthorName   string
	ResponseID   string
	ModelID      string
	FinishReason FinishReason
	Usage        UsageDetails
	Raw          any
}

// Text returns the update's text delta.
func (u *ChatResponseUpdate) Text() string {
	return u.Contents.Text()
}

// HasFunctionContent reports whether the update carries any function call or
// function result.
func (u *ChatResponseUpdate) HasFunctionContent() bool {
	return u.Contents.HasFunctionContent()
}

// TurnResult is the aggregated outcome of one streamed agent turn.
type TurnResult struct {
	// AgentName is the first author name seen in the stream, if any.
	AgentName string

	// Text is the assistant's prose, excluding text that shared an update
	// with function content.
	Text string

	// CallLog lists "Calling: ..." and "Result: ..." lines in stream order.
	CallLog []string

	// CallResults maps a tool name to the last successful result seen for it.
	CallResults map[string]any

	Usage UsageDetails
}

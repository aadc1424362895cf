// Copyright (c) Microsoft. All rights reserved.

package agentframework

// ToolChoice controls how the model selects tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide whether to call zero, one or
	// several tools each round.
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
	ToolChoiceNone     ToolChoice = "none"
)

// ChatOptions configures a single chat completion request.
// Pointer fields use nil to represent "unset" (use provider default).
type ChatOptions struct {
	ModelID      string
	Temperature  *float64
	TopP         *float64
	MaxTokens    *int
	Seed         *int
	Stop         []string
	Tools        []Tool
	ToolChoice   ToolChoice
	User         string
	Instructions string
}

// MergeChatOptions produces a new ChatOptions by overlaying override values
// onto base. Nil or zero-value fields in override do not overwrite base.
// Tools in override replace base tools of the same name. Instructions are
// concatenated.
func MergeChatOptions(base, override *ChatOptions) *ChatOptions {
	if base == nil {
		if override == nil {
			return &ChatOptions{}
		}
		cp := *override
		return &cp
	}
	if override == nil {
		cp := *base
		return &cp
	}

	merged := *base

	if override.ModelID != "" {
		merged.ModelID = override.ModelID
	}
	if override.Temperature != nil {
		merged.Temperature = override.Temperature
	}
	if override.TopP != nil {
		merged.TopP = override.TopP
	}
	if override.MaxTokens != nil {
		merged.MaxTokens = override.MaxTokens
	}
	if override.Seed != nil {
		merged.Seed = override.Seed
	}
	if len(override.Stop) > 0 {
		merged.Stop = override.Stop
	}
	if override.ToolChoice != "" {
		merged.ToolChoice = override.ToolChoice
	}
	if override.User != "" {
		merged.User = override.User
	}

	if override.Instructions != "" {
		if merged.Instructions != "" {
			merged.Instructions += "\n" + override.Instructions
		} else {
			merged.Instructions = override.Instructions
		}
	}

	if len(override.Tools) > 0 {
		merged.Tools = mergeTools(merged.Tools, override.Tools)
	}

	return &merged
}

// mergeTools keeps base order, replacing same-named tools, then appends new ones.
func mergeTools(base, override []Tool) []Tool {
	byName := make(map[string]Tool, len(override))
	for _, t := range override {
		byName[t.Name()] = t
	}
	tools := make([]Tool, 0, len(base)+len(override))
	seen := make(map[string]bool, len(base)+len(override))
	for _, t := range base {
		if o, ok := byName[t.Name()]; ok {
			t = o
		}
		tools = append(tools, t)
		seen[t.Name()] = true
	}
	for _, t := range override {
		if !seen[t.Name()] {
			tools = append(tools, t)
			seen[t.Name()] = true
		}
	}
	return tools
}

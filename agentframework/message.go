// Copyright (c) Microsoft. All rights reserved.

package agentframework

import "slices"

// Role identifies the author of a [Message].
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"

	// RoleTool carries tool results back to the model. Tool messages only
	// exist inside an [Agent]'s function loop and are never part of a
	// [Conversation].
	RoleTool Role = "tool"
)

// Message is one role-tagged entry of a conversation history.
type Message struct {
	Role       Role     `json:"role"`
	Contents   Contents `json:"contents,omitempty"`
	AuthorName string   `json:"authorName,omitempty"`
}

// Text returns the message's text, skipping function content.
func (m *Message) Text() string {
	return m.Contents.Text()
}

func textMessage(role Role, text string) Message {
	return Message{Role: role, Contents: Contents{&TextContent{Text: text}}}
}

// NewUserMessage returns a user message holding text.
func NewUserMessage(text string) Message { return textMessage(RoleUser, text) }

// NewAssistantMessage returns an assistant message holding text.
func NewAssistantMessage(text string) Message { return textMessage(RoleAssistant, text) }

// NewSystemMessage returns a system message holding text.
func NewSystemMessage(text string) Message { return textMessage(RoleSystem, text) }

// NewToolMessage returns a tool message that answers one function call.
func NewToolMessage(result *FunctionResultContent) Message {
	return Message{Role: RoleTool, Contents: Contents{result}}
}

// PrependInstructions returns messages led by a system message holding
// instructions. It returns messages unchanged when instructions is empty or a
// system message is already present. The input slice is never modified.
func PrependInstructions(messages []Message, instructions string) []Message {
	if instructions == "" || slices.ContainsFunc(messages, func(m Message) bool { return m.Role == RoleSystem }) {
		return messages
	}
	return slices.Insert(slices.Clip(messages), 0, NewSystemMessage(instructions))
}

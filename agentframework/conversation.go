// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Conversation is the ordered, append-only history of a dialogue. Messages
// are never modified or removed once appended. A Conversation lives only as
// long as the process; it is not persisted.
type Conversation struct {
	mu       sync.Mutex
	id       string
	messages []Message
}

// NewConversation creates an empty Conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{id: uuid.NewString()}
}

// ID returns the conversation's unique identifier.
func (c *Conversation) ID() string { return c.id }

// Append adds messages to the end of the conversation. All messages of one
// call become visible together.
func (c *Conversation) Append(msgs ...Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of the conversation in chronological order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// MarshalJSON writes the conversation as {"id": ..., "messages": [...]}.
func (c *Conversation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string    `json:"id"`
		Messages []Message `json:"messages"`
	}{c.id, c.Messages()})
}

// Copyright (c) Microsoft. All rights reserved.

package agentframework_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, af.RoleUser, af.NewUserMessage("hi").Role)
	assert.Equal(t, af.RoleAssistant, af.NewAssistantMessage("hello").Role)
	assert.Equal(t, af.RoleSystem, af.NewSystemMessage("rules").Role)

	msg := af.NewUserMessage("Plan me a day trip.")
	assert.Equal(t, "Plan me a day trip.", msg.Text())

	res := &af.FunctionResultContent{CallID: "c1", Result: "ok"}
	tool := af.NewToolMessage(res)
	assert.Equal(t, af.RoleTool, tool.Role)
	require.Len(t, tool.Contents, 1)
	assert.Same(t, res, tool.Contents[0])
}

func TestMessage_TextSkipsFunctionContent(t *testing.T) {
	msg := af.Message{Role: af.RoleAssistant, Contents: af.Contents{
		&af.TextContent{Text: "a"},
		&af.FunctionCallContent{Name: "x"},
		&af.TextContent{Text: "b"},
	}}
	assert.Equal(t, "ab", msg.Text())
}

func TestPrependInstructions(t *testing.T) {
	msgs := []af.Message{af.NewUserMessage("hi")}

	out := af.PrependInstructions(msgs, "Be helpful.")
	require.Len(t, out, 2)
	assert.Equal(t, af.RoleSystem, out[0].Role)
	assert.Len(t, msgs, 1)

	assert.Equal(t, msgs, af.PrependInstructions(msgs, ""))

	withSystem := []af.Message{af.NewSystemMessage("existing"), af.NewUserMessage("hi")}
	assert.Equal(t, withSystem, af.PrependInstructions(withSystem, "ignored"))
}

func TestMessage_JSON(t *testing.T) {
	msg := af.Message{
		Role:       af.RoleAssistant,
		AuthorName: "TravelAgent",
		Contents: af.Contents{
			&af.TextContent{Text: "Booked."},
			&af.FunctionCallContent{CallID: "c1", Name: "book_flight", Arguments: `{"date":"Friday"}`},
		},
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var back af.Message
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, msg.Role, back.Role)
	assert.Equal(t, msg.AuthorName, back.AuthorName)
	assert.Equal(t, msg.Contents, back.Contents)
}

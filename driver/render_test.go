// Copyright (c) Microsoft. All rights reserved.

package driver_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
	"github.com/microsoft/ai-agents-sandbox/go/driver"
)

func TestRender_NoCallsDefaultName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, driver.Render(&buf, "Hello", &af.TurnResult{Text: "Hi there"}))

	out := buf.String()
	assert.NotContains(t, out, "Function Calls:")
	assert.Contains(t, out, "\nAssistant:\nHi there\n")
	assert.True(t, strings.HasPrefix(out, "\n"+strings.Repeat("=", 50)+"\nUser: Hello\n"))
	assert.True(t, strings.HasSuffix(out, strings.Repeat("=", 50)+"\n"))
}

func TestRenderResult_CallLog(t *testing.T) {
	var buf bytes.Buffer
	err := driver.RenderResult(&buf, &af.TurnResult{
		AgentName: "TravelAgent",
		Text:      "Done.",
		CallLog:   []string{"Calling: book_flight({})", "Result: error: boom"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Function Calls:\n--------------------\nCalling: book_flight({})\nResult: error: boom\n--------------------\n")
	assert.Contains(t, buf.String(), "\nTravelAgent:\nDone.\n")
}

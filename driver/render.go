// Copyright (c) Microsoft. All rights reserved.

package driver

import (
	"fmt"
	"io"
	"strings"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("-", 20)
)

// defaultAgentName labels replies from a backend that reports no name.
const defaultAgentName = "Assistant"

// RenderInput writes the banner that opens a turn.
func RenderInput(w io.Writer, input string) error {
	_, err := fmt.Fprintf(w, "\n%s\nUser: %s\n%s\n", heavyRule, input, heavyRule)
	return err
}

// RenderResult writes the call log, if any, followed by the agent's reply.
func RenderResult(w io.Writer, result *af.TurnResult) error {
	var b strings.Builder
	if len(result.CallLog) > 0 {
		fmt.Fprintf(&b, "\nFunction Calls:\n%s\n", lightRule)
		for _, line := range result.CallLog {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n", lightRule)
	}

	name := result.AgentName
	if name == "" {
		name = defaultAgentName
	}
	fmt.Fprintf(&b, "\n%s:\n%s\n\n%s\n", name, result.Text, heavyRule)

	_, err := io.WriteString(w, b.String())
	return err
}

// Render writes a complete turn.
func Render(w io.Writer, input string, result *af.TurnResult) error {
	if err := RenderInput(w, input); err != nil {
		return err
	}
	return RenderResult(w, result)
}

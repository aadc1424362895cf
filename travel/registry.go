// Copyright (c) Microsoft. All rights reserved.

package travel

import af "github.com/microsoft/ai-agents-sandbox/go/agentframework"

// Tools returns the travel agent's tools backed by picker.
func Tools(picker *DestinationPicker) []af.Tool {
	return []af.Tool{picker.Tool(), BookFlightTool()}
}

// NewRegistry returns a registry holding [Tools].
func NewRegistry(picker *DestinationPicker) (*af.Registry, error) {
	return af.NewRegistry(Tools(picker)...)
}

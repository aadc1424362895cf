// Copyright (c) Microsoft. All rights reserved.

// Command travelagent runs a vacation planning agent through a scripted
// conversation. The agent can pick random destinations and book flights.
//
// Usage with GitHub Models:
//
//	export GITHUB_TOKEN=ghp_...
//	travelagent run
//
// Usage with Azure AI Foundry:
//
//	export AZURE_FOUNDRY_ENDPOINT=https://<project>.services.ai.azure.com/openai/deployments/<deployment>
//	export AZURE_FOUNDRY_KEY=<your-key>   # optional, Azure AD is used without it
//	travelagent run --config agent.yaml "Plan me a day trip."
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

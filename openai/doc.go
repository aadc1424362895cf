// Copyright (c) Microsoft. All rights reserved.

// Package openai provides a streaming [agentframework.ChatClient] for any
// service that speaks the OpenAI Chat Completions API: OpenAI itself,
// GitHub Models and Azure AI Foundry.
//
// Create a client and pass it to [agentframework.NewAgent]:
//
//	client := openai.New(os.Getenv("GITHUB_TOKEN"),
//	    openai.WithGitHubModels(),
//	    openai.WithModel("gpt-4o-mini"),
//	)
//
//	agent := agentframework.NewAgent(client, agentframework.WithRegistry(reg))
//
// Every request streams. Text arrives as it is generated; tool calls are
// reassembled from their deltas and delivered whole.
//
// # Configuration
//
// Providers:
//
//   - OpenAI: the default endpoint, key sent as a bearer token
//   - GitHub Models: [WithGitHubModels] with a GitHub token as the key
//   - Azure AI Foundry: [WithAzureFoundry] with a key, or with an empty key
//     plus [WithAzureCredential] for Microsoft Entra tokens
//
// Other knobs: [WithModel], [WithBaseURL], [WithOrganization],
// [WithHTTPClient], [WithTimeout], [WithHeaders], [WithAPIKeyHeader],
// [WithTokenScope] and [WithLogger].
//
// # Testing
//
// The client uses an unexported transport interface internally.
// For testing, provide a mock http.Client via [WithHTTPClient]
// with a custom RoundTripper.
package openai

// Copyright (c) Microsoft. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/microsoft/ai-agents-sandbox/go/internal/config"
	"github.com/microsoft/ai-agents-sandbox/go/openai"
)

// newChatClient creates an OpenAI-compatible client for the configured
// provider. Azure AI Foundry without a key authenticates with
// DefaultAzureCredential.
func newChatClient(m config.ModelConfig, logger *slog.Logger) (*openai.Client, error) {
	opts := []openai.Option{openai.WithModel(m.Model), openai.WithLogger(logger)}

	switch m.Provider {
	case config.ProviderAzure:
		opts = append(opts, openai.WithAzureFoundry(m.Endpoint))
		if m.APIKey != "" {
			logger.Info("using Azure AI Foundry", "endpoint", m.Endpoint, "model", m.Model)
			return openai.New(m.APIKey, opts...), nil
		}
		logger.Info("using Azure AI Foundry with Entra ID", "endpoint", m.Endpoint, "model", m.Model)
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("create azure credential: %w", err)
		}
		return openai.New("", append(opts, openai.WithAzureCredential(cred))...), nil

	case config.ProviderGitHub:
		opts = append(opts, openai.WithGitHubModels())
		if m.Endpoint != "" {
			opts = append(opts, openai.WithBaseURL(m.Endpoint))
		}
		logger.Info("using GitHub Models", "model", m.Model)
		return openai.New(m.APIKey, opts...), nil

	case config.ProviderOpenAI:
		if m.Endpoint != "" {
			opts = append(opts, openai.WithBaseURL(m.Endpoint))
		}
		logger.Info("using OpenAI", "model", m.Model)
		return openai.New(m.APIKey, opts...), nil
	}

	return nil, fmt.Errorf("%w: unknown model provider %q", config.ErrInvalidConfig, m.Provider)
}

// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// GitHubModelsBaseURL is the OpenAI-compatible endpoint of GitHub Models.
// Authenticate with a GitHub token as the API key.
const GitHubModelsBaseURL = "https://models.inference.ai.azure.com"

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultTokenScope = "https://cognitiveservices.azure.com/.default"

	// AzureAPIKeyHeader is the header Azure AI Foundry reads keys from.
	AzureAPIKeyHeader = "api-key"
)

type clientConfig struct {
	baseURL      string
	organization string
	httpClient   *http.Client
	timeout      time.Duration
	headers      map[string]string
	model        string
	logger       *slog.Logger

	// apiKeyHeader, when set, carries the key instead of a bearer token.
	apiKeyHeader string

	azureCredential azcore.TokenCredential
	tokenScope      string
}

func newClientConfig(opts []Option) *clientConfig {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	cfg.baseURL = strings.TrimSuffix(cfg.baseURL, "/")
	if cfg.baseURL == "" {
		cfg.baseURL = defaultBaseURL
	}
	if cfg.tokenScope == "" {
		cfg.tokenScope = defaultTokenScope
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.httpClient == nil {
		cfg.httpClient = http.DefaultClient
	}
	if cfg.timeout > 0 {
		c := *cfg.httpClient
		c.Timeout = cfg.timeout
		cfg.httpClient = &c
	}
	return cfg
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithBaseURL overrides the API base URL, e.g. an Azure AI Foundry project
// endpoint or a local proxy. A trailing slash is ignored.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithGitHubModels targets the GitHub Models endpoint. Pass a GitHub token
// as the API key.
func WithGitHubModels() Option {
	return WithBaseURL(GitHubModelsBaseURL)
}

// WithAzureFoundry targets an Azure AI Foundry endpoint. A non-empty key is
// sent in the [AzureAPIKeyHeader] header; with an empty key, configure
// [WithAzureCredential] instead.
func WithAzureFoundry(endpoint string) Option {
	return func(c *clientConfig) {
		c.baseURL = endpoint
		c.apiKeyHeader = AzureAPIKeyHeader
	}
}

// WithAPIKeyHeader sends the API key in the named header instead of an
// Authorization bearer token.
func WithAPIKeyHeader(name string) Option {
	return func(c *clientConfig) { c.apiKeyHeader = name }
}

// WithOrganization sets the OpenAI-Organization header.
func WithOrganization(org string) Option {
	return func(c *clientConfig) { c.organization = org }
}

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithTimeout bounds each request, including reading the whole stream.
// Zero means no limit beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) { c.headers = headers }
}

// WithModel sets the model used when ChatOptions does not name one.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithLogger sets the logger for request and stream diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithAzureCredential authenticates every request with a Microsoft Entra
// token from cred instead of an API key.
func WithAzureCredential(cred azcore.TokenCredential) Option {
	return func(c *clientConfig) { c.azureCredential = cred }
}

// WithTokenScope overrides the scope requested from the Azure credential.
// Default: https://cognitiveservices.azure.com/.default.
func WithTokenScope(scope string) Option {
	return func(c *clientConfig) { c.tokenScope = scope }
}

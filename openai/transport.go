// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// transport sends one JSON request and returns the raw response. Responses
// with an error status are converted to errors before they are returned.
type transport interface {
	do(ctx context.Context, method, path string, body any) (*http.Response, error)
}

type httpTransport struct {
	apiKey string
	cfg    *clientConfig
}

func newHTTPTransport(apiKey string, cfg *clientConfig) *httpTransport {
	return &httpTransport{apiKey: apiKey, cfg: cfg}
}

func (t *httpTransport) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.cfg.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if t.cfg.organization != "" {
		req.Header.Set("OpenAI-Organization", t.cfg.organization)
	}
	for k, v := range t.cfg.headers {
		req.Header.Set(k, v)
	}
	if err := t.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := t.cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http request: %w", af.ErrService, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, parseErrorResponse(resp)
	}
	return resp, nil
}

// authorize attaches credentials: an Entra bearer token when a credential is
// configured, else the API key as a bearer token or in the API key header.
func (t *httpTransport) authorize(ctx context.Context, req *http.Request) error {
	switch {
	case t.cfg.azureCredential != nil:
		t.cfg.logger.DebugContext(ctx, "acquiring Azure token", "scope", t.cfg.tokenScope)
		token, err := t.cfg.azureCredential.GetToken(ctx, policy.TokenRequestOptions{
			Scopes: []string{t.cfg.tokenScope},
		})
		if err != nil {
			return fmt.Errorf("%w: get azure token: %w", af.ErrAuth, err)
		}
		req.Header.Set("Authorization", "Bearer "+token.Token)
	case t.apiKey == "":
	case t.cfg.apiKeyHeader != "":
		req.Header.Set(t.cfg.apiKeyHeader, t.apiKey)
	default:
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	return nil
}

// parseErrorResponse reads an error response body and returns a typed error.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	msg := apiErr.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	code := ""
	if apiErr.Error.Code != nil {
		code = fmt.Sprint(apiErr.Error.Code)
	}

	svcErr := &af.ServiceError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Code:       code,
	}

	switch {
	case code == "content_filter":
		svcErr.Err = af.ErrContentFilter
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		svcErr.Err = af.ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		svcErr.Err = af.ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		svcErr.Err = af.ErrInvalidRequest
	default:
		svcErr.Err = af.ErrService
	}

	return svcErr
}

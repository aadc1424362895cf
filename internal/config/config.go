// Copyright (c) Microsoft. All rights reserved.

// Package config loads the travel agent configuration.
//
// Priority: defaults → YAML file → environment. A .env file, when present,
// is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
	"github.com/microsoft/ai-agents-sandbox/go/internal/telemetry"
	"github.com/microsoft/ai-agents-sandbox/go/openai"
	"github.com/microsoft/ai-agents-sandbox/go/travel"
)

// Model providers.
const (
	ProviderGitHub = "github"
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
)

const (
	DefaultAgentName    = "TravelAgent"
	DefaultInstructions = "You are a helpful AI Agent that can help plan vacations for customers at random destinations"
	DefaultModel        = "gpt-4o-mini"
)

// DefaultInputs are the scripted user messages sent when none are given.
var DefaultInputs = []string{
	"Plan me a day trip.",
	"I don't like that destination. Plan me another vacation.",
	"I want to book a flight to the destination you suggested, on the next Friday.",
	"Actually, I am busy then. Book me a flight to the destination you suggested, on the next Saturday.",
}

// ErrInvalidConfig is returned by [Config.Validate].
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete travel agent configuration.
type Config struct {
	Agent        AgentConfig `yaml:"agent"`
	Model        ModelConfig `yaml:"model"`
	Destinations []string    `yaml:"destinations"`
	Inputs       []string    `yaml:"inputs"`
	Debug        bool        `yaml:"debug"`

	Telemetry telemetry.Config `yaml:"telemetry"`
}

// AgentConfig describes the agent persona.
type AgentConfig struct {
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"`
}

// ModelConfig selects the model backend.
type ModelConfig struct {
	Provider string `yaml:"provider"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`

	// Sampling defaults; nil leaves the provider's default in place.
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
}

// ChatOptions returns the request defaults for every model round-trip.
func (m ModelConfig) ChatOptions() *af.ChatOptions {
	return &af.ChatOptions{Temperature: m.Temperature, MaxTokens: m.MaxTokens}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:         DefaultAgentName,
			Instructions: DefaultInstructions,
		},
		Model: ModelConfig{
			Provider: ProviderGitHub,
			Endpoint: openai.GitHubModelsBaseURL,
			Model:    DefaultModel,
		},
		Destinations: append([]string(nil), travel.DefaultDestinations...),
		Inputs:       append([]string(nil), DefaultInputs...),
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. With no
// files it reads ./.env. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg, os.Getenv)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides the model settings from the environment. Azure AI
// Foundry wins over GitHub Models, which wins over OpenAI.
func applyEnv(cfg *Config, getenv func(string) string) {
	switch {
	case getenv("AZURE_FOUNDRY_ENDPOINT") != "":
		cfg.Model.Provider = ProviderAzure
		cfg.Model.Endpoint = getenv("AZURE_FOUNDRY_ENDPOINT")
		cfg.Model.APIKey = getenv("AZURE_FOUNDRY_KEY")
		if m := getenv("AZURE_FOUNDRY_MODEL"); m != "" {
			cfg.Model.Model = m
		}
	case getenv("GITHUB_TOKEN") != "":
		cfg.Model.Provider = ProviderGitHub
		cfg.Model.Endpoint = openai.GitHubModelsBaseURL
		cfg.Model.APIKey = getenv("GITHUB_TOKEN")
	case getenv("OPENAI_API_KEY") != "":
		cfg.Model.Provider = ProviderOpenAI
		if cfg.Model.Endpoint == openai.GitHubModelsBaseURL {
			cfg.Model.Endpoint = ""
		}
		cfg.Model.APIKey = getenv("OPENAI_API_KEY")
	}

	if m := getenv("MODEL_NAME"); m != "" {
		cfg.Model.Model = m
	}
	if ep := getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
		cfg.Telemetry.Endpoint = ep
	}
	if getenv("DEBUG") != "" {
		cfg.Debug = true
	}
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Agent.Name) == "" {
		errs = append(errs, "agent.name is required")
	}
	if strings.TrimSpace(c.Model.Model) == "" {
		errs = append(errs, "model.model is required")
	}
	if c.Model.Endpoint != "" {
		if u, err := url.Parse(c.Model.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("model.endpoint %q is not an absolute URL", c.Model.Endpoint))
		}
	}

	if t := c.Model.Temperature; t != nil && (*t < 0 || *t > 2) {
		errs = append(errs, fmt.Sprintf("model.temperature must be between 0 and 2, got %g", *t))
	}
	if n := c.Model.MaxTokens; n != nil && *n <= 0 {
		errs = append(errs, fmt.Sprintf("model.max_tokens must be positive, got %d", *n))
	}

	switch c.Telemetry.Protocol {
	case "", "grpc", "http":
	default:
		errs = append(errs, fmt.Sprintf("telemetry.protocol must be grpc or http, got %q", c.Telemetry.Protocol))
	}

	switch c.Model.Provider {
	case ProviderGitHub, ProviderOpenAI:
		if c.Model.APIKey == "" {
			errs = append(errs, fmt.Sprintf("model.api_key is required for provider %q (set GITHUB_TOKEN or OPENAI_API_KEY)", c.Model.Provider))
		}
	case ProviderAzure:
		if c.Model.Endpoint == "" {
			errs = append(errs, "model.endpoint is required for provider \"azure\"")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown model.provider %q", c.Model.Provider))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

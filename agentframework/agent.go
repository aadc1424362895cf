// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Agent is a [Backend] that composes a [ChatClient] with a tool [Registry].
// Each turn it streams the model's answer and, when the model asks for
// tools, invokes them and feeds the results back until the model is done.
//
// Create one with [NewAgent] and functional options:
//
//	agent := agentframework.NewAgent(client,
//	    agentframework.WithName("TravelAgent"),
//	    agentframework.WithInstructions("You plan vacations."),
//	    agentframework.WithRegistry(registry),
//	)
type Agent struct {
	id                 string
	name               string
	description        string
	client             ChatClient
	instructions       string
	registry           *Registry
	pendingTools       []Tool
	defaultOptions     *ChatOptions
	chatMiddleware     []ChatMiddleware
	functionMiddleware []FunctionMiddleware
	invocationConfig   InvocationConfig
	err                error
}

// Verify interface compliance at compile time.
var _ Backend = (*Agent)(nil)

// AgentOption configures an [Agent] via [NewAgent].
type AgentOption func(*Agent)

// WithName sets the agent's display name. It is stamped on every streamed
// update as the author name.
func WithName(name string) AgentOption {
	return func(a *Agent) { a.name = name }
}

// WithDescription sets the agent's description.
func WithDescription(desc string) AgentOption {
	return func(a *Agent) { a.description = desc }
}

// WithInstructions sets the system instructions for the agent.
func WithInstructions(instructions string) AgentOption {
	return func(a *Agent) { a.instructions = instructions }
}

// WithRegistry sets the tool catalog the model may call.
func WithRegistry(r *Registry) AgentOption {
	return func(a *Agent) { a.registry = r }
}

// WithTools registers tools in the agent's registry. A duplicate name makes
// every later [Agent.StreamTurn] fail with [ErrInitialization].
func WithTools(tools ...Tool) AgentOption {
	return func(a *Agent) { a.pendingTools = append(a.pendingTools, tools...) }
}

// WithDefaultOptions sets default [ChatOptions] for all requests.
func WithDefaultOptions(opts *ChatOptions) AgentOption {
	return func(a *Agent) { a.defaultOptions = opts }
}

// WithChatMiddleware adds [ChatMiddleware] around every model round-trip.
func WithChatMiddleware(mws ...ChatMiddleware) AgentOption {
	return func(a *Agent) { a.chatMiddleware = append(a.chatMiddleware, mws...) }
}

// WithFunctionMiddleware adds [FunctionMiddleware] to the tool invocation pipeline.
func WithFunctionMiddleware(mws ...FunctionMiddleware) AgentOption {
	return func(a *Agent) { a.functionMiddleware = append(a.functionMiddleware, mws...) }
}

// WithInvocationConfig overrides the default [InvocationConfig] for the
// function calling loop.
func WithInvocationConfig(cfg InvocationConfig) AgentOption {
	return func(a *Agent) { a.invocationConfig = cfg }
}

// NewAgent creates an Agent with the given [ChatClient] and options.
func NewAgent(client ChatClient, opts ...AgentOption) *Agent {
	a := &Agent{
		id:               uuid.NewString(),
		client:           client,
		invocationConfig: DefaultInvocationConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = &Registry{}
	}
	var errs []error
	for _, t := range a.pendingTools {
		if err := a.registry.Register(t); err != nil {
			errs = append(errs, err)
		}
	}
	a.pendingTools = nil
	a.err = errors.Join(errs...)
	return a
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() string { return a.id }

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Description returns the agent's description.
func (a *Agent) Description() string { return a.description }

// Registry returns the agent's tool catalog.
func (a *Agent) Registry() *Registry { return a.registry }

// StreamTurn streams the agent's response to history. The history is not
// modified; the caller decides what to keep once the turn has completed.
//
// The stream yields, in order: text updates from the model, one update with
// the tool calls of each model round, and one update with their results.
// A request for an unregistered tool fails the stream with a
// [*UnknownToolError].
func (a *Agent) StreamTurn(ctx context.Context, history []Message) (*ResponseStream[ChatResponseUpdate], error) {
	if a.err != nil {
		return nil, errors.Join(ErrInitialization, a.err)
	}

	opts := a.prepareChatOptions()
	messages := make([]Message, len(history))
	copy(messages, history)
	messages = PrependInstructions(messages, opts.Instructions)

	slog.DebugContext(ctx, "agent turn",
		"agent_id", a.id,
		"agent_name", a.name,
		"message_count", len(messages),
		"tool_count", len(opts.Tools),
	)

	handler := chain[ChatHandler](a.client.StreamResponse, a.chatMiddleware)
	return NewResponseStream(ctx, func(ctx context.Context, ch chan<- ChatResponseUpdate) error {
		loop := &functionLoop{
			agent:   a,
			handler: handler,
			invoke:  chain[FunctionHandler](invokeTool, a.functionMiddleware),
			config:  a.invocationConfig.withDefaults(),
		}
		return loop.run(ctx, messages, opts, ch)
	}), nil
}

func (a *Agent) prepareChatOptions() *ChatOptions {
	opts := MergeChatOptions(a.defaultOptions, nil)

	if tools := a.registry.Tools(); len(tools) > 0 {
		opts.Tools = mergeTools(opts.Tools, tools)
	}
	if len(opts.Tools) > 0 && opts.ToolChoice == "" {
		opts.ToolChoice = ToolChoiceAuto
	}

	if a.instructions != "" {
		if opts.Instructions != "" {
			opts.Instructions = a.instructions + "\n" + opts.Instructions
		} else {
			opts.Instructions = a.instructions
		}
	}

	return opts
}

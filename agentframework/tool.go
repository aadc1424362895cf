// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"encoding/json"
	"strings"
)

// Tool defines a callable capability that can be exposed to an LLM.
type Tool interface {
	// Name returns the function name as exposed to the model.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// Parameters returns the JSON Schema describing the function's input.
	Parameters() json.RawMessage

	// Invoke calls the function with the given JSON arguments. Arguments
	// are passed through exactly as the model produced them.
	Invoke(ctx context.Context, args json.RawMessage) (any, error)
}

// emptyObjectSchema is the parameter schema of a tool that takes no arguments.
var emptyObjectSchema = json.RawMessage(`{"type":"object","properties":{}}`)

// FunctionTool is a concrete [Tool] backed by a Go function.
type FunctionTool struct {
	name        string
	description string
	parameters  json.RawMessage
	fn          func(ctx context.Context, args json.RawMessage) (any, error)
}

// NewTool creates a [FunctionTool] with raw JSON schema and handler. A nil
// schema advertises an object with no properties.
func NewTool(name, description string, parameters json.RawMessage, fn func(ctx context.Context, args json.RawMessage) (any, error)) *FunctionTool {
	if len(parameters) == 0 {
		parameters = emptyObjectSchema
	}
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewTypedTool creates a [FunctionTool] that generates its JSON Schema from
// the Args type parameter and decodes arguments into it.
//
// The Args type should be a struct with json tags. Use the `jsonschema` struct tag
// for additional schema metadata:
//
//	type BookingArgs struct {
//	    Date     string `json:"date"     jsonschema:"description=The date of the flight.,required"`
//	    Location string `json:"location" jsonschema:"description=The destination location.,required"`
//	}
//
// A call that omits a required argument, or passes it as null or "", fails
// with a [*ToolError] before fn runs. Empty arguments decode to the zero Args
// value when nothing is required.
func NewTypedTool[Args any](name, description string, fn func(ctx context.Context, args Args) (any, error)) *FunctionTool {
	schema := GenerateSchema[Args]()
	required := requiredProperties(schema)

	wrapped := func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args Args
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, &ToolError{
					ToolName: name,
					Message:  "invalid arguments: " + err.Error(),
					Err:      ErrToolExecution,
				}
			}
		}
		if missing := missingArguments(raw, required); len(missing) > 0 {
			return nil, &ToolError{
				ToolName: name,
				Message:  "missing required arguments: " + strings.Join(missing, ", "),
				Err:      ErrToolExecution,
			}
		}
		return fn(ctx, args)
	}

	return NewTool(name, description, schema, wrapped)
}

func requiredProperties(schema json.RawMessage) []string {
	var s struct {
		Required []string `json:"required"`
	}
	_ = json.Unmarshal(schema, &s)
	return s.Required
}

// missingArguments lists the required names that raw leaves out, sets to
// null or sets to an empty string.
func missingArguments(raw json.RawMessage, required []string) []string {
	if len(required) == 0 {
		return nil
	}
	var present map[string]json.RawMessage
	if len(raw) > 0 {
		// raw already decoded into Args, so a non-object here is a JSON null.
		_ = json.Unmarshal(raw, &present)
	}
	var missing []string
	for _, name := range required {
		v, ok := present[name]
		if !ok || string(v) == "null" || string(v) == `""` {
			missing = append(missing, name)
		}
	}
	return missing
}

func (t *FunctionTool) Name() string                { return t.name }
func (t *FunctionTool) Description() string         { return t.description }
func (t *FunctionTool) Parameters() json.RawMessage { return t.parameters }

// Invoke calls the tool's backing function.
func (t *FunctionTool) Invoke(ctx context.Context, args json.RawMessage) (any, error) {
	if t.fn == nil {
		return nil, &ToolError{
			ToolName: t.name,
			Message:  "tool has no implementation",
			Err:      ErrToolExecution,
		}
	}
	return t.fn(ctx, args)
}

// GenerateSchema builds a JSON Schema from a Go struct type using reflection.
// Supports struct tags: json (field name), jsonschema (description, required, enum).
func GenerateSchema[T any]() json.RawMessage {
	var zero T
	return generateSchemaFromType(zero)
}

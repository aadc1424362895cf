// Copyright (c) Microsoft. All rights reserved.

package agentframework_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

type schemaArgs struct {
	Name     string            `json:"name" jsonschema:"description=Traveller name,required"`
	Nights   int               `json:"nights"`
	Budget   float64           `json:"budget,omitempty"`
	Direct   bool              `json:"direct"`
	Stops    []string          `json:"stops"`
	Class    string            `json:"class" jsonschema:"enum=economy|business"`
	Notes    map[string]string `json:"notes"`
	Internal string            `json:"-"`
	Hidden   string            `jsonschema:"-"`
	NoTag    *string
	private  string
}

func TestGenerateSchema_Types(t *testing.T) {
	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	require.NoError(t, json.Unmarshal(af.GenerateSchema[schemaArgs](), &schema))

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"name"}, schema.Required)

	props := schema.Properties
	assert.Equal(t, "string", props["name"]["type"])
	assert.Equal(t, "Traveller name", props["name"]["description"])
	assert.Equal(t, "integer", props["nights"]["type"])
	assert.Equal(t, "number", props["budget"]["type"])
	assert.Equal(t, "boolean", props["direct"]["type"])
	assert.Equal(t, "array", props["stops"]["type"])
	assert.Equal(t, map[string]any{"type": "string"}, props["stops"]["items"])
	assert.Equal(t, []any{"economy", "business"}, props["class"]["enum"])
	assert.Equal(t, "object", props["notes"]["type"])
	assert.Equal(t, "string", props["NoTag"]["type"])

	assert.NotContains(t, props, "Internal")
	assert.NotContains(t, props, "Hidden")
	assert.NotContains(t, props, "private")
}

func TestGenerateSchema_PointerAndNoRequired(t *testing.T) {
	type opt struct {
		Note string `json:"note"`
	}
	raw := af.GenerateSchema[*opt]()

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.NotContains(t, schema, "required")
	assert.Contains(t, schema["properties"], "note")
}

func TestGenerateSchema_Interface(t *testing.T) {
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(af.GenerateSchema[any]()))
}

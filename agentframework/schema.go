// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"encoding/json"
	"reflect"
	"strings"
)

// generateSchemaFromType uses reflection to produce a JSON Schema for a struct.
// It only runs once per tool, at construction; dispatch never uses reflection.
func generateSchemaFromType(v any) json.RawMessage {
	t := reflect.TypeOf(v)
	if t == nil {
		return emptyObjectSchema
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	b, err := json.Marshal(schemaForType(t))
	if err != nil {
		return emptyObjectSchema
	}
	return b
}

func schemaForType(t reflect.Type) map[string]any {
	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": schemaForType(t.Elem()),
		}
	case reflect.Ptr:
		return schemaForType(t.Elem())
	case reflect.Struct:
		return schemaForStruct(t)
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return map[string]any{
				"type":                 "object",
				"additionalProperties": schemaForType(t.Elem()),
			}
		}
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": "string"}
	}
}

// schemaTag is the parsed form of a `jsonschema:"..."` struct tag.
type schemaTag struct {
	description string
	required    bool
	enum        []any
	skip        bool
}

func parseSchemaTag(tag string) schemaTag {
	var st schemaTag
	if tag == "-" {
		st.skip = true
		return st
	}
	for _, part := range strings.Split(tag, ",") {
		key, val, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "description":
			st.description = val
		case "required":
			st.required = true
		case "enum":
			for _, ev := range strings.Split(val, "|") {
				st.enum = append(st.enum, strings.TrimSpace(ev))
			}
		}
	}
	return st
}

func schemaForStruct(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := []string{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := field.Name
		if jsonName, _, _ := strings.Cut(jsonTag, ","); jsonName != "" {
			name = jsonName
		}

		st := parseSchemaTag(field.Tag.Get("jsonschema"))
		if st.skip {
			continue
		}

		prop := schemaForType(field.Type)
		if st.description != "" {
			prop["description"] = st.description
		}
		if len(st.enum) > 0 {
			prop["enum"] = st.enum
		}
		if st.required {
			required = append(required, name)
		}
		properties[name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

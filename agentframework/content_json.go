// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"encoding/json"
	"errors"
	"fmt"
)

type textJSON struct {
	Type string `json:"$type"`
	Text string `json:"text"`
}

type functionCallJSON struct {
	Type      string          `json:"$type"`
	CallID    string          `json:"callId,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type functionResultJSON struct {
	Type   string `json:"$type"`
	CallID string `json:"callId,omitempty"`
	Name   string `json:"name,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// MarshalContentJSON marshals a single Content value into its JSON envelope.
func MarshalContentJSON(c Content) ([]byte, error) {
	switch v := c.(type) {
	case *TextContent:
		return json.Marshal(textJSON{string(ContentTypeText), v.Text})

	case *FunctionCallContent:
		var args json.RawMessage
		if v.Arguments != "" && json.Valid([]byte(v.Arguments)) {
			args = json.RawMessage(v.Arguments)
		} else if v.Arguments != "" {
			// Keep malformed model output visible instead of failing the transcript.
			args, _ = json.Marshal(v.Arguments)
		}
		return json.Marshal(functionCallJSON{string(ContentTypeFunctionCall), v.CallID, v.Name, args})

	case *FunctionResultContent:
		out := functionResultJSON{Type: string(ContentTypeFunctionResult), CallID: v.CallID, Name: v.Name, Result: v.Result}
		if v.Err != nil {
			out.Error = v.Err.Error()
		}
		return json.Marshal(out)

	default:
		return nil, fmt.Errorf("unknown content type: %T", c)
	}
}

// UnmarshalContentJSON unmarshals a single Content value from its JSON envelope.
// A function result error is restored as a plain error carrying the message.
func UnmarshalContentJSON(data []byte) (Content, error) {
	var env struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal content envelope: %w", err)
	}

	switch ContentType(env.Type) {
	case ContentTypeText:
		var v textJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &TextContent{Text: v.Text}, nil

	case ContentTypeFunctionCall:
		var v functionCallJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &FunctionCallContent{CallID: v.CallID, Name: v.Name, Arguments: string(v.Arguments)}, nil

	case ContentTypeFunctionResult:
		var v functionResultJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		fr := &FunctionResultContent{CallID: v.CallID, Name: v.Name, Result: v.Result}
		if v.Error != "" {
			fr.Err = errors.New(v.Error)
		}
		return fr, nil

	default:
		return nil, fmt.Errorf("unknown content $type: %q", env.Type)
	}
}

// MarshalJSON serializes each Content item using its $type discriminator.
func (cs Contents) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(cs))
	for i, c := range cs {
		b, err := MarshalContentJSON(c)
		if err != nil {
			return nil, fmt.Errorf("marshal content[%d]: %w", i, err)
		}
		items[i] = b
	}
	return json.Marshal(items)
}

// UnmarshalJSON deserializes a JSON array of Content items using the $type discriminator.
func (cs *Contents) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := make(Contents, len(raw))
	for i, r := range raw {
		c, err := UnmarshalContentJSON(r)
		if err != nil {
			return fmt.Errorf("unmarshal content[%d]: %w", i, err)
		}
		result[i] = c
	}
	*cs = result
	return nil
}

// Copyright (c) Microsoft. All rights reserved.

package agentframework_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

func TestContentTypes(t *testing.T) {
	assert.Equal(t, af.ContentTypeText, (&af.TextContent{}).Type())
	assert.Equal(t, af.ContentTypeFunctionCall, (&af.FunctionCallContent{}).Type())
	assert.Equal(t, af.ContentTypeFunctionResult, (&af.FunctionResultContent{}).Type())

	assert.False(t, af.IsFunctionContent(&af.TextContent{}))
	assert.True(t, af.IsFunctionContent(&af.FunctionCallContent{}))
	assert.True(t, af.IsFunctionContent(&af.FunctionResultContent{}))
}

func TestContents_Accessors(t *testing.T) {
	call := &af.FunctionCallContent{CallID: "c1", Name: "get_random_destination"}
	result := &af.FunctionResultContent{CallID: "c1", Name: "get_random_destination", Result: "Bali, Indonesia"}
	cs := af.Contents{&af.TextContent{Text: "Sure, "}, call, result, &af.TextContent{Text: "how about"}}

	assert.Equal(t, "Sure, how about", cs.Text())
	assert.Equal(t, []*af.FunctionCallContent{call}, cs.FunctionCalls())
	assert.Equal(t, []*af.FunctionResultContent{result}, cs.FunctionResults())
	assert.True(t, cs.HasFunctionContent())

	text := af.Contents{&af.TextContent{Text: "plain"}}
	assert.False(t, text.HasFunctionContent())
	assert.Empty(t, text.FunctionCalls())
	assert.Empty(t, af.Contents(nil).Text())
}

func TestMarshalContentJSON_FunctionCall(t *testing.T) {
	data, err := af.MarshalContentJSON(&af.FunctionCallContent{CallID: "c1", Name: "book_flight", Arguments: `{"date":"Friday"}`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"functionCall","callId":"c1","name":"book_flight","arguments":{"date":"Friday"}}`, string(data))

	// Arguments that are not JSON are kept as a string.
	data, err = af.MarshalContentJSON(&af.FunctionCallContent{Name: "book_flight", Arguments: `{"date":`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"functionCall","name":"book_flight","arguments":"{\"date\":"}`, string(data))
}

func TestMarshalContentJSON_ResultError(t *testing.T) {
	data, err := af.MarshalContentJSON(&af.FunctionResultContent{CallID: "c1", Name: "book_flight", Err: errors.New("no seats")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"functionResult","callId":"c1","name":"book_flight","error":"no seats"}`, string(data))

	c, err := af.UnmarshalContentJSON(data)
	require.NoError(t, err)
	fr, ok := c.(*af.FunctionResultContent)
	require.True(t, ok)
	assert.EqualError(t, fr.Err, "no seats")
	assert.Nil(t, fr.Result)
}

func TestUnmarshalContentJSON_Unknown(t *testing.T) {
	_, err := af.UnmarshalContentJSON([]byte(`{"$type":"image"}`))
	assert.Error(t, err)

	_, err = af.UnmarshalContentJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestContents_JSON(t *testing.T) {
	in := af.Contents{
		&af.TextContent{Text: "How about "},
		&af.FunctionResultContent{CallID: "c1", Name: "get_random_destination", Result: "Bali, Indonesia"},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out af.Contents
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"slices"
	"strings"
)

// ContentType identifies the kind of content within a message or update.
type ContentType string

const (
	ContentTypeText           ContentType = "text"
	ContentTypeFunctionCall   ContentType = "functionCall"
	ContentTypeFunctionResult ContentType = "functionResult"
)

// Content is a sealed interface representing a piece of content within a
// [Message] or [ChatResponseUpdate]. Use a type switch to inspect the
// underlying type.
type Content interface {
	// Type returns the discriminator for this content item.
	Type() ContentType

	sealed()
}

type base struct{}

func (base) sealed() {}

// TextContent holds plain text, or a text delta when streamed.
type TextContent struct {
	base
	Text string
}

func (c *TextContent) Type() ContentType { return ContentTypeText }

// FunctionCallContent is a tool call requested by the model.
type FunctionCallContent struct {
	base
	CallID    string
	Name      string
	Arguments string // JSON-encoded arguments, passed to the tool unmodified
}

func (c *FunctionCallContent) Type() ContentType { return ContentTypeFunctionCall }

// FunctionResultContent is the outcome of a tool call. Err is set when the
// tool failed; Result is then nil.
type FunctionResultContent struct {
	base
	CallID string
	Name   string
	Result any
	Err    error
}

func (c *FunctionResultContent) Type() ContentType { return ContentTypeFunctionResult }

// Contents is an ordered list of [Content] items. It marshals to a JSON array
// where every element carries a "$type" discriminator.
type Contents []Content

// Text concatenates every [TextContent] in order.
func (cs Contents) Text() string {
	var b strings.Builder
	for _, c := range cs {
		if tc, ok := c.(*TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

// FunctionCalls returns the function calls in order.
func (cs Contents) FunctionCalls() []*FunctionCallContent {
	return ofType[*FunctionCallContent](cs)
}

// FunctionResults returns the function results in order.
func (cs Contents) FunctionResults() []*FunctionResultContent {
	return ofType[*FunctionResultContent](cs)
}

// HasFunctionContent reports whether any item is a function call or result.
func (cs Contents) HasFunctionContent() bool {
	return slices.ContainsFunc(cs, IsFunctionContent)
}

func ofType[C Content](cs Contents) []C {
	var out []C
	for _, c := range cs {
		if v, ok := c.(C); ok {
			out = append(out, v)
		}
	}
	return out
}

// IsFunctionContent reports whether c is a function call or function result.
func IsFunctionContent(c Content) bool {
	switch c.(type) {
	case *FunctionCallContent, *FunctionResultContent:
		return true
	default:
		return false
	}
}

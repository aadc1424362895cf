// Copyright (c) Microsoft. All rights reserved.

package agentframework_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

func namedTool(name string) af.Tool {
	return af.NewTool(name, "test tool", nil, func(ctx context.Context, _ json.RawMessage) (any, error) { return name, nil })
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg, err := af.NewRegistry(namedTool("get_random_destination"), namedTool("book_flight"))
	require.NoError(t, err)

	tool, err := reg.Resolve("book_flight")
	require.NoError(t, err)
	assert.Equal(t, "book_flight", tool.Name())
	assert.Equal(t, []string{"get_random_destination", "book_flight"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
	assert.Len(t, reg.Tools(), 2)
}

func TestRegistry_DuplicateLeavesRegistryUnchanged(t *testing.T) {
	tool := namedTool("book_flight")
	reg, err := af.NewRegistry(tool)
	require.NoError(t, err)

	err = reg.Register(tool)
	require.Error(t, err)
	assert.ErrorIs(t, err, af.ErrDuplicateTool)
	assert.ErrorIs(t, err, af.ErrTool)

	var dup *af.DuplicateToolError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "book_flight", dup.Name)

	assert.Equal(t, 1, reg.Len())
	got, err := reg.Resolve("book_flight")
	require.NoError(t, err)
	assert.Same(t, tool, got)
}

func TestRegistry_SameNameDifferentTool(t *testing.T) {
	reg := &af.Registry{}
	require.NoError(t, reg.Register(namedTool("x")))
	assert.ErrorIs(t, reg.Register(namedTool("x")), af.ErrDuplicateTool)
}

func TestRegistry_Unknown(t *testing.T) {
	reg := &af.Registry{}
	_, err := reg.Resolve("teleport")
	require.Error(t, err)
	assert.ErrorIs(t, err, af.ErrUnknownTool)
	assert.EqualError(t, err, `unknown tool "teleport"`)
}

func TestRegistry_Invalid(t *testing.T) {
	reg := &af.Registry{}
	assert.ErrorIs(t, reg.Register(nil), af.ErrInvalidTool)
	assert.ErrorIs(t, reg.Register(namedTool("")), af.ErrInvalidTool)
	assert.Equal(t, 0, reg.Len())
}

func TestNewRegistry_DuplicateFails(t *testing.T) {
	_, err := af.NewRegistry(namedTool("a"), namedTool("a"))
	assert.ErrorIs(t, err, af.ErrDuplicateTool)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := &af.Registry{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("tool_%d", i)
			assert.NoError(t, reg.Register(namedTool(name)))
			_, err := reg.Resolve(name)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, reg.Len())
}

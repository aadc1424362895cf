// Copyright (c) Microsoft. All rights reserved.

// Package agentframework provides the core types for a tool-augmented
// conversational agent: a streaming [Agent] with automatic function calling,
// an explicit tool [Registry], an append-only [Conversation], and the
// [Aggregator] that folds a streamed turn into a [TurnResult].
//
// # Quick Start
//
// Register tools, build an Agent around a ChatClient (e.g., from the openai
// package) and aggregate one turn:
//
//	registry, err := agentframework.NewRegistry(bookFlight, randomDestination)
//	if err != nil {
//	    return err
//	}
//
//	agent := agentframework.NewAgent(client,
//	    agentframework.WithName("TravelAgent"),
//	    agentframework.WithInstructions("You plan vacations."),
//	    agentframework.WithRegistry(registry),
//	)
//
//	stream, err := agent.StreamTurn(ctx, []agentframework.Message{
//	    agentframework.NewUserMessage("Plan me a day trip."),
//	})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	result, err := agentframework.Aggregate(ctx, stream)
//
// # Architecture
//
//   - [ChatClient]: interface for LLM backends (implemented by provider packages).
//   - [Backend]: produces the streamed updates of one turn; [Agent] implements it.
//   - [Tool]: callable functions exposed to the model via function calling.
//   - [Registry]: name to Tool catalog; dispatch is an explicit map lookup.
//   - [Content]: sealed interface for text, function calls and function results.
//   - [ResponseStream]: generic pull-based iterator for streaming responses.
//   - [Aggregator]: folds a stream into text, a call log and per-tool results.
//   - Middleware: Chat (model round-trips) and Function (tool invocations).
//
// # Tools
//
// Use [NewTypedTool] for type-safe tools with automatic JSON Schema generation:
//
//	type BookingArgs struct {
//	    Date     string `json:"date"     jsonschema:"description=The date of the flight.,required"`
//	    Location string `json:"location" jsonschema:"description=The destination location.,required"`
//	}
//
//	tool := agentframework.NewTypedTool("book_flight", "Books a flight.",
//	    func(ctx context.Context, args BookingArgs) (any, error) {
//	        return book(args.Date, args.Location), nil
//	    },
//	)
package agentframework

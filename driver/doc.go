// Copyright (c) Microsoft. All rights reserved.

// Package driver feeds scripted user inputs to a model backend one turn at a
// time, aggregates each streamed reply and renders it to the console.
//
//	d := driver.New(agent, driver.WithOutput(os.Stdout))
//	results, err := d.Run(ctx, []string{"Plan me a day trip."})
//
// A turn is all-or-nothing: the user and assistant messages are appended to
// the conversation together, and only when the turn succeeds.
package driver

// Copyright (c) Microsoft. All rights reserved.

package travel

import (
	"context"
	"fmt"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// BookFlightToolName is the name the model uses to book a flight.
const BookFlightToolName = "book_flight"

// FlightArgs are the arguments of the book_flight tool.
type FlightArgs struct {
	Date     string `json:"date"     jsonschema:"description=The date of the flight.,required"`
	Location string `json:"location" jsonschema:"description=The destination location.,required"`
}

// BookFlight books a flight. Both values are echoed back as given.
func BookFlight(date, location string) string {
	return fmt.Sprintf("Flight booked to %s on %s.", location, date)
}

// BookFlightTool returns BookFlight as a tool. Calls that omit the date or
// the location, or leave either empty, fail with an [af.ToolError].
func BookFlightTool() af.Tool {
	return af.NewTypedTool(BookFlightToolName,
		"Books a flight on a given date and location.",
		func(ctx context.Context, args FlightArgs) (any, error) {
			return BookFlight(args.Date, args.Location), nil
		},
	)
}

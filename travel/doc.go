// Copyright (c) Microsoft. All rights reserved.

// Package travel provides the tools of the vacation planning agent: a
// random destination picker and a flight booking stub.
//
//	picker := travel.NewDestinationPicker(travel.DefaultDestinations)
//	reg, err := travel.NewRegistry(picker)
package travel

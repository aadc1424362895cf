// Copyright (c) Microsoft. All rights reserved.

package travel

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	af "github.com/microsoft/ai-agents-sandbox/go/agentframework"
)

// RandomDestinationToolName is the name the model uses to ask for a destination.
const RandomDestinationToolName = "get_random_destination"

// ErrNoAvailableDestination is returned when every candidate is excluded.
// This happens with an empty set, or on the second call with a single one.
var ErrNoAvailableDestination = errors.New("no available destination")

// DefaultDestinations are the candidates used when none are configured.
var DefaultDestinations = []string{
	"Barcelona, Spain",
	"Paris, France",
	"Berlin, Germany",
	"Tokyo, Japan",
	"Sydney, Australia",
	"New York, USA",
	"Cairo, Egypt",
	"Cape Town, South Africa",
	"Rio de Janeiro, Brazil",
	"Bali, Indonesia",
}

// DestinationPicker returns random destinations and never the same one twice
// in a row. It is safe for concurrent use.
type DestinationPicker struct {
	mu           sync.Mutex
	destinations []string
	last         string
	hasLast      bool
	rng          *rand.Rand
	logger       *slog.Logger
}

// PickerOption configures a [DestinationPicker].
type PickerOption func(*DestinationPicker)

// WithRand sets the random source. Tests use a seeded source.
func WithRand(r *rand.Rand) PickerOption {
	return func(p *DestinationPicker) { p.rng = r }
}

// WithLogger sets the logger that records each pick. Default: [slog.Default].
func WithLogger(logger *slog.Logger) PickerOption {
	return func(p *DestinationPicker) { p.logger = logger }
}

// NewDestinationPicker creates a picker over destinations. Duplicates are
// dropped; order is kept.
func NewDestinationPicker(destinations []string, opts ...PickerOption) *DestinationPicker {
	p := &DestinationPicker{}
	seen := make(map[string]struct{}, len(destinations))
	for _, d := range destinations {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		p.destinations = append(p.destinations, d)
	}
	for _, o := range opts {
		o(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Destinations returns a copy of the candidate set.
func (p *DestinationPicker) Destinations() []string {
	out := make([]string, len(p.destinations))
	copy(out, p.destinations)
	return out
}

// Last returns the most recent pick, if any.
func (p *DestinationPicker) Last() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.hasLast
}

// Next picks uniformly among the candidates other than the previous pick.
func (p *DestinationPicker) Next(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	available := make([]string, 0, len(p.destinations))
	for _, d := range p.destinations {
		if p.hasLast && d == p.last {
			continue
		}
		available = append(available, d)
	}
	if len(available) == 0 {
		return "", ErrNoAvailableDestination
	}

	var i int
	if p.rng != nil {
		i = p.rng.IntN(len(available))
	} else {
		i = rand.IntN(len(available))
	}
	dest := available[i]
	p.last, p.hasLast = dest, true

	p.logger.DebugContext(ctx, "selected destination", "destination", dest)
	return dest, nil
}

// Tool returns Next as the get_random_destination tool.
func (p *DestinationPicker) Tool() af.Tool {
	return af.NewTool(RandomDestinationToolName,
		"Provides a random vacation destination.",
		nil,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			dest, err := p.Next(ctx)
			if err != nil {
				return nil, &af.ToolError{
					ToolName: RandomDestinationToolName,
					Message:  err.Error(),
					Err:      errors.Join(af.ErrToolExecution, err),
				}
			}
			return dest, nil
		},
	)
}

// Package ai holds the language model backed query extractors.
package ai

import (
	"context"

	"github.com/spigell/job-finder/internal/criteria"
)

const ProviderGemini = "gemini"

// Disabled is the extractor used when no model is configured. It never
// produces filters, so compilation always falls back to the heuristic.
type Disabled struct {
	Reason string
}

func (d Disabled) Extract(_ context.Context, _ string) criteria.Extraction {
	reason := d.Reason
	if reason == "" {
		reason = "ai extraction is disabled"
	}
	return criteria.NotProduced(reason)
}

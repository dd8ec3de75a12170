package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/canon"
	"github.com/spigell/job-finder/internal/jobs"
)

type dedupKey struct {
	title   string
	company string
}

func keyOf(p *jobs.Posting) dedupKey {
	return dedupKey{title: canon.Normalize(p.Title), company: canon.Normalize(p.Company)}
}

// Dedupe keeps the first posting of every normalized (title, company) pair and
// preserves order. ID, location and URL do not take part in the comparison.
func Dedupe(postings []*jobs.Posting) []*jobs.Posting {
	seen := make(map[dedupKey]struct{}, len(postings))
	out := make([]*jobs.Posting, 0, len(postings))
	for _, p := range postings {
		if p == nil {
			continue
		}
		key := keyOf(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

type dedupeFilter struct {
	enabled bool
	reason  string
}

// NewDedupe creates a filter that removes the same posting listed more than once.
func NewDedupe() Filter {
	return &dedupeFilter{enabled: true}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *dedupeFilter) IsEnabled() bool { return f.enabled }

func (f *dedupeFilter) Validate(*Config) error { return nil }

func (f *dedupeFilter) Apply(_ context.Context, deps Deps, p *jobs.Postings) (*jobs.Postings, Step, error) {
	initial := p.Len()
	out := &jobs.Postings{Items: Dedupe(p.Items)}

	if deps.Logger != nil && out.Len() < initial {
		deps.Logger.Debug("removed duplicate postings",
			zap.Int("duplicates", initial-out.Len()),
			zap.Int("postings_left", out.Len()),
		)
	}

	return out, Step{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}, nil
}

func (f *dedupeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}

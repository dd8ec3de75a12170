package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/canon"
	"github.com/spigell/job-finder/internal/jobs"
)

type excludedCompaniesFilter struct {
	companies []string
	excluded  map[string]struct{}
}

// NewExcludedCompanies creates a filter that removes postings by companies configured in the config.
func NewExcludedCompanies() Filter {
	return &excludedCompaniesFilter{}
}

func (f *excludedCompaniesFilter) Name() string { return "excluded_companies" }

func (f *excludedCompaniesFilter) Disable(string) {}

func (f *excludedCompaniesFilter) IsEnabled() bool { return true }

func (f *excludedCompaniesFilter) Validate(cfg *Config) error {
	f.companies = nil
	f.excluded = make(map[string]struct{})
	if cfg == nil {
		return nil
	}

	for _, company := range cfg.ExcludedCompanies {
		key := canon.Normalize(company)
		if key == "" {
			continue
		}
		f.companies = append(f.companies, strings.TrimSpace(company))
		f.excluded[key] = struct{}{}
	}
	return nil
}

func (f *excludedCompaniesFilter) Apply(_ context.Context, deps Deps, p *jobs.Postings) (*jobs.Postings, Step, error) {
	initial := p.Len()
	if len(f.excluded) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	out, dropped := keep(p, func(posting *jobs.Posting) bool {
		if posting == nil {
			return false
		}
		_, excluded := f.excluded[canon.Normalize(posting.Company)]
		return !excluded
	})

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding postings by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", out.Len()),
		)
	}

	return out, Step{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}, nil
}

func (f *excludedCompaniesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

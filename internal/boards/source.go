// Package boards fetches job postings from public job boards and aggregates
// them into a single ordered list.
package boards

import (
	"context"
	"strings"
	"time"

	"github.com/spigell/job-finder/internal/canon"
	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/jobs"
)

const (
	defaultPause   = 500 * time.Millisecond
	defaultWorkers = 1
)

// Source fetches postings from one job board family.
type Source interface {
	Name() string
	Fetch(ctx context.Context, filters criteria.FilterSet) (*jobs.Postings, error)
}

// Company is a single board of a job board family.
type Company struct {
	Slug string `mapstructure:"slug"`
	Name string `mapstructure:"name"`
}

// Companies builds companies from slugs, naming each after its title-cased slug.
func Companies(slugs ...string) []Company {
	out := make([]Company, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, Company{Slug: slug})
	}
	return normalizeCompanies(out)
}

func normalizeCompanies(in []Company) []Company {
	out := make([]Company, 0, len(in))
	for _, co := range in {
		slug := strings.TrimSpace(co.Slug)
		if slug == "" {
			continue
		}
		name := strings.TrimSpace(co.Name)
		if name == "" {
			name = canon.TitleCase(slug)
		}
		out = append(out, Company{Slug: slug, Name: name})
	}
	return out
}

// BoardConfig configures a BoardSource.
type BoardConfig struct {
	// BaseURL overrides the family's public API root.
	BaseURL   string
	Companies []Company
	// Pause is the minimum interval between two requests of the same source.
	// Zero means the default, a negative value disables the pause.
	Pause time.Duration
	// Workers bounds how many companies are fetched at once.
	Workers int
}

// Family describes the wire shape of one job board family.
type Family interface {
	// Tag is the source tag set on every posting.
	Tag() string
	Endpoint(baseURL string, co Company) string
	Decode(co Company, data []byte) ([]*jobs.Posting, error)
}

// Package googlejobs searches Google Jobs through SerpApi. Unlike the board
// families it queries with the compiled filters.
package googlejobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/errors"
	"github.com/spigell/job-finder/internal/jobs"
)

const (
	apiURL          = "https://serpapi.com/search.json"
	engine          = "google_jobs"
	defaultLanguage = "en"
	defaultQuery    = "jobs"
)

type Config struct {
	APIKey   string
	BaseURL  string
	Language string
}

type response struct {
	Results []result `json:"jobs_results"`
}

type result struct {
	JobID        string `json:"job_id"`
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	ShareURL     string `json:"share_url"`
	RelatedLinks []struct {
		Link string `json:"link"`
	} `json:"related_links"`
}

type Source struct {
	cfg    Config
	client *boards.Client
	logger *zap.Logger
}

func New(cfg Config, client *boards.Client, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = boards.NewClient(0, "", logger)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = apiURL
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}

	return &Source{
		cfg:    cfg,
		client: client,
		logger: logger.With(zap.String("source", jobs.SourceGoogleJobs)),
	}
}

func (s *Source) Name() string {
	return jobs.SourceGoogleJobs
}

// Enabled reports whether an api key is configured.
func (s *Source) Enabled() bool {
	return s.cfg.APIKey != ""
}

// Fetch returns no postings and makes no request when the source is disabled.
func (s *Source) Fetch(ctx context.Context, filters criteria.FilterSet) (*jobs.Postings, error) {
	if !s.Enabled() {
		s.logger.Debug("google jobs disabled, skipping")
		return &jobs.Postings{}, nil
	}

	data, err := s.client.Get(ctx, s.cfg.BaseURL, s.query(filters))
	if err != nil {
		return nil, fmt.Errorf("search google jobs: %w", err)
	}

	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.InvalidInput("decoding google jobs response", err)
	}

	postings := &jobs.Postings{Items: make([]*jobs.Posting, 0, len(resp.Results))}
	for _, r := range resp.Results {
		postings.Items = append(postings.Items, &jobs.Posting{
			ID:          "google_" + r.JobID,
			Title:       r.Title,
			Company:     r.CompanyName,
			Location:    r.Location,
			Description: r.Description,
			URL:         r.link(),
			Source:      jobs.SourceGoogleJobs,
		})
	}

	s.logger.Debug("fetched google jobs", zap.Int("postings", postings.Len()))
	return postings, nil
}

func (s *Source) query(filters criteria.FilterSet) url.Values {
	search := strings.TrimSpace(filters.Role)
	if search == "" {
		search = defaultQuery
	}

	location := strings.TrimSpace(filters.Location)
	if location != "" {
		search += " in " + location
	}

	q := url.Values{}
	q.Set("engine", engine)
	q.Set("q", search)
	q.Set("hl", s.cfg.Language)
	if location != "" {
		q.Set("location", location)
	}
	q.Set("api_key", s.cfg.APIKey)

	return q
}

func (r result) link() string {
	if r.ShareURL != "" {
		return r.ShareURL
	}
	for _, related := range r.RelatedLinks {
		if related.Link != "" {
			return related.Link
		}
	}
	return ""
}

// Package greenhouse reads the public Greenhouse job board API.
package greenhouse

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/jobs"
)

const apiURL = "https://boards-api.greenhouse.io/v1/boards"

// DefaultCompanies are the boards fetched when none are configured.
var DefaultCompanies = []string{"airbnb", "doordash", "gitlab", "grammarly", "robinhood"}

type response struct {
	Jobs []job `json:"jobs"`
}

type job struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	AbsoluteURL string `json:"absolute_url"`
	// Content is entity-escaped HTML.
	Content string `json:"content"`
}

type family struct{}

func New(cfg boards.BoardConfig, client *boards.Client, logger *zap.Logger) *boards.BoardSource {
	if len(cfg.Companies) == 0 {
		cfg.Companies = boards.Companies(DefaultCompanies...)
	}
	return boards.NewBoardSource(family{}, apiURL, cfg, client, logger)
}

func (family) Tag() string {
	return jobs.SourceGreenhouse
}

func (family) Endpoint(baseURL string, co boards.Company) string {
	return fmt.Sprintf("%s/%s/jobs?content=true", baseURL, url.PathEscape(co.Slug))
}

func (family) Decode(co boards.Company, data []byte) ([]*jobs.Posting, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode greenhouse jobs: %w", err)
	}

	postings := make([]*jobs.Posting, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		postings = append(postings, &jobs.Posting{
			ID:          fmt.Sprintf("gh_%s_%d", co.Slug, j.ID),
			Title:       j.Title,
			Company:     co.Name,
			Location:    j.Location.Name,
			Description: boards.PlainText(html.UnescapeString(j.Content)),
			URL:         j.AbsoluteURL,
			Source:      jobs.SourceGreenhouse,
		})
	}

	return postings, nil
}

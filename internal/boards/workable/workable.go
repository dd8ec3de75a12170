// Package workable reads the public Workable accounts API.
package workable

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/jobs"
)

const apiURL = "https://apply.workable.com/api/v3/accounts"

var DefaultCompanies = []string{"signifyd", "omnipresent", "ometria"}

type response struct {
	Jobs []job `json:"jobs"`
}

type job struct {
	Shortcode   string `json:"shortcode"`
	Title       string `json:"title"`
	City        string `json:"city"`
	Country     string `json:"country"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type family struct{}

func New(cfg boards.BoardConfig, client *boards.Client, logger *zap.Logger) *boards.BoardSource {
	if len(cfg.Companies) == 0 {
		cfg.Companies = boards.Companies(DefaultCompanies...)
	}
	return boards.NewBoardSource(family{}, apiURL, cfg, client, logger)
}

func (family) Tag() string {
	return jobs.SourceWorkable
}

func (family) Endpoint(baseURL string, co boards.Company) string {
	return fmt.Sprintf("%s/%s/jobs", baseURL, url.PathEscape(co.Slug))
}

func (family) Decode(co boards.Company, data []byte) ([]*jobs.Posting, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode workable jobs: %w", err)
	}

	postings := make([]*jobs.Posting, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		postings = append(postings, &jobs.Posting{
			ID:          fmt.Sprintf("workable_%s_%s", co.Slug, j.Shortcode),
			Title:       j.Title,
			Company:     co.Name,
			Location:    location(j.City, j.Country),
			Description: boards.PlainText(j.Description),
			URL:         j.URL,
			Source:      jobs.SourceWorkable,
		})
	}

	return postings, nil
}

func location(city, country string) string {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)

	switch {
	case country == "":
		return city
	case city == "":
		return country
	default:
		return city + ", " + country
	}
}

// Package lever reads the public Lever postings API.
package lever

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/jobs"
)

const apiURL = "https://api.lever.co/v0/postings"

var DefaultCompanies = []string{"netflix", "spotify", "lyft", "databricks", "stripe"}

type posting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
	HostedURL        string `json:"hostedUrl"`
	Description      string `json:"description"`
	DescriptionPlain string `json:"descriptionPlain"`
}

type family struct{}

func New(cfg boards.BoardConfig, client *boards.Client, logger *zap.Logger) *boards.BoardSource {
	if len(cfg.Companies) == 0 {
		cfg.Companies = boards.Companies(DefaultCompanies...)
	}
	return boards.NewBoardSource(family{}, apiURL, cfg, client, logger)
}

func (family) Tag() string {
	return jobs.SourceLever
}

func (family) Endpoint(baseURL string, co boards.Company) string {
	return fmt.Sprintf("%s/%s?mode=json", baseURL, url.PathEscape(co.Slug))
}

func (family) Decode(co boards.Company, data []byte) ([]*jobs.Posting, error) {
	var items []posting
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode lever postings: %w", err)
	}

	postings := make([]*jobs.Posting, 0, len(items))
	for _, item := range items {
		description := strings.TrimSpace(item.DescriptionPlain)
		if description == "" {
			description = boards.PlainText(item.Description)
		}

		postings = append(postings, &jobs.Posting{
			ID:          fmt.Sprintf("lever_%s_%s", co.Slug, item.ID),
			Title:       item.Text,
			Company:     co.Name,
			Location:    item.Categories.Location,
			Description: description,
			URL:         item.HostedURL,
			Source:      jobs.SourceLever,
		})
	}

	return postings, nil
}

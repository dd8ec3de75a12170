package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Source tags identify the job board a posting came from.
const (
	SourceGreenhouse = "Greenhouse"
	SourceLever      = "Lever"
	SourceWorkable   = "Workable"
	SourceGoogleJobs = "Google Jobs"
)

// Posting is a job listing normalized across sources.
type Posting struct {
	// ID is prefixed with the source tag and board, so it is unique within one fetch.
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

type Postings struct {
	Items []*Posting
}

func (p *Postings) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// Append adds the items of other in order.
func (p *Postings) Append(other *Postings) {
	if other == nil {
		return
	}
	p.Items = append(p.Items, other.Items...)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

func (p *Postings) IDs() []string {
	ids := make([]string, 0, p.Len())
	for _, posting := range p.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

// ReportBySource groups a short description of every posting by its source.
func (p *Postings) ReportBySource() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range p.Items {
		report[posting.Source] = append(report[posting.Source], map[string]string{
			"title":    posting.Title,
			"company":  posting.Company,
			"location": posting.Location,
			"url":      posting.URL,
		})
	}
	return report
}

// Sources returns the distinct sources in sorted order.
func (p *Postings) Sources() []string {
	seen := make(map[string]struct{})
	for _, posting := range p.Items {
		seen[posting.Source] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for source := range seen {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}

func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.Items); err != nil {
		return "", fmt.Errorf("encode postings: %w", err)
	}
	return file.Name(), nil
}

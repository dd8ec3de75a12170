// Package output renders search results for the terminal or for other programs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/job-finder/internal/jobs"
)

const (
	FormatCLI  = "cli"
	FormatJSON = "json"
	FormatYAML = "yaml"

	notAvailable = "N/A"
	ruleWidth    = 80
)

// Formats lists the supported output formats.
var Formats = []string{FormatCLI, FormatJSON, FormatYAML}

// Item is the machine readable shape of a posting.
type Item struct {
	Title    string `json:"title" yaml:"title"`
	Company  string `json:"company" yaml:"company"`
	Location string `json:"location" yaml:"location"`
	ApplyURL string `json:"apply_url" yaml:"apply_url"`
	Source   string `json:"source" yaml:"source"`
}

func Items(postings *jobs.Postings) []Item {
	items := make([]Item, 0, postings.Len())
	if postings == nil {
		return items
	}
	for _, p := range postings.Items {
		items = append(items, Item{
			Title:    p.Title,
			Company:  p.Company,
			Location: p.Location,
			ApplyURL: p.URL,
			Source:   p.Source,
		})
	}
	return items
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Write renders postings in the requested format. failedSources is only
// mentioned by the cli format, and only when nothing was found.
func Write(w io.Writer, format string, postings *jobs.Postings, failedSources []string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Items(postings)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Items(postings)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCLI, "":
		return writeCLI(w, postings, failedSources)
	default:
		return fmt.Errorf("unsupported output format %q (use one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeCLI(w io.Writer, postings *jobs.Postings, failedSources []string) error {
	var b strings.Builder

	if postings.Len() == 0 {
		b.WriteString("\nNo jobs found matching your criteria.\n")
		if len(failedSources) > 0 {
			fmt.Fprintf(&b, "Some sources could not be reached: %s\n", strings.Join(failedSources, ", "))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(&b, "\n%s\nFOUND %d JOB(S)\n%s\n\n", rule, postings.Len(), rule)

	for i, p := range postings.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, orNA(p.Title))
		fmt.Fprintf(&b, "   Company: %s\n", orNA(p.Company))
		fmt.Fprintf(&b, "   Location: %s\n", orNA(p.Location))
		fmt.Fprintf(&b, "   Source: %s\n", orNA(p.Source))
		fmt.Fprintf(&b, "   Apply: %s\n\n", orNA(p.URL))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Details renders one posting including its description.
func Details(p *jobs.Posting) string {
	if p == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", orNA(p.Title))
	fmt.Fprintf(&b, "Company: %s\n", orNA(p.Company))
	fmt.Fprintf(&b, "Location: %s\n", orNA(p.Location))
	fmt.Fprintf(&b, "Source: %s\n", orNA(p.Source))
	fmt.Fprintf(&b, "Apply: %s\n", orNA(p.URL))
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

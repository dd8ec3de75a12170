package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/spigell/job-finder/internal/jobs"
)

func samplePostings() *jobs.Postings {
	return &jobs.Postings{Items: []*jobs.Posting{
		{ID: "gh_techco_1", Title: "Registered Nurse", Company: "TechCo", Location: "Utrecht", URL: "https://example.com/1", Source: "Greenhouse", Description: "No Dutch required."},
		{ID: "lever_x_2", Title: "Nurse", Company: "Clinic", Source: "Lever"},
	}}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, samplePostings(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["apply_url"] != "https://example.com/1" || items[0]["source"] != "Greenhouse" {
		t.Fatalf("unexpected first item %v", items[0])
	}
	if _, ok := items[0]["description"]; ok {
		t.Fatalf("expected description to be left out")
	}
}

func TestWriteJSONEmptyIsList(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty list, got %q", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, samplePostings(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []Item
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("invalid yaml output: %v", err)
	}
	if len(items) != 2 || items[1].Company != "Clinic" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestWriteCLI(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCLI, samplePostings(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"FOUND 2 JOB(S)",
		"1. Registered Nurse",
		"   Apply: https://example.com/1",
		"2. Nurse",
		"   Location: N/A",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteCLINoResultsNamesFailedSources(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCLI, &jobs.Postings{}, []string{"Lever", "Workable"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No jobs found matching your criteria.") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Lever, Workable") {
		t.Fatalf("expected failed sources in output, got %q", out)
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", samplePostings(), nil); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if ValidFormat("xml") || !ValidFormat(FormatYAML) {
		t.Fatalf("unexpected format validation")
	}
}

func TestDetails(t *testing.T) {
	got := Details(samplePostings().Items[0])
	if !strings.Contains(got, "Company: TechCo") || !strings.HasSuffix(got, "No Dutch required.\n") {
		t.Fatalf("unexpected details:\n%s", got)
	}
	if Details(nil) != "" {
		t.Fatalf("expected empty details for nil posting")
	}
}

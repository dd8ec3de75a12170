package filtering

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/jobs"
)

func ids(postings []*jobs.Posting) string {
	out := make([]string, 0, len(postings))
	for _, p := range postings {
		out = append(out, p.ID)
	}
	return strings.Join(out, ",")
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	postings := []*jobs.Posting{
		{ID: "a", Title: "Software Engineer", Company: "TechCo", Location: "Amsterdam"},
		{ID: "b", Title: "software  engineer!", Company: "techco", Location: "Rotterdam"},
		{ID: "c", Title: "Nurse", Company: "TechCo"},
		nil,
		{ID: "d", Title: "Software Engineer", Company: "OtherCo"},
	}

	got := Dedupe(postings)
	if ids(got) != "a,c,d" {
		t.Fatalf("unexpected postings %s", ids(got))
	}
	if got[0].Location != "Amsterdam" {
		t.Fatalf("expected the Amsterdam posting to win, got %q", got[0].Location)
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	postings := []*jobs.Posting{
		{ID: "1", Title: "Nurse", Company: "A"},
		{ID: "2", Title: "NURSE", Company: "a"},
		{ID: "3", Title: "Nurse", Company: "B"},
	}

	once := Dedupe(postings)
	twice := Dedupe(once)
	if ids(once) != ids(twice) {
		t.Fatalf("expected idempotent dedupe, got %s then %s", ids(once), ids(twice))
	}

	if len(Dedupe(nil)) != 0 {
		t.Fatalf("expected empty result for nil input")
	}
}

func TestExcludedCompanies(t *testing.T) {
	f := NewExcludedCompanies()
	if err := f.Validate(&Config{ExcludedCompanies: []string{" Tech-Co ", ""}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	postings := &jobs.Postings{Items: []*jobs.Posting{
		{ID: "a", Company: "TechCo"},
		{ID: "b", Company: "Other"},
	}}

	out, step, err := f.Apply(context.Background(), Deps{}, postings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ids(out.Items) != "b" {
		t.Fatalf("unexpected postings %s", ids(out.Items))
	}
	if step != (Step{Initial: 2, Dropped: 1, Left: 1}) {
		t.Fatalf("unexpected step %+v", step)
	}

	status := f.(statusProvider).Status()
	if status.Details["companies"] != "Tech-Co" {
		t.Fatalf("unexpected status details %v", status.Details)
	}
}

func TestRunAppliesStepsInOrder(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	postings := &jobs.Postings{Items: []*jobs.Posting{
		{ID: "1", Title: "Registered Nurse", Company: "TechCo", Location: "Amsterdam", Description: "No Dutch required."},
		{ID: "2", Title: "Registered Nurse", Company: "TechCo", Location: "Rotterdam"},
		{ID: "3", Title: "Nurse", Company: "Blocked Inc", Location: "Utrecht"},
		{ID: "4", Title: "Engineer", Company: "TechCo"},
		{ID: "5", Title: "Nurse", Company: "Clinic", Description: "Dutch proficiency"},
	}}

	deps := Deps{
		Logger:  zap.New(core),
		Filters: criteria.FilterSet{Role: "nurse", LanguagesExcluded: []string{"Dutch"}},
	}

	out, err := Run(context.Background(), &Config{ExcludedCompanies: []string{"blocked inc"}}, deps, DefaultSteps(), postings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ids(out.Items) != "1" {
		t.Fatalf("unexpected postings %s", ids(out.Items))
	}

	steps := observed.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 filter steps, got %d", len(steps))
	}

	want := []struct {
		name    string
		dropped int64
	}{
		{"criteria", 2},
		{"excluded_companies", 1},
		{"dedupe", 1},
	}
	for i, w := range want {
		ctx := steps[i].ContextMap()
		if ctx["name"] != w.name || ctx["dropped"] != w.dropped {
			t.Fatalf("step %d: expected %s dropping %d, got %v", i, w.name, w.dropped, ctx)
		}
	}
}

func TestRunSkipsDisabledSteps(t *testing.T) {
	steps := DefaultSteps()
	DisableByName(steps, "dedupe", "keep duplicates")

	postings := &jobs.Postings{Items: []*jobs.Posting{
		{ID: "1", Title: "Nurse", Company: "A"},
		{ID: "2", Title: "Nurse", Company: "A"},
	}}

	out, err := Run(context.Background(), nil, Deps{}, steps, postings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("expected duplicates to survive, got %d", out.Len())
	}

	statuses := Describe(steps)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	last := statuses[2]
	if last.Name != "dedupe" || last.Enabled || last.Reason != "keep duplicates" {
		t.Fatalf("unexpected dedupe status %+v", last)
	}
}

type failingFilter struct{}

func (failingFilter) Name() string           { return "failing" }
func (failingFilter) Disable(string)         {}
func (failingFilter) IsEnabled() bool        { return true }
func (failingFilter) Validate(*Config) error { return errors.New("bad config") }
func (failingFilter) Apply(context.Context, Deps, *jobs.Postings) (*jobs.Postings, Step, error) {
	return nil, Step{}, nil
}

func TestRunReportsValidationErrors(t *testing.T) {
	_, err := Run(context.Background(), nil, Deps{}, []Filter{failingFilter{}}, &jobs.Postings{})
	if err == nil || !strings.Contains(err.Error(), "failing") {
		t.Fatalf("expected validation error naming the step, got %v", err)
	}

	statuses := Describe([]Filter{failingFilter{}})
	if len(statuses) != 1 || statuses[0].Name != "failing" || !statuses[0].Enabled {
		t.Fatalf("unexpected fallback status %+v", statuses)
	}
}

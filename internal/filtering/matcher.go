package filtering

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/jobs"
)

var (
	excludedLanguagePatterns = []string{
		"%s required",
		"%s proficiency",
		"fluent in %s",
		"speak %s",
		"native %s",
		"%s speaker",
		"%s language",
	}
	// A trigger phrase right after one of these words reads as "not required".
	negations     = []string{"no ", "not ", "without "}
	remoteMarkers = []string{"remote", "work from home", "wfh", "distributed"}
)

// Matches reports whether the posting satisfies every criterion set in f.
// Absent criteria never reject. Comparison is case-insensitive substring
// matching, and an excluded language only rejects when its requirement phrase
// is not negated ("no Dutch required" passes). Salary bounds are advisory and
// ignored.
func Matches(p *jobs.Posting, f criteria.FilterSet) bool {
	if p == nil {
		return false
	}

	title := strings.ToLower(p.Title)
	description := strings.ToLower(p.Description)
	location := strings.ToLower(p.Location)
	inTitleOrDescription := func(s string) bool {
		return strings.Contains(title, s) || strings.Contains(description, s)
	}

	if words := strings.Fields(strings.ToLower(f.Role)); len(words) > 0 {
		found := false
		for _, word := range words {
			if inTitleOrDescription(word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if want := strings.ToLower(strings.TrimSpace(f.Location)); want != "" && !strings.Contains(location, want) {
		return false
	}

	for _, lang := range f.LanguagesExcluded {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		for _, pattern := range excludedLanguagePatterns {
			phrase := strings.ReplaceAll(pattern, "%s", lang)
			if containsRequirement(title, phrase) || containsRequirement(description, phrase) {
				return false
			}
		}
	}

	for _, lang := range f.LanguagesRequired {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" && !strings.Contains(description, lang) {
			return false
		}
	}

	for _, keyword := range f.Keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && !inTitleOrDescription(keyword) {
			return false
		}
	}

	if f.WantsRemote() {
		remote := false
		for _, marker := range remoteMarkers {
			if strings.Contains(location, marker) || strings.Contains(description, marker) {
				remote = true
				break
			}
		}
		if !remote {
			return false
		}
	}

	return true
}

// containsRequirement reports whether phrase occurs in text at least once
// without a negation word right before it.
func containsRequirement(text, phrase string) bool {
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		if !negated(text[:i]) {
			return true
		}
		start = i + len(phrase)
	}
	return false
}

func negated(prefix string) bool {
	for _, word := range negations {
		if !strings.HasSuffix(prefix, word) {
			continue
		}
		rest := prefix[:len(prefix)-len(word)]
		last, _ := utf8.DecodeLastRuneInString(rest)
		if rest == "" || !unicode.IsLetter(last) && !unicode.IsDigit(last) {
			return true
		}
	}
	return false
}

type criteriaFilter struct {
	enabled bool
	reason  string
}

// NewCriteria creates a filter that keeps postings matching the compiled query.
func NewCriteria() Filter {
	return &criteriaFilter{enabled: true}
}

func (f *criteriaFilter) Name() string { return "criteria" }

func (f *criteriaFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *criteriaFilter) IsEnabled() bool { return f.enabled }

func (f *criteriaFilter) Validate(*Config) error { return nil }

func (f *criteriaFilter) Apply(_ context.Context, deps Deps, p *jobs.Postings) (*jobs.Postings, Step, error) {
	initial := p.Len()
	if deps.Filters.IsEmpty() {
		return p, Step{Initial: initial, Left: initial}, nil
	}

	out, dropped := keep(p, func(posting *jobs.Posting) bool {
		return Matches(posting, deps.Filters)
	})

	if deps.Logger != nil {
		deps.Logger.Debug("excluding postings not matching the query",
			zap.Int("excluded", len(dropped)),
			zap.Int("postings_left", out.Len()),
		)
	}

	return out, Step{Initial: initial, Dropped: initial - out.Len(), Left: out.Len()}, nil
}

func (f *criteriaFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}

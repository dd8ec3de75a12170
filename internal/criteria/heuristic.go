package criteria

import (
	"regexp"
	"slices"
	"strings"

	"github.com/spigell/job-finder/internal/canon"
)

var (
	negatedRequirementRe = regexp.MustCompile(`\bno\s+([a-z]+)\s+(?:required|needed|necessary)`)
	negatedWordRe        = regexp.MustCompile(`\bno\s+([a-z]+)\b`)
	withoutWordRe        = regexp.MustCompile(`\bwithout\s+([a-z]+)\b`)
	locationRe           = regexp.MustCompile(`\bin\s+([a-z\-\s]+?)(?:,|$)`)
	remoteWordRe         = regexp.MustCompile(`\bremote\b`)
	negationFragmentRe   = regexp.MustCompile(`\bno\s+[a-z]+`)
	roleNoiseRe          = regexp.MustCompile(`\b(?:with|but)\b`)
)

var remoteMarkers = []string{"remote", "work from home", "wfh"}

// seniorityVocabulary is scanned for keywords that are not already part of the role.
var seniorityVocabulary = []string{"senior", "junior", "manager", "specialist", "engineer", "nurse"}

// Heuristic compiles a query with regular expressions and a small vocabulary.
// It has no language dictionary, so "no experience needed" yields an excluded
// language named "Experience".
type Heuristic struct{}

// Extract never fails. An empty query yields an empty FilterSet.
func (Heuristic) Extract(query string) FilterSet {
	q := strings.ToLower(query)
	var out FilterSet

	out.LanguagesExcluded = negatedLanguages(q)

	loc := locationRe.FindStringSubmatchIndex(q)
	if loc != nil {
		captured := q[loc[2]:loc[3]]
		captured = remoteWordRe.ReplaceAllString(captured, "")
		if strings.TrimSpace(captured) != "" {
			out.Location = canon.TitleCase(captured)
		}
	}

	for _, marker := range remoteMarkers {
		if strings.Contains(q, marker) {
			out.Remote = Bool(true)
			break
		}
	}

	var rolePart string
	if loc != nil {
		rolePart = q[:loc[0]]
	} else {
		rolePart, _, _ = strings.Cut(q, ",")
	}
	rolePart = negationFragmentRe.ReplaceAllString(rolePart, "")
	rolePart = roleNoiseRe.ReplaceAllString(rolePart, "")
	out.Role = canon.TitleCase(rolePart)

	role := strings.ToLower(out.Role)
	for _, term := range seniorityVocabulary {
		if !strings.Contains(q, term) {
			continue
		}
		if role != "" && strings.Contains(role, term) {
			continue
		}
		out.Keywords = append(out.Keywords, canon.TitleCase(term))
	}

	return out
}

func negatedLanguages(q string) []string {
	var langs []string
	add := func(word string) {
		if word == "no" || word == "not" {
			return
		}
		lang := canon.TitleCase(word)
		if !slices.Contains(langs, lang) {
			langs = append(langs, lang)
		}
	}

	for _, re := range []*regexp.Regexp{negatedRequirementRe, negatedWordRe, withoutWordRe} {
		for _, m := range re.FindAllStringSubmatch(q, -1) {
			add(m[1])
		}
	}

	return langs
}

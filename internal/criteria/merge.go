package criteria

// Extraction is the outcome of a primary extractor. When Produced is false the
// Filters are meaningless and Reason says why nothing was produced.
type Extraction struct {
	Filters  FilterSet
	Produced bool
	Reason   string
}

// Produced wraps a FilterSet returned by a primary extractor.
func Produced(f FilterSet) Extraction {
	return Extraction{Filters: f, Produced: true}
}

// NotProduced reports that the primary extractor had nothing to offer.
func NotProduced(reason string) Extraction {
	return Extraction{Reason: reason}
}

// Merge fills every empty field of primary with the heuristic value.
// Non-empty primary fields always win. Empty strings, empty lists, false and
// zero count as empty.
func Merge(primary, heuristic FilterSet) FilterSet {
	out := primary.Clone()
	h := heuristic.Clone()

	if out.Role == "" {
		out.Role = h.Role
	}
	if out.Location == "" {
		out.Location = h.Location
	}
	if len(out.LanguagesRequired) == 0 {
		out.LanguagesRequired = h.LanguagesRequired
	}
	if len(out.LanguagesExcluded) == 0 {
		out.LanguagesExcluded = h.LanguagesExcluded
	}
	if len(out.Keywords) == 0 {
		out.Keywords = h.Keywords
	}
	if !out.WantsRemote() && h.WantsRemote() {
		out.Remote = h.Remote
	}
	if isZeroNumber(out.SalaryMin) && !isZeroNumber(h.SalaryMin) {
		out.SalaryMin = h.SalaryMin
	}
	if isZeroNumber(out.SalaryMax) && !isZeroNumber(h.SalaryMax) {
		out.SalaryMax = h.SalaryMax
	}

	return out
}

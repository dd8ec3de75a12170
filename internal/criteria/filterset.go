// Package criteria compiles natural-language job queries into a FilterSet.
package criteria

import "slices"

// FilterSet holds the compiled search criteria of a single query.
// A zero value field means the criterion is absent and does not constrain matching.
type FilterSet struct {
	Role              string   `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	Location          string   `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	LanguagesRequired []string `json:"language_required,omitempty" yaml:"language_required,omitempty" mapstructure:"language_required"`
	LanguagesExcluded []string `json:"exclude_language,omitempty" yaml:"exclude_language,omitempty" mapstructure:"exclude_language"`
	Keywords          []string `json:"keywords,omitempty" yaml:"keywords,omitempty" mapstructure:"keywords"`
	Remote            *bool    `json:"remote,omitempty" yaml:"remote,omitempty" mapstructure:"remote"`
	// SalaryMin and SalaryMax are advisory. Matching does not use them.
	SalaryMin *float64 `json:"salary_min,omitempty" yaml:"salary_min,omitempty" mapstructure:"salary_min"`
	SalaryMax *float64 `json:"salary_max,omitempty" yaml:"salary_max,omitempty" mapstructure:"salary_max"`
}

// IsEmpty reports whether no criterion is set.
func (f FilterSet) IsEmpty() bool {
	return f.Role == "" &&
		f.Location == "" &&
		len(f.LanguagesRequired) == 0 &&
		len(f.LanguagesExcluded) == 0 &&
		len(f.Keywords) == 0 &&
		!f.WantsRemote() &&
		isZeroNumber(f.SalaryMin) &&
		isZeroNumber(f.SalaryMax)
}

// WantsRemote reports whether the remote criterion is set to true.
func (f FilterSet) WantsRemote() bool {
	return f.Remote != nil && *f.Remote
}

// Clone returns a deep copy so callers can never mutate a compiled set.
func (f FilterSet) Clone() FilterSet {
	out := f
	out.LanguagesRequired = slices.Clone(f.LanguagesRequired)
	out.LanguagesExcluded = slices.Clone(f.LanguagesExcluded)
	out.Keywords = slices.Clone(f.Keywords)
	if f.Remote != nil {
		v := *f.Remote
		out.Remote = &v
	}
	if f.SalaryMin != nil {
		v := *f.SalaryMin
		out.SalaryMin = &v
	}
	if f.SalaryMax != nil {
		v := *f.SalaryMax
		out.SalaryMax = &v
	}
	return out
}

func isZeroNumber(v *float64) bool {
	return v == nil || *v == 0
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Number returns a pointer to v.
func Number(v float64) *float64 {
	return &v
}

// Package finder runs a job search end to end: compile the query, fetch every
// source, then filter and dedupe the postings.
package finder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/errors"
	"github.com/spigell/job-finder/internal/filtering"
	"github.com/spigell/job-finder/internal/jobs"
	"github.com/spigell/job-finder/internal/logger"
)

type Config struct {
	ExcludedCompanies []string
	// DisabledSteps lists filter step names to skip.
	DisabledSteps []string
}

type Deps struct {
	// Extractor is the primary query extractor. Nil means heuristic only.
	Extractor criteria.Extractor
	Sources   []boards.Source
	Logger    *zap.Logger
}

// Finder holds no per-search state and may run searches concurrently.
type Finder struct {
	cfg       Config
	extractor criteria.Extractor
	sources   []boards.Source
	logger    *zap.Logger
}

// Result is the outcome of one search.
type Result struct {
	RunID    string
	Query    string
	Filters  criteria.FilterSet
	Path     criteria.Path
	Fetched  int
	Reports  []boards.Report
	Postings *jobs.Postings
}

func New(cfg Config, deps Deps) (*Finder, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sources := make([]boards.Source, 0, len(deps.Sources))
	for _, source := range deps.Sources {
		if source != nil {
			sources = append(sources, source)
		}
	}
	if len(sources) == 0 {
		return nil, errors.InvalidInput("at least one job source is required", nil)
	}

	return &Finder{
		cfg:       cfg,
		extractor: deps.Extractor,
		sources:   sources,
		logger:    log,
	}, nil
}

// Sources returns the names of the sources in fetch order.
func (f *Finder) Sources() []string {
	names := make([]string, 0, len(f.sources))
	for _, source := range f.sources {
		names = append(names, source.Name())
	}
	return names
}

// Compile only turns the query into filters, without fetching anything.
func (f *Finder) Compile(ctx context.Context, query string) (criteria.FilterSet, criteria.Path) {
	return criteria.NewCompiler(f.extractor, f.logger).CompileWithPath(ctx, query)
}

func (f *Finder) Search(ctx context.Context, query string) (*Result, error) {
	runID := uuid.NewString()
	log := logger.WithRunID(f.logger, runID)

	log.Info("starting the search", zap.String("query", query), zap.Strings("sources", f.Sources()))

	filters, path := criteria.NewCompiler(f.extractor, log).CompileWithPath(ctx, query)
	log.Info("compiled filters", zap.String("path", string(path)), zap.Any("filters", filters))

	fetched, reports := boards.NewAggregator(log, f.sources...).FetchAll(ctx, filters)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search abandoned: %w", err)
	}

	result := &Result{
		RunID:   runID,
		Query:   query,
		Filters: filters,
		Path:    path,
		Fetched: fetched.Len(),
		Reports: reports,
	}

	postings, err := filtering.Run(ctx, f.filteringConfig(), filtering.Deps{Logger: log, Filters: filters}, f.steps(), fetched)
	if err != nil {
		return nil, fmt.Errorf("filtering postings: %w", err)
	}
	result.Postings = postings

	log.Info("search finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("matched", postings.Len()),
		zap.Strings("failed_sources", result.FailedSources()),
	)

	return result, nil
}

// Describe reports the filter steps a search would run.
func (f *Finder) Describe() ([]filtering.Status, error) {
	steps := f.steps()
	cfg := f.filteringConfig()
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return filtering.Describe(steps), nil
}

// steps builds a fresh chain for every call since filters keep validated config.
func (f *Finder) steps() []filtering.Filter {
	steps := filtering.DefaultSteps()
	for _, name := range f.cfg.DisabledSteps {
		filtering.DisableByName(steps, strings.TrimSpace(name), "disabled in config")
	}
	return steps
}

func (f *Finder) filteringConfig() *filtering.Config {
	return &filtering.Config{ExcludedCompanies: f.cfg.ExcludedCompanies}
}

// FailedSources returns the names of sources that reported an error.
func (r *Result) FailedSources() []string {
	var failed []string
	for _, report := range r.Reports {
		if report.Err != nil {
			failed = append(failed, report.Source)
		}
	}
	return failed
}

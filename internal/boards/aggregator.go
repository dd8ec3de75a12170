package boards

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/jobs"
	"github.com/spigell/job-finder/internal/logger"
)

// Report describes what one source contributed to a fetch.
type Report struct {
	Source   string
	Postings int
	Err      error
}

// Aggregator fans out to every source and concatenates their postings in
// source order.
type Aggregator struct {
	sources []Source
	logger  *zap.Logger
}

func NewAggregator(log *zap.Logger, sources ...Source) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}

	registered := make([]Source, 0, len(sources))
	for _, source := range sources {
		if source != nil {
			registered = append(registered, source)
		}
	}

	return &Aggregator{
		sources: registered,
		logger:  log,
	}
}

// Sources returns the names of the registered sources in fetch order.
func (a *Aggregator) Sources() []string {
	names := make([]string, 0, len(a.sources))
	for _, source := range a.sources {
		names = append(names, source.Name())
	}
	return names
}

// FetchAll never fails. A source that errors or panics contributes nothing and
// is reported with its error.
func (a *Aggregator) FetchAll(ctx context.Context, filters criteria.FilterSet) (*jobs.Postings, []Report) {
	results := make([]*jobs.Postings, len(a.sources))
	reports := make([]Report, len(a.sources))

	var g errgroup.Group
	for i, source := range a.sources {
		g.Go(func() error {
			results[i], reports[i] = a.fetch(ctx, source, filters)
			return nil
		})
	}
	_ = g.Wait()

	all := &jobs.Postings{}
	for _, postings := range results {
		all.Append(postings)
	}

	a.logger.Info("fetched postings",
		zap.Int("sources", len(a.sources)),
		zap.Int("postings", all.Len()),
	)

	return all, reports
}

func (a *Aggregator) fetch(ctx context.Context, source Source, filters criteria.FilterSet) (postings *jobs.Postings, report Report) {
	name := source.Name()
	log := logger.WithFields(a.logger, logger.SourceFields(name, "")...)
	report.Source = name

	defer func() {
		if r := recover(); r != nil {
			report.Err = fmt.Errorf("source %s panicked: %v", name, r)
			log.Warn("source failed", zap.Error(report.Err))
			postings = nil
			report.Postings = 0
		}
	}()

	postings, err := source.Fetch(ctx, filters)
	if err != nil {
		report.Err = fmt.Errorf("fetching %s: %w", name, err)
		log.Warn("source failed", zap.Error(err))
		return nil, report
	}

	report.Postings = postings.Len()
	log.Debug("source fetched", zap.Int("postings", report.Postings))

	return postings, report
}

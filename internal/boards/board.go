package boards

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/errors"
	"github.com/spigell/job-finder/internal/jobs"
	"github.com/spigell/job-finder/internal/logger"
)

// BoardSource fetches a fixed list of company boards of one family. A failing
// board is logged and skipped; it never fails the whole source.
type BoardSource struct {
	family  Family
	baseURL string

	companies []Company
	workers   int
	limiter   *rate.Limiter

	client *Client
	logger *zap.Logger
}

func NewBoardSource(family Family, defaultBaseURL string, cfg BoardConfig, client *Client, log *zap.Logger) *BoardSource {
	if log == nil {
		log = zap.NewNop()
	}
	if client == nil {
		client = NewClient(0, "", log)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	pause := cfg.Pause
	if pause == 0 {
		pause = defaultPause
	}
	limit := rate.Inf
	if pause > 0 {
		limit = rate.Every(pause)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &BoardSource{
		family:    family,
		baseURL:   baseURL,
		companies: normalizeCompanies(cfg.Companies),
		workers:   workers,
		limiter:   rate.NewLimiter(limit, 1),
		client:    client,
		logger:    logger.WithFields(log, zap.String(logger.FieldSource, family.Tag())),
	}
}

func (s *BoardSource) Name() string {
	return s.family.Tag()
}

// Companies returns the configured boards in fetch order.
func (s *BoardSource) Companies() []Company {
	return append([]Company(nil), s.companies...)
}

// Fetch ignores the filters: boards are listed in full and matched later.
func (s *BoardSource) Fetch(ctx context.Context, _ criteria.FilterSet) (*jobs.Postings, error) {
	results := make([][]*jobs.Posting, len(s.companies))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, co := range s.companies {
		g.Go(func() error {
			results[i] = s.fetchCompany(ctx, co)
			return nil
		})
	}
	_ = g.Wait()

	postings := &jobs.Postings{}
	for _, items := range results {
		postings.Items = append(postings.Items, items...)
	}

	s.logger.Debug("fetched source",
		zap.Int("boards", len(s.companies)),
		zap.Int("postings", postings.Len()),
	)

	return postings, ctx.Err()
}

func (s *BoardSource) fetchCompany(ctx context.Context, co Company) (postings []*jobs.Posting) {
	log := logger.WithFields(s.logger, zap.String(logger.FieldBoard, co.Slug))

	defer func() {
		if r := recover(); r != nil {
			log.Warn("board fetch panicked", zap.Any("panic", r))
			postings = nil
		}
	}()

	if err := s.limiter.Wait(ctx); err != nil {
		log.Debug("board fetch abandoned", zap.Error(err))
		return nil
	}

	data, err := s.client.Get(ctx, s.family.Endpoint(s.baseURL, co), nil)
	if err != nil {
		if code := errors.StatusCode(err); code != 0 {
			log.Debug("skipping board", zap.Int("status", code))
			return nil
		}
		log.Warn("fetching board failed", zap.Error(err))
		return nil
	}

	postings, err = s.family.Decode(co, data)
	if err != nil {
		log.Warn("decoding board failed", zap.Error(fmt.Errorf("%s: %w", co.Slug, err)))
		return nil
	}

	log.Debug("fetched board", zap.Int("postings", len(postings)))
	return postings
}

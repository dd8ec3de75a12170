package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/ai"
	"github.com/spigell/job-finder/internal/ai/gemini"
	"github.com/spigell/job-finder/internal/boards"
	"github.com/spigell/job-finder/internal/boards/googlejobs"
	"github.com/spigell/job-finder/internal/boards/greenhouse"
	"github.com/spigell/job-finder/internal/boards/lever"
	"github.com/spigell/job-finder/internal/boards/workable"
	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/errors"
	"github.com/spigell/job-finder/internal/finder"
	"github.com/spigell/job-finder/internal/secrets"
)

const (
	geminiKeyringAccount  = "gemini"
	serpapiKeyringAccount = "serpapi"
)

func newFinder(ctx context.Context, config *Config, noAI bool, logger *zap.Logger) (*finder.Finder, error) {
	extractor, err := newExtractor(ctx, config.AI, noAI, logger)
	if err != nil {
		return nil, err
	}

	cfg := finder.Config{}
	if config.Exclude != nil {
		cfg.ExcludedCompanies = config.Exclude.Companies
	}
	if config.Filters != nil {
		cfg.DisabledSteps = config.Filters.Disabled
	}

	return finder.New(cfg, finder.Deps{
		Extractor: extractor,
		Sources:   newSources(config, logger),
		Logger:    logger,
	})
}

// newExtractor returns the primary extractor. Unless ai.required is set, any
// problem with the model downgrades to heuristic extraction.
func newExtractor(ctx context.Context, cfg *AIConfig, noAI bool, logger *zap.Logger) (criteria.Extractor, error) {
	if noAI {
		return ai.Disabled{Reason: "ai extraction disabled by flag"}, nil
	}
	if cfg == nil || !cfg.Enabled {
		return ai.Disabled{Reason: "ai extraction disabled in config"}, nil
	}

	fail := func(err error) (criteria.Extractor, error) {
		if cfg.Required {
			return nil, err
		}
		logger.Warn("ai extraction disabled, using heuristic filters",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file in the configuration file"),
		)
		return ai.Disabled{Reason: err.Error()}, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return fail(errors.InvalidInput(fmt.Sprintf("unsupported ai provider: %s", cfg.Provider), nil))
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:           "gemini api key",
		Value:          gcfg.APIKey,
		File:           gcfg.APIKeyFile,
		KeyringAccount: geminiKeyringAccount,
	})
	if err != nil {
		return fail(errors.Unauthorized("loading gemini api key", err))
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model)
	if err != nil {
		return fail(errors.Internal("creating gemini client", err))
	}

	return gemini.NewExtractor(generator, logger, gemini.Options{
		Model:        generator.Model(),
		Timeout:      gcfg.Timeout,
		MaxLogLength: gcfg.MaxLogLength,
	}), nil
}

func newSources(config *Config, logger *zap.Logger) []boards.Source {
	cfg := config.Sources
	if cfg == nil {
		cfg = &SourcesConfig{}
	}

	client := boards.NewClient(cfg.Timeout, config.UserAgent, logger)
	boardConfig := func(b *BoardConfig) boards.BoardConfig {
		return boards.BoardConfig{
			Companies: b.Companies,
			Pause:     cfg.Pause,
			Workers:   cfg.Workers,
		}
	}

	var sources []boards.Source
	if enabled(cfg.Greenhouse) {
		sources = append(sources, greenhouse.New(boardConfig(cfg.Greenhouse), client, logger))
	}
	if enabled(cfg.Lever) {
		sources = append(sources, lever.New(boardConfig(cfg.Lever), client, logger))
	}
	if enabled(cfg.Workable) {
		sources = append(sources, workable.New(boardConfig(cfg.Workable), client, logger))
	}

	if google := newGoogleJobs(cfg.GoogleJobs, client, logger); google != nil {
		sources = append(sources, google)
	}

	return sources
}

func enabled(b *BoardConfig) bool {
	return b != nil && b.Enabled
}

// newGoogleJobs returns nil when no SerpApi key is available.
func newGoogleJobs(cfg *GoogleJobsConfig, client *boards.Client, logger *zap.Logger) boards.Source {
	if cfg == nil {
		cfg = &GoogleJobsConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:           "serpapi api key",
		Value:          cfg.APIKey,
		File:           cfg.APIKeyFile,
		KeyringAccount: serpapiKeyringAccount,
	})
	if err != nil {
		logger.Info("google jobs source disabled", zap.String("reason", err.Error()))
		return nil
	}

	return googlejobs.New(googlejobs.Config{APIKey: apiKey, Language: cfg.Language}, client, logger)
}

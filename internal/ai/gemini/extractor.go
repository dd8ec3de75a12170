package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/ai"
	"github.com/spigell/job-finder/internal/criteria"
	"github.com/spigell/job-finder/internal/logger"
	"github.com/spigell/job-finder/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength = 200
	defaultTimeout      = 30 * time.Second
	messagePrefix       = "Parse this job search query: "
)

type Options struct {
	Model        string
	Timeout      time.Duration
	MaxLogLength int
}

// Extractor asks Gemini to turn a query into a FilterSet. It implements
// criteria.Extractor and reports every failure as not produced.
type Extractor struct {
	generator contentGenerator
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

func NewExtractor(generator contentGenerator, log *zap.Logger, opts Options) *Extractor {
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Extractor{
		generator: generator,
		timeout:   opts.Timeout,
		maxLogLen: opts.MaxLogLength,
		logger:    logger.WithCommonFields(log, ai.ProviderGemini, opts.Model),
	}
}

func (e *Extractor) Extract(ctx context.Context, query string) criteria.Extraction {
	if e == nil || e.generator == nil {
		return criteria.NotProduced("gemini generator is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	message := messagePrefix + strings.TrimSpace(query)

	e.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		e.logger.Warn("gemini request failed", zap.Error(err))
		return criteria.NotProduced(fmt.Sprintf("gemini request failed: %v", err))
	}

	e.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	filters, err := parseResponse(raw)
	if err != nil {
		e.logger.Warn("unusable gemini response", zap.Error(err))
		return criteria.NotProduced(err.Error())
	}

	return criteria.Produced(filters)
}

func parseResponse(raw string) (criteria.FilterSet, error) {
	var filters criteria.FilterSet

	cleaned := extractJSON(raw)
	if cleaned == "" {
		return filters, fmt.Errorf("parse gemini response: empty response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return filters, fmt.Errorf("parse gemini response: %w", err)
	}
	if data == nil {
		return filters, fmt.Errorf("parse gemini response: not a json object")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &filters,
	})
	if err != nil {
		return filters, fmt.Errorf("create filters decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return criteria.FilterSet{}, fmt.Errorf("decode gemini filters: %w", err)
	}

	filters.Role = strings.TrimSpace(filters.Role)
	filters.Location = strings.TrimSpace(filters.Location)
	filters.LanguagesRequired = compact(filters.LanguagesRequired)
	filters.LanguagesExcluded = compact(filters.LanguagesExcluded)
	filters.Keywords = compact(filters.Keywords)

	return filters, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

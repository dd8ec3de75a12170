package criteria

import (
	"context"

	"go.uber.org/zap"
)

// Extractor is a primary, usually remote, query extractor. It must never fail:
// every problem is reported as NotProduced.
type Extractor interface {
	Extract(ctx context.Context, query string) Extraction
}

// Path names the way a FilterSet was compiled.
type Path string

const (
	PathHeuristic Path = "heuristic"
	PathMerged    Path = "merged"
)

// Compiler combines a primary extractor with the heuristic fallback.
type Compiler struct {
	primary   Extractor
	heuristic Heuristic
	logger    *zap.Logger
}

// NewCompiler creates a compiler. A nil primary extractor means heuristic only.
func NewCompiler(primary Extractor, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Compiler{
		primary: primary,
		logger:  logger,
	}
}

// Compile turns the query into a FilterSet.
func (c *Compiler) Compile(ctx context.Context, query string) FilterSet {
	filters, _ := c.CompileWithPath(ctx, query)
	return filters
}

// CompileWithPath is Compile that also reports which path produced the result.
func (c *Compiler) CompileWithPath(ctx context.Context, query string) (FilterSet, Path) {
	extraction := NotProduced("no primary extractor configured")
	if c.primary != nil {
		extraction = c.primary.Extract(ctx, query)
	}

	heuristic := c.heuristic.Extract(query)

	if !extraction.Produced {
		c.logger.Info("using heuristic filters",
			zap.String("reason", extraction.Reason),
		)
		return heuristic, PathHeuristic
	}

	merged := Merge(extraction.Filters, heuristic)
	c.logger.Debug("merged ai and heuristic filters",
		zap.Any("ai", extraction.Filters),
		zap.Any("heuristic", heuristic),
		zap.Any("merged", merged),
	)

	return merged, PathMerged
}

package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrModelIncompatible means no embedding provider produces vectors of
// the dimension the artifact's scaler was fitted on. It is fatal at
// startup; the engine can still serve questionnaire-only scoring.
var ErrModelIncompatible = errors.New("artifact: no compatible embedding provider")

// Embedder turns text into a fixed-width semantic vector. Implementations
// must be safe for concurrent use.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// probeText is a short fixed phrase used to verify a provider's output
// dimension at startup.
const probeText = "teste"

// ResolveEmbedder picks the provider the artifact will use. The provider
// matching the artifact's declared identity is tried first, then the
// remaining candidates in order; the first whose output dimension matches
// the scaler's expectation wins. Failing candidates are logged and
// skipped.
func ResolveEmbedder(ctx context.Context, a *Artifact, candidates []Embedder, logger *slog.Logger) (Embedder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	desc := a.EmbedderDescriptor()
	wantDim := a.EmbeddingDim()

	ordered := make([]Embedder, 0, len(candidates))
	for _, c := range candidates {
		if c.Name() == desc.Name {
			ordered = append(ordered, c)
		}
	}
	for _, c := range candidates {
		if c.Name() != desc.Name {
			ordered = append(ordered, c)
		}
	}

	for _, c := range ordered {
		vec, err := c.Embed(ctx, probeText)
		if err != nil {
			logger.Warn("embedding provider probe failed",
				"provider", c.Name(),
				"error", err,
			)
			continue
		}
		if len(vec) != wantDim {
			logger.Warn("embedding provider dimension mismatch",
				"provider", c.Name(),
				"dim", len(vec),
				"expected", wantDim,
			)
			continue
		}
		logger.Info("embedding provider resolved",
			"provider", c.Name(),
			"dim", len(vec),
		)
		return c, nil
	}
	return nil, fmt.Errorf("%w: wanted %q dim %d among %d candidates",
		ErrModelIncompatible, desc.Name, wantDim, len(candidates))
}

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/trilhasedu/interest-engine/internal/artifact"
	"github.com/trilhasedu/interest-engine/internal/cache"
)

// TextClassifier turns processed free text into a per-area score map
// using the pretrained artifact. Runtime failures degrade to an empty
// map: the mapping request survives on the questionnaire signal alone.
type TextClassifier struct {
	art       *artifact.Artifact
	embedder  artifact.Embedder
	extractor *TextFeatureExtractor
	cache     *cache.EmbeddingCache
	logger    *slog.Logger
	timeout   time.Duration
	minChars  int
}

// NewTextClassifier wires a classifier to an artifact and a resolved
// embedding provider. The embedder is assumed dimension-checked at
// startup via artifact.ResolveEmbedder.
func NewTextClassifier(art *artifact.Artifact, embedder artifact.Embedder, extractor *TextFeatureExtractor, cfg Config) *TextClassifier {
	cfg = cfg.withDefaults()
	return &TextClassifier{
		art:       art,
		embedder:  embedder,
		extractor: extractor,
		logger:    slog.Default(),
		timeout:   15 * time.Second,
		minChars:  cfg.MinTextChars,
	}
}

// SetLogger overrides the default logger.
func (c *TextClassifier) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetCache installs an embedding cache. Nil disables caching.
func (c *TextClassifier) SetCache(embCache *cache.EmbeddingCache) {
	c.cache = embCache
}

// SetInferenceTimeout bounds one embed-and-predict round trip. On
// timeout the classifier degrades exactly as on failure.
func (c *TextClassifier) SetInferenceTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Classify scores processed text against every area. Texts shorter than
// the minimum never reach the model; the signal is too thin to trust.
func (c *TextClassifier) Classify(ctx context.Context, processed string) ScoreMap {
	if utf8.RuneCountInString(processed) < c.minChars {
		return ScoreMap{}
	}

	scores, err := c.classify(ctx, processed)
	if err != nil {
		c.logger.Warn("text classification failed, continuing without text signal",
			"error", err,
			"text_length", utf8.RuneCountInString(processed),
		)
		return ScoreMap{}
	}
	return scores
}

func (c *TextClassifier) classify(ctx context.Context, processed string) (ScoreMap, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	embedding, err := c.embed(ctx, processed)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	manual := c.extractor.BuildFeatureVector(processed)
	features := make([]float64, 0, len(embedding)+len(manual))
	features = append(features, embedding...)
	features = append(features, manual...)

	scaled, err := c.art.Transform(features)
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}

	probs, err := c.art.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	labels := c.art.Labels()
	if len(probs) != len(labels) {
		return nil, fmt.Errorf("predict: %d probabilities for %d labels", len(probs), len(labels))
	}

	scores := make(ScoreMap, len(labels))
	for i, label := range labels {
		scores[label] = probs[i]
	}
	return scores.Normalize(), nil
}

func (c *TextClassifier) embed(ctx context.Context, processed string) ([]float64, error) {
	if c.cache != nil {
		key := c.cache.Key(processed)
		if vec, ok := c.cache.Get(key); ok {
			return vec, nil
		}
		vec, err := c.embedder.Embed(ctx, processed)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, vec)
		return vec, nil
	}
	return c.embedder.Embed(ctx, processed)
}

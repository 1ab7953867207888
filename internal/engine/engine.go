package engine

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/trilhasedu/interest-engine/internal/artifact"
	"github.com/trilhasedu/interest-engine/internal/cache"
	"github.com/trilhasedu/interest-engine/internal/catalog"
)

// Engine orchestrates the hybrid pipeline behind one operation,
// MapInterests. It holds no mutable state beyond the injected cache, so
// concurrent calls are safe as long as the embedding provider is.
type Engine struct {
	cfg        Config
	scorer     *QuestionnaireScorer
	extractor  *TextFeatureExtractor
	classifier *TextClassifier
	quality    *TextQualityEstimator
	combiner   *ScoreCombiner
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEmbeddingCache installs an embedding cache on the text channel.
func WithEmbeddingCache(c *cache.EmbeddingCache) Option {
	return func(e *Engine) {
		if e.classifier != nil {
			e.classifier.SetCache(c)
		}
	}
}

// WithInferenceTimeout bounds the embedding/inference step.
func WithInferenceTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if e.classifier != nil {
			e.classifier.SetInferenceTimeout(d)
		}
	}
}

// New builds an engine. A nil artifact or embedder disables the text
// channel: the engine serves questionnaire-only mappings, which is the
// mandated degradation when no compatible model can be loaded.
func New(cfg Config, art *artifact.Artifact, embedder artifact.Embedder, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:      cfg,
		scorer:   NewQuestionnaireScorer(cfg),
		combiner: NewScoreCombiner(cfg),
		logger:   slog.Default(),
	}
	if art != nil {
		e.extractor = NewTextFeatureExtractor(art)
		e.quality = NewTextQualityEstimator(art)
		if embedder != nil {
			e.classifier = NewTextClassifier(art, embedder, e.extractor, cfg)
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.classifier != nil {
		e.classifier.SetLogger(e.logger)
	}
	return e
}

// TextEnabled reports whether the free-text channel is active.
func (e *Engine) TextEnabled() bool { return e.classifier != nil }

// MapInterests validates and scores a submission, classifies the free
// text when present and long enough, and fuses both signals into an
// explainable result. Validation failures reject the whole call.
func (e *Engine) MapInterests(ctx context.Context, cat *catalog.Catalog, responses []catalog.Response, freeText string) (*MappingResult, error) {
	questionnaireScores, err := e.scorer.Score(cat, responses)
	if err != nil {
		return nil, err
	}

	result := &MappingResult{
		QuestionnaireScores: questionnaireScores,
		TextScores:          ScoreMap{},
		TextQuality:         0.0,
	}

	if e.classifier != nil && freeText != "" {
		processed := e.extractor.Preprocess(freeText)
		if utf8.RuneCountInString(processed) >= e.cfg.MinTextChars {
			result.TextQuality = e.quality.Estimate(freeText, processed)
			result.TextScores = e.classifier.Classify(ctx, processed)
		}
	}

	result.CombinedScores = e.combiner.Combine(result.QuestionnaireScores, result.TextScores, result.TextQuality)

	ranked := result.CombinedScores.Ranked()
	if len(ranked) > 0 {
		result.RecommendedArea = ranked[0]
		result.Confidence = result.CombinedScores[ranked[0]]
	}

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	result.Top3 = make([]AreaScore, 0, len(top))
	for _, area := range top {
		score := result.CombinedScores[area]
		result.Top3 = append(result.Top3, AreaScore{
			Area:                      area,
			Score:                     score,
			Percentage:                score * 100,
			QuestionnaireContribution: result.QuestionnaireScores[area],
			TextContribution:          result.TextScores[area],
		})
	}

	result.AnalysisDetails = AnalysisDetails{
		Method:                 "hybrid",
		QuestionnaireWeight:    e.cfg.QuestionnaireWeight,
		TextWeight:             e.cfg.TextWeight * result.TextQuality,
		AreasFromQuestionnaire: countPositive(result.QuestionnaireScores),
		AreasFromText:          countPositive(result.TextScores),
		AgreementScore:         agreementScore(result.QuestionnaireScores, result.TextScores),
	}

	return result, nil
}

// agreementScore measures top-3 overlap between the two channels as a
// cross-validation signal; 0 when either side is empty.
func agreementScore(a, b ScoreMap) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	topA := a.Top(3)
	topB := make(map[string]struct{}, 3)
	for _, area := range b.Top(3) {
		topB[area] = struct{}{}
	}
	var overlap int
	for _, area := range topA {
		if _, ok := topB[area]; ok {
			overlap++
		}
	}
	return float64(overlap) / 3.0
}

func countPositive(m ScoreMap) int {
	var n int
	for _, v := range m {
		if v > 0 {
			n++
		}
	}
	return n
}

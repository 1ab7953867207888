package artifact

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-json"
)

// Spec is the on-disk JSON form of a trained artifact, exported from the
// training pipeline.
type Spec struct {
	Labels           []string                      `json:"labels"`
	ScalerMean       []float64                     `json:"scaler_mean"`
	ScalerScale      []float64                     `json:"scaler_scale"`
	KeywordWeights   map[string]map[string]float64 `json:"keyword_weights"`
	CategoryPatterns map[string][]string           `json:"category_patterns"`
	CategoryVocab    map[string][]string           `json:"category_vocab"`
	Embedder         Descriptor                    `json:"embedder"`
	Coefficients     [][]float64                   `json:"coefficients"`
	Intercepts       []float64                     `json:"intercepts"`
}

// Load reads and validates an artifact file.
func Load(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: read %s: %w", path, err)
	}
	var spec Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("artifact: decode %s: %w", path, err)
	}
	return FromSpec(spec)
}

// FromSpec builds an immutable Artifact from its serialized form,
// compiling patterns and checking every dimension up front so per-request
// code never revalidates.
func FromSpec(spec Spec) (*Artifact, error) {
	if len(spec.Labels) == 0 {
		return nil, fmt.Errorf("artifact: no labels")
	}
	if len(spec.ScalerMean) == 0 || len(spec.ScalerMean) != len(spec.ScalerScale) {
		return nil, fmt.Errorf("artifact: scaler mean/scale length mismatch (%d vs %d)",
			len(spec.ScalerMean), len(spec.ScalerScale))
	}
	if len(spec.Coefficients) != len(spec.Labels) {
		return nil, fmt.Errorf("artifact: %d coefficient rows for %d labels",
			len(spec.Coefficients), len(spec.Labels))
	}
	if len(spec.Intercepts) != len(spec.Labels) {
		return nil, fmt.Errorf("artifact: %d intercepts for %d labels",
			len(spec.Intercepts), len(spec.Labels))
	}
	for i, row := range spec.Coefficients {
		if len(row) != len(spec.ScalerMean) {
			return nil, fmt.Errorf("artifact: coefficient row %d has %d values, scaler expects %d",
				i, len(row), len(spec.ScalerMean))
		}
	}

	a := &Artifact{
		labels: append([]string(nil), spec.Labels...),
		scaler: StandardScaler{
			Mean:  append([]float64(nil), spec.ScalerMean...),
			Scale: append([]float64(nil), spec.ScalerScale...),
		},
		keywords: make(map[string]map[string]float64, len(spec.KeywordWeights)),
		patterns: make(map[string][]*regexp.Regexp, len(spec.CategoryPatterns)),
		vocab:    make(map[string]map[string]struct{}, len(spec.CategoryVocab)),
		embedder: spec.Embedder,
		head: logisticHead{
			coef:      spec.Coefficients,
			intercept: spec.Intercepts,
		},
	}

	for term, weights := range spec.KeywordWeights {
		w := make(map[string]float64, len(weights))
		for area, weight := range weights {
			w[area] = weight
		}
		a.keywords[term] = w
	}
	a.terms = sortedKeys(a.keywords)

	for area, patterns := range spec.CategoryPatterns {
		compiled := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("artifact: pattern %q for %s: %w", p, area, err)
			}
			compiled = append(compiled, re)
		}
		a.patterns[area] = compiled
	}

	for area, words := range spec.CategoryVocab {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		a.vocab[area] = set
	}
	a.areaOrder = sortedKeys(a.vocab)

	if len(a.areaOrder) == 0 {
		return nil, fmt.Errorf("artifact: empty category vocabulary")
	}
	if a.EmbeddingDim() <= 0 {
		return nil, fmt.Errorf("artifact: scaler dimension %d leaves no room for embeddings (manual block is %d)",
			a.FeatureDim(), a.ManualFeatureCount())
	}
	if a.embedder.Dim != 0 && a.embedder.Dim != a.EmbeddingDim() {
		return nil, fmt.Errorf("artifact: embedder descriptor dim %d disagrees with scaler-derived dim %d",
			a.embedder.Dim, a.EmbeddingDim())
	}
	return a, nil
}

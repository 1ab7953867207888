package engine

import (
	"strings"

	"github.com/trilhasedu/interest-engine/internal/artifact"
)

// TextQualityEstimator scores how much the text channel should be
// trusted, independently of the classifier's own confidence.
type TextQualityEstimator struct {
	art *artifact.Artifact
}

// NewTextQualityEstimator creates an estimator bound to the artifact's
// keyword table.
func NewTextQualityEstimator(art *artifact.Artifact) *TextQualityEstimator {
	return &TextQualityEstimator{art: art}
}

// Estimate returns a [0,1] trust factor as the mean of four sub-factors:
// length adequacy, lexical diversity, keyword density, and structural
// punctuation. Word-based factors use the processed text; punctuation is
// checked on the raw text since preprocessing strips it.
func (e *TextQualityEstimator) Estimate(raw, processed string) float64 {
	if processed == "" {
		return 0.0
	}

	words := strings.Fields(processed)
	wordCount := len(words)
	unique := make(map[string]struct{}, wordCount)
	for _, w := range words {
		unique[w] = struct{}{}
	}

	factors := make([]float64, 0, 4)

	// Length adequacy: 20-200 words is the sweet spot.
	switch {
	case wordCount < 10:
		factors = append(factors, 0.3)
	case wordCount < 20:
		factors = append(factors, 0.6)
	case wordCount <= 200:
		factors = append(factors, 1.0)
	default:
		factors = append(factors, 0.8)
	}

	// Lexical diversity, doubled and capped.
	diversity := float64(len(unique)) / float64(wordCount)
	factors = append(factors, minFloat(diversity*2, 1.0))

	// Keyword density, scaled up and capped.
	var keywordWords int
	for _, w := range words {
		if e.art != nil && e.art.HasTerm(w) {
			keywordWords++
		}
	}
	density := float64(keywordWords) / float64(wordCount)
	factors = append(factors, minFloat(density*10, 1.0))

	// Structure: any sentence punctuation at all.
	if strings.ContainsAny(raw, ".,!?;:") {
		factors = append(factors, 1.0)
	} else {
		factors = append(factors, 0.7)
	}

	var sum float64
	for _, f := range factors {
		sum += f
	}
	return sum / float64(len(factors))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

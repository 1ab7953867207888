package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateEmptyText(t *testing.T) {
	estimator := NewTextQualityEstimator(newTestArtifact(t))
	assert.Zero(t, estimator.Estimate("", ""))
}

func TestEstimateLengthCurve(t *testing.T) {
	estimator := NewTextQualityEstimator(newTestArtifact(t))

	// Repeated single word: diversity and keyword factors collapse, the
	// punctuation factor is 0.7, so only the length factor moves.
	lengthFactor := func(words int) float64 {
		text := strings.TrimSpace(strings.Repeat("bla ", words))
		q := estimator.Estimate(text, text)
		diversity := minFloat(2.0/float64(words), 1.0)
		return q*4 - diversity - 0.0 - 0.7
	}

	assert.InDelta(t, 0.3, lengthFactor(5), 1e-9)
	assert.InDelta(t, 0.6, lengthFactor(15), 1e-9)
	assert.InDelta(t, 1.0, lengthFactor(50), 1e-9)
	assert.InDelta(t, 0.8, lengthFactor(250), 1e-9)
}

func TestEstimatePunctuationFactor(t *testing.T) {
	estimator := NewTextQualityEstimator(newTestArtifact(t))

	// Same processed text; only the raw text differs by punctuation.
	processed := "gosto muito de programar jogos"
	plain := estimator.Estimate("gosto muito de programar jogos", processed)
	punctuated := estimator.Estimate("gosto muito de programar jogos.", processed)

	assert.InDelta(t, 0.3/4, punctuated-plain, 1e-9)
}

func TestEstimateKeywordDensityCapped(t *testing.T) {
	estimator := NewTextQualityEstimator(newTestArtifact(t))

	// Every word is a known keyword: density factor saturates at 1.0,
	// keeping the overall estimate within [0,1].
	text := "programar desenhar jogo programar desenhar jogo programar desenhar jogo programar"
	q := estimator.Estimate(text, text)
	assert.GreaterOrEqual(t, q, 0.0)
	assert.LessOrEqual(t, q, 1.0)
}

func TestEstimateBounds(t *testing.T) {
	estimator := NewTextQualityEstimator(newTestArtifact(t))

	texts := []string{
		"a",
		"gosto de programar.",
		strings.Repeat("palavras diferentes aqui agora sim ", 60),
	}
	for _, text := range texts {
		q := estimator.Estimate(text, text)
		assert.GreaterOrEqual(t, q, 0.0, text)
		assert.LessOrEqual(t, q, 1.0, text)
	}
}

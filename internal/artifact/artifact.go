// Package artifact models the pretrained classification resource the
// engine treats as read-only input: label order, feature scaler, keyword
// and pattern tables, and the probability head. The artifact is loaded
// once at process start and is immutable afterwards.
package artifact

import (
	"fmt"
	"math"
	"regexp"
	"sort"
)

// Number of global linguistic features in the manual feature block.
const linguisticFeatureCount = 8

// Descriptor identifies the embedding provider the artifact was trained
// against and the output dimension it expects.
type Descriptor struct {
	Name string `json:"name"`
	Dim  int    `json:"dim"`
}

// StandardScaler applies the stored per-feature standardization
// (x - mean) / scale. Scale entries of 0 pass the centered value through.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Transform standardizes a feature vector. The input length must match
// the scaler dimension.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler: feature vector has %d values, expected %d", len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		d := v - s.Mean[i]
		if s.Scale[i] != 0 {
			d /= s.Scale[i]
		}
		out[i] = d
	}
	return out, nil
}

// Dim returns the full feature dimension the scaler was fitted on.
func (s *StandardScaler) Dim() int { return len(s.Mean) }

// logisticHead is a multinomial logistic-regression head: one coefficient
// row and intercept per label, softmaxed into a distribution.
type logisticHead struct {
	coef      [][]float64
	intercept []float64
}

func (h *logisticHead) predictProba(x []float64) ([]float64, error) {
	logits := make([]float64, len(h.coef))
	maxLogit := math.Inf(-1)
	for i, row := range h.coef {
		if len(row) != len(x) {
			return nil, fmt.Errorf("classifier: coefficient row %d has %d values, expected %d", i, len(row), len(x))
		}
		z := h.intercept[i]
		for j, c := range row {
			z += c * x[j]
		}
		logits[i] = z
		if z > maxLogit {
			maxLogit = z
		}
	}
	var sum float64
	probs := make([]float64, len(logits))
	for i, z := range logits {
		p := math.Exp(z - maxLogit)
		probs[i] = p
		sum += p
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Artifact is the immutable pretrained model bundle.
type Artifact struct {
	labels    []string
	scaler    StandardScaler
	keywords  map[string]map[string]float64
	terms     []string
	patterns  map[string][]*regexp.Regexp
	vocab     map[string]map[string]struct{}
	areaOrder []string
	embedder  Descriptor
	head      logisticHead
}

// Labels returns the classifier output order.
func (a *Artifact) Labels() []string { return a.labels }

// AreaOrder returns the fixed, sorted category order the manual feature
// block was built against. This order is part of the training contract.
func (a *Artifact) AreaOrder() []string { return a.areaOrder }

// Terms returns every keyword term in sorted order, so feature
// accumulation is deterministic across runs.
func (a *Artifact) Terms() []string { return a.terms }

// TermWeights returns the per-area weights for a keyword term.
func (a *Artifact) TermWeights(term string) map[string]float64 { return a.keywords[term] }

// HasTerm reports whether a word is a known keyword term.
func (a *Artifact) HasTerm(word string) bool {
	_, ok := a.keywords[word]
	return ok
}

// Patterns returns the compiled regex patterns for an area.
func (a *Artifact) Patterns(area string) []*regexp.Regexp { return a.patterns[area] }

// VocabSize returns the vocabulary size for an area.
func (a *Artifact) VocabSize(area string) int { return len(a.vocab[area]) }

// EmbedderDescriptor returns the embedding provider the artifact expects.
func (a *Artifact) EmbedderDescriptor() Descriptor { return a.embedder }

// FeatureDim returns the full feature dimension (embedding + manual).
func (a *Artifact) FeatureDim() int { return a.scaler.Dim() }

// ManualFeatureCount returns the size of the hand-built feature block:
// four keyword features and one pattern count per area, plus the global
// linguistic features.
func (a *Artifact) ManualFeatureCount() int {
	return len(a.areaOrder)*5 + linguisticFeatureCount
}

// EmbeddingDim returns the embedding width the scaler expects.
func (a *Artifact) EmbeddingDim() int { return a.scaler.Dim() - a.ManualFeatureCount() }

// Transform standardizes a full feature vector with the stored scaler.
func (a *Artifact) Transform(x []float64) ([]float64, error) { return a.scaler.Transform(x) }

// PredictProba maps a scaled feature vector to a probability per label,
// index-aligned with Labels.
func (a *Artifact) PredictProba(x []float64) ([]float64, error) { return a.head.predictProba(x) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trilhasedu/interest-engine/internal/artifact"
)

// testEmbeddingDim keeps test artifacts small; the manual block for two
// areas is 2*5+8 = 18 features, so the scaler sees 22.
const testEmbeddingDim = 4

// newTestArtifact builds a two-area artifact whose head puts all its
// weight on the first embedding feature of the "tecnologia" label, so
// classifier outputs are easy to reason about.
func newTestArtifact(t *testing.T) *artifact.Artifact {
	t.Helper()

	manual := 2*5 + 8
	dim := testEmbeddingDim + manual

	mean := make([]float64, dim)
	scale := make([]float64, dim)
	for i := range scale {
		scale[i] = 1
	}

	techRow := make([]float64, dim)
	techRow[0] = 1 // first embedding component drives the tech logit
	arteRow := make([]float64, dim)

	art, err := artifact.FromSpec(artifact.Spec{
		Labels:      []string{"arte", "tecnologia"},
		ScalerMean:  mean,
		ScalerScale: scale,
		KeywordWeights: map[string]map[string]float64{
			"programar": {"tecnologia": 2.0},
			"jogo":      {"tecnologia": 1.0},
			"desenhar":  {"arte": 2.0},
		},
		CategoryPatterns: map[string][]string{
			"tecnologia": {`jogos?`, `aplicativos?`},
			"arte":       {`pintura`},
		},
		CategoryVocab: map[string][]string{
			"tecnologia": {"programar", "computador", "jogo"},
			"arte":       {"desenhar", "pintar"},
		},
		Embedder:     artifact.Descriptor{Name: "stub", Dim: testEmbeddingDim},
		Coefficients: [][]float64{arteRow, techRow},
		Intercepts:   []float64{0, 0},
	})
	require.NoError(t, err)
	return art
}

// stubEmbedder returns a fixed vector or a fixed error.
type stubEmbedder struct {
	vec []float64
	err error
}

func (s stubEmbedder) Name() string { return "stub" }

func (s stubEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]float64, len(s.vec))
	copy(out, s.vec)
	return out, nil
}

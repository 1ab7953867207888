package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trilhasedu/interest-engine/internal/catalog"
)

// twoAreaCatalog maps option "t" to tecnologia and "a" to arte on each
// of three questions.
func twoAreaCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	questions := make([]catalog.Question, 0, 3)
	for id := 1; id <= 3; id++ {
		questions = append(questions, catalog.Question{
			ID:     id,
			Prompt: "q",
			Options: map[string]catalog.Option{
				"t": {Area: "tecnologia", Weight: 1.0},
				"a": {Area: "arte", Weight: 1.0},
			},
		})
	}
	cat, err := catalog.New(questions, 1)
	require.NoError(t, err)
	return cat
}

func TestMapInterestsQuestionnaireOnly(t *testing.T) {
	eng := New(Config{}, nil, nil)
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
		{QuestionID: 2, SelectedOptions: []string{"t"}},
		{QuestionID: 3, SelectedOptions: []string{"a"}},
	}, "gosto bastante de programar jogos e aplicativos")
	require.NoError(t, err)

	// Text channel disabled: combined equals questionnaire exactly.
	assert.False(t, eng.TextEnabled())
	assert.Zero(t, result.TextQuality)
	assert.Empty(t, result.TextScores)
	assert.Equal(t, result.QuestionnaireScores, result.CombinedScores)
	assert.Equal(t, "tecnologia", result.RecommendedArea)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestMapInterestsEmptyFreeText(t *testing.T) {
	eng := New(Config{}, newTestArtifact(t), stubEmbedder{vec: []float64{1, 0, 0, 0}})
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
	}, "")
	require.NoError(t, err)

	assert.Zero(t, result.TextQuality)
	assert.Empty(t, result.TextScores)
	assert.Equal(t, result.QuestionnaireScores, result.CombinedScores)
}

func TestMapInterestsShortTextSkipsTextChannel(t *testing.T) {
	eng := New(Config{}, newTestArtifact(t), stubEmbedder{err: errors.New("must not be invoked")})
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
	}, "oi!")
	require.NoError(t, err)

	assert.Zero(t, result.TextQuality)
	assert.Empty(t, result.TextScores)
	assert.Equal(t, result.QuestionnaireScores, result.CombinedScores)
}

func TestMapInterestsHybrid(t *testing.T) {
	eng := New(Config{}, newTestArtifact(t), stubEmbedder{vec: []float64{2, 0, 0, 0}})
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
		{QuestionID: 2, SelectedOptions: []string{"t"}},
	}, "gosto muito de programar e criar jogos, meu sonho é trabalhar com tecnologia.")
	require.NoError(t, err)

	assert.Greater(t, result.TextQuality, 0.0)
	require.NotEmpty(t, result.TextScores)
	assert.Equal(t, "tecnologia", result.RecommendedArea)
	assert.Equal(t, 1.0, result.Confidence)
	assert.NotEmpty(t, result.Top3)
	assert.Equal(t, "tecnologia", result.Top3[0].Area)

	// The questionnaire top-3 is just tecnologia; the text top-3 holds
	// both areas, so the overlap is one of three slots.
	assert.Equal(t, 1.0/3.0, result.AnalysisDetails.AgreementScore)
	assert.Equal(t, result.TextQuality*0.4, result.AnalysisDetails.TextWeight)
}

func TestMapInterestsClassifierFailureDegrades(t *testing.T) {
	eng := New(Config{}, newTestArtifact(t), stubEmbedder{err: errors.New("sidecar down")})
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
	}, "gosto muito de programar e criar aplicativos no meu tempo livre")
	require.NoError(t, err)

	// Quality was measurable but classification failed: the result falls
	// back to the questionnaire signal alone.
	assert.Greater(t, result.TextQuality, 0.0)
	assert.Empty(t, result.TextScores)
	assert.Equal(t, result.QuestionnaireScores, result.CombinedScores)
	assert.Zero(t, result.AnalysisDetails.AgreementScore)
}

func TestMapInterestsEmptyEverything(t *testing.T) {
	eng := New(Config{}, nil, nil)
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, nil, "")
	require.NoError(t, err)

	assert.Empty(t, result.CombinedScores)
	assert.Empty(t, result.RecommendedArea)
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Top3)
}

func TestMapInterestsTopThreeOrdering(t *testing.T) {
	// Single question, split selection: tecnologia and arte tie, and the
	// tie breaks lexicographically (arte first).
	eng := New(Config{}, nil, nil)
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 2, SelectedOptions: []string{"t", "a"}},
	}, "")
	require.NoError(t, err)

	require.Len(t, result.Top3, 2)
	assert.Equal(t, "arte", result.RecommendedArea)
	assert.Equal(t, "arte", result.Top3[0].Area)
	assert.Equal(t, "tecnologia", result.Top3[1].Area)
	assert.Equal(t, 1.0, result.Top3[0].Score)
	assert.Equal(t, 1.0, result.Top3[1].Score)
}

func TestMapInterestsRankedConfidence(t *testing.T) {
	eng := New(Config{}, nil, nil)
	cat := twoAreaCatalog(t)

	// tecnologia supported by two questions, arte by one: tecnologia
	// wins with confidence exactly 1.0 and arte follows.
	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
		{QuestionID: 2, SelectedOptions: []string{"t"}},
		{QuestionID: 3, SelectedOptions: []string{"a"}},
	}, "")
	require.NoError(t, err)

	require.Len(t, result.Top3, 2)
	assert.Equal(t, "tecnologia", result.RecommendedArea)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, "tecnologia", result.Top3[0].Area)
	assert.Equal(t, "arte", result.Top3[1].Area)
	assert.Greater(t, result.Top3[0].Score, result.Top3[1].Score)
}

func TestMapInterestsDeterministic(t *testing.T) {
	cat := twoAreaCatalog(t)
	responses := []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t", "a"}},
		{QuestionID: 2, SelectedOptions: []string{"t"}},
	}
	text := "gosto de programar jogos, desenhar e criar aplicativos novos."

	eng := New(Config{}, newTestArtifact(t), stubEmbedder{vec: []float64{1.5, -0.5, 0.25, 0}})

	first, err := eng.MapInterests(context.Background(), cat, responses, text)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := eng.MapInterests(context.Background(), cat, responses, text)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMapInterestsValidationAborts(t *testing.T) {
	eng := New(Config{}, nil, nil)
	cat := twoAreaCatalog(t)

	result, err := eng.MapInterests(context.Background(), cat, []catalog.Response{
		{QuestionID: 1, SelectedOptions: []string{"t"}},
		{QuestionID: 9, SelectedOptions: []string{"t"}},
	}, "")
	require.Error(t, err)
	assert.Nil(t, result)
}

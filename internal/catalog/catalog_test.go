package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	assert.Len(t, cat.Questions, 5)
	assert.Equal(t, DefaultHobbyQuestionID, cat.HobbyQuestionID)

	// Every question offers all nine areas.
	areas := cat.Areas()
	assert.Len(t, areas, 9)
	for _, q := range cat.Questions {
		assert.Len(t, q.Options, 9, "question %d", q.ID)
	}

	// Option weights grow with question importance.
	weightOf := func(id int) float64 {
		q, ok := cat.Question(id)
		require.True(t, ok)
		return q.Options["1"].Weight
	}
	assert.Equal(t, 1.0, weightOf(1))
	assert.Equal(t, 0.8, weightOf(2))
	assert.Equal(t, 0.9, weightOf(3))
	assert.Equal(t, 1.1, weightOf(4))
	assert.Equal(t, 1.2, weightOf(5))
}

func TestAreasSorted(t *testing.T) {
	areas := Default().Areas()
	for i := 1; i < len(areas); i++ {
		assert.Less(t, areas[i-1], areas[i])
	}
}

func TestOrderedById(t *testing.T) {
	ordered := Default().Ordered()
	require.Len(t, ordered, 5)
	for i, q := range ordered {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestNewValidation(t *testing.T) {
	valid := Question{
		ID:      1,
		Prompt:  "q",
		Options: map[string]Option{"1": {Area: "X", Weight: 1}},
	}

	tests := []struct {
		name      string
		questions []Question
		hobbyID   int
		wantErr   bool
	}{
		{"valid", []Question{valid}, 1, false},
		{"no hobby question configured", []Question{valid}, 0, false},
		{"duplicate question id", []Question{valid, valid}, 1, true},
		{"question without options", []Question{{ID: 2, Prompt: "q"}}, 0, true},
		{"hobby question missing", []Question{valid}, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.questions, tt.hobbyID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package engine

import "github.com/trilhasedu/interest-engine/internal/catalog"

// Config holds every tunable of the scoring pipeline. Zero values are
// filled in from DefaultConfig by the engine constructor.
type Config struct {
	// QuestionWeights maps question id to its importance; questions not
	// listed use DefaultQuestionWeight.
	QuestionWeights       map[int]float64
	DefaultQuestionWeight float64

	// ConsistencyBonus is keyed by the number of distinct questions
	// supporting an area. Missing keys mean no bonus (1.0).
	ConsistencyBonus map[int]float64

	// HobbyPenalties discounts areas whose only support is the catalog's
	// hobby question.
	HobbyPenalties map[string]float64

	// Base combination weights. The effective text weight is scaled by
	// text quality and both are renormalized per call.
	QuestionnaireWeight float64
	TextWeight          float64

	// AgreementBonus multiplies a combined score when both channels put
	// the area strictly above 0.5.
	AgreementBonus float64

	// MinTextChars is the processed-text length below which the text
	// channel is skipped entirely.
	MinTextChars int
}

// DefaultConfig returns the canonical production configuration: question
// importance growing with index, consistency bonus rewarding breadth of
// support, and hobby discounts for areas casually picked as pastimes.
func DefaultConfig() Config {
	return Config{
		QuestionWeights: map[int]float64{
			1: 0.15, // free time
			2: 0.20, // internet content
			3: 0.30, // group role
			4: 0.35, // subjects
			5: 0.40, // profession
		},
		DefaultQuestionWeight: 0.2,
		ConsistencyBonus: map[int]float64{
			1: 1.0,
			2: 1.1,
			3: 1.25,
			4: 1.4,
			5: 1.6,
		},
		HobbyPenalties: map[string]float64{
			catalog.AreaSports:     0.3,
			catalog.AreaArts:       0.5,
			catalog.AreaTechnology: 0.7,
			catalog.AreaLiterature: 0.8,
		},
		QuestionnaireWeight: 0.6,
		TextWeight:          0.4,
		AgreementBonus:      1.2,
		MinTextChars:        10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.QuestionWeights == nil {
		c.QuestionWeights = def.QuestionWeights
	}
	if c.DefaultQuestionWeight == 0 {
		c.DefaultQuestionWeight = def.DefaultQuestionWeight
	}
	if c.ConsistencyBonus == nil {
		c.ConsistencyBonus = def.ConsistencyBonus
	}
	if c.HobbyPenalties == nil {
		c.HobbyPenalties = def.HobbyPenalties
	}
	if c.QuestionnaireWeight == 0 && c.TextWeight == 0 {
		c.QuestionnaireWeight = def.QuestionnaireWeight
		c.TextWeight = def.TextWeight
	}
	if c.AgreementBonus == 0 {
		c.AgreementBonus = def.AgreementBonus
	}
	if c.MinTextChars == 0 {
		c.MinTextChars = def.MinTextChars
	}
	return c
}

func (c Config) questionWeight(id int) float64 {
	if w, ok := c.QuestionWeights[id]; ok {
		return w
	}
	return c.DefaultQuestionWeight
}

func (c Config) consistencyMultiplier(appearances int) float64 {
	if m, ok := c.ConsistencyBonus[appearances]; ok {
		return m
	}
	return 1.0
}

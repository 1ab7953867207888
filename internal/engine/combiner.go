package engine

// ScoreCombiner fuses the questionnaire and text score maps into one
// normalized distribution, weighting the text channel by its quality.
type ScoreCombiner struct {
	cfg Config
}

// NewScoreCombiner creates a combiner with the given configuration.
func NewScoreCombiner(cfg Config) *ScoreCombiner {
	return &ScoreCombiner{cfg: cfg.withDefaults()}
}

// Combine merges the two channels. An empty text map returns the
// questionnaire map untouched: a real signal is never diluted by an
// absent one.
func (c *ScoreCombiner) Combine(questionnaire, text ScoreMap, quality float64) ScoreMap {
	if len(text) == 0 {
		out := make(ScoreMap, len(questionnaire))
		for k, v := range questionnaire {
			out[k] = v
		}
		return out
	}

	qWeight, tWeight := c.EffectiveWeights(quality)

	union := make(map[string]struct{}, len(questionnaire)+len(text))
	for a := range questionnaire {
		union[a] = struct{}{}
	}
	for a := range text {
		union[a] = struct{}{}
	}

	combined := make(ScoreMap, len(union))
	for area := range union {
		qScore := questionnaire[area]
		tScore := text[area]

		score := qScore*qWeight + tScore*tWeight
		// Both channels independently confident in the same area.
		if qScore > 0.5 && tScore > 0.5 {
			score *= c.cfg.AgreementBonus
		}
		if score > 1.0 {
			score = 1.0
		}
		combined[area] = score
	}

	return combined.Normalize()
}

// EffectiveWeights scales the base text weight by quality and
// renormalizes both weights to sum to 1.
func (c *ScoreCombiner) EffectiveWeights(quality float64) (questionnaire, text float64) {
	questionnaire = c.cfg.QuestionnaireWeight
	text = c.cfg.TextWeight * quality
	total := questionnaire + text
	if total > 0 {
		questionnaire /= total
		text /= total
	}
	return questionnaire, text
}

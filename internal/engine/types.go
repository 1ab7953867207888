// Package engine implements the hybrid interest scoring pipeline:
// questionnaire scoring, free-text classification, and confidence-weighted
// fusion of the two signals into one ranked recommendation.
package engine

import "sort"

// ScoreMap maps an interest area to a score in [0,1]. A non-empty map is
// max-normalized: its strongest area is exactly 1.0. Areas with zero
// support are absent, never present at 0.
type ScoreMap map[string]float64

// Normalize returns a copy scaled so the maximum value is 1.0. Empty
// maps and all-zero maps come back unchanged.
func (m ScoreMap) Normalize() ScoreMap {
	out := make(ScoreMap, len(m))
	var max float64
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	for k, v := range m {
		out[k] = v / max
	}
	return out
}

// Ranked returns the areas sorted by descending score, ties broken by
// area name so results are deterministic regardless of map iteration.
func (m ScoreMap) Ranked() []string {
	areas := make([]string, 0, len(m))
	for a := range m {
		areas = append(areas, a)
	}
	sort.Slice(areas, func(i, j int) bool {
		if m[areas[i]] != m[areas[j]] {
			return m[areas[i]] > m[areas[j]]
		}
		return areas[i] < areas[j]
	})
	return areas
}

// Top returns up to n top-ranked areas.
func (m ScoreMap) Top(n int) []string {
	ranked := m.Ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// AreaScore is one entry of the explainable top-3 ranking, annotated
// with each channel's contribution.
type AreaScore struct {
	Area                      string  `json:"area"`
	Score                     float64 `json:"score"`
	Percentage                float64 `json:"percentage"`
	QuestionnaireContribution float64 `json:"questionnaire_contribution"`
	TextContribution          float64 `json:"text_contribution"`
}

// AnalysisDetails records the weights actually used for a mapping and
// the cross-channel agreement, for auditability.
type AnalysisDetails struct {
	Method                 string  `json:"method"`
	QuestionnaireWeight    float64 `json:"questionnaire_weight"`
	TextWeight             float64 `json:"text_weight"`
	AreasFromQuestionnaire int     `json:"areas_from_questionnaire"`
	AreasFromText          int     `json:"areas_from_text"`
	AgreementScore         float64 `json:"agreement_score"`
}

// MappingResult is the full outcome of one mapping call. It is fully
// determined by its inputs and the model artifact.
type MappingResult struct {
	QuestionnaireScores ScoreMap        `json:"questionnaire_scores"`
	TextScores          ScoreMap        `json:"text_scores"`
	CombinedScores      ScoreMap        `json:"combined_scores"`
	TextQuality         float64         `json:"text_quality"`
	RecommendedArea     string          `json:"recommended_area,omitempty"`
	Confidence          float64         `json:"confidence"`
	Top3                []AreaScore     `json:"top_3_areas"`
	AnalysisDetails     AnalysisDetails `json:"analysis_details"`
}

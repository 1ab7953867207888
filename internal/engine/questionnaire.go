package engine

import (
	"fmt"
	"sort"

	"github.com/trilhasedu/interest-engine/internal/catalog"
	apperrors "github.com/trilhasedu/interest-engine/internal/errors"
)

// QuestionnaireScorer turns structured responses into a max-normalized
// per-area score map. Any malformed response aborts the whole call: a
// partially scored submission would misrepresent the learner.
type QuestionnaireScorer struct {
	cfg Config
}

// NewQuestionnaireScorer creates a scorer with the given configuration.
func NewQuestionnaireScorer(cfg Config) *QuestionnaireScorer {
	return &QuestionnaireScorer{cfg: cfg.withDefaults()}
}

// Score validates the responses against the catalog and computes the
// questionnaire score map. Returns an empty map when nothing contributes.
func (s *QuestionnaireScorer) Score(cat *catalog.Catalog, responses []catalog.Response) (ScoreMap, error) {
	// area -> per-question contributions, and the distinct questions
	// supporting each area.
	contributions := make(map[string]map[int]float64)
	appearances := make(map[string]map[int]struct{})
	answered := make(map[int]struct{}, len(responses))

	for _, resp := range responses {
		if _, dup := answered[resp.QuestionID]; dup {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("duplicate response for question %d", resp.QuestionID),
				map[string]string{"question_id": fmt.Sprint(resp.QuestionID)},
			)
		}
		answered[resp.QuestionID] = struct{}{}

		question, ok := cat.Question(resp.QuestionID)
		if !ok {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("response references unknown question %d", resp.QuestionID),
				map[string]string{"question_id": fmt.Sprint(resp.QuestionID)},
			)
		}

		selected := dedupe(resp.SelectedOptions)
		if len(selected) == 0 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("no options selected for question %d", resp.QuestionID),
				map[string]string{"question_id": fmt.Sprint(resp.QuestionID)},
			)
		}

		weight := s.cfg.questionWeight(resp.QuestionID)
		for _, optionID := range selected {
			option, ok := question.Options[optionID]
			if !ok {
				return nil, apperrors.NewValidationError(
					fmt.Sprintf("unknown option %q for question %d", optionID, resp.QuestionID),
					map[string]string{
						"question_id": fmt.Sprint(resp.QuestionID),
						"option_id":   optionID,
					},
				)
			}
			if option.Area == "" {
				continue
			}

			optWeight := option.Weight
			if optWeight == 0 {
				optWeight = 1.0
			}
			// Dividing by the selection count keeps multi-selecting from
			// over-crediting an area within a single question.
			score := (weight * optWeight) / float64(len(selected))

			if contributions[option.Area] == nil {
				contributions[option.Area] = make(map[int]float64)
				appearances[option.Area] = make(map[int]struct{})
			}
			contributions[option.Area][resp.QuestionID] += score
			appearances[option.Area][resp.QuestionID] = struct{}{}
		}
	}

	raw := make(ScoreMap, len(contributions))
	for _, area := range sortedAreaKeys(contributions) {
		var base float64
		for _, qid := range sortedQuestionKeys(contributions[area]) {
			base += contributions[area][qid]
		}

		multiplier := s.cfg.consistencyMultiplier(len(appearances[area]))
		if s.soleHobbySupport(cat, appearances[area]) {
			if penalty, ok := s.cfg.HobbyPenalties[area]; ok {
				multiplier *= penalty
			}
		}
		raw[area] = base * multiplier
	}

	if len(raw) == 0 {
		return ScoreMap{}, nil
	}
	return raw.Normalize(), nil
}

// soleHobbySupport reports whether an area's supporting questions are
// exactly the designated hobby question.
func (s *QuestionnaireScorer) soleHobbySupport(cat *catalog.Catalog, qs map[int]struct{}) bool {
	if len(qs) != 1 {
		return false
	}
	_, only := qs[cat.HobbyQuestionID]
	return only
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortedAreaKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedQuestionKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Package catalog holds the structured questionnaire: questions, their
// options, and the responses a learner submits against them.
package catalog

import (
	"fmt"
	"sort"
)

// Option is one selectable answer within a question. Options without an
// area contribute nothing to scoring.
type Option struct {
	Text   string  `json:"text"`
	Area   string  `json:"area,omitempty"`
	Weight float64 `json:"weight"`
}

// Question is a multiple-choice question keyed by option id.
type Question struct {
	ID      int               `json:"id"`
	Prompt  string            `json:"question"`
	Options map[string]Option `json:"options"`
}

// Response is a learner's answer to one question. SelectedOptions may
// contain duplicates on the wire; scoring deduplicates them.
type Response struct {
	QuestionID      int      `json:"question_id"`
	SelectedOptions []string `json:"selected_options"`
}

// Catalog is the set of questions a submission is validated against.
// HobbyQuestionID marks the leisure-activity question used by the
// hobby-penalty rule.
type Catalog struct {
	Questions       map[int]Question
	HobbyQuestionID int
}

// New builds a catalog from a question list and validates it.
func New(questions []Question, hobbyQuestionID int) (*Catalog, error) {
	c := &Catalog{
		Questions:       make(map[int]Question, len(questions)),
		HobbyQuestionID: hobbyQuestionID,
	}
	for _, q := range questions {
		if _, exists := c.Questions[q.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate question id %d", q.ID)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("catalog: question %d has no options", q.ID)
		}
		c.Questions[q.ID] = q
	}
	if _, ok := c.Questions[hobbyQuestionID]; !ok && hobbyQuestionID != 0 {
		return nil, fmt.Errorf("catalog: hobby question %d not in catalog", hobbyQuestionID)
	}
	return c, nil
}

// Question returns the question with the given id.
func (c *Catalog) Question(id int) (Question, bool) {
	q, ok := c.Questions[id]
	return q, ok
}

// Ordered returns the questions sorted by id, for stable API output.
func (c *Catalog) Ordered() []Question {
	out := make([]Question, 0, len(c.Questions))
	for _, q := range c.Questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Areas returns every area referenced by at least one option, sorted.
func (c *Catalog) Areas() []string {
	seen := make(map[string]struct{})
	for _, q := range c.Questions {
		for _, opt := range q.Options {
			if opt.Area != "" {
				seen[opt.Area] = struct{}{}
			}
		}
	}
	areas := make([]string, 0, len(seen))
	for a := range seen {
		areas = append(areas, a)
	}
	sort.Strings(areas)
	return areas
}

// Package catalog holds the fixed alignment-philosophy questionnaire.
// The question list is compiled in, loaded once, and never mutated.
package catalog

import (
	"fmt"

	"aligniq/internal/model"
)

// Catalog is the immutable ordered question list with lookup indexes and
// precomputed per-category maxima.
type Catalog struct {
	questions []model.Question
	index     map[string]int // question id -> position
	maxima    model.ScoreVector
}

// New builds a catalog from an ordered question list, validating that
// question ids are unique and option ids are unique within each question.
func New(questions []model.Question) (*Catalog, error) {
	c := &Catalog{
		questions: questions,
		index:     make(map[string]int, len(questions)),
		maxima:    model.NewScoreVector(),
	}
	for i, q := range questions {
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %q has no options", q.ID)
		}
		c.index[q.ID] = i

		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt.ID] {
				return nil, fmt.Errorf("question %q has duplicate option id %q", q.ID, opt.ID)
			}
			seen[opt.ID] = true
		}

		// Each question's maximum possible contribution per category.
		for _, cat := range model.Categories() {
			best := 0
			for _, opt := range q.Options {
				if pts := opt.Scores[cat]; pts > best {
					best = pts
				}
			}
			c.maxima[cat] += best
		}
	}
	return c, nil
}

// Default returns the built-in questionnaire.
func Default() *Catalog {
	c, err := New(builtinQuestions)
	if err != nil {
		// Built-in data is validated by tests; a failure here is a build defect.
		panic(err)
	}
	return c
}

// Questions returns the ordered question list.
func (c *Catalog) Questions() []model.Question {
	return c.questions
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Question returns the question with the given id, or nil.
func (c *Catalog) Question(id string) *model.Question {
	i, ok := c.index[id]
	if !ok {
		return nil
	}
	return &c.questions[i]
}

// QuestionAt returns the question at position i, or nil if out of range.
func (c *Catalog) QuestionAt(i int) *model.Question {
	if i < 0 || i >= len(c.questions) {
		return nil
	}
	return &c.questions[i]
}

// Option resolves an option within a question, or nil if either id is unknown.
func (c *Catalog) Option(questionID, optionID string) *model.QuestionOption {
	q := c.Question(questionID)
	if q == nil {
		return nil
	}
	return q.Option(optionID)
}

// Maxima returns the per-category maximum achievable totals across the whole
// catalog. Used as the upper bound for normalized chart display.
func (c *Catalog) Maxima() model.ScoreVector {
	return c.maxima.Clone()
}

// Package scoring is the pure computation core: folding responses into
// category totals, resolving the next presentable question, and picking the
// recommended philosophy. No I/O, no mutation of inputs.
package scoring

import (
	"errors"
	"fmt"

	"aligniq/internal/catalog"
	"aligniq/internal/model"
)

// ErrInvalidResponse marks a response whose question or option id is not in
// the catalog. Callers must reject the write, never coerce it.
var ErrInvalidResponse = errors.New("response references unknown question or option")

// NoNextQuestion is the index reported once every question is answered.
const NoNextQuestion = -1

// ComputeTotals folds the response set into per-category totals. Every known
// category is present in the result, zero-filled if untouched. The fold is
// commutative, so response order never matters.
func ComputeTotals(cat *catalog.Catalog, responses map[string]model.Response) (model.ScoreVector, error) {
	totals := model.NewScoreVector()
	for questionID, resp := range responses {
		opt := cat.Option(questionID, resp.OptionID)
		if opt == nil {
			return nil, fmt.Errorf("%w: question %q option %q", ErrInvalidResponse, questionID, resp.OptionID)
		}
		totals.Add(resp.Scores)
	}
	return totals, nil
}

// NextQuestion resolves the next question index to present. Progression is
// linear and gated: the next index is the first catalog position without a
// response, even when later questions already have answers (a client that
// submitted out of sequence still gets sent back to the first gap).
// done is true when every question is answered, or immediately when the
// conversation is in a terminal state.
func NextQuestion(cat *catalog.Catalog, responses map[string]model.Response, status model.ConversationStatus) (index int, done bool) {
	if status.Terminal() {
		return NoNextQuestion, true
	}
	for i, q := range cat.Questions() {
		if _, answered := responses[q.ID]; !answered {
			return i, false
		}
	}
	return NoNextQuestion, true
}

// Recommend picks the category with the highest total. Ties are broken by the
// fixed category enumeration order, so the result is fully deterministic.
func Recommend(totals model.ScoreVector) model.Category {
	best := model.Categories()[0]
	for _, c := range model.Categories()[1:] {
		if totals[c] > totals[best] {
			best = c
		}
	}
	return best
}

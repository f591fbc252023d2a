package model

// QuestionOption is one mutually-exclusive answer choice. Its score vector is
// fixed in the catalog and copied onto the response at answer time.
type QuestionOption struct {
	ID     string      `json:"id"`
	Text   string      `json:"text"`
	Scores ScoreVector `json:"-"` // never sent to clients
}

// Question is a single catalog question. Option order is display order;
// option ids are unique within the question.
type Question struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []QuestionOption `json:"options"`
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(optionID string) *QuestionOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

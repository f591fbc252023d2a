package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aligniq/internal/model"
)

func TestDefault_Loads(t *testing.T) {
	cat := Default()
	require.NotNil(t, cat)
	assert.Equal(t, len(builtinQuestions), cat.Len())
}

func TestDefault_UniqueQuestionIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range Default().Questions() {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
	}
}

func TestDefault_OptionsValid(t *testing.T) {
	for _, q := range Default().Questions() {
		require.NotEmpty(t, q.Options, "question %s has no options", q.ID)
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			assert.False(t, seen[opt.ID], "question %s duplicate option %s", q.ID, opt.ID)
			seen[opt.ID] = true

			require.NotEmpty(t, opt.Scores, "question %s option %s has no scores", q.ID, opt.ID)
			for c, pts := range opt.Scores {
				assert.True(t, c.IsValid(), "question %s option %s scores unknown category %s", q.ID, opt.ID, c)
				assert.GreaterOrEqual(t, pts, 0)
			}
		}
	}
}

func TestNew_RejectsDuplicateQuestionIDs(t *testing.T) {
	_, err := New([]model.Question{
		{ID: "q1", Options: []model.QuestionOption{{ID: "a"}}},
		{ID: "q1", Options: []model.QuestionOption{{ID: "a"}}},
	})
	assert.Error(t, err)
}

func TestNew_RejectsDuplicateOptionIDs(t *testing.T) {
	_, err := New([]model.Question{
		{ID: "q1", Options: []model.QuestionOption{{ID: "a"}, {ID: "a"}}},
	})
	assert.Error(t, err)
}

func TestNew_RejectsEmptyOptions(t *testing.T) {
	_, err := New([]model.Question{{ID: "q1"}})
	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	cat := Default()

	first := cat.QuestionAt(0)
	require.NotNil(t, first)
	assert.Equal(t, first, cat.Question(first.ID))
	assert.Nil(t, cat.Question("missing"))
	assert.Nil(t, cat.QuestionAt(-1))
	assert.Nil(t, cat.QuestionAt(cat.Len()))

	opt := cat.Option(first.ID, first.Options[0].ID)
	require.NotNil(t, opt)
	assert.Equal(t, first.Options[0].ID, opt.ID)
	assert.Nil(t, cat.Option(first.ID, "missing"))
	assert.Nil(t, cat.Option("missing", "a"))
}

func TestMaxima(t *testing.T) {
	cat, err := New([]model.Question{
		{
			ID: "q1",
			Options: []model.QuestionOption{
				{ID: "a", Scores: model.ScoreVector{model.CategoryMechanical: 3, model.CategoryKinematic: 1}},
				{ID: "b", Scores: model.ScoreVector{model.CategoryAnatomic: 2}},
			},
		},
		{
			ID: "q2",
			Options: []model.QuestionOption{
				{ID: "a", Scores: model.ScoreVector{model.CategoryMechanical: 1}},
				{ID: "b", Scores: model.ScoreVector{model.CategoryKinematic: 2}},
			},
		},
	})
	require.NoError(t, err)

	maxima := cat.Maxima()
	assert.Equal(t, 4, maxima[model.CategoryMechanical])
	assert.Equal(t, 2, maxima[model.CategoryAnatomic])
	assert.Equal(t, 3, maxima[model.CategoryKinematic])
	assert.Equal(t, 0, maxima[model.CategoryFunctional])
}

func TestMaxima_CopyIsIndependent(t *testing.T) {
	cat := Default()
	m1 := cat.Maxima()
	m1[model.CategoryMechanical] = -99
	m2 := cat.Maxima()
	assert.NotEqual(t, -99, m2[model.CategoryMechanical])
}

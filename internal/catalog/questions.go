package catalog

import "aligniq/internal/model"

// Shorthand for score vector literals below.
const (
	mech = model.CategoryMechanical
	anat = model.CategoryAnatomic
	kin  = model.CategoryKinematic
	fun  = model.CategoryFunctional
)

// builtinQuestions is the fixed alignment-philosophy questionnaire, in display
// order. Option score vectors weight each answer toward the four philosophies.
var builtinQuestions = []model.Question{
	{
		ID:     "q1",
		Prompt: "What is your primary goal when setting overall limb alignment in a primary TKA?",
		Options: []model.QuestionOption{
			{ID: "a", Text: "A neutral mechanical axis in every patient", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "Restoring the patient's native joint line orientation", Scores: model.ScoreVector{anat: 3, kin: 1}},
			{ID: "c", Text: "Reproducing the pre-arthritic, constitutional alignment", Scores: model.ScoreVector{kin: 3, anat: 1}},
			{ID: "d", Text: "Whatever alignment produces a balanced knee through range of motion", Scores: model.ScoreVector{fun: 3, kin: 1}},
		},
	},
	{
		ID:     "q2",
		Prompt: "How comfortable are you leaving a component outside the classic neutral safe zone?",
		Options: []model.QuestionOption{
			{ID: "a", Text: "Not at all — long-term survivorship data supports neutral", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "Comfortable within predefined restricted boundaries", Scores: model.ScoreVector{fun: 2, kin: 2}},
			{ID: "c", Text: "Comfortable whenever it reproduces the native knee", Scores: model.ScoreVector{kin: 3}},
			{ID: "d", Text: "Comfortable if the joint line itself stays anatomic", Scores: model.ScoreVector{anat: 3}},
		},
	},
	{
		ID:     "q3",
		Prompt: "A knee is tight medially in extension. Your first instinct is to:",
		Options: []model.QuestionOption{
			{ID: "a", Text: "Perform a stepwise medial soft-tissue release", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "Recut bone to rebalance the gaps before releasing anything", Scores: model.ScoreVector{fun: 3, kin: 1}},
			{ID: "c", Text: "Re-check resections against the native joint surfaces", Scores: model.ScoreVector{kin: 2, anat: 2}},
			{ID: "d", Text: "Accept mild asymmetry if the joint line is restored", Scores: model.ScoreVector{anat: 2, kin: 1}},
		},
	},
	{
		ID:     "q4",
		Prompt: "Which evidence weighs most in your alignment decisions?",
		Options: []model.QuestionOption{
			{ID: "a", Text: "Registry survivorship of neutrally aligned implants", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "Patient-reported outcomes and forgotten-joint scores", Scores: model.ScoreVector{kin: 2, fun: 2}},
			{ID: "c", Text: "Gait and joint-load studies of restored obliquity", Scores: model.ScoreVector{anat: 2, fun: 1}},
			{ID: "d", Text: "Intraoperative balance data from the individual knee", Scores: model.ScoreVector{fun: 3}},
		},
	},
	{
		ID:     "q5",
		Prompt: "How do you use preoperative long-leg imaging?",
		Options: []model.QuestionOption{
			{ID: "a", Text: "To plan cuts that correct the limb to neutral", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "To estimate the constitutional alignment I intend to restore", Scores: model.ScoreVector{kin: 3}},
			{ID: "c", Text: "To template the native joint line and obliquity", Scores: model.ScoreVector{anat: 3}},
			{ID: "d", Text: "As a starting point only — the soft tissues decide intraoperatively", Scores: model.ScoreVector{fun: 3}},
		},
	},
	{
		ID:     "q6",
		Prompt: "For a patient with constitutional varus of 4 degrees, you would:",
		Options: []model.QuestionOption{
			{ID: "a", Text: "Correct fully to a neutral mechanical axis", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "Leave the varus in place and resurface the native angles", Scores: model.ScoreVector{kin: 3}},
			{ID: "c", Text: "Partially correct while keeping an oblique joint line", Scores: model.ScoreVector{anat: 3, fun: 1}},
			{ID: "d", Text: "Let gap balance within boundaries pick the final angle", Scores: model.ScoreVector{fun: 3}},
		},
	},
	{
		ID:     "q7",
		Prompt: "What role should robotics or navigation play in your practice?",
		Options: []model.QuestionOption{
			{ID: "a", Text: "Precision delivery of the same neutral targets every time", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "Quantifying gaps so implant position can be tuned per knee", Scores: model.ScoreVector{fun: 3}},
			{ID: "c", Text: "Mapping native anatomy so it can be reproduced accurately", Scores: model.ScoreVector{kin: 2, anat: 2}},
			{ID: "d", Text: "Optional — conventional instruments serve my targets fine", Scores: model.ScoreVector{mech: 1, anat: 1}},
		},
	},
	{
		ID:     "q8",
		Prompt: "Which statement best matches your view of soft-tissue releases?",
		Options: []model.QuestionOption{
			{ID: "a", Text: "A routine, well-tolerated part of correcting deformity", Scores: model.ScoreVector{mech: 3}},
			{ID: "b", Text: "A sign the bony targets did not respect this knee", Scores: model.ScoreVector{kin: 3, fun: 1}},
			{ID: "c", Text: "Rarely needed once the joint line is anatomic", Scores: model.ScoreVector{anat: 3}},
			{ID: "d", Text: "Acceptable only after bony adjustment options are exhausted", Scores: model.ScoreVector{fun: 3}},
		},
	},
}

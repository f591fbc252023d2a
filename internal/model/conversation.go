package model

import "time"

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

const (
	ConversationInProgress ConversationStatus = "in_progress"
	ConversationCompleted  ConversationStatus = "completed"
	ConversationAbandoned  ConversationStatus = "abandoned"
)

// Terminal reports whether no further lifecycle transitions are allowed.
func (s ConversationStatus) Terminal() bool {
	return s == ConversationCompleted || s == ConversationAbandoned
}

// Response is one answered question. Scores is the chosen option's vector
// captured at answer time. At most one response exists per
// (conversationId, questionId); re-answering replaces it.
type Response struct {
	ConversationID string      `json:"conversationId" bson:"conversationId"`
	QuestionID     string      `json:"questionId" bson:"questionId"`
	OptionID       string      `json:"optionId" bson:"optionId"`
	Scores         ScoreVector `json:"scores" bson:"scores"`
	AnsweredAt     time.Time   `json:"answeredAt" bson:"answeredAt"`
}

// Conversation is a questionnaire session for one surgeon discussion.
// Category totals are derived from the response set and never stored here.
type Conversation struct {
	ID          string             `json:"id" bson:"_id"`
	OwnerID     string             `json:"ownerId,omitempty" bson:"ownerId,omitempty"` // empty for anonymous surgeon flow
	Status      ConversationStatus `json:"status" bson:"status"`
	Recommended Category           `json:"recommended,omitempty" bson:"recommended,omitempty"` // set only once completed
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// ConversationState is the full client-facing view of a conversation:
// the record plus everything derived from its responses.
type ConversationState struct {
	Conversation *Conversation `json:"conversation"`
	Totals       ScoreVector   `json:"totals"`
	Maxima       ScoreVector   `json:"maxima"` // per-category maximum possible, for normalized charts
	Answered     int           `json:"answered"`
	Done         bool          `json:"done"`
	NextIndex    int           `json:"nextIndex"` // -1 when done
	NextQuestion *Question     `json:"nextQuestion,omitempty"`
}

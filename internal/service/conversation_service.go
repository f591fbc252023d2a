package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"aligniq/internal/cache"
	"aligniq/internal/catalog"
	"aligniq/internal/model"
	"aligniq/internal/repository"
	"aligniq/internal/scoring"
)

var (
	// ErrInvalidState marks an operation attempted against a conversation
	// that is not in the required lifecycle state.
	ErrInvalidState = errors.New("conversation is not in the required state")

	// ErrIncompleteConversation marks a completion attempt with unanswered
	// questions and no explicit override.
	ErrIncompleteConversation = errors.New("conversation has unanswered questions")

	// ErrNotFound marks an unknown conversation id.
	ErrNotFound = errors.New("conversation not found")
)

// WebSocket message types emitted by this service.
const (
	MsgTotalsUpdate          = "totals_update"
	MsgConversationCompleted = "conversation_completed"
	MsgConversationRestarted = "conversation_restarted"
)

// ConversationService owns the conversation lifecycle: starting, answering,
// completing, restarting. All score math is delegated to the scoring package;
// this service adds persistence, caching, and broadcast around it.
type ConversationService struct {
	catalog     *catalog.Catalog
	convRepo    repository.ConversationRepo
	respRepo    repository.ResponseRepo
	convCache   cache.ConversationCache
	broadcaster Broadcaster

	// Serializes writes per conversation so two concurrent submissions
	// cannot interleave their load-recompute-store sequences.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewConversationService creates a new conversation service
func NewConversationService(
	cat *catalog.Catalog,
	convRepo repository.ConversationRepo,
	respRepo repository.ResponseRepo,
	convCache cache.ConversationCache,
) *ConversationService {
	return &ConversationService{
		catalog:   cat,
		convRepo:  convRepo,
		respRepo:  respRepo,
		convCache: convCache,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ConversationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *ConversationService) lockConversation(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Start creates a new in-progress conversation. ownerID is empty for the
// anonymous surgeon flow.
func (s *ConversationService) Start(ctx context.Context, ownerID string) (*model.ConversationState, error) {
	conv := &model.Conversation{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Status:  model.ConversationInProgress,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	state := s.buildState(conv, nil)
	s.writeSnapshot(ctx, state)
	return state, nil
}

// Get returns the full derived state of a conversation, recomputed from the
// authoritative response set.
func (s *ConversationService) Get(ctx context.Context, id string) (*model.ConversationState, error) {
	conv, responses, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildState(conv, responses), nil
}

// GetSnapshot serves the cached derived view for chart polling, falling back
// to a full recompute on a miss.
func (s *ConversationService) GetSnapshot(ctx context.Context, id string) (*cache.Snapshot, error) {
	snap, err := s.convCache.Get(ctx, id)
	if err != nil {
		log.Printf("conversation cache read failed for %s: %v", id, err)
	}
	if snap != nil {
		return snap, nil
	}

	state, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.writeSnapshot(ctx, state), nil
}

// ListByOwner returns a rep's conversations, newest first.
func (s *ConversationService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Conversation, error) {
	convs, err := s.convRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

// Submit records an answer to one question, replacing any prior answer to the
// same question, and recomputes totals. Late answers to earlier gaps are
// accepted; the progression resolver still reports the first gap as next.
func (s *ConversationService) Submit(ctx context.Context, id, questionID, optionID string) (*model.ConversationState, error) {
	l := s.lockConversation(id)
	l.Lock()
	defer l.Unlock()

	conv, responses, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Status != model.ConversationInProgress {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, conv.Status)
	}

	opt := s.catalog.Option(questionID, optionID)
	if opt == nil {
		return nil, fmt.Errorf("%w: question %q option %q", scoring.ErrInvalidResponse, questionID, optionID)
	}

	resp := &model.Response{
		ConversationID: id,
		QuestionID:     questionID,
		OptionID:       optionID,
		Scores:         opt.Scores.Clone(),
		AnsweredAt:     time.Now(),
	}
	if err := s.respRepo.Upsert(ctx, resp); err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}
	responses[questionID] = *resp

	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	state := s.buildState(conv, responses)
	s.writeSnapshot(ctx, state)
	s.broadcast(id, MsgTotalsUpdate, state)
	return state, nil
}

// Complete finishes an in-progress conversation, freezing its recommendation.
// Every question must be answered unless force is set (the rep-only early
// completion override).
func (s *ConversationService) Complete(ctx context.Context, id string, force bool) (*model.ConversationState, error) {
	l := s.lockConversation(id)
	l.Lock()
	defer l.Unlock()

	conv, responses, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Status != model.ConversationInProgress {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, conv.Status)
	}

	if _, done := scoring.NextQuestion(s.catalog, responses, conv.Status); !done && !force {
		return nil, ErrIncompleteConversation
	}

	totals, err := scoring.ComputeTotals(s.catalog, responses)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	conv.Status = model.ConversationCompleted
	conv.Recommended = scoring.Recommend(totals)
	conv.CompletedAt = &now
	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to complete conversation: %w", err)
	}

	state := s.buildState(conv, responses)
	s.writeSnapshot(ctx, state)
	s.broadcast(id, MsgConversationCompleted, state)
	return state, nil
}

// Restart clears all responses and the recommendation and returns the
// conversation to in_progress. The record itself is reused, never deleted.
func (s *ConversationService) Restart(ctx context.Context, id string) (*model.ConversationState, error) {
	l := s.lockConversation(id)
	l.Lock()
	defer l.Unlock()

	conv, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.respRepo.DeleteByConversationID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to clear responses: %w", err)
	}

	conv.Status = model.ConversationInProgress
	conv.Recommended = ""
	conv.CompletedAt = nil
	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to restart conversation: %w", err)
	}

	if err := s.convCache.Delete(ctx, id); err != nil {
		log.Printf("conversation cache invalidation failed for %s: %v", id, err)
	}

	state := s.buildState(conv, nil)
	s.writeSnapshot(ctx, state)
	s.broadcast(id, MsgConversationRestarted, state)
	return state, nil
}

// Abandon marks an in-progress conversation abandoned. Terminal,
// administrative, computes nothing.
func (s *ConversationService) Abandon(ctx context.Context, id string) (*model.ConversationState, error) {
	l := s.lockConversation(id)
	l.Lock()
	defer l.Unlock()

	conv, responses, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Status != model.ConversationInProgress {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, conv.Status)
	}

	conv.Status = model.ConversationAbandoned
	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to abandon conversation: %w", err)
	}

	state := s.buildState(conv, responses)
	s.writeSnapshot(ctx, state)
	return state, nil
}

// OverrideRecommendation replaces the stored recommendation on a completed
// conversation. Administrative write path, distinct from the scoring engine.
func (s *ConversationService) OverrideRecommendation(ctx context.Context, id string, category model.Category) (*model.ConversationState, error) {
	l := s.lockConversation(id)
	l.Lock()
	defer l.Unlock()

	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", scoring.ErrInvalidResponse, category)
	}

	conv, responses, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.Status != model.ConversationCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, conv.Status)
	}

	conv.Recommended = category
	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to override recommendation: %w", err)
	}

	state := s.buildState(conv, responses)
	s.writeSnapshot(ctx, state)
	return state, nil
}

func (s *ConversationService) load(ctx context.Context, id string) (*model.Conversation, map[string]model.Response, error) {
	conv, err := s.convRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	rows, err := s.respRepo.GetByConversationID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load responses: %w", err)
	}
	responses := make(map[string]model.Response, len(rows))
	for _, r := range rows {
		responses[r.QuestionID] = *r
	}
	return conv, responses, nil
}

func (s *ConversationService) buildState(conv *model.Conversation, responses map[string]model.Response) *model.ConversationState {
	totals, err := scoring.ComputeTotals(s.catalog, responses)
	if err != nil {
		// Stored responses no longer matching the catalog means corrupt
		// data, not a caller mistake. Surface zeroed totals and log.
		log.Printf("stored responses for %s failed validation: %v", conv.ID, err)
		totals = model.NewScoreVector()
	}

	index, done := scoring.NextQuestion(s.catalog, responses, conv.Status)

	state := &model.ConversationState{
		Conversation: conv,
		Totals:       totals,
		Maxima:       s.catalog.Maxima(),
		Answered:     len(responses),
		Done:         done,
		NextIndex:    index,
	}
	if !done {
		state.NextQuestion = s.catalog.QuestionAt(index)
	}
	return state
}

func (s *ConversationService) writeSnapshot(ctx context.Context, state *model.ConversationState) *cache.Snapshot {
	snap := &cache.Snapshot{
		Status:      state.Conversation.Status,
		Totals:      state.Totals,
		Answered:    state.Answered,
		NextIndex:   state.NextIndex,
		Done:        state.Done,
		Recommended: state.Conversation.Recommended,
		UpdatedAt:   time.Now(),
	}
	if err := s.convCache.Set(ctx, state.Conversation.ID, snap); err != nil {
		log.Printf("conversation cache write failed for %s: %v", state.Conversation.ID, err)
	}
	return snap
}

func (s *ConversationService) broadcast(conversationID, msgType string, state *model.ConversationState) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToConversation(conversationID, msgType, state)
}

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aligniq/internal/cache"
	"aligniq/internal/catalog"
	"aligniq/internal/model"
	"aligniq/internal/repository"
	"aligniq/internal/service"
	"aligniq/internal/transport/ws"
)

type memConvRepo struct {
	convs map[string]model.Conversation
}

func (r *memConvRepo) Create(_ context.Context, conv *model.Conversation) error {
	r.convs[conv.ID] = *conv
	return nil
}

func (r *memConvRepo) GetByID(_ context.Context, id string) (*model.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := conv
	return &out, nil
}

func (r *memConvRepo) Update(_ context.Context, conv *model.Conversation) error {
	if _, ok := r.convs[conv.ID]; !ok {
		return repository.ErrNotFound
	}
	r.convs[conv.ID] = *conv
	return nil
}

func (r *memConvRepo) ListByOwner(_ context.Context, ownerID string) ([]*model.Conversation, error) {
	var out []*model.Conversation
	for id := range r.convs {
		conv := r.convs[id]
		if conv.OwnerID == ownerID {
			out = append(out, &conv)
		}
	}
	return out, nil
}

type memRespRepo struct {
	responses map[string]map[string]model.Response
}

func (r *memRespRepo) Upsert(_ context.Context, resp *model.Response) error {
	if r.responses[resp.ConversationID] == nil {
		r.responses[resp.ConversationID] = make(map[string]model.Response)
	}
	r.responses[resp.ConversationID][resp.QuestionID] = *resp
	return nil
}

func (r *memRespRepo) GetByConversationID(_ context.Context, conversationID string) ([]*model.Response, error) {
	var out []*model.Response
	for qid := range r.responses[conversationID] {
		resp := r.responses[conversationID][qid]
		out = append(out, &resp)
	}
	return out, nil
}

func (r *memRespRepo) DeleteByConversationID(_ context.Context, conversationID string) error {
	delete(r.responses, conversationID)
	return nil
}

type memConvCache struct {
	snaps map[string]cache.Snapshot
}

func (c *memConvCache) Set(_ context.Context, id string, snap *cache.Snapshot) error {
	c.snaps[id] = *snap
	return nil
}

func (c *memConvCache) Get(_ context.Context, id string) (*cache.Snapshot, error) {
	snap, ok := c.snaps[id]
	if !ok {
		return nil, nil
	}
	out := snap
	return &out, nil
}

func (c *memConvCache) Delete(_ context.Context, id string) error {
	delete(c.snaps, id)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cat := catalog.Default()
	authSvc := service.NewAuthService()
	convSvc := service.NewConversationService(
		cat,
		&memConvRepo{convs: make(map[string]model.Conversation)},
		&memRespRepo{responses: make(map[string]map[string]model.Response)},
		&memConvCache{snaps: make(map[string]cache.Snapshot)},
	)

	router := NewRouter(&Container{
		Catalog:             cat,
		AuthService:         authSvc,
		ConversationService: convSvc,
		WSHub:               ws.NewHub(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]json.RawMessage
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func startConversation(t *testing.T, srv *httptest.Server, token string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var conv model.Conversation
	require.NoError(t, json.Unmarshal(body["conversation"], &conv))
	require.NotEmpty(t, conv.ID)
	return conv.ID
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", model.LoginRequest{
		Username: "rep",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	require.NoError(t, json.Unmarshal(body["token"], &token))
	return token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogEndpoint_HidesScoreVectors(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/catalog", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var questions []model.Question
	require.NoError(t, json.Unmarshal(body["questions"], &questions))
	assert.Equal(t, catalog.Default().Len(), len(questions))

	// The wire format must not leak option weights.
	assert.NotContains(t, string(body["questions"]), "scores")
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "", model.LoginRequest{
		Username: "rep",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAnonymousQuestionnaireFlow(t *testing.T) {
	srv := newTestServer(t)
	id := startConversation(t, srv, "")
	base := srv.URL + "/v1/conversations/" + id

	cat := catalog.Default()

	// Answer all but the last question.
	for i := 0; i < cat.Len()-1; i++ {
		q := cat.QuestionAt(i)
		resp, body := doJSON(t, http.MethodPost, base+"/responses", "", map[string]string{
			"questionId": q.ID,
			"optionId":   q.Options[0].ID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var next int
		require.NoError(t, json.Unmarshal(body["nextIndex"], &next))
		assert.Equal(t, i+1, next)
	}

	// Completing early without force is rejected.
	resp, _ := doJSON(t, http.MethodPost, base+"/complete", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Anonymous force is ignored, still rejected.
	resp, _ = doJSON(t, http.MethodPost, base+"/complete?force=true", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Answer the last question and complete.
	last := cat.QuestionAt(cat.Len() - 1)
	resp, _ = doJSON(t, http.MethodPost, base+"/responses", "", map[string]string{
		"questionId": last.ID,
		"optionId":   last.Options[0].ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, base+"/complete", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conv model.Conversation
	require.NoError(t, json.Unmarshal(body["conversation"], &conv))
	assert.Equal(t, model.ConversationCompleted, conv.Status)
	assert.True(t, conv.Recommended.IsValid())

	// Recommendation endpoint now serves the result.
	resp, body = doJSON(t, http.MethodGet, base+"/recommendation", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recommended model.Category
	require.NoError(t, json.Unmarshal(body["recommended"], &recommended))
	assert.Equal(t, conv.Recommended, recommended)

	// Submitting to a completed conversation conflicts.
	resp, _ = doJSON(t, http.MethodPost, base+"/responses", "", map[string]string{
		"questionId": "q1", "optionId": "a",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSubmit_InvalidIDs(t *testing.T) {
	srv := newTestServer(t)
	id := startConversation(t, srv, "")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/"+id+"/responses", "", map[string]string{
		"questionId": "bogus", "optionId": "a",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/conversations/missing/responses", "", map[string]string{
		"questionId": "q1", "optionId": "a",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRepFlow_ForceCompleteAndOverride(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)
	id := startConversation(t, srv, token)
	base := srv.URL + "/v1/conversations/" + id

	q := catalog.Default().QuestionAt(0)
	resp, _ := doJSON(t, http.MethodPost, base+"/responses", token, map[string]string{
		"questionId": q.ID, "optionId": q.Options[0].ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Rep may force-complete early.
	resp, body := doJSON(t, http.MethodPost, base+"/complete?force=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conv model.Conversation
	require.NoError(t, json.Unmarshal(body["conversation"], &conv))
	assert.Equal(t, model.ConversationCompleted, conv.Status)

	// Administrative override, rep-only.
	resp, _ = doJSON(t, http.MethodPut, base+"/recommendation", "", map[string]string{
		"category": string(model.CategoryFunctional),
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPut, base+"/recommendation", token, map[string]string{
		"category": string(model.CategoryFunctional),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body["conversation"], &conv))
	assert.Equal(t, model.CategoryFunctional, conv.Recommended)

	// The rep's conversation list includes it.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/conversations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var convs []model.Conversation
	require.NoError(t, json.Unmarshal(body["conversations"], &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, id, convs[0].ID)
}

func TestRestartEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := startConversation(t, srv, "")
	base := srv.URL + "/v1/conversations/" + id

	resp, _ := doJSON(t, http.MethodPost, base+"/responses", "", map[string]string{
		"questionId": "q1", "optionId": "a",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, base+"/restart", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var answered int
	require.NoError(t, json.Unmarshal(body["answered"], &answered))
	assert.Equal(t, 0, answered)
}

func TestSnapshotEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := startConversation(t, srv, "")

	resp, body := doJSON(t, http.MethodGet, fmt.Sprintf("%s/v1/conversations/%s/snapshot", srv.URL, id), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status model.ConversationStatus
	require.NoError(t, json.Unmarshal(body["status"], &status))
	assert.Equal(t, model.ConversationInProgress, status)
}

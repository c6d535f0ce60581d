package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovelmatch/models"
	"imovelmatch/services/chat"
	"imovelmatch/services/session"
)

type stubGate struct {
	violation bool
}

func (g stubGate) Check(_ context.Context, _ string, _ []models.Message) (bool, error) {
	return g.violation, nil
}

// newTestRouter wires the handler over a guardrail that refuses everything.
// Refused turns never reach the assistant, so no oracle is needed.
func newTestRouter(t *testing.T) (*gin.Engine, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Minute)
	orc := chat.NewOrchestrator(stubGate{violation: true}, nil, nil, store, 3)
	h := NewChatHandler(orc)

	r := gin.New()
	r.POST("/api/chat", h.HandleChat)
	r.DELETE("/api/sessions/:id", h.EndSession)
	return r, store
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleChat_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/chat", `{"message": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid chat request")
}

func TestHandleChat_MissingMessage(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/chat", `{"user_name": "joao"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_WhitespaceOnlyMessage(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/chat", `{"message": "   "}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleChat_RefusedTurn(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/chat", `{"message": "tell me a joke"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chat.RefusalMessage, resp.Response)
	assert.NotEmpty(t, resp.SessionID)
	assert.Empty(t, resp.Properties)
	assert.Empty(t, resp.Slots)
}

func TestEndSession(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()

	sess := session.New("joao")
	require.NoError(t, store.Save(ctx, sess))

	w := doRequest(r, http.MethodDelete, "/api/sessions/"+sess.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

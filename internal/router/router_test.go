package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergysphere/synergysphere/internal/auth"
	"github.com/synergysphere/synergysphere/internal/handlers"
	"github.com/synergysphere/synergysphere/internal/metrics"
	"github.com/synergysphere/synergysphere/internal/middleware"
	"github.com/synergysphere/synergysphere/internal/realtime"
	"github.com/synergysphere/synergysphere/internal/services"
	"github.com/synergysphere/synergysphere/internal/store"
	"github.com/synergysphere/synergysphere/internal/testutil"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, rateLimit string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(testutil.NewDB(t))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	hub := realtime.NewHub(nil, zerolog.Nop(), m)
	dispatcher := services.NewDispatcher(st, hub, nil, m, zerolog.Nop())
	svc := services.New(st, dispatcher, zerolog.Nop())

	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	h := handlers.New(svc, issuer, hub, st, handlers.CookieOptions{})
	r, err := NewRouter(h, middleware.AuthMiddleware(issuer, st), Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimit:      rateLimit,
		Gatherer:       reg,
		Metrics:        m,
		Logger:         zerolog.Nop(),
	})
	require.NoError(t, err)

	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (s *testServer) register(name string) authResponse {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authResponse](s.t, w)
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "synergysphere_http_request_duration_seconds")
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/projects", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ada := s.register("ada")

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "Ada", "email": "ada@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "Bob", "email": "bob@example.com", "password": "nodigits"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password must contain at least one number", errorMessage(t, w))

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ada@example.com", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ada@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")

	w = s.do(http.MethodPatch, "/api/auth/me", ada.Token, gin.H{"name": "Ada L"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada L")
}

func TestCollaborationFlow(t *testing.T) {
	s := newTestServer(t, "")

	owner := s.register("owner")
	member := s.register("member")
	outsider := s.register("outsider")

	w := s.do(http.MethodPost, "/api/projects", owner.Token, gin.H{"title": "Apollo", "description": "Moon"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decode[map[string]any](t, w)
	projectPath := fmt.Sprintf("/api/projects/%v", project["id"])

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, projectPath, outsider.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/projects/9999", outsider.Token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/projects/abc", owner.Token, nil).Code)

	w = s.do(http.MethodPost, projectPath+"/team", member.Token, gin.H{"email": "outsider@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "only the project creator can add team members", errorMessage(t, w))

	w = s.do(http.MethodPost, projectPath+"/team", owner.Token, gin.H{"email": "member@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, projectPath+"/team", owner.Token, gin.H{"email": "member@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Member starts a thread; only the creator hears about it.
	w = s.do(http.MethodPost, projectPath+"/messages", member.Token, gin.H{"content": "Kickoff?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	m1 := decode[map[string]any](t, w)

	w = s.do(http.MethodGet, "/api/notifications?unread=true", owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ownerNotes := decode[[]map[string]any](t, w)
	require.Len(t, ownerNotes, 1)
	assert.Equal(t, "message_posted", ownerNotes[0]["type"])

	w = s.do(http.MethodGet, "/api/notifications", member.Token, nil)
	assert.Empty(t, decode[[]map[string]any](t, w))

	noteID := ownerNotes[0]["id"]
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, fmt.Sprintf("/api/notifications/%v/read", noteID), member.Token, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPatch, fmt.Sprintf("/api/notifications/%v/read", noteID), owner.Token, nil).Code)

	w = s.do(http.MethodPost, projectPath+"/messages", owner.Token, gin.H{"content": "Monday", "parent_message_id": m1["id"]})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("%s/messages/%v", projectPath, m1["id"]), member.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	thread := decode[struct {
		Message map[string]any   `json:"message"`
		Replies []map[string]any `json:"replies"`
	}](t, w)
	assert.Equal(t, "Kickoff?", thread.Message["content"])
	require.Len(t, thread.Replies, 1)
	assert.Equal(t, "Monday", thread.Replies[0]["content"])

	w = s.do(http.MethodPatch, "/api/notifications/read-all", member.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["updated"])

	// The creator cannot delete someone else's message.
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, fmt.Sprintf("%s/messages/%v", projectPath, m1["id"]), owner.Token, nil).Code)

	w = s.do(http.MethodPost, projectPath+"/tasks", owner.Token, gin.H{
		"title":          "Book venue",
		"assigned_to_id": member.User.ID,
		"due_date":       "2030-01-02T15:04:05Z",
		"priority":       "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decode[map[string]any](t, w)
	assert.Equal(t, "todo", task["status"])

	w = s.do(http.MethodGet, "/api/tasks/mine", member.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]map[string]any](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, "Book venue", mine[0]["title"])

	taskPath := fmt.Sprintf("%s/tasks/%v", projectPath, task["id"])
	w = s.do(http.MethodPut, taskPath, member.Token, gin.H{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "done", decode[map[string]any](t, w)["status"])

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, taskPath, outsider.Token, nil).Code)

	w = s.do(http.MethodGet, projectPath, member.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[map[string]any](t, w)
	assert.Len(t, detail["team_members"], 1)
	assert.Len(t, detail["tasks"], 1)

	w = s.do(http.MethodPut, projectPath, owner.Token, gin.H{"title": "Apollo II"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Apollo II", decode[map[string]any](t, w)["title"])

	w = s.do(http.MethodPatch, projectPath, owner.Token, gin.H{"description": "Mars"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Mars", decode[map[string]any](t, w)["description"])

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPut, projectPath, member.Token, gin.H{"title": "Hijacked"}).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, projectPath, member.Token, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, projectPath, owner.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, projectPath, owner.Token, nil).Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, "2-M")

	for range 2 {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/health", "", nil).Code)
	}

	w := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Rate limit exceeded"))
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"ugandapi-chat/config"
	"ugandapi-chat/internal/handler"
	"ugandapi-chat/internal/repository"
	"ugandapi-chat/internal/services"
	relay_errors "ugandapi-chat/pkg/errors"
	"ugandapi-chat/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type stubAssistant struct {
	mu      sync.Mutex
	counter int
	reply   string
}

func (s *stubAssistant) CreateThread(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return fmt.Sprintf("thread_%d", s.counter), nil
}

func (s *stubAssistant) AddUserMessage(ctx context.Context, threadID, content string) error {
	return nil
}

func (s *stubAssistant) Run(ctx context.Context, threadID string) (string, error) {
	return s.reply, nil
}

// stubGuard rejects content containing any blocked word.
type stubGuard struct {
	blocked []string
}

func (g *stubGuard) Validate(ctx context.Context, content string) error {
	lowered := strings.ToLower(content)
	for _, word := range g.blocked {
		if strings.Contains(lowered, word) {
			return fmt.Errorf("%w: message must be about farming topics", relay_errors.ErrContentRejected)
		}
	}
	return nil
}

type stubThreadStore struct {
	mu      sync.Mutex
	threads map[string]string
}

func (s *stubThreadStore) Get(ctx context.Context, sender string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threads[sender], nil
}

func (s *stubThreadStore) Set(ctx context.Context, sender, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[sender] = threadID
	return nil
}

type testServer struct {
	srv      *Server
	messages *repository.MemoryMessageRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppPort:        "0",
		AppMode:        TestMode,
		JWTSecret:      "test-secret",
		JWTExpiryHours: 3,
		VerifiedUsers:  []string{"alice", "bob"},
	}
	l := logger.New(logger.DevelopmentMode)

	userRepo := repository.NewMemoryUserRepository()
	messageRepo := repository.NewMemoryMessageRepository()

	userService := services.NewUserService(userRepo, cfg)
	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(
		&stubAssistant{reply: "Plant beans in Mbale at the onset of the rains, spacing rows 50cm apart."},
		&stubGuard{blocked: []string{"football"}},
		&stubThreadStore{threads: make(map[string]string)},
		messageRepo,
		l,
	)
	archiveService := services.NewArchiveService(messageRepo, nil, l)

	srv := New(cfg, l)
	srv.SetupRoutes(&Handlers{
		User:  handler.NewUserHandler(userService),
		Auth:  handler.NewAuthHandler(authService),
		Chat:  handler.NewChatHandler(chatService),
		Item:  handler.NewItemHandler(),
		Admin: handler.NewAdminHandler(archiveService),
	}, authService, nil)

	return &testServer{srv: srv, messages: messageRepo}
}

func (ts *testServer) do(t *testing.T, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)
	return w
}

func (ts *testServer) register(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
		"email":    username + "@example.com",
	})
	return ts.do(t, http.MethodPost, "/users/register", body, map[string]string{"Content-Type": "application/json"})
}

func (ts *testServer) token(t *testing.T, username, password string) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	w := ts.do(t, http.MethodPost, "/api/token", []byte(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func postChat(t *testing.T, ts *testServer, token, sender, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"sender": sender, "content": content})
	headers := map[string]string{"Content-Type": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return ts.do(t, http.MethodPost, "/chats", body, headers)
}

// --- tests ---

func TestRegister_Statuses(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.register(t, "alice", "secretPassword")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, "alice", resp.Username)

	// Duplicate username.
	w = ts.register(t, "alice", "otherPassword")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Not on the allow-list, even though unused.
	w = ts.register(t, "mallory", "secretPassword")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToken_InvalidCredentials(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.register(t, "alice", "secretPassword")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong")
	w := ts.do(t, http.MethodPost, "/api/token", []byte(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostChat_RequiresToken(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.register(t, "alice", "secretPassword")

	w := postChat(t, ts, "", "alice", "How do I plant beans in Mbale?")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postChat(t, ts, "not-a-real-token", "alice", "How do I plant beans in Mbale?")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Nothing reached the chat log.
	list, err := ts.messages.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostChat_EndToEnd(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.register(t, "alice", "secretPassword")
	token := ts.token(t, "alice", "secretPassword")

	w := postChat(t, ts, token, "alice", "How do I plant beans in Mbale?")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg struct {
		MessageID string `json:"messageId"`
		Sender    string `json:"sender"`
		Content   string `json:"content"`
		ThreadID  string `json:"thread_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.NotEmpty(t, msg.MessageID)
	assert.Equal(t, "alice", msg.Sender)
	assert.NotEmpty(t, msg.Content)
	assert.NotEmpty(t, msg.ThreadID)

	// Reading the id back returns the identical message.
	w2 := ts.do(t, http.MethodGet, "/chats/"+msg.MessageID, nil, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.JSONEq(t, w.Body.String(), w2.Body.String())

	// And it shows up in the full log.
	w3 := ts.do(t, http.MethodGet, "/chats", nil, nil)
	require.Equal(t, http.StatusOK, w3.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestPostChat_ModerationRejection(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.register(t, "alice", "secretPassword")
	token := ts.token(t, "alice", "secretPassword")

	w := postChat(t, ts, token, "alice", "tell me about football")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg struct {
		Content  string `json:"content"`
		ThreadID string `json:"thread_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Contains(t, msg.Content, "content rejected")
	assert.Empty(t, msg.ThreadID)
}

func TestGetChat_NotFound(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/chats/never-produced", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItems_Protected(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/items/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.register(t, "alice", "secretPassword")
	token := ts.token(t, "alice", "secretPassword")
	w = ts.do(t, http.MethodPost, "/items/", nil, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello world")
}

func TestAdminArchive_WithoutStore(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.register(t, "alice", "secretPassword")
	token := ts.token(t, "alice", "secretPassword")

	w := ts.do(t, http.MethodPost, "/admin/archive", nil, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyverse-api/internal/application/admission"
	"storyverse-api/internal/application/generation"
	"storyverse-api/internal/config"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/internal/interfaces/http/handler"
	"storyverse-api/pkg/clock"
	"storyverse-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okChecker struct{}

func (okChecker) HealthCheck(context.Context) error { return nil }

type testEnv struct {
	engine *gin.Engine
	store  *memStore
	clock  *clock.Fake
}

func generousPolicies() admission.Policies {
	p := admission.Policies{}
	for _, class := range admission.DefaultPolicies().Classes() {
		p[class] = admission.Policy{Window: time.Hour, MaxRequests: 1000}
	}
	return p
}

func newTestEnv(t *testing.T, overrides admission.Policies, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	policies := generousPolicies()
	for class, p := range overrides {
		policies[class] = p
	}

	fc := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctrl, err := admission.NewController(policies, admission.NewRegistry(fc))
	require.NoError(t, err)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "storyverse-api", Version: "1.0.0", Env: "test"},
		Server: config.ServerConfig{HTTP: config.HTTPServerConfig{MaxBodyBytes: 1 << 20}},
		Observability: config.ObservabilityConfig{
			Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := newMemStore()
	jwtManager := utils.NewJWTManager("test-secret", "storyverse-api", 0)
	storyRepo := memStories{store}

	handlers := &Handlers{
		Health: handler.NewHealthHandler(cfg.App.Version, okChecker{}, nil),
		User:   handler.NewUserHandler(memUsers{store}, jwtManager),
		Story:  handler.NewStoryHandler(storyRepo),
		Social: handler.NewSocialHandler(storyRepo, memSocial{store}),
		AI:     handler.NewAIHandler(generation.NewGateway(nil, "")),
	}

	r := New(cfg, handlers, ctrl, jwtManager)
	return &testEnv{engine: r.Engine(), store: store, clock: fc}
}

type envelope struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type call struct {
	method  string
	path    string
	body    any
	token   string
	ip      string
	headers map[string]string
}

func (e *testEnv) do(t *testing.T, c call) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.ip != "" {
		req.RemoteAddr = c.ip + ":4321"
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// register 注册并返回 token 与用户 ID
func (e *testEnv) register(t *testing.T, username string) (string, string) {
	t.Helper()
	w, env := e.do(t, call{method: http.MethodPost, path: "/api/users/register", body: map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret-pass",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	auth := decode[dto.AuthResponse](t, env.Data)
	return auth.Token, auth.User.ID
}

func (e *testEnv) createStory(t *testing.T, token string, body map[string]any) dto.StoryResponse {
	t.Helper()
	w, env := e.do(t, call{method: http.MethodPost, path: "/api/stories", body: body, token: token})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return *decode[dto.StoryEnvelope](t, env.Data).Story
}

func TestWelcomeAndHealth(t *testing.T) {
	e := newTestEnv(t, nil)

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to StoryVerse API","version":"1.0.0"}`, w.Body.String())

	for _, path := range []string{"/health", "/live", "/ready"} {
		w = httptest.NewRecorder()
		e.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w, env := e.do(t, call{method: http.MethodGet, path: "/api/nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", env.Message)
}

func TestUserFlow(t *testing.T) {
	e := newTestEnv(t, nil)

	w, env := e.do(t, call{method: http.MethodPost, path: "/api/users/register", body: map[string]any{
		"username": "ann", "email": "ann@example.com",
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username, email and password are required", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/users/register", body: map[string]any{
		"username":    "ann",
		"email":       "ann@example.com",
		"password":    "secret-pass",
		"preferences": map[string]any{"theme": "dark"},
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", env.Message)
	auth := decode[dto.AuthResponse](t, env.Data)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "ann", auth.User.Username)
	assert.Equal(t, "dark", auth.User.Preferences["theme"])
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), auth.ExpiresIn)
	assert.NotContains(t, string(env.Data), "secret-pass")

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/users/register", body: map[string]any{
		"username": "ann2", "email": "ann@example.com", "password": "x",
	}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/users/login", body: map[string]any{
		"email": "ann@example.com", "password": "wrong",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/users/login", body: map[string]any{
		"email": "nobody@example.com", "password": "secret-pass",
	}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/users/login", body: map[string]any{"email": "ann@example.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/users/login", body: map[string]any{
		"email": "ann@example.com", "password": "secret-pass",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)
	token := decode[dto.AuthResponse](t, env.Data).Token

	w, _ = e.do(t, call{method: http.MethodGet, path: "/api/users/profile"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/users/profile", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ann@example.com", decode[dto.ProfileResponse](t, env.Data).User.Email)

	w, env = e.do(t, call{method: http.MethodPut, path: "/api/users/preferences", token: token, body: map[string]any{
		"preferences": map[string]any{"genres": []string{"fantasy"}},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Preferences updated", env.Message)
	prefs := decode[dto.ProfileResponse](t, env.Data).User.Preferences
	assert.Equal(t, []any{"fantasy"}, prefs["genres"])
	assert.NotContains(t, prefs, "theme")

	w, env = e.do(t, call{method: http.MethodPatch, path: "/api/users/preferences", token: token, body: map[string]any{
		"theme":  "sepia",
		"genres": nil,
	}})
	require.Equal(t, http.StatusOK, w.Code)
	prefs = decode[dto.ProfileResponse](t, env.Data).User.Preferences
	assert.Equal(t, "sepia", prefs["theme"])
	assert.NotContains(t, prefs, "genres")

	w, env = e.do(t, call{method: http.MethodPatch, path: "/api/users/preferences", token: token, body: []int{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Preferences patch must be a JSON object", env.Message)
}

func TestStoryFlow(t *testing.T) {
	e := newTestEnv(t, nil)
	annToken, annID := e.register(t, "ann")
	bobToken, _ := e.register(t, "bob")

	w, env := e.do(t, call{method: http.MethodPost, path: "/api/stories", token: annToken, body: map[string]any{"title": "Only title"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and content are required", env.Message)

	w, _ = e.do(t, call{method: http.MethodPost, path: "/api/stories", body: map[string]any{"title": "t", "content": "c"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	story := e.createStory(t, annToken, map[string]any{
		"title":      "Sky Pirates",
		"content":    "Once upon a time.",
		"genre":      "Fantasy",
		"characters": []string{"Mira"},
	})
	assert.Equal(t, "draft", story.Status)
	assert.Equal(t, annID, story.UserID)
	assert.Equal(t, []string{"Mira"}, story.Characters)

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[dto.StoryListResponse](t, env.Data).Count, "drafts are not listed")

	w, env = e.do(t, call{method: http.MethodPut, path: "/api/stories/" + story.ID, token: bobToken, body: map[string]any{"status": "published"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to update this story", env.Message)

	w, env = e.do(t, call{method: http.MethodPut, path: "/api/stories/" + story.ID, token: annToken, body: map[string]any{"status": "archived"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Status must be draft or published", env.Message)

	w, env = e.do(t, call{method: http.MethodPut, path: "/api/stories/" + story.ID, token: annToken, body: map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", env.Message)

	w, env = e.do(t, call{method: http.MethodPut, path: "/api/stories/" + story.ID, token: annToken, body: map[string]any{
		"status": "published", "title": "Sky Pirates II",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Story updated successfully", env.Message)
	updated := decode[dto.StoryEnvelope](t, env.Data).Story
	assert.Equal(t, "published", updated.Status)
	assert.Equal(t, "Sky Pirates II", updated.Title)

	e.createStory(t, bobToken, map[string]any{"title": "Noir", "content": "Rain.", "genre": "Mystery", "status": "published"})

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories?genre=Fantasy"})
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.StoryListResponse](t, env.Data)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "ann", list.Stories[0].AuthorUsername)

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories?limit=1&offset=0"})
	require.Equal(t, http.StatusOK, w.Code)
	list = decode[dto.StoryListResponse](t, env.Data)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Noir", list.Stories[0].Title, "newest first")

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories/my-stories", token: bobToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.StoryListResponse](t, env.Data).Count)

	// 章节
	w, env = e.do(t, call{method: http.MethodPost, path: "/api/stories/" + story.ID + "/chapters", token: bobToken, body: map[string]any{"title": "x"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to add chapters to this story", env.Message)

	for _, ch := range []map[string]any{
		{"title": "Two", "content": "b", "orderIndex": 2},
		{"title": "One", "content": "a", "orderIndex": 1},
	} {
		w, env = e.do(t, call{method: http.MethodPost, path: "/api/stories/" + story.ID + "/chapters", token: annToken, body: ch})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Chapter added successfully", env.Message)
	}

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories/" + story.ID + "/chapters"})
	require.Equal(t, http.StatusOK, w.Code)
	chapters := decode[dto.ChapterListResponse](t, env.Data)
	require.Equal(t, 2, chapters.Count)
	assert.Equal(t, "One", chapters.Chapters[0].Title)
	assert.Equal(t, 2, chapters.Chapters[1].OrderIndex)

	// 不存在与非法 ID
	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories/not-a-uuid"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Story not found", env.Message)
	w, _ = e.do(t, call{method: http.MethodGet, path: "/api/stories/00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 删除
	w, env = e.do(t, call{method: http.MethodDelete, path: "/api/stories/" + story.ID, token: bobToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to delete this story", env.Message)

	w, env = e.do(t, call{method: http.MethodDelete, path: "/api/stories/" + story.ID, token: annToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Story deleted successfully", env.Message)

	w, _ = e.do(t, call{method: http.MethodGet, path: "/api/stories/" + story.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSocialFlow(t *testing.T) {
	e := newTestEnv(t, nil)
	annToken, _ := e.register(t, "ann")
	bobToken, _ := e.register(t, "bob")
	story := e.createStory(t, annToken, map[string]any{"title": "T", "content": "C", "status": "published"})
	likePath := "/api/stories/" + story.ID + "/like"

	w, env := e.do(t, call{method: http.MethodPost, path: likePath, token: bobToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Story liked successfully", env.Message)
	assert.True(t, decode[dto.LikeEnvelope](t, env.Data).Created)

	w, env = e.do(t, call{method: http.MethodPost, path: likePath, token: bobToken})
	require.Equal(t, http.StatusOK, w.Code, "liking twice is idempotent")
	assert.False(t, decode[dto.LikeEnvelope](t, env.Data).Created)

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories/" + story.ID + "/likes"})
	require.Equal(t, http.StatusOK, w.Code)
	likes := decode[dto.LikeListResponse](t, env.Data)
	require.Equal(t, 1, likes.Count)
	assert.Equal(t, "bob", likes.Likes[0].Username)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/stories/00000000-0000-0000-0000-000000000000/like", token: bobToken})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 评论
	commentsPath := "/api/stories/" + story.ID + "/comments"
	w, env = e.do(t, call{method: http.MethodPost, path: commentsPath, token: bobToken, body: map[string]any{"content": "  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Comment content is required", env.Message)

	var commentIDs []string
	for _, text := range []string{"first", "second"} {
		w, env = e.do(t, call{method: http.MethodPost, path: commentsPath, token: bobToken, body: map[string]any{"content": text}})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Comment added successfully", env.Message)
		commentIDs = append(commentIDs, decode[dto.CommentEnvelope](t, env.Data).Comment.ID)
	}

	w, env = e.do(t, call{method: http.MethodGet, path: commentsPath})
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode[dto.CommentListResponse](t, env.Data)
	require.Equal(t, 2, comments.Count)
	assert.Equal(t, "second", comments.Comments[0].Content, "newest first")
	assert.Equal(t, "bob", comments.Comments[0].Username)

	w, env = e.do(t, call{method: http.MethodGet, path: "/api/stories/" + story.ID})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.StoryEnvelope](t, env.Data).Story
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(2), got.CommentsCount)

	w, _ = e.do(t, call{method: http.MethodDelete, path: commentsPath + "/" + commentIDs[0], token: annToken})
	assert.Equal(t, http.StatusNotFound, w.Code, "only the author may delete a comment")

	other := e.createStory(t, annToken, map[string]any{"title": "Other", "content": "C", "status": "published"})
	w, _ = e.do(t, call{method: http.MethodDelete, path: "/api/stories/" + other.ID + "/comments/" + commentIDs[0], token: bobToken})
	assert.Equal(t, http.StatusNotFound, w.Code, "comment must belong to the story in the path")

	w, env = e.do(t, call{method: http.MethodDelete, path: commentsPath + "/" + commentIDs[0], token: bobToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment deleted successfully", env.Message)

	w, env = e.do(t, call{method: http.MethodDelete, path: likePath, token: bobToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Story unliked successfully", env.Message)

	w, _ = e.do(t, call{method: http.MethodDelete, path: likePath, token: bobToken})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthClassIsRateLimited(t *testing.T) {
	e := newTestEnv(t, admission.Policies{
		admission.ClassAuth: {Window: 15 * time.Minute, MaxRequests: 2},
	})
	login := call{method: http.MethodPost, path: "/api/users/login", ip: "198.51.100.7", body: map[string]any{
		"email": "ann@example.com", "password": "x",
	}}

	for i := 0; i < 2; i++ {
		w, _ := e.do(t, login)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w, env := e.do(t, login)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "900", w.Header().Get("Retry-After"))
	require.NotNil(t, env.Error)
	assert.Equal(t, "1006", env.Error.ErrorCode)

	other := login
	other.ip = "198.51.100.8"
	w, _ = e.do(t, other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	e.clock.Advance(15 * time.Minute)
	w, _ = e.do(t, login)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthClassIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	e := newTestEnv(t, admission.Policies{
		admission.ClassAuth: {Window: 15 * time.Minute, MaxRequests: 5},
	})

	admitted := 0
	for i := 0; i < 50; i++ {
		w, _ := e.do(t, call{
			method:  http.MethodPost,
			path:    "/api/users/login",
			ip:      "203.0.113.9",
			headers: map[string]string{"X-Forwarded-For": fmt.Sprintf("10.1.%d.%d", i/250, i%250+1)},
			body:    map[string]any{"email": "ann@example.com", "password": "x"},
		})
		if w.Code != http.StatusTooManyRequests {
			admitted++
		}
	}
	assert.Equal(t, 5, admitted)
}

func TestAuthClassUsesForwardedForFromTrustedProxy(t *testing.T) {
	e := newTestEnv(t, admission.Policies{
		admission.ClassAuth: {Window: 15 * time.Minute, MaxRequests: 1},
	}, func(cfg *config.Config) {
		cfg.Server.HTTP.TrustedProxies = []string{"10.0.0.0/8"}
	})
	login := func(client string) int {
		w, _ := e.do(t, call{
			method:  http.MethodPost,
			path:    "/api/users/login",
			ip:      "10.0.0.2",
			headers: map[string]string{"X-Forwarded-For": client},
			body:    map[string]any{"email": "ann@example.com", "password": "x"},
		})
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, login("198.51.100.1"))
	assert.Equal(t, http.StatusUnauthorized, login("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, login("198.51.100.1"))
}

func TestAIEndpoints(t *testing.T) {
	e := newTestEnv(t, admission.Policies{
		admission.ClassAI: {Window: time.Hour, MaxRequests: 3},
	})
	token, _ := e.register(t, "ann")

	w, _ := e.do(t, call{method: http.MethodPost, path: "/api/ai/generate-story", body: map[string]any{"genre": "Fantasy"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := e.do(t, call{method: http.MethodPost, path: "/api/ai/generate-story", token: token, body: map[string]any{"genre": "Fantasy"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Genre and setting are required", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/ai/generate-story", token: token, body: map[string]any{
		"genre": "Fantasy", "setting": "a floating city", "characters": []any{"Mira", map[string]any{"name": "Ash"}},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Story generated successfully", env.Message)
	story := decode[dto.GeneratedStoryResponse](t, env.Data)
	assert.Equal(t, generation.FallbackStory(), story.Content)
	assert.Equal(t, "a floating city", story.Metadata.Setting)
	require.Len(t, story.Metadata.Characters, 2)
	assert.Equal(t, "Ash", story.Metadata.Characters[1].Name)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/ai/generate-character", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Character generated successfully", env.Message)
	assert.Equal(t, "Generated Character", decode[dto.CharacterResponse](t, env.Data).Character.Name)

	// 第 4 次生成请求超出 ai 类别配额
	w, env = e.do(t, call{method: http.MethodPost, path: "/api/ai/enhance-story", token: token, body: map[string]any{
		"content": "Once.", "enhancement": "darker",
	}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
}

func TestEnhanceStory(t *testing.T) {
	e := newTestEnv(t, nil)
	token, _ := e.register(t, "ann")

	w, env := e.do(t, call{method: http.MethodPost, path: "/api/ai/enhance-story", token: token, body: map[string]any{"content": "Once."}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Content and enhancement type are required", env.Message)

	w, env = e.do(t, call{method: http.MethodPost, path: "/api/ai/enhance-story", token: token, body: map[string]any{
		"content": "Once.", "enhancement": "darker",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Story enhanced successfully", env.Message)
	assert.Equal(t, generation.FallbackStory(), decode[dto.EnhancedStoryResponse](t, env.Data).Content)
}

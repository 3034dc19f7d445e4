package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/MorningZephyr/zhen-bot/internal/bot_service/service"
	"github.com/MorningZephyr/zhen-bot/internal/models"
	"github.com/MorningZephyr/zhen-bot/internal/profile"
	"github.com/MorningZephyr/zhen-bot/internal/profile/representer"
	"github.com/MorningZephyr/zhen-bot/internal/profile/store"
	"github.com/MorningZephyr/zhen-bot/pkg/logger"
	"github.com/MorningZephyr/zhen-bot/pkg/ratelimiter"
)

const testSecret = "test-secret"

// fakeExtractor returns one fixed fact for every statement.
type fakeExtractor struct{}

func (fakeExtractor) Extract(ctx context.Context, statement string) *models.ExtractionResult {
	return &models.ExtractionResult{
		Facts:     []models.CandidateFact{{Key: "favorite color", Value: "blue", Confidence: models.ConfidenceHigh}},
		IsFactual: true,
		Reasoning: "test",
	}
}

// fakeLLM answers every persona question with a fixed reply.
type fakeLLM struct{}

func (fakeLLM) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	return &models.GenerateContentResponse{
		Content: []models.Content{
			{Parts: []*models.Part{{Text: "My favorite color is blue."}}, Role: models.SpeakerModel},
		},
	}, nil
}

func (fakeLLM) GenerateContentStream(ctx context.Context, req *models.GenerateContentRequest) (<-chan *models.GenerateContentResponse, error) {
	ch := make(chan *models.GenerateContentResponse)
	close(ch)
	return ch, nil
}

func newTestRouterWithHealth(t *testing.T, limiter ratelimiter.RateLimiter, health map[string]HealthCheckFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("bot_service_test", "", "")
	engine := profile.NewEngine(store.NewMemoryStore(), fakeExtractor{}, "test_app", log, nil)
	botService := service.NewService(engine, representer.New(fakeLLM{}), log)
	handler := NewHandler(botService, "bot_service_test", health)
	return SetupRouter(handler, testSecret, limiter)
}

func newTestRouter(t *testing.T, limiter ratelimiter.RateLimiter) *gin.Engine {
	t.Helper()
	return newTestRouterWithHealth(t, limiter, nil)
}

func tokenFor(t *testing.T, callerID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": callerID})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthzNeedsNoAuth(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestHealthzReportsComponents(t *testing.T) {
	router := newTestRouterWithHealth(t, nil, map[string]HealthCheckFunc{
		"redis": func(ctx context.Context) error { return nil },
		"kafka": func(ctx context.Context) error { return nil },
	})

	w := doRequest(router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %q", resp.Status)
	}
	if resp.Components["redis"] != "ok" || resp.Components["kafka"] != "ok" {
		t.Errorf("unexpected components: %v", resp.Components)
	}
}

func TestHealthzDegradedWhenBackendDown(t *testing.T) {
	router := newTestRouterWithHealth(t, nil, map[string]HealthCheckFunc{
		"redis": func(ctx context.Context) error { return nil },
		"kafka": func(ctx context.Context) error { return errors.New("broker unreachable") },
	})

	w := doRequest(router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("expected degraded, got %q", resp.Status)
	}
	if resp.Components["kafka"] != "broker unreachable" {
		t.Errorf("expected failing component message, got %v", resp.Components)
	}
	if resp.Components["redis"] != "ok" {
		t.Errorf("healthy component should still report ok, got %v", resp.Components)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestMalformedAuthHeaderRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/zhen/facts", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOwnerCanLearn(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/profiles/zhen/facts", tokenFor(t, "zhen"),
		LearnRequest{Statement: "My favorite color is blue"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.LearnResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != models.StatusLearned {
		t.Errorf("expected learned, got %s", result.Status)
	}
	if result.Extracted["favorite_color"] != "blue" {
		t.Errorf("unexpected extracted facts: %v", result.Extracted)
	}
}

func TestGuestCannotLearn(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/profiles/zhen/facts", tokenFor(t, "alice"),
		LearnRequest{Statement: "Zhen likes green"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	var result models.LearnResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != models.StatusUnauthorized {
		t.Errorf("expected unauthorized, got %s", result.Status)
	}
}

func TestGuestCanRead(t *testing.T) {
	router := newTestRouter(t, nil)

	// Owner writes, guest reads.
	doRequest(router, http.MethodPost, "/api/v1/profiles/zhen/facts", tokenFor(t, "zhen"),
		LearnRequest{Statement: "My favorite color is blue"})

	w := doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts", tokenFor(t, "alice"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var summary models.ProfileSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if summary.Status != models.StatusFound || summary.FactCount != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	router := newTestRouter(t, nil)
	token := tokenFor(t, "alice")

	w := doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts/search", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	// A whitespace-only query is the caller's fault too, not a server error.
	w = doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts/search?q=%20%20", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank query, got %d", w.Code)
	}
}

func TestSearchFindsFacts(t *testing.T) {
	router := newTestRouter(t, nil)

	doRequest(router, http.MethodPost, "/api/v1/profiles/zhen/facts", tokenFor(t, "zhen"),
		LearnRequest{Statement: "My favorite color is blue"})

	w := doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts/search?q=color", tokenFor(t, "alice"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result models.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != models.StatusFound {
		t.Errorf("expected found, got %s", result.Status)
	}
	if _, ok := result.Matches["favorite_color"]; !ok {
		t.Errorf("expected favorite_color match, got %v", result.Matches)
	}
}

func TestAskAnswersInOwnersVoice(t *testing.T) {
	router := newTestRouter(t, nil)

	doRequest(router, http.MethodPost, "/api/v1/profiles/zhen/facts", tokenFor(t, "zhen"),
		LearnRequest{Statement: "My favorite color is blue"})

	w := doRequest(router, http.MethodPost, "/api/v1/profiles/zhen/ask", tokenFor(t, "alice"),
		AskRequest{Question: "What is your favorite color?"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Answer != "My favorite color is blue." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
}

func TestRateLimitReturns429(t *testing.T) {
	router := newTestRouter(t, ratelimiter.NewTokenBucket(1, 2))
	token := tokenFor(t, "zhen")

	for i := 0; i < 2; i++ {
		w := doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := doRequest(router, http.MethodGet, "/api/v1/profiles/zhen/facts", token, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestTraceIDPropagates(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Trace-ID"); got != "trace-123" {
		t.Errorf("expected trace id echoed, got %q", got)
	}
}

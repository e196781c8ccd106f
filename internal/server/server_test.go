package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farouk/portfolio-relay/internal/config"
	"github.com/farouk/portfolio-relay/internal/logging"
	"github.com/farouk/portfolio-relay/internal/prompt"
	"github.com/farouk/portfolio-relay/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryMailer struct {
	sent []*service.MailMessage
}

func (m *memoryMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

type echoCompleter struct {
	systemPrompt string
}

func (e *echoCompleter) Complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int) (string, error) {
	e.systemPrompt = systemPrompt
	return "echo: " + userMessage, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		Port:            "0",
		AllowedOrigins:  []string{"https://faroukafolabi.com"},
		MaxBodyBytes:    1024,
		LogLevel:        "info",
		MailFrom:        "relay@faroukafolabi.com",
		MailTo:          "inbox@faroukafolabi.com",
		ChatMaxTokens:   500,
		ProviderTimeout: time.Second,
		RateLimitMax:    3,
		RateLimitWindow: time.Minute,
	}
}

func newTestServer(t *testing.T) (*Server, *memoryMailer, *echoCompleter) {
	t.Helper()
	mailer := &memoryMailer{}
	completer := &echoCompleter{}

	srv, err := NewServer(testConfig(), logging.Discard(), Dependencies{
		Mailer:    mailer,
		Completer: completer,
		Prompt:    prompt.Default(),
	})
	require.NoError(t, err)
	return srv, mailer, completer
}

func do(srv *Server, method, path, origin, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	req.RemoteAddr = "203.0.113.7:5555"

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServerRequiresProviders(t *testing.T) {
	_, err := NewServer(testConfig(), logging.Discard(), Dependencies{})
	assert.Error(t, err)
}

func TestNewServerRejectsBadTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.TrustedProxies = []string{"not-an-ip"}

	_, err := NewServer(cfg, logging.Discard(), Dependencies{Mailer: &memoryMailer{}, Completer: &echoCompleter{}, Prompt: prompt.Default()})
	assert.Error(t, err)
}

func TestContactEndToEnd(t *testing.T) {
	srv, mailer, _ := newTestServer(t)

	w := do(srv, http.MethodPost, "/api/contact", "https://faroukafolabi.com",
		`{"name":"Jane","email":"jane@x.com","message":"<b>Hi</b>"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://faroukafolabi.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "relay@faroukafolabi.com", msg.From)
	assert.Equal(t, "inbox@faroukafolabi.com", msg.To)
	assert.Equal(t, "jane@x.com", msg.ReplyTo)
	assert.Equal(t, service.DefaultContactSubject, msg.Subject)
	assert.Contains(t, msg.HTML, "&lt;b&gt;Hi&lt;/b&gt;")
}

func TestContactAlias(t *testing.T) {
	srv, mailer, _ := newTestServer(t)

	w := do(srv, http.MethodPost, "/contact", "", `{"name":"Jane","email":"jane@x.com","message":"Hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mailer.sent, 1)
}

func TestChatEndToEnd(t *testing.T) {
	srv, _, completer := newTestServer(t)

	w := do(srv, http.MethodPost, "/api/chat", "https://faroukafolabi.com", `{"message":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"echo: hello"}`, w.Body.String())
	assert.Equal(t, prompt.Default().String(), completer.systemPrompt)
}

func TestDisallowedOriginIsRejected(t *testing.T) {
	srv, mailer, _ := newTestServer(t)

	w := do(srv, http.MethodPost, "/api/contact", "https://evil.example",
		`{"name":"Jane","email":"jane@x.com","message":"Hello"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, mailer.sent)
}

func TestPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://faroukafolabi.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://faroukafolabi.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitIsSharedAcrossRoutes(t *testing.T) {
	srv, mailer, _ := newTestServer(t)
	contact := `{"name":"Jane","email":"jane@x.com","message":"Hello"}`

	assert.Equal(t, http.StatusOK, do(srv, http.MethodPost, "/api/contact", "", contact).Code)
	assert.Equal(t, http.StatusOK, do(srv, http.MethodPost, "/api/chat", "", `{"message":"hi"}`).Code)
	assert.Equal(t, http.StatusOK, do(srv, http.MethodPost, "/contact", "", contact).Code)

	w := do(srv, http.MethodPost, "/api/chat", "", `{"message":"hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Len(t, mailer.sent, 2)

	// Health is never limited
	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/api/health", "", "").Code)
}

func TestHealthRoutes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	root := do(srv, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, root.Code)
	assert.Contains(t, root.Body.String(), `"status":"operational"`)

	health := do(srv, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"healthy"`)
	assert.Equal(t, "no-store", health.Header().Get("Cache-Control"))
}

func TestUnknownRoute(t *testing.T) {
	srv, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/api/unknown", "", "").Code)
}

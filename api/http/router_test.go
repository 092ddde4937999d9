package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/shappycc2010-ctrl/HinGem/api/http"
	"github.com/shappycc2010-ctrl/HinGem/api/http/handlers"
	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/chat"
	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
	"github.com/shappycc2010-ctrl/HinGem/pkg/health"
	"github.com/shappycc2010-ctrl/HinGem/pkg/news"
	"github.com/shappycc2010-ctrl/HinGem/pkg/predict"
	"github.com/shappycc2010-ctrl/HinGem/pkg/repository/memory"
	"github.com/shappycc2010-ctrl/HinGem/pkg/security/jwt"
	"github.com/shappycc2010-ctrl/HinGem/pkg/telemetry"
)

const token = "let me sleep."

type stubChat struct {
	reply chat.Reply
	err   error
	calls int
	last  string
}

func (s *stubChat) Reply(_ context.Context, message string) (chat.Reply, error) {
	s.calls++
	s.last = message
	return s.reply, s.err
}

type fixture struct {
	app  *fiber.App
	chat *stubChat
	sw   *availability.MemorySwitch
}

func newServer(t *testing.T, adminSecret string) fixture {
	t.Helper()
	log := zap.NewNop()
	m := telemetry.NewMetrics("test")
	sw := availability.NewMemorySwitch()
	gate := availability.NewGate(sw, availability.NewToken(token, ""), log)
	gate.OnChange(m.Toggled)
	m.TrackAvailability(func() bool {
		active, _ := sw.Active(context.Background())
		return active
	})
	stub := &stubChat{reply: chat.Reply{Text: "hi there", Source: "openai"}}
	dist := distress.NewService(memory.NewDistressRepository(), log, m.DistressSignals.Inc)

	var adminAuth []fiber.Handler
	if adminSecret != "" {
		adminAuth = []fiber.Handler{jwt.NewAuthMiddleware(adminSecret, "hingem"), jwt.RequireAdmin}
	}
	app := apihttp.NewApp("test", log, m)
	apihttp.Register(app, apihttp.ServerHandlers{
		Chat:      handlers.NewChatHandler(stub, gate, log),
		News:      handlers.NewNewsHandler(news.NewStatic(), predict.NewStub()),
		Admin:     handlers.NewAdminHandler(gate, dist),
		Distress:  handlers.NewDistressHandler(dist),
		Health:    handlers.NewHealthHandler(health.NewService(), sw),
		AdminAuth: adminAuth,
	}, m.Registry)
	return fixture{app: app, chat: stub, sw: sw}
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestChat(t *testing.T) {
	f := newServer(t, "")

	code, body := do(t, f.app, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"reply": "hi there", "source": "openai"}, body)

	for _, payload := range []string{`{}`, `{"message":""}`, `{"message":0}`, `{"message":false}`, `{"message":null}`, `{"message":[]}`} {
		code, body = do(t, f.app, http.MethodPost, "/api/chat", payload)
		assert.Equal(t, http.StatusBadRequest, code, payload)
		assert.Equal(t, "missing message", body["error"], payload)
	}
	assert.Equal(t, 1, f.chat.calls)

	code, _ = do(t, f.app, http.MethodPost, "/api/chat", `{"message":42}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "42", f.chat.last)

	code, _ = do(t, f.app, http.MethodPost, "/api/chat", `{"message":{"text":"hi"}}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[object Object]", f.chat.last)
}

func TestChatProviderFailure(t *testing.T) {
	f := newServer(t, "")
	f.chat.err = errors.New("upstream exploded")

	code, body := do(t, f.app, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]any{"reply": "(Hingem encountered an internal error.)"}, body)
}

func TestShutdownTokenCycle(t *testing.T) {
	f := newServer(t, "")

	code, body := do(t, f.app, http.MethodPost, "/api/chat", `{"message":"  LET ME SLEEP. "}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"reply": "(Hingem has been shut down on server)", "source": "server"}, body)

	code, body = do(t, f.app, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "(Hingem is currently shut down on server)", body["reply"])

	// still gated before body validation
	code, _ = do(t, f.app, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)

	_, body = do(t, f.app, http.MethodGet, "/health", "")
	assert.Equal(t, map[string]any{"ok": true, "serverActive": false}, body)

	code, body = do(t, f.app, http.MethodPost, "/api/chat", `{"message":"let me sleep."}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "(Hingem reactivated on server)", body["reply"])

	code, _ = do(t, f.app, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, f.chat.calls)
}

func TestAdminShutdown(t *testing.T) {
	f := newServer(t, "")
	ctx := context.Background()

	code, body := do(t, f.app, http.MethodPost, "/api/admin/shutdown", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"ok": false, "error": "missing shutdown"}, body)

	code, _ = do(t, f.app, http.MethodPost, "/api/admin/shutdown", "")
	assert.Equal(t, http.StatusBadRequest, code)

	cases := []struct {
		payload string
		active  bool
	}{
		{`{"shutdown":true}`, false},
		{`{"shutdown":false}`, true},
		{`{"shutdown":1}`, false},
		{`{"shutdown":0}`, true},
		{`{"shutdown":"yes"}`, false},
		{`{"shutdown":null}`, true},
	}
	for _, tc := range cases {
		code, body = do(t, f.app, http.MethodPost, "/api/admin/shutdown", tc.payload)
		assert.Equal(t, http.StatusOK, code, tc.payload)
		assert.Equal(t, map[string]any{"ok": true, "serverActive": tc.active}, body, tc.payload)
		active, _ := f.sw.Active(ctx)
		assert.Equal(t, tc.active, active, tc.payload)
	}

	do(t, f.app, http.MethodPost, "/api/admin/shutdown", `{"shutdown":true}`)
	code, _ = do(t, f.app, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestAdminRequiresToken(t *testing.T) {
	f := newServer(t, "s3cret")

	code, _ := do(t, f.app, http.MethodPost, "/api/admin/shutdown", `{"shutdown":true}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	user, err := jwt.NewGenerator("s3cret", "hingem", time.Minute).Generate("viewer", false)
	require.NoError(t, err)
	code, _ = do(t, f.app, http.MethodPost, "/api/admin/shutdown", `{"shutdown":true}`, "Authorization", "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, code)

	admin, err := jwt.NewGenerator("s3cret", "hingem", time.Minute).Generate("ops", true)
	require.NoError(t, err)
	code, body := do(t, f.app, http.MethodPost, "/api/admin/shutdown", `{"shutdown":true}`, "Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["serverActive"])

	// public routes stay open
	code, _ = do(t, f.app, http.MethodGet, "/api/news", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestStubs(t *testing.T) {
	f := newServer(t, "")

	code, body := do(t, f.app, http.MethodGet, "/api/news", "")
	assert.Equal(t, http.StatusOK, code)
	articles, ok := body["articles"].([]any)
	require.True(t, ok)
	assert.Len(t, articles, 3)

	code, body = do(t, f.app, http.MethodPost, "/api/predict", `{"home":"A","away":"B"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"home_win_prob": 0.5, "away_win_prob": 0.5, "draw_prob": 0.0, "confidence": 0.2}, body)

	code, _ = do(t, f.app, http.MethodPost, "/api/predict", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestDistress(t *testing.T) {
	f := newServer(t, "")

	code, body := do(t, f.app, http.MethodPost, "/api/distress", `{"where":"here"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Distress signal received", body["status"])
	assert.NotEmpty(t, body["id"])

	code, _ = do(t, f.app, http.MethodPost, "/api/distress", `{oops`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(t, f.app, http.MethodGet, "/api/admin/distress?limit=10", "")
	assert.Equal(t, http.StatusOK, code)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, map[string]any{"where": "here"}, items[0].(map[string]any)["payload"])
}

func TestDistressSignalsSurviveLaterRequests(t *testing.T) {
	f := newServer(t, "")

	const n = 20
	for i := 0; i < n; i++ {
		code, _ := do(t, f.app, http.MethodPost, "/api/distress",
			fmt.Sprintf(`{"where":"spot-%02d","n":%d}`, i, i),
			fiber.HeaderUserAgent, fmt.Sprintf("agent-%02d", i))
		require.Equal(t, http.StatusOK, code)
	}

	code, body := do(t, f.app, http.MethodGet, "/api/admin/distress?limit=50", "")
	require.Equal(t, http.StatusOK, code, body)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, n)
	for j, it := range items {
		i := n - 1 - j
		item := it.(map[string]any)
		assert.Equal(t, map[string]any{"where": fmt.Sprintf("spot-%02d", i), "n": float64(i)}, item["payload"])
		assert.Equal(t, fmt.Sprintf("agent-%02d", i), item["userAgent"])
	}
}

func TestHealthAndMetrics(t *testing.T) {
	f := newServer(t, "")

	code, body := do(t, f.app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"ok": true, "serverActive": true}, body)

	code, body = do(t, f.app, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "test_http_requests_total")
	assert.Contains(t, string(raw), "test_server_active 1")
}

func TestRelay(t *testing.T) {
	log := zap.NewNop()
	m := telemetry.NewMetrics("relay")
	stub := &stubChat{reply: chat.Reply{Text: "relayed", Source: "openai"}}
	dist := distress.NewService(memory.NewDistressRepository(), log, m.DistressSignals.Inc)
	app := apihttp.NewApp("relay", log, m)
	apihttp.RegisterRelay(app,
		handlers.NewChatHandler(stub, nil, log),
		handlers.NewDistressHandler(dist),
		handlers.NewHealthHandler(health.NewService(), nil),
		m.Registry)

	code, body := do(t, app, http.MethodPost, "/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"reply": "relayed"}, body)

	code, _ = do(t, app, http.MethodPost, "/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)

	stub.err = errors.New("quota exceeded")
	code, body = do(t, app, http.MethodPost, "/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"reply": "Error: quota exceeded"}, body)

	code, body = do(t, app, http.MethodPost, "/distress", `{"sos":true}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Distress signal received", body["status"])

	_, body = do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, map[string]any{"ok": true}, body)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "relay_distress_signals_total 1")
	assert.NotContains(t, string(raw), "server_active")
}

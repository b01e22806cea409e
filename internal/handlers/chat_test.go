package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamap91/carglass-assistente/internal/cache"
	"github.com/Vamap91/carglass-assistente/internal/config"
	"github.com/Vamap91/carglass-assistente/internal/handlers"
	"github.com/Vamap91/carglass-assistente/internal/models"
	"github.com/Vamap91/carglass-assistente/internal/routes"
	"github.com/Vamap91/carglass-assistente/internal/services"
	"github.com/Vamap91/carglass-assistente/internal/storage"
)

type transcript struct {
	Messages []models.Message `json:"messages"`
}

func newTestApp() *fiber.App {
	cfg := &config.Config{
		SessionTimeout: time.Minute,
		CacheTTL:       time.Minute,
	}

	lookupCache := cache.New()
	sessions := services.NewSessionManager(cfg.SessionTimeout)
	lookup := services.NewClientLookup(lookupCache, nil, storage.NewMemoryStore(), cfg.CacheTTL)
	composer := services.NewComposer(lookup, nil)
	whatsapp := services.NewWhatsAppService(sessions, composer, nil)

	app := fiber.New()
	routes.SetupRoutes(app,
		handlers.NewChatHandler(sessions, composer),
		handlers.NewWhatsAppHandler(whatsapp, sessions, false),
		handlers.NewHealthHandler(cfg, sessions, lookupCache),
		"")
	return app
}

func sendForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeTranscript(t *testing.T, resp *http.Response) transcript {
	t.Helper()

	var tr transcript
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	return tr
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == handlers.SessionCookie {
			return c
		}
	}
	return nil
}

func TestIndexServesChatPage(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	page, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(page), "Clara")
}

func TestGetMessagesCreatesSessionWithWelcome(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get_messages", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, sessionCookie(resp))

	tr := decodeTranscript(t, resp)
	require.Len(t, tr.Messages, 1)
	assert.Equal(t, "assistant", tr.Messages[0].Role)
	assert.Contains(t, tr.Messages[0].Content, "Clara")
}

func TestSendMessageIdentificationFlow(t *testing.T) {
	app := newTestApp()

	resp := sendForm(t, app, "/send_message", url.Values{"message": {"12345678900"}}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	tr := decodeTranscript(t, resp)
	require.Len(t, tr.Messages, 3) // welcome + user + assistant
	reply := tr.Messages[2]
	assert.Equal(t, "assistant", reply.Role)
	assert.Contains(t, reply.Content, "Carlos Silva")
	assert.Contains(t, reply.Content, "ORD12345")

	// Follow-up question on the same session.
	resp = sendForm(t, app, "/send_message", url.Values{"message": {"garantia"}}, cookie)
	tr = decodeTranscript(t, resp)
	require.Len(t, tr.Messages, 5)
	assert.Contains(t, tr.Messages[4].Content, "12 meses")
}

func TestSendMessageUnclassifiable(t *testing.T) {
	app := newTestApp()

	resp := sendForm(t, app, "/send_message", url.Values{"message": {"9999999999999"}}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	tr := decodeTranscript(t, resp)
	require.Len(t, tr.Messages, 3)
	assert.Contains(t, tr.Messages[2].Content, "identificador válido")

	// Still unidentified: a second invalid attempt prompts again.
	resp = sendForm(t, app, "/send_message", url.Values{"message": {"???"}}, sessionCookie(resp))
	tr = decodeTranscript(t, resp)
	assert.Contains(t, tr.Messages[len(tr.Messages)-1].Content, "identificador válido")
}

func TestResetIsIdempotent(t *testing.T) {
	app := newTestApp()

	// Build up some conversation first.
	resp := sendForm(t, app, "/send_message", url.Values{"message": {"12345678900"}}, nil)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	for i := 0; i < 2; i++ {
		resp = sendForm(t, app, "/reset", nil, cookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		tr := decodeTranscript(t, resp)
		require.Len(t, tr.Messages, 1, "reset %d should leave only the welcome message", i+1)
		assert.Equal(t, "assistant", tr.Messages[0].Role)

		cookie = sessionCookie(resp)
		require.NotNil(t, cookie)
	}
}

func TestHealthCounters(t *testing.T) {
	app := newTestApp()

	// One session exists after a message.
	sendForm(t, app, "/send_message", url.Values{"message": {"oi"}}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status     string `json:"status"`
		Sessions   int    `json:"sessions"`
		CacheItems int    `json:"cache_items"`
		Config     struct {
			UseRealAPI       bool `json:"use_real_api"`
			OpenAIConfigured bool `json:"openai_configured"`
			TwilioConfigured bool `json:"twilio_configured"`
		} `json:"config"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 1, health.Sessions)
	assert.False(t, health.Config.UseRealAPI)
	assert.False(t, health.Config.TwilioConfigured)
}

func TestWhatsAppWebhook(t *testing.T) {
	app := newTestApp()

	form := url.Values{
		"MessageSid": {"SM123"},
		"From":       {"whatsapp:+5511987654321"},
		"Body":       {"12345678900"},
	}
	resp := sendForm(t, app, "/whatsapp/webhook", form, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<Response>")

	// The session is now live and visible on the status route.
	statusResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whatsapp/status", nil))
	require.NoError(t, err)

	var status struct {
		Configured     bool `json:"configured"`
		ActiveSessions int  `json:"active_sessions"`
	}
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
	assert.False(t, status.Configured)
	assert.Equal(t, 1, status.ActiveSessions)
}

func TestWhatsAppWebhookBadPayload(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/whatsapp/webhook", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

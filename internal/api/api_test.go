package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeBot struct {
	updates  []tgbotapi.Update
	webhooks []string
	stored   int
	active   int
}

func (f *fakeBot) ProcessUpdate(_ context.Context, u tgbotapi.Update) {
	f.updates = append(f.updates, u)
}

func (f *fakeBot) RegisterWebhook(baseURL string) (string, error) {
	url := baseURL + "/webhook"
	f.webhooks = append(f.webhooks, url)
	return url, nil
}

func (f *fakeBot) ActiveSessions() int { return f.active }

func (f *fakeBot) StoredResponses(_ context.Context) (int, error) { return f.stored, nil }

func TestHandleHealthz(t *testing.T) {
	a := New(":0", "", &fakeBot{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestHandleWebhook_FeedsUpdate(t *testing.T) {
	bot := &fakeBot{}
	a := New(":0", "", bot)

	body := `{"update_id":7,"message":{"message_id":1,"chat":{"id":100},"from":{"id":42},"text":"hi"}}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(bot.updates) != 1 {
		t.Fatalf("updates fed = %d, want 1", len(bot.updates))
	}
	if bot.updates[0].UpdateID != 7 || bot.updates[0].Message.Text != "hi" {
		t.Fatalf("update mangled: %+v", bot.updates[0])
	}
}

func TestHandleWebhook_RejectsGarbage(t *testing.T) {
	bot := &fakeBot{}
	a := New(":0", "", bot)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if len(bot.updates) != 0 {
		t.Fatalf("garbage fed to bot")
	}
}

func TestHandleSetWebhook(t *testing.T) {
	bot := &fakeBot{}
	a := New(":0", "https://bot.example.com", bot)

	req := httptest.NewRequest("POST", "/set-webhook", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["ok"] != true || resp["url"] != "https://bot.example.com/webhook" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(bot.webhooks) != 1 {
		t.Fatalf("webhook not registered")
	}
}

func TestHandleSetWebhook_NoBaseURL(t *testing.T) {
	bot := &fakeBot{}
	a := New(":0", "", bot)

	req := httptest.NewRequest("POST", "/set-webhook", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["ok"] != false {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(bot.webhooks) != 0 {
		t.Fatalf("webhook registered without BASE_URL")
	}
}

func TestHandleStats(t *testing.T) {
	bot := &fakeBot{stored: 12, active: 3}
	a := New(":0", "", bot)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["stored_responses"] != float64(12) || resp["active_sessions"] != float64(3) {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

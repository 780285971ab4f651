package api

import (
	"context"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// Bot is the slice of the transport adapter the HTTP surface needs.
type Bot interface {
	ProcessUpdate(ctx context.Context, update tgbotapi.Update)
	RegisterWebhook(baseURL string) (string, error)
	ActiveSessions() int
	StoredResponses(ctx context.Context) (int, error)
}

// API serves the webhook, the health check and a small read-only stats
// endpoint.
type API struct {
	router     *mux.Router
	bot        Bot
	listenAddr string
	baseURL    string
}

func New(listenAddr, baseURL string, bot Bot) *API {
	a := &API{
		router:     mux.NewRouter(),
		bot:        bot,
		listenAddr: listenAddr,
		baseURL:    baseURL,
	}
	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	a.router.HandleFunc("/healthz", a.handleHealthz).Methods("GET")
	a.router.HandleFunc("/webhook", a.handleWebhook).Methods("POST")
	a.router.HandleFunc("/set-webhook", a.handleSetWebhook).Methods("POST")
	a.router.HandleFunc("/api/stats", a.handleStats).Methods("GET")
}

func (a *API) Start() error {
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(a.router)

	log.Info().Str("addr", a.listenAddr).Msg("HTTP server listening")
	return http.ListenAndServe(a.listenAddr, handler)
}

func (a *API) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleWebhook принимает Update от Telegram и передаёт его боту
func (a *API) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error().Err(err).Msg("failed to decode webhook update")
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"ok": false, "error": "invalid update"})
		return
	}
	a.bot.ProcessUpdate(r.Context(), update)
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (a *API) handleSetWebhook(w http.ResponseWriter, _ *http.Request) {
	if a.baseURL == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": false, "error": "BASE_URL is not set"})
		return
	}
	url, err := a.bot.RegisterWebhook(a.baseURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to register webhook")
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "url": url})
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stored, err := a.bot.StoredResponses(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":               true,
		"stored_responses": stored,
		"active_sessions":  a.bot.ActiveSessions(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// Package httptransport is the thin HTTP layer the chat-platform adapter
// calls. It delegates to the engine without embedding business logic so
// transport concerns stay isolated.
package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pkgerrors "regimen/pkg/errors"
)

// RouterConfig carries the transport-level settings.
type RouterConfig struct {
	AdminToken string
	// RulesChannelID/RulesMessageID identify the one message whose reactions
	// toggle subscriptions. Signals for anything else never reach the engine.
	RulesChannelID string
	RulesMessageID string
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestTime)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/routines", h.handleListRoutines)
	r.Post("/evidence", h.handleSubmitEvidence)
	r.Post("/toggles", h.handleToggle)
	r.Post("/users/{userID}", h.handleRegisterUser)
	r.Get("/users/{userID}/summary", h.handleWeeklySummary)

	r.Group(func(r chi.Router) {
		r.Use(requireAdminToken(h.cfg.AdminToken, h.logger))
		r.Get("/users", h.handleListUsers)
		r.Put("/users/{userID}/balance", h.handleSetBalance)
	})

	return r
}

// writeError centralizes domain error translation to HTTP responses so every
// handler produces the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(pkgerrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

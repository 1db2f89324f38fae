package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"regimen/internal/engine"
	"regimen/internal/routine"
	pkgerrors "regimen/pkg/errors"
	"regimen/pkg/requestcontext"
)

//go:generate mockgen -source=handlers.go -destination=mocks/engine_mocks.go -package=mocks EngineService

// EngineService is the engine surface the handlers depend on.
type EngineService interface {
	Registry() *routine.Registry
	RegisterUser(ctx context.Context, userID string) error
	SubmitEvidence(ctx context.Context, userID, routineName string, occurredAt time.Time) (*engine.Summary, error)
	WeeklySummary(ctx context.Context, userID string) (*engine.Summary, error)
	ToggleSubscription(ctx context.Context, userID, routineName string, subscribe bool) error
	SetBalance(ctx context.Context, userID string, value float64) error
	Users(ctx context.Context) ([]string, error)
}

// Handler delegates HTTP requests to the engine.
type Handler struct {
	engine EngineService
	cfg    RouterConfig
	logger *slog.Logger
}

// NewHandler builds the HTTP handler set.
func NewHandler(eng EngineService, cfg RouterConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{engine: eng, cfg: cfg, logger: logger}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type routineResponse struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	Penalty     float64 `json:"penalty"`
	Deadline    string  `json:"deadline"`
}

func (h *Handler) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	routines := h.engine.Registry().List()
	out := make([]routineResponse, 0, len(routines))
	for _, rt := range routines {
		out = append(out, routineResponse{
			Name:        rt.Name,
			Description: rt.Description,
			Emoji:       rt.Emoji,
			Penalty:     rt.Penalty,
			Deadline:    rt.Deadline.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type evidenceRequest struct {
	UserID      string `json:"user_id"`
	Routine     string `json:"routine"`
	ContentType string `json:"content_type"`
}

func (h *Handler) handleSubmitEvidence(w http.ResponseWriter, r *http.Request) {
	var req evidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if err := validateEvidenceRequest(req); err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.engine.SubmitEvidence(r.Context(), req.UserID, req.Routine, requestcontext.Now(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// validateEvidenceRequest rejects malformed submissions before any state
// mutates. Every routine's evidence is an image upload.
func validateEvidenceRequest(req evidenceRequest) error {
	if !govalidator.StringLength(req.UserID, "1", "64") {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid user_id")
	}
	if !govalidator.StringLength(req.Routine, "1", "64") {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid routine")
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "evidence must be an image")
	}
	return nil
}

type toggleRequest struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
	Added     bool   `json:"added"`
}

// handleToggle applies a reaction signal. It is a pure filter first: signals
// for the wrong message or channel, or with an emoji no routine claims, are
// acknowledged and dropped without reaching the engine.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if !govalidator.StringLength(req.UserID, "1", "64") {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid user_id"))
		return
	}

	if req.ChannelID != h.cfg.RulesChannelID || req.MessageID != h.cfg.RulesMessageID {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	rt, err := h.engine.Registry().ByEmoji(req.Emoji)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.engine.ToggleSubscription(r.Context(), req.UserID, rt.Name, req.Added); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !govalidator.StringLength(userID, "1", "64") {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid user_id"))
		return
	}
	if err := h.engine.RegisterUser(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !govalidator.StringLength(userID, "1", "64") {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid user_id"))
		return
	}
	summary, err := h.engine.WeeklySummary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type setBalanceRequest struct {
	Balance float64 `json:"balance"`
}

func (h *Handler) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !govalidator.StringLength(userID, "1", "64") {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid user_id"))
		return
	}
	var req setBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if err := h.engine.SetBalance(r.Context(), userID, req.Balance); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.engine.Users(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"users": users})
}

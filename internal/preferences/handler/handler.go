package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake/internal/preferences"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

// Store reads and writes the shared preferences.
type Store interface {
	Get(ctx context.Context) (preferences.Preferences, error)
	Set(ctx context.Context, p preferences.Preferences) error
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/preferences", h.HandleGet)
	r.Put("/preferences", h.HandlePut)
}

// UpdateRequest is the HTTP request body for PUT /preferences.
type UpdateRequest struct {
	DarkMode *bool `json:"darkMode"`
}

func (r *UpdateRequest) Validate() error {
	if r == nil || r.DarkMode == nil {
		return dErrors.New(dErrors.CodeValidation, "darkMode is required")
	}
	return nil
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.store.Get(ctx)
	if err != nil {
		h.fail(w, r, "failed to read preferences", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p := preferences.Preferences{DarkMode: *req.DarkMode}
	if err := h.store.Set(ctx, p); err != nil {
		h.fail(w, r, "failed to save preferences", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, msg))
}

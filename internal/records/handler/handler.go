package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake/internal/records"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

// Service defines the record table operations.
type Service interface {
	Submit(ctx context.Context, sub records.Submission) (*records.Record, error)
	List(ctx context.Context) ([]records.Record, error)
}

// Handler wires record endpoints to the records service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts record endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/records", h.HandleSubmit)
	r.Get("/records", h.HandleList)
}

// SubmitRequest is the HTTP request body for POST /records.
type SubmitRequest struct {
	records.Submission
}

// Validate implements httputil.Validatable. Field rules live in the service.
func (r *SubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	for _, v := range []string{r.Name, r.Address, r.Email, r.Nationality} {
		if len(v) > 512 {
			return dErrors.New(dErrors.CodeValidation, "fields must be at most 512 characters")
		}
	}
	return nil
}

// ListResponse is returned by GET /records.
type ListResponse struct {
	Records []records.Record `json:"records"`
}

// HandleSubmit handles POST /records.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Submit(ctx, req.Submission)
	if err != nil {
		h.logger.WarnContext(ctx, "record submission rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

// HandleList handles GET /records.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Records: rows})
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"intake/internal/reference"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/platform/sentinel"
	"intake/pkg/requestcontext"
)

// Service is the read side of the reference resolver.
type Service interface {
	Status() reference.Status
	ByNameView() []reference.CountryEntry
	ByCodeView() []reference.CountryEntry
	FindByName(name string) (reference.CountryEntry, error)
	FindByCode(code string) (reference.CountryEntry, error)
}

// Handler serves the reference dataset and its views.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts reference endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reference/status", h.HandleStatus)
	r.Get("/reference/countries", h.HandleCountries)
	r.Get("/reference/countries/{name}", h.HandleCountry)
	r.Get("/reference/calling-codes", h.HandleCallingCodes)
	r.Get("/reference/calling-codes/{code}", h.HandleCallingCode)
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Status())
}

// HandleCountries handles GET /reference/countries: the name-sorted view.
func (h *Handler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, newListResponse(h.service.Status(), h.service.ByNameView()))
}

// HandleCallingCodes handles GET /reference/calling-codes: the code-sorted view.
func (h *Handler) HandleCallingCodes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, newListResponse(h.service.Status(), h.service.ByCodeView()))
}

func (h *Handler) HandleCountry(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entry, err := h.service.FindByName(name)
	h.writeEntry(w, r, entry, err, "country", name)
}

// HandleCallingCode accepts the code with or without its leading "+".
func (h *Handler) HandleCallingCode(w http.ResponseWriter, r *http.Request) {
	code, err := pathParam(r, "code")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !strings.HasPrefix(code, "+") {
		code = "+" + code
	}
	entry, err := h.service.FindByCode(code)
	h.writeEntry(w, r, entry, err, "calling code", code)
}

func (h *Handler) writeEntry(w http.ResponseWriter, r *http.Request, entry reference.CountryEntry, err error, kind, key string) {
	if err == nil {
		httputil.WriteJSON(w, http.StatusOK, entry)
		return
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, kind+" not found"))
		return
	}
	h.logger.ErrorContext(r.Context(), "reference lookup failed",
		"request_id", requestcontext.RequestID(r.Context()),
		"key", key,
		"error", err,
	)
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "lookup failed"))
}

// pathParam returns the decoded URL parameter; chi keeps escapes such as %2B.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", dErrors.New(dErrors.CodeBadRequest, "malformed "+key)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", dErrors.New(dErrors.CodeValidation, key+" is required")
	}
	return v, nil
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake/internal/form"
	"intake/internal/records"
	"intake/internal/reference"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

// Reference supplies the option lists.
type Reference interface {
	Status() reference.Status
	ByNameView() []reference.CountryEntry
	ByCodeView() []reference.CountryEntry
}

// Values supplies the autofilled field values.
type Values interface {
	Snapshot() form.Snapshot
}

// Handler serves everything a client needs to render the intake form.
type Handler struct {
	reference Reference
	values    Values
	logger    *slog.Logger
}

func New(ref Reference, values Values, logger *slog.Logger) *Handler {
	return &Handler{reference: ref, values: values, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/form", h.HandleForm)
}

// Option is one selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Response is returned by GET /form.
type Response struct {
	ReferenceState reference.LoadState `json:"reference_state"`
	Nationalities  []Option            `json:"nationalities"`
	PhoneCodes     []Option            `json:"phone_codes"`
	Genders        []string            `json:"genders"`
	MaxDateOfBirth string              `json:"max_date_of_birth"`
	Values         form.Snapshot       `json:"values"`
}

// HandleForm handles GET /form. Nationalities are labelled by name and phone
// codes by code; an unloaded dataset yields empty lists.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.reference.Status()
	if status.State != reference.StateLoaded {
		h.logger.DebugContext(ctx, "form served without reference data",
			"request_id", requestcontext.RequestID(ctx),
			"reference_state", status.State,
		)
	}

	byName := h.reference.ByNameView()
	nationalities := make([]Option, 0, len(byName))
	for _, e := range byName {
		nationalities = append(nationalities, Option{Value: e.Name, Label: e.Name})
	}
	byCode := h.reference.ByCodeView()
	phoneCodes := make([]Option, 0, len(byCode))
	for _, e := range byCode {
		phoneCodes = append(phoneCodes, Option{Value: e.CallingCode, Label: e.CallingCode})
	}

	httputil.WriteJSON(w, http.StatusOK, Response{
		ReferenceState: status.State,
		Nationalities:  nationalities,
		PhoneCodes:     phoneCodes,
		Genders:        records.Genders,
		MaxDateOfBirth: requestcontext.Now(ctx).Format(records.DateLayout),
		Values:         h.values.Snapshot(),
	})
}

package autofill

import (
	"context"
	"errors"

	"intake/internal/reference"
)

// ErrCapabilityUnavailable is returned by a Locator when the device has no
// location capability at all.
var ErrCapabilityUnavailable = errors.New("location capability unavailable")

// Coordinate is a device position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate is one ranked reverse-geocoding result.
type Candidate struct {
	Address string `json:"address"`
	Country string `json:"country"`
}

// GeoResolution is what one successful invocation resolved. Empty fields were
// left unresolved.
type GeoResolution struct {
	Address     string `json:"address"`
	CountryName string `json:"country_name,omitempty"`
	CallingCode string `json:"calling_code,omitempty"`
}

// State is the per-invocation lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateResolved   State = "resolved"
	StateFailed     State = "failed"
)

// Reason classifies why an invocation failed or resolved partially.
type Reason string

const (
	ReasonCapabilityUnavailable Reason = "capability_unavailable"
	ReasonDeviceError           Reason = "device_error"
	ReasonProviderError         Reason = "provider_error"
	ReasonNoCandidates          Reason = "no_candidates"
	ReasonNoReferenceMatch      Reason = "no_reference_match"
)

// Field names one of the three form fields autofill writes.
type Field string

const (
	FieldAddress     Field = "address"
	FieldNationality Field = "nationality"
	FieldPhoneCode   Field = "phone_code"
)

// Outcome describes one finished invocation. Failed invocations emit nothing.
type Outcome struct {
	Sequence   uint64        `json:"sequence"`
	State      State         `json:"state"`
	Reason     Reason        `json:"reason,omitempty"`
	Resolution GeoResolution `json:"resolution"`
	Emitted    []Field       `json:"emitted"`
	Discarded  []Field       `json:"discarded,omitempty"`
}

// Locator acquires the device coordinate.
type Locator interface {
	Locate(ctx context.Context) (Coordinate, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Coordinate, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinate, error) {
	return f(ctx)
}

// Geocoder maps a coordinate to ranked candidates.
type Geocoder interface {
	Reverse(ctx context.Context, coord Coordinate) ([]Candidate, error)
}

// CountryLookup finds the first reference entry with an exact name.
type CountryLookup interface {
	FindByName(name string) (reference.CountryEntry, error)
}

// FieldSink receives field writes. Each write is independent; a sink may refuse
// a write from a superseded invocation and report it by returning false.
type FieldSink interface {
	SetAddress(seq uint64, value string) bool
	SetNationality(seq uint64, value string) bool
	SetPhoneCode(seq uint64, value string) bool
}

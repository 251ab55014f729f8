package reference

import "time"

// CountryEntry is one (name, calling code) pair. CallingCode is empty for
// territories without a dialing code. A name may appear once per code suffix.
type CountryEntry struct {
	Name        string `json:"name"`
	CallingCode string `json:"calling_code"`
}

// ProviderCountry is the validated shape of one reference provider record.
type ProviderCountry struct {
	Name     string
	Root     string
	Suffixes []string
}

// LoadState is the lifecycle of the reference dataset.
type LoadState string

const (
	StateUnloaded LoadState = "unloaded"
	StateLoading  LoadState = "loading"
	StateLoaded   LoadState = "loaded"
	StateFailed   LoadState = "failed"
)

// Status reports dataset readiness so callers need not infer it from emptiness.
type Status struct {
	State    LoadState `json:"state"`
	Entries  int       `json:"entries"`
	Error    string    `json:"error,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

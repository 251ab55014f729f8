// Package form holds the server-side values of the fields location autofill seeds.
package form

import "sync"

type field struct {
	value string
	seq   uint64
}

// State is the autofill field state shared by the autofill and records handlers.
// Each field is written independently; there is no multi-field atomicity.
type State struct {
	discardStale bool

	mu          sync.Mutex
	address     field
	nationality field
	phoneCode   field
}

// Snapshot is a point-in-time copy of the three fields.
type Snapshot struct {
	Address     string `json:"address"`
	Nationality string `json:"nationality"`
	PhoneCode   string `json:"phone_code"`
}

// NewState creates empty form state. With discardStale, a write whose sequence
// is older than the field's last write is dropped; otherwise the last write wins.
func NewState(discardStale bool) *State {
	return &State{discardStale: discardStale}
}

func (s *State) SetAddress(seq uint64, value string) bool {
	return s.set(&s.address, seq, value)
}

func (s *State) SetNationality(seq uint64, value string) bool {
	return s.set(&s.nationality, seq, value)
}

func (s *State) SetPhoneCode(seq uint64, value string) bool {
	return s.set(&s.phoneCode, seq, value)
}

func (s *State) set(f *field, seq uint64, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discardStale && seq < f.seq {
		return false
	}
	f.value = value
	if seq > f.seq {
		f.seq = seq
	}
	return true
}

// Snapshot returns the current values.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Address:     s.address.value,
		Nationality: s.nationality.value,
		PhoneCode:   s.phoneCode.value,
	}
}

// Reset clears the values after a submission. Sequences are kept so that
// invocations superseded before the reset stay stale.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address.value = ""
	s.nationality.value = ""
	s.phoneCode.value = ""
}

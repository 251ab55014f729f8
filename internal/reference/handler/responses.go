package handler

import "intake/internal/reference"

// ListResponse is returned by both view endpoints. State lets callers tell an
// empty dataset from one that has not loaded yet.
type ListResponse struct {
	State   reference.LoadState      `json:"state"`
	Count   int                      `json:"count"`
	Entries []reference.CountryEntry `json:"entries"`
}

func newListResponse(status reference.Status, entries []reference.CountryEntry) ListResponse {
	if entries == nil {
		entries = []reference.CountryEntry{}
	}
	return ListResponse{State: status.State, Count: len(entries), Entries: entries}
}

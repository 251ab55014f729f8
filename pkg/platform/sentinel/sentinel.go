package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and provider adapters
// return these (optionally wrapped) so services can translate them into domain
// errors or degrade quietly:
// - ErrNotFound: no entry matches the lookup key
// - ErrUnavailable: dependency not ready or not reachable
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)

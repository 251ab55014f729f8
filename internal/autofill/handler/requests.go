package handler

import (
	"context"
	"fmt"
	"strings"

	"intake/internal/autofill"
	dErrors "intake/pkg/domain-errors"
)

// Device errors a client may report in place of a position.
const (
	DeviceErrorPermissionDenied    = "permission_denied"
	DeviceErrorPositionUnavailable = "position_unavailable"
	DeviceErrorTimeout             = "timeout"
)

// LocationRequest is the HTTP request body for POST /autofill/location. The
// client relays what its location capability produced: a position, a device
// error, or neither when no capability exists.
type LocationRequest struct {
	Position    *autofill.Coordinate `json:"position,omitempty"`
	DeviceError string               `json:"device_error,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *LocationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.DeviceError = strings.TrimSpace(r.DeviceError)
	if r.Position != nil && r.DeviceError != "" {
		return dErrors.New(dErrors.CodeValidation, "position and device_error are mutually exclusive")
	}
	if r.Position != nil {
		if r.Position.Latitude < -90 || r.Position.Latitude > 90 {
			return dErrors.New(dErrors.CodeValidation, "latitude must be between -90 and 90")
		}
		if r.Position.Longitude < -180 || r.Position.Longitude > 180 {
			return dErrors.New(dErrors.CodeValidation, "longitude must be between -180 and 180")
		}
	}
	switch r.DeviceError {
	case "", DeviceErrorPermissionDenied, DeviceErrorPositionUnavailable, DeviceErrorTimeout:
	default:
		return dErrors.New(dErrors.CodeValidation, "unknown device_error")
	}
	return nil
}

// Locator replays the reported device outcome.
func (r *LocationRequest) Locator() autofill.Locator {
	return autofill.LocatorFunc(func(context.Context) (autofill.Coordinate, error) {
		switch {
		case r.Position != nil:
			return *r.Position, nil
		case r.DeviceError != "":
			return autofill.Coordinate{}, fmt.Errorf("device reported %s", r.DeviceError)
		default:
			return autofill.Coordinate{}, errNoCapability
		}
	})
}

var errNoCapability = fmt.Errorf("client reported no position: %w", autofill.ErrCapabilityUnavailable)


package kiosk

import (
	"context"
	"errors"
	"time"
)

// Device errors surfaced by LocationProvider implementations.
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("location unavailable")
	ErrTimeout          = errors.New("location request timed out")
)

// Fix is a single device location reading. Providers must return a fresh
// high-accuracy reading on every call, never a cached one.
type Fix struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
	CapturedAt     time.Time
}

// LocationProvider abstracts the positioning hardware.
type LocationProvider interface {
	Current(ctx context.Context) (Fix, error)
}

// Photo is a captured proof image.
type Photo struct {
	Name string
	Data []byte
}

// Stream is an open camera session. Close must be called on every exit
// path, captured or not.
type Stream interface {
	Capture(ctx context.Context) (Photo, error)
	Close() error
}

// Camera abstracts the capture hardware.
type Camera interface {
	Open(ctx context.Context) (Stream, error)
}

// Confirmer asks the operator a yes/no question, used for the
// under-minimum-duration check-out acknowledgement.
type Confirmer interface {
	Confirm(prompt string) bool
}

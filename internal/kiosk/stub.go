package kiosk

import (
	"context"
	"time"
)

// StaticLocation reports a fixed position with a fresh timestamp. Stands in
// for real positioning hardware on kiosks installed at a known spot.
type StaticLocation struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
}

func (s StaticLocation) Current(_ context.Context) (Fix, error) {
	return Fix{
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		AccuracyMeters: s.AccuracyMeters,
		CapturedAt:     time.Now().UTC(),
	}, nil
}

// StubCamera serves a canned photo. Real capture drivers are out of scope;
// this keeps the flow runnable end to end.
type StubCamera struct {
	PhotoName string
	PhotoData []byte
}

func (c StubCamera) Open(_ context.Context) (Stream, error) {
	return &stubStream{name: c.PhotoName, data: c.PhotoData}, nil
}

type stubStream struct {
	name string
	data []byte
}

func (s *stubStream) Capture(_ context.Context) (Photo, error) {
	return Photo{Name: s.name, Data: s.data}, nil
}

func (s *stubStream) Close() error { return nil }

// AutoConfirmer answers every prompt the same way.
type AutoConfirmer struct {
	Answer bool
}

func (c AutoConfirmer) Confirm(_ string) bool { return c.Answer }

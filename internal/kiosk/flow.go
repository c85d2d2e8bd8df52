package kiosk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/opsuite/opsuite-backend-go/internal/client"
	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/geo"
)

// State is a step of the capture workflow. The flow is linear: each state
// consumes what the previous one produced, so illegal jumps cannot happen.
type State string

const (
	StateIdle       State = "idle"
	StateLocating   State = "locating_device"
	StateValidating State = "validating_distance"
	StateRejected   State = "rejected"
	StateCapturing  State = "capturing_photo"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// ErrAttemptInFlight means a capture attempt is already running. The busy
// flag is the only mutual exclusion the flow has.
var ErrAttemptInFlight = errors.New("an attempt is already in progress")

const defaultLocationTimeout = 15 * time.Second

// API is the slice of the backend client the flow needs.
type API interface {
	TrackerStatus(ctx context.Context) (tracker.StatusResponse, error)
	SubmitCheckIn(ctx context.Context, payload client.CheckInPayload, photoName string, photo io.Reader) (tracker.TrackerResponse, error)
	SubmitCheckOut(ctx context.Context, trackerID string, payload client.CheckInPayload, photoName string, photo io.Reader) (tracker.TrackerResponse, error)
}

// Result is the terminal outcome of one attempt. The flow itself always
// returns to idle afterwards.
type Result struct {
	State   State
	Message string
	Tracker *tracker.TrackerResponse
}

// Flow drives one check-in/check-out attempt through the capture workflow.
type Flow struct {
	api       API
	location  LocationProvider
	camera    Camera
	confirmer Confirmer

	locationTimeout time.Duration
	busy            atomic.Bool

	// OnTransition, when set, observes every state change.
	OnTransition func(State)
}

func NewFlow(api API, location LocationProvider, camera Camera, confirmer Confirmer) *Flow {
	return &Flow{
		api:             api,
		location:        location,
		camera:          camera,
		confirmer:       confirmer,
		locationTimeout: defaultLocationTimeout,
	}
}

func (f *Flow) transition(s State) {
	if f.OnTransition != nil {
		f.OnTransition(s)
	}
}

// fail returns the flow to idle with a reason-specific message.
func (f *Flow) fail(message string) Result {
	f.transition(StateFailed)
	f.transition(StateIdle)
	return Result{State: StateFailed, Message: message}
}

// Run executes one attempt: locate, validate distance, capture photo,
// submit. Re-triggering while an attempt is running returns
// ErrAttemptInFlight.
func (f *Flow) Run(ctx context.Context) (Result, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return Result{}, ErrAttemptInFlight
	}
	defer f.busy.Store(false)

	status, err := f.api.TrackerStatus(ctx)
	if err != nil {
		return f.fail(fmt.Sprintf("could not load today's status: %v", err)), nil
	}

	checkingOut := status.CheckIn != nil
	if checkingOut && status.CheckOut != nil {
		f.transition(StateIdle)
		return Result{State: StateIdle, Message: "already checked out today"}, nil
	}
	// A check-in without a record id cannot be checked out against.
	if checkingOut && status.TrackerID == nil {
		return f.fail("server returned an inconsistent status, retry in a moment"), nil
	}

	officeLat, officeLng, err := geo.ParseGPS(status.CompanyGPS)
	if err != nil {
		return f.fail("company location is not configured"), nil
	}
	tolerance, err := geo.ParseTolerance(status.Tolerance)
	if err != nil {
		return f.fail("company tolerance is not configured"), nil
	}

	// Locate
	f.transition(StateLocating)
	locateCtx, cancel := context.WithTimeout(ctx, f.locationTimeout)
	fix, err := f.location.Current(locateCtx)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		return f.fail(locationFailureMessage(err)), nil
	}

	// Validate distance. The server repeats this check; doing it here
	// saves the operator a doomed photo capture.
	f.transition(StateValidating)
	distance := geo.HaversineDistance(fix.Latitude, fix.Longitude, officeLat, officeLng)
	if !geo.WithinTolerance(distance, tolerance) {
		f.transition(StateRejected)
		f.transition(StateIdle)
		return Result{
			State:   StateRejected,
			Message: fmt.Sprintf("you are %s from the office, outside the allowed radius", geo.FormatDistance(distance)),
		}, nil
	}

	// Under-minimum check-out needs an explicit acknowledgement before
	// anything is captured or sent.
	force := false
	if checkingOut && status.Under30Min {
		if !f.confirmer.Confirm("You have worked less than the minimum duration. Check out anyway?") {
			f.transition(StateIdle)
			return Result{State: StateIdle, Message: "check-out cancelled"}, nil
		}
		force = true
	}

	// Capture
	f.transition(StateCapturing)
	stream, err := f.camera.Open(ctx)
	if err != nil {
		return f.fail(fmt.Sprintf("could not open camera: %v", err)), nil
	}
	photo, err := stream.Capture(ctx)
	closeErr := stream.Close()
	if err != nil {
		return f.fail(fmt.Sprintf("could not capture photo: %v", err)), nil
	}
	if closeErr != nil {
		return f.fail(fmt.Sprintf("could not release camera: %v", closeErr)), nil
	}

	// Submit. Once this starts the attempt is not cancellable: the parent
	// context going away must not abandon a request already on the wire.
	f.transition(StateSubmitting)
	submitCtx := context.WithoutCancel(ctx)

	payload := client.CheckInPayload{
		GPS:            geo.FormatGPS(fix.Latitude, fix.Longitude),
		CapturedAtMs:   fix.CapturedAt.UnixMilli(),
		AccuracyMeters: fix.AccuracyMeters,
		Force:          force,
	}

	var result tracker.TrackerResponse
	if checkingOut {
		result, err = f.api.SubmitCheckOut(submitCtx, *status.TrackerID, payload, photo.Name, bytes.NewReader(photo.Data))
	} else {
		result, err = f.api.SubmitCheckIn(submitCtx, payload, photo.Name, bytes.NewReader(photo.Data))
	}
	if err != nil {
		return f.fail(fmt.Sprintf("submission failed: %v", err)), nil
	}

	f.transition(StateCompleted)
	f.transition(StateIdle)

	message := "check-in recorded"
	if checkingOut {
		message = "check-out recorded"
	}
	return Result{State: StateCompleted, Message: message, Tracker: &result}, nil
}

func locationFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "location permission denied, enable it in device settings"
	case errors.Is(err, ErrTimeout):
		return "could not get a location fix in time, move to open sky and retry"
	case errors.Is(err, ErrUnavailable):
		return "location hardware unavailable"
	default:
		return fmt.Sprintf("location error: %v", err)
	}
}

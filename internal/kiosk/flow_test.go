package kiosk

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsuite/opsuite-backend-go/internal/client"
	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
)

const testOfficeGPS = "-6.200000,106.800000"

type fakeAPI struct {
	status tracker.StatusResponse

	checkIns  int
	checkOuts int
	lastForce bool

	submitErr error
	started   chan struct{}
	release   chan struct{}
}

func (f *fakeAPI) TrackerStatus(_ context.Context) (tracker.StatusResponse, error) {
	return f.status, nil
}

func (f *fakeAPI) submit(payload client.CheckInPayload) (tracker.TrackerResponse, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	f.lastForce = payload.Force
	if f.submitErr != nil {
		return tracker.TrackerResponse{}, f.submitErr
	}
	return tracker.TrackerResponse{ID: "t-1", Status: tracker.StatusOpen}, nil
}

func (f *fakeAPI) SubmitCheckIn(_ context.Context, payload client.CheckInPayload, _ string, _ io.Reader) (tracker.TrackerResponse, error) {
	f.checkIns++
	return f.submit(payload)
}

func (f *fakeAPI) SubmitCheckOut(_ context.Context, _ string, payload client.CheckInPayload, _ string, _ io.Reader) (tracker.TrackerResponse, error) {
	f.checkOuts++
	return f.submit(payload)
}

type fakeLocation struct {
	fix Fix
	err error
}

func (f fakeLocation) Current(_ context.Context) (Fix, error) {
	if f.err != nil {
		return Fix{}, f.err
	}
	return f.fix, nil
}

type fakeCamera struct {
	openErr    error
	captureErr error

	mu     sync.Mutex
	opened int
	closed int
}

func (c *fakeCamera) Open(_ context.Context) (Stream, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.mu.Lock()
	c.opened++
	c.mu.Unlock()
	return &fakeStream{camera: c}, nil
}

func (c *fakeCamera) balanced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened == c.closed
}

type fakeStream struct {
	camera *fakeCamera
}

func (s *fakeStream) Capture(_ context.Context) (Photo, error) {
	if s.camera.captureErr != nil {
		return Photo{}, s.camera.captureErr
	}
	return Photo{Name: "proof.jpg", Data: []byte("jpeg")}, nil
}

func (s *fakeStream) Close() error {
	s.camera.mu.Lock()
	s.camera.closed++
	s.camera.mu.Unlock()
	return nil
}

type fakeConfirmer struct {
	answer   bool
	prompted bool
}

func (c *fakeConfirmer) Confirm(_ string) bool {
	c.prompted = true
	return c.answer
}

func onSiteFix() Fix {
	return Fix{
		Latitude:       -6.2,
		Longitude:      106.8,
		AccuracyMeters: 5,
		CapturedAt:     time.Now().UTC(),
	}
}

func checkInStatus() tracker.StatusResponse {
	return tracker.StatusResponse{
		CompanyGPS: testOfficeGPS,
		Tolerance:  "0.001",
	}
}

func checkOutStatus(under30 bool) tracker.StatusResponse {
	id := "t-1"
	checkIn := "2026-08-31 08:00:00"
	return tracker.StatusResponse{
		TrackerID:  &id,
		CheckIn:    &checkIn,
		CompanyGPS: testOfficeGPS,
		Tolerance:  "0.001",
		Under30Min: under30,
		Status:     tracker.StatusOpen,
	}
}

func newTestFlow(api *fakeAPI, location LocationProvider, camera *fakeCamera, confirmer *fakeConfirmer) (*Flow, *[]State) {
	flow := NewFlow(api, location, camera, confirmer)
	var trace []State
	flow.OnTransition = func(s State) {
		trace = append(trace, s)
	}
	return flow, &trace
}

func TestRun_CheckInHappyPath(t *testing.T) {
	api := &fakeAPI{status: checkInStatus()}
	camera := &fakeCamera{}
	flow, trace := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, result.State)
	require.NotNil(t, result.Tracker)
	assert.Equal(t, 1, api.checkIns)
	assert.Equal(t, 0, api.checkOuts)
	assert.True(t, camera.balanced())
	assert.Equal(t, []State{
		StateLocating, StateValidating, StateCapturing, StateSubmitting, StateCompleted, StateIdle,
	}, *trace)
}

func TestRun_RejectedOutsideRadius(t *testing.T) {
	api := &fakeAPI{status: checkInStatus()}
	camera := &fakeCamera{}
	far := onSiteFix()
	far.Latitude = -5.2
	flow, trace := newTestFlow(api, fakeLocation{fix: far}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateRejected, result.State)
	assert.Contains(t, result.Message, "km")
	assert.Equal(t, 0, api.checkIns)
	// Rejection happens before the camera is ever touched
	assert.Equal(t, 0, camera.opened)
	assert.Equal(t, []State{StateLocating, StateValidating, StateRejected, StateIdle}, *trace)
}

func TestRun_PermissionDenied(t *testing.T) {
	api := &fakeAPI{status: checkInStatus()}
	camera := &fakeCamera{}
	flow, trace := newTestFlow(api, fakeLocation{err: ErrPermissionDenied}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateFailed, result.State)
	assert.Contains(t, result.Message, "permission")
	assert.Equal(t, 0, api.checkIns)
	assert.Equal(t, []State{StateLocating, StateFailed, StateIdle}, *trace)
}

func TestRun_CameraReleasedOnCaptureFailure(t *testing.T) {
	api := &fakeAPI{status: checkInStatus()}
	camera := &fakeCamera{captureErr: errors.New("sensor fault")}
	flow, _ := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, 0, api.checkIns)
	assert.True(t, camera.balanced())
}

func TestRun_CheckOutUnderMinimumDeclined(t *testing.T) {
	api := &fakeAPI{status: checkOutStatus(true)}
	camera := &fakeCamera{}
	confirmer := &fakeConfirmer{answer: false}
	flow, trace := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, confirmer)

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateIdle, result.State)
	assert.True(t, confirmer.prompted)
	assert.Equal(t, 0, api.checkOuts)
	assert.Equal(t, 0, camera.opened)
	assert.Equal(t, []State{StateLocating, StateValidating, StateIdle}, *trace)
}

func TestRun_CheckOutUnderMinimumConfirmed(t *testing.T) {
	api := &fakeAPI{status: checkOutStatus(true)}
	camera := &fakeCamera{}
	confirmer := &fakeConfirmer{answer: true}
	flow, _ := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, confirmer)

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, 1, api.checkOuts)
	assert.True(t, api.lastForce)
	assert.True(t, camera.balanced())
}

func TestRun_CheckOutNormalSkipsPrompt(t *testing.T) {
	api := &fakeAPI{status: checkOutStatus(false)}
	camera := &fakeCamera{}
	confirmer := &fakeConfirmer{answer: false}
	flow, _ := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, confirmer)

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, result.State)
	assert.False(t, confirmer.prompted)
	assert.Equal(t, 1, api.checkOuts)
	assert.False(t, api.lastForce)
}

func TestRun_AlreadyCheckedOut(t *testing.T) {
	status := checkOutStatus(false)
	checkOut := "2026-08-31 17:00:00"
	status.CheckOut = &checkOut

	api := &fakeAPI{status: status}
	camera := &fakeCamera{}
	flow, _ := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateIdle, result.State)
	assert.Contains(t, result.Message, "already")
	assert.Equal(t, 0, api.checkOuts)
}

func TestRun_CheckOutWithoutRecordID(t *testing.T) {
	status := checkOutStatus(false)
	status.TrackerID = nil

	api := &fakeAPI{status: status}
	camera := &fakeCamera{}
	flow, trace := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateFailed, result.State)
	assert.Contains(t, result.Message, "inconsistent")
	assert.Equal(t, 0, api.checkOuts)
	assert.Equal(t, 0, camera.opened)
	assert.Equal(t, []State{StateFailed, StateIdle}, *trace)
}

func TestRun_SecondAttemptWhileBusy(t *testing.T) {
	api := &fakeAPI{
		status:  checkInStatus(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	camera := &fakeCamera{}
	flow, _ := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, &fakeConfirmer{})

	done := make(chan Result)
	go func() {
		result, err := flow.Run(context.Background())
		require.NoError(t, err)
		done <- result
	}()

	<-api.started

	_, err := flow.Run(context.Background())
	assert.ErrorIs(t, err, ErrAttemptInFlight)

	close(api.release)
	result := <-done
	assert.Equal(t, StateCompleted, result.State)
}

func TestRun_SubmissionFailure(t *testing.T) {
	api := &fakeAPI{status: checkInStatus(), submitErr: errors.New("network down")}
	camera := &fakeCamera{}
	flow, trace := newTestFlow(api, fakeLocation{fix: onSiteFix()}, camera, &fakeConfirmer{})

	result, err := flow.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateFailed, result.State)
	assert.Contains(t, result.Message, "submission failed")
	assert.True(t, camera.balanced())
	assert.Equal(t, []State{
		StateLocating, StateValidating, StateCapturing, StateSubmitting, StateFailed, StateIdle,
	}, *trace)
}

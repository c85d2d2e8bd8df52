package tracker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsuite/opsuite-backend-go/internal/config"
	"github.com/opsuite/opsuite-backend-go/internal/domain/company"
	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
)

const (
	testUserID    = "11111111-1111-1111-1111-111111111111"
	testCompanyID = "22222222-2222-2222-2222-222222222222"

	officeGPS = "-6.200000,106.800000"
)

func strPtr(s string) *string { return &s }

func authedContext(t *testing.T, userID, companyID string) context.Context {
	t.Helper()

	token, err := jwt.NewBuilder().
		Claim("user_id", userID).
		Claim("company_id", companyID).
		Build()
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeTrackerRepo struct {
	records map[string]tracker.Tracker
}

func newFakeTrackerRepo() *fakeTrackerRepo {
	return &fakeTrackerRepo{records: make(map[string]tracker.Tracker)}
}

func (r *fakeTrackerRepo) Create(_ context.Context, t tracker.Tracker) (tracker.Tracker, error) {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	r.records[t.ID] = t
	return t, nil
}

func (r *fakeTrackerRepo) GetByID(_ context.Context, id string, companyID string) (tracker.Tracker, error) {
	record, ok := r.records[id]
	if !ok || record.CompanyID != companyID {
		return tracker.Tracker{}, tracker.ErrTrackerNotFound
	}
	return record, nil
}

func (r *fakeTrackerRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time, companyID string) (*tracker.Tracker, error) {
	for _, record := range r.records {
		if record.UserID == userID && record.CompanyID == companyID && record.Date.Equal(date) {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeTrackerRepo) Update(_ context.Context, t tracker.Tracker) error {
	if _, ok := r.records[t.ID]; !ok {
		return tracker.ErrTrackerNotFound
	}
	r.records[t.ID] = t
	return nil
}

func (r *fakeTrackerRepo) List(_ context.Context, filter tracker.TrackerFilter, companyID string) ([]tracker.Tracker, int64, error) {
	var out []tracker.Tracker
	for _, record := range r.records {
		if record.CompanyID == companyID {
			out = append(out, record)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTrackerRepo) GetMyTrackers(_ context.Context, userID string, filter tracker.TrackerFilter, companyID string) ([]tracker.Tracker, int64, error) {
	var out []tracker.Tracker
	for _, record := range r.records {
		if record.UserID == userID && record.CompanyID == companyID {
			out = append(out, record)
		}
	}
	return out, int64(len(out)), nil
}

type fakeCompanyRepo struct {
	company company.Company
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	if id != r.company.ID {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return r.company, nil
}

func (r *fakeCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	return r.company, nil
}

func (r *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	return c, nil
}

func (r *fakeCompanyRepo) UpdateLocationConfig(_ context.Context, id string, req company.UpdateLocationConfigRequest) error {
	return nil
}

func (r *fakeCompanyRepo) UpdateLogoURL(_ context.Context, id string, logoURL string) error {
	return nil
}

type fakeFileService struct{}

func (fakeFileService) UploadTrackerProof(_ context.Context, userID string, _ time.Time, _ io.Reader, _ string, phase string) (string, error) {
	return "tracker/2026-08-31/" + userID + "-" + phase + ".jpg", nil
}

func (fakeFileService) UploadCompanyLogo(_ context.Context, _ string, _ io.Reader, _ string) (string, error) {
	return "", nil
}

func (fakeFileService) DeleteFile(_ context.Context, _ string) error { return nil }

func (fakeFileService) FileURL(path string) string { return "/files/" + path }

func testService(companyGPS, tolerance *string) (*TrackerServiceImpl, *fakeTrackerRepo) {
	trackerRepo := newFakeTrackerRepo()
	companyRepo := &fakeCompanyRepo{
		company: company.Company{
			ID:        testCompanyID,
			Name:      "Opsuite Test Co",
			Username:  "opsuite-test",
			GPS:       companyGPS,
			Tolerance: tolerance,
			Timezone:  "UTC",
		},
	}

	svc := &TrackerServiceImpl{
		TrackerRepository: trackerRepo,
		CompanyRepository: companyRepo,
		FileService:       fakeFileService{},
		Config: config.TrackerConfig{
			MinWorkDuration: 30 * time.Minute,
			LocationMaxAge:  60 * time.Second,
		},
	}

	return svc, trackerRepo
}

func freshCheckIn(gps string) tracker.CheckInRequest {
	return tracker.CheckInRequest{
		GPS:            gps,
		CapturedAtMs:   time.Now().UnixMilli(),
		AccuracyMeters: 5,
	}
}

func TestCheckIn_WithinTolerance(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	resp, err := svc.CheckIn(ctx, freshCheckIn(officeGPS))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, tracker.StatusOpen, resp.Status)
	assert.NotNil(t, resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)

	stored, err := repo.GetByID(ctx, resp.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, stored.UserID)
}

func TestCheckIn_OutsideTolerance(t *testing.T) {
	svc, _ := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	// Roughly one degree of latitude away, far beyond 0.001 degrees.
	_, err := svc.CheckIn(ctx, freshCheckIn("-5.200000,106.800000"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tracker.ErrOutsideTolerance))

	var outside *tracker.OutsideToleranceError
	require.ErrorAs(t, err, &outside)
	assert.Greater(t, outside.DistanceMeters, 100000.0)
	assert.Contains(t, outside.Error(), "km")
}

func TestCheckIn_NoLimitTolerance(t *testing.T) {
	svc, _ := testService(strPtr(officeGPS), strPtr("no_limit"))
	ctx := authedContext(t, testUserID, testCompanyID)

	_, err := svc.CheckIn(ctx, freshCheckIn("40.712800,-74.006000"))
	require.NoError(t, err)
}

func TestCheckIn_StaleFix(t *testing.T) {
	svc, _ := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	req := freshCheckIn(officeGPS)
	req.CapturedAtMs = time.Now().Add(-5 * time.Minute).UnixMilli()

	_, err := svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, tracker.ErrStaleLocation)
}

func TestCheckIn_FutureFix(t *testing.T) {
	svc, _ := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	// A skewed or forged clock must not sidestep the freshness window.
	req := freshCheckIn(officeGPS)
	req.CapturedAtMs = time.Now().Add(5 * time.Minute).UnixMilli()

	_, err := svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, tracker.ErrStaleLocation)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	svc, _ := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	_, err := svc.CheckIn(ctx, freshCheckIn(officeGPS))
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, freshCheckIn(officeGPS))
	assert.ErrorIs(t, err, tracker.ErrAlreadyCheckedIn)
}

func TestCheckIn_LocationNotConfigured(t *testing.T) {
	svc, _ := testService(nil, nil)
	ctx := authedContext(t, testUserID, testCompanyID)

	_, err := svc.CheckIn(ctx, freshCheckIn(officeGPS))
	assert.ErrorIs(t, err, tracker.ErrLocationNotConfigured)
}

func TestCheckOut_Complete(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	checkIn := time.Now().UTC().Add(-8 * time.Hour)
	seeded, err := repo.Create(ctx, tracker.Tracker{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Date:      workingDay(time.Now().UTC(), "UTC"),
		CheckIn:   &checkIn,
		Status:    tracker.StatusOpen,
	})
	require.NoError(t, err)

	req := tracker.CheckOutRequest{
		ID:             seeded.ID,
		GPS:            officeGPS,
		CapturedAtMs:   time.Now().UnixMilli(),
		AccuracyMeters: 5,
	}

	resp, err := svc.CheckOut(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, tracker.StatusComplete, resp.Status)
	assert.NotNil(t, resp.CheckOutTime)
	require.NotNil(t, resp.WorkingHours)
	assert.InDelta(t, 8.0, *resp.WorkingHours, 0.1)
}

func TestCheckOut_UnderMinimumDuration(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	checkIn := time.Now().UTC().Add(-5 * time.Minute)
	seeded, err := repo.Create(ctx, tracker.Tracker{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Date:      workingDay(time.Now().UTC(), "UTC"),
		CheckIn:   &checkIn,
		Status:    tracker.StatusOpen,
	})
	require.NoError(t, err)

	req := tracker.CheckOutRequest{
		ID:             seeded.ID,
		GPS:            officeGPS,
		CapturedAtMs:   time.Now().UnixMilli(),
		AccuracyMeters: 5,
	}

	// Without the acknowledgement the check-out is refused.
	_, err = svc.CheckOut(ctx, req)
	assert.ErrorIs(t, err, tracker.ErrUnderMinimumDuration)

	// A forced resubmission closes the day as incomplete.
	req.CapturedAtMs = time.Now().UnixMilli()
	req.Force = true

	resp, err := svc.CheckOut(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, tracker.StatusIncomplete, resp.Status)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	checkIn := time.Now().UTC().Add(-8 * time.Hour)
	checkOut := time.Now().UTC().Add(-1 * time.Hour)
	seeded, err := repo.Create(ctx, tracker.Tracker{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Date:      workingDay(time.Now().UTC(), "UTC"),
		CheckIn:   &checkIn,
		CheckOut:  &checkOut,
		Status:    tracker.StatusComplete,
	})
	require.NoError(t, err)

	req := tracker.CheckOutRequest{
		ID:             seeded.ID,
		GPS:            officeGPS,
		CapturedAtMs:   time.Now().UnixMilli(),
		AccuracyMeters: 5,
	}

	_, err = svc.CheckOut(ctx, req)
	assert.ErrorIs(t, err, tracker.ErrAlreadyCheckedOut)
}

func TestCheckOut_OtherUsersRecord(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	checkIn := time.Now().UTC().Add(-8 * time.Hour)
	seeded, err := repo.Create(ctx, tracker.Tracker{
		UserID:    uuid.New().String(),
		CompanyID: testCompanyID,
		Date:      workingDay(time.Now().UTC(), "UTC"),
		CheckIn:   &checkIn,
		Status:    tracker.StatusOpen,
	})
	require.NoError(t, err)

	req := tracker.CheckOutRequest{
		ID:             seeded.ID,
		GPS:            officeGPS,
		CapturedAtMs:   time.Now().UnixMilli(),
		AccuracyMeters: 5,
	}

	_, err = svc.CheckOut(ctx, req)
	assert.ErrorIs(t, err, tracker.ErrTrackerNotFound)
}

func TestStatus_ReflectsOpenRecord(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	resp, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp.TrackerID)
	assert.Equal(t, officeGPS, resp.CompanyGPS)
	assert.Equal(t, "0.001", resp.Tolerance)
	assert.Equal(t, "decimal_degrees", resp.ToleranceUnit)

	checkIn := time.Now().UTC().Add(-10 * time.Minute)
	_, err = repo.Create(ctx, tracker.Tracker{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Date:      workingDay(time.Now().UTC(), "UTC"),
		CheckIn:   &checkIn,
		Status:    tracker.StatusOpen,
	})
	require.NoError(t, err)

	resp, err = svc.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp.TrackerID)
	assert.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.CheckOut)
	assert.True(t, resp.Under30Min)
	assert.Equal(t, tracker.StatusOpen, resp.Status)
}

func TestGetMyTrackers(t *testing.T) {
	svc, repo := testService(strPtr(officeGPS), strPtr("0.001"))
	ctx := authedContext(t, testUserID, testCompanyID)

	checkIn := time.Now().UTC().Add(-8 * time.Hour)
	_, err := repo.Create(ctx, tracker.Tracker{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Date:      workingDay(time.Now().UTC(), "UTC"),
		CheckIn:   &checkIn,
		Status:    tracker.StatusOpen,
	})
	require.NoError(t, err)

	resp, err := svc.GetMyTrackers(ctx, tracker.TrackerFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Len(t, resp.Trackers, 1)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}

package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/opsuite/opsuite-backend-go/internal/config"
	"github.com/opsuite/opsuite-backend-go/internal/domain/company"
	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/geo"
	"github.com/opsuite/opsuite-backend-go/internal/service/file"
)

type TrackerServiceImpl struct {
	TrackerRepository tracker.TrackerRepository
	CompanyRepository company.CompanyRepository
	FileService       file.FileService
	Config            config.TrackerConfig
}

func NewTrackerService(
	trackerRepository tracker.TrackerRepository,
	companyRepository company.CompanyRepository,
	fileService file.FileService,
	cfg config.TrackerConfig,
) tracker.TrackerService {
	return &TrackerServiceImpl{
		TrackerRepository: trackerRepository,
		CompanyRepository: companyRepository,
		FileService:       fileService,
		Config:            cfg,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func claimsFromContext(ctx context.Context) (userID string, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return userID, companyID, nil
}

// geofence resolves the company's configured office point and tolerance.
// Both must be set before location attendance can run at all.
func (s *TrackerServiceImpl) geofence(ctx context.Context, companyID string) (comp company.Company, lat, lng float64, tol geo.Tolerance, err error) {
	comp, err = s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.Company{}, 0, 0, geo.Tolerance{}, fmt.Errorf("failed to get company: %w", err)
	}

	if comp.GPS == nil || comp.Tolerance == nil {
		return company.Company{}, 0, 0, geo.Tolerance{}, tracker.ErrLocationNotConfigured
	}

	lat, lng, err = geo.ParseGPS(*comp.GPS)
	if err != nil {
		return company.Company{}, 0, 0, geo.Tolerance{}, tracker.ErrLocationNotConfigured
	}

	tol, err = geo.ParseTolerance(*comp.Tolerance)
	if err != nil {
		return company.Company{}, 0, 0, geo.Tolerance{}, tracker.ErrLocationNotConfigured
	}

	return comp, lat, lng, tol, nil
}

// maxCaptureSkew bounds how far ahead of server time a device may claim
// its fix was captured. Anything beyond ordinary clock drift is rejected.
const maxCaptureSkew = 30 * time.Second

// validateFix checks the submitted device fix: it must be fresh and inside
// the company radius. The distance check always runs here so a client that
// skipped its own validation cannot slip through.
func (s *TrackerServiceImpl) validateFix(gps string, capturedAtMs int64, now time.Time, officeLat, officeLng float64, tol geo.Tolerance) (lat, lng float64, err error) {
	capturedAt := time.UnixMilli(capturedAtMs).UTC()
	age := now.Sub(capturedAt)
	if age > s.Config.LocationMaxAge || age < -maxCaptureSkew {
		return 0, 0, tracker.ErrStaleLocation
	}

	lat, lng, err = geo.ParseGPS(gps)
	if err != nil {
		return 0, 0, err
	}

	distance := geo.HaversineDistance(lat, lng, officeLat, officeLng)
	if !geo.WithinTolerance(distance, tol) {
		return 0, 0, &tracker.OutsideToleranceError{DistanceMeters: distance}
	}

	return lat, lng, nil
}

// workingDay converts an absolute instant into the company-local calendar
// day the record belongs to.
func workingDay(now time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Status implements tracker.TrackerService.
func (s *TrackerServiceImpl) Status(ctx context.Context) (tracker.StatusResponse, error) {
	userID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return tracker.StatusResponse{}, err
	}

	comp, _, _, tol, err := s.geofence(ctx, companyID)
	if err != nil {
		return tracker.StatusResponse{}, err
	}

	nowUTC := time.Now().UTC()
	today := workingDay(nowUTC, comp.Timezone)

	record, err := s.TrackerRepository.GetByUserAndDate(ctx, userID, today, companyID)
	if err != nil {
		return tracker.StatusResponse{}, fmt.Errorf("failed to get today's tracker: %w", err)
	}

	resp := tracker.StatusResponse{
		CompanyGPS:    *comp.GPS,
		Tolerance:     *comp.Tolerance,
		ToleranceUnit: string(tol.Unit),
	}

	if record != nil {
		resp.TrackerID = &record.ID
		resp.CheckIn = timePtrToString(record.CheckIn)
		resp.CheckOut = timePtrToString(record.CheckOut)
		resp.Status = record.Status

		if record.CheckIn != nil && record.CheckOut == nil {
			resp.Under30Min = nowUTC.Sub(*record.CheckIn) < s.Config.MinWorkDuration
		}
	}

	return resp, nil
}

// CheckIn implements tracker.TrackerService.
func (s *TrackerServiceImpl) CheckIn(ctx context.Context, req tracker.CheckInRequest) (tracker.TrackerResponse, error) {
	if err := req.Validate(); err != nil {
		return tracker.TrackerResponse{}, err
	}
	nowUTC := time.Now().UTC()

	userID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}

	comp, officeLat, officeLng, tol, err := s.geofence(ctx, companyID)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}

	lat, lng, err := s.validateFix(req.GPS, req.CapturedAtMs, nowUTC, officeLat, officeLng, tol)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}

	today := workingDay(nowUTC, comp.Timezone)

	existing, err := s.TrackerRepository.GetByUserAndDate(ctx, userID, today, companyID)
	if err != nil {
		return tracker.TrackerResponse{}, fmt.Errorf("failed to check today's tracker: %w", err)
	}
	if existing != nil {
		return tracker.TrackerResponse{}, tracker.ErrAlreadyCheckedIn
	}

	if req.File != nil && req.FileHeader != nil {
		photoURL, err := s.FileService.UploadTrackerProof(ctx, userID, today, req.File, req.FileHeader.Filename, "check-in")
		if err != nil {
			return tracker.TrackerResponse{}, fmt.Errorf("failed to upload tracker proof: %w", err)
		}
		req.PhotoURL = &photoURL
	}

	data := tracker.Tracker{
		UserID:    userID,
		CompanyID: companyID,
		Date:      today,

		CheckIn:          &nowUTC,
		CheckInLatitude:  &lat,
		CheckInLongitude: &lng,
		CheckInPhotoURL:  req.PhotoURL,

		Status: tracker.StatusOpen,
	}

	created, err := s.TrackerRepository.Create(ctx, data)
	if err != nil {
		return tracker.TrackerResponse{}, fmt.Errorf("failed to create tracker record: %w", err)
	}

	return toTrackerResponse(created), nil
}

// CheckOut implements tracker.TrackerService.
func (s *TrackerServiceImpl) CheckOut(ctx context.Context, req tracker.CheckOutRequest) (tracker.TrackerResponse, error) {
	if err := req.Validate(); err != nil {
		return tracker.TrackerResponse{}, err
	}
	nowUTC := time.Now().UTC()

	userID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}

	_, officeLat, officeLng, tol, err := s.geofence(ctx, companyID)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}

	lat, lng, err := s.validateFix(req.GPS, req.CapturedAtMs, nowUTC, officeLat, officeLng, tol)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}

	record, err := s.TrackerRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}
	if record.UserID != userID {
		return tracker.TrackerResponse{}, tracker.ErrTrackerNotFound
	}

	if record.CheckIn == nil {
		return tracker.TrackerResponse{}, tracker.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return tracker.TrackerResponse{}, tracker.ErrAlreadyCheckedOut
	}

	worked := nowUTC.Sub(*record.CheckIn)
	status := tracker.StatusComplete
	if worked < s.Config.MinWorkDuration {
		if !req.Force {
			return tracker.TrackerResponse{}, tracker.ErrUnderMinimumDuration
		}
		status = tracker.StatusIncomplete
	}

	if req.File != nil && req.FileHeader != nil {
		photoURL, err := s.FileService.UploadTrackerProof(ctx, userID, record.Date, req.File, req.FileHeader.Filename, "check-out")
		if err != nil {
			return tracker.TrackerResponse{}, fmt.Errorf("failed to upload tracker proof: %w", err)
		}
		req.PhotoURL = &photoURL
	}

	workMinutes := int(worked.Minutes())

	record.CheckOut = &nowUTC
	record.CheckOutLatitude = &lat
	record.CheckOutLongitude = &lng
	record.CheckOutPhotoURL = req.PhotoURL
	record.WorkMinutes = &workMinutes
	record.Status = status

	if err := s.TrackerRepository.Update(ctx, record); err != nil {
		return tracker.TrackerResponse{}, fmt.Errorf("failed to update tracker record: %w", err)
	}

	return toTrackerResponse(record), nil
}

// ListTrackers implements tracker.TrackerService.
func (s *TrackerServiceImpl) ListTrackers(ctx context.Context, filter tracker.TrackerFilter) (tracker.ListTrackerResponse, error) {
	if err := filter.Validate(); err != nil {
		return tracker.ListTrackerResponse{}, err
	}

	_, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return tracker.ListTrackerResponse{}, err
	}

	records, total, err := s.TrackerRepository.List(ctx, filter, companyID)
	if err != nil {
		return tracker.ListTrackerResponse{}, fmt.Errorf("failed to list trackers: %w", err)
	}

	return toListResponse(records, total, filter), nil
}

// GetMyTrackers implements tracker.TrackerService.
func (s *TrackerServiceImpl) GetMyTrackers(ctx context.Context, filter tracker.TrackerFilter) (tracker.ListTrackerResponse, error) {
	if err := filter.Validate(); err != nil {
		return tracker.ListTrackerResponse{}, err
	}

	userID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return tracker.ListTrackerResponse{}, err
	}

	records, total, err := s.TrackerRepository.GetMyTrackers(ctx, userID, filter, companyID)
	if err != nil {
		return tracker.ListTrackerResponse{}, fmt.Errorf("failed to list own trackers: %w", err)
	}

	return toListResponse(records, total, filter), nil
}

func toTrackerResponse(t tracker.Tracker) tracker.TrackerResponse {
	resp := tracker.TrackerResponse{
		ID:                t.ID,
		UserID:            t.UserID,
		Date:              t.Date.Format("2006-01-02"),
		CheckInTime:       timePtrToString(t.CheckIn),
		CheckOutTime:      timePtrToString(t.CheckOut),
		CheckInLatitude:   t.CheckInLatitude,
		CheckInLongitude:  t.CheckInLongitude,
		CheckOutLatitude:  t.CheckOutLatitude,
		CheckOutLongitude: t.CheckOutLongitude,
		CheckInPhotoURL:   t.CheckInPhotoURL,
		CheckOutPhotoURL:  t.CheckOutPhotoURL,
		Status:            t.Status,
	}

	if t.UserName != nil {
		resp.UserName = *t.UserName
	}

	if t.WorkMinutes != nil {
		hours := float64(*t.WorkMinutes) / 60.0
		resp.WorkingHours = &hours
	}

	return resp
}

func toListResponse(records []tracker.Tracker, total int64, filter tracker.TrackerFilter) tracker.ListTrackerResponse {
	trackers := make([]tracker.TrackerResponse, 0, len(records))
	for _, record := range records {
		trackers = append(trackers, toTrackerResponse(record))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return tracker.ListTrackerResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Trackers:   trackers,
	}
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/database"
)

type trackerRepository struct {
	db *database.DB
}

func NewTrackerRepository(db *database.DB) tracker.TrackerRepository {
	return &trackerRepository{db: db}
}

const trackerColumns = `
	t.id, t.user_id, t.company_id, t.date,
	t.check_in, t.check_out,
	t.check_in_latitude, t.check_in_longitude, t.check_in_photo_url,
	t.check_out_latitude, t.check_out_longitude, t.check_out_photo_url,
	t.work_minutes, t.status, t.created_at, t.updated_at,
	u.name AS user_name
`

func scanTracker(row pgx.Row) (tracker.Tracker, error) {
	var t tracker.Tracker
	err := row.Scan(
		&t.ID, &t.UserID, &t.CompanyID, &t.Date,
		&t.CheckIn, &t.CheckOut,
		&t.CheckInLatitude, &t.CheckInLongitude, &t.CheckInPhotoURL,
		&t.CheckOutLatitude, &t.CheckOutLongitude, &t.CheckOutPhotoURL,
		&t.WorkMinutes, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.UserName,
	)
	return t, err
}

// Create implements tracker.TrackerRepository.
func (r *trackerRepository) Create(ctx context.Context, t tracker.Tracker) (tracker.Tracker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO trackers (
			user_id, company_id, date,
			check_in, check_in_latitude, check_in_longitude, check_in_photo_url,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.UserID,
		t.CompanyID,
		t.Date,
		t.CheckIn,
		t.CheckInLatitude,
		t.CheckInLongitude,
		t.CheckInPhotoURL,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return tracker.Tracker{}, fmt.Errorf("failed to create tracker: %w", err)
	}

	return t, nil
}

// GetByID implements tracker.TrackerRepository.
func (r *trackerRepository) GetByID(ctx context.Context, id string, companyID string) (tracker.Tracker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + trackerColumns + `
		FROM trackers t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	t, err := scanTracker(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracker.Tracker{}, tracker.ErrTrackerNotFound
		}
		return tracker.Tracker{}, fmt.Errorf("failed to get tracker by id: %w", err)
	}

	return t, nil
}

// GetByUserAndDate implements tracker.TrackerRepository.
func (r *trackerRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time, companyID string) (*tracker.Tracker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + trackerColumns + `
		FROM trackers t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1 AND t.date = $2 AND t.company_id = $3
		LIMIT 1
	`

	t, err := scanTracker(q.QueryRow(ctx, query, userID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for this day
		}
		return nil, fmt.Errorf("failed to get tracker by user and date: %w", err)
	}

	return &t, nil
}

// Update implements tracker.TrackerRepository.
func (r *trackerRepository) Update(ctx context.Context, t tracker.Tracker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE trackers SET
			check_out = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			check_out_photo_url = $4,
			work_minutes = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $7 AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		t.CheckOut,
		t.CheckOutLatitude,
		t.CheckOutLongitude,
		t.CheckOutPhotoURL,
		t.WorkMinutes,
		t.Status,
		t.ID,
		t.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tracker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tracker.ErrTrackerNotFound
	}

	return nil
}

// List implements tracker.TrackerRepository.
func (r *trackerRepository) List(ctx context.Context, filter tracker.TrackerFilter, companyID string) ([]tracker.Tracker, int64, error) {
	conditions := []string{"t.company_id = $1"}
	args := []interface{}{companyID}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("t.user_id = $%d", len(args)))
	}
	if filter.UserName != nil {
		args = append(args, "%"+*filter.UserName+"%")
		conditions = append(conditions, fmt.Sprintf("u.name ILIKE $%d", len(args)))
	}
	if filter.Date != nil && *filter.Date != "" {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("t.date = $%d", len(args)))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	return r.query(ctx, where, args, filter)
}

// GetMyTrackers implements tracker.TrackerRepository.
func (r *trackerRepository) GetMyTrackers(ctx context.Context, userID string, filter tracker.TrackerFilter, companyID string) ([]tracker.Tracker, int64, error) {
	conditions := []string{"t.company_id = $1", "t.user_id = $2"}
	args := []interface{}{companyID, userID}

	if filter.Date != nil && *filter.Date != "" {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("t.date = $%d", len(args)))
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	return r.query(ctx, where, args, filter)
}

func (r *trackerRepository) query(ctx context.Context, where string, args []interface{}, filter tracker.TrackerFilter) ([]tracker.Tracker, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT COUNT(*)
		FROM trackers t
		JOIN users u ON u.id = t.user_id
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trackers: %w", err)
	}

	listArgs := append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM trackers t
		JOIN users u ON u.id = t.user_id
		WHERE %s
		ORDER BY t.date DESC, t.check_in DESC
		LIMIT $%d OFFSET $%d
	`, trackerColumns, where, len(listArgs)-1, len(listArgs))

	rows, err := q.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trackers: %w", err)
	}
	defer rows.Close()

	var trackers []tracker.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tracker row: %w", err)
		}
		trackers = append(trackers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tracker rows: %w", err)
	}

	return trackers, total, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opsuite/opsuite-backend-go/internal/domain/company"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `
	id, name, username, address, logo_url,
	gps, tolerance, attendance_type, timezone,
	created_at, updated_at
`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Username, &c.Address, &c.LogoURL,
		&c.GPS, &c.Tolerance, &c.AttendanceType, &c.Timezone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by id: %w", err)
	}

	return c, nil
}

// GetByUsername implements company.CompanyRepository.
func (r *companyRepository) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE username = $1`

	c, err := scanCompany(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by username: %w", err)
	}

	return c, nil
}

// Create implements company.CompanyRepository.
func (r *companyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (name, username, address, gps, tolerance, attendance_type, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newCompany.Name,
		newCompany.Username,
		newCompany.Address,
		newCompany.GPS,
		newCompany.Tolerance,
		newCompany.AttendanceType,
		newCompany.Timezone,
	).Scan(&newCompany.ID, &newCompany.CreatedAt, &newCompany.UpdatedAt)

	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return newCompany, nil
}

// UpdateLocationConfig implements company.CompanyRepository.
func (r *companyRepository) UpdateLocationConfig(ctx context.Context, id string, req company.UpdateLocationConfigRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies SET
			gps = $1,
			tolerance = $2,
			attendance_type = COALESCE($3, attendance_type),
			updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, req.GPS, req.Tolerance, req.AttendanceType, id)
	if err != nil {
		return fmt.Errorf("failed to update company location config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// UpdateLogoURL implements company.CompanyRepository.
func (r *companyRepository) UpdateLogoURL(ctx context.Context, id string, logoURL string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies SET
			logo_url = $1,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, logoURL, id)
	if err != nil {
		return fmt.Errorf("failed to update company logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

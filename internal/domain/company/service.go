package company

import (
	"context"
	"io"
)

type CompanyService interface {
	// GetMyCompany returns the caller's company profile
	GetMyCompany(ctx context.Context) (CompanyResponse, error)

	// UpdateLocationConfig changes the geofence settings (admin only)
	UpdateLocationConfig(ctx context.Context, req UpdateLocationConfigRequest) (CompanyResponse, error)

	// UploadLogo replaces the company logo (admin only)
	UploadLogo(ctx context.Context, file io.Reader, filename string) (CompanyResponse, error)
}

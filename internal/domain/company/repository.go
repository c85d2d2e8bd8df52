package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByUsername(ctx context.Context, username string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	UpdateLocationConfig(ctx context.Context, id string, req UpdateLocationConfigRequest) error
	UpdateLogoURL(ctx context.Context, id string, logoURL string) error
}

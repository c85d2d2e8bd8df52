package company

import (
	"context"
	"fmt"
	"io"

	"github.com/go-chi/jwtauth/v5"

	"github.com/opsuite/opsuite-backend-go/internal/domain/company"
	"github.com/opsuite/opsuite-backend-go/internal/service/file"
)

type CompanyServiceImpl struct {
	CompanyRepository company.CompanyRepository
	FileService       file.FileService
}

func NewCompanyService(companyRepository company.CompanyRepository, fileService file.FileService) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		FileService:       fileService,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func toCompanyResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		Username:       c.Username,
		Address:        c.Address,
		LogoURL:        c.LogoURL,
		GPS:            c.GPS,
		Tolerance:      c.Tolerance,
		AttendanceType: c.AttendanceType,
		Timezone:       c.Timezone,
	}
}

// GetMyCompany implements company.CompanyService.
func (s *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return toCompanyResponse(companyData), nil
}

// UpdateLocationConfig implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateLocationConfig(ctx context.Context, req company.UpdateLocationConfigRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if err := s.CompanyRepository.UpdateLocationConfig(ctx, companyID, req); err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return toCompanyResponse(companyData), nil
}

// UploadLogo implements company.CompanyService.
func (s *CompanyServiceImpl) UploadLogo(ctx context.Context, fileReader io.Reader, filename string) (company.CompanyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	logoURL, err := s.FileService.UploadCompanyLogo(ctx, companyData.Username, fileReader, filename)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if err := s.CompanyRepository.UpdateLogoURL(ctx, companyID, logoURL); err != nil {
		return company.CompanyResponse{}, err
	}

	companyData.LogoURL = &logoURL
	return toCompanyResponse(companyData), nil
}

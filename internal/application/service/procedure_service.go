package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// ProcedureService handles the billable services catalog
type ProcedureService struct {
	procedureRepo repository.ProcedureRepository
}

// NewProcedureService creates a new procedure service
func NewProcedureService(procedureRepo repository.ProcedureRepository) *ProcedureService {
	return &ProcedureService{procedureRepo: procedureRepo}
}

// ProcedureInput represents the create/update procedure input
type ProcedureInput struct {
	ClinicID     uuid.UUID
	Name         string
	Category     *string
	DefaultPrice float64
	Active       *bool
}

// CreateProcedure adds a billable service to the catalog
func (s *ProcedureService) CreateProcedure(ctx context.Context, input *ProcedureInput) (*entity.Procedure, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}
	priceCents := int64(input.DefaultPrice * 100)
	if priceCents < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "default_price", Message: "default price must not be negative"},
		})
	}

	procedure := &entity.Procedure{
		ClinicID:     input.ClinicID,
		Name:         input.Name,
		Category:     input.Category,
		DefaultPrice: priceCents,
		Active:       true,
	}
	if err := s.procedureRepo.Create(ctx, procedure); err != nil {
		return nil, err
	}
	return procedure, nil
}

// GetProcedure retrieves a procedure by ID
func (s *ProcedureService) GetProcedure(ctx context.Context, id uuid.UUID) (*entity.Procedure, error) {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if procedure == nil {
		return nil, apperror.NewNotFoundError("Procedure")
	}
	return procedure, nil
}

// UpdateProcedure updates a catalog entry
func (s *ProcedureService) UpdateProcedure(ctx context.Context, id uuid.UUID, input *ProcedureInput) (*entity.Procedure, error) {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if procedure == nil {
		return nil, apperror.NewNotFoundError("Procedure")
	}

	if input.Name != "" {
		procedure.Name = input.Name
	}
	if input.Category != nil {
		procedure.Category = input.Category
	}
	if input.DefaultPrice > 0 {
		procedure.DefaultPrice = int64(input.DefaultPrice * 100)
	}
	if input.Active != nil {
		procedure.Active = *input.Active
	}

	if err := s.procedureRepo.Update(ctx, procedure); err != nil {
		return nil, err
	}
	return procedure, nil
}

// DeleteProcedure removes a catalog entry
func (s *ProcedureService) DeleteProcedure(ctx context.Context, id uuid.UUID) error {
	procedure, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if procedure == nil {
		return apperror.NewNotFoundError("Procedure")
	}
	return s.procedureRepo.Delete(ctx, id)
}

// ListProcedures lists catalog entries with optional search
func (s *ProcedureService) ListProcedures(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) (*pagination.PaginatedResult[entity.Procedure], error) {
	procedures, total, err := s.procedureRepo.List(ctx, params, search, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(procedures, pag), nil
}

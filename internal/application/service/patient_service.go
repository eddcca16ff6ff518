package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// PatientService handles the patient directory
type PatientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// PatientInput represents the create/update patient input
type PatientInput struct {
	ClinicID    uuid.UUID
	Name        string
	Phone       *string
	Email       *string
	DateOfBirth *time.Time
	Gender      *string
	Address     *string
	Notes       *string
}

// CreatePatient registers a new patient
func (s *PatientService) CreatePatient(ctx context.Context, input *PatientInput) (*entity.Patient, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	patient := &entity.Patient{
		ClinicID:    input.ClinicID,
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Address:     input.Address,
		Notes:       input.Notes,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// UpdatePatient updates a patient's directory record
func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, input *PatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.Name != "" {
		patient.Name = input.Name
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		patient.Gender = input.Gender
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.Notes != nil {
		patient.Notes = input.Notes
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient removes a patient from the directory
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}
	return s.patientRepo.Delete(ctx, id)
}

// ListPatients lists patients with optional name/phone search
func (s *PatientService) ListPatients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// AppointmentService handles the appointment directory
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
	}
}

// AppointmentInput represents the create appointment input
type AppointmentInput struct {
	ClinicID    uuid.UUID
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Type        string
	ScheduledAt time.Time
	Notes       *string
}

// CreateAppointment schedules a visit
func (s *AppointmentService) CreateAppointment(ctx context.Context, input *AppointmentInput) (*entity.Appointment, error) {
	if input.Type == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "type", Message: "type is required"},
		})
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	appointment := &entity.Appointment{
		ClinicID:    input.ClinicID,
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		Type:        input.Type,
		ScheduledAt: input.ScheduledAt,
		Status:      enum.AppointmentStatusScheduled,
		Notes:       input.Notes,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

// UpdateStatus moves an appointment through its lifecycle
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Status == enum.AppointmentStatusCancelled {
		return nil, apperror.NewConflictError("Appointment has been cancelled")
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.appointmentRepo.GetByID(ctx, id)
}

// Reschedule changes an appointment's scheduled time
func (s *AppointmentService) Reschedule(ctx context.Context, id uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Status != enum.AppointmentStatusScheduled {
		return nil, apperror.NewConflictError("Only scheduled appointments can be rescheduled")
	}

	appointment.ScheduledAt = scheduledAt
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListAppointments lists appointments with filtering
func (s *AppointmentService) ListAppointments(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

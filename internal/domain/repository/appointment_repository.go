package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// AppointmentRepository defines the interface for appointment directory operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
}

// AppointmentFilterParams contains filtering parameters for appointment queries
type AppointmentFilterParams struct {
	Pagination *pagination.PaginationParams
	PatientID  *uuid.UUID
	DoctorID   *uuid.UUID
	Status     *enum.AppointmentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

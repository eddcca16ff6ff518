package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Patient").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) List(ctx context.Context, params *domainRepo.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Appointment{}).Scopes(ClinicScope(ctx))

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}
	if params.DoctorID != nil {
		query = query.Where("doctor_id = ?", *params.DoctorID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("scheduled_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("scheduled_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Order("scheduled_at DESC").
		Find(&appointments).Error

	return appointments, total, err
}

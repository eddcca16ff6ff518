package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/pagination"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (r *patientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Patient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var patients []entity.Patient
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&patients).Error
	return patients, err
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.Patient{}, "id = ?", id).Error
}

func (r *patientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error) {
	var patients []entity.Patient
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Patient{}).Scopes(ClinicScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&patients).Error

	return patients, total, err
}

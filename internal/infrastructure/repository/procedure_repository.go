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

type procedureRepository struct {
	db *gorm.DB
}

// NewProcedureRepository creates a new procedure repository
func NewProcedureRepository(db *gorm.DB) domainRepo.ProcedureRepository {
	return &procedureRepository{db: db}
}

func (r *procedureRepository) Create(ctx context.Context, procedure *entity.Procedure) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(procedure).Error
}

func (r *procedureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		First(&procedure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &procedure, err
}

func (r *procedureRepository) Update(ctx context.Context, procedure *entity.Procedure) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(procedure).Error
}

func (r *procedureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.Procedure{}, "id = ?", id).Error
}

func (r *procedureRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Procedure, int64, error) {
	var procedures []entity.Procedure
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Procedure{}).Scopes(ClinicScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&procedures).Error

	return procedures, total, err
}

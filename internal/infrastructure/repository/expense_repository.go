package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/pagination"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *pagination.PaginationParams, from, to *time.Time) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).Scopes(ClinicScope(ctx))

	if from != nil {
		query = query.Where("incurred_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("incurred_at < ?", *to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("incurred_at DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) SumInRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) (int64, error) {
	var sum *int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Where("clinic_id = ? AND incurred_at >= ? AND incurred_at < ?", clinicID, from, to).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

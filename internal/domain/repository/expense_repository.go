package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, from, to *time.Time) ([]entity.Expense, int64, error)
	// SumInRange totals expenses in [from, to) in cents.
	SumInRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) (int64, error)
}

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

// ExpenseService handles clinic expense tracking. Expenses feed the
// monthly summary but are never reconciled against payments.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ExpenseInput represents the create/update expense input
type ExpenseInput struct {
	ClinicID   uuid.UUID
	Label      string
	Category   *string
	Amount     float64
	IncurredAt time.Time
	RecordedBy uuid.UUID
}

// CreateExpense records an outgoing
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	if input.Label == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "label", Message: "label is required"},
		})
	}
	amountCents := int64(input.Amount * 100)
	if amountCents <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must be greater than zero"},
		})
	}

	incurredAt := input.IncurredAt
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}

	expense := &entity.Expense{
		ClinicID:   input.ClinicID,
		Label:      input.Label,
		Category:   input.Category,
		Amount:     amountCents,
		IncurredAt: incurredAt,
		RecordedBy: input.RecordedBy,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// UpdateExpense updates an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	if input.Label != "" {
		expense.Label = input.Label
	}
	if input.Category != nil {
		expense.Category = input.Category
	}
	if input.Amount > 0 {
		expense.Amount = int64(input.Amount * 100)
	}
	if !input.IncurredAt.IsZero() {
		expense.IncurredAt = input.IncurredAt
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses lists expenses in an optional date range
func (s *ExpenseService) ListExpenses(ctx context.Context, params *pagination.PaginationParams, from, to *time.Time) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params, from, to)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

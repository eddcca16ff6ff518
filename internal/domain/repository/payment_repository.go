package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]entity.Payment, error)
	ListInRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]entity.Payment, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	PatientID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

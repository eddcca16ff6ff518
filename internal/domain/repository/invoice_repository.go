package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetUnpaidByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// TransitionStatus performs a conditional status update and reports
	// whether a row actually moved, so callers can distinguish a missing
	// invoice from an illegal transition.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.InvoiceStatus) (bool, error)
	ReplaceLineItems(ctx context.Context, invoiceID uuid.UUID, items []entity.InvoiceLineItem) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListUnpaidByClinic(ctx context.Context, clinicID uuid.UUID) ([]entity.Invoice, error)
	ListByStatusInRange(ctx context.Context, clinicID uuid.UUID, status enum.InvoiceStatus, from, to time.Time) ([]entity.Invoice, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	PatientID  *uuid.UUID
	Status     *enum.InvoiceStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

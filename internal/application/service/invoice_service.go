package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/billing"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// InvoiceService owns invoice records and their status transitions
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	tx          repository.TxManager
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	tx repository.TxManager,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	ClinicID        uuid.UUID
	DoctorID        uuid.UUID
	PatientID       uuid.UUID
	AppointmentID   *uuid.UUID
	AppointmentType string
	Amount          float64
	LineItems       []entity.InvoiceLineItem
}

// CreateInvoice creates a new unpaid invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	amountCents := int64(input.Amount * 100)
	if amountCents < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must not be negative"},
		})
	}

	invoice := &entity.Invoice{
		ClinicID:        input.ClinicID,
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		AppointmentID:   input.AppointmentID,
		AppointmentType: input.AppointmentType,
		Amount:          amountCents,
		Status:          enum.InvoiceStatusUnpaid,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		if len(input.LineItems) > 0 {
			return s.invoiceRepo.ReplaceLineItems(ctx, invoice.ID, input.LineItems)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// LineItemsInput carries the charge components used to rebuild an
// invoice's line items
type LineItemsInput struct {
	ConsultationWaived bool
	ConsultationAmount float64
	ProcedureLines     []ProcedureLineInput
	DiscountPercent    int
}

// ProcedureLineInput represents one procedure charge
type ProcedureLineInput struct {
	Label  string
	Amount float64
}

// BuildLineItems turns a charge composition into ordered line items. A
// waived consultation is kept as a zero-amount line so the record shows
// the consultation happened.
func BuildLineItems(input *LineItemsInput) []entity.InvoiceLineItem {
	items := make([]entity.InvoiceLineItem, 0, len(input.ProcedureLines)+2)

	consultationCents := int64(input.ConsultationAmount * 100)
	if input.ConsultationWaived {
		consultationCents = 0
	}
	items = append(items, entity.InvoiceLineItem{
		Label:  "Consultation",
		Kind:   enum.LineItemKindConsultation,
		Amount: consultationCents,
	})

	var subtotal int64 = consultationCents
	for _, p := range input.ProcedureLines {
		cents := int64(p.Amount * 100)
		subtotal += cents
		items = append(items, entity.InvoiceLineItem{
			Label:  p.Label,
			Kind:   enum.LineItemKindProcedure,
			Amount: cents,
		})
	}

	if discount := billing.DiscountAmount(subtotal, input.DiscountPercent); discount > 0 {
		items = append(items, entity.InvoiceLineItem{
			Label:  "Discount",
			Kind:   enum.LineItemKindDiscount,
			Amount: discount,
		})
	}

	return items
}

// SumLineItems applies the invoice amount invariant:
// amount == max(0, sum(non-discount lines) - sum(discount lines))
func SumLineItems(items []entity.InvoiceLineItem) int64 {
	var charges, discounts int64
	for _, li := range items {
		if li.Kind == enum.LineItemKindDiscount {
			discounts += li.Amount
		} else {
			charges += li.Amount
		}
	}
	total := charges - discounts
	if total < 0 {
		total = 0
	}
	return total
}

// UpdateLineItems replaces an invoice's line items and recomputes its
// amount. Only unpaid invoices can be reshaped.
func (s *InvoiceService) UpdateLineItems(ctx context.Context, invoiceID uuid.UUID, input *LineItemsInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusUnpaid {
		return nil, apperror.NewConflictError("Invoice is " + invoice.Status.String() + " and can no longer be changed")
	}

	items := BuildLineItems(input)
	invoice.Amount = SumLineItems(items)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.ReplaceLineItems(ctx, invoiceID, items); err != nil {
			return err
		}
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

// MarkPaid moves an invoice from unpaid to paid. Paying an invoice twice
// is a conflict, never a silent no-op.
func (s *InvoiceService) MarkPaid(ctx context.Context, invoiceID uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, invoiceID, enum.InvoiceStatusPaid)
}

// Void moves an invoice from unpaid to void
func (s *InvoiceService) Void(ctx context.Context, invoiceID uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, invoiceID, enum.InvoiceStatusVoid)
}

func (s *InvoiceService) transition(ctx context.Context, invoiceID uuid.UUID, to enum.InvoiceStatus) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Status.CanTransitionTo(to) {
		return nil, apperror.NewConflictError(
			"Invoice is " + invoice.Status.String() + " and cannot become " + to.String())
	}

	moved, err := s.invoiceRepo.TransitionStatus(ctx, invoiceID, invoice.Status, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost the race: someone else transitioned it first.
		return nil, apperror.NewConflictError("Invoice status changed concurrently")
	}

	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// FindByAppointment returns the current unpaid invoice for an appointment, if any
func (s *InvoiceService) FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Invoice, error) {
	return s.invoiceRepo.GetUnpaidByAppointment(ctx, appointmentID)
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

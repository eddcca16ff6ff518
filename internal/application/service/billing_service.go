package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/billing"
	"github.com/wekesa/daktari-api/pkg/utils"
	"go.uber.org/zap"
)

// amountToleranceCents is how far a captured payment may deviate from the
// invoice amount and still count as full settlement.
const amountToleranceCents = 1

// BillingService implements the settlement flows: full settlement,
// partial settlement with due splitting, draft conversion and standalone
// payment capture. Every flow that touches more than one record runs in
// a single transaction.
type BillingService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	draftRepo   repository.DraftDueRepository
	patientRepo repository.PatientRepository
	tx          repository.TxManager
	logger      *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	draftRepo repository.DraftDueRepository,
	patientRepo repository.PatientRepository,
	tx repository.TxManager,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		draftRepo:   draftRepo,
		patientRepo: patientRepo,
		tx:          tx,
		logger:      logger,
	}
}

// CreatePaymentInput represents a standalone payment capture against an
// existing unpaid invoice
type CreatePaymentInput struct {
	InvoiceID       uuid.UUID
	Amount          float64
	Method          enum.PaymentMethod
	ProofReference  *string
	CreatedByUserID uuid.UUID
}

// SettlementResult is what every settlement flow returns: the invoice
// that got paid, its payment, and the due invoice carrying any remainder.
type SettlementResult struct {
	Invoice    *entity.Invoice `json:"invoice"`
	Payment    *entity.Payment `json:"payment"`
	DueInvoice *entity.Invoice `json:"due_invoice,omitempty"`
}

// CreatePayment captures a payment for an unpaid invoice. The amount must
// match the invoice amount within tolerance; partial amounts go through
// SettlePartial instead.
func (s *BillingService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*SettlementResult, error) {
	amountCents := int64(input.Amount * 100)
	if err := billing.ValidateAmount(amountCents); err != nil {
		return nil, err
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "method", Message: "unknown payment method"},
		})
	}
	if err := billing.ValidateProof(input.Method, input.ProofReference != nil && *input.ProofReference != ""); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusUnpaid {
		return nil, apperror.NewConflictError("Invoice is " + invoice.Status.String() + " and cannot be paid")
	}

	existing, err := s.paymentRepo.GetByInvoiceID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Invoice already has a payment")
	}

	diff := amountCents - invoice.Amount
	if diff < -amountToleranceCents || diff > amountToleranceCents {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: fmt.Sprintf("amount %.2f does not match invoice amount %.2f", input.Amount, invoice.GetAmountDecimal())},
		})
	}

	payment := &entity.Payment{
		ClinicID:        invoice.ClinicID,
		InvoiceID:       invoice.ID,
		PatientID:       invoice.PatientID,
		AppointmentID:   invoice.AppointmentID,
		Amount:          amountCents,
		Method:          input.Method,
		ReceiptNo:       utils.GenerateReceiptNo(),
		ProofReference:  input.ProofReference,
		CreatedByUserID: input.CreatedByUserID,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		moved, err := s.invoiceRepo.TransitionStatus(ctx, invoice.ID, enum.InvoiceStatusUnpaid, enum.InvoiceStatusPaid)
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewConflictError("Invoice status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment captured",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("method", payment.Method.String()))

	paid, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &SettlementResult{Invoice: paid, Payment: payment}, nil
}

// SettleInput represents a settlement request for an appointment visit.
// ServiceAmount is what the visit costs; AmountPaid is what the patient
// hands over now.
type SettleInput struct {
	ClinicID        uuid.UUID
	PatientID       uuid.UUID
	DoctorID        uuid.UUID
	AppointmentID   *uuid.UUID
	AppointmentType string
	ServiceAmount   float64
	AmountPaid      float64
	Method          enum.PaymentMethod
	ProofReference  *string
	CreatedByUserID uuid.UUID
	LineItems       *LineItemsInput
	CreateDue       bool
}

// SettleFull settles a visit in one go: the paid amount must cover the
// service amount within tolerance.
func (s *BillingService) SettleFull(ctx context.Context, input *SettleInput) (*SettlementResult, error) {
	serviceCents := int64(input.ServiceAmount * 100)
	paidCents := int64(input.AmountPaid * 100)

	diff := paidCents - serviceCents
	if diff < -amountToleranceCents || diff > amountToleranceCents {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount_paid", Message: fmt.Sprintf("amount paid %.2f does not cover service amount %.2f", input.AmountPaid, input.ServiceAmount)},
		})
	}

	// A full settlement is a partial settlement with no remainder.
	input.CreateDue = false
	return s.settle(ctx, input, serviceCents, serviceCents)
}

// SettlePartial settles a visit with a smaller payment than the service
// amount. The paid portion becomes a paid invoice; when CreateDue is set,
// the remainder becomes a fresh unpaid invoice.
func (s *BillingService) SettlePartial(ctx context.Context, input *SettleInput) (*SettlementResult, error) {
	serviceCents := int64(input.ServiceAmount * 100)
	paidCents := int64(input.AmountPaid * 100)

	if err := billing.ValidateAmount(paidCents); err != nil {
		return nil, err
	}
	if paidCents > serviceCents {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount_paid", Message: fmt.Sprintf("amount paid %.2f exceeds service amount %.2f", input.AmountPaid, input.ServiceAmount)},
		})
	}

	return s.settle(ctx, input, serviceCents, paidCents)
}

// settle does the shared settlement work: validate, then atomically void
// any open invoice on the appointment, write the settled invoice plus its
// payment, and raise a due invoice for whatever remains.
func (s *BillingService) settle(ctx context.Context, input *SettleInput, serviceCents, paidCents int64) (*SettlementResult, error) {
	if err := billing.ValidateAmount(paidCents); err != nil {
		return nil, err
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "method", Message: "unknown payment method"},
		})
	}
	if err := billing.ValidateProof(input.Method, input.ProofReference != nil && *input.ProofReference != ""); err != nil {
		return nil, err
	}

	// A supplied composition must describe the full visit, not the paid
	// portion, so its sum is checked against the service amount.
	var items []entity.InvoiceLineItem
	if input.LineItems != nil {
		items = BuildLineItems(input.LineItems)
		sum := SumLineItems(items)
		diff := sum - serviceCents
		if diff < -amountToleranceCents || diff > amountToleranceCents {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "line_items", Message: fmt.Sprintf("line items sum to %.2f but service amount is %.2f", float64(sum)/100, input.ServiceAmount)},
			})
		}
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	remainder := serviceCents - paidCents
	createDue := input.CreateDue && remainder > amountToleranceCents

	settled := &entity.Invoice{
		ClinicID:        input.ClinicID,
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		AppointmentID:   input.AppointmentID,
		AppointmentType: input.AppointmentType,
		Amount:          paidCents,
		Status:          enum.InvoiceStatusUnpaid,
	}
	payment := &entity.Payment{
		ClinicID:        input.ClinicID,
		PatientID:       input.PatientID,
		AppointmentID:   input.AppointmentID,
		Amount:          paidCents,
		Method:          input.Method,
		ReceiptNo:       utils.GenerateReceiptNo(),
		ProofReference:  input.ProofReference,
		CreatedByUserID: input.CreatedByUserID,
	}
	var due *entity.Invoice

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Replace any open invoice for this appointment rather than
		// leaving two records chasing the same visit.
		if input.AppointmentID != nil {
			open, err := s.invoiceRepo.GetUnpaidByAppointment(ctx, *input.AppointmentID)
			if err != nil {
				return err
			}
			if open != nil {
				moved, err := s.invoiceRepo.TransitionStatus(ctx, open.ID, enum.InvoiceStatusUnpaid, enum.InvoiceStatusVoid)
				if err != nil {
					return err
				}
				if !moved {
					return apperror.NewConflictError("Invoice status changed concurrently")
				}
			}
		}

		if err := s.invoiceRepo.Create(ctx, settled); err != nil {
			return err
		}
		// The composition sums to the service amount, so it only fits an
		// invoice carrying that amount in full. A partial settlement records
		// the paid portion as a single line and the remainder goes on the
		// due invoice, keeping each invoice equal to its line item sum.
		if items != nil && remainder <= amountToleranceCents {
			if err := s.invoiceRepo.ReplaceLineItems(ctx, settled.ID, items); err != nil {
				return err
			}
		} else {
			item := entity.InvoiceLineItem{
				Label:  input.AppointmentType,
				Kind:   enum.LineItemKindConsultation,
				Amount: paidCents,
			}
			if err := s.invoiceRepo.ReplaceLineItems(ctx, settled.ID, []entity.InvoiceLineItem{item}); err != nil {
				return err
			}
		}

		payment.InvoiceID = settled.ID
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		moved, err := s.invoiceRepo.TransitionStatus(ctx, settled.ID, enum.InvoiceStatusUnpaid, enum.InvoiceStatusPaid)
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewConflictError("Invoice status changed concurrently")
		}

		if createDue {
			due = &entity.Invoice{
				ClinicID:        input.ClinicID,
				PatientID:       input.PatientID,
				DoctorID:        input.DoctorID,
				AppointmentID:   input.AppointmentID,
				AppointmentType: input.AppointmentType,
				Amount:          remainder,
				Status:          enum.InvoiceStatusUnpaid,
			}
			if err := s.invoiceRepo.Create(ctx, due); err != nil {
				return err
			}
			item := entity.InvoiceLineItem{
				Label:  "Balance from " + input.AppointmentType,
				Kind:   enum.LineItemKindProcedure,
				Amount: remainder,
			}
			if err := s.invoiceRepo.ReplaceLineItems(ctx, due.ID, []entity.InvoiceLineItem{item}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("visit settled",
		zap.String("invoice_id", settled.ID.String()),
		zap.String("patient_id", input.PatientID.String()),
		zap.Int64("paid_cents", paidCents),
		zap.Int64("remainder_cents", remainder),
		zap.Bool("due_created", due != nil))

	result := &SettlementResult{Payment: payment}
	result.Invoice, err = s.invoiceRepo.GetByID(ctx, settled.ID)
	if err != nil {
		return nil, err
	}
	if due != nil {
		result.DueInvoice, err = s.invoiceRepo.GetByID(ctx, due.ID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ConvertDraftInput represents a draft conversion request. The draft's
// accumulated charges become a real unpaid invoice and the draft is
// removed.
type ConvertDraftInput struct {
	DraftID uuid.UUID
}

// ConvertDraft materializes a draft due into an unpaid invoice. Settlement
// of that invoice is a separate step.
func (s *BillingService) ConvertDraft(ctx context.Context, input *ConvertDraftInput) (*entity.Invoice, error) {
	draft, err := s.draftRepo.GetByID(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft due")
	}
	if draft.Status != enum.DraftStatusDraft {
		return nil, apperror.NewConflictError("Draft has already been converted")
	}
	if draft.Total <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "draft_id", Message: "draft has no charges to convert"},
		})
	}

	invoice := &entity.Invoice{
		ClinicID:        draft.ClinicID,
		PatientID:       draft.PatientID,
		DoctorID:        draft.DoctorID,
		AppointmentID:   draft.AppointmentID,
		AppointmentType: "Accumulated charges",
		Amount:          draft.Total,
		Status:          enum.InvoiceStatusUnpaid,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		items := make([]entity.InvoiceLineItem, 0, len(draft.LineItems))
		for _, li := range draft.LineItems {
			items = append(items, entity.InvoiceLineItem{
				Label:  li.Label,
				Kind:   li.Kind,
				Amount: li.Amount,
			})
		}
		if err := s.invoiceRepo.ReplaceLineItems(ctx, invoice.ID, items); err != nil {
			return err
		}

		// The conditional delete is the concurrency guard: if another
		// convert got here first the draft row is gone and this invoice
		// rolls back with the transaction.
		deleted, err := s.draftRepo.Delete(ctx, draft.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NewConflictError("Draft has already been converted")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("draft converted",
		zap.String("draft_id", draft.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("total_cents", draft.Total))

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

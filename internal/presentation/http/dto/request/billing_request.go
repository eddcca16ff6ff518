package request

import "github.com/google/uuid"

// ProcedureLineRequest is one procedure charge within a composition
type ProcedureLineRequest struct {
	Label  string  `json:"label" binding:"required,max=255"`
	Amount float64 `json:"amount" binding:"min=0"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	PatientID       uuid.UUID  `json:"patient_id" binding:"required"`
	DoctorID        uuid.UUID  `json:"doctor_id" binding:"required"`
	AppointmentID   *uuid.UUID `json:"appointment_id"`
	AppointmentType string     `json:"appointment_type" binding:"required,max=100"`
	Amount          float64    `json:"amount" binding:"min=0"`
}

// UpdateLineItemsRequest replaces an invoice's charge composition
type UpdateLineItemsRequest struct {
	ConsultationWaived bool                   `json:"consultation_waived"`
	ConsultationAmount float64                `json:"consultation_amount" binding:"min=0"`
	ProcedureLines     []ProcedureLineRequest `json:"procedure_lines" binding:"dive"`
	DiscountPercent    int                    `json:"discount_percent" binding:"min=0,max=100"`
}

// CreatePaymentRequest represents a payment capture against an invoice
type CreatePaymentRequest struct {
	InvoiceID      uuid.UUID `json:"invoice_id" binding:"required"`
	Amount         float64   `json:"amount" binding:"required,gt=0"`
	Method         string    `json:"method" binding:"required"`
	ProofReference *string   `json:"proof_reference"`
}

// SettleRequest represents a full or partial settlement of a visit
type SettleRequest struct {
	PatientID       uuid.UUID               `json:"patient_id" binding:"required"`
	DoctorID        uuid.UUID               `json:"doctor_id" binding:"required"`
	AppointmentID   *uuid.UUID              `json:"appointment_id"`
	AppointmentType string                  `json:"appointment_type" binding:"required,max=100"`
	ServiceAmount   float64                 `json:"service_amount" binding:"required,gt=0"`
	AmountPaid      float64                 `json:"amount_paid" binding:"required,gt=0"`
	Method          string                  `json:"method" binding:"required"`
	ProofReference  *string                 `json:"proof_reference"`
	CreateDue       bool                    `json:"create_due"`
	LineItems       *UpdateLineItemsRequest `json:"line_items"`
}

// DraftDueRequest identifies the context a draft belongs to
type DraftDueRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	DoctorID      uuid.UUID  `json:"doctor_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
}

// InvoiceFilterRequest represents invoice list filter parameters
type InvoiceFilterRequest struct {
	PatientID string `form:"patient_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// BalanceFilterRequest represents the patient balance listing filters
type BalanceFilterRequest struct {
	Search          string `form:"search"`
	OnlyWithBalance bool   `form:"only_with_balance"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment represents money collected against exactly one invoice. The
// unique index on invoice_id enforces at most one payment per invoice.
type Payment struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"clinic_id"`
	InvoiceID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"invoice_id"`
	PatientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID   *uuid.UUID         `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Amount          int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method          enum.PaymentMethod `gorm:"default:0" json:"method"`
	ReceiptNo       string             `gorm:"size:20;index" json:"receipt_no"`
	ProofReference  *string            `gorm:"size:512" json:"proof_reference,omitempty"`
	CreatedByUserID uuid.UUID          `gorm:"type:uuid;not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Clinic    Clinic  `gorm:"foreignKey:ClinicID" json:"-"`
	Invoice   Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Patient   Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	CreatedBy User    `gorm:"foreignKey:CreatedByUserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// GetAmountDecimal returns the payment amount as a decimal
func (p *Payment) GetAmountDecimal() float64 {
	return float64(p.Amount) / 100
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a billable record for one appointment/charge. Its
// amount is derived from the line items and it is mutated only through
// defined status transitions, never in place.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID   *uuid.UUID         `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	AppointmentType string             `gorm:"size:100" json:"appointment_type"`
	Amount          int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Status          enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Clinic    Clinic            `gorm:"foreignKey:ClinicID" json:"-"`
	Patient   Patient           `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	LineItems []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"line_items,omitempty"`
	Payment   *Payment          `gorm:"foreignKey:InvoiceID" json:"payment,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(i),
		Amount: float64(i.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// GetAmountDecimal returns the invoice amount as a decimal
func (i *Invoice) GetAmountDecimal() float64 {
	return float64(i.Amount) / 100
}

// InvoiceLineItem represents one charge or discount component of an invoice.
// Discount lines carry positive amounts and are subtracted; a consultation
// line with amount 0 denotes a waived consultation.
type InvoiceLineItem struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Label     string            `gorm:"size:255;not null" json:"label"`
	Kind      enum.LineItemKind `gorm:"default:0" json:"kind"`
	Amount    int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Position  int               `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time         `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li InvoiceLineItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceLineItem
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(li),
		Amount: float64(li.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new line item
func (li *InvoiceLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLineItem model
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

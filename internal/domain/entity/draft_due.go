package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DraftDue accumulates charges for a patient before any real invoice is
// issued. It is deleted, not transitioned, once its charges have been
// materialized into an invoice.
type DraftDue struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null" json:"doctor_id"`
	AppointmentID *uuid.UUID      `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Total         int64           `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Status        enum.DraftStatus `gorm:"default:0" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Clinic    Clinic             `gorm:"foreignKey:ClinicID" json:"-"`
	Patient   Patient            `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	LineItems []DraftDueLineItem `gorm:"foreignKey:DraftDueID" json:"line_items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d DraftDue) MarshalJSON() ([]byte, error) {
	type Alias DraftDue
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(d),
		Total: float64(d.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new draft
func (d *DraftDue) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DraftDue model
func (DraftDue) TableName() string {
	return "draft_dues"
}

// DraftDueLineItem mirrors InvoiceLineItem for not-yet-invoiced charges
type DraftDueLineItem struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	DraftDueID uuid.UUID         `gorm:"type:uuid;not null;index" json:"draft_due_id"`
	Label      string            `gorm:"size:255;not null" json:"label"`
	Kind       enum.LineItemKind `gorm:"default:0" json:"kind"`
	Amount     int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Position   int               `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time         `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li DraftDueLineItem) MarshalJSON() ([]byte, error) {
	type Alias DraftDueLineItem
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(li),
		Amount: float64(li.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new draft line item
func (li *DraftDueLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DraftDueLineItem model
func (DraftDueLineItem) TableName() string {
	return "draft_due_line_items"
}

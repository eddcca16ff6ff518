package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense represents a clinic outgoing. Expenses are summed into the
// monthly summary but never reconciled against payments.
type Expense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Label       string         `gorm:"size:255;not null" json:"label"`
	Category    *string        `gorm:"size:100" json:"category,omitempty"`
	Amount      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IncurredAt  time.Time      `gorm:"type:date;not null;index" json:"incurred_at"`
	RecordedBy  uuid.UUID      `gorm:"type:uuid;not null" json:"recorded_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

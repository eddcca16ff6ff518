package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Procedure represents a billable service in the clinic catalog
type Procedure struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Category     *string        `gorm:"size:100" json:"category,omitempty"`
	DefaultPrice int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Active       bool           `gorm:"default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Procedure) MarshalJSON() ([]byte, error) {
	type Alias Procedure
	return json.Marshal(&struct {
		Alias
		DefaultPrice float64 `json:"default_price"`
	}{
		Alias:        Alias(p),
		DefaultPrice: float64(p.DefaultPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new procedure
func (p *Procedure) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Procedure model
func (Procedure) TableName() string {
	return "procedures"
}

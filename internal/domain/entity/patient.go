package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a patient in the clinic directory
type Patient struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Phone       *string        `gorm:"size:50;index" json:"phone,omitempty"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	DateOfBirth *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      *string        `gorm:"size:20" json:"gender,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Invoices     []Invoice     `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}

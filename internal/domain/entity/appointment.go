package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Appointment represents a scheduled visit for a patient
type Appointment struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID              `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID              `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Type        string                 `gorm:"size:100;not null" json:"type"` // consultation, follow_up, procedure
	ScheduledAt time.Time              `gorm:"not null;index" json:"scheduled_at"`
	Status      enum.AppointmentStatus `gorm:"default:0" json:"status"`
	Notes       *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Clinic  Clinic  `gorm:"foreignKey:ClinicID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

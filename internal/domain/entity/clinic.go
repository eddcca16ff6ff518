package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clinic represents a clinic/practice in the multitenant system
type Clinic struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User               `gorm:"foreignKey:OwnerID" json:"-"`
	Members []ClinicMembership `gorm:"foreignKey:ClinicID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new clinic
func (c *Clinic) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Clinic model
func (Clinic) TableName() string {
	return "clinics"
}

// ClinicMembership represents a staff member's membership in a clinic
type ClinicMembership struct {
	ClinicID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"clinic_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'staff'" json:"role"` // owner, doctor, receptionist, staff
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the ClinicMembership model
func (ClinicMembership) TableName() string {
	return "clinic_memberships"
}

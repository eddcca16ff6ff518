package request

import (
	"time"

	"github.com/google/uuid"
)

// CreatePatientRequest represents a patient registration request
type CreatePatientRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=255"`
	Phone       *string    `json:"phone" binding:"omitempty,max=50"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Address     *string    `json:"address"`
	Notes       *string    `json:"notes"`
}

// UpdatePatientRequest represents a patient update request
type UpdatePatientRequest struct {
	Name        string     `json:"name" binding:"omitempty,min=2,max=255"`
	Phone       *string    `json:"phone" binding:"omitempty,max=50"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Address     *string    `json:"address"`
	Notes       *string    `json:"notes"`
}

// CreateAppointmentRequest represents an appointment creation request
type CreateAppointmentRequest struct {
	PatientID   uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID    uuid.UUID `json:"doctor_id" binding:"required"`
	Type        string    `json:"type" binding:"required,max=100"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       *string   `json:"notes"`
}

// UpdateAppointmentStatusRequest moves an appointment through its lifecycle
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled"`
}

// RescheduleAppointmentRequest changes an appointment's time
type RescheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// AppointmentFilterRequest represents appointment list filters
type AppointmentFilterRequest struct {
	PatientID string `form:"patient_id"`
	DoctorID  string `form:"doctor_id"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// CreateProcedureRequest represents a catalog entry creation request
type CreateProcedureRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=255"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	DefaultPrice float64 `json:"default_price" binding:"min=0"`
}

// UpdateProcedureRequest represents a catalog entry update request
type UpdateProcedureRequest struct {
	Name         string  `json:"name" binding:"omitempty,min=2,max=255"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	DefaultPrice float64 `json:"default_price" binding:"min=0"`
	Active       *bool   `json:"active"`
}

// CreateExpenseRequest represents an expense creation request
type CreateExpenseRequest struct {
	Label      string    `json:"label" binding:"required,min=2,max=255"`
	Category   *string   `json:"category" binding:"omitempty,max=100"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
	IncurredAt time.Time `json:"incurred_at"`
}

// UpdateExpenseRequest represents an expense update request
type UpdateExpenseRequest struct {
	Label      string    `json:"label" binding:"omitempty,min=2,max=255"`
	Category   *string   `json:"category" binding:"omitempty,max=100"`
	Amount     float64   `json:"amount" binding:"omitempty,gt=0"`
	IncurredAt time.Time `json:"incurred_at"`
}

// CreateClinicRequest represents a clinic registration request
type CreateClinicRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// AddMemberRequest adds a staff account to a clinic
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=owner doctor receptionist staff"`
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
)

// DraftDueRepository defines the interface for draft due data operations
type DraftDueRepository interface {
	Create(ctx context.Context, draft *entity.DraftDue) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DraftDue, error)
	// GetActive returns the open draft for a patient/appointment pair, if any.
	GetActive(ctx context.Context, patientID uuid.UUID, appointmentID *uuid.UUID) (*entity.DraftDue, error)
	Update(ctx context.Context, draft *entity.DraftDue) error
	ReplaceLineItems(ctx context.Context, draftID uuid.UUID, items []entity.DraftDueLineItem) error
	// Delete removes the draft only while it is still in draft status;
	// false means the row was missing or already converted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]entity.DraftDue, error)
}

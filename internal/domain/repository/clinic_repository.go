package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
)

// ClinicRepository defines the interface for clinic (tenant) operations
type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Clinic, error)
	Update(ctx context.Context, clinic *entity.Clinic) error
	IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, membership *entity.ClinicMembership) error
	ListMembers(ctx context.Context, clinicID uuid.UUID) ([]entity.ClinicMembership, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Clinic, error)
}

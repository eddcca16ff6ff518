package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/utils"
)

// ClinicService handles clinic (tenant) management
type ClinicService struct {
	clinicRepo repository.ClinicRepository
	userRepo   repository.UserRepository
	tx         repository.TxManager
}

// NewClinicService creates a new clinic service
func NewClinicService(
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	tx repository.TxManager,
) *ClinicService {
	return &ClinicService{
		clinicRepo: clinicRepo,
		userRepo:   userRepo,
		tx:         tx,
	}
}

// CreateClinicInput represents the create clinic input
type CreateClinicInput struct {
	Name    string
	OwnerID uuid.UUID
}

// CreateClinic registers a clinic and makes the creator its owner member
func (s *ClinicService) CreateClinic(ctx context.Context, input *CreateClinicInput) (*entity.Clinic, error) {
	slug := utils.Slugify(input.Name)
	existing, err := s.clinicRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A clinic with this name already exists")
	}

	clinic := &entity.Clinic{
		Name:    input.Name,
		Slug:    slug,
		OwnerID: input.OwnerID,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.clinicRepo.Create(ctx, clinic); err != nil {
			return err
		}
		return s.clinicRepo.AddMember(ctx, &entity.ClinicMembership{
			ClinicID: clinic.ID,
			UserID:   input.OwnerID,
			Role:     "owner",
		})
	})
	if err != nil {
		return nil, err
	}

	return clinic, nil
}

// GetClinic retrieves a clinic by ID
func (s *ClinicService) GetClinic(ctx context.Context, id uuid.UUID) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.NewNotFoundError("Clinic")
	}
	return clinic, nil
}

// GetClinicBySlug retrieves a clinic by slug
func (s *ClinicService) GetClinicBySlug(ctx context.Context, slug string) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, apperror.NewNotFoundError("Clinic")
	}
	return clinic, nil
}

// ListClinicsForUser lists the clinics a user belongs to
func (s *ClinicService) ListClinicsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Clinic, error) {
	return s.clinicRepo.ListForUser(ctx, userID)
}

// AddMemberInput represents the add member input
type AddMemberInput struct {
	ClinicID uuid.UUID
	Email    string
	Role     string
}

// AddMember adds an existing staff account to a clinic
func (s *ClinicService) AddMember(ctx context.Context, input *AddMemberInput) (*entity.ClinicMembership, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	isMember, err := s.clinicRepo.IsMember(ctx, input.ClinicID, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperror.NewConflictError("User is already a member of this clinic")
	}

	role := input.Role
	if role == "" {
		role = "staff"
	}

	membership := &entity.ClinicMembership{
		ClinicID: input.ClinicID,
		UserID:   user.ID,
		Role:     role,
	}
	if err := s.clinicRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// ListMembers lists a clinic's memberships
func (s *ClinicService) ListMembers(ctx context.Context, clinicID uuid.UUID) ([]entity.ClinicMembership, error) {
	return s.clinicRepo.ListMembers(ctx, clinicID)
}

// IsMember reports whether the user belongs to the clinic
func (s *ClinicService) IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error) {
	return s.clinicRepo.IsMember(ctx, clinicID, userID)
}

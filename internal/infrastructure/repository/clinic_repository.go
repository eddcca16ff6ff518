package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"gorm.io/gorm"
)

type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository
func NewClinicRepository(db *gorm.DB) domainRepo.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *entity.Clinic) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(clinic).Error
}

func (r *clinicRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&clinic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) GetBySlug(ctx context.Context, slug string) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&clinic, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) Update(ctx context.Context, clinic *entity.Clinic) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(clinic).Error
}

func (r *clinicRepository) IsMember(ctx context.Context, clinicID, userID uuid.UUID) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.ClinicMembership{}).
		Where("clinic_id = ? AND user_id = ?", clinicID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *clinicRepository) AddMember(ctx context.Context, membership *entity.ClinicMembership) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(membership).Error
}

func (r *clinicRepository) ListMembers(ctx context.Context, clinicID uuid.UUID) ([]entity.ClinicMembership, error) {
	var members []entity.ClinicMembership
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Preload("User").
		Find(&members).Error
	return members, err
}

func (r *clinicRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Joins("JOIN clinic_memberships ON clinic_memberships.clinic_id = clinics.id").
		Where("clinic_memberships.user_id = ?", userID).
		Find(&clinics).Error
	return clinics, err
}

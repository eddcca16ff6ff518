package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type draftDueRepository struct {
	db *gorm.DB
}

// NewDraftDueRepository creates a new draft due repository
func NewDraftDueRepository(db *gorm.DB) domainRepo.DraftDueRepository {
	return &draftDueRepository{db: db}
}

func (r *draftDueRepository) Create(ctx context.Context, draft *entity.DraftDue) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(draft).Error
}

func (r *draftDueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DraftDue, error) {
	var draft entity.DraftDue
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

func (r *draftDueRepository) GetActive(ctx context.Context, patientID uuid.UUID, appointmentID *uuid.UUID) (*entity.DraftDue, error) {
	var draft entity.DraftDue
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Where("patient_id = ? AND status = ?", patientID, enum.DraftStatusDraft)
	if appointmentID != nil {
		query = query.Where("appointment_id = ?", *appointmentID)
	} else {
		query = query.Where("appointment_id IS NULL")
	}
	err := query.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

func (r *draftDueRepository) Update(ctx context.Context, draft *entity.DraftDue) error {
	// Omit associations so a Save on a preloaded draft does not upsert
	// stale line items back over whatever ReplaceLineItems wrote.
	return dbFromContext(ctx, r.db).WithContext(ctx).Omit(clause.Associations).Save(draft).Error
}

func (r *draftDueRepository) ReplaceLineItems(ctx context.Context, draftID uuid.UUID, items []entity.DraftDueLineItem) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)
	if err := db.Where("draft_due_id = ?", draftID).Delete(&entity.DraftDueLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].DraftDueID = draftID
		items[i].Position = i
	}
	return db.Create(&items).Error
}

// Delete removes a draft and its line items, but only while the draft is
// still in draft status. Returns false when the row was missing or already
// converted, so concurrent converts cannot each mint an invoice.
func (r *draftDueRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db := dbFromContext(ctx, r.db).WithContext(ctx)
	result := db.Where("id = ? AND status = ?", id, enum.DraftStatusDraft).Delete(&entity.DraftDue{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := db.Where("draft_due_id = ?", id).Delete(&entity.DraftDueLineItem{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *draftDueRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]entity.DraftDue, error) {
	var drafts []entity.DraftDue
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("clinic_id = ? AND status = ?", clinicID, enum.DraftStatusDraft).
		Preload("Patient").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&drafts).Error
	return drafts, err
}

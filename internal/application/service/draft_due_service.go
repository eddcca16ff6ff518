package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"github.com/wekesa/daktari-api/pkg/billing"
)

// DraftDueService accumulates not-yet-invoiced charges per patient. A
// patient has at most one open draft per appointment context; charges are
// replaced wholesale on each update so the draft always mirrors the last
// composition the operator saw.
type DraftDueService struct {
	draftRepo   repository.DraftDueRepository
	patientRepo repository.PatientRepository
	tx          repository.TxManager
}

// NewDraftDueService creates a new draft due service
func NewDraftDueService(
	draftRepo repository.DraftDueRepository,
	patientRepo repository.PatientRepository,
	tx repository.TxManager,
) *DraftDueService {
	return &DraftDueService{
		draftRepo:   draftRepo,
		patientRepo: patientRepo,
		tx:          tx,
	}
}

// GetOrCreateInput identifies the patient/appointment context a draft
// belongs to
type GetOrCreateInput struct {
	ClinicID      uuid.UUID
	PatientID     uuid.UUID
	DoctorID      uuid.UUID
	AppointmentID *uuid.UUID
}

// GetOrCreate returns the patient's open draft for the appointment
// context, creating an empty one when none exists.
func (s *DraftDueService) GetOrCreate(ctx context.Context, input *GetOrCreateInput) (*entity.DraftDue, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	draft, err := s.draftRepo.GetActive(ctx, input.PatientID, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}

	draft = &entity.DraftDue{
		ClinicID:      input.ClinicID,
		PatientID:     input.PatientID,
		DoctorID:      input.DoctorID,
		AppointmentID: input.AppointmentID,
		Status:        enum.DraftStatusDraft,
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return s.draftRepo.GetByID(ctx, draft.ID)
}

// UpdateCharges replaces a draft's line items with a fresh charge
// composition and recomputes the total. Prior items do not survive.
func (s *DraftDueService) UpdateCharges(ctx context.Context, draftID uuid.UUID, input *LineItemsInput) (*entity.DraftDue, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft due")
	}
	if draft.Status != enum.DraftStatusDraft {
		return nil, apperror.NewConflictError("Draft has already been converted")
	}

	invoiceItems := BuildLineItems(input)
	items := make([]entity.DraftDueLineItem, 0, len(invoiceItems))
	for _, li := range invoiceItems {
		items = append(items, entity.DraftDueLineItem{
			DraftDueID: draft.ID,
			Label:      li.Label,
			Kind:       li.Kind,
			Amount:     li.Amount,
		})
	}

	procedures := make([]billing.ProcedureLine, 0, len(input.ProcedureLines))
	for _, p := range input.ProcedureLines {
		procedures = append(procedures, billing.ProcedureLine{Label: p.Label, Amount: int64(p.Amount * 100)})
	}
	draft.Total = billing.ComputeTotal(int64(input.ConsultationAmount*100), input.ConsultationWaived, procedures, input.DiscountPercent)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.draftRepo.ReplaceLineItems(ctx, draft.ID, items); err != nil {
			return err
		}
		return s.draftRepo.Update(ctx, draft)
	})
	if err != nil {
		return nil, err
	}

	return s.draftRepo.GetByID(ctx, draft.ID)
}

// GetDraft retrieves a draft by ID
func (s *DraftDueService) GetDraft(ctx context.Context, id uuid.UUID) (*entity.DraftDue, error) {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft due")
	}
	return draft, nil
}

// ListDrafts lists the clinic's open drafts
func (s *DraftDueService) ListDrafts(ctx context.Context, clinicID uuid.UUID) ([]entity.DraftDue, error) {
	return s.draftRepo.ListByClinic(ctx, clinicID)
}

// Clear deletes an open draft without converting it
func (s *DraftDueService) Clear(ctx context.Context, id uuid.UUID) error {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if draft == nil {
		return apperror.NewNotFoundError("Draft due")
	}
	if draft.Status != enum.DraftStatusDraft {
		return apperror.NewConflictError("Draft has already been converted")
	}
	deleted, err := s.draftRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewConflictError("Draft has already been converted")
	}
	return nil
}

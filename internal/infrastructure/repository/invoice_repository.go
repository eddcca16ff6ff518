package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payment").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetUnpaidByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Scopes(ClinicScope(ctx)).
		Where("appointment_id = ? AND status = ?", appointmentID, enum.InvoiceStatusUnpaid).
		Order("created_at DESC").
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	// Omit associations so a Save on a preloaded invoice does not upsert
	// stale line items back over whatever ReplaceLineItems wrote.
	return dbFromContext(ctx, r.db).WithContext(ctx).Omit(clause.Associations).Save(invoice).Error
}

// TransitionStatus moves an invoice between statuses with a conditional
// update. Zero rows affected means the invoice was missing or not in the
// expected source status; the caller decides which.
func (r *invoiceRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.InvoiceStatus) (bool, error) {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *invoiceRepository) ReplaceLineItems(ctx context.Context, invoiceID uuid.UUID, items []entity.InvoiceLineItem) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&entity.InvoiceLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
		items[i].Position = i
	}
	return db.Create(&items).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Invoice{}).Scopes(ClinicScope(ctx))

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListUnpaidByClinic(ctx context.Context, clinicID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("clinic_id = ? AND status = ?", clinicID, enum.InvoiceStatusUnpaid).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListByStatusInRange(ctx context.Context, clinicID uuid.UUID, status enum.InvoiceStatus, from, to time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("clinic_id = ? AND status = ? AND created_at >= ? AND created_at < ?", clinicID, status, from, to).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

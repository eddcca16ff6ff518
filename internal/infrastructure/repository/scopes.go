package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// ClinicIDKey is the context key for clinic ID
	ClinicIDKey ctxKey = "clinic_id"
	// SkipClinicScopeKey is the context key for skipping clinic scope (super admin)
	SkipClinicScopeKey ctxKey = "skip_clinic_scope"
	// txKey is the context key carrying an open transaction
	txKey ctxKey = "gorm_tx"
)

// ClinicScope returns a GORM scope that filters by clinic.
// If SkipClinicScopeKey is true in context (super admin), returns all records.
// A missing clinic context yields no rows rather than cross-clinic data.
func ClinicScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipClinicScopeKey).(bool); ok && skipScope {
			return db
		}

		clinicID, ok := ctx.Value(ClinicIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("clinic_id = ?", clinicID)
	}
}

// WithSkipClinicScope adds skip clinic scope flag to context (for super admins)
func WithSkipClinicScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipClinicScopeKey, skip)
}

// WithClinic adds clinic ID to context
func WithClinic(ctx context.Context, clinicID uuid.UUID) context.Context {
	return context.WithValue(ctx, ClinicIDKey, clinicID)
}

// GetClinicID extracts clinic ID from context
func GetClinicID(ctx context.Context) (uuid.UUID, bool) {
	clinicID, ok := ctx.Value(ClinicIDKey).(uuid.UUID)
	return clinicID, ok
}

// withTx stores an open transaction in the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// dbFromContext returns the transaction bound to ctx, if any, so repository
// calls made inside TxManager.WithinTransaction share one transaction.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

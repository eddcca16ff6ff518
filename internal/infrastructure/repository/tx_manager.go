package repository

import (
	"context"

	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by GORM transactions
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTransaction opens a transaction, stores it in the context and runs
// fn. Any error from fn rolls the whole unit back.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls reuse the outer transaction.
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

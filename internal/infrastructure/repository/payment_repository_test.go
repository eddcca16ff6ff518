package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
)

func TestPaymentLookupIsClinicScoped(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))

	clinicID := uuid.New()
	invoiceID := uuid.New()
	payment := &entity.Payment{
		ClinicID:        clinicID,
		InvoiceID:       invoiceID,
		PatientID:       uuid.New(),
		Amount:          30000,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: uuid.New(),
	}
	ownCtx := WithClinic(context.Background(), clinicID)
	require.NoError(t, repo.Create(ownCtx, payment))

	found, err := repo.GetByInvoiceID(ownCtx, invoiceID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, payment.ID, found.ID)

	// Another clinic's context cannot see the payment, by ID or by invoice.
	otherCtx := WithClinic(context.Background(), uuid.New())
	foreign, err := repo.GetByInvoiceID(otherCtx, invoiceID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	foreign, err = repo.GetByID(otherCtx, payment.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

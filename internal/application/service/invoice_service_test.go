package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/pkg/apperror"
)

func newInvoiceService(env *testEnv) *InvoiceService {
	return NewInvoiceService(env.invoiceRepo, env.paymentRepo, env.tx)
}

func TestCreateInvoice(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)

	invoice, err := svc.CreateInvoice(env.ctx(), &CreateInvoiceInput{
		ClinicID:        env.clinic.ID,
		DoctorID:        env.doctor.ID,
		PatientID:       env.patient.ID,
		AppointmentType: "Consultation",
		Amount:          500,
		LineItems: []entity.InvoiceLineItem{
			{Label: "Consultation", Kind: enum.LineItemKindConsultation, Amount: 50000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, int64(50000), invoice.Amount)
	require.Len(t, invoice.LineItems, 1)
	assert.Equal(t, invoice.ID, invoice.LineItems[0].InvoiceID)
}

func TestMarkPaidAndVoidTransitions(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)
	ctx := env.ctx()

	t.Run("unpaid becomes paid once", func(t *testing.T) {
		inv := env.seedInvoice(t, env.patient.ID, 10000, nil)

		paid, err := svc.MarkPaid(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.InvoiceStatusPaid, paid.Status)

		_, err = svc.MarkPaid(ctx, inv.ID)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("unpaid becomes void", func(t *testing.T) {
		inv := env.seedInvoice(t, env.patient.ID, 10000, nil)

		voided, err := svc.Void(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.InvoiceStatusVoid, voided.Status)
	})

	t.Run("paid cannot be voided", func(t *testing.T) {
		inv := env.seedInvoice(t, env.patient.ID, 10000, nil)
		_, err := svc.MarkPaid(ctx, inv.ID)
		require.NoError(t, err)

		_, err = svc.Void(ctx, inv.ID)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("void cannot be paid", func(t *testing.T) {
		inv := env.seedInvoice(t, env.patient.ID, 10000, nil)
		_, err := svc.Void(ctx, inv.ID)
		require.NoError(t, err)

		_, err = svc.MarkPaid(ctx, inv.ID)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("missing invoice", func(t *testing.T) {
		_, err := svc.MarkPaid(ctx, uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestUpdateLineItems(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)
	ctx := env.ctx()

	inv := env.seedInvoice(t, env.patient.ID, 50000, nil)

	updated, err := svc.UpdateLineItems(ctx, inv.ID, &LineItemsInput{
		ConsultationAmount: 500,
		ProcedureLines: []ProcedureLineInput{
			{Label: "Scaling", Amount: 300},
		},
		DiscountPercent: 10,
	})
	require.NoError(t, err)

	// 500 + 300 - 10% = 720
	assert.Equal(t, int64(72000), updated.Amount)
	require.Len(t, updated.LineItems, 3)
	assert.Equal(t, "Consultation", updated.LineItems[0].Label)
	assert.Equal(t, "Scaling", updated.LineItems[1].Label)
	assert.Equal(t, "Discount", updated.LineItems[2].Label)
	assert.Equal(t, enum.LineItemKindDiscount, updated.LineItems[2].Kind)
	assert.Equal(t, int64(8000), updated.LineItems[2].Amount)
}

func TestUpdateLineItemsDiscardsPriorItems(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)
	ctx := env.ctx()

	inv := env.seedInvoice(t, env.patient.ID, 50000, nil)

	_, err := svc.UpdateLineItems(ctx, inv.ID, &LineItemsInput{
		ConsultationAmount: 500,
		ProcedureLines: []ProcedureLineInput{
			{Label: "Scaling", Amount: 300},
			{Label: "X-ray", Amount: 200},
		},
	})
	require.NoError(t, err)

	// The second update replaces the composition wholesale; nothing from
	// the first one may survive alongside it.
	updated, err := svc.UpdateLineItems(ctx, inv.ID, &LineItemsInput{
		ConsultationWaived: true,
		ProcedureLines: []ProcedureLineInput{
			{Label: "Filling", Amount: 200},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), updated.Amount)
	require.Len(t, updated.LineItems, 2)
	assert.Equal(t, "Consultation", updated.LineItems[0].Label)
	assert.Equal(t, int64(0), updated.LineItems[0].Amount)
	assert.Equal(t, "Filling", updated.LineItems[1].Label)
	assert.Equal(t, updated.Amount, SumLineItems(updated.LineItems))
}

func TestUpdateLineItemsWaivedConsultation(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)

	inv := env.seedInvoice(t, env.patient.ID, 50000, nil)

	updated, err := svc.UpdateLineItems(env.ctx(), inv.ID, &LineItemsInput{
		ConsultationWaived: true,
		ConsultationAmount: 500,
		ProcedureLines: []ProcedureLineInput{
			{Label: "X-ray", Amount: 200},
		},
	})
	require.NoError(t, err)

	// The waived consultation stays visible as a zero line.
	assert.Equal(t, int64(20000), updated.Amount)
	require.Len(t, updated.LineItems, 2)
	assert.Equal(t, "Consultation", updated.LineItems[0].Label)
	assert.Equal(t, int64(0), updated.LineItems[0].Amount)
}

func TestUpdateLineItemsRejectsSettledInvoice(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)
	ctx := env.ctx()

	inv := env.seedInvoice(t, env.patient.ID, 50000, nil)
	_, err := svc.MarkPaid(ctx, inv.ID)
	require.NoError(t, err)

	_, err = svc.UpdateLineItems(ctx, inv.ID, &LineItemsInput{ConsultationAmount: 100})
	assert.True(t, apperror.IsConflict(err))

	_, err = svc.UpdateLineItems(ctx, uuid.New(), &LineItemsInput{ConsultationAmount: 100})
	assert.True(t, apperror.IsNotFound(err))
}

func TestSumLineItemsClampsAtZero(t *testing.T) {
	items := []entity.InvoiceLineItem{
		{Kind: enum.LineItemKindConsultation, Amount: 10000},
		{Kind: enum.LineItemKindDiscount, Amount: 15000},
	}
	assert.Equal(t, int64(0), SumLineItems(items))
}

func TestFindByAppointment(t *testing.T) {
	env := newTestEnv(t)
	svc := newInvoiceService(env)
	ctx := env.ctx()

	appointmentID := uuid.New()
	inv := env.seedInvoice(t, env.patient.ID, 30000, uuidPtr(appointmentID))

	found, err := svc.FindByAppointment(ctx, appointmentID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, inv.ID, found.ID)

	// Once voided there is no open invoice for the appointment.
	_, err = svc.Void(ctx, inv.ID)
	require.NoError(t, err)

	found, err = svc.FindByAppointment(ctx, appointmentID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/pkg/apperror"
	"go.uber.org/zap"
)

func newBillingService(env *testEnv) *BillingService {
	return NewBillingService(env.invoiceRepo, env.paymentRepo, env.draftRepo, env.patientRepo, env.tx, zap.NewNop())
}

func TestSettlePartialSplitsDue(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)
	ctx := env.ctx()

	appointmentID := uuid.New()
	open := env.seedInvoice(t, env.patient.ID, 50000, uuidPtr(appointmentID))

	result, err := svc.SettlePartial(ctx, &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentID:   uuidPtr(appointmentID),
		AppointmentType: "Consultation",
		ServiceAmount:   500,
		AmountPaid:      300,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
		CreateDue:       true,
	})
	require.NoError(t, err)

	// The open invoice on the appointment was voided, not mutated.
	voided, err := env.invoiceRepo.GetByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusVoid, voided.Status)

	// Paid portion became a settled invoice with one payment.
	assert.Equal(t, int64(30000), result.Invoice.Amount)
	assert.Equal(t, enum.InvoiceStatusPaid, result.Invoice.Status)
	assert.Equal(t, int64(30000), result.Payment.Amount)
	assert.Equal(t, enum.PaymentMethodCash, result.Payment.Method)
	assert.Equal(t, result.Invoice.ID, result.Payment.InvoiceID)

	// The remainder became a fresh unpaid invoice.
	require.NotNil(t, result.DueInvoice)
	assert.Equal(t, int64(20000), result.DueInvoice.Amount)
	assert.Equal(t, enum.InvoiceStatusUnpaid, result.DueInvoice.Status)
	require.Len(t, result.DueInvoice.LineItems, 1)
	assert.Equal(t, "Balance from Consultation", result.DueInvoice.LineItems[0].Label)
	assert.Equal(t, int64(20000), result.DueInvoice.LineItems[0].Amount)
}

func TestSettlePartialWithoutDue(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	result, err := svc.SettlePartial(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		ServiceAmount:   500,
		AmountPaid:      300,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
		CreateDue:       false,
	})
	require.NoError(t, err)

	assert.Nil(t, result.DueInvoice)

	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettlePartialRejectsBadAmounts(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	input := &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		ServiceAmount:   500,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	}

	input.AmountPaid = 0
	_, err := svc.SettlePartial(env.ctx(), input)
	assert.True(t, apperror.IsValidation(err))

	input.AmountPaid = 600
	_, err = svc.SettlePartial(env.ctx(), input)
	assert.True(t, apperror.IsValidation(err))
}

func TestSettlePartialWithCompositionKeepsAmountsConsistent(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	result, err := svc.SettlePartial(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		ServiceAmount:   500,
		AmountPaid:      300,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
		LineItems: &LineItemsInput{
			ConsultationAmount: 200,
			ProcedureLines: []ProcedureLineInput{
				{Label: "Filling", Amount: 300},
			},
		},
		CreateDue: true,
	})
	require.NoError(t, err)

	// Both invoices satisfy amount == sum of their line items: the full
	// composition does not land on the partially paid invoice.
	assert.Equal(t, int64(30000), result.Invoice.Amount)
	assert.Equal(t, result.Invoice.Amount, SumLineItems(result.Invoice.LineItems))
	require.Len(t, result.Invoice.LineItems, 1)
	assert.Equal(t, int64(30000), result.Invoice.LineItems[0].Amount)

	require.NotNil(t, result.DueInvoice)
	assert.Equal(t, int64(20000), result.DueInvoice.Amount)
	assert.Equal(t, result.DueInvoice.Amount, SumLineItems(result.DueInvoice.LineItems))
}

func TestSettleFullAttachesComposition(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	result, err := svc.SettleFull(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		ServiceAmount:   500,
		AmountPaid:      500,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
		LineItems: &LineItemsInput{
			ConsultationAmount: 200,
			ProcedureLines: []ProcedureLineInput{
				{Label: "Filling", Amount: 300},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50000), result.Invoice.Amount)
	require.Len(t, result.Invoice.LineItems, 2)
	assert.Equal(t, "Consultation", result.Invoice.LineItems[0].Label)
	assert.Equal(t, "Filling", result.Invoice.LineItems[1].Label)
	assert.Equal(t, result.Invoice.Amount, SumLineItems(result.Invoice.LineItems))
}

func TestSettleRejectsMismatchedComposition(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	_, err := svc.SettlePartial(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		ServiceAmount:   500,
		AmountPaid:      300,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
		LineItems: &LineItemsInput{
			ConsultationAmount: 200,
			ProcedureLines: []ProcedureLineInput{
				{Label: "Filling", Amount: 100},
			},
		},
		CreateDue: true,
	})
	assert.True(t, apperror.IsValidation(err))

	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSettleFull(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	result, err := svc.SettleFull(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Cleaning",
		ServiceAmount:   450,
		AmountPaid:      450,
		Method:          enum.PaymentMethodMobileWallet,
		ProofReference:  strPtr("MPESA-QX12AB"),
		CreatedByUserID: env.cashier.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPaid, result.Invoice.Status)
	assert.Equal(t, int64(45000), result.Invoice.Amount)
	assert.Equal(t, int64(45000), result.Payment.Amount)
	assert.Nil(t, result.DueInvoice)

	payment, err := env.paymentRepo.GetByInvoiceID(env.ctx(), result.Invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, "MPESA-QX12AB", *payment.ProofReference)
	assert.True(t, strings.HasPrefix(payment.ReceiptNo, "RCT-"))
}

func TestSettleFullRejectsShortPayment(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	_, err := svc.SettleFull(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Cleaning",
		ServiceAmount:   450,
		AmountPaid:      400,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestSettleRequiresProofForNonCash(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	_, err := svc.SettleFull(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       env.patient.ID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Cleaning",
		ServiceAmount:   450,
		AmountPaid:      450,
		Method:          enum.PaymentMethodCard,
		CreatedByUserID: env.cashier.ID,
	})
	assert.True(t, apperror.IsValidation(err))

	// Nothing was written on the failed flow.
	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSettleUnknownPatient(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	_, err := svc.SettleFull(env.ctx(), &SettleInput{
		ClinicID:        env.clinic.ID,
		PatientID:       uuid.New(),
		DoctorID:        env.doctor.ID,
		AppointmentType: "Cleaning",
		ServiceAmount:   450,
		AmountPaid:      450,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreatePayment(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)
	ctx := env.ctx()

	inv := env.seedInvoice(t, env.patient.ID, 25000, nil)

	result, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:       inv.ID,
		Amount:          250,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, result.Invoice.Status)
	assert.Equal(t, int64(25000), result.Payment.Amount)

	// Paying again is a conflict, never a second payment.
	_, err = svc.CreatePayment(ctx, &CreatePaymentInput{
		InvoiceID:       inv.ID,
		Amount:          250,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	})
	assert.True(t, apperror.IsConflict(err))

	var count int64
	require.NoError(t, env.db.Model(&entity.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePaymentAmountMustMatchInvoice(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	inv := env.seedInvoice(t, env.patient.ID, 25000, nil)

	_, err := svc.CreatePayment(env.ctx(), &CreatePaymentInput{
		InvoiceID:       inv.ID,
		Amount:          200,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestCreatePaymentUnknownInvoice(t *testing.T) {
	env := newTestEnv(t)
	svc := newBillingService(env)

	_, err := svc.CreatePayment(env.ctx(), &CreatePaymentInput{
		InvoiceID:       uuid.New(),
		Amount:          100,
		Method:          enum.PaymentMethodCash,
		CreatedByUserID: env.cashier.ID,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestConvertDraft(t *testing.T) {
	env := newTestEnv(t)
	billingSvc := newBillingService(env)
	draftSvc := NewDraftDueService(env.draftRepo, env.patientRepo, env.tx)
	ctx := env.ctx()

	draft, err := draftSvc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	})
	require.NoError(t, err)

	draft, err = draftSvc.UpdateCharges(ctx, draft.ID, &LineItemsInput{
		ConsultationAmount: 200,
		ProcedureLines: []ProcedureLineInput{
			{Label: "Filling", Amount: 350},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(55000), draft.Total)

	invoice, err := billingSvc.ConvertDraft(ctx, &ConvertDraftInput{DraftID: draft.ID})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, int64(55000), invoice.Amount)
	require.Len(t, invoice.LineItems, 2)
	assert.Equal(t, "Consultation", invoice.LineItems[0].Label)
	assert.Equal(t, "Filling", invoice.LineItems[1].Label)

	// The draft is gone once converted.
	_, err = draftSvc.GetDraft(ctx, draft.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConvertEmptyDraft(t *testing.T) {
	env := newTestEnv(t)
	billingSvc := newBillingService(env)
	draftSvc := NewDraftDueService(env.draftRepo, env.patientRepo, env.tx)
	ctx := env.ctx()

	draft, err := draftSvc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	})
	require.NoError(t, err)

	_, err = billingSvc.ConvertDraft(ctx, &ConvertDraftInput{DraftID: draft.ID})
	assert.True(t, apperror.IsValidation(err))
}

func TestConvertDraftOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	billingSvc := newBillingService(env)
	draftSvc := NewDraftDueService(env.draftRepo, env.patientRepo, env.tx)
	ctx := env.ctx()

	draft, err := draftSvc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	})
	require.NoError(t, err)

	_, err = draftSvc.UpdateCharges(ctx, draft.ID, &LineItemsInput{
		ConsultationAmount: 200,
	})
	require.NoError(t, err)

	// A convert that loses the race sees the draft row already gone and
	// must not mint a second invoice.
	deleted, err := env.draftRepo.Delete(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = env.draftRepo.Delete(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = billingSvc.ConvertDraft(ctx, &ConvertDraftInput{DraftID: draft.ID})
	assert.True(t, apperror.IsNotFound(err))

	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

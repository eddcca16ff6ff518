package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
)

func newBalanceService(env *testEnv) *BalanceService {
	return NewBalanceService(env.invoiceRepo, env.paymentRepo, env.patientRepo, env.expenseRepo)
}

// seedPayment inserts a paid invoice with its payment at a fixed time.
func seedPayment(t *testing.T, env *testEnv, patientID uuid.UUID, amountCents int64, method enum.PaymentMethod, at time.Time) *entity.Payment {
	t.Helper()
	inv := &entity.Invoice{
		ClinicID:        env.clinic.ID,
		PatientID:       patientID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		Amount:          amountCents,
		Status:          enum.InvoiceStatusPaid,
		CreatedAt:       at,
	}
	require.NoError(t, env.db.Create(inv).Error)

	p := &entity.Payment{
		ClinicID:        env.clinic.ID,
		InvoiceID:       inv.ID,
		PatientID:       patientID,
		Amount:          amountCents,
		Method:          method,
		CreatedByUserID: env.cashier.ID,
		CreatedAt:       at,
	}
	require.NoError(t, env.db.Create(p).Error)
	return p
}

func seedUnpaidAt(t *testing.T, env *testEnv, patientID uuid.UUID, amountCents int64, at time.Time) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ClinicID:        env.clinic.ID,
		PatientID:       patientID,
		DoctorID:        env.doctor.ID,
		AppointmentType: "Consultation",
		Amount:          amountCents,
		Status:          enum.InvoiceStatusUnpaid,
		CreatedAt:       at,
	}
	require.NoError(t, env.db.Create(inv).Error)
	return inv
}

func TestGetPatientBalances(t *testing.T) {
	env := newTestEnv(t)
	svc := newBalanceService(env)
	other := env.newPatient(t, "John Kamau")

	base := time.Now().Add(-2 * time.Hour)
	seedPayment(t, env, env.patient.ID, 40000, enum.PaymentMethodCash, base)
	seedUnpaidAt(t, env, env.patient.ID, 60000, base.Add(30*time.Minute))
	seedUnpaidAt(t, env, other.ID, 25000, base.Add(time.Hour))

	result, err := svc.GetPatientBalances(env.ctx(), env.clinic.ID, &BalanceQuery{})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	// Most recent activity first.
	assert.Equal(t, other.ID, result.Items[0].PatientID)
	assert.Equal(t, "John Kamau", result.Items[0].PatientName)
	assert.Equal(t, 250.0, result.Items[0].TotalDue)
	assert.Nil(t, result.Items[0].LastPayment)

	assert.Equal(t, env.patient.ID, result.Items[1].PatientID)
	assert.Equal(t, 600.0, result.Items[1].TotalDue)
	require.NotNil(t, result.Items[1].LastPayment)
	assert.WithinDuration(t, base, *result.Items[1].LastPayment, time.Second)
}

func TestGetPatientBalancesFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := newBalanceService(env)
	settled := env.newPatient(t, "Settled Up")

	now := time.Now()
	seedUnpaidAt(t, env, env.patient.ID, 60000, now)
	seedPayment(t, env, settled.ID, 40000, enum.PaymentMethodCash, now)

	t.Run("only with balance drops settled patients", func(t *testing.T) {
		result, err := svc.GetPatientBalances(env.ctx(), env.clinic.ID, &BalanceQuery{OnlyWithBalance: true})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, env.patient.ID, result.Items[0].PatientID)
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		result, err := svc.GetPatientBalances(env.ctx(), env.clinic.ID, &BalanceQuery{Search: "wanjiru"})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, env.patient.ID, result.Items[0].PatientID)
	})

	t.Run("search matches phone", func(t *testing.T) {
		result, err := svc.GetPatientBalances(env.ctx(), env.clinic.ID, &BalanceQuery{Search: "700111"})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
	})
}

func TestGetPatientBalancesIsDeterministic(t *testing.T) {
	env := newTestEnv(t)
	svc := newBalanceService(env)

	// Same timestamp on purpose: ties must keep a stable order.
	at := time.Now().Truncate(time.Second)
	for _, name := range []string{"A", "B", "C", "D"} {
		p := env.newPatient(t, "Patient "+name)
		seedUnpaidAt(t, env, p.ID, 10000, at)
	}

	first, err := svc.GetPatientBalances(env.ctx(), env.clinic.ID, &BalanceQuery{})
	require.NoError(t, err)
	second, err := svc.GetPatientBalances(env.ctx(), env.clinic.ID, &BalanceQuery{})
	require.NoError(t, err)

	require.Len(t, first.Items, 4)
	for i := range first.Items {
		assert.Equal(t, first.Items[i].PatientID, second.Items[i].PatientID)
	}
}

func TestGetTodayCashierRows(t *testing.T) {
	env := newTestEnv(t)
	svc := newBalanceService(env)

	now := time.Now()
	seedPayment(t, env, env.patient.ID, 40000, enum.PaymentMethodCash, now.Add(-time.Hour))
	seedUnpaidAt(t, env, env.patient.ID, 60000, now.Add(-30*time.Minute))
	// Yesterday's invoice stays off today's sheet.
	seedUnpaidAt(t, env, env.patient.ID, 15000, now.AddDate(0, 0, -1))

	rows, err := svc.GetTodayCashierRows(env.ctx(), env.clinic.ID, now)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first: the unpaid invoice, then the payment.
	assert.Equal(t, enum.InvoiceStatusUnpaid, rows[0].Status)
	assert.Equal(t, 600.0, rows[0].Amount)
	assert.Nil(t, rows[0].Method)

	assert.Equal(t, enum.InvoiceStatusPaid, rows[1].Status)
	assert.Equal(t, 400.0, rows[1].Amount)
	require.NotNil(t, rows[1].Method)
	assert.Equal(t, "cash", *rows[1].Method)
	assert.Equal(t, "Grace Wanjiru", rows[1].PatientName)
}

func TestGetMonthlySummary(t *testing.T) {
	env := newTestEnv(t)
	svc := newBalanceService(env)

	now := time.Now()
	seedPayment(t, env, env.patient.ID, 40000, enum.PaymentMethodCash, now)
	seedPayment(t, env, env.patient.ID, 30000, enum.PaymentMethodCard, now)
	seedUnpaidAt(t, env, env.patient.ID, 60000, now)

	expense := &entity.Expense{
		ClinicID:   env.clinic.ID,
		Label:      "Gloves",
		Amount:     20000,
		IncurredAt: now,
		RecordedBy: env.cashier.ID,
	}
	require.NoError(t, env.db.Create(expense).Error)

	summary, err := svc.GetMonthlySummary(env.ctx(), env.clinic.ID, now)
	require.NoError(t, err)

	assert.Equal(t, now.Format("2006-01"), summary.Month)
	assert.Equal(t, 700.0, summary.TotalRevenue)
	assert.Equal(t, 600.0, summary.TotalOutstanding)
	assert.Equal(t, 200.0, summary.TotalExpenses)
	assert.Equal(t, 500.0, summary.NetProfit)
	assert.Equal(t, 2, summary.PaymentCount)
	assert.Equal(t, 400.0, summary.MethodBreakdown["cash"])
	assert.Equal(t, 300.0, summary.MethodBreakdown["card"])
}

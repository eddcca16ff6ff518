package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	domainRepo "github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/internal/infrastructure/database"
	infraRepo "github.com/wekesa/daktari-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

// testEnv wires real repositories against an in-memory database so the
// services run their full persistence paths, transactions included.
type testEnv struct {
	db *gorm.DB

	invoiceRepo domainRepo.InvoiceRepository
	paymentRepo domainRepo.PaymentRepository
	draftRepo   domainRepo.DraftDueRepository
	patientRepo domainRepo.PatientRepository
	expenseRepo domainRepo.ExpenseRepository
	tx          domainRepo.TxManager

	clinic  *entity.Clinic
	patient *entity.Patient
	doctor  *entity.User
	cashier *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	env := &testEnv{
		db:          db,
		invoiceRepo: infraRepo.NewInvoiceRepository(db),
		paymentRepo: infraRepo.NewPaymentRepository(db),
		draftRepo:   infraRepo.NewDraftDueRepository(db),
		patientRepo: infraRepo.NewPatientRepository(db),
		expenseRepo: infraRepo.NewExpenseRepository(db),
		tx:          infraRepo.NewTxManager(db),
	}

	env.doctor = &entity.User{FirstName: "Asha", LastName: "Mwangi", Email: t.Name() + "-doctor@example.com", Role: "doctor"}
	require.NoError(t, db.Create(env.doctor).Error)
	env.cashier = &entity.User{FirstName: "Brian", LastName: "Otieno", Email: t.Name() + "-cashier@example.com", Role: "staff"}
	require.NoError(t, db.Create(env.cashier).Error)

	env.clinic = &entity.Clinic{Name: "Tumaini Dental", Slug: "tumaini-" + uuid.NewString()[:8], OwnerID: env.doctor.ID}
	require.NoError(t, db.Create(env.clinic).Error)

	phone := "+254700111222"
	env.patient = &entity.Patient{ClinicID: env.clinic.ID, Name: "Grace Wanjiru", Phone: &phone}
	require.NoError(t, db.Create(env.patient).Error)

	return env
}

// ctx returns a context scoped to the seeded clinic, the way the tenancy
// middleware scopes every request.
func (e *testEnv) ctx() context.Context {
	return infraRepo.WithClinic(context.Background(), e.clinic.ID)
}

func (e *testEnv) newPatient(t *testing.T, name string) *entity.Patient {
	t.Helper()
	p := &entity.Patient{ClinicID: e.clinic.ID, Name: name}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

// seedInvoice inserts an unpaid invoice directly, bypassing the services,
// for tests that need a pre-existing record.
func (e *testEnv) seedInvoice(t *testing.T, patientID uuid.UUID, amountCents int64, appointmentID *uuid.UUID) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ClinicID:        e.clinic.ID,
		PatientID:       patientID,
		DoctorID:        e.doctor.ID,
		AppointmentID:   appointmentID,
		AppointmentType: "Consultation",
		Amount:          amountCents,
		Status:          enum.InvoiceStatusUnpaid,
	}
	require.NoError(t, e.db.Create(inv).Error)
	return inv
}

func strPtr(s string) *string {
	return &s
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/pkg/apperror"
)

func newDraftDueService(env *testEnv) *DraftDueService {
	return NewDraftDueService(env.draftRepo, env.patientRepo, env.tx)
}

func TestGetOrCreateReturnsExistingDraft(t *testing.T) {
	env := newTestEnv(t)
	svc := newDraftDueService(env)
	ctx := env.ctx()

	input := &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	}

	first, err := svc.GetOrCreate(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.Total)

	second, err := svc.GetOrCreate(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateSeparatesAppointments(t *testing.T) {
	env := newTestEnv(t)
	svc := newDraftDueService(env)
	ctx := env.ctx()

	walkIn, err := svc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	})
	require.NoError(t, err)

	appointmentID := uuid.New()
	booked, err := svc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:      env.clinic.ID,
		PatientID:     env.patient.ID,
		DoctorID:      env.doctor.ID,
		AppointmentID: uuidPtr(appointmentID),
	})
	require.NoError(t, err)

	assert.NotEqual(t, walkIn.ID, booked.ID)
}

func TestGetOrCreateUnknownPatient(t *testing.T) {
	env := newTestEnv(t)
	svc := newDraftDueService(env)

	_, err := svc.GetOrCreate(env.ctx(), &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: uuid.New(),
		DoctorID:  env.doctor.ID,
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateChargesReplacesPriorItems(t *testing.T) {
	env := newTestEnv(t)
	svc := newDraftDueService(env)
	ctx := env.ctx()

	draft, err := svc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	})
	require.NoError(t, err)

	draft, err = svc.UpdateCharges(ctx, draft.ID, &LineItemsInput{
		ConsultationAmount: 200,
		ProcedureLines: []ProcedureLineInput{
			{Label: "Extraction", Amount: 400},
			{Label: "X-ray", Amount: 150},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(75000), draft.Total)
	assert.Len(t, draft.LineItems, 3)

	// A second update does not accumulate on top of the first.
	draft, err = svc.UpdateCharges(ctx, draft.ID, &LineItemsInput{
		ConsultationAmount: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), draft.Total)
	require.Len(t, draft.LineItems, 1)
	assert.Equal(t, "Consultation", draft.LineItems[0].Label)
}

func TestClearDraft(t *testing.T) {
	env := newTestEnv(t)
	svc := newDraftDueService(env)
	ctx := env.ctx()

	draft, err := svc.GetOrCreate(ctx, &GetOrCreateInput{
		ClinicID:  env.clinic.ID,
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, draft.ID))

	_, err = svc.GetDraft(ctx, draft.ID)
	assert.True(t, apperror.IsNotFound(err))

	assert.True(t, apperror.IsNotFound(svc.Clear(ctx, draft.ID)))
}

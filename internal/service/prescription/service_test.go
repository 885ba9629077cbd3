package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
	apperrors "github.com/clinicly/booking-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	records map[int64]*model.AppointmentRecord
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }

func (f *fakeAppointmentRepo) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeAppointmentRepo) GetRecord(ctx context.Context, id int64) (*model.AppointmentRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeAppointmentRepo) List(ctx context.Context) ([]*model.AppointmentRecord, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentRecord, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListForPatient(ctx context.Context, userID int64) ([]*model.AppointmentRecord, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, apt *model.Appointment, expectedVersion time.Time) error {
	return repository.ErrNotFound
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	return repository.ErrNotFound
}

type fakePrescriptionRepo struct {
	nextID        int64
	prescriptions map[int64]*model.Prescription
	appointments  *fakeAppointmentRepo
}

func newFakePrescriptionRepo(appointments *fakeAppointmentRepo) *fakePrescriptionRepo {
	return &fakePrescriptionRepo{
		nextID:        1,
		prescriptions: make(map[int64]*model.Prescription),
		appointments:  appointments,
	}
}

func (f *fakePrescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	p.ID = f.nextID
	f.nextID++
	stored := *p
	f.prescriptions[p.ID] = &stored
	return nil
}

func (f *fakePrescriptionRepo) record(p *model.Prescription) *model.PrescriptionRecord {
	r := &model.PrescriptionRecord{
		PrescriptionID: p.ID,
		Medication:     p.Medication,
		Dosage:         p.Dosage,
		AppointmentID:  p.AppointmentID,
	}
	if apt, ok := f.appointments.records[p.AppointmentID]; ok {
		r.DoctorName = apt.DoctorName
		r.PatientName = apt.UserName
	}
	return r
}

func (f *fakePrescriptionRepo) Get(ctx context.Context, id int64) (*model.PrescriptionRecord, error) {
	p, ok := f.prescriptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.record(p), nil
}

func (f *fakePrescriptionRepo) List(ctx context.Context) ([]*model.PrescriptionRecord, error) {
	var out []*model.PrescriptionRecord
	for _, p := range f.prescriptions {
		out = append(out, f.record(p))
	}
	return out, nil
}

func (f *fakePrescriptionRepo) ListForPatient(ctx context.Context, userID int64) ([]*model.PrescriptionRecord, error) {
	var out []*model.PrescriptionRecord
	for _, p := range f.prescriptions {
		if apt, ok := f.appointments.records[p.AppointmentID]; ok && apt.UserID == userID {
			out = append(out, f.record(p))
		}
	}
	return out, nil
}

func (f *fakePrescriptionRepo) Update(ctx context.Context, p *model.Prescription) error {
	stored, ok := f.prescriptions[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Medication = p.Medication
	stored.Dosage = p.Dosage
	return nil
}

func (f *fakePrescriptionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.prescriptions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.prescriptions, id)
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	appointments := &fakeAppointmentRepo{records: map[int64]*model.AppointmentRecord{
		1: {AppointmentID: 1, UserID: 10, UserName: "Alice", DoctorName: "Dr. Patel"},
	}}
	return NewService(newFakePrescriptionRepo(appointments), appointments)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	return appErr.StatusCode()
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)

	record, err := svc.Create(context.Background(), &model.CreatePrescriptionRequest{
		AppointmentID: 1,
		Medication:    "Amoxicillin",
		Dosage:        "500mg twice daily",
	})
	require.NoError(t, err)

	assert.NotZero(t, record.PrescriptionID)
	assert.Equal(t, "Dr. Patel", record.DoctorName)
	assert.Equal(t, "Alice", record.PatientName)
}

func TestCreateInvalidAppointment(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), &model.CreatePrescriptionRequest{
		AppointmentID: 99,
		Medication:    "Amoxicillin",
		Dosage:        "500mg",
	})
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "invalid appointment")
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, &model.CreatePrescriptionRequest{
		AppointmentID: 1, Medication: "Amoxicillin", Dosage: "500mg",
	})
	require.NoError(t, err)

	err = svc.Update(ctx, record.PrescriptionID, &model.UpdatePrescriptionRequest{
		Medication: "Ibuprofen", Dosage: "200mg",
	})
	require.NoError(t, err)

	updated, err := svc.Get(ctx, record.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", updated.Medication)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Update(context.Background(), 99, &model.UpdatePrescriptionRequest{
		Medication: "Ibuprofen", Dosage: "200mg",
	})
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, &model.CreatePrescriptionRequest{
		AppointmentID: 1, Medication: "Amoxicillin", Dosage: "500mg",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, record.PrescriptionID))

	_, err = svc.Get(ctx, record.PrescriptionID)
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestListForPatient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreatePrescriptionRequest{
		AppointmentID: 1, Medication: "Amoxicillin", Dosage: "500mg",
	})
	require.NoError(t, err)

	records, err := svc.ListForPatient(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	none, err := svc.ListForPatient(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, none)
}

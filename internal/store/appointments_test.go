package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medication-app-server/internal/models"
)

func TestAppointmentStore_CRUD(t *testing.T) {
	db := setupTestDB(t)
	appts := NewAppointmentStore(db, zap.NewNop())

	appt := &models.Appointment{
		DoctorName: "Dr. Silva",
		Specialty:  "Cardiology",
		Location:   "Downtown Clinic",
		Date:       time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local),
		Notes:      "Bring previous exam results",
	}
	require.NoError(t, appts.Create(appt))
	assert.NotEmpty(t, appt.ID)

	stored, err := appts.Get(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Silva", stored.DoctorName)

	stored.Location = "North Clinic"
	require.NoError(t, appts.Update(appt.ID, stored))
	stored, err = appts.Get(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Clinic", stored.Location)

	require.NoError(t, appts.Delete(appt.ID))
	_, err = appts.Get(appt.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentStore_UpcomingFiltersAndOrders(t *testing.T) {
	db := setupTestDB(t)
	appts := NewAppointmentStore(db, zap.NewNop())

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	past := &models.Appointment{DoctorName: "Dr. Past", Date: now.AddDate(0, 0, -7)}
	soon := &models.Appointment{DoctorName: "Dr. Soon", Date: now.AddDate(0, 0, 2)}
	later := &models.Appointment{DoctorName: "Dr. Later", Date: now.AddDate(0, 1, 0)}
	for _, a := range []*models.Appointment{later, past, soon} {
		require.NoError(t, appts.Create(a))
	}

	upcoming, err := appts.Upcoming(now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Dr. Soon", upcoming[0].DoctorName)
	assert.Equal(t, "Dr. Later", upcoming[1].DoctorName)

	all, err := appts.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dr. Past", all[0].DoctorName)
}

func TestAppointmentStore_UnknownID(t *testing.T) {
	db := setupTestDB(t)
	appts := NewAppointmentStore(db, zap.NewNop())

	_, err := appts.Get("missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, appts.Delete("missing"), ErrAppointmentNotFound)
	assert.ErrorIs(t, appts.Update("missing", &models.Appointment{DoctorName: "X"}), ErrAppointmentNotFound)
}

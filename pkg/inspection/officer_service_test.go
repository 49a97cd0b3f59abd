package inspection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOfficer(t *testing.T, svc *Services, badge string) *InspectionOfficer {
	t.Helper()
	officer, err := svc.Officers.Create(&InspectionOfficer{
		BadgeNumber:       badge,
		FirstName:         "Ivan",
		LastName:          "Georgiev",
		Department:        "Sofia",
		Specialization:    "EMISSIONS",
		YearsOfExperience: 7,
		Available:         true,
		InspectionMethods: []string{"VISUAL"},
	})
	require.NoError(t, err)
	return officer
}

func TestOfficerService_CreateAndDuplicateBadge(t *testing.T) {
	svc := newTestServices(t)

	officer := seedOfficer(t, svc, "B-100")
	assert.NotEmpty(t, officer.ID)
	assert.Equal(t, defaultAverageRating, officer.AverageInspectionRating)
	assert.Equal(t, 0, officer.TotalInspectionsCompleted)
	assert.Equal(t, []string{"VISUAL"}, officer.Certifications)

	_, err := svc.Officers.Create(&InspectionOfficer{BadgeNumber: "B-100"})
	require.ErrorIs(t, err, ErrConflict)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "badgeNumber", conflict.Field)
}

func TestOfficerService_InspectionMethods(t *testing.T) {
	svc := newTestServices(t)
	officer := seedOfficer(t, svc, "B-200")

	got, err := svc.Officers.AddInspectionMethod(officer.ID, "EMISSIONS")
	require.NoError(t, err)
	assert.Equal(t, []string{"VISUAL", "EMISSIONS"}, got.InspectionMethods)

	// Adding a method the officer already has is a no-op.
	got, err = svc.Officers.AddInspectionMethod(officer.ID, "EMISSIONS")
	require.NoError(t, err)
	assert.Equal(t, []string{"VISUAL", "EMISSIONS"}, got.InspectionMethods)

	got, err = svc.Officers.RemoveInspectionMethod(officer.ID, "VISUAL")
	require.NoError(t, err)
	assert.Equal(t, []string{"EMISSIONS"}, got.InspectionMethods)

	// Removing an absent method leaves the list unchanged.
	got, err = svc.Officers.RemoveInspectionMethod(officer.ID, "BRAKES")
	require.NoError(t, err)
	assert.Equal(t, []string{"EMISSIONS"}, got.InspectionMethods)

	certs, err := svc.Officers.Certifications(officer.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMISSIONS"}, certs)
}

func TestOfficerService_Availability(t *testing.T) {
	svc := newTestServices(t)
	officer := seedOfficer(t, svc, "B-300")

	got, err := svc.Officers.UpdateAvailability(officer.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Available)

	available, err := svc.Officers.ListAvailable()
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = svc.Officers.UpdateAvailability(officer.ID, true)
	require.NoError(t, err)
	available, err = svc.Officers.ListAvailable()
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestOfficerService_AvailableForTimeSlot(t *testing.T) {
	svc := newTestServices(t)

	busy := seedOfficer(t, svc, "B-400")
	free := seedOfficer(t, svc, "B-401")
	offline, err := svc.Officers.Create(&InspectionOfficer{BadgeNumber: "B-402", Available: false})
	require.NoError(t, err)

	owner := seedOwner(t, svc, "DL-O1")
	car := seedCar(t, svc, owner.ID, "CA9001AB")
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	_, err = svc.Bookings.Create(&InspectionBooking{
		OwnerID: owner.ID, CarID: car.ID, OfficerID: busy.ID, ScheduledDateTime: at,
	})
	require.NoError(t, err)

	officers, err := svc.Officers.OfficersAvailableForTimeSlot(at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, officers, 1)
	assert.Equal(t, free.ID, officers[0].ID)
	assert.NotEqual(t, offline.ID, officers[0].ID)
}

func TestOfficerService_WorkloadSummary(t *testing.T) {
	svc := newTestServices(t)
	officer := seedOfficer(t, svc, "B-500")
	owner := seedOwner(t, svc, "DL-O2")
	car := seedCar(t, svc, owner.ID, "CA9101AB")

	booking, err := svc.Bookings.Create(&InspectionBooking{
		OwnerID: owner.ID, CarID: car.ID, OfficerID: officer.ID,
		ScheduledDateTime: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.Bookings.UpdateStatus(booking.ID, StatusCompleted)
	require.NoError(t, err)

	got, err := svc.Officers.Get(officer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalInspectionsCompleted)
	assert.Equal(t, 1, got.CurrentQueueSize)

	// A booking scheduled now falls inside the local calendar-day window.
	_, err = svc.Bookings.Create(&InspectionBooking{
		OwnerID: owner.ID, CarID: car.ID, OfficerID: officer.ID,
		ScheduledDateTime: time.Now(),
	})
	require.NoError(t, err)

	got, err = svc.Officers.Get(officer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.InspectionsToday)
	assert.Equal(t, 2, got.CurrentQueueSize)

	count, err := svc.Officers.CompletedInspectionsCount(officer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	rating, err := svc.Officers.AverageInspectionRating(officer.ID)
	require.NoError(t, err)
	assert.Equal(t, defaultAverageRating, rating)

	_, err = svc.Officers.AverageInspectionRating("no-such-officer")
	require.ErrorIs(t, err, ErrOfficerNotFound)
}

func TestOfficerService_Lookups(t *testing.T) {
	svc := newTestServices(t)
	officer := seedOfficer(t, svc, "B-600")

	byBadge, err := svc.Officers.GetByBadgeNumber("B-600")
	require.NoError(t, err)
	assert.Equal(t, officer.ID, byBadge.ID)

	byDept, err := svc.Officers.ListByDepartment("Sofia")
	require.NoError(t, err)
	assert.Len(t, byDept, 1)

	bySpec, err := svc.Officers.ListBySpecialization("EMISSIONS")
	require.NoError(t, err)
	assert.Len(t, bySpec, 1)

	experienced, err := svc.Officers.ListByMinExperience(5)
	require.NoError(t, err)
	assert.Len(t, experienced, 1)

	_, err = svc.Officers.GetByBadgeNumber("B-999")
	require.ErrorIs(t, err, ErrOfficerNotFound)
}

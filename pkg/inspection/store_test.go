package inspection

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB creates an in-memory SQLite DB with all tables migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServices wires all services over a fresh in-memory DB.
func newTestServices(t *testing.T) *Services {
	t.Helper()
	return NewServices(newTestDB(t), NewMemoryTemplateStore(), newTestLogger())
}

func TestOwnerStore_CRUD(t *testing.T) {
	store := NewOwnerStore(newTestDB(t))

	record := &VehicleOwnerRecord{
		ID:            "owner-1",
		DriverLicense: "DL-1001",
		FirstName:     "Maria",
		LastName:      "Petrova",
		Email:         "maria@example.com",
		Phone:         "+359-555-0100",
	}
	require.NoError(t, store.Create(record))

	got, err := store.Get("owner-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "DL-1001", got.DriverLicense)
	assert.Equal(t, "Maria", got.FirstName)

	got, err = store.GetByDriverLicense("DL-1001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "owner-1", got.ID)

	got, err = store.GetByEmail("maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "owner-1", got.ID)

	exists, err := store.ExistsByDriverLicense("DL-1001")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.ExistsByDriverLicense("DL-9999")
	require.NoError(t, err)
	assert.False(t, exists)

	record.FirstName = "Mariya"
	require.NoError(t, store.Save(record))
	got, err = store.Get("owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Mariya", got.FirstName)

	require.NoError(t, store.Delete("owner-1"))
	got, err = store.Get("owner-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOwnerStore_GetMissingReturnsNil(t *testing.T) {
	store := NewOwnerStore(newTestDB(t))

	got, err := store.Get("no-such-owner")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.GetByDriverLicense("no-such-license")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCarStore_Filters(t *testing.T) {
	db := newTestDB(t)
	store := NewCarStore(db)

	now := time.Now()
	oldInspection := now.AddDate(-2, 0, 0)
	recentInspection := now.AddDate(0, -3, 0)
	expiredInsurance := now.AddDate(0, -1, 0)
	validInsurance := now.AddDate(0, 6, 0)

	cars := []CarRecord{
		{ID: "car-1", LicensePlate: "CA1001AB", Make: "Toyota", Model: "Corolla", Year: 2018, OwnerID: "owner-1",
			InsuranceProvider: "Allianz", InsuranceExpiryDate: &validInsurance, LastInspectionDate: &oldInspection},
		{ID: "car-2", LicensePlate: "CA2002CD", Make: "Toyota", Model: "Corolla", Year: 2021, OwnerID: "owner-1",
			InsuranceProvider: "Allianz", InsuranceExpiryDate: &expiredInsurance, LastInspectionDate: &recentInspection},
		{ID: "car-3", LicensePlate: "CA3003EF", Make: "Honda", Model: "Civic", Year: 2018, OwnerID: "owner-2",
			InsuranceProvider: "Generali", InsuranceExpiryDate: &validInsurance},
	}
	for i := range cars {
		require.NoError(t, store.Create(&cars[i]))
	}

	// car-1 was inspected two years ago, car-3 never.
	due, err := store.ListInspectionDueBefore(now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.Len(t, due, 2)

	expired, err := store.ListInsuranceExpiredBefore(now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "car-2", expired[0].ID)

	corollas, err := store.ListByMakeAndModel("Toyota", "Corolla")
	require.NoError(t, err)
	assert.Len(t, corollas, 2)

	from2018, err := store.ListByYear(2018)
	require.NoError(t, err)
	assert.Len(t, from2018, 2)

	byOwner, err := store.ListByOwner("owner-1")
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	require.NoError(t, store.DeleteByOwner("owner-1"))
	byOwner, err = store.ListByOwner("owner-1")
	require.NoError(t, err)
	assert.Empty(t, byOwner)
}

func TestBookingStore_CountWindowIsInclusive(t *testing.T) {
	store := NewBookingStore(newTestDB(t))

	at := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(&InspectionBookingRecord{
		ID: "booking-1", OwnerID: "owner-1", CarID: "car-1", OfficerID: "officer-1",
		ScheduledDateTime: at, Status: string(StatusScheduled),
	}))

	// Both window endpoints count.
	count, err := store.CountByOfficerAndScheduledBetween("officer-1", at.Add(-time.Hour), at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.CountByOfficerAndScheduledBetween("officer-1", at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.CountByOfficerAndScheduledBetween("officer-1", at.Add(time.Minute), at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Other officers are unaffected.
	count, err = store.CountByOfficerAndScheduledBetween("officer-2", at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOfficerStore_JSONMethodsRoundTrip(t *testing.T) {
	store := NewOfficerStore(newTestDB(t))

	require.NoError(t, store.Create(&InspectionOfficerRecord{
		ID: "officer-1", BadgeNumber: "B-100", FirstName: "Ivan", LastName: "Georgiev",
		Department: "Sofia", Specialization: "EMISSIONS", YearsOfExperience: 7,
		Available: true, InspectionMethods: JSONStringSlice{"VISUAL", "EMISSIONS"},
	}))

	got, err := store.Get("officer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, JSONStringSlice{"VISUAL", "EMISSIONS"}, got.InspectionMethods)

	byBadge, err := store.GetByBadgeNumber("B-100")
	require.NoError(t, err)
	require.NotNil(t, byBadge)
	assert.Equal(t, "officer-1", byBadge.ID)

	experienced, err := store.ListByMinExperience(5)
	require.NoError(t, err)
	assert.Len(t, experienced, 1)
	experienced, err = store.ListByMinExperience(10)
	require.NoError(t, err)
	assert.Empty(t, experienced)
}

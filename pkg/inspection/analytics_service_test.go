package inspection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAnalytics(t *testing.T, svc *Services, date time.Time, passed bool, mutate func(*Analytics)) *Analytics {
	t.Helper()
	a := &Analytics{
		InspectionDate:     date,
		InspectionDuration: 60,
		InspectionType:     "ANNUAL",
		VehicleCategory:    "SEDAN",
		Passed:             passed,
		InspectionScore:    80,
	}
	if mutate != nil {
		mutate(a)
	}
	created, err := svc.Analytics.Create(a)
	require.NoError(t, err)
	return created
}

func TestAnalyticsService_PassRate(t *testing.T) {
	svc := newTestServices(t)
	day := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	seedAnalytics(t, svc, day, true, nil)
	seedAnalytics(t, svc, day, true, nil)
	seedAnalytics(t, svc, day, false, nil)

	rate, err := svc.Analytics.PassRate(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, rate, 1e-9)

	// An empty window reports zero, not an error.
	rate, err = svc.Analytics.PassRate(day.AddDate(0, 6, 0), day.AddDate(0, 7, 0))
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestAnalyticsService_CategoryAndFeedback(t *testing.T) {
	svc := newTestServices(t)
	day := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)
	start, end := day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)

	seedAnalytics(t, svc, day, true, func(a *Analytics) {
		a.VehicleCategory = "SEDAN"
		a.CustomerSatisfactionScore = 4.7
	})
	seedAnalytics(t, svc, day, true, func(a *Analytics) {
		a.VehicleCategory = "SEDAN"
		a.CustomerSatisfactionScore = 4.1
	})
	seedAnalytics(t, svc, day, false, func(a *Analytics) {
		a.VehicleCategory = "TRUCK"
		a.CustomerSatisfactionScore = 2.9
	})

	byCategory, err := svc.Analytics.InspectionsByVehicleCategory(start, end)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"SEDAN": 2, "TRUCK": 1}, byCategory)

	// Satisfaction scores bucket by integer part.
	dist, err := svc.Analytics.FeedbackDistribution(start, end)
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{4: 2, 2: 1}, dist)

	satisfaction, err := svc.Analytics.CustomerSatisfaction(start, end)
	require.NoError(t, err)
	assert.InDelta(t, (4.7+4.1+2.9)/3, satisfaction, 1e-9)
}

func TestAnalyticsService_MonthlyTrends(t *testing.T) {
	svc := newTestServices(t)

	seedAnalytics(t, svc, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 7, 5, 10, 0, 0, 0, time.UTC), false, nil)

	trends, err := svc.Analytics.MonthlyInspectionTrends(2026)
	require.NoError(t, err)
	require.Len(t, trends, 12)
	assert.Equal(t, int64(2), trends["MARCH"])
	assert.Equal(t, int64(1), trends["JULY"])
	assert.Equal(t, int64(0), trends["DECEMBER"])
}

func TestAnalyticsService_SeasonalPatterns(t *testing.T) {
	svc := newTestServices(t)

	// Winter is queried under one year value: December 2026 is grouped
	// with January and February 2026, not with the following winter.
	seedAnalytics(t, svc, time.Date(2026, 12, 15, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC), true, nil)

	patterns, err := svc.Analytics.SeasonalPatterns(2026)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, patterns["WINTER"], 1e-9)
	assert.InDelta(t, 1.0/3.0, patterns["SPRING"], 1e-9)
	assert.Zero(t, patterns["SUMMER"])
	assert.Zero(t, patterns["FALL"])
}

func TestAnalyticsService_YearOverYearGrowth(t *testing.T) {
	svc := newTestServices(t)

	seedAnalytics(t, svc, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), true, nil)
	seedAnalytics(t, svc, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), true, nil)

	growth, err := svc.Analytics.YearOverYearGrowth(2026)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, growth, 1e-9)

	// No prior-year volume reports zero growth.
	growth, err = svc.Analytics.YearOverYearGrowth(2025)
	require.NoError(t, err)
	assert.Zero(t, growth)
}

func TestAnalyticsService_CustomReport(t *testing.T) {
	svc := newTestServices(t)
	day := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)
	start, end := day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)

	seedAnalytics(t, svc, day, true, func(a *Analytics) { a.InspectionDuration = 90 })
	seedAnalytics(t, svc, day, false, func(a *Analytics) { a.InspectionDuration = 30 })

	// Keys match case-insensitively; unknown keys are dropped.
	report, err := svc.Analytics.CustomReport(start, end, []string{"total_inspections", "Pass_Rate", "AVERAGE_DURATION", "SHOE_SIZE"})
	require.NoError(t, err)
	require.Len(t, report, 3)
	assert.Equal(t, 2.0, report["TOTAL_INSPECTIONS"])
	assert.InDelta(t, 0.5, report["PASS_RATE"], 1e-9)
	assert.InDelta(t, 60.0, report["AVERAGE_DURATION"], 1e-9)
	assert.NotContains(t, report, "SHOE_SIZE")
}

func TestAnalyticsService_Reports(t *testing.T) {
	svc := newTestServices(t)
	day := time.Date(2026, 6, 4, 9, 0, 0, 0, time.UTC)

	seedAnalytics(t, svc, day, true, func(a *Analytics) {
		a.SafetyScore = 90
		a.ComplianceScore = 80
		a.CustomerSatisfactionScore = 4.0
	})
	seedAnalytics(t, svc, day.Add(2*time.Hour), false, func(a *Analytics) {
		a.SafetyScore = 70
		a.ComplianceScore = 60
		a.CustomerSatisfactionScore = 3.0
	})
	seedAnalytics(t, svc, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), true, nil)

	daily, err := svc.Analytics.DailyReport(day)
	require.NoError(t, err)
	assert.Equal(t, 2, daily.TotalInspections)
	assert.InDelta(t, 0.5, daily.PassRate, 1e-9)
	assert.InDelta(t, 80.0, daily.SafetyScore, 1e-9)
	assert.InDelta(t, 70.0, daily.ComplianceScore, 1e-9)
	assert.InDelta(t, 3.5, daily.CustomerSatisfactionScore, 1e-9)
	assert.Equal(t, "GENERATED", daily.ReportStatus)
	assert.NotEmpty(t, daily.ReportID)
	require.NotNil(t, daily.ReportGeneratedAt)
	assert.Zero(t, daily.YearOverYearGrowth)

	monthly, err := svc.Analytics.MonthlyReport(2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, 2, monthly.TotalInspections)
	assert.InDelta(t, 3.5, monthly.CustomerSatisfactionScore, 1e-9)

	// The yearly report carries growth against the previous year.
	yearly, err := svc.Analytics.YearlyReport(2026)
	require.NoError(t, err)
	assert.Equal(t, 2, yearly.TotalInspections)
	assert.InDelta(t, 100.0, yearly.YearOverYearGrowth, 1e-9)
}

func TestAnalyticsService_TrendData(t *testing.T) {
	svc := newTestServices(t)
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	seedAnalytics(t, svc, start.Add(10*time.Hour), true, nil)
	seedAnalytics(t, svc, start.Add(11*time.Hour), true, nil)
	seedAnalytics(t, svc, start.AddDate(0, 0, 2).Add(10*time.Hour), false, nil)

	// A record later in end's day still counts toward the final point.
	points, err := svc.Analytics.InspectionTrendData(start, start.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, TrendPoint{Date: "2026-06-10", Count: 2}, points[0])
	assert.Equal(t, TrendPoint{Date: "2026-06-11", Count: 0}, points[1])
	assert.Equal(t, TrendPoint{Date: "2026-06-12", Count: 1}, points[2])

	// Mid-day bounds widen to whole calendar days.
	points, err = svc.Analytics.InspectionTrendData(start.Add(14*time.Hour), start.AddDate(0, 0, 2).Add(6*time.Hour))
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, TrendPoint{Date: "2026-06-10", Count: 2}, points[0])
	assert.Equal(t, TrendPoint{Date: "2026-06-12", Count: 1}, points[2])
}

func TestAnalyticsService_OfficerPerformance(t *testing.T) {
	svc := newTestServices(t)
	day := time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)

	// Officer metrics join analytics records to completed bookings.
	owner := seedOwner(t, svc, "DL-A1")
	car := seedCar(t, svc, owner.ID, "CA7701AB")
	officer := seedOfficer(t, svc, "B-770")
	booking, err := svc.Bookings.Create(&InspectionBooking{
		OwnerID: owner.ID, CarID: car.ID, OfficerID: officer.ID, ScheduledDateTime: day,
	})
	require.NoError(t, err)

	seedAnalytics(t, svc, day, true, func(a *Analytics) {
		a.BookingID = booking.ID
		a.InspectionScore = 88
		a.InspectionDuration = 45
	})

	perf, err := svc.Analytics.OfficerPerformanceMetrics(officer.ID)
	require.NoError(t, err)
	assert.Equal(t, officer.ID, perf.OfficerID)
	assert.InDelta(t, 88.0, perf.AverageScore, 1e-9)
	assert.InDelta(t, 1.0, perf.PassRate, 1e-9)
	assert.InDelta(t, 45.0, perf.AverageDuration, 1e-9)
	assert.Equal(t, int64(1), perf.CompletedInspections)
}

func TestAnalyticsService_CRUD(t *testing.T) {
	svc := newTestServices(t)
	day := time.Date(2026, 6, 25, 10, 0, 0, 0, time.UTC)

	created := seedAnalytics(t, svc, day, true, func(a *Analytics) { a.InspectionFindings = "worn tires" })
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.TotalInspections)

	updated, err := svc.Analytics.Update(created.ID, &Analytics{
		Passed:       false,
		DefectsFound: 2,
		SafetyScore:  9.5, ComplianceScore: 8.5,
	})
	require.NoError(t, err)
	assert.False(t, updated.Passed)
	assert.Equal(t, 2, updated.DefectsFound)
	assert.Equal(t, "worn tires", updated.InspectionFindings)

	// Score updates persist to the stored record.
	fetched, err := svc.Analytics.Get(created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.5, fetched.SafetyScore, 1e-9)
	assert.InDelta(t, 8.5, fetched.ComplianceScore, 1e-9)

	byType, err := svc.Analytics.ListByType("ANNUAL")
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	require.NoError(t, svc.Analytics.Delete(created.ID))
	_, err = svc.Analytics.Get(created.ID)
	require.ErrorIs(t, err, ErrAnalyticsNotFound)
}

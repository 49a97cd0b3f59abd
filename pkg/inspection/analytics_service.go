package inspection

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OfficerPerformance bundles per-officer inspection aggregates.
type OfficerPerformance struct {
	OfficerID            string  `json:"officerId"`
	AverageScore         float64 `json:"averageScore"`
	PassRate             float64 `json:"passRate"`
	AverageDuration      float64 `json:"averageDuration"`
	CompletedInspections int64   `json:"completedInspections"`
}

// DashboardStats bundles the trailing-30-day metrics shown on the
// operations dashboard.
type DashboardStats struct {
	TotalInspections     int64    `json:"totalInspections"`
	PassRate             float64  `json:"passRate"`
	AverageDuration      float64  `json:"averageDuration"`
	SafetyScore          float64  `json:"safetyScore"`
	ComplianceScore      float64  `json:"complianceScore"`
	CustomerSatisfaction float64  `json:"customerSatisfaction"`
	CriticalIssues       []string `json:"criticalIssues"`
}

// TrendPoint is one day of inspection volume.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AnalyticsService implements analytics aggregation on top of the store.
// All derived values are plain arithmetic over windowed query results.
type AnalyticsService struct {
	analytics *AnalyticsStore
	logger    *slog.Logger
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(analytics *AnalyticsStore, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, logger: logger}
}

// Create persists a new analytics record. The booking link is logical and
// not validated here.
func (s *AnalyticsService) Create(a *Analytics) (*Analytics, error) {
	record := &AnalyticsRecord{
		ID:                        uuid.New().String(),
		BookingID:                 a.BookingID,
		InspectionDate:            a.InspectionDate,
		InspectionDuration:        a.InspectionDuration,
		InspectionType:            a.InspectionType,
		VehicleCategory:           a.VehicleCategory,
		InspectionFindings:        a.InspectionFindings,
		Passed:                    a.Passed,
		DefectsFound:              a.DefectsFound,
		CriticalIssues:            a.CriticalIssues,
		InspectionScore:           a.InspectionScore,
		SafetyScore:               a.SafetyScore,
		ComplianceScore:           a.ComplianceScore,
		CustomerSatisfactionScore: a.CustomerSatisfactionScore,
		Recommendations:           a.Recommendations,
		ReportStatus:              a.ReportStatus,
		ReportGeneratedAt:         a.ReportGeneratedAt,
		ReportID:                  a.ReportID,
	}
	if err := s.analytics.Create(record); err != nil {
		return nil, err
	}
	return s.toAnalytics(record)
}

// Update modifies an existing analytics record.
func (s *AnalyticsService) Update(id string, a *Analytics) (*Analytics, error) {
	record, err := s.analytics.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrAnalyticsNotFound)
	}

	if a.BookingID != "" {
		record.BookingID = a.BookingID
	}
	if !a.InspectionDate.IsZero() {
		record.InspectionDate = a.InspectionDate
	}
	if a.InspectionDuration != 0 {
		record.InspectionDuration = a.InspectionDuration
	}
	if a.InspectionType != "" {
		record.InspectionType = a.InspectionType
	}
	if a.VehicleCategory != "" {
		record.VehicleCategory = a.VehicleCategory
	}
	if a.InspectionFindings != "" {
		record.InspectionFindings = a.InspectionFindings
	}
	record.Passed = a.Passed
	if a.DefectsFound != 0 {
		record.DefectsFound = a.DefectsFound
	}
	if a.CriticalIssues != "" {
		record.CriticalIssues = a.CriticalIssues
	}
	if a.InspectionScore != 0 {
		record.InspectionScore = a.InspectionScore
	}
	if a.SafetyScore != 0 {
		record.SafetyScore = a.SafetyScore
	}
	if a.ComplianceScore != 0 {
		record.ComplianceScore = a.ComplianceScore
	}
	if a.CustomerSatisfactionScore != 0 {
		record.CustomerSatisfactionScore = a.CustomerSatisfactionScore
	}
	if a.Recommendations != "" {
		record.Recommendations = a.Recommendations
	}
	if a.ReportStatus != "" {
		record.ReportStatus = a.ReportStatus
	}

	if err := s.analytics.Save(record); err != nil {
		return nil, err
	}
	return s.toAnalytics(record)
}

// Get returns an analytics record by ID.
func (s *AnalyticsService) Get(id string) (*Analytics, error) {
	record, err := s.analytics.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrAnalyticsNotFound)
	}
	return s.toAnalytics(record)
}

// Delete removes an analytics record.
func (s *AnalyticsService) Delete(id string) error {
	record, err := s.analytics.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrAnalyticsNotFound)
	}
	return s.analytics.Delete(id)
}

// ListByDateRange returns records inspected inside [start, end].
func (s *AnalyticsService) ListByDateRange(start, end time.Time) ([]Analytics, error) {
	records, err := s.analytics.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByPassed returns records filtered by outcome.
func (s *AnalyticsService) ListByPassed(passed bool) ([]Analytics, error) {
	records, err := s.analytics.ListByPassed(passed)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByType returns records of the given inspection type.
func (s *AnalyticsService) ListByType(inspectionType string) ([]Analytics, error) {
	records, err := s.analytics.ListByInspectionType(inspectionType)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByBooking returns records linked to the booking.
func (s *AnalyticsService) ListByBooking(bookingID string) ([]Analytics, error) {
	records, err := s.analytics.ListByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// AverageInspectionDuration returns the mean duration in minutes over the
// window, 0 when empty.
func (s *AnalyticsService) AverageInspectionDuration(start, end time.Time) (float64, error) {
	return s.analytics.AverageDurationBetween(start, end)
}

// PassedCount returns the number of passed inspections in the window.
func (s *AnalyticsService) PassedCount(start, end time.Time) (int64, error) {
	return s.analytics.CountByPassedBetween(true, start, end)
}

// FailedCount returns the number of failed inspections in the window.
func (s *AnalyticsService) FailedCount(start, end time.Time) (int64, error) {
	return s.analytics.CountByPassedBetween(false, start, end)
}

// PassRate returns passed / (passed + failed) over the window, 0 when the
// window has no inspections.
func (s *AnalyticsService) PassRate(start, end time.Time) (float64, error) {
	passed, err := s.PassedCount(start, end)
	if err != nil {
		return 0, err
	}
	failed, err := s.FailedCount(start, end)
	if err != nil {
		return 0, err
	}
	if passed+failed == 0 {
		return 0, nil
	}
	return float64(passed) / float64(passed+failed), nil
}

// InspectionsByVehicleCategory returns per-category counts over the window.
func (s *AnalyticsService) InspectionsByVehicleCategory(start, end time.Time) (map[string]int64, error) {
	return s.analytics.CountByVehicleCategoryBetween(start, end)
}

// AverageInspectionScoreByOfficer returns the mean inspection score across
// the officer's bookings.
func (s *AnalyticsService) AverageInspectionScoreByOfficer(officerID string) (float64, error) {
	return s.analytics.AverageScoreByOfficer(officerID)
}

// OfficerPerformanceMetrics bundles score, pass rate, and duration for one
// officer.
func (s *AnalyticsService) OfficerPerformanceMetrics(officerID string) (*OfficerPerformance, error) {
	score, err := s.analytics.AverageScoreByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	duration, err := s.analytics.AverageDurationByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	passed, err := s.analytics.CountByOfficerAndPassed(officerID, true)
	if err != nil {
		return nil, err
	}
	total, err := s.analytics.CountByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	passRate := 0.0
	if total > 0 {
		passRate = float64(passed) / float64(total)
	}
	return &OfficerPerformance{
		OfficerID:            officerID,
		AverageScore:         score,
		PassRate:             passRate,
		AverageDuration:      duration,
		CompletedInspections: total,
	}, nil
}

// PerformanceIndicators returns the officer's performance bundle.
func (s *AnalyticsService) PerformanceIndicators(officerID string) (*OfficerPerformance, error) {
	return s.OfficerPerformanceMetrics(officerID)
}

// TopDefects returns the most frequent findings in the window, most common
// first, capped at limit.
func (s *AnalyticsService) TopDefects(start, end time.Time, limit int) ([]string, error) {
	return s.analytics.TopFindingsBetween(start, end, limit)
}

// MonthlyInspectionTrends returns per-month inspection counts for the year,
// keyed by upper-case month name.
func (s *AnalyticsService) MonthlyInspectionTrends(year int) (map[string]int64, error) {
	trends := make(map[string]int64, 12)
	for month := time.January; month <= time.December; month++ {
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		count, err := s.analytics.CountBetween(start, start.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		trends[strings.ToUpper(month.String())] = count
	}
	return trends, nil
}

// SeasonalPatterns returns the mean monthly inspection count per season for
// the year. All three winter months are queried under the same year value,
// so December of the given year is grouped with the January and February
// that precede it.
func (s *AnalyticsService) SeasonalPatterns(year int) (map[string]float64, error) {
	seasons := map[string][]time.Month{
		"SPRING": {time.March, time.April, time.May},
		"SUMMER": {time.June, time.July, time.August},
		"FALL":   {time.September, time.October, time.November},
		"WINTER": {time.December, time.January, time.February},
	}
	out := make(map[string]float64, len(seasons))
	for season, months := range seasons {
		var total int64
		for _, month := range months {
			start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			count, err := s.analytics.CountBetween(start, start.AddDate(0, 1, 0))
			if err != nil {
				return nil, err
			}
			total += count
		}
		out[season] = float64(total) / float64(len(months))
	}
	return out, nil
}

// YearOverYearGrowth returns the percentage change in inspection volume
// from the previous year, 0 when the previous year had none.
func (s *AnalyticsService) YearOverYearGrowth(year int) (float64, error) {
	current, err := s.analytics.CountBetween(yearWindow(year))
	if err != nil {
		return 0, err
	}
	previous, err := s.analytics.CountBetween(yearWindow(year - 1))
	if err != nil {
		return 0, err
	}
	if previous == 0 {
		return 0, nil
	}
	return float64(current-previous) / float64(previous) * 100, nil
}

func yearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// OverallSafetyScore returns the mean safety score over the window.
func (s *AnalyticsService) OverallSafetyScore(start, end time.Time) (float64, error) {
	return s.analytics.AverageSafetyScoreBetween(start, end)
}

// ComplianceRate returns the mean compliance score over the window.
func (s *AnalyticsService) ComplianceRate(start, end time.Time) (float64, error) {
	return s.analytics.AverageComplianceScoreBetween(start, end)
}

// CriticalIssuesByFrequency returns distinct critical issues in the window,
// most frequent first.
func (s *AnalyticsService) CriticalIssuesByFrequency(start, end time.Time) ([]string, error) {
	return s.analytics.TopCriticalIssuesBetween(start, end)
}

// CustomerSatisfaction returns the mean satisfaction score over the window.
func (s *AnalyticsService) CustomerSatisfaction(start, end time.Time) (float64, error) {
	return s.analytics.AverageSatisfactionBetween(start, end)
}

// FeedbackDistribution buckets satisfaction scores by their integer part
// over the window.
func (s *AnalyticsService) FeedbackDistribution(start, end time.Time) (map[int]int64, error) {
	records, err := s.analytics.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	dist := make(map[int]int64)
	for i := range records {
		dist[int(records[i].CustomerSatisfactionScore)]++
	}
	return dist, nil
}

// DailyReport bundles the standard metrics for one day.
func (s *AnalyticsService) DailyReport(date time.Time) (*Analytics, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.buildReport(start, start.AddDate(0, 0, 1))
}

// MonthlyReport bundles the standard metrics for one month.
func (s *AnalyticsService) MonthlyReport(year int, month time.Month) (*Analytics, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.buildReport(start, start.AddDate(0, 1, 0))
}

// YearlyReport bundles the standard metrics for one year, plus the growth
// against the previous year.
func (s *AnalyticsService) YearlyReport(year int) (*Analytics, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	report, err := s.buildReport(start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	growth, err := s.YearOverYearGrowth(year)
	if err != nil {
		return nil, err
	}
	report.YearOverYearGrowth = growth
	return report, nil
}

func (s *AnalyticsService) buildReport(start, end time.Time) (*Analytics, error) {
	total, err := s.analytics.CountBetween(start, end)
	if err != nil {
		return nil, err
	}
	passRate, err := s.PassRate(start, end)
	if err != nil {
		return nil, err
	}
	duration, err := s.analytics.AverageDurationBetween(start, end)
	if err != nil {
		return nil, err
	}
	safety, err := s.analytics.AverageSafetyScoreBetween(start, end)
	if err != nil {
		return nil, err
	}
	compliance, err := s.analytics.AverageComplianceScoreBetween(start, end)
	if err != nil {
		return nil, err
	}
	satisfaction, err := s.analytics.AverageSatisfactionBetween(start, end)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Analytics{
		InspectionDate:            start,
		TotalInspections:          int(total),
		PassRate:                  passRate,
		AverageInspectionDuration: duration,
		SafetyScore:               safety,
		ComplianceScore:           compliance,
		CustomerSatisfactionScore: satisfaction,
		ReportStatus:              "GENERATED",
		ReportGeneratedAt:         &now,
		ReportID:                  uuid.New().String(),
	}, nil
}

// CustomReport computes only the requested metrics over the window. Keys
// match case-insensitively; unrecognized keys are ignored.
func (s *AnalyticsService) CustomReport(start, end time.Time, metrics []string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, metric := range metrics {
		key := strings.ToUpper(metric)
		switch key {
		case "TOTAL_INSPECTIONS":
			count, err := s.analytics.CountBetween(start, end)
			if err != nil {
				return nil, err
			}
			out[key] = float64(count)
		case "PASS_RATE":
			rate, err := s.PassRate(start, end)
			if err != nil {
				return nil, err
			}
			out[key] = rate
		case "AVERAGE_DURATION":
			duration, err := s.analytics.AverageDurationBetween(start, end)
			if err != nil {
				return nil, err
			}
			out[key] = duration
		case "SAFETY_SCORE":
			score, err := s.analytics.AverageSafetyScoreBetween(start, end)
			if err != nil {
				return nil, err
			}
			out[key] = score
		case "COMPLIANCE_SCORE":
			score, err := s.analytics.AverageComplianceScoreBetween(start, end)
			if err != nil {
				return nil, err
			}
			out[key] = score
		case "CUSTOMER_SATISFACTION":
			score, err := s.analytics.AverageSatisfactionBetween(start, end)
			if err != nil {
				return nil, err
			}
			out[key] = score
		}
	}
	return out, nil
}

// DashboardMetrics bundles the trailing-30-day operational metrics.
func (s *AnalyticsService) DashboardMetrics() (*DashboardStats, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	total, err := s.analytics.CountBetween(start, end)
	if err != nil {
		return nil, err
	}
	passRate, err := s.PassRate(start, end)
	if err != nil {
		return nil, err
	}
	duration, err := s.analytics.AverageDurationBetween(start, end)
	if err != nil {
		return nil, err
	}
	safety, err := s.analytics.AverageSafetyScoreBetween(start, end)
	if err != nil {
		return nil, err
	}
	compliance, err := s.analytics.AverageComplianceScoreBetween(start, end)
	if err != nil {
		return nil, err
	}
	satisfaction, err := s.analytics.AverageSatisfactionBetween(start, end)
	if err != nil {
		return nil, err
	}
	issues, err := s.analytics.TopCriticalIssuesBetween(start, end)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalInspections:     total,
		PassRate:             passRate,
		AverageDuration:      duration,
		SafetyScore:          safety,
		ComplianceScore:      compliance,
		CustomerSatisfaction: satisfaction,
		CriticalIssues:       issues,
	}, nil
}

// InspectionTrendData returns per-day inspection counts over [start, end].
// Both bounds are widened to whole calendar days, so a record anywhere in
// end's day counts toward the final point.
func (s *AnalyticsService) InspectionTrendData(start, end time.Time) ([]TrendPoint, error) {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	records, err := s.analytics.ListByDateRange(first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for i := range records {
		counts[records[i].InspectionDate.Format("2006-01-02")]++
	}
	var points []TrendPoint
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		points = append(points, TrendPoint{Date: key, Count: counts[key]})
	}
	return points, nil
}

func (s *AnalyticsService) assembleAll(records []AnalyticsRecord) ([]Analytics, error) {
	out := make([]Analytics, 0, len(records))
	for i := range records {
		a, err := s.toAnalytics(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

// toAnalytics assembles the API shape. The derived aggregates cover the day
// following the record's inspection date.
func (s *AnalyticsService) toAnalytics(record *AnalyticsRecord) (*Analytics, error) {
	start := record.InspectionDate
	end := start.AddDate(0, 0, 1)
	total, err := s.analytics.CountBetween(start, end)
	if err != nil {
		return nil, err
	}
	passRate, err := s.PassRate(start, end)
	if err != nil {
		return nil, err
	}
	safety, err := s.analytics.AverageSafetyScoreBetween(start, end)
	if err != nil {
		return nil, err
	}
	compliance, err := s.analytics.AverageComplianceScoreBetween(start, end)
	if err != nil {
		return nil, err
	}
	duration, err := s.analytics.AverageDurationBetween(start, end)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		ID:                        record.ID,
		BookingID:                 record.BookingID,
		InspectionDate:            record.InspectionDate,
		InspectionDuration:        record.InspectionDuration,
		InspectionType:            record.InspectionType,
		VehicleCategory:           record.VehicleCategory,
		InspectionFindings:        record.InspectionFindings,
		Passed:                    record.Passed,
		DefectsFound:              record.DefectsFound,
		CriticalIssues:            record.CriticalIssues,
		InspectionScore:           record.InspectionScore,
		CustomerSatisfactionScore: record.CustomerSatisfactionScore,
		Recommendations:           record.Recommendations,
		ReportStatus:              record.ReportStatus,
		ReportGeneratedAt:         record.ReportGeneratedAt,
		ReportID:                  record.ReportID,
		TotalInspections:          int(total),
		PassRate:                  passRate,
		AverageInspectionDuration: duration,
		SafetyScore:               safety,
		ComplianceScore:           compliance,
	}, nil
}

package inspection

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AnalyticsStore provides CRUD and aggregate queries over analytics records.
// Range parameters follow the BETWEEN convention of the read paths they
// back: both endpoints inclusive.
type AnalyticsStore struct {
	db *gorm.DB
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(db *gorm.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// Create inserts a new analytics record.
func (s *AnalyticsStore) Create(record *AnalyticsRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create analytics record: %w", err)
	}
	return nil
}

// Save updates an existing analytics record.
func (s *AnalyticsStore) Save(record *AnalyticsRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save analytics record: %w", err)
	}
	return nil
}

// Get retrieves an analytics record by ID. Returns nil, nil if absent.
func (s *AnalyticsStore) Get(id string) (*AnalyticsRecord, error) {
	var record AnalyticsRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get analytics record: %w", err)
	}
	return &record, nil
}

// Delete removes an analytics record by ID. Absent IDs are not an error.
func (s *AnalyticsStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&AnalyticsRecord{}).Error; err != nil {
		return fmt.Errorf("delete analytics record: %w", err)
	}
	return nil
}

// ListByDateRange returns records with inspection date in [start, end].
func (s *AnalyticsStore) ListByDateRange(start, end time.Time) ([]AnalyticsRecord, error) {
	var records []AnalyticsRecord
	err := s.db.
		Where("inspection_date >= ? AND inspection_date <= ?", start, end).
		Order("inspection_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list analytics records by date range: %w", err)
	}
	return records, nil
}

// ListByPassed returns records filtered by pass/fail outcome.
func (s *AnalyticsStore) ListByPassed(passed bool) ([]AnalyticsRecord, error) {
	var records []AnalyticsRecord
	if err := s.db.Where("passed = ?", passed).Order("inspection_date ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list analytics records by outcome: %w", err)
	}
	return records, nil
}

// ListByInspectionType returns records for the given inspection type.
func (s *AnalyticsStore) ListByInspectionType(inspectionType string) ([]AnalyticsRecord, error) {
	var records []AnalyticsRecord
	if err := s.db.Where("inspection_type = ?", inspectionType).Order("inspection_date ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list analytics records by type: %w", err)
	}
	return records, nil
}

// ListByBooking returns records linked to the given booking.
func (s *AnalyticsStore) ListByBooking(bookingID string) ([]AnalyticsRecord, error) {
	var records []AnalyticsRecord
	if err := s.db.Where("booking_id = ?", bookingID).Order("inspection_date ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list analytics records by booking: %w", err)
	}
	return records, nil
}

// CountByPassedBetween counts records with the given outcome in [start, end].
func (s *AnalyticsStore) CountByPassedBetween(passed bool, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&AnalyticsRecord{}).
		Where("passed = ? AND inspection_date >= ? AND inspection_date <= ?", passed, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count analytics records by outcome: %w", err)
	}
	return count, nil
}

// CountBetween counts records in [start, end].
func (s *AnalyticsStore) CountBetween(start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&AnalyticsRecord{}).
		Where("inspection_date >= ? AND inspection_date <= ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count analytics records by date range: %w", err)
	}
	return count, nil
}

// averageBetween computes AVG(column) over [start, end], 0 when empty.
func (s *AnalyticsStore) averageBetween(column string, start, end time.Time) (float64, error) {
	var avg float64
	err := s.db.Model(&AnalyticsRecord{}).
		Select("COALESCE(AVG("+column+"), 0)").
		Where("inspection_date >= ? AND inspection_date <= ?", start, end).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average %s: %w", column, err)
	}
	return avg, nil
}

// AverageDurationBetween returns the mean inspection duration in [start, end].
func (s *AnalyticsStore) AverageDurationBetween(start, end time.Time) (float64, error) {
	return s.averageBetween("inspection_duration", start, end)
}

// AverageSafetyScoreBetween returns the mean safety score in [start, end].
func (s *AnalyticsStore) AverageSafetyScoreBetween(start, end time.Time) (float64, error) {
	return s.averageBetween("safety_score", start, end)
}

// AverageComplianceScoreBetween returns the mean compliance score in [start, end].
func (s *AnalyticsStore) AverageComplianceScoreBetween(start, end time.Time) (float64, error) {
	return s.averageBetween("compliance_score", start, end)
}

// AverageSatisfactionBetween returns the mean customer satisfaction score
// in [start, end].
func (s *AnalyticsStore) AverageSatisfactionBetween(start, end time.Time) (float64, error) {
	return s.averageBetween("customer_satisfaction_score", start, end)
}

// CountByVehicleCategoryBetween returns per-category inspection counts in
// [start, end]. Records with an empty category are grouped under "".
func (s *AnalyticsStore) CountByVehicleCategoryBetween(start, end time.Time) (map[string]int64, error) {
	type row struct {
		VehicleCategory string
		Total           int64
	}
	var rows []row
	err := s.db.Model(&AnalyticsRecord{}).
		Select("vehicle_category, COUNT(*) AS total").
		Where("inspection_date >= ? AND inspection_date <= ?", start, end).
		Group("vehicle_category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count analytics records by vehicle category: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.VehicleCategory] = r.Total
	}
	return out, nil
}

// topGroupedBetween returns the most frequent non-empty values of column in
// [start, end], ordered by descending frequency.
func (s *AnalyticsStore) topGroupedBetween(column string, start, end time.Time, limit int) ([]string, error) {
	type row struct {
		Value string
		Total int64
	}
	var rows []row
	q := s.db.Model(&AnalyticsRecord{}).
		Select(column+" AS value, COUNT(*) AS total").
		Where(column+" <> '' AND inspection_date >= ? AND inspection_date <= ?", start, end).
		Group(column).
		Order("total DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("top %s: %w", column, err)
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out, nil
}

// TopFindingsBetween returns the most frequent inspection findings in
// [start, end], limited to limit entries.
func (s *AnalyticsStore) TopFindingsBetween(start, end time.Time, limit int) ([]string, error) {
	return s.topGroupedBetween("inspection_findings", start, end, limit)
}

// TopCriticalIssuesBetween returns critical issues by descending frequency
// in [start, end].
func (s *AnalyticsStore) TopCriticalIssuesBetween(start, end time.Time) ([]string, error) {
	return s.topGroupedBetween("critical_issues", start, end, 0)
}

// AverageScoreByOfficer returns the mean inspection score over records
// whose booking is assigned to the officer, 0 when there are none.
func (s *AnalyticsStore) AverageScoreByOfficer(officerID string) (float64, error) {
	var avg float64
	err := s.db.Model(&AnalyticsRecord{}).
		Select("COALESCE(AVG(analytics_records.inspection_score), 0)").
		Joins("JOIN inspection_bookings ON inspection_bookings.id = analytics_records.booking_id").
		Where("inspection_bookings.officer_id = ?", officerID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average inspection score by officer: %w", err)
	}
	return avg, nil
}

// AverageDurationByOfficer returns the mean inspection duration over records
// whose booking is assigned to the officer, 0 when there are none.
func (s *AnalyticsStore) AverageDurationByOfficer(officerID string) (float64, error) {
	var avg float64
	err := s.db.Model(&AnalyticsRecord{}).
		Select("COALESCE(AVG(analytics_records.inspection_duration), 0)").
		Joins("JOIN inspection_bookings ON inspection_bookings.id = analytics_records.booking_id").
		Where("inspection_bookings.officer_id = ?", officerID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average inspection duration by officer: %w", err)
	}
	return avg, nil
}

// CountByOfficerAndPassed counts an officer's records with the given outcome.
func (s *AnalyticsStore) CountByOfficerAndPassed(officerID string, passed bool) (int64, error) {
	var count int64
	err := s.db.Model(&AnalyticsRecord{}).
		Joins("JOIN inspection_bookings ON inspection_bookings.id = analytics_records.booking_id").
		Where("inspection_bookings.officer_id = ? AND analytics_records.passed = ?", officerID, passed).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count analytics records by officer and outcome: %w", err)
	}
	return count, nil
}

// CountByOfficer counts records whose booking is assigned to the officer.
func (s *AnalyticsStore) CountByOfficer(officerID string) (int64, error) {
	var count int64
	err := s.db.Model(&AnalyticsRecord{}).
		Joins("JOIN inspection_bookings ON inspection_bookings.id = analytics_records.booking_id").
		Where("inspection_bookings.officer_id = ?", officerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count analytics records by officer: %w", err)
	}
	return count, nil
}

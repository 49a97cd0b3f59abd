package inspection

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BookingStore provides CRUD and range queries for inspection bookings.
type BookingStore struct {
	db *gorm.DB
}

// NewBookingStore creates a new BookingStore.
func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// Create inserts a new booking record.
func (s *BookingStore) Create(record *InspectionBookingRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// Save updates an existing booking record.
func (s *BookingStore) Save(record *InspectionBookingRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

// Get retrieves a booking record by ID. Returns nil, nil if no record exists.
func (s *BookingStore) Get(id string) (*InspectionBookingRecord, error) {
	var record InspectionBookingRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &record, nil
}

// Delete removes a booking record by ID. Deleting an absent ID is not an error.
func (s *BookingStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&InspectionBookingRecord{}).Error; err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// ListByOwner returns bookings for a vehicle owner.
func (s *BookingStore) ListByOwner(ownerID string) ([]InspectionBookingRecord, error) {
	var records []InspectionBookingRecord
	if err := s.db.Where("owner_id = ?", ownerID).Order("scheduled_date_time ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list bookings by owner: %w", err)
	}
	return records, nil
}

// ListByOfficer returns bookings assigned to an officer.
func (s *BookingStore) ListByOfficer(officerID string) ([]InspectionBookingRecord, error) {
	var records []InspectionBookingRecord
	if err := s.db.Where("officer_id = ?", officerID).Order("scheduled_date_time ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list bookings by officer: %w", err)
	}
	return records, nil
}

// ListByStatus returns bookings in the given status.
func (s *BookingStore) ListByStatus(status BookingStatus) ([]InspectionBookingRecord, error) {
	var records []InspectionBookingRecord
	if err := s.db.Where("status = ?", string(status)).Order("scheduled_date_time ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list bookings by status: %w", err)
	}
	return records, nil
}

// ListByScheduledBetween returns bookings scheduled within [start, end],
// both endpoints inclusive.
func (s *BookingStore) ListByScheduledBetween(start, end time.Time) ([]InspectionBookingRecord, error) {
	var records []InspectionBookingRecord
	err := s.db.
		Where("scheduled_date_time >= ? AND scheduled_date_time <= ?", start, end).
		Order("scheduled_date_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings by date range: %w", err)
	}
	return records, nil
}

// ListByOfficerAndScheduledBetween returns an officer's bookings scheduled
// within [start, end], both endpoints inclusive. This backs the overlap
// window check, so the closed-interval semantics matter.
func (s *BookingStore) ListByOfficerAndScheduledBetween(officerID string, start, end time.Time) ([]InspectionBookingRecord, error) {
	var records []InspectionBookingRecord
	err := s.db.
		Where("officer_id = ? AND scheduled_date_time >= ? AND scheduled_date_time <= ?", officerID, start, end).
		Order("scheduled_date_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings by officer and date range: %w", err)
	}
	return records, nil
}

// ListByOwnerAndStatus returns an owner's bookings in the given status.
func (s *BookingStore) ListByOwnerAndStatus(ownerID string, status BookingStatus) ([]InspectionBookingRecord, error) {
	var records []InspectionBookingRecord
	err := s.db.
		Where("owner_id = ? AND status = ?", ownerID, string(status)).
		Order("scheduled_date_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings by owner and status: %w", err)
	}
	return records, nil
}

// CountByOfficer returns the number of bookings assigned to an officer.
func (s *BookingStore) CountByOfficer(officerID string) (int64, error) {
	var count int64
	err := s.db.Model(&InspectionBookingRecord{}).Where("officer_id = ?", officerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings by officer: %w", err)
	}
	return count, nil
}

// CountByOfficerAndStatus returns the number of an officer's bookings in
// the given status.
func (s *BookingStore) CountByOfficerAndStatus(officerID string, status BookingStatus) (int64, error) {
	var count int64
	err := s.db.Model(&InspectionBookingRecord{}).
		Where("officer_id = ? AND status = ?", officerID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings by officer and status: %w", err)
	}
	return count, nil
}

// CountByStatusAndScheduledBetween returns the number of bookings in the
// given status scheduled within [start, end], both endpoints inclusive.
func (s *BookingStore) CountByStatusAndScheduledBetween(status BookingStatus, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&InspectionBookingRecord{}).
		Where("status = ? AND scheduled_date_time >= ? AND scheduled_date_time <= ?", string(status), start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings by status and date range: %w", err)
	}
	return count, nil
}

// CountByOfficerAndScheduledBetween returns the number of an officer's
// bookings scheduled within [start, end], both endpoints inclusive.
func (s *BookingStore) CountByOfficerAndScheduledBetween(officerID string, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&InspectionBookingRecord{}).
		Where("officer_id = ? AND scheduled_date_time >= ? AND scheduled_date_time <= ?", officerID, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings by officer and date range: %w", err)
	}
	return count, nil
}

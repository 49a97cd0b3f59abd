package inspection

import (
	"fmt"

	"gorm.io/gorm"
)

// OfficerStore provides CRUD and filter queries for inspection officers.
type OfficerStore struct {
	db *gorm.DB
}

// NewOfficerStore creates a new OfficerStore.
func NewOfficerStore(db *gorm.DB) *OfficerStore {
	return &OfficerStore{db: db}
}

// Create inserts a new officer record.
func (s *OfficerStore) Create(record *InspectionOfficerRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create inspection officer: %w", err)
	}
	return nil
}

// Save updates an existing officer record.
func (s *OfficerStore) Save(record *InspectionOfficerRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save inspection officer: %w", err)
	}
	return nil
}

// Get retrieves an officer record by ID. Returns nil, nil if no record exists.
func (s *OfficerStore) Get(id string) (*InspectionOfficerRecord, error) {
	var record InspectionOfficerRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection officer: %w", err)
	}
	return &record, nil
}

// GetByBadgeNumber retrieves an officer record by badge number.
// Returns nil, nil if no record exists.
func (s *OfficerStore) GetByBadgeNumber(badge string) (*InspectionOfficerRecord, error) {
	var record InspectionOfficerRecord
	err := s.db.Where("badge_number = ?", badge).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection officer by badge number: %w", err)
	}
	return &record, nil
}

// List returns all officer records.
func (s *OfficerStore) List() ([]InspectionOfficerRecord, error) {
	var records []InspectionOfficerRecord
	if err := s.db.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list inspection officers: %w", err)
	}
	return records, nil
}

// ListByDepartment returns officers in the given department.
func (s *OfficerStore) ListByDepartment(department string) ([]InspectionOfficerRecord, error) {
	var records []InspectionOfficerRecord
	if err := s.db.Where("department = ?", department).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list inspection officers by department: %w", err)
	}
	return records, nil
}

// ListAvailable returns officers with their availability flag set.
func (s *OfficerStore) ListAvailable() ([]InspectionOfficerRecord, error) {
	var records []InspectionOfficerRecord
	if err := s.db.Where("available = ?", true).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list available inspection officers: %w", err)
	}
	return records, nil
}

// ListBySpecialization returns officers with the given specialization.
func (s *OfficerStore) ListBySpecialization(specialization string) ([]InspectionOfficerRecord, error) {
	var records []InspectionOfficerRecord
	if err := s.db.Where("specialization = ?", specialization).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list inspection officers by specialization: %w", err)
	}
	return records, nil
}

// ListByMinExperience returns officers with at least minYears of experience.
func (s *OfficerStore) ListByMinExperience(minYears int) ([]InspectionOfficerRecord, error) {
	var records []InspectionOfficerRecord
	if err := s.db.Where("years_of_experience >= ?", minYears).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list inspection officers by experience: %w", err)
	}
	return records, nil
}

// Delete removes an officer record by ID. Deleting an absent ID is not an error.
func (s *OfficerStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&InspectionOfficerRecord{}).Error; err != nil {
		return fmt.Errorf("delete inspection officer: %w", err)
	}
	return nil
}

// ExistsByBadgeNumber reports whether an officer with the badge exists.
func (s *OfficerStore) ExistsByBadgeNumber(badge string) (bool, error) {
	var count int64
	err := s.db.Model(&InspectionOfficerRecord{}).Where("badge_number = ?", badge).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count inspection officers by badge number: %w", err)
	}
	return count > 0, nil
}

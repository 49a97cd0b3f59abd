package inspection

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CarStore provides CRUD and filter queries for car records.
type CarStore struct {
	db *gorm.DB
}

// NewCarStore creates a new CarStore.
func NewCarStore(db *gorm.DB) *CarStore {
	return &CarStore{db: db}
}

// Create inserts a new car record.
func (s *CarStore) Create(record *CarRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create car: %w", err)
	}
	return nil
}

// Save updates an existing car record.
func (s *CarStore) Save(record *CarRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save car: %w", err)
	}
	return nil
}

// Get retrieves a car record by ID. Returns nil, nil if no record exists.
func (s *CarStore) Get(id string) (*CarRecord, error) {
	var record CarRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get car: %w", err)
	}
	return &record, nil
}

// GetByLicensePlate retrieves a car record by license plate.
// Returns nil, nil if no record exists.
func (s *CarStore) GetByLicensePlate(plate string) (*CarRecord, error) {
	var record CarRecord
	err := s.db.Where("license_plate = ?", plate).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get car by license plate: %w", err)
	}
	return &record, nil
}

// List returns all car records.
func (s *CarStore) List() ([]CarRecord, error) {
	var records []CarRecord
	if err := s.db.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return records, nil
}

// ListByOwner returns all cars belonging to an owner.
func (s *CarStore) ListByOwner(ownerID string) ([]CarRecord, error) {
	var records []CarRecord
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list cars by owner: %w", err)
	}
	return records, nil
}

// Delete removes a car record by ID. Deleting an absent ID is not an error.
func (s *CarStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&CarRecord{}).Error; err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}

// DeleteByOwner removes all cars belonging to an owner. This is the
// owner→car cascade applied at the service layer.
func (s *CarStore) DeleteByOwner(ownerID string) error {
	if err := s.db.Where("owner_id = ?", ownerID).Delete(&CarRecord{}).Error; err != nil {
		return fmt.Errorf("delete cars by owner: %w", err)
	}
	return nil
}

// ExistsByLicensePlate reports whether a car with the given plate exists.
func (s *CarStore) ExistsByLicensePlate(plate string) (bool, error) {
	var count int64
	err := s.db.Model(&CarRecord{}).Where("license_plate = ?", plate).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count cars by license plate: %w", err)
	}
	return count > 0, nil
}

// ListInspectionDueBefore returns cars whose last inspection is null or
// strictly before the cutoff date.
func (s *CarStore) ListInspectionDueBefore(cutoff time.Time) ([]CarRecord, error) {
	var records []CarRecord
	err := s.db.
		Where("last_inspection_date IS NULL OR last_inspection_date < ?", cutoff).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list cars needing inspection: %w", err)
	}
	return records, nil
}

// ListInsuranceExpiredBefore returns cars whose insurance expired strictly
// before the cutoff date. Cars with no expiry date on file are excluded.
func (s *CarStore) ListInsuranceExpiredBefore(cutoff time.Time) ([]CarRecord, error) {
	var records []CarRecord
	err := s.db.
		Where("insurance_expiry_date IS NOT NULL AND insurance_expiry_date < ?", cutoff).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list cars with expired insurance: %w", err)
	}
	return records, nil
}

// ListByMakeAndModel returns cars matching make and model, case-insensitively.
func (s *CarStore) ListByMakeAndModel(make, model string) ([]CarRecord, error) {
	var records []CarRecord
	err := s.db.
		Where("LOWER(make) = LOWER(?) AND LOWER(model) = LOWER(?)", make, model).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list cars by make and model: %w", err)
	}
	return records, nil
}

// ListByYear returns cars from the given model year.
func (s *CarStore) ListByYear(year int) ([]CarRecord, error) {
	var records []CarRecord
	if err := s.db.Where("year = ?", year).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list cars by year: %w", err)
	}
	return records, nil
}

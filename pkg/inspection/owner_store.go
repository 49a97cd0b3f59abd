package inspection

import (
	"fmt"

	"gorm.io/gorm"
)

// OwnerStore provides CRUD operations for vehicle owner records.
type OwnerStore struct {
	db *gorm.DB
}

// NewOwnerStore creates a new OwnerStore.
func NewOwnerStore(db *gorm.DB) *OwnerStore {
	return &OwnerStore{db: db}
}

// Create inserts a new owner record.
func (s *OwnerStore) Create(record *VehicleOwnerRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create vehicle owner: %w", err)
	}
	return nil
}

// Save updates an existing owner record.
func (s *OwnerStore) Save(record *VehicleOwnerRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save vehicle owner: %w", err)
	}
	return nil
}

// Get retrieves an owner record by ID. Returns nil, nil if no record exists.
func (s *OwnerStore) Get(id string) (*VehicleOwnerRecord, error) {
	var record VehicleOwnerRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle owner: %w", err)
	}
	return &record, nil
}

// GetByDriverLicense retrieves an owner record by driver license.
// Returns nil, nil if no record exists.
func (s *OwnerStore) GetByDriverLicense(driverLicense string) (*VehicleOwnerRecord, error) {
	var record VehicleOwnerRecord
	err := s.db.Where("driver_license = ?", driverLicense).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle owner by driver license: %w", err)
	}
	return &record, nil
}

// GetByEmail retrieves an owner record by email. Returns nil, nil if no
// record exists; when several owners share an email the oldest wins.
func (s *OwnerStore) GetByEmail(email string) (*VehicleOwnerRecord, error) {
	var record VehicleOwnerRecord
	err := s.db.Where("email = ?", email).Order("created_at ASC").First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle owner by email: %w", err)
	}
	return &record, nil
}

// List returns all owner records ordered by creation time.
func (s *OwnerStore) List() ([]VehicleOwnerRecord, error) {
	var records []VehicleOwnerRecord
	if err := s.db.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list vehicle owners: %w", err)
	}
	return records, nil
}

// Delete removes an owner record by ID. Deleting an absent ID is not an error.
func (s *OwnerStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&VehicleOwnerRecord{}).Error; err != nil {
		return fmt.Errorf("delete vehicle owner: %w", err)
	}
	return nil
}

// ExistsByDriverLicense reports whether an owner with the given driver
// license exists.
func (s *OwnerStore) ExistsByDriverLicense(driverLicense string) (bool, error) {
	var count int64
	err := s.db.Model(&VehicleOwnerRecord{}).Where("driver_license = ?", driverLicense).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count vehicle owners by driver license: %w", err)
	}
	return count > 0, nil
}

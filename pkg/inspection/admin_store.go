package inspection

import (
	"fmt"

	"gorm.io/gorm"
)

// AdminStore provides CRUD and filter queries for administrators.
type AdminStore struct {
	db *gorm.DB
}

// NewAdminStore creates a new AdminStore.
func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// Create inserts a new admin record.
func (s *AdminStore) Create(record *AdminRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// Save updates an existing admin record.
func (s *AdminStore) Save(record *AdminRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	return nil
}

// Get retrieves an admin record by ID. Returns nil, nil if no record exists.
func (s *AdminStore) Get(id string) (*AdminRecord, error) {
	var record AdminRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &record, nil
}

// GetByUsername retrieves an admin record by username.
// Returns nil, nil if no record exists.
func (s *AdminStore) GetByUsername(username string) (*AdminRecord, error) {
	var record AdminRecord
	err := s.db.Where("username = ?", username).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &record, nil
}

// GetByEmail retrieves an admin record by email.
// Returns nil, nil if no record exists.
func (s *AdminStore) GetByEmail(email string) (*AdminRecord, error) {
	var record AdminRecord
	err := s.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &record, nil
}

// List returns all admin records.
func (s *AdminStore) List() ([]AdminRecord, error) {
	var records []AdminRecord
	if err := s.db.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return records, nil
}

// ListByDepartment returns admins in the given department.
func (s *AdminStore) ListByDepartment(department string) ([]AdminRecord, error) {
	var records []AdminRecord
	if err := s.db.Where("department = ?", department).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list admins by department: %w", err)
	}
	return records, nil
}

// ListByRole returns admins with the given role.
func (s *AdminStore) ListByRole(role string) ([]AdminRecord, error) {
	var records []AdminRecord
	if err := s.db.Where("role = ?", role).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list admins by role: %w", err)
	}
	return records, nil
}

// ListByPermission returns admins with the given permission column set.
// column must be one of the four permission column names.
func (s *AdminStore) ListByPermission(column string) ([]AdminRecord, error) {
	switch column {
	case "can_manage_clients", "can_manage_officers", "can_view_analytics", "can_manage_system":
	default:
		return nil, fmt.Errorf("unknown permission column: %s", column)
	}
	var records []AdminRecord
	if err := s.db.Where(column+" = ?", true).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list admins by permission: %w", err)
	}
	return records, nil
}

// Delete removes an admin record by ID. Deleting an absent ID is not an error.
func (s *AdminStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&AdminRecord{}).Error; err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

// ExistsByUsername reports whether an admin with the username exists.
func (s *AdminStore) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := s.db.Model(&AdminRecord{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count admins by username: %w", err)
	}
	return count > 0, nil
}

// ExistsByEmail reports whether an admin with the email exists.
func (s *AdminStore) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := s.db.Model(&AdminRecord{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count admins by email: %w", err)
	}
	return count > 0, nil
}

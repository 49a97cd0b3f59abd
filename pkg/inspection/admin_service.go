package inspection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// Session tracking and per-admin workload are not wired to a real
	// source; these values fill the derived fields.
	defaultSessionCount    = 1
	defaultManagedClients  = 100
	defaultManagedOfficers = 20
	defaultLastAction      = "SYSTEM_CHECK"
)

// AdminService implements administrator operations on top of the store.
type AdminService struct {
	admins *AdminStore
	logger *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(admins *AdminStore, logger *slog.Logger) *AdminService {
	return &AdminService{admins: admins, logger: logger}
}

// Create registers a new admin. Username and email must both be unique.
func (s *AdminService) Create(admin *Admin) (*Admin, error) {
	exists, err := s.admins.ExistsByUsername(admin.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Field: "username", Value: admin.Username}
	}
	exists, err = s.admins.ExistsByEmail(admin.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Field: "email", Value: admin.Email}
	}

	record := &AdminRecord{
		ID:                uuid.New().String(),
		Username:          admin.Username,
		FirstName:         admin.FirstName,
		LastName:          admin.LastName,
		Email:             admin.Email,
		Role:              admin.Role,
		Department:        admin.Department,
		ContactNumber:     admin.ContactNumber,
		CanManageClients:  admin.CanManageClients,
		CanManageOfficers: admin.CanManageOfficers,
		CanViewAnalytics:  admin.CanViewAnalytics,
		CanManageSystem:   admin.CanManageSystem,
	}
	if err := s.admins.Create(record); err != nil {
		return nil, err
	}
	s.logger.Info("admin created", "id", record.ID, "username", record.Username)
	return toAdmin(record), nil
}

// Update modifies an existing admin. Username and email are re-checked for
// uniqueness only when they change. LastLogin is not writable here.
func (s *AdminService) Update(id string, admin *Admin) (*Admin, error) {
	record, err := s.admins.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrAdminNotFound)
	}

	if admin.Username != "" && admin.Username != record.Username {
		exists, err := s.admins.ExistsByUsername(admin.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Field: "username", Value: admin.Username}
		}
		record.Username = admin.Username
	}
	if admin.Email != "" && admin.Email != record.Email {
		exists, err := s.admins.ExistsByEmail(admin.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Field: "email", Value: admin.Email}
		}
		record.Email = admin.Email
	}
	if admin.FirstName != "" {
		record.FirstName = admin.FirstName
	}
	if admin.LastName != "" {
		record.LastName = admin.LastName
	}
	if admin.Role != "" {
		record.Role = admin.Role
	}
	if admin.Department != "" {
		record.Department = admin.Department
	}
	if admin.ContactNumber != "" {
		record.ContactNumber = admin.ContactNumber
	}

	if err := s.admins.Save(record); err != nil {
		return nil, err
	}
	return toAdmin(record), nil
}

// Get returns an admin by ID.
func (s *AdminService) Get(id string) (*Admin, error) {
	record, err := s.admins.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrAdminNotFound)
	}
	return toAdmin(record), nil
}

// GetByUsername returns an admin by username.
func (s *AdminService) GetByUsername(username string) (*Admin, error) {
	record, err := s.admins.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", username, ErrAdminNotFound)
	}
	return toAdmin(record), nil
}

// GetByEmail returns an admin by email.
func (s *AdminService) GetByEmail(email string) (*Admin, error) {
	record, err := s.admins.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", email, ErrAdminNotFound)
	}
	return toAdmin(record), nil
}

// List returns all admins.
func (s *AdminService) List() ([]Admin, error) {
	records, err := s.admins.List()
	if err != nil {
		return nil, err
	}
	return assembleAdmins(records), nil
}

// ListByDepartment returns admins in the department.
func (s *AdminService) ListByDepartment(department string) ([]Admin, error) {
	records, err := s.admins.ListByDepartment(department)
	if err != nil {
		return nil, err
	}
	return assembleAdmins(records), nil
}

// ListByRole returns admins with the role.
func (s *AdminService) ListByRole(role string) ([]Admin, error) {
	records, err := s.admins.ListByRole(role)
	if err != nil {
		return nil, err
	}
	return assembleAdmins(records), nil
}

// Delete removes an admin.
func (s *AdminService) Delete(id string) error {
	record, err := s.admins.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrAdminNotFound)
	}
	return s.admins.Delete(id)
}

// ListWithClientManagement returns admins allowed to manage clients.
func (s *AdminService) ListWithClientManagement() ([]Admin, error) {
	records, err := s.admins.ListByPermission("can_manage_clients")
	if err != nil {
		return nil, err
	}
	return assembleAdmins(records), nil
}

// ListWithOfficerManagement returns admins allowed to manage officers.
func (s *AdminService) ListWithOfficerManagement() ([]Admin, error) {
	records, err := s.admins.ListByPermission("can_manage_officers")
	if err != nil {
		return nil, err
	}
	return assembleAdmins(records), nil
}

// ListWithAnalyticsAccess returns admins allowed to view analytics.
func (s *AdminService) ListWithAnalyticsAccess() ([]Admin, error) {
	records, err := s.admins.ListByPermission("can_view_analytics")
	if err != nil {
		return nil, err
	}
	return assembleAdmins(records), nil
}

// UpdatePermissions replaces all four permission flags.
func (s *AdminService) UpdatePermissions(id string, manageClients, manageOfficers, viewAnalytics, manageSystem bool) (*Admin, error) {
	record, err := s.admins.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrAdminNotFound)
	}
	record.CanManageClients = manageClients
	record.CanManageOfficers = manageOfficers
	record.CanViewAnalytics = viewAnalytics
	record.CanManageSystem = manageSystem
	if err := s.admins.Save(record); err != nil {
		return nil, err
	}
	return toAdmin(record), nil
}

// ExistsByUsername reports whether an admin with the username exists.
func (s *AdminService) ExistsByUsername(username string) (bool, error) {
	return s.admins.ExistsByUsername(username)
}

// ExistsByEmail reports whether an admin with the email exists.
func (s *AdminService) ExistsByEmail(email string) (bool, error) {
	return s.admins.ExistsByEmail(email)
}

// UpdateLastLogin stamps the admin's last login time. An unknown username
// is a no-op.
func (s *AdminService) UpdateLastLogin(username string) error {
	record, err := s.admins.GetByUsername(username)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	now := time.Now()
	record.LastLogin = &now
	return s.admins.Save(record)
}

// ActiveSessionCount returns the admin's active session count.
func (s *AdminService) ActiveSessionCount(id string) (int, error) {
	record, err := s.admins.Get(id)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, fmt.Errorf("%s: %w", id, ErrAdminNotFound)
	}
	return defaultSessionCount, nil
}

// LastActionPerformed returns the admin's most recent recorded action.
func (s *AdminService) LastActionPerformed(id string) (string, error) {
	record, err := s.admins.Get(id)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", fmt.Errorf("%s: %w", id, ErrAdminNotFound)
	}
	return defaultLastAction, nil
}

func assembleAdmins(records []AdminRecord) []Admin {
	out := make([]Admin, 0, len(records))
	for i := range records {
		out = append(out, *toAdmin(&records[i]))
	}
	return out
}

// toAdmin assembles the API shape with session and workload fields.
func toAdmin(record *AdminRecord) *Admin {
	return &Admin{
		ID:                   record.ID,
		Username:             record.Username,
		FirstName:            record.FirstName,
		LastName:             record.LastName,
		Email:                record.Email,
		Role:                 record.Role,
		Department:           record.Department,
		ContactNumber:        record.ContactNumber,
		CanManageClients:     record.CanManageClients,
		CanManageOfficers:    record.CanManageOfficers,
		CanViewAnalytics:     record.CanViewAnalytics,
		CanManageSystem:      record.CanManageSystem,
		LastLogin:            record.LastLogin,
		ActiveSessionCount:   defaultSessionCount,
		LastActionPerformed:  defaultLastAction,
		ManagedClientsCount:  defaultManagedClients,
		ManagedOfficersCount: defaultManagedOfficers,
	}
}

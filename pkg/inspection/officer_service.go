package inspection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// defaultAverageRating is reported for every officer; per-inspection
// ratings are not tracked.
const defaultAverageRating = 4.5

// OfficerService implements inspection officer operations on top of the stores.
type OfficerService struct {
	officers *OfficerStore
	bookings *BookingStore
	logger   *slog.Logger
}

// NewOfficerService creates an officer service.
func NewOfficerService(officers *OfficerStore, bookings *BookingStore, logger *slog.Logger) *OfficerService {
	return &OfficerService{officers: officers, bookings: bookings, logger: logger}
}

// Create registers a new officer. The badge number must be unique.
func (s *OfficerService) Create(officer *InspectionOfficer) (*InspectionOfficer, error) {
	exists, err := s.officers.ExistsByBadgeNumber(officer.BadgeNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Field: "badgeNumber", Value: officer.BadgeNumber}
	}

	record := &InspectionOfficerRecord{
		ID:                uuid.New().String(),
		BadgeNumber:       officer.BadgeNumber,
		FirstName:         officer.FirstName,
		LastName:          officer.LastName,
		Department:        officer.Department,
		Specialization:    officer.Specialization,
		YearsOfExperience: officer.YearsOfExperience,
		Available:         officer.Available,
		InspectionMethods: officer.InspectionMethods,
	}
	if err := s.officers.Create(record); err != nil {
		return nil, err
	}
	s.logger.Info("inspection officer created", "id", record.ID, "badgeNumber", record.BadgeNumber)
	return s.toOfficer(record)
}

// Update modifies an existing officer. A changed badge number is re-checked
// for uniqueness.
func (s *OfficerService) Update(id string, officer *InspectionOfficer) (*InspectionOfficer, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}

	if officer.BadgeNumber != "" && officer.BadgeNumber != record.BadgeNumber {
		exists, err := s.officers.ExistsByBadgeNumber(officer.BadgeNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Field: "badgeNumber", Value: officer.BadgeNumber}
		}
		record.BadgeNumber = officer.BadgeNumber
	}
	if officer.FirstName != "" {
		record.FirstName = officer.FirstName
	}
	if officer.LastName != "" {
		record.LastName = officer.LastName
	}
	if officer.Department != "" {
		record.Department = officer.Department
	}
	if officer.Specialization != "" {
		record.Specialization = officer.Specialization
	}
	if officer.YearsOfExperience != 0 {
		record.YearsOfExperience = officer.YearsOfExperience
	}
	record.Available = officer.Available
	if officer.InspectionMethods != nil {
		record.InspectionMethods = officer.InspectionMethods
	}

	if err := s.officers.Save(record); err != nil {
		return nil, err
	}
	return s.toOfficer(record)
}

// Get returns an officer by ID.
func (s *OfficerService) Get(id string) (*InspectionOfficer, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	return s.toOfficer(record)
}

// GetByBadgeNumber returns an officer by badge number.
func (s *OfficerService) GetByBadgeNumber(badge string) (*InspectionOfficer, error) {
	record, err := s.officers.GetByBadgeNumber(badge)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", badge, ErrOfficerNotFound)
	}
	return s.toOfficer(record)
}

// List returns all officers.
func (s *OfficerService) List() ([]InspectionOfficer, error) {
	records, err := s.officers.List()
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByDepartment returns all officers in the department.
func (s *OfficerService) ListByDepartment(department string) ([]InspectionOfficer, error) {
	records, err := s.officers.ListByDepartment(department)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListAvailable returns officers flagged available.
func (s *OfficerService) ListAvailable() ([]InspectionOfficer, error) {
	records, err := s.officers.ListAvailable()
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListBySpecialization returns officers with the given specialization.
func (s *OfficerService) ListBySpecialization(specialization string) ([]InspectionOfficer, error) {
	records, err := s.officers.ListBySpecialization(specialization)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByMinExperience returns officers with at least minYears of experience.
func (s *OfficerService) ListByMinExperience(minYears int) ([]InspectionOfficer, error) {
	records, err := s.officers.ListByMinExperience(minYears)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// Delete removes an officer.
func (s *OfficerService) Delete(id string) error {
	record, err := s.officers.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	return s.officers.Delete(id)
}

// UpdateAvailability sets the officer's availability flag.
func (s *OfficerService) UpdateAvailability(id string, available bool) (*InspectionOfficer, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	record.Available = available
	if err := s.officers.Save(record); err != nil {
		return nil, err
	}
	return s.toOfficer(record)
}

// AddInspectionMethod adds a method to the officer's list. Adding a method
// the officer already has is a no-op.
func (s *OfficerService) AddInspectionMethod(id, method string) (*InspectionOfficer, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	for _, m := range record.InspectionMethods {
		if m == method {
			return s.toOfficer(record)
		}
	}
	record.InspectionMethods = append(record.InspectionMethods, method)
	if err := s.officers.Save(record); err != nil {
		return nil, err
	}
	return s.toOfficer(record)
}

// RemoveInspectionMethod removes a method from the officer's list.
func (s *OfficerService) RemoveInspectionMethod(id, method string) (*InspectionOfficer, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	methods := record.InspectionMethods[:0]
	for _, m := range record.InspectionMethods {
		if m != method {
			methods = append(methods, m)
		}
	}
	record.InspectionMethods = methods
	if err := s.officers.Save(record); err != nil {
		return nil, err
	}
	return s.toOfficer(record)
}

// OfficersAvailableForTimeSlot returns available officers with no booking
// scheduled inside [start, end], both endpoints inclusive.
func (s *OfficerService) OfficersAvailableForTimeSlot(start, end time.Time) ([]InspectionOfficer, error) {
	records, err := s.officers.ListAvailable()
	if err != nil {
		return nil, err
	}
	var out []InspectionOfficer
	for i := range records {
		count, err := s.bookings.CountByOfficerAndScheduledBetween(records[i].ID, start, end)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		officer, err := s.toOfficer(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *officer)
	}
	return out, nil
}

// CompletedInspectionsCount returns the number of completed bookings
// assigned to the officer.
func (s *OfficerService) CompletedInspectionsCount(id string) (int64, error) {
	return s.bookings.CountByOfficerAndStatus(id, StatusCompleted)
}

// AverageInspectionRating returns the officer's average rating.
func (s *OfficerService) AverageInspectionRating(id string) (float64, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	return defaultAverageRating, nil
}

// Certifications returns the officer's certifications, which mirror the
// inspection methods list.
func (s *OfficerService) Certifications(id string) ([]string, error) {
	record, err := s.officers.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOfficerNotFound)
	}
	return record.InspectionMethods, nil
}

func (s *OfficerService) assembleAll(records []InspectionOfficerRecord) ([]InspectionOfficer, error) {
	out := make([]InspectionOfficer, 0, len(records))
	for i := range records {
		officer, err := s.toOfficer(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *officer)
	}
	return out, nil
}

// toOfficer assembles the API shape with workload summary fields.
func (s *OfficerService) toOfficer(record *InspectionOfficerRecord) (*InspectionOfficer, error) {
	completed, err := s.bookings.CountByOfficerAndStatus(record.ID, StatusCompleted)
	if err != nil {
		return nil, err
	}
	queued, err := s.bookings.CountByOfficer(record.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.bookings.CountByOfficerAndScheduledBetween(record.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	return &InspectionOfficer{
		ID:                        record.ID,
		BadgeNumber:               record.BadgeNumber,
		FirstName:                 record.FirstName,
		LastName:                  record.LastName,
		Department:                record.Department,
		Specialization:            record.Specialization,
		YearsOfExperience:         record.YearsOfExperience,
		Available:                 record.Available,
		InspectionMethods:         record.InspectionMethods,
		TotalInspectionsCompleted: int(completed),
		AverageInspectionRating:   defaultAverageRating,
		CurrentQueueSize:          int(queued),
		InspectionsToday:          int(today),
		Certifications:            record.InspectionMethods,
	}, nil
}

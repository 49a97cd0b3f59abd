package inspection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// OwnerService implements vehicle owner operations on top of the stores.
type OwnerService struct {
	owners   *OwnerStore
	cars     *CarStore
	bookings *BookingStore
	logger   *slog.Logger
}

// NewOwnerService creates an owner service.
func NewOwnerService(owners *OwnerStore, cars *CarStore, bookings *BookingStore, logger *slog.Logger) *OwnerService {
	return &OwnerService{owners: owners, cars: cars, bookings: bookings, logger: logger}
}

// Create registers a new vehicle owner. The driver license must be unique.
func (s *OwnerService) Create(owner *VehicleOwner) (*VehicleOwner, error) {
	exists, err := s.owners.ExistsByDriverLicense(owner.DriverLicense)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Field: "driverLicense", Value: owner.DriverLicense}
	}

	record := &VehicleOwnerRecord{
		ID:            uuid.New().String(),
		DriverLicense: owner.DriverLicense,
		FirstName:     owner.FirstName,
		LastName:      owner.LastName,
		Email:         owner.Email,
		Phone:         owner.Phone,
	}
	if err := s.owners.Create(record); err != nil {
		return nil, err
	}
	s.logger.Info("vehicle owner created", "id", record.ID, "driverLicense", record.DriverLicense)
	return s.toVehicleOwner(record)
}

// Update modifies an existing owner. When the driver license changes the new
// value must not collide with another owner.
func (s *OwnerService) Update(id string, owner *VehicleOwner) (*VehicleOwner, error) {
	record, err := s.owners.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOwnerNotFound)
	}

	if owner.DriverLicense != "" && owner.DriverLicense != record.DriverLicense {
		exists, err := s.owners.ExistsByDriverLicense(owner.DriverLicense)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Field: "driverLicense", Value: owner.DriverLicense}
		}
		record.DriverLicense = owner.DriverLicense
	}
	if owner.FirstName != "" {
		record.FirstName = owner.FirstName
	}
	if owner.LastName != "" {
		record.LastName = owner.LastName
	}
	if owner.Email != "" {
		record.Email = owner.Email
	}
	if owner.Phone != "" {
		record.Phone = owner.Phone
	}

	if err := s.owners.Save(record); err != nil {
		return nil, err
	}
	return s.toVehicleOwner(record)
}

// Get returns an owner by ID.
func (s *OwnerService) Get(id string) (*VehicleOwner, error) {
	record, err := s.owners.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrOwnerNotFound)
	}
	return s.toVehicleOwner(record)
}

// GetByDriverLicense returns an owner by driver license.
func (s *OwnerService) GetByDriverLicense(driverLicense string) (*VehicleOwner, error) {
	record, err := s.owners.GetByDriverLicense(driverLicense)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", driverLicense, ErrOwnerNotFound)
	}
	return s.toVehicleOwner(record)
}

// GetByEmail returns the oldest owner registered with the given email.
func (s *OwnerService) GetByEmail(email string) (*VehicleOwner, error) {
	record, err := s.owners.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", email, ErrOwnerNotFound)
	}
	return s.toVehicleOwner(record)
}

// List returns all owners.
func (s *OwnerService) List() ([]VehicleOwner, error) {
	records, err := s.owners.List()
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// Delete removes an owner and all cars registered to it.
func (s *OwnerService) Delete(id string) error {
	record, err := s.owners.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrOwnerNotFound)
	}
	if err := s.cars.DeleteByOwner(id); err != nil {
		return err
	}
	if err := s.owners.Delete(id); err != nil {
		return err
	}
	s.logger.Info("vehicle owner deleted", "id", id)
	return nil
}

// ExistsByDriverLicense reports whether an owner with the license exists.
func (s *OwnerService) ExistsByDriverLicense(driverLicense string) (bool, error) {
	return s.owners.ExistsByDriverLicense(driverLicense)
}

// OwnersWithPendingInspections returns owners that have at least one car
// with an inspection due.
func (s *OwnerService) OwnersWithPendingInspections() ([]VehicleOwner, error) {
	records, err := s.owners.List()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var out []VehicleOwner
	for i := range records {
		cars, err := s.cars.ListByOwner(records[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range cars {
			if carInspectionDue(&cars[j], now) {
				owner, err := s.toVehicleOwner(&records[i])
				if err != nil {
					return nil, err
				}
				out = append(out, *owner)
				break
			}
		}
	}
	return out, nil
}

// AddVehicle registers an existing car to the owner.
func (s *OwnerService) AddVehicle(ownerID, carID string) (*VehicleOwner, error) {
	record, err := s.owners.Get(ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", ownerID, ErrOwnerNotFound)
	}
	car, err := s.cars.Get(carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, fmt.Errorf("%s: %w", carID, ErrCarNotFound)
	}
	car.OwnerID = ownerID
	if err := s.cars.Save(car); err != nil {
		return nil, err
	}
	return s.toVehicleOwner(record)
}

// RemoveVehicle deletes a car registered to the owner. A car owned by a
// different owner is treated as not found.
func (s *OwnerService) RemoveVehicle(ownerID, carID string) (*VehicleOwner, error) {
	record, err := s.owners.Get(ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", ownerID, ErrOwnerNotFound)
	}
	car, err := s.cars.Get(carID)
	if err != nil {
		return nil, err
	}
	if car == nil || car.OwnerID != ownerID {
		return nil, fmt.Errorf("%s: %w", carID, ErrCarNotFound)
	}
	if err := s.cars.Delete(carID); err != nil {
		return nil, err
	}
	return s.toVehicleOwner(record)
}

// VehicleCount returns the number of cars registered to the owner.
func (s *OwnerService) VehicleCount(ownerID string) (int, error) {
	cars, err := s.cars.ListByOwner(ownerID)
	if err != nil {
		return 0, err
	}
	return len(cars), nil
}

// PendingInspectionsCount returns the number of the owner's cars with an
// inspection due.
func (s *OwnerService) PendingInspectionsCount(ownerID string) (int, error) {
	cars, err := s.cars.ListByOwner(ownerID)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	count := 0
	for i := range cars {
		if carInspectionDue(&cars[i], now) {
			count++
		}
	}
	return count, nil
}

func (s *OwnerService) assembleAll(records []VehicleOwnerRecord) ([]VehicleOwner, error) {
	out := make([]VehicleOwner, 0, len(records))
	for i := range records {
		owner, err := s.toVehicleOwner(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *owner)
	}
	return out, nil
}

// toVehicleOwner assembles the API shape with vehicle and inspection
// summary fields.
func (s *OwnerService) toVehicleOwner(record *VehicleOwnerRecord) (*VehicleOwner, error) {
	cars, err := s.cars.ListByOwner(record.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	owner := &VehicleOwner{
		ID:            record.ID,
		DriverLicense: record.DriverLicense,
		FirstName:     record.FirstName,
		LastName:      record.LastName,
		Email:         record.Email,
		Phone:         record.Phone,
		VehicleIDs:    make([]string, 0, len(cars)),
		TotalVehicles: len(cars),
	}
	var latest *time.Time
	for i := range cars {
		owner.VehicleIDs = append(owner.VehicleIDs, cars[i].ID)
		if carInspectionDue(&cars[i], now) {
			owner.PendingInspections++
		}
		if d := cars[i].LastInspectionDate; d != nil {
			if latest == nil || d.After(*latest) {
				latest = d
			}
		}
	}
	if latest != nil {
		owner.LastInspectionDate = latest.Format("2006-01-02")
	}
	return owner, nil
}

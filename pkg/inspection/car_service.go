package inspection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// carInspectionDue reports whether the car's inspection is due: the car was
// never inspected, or its last inspection is more than a year old.
func carInspectionDue(record *CarRecord, now time.Time) bool {
	return record.LastInspectionDate == nil || record.LastInspectionDate.Before(now.AddDate(-1, 0, 0))
}

// carInsuranceValid reports whether the car's insurance expiry is strictly
// in the future.
func carInsuranceValid(record *CarRecord, now time.Time) bool {
	return record.InsuranceExpiryDate != nil && record.InsuranceExpiryDate.After(now)
}

// CarService implements car operations on top of the stores.
type CarService struct {
	cars   *CarStore
	owners *OwnerStore
	logger *slog.Logger
}

// NewCarService creates a car service.
func NewCarService(cars *CarStore, owners *OwnerStore, logger *slog.Logger) *CarService {
	return &CarService{cars: cars, owners: owners, logger: logger}
}

// Create registers a new car. The owner must exist and the license plate
// must be unique.
func (s *CarService) Create(car *Car) (*Car, error) {
	owner, err := s.owners.Get(car.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%s: %w", car.OwnerID, ErrOwnerNotFound)
	}
	exists, err := s.cars.ExistsByLicensePlate(car.LicensePlate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Field: "licensePlate", Value: car.LicensePlate}
	}

	record := &CarRecord{
		ID:                    uuid.New().String(),
		LicensePlate:          car.LicensePlate,
		Make:                  car.Make,
		Model:                 car.Model,
		Year:                  car.Year,
		InsuranceProvider:     car.InsuranceProvider,
		InsurancePolicyNumber: car.InsurancePolicyNumber,
		InsuranceExpiryDate:   car.InsuranceExpiryDate,
		OwnerID:               car.OwnerID,
		LastInspectionDate:    car.LastInspectionDate,
		LastInspectionStatus:  car.LastInspectionStatus,
	}
	if err := s.cars.Create(record); err != nil {
		return nil, err
	}
	s.logger.Info("car registered", "id", record.ID, "licensePlate", record.LicensePlate, "ownerId", record.OwnerID)
	return s.toCar(record)
}

// Update modifies an existing car. A changed plate is re-checked for
// uniqueness; a changed owner must exist.
func (s *CarService) Update(id string, car *Car) (*Car, error) {
	record, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}

	if car.LicensePlate != "" && car.LicensePlate != record.LicensePlate {
		exists, err := s.cars.ExistsByLicensePlate(car.LicensePlate)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Field: "licensePlate", Value: car.LicensePlate}
		}
		record.LicensePlate = car.LicensePlate
	}
	if car.OwnerID != "" && car.OwnerID != record.OwnerID {
		owner, err := s.owners.Get(car.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, fmt.Errorf("%s: %w", car.OwnerID, ErrOwnerNotFound)
		}
		record.OwnerID = car.OwnerID
	}
	if car.Make != "" {
		record.Make = car.Make
	}
	if car.Model != "" {
		record.Model = car.Model
	}
	if car.Year != 0 {
		record.Year = car.Year
	}
	if car.InsuranceProvider != "" {
		record.InsuranceProvider = car.InsuranceProvider
	}
	if car.InsurancePolicyNumber != "" {
		record.InsurancePolicyNumber = car.InsurancePolicyNumber
	}
	if car.InsuranceExpiryDate != nil {
		record.InsuranceExpiryDate = car.InsuranceExpiryDate
	}
	if car.LastInspectionDate != nil {
		record.LastInspectionDate = car.LastInspectionDate
	}
	if car.LastInspectionStatus != "" {
		record.LastInspectionStatus = car.LastInspectionStatus
	}

	if err := s.cars.Save(record); err != nil {
		return nil, err
	}
	return s.toCar(record)
}

// Get returns a car by ID.
func (s *CarService) Get(id string) (*Car, error) {
	record, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}
	return s.toCar(record)
}

// GetByLicensePlate returns a car by license plate.
func (s *CarService) GetByLicensePlate(plate string) (*Car, error) {
	record, err := s.cars.GetByLicensePlate(plate)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", plate, ErrCarNotFound)
	}
	return s.toCar(record)
}

// List returns all cars.
func (s *CarService) List() ([]Car, error) {
	records, err := s.cars.List()
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByOwner returns all cars registered to the owner.
func (s *CarService) ListByOwner(ownerID string) ([]Car, error) {
	records, err := s.cars.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// Delete removes a car.
func (s *CarService) Delete(id string) error {
	record, err := s.cars.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}
	return s.cars.Delete(id)
}

// ExistsByLicensePlate reports whether a car with the plate exists.
func (s *CarService) ExistsByLicensePlate(plate string) (bool, error) {
	return s.cars.ExistsByLicensePlate(plate)
}

// CarsNeedingInspection returns cars whose inspection is due.
func (s *CarService) CarsNeedingInspection() ([]Car, error) {
	records, err := s.cars.ListInspectionDueBefore(time.Now().AddDate(-1, 0, 0))
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// CarsWithExpiredInsurance returns cars whose insurance has expired.
func (s *CarService) CarsWithExpiredInsurance() ([]Car, error) {
	records, err := s.cars.ListInsuranceExpiredBefore(time.Now())
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// UpdateInspectionStatus records the outcome of an inspection and stamps
// the car's last inspection date.
func (s *CarService) UpdateInspectionStatus(id, status string) (*Car, error) {
	record, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}
	now := time.Now()
	record.LastInspectionDate = &now
	record.LastInspectionStatus = status
	if err := s.cars.Save(record); err != nil {
		return nil, err
	}
	return s.toCar(record)
}

// UpdateInsurance replaces the car's insurance details.
func (s *CarService) UpdateInsurance(id, provider, policyNumber string, expiry *time.Time) (*Car, error) {
	record, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}
	record.InsuranceProvider = provider
	record.InsurancePolicyNumber = policyNumber
	record.InsuranceExpiryDate = expiry
	if err := s.cars.Save(record); err != nil {
		return nil, err
	}
	return s.toCar(record)
}

// IsInspectionDue reports whether the car's inspection is due.
func (s *CarService) IsInspectionDue(id string) (bool, error) {
	record, err := s.cars.Get(id)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}
	return carInspectionDue(record, time.Now()), nil
}

// IsInsuranceValid reports whether the car's insurance is currently valid.
func (s *CarService) IsInsuranceValid(id string) (bool, error) {
	record, err := s.cars.Get(id)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, fmt.Errorf("%s: %w", id, ErrCarNotFound)
	}
	return carInsuranceValid(record, time.Now()), nil
}

// FindByMakeAndModel returns cars matching make and model, case-insensitive.
func (s *CarService) FindByMakeAndModel(make, model string) ([]Car, error) {
	records, err := s.cars.ListByMakeAndModel(make, model)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// FindByYear returns cars of the given model year.
func (s *CarService) FindByYear(year int) ([]Car, error) {
	records, err := s.cars.ListByYear(year)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

func (s *CarService) assembleAll(records []CarRecord) ([]Car, error) {
	out := make([]Car, 0, len(records))
	for i := range records {
		car, err := s.toCar(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *car)
	}
	return out, nil
}

// toCar assembles the API shape with owner and validity fields.
func (s *CarService) toCar(record *CarRecord) (*Car, error) {
	now := time.Now()
	car := &Car{
		ID:                    record.ID,
		LicensePlate:          record.LicensePlate,
		Make:                  record.Make,
		Model:                 record.Model,
		Year:                  record.Year,
		InsuranceProvider:     record.InsuranceProvider,
		InsurancePolicyNumber: record.InsurancePolicyNumber,
		InsuranceExpiryDate:   record.InsuranceExpiryDate,
		OwnerID:               record.OwnerID,
		LastInspectionDate:    record.LastInspectionDate,
		LastInspectionStatus:  record.LastInspectionStatus,
		InsuranceValid:        carInsuranceValid(record, now),
		InspectionDue:         carInspectionDue(record, now),
	}
	owner, err := s.owners.Get(record.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		car.OwnerName = owner.FirstName + " " + owner.LastName
	}
	return car, nil
}

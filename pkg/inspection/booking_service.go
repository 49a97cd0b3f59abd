package inspection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// estimatedDurationMinutes is the fixed appointment length reported
	// for every booking.
	estimatedDurationMinutes = 90

	// defaultAverageDurationHours is reported until durations are
	// aggregated from analytics.
	defaultAverageDurationHours = 1.5
)

// BookingService implements inspection booking operations on top of the
// stores. Status transitions are validated against the transition table but
// never rejected; a violating update is applied and logged.
type BookingService struct {
	bookings *BookingStore
	owners   *OwnerStore
	cars     *CarStore
	officers *OfficerStore
	machine  *StatusMachine
	logger   *slog.Logger
}

// NewBookingService creates a booking service.
func NewBookingService(bookings *BookingStore, owners *OwnerStore, cars *CarStore, officers *OfficerStore, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		owners:   owners,
		cars:     cars,
		officers: officers,
		machine:  NewStatusMachine(),
		logger:   logger,
	}
}

// Create books a new inspection. Owner and car must exist; an officer, when
// given, must exist and have the slot free. New bookings always start
// SCHEDULED.
func (s *BookingService) Create(booking *InspectionBooking) (*InspectionBooking, error) {
	owner, err := s.owners.Get(booking.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%s: %w", booking.OwnerID, ErrOwnerNotFound)
	}
	car, err := s.cars.Get(booking.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, fmt.Errorf("%s: %w", booking.CarID, ErrCarNotFound)
	}
	if booking.OfficerID != "" {
		officer, err := s.officers.Get(booking.OfficerID)
		if err != nil {
			return nil, err
		}
		if officer == nil {
			return nil, fmt.Errorf("%s: %w", booking.OfficerID, ErrOfficerNotFound)
		}
		free, err := s.IsTimeSlotAvailable(booking.OfficerID, booking.ScheduledDateTime)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, &SlotUnavailableError{OfficerID: booking.OfficerID, At: booking.ScheduledDateTime}
		}
	}

	record := &InspectionBookingRecord{
		ID:                uuid.New().String(),
		OwnerID:           booking.OwnerID,
		CarID:             booking.CarID,
		OfficerID:         booking.OfficerID,
		ScheduledDateTime: booking.ScheduledDateTime,
		Status:            string(StatusScheduled),
		InspectionType:    booking.InspectionType,
		Notes:             booking.Notes,
	}
	if err := s.bookings.Create(record); err != nil {
		return nil, err
	}
	s.logger.Info("booking created", "id", record.ID, "ownerId", record.OwnerID, "scheduledFor", record.ScheduledDateTime)
	return s.toBooking(record)
}

// Update modifies an existing booking. Changed owner, car, or officer IDs
// must resolve; status changes go through UpdateStatus.
func (s *BookingService) Update(id string, booking *InspectionBooking) (*InspectionBooking, error) {
	record, err := s.bookings.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}

	if booking.OwnerID != "" && booking.OwnerID != record.OwnerID {
		owner, err := s.owners.Get(booking.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, fmt.Errorf("%s: %w", booking.OwnerID, ErrOwnerNotFound)
		}
		record.OwnerID = booking.OwnerID
	}
	if booking.CarID != "" && booking.CarID != record.CarID {
		car, err := s.cars.Get(booking.CarID)
		if err != nil {
			return nil, err
		}
		if car == nil {
			return nil, fmt.Errorf("%s: %w", booking.CarID, ErrCarNotFound)
		}
		record.CarID = booking.CarID
	}
	if booking.OfficerID != "" && booking.OfficerID != record.OfficerID {
		officer, err := s.officers.Get(booking.OfficerID)
		if err != nil {
			return nil, err
		}
		if officer == nil {
			return nil, fmt.Errorf("%s: %w", booking.OfficerID, ErrOfficerNotFound)
		}
		record.OfficerID = booking.OfficerID
	}
	if !booking.ScheduledDateTime.IsZero() {
		record.ScheduledDateTime = booking.ScheduledDateTime
	}
	if booking.InspectionType != "" {
		record.InspectionType = booking.InspectionType
	}
	if booking.Notes != "" {
		record.Notes = booking.Notes
	}
	if booking.Result != "" {
		record.Result = booking.Result
	}
	if booking.Recommendations != "" {
		record.Recommendations = booking.Recommendations
	}

	if err := s.bookings.Save(record); err != nil {
		return nil, err
	}
	return s.toBooking(record)
}

// Get returns a booking by ID.
func (s *BookingService) Get(id string) (*InspectionBooking, error) {
	record, err := s.bookings.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}
	return s.toBooking(record)
}

// Delete removes a booking.
func (s *BookingService) Delete(id string) error {
	record, err := s.bookings.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}
	return s.bookings.Delete(id)
}

// AssignOfficer assigns an officer to the booking after checking the slot.
func (s *BookingService) AssignOfficer(id, officerID string) (*InspectionBooking, error) {
	record, err := s.bookings.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}
	officer, err := s.officers.Get(officerID)
	if err != nil {
		return nil, err
	}
	if officer == nil {
		return nil, fmt.Errorf("%s: %w", officerID, ErrOfficerNotFound)
	}
	free, err := s.IsTimeSlotAvailable(officerID, record.ScheduledDateTime)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, &SlotUnavailableError{OfficerID: officerID, At: record.ScheduledDateTime}
	}
	record.OfficerID = officerID
	if err := s.bookings.Save(record); err != nil {
		return nil, err
	}
	return s.toBooking(record)
}

// UpdateStatus sets the booking status. The change is applied even when the
// transition table disallows it; violations are logged. Reaching COMPLETED
// stamps the completion time.
func (s *BookingService) UpdateStatus(id string, status BookingStatus) (*InspectionBooking, error) {
	if !ValidBookingStatus(status) {
		return nil, fmt.Errorf("unknown booking status: %s", status)
	}
	record, err := s.bookings.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}

	from := BookingStatus(record.Status)
	if err := s.machine.ValidateTransition(from, status); err != nil {
		s.logger.Warn("booking status transition outside table", "id", id, "from", from, "to", status)
	}
	record.Status = string(status)
	if status == StatusCompleted && record.CompletedDateTime == nil {
		now := time.Now()
		record.CompletedDateTime = &now
	}
	if err := s.bookings.Save(record); err != nil {
		return nil, err
	}
	return s.toBooking(record)
}

// CompleteInspection marks the booking COMPLETED and records the result
// and recommendations.
func (s *BookingService) CompleteInspection(id, result, recommendations string) (*InspectionBooking, error) {
	record, err := s.bookings.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}
	record.Result = result
	record.Recommendations = recommendations
	if err := s.bookings.Save(record); err != nil {
		return nil, err
	}
	return s.UpdateStatus(id, StatusCompleted)
}

// RescheduleBooking moves the booking to a new time. When an officer is
// assigned the new slot is checked against that officer's calendar.
func (s *BookingService) RescheduleBooking(id string, newTime time.Time) (*InspectionBooking, error) {
	record, err := s.bookings.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBookingNotFound)
	}
	if record.OfficerID != "" {
		free, err := s.IsTimeSlotAvailable(record.OfficerID, newTime)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, &SlotUnavailableError{OfficerID: record.OfficerID, At: newTime}
		}
	}
	record.ScheduledDateTime = newTime
	record.Status = string(StatusRescheduled)
	if err := s.bookings.Save(record); err != nil {
		return nil, err
	}
	return s.toBooking(record)
}

// CancelBooking marks the booking CANCELLED regardless of its current state.
func (s *BookingService) CancelBooking(id string) (*InspectionBooking, error) {
	return s.UpdateStatus(id, StatusCancelled)
}

// ListByOwner returns the owner's bookings.
func (s *BookingService) ListByOwner(ownerID string) ([]InspectionBooking, error) {
	records, err := s.bookings.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByOfficer returns the officer's bookings.
func (s *BookingService) ListByOfficer(officerID string) ([]InspectionBooking, error) {
	records, err := s.bookings.ListByOfficer(officerID)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByStatus returns bookings in the given status.
func (s *BookingService) ListByStatus(status BookingStatus) ([]InspectionBooking, error) {
	records, err := s.bookings.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByDateRange returns bookings scheduled inside [start, end].
func (s *BookingService) ListByDateRange(start, end time.Time) ([]InspectionBooking, error) {
	records, err := s.bookings.ListByScheduledBetween(start, end)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByOfficerAndDateRange returns the officer's bookings scheduled inside
// [start, end].
func (s *BookingService) ListByOfficerAndDateRange(officerID string, start, end time.Time) ([]InspectionBooking, error) {
	records, err := s.bookings.ListByOfficerAndScheduledBetween(officerID, start, end)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByOwnerAndStatus returns the owner's bookings in the given status.
func (s *BookingService) ListByOwnerAndStatus(ownerID string, status BookingStatus) ([]InspectionBooking, error) {
	records, err := s.bookings.ListByOwnerAndStatus(ownerID, status)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// CompletedInspectionsCount returns the number of completed bookings
// scheduled inside [start, end].
func (s *BookingService) CompletedInspectionsCount(start, end time.Time) (int64, error) {
	return s.bookings.CountByStatusAndScheduledBetween(StatusCompleted, start, end)
}

// AverageInspectionDuration returns the average inspection length in hours.
func (s *BookingService) AverageInspectionDuration() float64 {
	return defaultAverageDurationHours
}

func (s *BookingService) assembleAll(records []InspectionBookingRecord) ([]InspectionBooking, error) {
	out := make([]InspectionBooking, 0, len(records))
	for i := range records {
		booking, err := s.toBooking(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *booking)
	}
	return out, nil
}

// toBooking assembles the API shape with owner, car, and officer display
// fields.
func (s *BookingService) toBooking(record *InspectionBookingRecord) (*InspectionBooking, error) {
	booking := &InspectionBooking{
		ID:                record.ID,
		OwnerID:           record.OwnerID,
		CarID:             record.CarID,
		OfficerID:         record.OfficerID,
		ScheduledDateTime: record.ScheduledDateTime,
		CompletedDateTime: record.CompletedDateTime,
		Status:            BookingStatus(record.Status),
		InspectionType:    record.InspectionType,
		Notes:             record.Notes,
		Result:            record.Result,
		Recommendations:   record.Recommendations,
		EstimatedDuration: estimatedDurationMinutes,
		Rescheduled:       record.Status == string(StatusRescheduled),
	}
	owner, err := s.owners.Get(record.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		booking.OwnerName = owner.FirstName + " " + owner.LastName
	}
	car, err := s.cars.Get(record.CarID)
	if err != nil {
		return nil, err
	}
	if car != nil {
		booking.CarLicensePlate = car.LicensePlate
	}
	if record.OfficerID != "" {
		officer, err := s.officers.Get(record.OfficerID)
		if err != nil {
			return nil, err
		}
		if officer != nil {
			booking.OfficerName = officer.FirstName + " " + officer.LastName
			booking.OfficerBadgeNumber = officer.BadgeNumber
		}
	}
	return booking, nil
}

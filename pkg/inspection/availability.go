package inspection

import (
	"fmt"
	"time"
)

const (
	// availabilityWindow is the buffer on each side of a requested slot.
	// An officer with any booking inside the closed window
	// [slot-1h, slot+1h] cannot take the slot.
	availabilityWindow = time.Hour

	// firstSlotHour and lastSlotHour bound the hourly booking slots
	// offered per day, both inclusive.
	firstSlotHour = 9
	lastSlotHour  = 16
)

// IsTimeSlotAvailable reports whether the officer can take a booking at the
// given time. The officer must exist; both window endpoints count as
// collisions.
func (s *BookingService) IsTimeSlotAvailable(officerID string, at time.Time) (bool, error) {
	officer, err := s.officers.Get(officerID)
	if err != nil {
		return false, err
	}
	if officer == nil {
		return false, fmt.Errorf("%s: %w", officerID, ErrOfficerNotFound)
	}
	count, err := s.bookings.CountByOfficerAndScheduledBetween(officerID, at.Add(-availabilityWindow), at.Add(availabilityWindow))
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// AvailableTimeSlots returns the hourly slots on the given day, 09:00
// through 16:00, that the officer can still take. An empty day yields
// eight slots.
func (s *BookingService) AvailableTimeSlots(officerID string, date time.Time) ([]time.Time, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var slots []time.Time
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slot := day.Add(time.Duration(hour) * time.Hour)
		free, err := s.IsTimeSlotAvailable(officerID, slot)
		if err != nil {
			return nil, err
		}
		if free {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

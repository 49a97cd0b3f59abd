package inspection

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func createBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var booking InspectionBooking
		if err := decodeBody(r, &booking); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&booking)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var booking InspectionBooking
		if err := decodeBody(r, &booking); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &booking)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

// listBookingsHandler lists bookings filtered by ownerId, officerId,
// status, or a scheduled window (start+end), combinable where the service
// supports it.
func listBookingsHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		ownerID := query.Get("ownerId")
		officerID := query.Get("officerId")
		status := BookingStatus(query.Get("status"))

		switch {
		case ownerID != "" && status != "":
			bookings, err := svc.ListByOwnerAndStatus(ownerID, status)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		case ownerID != "":
			bookings, err := svc.ListByOwner(ownerID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		case officerID != "" && query.Get("start") != "":
			start, end, err := timeRangeParams(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
				return
			}
			bookings, err := svc.ListByOfficerAndDateRange(officerID, start, end)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		case officerID != "":
			bookings, err := svc.ListByOfficer(officerID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		case status != "":
			bookings, err := svc.ListByStatus(status)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		default:
			start, end, err := timeRangeParams(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
				return
			}
			bookings, err := svc.ListByDateRange(start, end)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, bookings)
		}
	}
}

func deleteBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func assignOfficerHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.AssignOfficer(chi.URLParam(r, "id"), chi.URLParam(r, "officerId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func updateBookingStatusHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status BookingStatus `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		booking, err := svc.UpdateStatus(chi.URLParam(r, "id"), body.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func completeBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Result          string `json:"result"`
			Recommendations string `json:"recommendations"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		booking, err := svc.CompleteInspection(chi.URLParam(r, "id"), body.Result, body.Recommendations)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func rescheduleBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ScheduledDateTime time.Time `json:"scheduledDateTime"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		booking, err := svc.RescheduleBooking(chi.URLParam(r, "id"), body.ScheduledDateTime)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func cancelBookingHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.CancelBooking(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

// availableSlotsHandler lists the officer's free hourly slots on a day.
func availableSlotsHandler(svc *BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		officerID := r.URL.Query().Get("officerId")
		if officerID == "" {
			writeError(w, http.StatusBadRequest, "officerId query parameter is required")
			return
		}
		date, err := parseDate(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date: %v", err))
			return
		}
		slots, err := svc.AvailableTimeSlots(officerID, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"officerId": officerID, "slots": slots})
	}
}

package inspection

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func createOfficerHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var officer InspectionOfficer
		if err := decodeBody(r, &officer); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&officer)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateOfficerHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var officer InspectionOfficer
		if err := decodeBody(r, &officer); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &officer)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getOfficerHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		officer, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, officer)
	}
}

// listOfficersHandler lists all officers, or filters by badgeNumber,
// department, specialization, minExperience, available, or an availability
// window (slotStart+slotEnd).
func listOfficersHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if badge := query.Get("badgeNumber"); badge != "" {
			officer, err := svc.GetByBadgeNumber(badge)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []InspectionOfficer{*officer})
			return
		}
		if department := query.Get("department"); department != "" {
			officers, err := svc.ListByDepartment(department)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, officers)
			return
		}
		if specialization := query.Get("specialization"); specialization != "" {
			officers, err := svc.ListBySpecialization(specialization)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, officers)
			return
		}
		if minStr := query.Get("minExperience"); minStr != "" {
			minYears, err := strconv.Atoi(minStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid minExperience: %v", err))
				return
			}
			officers, err := svc.ListByMinExperience(minYears)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, officers)
			return
		}
		if slotStart := query.Get("slotStart"); slotStart != "" {
			start, err := parseTime(slotStart)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid slotStart: %v", err))
				return
			}
			end, err := parseTime(query.Get("slotEnd"))
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid slotEnd: %v", err))
				return
			}
			officers, err := svc.OfficersAvailableForTimeSlot(start, end)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, officers)
			return
		}
		if query.Get("available") == "true" {
			officers, err := svc.ListAvailable()
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, officers)
			return
		}
		officers, err := svc.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, officers)
	}
}

func deleteOfficerHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateOfficerAvailabilityHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Available bool `json:"available"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		officer, err := svc.UpdateAvailability(chi.URLParam(r, "id"), body.Available)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, officer)
	}
}

func addOfficerMethodHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Method string `json:"method"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		officer, err := svc.AddInspectionMethod(chi.URLParam(r, "id"), body.Method)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, officer)
	}
}

func removeOfficerMethodHandler(svc *OfficerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		officer, err := svc.RemoveInspectionMethod(chi.URLParam(r, "id"), chi.URLParam(r, "method"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, officer)
	}
}

package inspection

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func createOwnerHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var owner VehicleOwner
		if err := decodeBody(r, &owner); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&owner)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateOwnerHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var owner VehicleOwner
		if err := decodeBody(r, &owner); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &owner)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getOwnerHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, owner)
	}
}

// listOwnersHandler lists all owners, or filters by driverLicense, email,
// or pendingInspections query parameters.
func listOwnersHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if license := query.Get("driverLicense"); license != "" {
			owner, err := svc.GetByDriverLicense(license)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []VehicleOwner{*owner})
			return
		}
		if email := query.Get("email"); email != "" {
			owner, err := svc.GetByEmail(email)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []VehicleOwner{*owner})
			return
		}
		if query.Get("pendingInspections") == "true" {
			owners, err := svc.OwnersWithPendingInspections()
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, owners)
			return
		}
		owners, err := svc.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, owners)
	}
}

func deleteOwnerHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addOwnerVehicleHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := svc.AddVehicle(chi.URLParam(r, "id"), chi.URLParam(r, "carId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, owner)
	}
}

func removeOwnerVehicleHandler(svc *OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := svc.RemoveVehicle(chi.URLParam(r, "id"), chi.URLParam(r, "carId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, owner)
	}
}

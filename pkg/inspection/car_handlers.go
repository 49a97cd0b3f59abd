package inspection

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func createCarHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var car Car
		if err := decodeBody(r, &car); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&car)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateCarHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var car Car
		if err := decodeBody(r, &car); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &car)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getCarHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		car, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, car)
	}
}

// listCarsHandler lists all cars, or filters by the supported query
// parameters: licensePlate, ownerId, make+model, year, needingInspection,
// expiredInsurance.
func listCarsHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if plate := query.Get("licensePlate"); plate != "" {
			car, err := svc.GetByLicensePlate(plate)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []Car{*car})
			return
		}
		if ownerID := query.Get("ownerId"); ownerID != "" {
			cars, err := svc.ListByOwner(ownerID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cars)
			return
		}
		if make := query.Get("make"); make != "" {
			cars, err := svc.FindByMakeAndModel(make, query.Get("model"))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cars)
			return
		}
		if yearStr := query.Get("year"); yearStr != "" {
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err))
				return
			}
			cars, err := svc.FindByYear(year)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cars)
			return
		}
		if query.Get("needingInspection") == "true" {
			cars, err := svc.CarsNeedingInspection()
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cars)
			return
		}
		if query.Get("expiredInsurance") == "true" {
			cars, err := svc.CarsWithExpiredInsurance()
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cars)
			return
		}
		cars, err := svc.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cars)
	}
}

func deleteCarHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateCarInspectionHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		car, err := svc.UpdateInspectionStatus(chi.URLParam(r, "id"), body.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, car)
	}
}

func updateCarInsuranceHandler(svc *CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Provider     string     `json:"provider"`
			PolicyNumber string     `json:"policyNumber"`
			ExpiryDate   *time.Time `json:"expiryDate"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		car, err := svc.UpdateInsurance(chi.URLParam(r, "id"), body.Provider, body.PolicyNumber, body.ExpiryDate)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, car)
	}
}

package inspection

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func createAdminHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var admin Admin
		if err := decodeBody(r, &admin); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&admin)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateAdminHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var admin Admin
		if err := decodeBody(r, &admin); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &admin)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getAdminHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, admin)
	}
}

// listAdminsHandler lists all admins, or filters by username, email,
// department, role, or a permission name.
func listAdminsHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if username := query.Get("username"); username != "" {
			admin, err := svc.GetByUsername(username)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []Admin{*admin})
			return
		}
		if email := query.Get("email"); email != "" {
			admin, err := svc.GetByEmail(email)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []Admin{*admin})
			return
		}
		if department := query.Get("department"); department != "" {
			admins, err := svc.ListByDepartment(department)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, admins)
			return
		}
		if role := query.Get("role"); role != "" {
			admins, err := svc.ListByRole(role)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, admins)
			return
		}
		if permission := query.Get("permission"); permission != "" {
			var (
				admins []Admin
				err    error
			)
			switch permission {
			case "manageClients":
				admins, err = svc.ListWithClientManagement()
			case "manageOfficers":
				admins, err = svc.ListWithOfficerManagement()
			case "viewAnalytics":
				admins, err = svc.ListWithAnalyticsAccess()
			default:
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown permission: %s", permission))
				return
			}
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, admins)
			return
		}
		admins, err := svc.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, admins)
	}
}

func deleteAdminHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateAdminPermissionsHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CanManageClients  bool `json:"canManageClients"`
			CanManageOfficers bool `json:"canManageOfficers"`
			CanViewAnalytics  bool `json:"canViewAnalytics"`
			CanManageSystem   bool `json:"canManageSystem"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		admin, err := svc.UpdatePermissions(chi.URLParam(r, "id"),
			body.CanManageClients, body.CanManageOfficers, body.CanViewAnalytics, body.CanManageSystem)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, admin)
	}
}

// adminLoginHandler stamps the admin's last login time. Unknown usernames
// are accepted silently.
func adminLoginHandler(svc *AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if err := svc.UpdateLastLogin(body.Username); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

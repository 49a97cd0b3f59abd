package inspection

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var slot *SlotUnavailableError
	var transition *TransitionError
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &slot), errors.As(err, &transition):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseTime parses an RFC 3339 timestamp query parameter.
func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// parseDate parses a YYYY-MM-DD date query parameter.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// timeRangeParams reads start/end query parameters as RFC 3339 timestamps,
// falling back to the trailing 30 days when absent.
func timeRangeParams(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start, end := now.AddDate(0, 0, -30), now
	if v := r.URL.Query().Get("start"); v != "" {
		parsed, err := parseTime(v)
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if v := r.URL.Query().Get("end"); v != "" {
		parsed, err := parseTime(v)
		if err != nil {
			return start, end, err
		}
		end = parsed
	}
	return start, end, nil
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// healthzHandler reports process liveness.
func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyzHandler reports database readiness.
func readyzHandler(services *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := services.Ping(); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

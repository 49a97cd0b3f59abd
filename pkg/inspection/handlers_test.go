package inspection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Services) {
	t.Helper()
	services := newTestServices(t)
	server := httptest.NewServer(NewRouter(services))
	t.Cleanup(server.Close)
	return server, services
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOwnerEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/owners", VehicleOwner{
		DriverLicense: "DL-H1", FirstName: "Maria", LastName: "Petrova", Email: "maria@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created VehicleOwner
	decodeInto(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	// A duplicate license maps to 409.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/owners", VehicleOwner{DriverLicense: "DL-H1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// An unknown ID maps to 404.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/owners/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/owners/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got VehicleOwner
	decodeInto(t, resp, &got)
	assert.Equal(t, "DL-H1", got.DriverLicense)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/owners?driverLicense=DL-H1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var owners []VehicleOwner
	decodeInto(t, resp, &owners)
	require.Len(t, owners, 1)
	assert.Equal(t, created.ID, owners[0].ID)

	// Malformed bodies map to 400.
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/owners", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	badResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer badResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestBookingEndpoints(t *testing.T) {
	server, services := newTestServer(t)

	owner := seedOwner(t, services, "DL-H2")
	car := seedCar(t, services, owner.ID, "CAH201AB")
	officer := seedOfficer(t, services, "B-H20")
	at := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/bookings", InspectionBooking{
		OwnerID: owner.ID, CarID: car.ID, OfficerID: officer.ID, ScheduledDateTime: at,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var booking InspectionBooking
	decodeInto(t, resp, &booking)
	assert.Equal(t, StatusScheduled, booking.Status)

	// An occupied slot maps to 400.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookings", InspectionBooking{
		OwnerID: owner.ID, CarID: car.ID, OfficerID: officer.ID, ScheduledDateTime: at.Add(30 * time.Minute),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Free slots exclude the booked window.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/bookings/slots?officerId=%s&date=2026-07-01", server.URL, officer.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var slots struct {
		OfficerID string      `json:"officerId"`
		Slots     []time.Time `json:"slots"`
	}
	decodeInto(t, resp, &slots)
	assert.Equal(t, officer.ID, slots.OfficerID)
	assert.Len(t, slots.Slots, 5)

	// Slots for an unknown officer map to 404.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/bookings/slots?officerId=no-such-officer&date=2026-07-01", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookings/"+booking.ID+"/status",
		map[string]string{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &booking)
	assert.Equal(t, StatusInProgress, booking.Status)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookings/"+booking.ID+"/complete",
		map[string]string{"result": "PASSED", "recommendations": "none"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &booking)
	assert.Equal(t, StatusCompleted, booking.Status)
	assert.NotNil(t, booking.CompletedDateTime)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/bookings/no-such-id/cancel", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCarEndpoints(t *testing.T) {
	server, services := newTestServer(t)
	owner := seedOwner(t, services, "DL-H3")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/cars", Car{
		LicensePlate: "CAH301AB", Make: "Toyota", Model: "Corolla", Year: 2020,
		InsuranceProvider: "Allianz", OwnerID: owner.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var car Car
	decodeInto(t, resp, &car)
	assert.True(t, car.InspectionDue)
	assert.False(t, car.InsuranceValid)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/cars?needingInspection=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cars []Car
	decodeInto(t, resp, &cars)
	assert.Len(t, cars, 1)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/cars/"+car.ID+"/inspection-status",
		map[string]string{"status": "PASSED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &car)
	assert.Equal(t, "PASSED", car.LastInspectionStatus)
	assert.False(t, car.InspectionDue)
}

func TestAnalyticsEndpoints(t *testing.T) {
	server, services := newTestServer(t)
	day := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

	seedAnalytics(t, services, day, true, nil)
	seedAnalytics(t, services, day, false, nil)

	start := day.AddDate(0, 0, -1).Format(time.RFC3339)
	end := day.AddDate(0, 0, 1).Format(time.RFC3339)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/analytics/reports/custom", map[string]any{
		"start":   start,
		"end":     end,
		"metrics": []string{"total_inspections", "pass_rate", "bogus"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report map[string]float64
	decodeInto(t, resp, &report)
	require.Len(t, report, 2)
	assert.Equal(t, 2.0, report["TOTAL_INSPECTIONS"])
	assert.InDelta(t, 0.5, report["PASS_RATE"], 1e-9)

	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/v1/analytics/metrics/summary?start=%s&end=%s", server.URL, start, end), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/analytics/metrics/trends/monthly?year=2026", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trends map[string]int64
	decodeInto(t, resp, &trends)
	assert.Equal(t, int64(2), trends["JULY"])
}

func TestPublicationAndTemplateEndpoints(t *testing.T) {
	server, services := newTestServer(t)
	owner := seedOwner(t, services, "DL-H4")

	resp := doJSON(t, http.MethodPut, server.URL+"/api/v1/templates/reminder",
		map[string]string{"content": "Hello ${name}"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/publications/from-template", map[string]any{
		"ownerId":      owner.ID,
		"type":         TypeInspectionReminder,
		"title":        "Reminder",
		"scheduledFor": time.Now().Add(time.Hour),
		"templateId":   "reminder",
		"params":       []TemplateParam{{Key: "name", Value: "Maria"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var pub Publication
	decodeInto(t, resp, &pub)
	assert.Equal(t, "Hello Maria", pub.Content)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/publications/"+pub.ID+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &pub)
	assert.True(t, pub.Read)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/publications/owners/"+owner.ID+"/unread-count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown templates map to 404.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/templates/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

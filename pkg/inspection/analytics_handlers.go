package inspection

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func createAnalyticsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a Analytics
		if err := decodeBody(r, &a); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		created, err := svc.Create(&a)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateAnalyticsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a Analytics
		if err := decodeBody(r, &a); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		updated, err := svc.Update(chi.URLParam(r, "id"), &a)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func getAnalyticsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// listAnalyticsHandler lists records filtered by passed, type, bookingId,
// or a date window.
func listAnalyticsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if passed := query.Get("passed"); passed != "" {
			records, err := svc.ListByPassed(passed == "true")
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, records)
			return
		}
		if inspectionType := query.Get("type"); inspectionType != "" {
			records, err := svc.ListByType(inspectionType)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, records)
			return
		}
		if bookingID := query.Get("bookingId"); bookingID != "" {
			records, err := svc.ListByBooking(bookingID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, records)
			return
		}
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		records, err := svc.ListByDateRange(start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func deleteAnalyticsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// metricsSummaryHandler returns the windowed aggregate metrics.
func metricsSummaryHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		report, err := svc.CustomReport(start, end, []string{
			"TOTAL_INSPECTIONS", "PASS_RATE", "AVERAGE_DURATION",
			"SAFETY_SCORE", "COMPLIANCE_SCORE", "CUSTOMER_SATISFACTION",
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func dashboardHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.DashboardMetrics()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func categoriesHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		counts, err := svc.InspectionsByVehicleCategory(start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func topDefectsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %v", err))
				return
			}
			limit = parsed
		}
		defects, err := svc.TopDefects(start, end, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, defects)
	}
}

func criticalIssuesHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		issues, err := svc.CriticalIssuesByFrequency(start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, issues)
	}
}

func feedbackDistributionHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		dist, err := svc.FeedbackDistribution(start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dist)
	}
}

func officerPerformanceHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := svc.OfficerPerformanceMetrics(chi.URLParam(r, "officerId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, metrics)
	}
}

// yearParam reads the year query parameter, defaulting to the current year.
func yearParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(v)
}

func monthlyTrendsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err))
			return
		}
		trends, err := svc.MonthlyInspectionTrends(year)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, trends)
	}
}

func seasonalPatternsHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err))
			return
		}
		patterns, err := svc.SeasonalPatterns(year)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, patterns)
	}
}

func yearOverYearHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err))
			return
		}
		growth, err := svc.YearOverYearGrowth(year)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"growth": growth})
	}
}

func trendDataHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := timeRangeParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid time range: %v", err))
			return
		}
		points, err := svc.InspectionTrendData(start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, points)
	}
}

func dailyReportHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := time.Now()
		if v := r.URL.Query().Get("date"); v != "" {
			parsed, err := parseDate(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date: %v", err))
				return
			}
			date = parsed
		}
		report, err := svc.DailyReport(date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func monthlyReportHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err))
			return
		}
		month := int(time.Now().Month())
		if v := r.URL.Query().Get("month"); v != "" {
			month, err = strconv.Atoi(v)
			if err != nil || month < 1 || month > 12 {
				writeError(w, http.StatusBadRequest, "invalid month")
				return
			}
		}
		report, err := svc.MonthlyReport(year, time.Month(month))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func yearlyReportHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := yearParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err))
			return
		}
		report, err := svc.YearlyReport(year)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func customReportHandler(svc *AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Start   time.Time `json:"start"`
			End     time.Time `json:"end"`
			Metrics []string  `json:"metrics"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		report, err := svc.CustomReport(body.Start, body.End, body.Metrics)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

package inspection

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all inspection registry API routes
// mounted under the given services.
func NewRouter(services *Services) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", healthzHandler)
	r.Get("/readyz", readyzHandler(services))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/owners", func(r chi.Router) {
			r.Post("/", createOwnerHandler(services.Owners))
			r.Get("/", listOwnersHandler(services.Owners))
			r.Get("/{id}", getOwnerHandler(services.Owners))
			r.Put("/{id}", updateOwnerHandler(services.Owners))
			r.Delete("/{id}", deleteOwnerHandler(services.Owners))
			r.Post("/{id}/vehicles/{carId}", addOwnerVehicleHandler(services.Owners))
			r.Delete("/{id}/vehicles/{carId}", removeOwnerVehicleHandler(services.Owners))
		})

		r.Route("/cars", func(r chi.Router) {
			r.Post("/", createCarHandler(services.Cars))
			r.Get("/", listCarsHandler(services.Cars))
			r.Get("/{id}", getCarHandler(services.Cars))
			r.Put("/{id}", updateCarHandler(services.Cars))
			r.Delete("/{id}", deleteCarHandler(services.Cars))
			r.Post("/{id}/inspection-status", updateCarInspectionHandler(services.Cars))
			r.Post("/{id}/insurance", updateCarInsuranceHandler(services.Cars))
		})

		r.Route("/officers", func(r chi.Router) {
			r.Post("/", createOfficerHandler(services.Officers))
			r.Get("/", listOfficersHandler(services.Officers))
			r.Get("/{id}", getOfficerHandler(services.Officers))
			r.Put("/{id}", updateOfficerHandler(services.Officers))
			r.Delete("/{id}", deleteOfficerHandler(services.Officers))
			r.Post("/{id}/availability", updateOfficerAvailabilityHandler(services.Officers))
			r.Post("/{id}/methods", addOfficerMethodHandler(services.Officers))
			r.Delete("/{id}/methods/{method}", removeOfficerMethodHandler(services.Officers))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", createBookingHandler(services.Bookings))
			r.Get("/", listBookingsHandler(services.Bookings))
			r.Get("/slots", availableSlotsHandler(services.Bookings))
			r.Get("/{id}", getBookingHandler(services.Bookings))
			r.Put("/{id}", updateBookingHandler(services.Bookings))
			r.Delete("/{id}", deleteBookingHandler(services.Bookings))
			r.Post("/{id}/assign/{officerId}", assignOfficerHandler(services.Bookings))
			r.Post("/{id}/status", updateBookingStatusHandler(services.Bookings))
			r.Post("/{id}/complete", completeBookingHandler(services.Bookings))
			r.Post("/{id}/reschedule", rescheduleBookingHandler(services.Bookings))
			r.Post("/{id}/cancel", cancelBookingHandler(services.Bookings))
		})

		r.Route("/admins", func(r chi.Router) {
			r.Post("/", createAdminHandler(services.Admins))
			r.Get("/", listAdminsHandler(services.Admins))
			r.Post("/login", adminLoginHandler(services.Admins))
			r.Get("/{id}", getAdminHandler(services.Admins))
			r.Put("/{id}", updateAdminHandler(services.Admins))
			r.Delete("/{id}", deleteAdminHandler(services.Admins))
			r.Post("/{id}/permissions", updateAdminPermissionsHandler(services.Admins))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/", createAnalyticsHandler(services.Analytics))
			r.Get("/", listAnalyticsHandler(services.Analytics))

			r.Route("/metrics", func(r chi.Router) {
				r.Get("/summary", metricsSummaryHandler(services.Analytics))
				r.Get("/dashboard", dashboardHandler(services.Analytics))
				r.Get("/categories", categoriesHandler(services.Analytics))
				r.Get("/defects", topDefectsHandler(services.Analytics))
				r.Get("/critical-issues", criticalIssuesHandler(services.Analytics))
				r.Get("/feedback", feedbackDistributionHandler(services.Analytics))
				r.Get("/officers/{officerId}", officerPerformanceHandler(services.Analytics))
				r.Get("/trends/monthly", monthlyTrendsHandler(services.Analytics))
				r.Get("/trends/seasonal", seasonalPatternsHandler(services.Analytics))
				r.Get("/trends/yoy", yearOverYearHandler(services.Analytics))
				r.Get("/trends/daily", trendDataHandler(services.Analytics))
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", dailyReportHandler(services.Analytics))
				r.Get("/monthly", monthlyReportHandler(services.Analytics))
				r.Get("/yearly", yearlyReportHandler(services.Analytics))
				r.Post("/custom", customReportHandler(services.Analytics))
			})

			r.Get("/{id}", getAnalyticsHandler(services.Analytics))
			r.Put("/{id}", updateAnalyticsHandler(services.Analytics))
			r.Delete("/{id}", deleteAnalyticsHandler(services.Analytics))
		})

		r.Route("/publications", func(r chi.Router) {
			r.Post("/", createPublicationHandler(services.Publications))
			r.Get("/", listPublicationsHandler(services.Publications))
			r.Post("/from-template", createFromTemplateHandler(services.Publications))
			r.Post("/send", sendImmediateHandler(services.Publications))
			r.Post("/send-batch", sendBatchHandler(services.Publications))
			r.Delete("/expired", deleteExpiredHandler(services.Publications))
			r.Get("/delivery-report", deliveryReportHandler(services.Publications))
			r.Get("/owners/{ownerId}/unread-count", unreadCountHandler(services.Publications))
			r.Get("/owners/{ownerId}/engagement", engagementHandler(services.Publications))
			r.Post("/owners/{ownerId}/read-all", markAllReadHandler(services.Publications))
			r.Get("/{id}", getPublicationHandler(services.Publications))
			r.Put("/{id}", updatePublicationHandler(services.Publications))
			r.Delete("/{id}", deletePublicationHandler(services.Publications))
			r.Post("/{id}/read", markReadHandler(services.Publications))
			r.Post("/{id}/unread", markUnreadHandler(services.Publications))
			r.Post("/{id}/delivery-status", updateDeliveryStatusHandler(services.Publications))
			r.Post("/{id}/schedule", schedulePublicationHandler(services.Publications))
			r.Post("/{id}/resend", resendFailedHandler(services.Publications))
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", listTemplatesHandler(services.Templates))
			r.Get("/{id}", getTemplateHandler(services.Templates))
			r.Put("/{id}", putTemplateHandler(services.Templates))
			r.Delete("/{id}", deleteTemplateHandler(services.Templates))
			r.Post("/{id}/render", renderTemplateHandler(services.Templates))
		})
	})

	return r
}

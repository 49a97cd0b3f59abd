package inspection

import (
	"log/slog"

	"gorm.io/gorm"
)

// Services bundles all domain services over one database connection.
type Services struct {
	Owners       *OwnerService
	Cars         *CarService
	Officers     *OfficerService
	Bookings     *BookingService
	Admins       *AdminService
	Analytics    *AnalyticsService
	Publications *PublicationService
	Templates    TemplateStore

	db *gorm.DB
}

// NewServices wires the stores and services against the database. A nil
// templates store falls back to the in-memory implementation.
func NewServices(db *gorm.DB, templates TemplateStore, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	if templates == nil {
		templates = NewMemoryTemplateStore()
	}

	owners := NewOwnerStore(db)
	cars := NewCarStore(db)
	officers := NewOfficerStore(db)
	bookings := NewBookingStore(db)
	admins := NewAdminStore(db)
	analytics := NewAnalyticsStore(db)
	publications := NewPublicationStore(db)

	return &Services{
		Owners:       NewOwnerService(owners, cars, bookings, logger),
		Cars:         NewCarService(cars, owners, logger),
		Officers:     NewOfficerService(officers, bookings, logger),
		Bookings:     NewBookingService(bookings, owners, cars, officers, logger),
		Admins:       NewAdminService(admins, logger),
		Analytics:    NewAnalyticsService(analytics, logger),
		Publications: NewPublicationService(publications, owners, templates, logger),
		Templates:    templates,
		db:           db,
	}
}

// Ping checks database connectivity for readiness probes.
func (s *Services) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

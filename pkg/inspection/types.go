package inspection

import "time"

// BookingStatus represents inspection booking states.
type BookingStatus string

const (
	StatusScheduled   BookingStatus = "SCHEDULED"
	StatusInProgress  BookingStatus = "IN_PROGRESS"
	StatusCompleted   BookingStatus = "COMPLETED"
	StatusCancelled   BookingStatus = "CANCELLED"
	StatusRescheduled BookingStatus = "RESCHEDULED"
)

// AllBookingStatuses lists every valid booking status.
var AllBookingStatuses = []BookingStatus{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	for _, v := range AllBookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// NotificationType classifies a publication.
type NotificationType string

const (
	TypeInspectionReminder  NotificationType = "INSPECTION_REMINDER"
	TypeInspectionResult    NotificationType = "INSPECTION_RESULT"
	TypeMaintenanceAlert    NotificationType = "MAINTENANCE_ALERT"
	TypeDocumentExpiry      NotificationType = "DOCUMENT_EXPIRY"
	TypeSystemUpdate        NotificationType = "SYSTEM_UPDATE"
	TypeGeneralAnnouncement NotificationType = "GENERAL_ANNOUNCEMENT"
)

// DeliveryStatus represents publication delivery states.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

// Priority classifies publication urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// VehicleOwner is the API-facing owner shape, with derived display fields.
type VehicleOwner struct {
	ID            string `json:"id"`
	DriverLicense string `json:"driverLicense"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`

	VehicleIDs         []string `json:"vehicleIds"`
	TotalVehicles      int      `json:"totalVehicles"`
	PendingInspections int      `json:"pendingInspections"`
	LastInspectionDate string   `json:"lastInspectionDate,omitempty"`
}

// Car is the API-facing car shape, with derived display fields.
type Car struct {
	ID                    string     `json:"id"`
	LicensePlate          string     `json:"licensePlate"`
	Make                  string     `json:"make"`
	Model                 string     `json:"model"`
	Year                  int        `json:"year"`
	InsuranceProvider     string     `json:"insuranceProvider"`
	InsurancePolicyNumber string     `json:"insurancePolicyNumber,omitempty"`
	InsuranceExpiryDate   *time.Time `json:"insuranceExpiryDate,omitempty"`
	OwnerID               string     `json:"ownerId"`
	LastInspectionDate    *time.Time `json:"lastInspectionDate,omitempty"`
	LastInspectionStatus  string     `json:"lastInspectionStatus,omitempty"`

	OwnerName      string `json:"ownerName,omitempty"`
	InsuranceValid bool   `json:"insuranceValid"`
	InspectionDue  bool   `json:"inspectionDue"`
}

// InspectionOfficer is the API-facing officer shape, with derived display fields.
type InspectionOfficer struct {
	ID                string   `json:"id"`
	BadgeNumber       string   `json:"badgeNumber"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Department        string   `json:"department"`
	Specialization    string   `json:"specialization,omitempty"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	Available         bool     `json:"available"`
	InspectionMethods []string `json:"inspectionMethods"`

	TotalInspectionsCompleted int      `json:"totalInspectionsCompleted"`
	AverageInspectionRating   float64  `json:"averageInspectionRating"`
	CurrentQueueSize          int      `json:"currentQueueSize"`
	InspectionsToday          int      `json:"inspectionsToday"`
	Certifications            []string `json:"certifications"`
}

// InspectionBooking is the API-facing booking shape, with derived display fields.
type InspectionBooking struct {
	ID                string        `json:"id"`
	OwnerID           string        `json:"ownerId"`
	CarID             string        `json:"carId"`
	OfficerID         string        `json:"officerId,omitempty"`
	ScheduledDateTime time.Time     `json:"scheduledDateTime"`
	CompletedDateTime *time.Time    `json:"completedDateTime,omitempty"`
	Status            BookingStatus `json:"status"`
	InspectionType    string        `json:"inspectionType,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	Result            string        `json:"result,omitempty"`
	Recommendations   string        `json:"recommendations,omitempty"`

	OwnerName          string `json:"ownerName,omitempty"`
	CarLicensePlate    string `json:"carLicensePlate,omitempty"`
	OfficerName        string `json:"officerName,omitempty"`
	OfficerBadgeNumber string `json:"officerBadgeNumber,omitempty"`
	EstimatedDuration  int64  `json:"estimatedDuration"` // minutes
	Rescheduled        bool   `json:"rescheduled"`
}

// Admin is the API-facing admin shape, with derived display fields.
type Admin struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	Department        string     `json:"department"`
	ContactNumber     string     `json:"contactNumber,omitempty"`
	CanManageClients  bool       `json:"canManageClients"`
	CanManageOfficers bool       `json:"canManageOfficers"`
	CanViewAnalytics  bool       `json:"canViewAnalytics"`
	CanManageSystem   bool       `json:"canManageSystem"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`

	ActiveSessionCount   int    `json:"activeSessionCount"`
	LastActionPerformed  string `json:"lastActionPerformed,omitempty"`
	ManagedClientsCount  int    `json:"managedClientsCount"`
	ManagedOfficersCount int    `json:"managedOfficersCount"`
}

// Analytics is the API-facing analytics shape. The window-derived fields
// (PassRate, SafetyScore, ComplianceScore) are computed over the day
// following InspectionDate; in report responses they describe the report
// window instead.
type Analytics struct {
	ID                        string     `json:"id"`
	BookingID                 string     `json:"bookingId,omitempty"`
	InspectionDate            time.Time  `json:"inspectionDate"`
	InspectionDuration        int64      `json:"inspectionDuration"` // minutes
	InspectionType            string     `json:"inspectionType,omitempty"`
	VehicleCategory           string     `json:"vehicleCategory,omitempty"`
	InspectionFindings        string     `json:"inspectionFindings,omitempty"`
	Passed                    bool       `json:"passed"`
	DefectsFound              int        `json:"defectsFound"`
	CriticalIssues            string     `json:"criticalIssues,omitempty"`
	InspectionScore           float64    `json:"inspectionScore"`
	CustomerSatisfactionScore float64    `json:"customerSatisfactionScore"`
	Recommendations           string     `json:"recommendations,omitempty"`
	ReportStatus              string     `json:"reportStatus,omitempty"`
	ReportGeneratedAt         *time.Time `json:"reportGeneratedAt,omitempty"`
	ReportID                  string     `json:"reportId,omitempty"`

	TotalInspections          int     `json:"totalInspections"`
	PassRate                  float64 `json:"passRate"`
	AverageInspectionDuration float64 `json:"averageInspectionDuration"`
	SafetyScore               float64 `json:"safetyScore"`
	ComplianceScore           float64 `json:"complianceScore"`
	YearOverYearGrowth        float64 `json:"yearOverYearGrowth,omitempty"`
}

// Publication is the API-facing publication shape, with derived display fields.
type Publication struct {
	ID           string           `json:"id"`
	OwnerID      string           `json:"ownerId"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	CreatedAt    time.Time        `json:"createdAt"`
	ScheduledFor time.Time        `json:"scheduledFor"`
	SentAt       *time.Time       `json:"sentAt,omitempty"`
	ReadAt       *time.Time       `json:"readAt,omitempty"`
	Status       DeliveryStatus   `json:"status"`
	Priority     Priority         `json:"priority,omitempty"`
	Read         bool             `json:"read"`
	SendEmail    bool             `json:"sendEmail"`
	SendSMS      bool             `json:"sendSMS"`
	SendPush     bool             `json:"sendPush"`

	RecipientName    string `json:"recipientName,omitempty"`
	RecipientEmail   string `json:"recipientEmail,omitempty"`
	RecipientPhone   string `json:"recipientPhone,omitempty"`
	DeliveryAttempts int64  `json:"deliveryAttempts,omitempty"`
}

// TemplateParam is one ordered key/value substitution for a template.
// Parameters apply in slice order; substitution is literal and
// non-recursive, and unresolved tokens stay verbatim.
type TemplateParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

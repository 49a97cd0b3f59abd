package inspection

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JSONStringSlice is a custom GORM type for []string stored as JSON.
type JSONStringSlice []string

// Scan implements the sql.Scanner interface for JSONStringSlice.
func (s *JSONStringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	default:
		return fmt.Errorf("unsupported type for JSONStringSlice: %T", value)
	}
	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for JSONStringSlice.
func (s JSONStringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// VehicleOwnerRecord stores a registered vehicle owner.
type VehicleOwnerRecord struct {
	ID            string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	DriverLicense string    `gorm:"column:driver_license;uniqueIndex;not null"`
	FirstName     string    `gorm:"column:first_name"`
	LastName      string    `gorm:"column:last_name"`
	Email         string    `gorm:"column:email;index"`
	Phone         string    `gorm:"column:phone"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (VehicleOwnerRecord) TableName() string { return "vehicle_owners" }

// CarRecord stores a registered car and its insurance and inspection state.
type CarRecord struct {
	ID                    string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	LicensePlate          string     `gorm:"column:license_plate;uniqueIndex;not null"`
	Make                  string     `gorm:"column:make;not null"`
	Model                 string     `gorm:"column:model;not null"`
	Year                  int        `gorm:"column:year"`
	InsuranceProvider     string     `gorm:"column:insurance_provider;not null"`
	InsurancePolicyNumber string     `gorm:"column:insurance_policy_number"`
	InsuranceExpiryDate   *time.Time `gorm:"column:insurance_expiry_date"`
	OwnerID               string     `gorm:"column:owner_id;index;not null"`
	LastInspectionDate    *time.Time `gorm:"column:last_inspection_date"`
	LastInspectionStatus  string     `gorm:"column:last_inspection_status"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (CarRecord) TableName() string { return "cars" }

// InspectionOfficerRecord stores an inspection officer.
type InspectionOfficerRecord struct {
	ID                string          `gorm:"primaryKey;column:id;type:varchar(36)"`
	BadgeNumber       string          `gorm:"column:badge_number;uniqueIndex;not null"`
	FirstName         string          `gorm:"column:first_name"`
	LastName          string          `gorm:"column:last_name"`
	Department        string          `gorm:"column:department;index"`
	Specialization    string          `gorm:"column:specialization"`
	YearsOfExperience int             `gorm:"column:years_of_experience"`
	Available         bool            `gorm:"column:available"`
	InspectionMethods JSONStringSlice `gorm:"column:inspection_methods;type:text"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (InspectionOfficerRecord) TableName() string { return "inspection_officers" }

// InspectionBookingRecord stores a booked inspection appointment.
type InspectionBookingRecord struct {
	ID                string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	OwnerID           string     `gorm:"column:owner_id;index;not null"`
	CarID             string     `gorm:"column:car_id;index;not null"`
	OfficerID         string     `gorm:"column:officer_id;index"`
	ScheduledDateTime time.Time  `gorm:"column:scheduled_date_time;index"`
	CompletedDateTime *time.Time `gorm:"column:completed_date_time"`
	Status            string     `gorm:"column:status;index;not null"`
	InspectionType    string     `gorm:"column:inspection_type"`
	Notes             string     `gorm:"column:notes"`
	Result            string     `gorm:"column:result"`
	Recommendations   string     `gorm:"column:recommendations"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (InspectionBookingRecord) TableName() string { return "inspection_bookings" }

// AdminRecord stores a system administrator.
type AdminRecord struct {
	ID                string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	Username          string     `gorm:"column:username;uniqueIndex;not null"`
	FirstName         string     `gorm:"column:first_name"`
	LastName          string     `gorm:"column:last_name"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	Role              string     `gorm:"column:role;index;not null"`
	Department        string     `gorm:"column:department;index;not null"`
	ContactNumber     string     `gorm:"column:contact_number"`
	CanManageClients  bool       `gorm:"column:can_manage_clients"`
	CanManageOfficers bool       `gorm:"column:can_manage_officers"`
	CanViewAnalytics  bool       `gorm:"column:can_view_analytics"`
	CanManageSystem   bool       `gorm:"column:can_manage_system"`
	LastLogin         *time.Time `gorm:"column:last_login"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (AdminRecord) TableName() string { return "admins" }

// AnalyticsRecord stores inspection metrics and report metadata for a booking.
type AnalyticsRecord struct {
	ID                        string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	BookingID                 string     `gorm:"column:booking_id;index"`
	InspectionDate            time.Time  `gorm:"column:inspection_date;index"`
	InspectionDuration        int64      `gorm:"column:inspection_duration"` // minutes
	InspectionType            string     `gorm:"column:inspection_type;index"`
	VehicleCategory           string     `gorm:"column:vehicle_category"`
	InspectionFindings        string     `gorm:"column:inspection_findings;type:text"`
	Passed                    bool       `gorm:"column:passed;index"`
	DefectsFound              int        `gorm:"column:defects_found"`
	CriticalIssues            string     `gorm:"column:critical_issues"`
	InspectionScore           float64    `gorm:"column:inspection_score"`
	SafetyScore               float64    `gorm:"column:safety_score"`
	ComplianceScore           float64    `gorm:"column:compliance_score"`
	CustomerSatisfactionScore float64    `gorm:"column:customer_satisfaction_score"`
	Recommendations           string     `gorm:"column:recommendations;type:text"`
	ReportStatus              string     `gorm:"column:report_status"`
	ReportGeneratedAt         *time.Time `gorm:"column:report_generated_at"`
	ReportID                  string     `gorm:"column:report_id"`
	CreatedAt                 time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                 time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (AnalyticsRecord) TableName() string { return "analytics_records" }

// PublicationRecord stores a notification publication addressed to an owner.
type PublicationRecord struct {
	ID           string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	OwnerID      string     `gorm:"column:owner_id;index;not null"`
	Type         string     `gorm:"column:type;index;not null"`
	Title        string     `gorm:"column:title"`
	Content      string     `gorm:"column:content;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	ScheduledFor time.Time  `gorm:"column:scheduled_for;index"`
	SentAt       *time.Time `gorm:"column:sent_at"`
	ReadAt       *time.Time `gorm:"column:read_at"`
	Status       string     `gorm:"column:status;index;not null"`
	Priority     string     `gorm:"column:priority;index"`
	Read         bool       `gorm:"column:is_read;index"`
	SendEmail    bool       `gorm:"column:send_email"`
	SendSMS      bool       `gorm:"column:send_sms"`
	SendPush     bool       `gorm:"column:send_push"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (PublicationRecord) TableName() string { return "publications" }

// NotificationTemplateRecord stores a named notification template.
type NotificationTemplateRecord struct {
	TemplateID string    `gorm:"primaryKey;column:template_id"`
	Content    string    `gorm:"column:content;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (NotificationTemplateRecord) TableName() string { return "notification_templates" }

// AutoMigrate creates or updates all inspection registry tables.
func AutoMigrate(db *gorm.DB) error {
	models := []any{
		&VehicleOwnerRecord{},
		&CarRecord{},
		&InspectionOfficerRecord{},
		&InspectionBookingRecord{},
		&AdminRecord{},
		&AnalyticsRecord{},
		&PublicationRecord{},
		&NotificationTemplateRecord{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto-migrate %T: %w", m, err)
		}
	}
	return nil
}

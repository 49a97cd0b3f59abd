package inspection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DeliveryReport bundles delivery counters over a scheduling window.
type DeliveryReport struct {
	Total        int64                      `json:"total"`
	Delivered    int64                      `json:"delivered"`
	Failed       int64                      `json:"failed"`
	Pending      int64                      `json:"pending"`
	SuccessRate  float64                    `json:"successRate"`
	Distribution map[NotificationType]int64 `json:"distribution"`
}

// EngagementMetrics bundles read counters for one owner.
type EngagementMetrics struct {
	OwnerID  string  `json:"ownerId"`
	Total    int64   `json:"total"`
	Read     int64   `json:"read"`
	Unread   int64   `json:"unread"`
	ReadRate float64 `json:"readRate"`
}

// PublicationService implements notification publication operations on top
// of the stores. No transport is attached; delivery status is asserted, not
// observed.
type PublicationService struct {
	publications *PublicationStore
	owners       *OwnerStore
	templates    TemplateStore
	logger       *slog.Logger
}

// NewPublicationService creates a publication service.
func NewPublicationService(publications *PublicationStore, owners *OwnerStore, templates TemplateStore, logger *slog.Logger) *PublicationService {
	return &PublicationService{publications: publications, owners: owners, templates: templates, logger: logger}
}

// Create persists a new publication addressed to an existing owner. New
// publications start PENDING.
func (s *PublicationService) Create(pub *Publication) (*Publication, error) {
	owner, err := s.owners.Get(pub.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%s: %w", pub.OwnerID, ErrOwnerNotFound)
	}

	record := &PublicationRecord{
		ID:           uuid.New().String(),
		OwnerID:      pub.OwnerID,
		Type:         string(pub.Type),
		Title:        pub.Title,
		Content:      pub.Content,
		ScheduledFor: pub.ScheduledFor,
		Status:       string(DeliveryPending),
		Priority:     string(pub.Priority),
		SendEmail:    pub.SendEmail,
		SendSMS:      pub.SendSMS,
		SendPush:     pub.SendPush,
	}
	if err := s.publications.Create(record); err != nil {
		return nil, err
	}
	s.logger.Info("publication created", "id", record.ID, "type", record.Type, "ownerId", record.OwnerID)
	return s.toPublication(record)
}

// CreateFromTemplate renders a stored template and creates a publication
// with the rendered content.
func (s *PublicationService) CreateFromTemplate(pub *Publication, templateID string, params []TemplateParam) (*Publication, error) {
	content, err := s.templates.Get(templateID)
	if err != nil {
		return nil, err
	}
	rendered := *pub
	rendered.Content = RenderTemplate(content, params)
	return s.Create(&rendered)
}

// Update modifies an existing publication. ID, owner, and creation time are
// protected; a changed owner must exist.
func (s *PublicationService) Update(id string, pub *Publication) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}

	if pub.OwnerID != "" && pub.OwnerID != record.OwnerID {
		owner, err := s.owners.Get(pub.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, fmt.Errorf("%s: %w", pub.OwnerID, ErrOwnerNotFound)
		}
		record.OwnerID = pub.OwnerID
	}
	if pub.Type != "" {
		record.Type = string(pub.Type)
	}
	if pub.Title != "" {
		record.Title = pub.Title
	}
	if pub.Content != "" {
		record.Content = pub.Content
	}
	if !pub.ScheduledFor.IsZero() {
		record.ScheduledFor = pub.ScheduledFor
	}
	if pub.Priority != "" {
		record.Priority = string(pub.Priority)
	}
	record.SendEmail = pub.SendEmail
	record.SendSMS = pub.SendSMS
	record.SendPush = pub.SendPush

	if err := s.publications.Save(record); err != nil {
		return nil, err
	}
	return s.toPublication(record)
}

// Get returns a publication by ID.
func (s *PublicationService) Get(id string) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	return s.toPublication(record)
}

// Delete removes a publication.
func (s *PublicationService) Delete(id string) error {
	record, err := s.publications.Get(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	return s.publications.Delete(id)
}

// ListByOwner returns the owner's publications.
func (s *PublicationService) ListByOwner(ownerID string) ([]Publication, error) {
	records, err := s.publications.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByType returns publications of the given type.
func (s *PublicationService) ListByType(t NotificationType) ([]Publication, error) {
	records, err := s.publications.ListByType(t)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByRead returns publications filtered by read flag.
func (s *PublicationService) ListByRead(read bool) ([]Publication, error) {
	records, err := s.publications.ListByRead(read)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByPriority returns publications of the given priority.
func (s *PublicationService) ListByPriority(p Priority) ([]Publication, error) {
	records, err := s.publications.ListByPriority(p)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByDateRange returns publications scheduled inside [start, end].
func (s *PublicationService) ListByDateRange(start, end time.Time) ([]Publication, error) {
	records, err := s.publications.ListByScheduledBetween(start, end)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByOwnerAndType returns the owner's publications of the given type.
func (s *PublicationService) ListByOwnerAndType(ownerID string, t NotificationType) ([]Publication, error) {
	records, err := s.publications.ListByOwnerAndType(ownerID, t)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByOwnerAndRead returns the owner's publications filtered by read flag.
func (s *PublicationService) ListByOwnerAndRead(ownerID string, read bool) ([]Publication, error) {
	records, err := s.publications.ListByOwnerAndRead(ownerID, read)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// ListByTypeAndPriority returns publications matching both type and
// priority.
func (s *PublicationService) ListByTypeAndPriority(t NotificationType, p Priority) ([]Publication, error) {
	records, err := s.publications.ListByTypeAndPriority(t, p)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// MarkAsRead flags the publication read and stamps the read time.
func (s *PublicationService) MarkAsRead(id string) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	now := time.Now()
	record.Read = true
	record.ReadAt = &now
	if err := s.publications.Save(record); err != nil {
		return nil, err
	}
	return s.toPublication(record)
}

// MarkAsUnread clears the read flag and the read time.
func (s *PublicationService) MarkAsUnread(id string) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	record.Read = false
	record.ReadAt = nil
	if err := s.publications.Save(record); err != nil {
		return nil, err
	}
	return s.toPublication(record)
}

// MarkAllAsRead flags all of the owner's publications read.
func (s *PublicationService) MarkAllAsRead(ownerID string) error {
	records, err := s.publications.ListByOwnerAndRead(ownerID, false)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range records {
		records[i].Read = true
		records[i].ReadAt = &now
		if err := s.publications.Save(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

// UpdateDeliveryStatus sets the delivery status and stamps the sent time
// when the publication reaches DELIVERED.
func (s *PublicationService) UpdateDeliveryStatus(id string, status DeliveryStatus) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	record.Status = string(status)
	if status == DeliveryDelivered {
		now := time.Now()
		record.SentAt = &now
	}
	if err := s.publications.Save(record); err != nil {
		return nil, err
	}
	return s.toPublication(record)
}

// SchedulePublication moves the publication's scheduled time.
func (s *PublicationService) SchedulePublication(id string, at time.Time) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	record.ScheduledFor = at
	if err := s.publications.Save(record); err != nil {
		return nil, err
	}
	return s.toPublication(record)
}

// SendImmediate creates the publication scheduled for now and forces it to
// DELIVERED. Delivery is assumed, not observed.
func (s *PublicationService) SendImmediate(pub *Publication) (*Publication, error) {
	pub.ScheduledFor = time.Now()
	created, err := s.Create(pub)
	if err != nil {
		return nil, err
	}
	return s.UpdateDeliveryStatus(created.ID, DeliveryDelivered)
}

// SendBatch sends each publication immediately, in order. The first failure
// stops the batch.
func (s *PublicationService) SendBatch(pubs []Publication) ([]Publication, error) {
	out := make([]Publication, 0, len(pubs))
	for i := range pubs {
		sent, err := s.SendImmediate(&pubs[i])
		if err != nil {
			return out, err
		}
		out = append(out, *sent)
	}
	return out, nil
}

// ResendFailed requeues a FAILED publication as PENDING. Any other status
// is left untouched.
func (s *PublicationService) ResendFailed(id string) (*Publication, error) {
	record, err := s.publications.Get(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrPublicationNotFound)
	}
	if record.Status == string(DeliveryFailed) {
		record.Status = string(DeliveryPending)
		if err := s.publications.Save(record); err != nil {
			return nil, err
		}
	}
	return s.toPublication(record)
}

// DeleteExpired removes publications scheduled before the cutoff.
func (s *PublicationService) DeleteExpired(cutoff time.Time) error {
	return s.publications.DeleteScheduledBefore(cutoff)
}

// CountUnread returns the owner's unread publication count.
func (s *PublicationService) CountUnread(ownerID string) (int64, error) {
	return s.publications.CountByOwnerAndRead(ownerID, false)
}

// TypeDistribution returns per-type publication counts scheduled inside
// [start, end].
func (s *PublicationService) TypeDistribution(start, end time.Time) (map[NotificationType]int64, error) {
	return s.publications.TypeDistributionBetween(start, end)
}

// DeliveryStatusDistribution returns per-status publication counts
// scheduled inside [start, end].
func (s *PublicationService) DeliveryStatusDistribution(start, end time.Time) (map[DeliveryStatus]int64, error) {
	return s.publications.StatusDistributionBetween(start, end)
}

// DeliverySuccessRate returns delivered / total over the window, 0 when the
// window has no publications.
func (s *PublicationService) DeliverySuccessRate(start, end time.Time) (float64, error) {
	total, err := s.publications.CountByScheduledBetween(start, end)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	delivered, err := s.publications.CountByStatusAndScheduledBetween(DeliveryDelivered, start, end)
	if err != nil {
		return 0, err
	}
	return float64(delivered) / float64(total), nil
}

// GenerateDeliveryReport bundles delivery counters over the window.
func (s *PublicationService) GenerateDeliveryReport(start, end time.Time) (*DeliveryReport, error) {
	total, err := s.publications.CountByScheduledBetween(start, end)
	if err != nil {
		return nil, err
	}
	delivered, err := s.publications.CountByStatusAndScheduledBetween(DeliveryDelivered, start, end)
	if err != nil {
		return nil, err
	}
	failed, err := s.publications.CountByStatusAndScheduledBetween(DeliveryFailed, start, end)
	if err != nil {
		return nil, err
	}
	pending, err := s.publications.CountByStatusAndScheduledBetween(DeliveryPending, start, end)
	if err != nil {
		return nil, err
	}
	dist, err := s.publications.TypeDistributionBetween(start, end)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if total > 0 {
		rate = float64(delivered) / float64(total)
	}
	return &DeliveryReport{
		Total:        total,
		Delivered:    delivered,
		Failed:       failed,
		Pending:      pending,
		SuccessRate:  rate,
		Distribution: dist,
	}, nil
}

// NotificationHistory returns the owner's publications scheduled inside
// [start, end].
func (s *PublicationService) NotificationHistory(ownerID string, start, end time.Time) ([]Publication, error) {
	records, err := s.publications.ListByOwnerAndScheduledBetween(ownerID, start, end)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(records)
}

// OwnerEngagementMetrics bundles read counters for one owner.
func (s *PublicationService) OwnerEngagementMetrics(ownerID string) (*EngagementMetrics, error) {
	total, err := s.publications.CountByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	read, err := s.publications.CountByOwnerAndRead(ownerID, true)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if total > 0 {
		rate = float64(read) / float64(total)
	}
	return &EngagementMetrics{
		OwnerID:  ownerID,
		Total:    total,
		Read:     read,
		Unread:   total - read,
		ReadRate: rate,
	}, nil
}

func (s *PublicationService) assembleAll(records []PublicationRecord) ([]Publication, error) {
	out := make([]Publication, 0, len(records))
	for i := range records {
		pub, err := s.toPublication(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *pub)
	}
	return out, nil
}

// toPublication assembles the API shape with recipient display fields.
// Delivery attempts are only counted for FAILED publications.
func (s *PublicationService) toPublication(record *PublicationRecord) (*Publication, error) {
	pub := &Publication{
		ID:           record.ID,
		OwnerID:      record.OwnerID,
		Type:         NotificationType(record.Type),
		Title:        record.Title,
		Content:      record.Content,
		CreatedAt:    record.CreatedAt,
		ScheduledFor: record.ScheduledFor,
		SentAt:       record.SentAt,
		ReadAt:       record.ReadAt,
		Status:       DeliveryStatus(record.Status),
		Priority:     Priority(record.Priority),
		Read:         record.Read,
		SendEmail:    record.SendEmail,
		SendSMS:      record.SendSMS,
		SendPush:     record.SendPush,
	}
	if record.Status == string(DeliveryFailed) {
		pub.DeliveryAttempts = 1
	}
	owner, err := s.owners.Get(record.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		pub.RecipientName = owner.FirstName + " " + owner.LastName
		pub.RecipientEmail = owner.Email
		pub.RecipientPhone = owner.Phone
	}
	return pub, nil
}

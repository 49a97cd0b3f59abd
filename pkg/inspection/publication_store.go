package inspection

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PublicationStore provides CRUD and filter queries for publications.
type PublicationStore struct {
	db *gorm.DB
}

// NewPublicationStore creates a new PublicationStore.
func NewPublicationStore(db *gorm.DB) *PublicationStore {
	return &PublicationStore{db: db}
}

// Create inserts a new publication record.
func (s *PublicationStore) Create(record *PublicationRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("create publication: %w", err)
	}
	return nil
}

// Save updates an existing publication record.
func (s *PublicationStore) Save(record *PublicationRecord) error {
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("save publication: %w", err)
	}
	return nil
}

// Get retrieves a publication record by ID. Returns nil, nil if absent.
func (s *PublicationStore) Get(id string) (*PublicationRecord, error) {
	var record PublicationRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get publication: %w", err)
	}
	return &record, nil
}

// Delete removes a publication record by ID. Absent IDs are not an error.
func (s *PublicationStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&PublicationRecord{}).Error; err != nil {
		return fmt.Errorf("delete publication: %w", err)
	}
	return nil
}

// ListByOwner returns publications addressed to an owner.
func (s *PublicationStore) ListByOwner(ownerID string) ([]PublicationRecord, error) {
	var records []PublicationRecord
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list publications by owner: %w", err)
	}
	return records, nil
}

// ListByType returns publications of the given notification type.
func (s *PublicationStore) ListByType(t NotificationType) ([]PublicationRecord, error) {
	var records []PublicationRecord
	if err := s.db.Where("type = ?", string(t)).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list publications by type: %w", err)
	}
	return records, nil
}

// ListByRead returns publications filtered by read flag.
func (s *PublicationStore) ListByRead(read bool) ([]PublicationRecord, error) {
	var records []PublicationRecord
	if err := s.db.Where("is_read = ?", read).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list publications by read flag: %w", err)
	}
	return records, nil
}

// ListByPriority returns publications of the given priority.
func (s *PublicationStore) ListByPriority(p Priority) ([]PublicationRecord, error) {
	var records []PublicationRecord
	if err := s.db.Where("priority = ?", string(p)).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list publications by priority: %w", err)
	}
	return records, nil
}

// ListByScheduledBetween returns publications with scheduled time in
// [start, end], both endpoints inclusive.
func (s *PublicationStore) ListByScheduledBetween(start, end time.Time) ([]PublicationRecord, error) {
	var records []PublicationRecord
	err := s.db.
		Where("scheduled_for >= ? AND scheduled_for <= ?", start, end).
		Order("scheduled_for ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list publications by date range: %w", err)
	}
	return records, nil
}

// ListByOwnerAndType returns an owner's publications of the given type.
func (s *PublicationStore) ListByOwnerAndType(ownerID string, t NotificationType) ([]PublicationRecord, error) {
	var records []PublicationRecord
	err := s.db.
		Where("owner_id = ? AND type = ?", ownerID, string(t)).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list publications by owner and type: %w", err)
	}
	return records, nil
}

// ListByOwnerAndRead returns an owner's publications filtered by read flag.
func (s *PublicationStore) ListByOwnerAndRead(ownerID string, read bool) ([]PublicationRecord, error) {
	var records []PublicationRecord
	err := s.db.
		Where("owner_id = ? AND is_read = ?", ownerID, read).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list publications by owner and read flag: %w", err)
	}
	return records, nil
}

// ListByTypeAndPriority returns publications matching both type and priority.
func (s *PublicationStore) ListByTypeAndPriority(t NotificationType, p Priority) ([]PublicationRecord, error) {
	var records []PublicationRecord
	err := s.db.
		Where("type = ? AND priority = ?", string(t), string(p)).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list publications by type and priority: %w", err)
	}
	return records, nil
}

// ListByOwnerAndScheduledBetween returns an owner's publications with
// scheduled time in [start, end].
func (s *PublicationStore) ListByOwnerAndScheduledBetween(ownerID string, start, end time.Time) ([]PublicationRecord, error) {
	var records []PublicationRecord
	err := s.db.
		Where("owner_id = ? AND scheduled_for >= ? AND scheduled_for <= ?", ownerID, start, end).
		Order("scheduled_for ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list publications by owner and date range: %w", err)
	}
	return records, nil
}

// DeleteScheduledBefore removes publications scheduled strictly before the
// cutoff. Used by expired-publication cleanup.
func (s *PublicationStore) DeleteScheduledBefore(cutoff time.Time) error {
	if err := s.db.Where("scheduled_for < ?", cutoff).Delete(&PublicationRecord{}).Error; err != nil {
		return fmt.Errorf("delete expired publications: %w", err)
	}
	return nil
}

// CountByOwner returns the number of publications addressed to an owner.
func (s *PublicationStore) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := s.db.Model(&PublicationRecord{}).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count publications by owner: %w", err)
	}
	return count, nil
}

// CountByOwnerAndRead returns the number of an owner's publications with
// the given read flag.
func (s *PublicationStore) CountByOwnerAndRead(ownerID string, read bool) (int64, error) {
	var count int64
	err := s.db.Model(&PublicationRecord{}).
		Where("owner_id = ? AND is_read = ?", ownerID, read).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count publications by owner and read flag: %w", err)
	}
	return count, nil
}

// CountByOwnerAndStatus returns the number of an owner's publications in
// the given delivery status.
func (s *PublicationStore) CountByOwnerAndStatus(ownerID string, status DeliveryStatus) (int64, error) {
	var count int64
	err := s.db.Model(&PublicationRecord{}).
		Where("owner_id = ? AND status = ?", ownerID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count publications by owner and status: %w", err)
	}
	return count, nil
}

// CountByScheduledBetween counts publications scheduled in [start, end].
func (s *PublicationStore) CountByScheduledBetween(start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&PublicationRecord{}).
		Where("scheduled_for >= ? AND scheduled_for <= ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count publications by date range: %w", err)
	}
	return count, nil
}

// CountByStatusAndScheduledBetween counts publications in the given status
// scheduled in [start, end].
func (s *PublicationStore) CountByStatusAndScheduledBetween(status DeliveryStatus, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&PublicationRecord{}).
		Where("status = ? AND scheduled_for >= ? AND scheduled_for <= ?", string(status), start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count publications by status and date range: %w", err)
	}
	return count, nil
}

// TypeDistributionBetween returns per-type publication counts over
// [start, end] of scheduled time.
func (s *PublicationStore) TypeDistributionBetween(start, end time.Time) (map[NotificationType]int64, error) {
	type row struct {
		Type  string
		Total int64
	}
	var rows []row
	err := s.db.Model(&PublicationRecord{}).
		Select("type, COUNT(*) AS total").
		Where("scheduled_for >= ? AND scheduled_for <= ?", start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("publication type distribution: %w", err)
	}
	out := make(map[NotificationType]int64, len(rows))
	for _, r := range rows {
		out[NotificationType(r.Type)] = r.Total
	}
	return out, nil
}

// StatusDistributionBetween returns per-delivery-status publication counts
// over [start, end] of scheduled time.
func (s *PublicationStore) StatusDistributionBetween(start, end time.Time) (map[DeliveryStatus]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := s.db.Model(&PublicationRecord{}).
		Select("status, COUNT(*) AS total").
		Where("scheduled_for >= ? AND scheduled_for <= ?", start, end).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("publication status distribution: %w", err)
	}
	out := make(map[DeliveryStatus]int64, len(rows))
	for _, r := range rows {
		out[DeliveryStatus(r.Status)] = r.Total
	}
	return out, nil
}

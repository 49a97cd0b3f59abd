package inspection

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// TemplateStore persists notification templates keyed by template ID.
type TemplateStore interface {
	Put(templateID, content string) error
	Get(templateID string) (string, error)
	Delete(templateID string) error
	List() ([]string, error)
}

// RenderTemplate substitutes ${key} tokens in content with the given
// parameters, applied in slice order. Substitution is literal: values
// containing ${...} are not expanded again, and tokens with no matching
// parameter are left in place.
func RenderTemplate(content string, params []TemplateParam) string {
	rendered := content
	for _, p := range params {
		rendered = strings.ReplaceAll(rendered, "${"+p.Key+"}", p.Value)
	}
	return rendered
}

// MemoryTemplateStore keeps templates in process memory. It is the
// default store when no database-backed store is configured.
type MemoryTemplateStore struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewMemoryTemplateStore returns an empty in-memory template store.
func NewMemoryTemplateStore() *MemoryTemplateStore {
	return &MemoryTemplateStore{templates: make(map[string]string)}
}

func (s *MemoryTemplateStore) Put(templateID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[templateID] = content
	return nil
}

func (s *MemoryTemplateStore) Get(templateID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.templates[templateID]
	if !ok {
		return "", fmt.Errorf("template %q: %w", templateID, ErrTemplateNotFound)
	}
	return content, nil
}

func (s *MemoryTemplateStore) Delete(templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[templateID]; !ok {
		return fmt.Errorf("template %q: %w", templateID, ErrTemplateNotFound)
	}
	delete(s.templates, templateID)
	return nil
}

func (s *MemoryTemplateStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// DBTemplateStore persists templates in the registry database.
type DBTemplateStore struct {
	db *gorm.DB
}

// NewDBTemplateStore returns a template store backed by the given database.
func NewDBTemplateStore(db *gorm.DB) *DBTemplateStore {
	return &DBTemplateStore{db: db}
}

func (s *DBTemplateStore) Put(templateID, content string) error {
	record := NotificationTemplateRecord{TemplateID: templateID, Content: content}
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("save template %q: %w", templateID, err)
	}
	return nil
}

func (s *DBTemplateStore) Get(templateID string) (string, error) {
	var record NotificationTemplateRecord
	err := s.db.First(&record, "template_id = ?", templateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("template %q: %w", templateID, ErrTemplateNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get template %q: %w", templateID, err)
	}
	return record.Content, nil
}

func (s *DBTemplateStore) Delete(templateID string) error {
	result := s.db.Delete(&NotificationTemplateRecord{}, "template_id = ?", templateID)
	if result.Error != nil {
		return fmt.Errorf("delete template %q: %w", templateID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("template %q: %w", templateID, ErrTemplateNotFound)
	}
	return nil
}

func (s *DBTemplateStore) List() ([]string, error) {
	var ids []string
	if err := s.db.Model(&NotificationTemplateRecord{}).
		Order("template_id ASC").
		Pluck("template_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return ids, nil
}

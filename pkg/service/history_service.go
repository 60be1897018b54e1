// Chat history persistence
package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/utils"
)

// DefaultHistoryLimit bounds ListRecent when the caller supplies no limit.
const DefaultHistoryLimit = 20

// HistoryRecorder persists question/answer/sources tuples. The orchestrator
// depends on this interface so tests can inject a failing recorder.
type HistoryRecorder interface {
	Record(companyID, userID, question, answer string, sources []models.Source) (*models.ChatHistoryEntry, error)
}

// HistoryService is the gorm-backed history recorder.
type HistoryService struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(database *gorm.DB) *HistoryService {
	return &HistoryService{
		db:     database,
		logger: utils.GetLogger(),
	}
}

// AutoMigrate creates database tables
func (s *HistoryService) AutoMigrate() error {
	return s.db.AutoMigrate(&models.ChatHistoryEntry{})
}

// Record appends one history entry and returns it with its assigned ID and
// timestamp. Entries are never updated or deleted.
func (s *HistoryService) Record(companyID, userID, question, answer string, sources []models.Source) (*models.ChatHistoryEntry, error) {
	entry := &models.ChatHistoryEntry{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Sources:   sources,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to record chat history: %w", err)
	}
	return entry, nil
}

// ListRecent returns up to limit entries for a company, newest first, each
// enriched with the asking user's display name. A limit <= 0 means the
// default of 20.
func (s *HistoryService) ListRecent(companyID string, limit int) ([]models.ChatHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var entries []models.ChatHistoryEntry
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return entries, nil
	}

	userIDs := make([]string, 0, len(entries))
	seen := map[string]struct{}{}
	for _, e := range entries {
		if _, ok := seen[e.UserID]; !ok {
			seen[e.UserID] = struct{}{}
			userIDs = append(userIDs, e.UserID)
		}
	}

	var users []models.User
	if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range entries {
		entries[i].UserName = names[entries[i].UserID]
	}
	return entries, nil
}

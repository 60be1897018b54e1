// Media asset lifecycle - metadata, extracted text, backing files
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/utils"
)

// MediaService owns media asset metadata and the files backing them.
type MediaService struct {
	db         *gorm.DB
	records    *RecordService
	uploadsDir string
	logger     *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(database *gorm.DB, records *RecordService, uploadsDir string) *MediaService {
	return &MediaService{
		db:         database,
		records:    records,
		uploadsDir: uploadsDir,
		logger:     utils.GetLogger(),
	}
}

// AutoMigrate creates database tables
func (s *MediaService) AutoMigrate() error {
	return s.db.AutoMigrate(&models.MediaAsset{})
}

// EnsureUploadsDir creates the uploads directory if needed.
func (s *MediaService) EnsureUploadsDir() error {
	if err := os.MkdirAll(s.uploadsDir, 0o700); err != nil {
		return fmt.Errorf("create uploads dir %s: %w", s.uploadsDir, err)
	}
	return nil
}

// PasteContent registers pasted text as a media asset. The content is written
// to the uploads directory so the asset has a real backing file, and the text
// is stored as extracted_text so it is immediately usable for context assembly.
func (s *MediaService) PasteContent(companyID string, req *models.PasteMediaRequest, userID string) (*models.MediaAsset, error) {
	if _, err := s.records.GetCompany(companyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidRequest)
	}
	if err := s.EnsureUploadsDir(); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = "Pasted Content"
	}
	fileType := req.ContentType
	if fileType == "" {
		fileType = models.FileTypeDocument
	}
	if _, ok := models.SupportedFileTypes[fileType]; !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidRequest, fileType)
	}

	storedFilename := fmt.Sprintf("pasted-%d.txt", time.Now().UnixNano())
	filePath := filepath.Join(s.uploadsDir, storedFilename)
	if err := os.WriteFile(filePath, []byte(req.Content), 0o600); err != nil {
		return nil, fmt.Errorf("write pasted content: %w", err)
	}

	asset := &models.MediaAsset{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Title:            title,
		Description:      req.Description,
		FileType:         fileType,
		OriginalFilename: title + ".txt",
		StoredFilename:   storedFilename,
		FilePath:         filePath,
		FileSize:         int64(len(req.Content)),
		MimeType:         "text/plain",
		ExtractedText:    req.Content,
		ProcessingStatus: models.ProcessingStatusCompleted,
		UploadedBy:       userID,
	}

	if err := s.db.Create(asset).Error; err != nil {
		// Keep the filesystem consistent with the database.
		_ = os.Remove(filePath)
		return nil, fmt.Errorf("failed to create media asset: %w", err)
	}
	return asset, nil
}

// GetAsset retrieves a media asset by ID
func (s *MediaService) GetAsset(id string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// ListAssets returns all of a company's media assets, newest first
func (s *MediaService) ListAssets(companyID string) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// ListCompletedAssets returns the company's processed assets in insertion
// order. Only these are eligible for context assembly.
func (s *MediaService) ListCompletedAssets(companyID string) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	if err := s.db.Where("company_id = ? AND processing_status = ?", companyID, models.ProcessingStatusCompleted).
		Order("created_at ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateAsset applies a partial metadata update. Supplying extracted_text also
// marks the asset completed.
func (s *MediaService) UpdateAsset(id string, req *models.UpdateMediaRequest) (*models.MediaAsset, error) {
	asset, err := s.GetAsset(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ExtractedText != nil {
		updates["extracted_text"] = *req.ExtractedText
		updates["processing_status"] = models.ProcessingStatusCompleted
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updates provided", ErrInvalidRequest)
	}

	updates["updated_at"] = time.Now()
	if err := s.db.Model(asset).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetAsset(id)
}

// DeleteAsset removes a media asset and its backing file
func (s *MediaService) DeleteAsset(id string) error {
	asset, err := s.GetAsset(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.MediaAsset{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := os.Remove(asset.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to remove media file from disk", "path", asset.FilePath, "error", err)
	}
	return nil
}

// ReextractText re-reads the backing file and refreshes extracted_text.
// Text-like mime types are read directly; other types yield no text, matching
// the upload-time extraction behavior. A read failure marks the asset failed.
func (s *MediaService) ReextractText(id string) (*models.MediaAsset, error) {
	asset, err := s.GetAsset(id)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(asset.FilePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	extracted := ""
	status := models.ProcessingStatusCompleted
	if isTextMime(asset.MimeType) {
		b, err := os.ReadFile(asset.FilePath)
		if err != nil {
			s.logger.Error("Text extraction failed", "id", id, "path", asset.FilePath, "error", err)
			status = models.ProcessingStatusFailed
		} else {
			extracted = string(b)
		}
	}

	updates := map[string]interface{}{
		"extracted_text":    extracted,
		"processing_status": status,
		"updated_at":        time.Now(),
	}
	if err := s.db.Model(asset).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetAsset(id)
}

func isTextMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || mimeType == "application/json"
}

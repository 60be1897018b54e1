// Record store - companies and their content records
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/utils"
)

// DefaultUserEmail identifies the account used when no requesting user is supplied.
const DefaultUserEmail = "admin@clarity.local"

// RecordService owns companies, transcripts, emails, documents and users.
type RecordService struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRecordService creates a new record service
func NewRecordService(database *gorm.DB) *RecordService {
	return &RecordService{
		db:     database,
		logger: utils.GetLogger(),
	}
}

// AutoMigrate creates database tables
func (s *RecordService) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Transcript{},
		&models.Email{},
		&models.Document{},
	)
}

// EnsureDefaultUser makes sure the fallback user exists and returns it.
func (s *RecordService) EnsureDefaultUser() (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", DefaultUserEmail).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		ID:    uuid.New().String(),
		Email: DefaultUserEmail,
		Name:  "Clarity Admin",
		Role:  models.UserRoleAdmin,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create default user: %w", err)
	}
	return &user, nil
}

// GetUser retrieves a user by ID
func (s *RecordService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ========== Companies ==========

// CompanyFilter narrows ListCompanies results
type CompanyFilter struct {
	Type   string
	Status string
	Search string
}

// CreateCompany creates a new company
func (s *RecordService) CreateCompany(req *models.CreateCompanyRequest) (*models.Company, error) {
	if _, ok := models.SupportedCompanyTypes[req.Type]; !ok {
		return nil, fmt.Errorf("%w: unsupported company type %q", ErrInvalidRequest, req.Type)
	}
	status := req.Status
	if status == "" {
		status = models.CompanyStatusActive
	}
	if _, ok := models.SupportedCompanyStatuses[status]; !ok {
		return nil, fmt.Errorf("%w: unsupported company status %q", ErrInvalidRequest, status)
	}

	company := &models.Company{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		Type:                req.Type,
		LogoURL:             req.LogoURL,
		Website:             req.Website,
		Industry:            req.Industry,
		EmployeeCount:       req.EmployeeCount,
		Description:         req.Description,
		Status:              status,
		PrimaryContactName:  req.PrimaryContactName,
		PrimaryContactEmail: req.PrimaryContactEmail,
		PrimaryContactTitle: req.PrimaryContactTitle,
		ContractValue:       req.ContractValue,
		ContractStartDate:   req.ContractStartDate,
		ContractEndDate:     req.ContractEndDate,
		Notes:               req.Notes,
	}

	if err := s.db.Create(company).Error; err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *RecordService) GetCompany(id string) (*models.Company, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

// GetCompanyWithStats retrieves a company together with its content counts
func (s *RecordService) GetCompanyWithStats(id string) (*models.CompanyWithStats, error) {
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}

	stats := &models.CompanyWithStats{Company: *company}
	if err := s.db.Model(&models.Transcript{}).Where("company_id = ?", id).Count(&stats.TranscriptCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Email{}).Where("company_id = ?", id).Count(&stats.EmailCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Document{}).Where("company_id = ?", id).Count(&stats.DocumentCount).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ListCompanies lists companies, newest first, with content counts
func (s *RecordService) ListCompanies(filter CompanyFilter) ([]models.CompanyWithStats, error) {
	query := s.db.Model(&models.Company{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var companies []models.Company
	if err := query.Order("created_at DESC").Find(&companies).Error; err != nil {
		return nil, err
	}

	result := make([]models.CompanyWithStats, 0, len(companies))
	for _, company := range companies {
		stats := models.CompanyWithStats{Company: company}
		if err := s.db.Model(&models.Transcript{}).Where("company_id = ?", company.ID).Count(&stats.TranscriptCount).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.Email{}).Where("company_id = ?", company.ID).Count(&stats.EmailCount).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.Document{}).Where("company_id = ?", company.ID).Count(&stats.DocumentCount).Error; err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, nil
}

// UpdateCompany applies a partial update to a company
func (s *RecordService) UpdateCompany(id string, req *models.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		if _, ok := models.SupportedCompanyTypes[*req.Type]; !ok {
			return nil, fmt.Errorf("%w: unsupported company type %q", ErrInvalidRequest, *req.Type)
		}
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		if _, ok := models.SupportedCompanyStatuses[*req.Status]; !ok {
			return nil, fmt.Errorf("%w: unsupported company status %q", ErrInvalidRequest, *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.Industry != nil {
		updates["industry"] = *req.Industry
	}
	if req.EmployeeCount != nil {
		updates["employee_count"] = *req.EmployeeCount
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PrimaryContactName != nil {
		updates["primary_contact_name"] = *req.PrimaryContactName
	}
	if req.PrimaryContactEmail != nil {
		updates["primary_contact_email"] = *req.PrimaryContactEmail
	}
	if req.PrimaryContactTitle != nil {
		updates["primary_contact_title"] = *req.PrimaryContactTitle
	}
	if req.ContractValue != nil {
		updates["contract_value"] = *req.ContractValue
	}
	if req.ContractStartDate != nil {
		updates["contract_start_date"] = *req.ContractStartDate
	}
	if req.ContractEndDate != nil {
		updates["contract_end_date"] = *req.ContractEndDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(company).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCompany(id)
}

// DeleteCompany removes a company and all records that belong to it
func (s *RecordService) DeleteCompany(id string) error {
	if _, err := s.GetCompany(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transcript{}, &models.Email{}, &models.Document{},
			&models.MediaAsset{}, &models.ChatHistoryEntry{},
		} {
			if err := tx.Where("company_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Company{}, "id = ?", id).Error
	})
}

// ========== Transcripts ==========

// CreateTranscript adds a transcript to a company
func (s *RecordService) CreateTranscript(companyID string, req *models.CreateTranscriptRequest) (*models.Transcript, error) {
	if _, err := s.GetCompany(companyID); err != nil {
		return nil, err
	}

	meetingDate := time.Now()
	if req.MeetingDate != nil {
		meetingDate = *req.MeetingDate
	}

	transcript := &models.Transcript{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Title:           req.Title,
		MeetingDate:     meetingDate,
		DurationMinutes: req.DurationMinutes,
		Participants:    req.Participants,
		Content:         req.Content,
		Summary:         req.Summary,
		KeyPoints:       req.KeyPoints,
		VideoURL:        req.VideoURL,
	}

	if err := s.db.Create(transcript).Error; err != nil {
		return nil, fmt.Errorf("failed to create transcript: %w", err)
	}
	return transcript, nil
}

// GetTranscript retrieves a transcript by ID
func (s *RecordService) GetTranscript(id string) (*models.Transcript, error) {
	var transcript models.Transcript
	if err := s.db.First(&transcript, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, err
	}
	return &transcript, nil
}

// ListTranscripts returns a company's transcripts in insertion order
func (s *RecordService) ListTranscripts(companyID string) ([]models.Transcript, error) {
	var transcripts []models.Transcript
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// UpdateTranscript applies a partial update to a transcript
func (s *RecordService) UpdateTranscript(id string, req *models.UpdateTranscriptRequest) (*models.Transcript, error) {
	transcript, err := s.GetTranscript(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.MeetingDate != nil {
		updates["meeting_date"] = *req.MeetingDate
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Participants != nil {
		updates["participants"] = models.StringArray(req.Participants)
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.KeyPoints != nil {
		updates["key_points"] = models.StringArray(req.KeyPoints)
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(transcript).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetTranscript(id)
}

// DeleteTranscript removes a transcript
func (s *RecordService) DeleteTranscript(id string) error {
	if _, err := s.GetTranscript(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Transcript{}, "id = ?", id).Error
}

// ========== Emails ==========

// CreateEmail adds an email to a company
func (s *RecordService) CreateEmail(companyID string, req *models.CreateEmailRequest) (*models.Email, error) {
	if _, err := s.GetCompany(companyID); err != nil {
		return nil, err
	}
	if len(req.ToAddresses) == 0 {
		return nil, fmt.Errorf("%w: at least one to address is required", ErrInvalidRequest)
	}

	sentDate := time.Now()
	if req.SentDate != nil {
		sentDate = *req.SentDate
	}

	email := &models.Email{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Subject:         req.Subject,
		FromAddress:     req.FromAddress,
		ToAddresses:     req.ToAddresses,
		CcAddresses:     req.CcAddresses,
		SentDate:        sentDate,
		Body:            req.Body,
		ThreadID:        req.ThreadID,
		HasAttachments:  req.HasAttachments,
		AttachmentNames: req.AttachmentNames,
	}

	if err := s.db.Create(email).Error; err != nil {
		return nil, fmt.Errorf("failed to create email: %w", err)
	}
	return email, nil
}

// GetEmail retrieves an email by ID
func (s *RecordService) GetEmail(id string) (*models.Email, error) {
	var email models.Email
	if err := s.db.First(&email, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	return &email, nil
}

// ListEmails returns a company's emails in insertion order
func (s *RecordService) ListEmails(companyID string) ([]models.Email, error) {
	var emails []models.Email
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

// UpdateEmail applies a partial update to an email
func (s *RecordService) UpdateEmail(id string, req *models.UpdateEmailRequest) (*models.Email, error) {
	email, err := s.GetEmail(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.FromAddress != nil {
		updates["from_address"] = *req.FromAddress
	}
	if req.ToAddresses != nil {
		if len(req.ToAddresses) == 0 {
			return nil, fmt.Errorf("%w: at least one to address is required", ErrInvalidRequest)
		}
		updates["to_addresses"] = models.StringArray(req.ToAddresses)
	}
	if req.CcAddresses != nil {
		updates["cc_addresses"] = models.StringArray(req.CcAddresses)
	}
	if req.SentDate != nil {
		updates["sent_date"] = *req.SentDate
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(email).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetEmail(id)
}

// DeleteEmail removes an email
func (s *RecordService) DeleteEmail(id string) error {
	if _, err := s.GetEmail(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Email{}, "id = ?", id).Error
}

// ========== Documents ==========

// CreateDocument adds a document to a company
func (s *RecordService) CreateDocument(companyID string, req *models.CreateDocumentRequest) (*models.Document, error) {
	if _, err := s.GetCompany(companyID); err != nil {
		return nil, err
	}
	if _, ok := models.SupportedDocumentTypes[req.Type]; !ok {
		return nil, fmt.Errorf("%w: unsupported document type %q", ErrInvalidRequest, req.Type)
	}

	document := &models.Document{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Title:     req.Title,
		Type:      req.Type,
		Content:   req.Content,
		FileURL:   req.FileURL,
		FileSize:  req.FileSize,
		MimeType:  req.MimeType,
	}

	if err := s.db.Create(document).Error; err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return document, nil
}

// GetDocument retrieves a document by ID
func (s *RecordService) GetDocument(id string) (*models.Document, error) {
	var document models.Document
	if err := s.db.First(&document, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

// ListDocuments returns a company's documents in insertion order
func (s *RecordService) ListDocuments(companyID string) ([]models.Document, error) {
	var documents []models.Document
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// UpdateDocument applies a partial update to a document
func (s *RecordService) UpdateDocument(id string, req *models.UpdateDocumentRequest) (*models.Document, error) {
	document, err := s.GetDocument(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Type != nil {
		if _, ok := models.SupportedDocumentTypes[*req.Type]; !ok {
			return nil, fmt.Errorf("%w: unsupported document type %q", ErrInvalidRequest, *req.Type)
		}
		updates["type"] = *req.Type
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.FileURL != nil {
		updates["file_url"] = *req.FileURL
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.Model(document).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetDocument(id)
}

// DeleteDocument removes a document
func (s *RecordService) DeleteDocument(id string) error {
	if _, err := s.GetDocument(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Document{}, "id = ?", id).Error
}

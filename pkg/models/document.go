// Database model for documents
package models

import "time"

// Document type constants
const (
	DocumentTypeContract     = "contract"
	DocumentTypeProposal     = "proposal"
	DocumentTypePresentation = "presentation"
	DocumentTypeReport       = "report"
	DocumentTypeOther        = "other"
)

// SupportedDocumentTypes all valid document type values
var SupportedDocumentTypes = map[string]struct{}{
	DocumentTypeContract:     {},
	DocumentTypeProposal:     {},
	DocumentTypePresentation: {},
	DocumentTypeReport:       {},
	DocumentTypeOther:        {},
}

// Document represents one document belonging to a company
type Document struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CompanyID string `json:"company_id" gorm:"index;size:36;not null"`

	Title string `json:"title" gorm:"size:255;not null"`
	Type  string `json:"type" gorm:"size:20;not null"` // contract, proposal, presentation, report, other

	Content  string `json:"content,omitempty" gorm:"type:text"`
	FilePath string `json:"file_path,omitempty" gorm:"size:500"`
	FileURL  string `json:"file_url,omitempty" gorm:"size:500"`
	FileSize *int64 `json:"file_size,omitempty"`
	MimeType string `json:"mime_type,omitempty" gorm:"size:100"`

	UploadedBy string `json:"uploaded_by,omitempty" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (Document) TableName() string {
	return "documents"
}

// CreateDocumentRequest is the payload for adding a document to a company
type CreateDocumentRequest struct {
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content"`
	FileURL  string `json:"file_url"`
	FileSize *int64 `json:"file_size"`
	MimeType string `json:"mime_type"`
}

// UpdateDocumentRequest is the payload for updating a document
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Type    *string `json:"type"`
	Content *string `json:"content"`
	FileURL *string `json:"file_url"`
}

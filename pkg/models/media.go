// Database model for uploaded media files
package models

import (
	"strings"
	"time"
)

// Media file type constants
const (
	FileTypeImage    = "image"
	FileTypeVideo    = "video"
	FileTypeAudio    = "audio"
	FileTypePDF      = "pdf"
	FileTypeDocument = "document"
	FileTypeOther    = "other"
)

// Processing status constants
const (
	ProcessingStatusPending   = "pending"
	ProcessingStatusCompleted = "completed"
	ProcessingStatusFailed    = "failed"
)

// SupportedFileTypes all valid media file type values
var SupportedFileTypes = map[string]struct{}{
	FileTypeImage:    {},
	FileTypeVideo:    {},
	FileTypeAudio:    {},
	FileTypePDF:      {},
	FileTypeDocument: {},
	FileTypeOther:    {},
}

// MediaAsset represents one uploaded media file plus its extracted text
type MediaAsset struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CompanyID string `json:"company_id" gorm:"index;size:36;not null"`

	Title       string `json:"title" gorm:"size:255;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	FileType    string `json:"file_type" gorm:"size:20;not null"` // image, video, audio, pdf, document, other

	OriginalFilename string `json:"original_filename" gorm:"size:255;not null"`
	StoredFilename   string `json:"stored_filename" gorm:"size:255;not null"`
	FilePath         string `json:"file_path" gorm:"size:500;not null"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type" gorm:"size:100;not null"`

	ExtractedText    string `json:"extracted_text,omitempty" gorm:"type:text"`
	ProcessingStatus string `json:"processing_status" gorm:"size:20;default:'pending'"` // pending, completed, failed

	UploadedBy string `json:"uploaded_by,omitempty" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (MediaAsset) TableName() string {
	return "media_files"
}

// IsImage reports whether the stored file is an image by mime type.
func (m *MediaAsset) IsImage() bool {
	return strings.HasPrefix(m.MimeType, "image/")
}

// FileTypeForMime maps a mime type to the media file type category
func FileTypeForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return FileTypeAudio
	case strings.HasPrefix(mimeType, "image/"):
		return FileTypeImage
	case mimeType == "application/pdf":
		return FileTypePDF
	case strings.HasPrefix(mimeType, "text/"),
		strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "sheet"):
		return FileTypeDocument
	default:
		return FileTypeOther
	}
}

// PasteMediaRequest registers pasted text content as a media asset
type PasteMediaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"content_type"`
}

// UpdateMediaRequest is the payload for updating media metadata.
// Setting ExtractedText also marks the asset completed.
type UpdateMediaRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	ExtractedText *string `json:"extracted_text"`
}

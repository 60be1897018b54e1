// Database model for email exchanges
package models

import "time"

// Email represents one email exchange belonging to a company
type Email struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CompanyID string `json:"company_id" gorm:"index;size:36;not null"`

	Subject     string      `json:"subject" gorm:"size:500;not null"`
	FromAddress string      `json:"from_address" gorm:"size:255;not null"`
	ToAddresses StringArray `json:"to_addresses" gorm:"type:json;not null"`
	CcAddresses StringArray `json:"cc_addresses,omitempty" gorm:"type:json"`
	SentDate    time.Time   `json:"sent_date" gorm:"not null"`
	Body        string      `json:"body" gorm:"type:text;not null"`

	ThreadID        string      `json:"thread_id,omitempty" gorm:"size:36"`
	HasAttachments  bool        `json:"has_attachments" gorm:"default:false"`
	AttachmentNames StringArray `json:"attachment_names,omitempty" gorm:"type:json"`

	UploadedBy string `json:"uploaded_by,omitempty" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (Email) TableName() string {
	return "emails"
}

// CreateEmailRequest is the payload for adding an email to a company
type CreateEmailRequest struct {
	Subject         string     `json:"subject" binding:"required"`
	FromAddress     string     `json:"from_address" binding:"required"`
	ToAddresses     []string   `json:"to_addresses" binding:"required"`
	CcAddresses     []string   `json:"cc_addresses"`
	SentDate        *time.Time `json:"sent_date"`
	Body            string     `json:"body" binding:"required"`
	ThreadID        string     `json:"thread_id"`
	HasAttachments  bool       `json:"has_attachments"`
	AttachmentNames []string   `json:"attachment_names"`
}

// UpdateEmailRequest is the payload for updating an email
type UpdateEmailRequest struct {
	Subject     *string    `json:"subject"`
	FromAddress *string    `json:"from_address"`
	ToAddresses []string   `json:"to_addresses"`
	CcAddresses []string   `json:"cc_addresses"`
	SentDate    *time.Time `json:"sent_date"`
	Body        *string    `json:"body"`
}

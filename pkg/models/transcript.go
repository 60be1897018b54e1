// Database model for meeting transcripts
package models

import "time"

// Transcript represents one meeting transcript belonging to a company
type Transcript struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CompanyID string `json:"company_id" gorm:"index;size:36;not null"`

	Title           string      `json:"title" gorm:"size:255;not null"`
	MeetingDate     time.Time   `json:"meeting_date" gorm:"not null"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	Participants    StringArray `json:"participants,omitempty" gorm:"type:json"`

	// Content is the full raw transcript text and is never empty.
	Content   string      `json:"content" gorm:"type:text;not null"`
	Summary   string      `json:"summary,omitempty" gorm:"type:text"`
	KeyPoints StringArray `json:"key_points,omitempty" gorm:"type:json"`
	VideoURL  string      `json:"video_url,omitempty" gorm:"size:500"`

	UploadedBy string `json:"uploaded_by,omitempty" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (Transcript) TableName() string {
	return "transcripts"
}

// CreateTranscriptRequest is the payload for adding a transcript to a company
type CreateTranscriptRequest struct {
	Title           string     `json:"title" binding:"required"`
	MeetingDate     *time.Time `json:"meeting_date"`
	DurationMinutes *int       `json:"duration_minutes"`
	Participants    []string   `json:"participants"`
	Content         string     `json:"content" binding:"required"`
	Summary         string     `json:"summary"`
	KeyPoints       []string   `json:"key_points"`
	VideoURL        string     `json:"video_url"`
}

// UpdateTranscriptRequest is the payload for updating a transcript
type UpdateTranscriptRequest struct {
	Title           *string    `json:"title"`
	MeetingDate     *time.Time `json:"meeting_date"`
	DurationMinutes *int       `json:"duration_minutes"`
	Participants    []string   `json:"participants"`
	Content         *string    `json:"content"`
	Summary         *string    `json:"summary"`
	KeyPoints       []string   `json:"key_points"`
	VideoURL        *string    `json:"video_url"`
}

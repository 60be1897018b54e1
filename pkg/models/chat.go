// Database models for the Ask AI chat history
package models

import "time"

// Source type constants
const (
	SourceTypeTranscript = "transcript"
	SourceTypeEmail      = "email"
	SourceTypeDocument   = "document"
	SourceTypeMedia      = "media"
)

// Source is one heuristically-attributed citation linking an answer back to a
// record that was part of the assembled context.
type Source struct {
	Type    string `json:"type"` // transcript, email, document, media
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// ChatHistoryEntry is one persisted question/answer/sources exchange.
// Entries are append-only.
type ChatHistoryEntry struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CompanyID string `json:"company_id" gorm:"index;size:36;not null"`
	UserID    string `json:"user_id" gorm:"size:36;not null"`

	Question string     `json:"question" gorm:"type:text;not null"`
	Answer   string     `json:"answer" gorm:"type:text;not null"`
	Sources  SourceList `json:"sources" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`

	// UserName is joined from the users table when listing history.
	UserName string `json:"user_name,omitempty" gorm:"-"`
}

// TableName returns the table name
func (ChatHistoryEntry) TableName() string {
	return "chat_history"
}

// AskRequest is the payload for asking a question about a company
type AskRequest struct {
	CompanyID string `json:"company_id"`
	Question  string `json:"question"`
}

// AskResponse is the answer plus its attributed sources
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Database model for users
package models

import "time"

// User role constants
const (
	UserRoleAdmin    = "admin"
	UserRoleEmployee = "employee"
)

// User is the account a chat history entry is attributed to.
// Authentication itself is handled outside this service.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;size:36"`
	Email string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name  string `json:"name" gorm:"size:255;not null"`
	Role  string `json:"role" gorm:"size:20;default:'employee'"` // admin, employee

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (User) TableName() string {
	return "users"
}

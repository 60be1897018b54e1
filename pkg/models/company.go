// Database model for companies
package models

import "time"

// Company type constants
const (
	CompanyTypeCustomer = "customer"
	CompanyTypeProspect = "prospect"
)

// Company status constants
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
	CompanyStatusChurned  = "churned"
	CompanyStatusLost     = "lost"
)

// SupportedCompanyTypes all valid company type values
var SupportedCompanyTypes = map[string]struct{}{
	CompanyTypeCustomer: {},
	CompanyTypeProspect: {},
}

// SupportedCompanyStatuses all valid company status values
var SupportedCompanyStatuses = map[string]struct{}{
	CompanyStatusActive:   {},
	CompanyStatusInactive: {},
	CompanyStatusChurned:  {},
	CompanyStatusLost:     {},
}

// Company is the aggregate root all content records belong to
type Company struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"size:255;not null"`
	Type string `json:"type" gorm:"size:20;not null"` // customer, prospect

	LogoURL       string `json:"logo_url,omitempty" gorm:"size:500"`
	Website       string `json:"website,omitempty" gorm:"size:500"`
	Industry      string `json:"industry,omitempty" gorm:"size:100"`
	EmployeeCount string `json:"employee_count,omitempty" gorm:"size:50"`
	Description   string `json:"description,omitempty" gorm:"type:text"`
	Status        string `json:"status" gorm:"size:20;default:'active'"` // active, inactive, churned, lost

	PrimaryContactName  string `json:"primary_contact_name,omitempty" gorm:"size:255"`
	PrimaryContactEmail string `json:"primary_contact_email,omitempty" gorm:"size:255"`
	PrimaryContactTitle string `json:"primary_contact_title,omitempty" gorm:"size:255"`

	ContractValue     *float64   `json:"contract_value,omitempty"`
	ContractStartDate *time.Time `json:"contract_start_date,omitempty"`
	ContractEndDate   *time.Time `json:"contract_end_date,omitempty"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name
func (Company) TableName() string {
	return "companies"
}

// CompanyWithStats is a company plus content counts for list/detail views
type CompanyWithStats struct {
	Company
	TranscriptCount int64 `json:"transcript_count"`
	EmailCount      int64 `json:"email_count"`
	DocumentCount   int64 `json:"document_count"`
}

// CreateCompanyRequest is the payload for creating a company
type CreateCompanyRequest struct {
	Name                string     `json:"name" binding:"required"`
	Type                string     `json:"type" binding:"required"`
	LogoURL             string     `json:"logo_url"`
	Website             string     `json:"website"`
	Industry            string     `json:"industry"`
	EmployeeCount       string     `json:"employee_count"`
	Description         string     `json:"description"`
	Status              string     `json:"status"`
	PrimaryContactName  string     `json:"primary_contact_name"`
	PrimaryContactEmail string     `json:"primary_contact_email"`
	PrimaryContactTitle string     `json:"primary_contact_title"`
	ContractValue       *float64   `json:"contract_value"`
	ContractStartDate   *time.Time `json:"contract_start_date"`
	ContractEndDate     *time.Time `json:"contract_end_date"`
	Notes               string     `json:"notes"`
}

// UpdateCompanyRequest is the payload for updating a company.
// Pointer fields distinguish "not sent" from "clear".
type UpdateCompanyRequest struct {
	Name                *string    `json:"name"`
	Type                *string    `json:"type"`
	LogoURL             *string    `json:"logo_url"`
	Website             *string    `json:"website"`
	Industry            *string    `json:"industry"`
	EmployeeCount       *string    `json:"employee_count"`
	Description         *string    `json:"description"`
	Status              *string    `json:"status"`
	PrimaryContactName  *string    `json:"primary_contact_name"`
	PrimaryContactEmail *string    `json:"primary_contact_email"`
	PrimaryContactTitle *string    `json:"primary_contact_title"`
	ContractValue       *float64   `json:"contract_value"`
	ContractStartDate   *time.Time `json:"contract_start_date"`
	ContractEndDate     *time.Time `json:"contract_end_date"`
	Notes               *string    `json:"notes"`
}

package client

import (
	"time"

	"gorm.io/gorm"
)

// Client statuses.
const (
	StatusLead     = "lead"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Client is a company the consultancy works with, linked to the portal
// account that may log in on its behalf.
type Client struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	CompanyName   string `gorm:"size:255" json:"companyName"`
	ContactPerson string `gorm:"size:255" json:"contactPerson"`
	Phone         string `gorm:"size:50" json:"phone"`
	Industry      string `gorm:"size:100" json:"industry"`
	Status        string `gorm:"size:50;not null;default:'lead';index" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DisplayName is what the portal shows for this client, falling back from
// company name to contact person to a fixed placeholder.
func (c *Client) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	if c.ContactPerson != "" {
		return c.ContactPerson
	}
	return "Unknown Client"
}

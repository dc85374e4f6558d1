package contract

import (
	"time"

	"gorm.io/gorm"
)

// Contract statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Contract is a consulting engagement. It always references the client it
// is delivered to; when an affiliate brought the deal in, AffiliateID is
// set as well.
type Contract struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	AffiliateID *uint `gorm:"index" json:"affiliateId,omitempty"`
	ClientID    uint  `gorm:"not null;index" json:"clientId"`

	Title  string  `gorm:"size:255" json:"title"`
	Amount float64 `gorm:"not null;default:0" json:"amount"`
	Status string  `gorm:"size:50;not null;default:'draft';index" json:"status"`

	ContractDate *time.Time `json:"contractDate,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Validate enforces the write-path invariants: non-negative amount and a
// supply window that does not end before it starts.
func (c *Contract) Validate() error {
	if c.Amount < 0 {
		return ErrNegativeAmount
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return ErrInvalidWindow
	}
	return nil
}

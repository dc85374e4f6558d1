package affiliate

import (
	"time"

	"gorm.io/gorm"
)

// Affiliate statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DefaultCommissionRate is the percent applied when none was agreed.
const DefaultCommissionRate = 10

// Affiliate is a referral partner. The three earnings fields are a cache
// maintained by the commission write path; the portal reads them as-is and
// never recomputes them from the commission list.
type Affiliate struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Company   string `gorm:"size:255" json:"company"`
	Phone     string `gorm:"size:50" json:"phone"`

	CommissionRate  float64 `gorm:"not null;default:10" json:"commissionRate"`
	TotalEarnings   float64 `gorm:"not null;default:0" json:"totalEarnings"`
	PendingEarnings float64 `gorm:"not null;default:0" json:"pendingEarnings"`
	PaidEarnings    float64 `gorm:"not null;default:0" json:"paidEarnings"`

	Status string `gorm:"size:50;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

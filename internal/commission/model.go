package commission

import (
	"time"

	"gorm.io/gorm"
)

// Commission statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"
)

// Commission is an affiliate's cut of one contract. PaymentReference is set
// exactly when the commission is paid; several commissions paid together
// share one reference.
type Commission struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	AffiliateID uint `gorm:"not null;index" json:"affiliateId"`
	ContractID  uint `gorm:"not null;index" json:"contractId"`

	Amount           float64    `gorm:"not null;default:0" json:"amount"`
	Status           string     `gorm:"size:50;not null;default:'pending';index" json:"status"`
	PaymentReference *string    `gorm:"size:100;index" json:"paymentReference,omitempty"`
	PaymentMethod    string     `gorm:"size:50" json:"paymentMethod,omitempty"`
	ApprovedDate     *time.Time `json:"approvedDate,omitempty"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

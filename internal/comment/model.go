package comment

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a free text note attached to a negotiation.
type Comment struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	NegotiationID uint           `gorm:"not null;index" json:"negotiationId"`
	Text          string         `gorm:"not null" json:"text"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

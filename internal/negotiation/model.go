package negotiation

import (
	"time"

	"github.com/meridianadvisory/api-portal/internal/comment"

	"gorm.io/gorm"
)

// Pipeline stages.
const (
	StageLead          = "lead"
	StageQualification = "qualification"
	StageProposal      = "proposal"
	StageNegotiation   = "negotiation"
	StageClosedWon     = "closed-won"
	StageClosedLost    = "closed-lost"
)

// ActiveStages are the stages that count as an open opportunity.
var ActiveStages = []string{StageLead, StageQualification, StageProposal, StageNegotiation}

// IsActiveStage reports whether the stage counts as an open opportunity.
func IsActiveStage(stage string) bool {
	for _, s := range ActiveStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Negotiation is a business opportunity an affiliate is working.
type Negotiation struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	AffiliateID uint `gorm:"not null;index" json:"affiliateId"`

	CompanyName string  `gorm:"size:255" json:"companyName"`
	Contact     string  `gorm:"size:255" json:"contact"`
	Phone       string  `gorm:"size:50" json:"phone"`
	Stage       string  `gorm:"size:50;not null;default:'lead';index" json:"stage"`
	Value       float64 `gorm:"not null;default:0" json:"value"`

	Comments []comment.Comment `gorm:"foreignKey:NegotiationID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

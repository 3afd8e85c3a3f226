package appeal

import (
	"time"

	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/decision"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
)

type FinalDecision string

const (
	ApprovedAfterReview FinalDecision = "approved_after_review"
	RejectedAIStands    FinalDecision = "rejected_ai_stands"
)

func (d FinalDecision) Valid() bool { return d == ApprovedAfterReview || d == RejectedAIStands }

// Label is the customer facing wording of the decision.
func (d FinalDecision) Label() string {
	if d == ApprovedAfterReview {
		return "Approved"
	}
	return "Rejected - AI Result Stands"
}

// ReasonCodes is the AI decision as it stood when the appeal was filed.
type ReasonCodes struct {
	Prediction    decision.Prediction `json:"prediction"`
	Confidence    int                 `json:"confidence"`
	FairnessScore int                 `json:"fairness_score"`
	Explanation   string              `json:"explanation"`
}

func SnapshotOf(a *application.LoanApplication) ReasonCodes {
	return ReasonCodes{
		Prediction:    a.Prediction,
		Confidence:    a.Confidence,
		FairnessScore: a.FairnessScore,
		Explanation:   a.Explanation,
	}
}

// Appeal review fields stay nil while pending and are set together on review.
type Appeal struct {
	ID            uint64                          `gorm:"primaryKey;column:id" json:"-"`
	AppealID      string                          `gorm:"size:32;uniqueIndex:ux_appeals_appeal_id" json:"appeal_id"`
	LoanID        uint64                          `gorm:"index:idx_appeals_loan_status" json:"-"`
	UserID        string                          `gorm:"size:128;index:idx_appeals_user" json:"user_id"`
	ReasonCodes   datatypes.JSONType[ReasonCodes] `json:"reason_codes"`
	Status        Status                          `gorm:"size:16;index:idx_appeals_loan_status;default:pending" json:"status"`
	ReviewComment *string                         `gorm:"type:text" json:"review_comment"`
	FinalDecision *FinalDecision                  `gorm:"size:32" json:"final_decision"`
	ReviewedBy    *string                         `gorm:"size:128" json:"reviewed_by"`
	CreatedAt     time.Time                       `gorm:"autoCreateTime" json:"created_at"`
	ReviewedAt    *time.Time                      `json:"reviewed_at"`

	Application *application.LoanApplication `gorm:"foreignKey:LoanID" json:"-"`
}

func (Appeal) TableName() string { return "appeals" }

// Review carries the employee's verdict into a conditional update.
type Review struct {
	Comment       string
	FinalDecision FinalDecision
	ReviewedBy    string
	ReviewedAt    time.Time
}

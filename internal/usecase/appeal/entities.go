package appeal

import (
	"time"

	domain "loanreview-backend/internal/domain/appeal"
	"loanreview-backend/internal/domain/decision"
)

const (
	MsgFiled            = "Your appeal has been submitted. A bank officer will review it."
	MsgReviewedNotified = "Appeal reviewed and customer notified"
	MsgReviewedDegraded = "Appeal reviewed; customer notification could not be stored"
)

type FileInput struct {
	LoanID string
	UserID string
	// ReasonCodes is accepted for wire compatibility; the stored decision is
	// what gets snapshotted.
	ReasonCodes *domain.ReasonCodes
}

type FileResult struct {
	Success  bool   `json:"success"`
	AppealID string `json:"appeal_id"`
	Message  string `json:"message"`
}

type ReviewInput struct {
	AppealID      string
	ReviewComment string
	FinalDecision domain.FinalDecision
	ReviewerID    string
}

type ReviewResult struct {
	Success       bool                 `json:"success"`
	AppealID      string               `json:"appeal_id"`
	Status        domain.Status        `json:"status"`
	FinalDecision domain.FinalDecision `json:"final_decision"`
	Notified      bool                 `json:"notified"`
	Message       string               `json:"message"`
}

type LoanSummary struct {
	ApplicationID string              `json:"application_id"`
	Name          string              `json:"name"`
	LoanAmount    float64             `json:"loan_amount"`
	LoanPurpose   string              `json:"loan_purpose"`
	Prediction    decision.Prediction `json:"prediction"`
	Explanation   string              `json:"explanation"`
}

type AppealDTO struct {
	AppealID      string                `json:"appeal_id"`
	UserID        string                `json:"user_id"`
	Status        domain.Status         `json:"status"`
	ReasonCodes   domain.ReasonCodes    `json:"reason_codes"`
	ReviewComment *string               `json:"review_comment"`
	FinalDecision *domain.FinalDecision `json:"final_decision"`
	ReviewedBy    *string               `json:"reviewed_by,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	ReviewedAt    *time.Time            `json:"reviewed_at"`
	Loan          *LoanSummary          `json:"loan,omitempty"`
}

func toDTO(a *domain.Appeal) AppealDTO {
	out := AppealDTO{
		AppealID:      a.AppealID,
		UserID:        a.UserID,
		Status:        a.Status,
		ReasonCodes:   a.ReasonCodes.Data(),
		ReviewComment: a.ReviewComment,
		FinalDecision: a.FinalDecision,
		ReviewedBy:    a.ReviewedBy,
		CreatedAt:     a.CreatedAt,
		ReviewedAt:    a.ReviewedAt,
	}
	if app := a.Application; app != nil {
		out.Loan = &LoanSummary{
			ApplicationID: app.ApplicationID,
			Name:          app.Name,
			LoanAmount:    app.LoanAmount,
			LoanPurpose:   app.LoanPurpose,
			Prediction:    app.Prediction,
			Explanation:   app.Explanation,
		}
	}
	return out
}

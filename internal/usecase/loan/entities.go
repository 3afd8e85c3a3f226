package loan

import (
	"strings"
	"time"

	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/apperr"
	"loanreview-backend/internal/domain/decision"
)

type ApplicationInput struct {
	PrincipalID      string  `json:"principal_id"`
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	Gender           string  `json:"gender"`
	Income           float64 `json:"income"`
	CreditScore      int     `json:"credit_score"`
	LoanAmount       float64 `json:"loan_amount"`
	LoanTermMonths   int     `json:"loan_term_months"`
	LoanPurpose      string  `json:"loan_purpose"`
	EmploymentStatus string  `json:"employment_status"`
	ExistingLoans    float64 `json:"existing_loans"`
	SavingsBalance   float64 `json:"savings_balance"`
	Bank             string  `json:"bank"`
}

func (in ApplicationInput) normalized() ApplicationInput {
	in.PrincipalID = strings.TrimSpace(in.PrincipalID)
	in.Name = strings.TrimSpace(in.Name)
	in.Gender = strings.TrimSpace(in.Gender)
	in.LoanPurpose = strings.TrimSpace(in.LoanPurpose)
	in.EmploymentStatus = strings.TrimSpace(in.EmploymentStatus)
	in.Bank = strings.TrimSpace(in.Bank)
	if in.PrincipalID == "" {
		in.PrincipalID = in.Name
	}
	return in
}

func (in ApplicationInput) validate() error {
	switch {
	case in.Name == "":
		return apperr.Validation("name is required")
	case in.Gender == "":
		return apperr.Validation("gender is required")
	case in.LoanPurpose == "":
		return apperr.Validation("loan_purpose is required")
	case in.EmploymentStatus == "":
		return apperr.Validation("employment_status is required")
	case len(in.PrincipalID) > 128:
		return apperr.Validation("principal_id must be at most 128 characters")
	case in.Age < 18 || in.Age > 120:
		return apperr.Validation("age must be between 18 and 120")
	case in.Income < 0:
		return apperr.Validation("income must not be negative")
	case in.CreditScore < 300 || in.CreditScore > 900:
		return apperr.Validation("credit_score must be between 300 and 900")
	case in.LoanAmount <= 0:
		return apperr.Validation("loan_amount must be positive")
	case in.LoanTermMonths <= 0:
		return apperr.Validation("loan_term_months must be positive")
	case in.ExistingLoans < 0:
		return apperr.Validation("existing_loans must not be negative")
	case in.SavingsBalance < 0:
		return apperr.Validation("savings_balance must not be negative")
	}
	return nil
}

type DecisionDTO struct {
	ApplicationID string              `json:"application_id"`
	Prediction    decision.Prediction `json:"prediction"`
	Confidence    int                 `json:"confidence"`
	FairnessScore int                 `json:"fairness_score"`
	Explanation   string              `json:"explanation"`
}

type ScheduleDTO struct {
	ApprovedLoanID       string    `json:"approved_loan_id"`
	MonthlyInstallment   float64   `json:"monthly_installment"`
	NextNotificationDate time.Time `json:"next_notification_date"`
}

type ApplicationDTO struct {
	*application.LoanApplication
	Schedule *ScheduleDTO `json:"schedule,omitempty"`
}

package application

import (
	"time"

	"loanreview-backend/internal/domain/decision"

	"github.com/shopspring/decimal"
)

// FlatInterestRate is applied once over the whole term of an approved loan.
var FlatInterestRate = decimal.NewFromFloat(0.05)

// NotificationInterval is the gap between creating an approved loan and its
// first scheduled reminder.
const NotificationInterval = 30 * 24 * time.Hour

type LoanApplication struct {
	ID               uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID    string              `gorm:"size:32;uniqueIndex:ux_loan_applications_application_id" json:"application_id"`
	PrincipalID      string              `gorm:"size:128;index:idx_loan_applications_principal" json:"principal_id"`
	Name             string              `gorm:"size:255" json:"name"`
	Age              int                 `json:"age"`
	Gender           string              `gorm:"size:32" json:"gender"`
	Income           float64             `gorm:"type:decimal(18,2)" json:"income"`
	CreditScore      int                 `json:"credit_score"`
	LoanAmount       float64             `gorm:"type:decimal(18,2)" json:"loan_amount"`
	LoanTermMonths   int                 `json:"loan_term_months"`
	LoanPurpose      string              `gorm:"size:255" json:"loan_purpose"`
	EmploymentStatus string              `gorm:"size:64" json:"employment_status"`
	ExistingLoans    float64             `gorm:"type:decimal(18,2)" json:"existing_loans"`
	SavingsBalance   float64             `gorm:"type:decimal(18,2)" json:"savings_balance"`
	Bank             string              `gorm:"size:128" json:"bank,omitempty"`
	Prediction       decision.Prediction `gorm:"size:16;index:idx_loan_applications_prediction" json:"prediction"`
	Confidence       int                 `json:"confidence"`
	FairnessScore    int                 `json:"fairness_score"`
	Explanation      string              `gorm:"type:text" json:"explanation"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

func (a *LoanApplication) Approved() bool { return a.Prediction == decision.Approved }

type ApprovedLoan struct {
	ID                   uint64    `gorm:"primaryKey;column:id" json:"-"`
	ApprovedLoanID       string    `gorm:"size:32;uniqueIndex:ux_approved_loans_approved_loan_id" json:"approved_loan_id"`
	ApplicationID        uint64    `gorm:"uniqueIndex:ux_approved_loans_application" json:"-"`
	Name                 string    `gorm:"size:255" json:"name"`
	LoanAmount           float64   `gorm:"type:decimal(18,2)" json:"loan_amount"`
	MonthlyInstallment   float64   `gorm:"type:decimal(18,2)" json:"monthly_installment"`
	NextNotificationDate time.Time `json:"next_notification_date"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ApprovedLoan) TableName() string { return "approved_loans" }

// MonthlyInstallment returns amount*(1+rate)/term rounded half away from zero
// to cents, the precision of the monthly_installment column.
func MonthlyInstallment(amount float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	total := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(1).Add(FlatInterestRate))
	f, _ := total.Div(decimal.NewFromInt(int64(termMonths))).Round(2).Float64()
	return f
}

// NewApprovedLoan derives the repayment schedule of an approved application.
// The caller assigns the public id.
func NewApprovedLoan(a *LoanApplication, now time.Time) *ApprovedLoan {
	return &ApprovedLoan{
		ApplicationID:        a.ID,
		Name:                 a.Name,
		LoanAmount:           a.LoanAmount,
		MonthlyInstallment:   MonthlyInstallment(a.LoanAmount, a.LoanTermMonths),
		NextNotificationDate: now.Add(NotificationInterval),
		CreatedAt:            now,
	}
}

// Summary aggregates stored decisions for the employee dashboard.
type Summary struct {
	Total            int64   `json:"total"`
	Approved         int64   `json:"approved"`
	Rejected         int64   `json:"rejected"`
	AvgConfidence    float64 `json:"avg_confidence"`
	AvgFairnessScore float64 `json:"avg_fairness_score"`
}

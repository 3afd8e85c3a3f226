package mysql

import (
	"context"
	"errors"

	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/decision"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.LoanApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*application.LoanApplication, error) {
	return r.get(r.db.WithContext(ctx), applicationID)
}

// sqlite has no row locks and its dialect drops the FOR UPDATE clause.
func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*application.LoanApplication, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), applicationID)
}

func (r *ApplicationRepository) get(q *gorm.DB, applicationID string) (*application.LoanApplication, error) {
	var out application.LoanApplication
	if err := q.Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByPrincipal(ctx context.Context, principalID string) ([]application.LoanApplication, error) {
	var out []application.LoanApplication
	err := r.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) DistinctPrincipals(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&application.LoanApplication{}).
		Where("principal_id <> ''").
		Distinct().
		Order("principal_id").
		Pluck("principal_id", &out).Error
	return out, err
}

func (r *ApplicationRepository) Summary(ctx context.Context) (*application.Summary, error) {
	var out application.Summary
	err := r.db.WithContext(ctx).
		Model(&application.LoanApplication{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN prediction = ? THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN prediction = ? THEN 1 ELSE 0 END), 0) AS rejected,
			COALESCE(AVG(confidence), 0) AS avg_confidence,
			COALESCE(AVG(fairness_score), 0) AS avg_fairness_score`,
			decision.Approved, decision.Rejected).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type ApprovedLoanRepository struct{ db *gorm.DB }

func NewApprovedLoanRepository(db *gorm.DB) *ApprovedLoanRepository {
	return &ApprovedLoanRepository{db: db}
}

func (r *ApprovedLoanRepository) Create(ctx context.Context, l *application.ApprovedLoan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ApprovedLoanRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*application.ApprovedLoan, error) {
	var out application.ApprovedLoan
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

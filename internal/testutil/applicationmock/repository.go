package applicationmock

import (
	"context"

	domain "loanreview-backend/internal/domain/application"
)

var (
	_ domain.Repository             = (*Repo)(nil)
	_ domain.ApprovedLoanRepository = (*ApprovedRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success, reads to context.Canceled.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.LoanApplication) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
	ListByPrincipalFn             func(ctx context.Context, principalID string) ([]domain.LoanApplication, error)
	DistinctPrincipalsFn          func(ctx context.Context) ([]string, error)
	SummaryFn                     func(ctx context.Context) (*domain.Summary, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByPrincipal(ctx context.Context, principalID string) ([]domain.LoanApplication, error) {
	if m.ListByPrincipalFn != nil {
		return m.ListByPrincipalFn(ctx, principalID)
	}
	return nil, context.Canceled
}

func (m *Repo) DistinctPrincipals(ctx context.Context) ([]string, error) {
	if m.DistinctPrincipalsFn != nil {
		return m.DistinctPrincipalsFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Summary(ctx context.Context) (*domain.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx)
	}
	return nil, context.Canceled
}

type ApprovedRepo struct {
	CreateFn             func(ctx context.Context, l *domain.ApprovedLoan) error
	GetByApplicationIDFn func(ctx context.Context, applicationID uint64) (*domain.ApprovedLoan, error)
}

func (m *ApprovedRepo) Create(ctx context.Context, l *domain.ApprovedLoan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *ApprovedRepo) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.ApprovedLoan, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

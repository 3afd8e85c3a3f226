package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *LoanApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*LoanApplication, error)
	// GetByApplicationIDForUpdate locks the row until the surrounding tx ends.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*LoanApplication, error)
	ListByPrincipal(ctx context.Context, principalID string) ([]LoanApplication, error)
	DistinctPrincipals(ctx context.Context) ([]string, error)
	Summary(ctx context.Context) (*Summary, error)
}

type ApprovedLoanRepository interface {
	Create(ctx context.Context, l *ApprovedLoan) error
	GetByApplicationID(ctx context.Context, applicationID uint64) (*ApprovedLoan, error)
}

package uow

import (
	"context"

	"loanreview-backend/internal/domain/appeal"
	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/notification"
)

type Repos struct {
	Applications  application.Repository
	ApprovedLoans application.ApprovedLoanRepository
	Appeals       appeal.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.LoanApplication) error) error
}

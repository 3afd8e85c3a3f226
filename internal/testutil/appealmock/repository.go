package appealmock

import (
	"context"

	domain "loanreview-backend/internal/domain/appeal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Appeal) error
	GetByAppealIDFn      func(ctx context.Context, appealID string) (*domain.Appeal, error)
	GetPendingByLoanIDFn func(ctx context.Context, loanID uint64) (*domain.Appeal, error)
	MarkReviewedFn       func(ctx context.Context, appealID string, r domain.Review) (*domain.Appeal, error)
	ListByUserIDFn       func(ctx context.Context, userID string) ([]domain.Appeal, error)
	ListPendingFn        func(ctx context.Context) ([]domain.Appeal, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Appeal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAppealID(ctx context.Context, appealID string) (*domain.Appeal, error) {
	if m.GetByAppealIDFn != nil {
		return m.GetByAppealIDFn(ctx, appealID)
	}
	return nil, context.Canceled
}

// GetPendingByLoanID defaults to "no pending appeal".
func (m *Repo) GetPendingByLoanID(ctx context.Context, loanID uint64) (*domain.Appeal, error) {
	if m.GetPendingByLoanIDFn != nil {
		return m.GetPendingByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) MarkReviewed(ctx context.Context, appealID string, r domain.Review) (*domain.Appeal, error) {
	if m.MarkReviewedFn != nil {
		return m.MarkReviewedFn(ctx, appealID, r)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUserID(ctx context.Context, userID string) ([]domain.Appeal, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPending(ctx context.Context) ([]domain.Appeal, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, context.Canceled
}

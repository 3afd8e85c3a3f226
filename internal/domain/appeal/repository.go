package appeal

import "context"

type Repository interface {
	Create(ctx context.Context, a *Appeal) error
	GetByAppealID(ctx context.Context, appealID string) (*Appeal, error)
	GetPendingByLoanID(ctx context.Context, loanID uint64) (*Appeal, error)
	// MarkReviewed transitions a pending appeal. ErrAlreadyReviewed when the
	// appeal is no longer pending, ErrNotFound when it does not exist.
	MarkReviewed(ctx context.Context, appealID string, r Review) (*Appeal, error)
	ListByUserID(ctx context.Context, userID string) ([]Appeal, error)
	ListPending(ctx context.Context) ([]Appeal, error)
}

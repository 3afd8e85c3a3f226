package mysql

import (
	"context"

	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications:  &ApplicationRepository{db: tx},
		ApprovedLoans: &ApprovedLoanRepository{db: tx},
		Appeals:       &AppealRepository{db: tx},
		Notifications: &NotificationRepository{db: tx},
	}
}

// NewRepos returns repositories bound to db outside any transaction.
func NewRepos(db *gorm.DB) uow.Repos { return reposFor(db) }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.LoanApplication) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the application row up-front so concurrent filings serialize
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

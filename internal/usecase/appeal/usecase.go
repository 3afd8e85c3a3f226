package appeal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "loanreview-backend/internal/domain/appeal"
	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/apperr"
	"loanreview-backend/internal/domain/decision"
	"loanreview-backend/internal/domain/uow"
	"loanreview-backend/internal/infrastructure/metrics"
	notifuc "loanreview-backend/internal/usecase/notification"
	"loanreview-backend/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Notifier delivers the review outcome to the customer.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) (*notifuc.NotificationDTO, error)
}

type Usecase struct {
	appeals  domain.Repository
	uow      uow.UnitOfWork
	notifier Notifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewUsecase(appeals domain.Repository, tx uow.UnitOfWork, notifier Notifier, log *logrus.Logger) *Usecase {
	return &Usecase{appeals: appeals, uow: tx, notifier: notifier, log: log, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// File opens a pending appeal against a rejected application. The
// application row stays locked while the pending check and insert run, so two
// concurrent filings cannot both succeed.
func (u *Usecase) File(ctx context.Context, in FileInput) (*FileResult, error) {
	in.LoanID = strings.TrimSpace(in.LoanID)
	in.UserID = strings.TrimSpace(in.UserID)
	if in.LoanID == "" {
		return nil, apperr.Validation("loan_id is required")
	}
	if in.UserID == "" {
		return nil, apperr.Validation("user_id is required")
	}

	var ap *domain.Appeal
	err := u.uow.WithinApplicationTx(ctx, in.LoanID, func(r uow.Repos, a *application.LoanApplication) error {
		if a.Prediction != decision.Rejected {
			return domain.ErrLoanNotRejected
		}
		_, err := r.Appeals.GetPendingByLoanID(ctx, a.ID)
		switch {
		case err == nil:
			return domain.ErrAppealAlreadyOpen
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		snapshot := domain.SnapshotOf(a)
		if in.ReasonCodes != nil && *in.ReasonCodes != snapshot {
			u.log.WithField("application_id", a.ApplicationID).Warn("appeal: client reason codes differ from stored decision, using stored")
		}
		ap = &domain.Appeal{
			AppealID:    id.NewID32(),
			LoanID:      a.ID,
			UserID:      in.UserID,
			ReasonCodes: datatypes.NewJSONType(snapshot),
			Status:      domain.StatusPending,
			CreatedAt:   u.now().UTC(),
		}
		return r.Appeals.Create(ctx, ap)
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindPersistence, "file appeal", err)
	}

	metrics.RecordAppealFiled()
	u.log.WithFields(logrus.Fields{"appeal_id": ap.AppealID, "application_id": in.LoanID}).Info("appeal filed")
	return &FileResult{Success: true, AppealID: ap.AppealID, Message: MsgFiled}, nil
}

// Review closes a pending appeal. The status change is committed before the
// customer is notified; a failed notification is reported, not rolled back.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ReviewResult, error) {
	comment := in.ReviewComment
	switch {
	case in.AppealID == "":
		return nil, apperr.Validation("appeal_id is required")
	case !in.FinalDecision.Valid():
		return nil, apperr.Validation("final_decision must be approved_after_review or rejected_ai_stands")
	case strings.TrimSpace(comment) == "":
		return nil, apperr.Validation("review_comment is required")
	}

	reviewed, err := u.appeals.MarkReviewed(ctx, in.AppealID, domain.Review{
		Comment:       comment,
		FinalDecision: in.FinalDecision,
		ReviewedBy:    in.ReviewerID,
		ReviewedAt:    u.now().UTC(),
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindPersistence, "review appeal", err)
	}
	metrics.RecordAppealReviewed(string(in.FinalDecision))

	entry := u.log.WithFields(logrus.Fields{"appeal_id": in.AppealID, "final_decision": in.FinalDecision})
	msg := fmt.Sprintf("Your appeal has been reviewed. Decision: %s. %s", in.FinalDecision.Label(), comment)

	res := &ReviewResult{
		Success:       true,
		AppealID:      reviewed.AppealID,
		Status:        reviewed.Status,
		FinalDecision: in.FinalDecision,
		Notified:      true,
		Message:       MsgReviewedNotified,
	}
	if _, err := u.notifier.Notify(ctx, reviewed.UserID, msg); err != nil {
		entry.WithError(err).Warn("appeal reviewed but notification failed")
		res.Notified = false
		res.Message = MsgReviewedDegraded
		return res, nil
	}
	entry.Info("appeal reviewed")
	return res, nil
}

func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]AppealDTO, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	rows, err := u.appeals.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("list appeals", err)
	}
	return toDTOs(rows), nil
}

// ListPending is the employee review queue, oldest first.
func (u *Usecase) ListPending(ctx context.Context) ([]AppealDTO, error) {
	rows, err := u.appeals.ListPending(ctx)
	if err != nil {
		return nil, apperr.Persistence("list pending appeals", err)
	}
	return toDTOs(rows), nil
}

func toDTOs(rows []domain.Appeal) []AppealDTO {
	out := make([]AppealDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out
}

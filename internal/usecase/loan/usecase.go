package loan

import (
	"context"
	"errors"
	"time"

	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/apperr"
	"loanreview-backend/internal/domain/decision"
	"loanreview-backend/internal/infrastructure/metrics"
	"loanreview-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

// Completer is the AI gateway as seen by the decision flow.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Usecase struct {
	apps     application.Repository
	approved application.ApprovedLoanRepository
	ai       Completer
	log      *logrus.Logger
	now      func() time.Time
}

func NewUsecase(apps application.Repository, approved application.ApprovedLoanRepository, ai Completer, log *logrus.Logger) *Usecase {
	return &Usecase{apps: apps, approved: approved, ai: ai, log: log, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Decide runs one application through the AI and stores the outcome. The
// application row is written before anything is returned; the approved loan
// schedule is best effort.
func (u *Usecase) Decide(ctx context.Context, in ApplicationInput) (*DecisionDTO, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := u.ai.Complete(ctx, SystemPrompt, BuildPrompt(in))
	if err != nil {
		err = apperr.Ensure(apperr.KindUpstream, "ai gateway", err)
		metrics.RecordAICall(string(apperr.KindOf(err)), time.Since(start))
		u.log.WithError(err).WithField("principal_id", in.PrincipalID).Warn("loan decision: ai call failed")
		return nil, err
	}
	metrics.RecordAICall("ok", time.Since(start))

	d := decision.Parse(raw)
	now := u.now().UTC()
	a := &application.LoanApplication{
		ApplicationID:    id.NewID32(),
		PrincipalID:      in.PrincipalID,
		Name:             in.Name,
		Age:              in.Age,
		Gender:           in.Gender,
		Income:           in.Income,
		CreditScore:      in.CreditScore,
		LoanAmount:       in.LoanAmount,
		LoanTermMonths:   in.LoanTermMonths,
		LoanPurpose:      in.LoanPurpose,
		EmploymentStatus: in.EmploymentStatus,
		ExistingLoans:    in.ExistingLoans,
		SavingsBalance:   in.SavingsBalance,
		Bank:             in.Bank,
		Prediction:       d.Prediction,
		Confidence:       d.Confidence,
		FairnessScore:    d.FairnessScore,
		Explanation:      d.Explanation,
		CreatedAt:        now,
	}
	if err := u.apps.Create(ctx, a); err != nil {
		u.log.WithError(err).Error("loan decision: store application failed")
		return nil, apperr.Persistence("store loan application", err)
	}
	metrics.RecordDecision(string(a.Prediction))

	if a.Approved() {
		u.storeSchedule(ctx, a, now)
	}

	u.log.WithFields(logrus.Fields{
		"application_id": a.ApplicationID,
		"prediction":     a.Prediction,
		"confidence":     a.Confidence,
	}).Info("loan decision stored")

	return &DecisionDTO{
		ApplicationID: a.ApplicationID,
		Prediction:    a.Prediction,
		Confidence:    a.Confidence,
		FairnessScore: a.FairnessScore,
		Explanation:   a.Explanation,
	}, nil
}

func (u *Usecase) storeSchedule(ctx context.Context, a *application.LoanApplication, now time.Time) {
	l := application.NewApprovedLoan(a, now)
	l.ApprovedLoanID = id.NewID32()
	if err := u.approved.Create(ctx, l); err != nil {
		metrics.RecordApprovedLoanWriteFailure()
		u.log.WithError(err).WithField("application_id", a.ApplicationID).Error("loan decision: store approved loan failed")
	}
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	if applicationID == "" {
		return nil, apperr.Validation("application_id is required")
	}
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, apperr.Ensure(apperr.KindPersistence, "load loan application", err)
	}
	out := &ApplicationDTO{LoanApplication: a}
	if !a.Approved() {
		return out, nil
	}

	l, err := u.approved.GetByApplicationID(ctx, a.ID)
	switch {
	case err == nil:
		out.Schedule = &ScheduleDTO{
			ApprovedLoanID:       l.ApprovedLoanID,
			MonthlyInstallment:   l.MonthlyInstallment,
			NextNotificationDate: l.NextNotificationDate,
		}
	case errors.Is(err, application.ErrNotFound):
		// schedule write was lost; the decision itself stands
	default:
		return nil, apperr.Persistence("load approved loan", err)
	}
	return out, nil
}

func (u *Usecase) ListByPrincipal(ctx context.Context, principalID string) ([]application.LoanApplication, error) {
	if principalID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	out, err := u.apps.ListByPrincipal(ctx, principalID)
	if err != nil {
		return nil, apperr.Persistence("list loan applications", err)
	}
	if out == nil {
		out = []application.LoanApplication{}
	}
	return out, nil
}

func (u *Usecase) Summary(ctx context.Context) (*application.Summary, error) {
	s, err := u.apps.Summary(ctx)
	if err != nil {
		return nil, apperr.Persistence("summarize decisions", err)
	}
	return s, nil
}

package loan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/apperr"
	"loanreview-backend/internal/domain/decision"
	"loanreview-backend/internal/infrastructure/logging"
	"loanreview-backend/internal/testutil/applicationmock"
	"loanreview-backend/pkg/id"
)

type stubAI struct {
	out    string
	err    error
	calls  int
	system string
	user   string
}

func (s *stubAI) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.system, s.user = system, user
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.out, s.err
}

var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func validInput() ApplicationInput {
	return ApplicationInput{
		Name:             "Alice Doe",
		Age:              34,
		Gender:           "female",
		Income:           85_000,
		CreditScore:      742,
		LoanAmount:       12_000,
		LoanTermMonths:   12,
		LoanPurpose:      "car",
		EmploymentStatus: "employed",
		ExistingLoans:    2_500,
		SavingsBalance:   9_000,
	}
}

func newUC(apps *applicationmock.Repo, approved *applicationmock.ApprovedRepo, ai Completer) *Usecase {
	return NewUsecase(apps, approved, ai, logging.Discard()).WithClock(func() time.Time { return fixedNow })
}

func TestDecide_ApprovedStoresApplicationThenSchedule(t *testing.T) {
	var order []string
	var stored *application.LoanApplication
	apps := &applicationmock.Repo{
		CreateFn: func(_ context.Context, a *application.LoanApplication) error {
			order = append(order, "application")
			a.ID = 11
			stored = a
			return nil
		},
	}
	var schedule *application.ApprovedLoan
	approved := &applicationmock.ApprovedRepo{
		CreateFn: func(_ context.Context, l *application.ApprovedLoan) error {
			order = append(order, "schedule")
			schedule = l
			return nil
		},
	}
	ai := &stubAI{out: "Decision: APPROVED\nConfidence Level: 92\nFairness Score: 88\nExplanation: Strong credit history."}

	dto, err := newUC(apps, approved, ai).Decide(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if dto.Prediction != decision.Approved || dto.Confidence != 92 || dto.FairnessScore != 88 || dto.Explanation != "Strong credit history." {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if !id.Valid(dto.ApplicationID) || dto.ApplicationID != stored.ApplicationID {
		t.Fatalf("application id mismatch: %q vs %q", dto.ApplicationID, stored.ApplicationID)
	}
	if strings.Join(order, ",") != "application,schedule" {
		t.Fatalf("write order = %v", order)
	}
	if stored.PrincipalID != "Alice Doe" {
		t.Fatalf("principal should default to name, got %q", stored.PrincipalID)
	}
	if !stored.CreatedAt.Equal(fixedNow) {
		t.Fatalf("created_at = %v", stored.CreatedAt)
	}
	if schedule.ApplicationID != 11 || schedule.MonthlyInstallment != 1050 || schedule.Name != "Alice Doe" {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}
	if !schedule.NextNotificationDate.Equal(fixedNow.Add(30 * 24 * time.Hour)) {
		t.Fatalf("next notification = %v", schedule.NextNotificationDate)
	}
	if ai.calls != 1 || ai.system != SystemPrompt {
		t.Fatalf("ai called %d times with system %q", ai.calls, ai.system)
	}
}

func TestDecide_RejectedHasNoSchedule(t *testing.T) {
	approved := &applicationmock.ApprovedRepo{
		CreateFn: func(context.Context, *application.ApprovedLoan) error {
			t.Fatalf("no schedule for rejected applications")
			return nil
		},
	}
	ai := &stubAI{out: "I am unable to decide."}

	dto, err := newUC(&applicationmock.Repo{}, approved, ai).Decide(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dto.Prediction != decision.Rejected || dto.Confidence != 75 || dto.FairnessScore != 85 || dto.Explanation != "I am unable to decide." {
		t.Fatalf("expected defaults, got %+v", dto)
	}
}

func TestDecide_ExplicitPrincipalKept(t *testing.T) {
	var stored *application.LoanApplication
	apps := &applicationmock.Repo{CreateFn: func(_ context.Context, a *application.LoanApplication) error {
		stored = a
		return nil
	}}
	in := validInput()
	in.PrincipalID = "  user-42 "
	in.Bank = "First Bank"

	if _, err := newUC(apps, &applicationmock.ApprovedRepo{}, &stubAI{out: "Decision: REJECTED"}).Decide(context.Background(), in); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if stored.PrincipalID != "user-42" || stored.Bank != "First Bank" {
		t.Fatalf("unexpected stored row: %+v", stored)
	}
}

func TestDecide_ValidationBeforeAnyCall(t *testing.T) {
	mutate := map[string]func(*ApplicationInput){
		"empty name":       func(in *ApplicationInput) { in.Name = "  " },
		"missing gender":   func(in *ApplicationInput) { in.Gender = "" },
		"too young":        func(in *ApplicationInput) { in.Age = 17 },
		"negative income":  func(in *ApplicationInput) { in.Income = -1 },
		"credit too low":   func(in *ApplicationInput) { in.CreditScore = 200 },
		"zero amount":      func(in *ApplicationInput) { in.LoanAmount = 0 },
		"zero term":        func(in *ApplicationInput) { in.LoanTermMonths = 0 },
		"negative savings": func(in *ApplicationInput) { in.SavingsBalance = -5 },
		"no purpose":       func(in *ApplicationInput) { in.LoanPurpose = "" },
		"no employment":    func(in *ApplicationInput) { in.EmploymentStatus = "" },
		"negative loans":   func(in *ApplicationInput) { in.ExistingLoans = -1 },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			apps := &applicationmock.Repo{CreateFn: func(context.Context, *application.LoanApplication) error {
				t.Fatalf("nothing may be stored")
				return nil
			}}
			ai := &stubAI{out: "Decision: APPROVED"}
			in := validInput()
			fn(&in)

			_, err := newUC(apps, &applicationmock.ApprovedRepo{}, ai).Decide(context.Background(), in)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("want validation error, got %v", err)
			}
			if ai.calls != 0 {
				t.Fatalf("ai must not be called")
			}
		})
	}
}

func TestDecide_AIFailuresStoreNothing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"config", apperr.New(apperr.KindConfiguration, "no key"), apperr.KindConfiguration},
		{"rate limited", apperr.New(apperr.KindRateLimited, "slow down"), apperr.KindRateLimited},
		{"payment", apperr.New(apperr.KindPaymentRequired, "pay"), apperr.KindPaymentRequired},
		{"untyped", errors.New("socket closed"), apperr.KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := &applicationmock.Repo{CreateFn: func(context.Context, *application.LoanApplication) error {
				t.Fatalf("nothing may be stored")
				return nil
			}}
			_, err := newUC(apps, &applicationmock.ApprovedRepo{}, &stubAI{err: tt.err}).Decide(context.Background(), validInput())
			if apperr.KindOf(err) != tt.want {
				t.Fatalf("kind = %q, want %q (err=%v)", apperr.KindOf(err), tt.want, err)
			}
		})
	}
}

func TestDecide_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	apps := &applicationmock.Repo{CreateFn: func(context.Context, *application.LoanApplication) error {
		t.Fatalf("nothing may be stored")
		return nil
	}}
	_, err := newUC(apps, &applicationmock.ApprovedRepo{}, &stubAI{out: "Decision: APPROVED"}).Decide(ctx, validInput())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestDecide_PrimaryWriteFails(t *testing.T) {
	apps := &applicationmock.Repo{CreateFn: func(context.Context, *application.LoanApplication) error {
		return errors.New("db down")
	}}
	approved := &applicationmock.ApprovedRepo{CreateFn: func(context.Context, *application.ApprovedLoan) error {
		t.Fatalf("schedule must not be written without the application")
		return nil
	}}
	dto, err := newUC(apps, approved, &stubAI{out: "Decision: APPROVED"}).Decide(context.Background(), validInput())
	if dto != nil || apperr.KindOf(err) != apperr.KindPersistence {
		t.Fatalf("want persistence error and no dto, got %v / %+v", err, dto)
	}
}

func TestDecide_ScheduleWriteFailureIsNotFatal(t *testing.T) {
	approved := &applicationmock.ApprovedRepo{CreateFn: func(context.Context, *application.ApprovedLoan) error {
		return errors.New("constraint")
	}}
	dto, err := newUC(&applicationmock.Repo{}, approved, &stubAI{out: "Decision: APPROVED"}).Decide(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dto.Prediction != decision.Approved {
		t.Fatalf("prediction = %s", dto.Prediction)
	}
}

func TestBuildPrompt(t *testing.T) {
	in := validInput()
	p := BuildPrompt(in)

	for _, want := range []string{
		"Name: Alice Doe", "Age: 34", "Gender: female", "Annual Income: $85000.00",
		"Credit Score: 742", "Loan Amount Requested: $12000.00", "Loan Term: 12 months",
		"Loan Purpose: car", "Employment Status: employed", "Existing Loans: $2500.00",
		"Savings Balance: $9000.00", "Do not discriminate based on age or gender",
		"Decision: APPROVED or REJECTED",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(p, "Lending Bank") {
		t.Errorf("bank line must be absent when no bank is chosen")
	}
	if BuildPrompt(in) != p {
		t.Errorf("prompt is not deterministic")
	}

	in.Bank = "First Bank"
	if !strings.Contains(BuildPrompt(in), "Lending Bank: First Bank") {
		t.Errorf("bank line missing")
	}
}

func TestGet(t *testing.T) {
	next := fixedNow.Add(30 * 24 * time.Hour)
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(_ context.Context, appID string) (*application.LoanApplication, error) {
			switch appID {
			case "approved":
				return &application.LoanApplication{ID: 1, ApplicationID: appID, Prediction: decision.Approved}, nil
			case "rejected":
				return &application.LoanApplication{ID: 2, ApplicationID: appID, Prediction: decision.Rejected}, nil
			case "lost":
				return &application.LoanApplication{ID: 3, ApplicationID: appID, Prediction: decision.Approved}, nil
			}
			return nil, application.ErrNotFound
		},
	}
	approved := &applicationmock.ApprovedRepo{
		GetByApplicationIDFn: func(_ context.Context, appID uint64) (*application.ApprovedLoan, error) {
			if appID == 1 {
				return &application.ApprovedLoan{ApprovedLoanID: "sched", MonthlyInstallment: 875, NextNotificationDate: next}, nil
			}
			return nil, application.ErrNotFound
		},
	}
	uc := newUC(apps, approved, &stubAI{})
	ctx := context.Background()

	got, err := uc.Get(ctx, "approved")
	if err != nil || got.Schedule == nil || got.Schedule.MonthlyInstallment != 875 || !got.Schedule.NextNotificationDate.Equal(next) {
		t.Fatalf("approved: %+v %v", got, err)
	}
	got, err = uc.Get(ctx, "rejected")
	if err != nil || got.Schedule != nil {
		t.Fatalf("rejected: %+v %v", got, err)
	}
	got, err = uc.Get(ctx, "lost")
	if err != nil || got.Schedule != nil {
		t.Fatalf("lost schedule: %+v %v", got, err)
	}
	if _, err := uc.Get(ctx, "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("missing: want ErrNotFound, got %v", err)
	}
	if _, err := uc.Get(ctx, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty id: want validation, got %v", err)
	}
}

func TestListByPrincipal(t *testing.T) {
	apps := &applicationmock.Repo{
		ListByPrincipalFn: func(context.Context, string) ([]application.LoanApplication, error) { return nil, nil },
	}
	uc := newUC(apps, &applicationmock.ApprovedRepo{}, &stubAI{})

	got, err := uc.ListByPrincipal(context.Background(), "bob")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %v %v", got, err)
	}
	if _, err := uc.ListByPrincipal(context.Background(), ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	apps := &applicationmock.Repo{
		SummaryFn: func(context.Context) (*application.Summary, error) {
			return &application.Summary{Total: 3, Approved: 2, Rejected: 1}, nil
		},
	}
	s, err := newUC(apps, &applicationmock.ApprovedRepo{}, &stubAI{}).Summary(context.Background())
	if err != nil || s.Total != 3 {
		t.Fatalf("Summary: %+v %v", s, err)
	}

	failing := newUC(&applicationmock.Repo{}, &applicationmock.ApprovedRepo{}, &stubAI{})
	if _, err := failing.Summary(context.Background()); apperr.KindOf(err) != apperr.KindPersistence {
		t.Fatalf("want persistence error, got %v", err)
	}
}

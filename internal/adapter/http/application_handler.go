package http

import (
	"net/http"
	"strings"

	"loanreview-backend/internal/adapter/middleware"
	"loanreview-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ApplicationHandler struct {
	uc  *loan.Usecase
	log *logrus.Logger
}

func NewApplicationHandler(uc *loan.Usecase, log *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

type submitApplicationReq struct {
	PrincipalID      string  `json:"principal_id" validate:"max=128"`
	Name             string  `json:"name" validate:"required,notblank,max=200"`
	Age              int     `json:"age" validate:"gte=18,lte=120"`
	Gender           string  `json:"gender" validate:"required,notblank,max=32"`
	Income           float64 `json:"income" validate:"gte=0,dec2"`
	CreditScore      int     `json:"credit_score" validate:"gte=300,lte=900"`
	LoanAmount       float64 `json:"loan_amount" validate:"gt=0,dec2"`
	LoanTermMonths   int     `json:"loan_term_months" validate:"gt=0,lte=600"`
	LoanPurpose      string  `json:"loan_purpose" validate:"required,notblank,max=200"`
	EmploymentStatus string  `json:"employment_status" validate:"required,notblank,max=64"`
	ExistingLoans    float64 `json:"existing_loans" validate:"gte=0,dec2"`
	SavingsBalance   float64 `json:"savings_balance" validate:"gte=0,dec2"`
	Bank             string  `json:"bank" validate:"max=128"`
}

// Submit runs the AI decision for a new application. When the body carries
// no principal_id the Ax-Principal header is used.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return badJSON(c)
	}
	if strings.TrimSpace(req.PrincipalID) == "" {
		req.PrincipalID = c.Request().Header.Get(middleware.HeaderPrincipal)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.Decide(c.Request().Context(), loan.ApplicationInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListByCustomer(c echo.Context) error {
	rows, err := h.uc.ListByPrincipal(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": rows})
}

func (h *ApplicationHandler) Stats(c echo.Context) error {
	sum, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, sum)
}

package http

import (
	"net/http"
	"strings"

	"loanreview-backend/internal/adapter/middleware"
	domain "loanreview-backend/internal/domain/appeal"
	"loanreview-backend/internal/usecase/appeal"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AppealHandler struct {
	uc  *appeal.Usecase
	log *logrus.Logger
}

func NewAppealHandler(uc *appeal.Usecase, log *logrus.Logger) *AppealHandler {
	return &AppealHandler{uc: uc, log: log}
}

type fileAppealReq struct {
	LoanID      string              `json:"loan_id" validate:"required,hex32"`
	UserID      string              `json:"user_id" validate:"required,notblank,max=128"`
	ReasonCodes *domain.ReasonCodes `json:"reason_codes"`
}

type reviewAppealReq struct {
	ReviewComment string `json:"review_comment" validate:"required,notblank,max=2000"`
	FinalDecision string `json:"final_decision" validate:"required,oneof=approved_after_review rejected_ai_stands"`
}

func (h *AppealHandler) File(c echo.Context) error {
	var req fileAppealReq
	if err := c.Bind(&req); err != nil {
		return badJSON(c)
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = c.Request().Header.Get(middleware.HeaderPrincipal)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	res, err := h.uc.File(c.Request().Context(), appeal.FileInput{
		LoanID:      req.LoanID,
		UserID:      req.UserID,
		ReasonCodes: req.ReasonCodes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Review is mounted behind RequireEmployee; the token subject is recorded as
// the reviewer.
func (h *AppealHandler) Review(c echo.Context) error {
	var req reviewAppealReq
	if err := c.Bind(&req); err != nil {
		return badJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	res, err := h.uc.Review(c.Request().Context(), appeal.ReviewInput{
		AppealID:      c.Param("appeal_id"),
		ReviewComment: req.ReviewComment,
		FinalDecision: domain.FinalDecision(req.FinalDecision),
		ReviewerID:    middleware.ReviewerID(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AppealHandler) ListByCustomer(c echo.Context) error {
	rows, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"appeals": rows})
}

func (h *AppealHandler) ListPending(c echo.Context) error {
	rows, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"appeals": rows})
}

package http

import (
	"net/http"
	"strconv"

	"loanreview-backend/internal/usecase/notification"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type NotificationHandler struct {
	uc  *notification.Usecase
	log *logrus.Logger
}

func NewNotificationHandler(uc *notification.Usecase, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, log: log}
}

// ListByCustomer accepts ?unread=true to hide messages already read.
func (h *NotificationHandler) ListByCustomer(c echo.Context) error {
	unread := false
	if raw := c.QueryParam("unread"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unread must be a boolean", Kind: "validation"})
		}
		unread = v
	}
	rows, err := h.uc.ListForUser(c.Request().Context(), c.Param("user_id"), unread)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"notifications": rows})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	dto, err := h.uc.MarkRead(c.Request().Context(), c.Param("notification_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NotificationHandler) RunMonthlyBatch(c echo.Context) error {
	res, err := h.uc.RunMonthlyBatch(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

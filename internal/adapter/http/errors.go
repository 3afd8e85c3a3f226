package http

import (
	"net/http"

	"loanreview-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:      http.StatusUnprocessableEntity,
	apperr.KindNotFound:        http.StatusNotFound,
	apperr.KindPrecondition:    http.StatusConflict,
	apperr.KindRateLimited:     http.StatusTooManyRequests,
	apperr.KindPaymentRequired: http.StatusPaymentRequired,
	apperr.KindUpstream:        http.StatusBadGateway,
	apperr.KindConfiguration:   http.StatusInternalServerError,
	apperr.KindPersistence:     http.StatusInternalServerError,
}

// StatusFor maps a use-case error to its HTTP status.
func StatusFor(err error) int {
	if code, ok := kindStatus[apperr.KindOf(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// respondError writes the error body. Storage and unknown failures are logged
// and their details withheld from the client.
func respondError(c echo.Context, log *logrus.Logger, err error) error {
	code := StatusFor(err)
	kind := apperr.KindOf(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
			"kind":   kind,
		}).Error("request failed")
		if kind == apperr.KindPersistence || kind == apperr.KindUnknown {
			msg = "internal error"
		}
	}
	return c.JSON(code, ErrorResponse{Error: msg, Kind: string(kind)})
}

func badJSON(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Kind: string(apperr.KindValidation)})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Kind:    string(apperr.KindValidation),
		Details: ToFieldErrors(err),
	})
}

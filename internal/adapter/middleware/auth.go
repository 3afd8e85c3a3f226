package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	RoleEmployee = "employee"

	ctxReviewerID = "reviewer_id"
)

// Claims carried by bank-officer tokens. Subject identifies the officer.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errNoSubject = errors.New("token has no subject")

// RequireEmployee admits requests bearing an HS256 token with role=employee
// and exposes the token subject through ReviewerID.
func RequireEmployee(secret []byte, log *logrus.Logger) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFn := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject(c, http.StatusUnauthorized, "missing bearer token")
			}

			var claims Claims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFn); err != nil {
				log.WithError(err).Warn("employee token rejected")
				return reject(c, http.StatusUnauthorized, "invalid token")
			}
			sub, err := claims.GetSubject()
			if err == nil && strings.TrimSpace(sub) == "" {
				err = errNoSubject
			}
			if err != nil {
				log.WithError(err).Warn("employee token rejected")
				return reject(c, http.StatusUnauthorized, "invalid token")
			}
			if claims.Role != RoleEmployee {
				return reject(c, http.StatusForbidden, "employee role required")
			}

			c.Set(ctxReviewerID, sub)
			return next(c)
		}
	}
}

// ReviewerID returns the officer id set by RequireEmployee, or "".
func ReviewerID(c echo.Context) string {
	s, _ := c.Get(ctxReviewerID).(string)
	return s
}

func bearerToken(h string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

package http

import (
	"time"

	"loanreview-backend/internal/adapter/middleware"
	"loanreview-backend/internal/infrastructure/metrics"
	"loanreview-backend/internal/usecase/appeal"
	"loanreview-backend/internal/usecase/loan"
	"loanreview-backend/internal/usecase/notification"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Log *logrus.Logger
	DB  Pinger

	Applications  *loan.Usecase
	Appeals       *appeal.Usecase
	Notifications *notification.Usecase

	// Redis nil disables the idempotency layer on submissions.
	Redis          *redis.Client
	IdempotencyTTL time.Duration

	// JWTSecret empty leaves /employee unmounted.
	JWTSecret []byte
}

func NewRouter(d RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(echomw.Recover())
	e.Use(requestLogger(d.Log))
	e.Use(metrics.Middleware())

	health := NewHandler(d.DB)
	apps := NewApplicationHandler(d.Applications, d.Log)
	appeals := NewAppealHandler(d.Appeals, d.Log)
	notes := NewNotificationHandler(d.Notifications, d.Log)

	e.GET("/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	var submit []echo.MiddlewareFunc
	if d.Redis != nil {
		submit = append(submit, middleware.Idempotency(d.Redis, d.IdempotencyTTL, d.Log))
	} else {
		d.Log.Warn("REDIS_ADDR empty: submissions are not idempotent")
	}
	e.POST("/applications", apps.Submit, submit...)
	e.POST("/appeals", appeals.File, submit...)

	e.GET("/applications/:application_id", apps.Get)
	e.GET("/customers/:user_id/applications", apps.ListByCustomer)
	e.GET("/customers/:user_id/appeals", appeals.ListByCustomer)
	e.GET("/customers/:user_id/notifications", notes.ListByCustomer)
	e.PATCH("/notifications/:notification_id/read", notes.MarkRead)

	if len(d.JWTSecret) == 0 {
		d.Log.Warn("JWT_SECRET empty: employee routes are not mounted")
		return e
	}
	emp := e.Group("/employee", middleware.RequireEmployee(d.JWTSecret, d.Log))
	emp.GET("/appeals/pending", appeals.ListPending)
	emp.POST("/appeals/:appeal_id/review", appeals.Review)
	emp.POST("/jobs/monthly-notifications", notes.RunMonthlyBatch)
	emp.GET("/stats/decisions", apps.Stats)
	return e
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"loanreview-backend/internal/adapter/ai"
	httpadp "loanreview-backend/internal/adapter/http"
	"loanreview-backend/internal/adapter/repository/mysql"
	"loanreview-backend/internal/config"
	"loanreview-backend/internal/infrastructure/cache"
	"loanreview-backend/internal/infrastructure/db"
	"loanreview-backend/internal/infrastructure/logging"
	"loanreview-backend/internal/infrastructure/scheduler"
	"loanreview-backend/internal/usecase/appeal"
	"loanreview-backend/internal/usecase/loan"
	"loanreview-backend/internal/usecase/notification"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
	}

	rdb, err := cache.OpenRedis(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	if cfg.AIAPIKey == "" {
		log.Warn("AI_GATEWAY_API_KEY not set: decisions will fail until it is configured")
	}
	aiClient := ai.NewClient(ai.Config{
		Endpoint:      cfg.AIGatewayURL,
		APIKey:        cfg.AIAPIKey,
		Model:         cfg.AIModel,
		Timeout:       cfg.AITimeout(),
		RatePerSecond: cfg.AIRatePerSecond,
		Burst:         cfg.AIBurst,
	}, log)

	repos := mysql.NewRepos(gdb)
	tx := mysql.NewGormUoW(gdb)

	loanUC := loan.NewUsecase(repos.Applications, repos.ApprovedLoans, aiClient, log)
	notifUC := notification.NewUsecase(repos.Notifications, tx, log)
	appealUC := appeal.NewUsecase(repos.Appeals, tx, notifUC, log)

	sched := scheduler.New(log)
	if cfg.BatchCron != "" {
		err := sched.Register(cfg.BatchCron, "monthly-notifications", func(ctx context.Context) error {
			_, err := notifUC.RunMonthlyBatch(ctx)
			return err
		})
		if err != nil {
			return err
		}
		sched.Start()
	}

	e := httpadp.NewRouter(httpadp.RouterDeps{
		Log:            log,
		DB:             sqlDB,
		Applications:   loanUC,
		Appeals:        appealUC,
		Notifications:  notifUC,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		JWTSecret:      []byte(cfg.JWTSecret),
	})

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := sched.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("scheduler stop")
	}
	return e.Shutdown(shutdownCtx)
}

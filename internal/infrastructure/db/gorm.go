package db

import (
	"time"

	"loanreview-backend/internal/domain/appeal"
	"loanreview-backend/internal/domain/application"
	"loanreview-backend/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&application.LoanApplication{},
		&application.ApprovedLoan{},
		&appeal.Appeal{},
		&notification.Notification{},
	}
}

// GormLogger routes gorm's output through logrus. Record-not-found is expected
// in normal flows and stays quiet.
func GormLogger(log *logrus.Logger) logger.Interface {
	lvl := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		lvl = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

func OpenGorm(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), log)
}

func OpenGormWithDialector(dial gorm.Dialector, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dial, &gorm.Config{Logger: GormLogger(log)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Info("gorm: connected")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

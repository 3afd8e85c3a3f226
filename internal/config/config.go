package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultAIGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultAIModel      = "google/gemini-2.5-flash"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	// RedisAddr empty disables idempotent submissions.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	IdempTTLSecs  int

	AIGatewayURL    string
	AIAPIKey        string
	AIModel         string
	AITimeoutSecs   int
	AIRatePerSecond float64
	AIBurst         int

	JWTSecret string

	LogLevel  string
	LogFormat string

	// BatchCron empty leaves the monthly batch to an external trigger.
	BatchCron     string
	DBAutoMigrate bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getfloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads the environment. A .env file in the working directory, when
// present, fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanreview"),
		MySQLUser: getenv("MYSQL_USER", "loanreview"),
		MySQLPass: getenv("MYSQL_PASS", "loanreview"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		IdempTTLSecs:  getint("IDEMPOTENCY_TTL_SECONDS", 300),

		AIGatewayURL:    getenv("AI_GATEWAY_URL", defaultAIGatewayURL),
		AIAPIKey:        getenv("AI_GATEWAY_API_KEY", os.Getenv("LOVABLE_API_KEY")),
		AIModel:         getenv("AI_MODEL", defaultAIModel),
		AITimeoutSecs:   getint("AI_TIMEOUT_SECONDS", 60),
		AIRatePerSecond: getfloat("AI_RATE_PER_SECOND", 0),
		AIBurst:         getint("AI_BURST", 1),

		JWTSecret: os.Getenv("JWT_SECRET"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		BatchCron:     strings.TrimSpace(os.Getenv("BATCH_CRON")),
		DBAutoMigrate: getbool("DB_AUTO_MIGRATE", true),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if c.AIRatePerSecond < 0 {
		return fmt.Errorf("AI_RATE_PER_SECOND must not be negative, got %v", c.AIRatePerSecond)
	}
	if c.BatchCron != "" {
		if _, err := cron.ParseStandard(c.BatchCron); err != nil {
			return fmt.Errorf("invalid BATCH_CRON %q: %w", c.BatchCron, err)
		}
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

// MySQLDSN enables parseTime for DATETIME columns and stores times as UTC.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) AITimeout() time.Duration { return time.Duration(c.AITimeoutSecs) * time.Second }

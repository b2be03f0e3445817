package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/pkg/retry"
	"github.com/akeren/bizguard-leads/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type DBConfig struct {
	// Driver is postgres or sqlite. Empty reads DB_DRIVER, defaulting to postgres.
	Driver          string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string // Default: "require" for prod safety
	ConnectAttempts int
}

func (cfg *DBConfig) applyDefaults() {
	if cfg.Driver == "" {
		cfg.Driver = strings.ToLower(utils.GetEnvTrimmedOrDefault("DB_DRIVER", DBDriverPostgres))
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = utils.GetEnvTrimmedOrDefault("SQLITE_PATH", filepath.Join("data", "bizguard.db"))
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 10
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 100
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = time.Minute
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "require"
	}
	if cfg.ConnectAttempts <= 0 {
		cfg.ConnectAttempts = utils.GetEnvIntOrDefault("DB_CONNECT_ATTEMPTS", 5)
	}
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &DBConfig{}
	}
	cfg.applyDefaults()

	dialector, err := buildDialector(logger, cfg)
	if err != nil {
		return nil, err
	}

	policy := retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: cfg.ConnectAttempts,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Multiplier:  2.0,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			logger.Warn("Database connection attempt failed; retrying",
				"attempt", attempt,
				"retry_in", delay.String(),
				"error", err,
			)
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var gdb *gorm.DB
	err = policy.Execute(ctx, func() error {
		opened, openErr := openDatabase(ctx, dialector, cfg)
		if openErr != nil {
			return openErr
		}
		gdb = opened
		return nil
	})
	if err != nil {
		logger.Error("Failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established successfully", "driver", cfg.Driver)
	return gdb, nil
}

func openDatabase(ctx context.Context, dialector gorm.Dialector, cfg *DBConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == DBDriverSQLite {
		// sqlite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return gdb, nil
}

func buildDialector(logger *log.Logger, cfg *DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DBDriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && !strings.HasPrefix(cfg.SQLitePath, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		logger.Info("Using sqlite database", "path", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath), nil
	case DBDriverPostgres:
		dsn, err := postgresDSN(logger, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.Driver, DBDriverPostgres, DBDriverSQLite)
	}
}

// postgresEnv is the POSTGRES_* connection settings, used when
// APP_DATABASE_URL is not set.
type postgresEnv struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func readPostgresEnv() postgresEnv {
	return postgresEnv{
		Host:     sanitizeEnv(os.Getenv("POSTGRES_HOST")),
		Port:     sanitizeEnv(os.Getenv("POSTGRES_PORT")),
		User:     sanitizeEnv(os.Getenv("POSTGRES_USER")),
		Password: sanitizeEnv(os.Getenv("POSTGRES_PASSWORD")),
		DBName:   sanitizeEnv(os.Getenv("POSTGRES_DB_NAME")),
		SSLMode:  sanitizeEnv(os.Getenv("POSTGRES_SSLMODE")),
	}
}

func (e postgresEnv) missing() []string {
	var missing []string
	for _, field := range []struct{ key, value string }{
		{"POSTGRES_HOST", e.Host},
		{"POSTGRES_PORT", e.Port},
		{"POSTGRES_USER", e.User},
		{"POSTGRES_DB_NAME", e.DBName},
	} {
		if field.value == "" {
			missing = append(missing, field.key)
		}
	}
	return missing
}

// url renders a postgres:// URL; credentials are escaped.
func (e postgresEnv) url() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.User, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.DBName,
		RawQuery: url.Values{"sslmode": {e.SSLMode}}.Encode(),
	}
	return u.String()
}

func postgresDSN(logger *log.Logger, cfg *DBConfig) (string, error) {
	if dsn := sanitizeEnv(os.Getenv("APP_DATABASE_URL")); dsn != "" {
		logger.Info("Using APP_DATABASE_URL for database connection")
		return dsn, nil
	}

	env := readPostgresEnv()
	if env.SSLMode == "" {
		env.SSLMode = cfg.SSLMode
	}

	if missing := env.missing(); len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}
	if _, err := strconv.Atoi(env.Port); err != nil {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", env.Port, err)
	}

	logger.Info("Connecting to postgres", "host", env.Host, "port", env.Port, "user", env.User, "dbname", env.DBName, "sslmode", env.SSLMode)
	return env.url(), nil
}

// sanitizeEnv trims whitespace and one pair of surrounding quotes.
func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/bizguard-leads/config"
	"github.com/akeren/bizguard-leads/domain/submission"
	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/pkg/client"
	"github.com/akeren/bizguard-leads/pkg/migrations"
	"github.com/akeren/bizguard-leads/pkg/retry"
	"github.com/akeren/bizguard-leads/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	switch args[0] {
	case "migrate":
		err = runMigrate(ctx, logger, args[1:])

	case "export":
		if len(args) < 2 {
			err = fmt.Errorf("usage: cli export <waitlist|subscription>")
			break
		}
		err = withStore(logger, func(store submission.SubmissionRepository) error {
			return runExport(ctx, store, args[1], os.Stdout)
		})

	case "stats":
		err = withStore(logger, func(store submission.SubmissionRepository) error {
			return runStats(ctx, store, os.Stdout)
		})

	case "submit":
		err = runSubmit(ctx, args[1:], os.Stdin)

	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err.Error())
		os.Exit(1)
	}
}

// runMigrate applies pending migrations, or rolls back with "down [steps]".
func runMigrate(ctx context.Context, logger *log.Logger, args []string) error {
	rollback := 0
	if len(args) > 0 {
		if args[0] != "down" {
			return fmt.Errorf("usage: cli migrate [down [steps]]")
		}
		rollback = 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			rollback = n
		}
	}

	dbCfg := &config.DBConfig{}
	db, err := config.NewDatabase(logger, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database for migration: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance for migration: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	cfg := migrations.Config{
		Driver: dbCfg.Driver,
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}

	if rollback > 0 {
		err = migrations.Down(ctx, sqlDB, cfg, rollback)
	} else {
		err = migrations.Up(ctx, sqlDB, cfg)
	}
	if err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	return nil
}

// withStore opens the submission store selected by SUBMISSION_STORE.
func withStore(logger *log.Logger, fn func(submission.SubmissionRepository) error) error {
	storeCfg := config.NewStoreConfig()

	var db *gorm.DB
	if storeCfg.NeedsDatabase() {
		var err error
		db, err = config.NewDatabase(logger, &config.DBConfig{})
		if err != nil {
			return err
		}
		defer config.CloseDatabase(db, logger)
	}

	store, err := storeCfg.NewSubmissionStore(logger, db)
	if err != nil {
		return err
	}

	return fn(store)
}

func runSubmit(ctx context.Context, args []string, stdin io.Reader) error {
	baseURL := utils.GetEnvTrimmedOrDefault("LEAD_SINK_URL", "http://localhost:"+utils.GetEnvTrimmedOrDefault("APP_PORT", "8080"))

	var raw string
	switch {
	case len(args) == 0 || args[0] == "-":
		body, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read payload from stdin: %w", err)
		}
		raw = string(body)
	default:
		raw = strings.Join(args, " ")
	}

	payload, err := submission.DecodePayload(strings.NewReader(raw))
	if err != nil {
		return err
	}

	sink, err := client.New(&client.Config{BaseURL: baseURL})
	if err != nil {
		return err
	}

	policy := retry.NewFixedDelay(&retry.Config{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   client.IsSinkFailure,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			fmt.Fprintf(os.Stderr, "attempt %d failed (%v), retrying in %s\n", attempt, err, delay)
		},
	})

	if err := policy.Execute(ctx, func() error { return sink.Submit(ctx, payload) }); err != nil {
		return err
	}

	fmt.Printf("Submitted %s entry to %s\n", submission.Classify(payload), baseURL)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cli <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  migrate [down [n]]     Apply pending migrations, or roll back the last n (default 1)")
	fmt.Fprintln(w, "  export <category>      Print every waitlist or subscription record as JSON")
	fmt.Fprintln(w, "  stats                  Print submission counts per category")
	fmt.Fprintln(w, "  submit [json|-]        Post a JSON payload to LEAD_SINK_URL (stdin when omitted)")
	fmt.Fprintln(w, "  help                   Show this message")
}

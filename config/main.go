package config

import (
	"context"
	"time"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/domain/submission"
	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/internal/models"
	"github.com/akeren/bizguard-leads/pkg/constants"
	"github.com/akeren/bizguard-leads/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	// DB is nil unless SUBMISSION_STORE=database or --auto-migrate asked for it.
	DB              *gorm.DB
	Store           submission.SubmissionRepository
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	SubmitRequestsPerMinute int
	WizardSessionTTL        time.Duration
	// SubmissionsReadToken guards the read endpoints; empty disables them.
	SubmissionsReadToken string
	// LeadSinkURL sends form submissions to a remote sink instead of the
	// in-process service.
	LeadSinkURL string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: utils.GetEnvIntOrDefault("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvDurationOrDefault("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvDurationOrDefault("REQUEST_TIMEOUT", router.DefaultTimeoutDuration),

		SubmitRequestsPerMinute: utils.GetEnvIntOrDefault("SUBMIT_RATE_LIMIT_PER_MINUTE", constants.DefaultSubmitRequestsPerMinute),
		WizardSessionTTL:        utils.GetEnvDurationOrDefault("WIZARD_SESSION_TTL", constants.DefaultWizardSessionTTL),
		SubmissionsReadToken:    utils.GetEnvTrimmed("SUBMISSIONS_READ_TOKEN"),
		LeadSinkURL:             utils.GetEnvTrimmed("LEAD_SINK_URL"),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	db, store, err := openSubmissionStore(logger, NewStoreConfig(), autoMigrate)
	if err != nil {
		return nil, err
	}

	appConfig := NewAppConfig()
	cache := NewCacheConfig().NewCacheOrNil(logger)

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		DB:              db,
		Store:           store,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}

// openSubmissionStore connects the database only when the store or
// --auto-migrate needs it.
func openSubmissionStore(logger *log.Logger, storeCfg *StoreConfig, autoMigrate bool) (*gorm.DB, submission.SubmissionRepository, error) {
	var db *gorm.DB
	if storeCfg.NeedsDatabase() || autoMigrate {
		var err error
		db, err = NewDatabase(logger, &DBConfig{})
		if err != nil {
			return nil, nil, err
		}
	} else {
		logger.Info("Submission store is file based; skipping database connection", "data_dir", storeCfg.DataDir)
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			CloseDatabase(db, logger)
			return nil, nil, err
		}
	}

	store, err := storeCfg.NewSubmissionStore(logger, db)
	if err != nil {
		CloseDatabase(db, logger)
		return nil, nil, err
	}

	return db, store, nil
}

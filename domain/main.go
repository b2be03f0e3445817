package domain

import (
	"fmt"
	"time"

	"github.com/akeren/bizguard-leads/config"
	"github.com/akeren/bizguard-leads/domain/landing"
	"github.com/akeren/bizguard-leads/domain/leadform"
	"github.com/akeren/bizguard-leads/domain/monitoring"
	"github.com/akeren/bizguard-leads/domain/submission"
	"github.com/akeren/bizguard-leads/pkg/circuitbreaker"
	"github.com/akeren/bizguard-leads/pkg/client"
	"github.com/akeren/bizguard-leads/pkg/factory"
)

const monitoringRequestsPerMinute = 10

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	rs := appConfig.RouterService
	logger := appConfig.Logger

	factories := factory.NewFactoryContainer(
		&factory.RateLimitConfig{
			Requests: appConfig.Config.SubmitRequestsPerMinute,
			Window:   time.Minute,
			Logger:   logger,
		},
		&factory.RateLimitConfig{
			Requests: monitoringRequestsPerMinute,
			Window:   time.Minute,
			Logger:   logger,
		},
		appConfig.Cache,
	)

	recorder, err := submission.NewPrometheusRecorder(rs.MetricsRegisterer())
	if err != nil {
		return fmt.Errorf("register submission metrics: %w", err)
	}

	submissions := submission.NewSubmissionServiceFactory(
		appConfig.Store,
		logger,
		&submission.ControllerConfig{
			SubmitLimiter: factories.SubmitRateLimiterFactory.CreateRateLimiter(),
			ReadToken:     appConfig.Config.SubmissionsReadToken,
		},
		submission.WithRecorder(recorder),
	)

	submitter, sink, err := newSubmitter(appConfig, submissions.CreateService())
	if err != nil {
		return err
	}

	rs.MountController(landing.NewLandingController(landing.DefaultContent()))
	rs.MountController(monitoring.NewMonitoringControllerFactory(&monitoring.ControllerConfig{
		DB:      appConfig.DB,
		Cache:   appConfig.Cache,
		Store:   appConfig.Store,
		Sink:    sink,
		Limiter: factories.MonitoringRateLimiterFactory.CreateRateLimiter(),
	}).CreateController())

	for _, controller := range submissions.CreateControllers() {
		rs.MountController(controller)
	}

	rs.MountController(leadform.NewLeadFormControllerFactory(
		submitter,
		appConfig.Cache,
		appConfig.Config.WizardSessionTTL,
		logger,
	).CreateController())

	return nil
}

// newSubmitter posts form submissions to LEAD_SINK_URL when set, and to the
// in-process service otherwise. The returned pinger is nil without a remote sink.
func newSubmitter(appConfig *config.ApplicationConfig, service submission.SubmissionService) (leadform.Submitter, monitoring.Pinger, error) {
	if appConfig.Config.LeadSinkURL == "" {
		return leadform.NewServiceSubmitter(service), nil, nil
	}

	logger := appConfig.Logger
	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.IsFailure = client.IsSinkFailure
	breakerCfg.OnStateChange = func(from, to circuitbreaker.CircuitState) {
		logger.Warn("Lead sink circuit changed state", "from", from.String(), "to", to.String())
	}

	sink, err := client.New(&client.Config{
		BaseURL: appConfig.Config.LeadSinkURL,
		Breaker: circuitbreaker.NewCircuitBreaker(breakerCfg),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("lead sink client: %w", err)
	}

	logger.Info("Form submissions forwarded to remote sink", "url", appConfig.Config.LeadSinkURL)
	return sink, sink, nil
}

package monitoring

import (
	"context"
	"time"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/pkg/ratelimit"
	"gorm.io/gorm"
)

const checkTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe values: 1 = healthy, 0 = unhealthy, -1 = not configured.
const (
	probeHealthy       = 1
	probeUnhealthy     = 0
	probeNotConfigured = -1
)

type HealthStatus struct {
	Database int `json:"database"`
	Cache    int `json:"cache"`
	Storage  int `json:"storage"` // submission store
	Sink     int `json:"sink"`    // remote sink circuit, when forwarding
	Uptime   int `json:"uptime"`  // seconds
}

// Healthy ignores components that are not configured.
func (h HealthStatus) Healthy() bool {
	for _, p := range []int{h.Database, h.Cache, h.Storage, h.Sink} {
		if p == probeUnhealthy {
			return false
		}
	}
	return true
}

type ControllerConfig struct {
	DB    *gorm.DB
	Cache Pinger
	Store Pinger
	Sink  Pinger
	// Limiter throttles both probes. Nil uses the router default.
	Limiter ratelimit.RateLimiter
}

type MonitoringController struct {
	db        *gorm.DB
	cache     Pinger
	store     Pinger
	sink      Pinger
	startTime time.Time
}

func NewMonitoringController(cfg *ControllerConfig) *router.RESTController {
	ctrl := &MonitoringController{
		db:        cfg.DB,
		cache:     cfg.Cache,
		store:     cfg.Store,
		sink:      cfg.Sink,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			controller.RateLimitWith(cfg.Limiter)
			routerService.AddGetHandler(controller, nil, "status", ctrl.status)
			routerService.AddGetHandler(controller, nil, "health", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) status(c *router.RequestContext) *router.ServiceResult {
	return router.OKResult(map[string]any{
		"status": "operational",
		"uptime": int(time.Since(ctrl.startTime).Seconds()),
	}, "Lead capture service is operational")
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)
	if !status.Healthy() {
		return &router.ServiceResult{
			StatusCode: 503,
			Data:       status,
			Message:    "One or more dependencies are unhealthy",
		}
	}

	return router.OKResult(status, "Health check completed")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	return HealthStatus{
		Database: probe(ctx, logger, "database", ctrl.databasePinger()),
		Cache:    probe(ctx, logger, "cache", ctrl.cache),
		Storage:  probe(ctx, logger, "storage", ctrl.store),
		Sink:     probe(ctx, logger, "sink", ctrl.sink),
		Uptime:   int(time.Since(ctrl.startTime).Seconds()),
	}
}

func (ctrl *MonitoringController) databasePinger() Pinger {
	if ctrl.db == nil {
		return nil
	}
	return dbPinger{db: ctrl.db}
}

type dbPinger struct {
	db *gorm.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func probe(ctx context.Context, logger *log.Logger, name string, target Pinger) int {
	if target == nil {
		return probeNotConfigured
	}

	if err := target.Ping(ctx); err != nil {
		logger.Error("Health check failed", "component", name, "error", err)
		return probeUnhealthy
	}

	return probeHealthy
}

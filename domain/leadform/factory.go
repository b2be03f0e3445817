package leadform

import (
	"time"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/internal/log"
)

type LeadFormControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultLeadFormControllerFactory struct {
	submitter  Submitter
	cache      Cache
	sessionTTL time.Duration
	logger     *log.Logger
}

// NewLeadFormControllerFactory keeps wizard sessions in cache when one is
// configured and in process memory otherwise.
func NewLeadFormControllerFactory(submitter Submitter, cache Cache, sessionTTL time.Duration, logger *log.Logger) LeadFormControllerFactory {
	return &DefaultLeadFormControllerFactory{
		submitter:  submitter,
		cache:      cache,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (f *DefaultLeadFormControllerFactory) CreateController() *router.RESTController {
	var sessions SessionStore
	if f.cache != nil {
		f.logger.Info("Wizard sessions stored in cache", "ttl", f.sessionTTL)
		sessions = NewCacheSessionStore(f.cache, f.sessionTTL)
	} else {
		f.logger.Info("Wizard sessions stored in memory", "ttl", f.sessionTTL)
		sessions = NewMemorySessionStore(f.sessionTTL)
	}

	return NewLeadFormController(&ControllerConfig{
		Sessions:   sessions,
		Submitter:  f.submitter,
		SessionTTL: f.sessionTTL,
	})
}

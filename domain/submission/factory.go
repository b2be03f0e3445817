package submission

import (
	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/internal/log"
)

type SubmissionServiceFactory interface {
	CreateService() SubmissionService
	CreateControllers() []*router.RESTController
}

type DefaultSubmissionServiceFactory struct {
	repository SubmissionRepository
	logger     *log.Logger
	config     *ControllerConfig
	options    []ServiceOption

	service SubmissionService
}

func NewSubmissionServiceFactory(repository SubmissionRepository, logger *log.Logger, config *ControllerConfig, options ...ServiceOption) SubmissionServiceFactory {
	return &DefaultSubmissionServiceFactory{
		repository: repository,
		logger:     logger,
		config:     config,
		options:    options,
	}
}

// CreateService returns the same service on every call so the submit
// endpoint and in-process submitters share one timestamp sequence.
func (f *DefaultSubmissionServiceFactory) CreateService() SubmissionService {
	if f.service == nil {
		f.service = NewSubmissionService(f.logger, f.repository, f.options...)
	}
	return f.service
}

func (f *DefaultSubmissionServiceFactory) CreateControllers() []*router.RESTController {
	service := f.CreateService()
	return []*router.RESTController{
		NewSubmitController(service, f.config),
		NewSubmissionsController(service, f.logger, f.config),
	}
}

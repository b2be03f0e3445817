package monitoring

import (
	"github.com/akeren/bizguard-leads/config/router"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	config *ControllerConfig
}

func NewMonitoringControllerFactory(config *ControllerConfig) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{config: config}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.config)
}

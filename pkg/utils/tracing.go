package utils

import (
	"strconv"

	"github.com/akeren/bizguard-leads/pkg/constants"
)

// IsTracingEnabled is opt-in through OTEL_TRACES_ENABLED.
func IsTracingEnabled() bool {
	enabled, err := strconv.ParseBool(GetEnvTrimmedOrDefault("OTEL_TRACES_ENABLED", "false"))
	return err == nil && enabled
}

func OTelServiceName() string {
	return GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", constants.DefaultServiceName)
}

// TraceSampleRatio reads OTEL_TRACES_SAMPLER_ARG, clamped to [0, 1].
// Missing or invalid values sample everything.
func TraceSampleRatio() float64 {
	ratio, err := strconv.ParseFloat(GetEnvTrimmed("OTEL_TRACES_SAMPLER_ARG"), 64)
	if err != nil {
		return 1
	}
	return min(1, max(0, ratio))
}

package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		hostport string
		path     string
		insecure bool
	}{
		{"http://collector:4318", "collector:4318", "/v1/traces", true},
		{"https://otel.example.com/custom/traces", "otel.example.com", "/custom/traces", false},
		{"collector:4318", "collector:4318", "/v1/traces", true},
	}

	for _, tc := range cases {
		hostport, path, insecure, err := parseOTLPEndpoint(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.hostport, hostport, tc.raw)
		assert.Equal(t, tc.path, path, tc.raw)
		assert.Equal(t, tc.insecure, insecure, tc.raw)
	}
}

func TestParseOTLPEndpoint_Rejects(t *testing.T) {
	for _, raw := range []string{"", "grpc://collector:4317", "http://", "collector:4318/v1/traces"} {
		_, _, _, err := parseOTLPEndpoint(raw)
		assert.Error(t, err, raw)
	}
}

func TestSetupTracing_DisabledByDefault(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "")

	shutdown, err := SetupTracing(log.NewLoggerWithJSONOutput())

	require.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestNewTraceResource(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "leads-test")
	t.Setenv(AppEnvKey, "Staging")
	t.Setenv("SUBMISSION_STORE", "database")

	res := newTraceResource(log.NewLogger(io.Discard, slog.LevelInfo))

	values := map[string]string{}
	for _, kv := range res.Attributes() {
		values[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "leads-test", values["service.name"])
	assert.Equal(t, "staging", values["deployment.environment"])
	assert.Equal(t, "database", values["lead.store"])
}

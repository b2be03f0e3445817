package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, service SubmissionService, cfg *ControllerConfig) *router.RouterService {
	t.Helper()
	t.Setenv("METRICS_ENABLED", "false")

	logger := log.NewLoggerWithJSONOutput()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})

	rs.MountController(NewSubmitController(service, cfg))
	rs.MountController(NewSubmissionsController(service, logger, cfg))
	return rs
}

func doRequest(rs *router.RouterService, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestSubmitHandler_SavesToCategoryLog(t *testing.T) {
	dir := t.TempDir()
	service := NewSubmissionService(log.NewLoggerWithJSONOutput(), NewFileRepository(dir))
	rs := newTestRouter(t, service, nil)

	w := doRequest(rs, http.MethodPost, "/api/submit", `{"name":"A","profession":"accountant","email":"a@x.com"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Submission saved successfully", resp["message"])
	assert.NotContains(t, resp, "code")

	w = doRequest(rs, http.MethodPost, "/api/submit", `{"email":"b@x.com"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	waitlist, err := service.List(context.Background(), CategoryWaitlist)
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, "waitlist", waitlist[0].Source())
	assert.NotEmpty(t, waitlist[0].Timestamp())

	subscriptions, err := service.List(context.Background(), CategorySubscription)
	require.NoError(t, err)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, "b@x.com", subscriptions[0].Email())
}

func TestSubmitHandler_MalformedBodyLeavesLogsIntact(t *testing.T) {
	dir := t.TempDir()
	existing := []byte("[\n  {\n    \"email\": \"old@x.com\"\n  }\n]")
	path := filepath.Join(dir, "subscriptions.json")
	require.NoError(t, os.WriteFile(path, existing, 0o644))

	service := NewSubmissionService(log.NewLoggerWithJSONOutput(), NewFileRepository(dir))
	rs := newTestRouter(t, service, nil)

	for _, body := range []string{`{"email":`, `[1,2,3]`, `"text"`, ``} {
		w := doRequest(rs, http.MethodPost, "/api/submit", body, nil)
		require.Equal(t, http.StatusInternalServerError, w.Code, "body %q", body)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to save submission", resp["error"])
		assert.NotContains(t, resp, "success")
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, existing, raw)
}

func TestSubmitHandler_ServiceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSubmissionService(ctrl)
	mockService.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	rs := newTestRouter(t, mockService, nil)
	w := doRequest(rs, http.MethodPost, "/api/submit", `{"email":"a@x.com"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save submission"}`, w.Body.String())
}

func TestSubmitHandler_OversizedBodyKeepsWireContract(t *testing.T) {
	t.Setenv("MAX_REQUEST_BODY_BYTES", "1024")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rs := newTestRouter(t, NewMockSubmissionService(ctrl), nil)
	body := `{"email":"` + strings.Repeat("a", 2048) + `@x.com"}`

	for _, chunked := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if chunked {
			req.ContentLength = -1
		}

		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, "chunked=%v", chunked)
		assert.JSONEq(t, `{"error":"Failed to save submission"}`, w.Body.String(), "chunked=%v", chunked)
	}
}

func TestSubmitHandler_RateLimitedKeepsWireContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSubmissionService(ctrl)
	mockService.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&SubmitResult{}, nil).Times(1)

	limiter := ratelimit.NewInMemoryRateLimiter(1, time.Minute)
	defer limiter.Close()

	rs := newTestRouter(t, mockService, &ControllerConfig{SubmitLimiter: limiter})

	w := doRequest(rs, http.MethodPost, "/api/submit", `{"email":"a@x.com"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(rs, http.MethodPost, "/api/submit", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save submission"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestSubmissionsController_ReadToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("disabled without token", func(t *testing.T) {
		rs := newTestRouter(t, NewMockSubmissionService(ctrl), &ControllerConfig{})

		w := doRequest(rs, http.MethodGet, "/v1/submissions/stats", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		rs := newTestRouter(t, NewMockSubmissionService(ctrl), &ControllerConfig{ReadToken: "s3cret"})

		w := doRequest(rs, http.MethodGet, "/v1/submissions/stats", "", http.Header{"Authorization": {"Bearer nope"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doRequest(rs, http.MethodGet, "/v1/submissions/stats", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stats with token", func(t *testing.T) {
		mockService := NewMockSubmissionService(ctrl)
		mockService.EXPECT().Stats(gomock.Any()).Return(&StatsResponse{Waitlist: 2, Subscription: 1, Total: 3}, nil)
		rs := newTestRouter(t, mockService, &ControllerConfig{ReadToken: "s3cret"})

		w := doRequest(rs, http.MethodGet, "/v1/submissions/stats", "", http.Header{"Authorization": {"Bearer s3cret"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data StatsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.Data.Total)
	})

	t.Run("list with token", func(t *testing.T) {
		mockService := NewMockSubmissionService(ctrl)
		mockService.EXPECT().List(gomock.Any(), CategoryWaitlist).Return([]Record{{"email": "a@x.com"}}, nil)
		rs := newTestRouter(t, mockService, &ControllerConfig{ReadToken: "s3cret"})

		w := doRequest(rs, http.MethodGet, "/v1/submissions?category=waitlist", "", http.Header{"Authorization": {"Bearer s3cret"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data ListResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.Count)
		assert.Equal(t, CategoryWaitlist, resp.Data.Category)
	})

	t.Run("list with unknown category", func(t *testing.T) {
		rs := newTestRouter(t, NewMockSubmissionService(ctrl), &ControllerConfig{ReadToken: "s3cret"})

		w := doRequest(rs, http.MethodGet, "/v1/submissions?category=ledger", "", http.Header{"Authorization": {"Bearer s3cret"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

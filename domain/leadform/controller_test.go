package leadform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/akeren/bizguard-leads/pkg/constants"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	err      error
	payloads []map[string]any
}

func (s *recordingSubmitter) Submit(_ context.Context, payload map[string]any) error {
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

type browser struct {
	t      *testing.T
	rs     *router.RouterService
	cookie *http.Cookie
}

func newBrowser(t *testing.T, submitter Submitter) *browser {
	t.Helper()
	t.Setenv("METRICS_ENABLED", "false")

	rs := router.CreateRouterService(log.NewLoggerWithJSONOutput(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewLeadFormController(&ControllerConfig{
		Sessions:   NewMemorySessionStore(time.Hour),
		Submitter:  submitter,
		SessionTTL: time.Hour,
	}))

	return &browser{t: t, rs: rs}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	w := httptest.NewRecorder()
	b.rs.GetEngine().ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.WizardSessionCookieName {
			if cookie.MaxAge < 0 || cookie.Value == "" {
				b.cookie = nil
			} else {
				b.cookie = cookie
			}
		}
	}

	return w
}

func TestLeadFormController_WizardFlow(t *testing.T) {
	submitter := &recordingSubmitter{}
	b := newBrowser(t, submitter)

	w := b.do(http.MethodGet, "/waitlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Tell us about yourself")
	assert.Contains(t, w.Body.String(), `action="/waitlist/next"`)
	require.NotNil(t, b.cookie, "session cookie is issued")

	w = b.do(http.MethodPost, "/waitlist/next", url.Values{"name": {"Ada"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please complete")
	assert.Contains(t, w.Body.String(), "Age Group")

	w = b.do(http.MethodPost, "/waitlist/next", url.Values{"ageGroup": {"26-35"}, "profession": {"accountant"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "About your business")

	w = b.do(http.MethodPost, "/waitlist/back", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tell us about yourself")
	assert.Contains(t, w.Body.String(), `value="Ada"`)

	w = b.do(http.MethodPost, "/waitlist/next", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)

	w = b.do(http.MethodPost, "/waitlist/next", url.Values{
		"businessName":    {"Ledgerly"},
		"employeeRange":   {"small"},
		"isBusinessOwner": {"false", "true"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `action="/waitlist/submit"`)

	submitter.err = errors.New("sink unavailable")
	form := url.Values{
		"email":             {"ada@x.com"},
		"currentAccounting": {"", "xero", "bogus", "xero"},
	}
	w = b.do(http.MethodPost, "/waitlist/submit", form)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "sending your application")
	assert.NotContains(t, w.Body.String(), "Thank You!")
	require.NotNil(t, b.cookie, "draft survives a failed submit")

	submitter.err = nil
	w = b.do(http.MethodPost, "/waitlist/submit", url.Values{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Thank You!")
	assert.Nil(t, b.cookie, "session cookie is cleared after submit")

	require.Len(t, submitter.payloads, 1)
	payload := submitter.payloads[0]
	assert.Equal(t, "waitlist", payload["type"])
	assert.Equal(t, "Ada", payload["name"])
	assert.Equal(t, "accountant", payload["profession"])
	assert.Equal(t, "Ledgerly", payload["businessName"])
	assert.Equal(t, true, payload["isBusinessOwner"])
	assert.Equal(t, []string{"xero"}, payload["currentAccounting"])
	assert.Equal(t, "ada@x.com", payload["email"])
}

func TestLeadFormController_BackOnFirstStep(t *testing.T) {
	b := newBrowser(t, &recordingSubmitter{})

	b.do(http.MethodGet, "/waitlist", nil)
	w := b.do(http.MethodPost, "/waitlist/back", url.Values{})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Tell us about yourself")
}

func TestLeadFormController_SubmitBeforeFinalStep(t *testing.T) {
	submitter := &recordingSubmitter{}
	b := newBrowser(t, submitter)

	b.do(http.MethodGet, "/waitlist", nil)
	w := b.do(http.MethodPost, "/waitlist/submit", url.Values{"name": {"Ada"}})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, submitter.payloads)
}

func TestLeadFormController_UnknownOptionIsIgnored(t *testing.T) {
	b := newBrowser(t, &recordingSubmitter{})

	b.do(http.MethodGet, "/waitlist", nil)
	w := b.do(http.MethodPost, "/waitlist/next", url.Values{
		"name":       {"Ada"},
		"ageGroup":   {"99-100"},
		"profession": {"tech"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Age Group")
}

func TestLeadFormController_Close(t *testing.T) {
	b := newBrowser(t, &recordingSubmitter{})

	b.do(http.MethodGet, "/waitlist", nil)
	b.do(http.MethodPost, "/waitlist/next", url.Values{"name": {"Ada"}})

	w := b.do(http.MethodPost, "/waitlist/close", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Nil(t, b.cookie)

	w = b.do(http.MethodGet, "/waitlist", nil)
	assert.NotContains(t, w.Body.String(), `value="Ada"`, "closing discards the draft")
}

func TestLeadFormController_Subscribe(t *testing.T) {
	t.Run("renders form", func(t *testing.T) {
		b := newBrowser(t, &recordingSubmitter{})

		w := b.do(http.MethodGet, "/subscribe", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/subscribe"`)
	})

	t.Run("invalid email", func(t *testing.T) {
		submitter := &recordingSubmitter{}
		b := newBrowser(t, submitter)

		w := b.do(http.MethodPost, "/subscribe", url.Values{"email": {"not-an-email"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter a valid email address")
		assert.Empty(t, submitter.payloads)
	})

	t.Run("success", func(t *testing.T) {
		submitter := &recordingSubmitter{}
		b := newBrowser(t, submitter)

		w := b.do(http.MethodPost, "/subscribe", url.Values{"email": {"B@X.com"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Thanks for subscribing")
		require.Len(t, submitter.payloads, 1)
		assert.Equal(t, map[string]any{"type": "subscription", "email": "b@x.com"}, submitter.payloads[0])
	})

	t.Run("sink failure", func(t *testing.T) {
		b := newBrowser(t, &recordingSubmitter{err: errors.New("down")})

		w := b.do(http.MethodPost, "/subscribe", url.Values{"email": {"b@x.com"}})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Subscription failed")
	})

	t.Run("sink unavailable", func(t *testing.T) {
		b := newBrowser(t, &recordingSubmitter{err: apperrors.NewSinkUnavailableError("down", nil)})

		w := b.do(http.MethodPost, "/subscribe", url.Values{"email": {"b@x.com"}})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSubmitFailureNotice(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "store failure", err: apperrors.NewStorageError("write failed", nil), want: submitNotSavedNotice},
		{name: "database failure", err: apperrors.NewDatabaseError("insert failed", nil), want: submitNotSavedNotice},
		{name: "sink circuit open", err: apperrors.NewSinkUnavailableError("down", nil), want: submitUnavailableNotice},
		{name: "anything else", err: errors.New("boom"), want: submitFailedNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, submitFailureNotice(tt.err))
		})
	}
}

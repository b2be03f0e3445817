package constants

import "time"

// ISO8601MillisFormat matches JavaScript's Date.prototype.toISOString output.
// Submission timestamps are always written in UTC with this layout.
const ISO8601MillisFormat = "2006-01-02T15:04:05.000Z"

const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
	// DefaultSubmitRequestsPerMinute bounds POST /api/submit per client IP.
	DefaultSubmitRequestsPerMinute = 20
)

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

const (
	DefaultServiceName      = "bizguard-leads"
	DefaultDataDir          = "data"
	WaitlistSubmissionsFile = "waitlist-submissions.json"
	SubscriptionsFile       = "subscriptions.json"
	DefaultWizardSessionTTL = 30 * time.Minute
	WizardSessionCookieName = "bizguard_wizard"
)
